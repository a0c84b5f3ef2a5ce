package messages

import (
	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/models"
)

// HubConnectedMsg indicates a successful hub pairing or connection
type HubConnectedMsg struct {
	Hub   api.HubClient
	Token string
}

// DataFetchedMsg contains fetched data from the hub
type DataFetchedMsg struct {
	Rooms  []*models.Room
	Scenes []*models.Scene
}

// ErrorMsg indicates an error occurred
type ErrorMsg struct {
	Err error
}

// ShowScenesMsg requests showing the scenes screen
type ShowScenesMsg struct{}

// HideScenesMsg requests returning to the main screen
type HideScenesMsg struct{}

// SceneTriggeredMsg indicates a scene was triggered (or undone)
type SceneTriggeredMsg struct {
	SceneID string
	Undo    bool
}

// DeleteSceneMsg requests deleting a single scene
type DeleteSceneMsg struct {
	SceneID string
}

// RefreshMsg requests a data refresh
type RefreshMsg struct{}

// ProvisionMsg requests provisioning event scenes for one controller
type ProvisionMsg struct {
	ControllerID  string
	ClickPatterns []string
	ButtonCount   int
}

// ProvisionDoneMsg reports a finished provisioning run
type ProvisionDoneMsg struct {
	ControllerID string
}

// DeprovisionAllMsg requests deleting all provisioned event scenes
type DeprovisionAllMsg struct{}

// DeprovisionDoneMsg reports how many event scenes were deleted
type DeprovisionDoneMsg struct {
	Deleted int
}

// HubEventsMsg carries a batch of raw hub events
type HubEventsMsg struct {
	Events []api.Event
}
