package tui

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/config"
	"github.com/skarby/dirigera-tui/internal/models"
	"github.com/skarby/dirigera-tui/internal/provision"
	"github.com/skarby/dirigera-tui/internal/tui/messages"
)

func TestNewModelDemoMode(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	assert.Equal(t, ScreenMain, m.screen)
	require.NotNil(t, m.hub)
	assert.Equal(t, "demo-hub.local", m.hub.Host())
}

func TestNewModelNoHubsStartsSetup(t *testing.T) {
	m := NewModel(&config.Config{}, false)
	assert.Equal(t, ScreenSetup, m.screen)
	assert.Nil(t, m.hub)
}

func TestNewModelExistingHub(t *testing.T) {
	cfg := &config.Config{
		Hubs: []config.HubConfig{
			{Host: "192.168.1.50", Token: "tok", HubID: "hub1"},
		},
	}
	m := NewModel(cfg, false)

	assert.Equal(t, ScreenMain, m.screen)
	require.NotNil(t, m.hub)
	assert.Equal(t, "192.168.1.50", m.hub.Host())
}

func TestUpdateDataFetched(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	rooms := []*models.Room{{ID: "r1", Name: "Test room"}}
	scenes := []*models.Scene{{ID: "s1", Name: "Morning"}}

	updated, _ := m.Update(messages.DataFetchedMsg{Rooms: rooms, Scenes: scenes})
	model := updated.(Model)

	assert.Equal(t, rooms, model.rooms)
	assert.Equal(t, scenes, model.scenes)
}

func TestUpdateScreenRouting(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	updated, _ := m.Update(messages.ShowScenesMsg{})
	model := updated.(Model)
	assert.Equal(t, ScreenScenes, model.screen)

	updated, _ = model.Update(messages.HideScenesMsg{})
	model = updated.(Model)
	assert.Equal(t, ScreenMain, model.screen)
}

func TestUpdateWindowSize(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	updated, _ := m.Update(tea.WindowSizeMsg{Width: 120, Height: 40})
	model := updated.(Model)

	assert.Equal(t, 120, model.width)
	assert.Equal(t, 40, model.height)
}

func TestHandleHubEventsButtonPress(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	name := provision.SceneName("ctrl-1", provision.TriggerLightController, 2, "singlePress")
	cmd := m.handleHubEvents([]api.Event{
		{Type: api.EventSceneUpdated, SceneName: name},
	})

	// Button presses update the status bar without refetching
	assert.Nil(t, cmd)
	assert.Contains(t, m.mainScreen.View(), "button 2")
}

func TestHandleHubEventsStructuralChange(t *testing.T) {
	m := NewModel(&config.Config{}, true)

	cmd := m.handleHubEvents([]api.Event{
		{Type: api.EventDeviceAdded, ResourceID: "new-device"},
	})

	// Device additions trigger a refetch
	assert.NotNil(t, cmd)
}
