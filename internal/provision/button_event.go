package provision

import (
	"strconv"
	"strings"

	"github.com/skarby/dirigera-tui/internal/api"
)

// ButtonEvent is a button press decoded from a provisioned scene's name.
// This is the consuming half of the workaround: the hub reports the
// trigger firing as a sceneUpdated event, and the scene name carries the
// button identity the raw controller event lacks.
type ButtonEvent struct {
	ControllerID   string
	ControllerType string
	ButtonIndex    int
	ClickPattern   string
}

// ParseSceneName decodes a provisioned scene name back into its button
// identity. Returns ok=false for scenes not created by the provisioner.
//
// The controller id may itself contain underscores, so the fixed fields
// are taken from the right: ..._<controllerType>_<buttonIndex>_<clickPattern>.
func ParseSceneName(name string) (ButtonEvent, bool) {
	var ev ButtonEvent

	rest, found := strings.CutPrefix(name, ScenePrefix)
	if !found {
		return ev, false
	}

	parts := strings.Split(rest, "_")
	if len(parts) < 4 {
		return ev, false
	}

	ev.ClickPattern = parts[len(parts)-1]
	idx, err := strconv.Atoi(parts[len(parts)-2])
	if err != nil {
		return ev, false
	}
	ev.ButtonIndex = idx
	ev.ControllerType = parts[len(parts)-3]
	ev.ControllerID = strings.Join(parts[:len(parts)-3], "_")

	if ev.ControllerID == "" || ev.ClickPattern == "" {
		return ev, false
	}
	switch ev.ControllerType {
	case TriggerShortcutController, TriggerLightController:
	default:
		return ev, false
	}
	return ev, true
}

// ParseButtonEvent decodes a hub event into a button press. Only
// sceneUpdated events whose scene name carries the provisioner prefix
// qualify; everything else returns ok=false.
func ParseButtonEvent(event api.Event) (ButtonEvent, bool) {
	if event.Type != api.EventSceneUpdated {
		return ButtonEvent{}, false
	}
	return ParseSceneName(event.SceneName)
}
