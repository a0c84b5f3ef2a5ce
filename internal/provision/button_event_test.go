package provision

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarby/dirigera-tui/internal/api"
)

func TestParseSceneNameRoundTrip(t *testing.T) {
	tests := []struct {
		controllerID   string
		controllerType string
		buttonIndex    int
		clickPattern   string
	}{
		{"ctrl-1", TriggerShortcutController, 0, "singlePress"},
		{"ctrl-1", TriggerLightController, 3, "doublePress"},
		// Controller ids may contain underscores themselves
		{"somrig_2", TriggerShortcutController, 0, "longPress"},
		{"a_b_c_d", TriggerLightController, 12, "singlePress"},
	}
	for _, tt := range tests {
		name := SceneName(tt.controllerID, tt.controllerType, tt.buttonIndex, tt.clickPattern)
		ev, ok := ParseSceneName(name)
		require.True(t, ok, "name %q", name)
		assert.Equal(t, tt.controllerID, ev.ControllerID)
		assert.Equal(t, tt.controllerType, ev.ControllerType)
		assert.Equal(t, tt.buttonIndex, ev.ButtonIndex)
		assert.Equal(t, tt.clickPattern, ev.ClickPattern)
	}
}

func TestParseSceneNameRejectsForeign(t *testing.T) {
	for _, name := range []string{
		"Movie night",
		"",
		ScenePrefix,
		ScenePrefix + "too_few",
		ScenePrefix + "id_unknownController_1_singlePress",
		ScenePrefix + "id_lightController_notanumber_singlePress",
		ScenePrefix + "_lightController_1_singlePress",
	} {
		_, ok := ParseSceneName(name)
		assert.False(t, ok, "name %q", name)
	}
}

func TestParseButtonEvent(t *testing.T) {
	ev, ok := ParseButtonEvent(api.Event{
		Type:      api.EventSceneUpdated,
		SceneName: SceneName("ctrl-1", TriggerLightController, 2, "singlePress"),
	})
	require.True(t, ok)
	assert.Equal(t, "ctrl-1", ev.ControllerID)
	assert.Equal(t, 2, ev.ButtonIndex)
	assert.Equal(t, "singlePress", ev.ClickPattern)
}

func TestParseButtonEventIgnoresOtherEvents(t *testing.T) {
	name := SceneName("ctrl-1", TriggerLightController, 2, "singlePress")

	_, ok := ParseButtonEvent(api.Event{Type: api.EventSceneCreated, SceneName: name})
	assert.False(t, ok)

	_, ok = ParseButtonEvent(api.Event{Type: api.EventDeviceStateChanged, SceneName: name})
	assert.False(t, ok)

	_, ok = ParseButtonEvent(api.Event{Type: api.EventSceneUpdated, SceneName: "Morning"})
	assert.False(t, ok)
}
