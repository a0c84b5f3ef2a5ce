package models

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestButtonCountForModel(t *testing.T) {
	tests := []struct {
		model string
		want  int
	}{
		{"RODRET Dimmer", 2},
		{"SOMRIG shortcut button", 2},
		{"Remote Control N2", 4},
		{"TRADFRI remote control", 5},
		// Firmware revision suffixes still match by prefix
		{"RODRET Dimmer v2", 2},
		// Unknown models fall back to a single button
		{"Unknown gadget", 1},
		{"", 1},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.want, ButtonCountForModel(tt.model), "model %q", tt.model)
	}
}

func TestClickPatternsFromCapabilities(t *testing.T) {
	patterns := ClickPatternsFromCapabilities([]string{"singlePress", "batteryPercentage", "longPress"})
	assert.Equal(t, []string{"singlePress", "longPress"}, patterns)

	assert.Nil(t, ClickPatternsFromCapabilities(nil))
	assert.Nil(t, ClickPatternsFromCapabilities([]string{"customName"}))
}

func TestPhysicalID(t *testing.T) {
	assert.Equal(t, "abc", PhysicalID("abc_1"))
	assert.Equal(t, "abc", PhysicalID("abc_2"))
	assert.Equal(t, "a_b", PhysicalID("a_b_12"))
	// Non-numeric suffixes are part of the id
	assert.Equal(t, "abc_def", PhysicalID("abc_def"))
	assert.Equal(t, "abc", PhysicalID("abc"))
	assert.Equal(t, "_1", PhysicalID("_1"))
}

func TestDeviceTypeIsMotionClass(t *testing.T) {
	assert.True(t, DeviceTypeMotionSensor.IsMotionClass())
	assert.True(t, DeviceTypeOccupancySensor.IsMotionClass())
	assert.False(t, DeviceTypeLight.IsMotionClass())
}

func TestDeviceTypeIsControllerClass(t *testing.T) {
	assert.True(t, DeviceTypeLightController.IsControllerClass())
	assert.True(t, DeviceTypeShortcutController.IsControllerClass())
	assert.True(t, DeviceTypeSoundController.IsControllerClass())
	assert.False(t, DeviceTypeLight.IsControllerClass())
	assert.False(t, DeviceTypeMotionSensor.IsControllerClass())
}

func TestSupportsRename(t *testing.T) {
	d := &Device{Capabilities: Capabilities{CanReceive: []string{"isOn", "customName"}}}
	assert.True(t, d.SupportsRename())

	d = &Device{Capabilities: Capabilities{CanReceive: []string{"isOn"}}}
	assert.False(t, d.SupportsRename())
}

func TestLightSetLevelClamps(t *testing.T) {
	light := &Light{}

	light.SetLevel(50)
	assert.Equal(t, 50, light.LightLevel)

	light.SetLevel(0)
	assert.Equal(t, 1, light.LightLevel)

	light.SetLevel(140)
	assert.Equal(t, 100, light.LightLevel)
}

func TestLightSupportsColorTemperature(t *testing.T) {
	kelvin := 2700
	light := &Light{
		Device:           Device{Capabilities: Capabilities{CanReceive: []string{"colorTemperature"}}},
		ColorTemperature: &kelvin,
	}
	assert.True(t, light.SupportsColorTemperature())

	// A reported value without the write capability is read-only
	readOnly := &Light{ColorTemperature: &kelvin}
	assert.False(t, readOnly.SupportsColorTemperature())

	assert.False(t, (&Light{}).SupportsColorTemperature())
}

func TestRoomUpdateState(t *testing.T) {
	room := &Room{
		Lights: []*Light{
			{IsOn: true, LightLevel: 80},
			{IsOn: false, LightLevel: 40},
		},
	}
	room.UpdateState()
	assert.True(t, room.AnyOn)
	assert.False(t, room.AllOn)

	room.Lights[1].IsOn = true
	room.UpdateState()
	assert.True(t, room.AllOn)
}

func TestRoomAverageLevel(t *testing.T) {
	room := &Room{
		Lights: []*Light{
			{IsOn: true, LightLevel: 80},
			{IsOn: true, LightLevel: 40},
			{IsOn: false, LightLevel: 100},
		},
	}
	// Only lit lights count toward the average
	assert.Equal(t, 60, room.AverageLevel())
}

func TestScenesByTriggerDevice(t *testing.T) {
	scenes := []*Scene{
		{ID: "s1", Triggers: []SceneTrigger{{Type: "controller", DeviceID: "ctrl-1"}}},
		{ID: "s2", Triggers: []SceneTrigger{{Type: "controller", DeviceID: "ctrl-1"}}},
		{ID: "s3", Triggers: []SceneTrigger{{Type: "controller", DeviceID: "ctrl-2"}}},
		{ID: "s4"}, // no triggers
	}

	byDevice := ScenesByTriggerDevice(scenes)
	assert.Len(t, byDevice["ctrl-1"], 2)
	assert.Len(t, byDevice["ctrl-2"], 1)
	// Untriggered scenes group under the empty key
	assert.Len(t, byDevice[""], 1)
}

func TestEnvironmentSensorHasAirQuality(t *testing.T) {
	pm := 7
	assert.True(t, (&EnvironmentSensor{CurrentPM25: &pm}).HasAirQuality())

	co2 := 640
	assert.True(t, (&EnvironmentSensor{CurrentCO2: &co2}).HasAirQuality())

	temp := 21.5
	assert.False(t, (&EnvironmentSensor{CurrentTemperature: &temp}).HasAirQuality())
}
