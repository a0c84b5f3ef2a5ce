package api

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestParseMessageDeviceStateChanged(t *testing.T) {
	message := []byte(`{
		"id": "msg-1",
		"time": "2026-08-29T10:30:00.000Z",
		"type": "deviceStateChanged",
		"data": {
			"id": "light-1",
			"deviceType": "light",
			"attributes": {"isOn": true, "lightLevel": 75}
		}
	}`)

	sub := &EventSubscription{}
	events := sub.parseMessage(message)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, EventDeviceStateChanged, event.Type)
	assert.Equal(t, "light-1", event.ResourceID)
	assert.Equal(t, "light", event.DeviceType)
	assert.Empty(t, event.SceneName)

	update, err := ParseDeviceUpdate(event)
	require.NoError(t, err)
	assert.Equal(t, "light-1", update.ID)
	require.NotNil(t, update.IsOn)
	assert.True(t, *update.IsOn)
	require.NotNil(t, update.LightLevel)
	assert.Equal(t, 75, *update.LightLevel)
	assert.Nil(t, update.ColorTemperature)
}

func TestParseMessageSceneUpdated(t *testing.T) {
	message := []byte(`{
		"id": "msg-2",
		"type": "sceneUpdated",
		"data": {
			"id": "scene-1",
			"info": {"name": "dirigera_tui_empty_scene_ctrl-1_lightController_2_singlePress"}
		}
	}`)

	sub := &EventSubscription{}
	events := sub.parseMessage(message)
	require.Len(t, events, 1)

	event := events[0]
	assert.Equal(t, EventSceneUpdated, event.Type)
	assert.True(t, event.Type.IsSceneEvent())
	assert.Equal(t, "scene-1", event.ResourceID)
	assert.Equal(t, "dirigera_tui_empty_scene_ctrl-1_lightController_2_singlePress", event.SceneName)
}

func TestParseMessageMalformed(t *testing.T) {
	sub := &EventSubscription{}

	assert.Nil(t, sub.parseMessage([]byte(`not json`)))
	assert.Nil(t, sub.parseMessage([]byte(`{}`)))
	assert.Nil(t, sub.parseMessage([]byte(`{"type": "deviceStateChanged", "data": {}}`)))
}

func TestParseDeviceUpdateWrongType(t *testing.T) {
	_, err := ParseDeviceUpdate(Event{Type: EventSceneUpdated})
	assert.Error(t, err)
}

func TestIsSceneEvent(t *testing.T) {
	assert.True(t, EventSceneCreated.IsSceneEvent())
	assert.True(t, EventSceneDeleted.IsSceneEvent())
	assert.False(t, EventDeviceStateChanged.IsSceneEvent())
}
