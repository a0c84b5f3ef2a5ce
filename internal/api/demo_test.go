package api

import (
	"context"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestDemoHubFetchAll(t *testing.T) {
	hub := NewDemoHub()

	rooms, scenes, err := hub.FetchAll(context.Background())
	require.NoError(t, err)
	assert.NotEmpty(t, rooms)
	assert.NotEmpty(t, scenes)

	var controllers, lights int
	for _, room := range rooms {
		controllers += len(room.Controllers)
		lights += len(room.Lights)
	}
	assert.GreaterOrEqual(t, controllers, 3)
	assert.GreaterOrEqual(t, lights, 2)
}

func TestDemoHubLogicalIDPair(t *testing.T) {
	hub := NewDemoHub()
	rooms, _, err := hub.FetchAll(context.Background())
	require.NoError(t, err)

	// The SOMRIG appears as two logical ids for one physical device
	ids := make(map[string]bool)
	for _, room := range rooms {
		for _, c := range room.Controllers {
			ids[c.ID] = true
		}
	}
	assert.True(t, ids["demo-ctrl-somrig_1"])
	assert.True(t, ids["demo-ctrl-somrig_2"])
}

func TestDemoHubLightControl(t *testing.T) {
	hub := NewDemoHub()
	ctx := context.Background()

	require.NoError(t, hub.SetLightOn(ctx, "demo-light-002", true))
	require.NoError(t, hub.SetLightLevel(ctx, "demo-light-002", 55))

	rooms, _, err := hub.FetchAll(ctx)
	require.NoError(t, err)

	for _, room := range rooms {
		if light := room.LightByID("demo-light-002"); light != nil {
			assert.True(t, light.IsOn)
			assert.Equal(t, 55, light.LightLevel)
			return
		}
	}
	t.Fatal("demo-light-002 not found")
}

func TestDemoHubSceneLifecycle(t *testing.T) {
	hub := NewDemoHub()
	ctx := context.Background()

	before, err := hub.GetScenes(ctx)
	require.NoError(t, err)

	id, err := hub.CreateScene(ctx, CreateSceneRequest{
		Info: SceneInfo{Name: "test", Icon: "scenes_cake"},
		Type: "customScene",
		Triggers: []SceneTriggerRequest{
			{Type: "controller", Trigger: TriggerDetails{
				ControllerType: "lightController",
				ClickPattern:   "singlePress",
				ButtonIndex:    1,
				DeviceID:       "demo-ctrl-styrbar",
			}},
		},
	})
	require.NoError(t, err)
	assert.NotEmpty(t, id)

	after, err := hub.GetScenes(ctx)
	require.NoError(t, err)
	require.Len(t, after, len(before)+1)

	created := after[len(after)-1]
	assert.Equal(t, "test", created.Name)
	require.Len(t, created.Triggers, 1)
	assert.Equal(t, 1, created.Triggers[0].ButtonIndex)

	require.NoError(t, hub.DeleteScene(ctx, id))
	final, err := hub.GetScenes(ctx)
	require.NoError(t, err)
	assert.Len(t, final, len(before))
}
