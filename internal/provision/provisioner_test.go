package provision

import (
	"context"
	"errors"
	"fmt"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/models"
)

// fakeSceneService records scene operations in memory
type fakeSceneService struct {
	created   []api.CreateSceneRequest
	scenes    []*models.Scene
	deleted   []string
	createErr error
	deleteErr error
	listErr   error
	nextID    int
}

func (f *fakeSceneService) GetScenes(ctx context.Context) ([]*models.Scene, error) {
	if f.listErr != nil {
		return nil, f.listErr
	}
	return f.scenes, nil
}

func (f *fakeSceneService) CreateScene(ctx context.Context, req api.CreateSceneRequest) (string, error) {
	if f.createErr != nil {
		return "", f.createErr
	}
	f.created = append(f.created, req)
	f.nextID++
	return fmt.Sprintf("scene-%d", f.nextID), nil
}

func (f *fakeSceneService) DeleteScene(ctx context.Context, sceneID string) error {
	if f.deleteErr != nil {
		return f.deleteErr
	}
	f.deleted = append(f.deleted, sceneID)
	return nil
}

func createdNames(reqs []api.CreateSceneRequest) []string {
	names := make([]string, len(reqs))
	for i, req := range reqs {
		names[i] = req.Info.Name
	}
	return names
}

func TestProvisionMultiButton(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	err := p.Provision(context.Background(), "ctrl-1", []string{"singlePress"}, 3)
	require.NoError(t, err)

	// One legacy scene plus one per button index
	assert.Equal(t, []string{
		"dirigera_tui_empty_scene_ctrl-1_shortcutController_0_singlePress",
		"dirigera_tui_empty_scene_ctrl-1_lightController_1_singlePress",
		"dirigera_tui_empty_scene_ctrl-1_lightController_2_singlePress",
		"dirigera_tui_empty_scene_ctrl-1_lightController_3_singlePress",
	}, createdNames(fake.created))
}

func TestProvisionMultiplePatterns(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	err := p.Provision(context.Background(), "ctrl-1", []string{"singlePress", "longPress"}, 2)
	require.NoError(t, err)

	// (1 legacy + 2 per-button) per pattern
	assert.Len(t, fake.created, 6)
}

func TestProvisionSingleButton(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	err := p.Provision(context.Background(), "ctrl-1", []string{"singlePress", "doublePress"}, 1)
	require.NoError(t, err)

	// Single-button controllers only get the legacy scenes
	assert.Equal(t, []string{
		"dirigera_tui_empty_scene_ctrl-1_shortcutController_0_singlePress",
		"dirigera_tui_empty_scene_ctrl-1_shortcutController_0_doublePress",
	}, createdNames(fake.created))
}

func TestProvisionSecondaryLogicalID(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	// Suffix _2 is a secondary id: legacy scene only, even with 2 buttons
	err := p.Provision(context.Background(), "somrig_2", []string{"singlePress"}, 2)
	require.NoError(t, err)

	assert.Equal(t, []string{
		"dirigera_tui_empty_scene_somrig_2_shortcutController_0_singlePress",
	}, createdNames(fake.created))
}

func TestProvisionPrimaryLogicalID(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	err := p.Provision(context.Background(), "somrig_1", []string{"singlePress"}, 2)
	require.NoError(t, err)

	assert.Len(t, fake.created, 3)
}

func TestProvisionSceneShape(t *testing.T) {
	fake := &fakeSceneService{}
	p := New(fake)

	err := p.Provision(context.Background(), "ctrl-1", []string{"doublePress"}, 2)
	require.NoError(t, err)
	require.NotEmpty(t, fake.created)

	legacy := fake.created[0]
	assert.Equal(t, "customScene", legacy.Type)
	assert.Equal(t, "scenes_cake", legacy.Info.Icon)
	require.Len(t, legacy.Triggers, 1)
	trigger := legacy.Triggers[0]
	assert.Equal(t, "controller", trigger.Type)
	assert.False(t, trigger.Disabled)
	assert.Equal(t, TriggerShortcutController, trigger.Trigger.ControllerType)
	assert.Equal(t, "doublePress", trigger.Trigger.ClickPattern)
	assert.Equal(t, 0, trigger.Trigger.ButtonIndex)
	assert.Equal(t, "ctrl-1", trigger.Trigger.DeviceID)

	perButton := fake.created[1]
	assert.Equal(t, TriggerLightController, perButton.Triggers[0].Trigger.ControllerType)
	assert.Equal(t, 1, perButton.Triggers[0].Trigger.ButtonIndex)
}

func TestProvisionCreateError(t *testing.T) {
	hubErr := errors.New("hub unavailable")
	fake := &fakeSceneService{createErr: hubErr}
	p := New(fake)

	err := p.Provision(context.Background(), "ctrl-1", []string{"singlePress"}, 2)
	require.Error(t, err)
	assert.ErrorIs(t, err, hubErr)
}

func TestIsPrimaryID(t *testing.T) {
	p := New(&fakeSceneService{})

	tests := []struct {
		id      string
		primary bool
	}{
		{"abc", true},
		{"abc_1", true},
		{"abc_2", false},
		{"abc_10", false},
		{"abc_def_3", false},
		// A non-numeric suffix is not a logical id
		{"abc_def", true},
		{"", true},
	}
	for _, tt := range tests {
		assert.Equal(t, tt.primary, p.IsPrimaryID(tt.id), "id %q", tt.id)
	}
}

func TestParseButtonCount(t *testing.T) {
	assert.Equal(t, 4, ParseButtonCount(4))
	assert.Equal(t, 2, ParseButtonCount(int64(2)))
	assert.Equal(t, 3, ParseButtonCount(3.0))
	assert.Equal(t, 2, ParseButtonCount("2"))
	assert.Equal(t, 2, ParseButtonCount(" 2 "))

	// Anything unusable falls back to a single button
	assert.Equal(t, 1, ParseButtonCount(nil))
	assert.Equal(t, 1, ParseButtonCount(0))
	assert.Equal(t, 1, ParseButtonCount(-3))
	assert.Equal(t, 1, ParseButtonCount("many"))
	assert.Equal(t, 1, ParseButtonCount(""))
	assert.Equal(t, 1, ParseButtonCount([]string{"4"}))
}

func TestSceneNameDeterministic(t *testing.T) {
	a := SceneName("ctrl-1", TriggerLightController, 2, "singlePress")
	b := SceneName("ctrl-1", TriggerLightController, 2, "singlePress")
	assert.Equal(t, a, b)
	assert.Equal(t, "dirigera_tui_empty_scene_ctrl-1_lightController_2_singlePress", a)
}

func TestDeprovisionAll(t *testing.T) {
	fake := &fakeSceneService{
		scenes: []*models.Scene{
			{ID: "s1", Name: "dirigera_tui_empty_scene_ctrl-1_shortcutController_0_singlePress"},
			{ID: "s2", Name: "Movie night"},
			{ID: "s3", Name: "dirigera_tui_empty_scene_ctrl-1_lightController_1_singlePress"},
			{ID: "s4", Name: "Morning"},
		},
	}
	p := New(fake)

	deleted, err := p.DeprovisionAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 2, deleted)
	// User scenes are never deleted
	assert.Equal(t, []string{"s1", "s3"}, fake.deleted)
}

func TestDeprovisionAllDeleteError(t *testing.T) {
	hubErr := errors.New("delete failed")
	fake := &fakeSceneService{
		scenes: []*models.Scene{
			{ID: "s1", Name: ScenePrefix + "a_shortcutController_0_singlePress"},
		},
		deleteErr: hubErr,
	}
	p := New(fake)

	deleted, err := p.DeprovisionAll(context.Background())
	require.Error(t, err)
	assert.ErrorIs(t, err, hubErr)
	assert.Zero(t, deleted)
}

func TestDeprovisionAllListError(t *testing.T) {
	fake := &fakeSceneService{listErr: errors.New("unauthorized")}
	p := New(fake)

	_, err := p.DeprovisionAll(context.Background())
	assert.Error(t, err)
}

func TestCountProvisioned(t *testing.T) {
	scenes := []*models.Scene{
		{Name: SceneName("ctrl-1", TriggerShortcutController, 0, "singlePress")},
		{Name: SceneName("ctrl-1", TriggerLightController, 1, "singlePress")},
		{Name: SceneName("ctrl-2", TriggerShortcutController, 0, "longPress")},
		{Name: "Movie night"},
	}

	assert.Equal(t, 3, CountProvisioned(scenes, ""))
	assert.Equal(t, 2, CountProvisioned(scenes, "ctrl-1"))
	assert.Equal(t, 1, CountProvisioned(scenes, "ctrl-2"))
	assert.Equal(t, 0, CountProvisioned(scenes, "ctrl-3"))
}

func TestProvisionDemoHubRoundTrip(t *testing.T) {
	hub := api.NewDemoHub()
	p := New(hub)

	err := p.Provision(context.Background(), "demo-ctrl-styrbar", []string{"singlePress", "longPress"}, 4)
	require.NoError(t, err)

	scenes, err := hub.GetScenes(context.Background())
	require.NoError(t, err)
	// 2 demo user scenes + 2 patterns * (1 legacy + 4 per-button)
	assert.Equal(t, 10, CountProvisioned(scenes, "demo-ctrl-styrbar"))

	deleted, err := p.DeprovisionAll(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 10, deleted)

	scenes, err = hub.GetScenes(context.Background())
	require.NoError(t, err)
	assert.Equal(t, 0, CountProvisioned(scenes, ""))
	assert.Len(t, scenes, 2)
}
