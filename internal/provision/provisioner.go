// Package provision creates and removes the empty trigger scenes that
// make the DIRIGERA hub emit per-button events for remote controllers.
//
// The hub's websocket events are inconsistent across controller models:
// some remotes (e.g. STYRBAR) send ambiguous remotePressEvent payloads
// without a usable button identity. A scene with a per-button controller
// trigger, however, makes the hub emit sceneUpdated carrying a
// buttonIndex. Registering one action-less scene per (button, gesture)
// therefore turns scene events into a reliable button event source.
package provision

import (
	"context"
	"fmt"
	"log/slog"
	"regexp"
	"strconv"
	"strings"

	"github.com/skarby/dirigera-tui/internal/api"
	"github.com/skarby/dirigera-tui/internal/models"
)

// ScenePrefix marks every scene created by the provisioner. Cleanup
// deletes exactly the scenes carrying this prefix, so user scenes are
// never touched as long as nobody names a scene with it by hand.
const ScenePrefix = "dirigera_tui_empty_scene_"

// sceneIcon is the icon assigned to provisioned scenes
const sceneIcon = "scenes_cake"

// Controller trigger types understood by the hub
const (
	// TriggerShortcutController is the legacy single-button trigger,
	// created unconditionally for backward compatibility.
	TriggerShortcutController = "shortcutController"
	// TriggerLightController carries a buttonIndex and is what makes
	// multi-button remotes distinguishable.
	TriggerLightController = "lightController"
)

// defaultLogicalIDPattern matches controller ids carrying a numeric
// logical-suffix (e.g. "abc_2"). The suffix scheme is a hub vendor
// convention, so the pattern is overridable per Provisioner.
var defaultLogicalIDPattern = regexp.MustCompile(`^(.*)_([0-9]+)$`)

// SceneService is the slice of the hub API the provisioner needs.
// Satisfied by *api.DirigeraHub and by api.HubClient implementations.
type SceneService interface {
	GetScenes(ctx context.Context) ([]*models.Scene, error)
	CreateScene(ctx context.Context, req api.CreateSceneRequest) (string, error)
	DeleteScene(ctx context.Context, sceneID string) error
}

// Provisioner creates empty event scenes on a hub
type Provisioner struct {
	hub SceneService

	// LogicalIDPattern splits a controller id into physical id and
	// numeric logical suffix. Defaults to `^(.*)_([0-9]+)$`.
	LogicalIDPattern *regexp.Regexp
}

// New creates a Provisioner for the given hub
func New(hub SceneService) *Provisioner {
	return &Provisioner{
		hub:              hub,
		LogicalIDPattern: defaultLogicalIDPattern,
	}
}

// ParseButtonCount coerces an integer-like value into a button count.
// Missing, malformed, or non-positive input falls back to 1 rather than
// failing: a wrong count only costs extra or missing scenes, never a
// broken controller.
func ParseButtonCount(v any) int {
	switch n := v.(type) {
	case nil:
		return 1
	case int:
		if n > 0 {
			return n
		}
	case int64:
		if n > 0 {
			return int(n)
		}
	case float64:
		if n > 0 {
			return int(n)
		}
	case string:
		if parsed, err := strconv.Atoi(strings.TrimSpace(n)); err == nil && parsed > 0 {
			return parsed
		}
	}
	return 1
}

// IsPrimaryID reports whether a controller id owns multi-button scene
// creation for its physical device. Ids without a numeric suffix are
// primary, as is suffix "_1". A malformed suffix (e.g. "_abc") does not
// match the pattern and also counts as primary.
func (p *Provisioner) IsPrimaryID(controllerID string) bool {
	pattern := p.LogicalIDPattern
	if pattern == nil {
		pattern = defaultLogicalIDPattern
	}
	m := pattern.FindStringSubmatch(controllerID)
	if m == nil {
		return true
	}
	return m[2] == "1"
}

// SceneName builds the deterministic name of a provisioned scene. Equal
// inputs always produce equal names, so re-provisioning is idempotent.
func SceneName(controllerID, controllerType string, buttonIndex int, clickPattern string) string {
	return fmt.Sprintf("%s%s_%s_%d_%s", ScenePrefix, controllerID, controllerType, buttonIndex, clickPattern)
}

// Provision registers the empty event scenes for one controller.
//
// Every click pattern gets a legacy shortcutController scene at button
// index 0. When buttons > 1 and controllerID is primary, each click
// pattern additionally gets one lightController scene per button index
// 1..buttons. Hub errors propagate unmodified.
func (p *Provisioner) Provision(ctx context.Context, controllerID string, clickPatterns []string, buttons int) error {
	buttons = ParseButtonCount(buttons)

	allowMultiButton := buttons > 1 && p.IsPrimaryID(controllerID)

	slog.Debug("provisioning event scenes",
		"controller", controllerID,
		"patterns", clickPatterns,
		"buttons", buttons,
		"multiButton", allowMultiButton)

	for _, click := range clickPatterns {
		// Legacy generator: works for shortcut controllers and
		// suffixed logical ids
		if err := p.createEmptyScene(ctx, controllerID, click, TriggerShortcutController, 0); err != nil {
			return err
		}

		if !allowMultiButton {
			continue
		}
		for idx := 1; idx <= buttons; idx++ {
			if err := p.createEmptyScene(ctx, controllerID, click, TriggerLightController, idx); err != nil {
				return err
			}
		}
	}
	return nil
}

// createEmptyScene issues one scene create call with a single controller
// trigger and no actions.
func (p *Provisioner) createEmptyScene(ctx context.Context, controllerID, clickPattern, controllerType string, buttonIndex int) error {
	name := SceneName(controllerID, controllerType, buttonIndex, clickPattern)

	req := api.CreateSceneRequest{
		Info: api.SceneInfo{Name: name, Icon: sceneIcon},
		Type: "customScene",
		Triggers: []api.SceneTriggerRequest{
			{
				Type:     "controller",
				Disabled: false,
				Trigger: api.TriggerDetails{
					ControllerType: controllerType,
					ClickPattern:   clickPattern,
					ButtonIndex:    buttonIndex,
					DeviceID:       controllerID,
				},
			},
		},
	}

	if _, err := p.hub.CreateScene(ctx, req); err != nil {
		return fmt.Errorf("failed to create event scene %s: %w", name, err)
	}
	return nil
}

// DeprovisionAll deletes every provisioner-created scene on the hub.
// Deletion stops at the first error; scenes not yet deleted stay behind
// and a later run picks them up again (idempotent retry). Returns the
// number of scenes deleted.
func (p *Provisioner) DeprovisionAll(ctx context.Context) (int, error) {
	scenes, err := p.hub.GetScenes(ctx)
	if err != nil {
		return 0, err
	}

	deleted := 0
	for _, scene := range scenes {
		if !strings.HasPrefix(scene.Name, ScenePrefix) {
			continue
		}
		slog.Debug("deleting event scene", "id", scene.ID, "name", scene.Name)
		if err := p.hub.DeleteScene(ctx, scene.ID); err != nil {
			return deleted, fmt.Errorf("failed to delete scene %s: %w", scene.ID, err)
		}
		deleted++
	}
	return deleted, nil
}

// CountProvisioned returns how many of the given scenes were created by
// the provisioner for the given controller (all controllers if empty).
func CountProvisioned(scenes []*models.Scene, controllerID string) int {
	count := 0
	for _, scene := range scenes {
		ev, ok := ParseSceneName(scene.Name)
		if !ok {
			continue
		}
		if controllerID == "" || ev.ControllerID == controllerID {
			count++
		}
	}
	return count
}
