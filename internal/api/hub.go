package api

import (
	"context"

	"github.com/skarby/dirigera-tui/internal/models"
)

// HubClient defines the interface for interacting with a DIRIGERA hub.
// This abstraction allows for both real hub connections and demo mode.
type HubClient interface {
	// FetchAll retrieves all rooms (with their devices) and scenes
	FetchAll(ctx context.Context) ([]*models.Room, []*models.Scene, error)

	// Light control
	SetLightOn(ctx context.Context, lightID string, on bool) error
	SetLightLevel(ctx context.Context, lightID string, level int) error
	SetColorTemperature(ctx context.Context, lightID string, kelvin int) error

	// Device metadata
	SetDeviceName(ctx context.Context, device *models.Device, name string) error

	// Scene management
	GetScenes(ctx context.Context) ([]*models.Scene, error)
	CreateScene(ctx context.Context, req CreateSceneRequest) (string, error)
	DeleteScene(ctx context.Context, sceneID string) error
	TriggerScene(ctx context.Context, sceneID string) error
	UndoScene(ctx context.Context, sceneID string) error

	// Metadata
	Host() string
	HubID() string
}

// Compile-time check that DirigeraHub implements HubClient
var _ HubClient = (*DirigeraHub)(nil)
