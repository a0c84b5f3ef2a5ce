package api

import (
	"context"
	"fmt"
	"sync"
	"time"

	"github.com/skarby/dirigera-tui/internal/models"
)

// DemoHub implements HubClient for demo mode without a real DIRIGERA
// hub. All state changes, including created scenes, live in memory.
type DemoHub struct {
	rooms  []*models.Room
	scenes []*models.Scene
	lights map[string]*models.Light
	nextID int
	mu     sync.RWMutex
}

// NewDemoHub creates a demo hub with sample data
func NewDemoHub() *DemoHub {
	d := &DemoHub{
		lights: make(map[string]*models.Light),
	}
	d.initializeDemoData()
	return d
}

// Host returns the demo hub host
func (d *DemoHub) Host() string {
	return "demo-hub.local"
}

// HubID returns the demo hub identifier
func (d *DemoHub) HubID() string {
	return "demo-hub-001"
}

// FetchAll returns the demo rooms and scenes
func (d *DemoHub) FetchAll(ctx context.Context) ([]*models.Room, []*models.Scene, error) {
	// Simulate network delay for realistic demo experience
	time.Sleep(500 * time.Millisecond)

	d.mu.RLock()
	defer d.mu.RUnlock()

	rooms := make([]*models.Room, len(d.rooms))
	copy(rooms, d.rooms)

	scenes := make([]*models.Scene, len(d.scenes))
	copy(scenes, d.scenes)

	return rooms, scenes, nil
}

// SetLightOn turns a demo light on or off
func (d *DemoHub) SetLightOn(ctx context.Context, lightID string, on bool) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if light, ok := d.lights[lightID]; ok {
		light.IsOn = on
		d.updateRoomStates()
	}
	return nil
}

// SetLightLevel sets a demo light's level (1-100)
func (d *DemoHub) SetLightLevel(ctx context.Context, lightID string, level int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if light, ok := d.lights[lightID]; ok {
		light.SetLevel(level)
	}
	return nil
}

// SetColorTemperature sets a demo light's color temperature in Kelvin
func (d *DemoHub) SetColorTemperature(ctx context.Context, lightID string, kelvin int) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	if light, ok := d.lights[lightID]; ok && light.ColorTemperature != nil {
		if kelvin < light.ColorTemperatureMin {
			kelvin = light.ColorTemperatureMin
		}
		if kelvin > light.ColorTemperatureMax {
			kelvin = light.ColorTemperatureMax
		}
		*light.ColorTemperature = kelvin
	}
	return nil
}

// SetDeviceName renames a demo device
func (d *DemoHub) SetDeviceName(ctx context.Context, device *models.Device, name string) error {
	if !device.SupportsRename() {
		return fmt.Errorf("%w: %s", ErrRenameUnsupported, device.ID)
	}
	device.Name = name
	return nil
}

// GetScenes returns the demo scenes
func (d *DemoHub) GetScenes(ctx context.Context) ([]*models.Scene, error) {
	d.mu.RLock()
	defer d.mu.RUnlock()

	scenes := make([]*models.Scene, len(d.scenes))
	copy(scenes, d.scenes)
	return scenes, nil
}

// CreateScene stores a scene in memory and returns a generated id
func (d *DemoHub) CreateScene(ctx context.Context, req CreateSceneRequest) (string, error) {
	d.mu.Lock()
	defer d.mu.Unlock()

	d.nextID++
	scene := &models.Scene{
		ID:   fmt.Sprintf("demo-scene-%03d", d.nextID),
		Name: req.Info.Name,
		Icon: req.Info.Icon,
		Type: req.Type,
	}
	for _, t := range req.Triggers {
		scene.Triggers = append(scene.Triggers, models.SceneTrigger{
			Type:           t.Type,
			Disabled:       t.Disabled,
			ControllerType: t.Trigger.ControllerType,
			ClickPattern:   t.Trigger.ClickPattern,
			ButtonIndex:    t.Trigger.ButtonIndex,
			DeviceID:       t.Trigger.DeviceID,
		})
	}
	d.scenes = append(d.scenes, scene)
	return scene.ID, nil
}

// DeleteScene removes a demo scene by id
func (d *DemoHub) DeleteScene(ctx context.Context, sceneID string) error {
	d.mu.Lock()
	defer d.mu.Unlock()

	for i, scene := range d.scenes {
		if scene.ID == sceneID {
			d.scenes = append(d.scenes[:i], d.scenes[i+1:]...)
			return nil
		}
	}
	return nil
}

// TriggerScene is a no-op for demo scenes
func (d *DemoHub) TriggerScene(ctx context.Context, sceneID string) error {
	return nil
}

// UndoScene is a no-op for demo scenes
func (d *DemoHub) UndoScene(ctx context.Context, sceneID string) error {
	return nil
}

// updateRoomStates recalculates room aggregate states. Caller holds the lock.
func (d *DemoHub) updateRoomStates() {
	for _, room := range d.rooms {
		room.UpdateState()
	}
}

func intPtr(v int) *int { return &v }

func boolPtr(v bool) *bool { return &v }

func floatPtr(v float64) *float64 { return &v }

func strPtr(v string) *string { return &v }

// initializeDemoData builds a plausible set of DIRIGERA devices
func (d *DemoHub) initializeDemoData() {
	ikea := "IKEA of Sweden"

	device := func(id, name, model string, deviceType models.DeviceType, roomID, roomName string, canSend, canReceive []string) models.Device {
		return models.Device{
			ID:           id,
			DeviceType:   deviceType,
			Name:         name,
			Model:        model,
			Manufacturer: ikea,
			Reachable:    true,
			RoomID:       roomID,
			RoomName:     roomName,
			Capabilities: models.Capabilities{CanSend: canSend, CanReceive: canReceive},
		}
	}

	lightReceives := []string{"isOn", "lightLevel", "colorTemperature", "customName"}

	livingCeiling := &models.Light{
		Device:              device("demo-light-001", "Ceiling", "TRADFRIbulbE27WSglobeopal1055lm", models.DeviceTypeLight, "room-living", "Living Room", nil, lightReceives),
		IsOn:                true,
		LightLevel:          80,
		ColorTemperature:    intPtr(2700),
		ColorTemperatureMin: 2202,
		ColorTemperatureMax: 4000,
	}
	livingFloor := &models.Light{
		Device:     device("demo-light-002", "Floor lamp", "TRADFRIbulbE27WWglobeclear250lm", models.DeviceTypeLight, "room-living", "Living Room", nil, []string{"isOn", "lightLevel", "customName"}),
		IsOn:       false,
		LightLevel: 40,
	}
	bedroomLamp := &models.Light{
		Device:              device("demo-light-003", "Bedside", "TRADFRIbulbE14WScandleopal470lm", models.DeviceTypeLight, "room-bedroom", "Bedroom", nil, lightReceives),
		IsOn:                true,
		LightLevel:          30,
		ColorTemperature:    intPtr(2202),
		ColorTemperatureMin: 2202,
		ColorTemperatureMax: 4000,
	}

	clickSend := []string{"singlePress", "doublePress", "longPress"}

	styrbar := &models.Controller{
		Device:            device("demo-ctrl-styrbar", "Living remote", "Remote Control N2", models.DeviceTypeLightController, "room-living", "Living Room", clickSend, []string{"customName"}),
		BatteryPercentage: intPtr(85),
		ClickPatterns:     models.ClickPatternsFromCapabilities(clickSend),
		ButtonCount:       models.ButtonCountForModel("Remote Control N2"),
	}
	// SOMRIG exposes two logical ids for one physical device
	somrig1 := &models.Controller{
		Device:            device("demo-ctrl-somrig_1", "Bedroom button", "SOMRIG shortcut button", models.DeviceTypeShortcutController, "room-bedroom", "Bedroom", clickSend, []string{"customName"}),
		BatteryPercentage: intPtr(100),
		SwitchLabel:       strPtr("dot1"),
		ClickPatterns:     models.ClickPatternsFromCapabilities(clickSend),
		ButtonCount:       models.ButtonCountForModel("SOMRIG shortcut button"),
	}
	somrig2 := &models.Controller{
		Device:            device("demo-ctrl-somrig_2", "Bedroom button", "SOMRIG shortcut button", models.DeviceTypeShortcutController, "room-bedroom", "Bedroom", clickSend, []string{"customName"}),
		BatteryPercentage: intPtr(100),
		SwitchLabel:       strPtr("dot2"),
		ClickPatterns:     models.ClickPatternsFromCapabilities(clickSend),
		ButtonCount:       models.ButtonCountForModel("SOMRIG shortcut button"),
	}
	rodret := &models.Controller{
		Device:            device("demo-ctrl-rodret", "Hallway dimmer", "RODRET Dimmer", models.DeviceTypeLightController, "room-hallway", "Hallway", []string{"singlePress", "longPress"}, []string{"customName"}),
		BatteryPercentage: intPtr(62),
		IsOn:              boolPtr(true),
		ClickPatterns:     models.ClickPatternsFromCapabilities([]string{"singlePress", "longPress"}),
		ButtonCount:       models.ButtonCountForModel("RODRET Dimmer"),
	}

	vallhorn := &models.MotionSensor{
		Device:            device("demo-motion-001", "Hallway motion", "VALLHORN Wireless Motion Sensor", models.DeviceTypeMotionSensor, "room-hallway", "Hallway", nil, []string{"customName", "isOn"}),
		BatteryPercentage: intPtr(74),
		IsOn:              boolPtr(true),
		LightLevel:        floatPtr(12.5),
	}
	// MYGGSPRAY reports as occupancySensor and has no isOn attribute
	myggspray := &models.MotionSensor{
		Device:            device("demo-motion-002", "Bedroom presence", "MYGGSPRAY Occupancy Sensor", models.DeviceTypeOccupancySensor, "room-bedroom", "Bedroom", nil, []string{"customName"}),
		BatteryPercentage: intPtr(91),
		IsDetected:        true,
	}

	vindstyrka := &models.EnvironmentSensor{
		Device:             device("demo-env-001", "Desk air", "VINDSTYRKA", models.DeviceTypeEnvironmentSensor, "room-living", "Living Room", nil, []string{"customName"}),
		CurrentTemperature: floatPtr(21.5),
		CurrentRH:          intPtr(43),
		CurrentPM25:        intPtr(7),
		MaxMeasuredPM25:    intPtr(38),
		MinMeasuredPM25:    intPtr(2),
		VOCIndex:           intPtr(120),
	}
	alpstuga := &models.EnvironmentSensor{
		Device:             device("demo-env-002", "Bedroom air", "ALPSTUGA Air quality sensor", models.DeviceTypeEnvironmentSensor, "room-bedroom", "Bedroom", nil, []string{"customName"}),
		CurrentTemperature: floatPtr(19.8),
		CurrentRH:          intPtr(51),
		CurrentCO2:         intPtr(640),
	}

	living := &models.Room{
		ID: "room-living", Name: "Living Room",
		Lights:             []*models.Light{livingCeiling, livingFloor},
		Controllers:        []*models.Controller{styrbar},
		EnvironmentSensors: []*models.EnvironmentSensor{vindstyrka},
	}
	bedroom := &models.Room{
		ID: "room-bedroom", Name: "Bedroom",
		Lights:             []*models.Light{bedroomLamp},
		Controllers:        []*models.Controller{somrig1, somrig2},
		MotionSensors:      []*models.MotionSensor{myggspray},
		EnvironmentSensors: []*models.EnvironmentSensor{alpstuga},
	}
	hallway := &models.Room{
		ID: "room-hallway", Name: "Hallway",
		Controllers:   []*models.Controller{rodret},
		MotionSensors: []*models.MotionSensor{vallhorn},
	}

	d.rooms = []*models.Room{living, bedroom, hallway}
	for _, room := range d.rooms {
		for _, light := range room.Lights {
			d.lights[light.ID] = light
		}
		room.UpdateState()
	}

	d.scenes = []*models.Scene{
		{ID: "demo-scene-movie", Name: "Movie night", Icon: "scenes_movie", Type: "userScene", ActionCount: 2},
		{ID: "demo-scene-morning", Name: "Morning", Icon: "scenes_sunrise", Type: "userScene", ActionCount: 3},
	}
}

// Compile-time check that DemoHub implements HubClient
var _ HubClient = (*DemoHub)(nil)
