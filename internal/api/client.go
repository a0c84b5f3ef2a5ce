package api

import (
	"bytes"
	"context"
	"crypto/tls"
	"encoding/json"
	"errors"
	"fmt"
	"io"
	"log/slog"
	"net"
	"net/http"
	"sort"

	"github.com/skarby/dirigera-tui/internal/models"
)

const defaultPort = "8443"

var (
	// ErrRenameUnsupported is returned when a device does not accept
	// customName writes.
	ErrRenameUnsupported = errors.New("device does not support renaming")
	// ErrNotMotionSensor is returned when a device fetched by id is
	// neither a motionSensor nor an occupancySensor.
	ErrNotMotionSensor = errors.New("device is not a motion or occupancy sensor")
	// ErrNotEnvironmentSensor is returned when a device fetched by id is
	// not an environmentSensor.
	ErrNotEnvironmentSensor = errors.New("device is not an environment sensor")
)

// DirigeraHub represents a connection to an IKEA DIRIGERA hub
type DirigeraHub struct {
	host   string
	token  string
	hubID  string
	client *http.Client
}

// NewDirigeraHub creates a new hub client. host may omit the port, in
// which case the hub's default 8443 is used.
func NewDirigeraHub(host, token, hubID string) *DirigeraHub {
	return &DirigeraHub{
		host:  host,
		token: token,
		hubID: hubID,
		client: &http.Client{
			Transport: &http.Transport{
				// The hub serves a self-signed certificate
				TLSClientConfig: &tls.Config{InsecureSkipVerify: true},
			},
		},
	}
}

// Host returns the hub host
func (h *DirigeraHub) Host() string {
	return h.host
}

// HubID returns the hub identifier
func (h *DirigeraHub) HubID() string {
	return h.hubID
}

// hostWithPort appends the default API port when host carries none
func hostWithPort(host string) string {
	if _, _, err := net.SplitHostPort(host); err == nil {
		return host
	}
	return net.JoinHostPort(host, defaultPort)
}

// doRequest performs an authenticated API request against /v1
func (h *DirigeraHub) doRequest(ctx context.Context, method, path string, body io.Reader) (*http.Response, error) {
	url := fmt.Sprintf("https://%s/v1%s", hostWithPort(h.host), path)

	req, err := http.NewRequestWithContext(ctx, method, url, body)
	if err != nil {
		return nil, err
	}

	req.Header.Set("Authorization", "Bearer "+h.token)
	if body != nil {
		req.Header.Set("Content-Type", "application/json")
	}

	return h.client.Do(req)
}

// checkStatus turns a non-2xx response into an error carrying the hub's
// message body.
func checkStatus(resp *http.Response) error {
	if resp.StatusCode >= 200 && resp.StatusCode < 300 {
		return nil
	}
	bodyBytes, _ := io.ReadAll(resp.Body)
	return fmt.Errorf("hub error (status %d): %s", resp.StatusCode, string(bodyBytes))
}

// deviceResource represents a device payload from the hub. Optional
// attributes stay pointers so absence survives into the models.
type deviceResource struct {
	ID          string `json:"id"`
	Type        string `json:"type"`
	DeviceType  string `json:"deviceType"`
	IsReachable bool   `json:"isReachable"`
	Attributes  struct {
		CustomName      string `json:"customName"`
		Model           string `json:"model"`
		Manufacturer    string `json:"manufacturer"`
		FirmwareVersion string `json:"firmwareVersion"`

		BatteryPercentage *int     `json:"batteryPercentage"`
		IsOn              *bool    `json:"isOn"`
		SwitchLabel       *string  `json:"switchLabel"`
		LightLevel        *float64 `json:"lightLevel"`
		IsDetected        *bool    `json:"isDetected"`

		ColorTemperature    *int `json:"colorTemperature"`
		ColorTemperatureMin int  `json:"colorTemperatureMin"`
		ColorTemperatureMax int  `json:"colorTemperatureMax"`

		CurrentTemperature *float64 `json:"currentTemperature"`
		CurrentRH          *int     `json:"currentRH"`
		CurrentPM25        *int     `json:"currentPM25"`
		MaxMeasuredPM25    *int     `json:"maxMeasuredPM25"`
		MinMeasuredPM25    *int     `json:"minMeasuredPM25"`
		VOCIndex           *int     `json:"vocIndex"`
		CurrentCO2         *int     `json:"currentCO2"`
	} `json:"attributes"`
	Capabilities struct {
		CanSend    []string `json:"canSend"`
		CanReceive []string `json:"canReceive"`
	} `json:"capabilities"`
	Room *struct {
		ID   string `json:"id"`
		Name string `json:"name"`
	} `json:"room"`
}

func (r *deviceResource) toDevice() models.Device {
	d := models.Device{
		ID:              r.ID,
		DeviceType:      models.DeviceType(r.DeviceType),
		Name:            r.Attributes.CustomName,
		Model:           r.Attributes.Model,
		Manufacturer:    r.Attributes.Manufacturer,
		FirmwareVersion: r.Attributes.FirmwareVersion,
		Reachable:       r.IsReachable,
		Capabilities: models.Capabilities{
			CanSend:    r.Capabilities.CanSend,
			CanReceive: r.Capabilities.CanReceive,
		},
	}
	if d.Name == "" {
		d.Name = r.Attributes.Model
	}
	if r.Room != nil {
		d.RoomID = r.Room.ID
		d.RoomName = r.Room.Name
	}
	return d
}

func (r *deviceResource) toLight() *models.Light {
	light := &models.Light{
		Device:              r.toDevice(),
		ColorTemperature:    r.Attributes.ColorTemperature,
		ColorTemperatureMin: r.Attributes.ColorTemperatureMin,
		ColorTemperatureMax: r.Attributes.ColorTemperatureMax,
	}
	// The hub reports the Kelvin bounds coolest-first
	if light.ColorTemperatureMin > light.ColorTemperatureMax {
		light.ColorTemperatureMin, light.ColorTemperatureMax = light.ColorTemperatureMax, light.ColorTemperatureMin
	}
	if r.Attributes.IsOn != nil {
		light.IsOn = *r.Attributes.IsOn
	}
	if r.Attributes.LightLevel != nil {
		light.LightLevel = int(*r.Attributes.LightLevel)
	}
	return light
}

func (r *deviceResource) toController() *models.Controller {
	return &models.Controller{
		Device:            r.toDevice(),
		IsOn:              r.Attributes.IsOn,
		BatteryPercentage: r.Attributes.BatteryPercentage,
		SwitchLabel:       r.Attributes.SwitchLabel,
		ClickPatterns:     models.ClickPatternsFromCapabilities(r.Capabilities.CanSend),
		ButtonCount:       models.ButtonCountForModel(r.Attributes.Model),
	}
}

func (r *deviceResource) toMotionSensor() *models.MotionSensor {
	sensor := &models.MotionSensor{
		Device:            r.toDevice(),
		BatteryPercentage: r.Attributes.BatteryPercentage,
		IsOn:              r.Attributes.IsOn,
		LightLevel:        r.Attributes.LightLevel,
	}
	if r.Attributes.IsDetected != nil {
		sensor.IsDetected = *r.Attributes.IsDetected
	}
	return sensor
}

func (r *deviceResource) toEnvironmentSensor() *models.EnvironmentSensor {
	return &models.EnvironmentSensor{
		Device:             r.toDevice(),
		CurrentTemperature: r.Attributes.CurrentTemperature,
		CurrentRH:          r.Attributes.CurrentRH,
		CurrentPM25:        r.Attributes.CurrentPM25,
		MaxMeasuredPM25:    r.Attributes.MaxMeasuredPM25,
		MinMeasuredPM25:    r.Attributes.MinMeasuredPM25,
		VOCIndex:           r.Attributes.VOCIndex,
		BatteryPercentage:  r.Attributes.BatteryPercentage,
		CurrentCO2:         r.Attributes.CurrentCO2,
	}
}

// getDevices retrieves the raw device list
func (h *DirigeraHub) getDevices(ctx context.Context) (devices []deviceResource, err error) {
	resp, err := h.doRequest(ctx, "GET", "/devices", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get devices: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&devices); err != nil {
		return nil, fmt.Errorf("failed to decode devices response: %w", err)
	}
	return devices, nil
}

// getDevice retrieves a single raw device by id
func (h *DirigeraHub) getDevice(ctx context.Context, deviceID string) (device deviceResource, err error) {
	resp, err := h.doRequest(ctx, "GET", "/devices/"+deviceID, nil)
	if err != nil {
		return device, fmt.Errorf("failed to get device %s: %w", deviceID, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return device, err
	}

	if err := json.NewDecoder(resp.Body).Decode(&device); err != nil {
		return device, fmt.Errorf("failed to decode device response: %w", err)
	}
	return device, nil
}

// GetDevices retrieves every device as its shared base model
func (h *DirigeraHub) GetDevices(ctx context.Context) ([]models.Device, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, err
	}

	result := make([]models.Device, len(devices))
	for i := range devices {
		result[i] = devices[i].toDevice()
	}
	return result, nil
}

// GetLights retrieves all lights from the hub
func (h *DirigeraHub) GetLights(ctx context.Context) ([]*models.Light, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, err
	}

	var lights []*models.Light
	for i := range devices {
		if devices[i].DeviceType == string(models.DeviceTypeLight) {
			lights = append(lights, devices[i].toLight())
		}
	}
	return lights, nil
}

// GetControllers retrieves all controllers from the hub. Remotes carry
// the broad class in type ("controller") and the specific class in
// deviceType (lightController, shortcutController), so controllers are
// matched on the type field.
func (h *DirigeraHub) GetControllers(ctx context.Context) ([]*models.Controller, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, err
	}

	var controllers []*models.Controller
	for i := range devices {
		if isController(&devices[i]) {
			controllers = append(controllers, devices[i].toController())
		}
	}
	return controllers, nil
}

// isController matches remotes by their broad class, falling back to the
// specific deviceType classes for payloads that omit type.
func isController(r *deviceResource) bool {
	if r.Type == "controller" {
		return true
	}
	return models.DeviceType(r.DeviceType).IsControllerClass()
}

// GetMotionSensors retrieves all motion sensors from the hub. Both
// motionSensor and occupancySensor device types are included; MYGGSPRAY
// sensors report as occupancySensor.
func (h *DirigeraHub) GetMotionSensors(ctx context.Context) ([]*models.MotionSensor, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, err
	}

	var sensors []*models.MotionSensor
	for i := range devices {
		if models.DeviceType(devices[i].DeviceType).IsMotionClass() {
			sensors = append(sensors, devices[i].toMotionSensor())
		}
	}
	return sensors, nil
}

// GetMotionSensorByID fetches a motion sensor by id, accepting both
// motionSensor and occupancySensor device types.
func (h *DirigeraHub) GetMotionSensorByID(ctx context.Context, deviceID string) (*models.MotionSensor, error) {
	device, err := h.getDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if !models.DeviceType(device.DeviceType).IsMotionClass() {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotMotionSensor, deviceID, device.DeviceType)
	}
	return device.toMotionSensor(), nil
}

// GetEnvironmentSensors retrieves all environment sensors from the hub
func (h *DirigeraHub) GetEnvironmentSensors(ctx context.Context) ([]*models.EnvironmentSensor, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, err
	}

	var sensors []*models.EnvironmentSensor
	for i := range devices {
		if devices[i].DeviceType == string(models.DeviceTypeEnvironmentSensor) {
			sensors = append(sensors, devices[i].toEnvironmentSensor())
		}
	}
	return sensors, nil
}

// GetEnvironmentSensorByID fetches an environment sensor by id
func (h *DirigeraHub) GetEnvironmentSensorByID(ctx context.Context, deviceID string) (*models.EnvironmentSensor, error) {
	device, err := h.getDevice(ctx, deviceID)
	if err != nil {
		return nil, err
	}
	if device.DeviceType != string(models.DeviceTypeEnvironmentSensor) {
		return nil, fmt.Errorf("%w: %s is %s", ErrNotEnvironmentSensor, deviceID, device.DeviceType)
	}
	return device.toEnvironmentSensor(), nil
}

// patchAttributes sends an attribute update for a device. The hub expects
// a one-element array wrapping the attribute map.
func (h *DirigeraHub) patchAttributes(ctx context.Context, deviceID string, attrs map[string]any) (err error) {
	body, err := json.Marshal([]map[string]any{{"attributes": attrs}})
	if err != nil {
		return err
	}

	resp, err := h.doRequest(ctx, "PATCH", "/devices/"+deviceID, bytes.NewReader(body))
	if err != nil {
		return fmt.Errorf("failed to patch device %s: %w", deviceID, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	return checkStatus(resp)
}

// SetDeviceName renames a device. Devices whose capabilities lack
// customName cannot be renamed and fail fast.
func (h *DirigeraHub) SetDeviceName(ctx context.Context, device *models.Device, name string) error {
	if !device.SupportsRename() {
		return fmt.Errorf("%w: %s", ErrRenameUnsupported, device.ID)
	}
	if err := h.patchAttributes(ctx, device.ID, map[string]any{"customName": name}); err != nil {
		return err
	}
	device.Name = name
	return nil
}

// SetLightOn turns a light on or off
func (h *DirigeraHub) SetLightOn(ctx context.Context, lightID string, on bool) error {
	return h.patchAttributes(ctx, lightID, map[string]any{"isOn": on})
}

// SetLightLevel sets a light's level (1-100)
func (h *DirigeraHub) SetLightLevel(ctx context.Context, lightID string, level int) error {
	if level < 1 {
		level = 1
	}
	if level > 100 {
		level = 100
	}
	return h.patchAttributes(ctx, lightID, map[string]any{"lightLevel": level})
}

// SetColorTemperature sets a light's color temperature in Kelvin
func (h *DirigeraHub) SetColorTemperature(ctx context.Context, lightID string, kelvin int) error {
	return h.patchAttributes(ctx, lightID, map[string]any{"colorTemperature": kelvin})
}

// sceneResource represents a scene payload from the hub
type sceneResource struct {
	ID   string `json:"id"`
	Type string `json:"type"`
	Info struct {
		Name string `json:"name"`
		Icon string `json:"icon"`
	} `json:"info"`
	Triggers []struct {
		Type     string `json:"type"`
		Disabled bool   `json:"disabled"`
		Trigger  *struct {
			ControllerType string `json:"controllerType"`
			ClickPattern   string `json:"clickPattern"`
			ButtonIndex    int    `json:"buttonIndex"`
			DeviceID       string `json:"deviceId"`
		} `json:"trigger"`
	} `json:"triggers"`
	Actions []json.RawMessage `json:"actions"`
}

func (r *sceneResource) toModel() *models.Scene {
	scene := &models.Scene{
		ID:          r.ID,
		Name:        r.Info.Name,
		Icon:        r.Info.Icon,
		Type:        r.Type,
		ActionCount: len(r.Actions),
	}
	for _, t := range r.Triggers {
		trigger := models.SceneTrigger{
			Type:     t.Type,
			Disabled: t.Disabled,
		}
		if t.Trigger != nil {
			trigger.ControllerType = t.Trigger.ControllerType
			trigger.ClickPattern = t.Trigger.ClickPattern
			trigger.ButtonIndex = t.Trigger.ButtonIndex
			trigger.DeviceID = t.Trigger.DeviceID
		}
		scene.Triggers = append(scene.Triggers, trigger)
	}
	return scene
}

// GetScenes retrieves all scenes from the hub
func (h *DirigeraHub) GetScenes(ctx context.Context) (scenes []*models.Scene, err error) {
	resp, err := h.doRequest(ctx, "GET", "/scenes", nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get scenes: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var rawScenes []sceneResource
	if err := json.NewDecoder(resp.Body).Decode(&rawScenes); err != nil {
		return nil, fmt.Errorf("failed to decode scenes response: %w", err)
	}

	result := make([]*models.Scene, len(rawScenes))
	for i := range rawScenes {
		result[i] = rawScenes[i].toModel()
	}
	return result, nil
}

// GetScene retrieves a single scene by id
func (h *DirigeraHub) GetScene(ctx context.Context, sceneID string) (scene *models.Scene, err error) {
	resp, err := h.doRequest(ctx, "GET", "/scenes/"+sceneID, nil)
	if err != nil {
		return nil, fmt.Errorf("failed to get scene %s: %w", sceneID, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return nil, err
	}

	var raw sceneResource
	if err := json.NewDecoder(resp.Body).Decode(&raw); err != nil {
		return nil, fmt.Errorf("failed to decode scene response: %w", err)
	}
	return raw.toModel(), nil
}

// SceneInfo is the display metadata of a scene creation payload
type SceneInfo struct {
	Name string `json:"name"`
	Icon string `json:"icon"`
}

// TriggerDetails identifies the controller button and gesture of a trigger
type TriggerDetails struct {
	ControllerType string `json:"controllerType"`
	ClickPattern   string `json:"clickPattern"`
	ButtonIndex    int    `json:"buttonIndex"`
	DeviceID       string `json:"deviceId"`
}

// SceneTriggerRequest is one trigger of a scene creation payload
type SceneTriggerRequest struct {
	Type     string         `json:"type"`
	Disabled bool           `json:"disabled"`
	Trigger  TriggerDetails `json:"trigger"`
}

// CreateSceneRequest is the payload for POST /scenes
type CreateSceneRequest struct {
	Info     SceneInfo             `json:"info"`
	Type     string                `json:"type"`
	Triggers []SceneTriggerRequest `json:"triggers"`
	Actions  []json.RawMessage     `json:"actions"`
}

// CreateScene creates a scene on the hub and returns its id
func (h *DirigeraHub) CreateScene(ctx context.Context, req CreateSceneRequest) (sceneID string, err error) {
	if req.Actions == nil {
		// The hub rejects null actions; an empty array is required
		req.Actions = []json.RawMessage{}
	}

	body, err := json.Marshal(req)
	if err != nil {
		return "", err
	}

	slog.Debug("creating scene", "name", req.Info.Name)

	resp, err := h.doRequest(ctx, "POST", "/scenes/", bytes.NewReader(body))
	if err != nil {
		return "", fmt.Errorf("failed to create scene: %w", err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	if err := checkStatus(resp); err != nil {
		return "", err
	}

	var created struct {
		ID string `json:"id"`
	}
	if err := json.NewDecoder(resp.Body).Decode(&created); err != nil {
		return "", fmt.Errorf("failed to decode create scene response: %w", err)
	}
	return created.ID, nil
}

// DeleteScene deletes a scene by id
func (h *DirigeraHub) DeleteScene(ctx context.Context, sceneID string) (err error) {
	resp, err := h.doRequest(ctx, "DELETE", "/scenes/"+sceneID, nil)
	if err != nil {
		return fmt.Errorf("failed to delete scene %s: %w", sceneID, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	return checkStatus(resp)
}

// TriggerScene runs a scene's actions
func (h *DirigeraHub) TriggerScene(ctx context.Context, sceneID string) error {
	return h.postSceneAction(ctx, sceneID, "trigger")
}

// UndoScene reverts a scene's actions
func (h *DirigeraHub) UndoScene(ctx context.Context, sceneID string) error {
	return h.postSceneAction(ctx, sceneID, "undo")
}

func (h *DirigeraHub) postSceneAction(ctx context.Context, sceneID, action string) (err error) {
	resp, err := h.doRequest(ctx, "POST", fmt.Sprintf("/scenes/%s/%s", sceneID, action), nil)
	if err != nil {
		return fmt.Errorf("failed to %s scene %s: %w", action, sceneID, err)
	}
	defer func() {
		if cerr := resp.Body.Close(); cerr != nil && err == nil {
			err = fmt.Errorf("failed to close response body: %w", cerr)
		}
	}()

	return checkStatus(resp)
}

// assignDevicesToRooms buckets typed devices into rooms using the room
// reference each device carries. Devices without a room land in an
// "Unassigned" pseudo-room.
func assignDevicesToRooms(devices []deviceResource) []*models.Room {
	roomsByID := make(map[string]*models.Room)
	order := []string{}

	roomFor := func(d models.Device) *models.Room {
		id := d.RoomID
		name := d.RoomName
		if id == "" {
			id = "unassigned"
			name = "Unassigned"
		}
		room, ok := roomsByID[id]
		if !ok {
			room = &models.Room{ID: id, Name: name}
			roomsByID[id] = room
			order = append(order, id)
		}
		return room
	}

	for i := range devices {
		res := &devices[i]
		if isController(res) {
			c := res.toController()
			room := roomFor(c.Device)
			room.Controllers = append(room.Controllers, c)
			continue
		}
		switch models.DeviceType(res.DeviceType) {
		case models.DeviceTypeLight:
			light := res.toLight()
			room := roomFor(light.Device)
			room.Lights = append(room.Lights, light)
		case models.DeviceTypeMotionSensor, models.DeviceTypeOccupancySensor:
			s := res.toMotionSensor()
			room := roomFor(s.Device)
			room.MotionSensors = append(room.MotionSensors, s)
		case models.DeviceTypeEnvironmentSensor:
			s := res.toEnvironmentSensor()
			room := roomFor(s.Device)
			room.EnvironmentSensors = append(room.EnvironmentSensors, s)
		}
	}

	result := make([]*models.Room, 0, len(order))
	for _, id := range order {
		room := roomsByID[id]
		if room.DeviceCount() == 0 {
			continue
		}
		room.UpdateState()
		result = append(result, room)
	}

	sort.Slice(result, func(i, j int) bool {
		if result[i].ID == "unassigned" {
			return false
		}
		if result[j].ID == "unassigned" {
			return true
		}
		return result[i].Name < result[j].Name
	})

	return result
}

// FetchAll retrieves all rooms (with their devices) and scenes
func (h *DirigeraHub) FetchAll(ctx context.Context) ([]*models.Room, []*models.Scene, error) {
	devices, err := h.getDevices(ctx)
	if err != nil {
		return nil, nil, fmt.Errorf("failed to fetch devices: %w", err)
	}

	rooms := assignDevicesToRooms(devices)

	scenes, err := h.GetScenes(ctx)
	if err != nil {
		return rooms, nil, fmt.Errorf("failed to fetch scenes: %w", err)
	}

	return rooms, scenes, nil
}
