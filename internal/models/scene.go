package models

// SceneTrigger is one trigger attached to a scene. For controller
// triggers the detail fields identify the button and gesture.
type SceneTrigger struct {
	// Trigger type, e.g. "controller" or "app"
	Type     string
	Disabled bool
	// Controller trigger detail (zero values for non-controller triggers)
	ControllerType string
	ClickPattern   string
	ButtonIndex    int
	DeviceID       string
}

// Scene represents a DIRIGERA scene
type Scene struct {
	// Unique identifier from the hub
	ID string
	// Display name from info.name
	Name string
	// Icon from info.icon
	Icon string
	// Scene type, e.g. "userScene" or "customScene"
	Type string
	// Triggers attached to the scene
	Triggers []SceneTrigger
	// Number of actions. Provisioned event scenes always have zero.
	ActionCount int
}

// ScenesByTriggerDevice groups scenes by the device id of their first
// controller trigger. Scenes without a controller trigger group under "".
func ScenesByTriggerDevice(scenes []*Scene) map[string][]*Scene {
	grouped := make(map[string][]*Scene)
	for _, scene := range scenes {
		key := ""
		for _, trig := range scene.Triggers {
			if trig.Type == "controller" && trig.DeviceID != "" {
				key = trig.DeviceID
				break
			}
		}
		grouped[key] = append(grouped[key], scene)
	}
	return grouped
}
