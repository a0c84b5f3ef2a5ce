package models

// Room represents a DIRIGERA room. Rooms are not a standalone resource on
// the hub; they are carried inside device payloads and assembled here.
type Room struct {
	// Unique identifier from the hub
	ID string
	// User-friendly name
	Name string
	// Lights assigned to this room
	Lights []*Light
	// Controllers assigned to this room
	Controllers []*Controller
	// Motion and occupancy sensors assigned to this room
	MotionSensors []*MotionSensor
	// Environment sensors assigned to this room
	EnvironmentSensors []*EnvironmentSensor
	// Calculated state: all lights are on
	AllOn bool
	// Calculated state: at least one light is on
	AnyOn bool
}

// UpdateState recalculates AllOn and AnyOn based on light states
func (r *Room) UpdateState() {
	if len(r.Lights) == 0 {
		r.AllOn = false
		r.AnyOn = false
		return
	}

	r.AllOn = true
	r.AnyOn = false

	for _, light := range r.Lights {
		if light.IsOn {
			r.AnyOn = true
		} else {
			r.AllOn = false
		}
	}
}

// LightByID finds a light in this room by ID
func (r *Room) LightByID(id string) *Light {
	for _, light := range r.Lights {
		if light.ID == id {
			return light
		}
	}
	return nil
}

// DeviceCount returns the number of devices assigned to the room.
func (r *Room) DeviceCount() int {
	return len(r.Lights) + len(r.Controllers) + len(r.MotionSensors) + len(r.EnvironmentSensors)
}

// AverageLevel returns the average light level of all lights that are on
func (r *Room) AverageLevel() int {
	var total int
	var count int
	for _, light := range r.Lights {
		if light.IsOn {
			total += light.LightLevel
			count++
		}
	}

	if count == 0 {
		return 0
	}
	return total / count
}
