package models

// Light represents a light registered on the hub
type Light struct {
	Device
	// Current on/off state
	IsOn bool
	// Light level percentage (1-100)
	LightLevel int
	// Color temperature in Kelvin (nil for fixed-white lights)
	ColorTemperature *int
	// Kelvin range supported by the light. DIRIGERA reports min as the
	// warmest (lowest) value and max as the coolest.
	ColorTemperatureMin int
	ColorTemperatureMax int
}

// SupportsColorTemperature reports whether the light accepts Kelvin writes.
func (l *Light) SupportsColorTemperature() bool {
	return l.ColorTemperature != nil && l.Capabilities.CanReceiveAttribute("colorTemperature")
}

// SetLevel clamps and stores a light level percentage. The hub rejects 0;
// off is a separate isOn write.
func (l *Light) SetLevel(pct int) {
	if pct < 1 {
		pct = 1
	}
	if pct > 100 {
		pct = 100
	}
	l.LightLevel = pct
}

// Clone creates a deep copy of the light
func (l *Light) Clone() *Light {
	clone := *l
	if l.ColorTemperature != nil {
		ct := *l.ColorTemperature
		clone.ColorTemperature = &ct
	}
	return &clone
}
