package models

// MotionSensor represents a motion or occupancy sensor.
//
// MYGGSPRAY occupancy sensors omit isOn entirely, and VALLHORN only
// reports lightLevel outdoors, so those attributes are optional.
type MotionSensor struct {
	Device
	// Battery level 0-100 (nil if not reported)
	BatteryPercentage *int
	// Whether motion-triggered control is enabled (nil on occupancy sensors)
	IsOn *bool
	// Ambient light level in lux (nil if the model has no light sensor)
	LightLevel *float64
	// Whether motion is currently detected
	IsDetected bool
}

// EnvironmentSensor represents an air-quality sensor.
//
// Every reading is optional: VINDSTYRKA has no CO2, ALPSTUGA adds
// currentCO2, and older firmware drops fields intermittently.
type EnvironmentSensor struct {
	Device
	// Temperature in °C
	CurrentTemperature *float64
	// Relative humidity percentage
	CurrentRH *int
	// PM2.5 in µg/m³, with observed extremes
	CurrentPM25     *int
	MaxMeasuredPM25 *int
	MinMeasuredPM25 *int
	// Sensirion VOC index (1-500)
	VOCIndex *int
	// Battery level 0-100
	BatteryPercentage *int
	// CO2 concentration in ppm (ALPSTUGA only)
	CurrentCO2 *int
}

// HasAirQuality reports whether the sensor exposes at least one
// particulate or gas reading.
func (s *EnvironmentSensor) HasAirQuality() bool {
	return s.CurrentPM25 != nil || s.VOCIndex != nil || s.CurrentCO2 != nil
}
