package models

// DeviceType identifies the hub-side device class of a device. For
// remotes the hub puts the broad class in the payload's type field
// ("controller") and the specific class here.
type DeviceType string

const (
	DeviceTypeLight              DeviceType = "light"
	DeviceTypeLightController    DeviceType = "lightController"
	DeviceTypeShortcutController DeviceType = "shortcutController"
	DeviceTypeSoundController    DeviceType = "soundController"
	DeviceTypeMotionSensor       DeviceType = "motionSensor"
	DeviceTypeOccupancySensor    DeviceType = "occupancySensor"
	DeviceTypeEnvironmentSensor  DeviceType = "environmentSensor"
	DeviceTypeOutlet             DeviceType = "outlet"
	DeviceTypeGateway            DeviceType = "gateway"
)

// IsMotionClass reports whether the device type belongs to the logical
// motion-sensor class. MYGGSPRAY-style devices report as occupancySensor
// but behave like motion sensors, so both types count.
func (t DeviceType) IsMotionClass() bool {
	return t == DeviceTypeMotionSensor || t == DeviceTypeOccupancySensor
}

// IsControllerClass reports whether the device type is one of the hub's
// remote-controller classes.
func (t DeviceType) IsControllerClass() bool {
	switch t {
	case DeviceTypeLightController, DeviceTypeShortcutController, DeviceTypeSoundController:
		return true
	}
	return false
}

// Capabilities lists what a device can emit and accept
type Capabilities struct {
	CanSend    []string
	CanReceive []string
}

// CanReceiveAttribute reports whether the device accepts writes to the
// given attribute (e.g. "customName", "isOn").
func (c Capabilities) CanReceiveAttribute(name string) bool {
	for _, a := range c.CanReceive {
		if a == name {
			return true
		}
	}
	return false
}

// Device carries the attributes shared by every DIRIGERA device
type Device struct {
	// Unique identifier from the hub
	ID string
	// Device class reported by the hub
	DeviceType DeviceType
	// User-assigned name (customName attribute)
	Name string
	// Hardware model (e.g. "RODRET Dimmer")
	Model string
	// Manufacturer string, usually "IKEA of Sweden"
	Manufacturer string
	// Firmware version currently installed
	FirmwareVersion string
	// Whether the hub can currently reach the device
	Reachable bool
	// Declared send/receive capabilities
	Capabilities Capabilities
	// Room the device is assigned to (empty if unassigned)
	RoomID   string
	RoomName string
}

// SupportsRename reports whether the device accepts a customName write.
func (d *Device) SupportsRename() bool {
	return d.Capabilities.CanReceiveAttribute("customName")
}
