package models

import (
	"strconv"
	"strings"
)

// Controller represents a remote or shortcut button registered on the hub.
//
// The optional attributes are pointers: DIRIGERA firmware omits them for
// some controller models, and absent must stay distinguishable from zero.
type Controller struct {
	Device
	// Whether the controller reports an on/off state (nil if not exposed)
	IsOn *bool
	// Battery level 0-100 (nil for mains-powered or not yet reported)
	BatteryPercentage *int
	// Label of the switch half on dual controllers (nil if absent)
	SwitchLabel *string
	// Click patterns the controller can emit, from capabilities.canSend
	// (e.g. "singlePress", "doublePress", "longPress")
	ClickPatterns []string
	// Number of physical buttons, derived from the model table
	ButtonCount int
}

// knownClickPatterns are the gesture tokens the hub understands. Other
// canSend entries (battery reports etc.) are not click patterns.
var knownClickPatterns = map[string]bool{
	"singlePress": true,
	"doublePress": true,
	"longPress":   true,
}

// ClickPatternsFromCapabilities filters canSend down to gesture tokens.
func ClickPatternsFromCapabilities(canSend []string) []string {
	var patterns []string
	for _, c := range canSend {
		if knownClickPatterns[c] {
			patterns = append(patterns, c)
		}
	}
	return patterns
}

// PhysicalID strips the logical sub-controller suffix (e.g. "_2") from a
// controller id. Controllers exposing several logical ids per physical
// device share the prefix.
func PhysicalID(controllerID string) string {
	idx := strings.LastIndex(controllerID, "_")
	if idx <= 0 {
		return controllerID
	}
	if _, err := strconv.Atoi(controllerID[idx+1:]); err != nil {
		return controllerID
	}
	return controllerID[:idx]
}
