package models

import "strings"

// buttonCounts maps controller hardware models to their physical button
// count. The hub does not report this; without a match a controller is
// assumed to be a single button.
var buttonCounts = map[string]int{
	"RODRET Dimmer":               2,
	"SOMRIG shortcut button":      2,
	"Remote Control N2":           4, // STYRBAR
	"STYRBAR Short-cut button":    4,
	"TRADFRI on/off switch":       2,
	"TRADFRI SHORTCUT Button":     1,
	"TRADFRI remote control":      5,
	"SYMFONISK sound remote gen2": 4,
}

// ButtonCountForModel returns the number of physical buttons for a
// controller model, defaulting to 1 for unknown models.
func ButtonCountForModel(model string) int {
	if n, ok := buttonCounts[model]; ok && n > 0 {
		return n
	}
	// Some firmware versions append revision suffixes to the model string
	for known, n := range buttonCounts {
		if n > 0 && strings.HasPrefix(model, known) {
			return n
		}
	}
	return 1
}
