package styles

import (
	"github.com/charmbracelet/lipgloss"
)

// Color palette - blue/amber theme
var (
	// Primary colors
	ColorPrimary    = lipgloss.Color("#4C8BF5") // Blue
	ColorSecondary  = lipgloss.Color("#2F6BD8") // Darker blue
	ColorAccent     = lipgloss.Color("#FFD43B") // Amber accent
	ColorBackground = lipgloss.Color("#15181F") // Dark background
	ColorSurface    = lipgloss.Color("#232836") // Surface color
	ColorSurfaceAlt = lipgloss.Color("#323A4F") // Alternate surface

	// Text colors
	ColorText        = lipgloss.Color("#F5F6FA")
	ColorTextMuted   = lipgloss.Color("#9AA3B5")
	ColorTextDim     = lipgloss.Color("#626B7D")
	ColorTextInverse = lipgloss.Color("#15181F")

	// State colors
	ColorSuccess = lipgloss.Color("#6BCB77")
	ColorWarning = lipgloss.Color("#F6C744")
	ColorError   = lipgloss.Color("#EF6E6E")
	ColorInfo    = lipgloss.Color("#63B3ED")

	// Device states
	ColorLightOn  = lipgloss.Color("#FFD43B") // Warm amber for on
	ColorLightOff = lipgloss.Color("#49505F") // Gray for off

	// Battery thresholds
	ColorBatteryLow  = lipgloss.Color("#EF6E6E")
	ColorBatteryMid  = lipgloss.Color("#F6C744")
	ColorBatteryFull = lipgloss.Color("#6BCB77")
)

// levelGradient maps segment positions to a dim-to-bright ramp
var levelGradient = []lipgloss.Color{
	"#323A4F", "#3C4560", "#465071", "#505B82", "#5A6693",
	"#6471A4", "#6E7CB5", "#7887C6", "#8292D7", "#FFD43B",
}

// Styles for the UI components
var (
	StyleBase = lipgloss.NewStyle().
			Background(ColorBackground).
			Foreground(ColorText)

	StyleHeader = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			Background(ColorSurface).
			Padding(0, 2).
			MarginBottom(1)

	StyleRoomTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorAccent).
			MarginBottom(1)

	StyleStatusOn = lipgloss.NewStyle().
			Foreground(ColorLightOn).
			Bold(true)

	StyleStatusOff = lipgloss.NewStyle().
			Foreground(ColorLightOff)

	StyleDeviceName = lipgloss.NewStyle().
			Foreground(ColorText)

	StyleDeviceNameDim = lipgloss.NewStyle().
				Foreground(ColorTextMuted)

	StyleLevelBarEmpty = lipgloss.NewStyle().
				Foreground(ColorSurfaceAlt)

	StyleModal = lipgloss.NewStyle().
			Border(lipgloss.DoubleBorder()).
			BorderForeground(ColorPrimary).
			Background(ColorSurface).
			Padding(1, 2)

	StyleModalTitle = lipgloss.NewStyle().
			Bold(true).
			Foreground(ColorPrimary).
			MarginBottom(1)

	StyleInput = lipgloss.NewStyle().
			Border(lipgloss.NormalBorder()).
			BorderForeground(ColorSurfaceAlt).
			Padding(0, 1)

	StyleInputFocused = lipgloss.NewStyle().
				Border(lipgloss.NormalBorder()).
				BorderForeground(ColorPrimary).
				Padding(0, 1)

	StyleHelp = lipgloss.NewStyle().
			Foreground(ColorTextDim).
			MarginTop(1)

	StyleHelpKey = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	StyleSidePanel = lipgloss.NewStyle().
			Border(lipgloss.RoundedBorder()).
			BorderForeground(ColorPrimary).
			Padding(1, 2).
			Width(34)

	StyleSidePanelTitle = lipgloss.NewStyle().
				Bold(true).
				Foreground(ColorAccent).
				MarginBottom(1)

	StyleSceneItem = lipgloss.NewStyle().
			Foreground(ColorText).
			Padding(0, 1)

	StyleSceneItemSelected = lipgloss.NewStyle().
				Foreground(ColorTextInverse).
				Background(ColorPrimary).
				Padding(0, 1)

	StyleSpinner = lipgloss.NewStyle().
			Foreground(ColorPrimary)

	StyleError = lipgloss.NewStyle().
			Foreground(ColorError).
			Bold(true)

	StyleSuccess = lipgloss.NewStyle().
			Foreground(ColorSuccess).
			Bold(true)

	StyleTextMuted = lipgloss.NewStyle().
			Foreground(ColorTextMuted)

	StylePrimary = lipgloss.NewStyle().
			Foreground(ColorPrimary).
			Bold(true)
)

// LevelColor returns the gradient color for one segment of a 10-segment
// level bar.
func LevelColor(segment int) lipgloss.Color {
	if segment < 1 {
		segment = 1
	}
	if segment > len(levelGradient) {
		segment = len(levelGradient)
	}
	return levelGradient[segment-1]
}

// BatteryColor returns the color for a battery percentage
func BatteryColor(percent int) lipgloss.Color {
	switch {
	case percent <= 20:
		return ColorBatteryLow
	case percent <= 50:
		return ColorBatteryMid
	default:
		return ColorBatteryFull
	}
}
