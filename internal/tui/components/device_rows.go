package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/models"
	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

// RenderRoomHeader renders a room header line with its aggregate state
func RenderRoomHeader(room *models.Room, selected bool) string {
	var b strings.Builder

	nameStyle := styles.StyleRoomTitle
	if selected {
		nameStyle = nameStyle.Foreground(styles.ColorPrimary)
	}
	b.WriteString(nameStyle.Render(room.Name))

	if room.AllOn {
		b.WriteString(styles.StyleStatusOn.Render(" (all on)"))
	} else if room.AnyOn {
		on := 0
		for _, light := range room.Lights {
			if light.IsOn {
				on++
			}
		}
		b.WriteString(styles.StyleStatusOn.Render(fmt.Sprintf(" (%d on)", on)))
	}

	b.WriteString(styles.StyleTextMuted.Render(fmt.Sprintf(" [%d devices]", room.DeviceCount())))
	return b.String()
}

// RenderLightRow renders one light as a list row
func RenderLightRow(light *models.Light, selected bool, width int) string {
	statusIcon := "○"
	statusStyle := styles.StyleStatusOff
	if light.IsOn {
		statusIcon = "●"
		statusStyle = styles.StyleStatusOn
	}

	nameStyle := styles.StyleDeviceName
	if !light.IsOn {
		nameStyle = styles.StyleDeviceNameDim
	}

	cursor := "  "
	if selected {
		cursor = "> "
		nameStyle = nameStyle.Foreground(styles.ColorPrimary)
	}

	row := cursor + statusStyle.Render(statusIcon) + " " + nameStyle.Render(Truncate(light.Name, width-24))

	padding := width - 18 - lipgloss.Width(row)
	if padding > 0 {
		row += strings.Repeat(" ", padding)
	}
	return row + " " + RenderLevelBar(light.LightLevel, light.IsOn) + fmt.Sprintf(" %3d%%", light.LightLevel)
}

// RenderControllerRow renders one remote controller as a list row
func RenderControllerRow(c *models.Controller, selected bool, provisioned int, width int) string {
	nameStyle := styles.StyleDeviceName
	cursor := "  "
	if selected {
		cursor = "> "
		nameStyle = nameStyle.Foreground(styles.ColorPrimary)
	}

	label := c.Name
	if c.SwitchLabel != nil {
		label += " (" + *c.SwitchLabel + ")"
	}

	badge := styles.StyleTextMuted.Render(fmt.Sprintf(" %d-button", c.ButtonCount))
	events := styles.StyleTextMuted.Render("  events: off")
	if provisioned > 0 {
		events = styles.StyleSuccess.Render(fmt.Sprintf("  events: on (%d)", provisioned))
	}

	row := cursor + "◇ " + nameStyle.Render(Truncate(label, width-30)) + badge + events
	if c.BatteryPercentage != nil {
		padding := width - 18 - lipgloss.Width(row)
		if padding > 0 {
			row += strings.Repeat(" ", padding)
		}
		row += " " + RenderBatteryBar(*c.BatteryPercentage)
	}
	return row
}

// RenderMotionSensorRow renders one motion or occupancy sensor row
func RenderMotionSensorRow(s *models.MotionSensor, selected bool, width int) string {
	nameStyle := styles.StyleDeviceName
	cursor := "  "
	if selected {
		cursor = "> "
		nameStyle = nameStyle.Foreground(styles.ColorPrimary)
	}

	state := styles.StyleTextMuted.Render("  clear")
	if s.IsDetected {
		state = styles.StyleStatusOn.Render("  motion")
	}

	return cursor + "◎ " + nameStyle.Render(Truncate(s.Name, width-24)) + state
}

// RenderEnvironmentSensorRow renders one air quality sensor row with its
// headline readings.
func RenderEnvironmentSensorRow(s *models.EnvironmentSensor, selected bool, width int) string {
	nameStyle := styles.StyleDeviceName
	cursor := "  "
	if selected {
		cursor = "> "
		nameStyle = nameStyle.Foreground(styles.ColorPrimary)
	}

	var readings []string
	if s.CurrentTemperature != nil {
		readings = append(readings, fmt.Sprintf("%.1f°C", *s.CurrentTemperature))
	}
	if s.CurrentRH != nil {
		readings = append(readings, fmt.Sprintf("%d%%RH", *s.CurrentRH))
	}
	if s.CurrentCO2 != nil {
		readings = append(readings, fmt.Sprintf("%d ppm CO2", *s.CurrentCO2))
	}
	if s.CurrentPM25 != nil {
		readings = append(readings, fmt.Sprintf("PM2.5 %d", *s.CurrentPM25))
	}

	summary := ""
	if len(readings) > 0 {
		summary = styles.StyleTextMuted.Render("  " + strings.Join(readings, "  "))
	}
	return cursor + "◍ " + nameStyle.Render(Truncate(s.Name, width-30)) + summary
}

// Truncate shortens a string to maxLen with an ellipsis
func Truncate(s string, maxLen int) string {
	if maxLen < 1 {
		return ""
	}
	if len(s) <= maxLen {
		return s
	}
	if maxLen < 4 {
		return s[:maxLen]
	}
	return s[:maxLen-3] + "..."
}
