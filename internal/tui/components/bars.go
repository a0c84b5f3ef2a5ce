package components

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

const barSegments = 10

// RenderLevelBar renders a 10-segment light level bar
func RenderLevelBar(level int, on bool) string {
	if !on {
		return styles.StyleLevelBarEmpty.Render(strings.Repeat("─", barSegments))
	}

	segments := level / barSegments
	if level > 0 && segments == 0 {
		segments = 1
	}

	var b strings.Builder
	for i := 1; i <= barSegments; i++ {
		if i <= segments {
			b.WriteString(lipgloss.NewStyle().Foreground(styles.LevelColor(i)).Render("█"))
		} else {
			b.WriteString(styles.StyleLevelBarEmpty.Render("─"))
		}
	}
	return b.String()
}

// RenderBatteryBar renders a battery percentage as a short bar with a
// threshold color.
func RenderBatteryBar(percent int) string {
	if percent < 0 {
		percent = 0
	}
	if percent > 100 {
		percent = 100
	}

	segments := percent / barSegments
	if percent > 0 && segments == 0 {
		segments = 1
	}

	color := styles.BatteryColor(percent)
	var b strings.Builder
	for i := 1; i <= barSegments; i++ {
		if i <= segments {
			b.WriteString(lipgloss.NewStyle().Foreground(color).Render("▮"))
		} else {
			b.WriteString(styles.StyleLevelBarEmpty.Render("▯"))
		}
	}
	b.WriteString(styles.StyleTextMuted.Render(fmt.Sprintf(" %3d%%", percent)))
	return b.String()
}
