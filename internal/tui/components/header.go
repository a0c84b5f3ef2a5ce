package components

import (
	"strings"

	"github.com/charmbracelet/lipgloss"

	"github.com/skarby/dirigera-tui/internal/tui/styles"
)

// RenderHeader renders the application header with connection status
func RenderHeader(width int, status string) string {
	title := " dirigera-tui "

	titleStyle := lipgloss.NewStyle().
		Bold(true).
		Foreground(styles.ColorTextInverse).
		Background(styles.ColorPrimary).
		Padding(0, 1)

	statusStyle := lipgloss.NewStyle().
		Foreground(styles.ColorSuccess).
		Padding(0, 1)

	if status == "" {
		status = "Disconnected"
		statusStyle = statusStyle.Foreground(styles.ColorError)
	}

	left := titleStyle.Render(title)
	right := statusStyle.Render(status)

	spacing := width - lipgloss.Width(left) - lipgloss.Width(right)
	if spacing < 0 {
		spacing = 0
	}

	headerBg := lipgloss.NewStyle().
		Background(styles.ColorSurface).
		Width(width)

	return headerBg.Render(left + strings.Repeat(" ", spacing) + right)
}
