package ui

import (
	"fmt"
	"strings"

	"github.com/charmbracelet/lipgloss"
)

// RenderStatusBar renders the bottom status bar: port, virtual angle and
// the latest distance.
func RenderStatusBar(width int, port string, sweepDeg float64, latestCm, blips int) string {
	status := ""
	if latestCm < 0 {
		status = StyleStatusNoEcho.Render("[NO ECHO]")
	} else {
		status = StyleStatusLive.Render("[ECHO]")
	}

	info := fmt.Sprintf(" Port: %s  Virtual Angle: %d deg  Distance: %d cm  Blips: %d",
		port, int(sweepDeg), latestCm, blips)

	content := status + StyleStatusBar.Foreground(ColorGreen).Render(info)

	gap := width - 2 - lipgloss.Width(content)
	if gap < 0 {
		gap = 0
	}

	return StyleStatusBar.Width(width).Render(content + strings.Repeat(" ", gap))
}
