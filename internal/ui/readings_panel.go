package ui

import (
	"fmt"
	"math"
	"strings"
	"time"

	"github.com/charmbracelet/lipgloss"

	"serial-radar.klederson.com/internal/radar"
)

// Readings is what the side panel shows about the incoming data.
type Readings struct {
	LatestCm   int
	MaxRangeCm int
	History    []int // recent samples, oldest first; -1 for no echo
	Accepted   int
	Rejected   int
	Echoes     []radar.Blip
	Now        time.Time
}

// RenderReadingsPanel renders the latest distance, a range bar, a distance
// sparkline and the live echoes, newest first.
func RenderReadingsPanel(r Readings, width, height int) string {
	innerW := width - 4
	if innerW < 10 {
		innerW = 10
	}
	innerH := height - 2
	if innerH < 1 {
		innerH = 1
	}

	title := StylePanelTitle.Render(fmt.Sprintf("READINGS [%d]", len(r.Echoes)))
	sep := StyleSeparator.Render(strings.Repeat("-", innerW))
	lines := []string{title, sep}

	latest := "no echo"
	if r.LatestCm >= 0 {
		latest = fmt.Sprintf("%d cm", r.LatestCm)
	}
	fields := []struct{ label, value string }{
		{"Distance", latest},
		{"Lines", fmt.Sprintf("%d", r.Accepted)},
		{"Ignored", fmt.Sprintf("%d", r.Rejected)},
	}
	for _, f := range fields {
		lines = append(lines, StyleLabel.Render(fmt.Sprintf(" %-9s", f.label))+StyleValue.Render(f.value))
	}

	barWidth := innerW - 3
	if barWidth < 5 {
		barWidth = 5
	}
	lines = append(lines, " "+renderRangeBar(r.LatestCm, r.MaxRangeCm, barWidth), "")

	if spark := renderSparkline(echoValues(r.History), innerW-2); spark != "" {
		lines = append(lines, StyleLabel.Render(" History:"))
		lines = append(lines, " "+lipgloss.NewStyle().Foreground(ColorGreen).Render(spark), "")
	}

	lines = append(lines, StyleLabel.Render(" Echoes:"))
	if len(r.Echoes) == 0 {
		lines = append(lines, StyleHelp.Render("  waiting for data"))
	}
	for i := len(r.Echoes) - 1; i >= 0 && len(lines) < innerH; i-- {
		e := r.Echoes[i]
		lines = append(lines, StyleEcho.Render(fmt.Sprintf("  %3ddeg %4dcm %4.1fs",
			int(e.AngleDeg), int(e.DistanceCm), e.Age(r.Now).Seconds())))
	}

	if len(lines) > innerH {
		lines = lines[:innerH]
	}
	for len(lines) < innerH {
		lines = append(lines, "")
	}

	return StylePanelBorder.Width(width - 2).Height(innerH).Render(strings.Join(lines, "\n"))
}

func echoValues(history []int) []float64 {
	values := make([]float64, 0, len(history))
	for _, v := range history {
		if v >= 0 {
			values = append(values, float64(v))
		}
	}
	return values
}

func renderRangeBar(cm, maxRange, width int) string {
	ratio := 0.0
	if cm > 0 && maxRange > 0 {
		ratio = math.Min(float64(cm)/float64(maxRange), 1)
	}
	filled := int(math.Round(ratio * float64(width)))

	bar := strings.Repeat("|", filled) + strings.Repeat("-", width-filled)
	filledPart := StyleEcho.Render(bar[:filled])
	emptyPart := lipgloss.NewStyle().Foreground(ColorDimGreen).Render(bar[filled:])
	return StyleHelp.Render("[") + filledPart + emptyPart + StyleHelp.Render("]")
}

func renderSparkline(values []float64, width int) string {
	if len(values) == 0 || width <= 0 {
		return ""
	}

	chars := []byte{'_', '.', '-', '~', '^'}

	start := 0
	if len(values) > width {
		start = len(values) - width
	}
	values = values[start:]

	minV, maxV := values[0], values[0]
	for _, v := range values {
		minV = math.Min(minV, v)
		maxV = math.Max(maxV, v)
	}
	rng := maxV - minV
	if rng < 1 {
		rng = 1
	}

	var sb strings.Builder
	for _, v := range values {
		idx := int((v - minV) / rng * float64(len(chars)-1))
		idx = max(0, min(idx, len(chars)-1))
		sb.WriteByte(chars[idx])
	}
	return sb.String()
}
