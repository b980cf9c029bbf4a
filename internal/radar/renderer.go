package radar

import (
	"fmt"
	"math"
	"strings"

	"github.com/charmbracelet/lipgloss"

	"serial-radar.klederson.com/internal/config"
)

var (
	colorBright = lipgloss.Color("#00FF41")
	colorMid    = lipgloss.Color("#008F11")
	colorDim    = lipgloss.Color("#004A0A")
	colorSpoke  = lipgloss.Color("#006B0E")

	styleCenter = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleRing   = lipgloss.NewStyle().Foreground(colorMid)
	styleSpoke  = lipgloss.NewStyle().Foreground(colorSpoke)
	styleDot    = lipgloss.NewStyle().Foreground(colorDim)
	styleBeam   = lipgloss.NewStyle().Foreground(colorBright).Bold(true)
	styleLegend = lipgloss.NewStyle().Foreground(colorMid)
	styleEcho   = lipgloss.NewStyle().Foreground(lipgloss.Color("#FF3232")).Bold(true)
)

// Render produces the half-circle radar display as a styled string.
func Render(width, height int, f Frame, g Geometry) string {
	if width < 10 || height < 4 {
		return ""
	}

	sweep := &Sweep{AngleDeg: f.SweepAngle, Direction: f.SweepDirection}

	ringRadii := make([]float64, config.RingCount)
	for i := range ringRadii {
		ringRadii[i] = g.Radius * float64(i+1) / float64(config.RingCount)
	}

	// Brightest blip wins when two land on the same cell.
	blipCells := make(map[int]FrameBlip, len(f.Blips))
	for _, b := range f.Blips {
		col := int(math.Round(b.Pos.X))
		row := int(math.Round(b.Pos.Y))
		if col < 0 || col >= width || row < 0 || row >= height {
			continue
		}
		key := row*width + col
		if prev, ok := blipCells[key]; !ok || b.Alpha > prev.Alpha {
			blipCells[key] = b
		}
	}

	var sb strings.Builder
	for row := 0; row < height; row++ {
		for col := 0; col < width; col++ {
			if b, ok := blipCells[row*width+col]; ok {
				sb.WriteString(renderBlip(b.Alpha))
				continue
			}
			sb.WriteString(renderCell(col, row, g, ringRadii, sweep))
		}
		if row < height-1 {
			sb.WriteByte('\n')
		}
	}

	return sb.String()
}

func renderCell(col, row int, g Geometry, ringRadii []float64, sweep *Sweep) string {
	cx := int(math.Round(g.Center.X))
	cy := int(math.Round(g.Center.Y))
	if row > cy {
		return " "
	}

	dist, angle := g.Polar(Point{X: float64(col), Y: float64(row)})
	if dist > g.Radius+0.5 {
		return " "
	}

	if col == cx && row == cy {
		return styleCenter.Render("+")
	}

	if offLine(dist, angle, sweep.AngleDeg) < 0.6 {
		return styleBeam.Render(string(SpokeChar(sweep.AngleDeg)))
	}

	for _, ringR := range ringRadii {
		if math.Abs(dist-ringR) < 0.6 {
			return renderSweepChar(RingChar(angle), styleRing, sweep, angle)
		}
	}

	spoke := math.Round(angle/config.SpokeStepDeg) * config.SpokeStepDeg
	if offLine(dist, angle, spoke) < 0.5 {
		return renderSweepChar(SpokeChar(spoke), styleSpoke, sweep, angle)
	}

	return renderSweepChar('.', styleDot, sweep, angle)
}

// offLine is the perpendicular distance from a cell to the radial line at
// lineDeg, or +Inf when the cell is on the opposite side of the pivot.
func offLine(dist, angleDeg, lineDeg float64) float64 {
	delta := math.Abs(angleDeg-lineDeg) * math.Pi / 180
	if delta > math.Pi/2 {
		return math.Inf(1)
	}
	return dist * math.Sin(delta)
}

func renderBlip(alpha float64) string {
	ch := "o"
	if alpha > 0.7 {
		ch = "@"
	} else if alpha < 0.35 {
		ch = "."
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(blipColor(alpha))).Bold(alpha > 0.5).Render(ch)
}

// blipColor dims the echo red toward black as alpha falls.
func blipColor(alpha float64) string {
	if alpha < 0 {
		alpha = 0
	}
	if alpha > 1 {
		alpha = 1
	}
	return fmt.Sprintf("#%02X%02X%02X",
		int(math.Round(255*alpha)), int(math.Round(50*alpha)), int(math.Round(50*alpha)))
}

func renderSweepChar(ch rune, base lipgloss.Style, sweep *Sweep, angle float64) string {
	color := sweepColor(sweep.Intensity(angle))
	if color == "" {
		return base.Render(string(ch))
	}
	return lipgloss.NewStyle().Foreground(lipgloss.Color(color)).Render(string(ch))
}

func sweepColor(intensity float64) string {
	if intensity <= 0 {
		return ""
	}
	if intensity > 0.8 {
		return "#00FF41"
	}
	if intensity > 0.5 {
		return "#00CC33"
	}
	if intensity > 0.3 {
		return "#00AA22"
	}
	return "#005511"
}

// RenderLegend produces the radar legend line.
func RenderLegend(width int, maxRangeCm int) string {
	step := maxRangeCm / config.RingCount
	legend := styleEcho.Render("@ echo") +
		"  " +
		styleLegend.Render(fmt.Sprintf("rings every %dcm, range 0-%dcm", step, maxRangeCm))

	pad := (width - lipgloss.Width(legend)) / 2
	if pad < 0 {
		pad = 0
	}
	return strings.Repeat(" ", pad) + legend
}
