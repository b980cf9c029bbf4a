package radar

import (
	"math"
	"time"

	"serial-radar.klederson.com/internal/config"
)

// Point is a screen position. Units are whatever the renderer uses:
// pixels, or terminal cells.
type Point struct {
	X, Y float64
}

// Geometry places the half-circle display on screen. The pivot sits at
// Center; 0 degrees points left, 90 straight up and 180 right.
type Geometry struct {
	Center     Point
	Radius     float64
	MaxRangeCm float64
	Aspect     float64 // vertical scale; 1 for square pixels
}

// TerminalGeometry fits the display into a width x height cell grid with
// the pivot on the bottom row.
func TerminalGeometry(width, height int, maxRangeCm float64) Geometry {
	cx := width / 2
	cy := height - 1
	radius := math.Min(float64(cx-1), float64(cy)/config.AspectRatio)
	if radius < 3 {
		radius = 3
	}
	return Geometry{
		Center:     Point{X: float64(cx), Y: float64(cy)},
		Radius:     radius,
		MaxRangeCm: maxRangeCm,
		Aspect:     config.AspectRatio,
	}
}

// RadiusFor maps a distance onto the display, capped at the outer ring.
func (g Geometry) RadiusFor(cm float64) float64 {
	if cm <= 0 || g.MaxRangeCm <= 0 {
		return 0
	}
	return math.Min(cm/g.MaxRangeCm, 1) * g.Radius
}

// Point returns the screen position r units from the pivot at angleDeg.
func (g Geometry) Point(angleDeg, r float64) Point {
	theta := (MaxAngleDeg - angleDeg) * math.Pi / 180
	aspect := g.Aspect
	if aspect == 0 {
		aspect = 1
	}
	return Point{
		X: g.Center.X + r*math.Cos(theta),
		Y: g.Center.Y - r*math.Sin(theta)*aspect,
	}
}

// Polar converts a screen position back to (distance from pivot, sweep
// angle in degrees), undoing the aspect correction. Points below the pivot
// return an angle outside [0, 180].
func (g Geometry) Polar(p Point) (float64, float64) {
	aspect := g.Aspect
	if aspect == 0 {
		aspect = 1
	}
	dx := p.X - g.Center.X
	dy := (g.Center.Y - p.Y) / aspect
	theta := math.Atan2(dy, dx) * 180 / math.Pi
	return math.Hypot(dx, dy), MaxAngleDeg - theta
}

// Alpha fades a blip linearly from 1 down to config.BlipAlphaMin over its
// lifetime.
func Alpha(age, lifetime time.Duration) float64 {
	if lifetime <= 0 {
		return config.BlipAlphaMin
	}
	t := 1 - float64(age)/float64(lifetime)
	if t > 1 {
		t = 1
	}
	if t < 0 {
		t = 0
	}
	return config.BlipAlphaMin + (1-config.BlipAlphaMin)*t
}

// RingChar returns the character for an arc segment at angleDeg.
func RingChar(angleDeg float64) rune {
	switch {
	case angleDeg < 22.5 || angleDeg > 157.5:
		return '|'
	case angleDeg < 67.5:
		return '/'
	case angleDeg <= 112.5:
		return '-'
	default:
		return '\\'
	}
}

// SpokeChar returns the character for a radial line at angleDeg.
func SpokeChar(angleDeg float64) rune {
	switch {
	case angleDeg < 22.5 || angleDeg > 157.5:
		return '-'
	case angleDeg < 67.5:
		return '\\'
	case angleDeg <= 112.5:
		return '|'
	default:
		return '/'
	}
}
