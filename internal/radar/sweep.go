package radar

import (
	"math"
	"time"
)

const (
	MinAngleDeg = 0.0
	MaxAngleDeg = 180.0

	// Beam trail width, for rendering only.
	trailDeg = 25.0
)

// Sweep is the virtual beam. It bounces between 0 and 180 degrees and has
// nothing to do with where the physical sensor points.
type Sweep struct {
	AngleDeg  float64 // [0, 180]
	Direction int     // +1 or -1
	SpeedDeg  float64 // degrees per second
}

// NewSweep creates a sweep at 0 degrees moving toward 180.
func NewSweep(speedDeg float64) *Sweep {
	return &Sweep{
		AngleDeg:  MinAngleDeg,
		Direction: 1,
		SpeedDeg:  math.Abs(speedDeg),
	}
}

// Advance moves the beam by elapsed time. The angle stops at a boundary
// and the direction flips there; it never passes 0 or 180.
func (s *Sweep) Advance(elapsed time.Duration) {
	if elapsed <= 0 {
		return
	}

	s.AngleDeg += float64(s.Direction) * math.Abs(s.SpeedDeg) * elapsed.Seconds()
	if s.AngleDeg >= MaxAngleDeg {
		s.AngleDeg = MaxAngleDeg
		s.Direction = -1
	}
	if s.AngleDeg <= MinAngleDeg {
		s.AngleDeg = MinAngleDeg
		s.Direction = 1
	}
}

// Intensity returns the glow [0, 1] for a cell at angleDeg. The trail sits
// behind the beam, so it switches sides when the sweep reverses.
func (s *Sweep) Intensity(angleDeg float64) float64 {
	behind := (s.AngleDeg - angleDeg) * float64(s.Direction)
	if behind < 0 || behind > trailDeg {
		return 0
	}
	return 1.0 - behind/trailDeg
}
