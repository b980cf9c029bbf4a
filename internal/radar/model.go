package radar

import (
	"time"

	"serial-radar.klederson.com/internal/config"
	"serial-radar.klederson.com/internal/distance"
)

// FrameBlip is a blip resolved to screen space.
type FrameBlip struct {
	Pos        Point
	DistanceCm float64
	Alpha      float64
}

// Frame is everything the renderer needs for one draw.
type Frame struct {
	ConnectionLabel  string
	SweepAngle       float64
	SweepDirection   int
	LatestDistanceCm int
	Blips            []FrameBlip
}

// Model owns the sweep and the blips. It is not safe for concurrent use;
// the event loop is its only caller.
type Model struct {
	sweep    *Sweep
	blips    *Ring[Blip]
	lifetime time.Duration
	latestCm int
	created  int
}

// NewModel creates a model whose sweep moves at speedDeg degrees per second.
func NewModel(speedDeg float64) *Model {
	return &Model{
		sweep:    NewSweep(speedDeg),
		blips:    NewRing[Blip](config.BlipCapacity),
		lifetime: config.BlipLifetime,
		latestCm: distance.NoEcho,
	}
}

// Accept records a reading. Any reading becomes the latest distance; only
// real echoes leave a blip, placed at the current sweep angle.
func (m *Model) Accept(s distance.Sample, now time.Time) {
	m.latestCm = s.Cm
	if !s.HasEcho() {
		return
	}
	m.blips.Push(Blip{
		AngleDeg:   m.sweep.AngleDeg,
		DistanceCm: float64(s.Cm),
		CreatedAt:  now,
	})
	m.created++
}

// Advance moves the sweep and drops expired blips.
func (m *Model) Advance(elapsed time.Duration, now time.Time) {
	m.sweep.Advance(elapsed)
	m.Purge(now)
}

// Purge removes blips that have reached their lifetime and returns how
// many were removed.
func (m *Model) Purge(now time.Time) int {
	return m.blips.Retain(func(b Blip) bool {
		return b.Alive(now, m.lifetime)
	})
}

// Blips returns the blips still alive at now, oldest first.
func (m *Model) Blips(now time.Time) []Blip {
	all := m.blips.Values()
	live := all[:0]
	for _, b := range all {
		if b.Alive(now, m.lifetime) {
			live = append(live, b)
		}
	}
	return live
}

// Clear removes every blip.
func (m *Model) Clear() {
	m.blips.Clear()
}

// SweepAngle returns the current beam angle in degrees.
func (m *Model) SweepAngle() float64 {
	return m.sweep.AngleDeg
}

// LatestCm returns the last accepted reading, or -1 before any.
func (m *Model) LatestCm() int {
	return m.latestCm
}

// BlipsCreated counts every blip ever pushed, including evicted ones.
func (m *Model) BlipsCreated() int {
	return m.created
}

// Lifetime returns how long a blip stays visible.
func (m *Model) Lifetime() time.Duration {
	return m.lifetime
}

// Frame resolves the model to screen space for one draw.
func (m *Model) Frame(label string, g Geometry, now time.Time) Frame {
	live := m.Blips(now)
	f := Frame{
		ConnectionLabel:  label,
		SweepAngle:       m.sweep.AngleDeg,
		SweepDirection:   m.sweep.Direction,
		LatestDistanceCm: m.latestCm,
		Blips:            make([]FrameBlip, 0, len(live)),
	}
	for _, b := range live {
		f.Blips = append(f.Blips, FrameBlip{
			Pos:        g.Point(b.AngleDeg, g.RadiusFor(b.DistanceCm)),
			DistanceCm: b.DistanceCm,
			Alpha:      Alpha(b.Age(now), m.lifetime),
		})
	}
	return f
}
