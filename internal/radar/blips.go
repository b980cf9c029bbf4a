package radar

import "time"

// Blip is one echo, pinned to the sweep angle at the moment it arrived.
type Blip struct {
	AngleDeg   float64
	DistanceCm float64
	CreatedAt  time.Time
}

// Age returns how long ago the blip was created.
func (b Blip) Age(now time.Time) time.Duration {
	return now.Sub(b.CreatedAt)
}

// Alive reports whether the blip is still younger than lifetime.
func (b Blip) Alive(now time.Time, lifetime time.Duration) bool {
	return b.Age(now) < lifetime
}
