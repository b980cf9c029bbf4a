package app

import "time"

// TickMsg triggers a frame: drain serial lines, advance the sweep, redraw.
type TickMsg time.Time
