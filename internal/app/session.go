package app

import (
	"time"

	"go.uber.org/zap"

	"serial-radar.klederson.com/internal/distance"
	"serial-radar.klederson.com/internal/radar"
)

const historySize = 120

// LineSource yields framed lines without blocking for long. *serialport.Conn
// satisfies it.
type LineSource interface {
	Name() string
	ReadLine() ([]byte, bool)
	Close() error
}

// Session ties one open connection to the radar model. All of its methods
// run on the event loop.
type Session struct {
	src     LineSource
	model   *radar.Model
	history *radar.Ring[int]
	log     *zap.SugaredLogger

	lastTick time.Time
	accepted int
	rejected int
}

// NewSession creates a session that owns src.
func NewSession(src LineSource, model *radar.Model, log *zap.SugaredLogger) *Session {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	return &Session{
		src:     src,
		model:   model,
		history: radar.NewRing[int](historySize),
		log:     log.With("port", src.Name()),
	}
}

// Poll drains every complete line available now into the model and
// returns how many readings were accepted.
func (s *Session) Poll(now time.Time) int {
	n := 0
	for {
		line, ok := s.src.ReadLine()
		if !ok {
			return n
		}
		sample, ok := distance.Parse(line)
		if !ok {
			s.rejected++
			s.log.Debugw("Ignoring non-numeric line", "line", string(line))
			continue
		}
		s.model.Accept(sample, now)
		s.history.Push(sample.Cm)
		s.accepted++
		n++
	}
}

// Tick runs one frame: drain input, then advance the sweep by the time
// since the previous tick and expire old blips.
func (s *Session) Tick(now time.Time) {
	var elapsed time.Duration
	if !s.lastTick.IsZero() {
		elapsed = now.Sub(s.lastTick)
	}
	s.lastTick = now

	s.Poll(now)
	s.model.Advance(elapsed, now)
}

// Label returns the connection name shown to the user.
func (s *Session) Label() string {
	return s.src.Name()
}

// Model returns the radar model.
func (s *Session) Model() *radar.Model {
	return s.model
}

// History returns recent readings, oldest first.
func (s *Session) History() []int {
	return s.history.Values()
}

// Counts returns accepted and rejected line totals.
func (s *Session) Counts() (accepted, rejected int) {
	return s.accepted, s.rejected
}

// LastTick returns the time of the most recent Tick.
func (s *Session) LastTick() time.Time {
	return s.lastTick
}

// Frame snapshots the model for the renderer.
func (s *Session) Frame(g radar.Geometry) radar.Frame {
	return s.model.Frame(s.src.Name(), g, s.lastTick)
}

// Close releases the connection.
func (s *Session) Close() error {
	return s.src.Close()
}
