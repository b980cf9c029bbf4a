package serialport

import (
	"errors"
	"fmt"
	"math"
	"math/rand"
	"sync"
	"time"

	"go.bug.st/serial"

	"serial-radar.klederson.com/internal/config"
)

const simBootDelay = 300 * time.Millisecond

// simTarget is one fake obstacle the simulated sensor "sees".
type simTarget struct {
	baseCm    float64
	amplitude float64
	phase     float64
	period    float64 // seconds
}

// SimPort pretends to be an Arduino running the radar sketch: after power
// up or a DTR reset it prints a boot banner and the signature, then streams
// one distance per line.
type SimPort struct {
	mu sync.Mutex

	signature   string
	interval    time.Duration
	readTimeout time.Duration
	targets     []simTarget

	dtr      bool
	bootAt   time.Time
	booted   bool
	nextLine time.Time
	started  time.Time
	pending  []byte
	closed   bool

	now   func() time.Time
	sleep func(time.Duration)
}

// NewSimPort creates a simulated device that boots shortly after creation.
func NewSimPort(signature string) *SimPort {
	targets := make([]simTarget, 3+rand.Intn(3))
	for i := range targets {
		targets[i] = simTarget{
			baseCm:    40 + rand.Float64()*220,
			amplitude: 10 + rand.Float64()*40,
			phase:     rand.Float64() * 2 * math.Pi,
			period:    3 + rand.Float64()*6,
		}
	}

	now := time.Now()
	return &SimPort{
		signature:   signature,
		interval:    config.DemoLineInterval,
		readTimeout: config.ReadTimeout,
		targets:     targets,
		dtr:         true,
		bootAt:      now.Add(simBootDelay),
		started:     now,
		now:         time.Now,
		sleep:       time.Sleep,
	}
}

func (p *SimPort) Read(b []byte) (int, error) {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return 0, errors.New("serial port closed")
	}

	p.generate(p.now())
	if len(p.pending) == 0 {
		// Behave like a read timeout on a quiet line.
		timeout := p.readTimeout
		p.mu.Unlock()
		p.sleep(timeout)
		p.mu.Lock()
		if p.closed {
			return 0, errors.New("serial port closed")
		}
		p.generate(p.now())
	}

	n := copy(b, p.pending)
	p.pending = p.pending[n:]
	return n, nil
}

func (p *SimPort) generate(now time.Time) {
	if !p.dtr {
		return
	}
	if !p.booted {
		if now.Before(p.bootAt) {
			return
		}
		p.booted = true
		p.pending = append(p.pending, "BOOT\r\n"+p.signature+"\r\n"...)
		p.nextLine = now
	}

	// Don't replay a long backlog after a stall.
	if now.Sub(p.nextLine) > time.Second {
		p.nextLine = now
	}
	for !now.Before(p.nextLine) {
		p.pending = append(p.pending, p.reading(p.nextLine)...)
		p.nextLine = p.nextLine.Add(p.interval)
	}
}

func (p *SimPort) reading(at time.Time) string {
	if rand.Float64() < 0.08 {
		return "-1\r\n"
	}
	t := at.Sub(p.started).Seconds()
	tg := p.targets[rand.Intn(len(p.targets))]
	cm := tg.baseCm + tg.amplitude*math.Sin(2*math.Pi*t/tg.period+tg.phase) + (rand.Float64()-0.5)*6
	if cm < 2 {
		cm = 2
	}
	return fmt.Sprintf("%d\r\n", int(cm))
}

func (p *SimPort) SetDTR(dtr bool) error {
	p.mu.Lock()
	defer p.mu.Unlock()

	if p.closed {
		return errors.New("serial port closed")
	}
	if dtr && !p.dtr {
		p.booted = false
		p.bootAt = p.now().Add(simBootDelay)
	}
	if !dtr {
		p.pending = nil
	}
	p.dtr = dtr
	return nil
}

func (p *SimPort) SetReadTimeout(t time.Duration) error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.readTimeout = t
	return nil
}

func (p *SimPort) ResetInputBuffer() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.pending = nil
	return nil
}

func (p *SimPort) ResetOutputBuffer() error {
	return nil
}

func (p *SimPort) Close() error {
	p.mu.Lock()
	defer p.mu.Unlock()
	p.closed = true
	p.pending = nil
	return nil
}

// SimOpener opens a SimPort for one fixed endpoint name.
type SimOpener struct {
	Name      string
	Signature string
}

func (o SimOpener) Open(name string, mode *serial.Mode) (Port, error) {
	if name != o.Name {
		return nil, fmt.Errorf("open %s: no such simulated device", name)
	}
	return NewSimPort(o.Signature), nil
}
