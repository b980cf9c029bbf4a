package serialport

import (
	"fmt"
	"time"

	"go.uber.org/zap"

	"serial-radar.klederson.com/internal/config"
)

// Conn is an open, exclusively owned serial endpoint plus its line buffer.
type Conn struct {
	port   Port
	name   string
	framer *Framer
	chunk  []byte
	log    *zap.SugaredLogger
}

// open opens and configures name. A port that fails configuration is
// closed before returning.
func open(opener Opener, name string, opts PortOptions, log *zap.SugaredLogger) (*Conn, error) {
	mode, err := opts.SerialMode()
	if err != nil {
		return nil, fmt.Errorf("%s: %w", name, err)
	}

	port, err := opener.Open(name, mode)
	if err != nil {
		return nil, fmt.Errorf("%w %s: %w", ErrEndpointOpen, name, err)
	}

	if err := configure(port); err != nil {
		_ = port.Close()
		return nil, fmt.Errorf("%w %s: configure: %w", ErrEndpointOpen, name, err)
	}

	return &Conn{
		port:   port,
		name:   name,
		framer: NewFramer(config.LineBufferSize),
		chunk:  make([]byte, config.ReadChunk),
		log:    log.With("port", name),
	}, nil
}

func configure(port Port) error {
	if err := port.SetReadTimeout(config.ReadTimeout); err != nil {
		return fmt.Errorf("set read timeout: %w", err)
	}
	if err := port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("flush input: %w", err)
	}
	if err := port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	return nil
}

// OpenManual opens an explicitly named endpoint. Unlike Scanner.Detect it
// leaves DTR alone and does not wait for the signature, so the device is
// neither reset nor confirmed.
func OpenManual(opener Opener, name string, opts PortOptions, log *zap.SugaredLogger) (*Conn, error) {
	if log == nil {
		log = zap.NewNop().Sugar()
	}
	conn, err := open(opener, name, opts, log)
	if err != nil {
		return nil, err
	}
	log.Infow("Opened serial port without handshake", "port", name, "baud", opts.BaudRate)
	return conn, nil
}

// Name returns the endpoint name for display.
func (c *Conn) Name() string {
	return c.name
}

// ReadLine returns the next complete line, terminator included. It never
// blocks longer than one short OS read, and performs no read at all when a
// line is already buffered. A failed read yields no line.
func (c *Conn) ReadLine() ([]byte, bool) {
	if c.port == nil {
		return nil, false
	}

	if !c.framer.HasLine() {
		n, err := c.port.Read(c.chunk)
		if err != nil {
			c.log.Debugw("Serial read failed", "error", err)
			return nil, false
		}
		before := c.framer.Overflows()
		c.framer.Feed(c.chunk[:n])
		if c.framer.Overflows() != before {
			c.log.Debugw("Line buffer overflow, discarded unterminated data", "capacity", config.LineBufferSize)
		}
	}

	return c.framer.Next()
}

// resetDevice pulses DTR low then high so boards that reset on DTR print
// their signature again, then flushes stale bytes on both sides.
func (c *Conn) resetDevice(settle time.Duration, sleep func(time.Duration)) error {
	if err := c.port.SetDTR(false); err != nil {
		return fmt.Errorf("clear DTR: %w", err)
	}
	sleep(settle)
	if err := c.port.SetDTR(true); err != nil {
		return fmt.Errorf("set DTR: %w", err)
	}
	sleep(settle)
	if err := c.port.ResetInputBuffer(); err != nil {
		return fmt.Errorf("flush input: %w", err)
	}
	if err := c.port.ResetOutputBuffer(); err != nil {
		return fmt.Errorf("flush output: %w", err)
	}
	c.framer.Reset()
	return nil
}

// Close releases the port. It is safe to call more than once.
func (c *Conn) Close() error {
	if c == nil || c.port == nil {
		return nil
	}
	err := c.port.Close()
	c.port = nil
	c.framer.Reset()
	return err
}
