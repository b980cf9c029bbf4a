package serialport

import (
	"errors"
	"fmt"
	"io"
	"time"

	"go.bug.st/serial"
)

var (
	ErrEndpointOpen     = errors.New("cannot open serial endpoint")
	ErrHandshakeTimeout = errors.New("no signature within handshake window")
	ErrNotFound         = errors.New("no serial device answered with the signature")
)

// Port is the subset of serial.Port the radar needs. Keeping it small lets
// tests and demo mode stand in for real hardware.
type Port interface {
	io.ReadCloser
	SetDTR(dtr bool) error
	SetReadTimeout(t time.Duration) error
	ResetInputBuffer() error
	ResetOutputBuffer() error
}

// Opener opens a named endpoint with the given framing.
type Opener interface {
	Open(name string, mode *serial.Mode) (Port, error)
}

// OpenerFunc adapts a function to the Opener interface.
type OpenerFunc func(name string, mode *serial.Mode) (Port, error)

func (f OpenerFunc) Open(name string, mode *serial.Mode) (Port, error) {
	return f(name, mode)
}

// SerialOpener opens real OS serial ports through go.bug.st/serial.
type SerialOpener struct{}

func (SerialOpener) Open(name string, mode *serial.Mode) (Port, error) {
	p, err := serial.Open(name, mode)
	if err != nil {
		return nil, err
	}
	return p, nil
}

// PortOptions describes how an endpoint is opened. Framing is always 8N1.
type PortOptions struct {
	BaudRate int
}

// DefaultPortOptions returns 8N1 at the given baud rate.
func DefaultPortOptions(baud int) PortOptions {
	return PortOptions{BaudRate: baud}
}

// SerialMode converts the options to a serial.Mode. DTR starts asserted so
// the scanner can pulse it low to reset the board.
func (o PortOptions) SerialMode() (*serial.Mode, error) {
	if o.BaudRate <= 0 {
		return nil, fmt.Errorf("invalid baud rate %d", o.BaudRate)
	}
	return &serial.Mode{
		BaudRate: o.BaudRate,
		DataBits: 8,
		Parity:   serial.NoParity,
		StopBits: serial.OneStopBit,
		InitialStatusBits: &serial.ModemOutputBits{
			DTR: true,
		},
	}, nil
}
