package serialport

import (
	"errors"
	"fmt"
	"sync"
	"time"

	"go.bug.st/serial"
)

// MockPort implements Port with scripted reads for testing. Each queued
// chunk is returned by one Read call; an empty queue reads as a timeout.
type MockPort struct {
	mu sync.Mutex

	chunks [][]byte

	// BootOutput is queued when DTR goes from low to high, and only becomes
	// readable after the following input flush, like a board that prints
	// its banner once it has finished resetting.
	BootOutput [][]byte
	booting    bool

	dtr        bool
	DTRHistory []bool

	// ReadError is returned by the next Read call if set.
	ReadError error
	// CloseError is returned by Close if set.
	CloseError error

	ReadTimeout   time.Duration
	InputFlushes  int
	OutputFlushes int
	ReadCalls     int
	Closed        bool
}

// NewMockPort creates a port whose device prints bootOutput after a DTR reset.
func NewMockPort(bootOutput ...string) *MockPort {
	m := &MockPort{dtr: true}
	for _, s := range bootOutput {
		m.BootOutput = append(m.BootOutput, []byte(s))
	}
	return m
}

// AddReadData queues chunks for subsequent Read calls.
func (m *MockPort) AddReadData(chunks ...string) {
	m.mu.Lock()
	defer m.mu.Unlock()
	for _, c := range chunks {
		m.chunks = append(m.chunks, []byte(c))
	}
}

func (m *MockPort) Read(p []byte) (int, error) {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.ReadCalls++
	if m.Closed {
		return 0, errors.New("serial port closed")
	}
	if m.ReadError != nil {
		err := m.ReadError
		m.ReadError = nil
		return 0, err
	}
	if len(m.chunks) == 0 {
		return 0, nil
	}

	n := copy(p, m.chunks[0])
	if n < len(m.chunks[0]) {
		m.chunks[0] = m.chunks[0][n:]
	} else {
		m.chunks = m.chunks[1:]
	}
	return n, nil
}

func (m *MockPort) SetDTR(dtr bool) error {
	m.mu.Lock()
	defer m.mu.Unlock()

	if m.Closed {
		return errors.New("serial port closed")
	}
	if dtr && !m.dtr {
		m.booting = true
	}
	m.dtr = dtr
	m.DTRHistory = append(m.DTRHistory, dtr)
	return nil
}

func (m *MockPort) SetReadTimeout(t time.Duration) error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.ReadTimeout = t
	return nil
}

func (m *MockPort) ResetInputBuffer() error {
	m.mu.Lock()
	defer m.mu.Unlock()

	m.InputFlushes++
	m.chunks = nil
	if m.booting {
		m.booting = false
		for _, c := range m.BootOutput {
			m.chunks = append(m.chunks, append([]byte(nil), c...))
		}
	}
	return nil
}

func (m *MockPort) ResetOutputBuffer() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.OutputFlushes++
	return nil
}

func (m *MockPort) Close() error {
	m.mu.Lock()
	defer m.mu.Unlock()
	m.Closed = true
	return m.CloseError
}

// IsClosed reports whether Close was called.
func (m *MockPort) IsClosed() bool {
	m.mu.Lock()
	defer m.mu.Unlock()
	return m.Closed
}

// MockOpener hands out MockPorts by name and records every Open call.
type MockOpener struct {
	mu sync.Mutex

	Ports  map[string]*MockPort
	Errors map[string]error

	OpenCalls []string
	Modes     []*serial.Mode
}

// NewMockOpener creates an opener with no ports.
func NewMockOpener() *MockOpener {
	return &MockOpener{
		Ports:  make(map[string]*MockPort),
		Errors: make(map[string]error),
	}
}

// Add registers a port under name.
func (o *MockOpener) Add(name string, port *MockPort) *MockPort {
	o.mu.Lock()
	defer o.mu.Unlock()
	o.Ports[name] = port
	return port
}

func (o *MockOpener) Open(name string, mode *serial.Mode) (Port, error) {
	o.mu.Lock()
	defer o.mu.Unlock()

	o.OpenCalls = append(o.OpenCalls, name)
	o.Modes = append(o.Modes, mode)

	if err := o.Errors[name]; err != nil {
		return nil, err
	}
	p, ok := o.Ports[name]
	if !ok {
		return nil, fmt.Errorf("open %s: no such file or directory", name)
	}
	return p, nil
}
