package serialport

import "bytes"

// Framer accumulates raw bytes and splits them into newline-terminated
// lines. The buffer is bounded: if a write would overflow it before a
// terminator shows up, the buffer is discarded.
type Framer struct {
	buf       []byte
	capacity  int
	overflows int
}

// NewFramer creates a framer holding at most capacity bytes.
func NewFramer(capacity int) *Framer {
	return &Framer{
		buf:      make([]byte, 0, capacity),
		capacity: capacity,
	}
}

// Feed appends p to the buffer.
func (f *Framer) Feed(p []byte) {
	if len(p) == 0 {
		return
	}
	if len(f.buf)+len(p) > f.capacity {
		f.buf = f.buf[:0]
		f.overflows++
	}
	if len(p) > f.capacity {
		p = p[len(p)-f.capacity:]
	}
	f.buf = append(f.buf, p...)
}

// Next removes and returns the first complete line, terminator included.
func (f *Framer) Next() ([]byte, bool) {
	idx := bytes.IndexByte(f.buf, '\n')
	if idx < 0 {
		return nil, false
	}

	line := bytes.Clone(f.buf[:idx+1])
	n := copy(f.buf, f.buf[idx+1:])
	f.buf = f.buf[:n]
	return line, true
}

// HasLine reports whether Next would return a line.
func (f *Framer) HasLine() bool {
	return bytes.IndexByte(f.buf, '\n') >= 0
}

// Buffered returns a copy of the unterminated bytes held.
func (f *Framer) Buffered() []byte {
	return bytes.Clone(f.buf)
}

// Reset drops everything buffered.
func (f *Framer) Reset() {
	f.buf = f.buf[:0]
}

// Overflows counts how many times the buffer was discarded.
func (f *Framer) Overflows() int {
	return f.overflows
}
