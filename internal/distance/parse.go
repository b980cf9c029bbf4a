package distance

import "serial-radar.klederson.com/internal/config"

// NoEcho is reported by the sensor when nothing is in range.
const NoEcho = config.MinDistanceCm

// Sample is one accepted reading in centimeters, clamped to
// [config.MinDistanceCm, config.MaxDistanceCm].
type Sample struct {
	Cm int
}

// HasEcho reports whether the sample is a real distance.
func (s Sample) HasEcho() bool {
	return s.Cm >= 0
}

// Parse extracts the leading integer from a line. Lines that do not start
// (after whitespace) with a digit or '-' are rejected, which drops boot
// banners and the signature line. Trailing content is ignored.
func Parse(line []byte) (Sample, bool) {
	i := 0
	for i < len(line) && isSpace(line[i]) {
		i++
	}
	if i == len(line) {
		return Sample{}, false
	}

	neg := false
	if line[i] == '-' {
		neg = true
		i++
	}

	start := i
	v := 0
	for i < len(line) && isDigit(line[i]) {
		// Saturate; anything past the ceiling clamps to it anyway.
		if v <= config.MaxDistanceCm {
			v = v*10 + int(line[i]-'0')
		}
		i++
	}
	if i == start {
		return Sample{}, false
	}

	if neg {
		v = -v
	}
	return Sample{Cm: Clamp(v)}, true
}

// Clamp limits v to the sensor range.
func Clamp(v int) int {
	if v < config.MinDistanceCm {
		return config.MinDistanceCm
	}
	if v > config.MaxDistanceCm {
		return config.MaxDistanceCm
	}
	return v
}

func isSpace(b byte) bool {
	switch b {
	case ' ', '\t', '\n', '\v', '\f', '\r':
		return true
	}
	return false
}

func isDigit(b byte) bool {
	return b >= '0' && b <= '9'
}
