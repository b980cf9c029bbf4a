package serialport

import (
	"errors"
	"runtime"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial/enumerator"
)

func TestSortNatural(t *testing.T) {
	names := []string{"COM10", "COM2", "/dev/ttyUSB0", "COM1", "/dev/ttyACM1", "/dev/ttyACM0", "COM"}
	SortNatural(names)
	assert.Equal(t, []string{"/dev/ttyACM0", "/dev/ttyACM1", "/dev/ttyUSB0", "COM", "COM1", "COM2", "COM10"}, names)
}

func TestSequentialNames(t *testing.T) {
	assert.Equal(t, []string{"COM1", "COM2", "COM3"}, SequentialNames("COM", 1, 3))
	assert.Nil(t, SequentialNames("COM", 3, 1))
	assert.Len(t, SequentialNames("COM", 1, 64), 64)
}

func TestCandidates_SortsEnumeratedPorts(t *testing.T) {
	orig := listPorts
	t.Cleanup(func() { listPorts = orig })

	listPorts = func() ([]*enumerator.PortDetails, error) {
		return []*enumerator.PortDetails{
			{Name: "COM12"},
			{Name: "COM3", IsUSB: true, VID: "2341", PID: "0043"},
		}, nil
	}

	names, err := Candidates(nil)
	require.NoError(t, err)
	assert.Equal(t, []string{"COM3", "COM12"}, names)
}

func TestCandidates_EmptyListing(t *testing.T) {
	orig := listPorts
	t.Cleanup(func() { listPorts = orig })

	listPorts = func() ([]*enumerator.PortDetails, error) { return nil, nil }

	names, err := Candidates(nil)
	require.NoError(t, err)
	if runtime.GOOS == "windows" {
		assert.Len(t, names, 64)
		assert.Equal(t, "COM1", names[0])
	} else {
		assert.Empty(t, names)
	}
}

func TestCandidates_EnumerationFailure(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("windows falls back to numbered COM ports")
	}
	orig := listPorts
	t.Cleanup(func() { listPorts = orig })

	listPorts = func() ([]*enumerator.PortDetails, error) {
		return nil, errors.New("udev unavailable")
	}

	names, err := Candidates(nil)
	assert.Nil(t, names)
	assert.ErrorIs(t, err, ErrNotFound)
	assert.Contains(t, err.Error(), "udev unavailable")
}
