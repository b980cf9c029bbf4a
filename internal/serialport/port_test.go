package serialport

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
	"go.bug.st/serial"
)

func TestPortOptions_SerialMode(t *testing.T) {
	mode, err := DefaultPortOptions(9600).SerialMode()
	require.NoError(t, err)
	assert.Equal(t, 9600, mode.BaudRate)
	assert.Equal(t, 8, mode.DataBits)
	assert.Equal(t, serial.NoParity, mode.Parity)
	assert.Equal(t, serial.OneStopBit, mode.StopBits)
	require.NotNil(t, mode.InitialStatusBits)
	assert.True(t, mode.InitialStatusBits.DTR)
}

func TestPortOptions_SerialModeRejectsBadBaud(t *testing.T) {
	for _, baud := range []int{0, -9600} {
		_, err := DefaultPortOptions(baud).SerialMode()
		assert.Error(t, err, "baud %d", baud)
	}
}
