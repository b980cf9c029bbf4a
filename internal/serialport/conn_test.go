package serialport

import (
	"errors"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func openManualMock(t *testing.T) (*Conn, *MockPort) {
	t.Helper()
	opener := NewMockOpener()
	port := opener.Add("/dev/ttyACM0", NewMockPort("RADAR_READY\n"))
	conn, err := OpenManual(opener, "/dev/ttyACM0", DefaultPortOptions(9600), nil)
	require.NoError(t, err)
	t.Cleanup(func() { conn.Close() })
	return conn, port
}

func readAll(c *Conn) []string {
	var lines []string
	for {
		line, ok := c.ReadLine()
		if !ok {
			return lines
		}
		lines = append(lines, string(line))
	}
}

func TestOpenManual_SkipsHandshake(t *testing.T) {
	conn, port := openManualMock(t)

	assert.Equal(t, "/dev/ttyACM0", conn.Name())
	assert.Empty(t, port.DTRHistory, "manual open must not touch DTR")
	assert.Equal(t, 1, port.InputFlushes)
	assert.Nil(t, readAll(conn), "no boot output without a reset")
}

func TestOpenManual_OpenFailure(t *testing.T) {
	opener := NewMockOpener()
	opener.Errors["COM7"] = errors.New("access denied")

	conn, err := OpenManual(opener, "COM7", DefaultPortOptions(9600), nil)
	assert.Nil(t, conn)
	assert.ErrorIs(t, err, ErrEndpointOpen)
	assert.Contains(t, err.Error(), "COM7")
}

func TestOpenManual_InvalidOptions(t *testing.T) {
	opener := NewMockOpener()
	opener.Add("COM1", NewMockPort())

	_, err := OpenManual(opener, "COM1", PortOptions{BaudRate: 0}, nil)
	assert.Error(t, err)
	assert.Empty(t, opener.OpenCalls)
}

func TestConn_ReadLineFramesAcrossReads(t *testing.T) {
	conn, port := openManualMock(t)
	port.AddReadData("12\n34\n5")

	lines := readAll(conn)
	assert.Equal(t, []string{"12\n", "34\n"}, lines)
	assert.Equal(t, []byte("5"), conn.framer.Buffered())

	port.AddReadData("6\n")
	assert.Equal(t, []string{"56\n"}, readAll(conn))
}

func TestConn_BufferedLineSkipsRead(t *testing.T) {
	conn, port := openManualMock(t)
	port.AddReadData("1\n2\n3\n")

	_, ok := conn.ReadLine()
	require.True(t, ok)
	calls := port.ReadCalls

	_, ok = conn.ReadLine()
	require.True(t, ok)
	_, ok = conn.ReadLine()
	require.True(t, ok)
	assert.Equal(t, calls, port.ReadCalls)
}

func TestConn_ReadErrorYieldsNoLine(t *testing.T) {
	conn, port := openManualMock(t)
	port.ReadError = errors.New("device disconnected")

	_, ok := conn.ReadLine()
	assert.False(t, ok)

	port.AddReadData("77\n")
	line, ok := conn.ReadLine()
	require.True(t, ok)
	assert.Equal(t, "77\n", string(line))
}

func TestConn_CloseIsIdempotent(t *testing.T) {
	conn, port := openManualMock(t)

	require.NoError(t, conn.Close())
	require.NoError(t, conn.Close())
	assert.True(t, port.IsClosed())

	_, ok := conn.ReadLine()
	assert.False(t, ok)
}
