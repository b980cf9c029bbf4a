package app

import (
	"testing"

	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/lipgloss"
	"github.com/muesli/termenv"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"serial-radar.klederson.com/internal/config"
)

func init() {
	lipgloss.SetColorProfile(termenv.Ascii)
}

func newTestApp(lines ...string) (AppModel, *Session) {
	s, _ := newTestSession(lines...)
	m := New(s, ModeManual, 0)
	next, _ := m.Update(tea.WindowSizeMsg{Width: 100, Height: 30})
	return next.(AppModel), s
}

func TestApp_ViewBeforeResize(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, "Initializing Serial Radar...", New(s, ModeAuto, 300).View())
}

func TestApp_DefaultRange(t *testing.T) {
	s, _ := newTestSession()
	assert.Equal(t, config.MaxRangeCm, New(s, ModeAuto, 0).maxRangeCm)
}

func TestApp_TickDrainsAndReschedules(t *testing.T) {
	m, s := newTestApp("88\n")

	next, cmd := m.Update(TickMsg(t0))
	assert.NotNil(t, cmd)
	assert.Equal(t, 88, s.Model().LatestCm())

	view := next.(AppModel).View()
	assert.Contains(t, view, "MANUAL: FAKE0")
	assert.Contains(t, view, "Distance: 88 cm")
	assert.Contains(t, view, "READINGS [1]")
}

func TestApp_ClearKey(t *testing.T) {
	m, s := newTestApp("88\n")
	m.Update(TickMsg(t0))
	require.Len(t, s.Model().Blips(t0), 1)

	m.Update(tea.KeyMsg{Type: tea.KeyRunes, Runes: []rune("c")})
	assert.Empty(t, s.Model().Blips(t0))
	assert.Equal(t, 88, s.Model().LatestCm(), "clear keeps the latest reading")
}

func TestApp_QuitKeys(t *testing.T) {
	m, _ := newTestApp()
	for _, key := range []tea.KeyMsg{
		{Type: tea.KeyRunes, Runes: []rune("q")},
		{Type: tea.KeyEsc},
		{Type: tea.KeyCtrlC},
	} {
		_, cmd := m.Update(key)
		require.NotNil(t, cmd, key.String())
		assert.Equal(t, tea.QuitMsg{}, cmd(), key.String())
	}
}
