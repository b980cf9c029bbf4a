package app

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"

	"serial-radar.klederson.com/internal/config"
	"serial-radar.klederson.com/internal/radar"
	"serial-radar.klederson.com/internal/ui"
)

// Connection modes shown in the menu bar.
const (
	ModeAuto   = "AUTO"
	ModeManual = "MANUAL"
	ModeDemo   = "DEMO"
)

// shared holds state shared between the Bubble Tea model copies and main.go.
// Because Bubble Tea uses value receivers, pointer fields ensure all copies
// see the same underlying data.
type shared struct {
	session *Session
}

// AppModel is the root Bubble Tea model for Serial Radar.
type AppModel struct {
	width  int
	height int

	mode       string
	maxRangeCm int

	shared *shared
}

// New creates a new AppModel drawing the given session.
func New(session *Session, mode string, maxRangeCm int) AppModel {
	if maxRangeCm <= 0 {
		maxRangeCm = config.MaxRangeCm
	}
	return AppModel{
		mode:       mode,
		maxRangeCm: maxRangeCm,
		shared:     &shared{session: session},
	}
}

func (m AppModel) Init() tea.Cmd {
	return tickCmd()
}

func (m AppModel) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		return m, nil

	case tea.KeyMsg:
		return m.handleKey(msg)

	case TickMsg:
		m.shared.session.Tick(time.Time(msg))
		return m, tickCmd()
	}

	return m, nil
}

func (m AppModel) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch msg.String() {
	case "q", "Q", "esc", "ctrl+c":
		return m, tea.Quit

	case "c", "C":
		m.shared.session.Model().Clear()
	}

	return m, nil
}

func (m AppModel) View() string {
	if m.width == 0 || m.height == 0 {
		return "Initializing Serial Radar..."
	}

	s := m.shared.session
	model := s.Model()
	now := s.LastTick()

	menuH := 1
	statusH := 1
	bodyH := m.height - menuH - statusH
	if bodyH < 5 {
		bodyH = 5
	}

	radarW := m.width * 3 / 4
	if radarW < 30 {
		radarW = 30
	}
	listW := m.width - radarW
	if listW < 15 {
		listW = 15
		radarW = m.width - listW
	}

	menuBar := ui.RenderMenuBar(m.width, s.Label(), m.mode)

	innerW := radarW - 4
	innerH := bodyH - 4
	if innerW < 5 {
		innerW = 5
	}
	if innerH < 3 {
		innerH = 3
	}
	g := radar.TerminalGeometry(innerW, innerH, float64(m.maxRangeCm))
	radarContent := radar.Render(innerW, innerH, s.Frame(g), g)
	legend := radar.RenderLegend(innerW, m.maxRangeCm)
	radarPanel := ui.RenderRadarPanel(radarW, bodyH, radarContent, legend)

	accepted, rejected := s.Counts()
	live := model.Blips(now)
	readings := ui.RenderReadingsPanel(ui.Readings{
		LatestCm:   model.LatestCm(),
		MaxRangeCm: m.maxRangeCm,
		History:    s.History(),
		Accepted:   accepted,
		Rejected:   rejected,
		Echoes:     live,
		Now:        now,
	}, listW, bodyH)

	statusBar := ui.RenderStatusBar(m.width, s.Label(), model.SweepAngle(),
		model.LatestCm(), len(live))

	return ui.ComposeLayout(menuBar, radarPanel, readings, statusBar)
}

func tickCmd() tea.Cmd {
	return tea.Tick(time.Second/time.Duration(config.TargetFPS), func(t time.Time) tea.Msg {
		return TickMsg(t)
	})
}
