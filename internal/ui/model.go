package ui

import (
	"github.com/charmbracelet/bubbles/help"
	tea "github.com/charmbracelet/bubbletea"

	"cmenu/internal/config"
	"cmenu/internal/logging"
	"cmenu/internal/terminal"
	"cmenu/internal/ui/input"
	"cmenu/internal/ui/state"
	"cmenu/internal/ui/views"
)

// Model is the bubbletea frontend over the shared picker state
type Model struct {
	state    *state.AppState
	ui       config.UISettings
	renderer *views.Renderer
	logger   logging.Logger

	keys input.KeyMap
	help help.Model

	width  int
	height int
	err    error
}

// NewModel creates a new UI model
func NewModel(st *state.AppState, renderer *views.Renderer, ui config.UISettings, logger logging.Logger) *Model {
	if logger == nil {
		logger = logging.NewDisabledLogger()
	}
	return &Model{
		state:    st,
		ui:       ui,
		renderer: renderer,
		logger:   logger,
		keys:     input.DefaultKeyMap(),
		help:     help.New(),
		width:    terminal.DefaultWidth,
		height:   terminal.DefaultHeight,
	}
}

// Init starts browsing. Sizes arrive with the first WindowSizeMsg.
func (m *Model) Init() tea.Cmd {
	m.state.Start()
	return nil
}

// Update handles messages
func (m *Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width

	case tea.KeyMsg:
		ev := m.keys.FromKeyMsg(msg)
		m.logger.Debug("key", "key", msg.String(), "event", ev.Type.String())

		if _, err := m.state.Apply(ev); err != nil {
			m.err = err
			return m, tea.Quit
		}
		if m.state.Done() {
			return m, tea.Quit
		}
	}

	return m, nil
}

// View renders the UI. A finished session renders nothing so the picker
// leaves no trace on the screen.
func (m *Model) View() string {
	if m.state.Done() || m.err != nil {
		return ""
	}

	vs := views.NewViewState(m.state, m.ui, m.width, m.height)
	if m.ui.ShowStatus {
		vs.Footer = m.footer()
	}
	return m.renderer.Render(vs)
}

// Err returns the error that ended the session, if any
func (m *Model) Err() error {
	return m.err
}

// Result returns what the session produced once it has finished
func (m *Model) Result() state.Result {
	return m.state.Result()
}
