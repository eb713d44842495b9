// Package ui provides the presenter's terminal interface: a live schedule
// board over a running schedule.Session, driven by a 1-second tick.
package ui

import (
	"time"

	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/help"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/progress"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/charmbracelet/glamour"
	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"

	"github.com/dgnsrekt/studypace/document"
	"github.com/dgnsrekt/studypace/schedule"
)

// how long to show transient status notes like "copied!"
const statusMessageTimeout = 3 * time.Second

type statusTimeoutMsg struct{}

// NewProgram returns a new Tea program presenting doc.
func NewProgram(cfg Config, engineCfg schedule.Config, doc *document.Document, notifier schedule.Notifier) (*tea.Program, error) {
	session, err := schedule.NewSession(doc, engineCfg, notifier)
	if err != nil {
		return nil, err
	}
	if cfg.JumpToParagraph > 0 {
		session.JumpToParagraph(cfg.JumpToParagraph - 1)
	}

	theme, err := ParseTheme(cfg.Theme)
	if err != nil {
		log.Warn("Unknown theme, falling back to auto", "theme", cfg.Theme)
	}

	m := newModel(cfg, theme, session)
	m.notifier = notifier

	opts := []tea.ProgramOption{tea.WithAltScreen()}
	if cfg.EnableMouse {
		opts = append(opts, tea.WithMouseCellMotion())
	}
	return tea.NewProgram(m, opts...), nil
}

type model struct {
	cfg      Config
	styles   styles
	session  *schedule.Session
	notifier schedule.Notifier

	keys     keyMap
	help     help.Model
	progress progress.Model
	renderer *glamour.TermRenderer

	width  int
	height int

	statusMessage string
	fatalErr      error
}

func newModel(cfg Config, theme Theme, session *schedule.Session) *model {
	p := progress.New(progress.WithDefaultGradient())
	p.ShowPercentage = false

	m := &model{
		cfg:      cfg,
		styles:   newStyles(theme),
		session:  session,
		keys:     defaultKeyMap(),
		help:     help.New(),
		progress: p,
	}
	m.initRenderer(80)
	return m
}

// initRenderer builds the glamour renderer used for paragraph text.
// Glamour can be disabled via the environment for debugging.
func (m *model) initRenderer(width int) {
	if !m.cfg.GlamourEnabled {
		m.renderer = nil
		return
	}
	r, err := glamour.NewTermRenderer(
		glamour.WithAutoStyle(),
		glamour.WithColorProfile(lipgloss.ColorProfile()),
		glamour.WithWordWrap(width),
	)
	if err != nil {
		log.Warn("Unable to create renderer, falling back to plain text", "err", err)
		m.renderer = nil
		return
	}
	m.renderer = r
}

// Init implements tea.Model.
func (m *model) Init() tea.Cmd {
	cmds := []tea.Cmd{schedule.TickCmd()}
	if m.cfg.Path != "" {
		cmds = append(cmds, watchFileCmd(m.cfg.Path))
	}
	return tea.Batch(cmds...)
}

// Update implements tea.Model.
func (m *model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.KeyMsg:
		return m.handleKey(msg)

	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.help.Width = msg.Width
		m.progress.Width = max(10, msg.Width-4)
		m.initRenderer(m.contentWidth())
		return m, nil

	case schedule.TickMsg:
		// Clock mutation happens inside Tick before any budget read.
		m.session.Tick()
		return m, schedule.TickCmd()

	case schedule.PhaseChangedMsg:
		log.Debug("Phase changed", "phase", msg.State.Phase.String())
		return m, nil

	case schedule.SessionResetMsg:
		return m, m.setStatus("reset")

	case documentReloadedMsg:
		return m.handleReload(msg)

	case watchErrMsg:
		log.Warn("Analysis file watch failed", "err", msg.err)
		return m, nil

	case statusTimeoutMsg:
		m.statusMessage = ""
		return m, nil
	}

	return m, nil
}

func (m *model) handleKey(msg tea.KeyMsg) (tea.Model, tea.Cmd) {
	switch {
	case key.Matches(msg, m.keys.Quit):
		return m, tea.Quit

	case key.Matches(msg, m.keys.StartPause):
		state := m.session.Snapshot()
		switch {
		case !state.HasStarted:
			if err := m.session.Start(); err != nil {
				log.Warn("Unable to start session", "err", err)
			}
		case state.Running:
			m.session.Pause()
		default:
			if err := m.session.Resume(); err != nil {
				log.Warn("Unable to resume session", "err", err)
			}
		}
		return m, nil

	case key.Matches(msg, m.keys.Advance):
		state := m.session.Snapshot()
		if !state.HasStarted {
			if err := m.session.Start(); err != nil {
				log.Warn("Unable to start session", "err", err)
			}
			return m, nil
		}
		return m, schedule.AdvanceCmd(m.session)

	case key.Matches(msg, m.keys.Retreat):
		return m, schedule.RetreatCmd(m.session)

	case key.Matches(msg, m.keys.Reset):
		return m, schedule.ResetCmd(m.session)

	case key.Matches(msg, m.keys.Copy):
		if err := clipboard.WriteAll(exportSchedule(m.session)); err != nil {
			log.Warn("Unable to copy schedule", "err", err)
			return m, m.setStatus("copy failed")
		}
		return m, m.setStatus("copied!")

	case key.Matches(msg, m.keys.Help):
		m.help.ShowAll = !m.help.ShowAll
		return m, nil
	}

	return m, nil
}

func (m *model) handleReload(msg documentReloadedMsg) (tea.Model, tea.Cmd) {
	if msg.err != nil {
		log.Warn("Unable to reload analysis", "err", msg.err)
		return m, tea.Batch(m.setStatus("reload failed"), watchFileCmd(m.cfg.Path))
	}

	// A new analysis replaces the session outright: the engine does not
	// persist state across documents.
	session, err := schedule.NewSession(msg.doc, m.session.Config(), m.notifier)
	if err != nil {
		m.fatalErr = err
		return m, tea.Quit
	}
	m.session = session
	log.Info("Analysis reloaded", "paragraphs", len(msg.doc.Paragraphs))
	return m, tea.Batch(m.setStatus("analysis reloaded"), watchFileCmd(m.cfg.Path))
}

func (m *model) setStatus(note string) tea.Cmd {
	m.statusMessage = note
	return tea.Tick(statusMessageTimeout, func(time.Time) tea.Msg {
		return statusTimeoutMsg{}
	})
}

// contentWidth returns the usable rendering width.
func (m *model) contentWidth() int {
	w := m.width
	if m.cfg.Width > 0 && int(m.cfg.Width) < w {
		w = int(m.cfg.Width)
	}
	if w <= 0 {
		w = 80
	}
	return w
}
