package schedule

import (
	"time"

	tea "github.com/charmbracelet/bubbletea"
)

// Messages for Bubble Tea communication between the engine and the UI.

// TickMsg is the 1-second cadence driving the session clock. The engine
// never schedules its own ticks; the host's event loop delivers them.
type TickMsg struct {
	Time time.Time
}

// PhaseChangedMsg indicates the session moved to a different segment.
type PhaseChangedMsg struct {
	State State
}

// SessionResetMsg indicates the session returned to its initial state.
type SessionResetMsg struct{}

// TickCmd schedules the next 1-second tick.
func TickCmd() tea.Cmd {
	return tea.Tick(time.Second, func(t time.Time) tea.Msg {
		return TickMsg{Time: t}
	})
}

// AdvanceCmd creates a command that advances the session and reports the
// resulting state.
func AdvanceCmd(s *Session) tea.Cmd {
	return func() tea.Msg {
		s.Advance()
		return PhaseChangedMsg{State: s.Snapshot()}
	}
}

// RetreatCmd creates a command that retreats the session and reports the
// resulting state.
func RetreatCmd(s *Session) tea.Cmd {
	return func() tea.Msg {
		s.Retreat()
		return PhaseChangedMsg{State: s.Snapshot()}
	}
}

// ResetCmd creates a command that resets the session.
func ResetCmd(s *Session) tea.Cmd {
	return func() tea.Msg {
		s.Reset()
		return SessionResetMsg{}
	}
}
