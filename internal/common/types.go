package common

import tea "github.com/charmbracelet/bubbletea"

// ── Custom messages ─────────────────────────────────────────────────────────

// ErrMsg carries an error to be displayed.
type ErrMsg struct{ Err error }

// InfoMsg carries an informational message.
type InfoMsg struct{ Text string }

// StoreChangedMsg signals that the data file changed on disk.
type StoreChangedMsg struct{}

// TickMsg is the redraw heartbeat.
type TickMsg struct{}

// CmdErr creates a tea.Cmd that sends an ErrMsg.
func CmdErr(err error) tea.Cmd {
	return func() tea.Msg { return ErrMsg{Err: err} }
}

// CmdInfo creates a tea.Cmd that sends an InfoMsg.
func CmdInfo(text string) tea.Cmd {
	return func() tea.Msg { return InfoMsg{Text: text} }
}
