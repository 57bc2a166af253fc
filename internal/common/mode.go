package common

import (
	"errors"
	"fmt"
)

// ErrNestedEphemeral is returned when an ephemeral mode is entered while
// another ephemeral mode is active. The previous-mode register holds one
// entry, so the second entry would lose the way back.
var ErrNestedEphemeral = errors.New("nested ephemeral mode")

// ── Modes ───────────────────────────────────────────────────────────────────

// Mode identifies which screen owns the keyboard.
type Mode int

const (
	ModeDisplayWorkspace Mode = iota
	ModeAddWorkspace
	ModeEditWorkspace
	ModeDisplayItem
	ModeAddItem
	ModeEditItem
	ModeDisplayHelp
)

// AllModes lists every mode in declaration order.
var AllModes = []Mode{
	ModeDisplayWorkspace,
	ModeAddWorkspace,
	ModeEditWorkspace,
	ModeDisplayItem,
	ModeAddItem,
	ModeEditItem,
	ModeDisplayHelp,
}

func (m Mode) String() string {
	switch m {
	case ModeDisplayWorkspace:
		return "workspaces"
	case ModeAddWorkspace:
		return "add workspace"
	case ModeEditWorkspace:
		return "edit workspace"
	case ModeDisplayItem:
		return "items"
	case ModeAddItem:
		return "add item"
	case ModeEditItem:
		return "edit item"
	case ModeDisplayHelp:
		return "help"
	default:
		return fmt.Sprintf("mode(%d)", int(m))
	}
}

// Ephemeral reports whether the mode is transient: entered from and
// returned to a previous mode.
func (m Mode) Ephemeral() bool {
	switch m {
	case ModeAddWorkspace, ModeEditWorkspace, ModeAddItem, ModeEditItem, ModeDisplayHelp:
		return true
	}
	return false
}

// TextEntry reports whether the mode captures typed text.
func (m Mode) TextEntry() bool {
	switch m {
	case ModeAddWorkspace, ModeEditWorkspace, ModeAddItem, ModeEditItem:
		return true
	}
	return false
}

// HelpPage selects which help text the help screen shows.
type HelpPage int

const (
	HelpItem HelpPage = iota
	HelpWorkspace
)

func (p HelpPage) String() string {
	if p == HelpWorkspace {
		return "Workspace"
	}
	return "Item"
}

// ModeState is the mode machine: the active mode plus a single-slot
// register holding the mode to return to.
type ModeState struct {
	current  Mode
	previous Mode
	help     HelpPage
}

// NewModeState starts in initial with previous pointing at itself.
func NewModeState(initial Mode) ModeState {
	return ModeState{current: initial, previous: initial}
}

// InitialMode picks the start mode for a board with n workspaces.
func InitialMode(workspaces int) Mode {
	if workspaces > 0 {
		return ModeDisplayWorkspace
	}
	return ModeDisplayItem
}

// Current returns the active mode.
func (s ModeState) Current() Mode { return s.current }

// Previous returns the register contents.
func (s ModeState) Previous() Mode { return s.previous }

// Help returns the help page shown while in ModeDisplayHelp.
func (s ModeState) Help() HelpPage { return s.help }

// Enter switches to m. Entering an ephemeral mode records the mode being
// left; doing so from another ephemeral mode fails and changes nothing.
func (s *ModeState) Enter(m Mode) error {
	if !m.Ephemeral() {
		if s.current.Ephemeral() {
			return fmt.Errorf("enter %s from %s: %w", m, s.current, ErrNestedEphemeral)
		}
		s.current = m
		s.previous = m
		return nil
	}
	if s.current.Ephemeral() {
		return fmt.Errorf("enter %s from %s: %w", m, s.current, ErrNestedEphemeral)
	}
	if m == ModeDisplayHelp {
		s.help = HelpItem
		if s.current == ModeDisplayWorkspace {
			s.help = HelpWorkspace
		}
	}
	s.previous = s.current
	s.current = m
	return nil
}

// Return leaves an ephemeral mode for the recorded previous mode. It is a
// no-op in a display mode.
func (s *ModeState) Return() {
	if s.current.Ephemeral() {
		s.current = s.previous
	}
}

// CycleHelp flips between the two help pages.
func (s *ModeState) CycleHelp() {
	if s.help == HelpItem {
		s.help = HelpWorkspace
	} else {
		s.help = HelpItem
	}
}
