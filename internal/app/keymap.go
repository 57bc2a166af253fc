package app

import (
	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/charmbracelet/bubbles/key"
)

// KeyMap defines every keybinding. Which ones are live depends on the
// current mode; see dispatch.go.
type KeyMap struct {
	// Global
	Quit      key.Binding
	ForceQuit key.Binding
	Save      key.Binding
	Help      key.Binding

	// Navigation
	Up            key.Binding
	Down          key.Binding
	WorkspaceUp   key.Binding
	WorkspaceDown key.Binding
	Enter         key.Binding
	Back          key.Binding

	// Editing
	Add            key.Binding
	Edit           key.Binding
	Delete         key.Binding
	MoveUp         key.Binding
	MoveDown       key.Binding
	ToggleFinished key.Binding
	ToggleLate     key.Binding
	Copy           key.Binding
	NewWorkspace   key.Binding
	Workspaces     key.Binding
	SwitchField    key.Binding
}

// DefaultKeyMap returns the default keybindings.
func DefaultKeyMap() KeyMap {
	return KeyMap{
		Quit:      key.NewBinding(key.WithKeys("q"), key.WithHelp("q", "save & quit")),
		ForceQuit: key.NewBinding(key.WithKeys("ctrl+c"), key.WithHelp("ctrl+c", "quit without saving")),
		Save:      key.NewBinding(key.WithKeys("ctrl+s"), key.WithHelp("ctrl+s", "save")),
		Help:      key.NewBinding(key.WithKeys("?"), key.WithHelp("?", "help")),

		Up:            key.NewBinding(key.WithKeys("up", "k"), key.WithHelp("k/↑", "up")),
		Down:          key.NewBinding(key.WithKeys("down", "j"), key.WithHelp("j/↓", "down")),
		WorkspaceUp:   key.NewBinding(key.WithKeys("K"), key.WithHelp("K", "prev workspace")),
		WorkspaceDown: key.NewBinding(key.WithKeys("J"), key.WithHelp("J", "next workspace")),
		Enter:         key.NewBinding(key.WithKeys("enter"), key.WithHelp("enter", "confirm")),
		Back:          key.NewBinding(key.WithKeys("esc"), key.WithHelp("esc", "cancel")),

		Add:            key.NewBinding(key.WithKeys("a"), key.WithHelp("a", "add")),
		Edit:           key.NewBinding(key.WithKeys("e"), key.WithHelp("e", "edit")),
		Delete:         key.NewBinding(key.WithKeys("d"), key.WithHelp("d", "delete")),
		MoveUp:         key.NewBinding(key.WithKeys("<"), key.WithHelp("<", "move up")),
		MoveDown:       key.NewBinding(key.WithKeys(">"), key.WithHelp(">", "move down")),
		ToggleFinished: key.NewBinding(key.WithKeys(" ", "space"), key.WithHelp("space", "done")),
		ToggleLate:     key.NewBinding(key.WithKeys("x"), key.WithHelp("x", "late")),
		Copy:           key.NewBinding(key.WithKeys("y"), key.WithHelp("y", "copy")),
		NewWorkspace:   key.NewBinding(key.WithKeys("w"), key.WithHelp("w", "new workspace")),
		Workspaces:     key.NewBinding(key.WithKeys("-"), key.WithHelp("-", "workspaces")),
		SwitchField:    key.NewBinding(key.WithKeys("ctrl+d"), key.WithHelp("ctrl+d", "text/expiry")),
	}
}

// ShortHelp returns the bindings advertised in the help bar for mode.
func (k KeyMap) ShortHelp(mode common.Mode) []key.Binding {
	switch mode {
	case common.ModeDisplayWorkspace:
		return []key.Binding{k.Down, k.Up, k.Enter, k.Add, k.Edit, k.Delete, k.Help, k.Quit}
	case common.ModeDisplayItem:
		return []key.Binding{k.Down, k.Up, k.Add, k.Edit, k.Delete, k.ToggleFinished, k.Workspaces, k.Help, k.Quit}
	case common.ModeAddItem, common.ModeEditItem:
		return []key.Binding{k.Enter, k.SwitchField, k.Back}
	case common.ModeAddWorkspace, common.ModeEditWorkspace:
		return []key.Binding{k.Enter, k.Back}
	case common.ModeDisplayHelp:
		return []key.Binding{k.Down, k.Back}
	}
	return nil
}
