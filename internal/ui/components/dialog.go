package components

import (
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/charmbracelet/bubbles/textinput"
	"github.com/charmbracelet/lipgloss"
)

// dialogWidth is the outer width of an input box.
const dialogWidth = 60

// NewInput returns a text input styled for the add/edit boxes.
func NewInput(styles ui.Styles, placeholder string, limit int) textinput.Model {
	ti := textinput.New()
	ti.Placeholder = placeholder
	ti.CharLimit = limit
	ti.Width = dialogWidth - 12
	ti.Prompt = ""
	ti.TextStyle = styles.Body
	ti.PlaceholderStyle = styles.Muted
	return ti
}

// Field is one labelled input inside a dialog.
type Field struct {
	Label string
	Input textinput.Model
}

// RenderInputDialog renders a modal box holding one or more inputs. The
// focused input gets the focused border colour.
func RenderInputDialog(styles ui.Styles, title, hint string, fields ...Field) string {
	parts := []string{styles.DialogTitle.Render(title), ""}
	for _, f := range fields {
		box := styles.InputBlurred
		label := styles.Muted
		if f.Input.Focused() {
			box = styles.InputFocused
			label = styles.KeyBind
		}
		parts = append(parts,
			label.Render(f.Label),
			box.Width(dialogWidth-8).Render(f.Input.View()),
		)
	}
	if hint != "" {
		parts = append(parts, "", styles.HelpBar.Render(hint))
	}

	return styles.Dialog.Width(dialogWidth).Render(lipgloss.JoinVertical(lipgloss.Left, parts...))
}
