package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// HelpEntry is a single key-description pair for the help overlay.
type HelpEntry struct {
	Key  string
	Desc string
}

// HelpSection is a titled group of entries, rendered in order.
type HelpSection struct {
	Title   string
	Entries []HelpEntry
}

// RenderHelp renders the help overlay for one page.
func RenderHelp(styles ui.Styles, page common.HelpPage, width, height int) string {
	t := styles.Theme

	title := "Help - Item"
	sections := ItemHelpSections()
	if page == common.HelpWorkspace {
		title = "Help - Workspace"
		sections = WorkspaceHelpSections()
	}

	titleStr := lipgloss.NewStyle().
		Foreground(t.TextPrimary).Bold(true).
		Align(lipgloss.Center).
		Width(min(70, width-4) - 4).
		Render(title + "  (j: next, k: previous)")

	var body strings.Builder
	body.WriteString(titleStr + "\n\n")

	sectionStyle := lipgloss.NewStyle().Foreground(t.Unfinished).Bold(true).Underline(true)
	keyStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true).Width(14).Align(lipgloss.Right)
	descStyle := lipgloss.NewStyle().Foreground(t.TextNormal)

	for _, section := range sections {
		body.WriteString(sectionStyle.Render(section.Title) + "\n")
		for _, e := range section.Entries {
			body.WriteString("  " + keyStyle.Render(e.Key) + "  " + descStyle.Render(e.Desc) + "\n")
		}
		body.WriteString("\n")
	}

	overlay := lipgloss.NewStyle().
		Border(lipgloss.DoubleBorder()).
		BorderForeground(t.BorderPrimary).
		Padding(0, 2).
		Width(min(70, width-4)).
		MaxHeight(height - 2).
		Render(strings.TrimRight(body.String(), "\n"))

	return ui.PlaceCentre(width, height, overlay)
}

// ItemHelpSections documents the item display and its input box.
func ItemHelpSections() []HelpSection {
	return []HelpSection{
		{Title: "Item Display", Entries: []HelpEntry{
			{Key: "j / ↓", Desc: "Next item"},
			{Key: "k / ↑", Desc: "Previous item"},
			{Key: "J / K", Desc: "Next / previous workspace"},
			{Key: "a", Desc: "Add item"},
			{Key: "e", Desc: "Edit item"},
			{Key: "d", Desc: "Delete item"},
			{Key: "space", Desc: "Toggle finished"},
			{Key: "x", Desc: "Toggle late marker"},
			{Key: "> / <", Desc: "Move item down / up"},
			{Key: "y", Desc: "Copy item text"},
			{Key: "w", Desc: "Create workspace"},
			{Key: "-", Desc: "Open workspace list"},
		}},
		{Title: "Add / Edit Item", Entries: []HelpEntry{
			{Key: "ctrl+d", Desc: "Switch between text and expiry"},
			{Key: "enter", Desc: "Save item"},
			{Key: "esc", Desc: "Discard"},
		}},
		{Title: "General", Entries: generalHelp()},
	}
}

// WorkspaceHelpSections documents the workspace list and its input box.
func WorkspaceHelpSections() []HelpSection {
	return []HelpSection{
		{Title: "Workspace Display", Entries: []HelpEntry{
			{Key: "j / ↓", Desc: "Next workspace"},
			{Key: "k / ↑", Desc: "Previous workspace"},
			{Key: "enter", Desc: "Open workspace items"},
			{Key: "a", Desc: "Add workspace"},
			{Key: "e", Desc: "Rename workspace"},
			{Key: "d", Desc: "Delete workspace and its items"},
			{Key: "> / <", Desc: "Move workspace down / up"},
		}},
		{Title: "Add / Edit Workspace", Entries: []HelpEntry{
			{Key: "enter", Desc: "Save title"},
			{Key: "esc", Desc: "Discard"},
		}},
		{Title: "General", Entries: generalHelp()},
	}
}

func generalHelp() []HelpEntry {
	return []HelpEntry{
		{Key: "ctrl+s", Desc: "Save"},
		{Key: "?", Desc: "Toggle this help"},
		{Key: "q", Desc: "Save and quit"},
		{Key: "ctrl+c", Desc: "Quit without saving"},
	}
}
