package components

import (
	"fmt"
	"path/filepath"
	"strings"

	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// StatusBarData carries the info displayed in the bottom status bar.
type StatusBarData struct {
	Mode      string
	Workspace string
	Finished  int
	Total     int
	Late      int
	Dirty     bool
	Message   string // transient info/error message
	IsError   bool
	DataFile  string
}

// RenderStatusBar renders the bottom status bar with visual sections
// separated by dim vertical bars.
//
// Wide (>= 60):   ITEM  │  home  │  3/5 done  ● unsaved         todo.yml
// Narrow (< 60):  ITEM  │  home  │  3/5 done
func RenderStatusBar(styles ui.Styles, data StatusBarData, width int) string {
	t := styles.Theme

	sepStyle := lipgloss.NewStyle().Foreground(t.BorderPrimary).Faint(true)
	sep := sepStyle.Render(" │ ")

	// ── Left sections ────────────────────────────────────────────

	badge := lipgloss.NewStyle().
		Foreground(t.Background).
		Background(t.Focused).
		Bold(true).
		Padding(0, 1).
		Render(strings.ToUpper(data.Mode))
	left := badge

	if data.Workspace != "" {
		wsStyle := lipgloss.NewStyle().Foreground(t.TextPrimary).Bold(true)
		left += sep + wsStyle.Render(ui.Truncate(data.Workspace, max(8, width/4)))
	}

	progress := lipgloss.NewStyle().Foreground(t.Finished).Render(fmt.Sprintf("%d/%d done", data.Finished, data.Total))
	left += sep + progress
	if data.Late > 0 {
		left += "  " + styles.Late.Render(fmt.Sprintf("%d late", data.Late))
	}
	if data.Dirty {
		left += "  " + lipgloss.NewStyle().Foreground(t.Unfinished).Render("● unsaved")
	}

	// ── Right section ────────────────────────────────────────────

	var right string
	if data.Message != "" {
		style := styles.Info
		if data.IsError {
			style = styles.Error
		}
		right = style.Render(data.Message) + " "
	} else if width >= 60 && data.DataFile != "" {
		right = lipgloss.NewStyle().Foreground(t.TextDark).Render(filepath.Base(data.DataFile)) + " "
	}

	// ── Assemble ─────────────────────────────────────────────────

	leftW := lipgloss.Width(left)
	rightW := lipgloss.Width(right)
	gap := width - leftW - rightW - 2
	if gap < 1 {
		gap = 1
		right = "" // drop right side if no room
	}

	return styles.StatusBar.Width(width).Render(left + strings.Repeat(" ", gap) + right)
}
