package components

import (
	"fmt"
	"strings"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// PaneData describes one list pane. Rows are already sliced to the visible
// window; Total and Offset position the scrollbar.
type PaneData struct {
	Title   string
	Focused bool
	Total   int
	Offset  int
	Empty   string // shown when there is nothing to list
}

// RenderPane draws a bordered pane of exactly width x height cells holding
// a title row and body, with a scrollbar on the right when the body is
// windowed. The border and title take the three reserved rows.
func RenderPane(styles ui.Styles, data PaneData, rows []string, width, height int) string {
	style := styles.Panel
	if data.Focused {
		style = styles.PanelFocused
	}
	innerW := max(width-4, 1)  // border + padding
	innerH := max(height-3, 0) // border + title

	title := styles.PanelTitle.Render(ui.Truncate(data.Title, innerW-2))

	body := strings.Join(rows, "\n")
	if len(rows) == 0 && data.Empty != "" {
		body = styles.Muted.Render(data.Empty)
	}
	if bar := RenderScrollbar(styles, innerH, data.Total, len(rows), data.Offset); bar != "" {
		body = lipgloss.JoinHorizontal(lipgloss.Top,
			lipgloss.NewStyle().Width(innerW-1).Height(innerH).Render(body), bar)
	}

	content := lipgloss.JoinVertical(lipgloss.Left, title, body)
	return style.Width(width - 2).Height(height - 2).MaxHeight(height).Render(content)
}

// RenderWorkspaceRows renders one row per visible workspace; selected is
// the index within ws, or -1.
func RenderWorkspaceRows(styles ui.Styles, ws []model.Workspace, selected, width int) []string {
	rows := make([]string, 0, len(ws))
	for i, w := range ws {
		count := styles.ListCount.Render(fmt.Sprintf(" (%d)", w.ItemCount))
		titleW := width - lipgloss.Width(count) - 3
		if i == selected {
			rows = append(rows, styles.ListSelected.Render("▸ "+ui.Truncate(w.Title, titleW))+count)
			continue
		}
		rows = append(rows, styles.ListItem.Render(ui.Truncate(w.Title, titleW))+count)
	}
	return rows
}

// RenderItemCards renders the visible items as cards of cardHeight rows.
// Cards of three or more rows are boxed; shorter ones are single lines.
func RenderItemCards(styles ui.Styles, items []model.Item, selected, cardHeight, width int, now time.Time) []string {
	rows := make([]string, 0, len(items))
	for i, it := range items {
		rows = append(rows, renderCard(styles, it, i == selected, cardHeight, width, now))
	}
	return rows
}

func renderCard(styles ui.Styles, it model.Item, selected bool, height, width int, now time.Time) string {
	mark, textStyle := "[ ]", styles.Unfinished
	switch {
	case it.Finished:
		mark, textStyle = "[x]", styles.Finished
	case it.IsLate(now):
		mark, textStyle = "[!]", styles.Late
	}

	var due string
	if it.HasExpiry && !it.Finished {
		due = styles.Countdown.Render("  " + FormatRemaining(it.Remaining(now)))
	}

	boxed := height >= 3
	inner := width
	if boxed {
		inner = width - 4
	}
	text := ui.Truncate(it.Text, max(inner-4-lipgloss.Width(due), 1))
	line := textStyle.Render(mark+" "+text) + due

	if !boxed {
		if selected {
			return styles.ListSelected.Render("▸ ") + line
		}
		return "  " + line
	}
	card := styles.Card
	if selected {
		card = styles.CardSelected
	}
	return card.Width(width - 2).Height(height - 2).Render(line)
}

// FormatRemaining renders a countdown such as "2 days, 3 hours, 0 minutes,
// 5 seconds". Leading zero units are dropped; once a unit is shown every
// smaller one is too. Negative durations read "overdue by ...".
func FormatRemaining(d time.Duration) string {
	prefix := ""
	if d < 0 {
		prefix = "overdue by "
		d = -d
	}
	secs := int64(d / time.Second)

	units := []struct {
		name string
		size int64
	}{
		{"week", 7 * 24 * 3600},
		{"day", 24 * 3600},
		{"hour", 3600},
		{"minute", 60},
	}
	var parts []string
	for _, u := range units {
		n := secs / u.size
		if n == 0 && len(parts) == 0 {
			continue
		}
		parts = append(parts, plural(n, u.name))
		secs -= n * u.size
	}
	parts = append(parts, plural(secs, "second"))
	return prefix + strings.Join(parts, ", ")
}

func plural(n int64, unit string) string {
	if n == 1 {
		return "1 " + unit
	}
	return fmt.Sprintf("%d %ss", n, unit)
}
