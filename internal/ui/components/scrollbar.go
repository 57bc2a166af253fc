package components

import (
	"strings"

	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/charmbracelet/lipgloss"
)

// RenderScrollbar draws a one-column gutter of the given height for a list
// of total entries showing the window [offset, offset+count). It is empty
// when the whole list is visible.
func RenderScrollbar(styles ui.Styles, height, total, count, offset int) string {
	if height < 1 || count >= total {
		return ""
	}
	thumb := min(max(height*count/total, 1), height)
	// The thumb touches the bottom exactly when the window does.
	top := (height - thumb) * offset / (total - count)
	top = min(max(top, 0), height-thumb)

	on := lipgloss.NewStyle().Foreground(styles.Theme.Focused).Render("┃")
	off := lipgloss.NewStyle().Foreground(styles.Theme.BorderSecondary).Render("│")
	cells := make([]string, height)
	for row := range cells {
		cells[row] = off
		if row >= top && row < top+thumb {
			cells[row] = on
		}
	}
	return strings.Join(cells, "\n")
}
