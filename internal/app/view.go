package app

import (
	"fmt"

	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/Akashdeep-Patra/tdr/internal/ui/components"
	"github.com/charmbracelet/lipgloss"
)

// minSize is the smallest terminal the layout is drawn in.
const minSize = 10

// View renders the entire UI. It is a pure function: no I/O.
func (m Model) View() string {
	if m.width == 0 || m.height == 0 {
		return ""
	}
	if m.width <= minSize || m.height <= minSize {
		return ui.PlaceCentre(m.width, m.height, m.styles.Muted.Render("terminal too small"))
	}

	mode := m.modes.Current()
	if mode == common.ModeDisplayHelp {
		return components.RenderHelp(m.styles, m.modes.Help(), m.width, m.height)
	}

	bodyH := m.bodyHeight()
	wsW := min(max(m.width/4, 18), 40)
	itemW := m.width - wsW

	// The workspace pane keeps focus while its input box is open from it.
	wsFocused := mode == common.ModeDisplayWorkspace ||
		(mode.Ephemeral() && m.modes.Previous() == common.ModeDisplayWorkspace)

	ws, wsSel := m.VisibleWorkspaces()
	wsPane := components.RenderPane(m.styles, components.PaneData{
		Title:   "Workspaces",
		Focused: wsFocused,
		Total:   m.board.Len(),
		Offset:  m.wsScroll.Offset,
		Empty:   "a: add a workspace",
	}, components.RenderWorkspaceRows(m.styles, ws, wsSel, wsW-5), wsW, bodyH)

	items, itemSel := m.VisibleItems()
	itemTitle := "Items"
	if !m.board.Empty() {
		w := m.board.Workspaces[m.currentWorkspace]
		itemTitle = fmt.Sprintf("%s (%d)", w.Title, w.ItemCount)
	}
	itemPane := components.RenderPane(m.styles, components.PaneData{
		Title:   itemTitle,
		Focused: !wsFocused,
		Total:   len(m.items()),
		Offset:  m.itemScroll.Offset,
		Empty:   "a: add an item",
	}, components.RenderItemCards(m.styles, items, itemSel, m.cfg.ItemHeight, itemW-5, m.now()), itemW, bodyH)

	body := lipgloss.JoinHorizontal(lipgloss.Top, wsPane, itemPane)
	screen := lipgloss.JoinVertical(lipgloss.Left, body, m.statusBar(), m.helpBar())

	if mode.TextEntry() {
		screen = ui.PlaceCentre(m.width, m.height, m.inputDialog())
	}
	return screen
}

func (m Model) statusBar() string {
	data := components.StatusBarData{
		Mode:     m.modes.Current().String(),
		Dirty:    m.dirty,
		DataFile: m.store.Path(),
	}
	if !m.board.Empty() {
		w := m.board.Workspaces[m.currentWorkspace]
		data.Workspace = w.Title
		now := m.now()
		for _, it := range w.Items {
			data.Total++
			if it.Finished {
				data.Finished++
			} else if it.IsLate(now) {
				data.Late++
			}
		}
	}
	if m.statusMsg != "" && m.now().Before(m.statusExp) {
		data.Message = m.statusMsg
		data.IsError = m.statusErr
	}
	return components.RenderStatusBar(m.styles, data, m.width)
}

func (m Model) helpBar() string {
	var hints []string
	for _, b := range m.keys.ShortHelp(m.modes.Current()) {
		h := b.Help()
		hints = append(hints, ui.KeyHint(m.styles, h.Key, h.Desc))
	}
	return m.styles.HelpBar.MaxWidth(m.width).Render(ui.JoinNonEmpty("  ", hints...))
}

func (m Model) inputDialog() string {
	hint := ui.JoinNonEmpty("  ", "enter: save", "esc: cancel")
	switch m.modes.Current() {
	case common.ModeAddWorkspace:
		return components.RenderInputDialog(m.styles, "New workspace", hint,
			components.Field{Label: "Title", Input: m.titleInput})
	case common.ModeEditWorkspace:
		return components.RenderInputDialog(m.styles, "Rename workspace", hint,
			components.Field{Label: "Title", Input: m.titleInput})
	case common.ModeAddItem, common.ModeEditItem:
		title := "New item"
		if m.modes.Current() == common.ModeEditItem {
			title = "Edit item"
		}
		return components.RenderInputDialog(m.styles, title, hint+"  ctrl+d: switch field",
			components.Field{Label: "Text", Input: m.textInput},
			components.Field{Label: "Expires", Input: m.expiryInput})
	}
	return ""
}
