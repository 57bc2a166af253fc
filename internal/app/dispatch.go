package app

import (
	"fmt"
	"strings"

	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/Akashdeep-Patra/tdr/internal/scroll"
	"github.com/charmbracelet/bubbles/key"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
)

// dispatch routes a key to the handler for the current mode. Keys a mode
// does not bind are ignored. The caller runs settle afterwards.
func (m *Model) dispatch(msg tea.KeyMsg) tea.Cmd {
	mode := m.modes.Current()
	m.log.WithField("mode", mode).WithField("key", msg.String()).Debug("key")

	if key.Matches(msg, m.keys.ForceQuit) {
		m.log.Info("force quit, unsaved changes discarded")
		return tea.Quit
	}

	// Global keys are live in the display modes only, so text entry can
	// type q and ?.
	if mode == common.ModeDisplayWorkspace || mode == common.ModeDisplayItem {
		switch {
		case key.Matches(msg, m.keys.Quit):
			if err := m.save(); err != nil {
				m.fail(fmt.Errorf("not quitting: %w", err))
				return nil
			}
			return tea.Quit
		case key.Matches(msg, m.keys.Save):
			if err := m.save(); err != nil {
				return common.CmdErr(err)
			}
			return common.CmdInfo("saved " + m.store.Path())
		case key.Matches(msg, m.keys.Help):
			m.enter(common.ModeDisplayHelp)
			return nil
		}
	}

	switch mode {
	case common.ModeDisplayWorkspace:
		return m.handleDisplayWorkspace(msg)
	case common.ModeAddWorkspace, common.ModeEditWorkspace:
		return m.handleWorkspaceInput(msg)
	case common.ModeDisplayItem:
		return m.handleDisplayItem(msg)
	case common.ModeAddItem, common.ModeEditItem:
		return m.handleItemInput(msg)
	case common.ModeDisplayHelp:
		return m.handleHelp(msg)
	default:
		panic(fmt.Sprintf("app: no handler for %s", mode))
	}
}

// enter switches mode. A rejected transition is a dispatcher bug, since
// handlers only enter ephemeral modes from display modes.
func (m *Model) enter(mode common.Mode) {
	if err := m.modes.Enter(mode); err != nil {
		panic(err)
	}
}

// ── Workspace list ─────────────────────────────────────────────────────────

func (m *Model) handleDisplayWorkspace(msg tea.KeyMsg) tea.Cmd {
	b := m.board
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.currentWorkspace < b.Len()-1 {
			m.currentWorkspace++
			m.itemScroll.Reset()
		}
		m.wsScroll.Queue(scroll.Down)

	case key.Matches(msg, m.keys.Up):
		if m.currentWorkspace > 0 {
			m.currentWorkspace--
			m.itemScroll.Reset()
		}
		m.wsScroll.Queue(scroll.Up)

	case key.Matches(msg, m.keys.Enter):
		if b.EnsureWorkspace() {
			m.dirty = true
		}
		m.enter(common.ModeDisplayItem)
		m.currentItem = 0
		m.itemScroll.Reset()

	case key.Matches(msg, m.keys.Add):
		m.enter(common.ModeAddWorkspace)
		return m.openTitle("")

	case key.Matches(msg, m.keys.Edit):
		if b.Empty() {
			return nil
		}
		m.enter(common.ModeEditWorkspace)
		return m.openTitle(b.Workspace(m.currentWorkspace).Title)

	case key.Matches(msg, m.keys.Delete):
		if b.Empty() {
			return nil
		}
		m.must(b.RemoveWorkspace(m.currentWorkspace))
		if m.currentWorkspace > 0 {
			m.currentWorkspace--
		}
		m.currentItem = 0
		m.itemScroll.Reset()

	case key.Matches(msg, m.keys.MoveDown):
		if m.currentWorkspace < b.Len()-1 {
			m.must(b.MoveWorkspace(m.currentWorkspace, m.currentWorkspace+1))
			m.currentWorkspace++
			m.wsScroll.Queue(scroll.Down)
		}

	case key.Matches(msg, m.keys.MoveUp):
		if m.currentWorkspace > 0 {
			m.must(b.MoveWorkspace(m.currentWorkspace, m.currentWorkspace-1))
			m.currentWorkspace--
			m.wsScroll.Queue(scroll.Up)
		}
	}
	return nil
}

// must panics on a bounds error from the model; handlers check bounds
// first, so one here means the cursors are corrupt.
func (m *Model) must(err error) {
	if err != nil {
		panic(err)
	}
	m.dirty = true
}

func (m *Model) openTitle(value string) tea.Cmd {
	m.titleInput.SetValue(value)
	m.titleInput.CursorEnd()
	return m.titleInput.Focus()
}

func (m *Model) handleWorkspaceInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Enter):
		title := strings.TrimSpace(m.titleInput.Value())
		switch {
		case title == "":
			// Nothing typed: same as esc.
		case m.modes.Current() == common.ModeAddWorkspace:
			m.currentWorkspace = m.board.AddWorkspace(model.NewWorkspace(title))
			m.currentItem = 0
			m.itemScroll.Reset()
			m.dirty = true
		default:
			m.must(m.board.RenameWorkspace(m.currentWorkspace, title))
		}
		m.closeInputs()
		return nil

	case key.Matches(msg, m.keys.Back):
		m.closeInputs()
		return nil
	}

	var cmd tea.Cmd
	m.titleInput, cmd = m.titleInput.Update(msg)
	return cmd
}

// ── Item list ──────────────────────────────────────────────────────────────

func (m *Model) handleDisplayItem(msg tea.KeyMsg) tea.Cmd {
	b := m.board
	n := len(m.items())
	switch {
	case key.Matches(msg, m.keys.Down):
		if m.currentItem < n-1 {
			m.currentItem++
		}
		m.itemScroll.Queue(scroll.Down)

	case key.Matches(msg, m.keys.Up):
		if m.currentItem > 0 {
			m.currentItem--
		}
		m.itemScroll.Queue(scroll.Up)

	case key.Matches(msg, m.keys.WorkspaceDown):
		if m.currentWorkspace < b.Len()-1 {
			m.currentWorkspace++
		}
		m.currentItem = 0
		m.itemScroll.Reset()
		m.wsScroll.Queue(scroll.Down)

	case key.Matches(msg, m.keys.WorkspaceUp):
		if m.currentWorkspace > 0 {
			m.currentWorkspace--
		}
		m.currentItem = 0
		m.itemScroll.Reset()
		m.wsScroll.Queue(scroll.Up)

	case key.Matches(msg, m.keys.Add):
		m.enter(common.ModeAddItem)
		return m.openItem("", "")

	case key.Matches(msg, m.keys.Edit):
		if n == 0 {
			return nil
		}
		it := m.items()[m.currentItem]
		m.enter(common.ModeEditItem)
		return m.openItem(it.Text, it.ExpiryText())

	case key.Matches(msg, m.keys.Delete):
		if n == 0 {
			return nil
		}
		m.must(b.RemoveItem(m.currentWorkspace, m.currentItem))
		if m.currentItem > 0 {
			m.currentItem--
		}

	case key.Matches(msg, m.keys.ToggleFinished):
		if n > 0 {
			m.must(b.EditItem(m.currentWorkspace, m.currentItem, func(it *model.Item) { it.Finished = !it.Finished }))
		}

	case key.Matches(msg, m.keys.ToggleLate):
		if n > 0 {
			m.must(b.EditItem(m.currentWorkspace, m.currentItem, func(it *model.Item) { it.Late = !it.Late }))
		}

	case key.Matches(msg, m.keys.MoveDown):
		if m.currentItem < n-1 {
			m.must(b.MoveItem(m.currentWorkspace, m.currentItem, m.currentItem+1))
			m.currentItem++
			m.itemScroll.Queue(scroll.Down)
		}

	case key.Matches(msg, m.keys.MoveUp):
		if n > 0 && m.currentItem > 0 {
			m.must(b.MoveItem(m.currentWorkspace, m.currentItem, m.currentItem-1))
			m.currentItem--
			m.itemScroll.Queue(scroll.Up)
		}

	case key.Matches(msg, m.keys.Copy):
		return m.copyItem()

	case key.Matches(msg, m.keys.NewWorkspace):
		m.enter(common.ModeAddWorkspace)
		return m.openTitle("")

	case key.Matches(msg, m.keys.Workspaces):
		m.enter(common.ModeDisplayWorkspace)
	}
	return nil
}

func (m *Model) openItem(text, expiry string) tea.Cmd {
	m.textInput.SetValue(text)
	m.textInput.CursorEnd()
	m.expiryInput.SetValue(expiry)
	m.expiryInput.CursorEnd()
	m.expiryInput.Blur()
	m.expiryFocused = false
	return m.textInput.Focus()
}

func (m *Model) handleItemInput(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.SwitchField):
		m.expiryFocused = !m.expiryFocused
		if m.expiryFocused {
			m.textInput.Blur()
			return m.expiryInput.Focus()
		}
		m.expiryInput.Blur()
		return m.textInput.Focus()

	case key.Matches(msg, m.keys.Enter):
		m.commitItem()
		m.closeInputs()
		return nil

	case key.Matches(msg, m.keys.Back):
		m.closeInputs()
		return nil
	}

	var cmd tea.Cmd
	if m.expiryFocused {
		m.expiryInput, cmd = m.expiryInput.Update(msg)
	} else {
		m.textInput, cmd = m.textInput.Update(msg)
	}
	return cmd
}

// commitItem applies the add/edit buffers to the board. An empty text
// cancels an add and keeps the old text on edit; an unparsable expiry
// means no expiry.
func (m *Model) commitItem() {
	now := m.now()
	text := strings.TrimSpace(m.textInput.Value())
	expiry := strings.TrimSpace(m.expiryInput.Value())
	adding := m.modes.Current() == common.ModeAddItem
	if adding && text == "" {
		return
	}
	if expiry != "" {
		if _, ok := model.ParseExpiry(expiry, now); !ok {
			m.info(fmt.Sprintf("expiry %q not understood, saved without one", expiry))
		}
	}

	if adding {
		if m.board.EnsureWorkspace() {
			m.currentWorkspace = 0
		}
		idx, err := m.board.AddItem(m.currentWorkspace, model.NewItem(text, expiry, now))
		m.must(err)
		m.currentItem = idx
		return
	}

	if !m.hasItems() {
		return
	}
	m.must(m.board.EditItem(m.currentWorkspace, m.currentItem, func(it *model.Item) {
		if text != "" {
			it.Text = text
		}
		it.SetExpiry(expiry, now)
	}))
}

// closeInputs blurs every buffer and returns to the mode the input box was
// opened from.
func (m *Model) closeInputs() {
	for _, in := range []*textinput.Model{&m.titleInput, &m.textInput, &m.expiryInput} {
		in.Blur()
		in.Reset()
	}
	m.expiryFocused = false
	m.modes.Return()
}

// ── Help ───────────────────────────────────────────────────────────────────

func (m *Model) handleHelp(msg tea.KeyMsg) tea.Cmd {
	switch {
	case key.Matches(msg, m.keys.Down), key.Matches(msg, m.keys.Up):
		m.modes.CycleHelp()
	case key.Matches(msg, m.keys.Back), key.Matches(msg, m.keys.Help), key.Matches(msg, m.keys.Quit):
		m.modes.Return()
	}
	return nil
}
