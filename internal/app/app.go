// Package app is the top-level Bubbletea model: it owns the board, the mode
// machine and both scroll windows, and routes every key through the
// dispatcher in dispatch.go.
package app

import (
	"errors"
	"fmt"
	"io"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/common"
	"github.com/Akashdeep-Patra/tdr/internal/config"
	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/Akashdeep-Patra/tdr/internal/scroll"
	"github.com/Akashdeep-Patra/tdr/internal/store"
	"github.com/Akashdeep-Patra/tdr/internal/ui"
	"github.com/Akashdeep-Patra/tdr/internal/ui/components"
	"github.com/atotto/clipboard"
	"github.com/charmbracelet/bubbles/textinput"
	tea "github.com/charmbracelet/bubbletea"
	"github.com/sirupsen/logrus"
)

// Model is the top-level Bubbletea model.
type Model struct {
	store  store.Store
	cfg    *config.Config
	styles ui.Styles
	keys   KeyMap
	log    *logrus.Entry

	now       func() time.Time
	clipboard func(string) error

	width  int
	height int

	board *model.Board
	modes common.ModeState

	// Cursors into board; settle keeps them in range.
	currentWorkspace int
	currentItem      int

	wsScroll   scroll.State
	itemScroll scroll.State

	titleInput    textinput.Model
	textInput     textinput.Model
	expiryInput   textinput.Model
	expiryFocused bool

	statusMsg string
	statusErr bool
	statusExp time.Time

	// dirty is set by every mutation and cleared by a successful save.
	dirty         bool
	reloadPending bool
}

// New creates the application model around an already loaded board.
func New(st store.Store, b *model.Board, cfg *config.Config, styles ui.Styles, log *logrus.Entry) Model {
	if b == nil {
		b = model.NewBoard()
	}
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	m := Model{
		store:     st,
		cfg:       cfg,
		styles:    styles,
		keys:      DefaultKeyMap(),
		log:       log.WithField("component", "app"),
		now:       time.Now,
		clipboard: clipboard.WriteAll,
		board:     b,
		modes:     common.NewModeState(common.InitialMode(b.Len())),

		titleInput:  components.NewInput(styles, "Workspace title", 64),
		textInput:   components.NewInput(styles, "What needs doing?", 256),
		expiryInput: components.NewInput(styles, "YYYY-MM-DD, HH:MM:SS or both", 19),
	}
	m.currentWorkspace = b.SelectedWorkspace()
	m.currentItem = b.SelectedItem(m.currentWorkspace)
	m.settle()
	return m
}

// Init starts the redraw heartbeat.
func (m Model) Init() tea.Cmd {
	return m.tick()
}

func (m Model) tick() tea.Cmd {
	return tea.Tick(m.cfg.RefreshInterval, func(time.Time) tea.Msg { return common.TickMsg{} })
}

// Update processes messages.
func (m Model) Update(msg tea.Msg) (tea.Model, tea.Cmd) {
	switch msg := msg.(type) {
	case tea.WindowSizeMsg:
		m.width = msg.Width
		m.height = msg.Height
		m.settle()
		return m, nil

	case tea.KeyMsg:
		cmd := m.dispatch(msg)
		m.settle()
		if m.dirty && m.cfg.Autosave && !m.modes.Current().Ephemeral() {
			if err := m.save(); err != nil {
				m.fail(err)
			}
		}
		if m.reloadPending && !m.modes.Current().Ephemeral() {
			m.reloadPending = false
			m.reload()
		}
		return m, cmd

	case common.TickMsg:
		if m.statusMsg != "" && !m.now().Before(m.statusExp) {
			m.statusMsg = ""
		}
		return m, m.tick()

	case common.StoreChangedMsg:
		if m.modes.Current().Ephemeral() {
			m.reloadPending = true
			return m, nil
		}
		m.reload()
		return m, nil

	case common.ErrMsg:
		m.fail(msg.Err)
		return m, nil

	case common.InfoMsg:
		m.info(msg.Text)
		return m, nil
	}
	return m, nil
}

// settle re-derives everything that depends on the board: cursor ranges,
// item counts, selection flags and both scroll windows.
func (m *Model) settle() {
	b := m.board
	if b.Empty() {
		m.currentWorkspace, m.currentItem = 0, 0
	} else {
		m.currentWorkspace = clamp(m.currentWorkspace, b.Len()-1)
		m.currentItem = clamp(m.currentItem, len(b.Workspace(m.currentWorkspace).Items)-1)
	}

	b.Recount()
	if !b.Empty() {
		sel := -1
		if m.hasItems() {
			sel = m.currentItem
		}
		b.SelectAt(m.currentWorkspace, sel)
	}

	vh := m.bodyHeight()
	m.wsScroll.Follow(b.Len(), m.cfg.WorkspaceHeight, vh, m.currentWorkspace)
	m.itemScroll.Follow(len(m.items()), m.cfg.ItemHeight, vh, m.currentItem)
}

func clamp(v, hi int) int {
	if hi < 0 || v < 0 {
		return 0
	}
	return min(v, hi)
}

// bodyHeight is the height of the list panes: the screen minus the status
// and help bars.
func (m Model) bodyHeight() int {
	return max(m.height-2, 0)
}

// items returns the items of the current workspace, or nil.
func (m Model) items() []model.Item {
	if m.board.Empty() {
		return nil
	}
	return m.board.Workspaces[m.currentWorkspace].Items
}

func (m Model) hasItems() bool { return len(m.items()) > 0 }

// VisibleWorkspaces returns the workspaces inside the scroll window and the
// selected index within that slice (-1 when none is visible).
func (m Model) VisibleWorkspaces() ([]model.Workspace, int) {
	start, end := scroll.Bounds(m.wsScroll.Offset, m.wsScroll.Count, m.board.Len())
	return m.board.Workspaces[start:end], scroll.Relative(m.currentWorkspace, start, end-start)
}

// VisibleItems returns the current workspace's items inside the scroll
// window and the selected index within that slice.
func (m Model) VisibleItems() ([]model.Item, int) {
	items := m.items()
	start, end := scroll.Bounds(m.itemScroll.Offset, m.itemScroll.Count, len(items))
	if len(items) == 0 {
		return nil, -1
	}
	return items[start:end], scroll.Relative(m.currentItem, start, end-start)
}

// Board exposes the board for callers that render it outside the TUI.
func (m Model) Board() *model.Board { return m.board }

// Mode returns the current mode.
func (m Model) Mode() common.Mode { return m.modes.Current() }

// save writes the board. The in-memory state stays authoritative on
// failure.
func (m *Model) save() error {
	if err := m.store.Save(m.board); err != nil {
		return err
	}
	m.dirty = false
	return nil
}

// reload replaces the board with the file's content when another process
// changed it. Unsaved local edits win: the user is warned instead.
func (m *Model) reload() {
	if !m.store.Changed() {
		return
	}
	if m.dirty {
		m.fail(errors.New("data file changed on disk; ctrl+s overwrites it"))
		return
	}
	b, err := m.store.Load()
	if err != nil {
		m.log.WithError(err).Warn("reload failed")
		m.fail(err)
		return
	}
	m.board = b
	m.currentWorkspace = b.SelectedWorkspace()
	m.currentItem = b.SelectedItem(m.currentWorkspace)
	m.settle()
	m.log.Info("reloaded board after external change")
	m.info("reloaded " + m.store.Path())
}

func (m *Model) info(text string) {
	m.statusMsg = text
	m.statusErr = false
	m.statusExp = m.now().Add(m.cfg.StatusTimeout)
}

func (m *Model) fail(err error) {
	m.statusMsg = err.Error()
	m.statusErr = true
	m.statusExp = m.now().Add(m.cfg.StatusTimeout)
}

// copyItem puts the selected item's text on the system clipboard and
// reports the outcome through the status bar.
func (m *Model) copyItem() tea.Cmd {
	if !m.hasItems() {
		return nil
	}
	text := m.items()[m.currentItem].Text
	if err := m.clipboard(text); err != nil {
		m.log.WithError(err).Warn("clipboard unavailable")
		return common.CmdErr(fmt.Errorf("copy: %w", err))
	}
	return common.CmdInfo("copied to clipboard")
}
