package model

import "fmt"

// DefaultWorkspaceTitle names the workspace synthesized when an item is
// added, or a workspace entered, before any workspace exists.
const DefaultWorkspaceTitle = "default"

// Board is the whole two-level collection: workspaces and their items.
type Board struct {
	Workspaces []Workspace
}

// NewBoard returns an empty board.
func NewBoard() *Board {
	return &Board{}
}

// Len returns the number of workspaces.
func (b *Board) Len() int { return len(b.Workspaces) }

// Empty reports whether the board has no workspaces.
func (b *Board) Empty() bool { return len(b.Workspaces) == 0 }

// Workspace returns a pointer to the workspace at index. It panics on an
// invalid index: callers hold cursors that settle keeps in range.
func (b *Board) Workspace(index int) *Workspace {
	if index < 0 || index >= len(b.Workspaces) {
		panic(fmt.Sprintf("model: workspace %d of %d: %v", index, len(b.Workspaces), ErrIndexOutOfRange))
	}
	return &b.Workspaces[index]
}

// AddWorkspace appends a workspace and returns its index.
func (b *Board) AddWorkspace(w Workspace) int {
	b.Workspaces = Insert(b.Workspaces, w)
	Reslot(b.Workspaces[len(b.Workspaces)-1].Items)
	return len(b.Workspaces) - 1
}

// EnsureWorkspace synthesizes the default workspace on an empty board.
// It reports whether one was created.
func (b *Board) EnsureWorkspace() bool {
	if !b.Empty() {
		return false
	}
	b.AddWorkspace(NewWorkspace(DefaultWorkspaceTitle))
	return true
}

// RemoveWorkspace deletes the workspace at index together with its items.
func (b *Board) RemoveWorkspace(index int) error {
	ws, err := Remove(b.Workspaces, index)
	if err != nil {
		return fmt.Errorf("remove workspace: %w", err)
	}
	b.Workspaces = ws
	return nil
}

// RenameWorkspace sets the title of the workspace at index.
func (b *Board) RenameWorkspace(index int, title string) error {
	return Edit(b.Workspaces, index, func(w *Workspace) { w.Title = title })
}

// MoveWorkspace swaps the workspace at from with the one at to.
func (b *Board) MoveWorkspace(from, to int) error {
	return Move(b.Workspaces, from, to)
}

// AddItem appends an item to the workspace at ws and returns its index.
func (b *Board) AddItem(ws int, it Item) (int, error) {
	var idx int
	err := Edit(b.Workspaces, ws, func(w *Workspace) {
		w.Items = Insert(w.Items, it)
		idx = len(w.Items) - 1
	})
	if err != nil {
		return 0, fmt.Errorf("add item: %w", err)
	}
	return idx, nil
}

// RemoveItem deletes item index from the workspace at ws.
func (b *Board) RemoveItem(ws, index int) error {
	var rmErr error
	err := Edit(b.Workspaces, ws, func(w *Workspace) {
		w.Items, rmErr = Remove(w.Items, index)
	})
	if err == nil {
		err = rmErr
	}
	if err != nil {
		return fmt.Errorf("remove item: %w", err)
	}
	return nil
}

// EditItem applies fn to item index of the workspace at ws.
func (b *Board) EditItem(ws, index int, fn func(*Item)) error {
	var editErr error
	err := Edit(b.Workspaces, ws, func(w *Workspace) {
		editErr = Edit(w.Items, index, fn)
	})
	if err == nil {
		err = editErr
	}
	if err != nil {
		return fmt.Errorf("edit item: %w", err)
	}
	return nil
}

// MoveItem swaps two items inside the workspace at ws.
func (b *Board) MoveItem(ws, from, to int) error {
	var mvErr error
	err := Edit(b.Workspaces, ws, func(w *Workspace) {
		mvErr = Move(w.Items, from, to)
	})
	if err == nil {
		err = mvErr
	}
	return err
}

// Recount recomputes the derived ItemCount of every workspace.
func (b *Board) Recount() {
	for i := range b.Workspaces {
		b.Workspaces[i].ItemCount = len(b.Workspaces[i].Items)
	}
}

// SelectAt sets the selection flags: the workspace at ws is selected, item
// at it is selected within that workspace, and every item of every other
// workspace is cleared.
func (b *Board) SelectAt(ws, it int) {
	Select(b.Workspaces, ws)
	for i := range b.Workspaces {
		if i == ws {
			Select(b.Workspaces[i].Items, it)
		} else {
			Select(b.Workspaces[i].Items, -1)
		}
	}
}

// SelectedWorkspace returns the index of the first selected workspace,
// or 0 when none is flagged.
func (b *Board) SelectedWorkspace() int {
	for i := range b.Workspaces {
		if b.Workspaces[i].Selected {
			return i
		}
	}
	return 0
}

// SelectedItem returns the index of the first selected item in the
// workspace at ws, or 0.
func (b *Board) SelectedItem(ws int) int {
	if ws < 0 || ws >= len(b.Workspaces) {
		return 0
	}
	for i, it := range b.Workspaces[ws].Items {
		if it.Selected {
			return i
		}
	}
	return 0
}

// TotalItems counts items across every workspace.
func (b *Board) TotalItems() int {
	n := 0
	for _, w := range b.Workspaces {
		n += len(w.Items)
	}
	return n
}
