package store

import (
	"errors"
	"fmt"
	"sort"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/model"
)

// Records is the on-disk shape: one same-length array per field. An absent
// or empty array means the field is unknown, not that there are zero
// entities.
type Records struct {
	WorkspaceSlot       []int    `yaml:"workspace_slot,omitempty"`
	WorkspaceTitle      []string `yaml:"workspace_title,omitempty"`
	WorkspaceNumOfItem  []int    `yaml:"workspace_num_of_item,omitempty"`
	WorkspaceIsSelected []bool   `yaml:"workspace_is_selected,omitempty"`

	ItemSlot                 []int    `yaml:"item_slot,omitempty"`
	ItemWorkspace            []int    `yaml:"item_workspace,omitempty"`
	ItemText                 []string `yaml:"item_text,omitempty"`
	ItemExpireDatetimeString []string `yaml:"item_expire_datetime_string,omitempty"`
	ItemIsFinished           []bool   `yaml:"item_is_finished,omitempty"`
	ItemIsLate               []bool   `yaml:"item_is_late,omitempty"`
	ItemIsSelected           []bool   `yaml:"item_is_selected,omitempty"`
}

// ErrMalformed marks content that parsed but cannot describe a board.
var ErrMalformed = errors.New("malformed records")

// LengthMismatchError reports parallel arrays of one entity kind with
// different lengths.
type LengthMismatchError struct {
	Kind    string         // "workspace" or "item"
	Lengths map[string]int // non-empty arrays only
}

func (e *LengthMismatchError) Error() string {
	keys := make([]string, 0, len(e.Lengths))
	for k := range e.Lengths {
		keys = append(keys, k)
	}
	sort.Strings(keys)
	msg := fmt.Sprintf("%s arrays have different lengths:", e.Kind)
	for _, k := range keys {
		msg += fmt.Sprintf(" %s=%d", k, e.Lengths[k])
	}
	return msg
}

// Encode flattens the board into parallel arrays. Items are written
// workspace by workspace, in slot order.
func Encode(b *model.Board) Records {
	var r Records
	for wi, w := range b.Workspaces {
		r.WorkspaceSlot = append(r.WorkspaceSlot, w.Slot)
		r.WorkspaceTitle = append(r.WorkspaceTitle, w.Title)
		r.WorkspaceNumOfItem = append(r.WorkspaceNumOfItem, len(w.Items))
		r.WorkspaceIsSelected = append(r.WorkspaceIsSelected, w.Selected)

		for _, it := range w.Items {
			r.ItemSlot = append(r.ItemSlot, it.Slot)
			r.ItemWorkspace = append(r.ItemWorkspace, wi)
			r.ItemText = append(r.ItemText, it.Text)
			r.ItemExpireDatetimeString = append(r.ItemExpireDatetimeString, it.ExpiryText())
			r.ItemIsFinished = append(r.ItemIsFinished, it.Finished)
			r.ItemIsLate = append(r.ItemIsLate, it.Late)
			r.ItemIsSelected = append(r.ItemIsSelected, it.Selected)
		}
	}
	return r
}

// commonLength returns the shared length of the non-empty arrays, or a
// *LengthMismatchError.
func commonLength(kind string, lengths map[string]int) (int, error) {
	n := 0
	present := map[string]int{}
	for k, l := range lengths {
		if l > 0 {
			present[k] = l
		}
	}
	for _, l := range present {
		if n != 0 && l != n {
			return 0, &LengthMismatchError{Kind: kind, Lengths: present}
		}
		n = l
	}
	return n, nil
}

// Decode rebuilds a board from parallel arrays. now anchors expiry strings
// that carry only a time of day.
func Decode(r Records, now time.Time) (*model.Board, error) {
	nw, err := commonLength("workspace", map[string]int{
		"workspace_slot":        len(r.WorkspaceSlot),
		"workspace_title":       len(r.WorkspaceTitle),
		"workspace_num_of_item": len(r.WorkspaceNumOfItem),
		"workspace_is_selected": len(r.WorkspaceIsSelected),
	})
	if err != nil {
		return nil, err
	}
	ni, err := commonLength("item", map[string]int{
		"item_slot":                   len(r.ItemSlot),
		"item_workspace":              len(r.ItemWorkspace),
		"item_text":                   len(r.ItemText),
		"item_expire_datetime_string": len(r.ItemExpireDatetimeString),
		"item_is_finished":            len(r.ItemIsFinished),
		"item_is_late":                len(r.ItemIsLate),
		"item_is_selected":            len(r.ItemIsSelected),
	})
	if err != nil {
		return nil, err
	}

	type slotted struct {
		key   int
		order int
	}

	// Workspaces in file order, then stably ordered by recorded slot.
	ws := make([]model.Workspace, nw)
	wkeys := make([]slotted, nw)
	for i := 0; i < nw; i++ {
		ws[i].Title = fmt.Sprintf("Workspace %d", i+1)
		if len(r.WorkspaceTitle) > 0 {
			ws[i].Title = r.WorkspaceTitle[i]
		}
		if len(r.WorkspaceIsSelected) > 0 {
			ws[i].Selected = r.WorkspaceIsSelected[i]
		}
		wkeys[i] = slotted{key: i, order: i}
		if len(r.WorkspaceSlot) > 0 {
			wkeys[i].key = r.WorkspaceSlot[i]
		}
	}

	owners, err := itemOwners(r, nw, ni)
	if err != nil {
		return nil, err
	}
	if ni > 0 && nw == 0 {
		ws = append(ws, model.NewWorkspace(model.DefaultWorkspaceTitle))
		wkeys = append(wkeys, slotted{})
		nw = 1
	}

	ikeys := make([][]slotted, nw)
	items := make([][]model.Item, nw)
	for i := 0; i < ni; i++ {
		it := model.Item{}
		if len(r.ItemText) > 0 {
			it.Text = r.ItemText[i]
		}
		if len(r.ItemExpireDatetimeString) > 0 {
			it.SetExpiry(r.ItemExpireDatetimeString[i], now)
		}
		if len(r.ItemIsFinished) > 0 {
			it.Finished = r.ItemIsFinished[i]
		}
		if len(r.ItemIsLate) > 0 {
			it.Late = r.ItemIsLate[i]
		}
		if len(r.ItemIsSelected) > 0 {
			it.Selected = r.ItemIsSelected[i]
		}
		key := len(items[owners[i]])
		if len(r.ItemSlot) > 0 {
			key = r.ItemSlot[i]
		}
		o := owners[i]
		ikeys[o] = append(ikeys[o], slotted{key: key, order: len(items[o])})
		items[o] = append(items[o], it)
	}
	for w := range ws {
		ws[w].Items = sortBySlot(items[w], ikeys[w], func(s slotted) (int, int) { return s.key, s.order })
	}
	ws = sortBySlot(ws, wkeys, func(s slotted) (int, int) { return s.key, s.order })

	b := &model.Board{Workspaces: ws}
	model.Reslot(b.Workspaces)
	for w := range b.Workspaces {
		model.Reslot(b.Workspaces[w].Items)
	}
	b.Recount()
	return b, nil
}

// itemOwners resolves the workspace index of every item.
func itemOwners(r Records, nw, ni int) ([]int, error) {
	owners := make([]int, ni)
	for w, n := range r.WorkspaceNumOfItem {
		if n < 0 {
			return nil, fmt.Errorf("workspace %d has %d items: %w", w, n, ErrMalformed)
		}
	}
	switch {
	case len(r.ItemWorkspace) > 0:
		for i, w := range r.ItemWorkspace {
			if w < 0 || (nw > 0 && w >= nw) || (nw == 0 && w != 0) {
				return nil, fmt.Errorf("item %d references workspace %d of %d: %w", i, w, nw, ErrMalformed)
			}
			owners[i] = w
		}
	case len(r.WorkspaceNumOfItem) > 0 && runsCover(r.WorkspaceNumOfItem, ni):
		i := 0
		for w, n := range r.WorkspaceNumOfItem {
			for j := 0; j < n; j++ {
				owners[i] = w
				i++
			}
		}
	}
	return owners, nil
}

// runsCover reports whether the non-negative counts add up to exactly n.
// It stops as soon as the running total passes n, so huge counts cannot
// overflow.
func runsCover(counts []int, n int) bool {
	total := 0
	for _, c := range counts {
		if c > n-total {
			return false
		}
		total += c
	}
	return total == n
}

// sortBySlot orders vals by the recorded slot keys, breaking ties by the
// order they were read in.
func sortBySlot[T, K any](vals []T, keys []K, by func(K) (int, int)) []T {
	idx := make([]int, len(vals))
	for i := range idx {
		idx[i] = i
	}
	sort.SliceStable(idx, func(a, b int) bool {
		ka, oa := by(keys[idx[a]])
		kb, ob := by(keys[idx[b]])
		if ka != kb {
			return ka < kb
		}
		return oa < ob
	})
	out := make([]T, len(vals))
	for i, j := range idx {
		out[i] = vals[j]
	}
	return out
}
