package model

import (
	"strings"
	"time"
)

// Workspace is a named group of items.
type Workspace struct {
	Slot      int
	Title     string
	ItemCount int // derived, see Board.Recount
	Selected  bool
	Items     []Item
}

func (w *Workspace) SlotIndex() int     { return w.Slot }
func (w *Workspace) SetSlot(i int)      { w.Slot = i }
func (w *Workspace) SetSelected(v bool) { w.Selected = v }

// NewWorkspace returns a workspace with no items.
func NewWorkspace(title string) Workspace {
	return Workspace{Title: title}
}

// Item is a single task inside a workspace.
type Item struct {
	Slot      int
	Text      string
	HasExpiry bool
	Expiry    time.Time
	Finished  bool
	// Late is the user-toggled marker; IsLate also reports expired items.
	Late     bool
	Selected bool
}

func (i *Item) SlotIndex() int     { return i.Slot }
func (i *Item) SetSlot(s int)      { i.Slot = s }
func (i *Item) SetSelected(v bool) { i.Selected = v }

// NewItem builds an item from user input. expiryText is parsed with
// ParseExpiry; unrecognised text leaves the item without an expiry.
func NewItem(text, expiryText string, now time.Time) Item {
	it := Item{Text: text}
	it.SetExpiry(expiryText, now)
	return it
}

// SetExpiry replaces the expiry from user input.
func (i *Item) SetExpiry(text string, now time.Time) {
	i.Expiry, i.HasExpiry = ParseExpiry(text, now)
}

// IsLate reports whether the item is marked late or its expiry has passed.
func (i Item) IsLate(now time.Time) bool {
	if i.Late {
		return true
	}
	return i.HasExpiry && i.Expiry.Before(now)
}

// Remaining returns the time until expiry. Negative once expired; zero
// when the item has no expiry.
func (i Item) Remaining(now time.Time) time.Duration {
	if !i.HasExpiry {
		return 0
	}
	return i.Expiry.Sub(now)
}

// ExpiryText returns the canonical expiry string, or "" without one.
func (i Item) ExpiryText() string {
	if !i.HasExpiry {
		return ""
	}
	return FormatExpiry(i.Expiry)
}

const (
	dateLayout     = "2006-01-02"
	timeLayout     = "15:04:05"
	dateTimeLayout = "2006-01-02 15:04:05"
)

// ParseExpiry accepts "YYYY-MM-DD" (midnight), "HH:MM:SS" (today) and
// "YYYY-MM-DD HH:MM:SS", interpreted in now's location.
func ParseExpiry(text string, now time.Time) (time.Time, bool) {
	text = strings.TrimSpace(text)
	if text == "" {
		return time.Time{}, false
	}
	loc := now.Location()
	if t, err := time.ParseInLocation(dateTimeLayout, text, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(dateLayout, text, loc); err == nil {
		return t, true
	}
	if t, err := time.ParseInLocation(timeLayout, text, loc); err == nil {
		y, m, d := now.Date()
		return time.Date(y, m, d, t.Hour(), t.Minute(), t.Second(), 0, loc), true
	}
	return time.Time{}, false
}

// FormatExpiry renders t in the "YYYY-MM-DD HH:MM:SS" form ParseExpiry reads back.
func FormatExpiry(t time.Time) string {
	return t.Format(dateTimeLayout)
}
