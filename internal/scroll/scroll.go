// Package scroll computes the visible window of a list that may be taller
// than its viewport.
//
// The engine is driven once per redraw: a key handler queues a direction,
// the next redraw consumes it exactly once and writes back the new offset.
package scroll

// ReservedRows is the number of viewport rows taken by the pane border and
// the status line.
const ReservedRows = 3

// Direction is a pending one-row scroll request.
type Direction int

const (
	None Direction = iota
	Up
	Down
)

func (d Direction) String() string {
	switch d {
	case Up:
		return "up"
	case Down:
		return "down"
	default:
		return "none"
	}
}

// RenderCount returns how many entries of itemHeight rows fit in the
// viewport after the reserved rows, never more than n.
func RenderCount(n, itemHeight, viewportHeight int) int {
	if n <= 0 {
		return 0
	}
	if itemHeight < 1 {
		itemHeight = 1
	}
	space := viewportHeight - ReservedRows
	if space <= 0 {
		return 0
	}
	return min(n, space/itemHeight)
}

// Compute returns the new offset and the number of entries to render for
// a list of n entries.
func Compute(n, itemHeight, viewportHeight, offset int, pending Direction) (newOffset, count int) {
	if n <= 0 {
		return 0, 0
	}
	count = RenderCount(n, itemHeight, viewportHeight)

	switch pending {
	case Up:
		offset--
	case Down:
		if offset < n-count {
			offset++
		}
	}
	if offset < 0 {
		offset = 0
	}

	if overflow := offset + count - n; overflow > 0 {
		offset -= overflow
		if offset < 0 {
			offset = 0
		}
	}
	return offset, count
}

// EnsureVisible shifts offset by the minimum amount needed for cursor to
// fall inside [offset, offset+count). With count 0 the offset is returned
// unchanged.
func EnsureVisible(offset, count, cursor int) int {
	if count <= 0 {
		return offset
	}
	if cursor < offset {
		return cursor
	}
	if cursor >= offset+count {
		return cursor - count + 1
	}
	return offset
}

// Bounds returns the half-open slice range [start, end) of the window,
// clipped to n.
func Bounds(offset, count, n int) (start, end int) {
	start = max(0, min(offset, n))
	end = max(start, min(start+count, n))
	return start, end
}

// Relative maps cursor to its index inside the window, or -1 when the
// cursor is not visible.
func Relative(cursor, offset, count int) int {
	if cursor < offset || cursor >= offset+count {
		return -1
	}
	return cursor - offset
}

// State is the per-list scroll state owned by the engine.
type State struct {
	Offset  int
	Pending Direction
	// Count is the render count from the last Window call.
	Count int
}

// Queue records a direction for the next Window call. A later Queue before
// the window is recomputed replaces the earlier one.
func (s *State) Queue(d Direction) {
	s.Pending = d
}

// Window applies Compute to the state, writes back the offset and count,
// and clears the pending direction whether or not the offset moved.
func (s *State) Window(n, itemHeight, viewportHeight int) (offset, count int) {
	s.Offset, s.Count = Compute(n, itemHeight, viewportHeight, s.Offset, s.Pending)
	s.Pending = None
	return s.Offset, s.Count
}

// Follow runs Window and then keeps cursor inside the window.
func (s *State) Follow(n, itemHeight, viewportHeight, cursor int) (offset, count int) {
	s.Window(n, itemHeight, viewportHeight)
	if n > 0 {
		s.Offset = EnsureVisible(s.Offset, s.Count, cursor)
	}
	return s.Offset, s.Count
}

// Reset returns the state to the top of the list.
func (s *State) Reset() {
	*s = State{}
}
