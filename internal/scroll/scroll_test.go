package scroll

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestRenderCount(t *testing.T) {
	tests := []struct {
		name                string
		n, itemH, viewportH int
		want                int
	}{
		{"empty list", 0, 3, 40, 0},
		{"fits entirely", 4, 3, 40, 4},
		{"exact fit", 4, 3, 15, 4},
		{"one short of exact fit", 4, 3, 14, 3},
		{"tiny viewport", 10, 3, 2, 0},
		{"reserved only", 10, 1, 3, 0},
		{"zero item height treated as one", 10, 0, 8, 5},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.want, RenderCount(tt.n, tt.itemH, tt.viewportH))
		})
	}
}

func TestComputeEmptyList(t *testing.T) {
	for _, d := range []Direction{None, Up, Down} {
		off, count := Compute(0, 3, 20, 5, d)
		assert.Equal(t, 0, off, d.String())
		assert.Equal(t, 0, count, d.String())
	}
}

func TestComputeUpFloorsAtZero(t *testing.T) {
	off, _ := Compute(5, 1, 5, 0, Up)
	assert.Equal(t, 0, off)
}

func TestComputeClampsAfterTailDeletion(t *testing.T) {
	// 2 of 5 fit, window at the tail, then the list shrinks to 3.
	off, count := Compute(3, 1, 5, 3, None)
	assert.Equal(t, 2, count)
	assert.Equal(t, 1, off)
}

func TestQueuedDownStopsAtTail(t *testing.T) {
	// viewport of 5 rows leaves 2 rows for items of height 1.
	var s State
	for i := 0; i < 3; i++ {
		s.Queue(Down)
		s.Window(5, 1, 5)
	}
	assert.Equal(t, 3, s.Offset)
	assert.Equal(t, None, s.Pending)

	s.Queue(Down)
	s.Window(5, 1, 5)
	assert.Equal(t, 3, s.Offset)
}

func TestPendingIsConsumedOnce(t *testing.T) {
	var s State
	s.Queue(Down)
	s.Window(10, 1, 6)
	assert.Equal(t, 1, s.Offset)

	// A redraw without a new key press must not scroll again.
	s.Window(10, 1, 6)
	assert.Equal(t, 1, s.Offset)
	assert.Equal(t, None, s.Pending)
}

func TestPendingClearedEvenWithoutMovement(t *testing.T) {
	var s State
	s.Queue(Up)
	s.Window(10, 1, 6)
	assert.Equal(t, 0, s.Offset)
	assert.Equal(t, None, s.Pending)
}

func TestComputeNeverLeavesBounds(t *testing.T) {
	for n := 0; n <= 12; n++ {
		for vh := 0; vh <= 20; vh++ {
			for itemH := 1; itemH <= 3; itemH++ {
				for off := 0; off <= 14; off++ {
					for _, d := range []Direction{None, Up, Down} {
						got, count := Compute(n, itemH, vh, off, d)
						require.GreaterOrEqual(t, got, 0)
						require.LessOrEqual(t, got+count, max(n, got),
							"n=%d vh=%d h=%d off=%d dir=%s", n, vh, itemH, off, d)
						if count > 0 {
							require.LessOrEqual(t, got+count, n)
						}
					}
				}
			}
		}
	}
}

func TestEnsureVisible(t *testing.T) {
	assert.Equal(t, 2, EnsureVisible(4, 3, 2))
	assert.Equal(t, 4, EnsureVisible(4, 3, 6))
	assert.Equal(t, 5, EnsureVisible(4, 3, 7))
	assert.Equal(t, 4, EnsureVisible(4, 0, 9))
}

func TestFollowKeepsCursorVisibleAfterResize(t *testing.T) {
	s := State{Offset: 0}
	off, count := s.Follow(10, 1, 13, 8)
	require.Equal(t, 10, count)
	assert.Equal(t, 0, off)

	// Shrinking the terminal must drag the window to the cursor.
	off, count = s.Follow(10, 1, 6, 8)
	assert.Equal(t, 3, count)
	assert.Equal(t, 6, off)
	assert.Equal(t, 2, Relative(8, off, count))
}

func TestBoundsAndRelative(t *testing.T) {
	start, end := Bounds(3, 4, 5)
	assert.Equal(t, 3, start)
	assert.Equal(t, 5, end)

	start, end = Bounds(0, 0, 0)
	assert.Equal(t, 0, start)
	assert.Equal(t, 0, end)

	assert.Equal(t, -1, Relative(1, 2, 3))
	assert.Equal(t, 0, Relative(2, 2, 3))
	assert.Equal(t, -1, Relative(5, 2, 3))
}
