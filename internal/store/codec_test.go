package store

import (
	"fmt"
	"math"
	"math/rand/v2"
	"strings"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

var fixedNow = time.Date(2026, 5, 1, 10, 0, 0, 0, time.UTC)

func sampleBoard(t *testing.T) *model.Board {
	t.Helper()
	b := model.NewBoard()
	home := b.AddWorkspace(model.NewWorkspace("home"))
	work := b.AddWorkspace(model.NewWorkspace("work"))

	_, err := b.AddItem(home, model.NewItem("Buy milk", "", fixedNow))
	require.NoError(t, err)
	_, err = b.AddItem(home, model.NewItem("Pay rent", "2026-05-03", fixedNow))
	require.NoError(t, err)
	_, err = b.AddItem(work, model.NewItem("Ship release", "2026-05-01 17:30:00", fixedNow))
	require.NoError(t, err)
	require.NoError(t, b.EditItem(home, 0, func(it *model.Item) { it.Finished = true }))
	require.NoError(t, b.EditItem(work, 0, func(it *model.Item) { it.Late = true }))

	b.Recount()
	b.SelectAt(work, 0)
	return b
}

func assertBoardsEqual(t *testing.T, want, got *model.Board) {
	t.Helper()
	require.Equal(t, want.Len(), got.Len())
	for w := range want.Workspaces {
		ww, gw := want.Workspaces[w], got.Workspaces[w]
		assert.Equal(t, ww.Slot, gw.Slot)
		assert.Equal(t, ww.Title, gw.Title)
		assert.Equal(t, ww.ItemCount, gw.ItemCount)
		assert.Equal(t, ww.Selected, gw.Selected)
		require.Len(t, gw.Items, len(ww.Items))
		for i := range ww.Items {
			wi, gi := ww.Items[i], gw.Items[i]
			assert.Equal(t, wi.Slot, gi.Slot)
			assert.Equal(t, wi.Text, gi.Text)
			assert.Equal(t, wi.HasExpiry, gi.HasExpiry)
			assert.True(t, wi.Expiry.Equal(gi.Expiry), "expiry %v != %v", wi.Expiry, gi.Expiry)
			assert.Equal(t, wi.Finished, gi.Finished)
			assert.Equal(t, wi.Late, gi.Late)
			assert.Equal(t, wi.Selected, gi.Selected)
		}
	}
}

func TestRoundTrip(t *testing.T) {
	want := sampleBoard(t)

	data, err := Marshal(want)
	require.NoError(t, err)
	got, err := Unmarshal(data, fixedNow)
	require.NoError(t, err)

	assertBoardsEqual(t, want, got)
}

func TestRoundTripRandomBoards(t *testing.T) {
	texts := []string{"Buy milk", "a: b", "#tag", "  padded", "日本語", "yes", "null", "- dash", "line\nbreak"}
	r := rand.New(rand.NewPCG(13, 17))
	for round := 0; round < 200; round++ {
		b := model.NewBoard()
		for w := r.IntN(5); w > 0; w-- {
			ws := b.AddWorkspace(model.NewWorkspace(fmt.Sprintf("ws %d", r.IntN(100))))
			for n := r.IntN(6); n > 0; n-- {
				expiry := ""
				switch r.IntN(3) {
				case 1:
					expiry = fmt.Sprintf("2026-%02d-%02d", 1+r.IntN(12), 1+r.IntN(28))
				case 2:
					expiry = fmt.Sprintf("2026-%02d-%02d %02d:%02d:%02d",
						1+r.IntN(12), 1+r.IntN(28), r.IntN(24), r.IntN(60), r.IntN(60))
				}
				idx, err := b.AddItem(ws, model.NewItem(texts[r.IntN(len(texts))], expiry, fixedNow))
				require.NoError(t, err)
				finished, late := r.IntN(2) == 0, r.IntN(2) == 0
				require.NoError(t, b.EditItem(ws, idx, func(it *model.Item) {
					it.Finished = finished
					it.Late = late
				}))
			}
		}
		b.Recount()
		if !b.Empty() {
			ws := r.IntN(b.Len())
			sel := -1
			if n := len(b.Workspaces[ws].Items); n > 0 {
				sel = r.IntN(n)
			}
			b.SelectAt(ws, sel)
		}

		data, err := Marshal(b)
		require.NoError(t, err)
		got, err := Unmarshal(data, fixedNow)
		require.NoError(t, err, "round %d:\n%s", round, data)
		assertBoardsEqual(t, b, got)
	}
}

func TestMarshalKeyOrder(t *testing.T) {
	data, err := Marshal(sampleBoard(t))
	require.NoError(t, err)

	s := string(data)
	order := []string{
		"workspace_slot:", "workspace_title:", "workspace_num_of_item:", "workspace_is_selected:",
		"item_slot:", "item_workspace:", "item_text:", "item_expire_datetime_string:",
		"item_is_finished:", "item_is_late:", "item_is_selected:",
	}
	last := -1
	for _, key := range order {
		idx := strings.Index(s, key)
		require.GreaterOrEqual(t, idx, 0, key)
		assert.Greater(t, idx, last, key)
		last = idx
	}
}

func TestDecodeOlderSchemaSubset(t *testing.T) {
	tests := []struct {
		name  string
		yaml  string
		check func(t *testing.T, b *model.Board)
	}{
		{
			name: "single-workspace file without workspace arrays",
			yaml: `
item_slot: [0, 1]
item_text: [a, b]
item_expire_datetime_string: ["", "2026-05-02"]
`,
			check: func(t *testing.T, b *model.Board) {
				require.Equal(t, 1, b.Len())
				assert.Equal(t, model.DefaultWorkspaceTitle, b.Workspaces[0].Title)
				require.Len(t, b.Workspaces[0].Items, 2)
				assert.True(t, b.Workspaces[0].Items[1].HasExpiry)
				assert.Equal(t, 2, b.Workspaces[0].ItemCount)
			},
		},
		{
			name: "membership implied by workspace_num_of_item",
			yaml: `
workspace_slot: [0, 1]
workspace_title: [home, work]
workspace_num_of_item: [1, 2]
item_text: [milk, deploy, review]
item_is_finished: [false, true, false]
`,
			check: func(t *testing.T, b *model.Board) {
				require.Equal(t, 2, b.Len())
				assert.Equal(t, []string{"milk"}, texts(b.Workspaces[0].Items))
				assert.Equal(t, []string{"deploy", "review"}, texts(b.Workspaces[1].Items))
				assert.True(t, b.Workspaces[1].Items[0].Finished)
			},
		},
		{
			name: "unknown titles are synthesized",
			yaml: `
workspace_slot: [0, 1]
`,
			check: func(t *testing.T, b *model.Board) {
				require.Equal(t, 2, b.Len())
				assert.Equal(t, "Workspace 1", b.Workspaces[0].Title)
				assert.Empty(t, b.Workspaces[1].Items)
			},
		},
		{
			name: "out of order slots are normalised",
			yaml: `
workspace_slot: [4, 1]
workspace_title: [second, first]
item_slot: [7, 2]
item_workspace: [1, 1]
item_text: [later, sooner]
`,
			check: func(t *testing.T, b *model.Board) {
				require.Equal(t, 2, b.Len())
				assert.Equal(t, "first", b.Workspaces[0].Title)
				assert.Equal(t, 0, b.Workspaces[0].Slot)
				assert.Equal(t, 1, b.Workspaces[1].Slot)
				assert.Equal(t, []string{"sooner", "later"}, texts(b.Workspaces[0].Items))
				assert.Equal(t, 1, b.Workspaces[0].Items[1].Slot)
			},
		},
		{
			name: "empty document",
			yaml: "",
			check: func(t *testing.T, b *model.Board) {
				assert.True(t, b.Empty())
			},
		},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			b, err := Unmarshal([]byte(tt.yaml), fixedNow)
			require.NoError(t, err)
			tt.check(t, b)
		})
	}
}

func texts(items []model.Item) []string {
	out := make([]string, len(items))
	for i, it := range items {
		out[i] = it.Text
	}
	return out
}

func TestDecodeLengthMismatch(t *testing.T) {
	_, err := Unmarshal([]byte(`
item_slot: [0, 1, 2]
item_text: [a, b]
`), fixedNow)

	var mismatch *LengthMismatchError
	require.ErrorAs(t, err, &mismatch)
	assert.Equal(t, "item", mismatch.Kind)
	assert.Equal(t, map[string]int{"item_slot": 3, "item_text": 2}, mismatch.Lengths)
	assert.Contains(t, err.Error(), "item_slot=3 item_text=2")
}

func TestDecodeDanglingWorkspace(t *testing.T) {
	_, err := Unmarshal([]byte(`
workspace_title: [only]
item_workspace: [0, 3]
item_text: [a, b]
`), fixedNow)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeNegativeItemCount(t *testing.T) {
	_, err := Unmarshal([]byte(`
workspace_title: [a, b]
workspace_num_of_item: [-1, 2]
item_text: [x]
`), fixedNow)
	assert.ErrorIs(t, err, ErrMalformed)
}

func TestDecodeHugeItemCountsDoNotOverflow(t *testing.T) {
	data := fmt.Sprintf("workspace_title: [a, b]\nworkspace_num_of_item: [%d, %d]\nitem_text: [x]\n",
		math.MaxInt, math.MaxInt)
	var b *model.Board
	require.NotPanics(t, func() {
		var err error
		b, err = Unmarshal([]byte(data), fixedNow)
		require.NoError(t, err)
	})
	// The counts do not describe the items, so everything lands in the
	// first workspace.
	assert.Equal(t, []string{"x"}, texts(b.Workspaces[0].Items))
	assert.Empty(t, b.Workspaces[1].Items)
}

func TestDecodeUnparsableExpiry(t *testing.T) {
	b, err := Unmarshal([]byte(`
item_text: [a]
item_expire_datetime_string: ["next tuesday"]
`), fixedNow)
	require.NoError(t, err)
	assert.False(t, b.Workspaces[0].Items[0].HasExpiry)
}
