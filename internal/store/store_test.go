package store

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func newTestStore(t *testing.T) *FileStore {
	t.Helper()
	s := NewFileStore(filepath.Join(t.TempDir(), "nested", "todo.yml"), nil)
	s.now = func() time.Time { return fixedNow }
	return s
}

func TestLoadMissingFileIsEmpty(t *testing.T) {
	s := newTestStore(t)
	b, err := s.Load()
	require.NoError(t, err)
	assert.True(t, b.Empty())
	assert.False(t, s.Changed())
}

func TestSaveThenLoad(t *testing.T) {
	s := newTestStore(t)
	want := sampleBoard(t)

	require.NoError(t, s.Save(want))
	assert.False(t, s.Changed())

	got, err := s.Load()
	require.NoError(t, err)
	assertBoardsEqual(t, want, got)

	entries, err := os.ReadDir(filepath.Dir(s.Path()))
	require.NoError(t, err)
	for _, e := range entries {
		assert.False(t, IsTempFile(e.Name()), "leftover temp file %s", e.Name())
	}
}

func TestLoadMalformedFailsSoftAndBacksUp(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	garbage := []byte("item_text: [unterminated\n")
	require.NoError(t, os.WriteFile(s.Path(), garbage, 0o644))

	b, err := s.Load()
	require.NoError(t, err)
	assert.True(t, b.Empty())

	backup, err := os.ReadFile(s.Path() + ".bak")
	require.NoError(t, err)
	assert.Equal(t, garbage, backup)
}

func TestLoadNegativeItemCountFailsSoft(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	content := []byte("workspace_title: [a, b]\nworkspace_num_of_item: [-1, 2]\nitem_text: [x]\n")
	require.NoError(t, os.WriteFile(s.Path(), content, 0o644))

	var b *model.Board
	require.NotPanics(t, func() {
		var err error
		b, err = s.Load()
		require.NoError(t, err)
	})
	assert.True(t, b.Empty())

	backup, err := os.ReadFile(s.Path() + ".bak")
	require.NoError(t, err)
	assert.Equal(t, content, backup)
}

func TestLoadLengthMismatchIsFatal(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, os.MkdirAll(filepath.Dir(s.Path()), 0o755))
	require.NoError(t, os.WriteFile(s.Path(), []byte("item_slot: [0]\nitem_text: [a, b]\n"), 0o644))

	b, err := s.Load()
	assert.Nil(t, b)
	var mismatch *LengthMismatchError
	assert.ErrorAs(t, err, &mismatch)
}

func TestChangedDetectsExternalWrite(t *testing.T) {
	s := newTestStore(t)
	require.NoError(t, s.Save(sampleBoard(t)))
	require.False(t, s.Changed())

	require.NoError(t, os.WriteFile(s.Path(), []byte("item_text: [edited]\n"), 0o644))
	assert.True(t, s.Changed())

	_, err := s.Load()
	require.NoError(t, err)
	assert.False(t, s.Changed())
}

func TestSaveFailureIsReturned(t *testing.T) {
	dir := t.TempDir()
	blocker := filepath.Join(dir, "file")
	require.NoError(t, os.WriteFile(blocker, nil, 0o644))

	// The parent "directory" is a regular file, so MkdirAll fails.
	s := NewFileStore(filepath.Join(blocker, "todo.yml"), nil)
	assert.Error(t, s.Save(sampleBoard(t)))
}

func TestIsTempFile(t *testing.T) {
	assert.True(t, IsTempFile(".tdr-123456.tmp"))
	assert.False(t, IsTempFile("todo.yml"))
}
