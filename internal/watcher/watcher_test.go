package watcher

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/fsnotify/fsnotify"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestShouldIgnore(t *testing.T) {
	tests := []struct {
		name   string
		ev     fsnotify.Event
		ignore bool
	}{
		{"data file write", fsnotify.Event{Name: "/h/.todo.yml", Op: fsnotify.Write}, false},
		{"data file replaced", fsnotify.Event{Name: "/h/.todo.yml", Op: fsnotify.Create}, false},
		{"data file removed", fsnotify.Event{Name: "/h/.todo.yml", Op: fsnotify.Remove}, false},
		{"chmod only", fsnotify.Event{Name: "/h/.todo.yml", Op: fsnotify.Chmod}, true},
		{"other file", fsnotify.Event{Name: "/h/.bashrc", Op: fsnotify.Write}, true},
		{"store temp file", fsnotify.Event{Name: "/h/.tdr-42.tmp", Op: fsnotify.Create}, true},
		{"backup", fsnotify.Event{Name: "/h/.todo.yml.bak", Op: fsnotify.Write}, true},
	}
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			assert.Equal(t, tt.ignore, shouldIgnore(tt.ev, ".todo.yml"))
		})
	}
}

func TestIsNoise(t *testing.T) {
	for _, name := range []string{".tdr-1.tmp", "x.bak", ".todo.yml.swp", "todo.yml~", ".#todo.yml"} {
		assert.True(t, isNoise(name), name)
	}
	assert.False(t, isNoise(".todo.yml"))
}

func TestWatchReportsWrites(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "todo.yml")
	require.NoError(t, os.WriteFile(path, []byte("a"), 0o644))

	ch, stop, err := Watch(path, 20*time.Millisecond)
	require.NoError(t, err)
	defer stop()

	// Unrelated files stay quiet.
	require.NoError(t, os.WriteFile(filepath.Join(dir, "other"), []byte("x"), 0o644))
	select {
	case <-ch:
		t.Fatal("event for unrelated file")
	case <-time.After(150 * time.Millisecond):
	}

	require.NoError(t, os.WriteFile(path, []byte("b"), 0o644))
	select {
	case _, ok := <-ch:
		assert.True(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("no event for data file write")
	}
}

func TestWatchMissingDirectory(t *testing.T) {
	_, _, err := Watch(filepath.Join(t.TempDir(), "nope", "todo.yml"), time.Millisecond)
	assert.Error(t, err)
}

func TestStopClosesChannel(t *testing.T) {
	ch, stop, err := Watch(filepath.Join(t.TempDir(), "todo.yml"), time.Millisecond)
	require.NoError(t, err)

	stop()
	stop()
	select {
	case _, ok := <-ch:
		assert.False(t, ok)
	case <-time.After(2 * time.Second):
		t.Fatal("channel not closed after stop")
	}
}
