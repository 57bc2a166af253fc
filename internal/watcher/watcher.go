// Package watcher notices when another process rewrites the data file and
// notifies the TUI so it can reload.
//
// The parent directory is watched rather than the file itself: editors and
// atomic writers (including our own store) replace the file by renaming a
// temp file over it, which drops a watch placed on the old inode.
package watcher

import (
	"fmt"
	"math/rand/v2"
	"path/filepath"
	"strings"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/store"
	"github.com/fsnotify/fsnotify"
)

// Event is sent when the data file may have changed.
type Event struct{}

// Watch monitors path and sends Event values on the returned channel.
// A burst of writes yields one Event once the file has been quiet for the
// debounce window. The channel holds at most one undelivered Event; later
// ones are dropped until it is read.
//
// The returned stop function closes the watcher and then the channel.
func Watch(path string, debounce time.Duration) (<-chan Event, func(), error) {
	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, nil, fmt.Errorf("resolve %s: %w", path, err)
	}
	fs, err := fsnotify.NewWatcher()
	if err != nil {
		return nil, nil, fmt.Errorf("create watcher: %w", err)
	}
	if err := fs.Add(filepath.Dir(abs)); err != nil {
		_ = fs.Close()
		return nil, nil, fmt.Errorf("watch %s: %w", filepath.Dir(abs), err)
	}

	fw := &fileWatcher{
		fs:       fs,
		target:   filepath.Base(abs),
		debounce: debounce,
		// Spread reloads of tdr instances sharing one data file.
		jitter: max(debounce/2, 1),
		out:    make(chan Event, 1),
		done:   make(chan struct{}),
	}
	go fw.run()

	var once sync.Once
	stop := func() {
		once.Do(func() {
			close(fw.done)
			_ = fs.Close()
		})
	}
	return fw.out, stop, nil
}

type fileWatcher struct {
	fs       *fsnotify.Watcher
	target   string
	debounce time.Duration
	jitter   time.Duration
	out      chan Event
	done     chan struct{}
}

func (fw *fileWatcher) run() {
	defer close(fw.out)

	// quiet fires when no relevant event arrived for one debounce window;
	// nil while nothing is pending.
	var quiet <-chan time.Time
	for {
		select {
		case <-fw.done:
			return
		case ev, ok := <-fw.fs.Events:
			if !ok {
				return
			}
			if !shouldIgnore(ev, fw.target) {
				quiet = time.After(fw.debounce + time.Duration(rand.Int64N(int64(fw.jitter))))
			}
		case _, ok := <-fw.fs.Errors:
			if !ok {
				return
			}
		case <-quiet:
			quiet = nil
			select {
			case fw.out <- Event{}:
			default:
			}
		}
	}
}

// shouldIgnore returns true for events that are not about the data file.
func shouldIgnore(ev fsnotify.Event, target string) bool {
	base := filepath.Base(ev.Name)

	if base != target {
		return true
	}

	// Attribute-only changes (touch, chmod) do not alter content.
	if ev.Op == fsnotify.Chmod {
		return true
	}
	return isNoise(base)
}

// isNoise matches names that can share the data file's directory but must
// never trigger a reload on their own.
func isNoise(base string) bool {
	if store.IsTempFile(base) || strings.HasSuffix(base, ".bak") {
		return true
	}
	// Editor swap/temp files.
	return strings.HasSuffix(base, ".swp") || strings.HasSuffix(base, ".swo") ||
		strings.HasSuffix(base, "~") || strings.HasPrefix(base, ".#")
}
