// Package store persists the board as a YAML file of parallel arrays.
//
// Loading fails soft: a missing, unreadable or malformed file yields an
// empty board so the application can always start. The one exception is a
// file whose parallel arrays disagree in length, which is reported as a
// *LengthMismatchError and treated as fatal by the caller.
package store

import (
	"bytes"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"sync"
	"time"

	"github.com/Akashdeep-Patra/tdr/internal/model"
	"github.com/sirupsen/logrus"
	"gopkg.in/yaml.v3"
)

// Store defines the persistence contract the application depends on.
type Store interface {
	Path() string
	Load() (*model.Board, error)
	Save(b *model.Board) error
	// Changed reports whether the file differs from what this process
	// last loaded or wrote.
	Changed() bool
}

// FileStore implements Store on a single YAML file.
type FileStore struct {
	path string
	log  *logrus.Entry
	now  func() time.Time

	mu   sync.Mutex
	last []byte // content last loaded or written
}

// Compile-time check.
var _ Store = (*FileStore)(nil)

// NewFileStore returns a store backed by path.
func NewFileStore(path string, log *logrus.Entry) *FileStore {
	if log == nil {
		l := logrus.New()
		l.SetOutput(io.Discard)
		log = logrus.NewEntry(l)
	}
	return &FileStore{
		path: path,
		log:  log.WithField("component", "store"),
		now:  time.Now,
	}
}

// Path returns the backing file path.
func (s *FileStore) Path() string { return s.path }

// Load reads the board. Only a *LengthMismatchError is returned; every
// other problem is logged and answered with an empty board.
func (s *FileStore) Load() (*model.Board, error) {
	data, err := os.ReadFile(s.path)
	if err != nil {
		if !errors.Is(err, os.ErrNotExist) {
			s.log.WithError(err).Warn("cannot read data file, starting empty")
		}
		s.remember(nil)
		return model.NewBoard(), nil
	}
	s.remember(data)

	b, err := Unmarshal(data, s.now())
	if err != nil {
		var mismatch *LengthMismatchError
		if errors.As(err, &mismatch) {
			return nil, fmt.Errorf("load %s: %w", s.path, err)
		}
		s.log.WithError(err).Warn("malformed data file, starting empty")
		s.backup(data)
		return model.NewBoard(), nil
	}
	s.log.WithFields(logrus.Fields{
		"workspaces": b.Len(),
		"items":      b.TotalItems(),
	}).Debug("loaded board")
	return b, nil
}

// Save writes the board atomically.
func (s *FileStore) Save(b *model.Board) error {
	data, err := Marshal(b)
	if err != nil {
		return err
	}
	if err := writeAtomic(s.path, data); err != nil {
		s.log.WithError(err).Error("save failed")
		return fmt.Errorf("save %s: %w", s.path, err)
	}
	s.remember(data)
	s.log.WithField("bytes", len(data)).Debug("saved board")
	return nil
}

// Changed reports whether the file on disk differs from the last content
// this store loaded or wrote.
func (s *FileStore) Changed() bool {
	data, err := os.ReadFile(s.path)
	if err != nil {
		data = nil
	}
	s.mu.Lock()
	defer s.mu.Unlock()
	return !bytes.Equal(data, s.last)
}

func (s *FileStore) remember(data []byte) {
	s.mu.Lock()
	s.last = data
	s.mu.Unlock()
}

// backup keeps a copy of content that could not be parsed so the next save
// does not destroy it.
func (s *FileStore) backup(data []byte) {
	dst := s.path + ".bak"
	if err := os.WriteFile(dst, data, 0o600); err != nil {
		s.log.WithError(err).Warn("cannot back up malformed data file")
		return
	}
	s.log.WithField("backup", dst).Info("backed up malformed data file")
}

// Marshal encodes the board as YAML.
func Marshal(b *model.Board) ([]byte, error) {
	var buf bytes.Buffer
	enc := yaml.NewEncoder(&buf)
	enc.SetIndent(2)
	if err := enc.Encode(Encode(b)); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	if err := enc.Close(); err != nil {
		return nil, fmt.Errorf("encode board: %w", err)
	}
	return buf.Bytes(), nil
}

// Unmarshal decodes YAML into a board. Empty input is an empty board.
func Unmarshal(data []byte, now time.Time) (*model.Board, error) {
	var r Records
	if len(bytes.TrimSpace(data)) > 0 {
		if err := yaml.Unmarshal(data, &r); err != nil {
			return nil, fmt.Errorf("parse records: %w", err)
		}
	}
	return Decode(r, now)
}

// writeAtomic writes data to a temp file next to path and renames it over
// path, so a crash mid-write never leaves a truncated file.
func writeAtomic(path string, data []byte) error {
	dir := filepath.Dir(path)
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return fmt.Errorf("create data dir: %w", err)
	}
	tmp, err := os.CreateTemp(dir, tempPattern)
	if err != nil {
		return fmt.Errorf("create temp file: %w", err)
	}
	defer func() { _ = os.Remove(tmp.Name()) }()

	if _, err := tmp.Write(data); err != nil {
		_ = tmp.Close()
		return fmt.Errorf("write temp file: %w", err)
	}
	if err := tmp.Close(); err != nil {
		return fmt.Errorf("close temp file: %w", err)
	}
	if err := os.Chmod(tmp.Name(), 0o644); err != nil {
		return fmt.Errorf("chmod temp file: %w", err)
	}
	return os.Rename(tmp.Name(), path)
}

// tempPattern names the temp files writeAtomic creates; the watcher ignores
// them.
const tempPattern = ".tdr-*.tmp"

// IsTempFile reports whether base is a name writeAtomic could have created.
func IsTempFile(base string) bool {
	ok, _ := filepath.Match(tempPattern, base)
	return ok
}
