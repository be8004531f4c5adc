package history

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"
	"io/fs"
	"os"
	"path/filepath"
	"slices"
	"sync"
)

// FileName is the history file written next to generated images.
const FileName = "generated-files.json"

// FileStore keeps entries in a JSON array on disk, in insertion order.
// The whole file is rewritten on every Add.
type FileStore struct {
	path string
	mu   sync.RWMutex
}

// NewFileStore uses dir/generated-files.json. The directory is created if
// needed; the file is created on the first Add.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return nil, err
	}
	return &FileStore{path: filepath.Join(dir, FileName)}, nil
}

// Path returns the history file path.
func (s *FileStore) Path() string { return s.path }

func (s *FileStore) Add(ctx context.Context, e Entry) (Entry, error) {
	s.mu.Lock()
	defer s.mu.Unlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	e = prepare(e)
	entries = append(entries, e)

	data, err := json.MarshalIndent(entries, "", "  ")
	if err != nil {
		return Entry{}, err
	}
	tmp := s.path + ".tmp"
	if err := os.WriteFile(tmp, data, 0o644); err != nil {
		return Entry{}, err
	}
	if err := os.Rename(tmp, s.path); err != nil {
		return Entry{}, err
	}
	return e, nil
}

func (s *FileStore) List(ctx context.Context, limit int) ([]Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return nil, err
	}
	slices.Reverse(entries)
	if limit > 0 && len(entries) > limit {
		entries = entries[:limit]
	}
	return entries, nil
}

func (s *FileStore) Get(ctx context.Context, id string) (Entry, error) {
	s.mu.RLock()
	defer s.mu.RUnlock()

	entries, err := s.load()
	if err != nil {
		return Entry{}, err
	}
	i := slices.IndexFunc(entries, func(e Entry) bool { return e.ID == id })
	if i < 0 {
		return Entry{}, ErrNotFound
	}
	return entries[i], nil
}

func (s *FileStore) Close(context.Context) error { return nil }

// load reads the file; a missing or empty file is an empty history.
func (s *FileStore) load() ([]Entry, error) {
	data, err := os.ReadFile(s.path)
	if errors.Is(err, fs.ErrNotExist) || (err == nil && len(data) == 0) {
		return nil, nil
	}
	if err != nil {
		return nil, err
	}
	var entries []Entry
	if err := json.Unmarshal(data, &entries); err != nil {
		return nil, fmt.Errorf("parse %s: %w", s.path, err)
	}
	return entries, nil
}

var _ Store = (*FileStore)(nil)
