package klocking

import (
	"fmt"
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Storage is the durable local key-value contract of the engine: one key
// for the full state record and one for the shared monotonic commit
// counter that other processes observe.
type Storage interface {
	// ReadState returns the persisted state record, or an error when none
	// exists.
	ReadState() ([]byte, error)
	// WriteState replaces the persisted state record.
	WriteState(blob []byte) error
	// Commit returns the current value of the commit counter (zero when
	// absent or unreadable).
	Commit() uint64
	// BumpCommit increments the commit counter and returns the new value.
	BumpCommit() (uint64, error)
	// Reset removes both keys.
	Reset() error
}

const (
	stateFileName  = "state.json"
	commitFileName = "commit"
)

// FileStore implements Storage over a directory holding the two keys as
// files. Every process tracking the same ledger points at the same
// directory.
type FileStore struct {
	dir string
}

// NewFileStore returns a FileStore rooted at dir, creating it if needed.
func NewFileStore(dir string) (*FileStore, error) {
	if err := os.MkdirAll(dir, 0755); err != nil {
		return nil, fmt.Errorf("creating data dir %q: %w", dir, err)
	}
	return &FileStore{dir: dir}, nil
}

// Dir returns the directory backing the store.
func (f *FileStore) Dir() string { return f.dir }

// CommitPath returns the path of the commit counter file, for watchers.
func (f *FileStore) CommitPath() string { return filepath.Join(f.dir, commitFileName) }

func (f *FileStore) statePath() string { return filepath.Join(f.dir, stateFileName) }

// ReadState implements Storage.
func (f *FileStore) ReadState() ([]byte, error) {
	return os.ReadFile(f.statePath())
}

// WriteState implements Storage. The record is written to a temporary file
// and renamed into place so a concurrent reader never sees a torn write.
func (f *FileStore) WriteState(blob []byte) error {
	tmp := f.statePath() + ".tmp"
	if err := os.WriteFile(tmp, blob, 0644); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	if err := os.Rename(tmp, f.statePath()); err != nil {
		return fmt.Errorf("writing state: %w", err)
	}
	return nil
}

// Commit implements Storage.
func (f *FileStore) Commit() uint64 {
	raw, err := os.ReadFile(f.CommitPath())
	if err != nil {
		return 0
	}
	n, err := strconv.ParseUint(strings.TrimSpace(string(raw)), 10, 64)
	if err != nil {
		return 0
	}
	return n
}

// BumpCommit implements Storage.
func (f *FileStore) BumpCommit() (uint64, error) {
	n := f.Commit() + 1
	if err := os.WriteFile(f.CommitPath(), []byte(strconv.FormatUint(n, 10)), 0644); err != nil {
		return 0, fmt.Errorf("bumping commit counter: %w", err)
	}
	return n, nil
}

// Reset implements Storage.
func (f *FileStore) Reset() error {
	if err := os.Remove(f.statePath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	if err := os.Remove(f.CommitPath()); err != nil && !os.IsNotExist(err) {
		return err
	}
	return nil
}
