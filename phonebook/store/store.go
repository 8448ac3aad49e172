// Package store provides a book persisted to a flat snapshot file.
//
// FileStore wraps a book.Book with a storage.LockManager so every operation is
// serialized, and with a snapshot file guarded by an advisory file lock.
// Mutations only touch memory; callers decide when to Save.
package store

import (
	"fmt"
	"log/slog"

	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/phonebook/storage"
	"github.com/arthur-debert/phonebook/types"
	"github.com/spf13/afero"
)

// FileStore is a book backed by a snapshot file
type FileStore struct {
	path        string
	book        *book.Book
	lockManager *storage.LockManager
	storage     storage.Storage

	fs          afero.Fs
	lockFactory FileLockFactory
	logger      *slog.Logger
}

// New opens the snapshot at path, loading it if it exists.
// A malformed snapshot is rejected with a *storage.ParseError.
func New(path string, opts ...Option) (*FileStore, error) {
	s := &FileStore{
		path:        path,
		lockManager: storage.NewLockManager(),
	}
	for _, opt := range opts {
		opt(s)
	}

	if s.fs == nil {
		s.fs = afero.NewOsFs()
	}
	if s.lockFactory == nil {
		s.lockFactory = FlockFactory{}
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}

	snapshot := &snapshotFile{
		path:   path,
		fs:     s.fs,
		logger: s.logger,
	}
	snapshot.lock = s.lockFactory.New(snapshot.lockPath())
	s.storage = snapshot

	// decode into a fresh book so a bad snapshot never leaves a half-loaded store
	loaded := book.New()
	if err := s.storage.Load(loaded); err != nil {
		return nil, fmt.Errorf("failed to load %s: %w", path, err)
	}
	s.book = loaded

	s.logger.Debug("snapshot loaded", "path", path, "entries", loaded.Len())
	return s, nil
}

// Path returns the snapshot path
func (s *FileStore) Path() string {
	return s.path
}

// Save writes the current book to the snapshot file
func (s *FileStore) Save() error {
	return s.lockManager.Execute(storage.ReadOperation, func() error {
		if err := s.storage.Save(s.book); err != nil {
			return fmt.Errorf("failed to save %s: %w", s.path, err)
		}
		s.logger.Debug("snapshot saved", "path", s.path, "entries", s.book.Len())
		return nil
	})
}

// Close closes the snapshot. Data is not saved, and the lock file is left in place.
func (s *FileStore) Close() error {
	return s.lockManager.Execute(storage.WriteOperation, s.storage.Close)
}

func (s *FileStore) write(fn func()) {
	_ = s.lockManager.Execute(storage.WriteOperation, func() error {
		fn()
		return nil
	})
}

// Set inserts or replaces the record at position
func (s *FileStore) Set(position int, record types.Record) {
	s.write(func() { s.book.Set(position, record) })
}

// Swap exchanges the records at positions i and j
func (s *FileStore) Swap(i, j int) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.book.Swap(i, j)
	})
}

// Remove deletes the entry at position, reporting whether it existed
func (s *FileStore) Remove(position int) bool {
	removed, _ := storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (bool, error) {
		return s.book.Remove(position), nil
	})
	return removed
}

// Add appends the record and returns its position
func (s *FileStore) Add(record types.Record) int {
	position, _ := storage.ExecuteWithResult(s.lockManager, storage.WriteOperation, func() (int, error) {
		return s.book.Add(record), nil
	})
	return position
}

// Move relocates the record at from to position to
func (s *FileStore) Move(from, to int) error {
	return s.lockManager.Execute(storage.WriteOperation, func() error {
		return s.book.Move(from, to)
	})
}

// Sort renumbers the book by last name
func (s *FileStore) Sort() {
	s.write(s.book.Sort)
}

// Clear empties the book
func (s *FileStore) Clear() {
	s.write(s.book.Clear)
}

// ForEach visits every entry in ascending position order.
// visit runs under the read lock and must not call back into the store.
func (s *FileStore) ForEach(visit func(types.Entry) bool) {
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		s.book.ForEach(visit)
		return nil
	})
}

// Entries returns every entry in ascending position order
func (s *FileStore) Entries() []types.Entry {
	entries, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() ([]types.Entry, error) {
		return s.book.Entries(), nil
	})
	return entries
}

// Find returns every entry whose phone starts with prefix
func (s *FileStore) Find(prefix string) []types.Entry {
	entries, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() ([]types.Entry, error) {
		return s.book.Find(prefix), nil
	})
	return entries
}

// Get returns the record at position
func (s *FileStore) Get(position int) (types.Record, bool) {
	var (
		record types.Record
		ok     bool
	)
	_ = s.lockManager.Execute(storage.ReadOperation, func() error {
		record, ok = s.book.Get(position)
		return nil
	})
	return record, ok
}

// Len returns the number of entries
func (s *FileStore) Len() int {
	n, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (int, error) {
		return s.book.Len(), nil
	})
	return n
}

// Verify checks the book's index consistency
func (s *FileStore) Verify() error {
	return s.lockManager.Execute(storage.ReadOperation, s.book.Verify)
}

// State dumps both indices
func (s *FileStore) State() book.State {
	state, _ := storage.ExecuteWithResult(s.lockManager, storage.ReadOperation, func() (book.State, error) {
		return s.book.State(), nil
	})
	return state
}
