package store

import (
	"bytes"
	"context"
	"errors"
	"fmt"
	"log/slog"
	"os"
	"time"

	"github.com/arthur-debert/phonebook/phonebook/storage"
	"github.com/sethvargo/go-retry"
	"github.com/spf13/afero"
)

// ErrLocked is returned when another process keeps the snapshot lock
var ErrLocked = errors.New("snapshot is locked by another process")

const (
	lockTimeout    = 3 * time.Second
	lockMaxRetries = 3
	lockRetryDelay = 100 * time.Millisecond
)

// snapshotFile implements storage.Storage on top of a flat text file.
// Every load and save holds the advisory lock <path>.lock, and saves replace
// the file atomically through <path>.tmp.
type snapshotFile struct {
	path   string
	fs     afero.Fs
	lock   FileLock
	logger *slog.Logger
}

var _ storage.Storage = (*snapshotFile)(nil)

func (s *snapshotFile) lockPath() string { return s.path + ".lock" }
func (s *snapshotFile) tmpPath() string  { return s.path + ".tmp" }

// withLock runs fn while holding the file lock
func (s *snapshotFile) withLock(fn func() error) error {
	ctx, cancel := context.WithTimeout(context.Background(), lockTimeout)
	defer cancel()

	if err := s.acquireLock(ctx); err != nil {
		return err
	}
	defer func() { _ = s.lock.Unlock() }()

	return fn()
}

// acquireLock takes the file lock, retrying with a constant backoff while it is busy.
// A lock still held after the last retry gives ErrLocked.
func (s *snapshotFile) acquireLock(ctx context.Context) error {
	backoff := retry.WithMaxRetries(lockMaxRetries, retry.NewConstant(lockRetryDelay))
	return retry.Do(ctx, backoff, func(ctx context.Context) error {
		locked, err := s.lock.TryLock()
		if err != nil {
			return fmt.Errorf("failed to acquire lock: %w", err)
		}
		if !locked {
			s.logger.Debug("snapshot lock busy, retrying", "lock", s.lockPath())
			return retry.RetryableError(ErrLocked)
		}
		return nil
	})
}

// Load replays the snapshot into dst. A missing or empty file is an empty book.
func (s *snapshotFile) Load(dst storage.Sink) error {
	return s.withLock(func() error {
		if _, err := s.fs.Stat(s.path); errors.Is(err, os.ErrNotExist) {
			s.logger.Debug("no snapshot yet", "path", s.path)
			return nil
		}

		f, err := s.fs.Open(s.path)
		if err != nil {
			return fmt.Errorf("failed to open snapshot: %w", err)
		}
		defer func() { _ = f.Close() }()

		return storage.Decode(f, dst)
	})
}

// Save rewrites the whole snapshot from src
func (s *snapshotFile) Save(src storage.Source) error {
	var buf bytes.Buffer
	if err := storage.Encode(&buf, src); err != nil {
		return err
	}

	return s.withLock(func() error {
		if err := afero.WriteFile(s.fs, s.tmpPath(), buf.Bytes(), 0644); err != nil {
			return fmt.Errorf("failed to write temp file: %w", err)
		}

		// rename is atomic on POSIX filesystems
		if err := s.fs.Rename(s.tmpPath(), s.path); err != nil {
			_ = s.fs.Remove(s.tmpPath())
			return fmt.Errorf("failed to rename file: %w", err)
		}
		return nil
	})
}

// Close releases nothing on disk. The lock file stays in place: removing it
// while another process holds a lock on it would let a third process lock a
// fresh inode at the same path.
func (s *snapshotFile) Close() error {
	return nil
}
