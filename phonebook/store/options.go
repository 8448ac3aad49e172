package store

import (
	"log/slog"

	"github.com/spf13/afero"
)

// Option configures a FileStore
type Option func(*FileStore)

// WithFs sets the filesystem the snapshot lives on. Tests use afero.NewMemMapFs().
func WithFs(fs afero.Fs) Option {
	return func(s *FileStore) {
		s.fs = fs
	}
}

// WithFileLockFactory sets a custom FileLockFactory implementation
func WithFileLockFactory(factory FileLockFactory) Option {
	return func(s *FileStore) {
		s.lockFactory = factory
	}
}

// WithLogger sets the logger for load and save events
func WithLogger(logger *slog.Logger) Option {
	return func(s *FileStore) {
		s.logger = logger
	}
}
