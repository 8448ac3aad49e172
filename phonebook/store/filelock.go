package store

import (
	"github.com/gofrs/flock"
)

// FileLock is an advisory lock guarding the snapshot against other processes
type FileLock interface {
	// TryLock takes the lock without blocking. It returns false if another
	// holder has it.
	TryLock() (bool, error)

	// Unlock releases the lock
	Unlock() error
}

// FileLockFactory creates FileLock instances
type FileLockFactory interface {
	// New creates a FileLock backed by the file at path
	New(path string) FileLock
}

// flockLock adapts github.com/gofrs/flock to FileLock
type flockLock struct {
	flock *flock.Flock
}

func (f *flockLock) TryLock() (bool, error) {
	return f.flock.TryLock()
}

func (f *flockLock) Unlock() error {
	return f.flock.Unlock()
}

// FlockFactory is the default factory, creating OS level flock locks
type FlockFactory struct{}

// New implements FileLockFactory.New
func (FlockFactory) New(path string) FileLock {
	return &flockLock{flock: flock.New(path)}
}
