package storage

import (
	"sync"
)

// OperationType tells the LockManager whether an operation only reads the book
type OperationType int

const (
	// ReadOperation may run alongside other reads
	ReadOperation OperationType = iota

	// WriteOperation runs alone. The intermediate detach/attach steps of a
	// book mutation must never interleave with anything else.
	WriteOperation
)

// String returns the operation name used in logs
func (o OperationType) String() string {
	if o == WriteOperation {
		return "write"
	}
	return "read"
}

// LockManager serializes access to a book shared between goroutines.
// Reads take the shared side of a sync.RWMutex, writes the exclusive side, so
// there is at most one writer and no reader observes a half-applied mutation.
type LockManager struct {
	mu sync.RWMutex
}

// NewLockManager creates a lock manager ready for use
func NewLockManager() *LockManager {
	return &LockManager{}
}

// Execute runs fn while holding the lock matching opType.
// The lock is released when fn returns, even if it panics.
//
// Example:
//
//	err := lm.Execute(WriteOperation, func() error {
//	    b.Set(1, record)
//	    return nil
//	})
func (lm *LockManager) Execute(opType OperationType, fn func() error) error {
	switch opType {
	case ReadOperation:
		lm.mu.RLock()
		defer lm.mu.RUnlock()
	case WriteOperation:
		lm.mu.Lock()
		defer lm.mu.Unlock()
	}
	return fn()
}

// ExecuteWithResult is Execute for functions that also produce a value
func ExecuteWithResult[T any](lm *LockManager, opType OperationType, fn func() (T, error)) (T, error) {
	var result T
	err := lm.Execute(opType, func() error {
		var err error
		result, err = fn()
		return err
	})
	return result, err
}
