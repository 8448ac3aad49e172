// Package storage provides the persistence layer for the phonebook.
// It defines the snapshot text format and the interfaces a backend implements
// to load and save a whole book as a single unit.
package storage

import (
	"github.com/arthur-debert/phonebook/types"
)

// Source is anything that can enumerate entries in ascending position order
type Source interface {
	ForEach(visit func(types.Entry) bool)
}

// Sink receives entries while a snapshot is replayed
type Sink interface {
	Set(position int, record types.Record)
}

// Storage defines the low-level interface for batch persistence.
// A snapshot is always read and written whole, matching the flat file backend.
type Storage interface {
	// Load replays the stored snapshot into dst
	Load(dst Sink) error

	// Save replaces the stored snapshot with the contents of src
	Save(src Source) error

	// Close releases any resources held by the storage
	Close() error
}
