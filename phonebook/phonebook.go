// Package phonebook provides an indexed phone book persisted to a flat text file.
//
// Records live at integer positions. A primary index keeps them in position
// order and a secondary index keyed by phone number answers prefix searches.
// Both indices share the same record handles, so a record is stored once.
package phonebook

import (
	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/phonebook/store"
	"github.com/arthur-debert/phonebook/types"
)

// Record is an alias for types.Record
type Record = types.Record

// Entry is an alias for types.Entry
type Entry = types.Entry

// Book is the in-memory, unsynchronized book
type Book = book.Book

// Store is a book persisted to a snapshot file
type Store = store.FileStore

// Option configures a Store
type Option = store.Option

// Open loads the snapshot at path, or starts an empty book if it does not exist yet.
// Changes are only written when Save is called.
func Open(path string, opts ...Option) (*Store, error) {
	return store.New(path, opts...)
}

// NewBook creates an empty in-memory book
func NewBook() *Book {
	return book.New()
}
