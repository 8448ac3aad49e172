// Package book implements the indexed record store behind the phonebook.
//
// A Book keeps two ordered indices over the same record handles:
//
//   - the primary index maps a position to a record and defines listing order
//   - the secondary index maps a phone number to the positions holding it and
//     serves prefix search as a contiguous range scan
//
// Every mutation is built from insert-or-replace, swap and remove, and each
// exported method leaves both indices mirroring each other: every position in
// the primary index appears exactly once in the bucket of its phone number, and
// no bucket is ever empty. Verify checks those properties.
//
// A Book is not safe for concurrent use. The file-backed store in package
// store serializes access when sharing is needed.
package book

import (
	"errors"
	"fmt"
	"slices"
	"strings"

	"github.com/arthur-debert/phonebook/types"
	"github.com/google/btree"
)

// ErrEntryNotFound is returned when an operation references an empty position
var ErrEntryNotFound = errors.New("entry not found")

// btreeDegree is the branching factor used for both indices
const btreeDegree = 16

// Book is the indexed record store
type Book struct {
	primary   *btree.BTreeG[slot]
	secondary *btree.BTreeG[*bucket]
}

// New creates an empty book
func New() *Book {
	return &Book{
		primary:   btree.NewG(btreeDegree, slotLess),
		secondary: btree.NewG(btreeDegree, bucketLess),
	}
}

func notFound(position int) error {
	return fmt.Errorf("%w: no entry at position %d", ErrEntryNotFound, position)
}

// Set inserts the record at position, replacing any record already there
func (b *Book) Set(position int, record types.Record) {
	b.put(position, &record)
}

// Swap exchanges the records held at positions i and j.
// Both positions must be occupied, otherwise nothing changes and an
// ErrEntryNotFound is returned.
func (b *Book) Swap(i, j int) error {
	first, ok := b.primary.Get(slot{position: i})
	if !ok {
		return notFound(i)
	}
	second, ok := b.primary.Get(slot{position: j})
	if !ok {
		return notFound(j)
	}
	if i == j {
		return nil
	}

	b.detach(first)
	b.detach(second)

	first.record, second.record = second.record, first.record
	b.primary.ReplaceOrInsert(first)
	b.primary.ReplaceOrInsert(second)

	b.attach(first)
	b.attach(second)
	return nil
}

// Remove deletes the entry at position.
// It reports whether an entry was removed; removing an empty position is a no-op.
func (b *Book) Remove(position int) bool {
	return b.erase(position)
}

// Add appends the record after the highest occupied position and returns the
// position it was stored at. An empty book starts at 1.
func (b *Book) Add(record types.Record) int {
	next := 1
	if last, ok := b.primary.Max(); ok {
		next = last.position + 1
	}
	b.Set(next, record)
	return next
}

// Move relocates the record at from to position to, overwriting whatever to held.
// Moving a position onto itself leaves the book unchanged.
func (b *Book) Move(from, to int) error {
	s, ok := b.primary.Get(slot{position: from})
	if !ok {
		return notFound(from)
	}
	if from == to {
		return nil
	}
	b.put(to, s.record)
	b.erase(from)
	return nil
}

// Sort renumbers the book by last name, assigning positions 1..n.
// The sort is stable: records sharing a last name keep their relative order.
func (b *Book) Sort() {
	records := make([]*types.Record, 0, b.primary.Len())
	b.primary.Ascend(func(s slot) bool {
		records = append(records, s.record)
		return true
	})

	b.Clear()

	slices.SortStableFunc(records, func(x, y *types.Record) int {
		return strings.Compare(x.LastName, y.LastName)
	})
	for i, record := range records {
		b.put(i+1, record)
	}
}

// Clear empties the book
func (b *Book) Clear() {
	b.primary.Clear(false)
	b.secondary.Clear(false)
}
