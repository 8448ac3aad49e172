package book

import (
	"strings"

	"github.com/arthur-debert/phonebook/types"
)

// Len returns the number of entries in the book
func (b *Book) Len() int {
	return b.primary.Len()
}

// Get returns the record at position
func (b *Book) Get(position int) (types.Record, bool) {
	s, ok := b.primary.Get(slot{position: position})
	if !ok {
		return types.Record{}, false
	}
	return *s.record, true
}

// ForEach visits every entry in ascending position order.
// Iteration stops early when visit returns false.
func (b *Book) ForEach(visit func(types.Entry) bool) {
	b.primary.Ascend(func(s slot) bool {
		return visit(s.entry())
	})
}

// Entries returns every entry in ascending position order
func (b *Book) Entries() []types.Entry {
	entries := make([]types.Entry, 0, b.primary.Len())
	b.ForEach(func(e types.Entry) bool {
		entries = append(entries, e)
		return true
	})
	return entries
}

// Find returns every entry whose phone number starts with prefix.
// Results are ordered by phone number, and by insertion order within a phone
// number. No match yields an empty slice.
func (b *Book) Find(prefix string) []types.Entry {
	results := []types.Entry{}
	b.secondary.AscendGreaterOrEqual(&bucket{phone: prefix}, func(bk *bucket) bool {
		if !strings.HasPrefix(bk.phone, prefix) {
			return false
		}
		for _, s := range bk.slots {
			results = append(results, s.entry())
		}
		return true
	})
	return results
}
