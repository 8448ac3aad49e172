package book

import (
	"slices"

	"github.com/arthur-debert/phonebook/types"
)

// slot is a (position, record handle) pair.
// The same handle is referenced from the primary index and from the bucket of
// its phone number, records are never modified through it.
type slot struct {
	position int
	record   *types.Record
}

func (s slot) entry() types.Entry {
	return types.Entry{Position: s.position, Record: *s.record}
}

func slotLess(a, b slot) bool {
	return a.position < b.position
}

// bucket groups every slot sharing a phone number, in attach order
type bucket struct {
	phone string
	slots []slot
}

func bucketLess(a, b *bucket) bool {
	return a.phone < b.phone
}

// attach appends the slot to the bucket for its phone, creating the bucket if needed
func (b *Book) attach(s slot) {
	bk, ok := b.secondary.Get(&bucket{phone: s.record.Phone})
	if !ok {
		bk = &bucket{phone: s.record.Phone}
		b.secondary.ReplaceOrInsert(bk)
	}
	bk.slots = append(bk.slots, s)
}

// detach erases the slot from its phone bucket and drops the bucket once empty
func (b *Book) detach(s slot) {
	bk, ok := b.secondary.Get(&bucket{phone: s.record.Phone})
	if !ok {
		return
	}
	i := slices.IndexFunc(bk.slots, func(other slot) bool {
		return other.position == s.position
	})
	if i < 0 {
		return
	}
	bk.slots = slices.Delete(bk.slots, i, i+1)
	if len(bk.slots) == 0 {
		b.secondary.Delete(bk)
	}
}

// put stores a record handle at position, replacing whatever was there.
// All mutations go through put, detach and erase.
func (b *Book) put(position int, record *types.Record) {
	if old, ok := b.primary.Get(slot{position: position}); ok {
		b.detach(old)
	}
	s := slot{position: position, record: record}
	b.primary.ReplaceOrInsert(s)
	b.attach(s)
}

// erase removes the slot at position from both indices
func (b *Book) erase(position int) bool {
	old, ok := b.primary.Get(slot{position: position})
	if !ok {
		return false
	}
	b.detach(old)
	b.primary.Delete(old)
	return true
}
