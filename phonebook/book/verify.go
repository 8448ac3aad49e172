package book

import (
	"errors"
	"fmt"

	"github.com/arthur-debert/phonebook/types"
)

// ErrInconsistent is returned by Verify when the indices have diverged
var ErrInconsistent = errors.New("book indices are inconsistent")

// Bucket is a phone number and the positions indexed under it, in bucket order
type Bucket struct {
	Phone     string `json:"phone" yaml:"phone"`
	Positions []int  `json:"positions" yaml:"positions"`
}

// State is a read-only dump of both indices, used for debugging
type State struct {
	Primary   []types.Entry `json:"primary" yaml:"primary"`
	Secondary []Bucket      `json:"secondary" yaml:"secondary"`
}

// State returns a copy of the primary and secondary index contents
func (b *Book) State() State {
	state := State{
		Primary:   b.Entries(),
		Secondary: make([]Bucket, 0, b.secondary.Len()),
	}
	b.secondary.Ascend(func(bk *bucket) bool {
		positions := make([]int, len(bk.slots))
		for i, s := range bk.slots {
			positions[i] = s.position
		}
		state.Secondary = append(state.Secondary, Bucket{Phone: bk.phone, Positions: positions})
		return true
	})
	return state
}

// Verify checks that the secondary index mirrors the primary index exactly:
// each stored record is indexed once under its phone number with the same
// handle, every indexed position exists, and no bucket is empty.
func (b *Book) Verify() error {
	indexed := 0
	var err error

	b.secondary.Ascend(func(bk *bucket) bool {
		if len(bk.slots) == 0 {
			err = fmt.Errorf("%w: empty bucket for phone %q", ErrInconsistent, bk.phone)
			return false
		}
		seen := make(map[int]bool, len(bk.slots))
		for _, s := range bk.slots {
			if seen[s.position] {
				err = fmt.Errorf("%w: position %d indexed twice under phone %q", ErrInconsistent, s.position, bk.phone)
				return false
			}
			seen[s.position] = true

			stored, ok := b.primary.Get(slot{position: s.position})
			if !ok {
				err = fmt.Errorf("%w: phone %q references missing position %d", ErrInconsistent, bk.phone, s.position)
				return false
			}
			if stored.record != s.record {
				err = fmt.Errorf("%w: position %d indexed with a stale record", ErrInconsistent, s.position)
				return false
			}
			if s.record.Phone != bk.phone {
				err = fmt.Errorf("%w: position %d has phone %q but is indexed under %q",
					ErrInconsistent, s.position, s.record.Phone, bk.phone)
				return false
			}
		}
		indexed += len(bk.slots)
		return true
	})
	if err != nil {
		return err
	}

	// every bucket slot resolved to a distinct primary entry, so equal counts
	// mean every primary entry is indexed
	if indexed != b.primary.Len() {
		return fmt.Errorf("%w: %d positions indexed, %d stored", ErrInconsistent, indexed, b.primary.Len())
	}
	return nil
}
