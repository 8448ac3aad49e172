package testutil

import (
	"testing"

	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/types"
	"github.com/google/go-cmp/cmp"
)

// AssertConsistent fails the test if the book's indices have diverged
func AssertConsistent(t *testing.T, b *book.Book, context ...string) {
	t.Helper()
	if err := b.Verify(); err != nil {
		ctx := ""
		if len(context) > 0 {
			ctx = " " + context[0]
		}
		t.Fatalf("book inconsistent%s: %v", ctx, err)
	}
}

// AssertEntries compares entries in order
func AssertEntries(t *testing.T, got, want []types.Entry) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("entries mismatch (-want +got):\n%s", diff)
	}
}

// AssertStateEqual compares two index dumps
func AssertStateEqual(t *testing.T, want, got book.State) {
	t.Helper()
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("book state changed (-want +got):\n%s", diff)
	}
}

// AssertPositions verifies the book holds exactly the given positions, in ascending order
func AssertPositions(t *testing.T, b *book.Book, want ...int) {
	t.Helper()
	got := []int{}
	for _, e := range b.Entries() {
		got = append(got, e.Position)
	}
	if want == nil {
		want = []int{}
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("positions mismatch (-want +got):\n%s", diff)
	}
}

// AssertRecordAt verifies the record stored at position
func AssertRecordAt(t *testing.T, b *book.Book, position int, want types.Record) {
	t.Helper()
	got, ok := b.Get(position)
	if !ok {
		t.Errorf("expected an entry at position %d", position)
		return
	}
	if diff := cmp.Diff(want, got); diff != "" {
		t.Errorf("record at %d mismatch (-want +got):\n%s", position, diff)
	}
}
