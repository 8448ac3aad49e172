package book_test

import (
	"fmt"
	"math/rand/v2"
	"testing"

	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/phonebook/testutil"
	"github.com/arthur-debert/phonebook/types"
)

// TestRandomOperationsKeepIndicesConsistent drives random mutation sequences and
// checks the indices after every step, against a plain map as the model
func TestRandomOperationsKeepIndicesConsistent(t *testing.T) {
	for seed := uint64(1); seed <= 20; seed++ {
		t.Run(fmt.Sprintf("seed %d", seed), func(t *testing.T) {
			rng := rand.New(rand.NewPCG(seed, seed*31))
			b := book.New()
			model := map[int]types.Record{}

			randomRecord := func() types.Record {
				// a small phone space forces shared buckets
				return testutil.Person(
					fmt.Sprintf("L%d", rng.IntN(5)),
					fmt.Sprintf("F%d", rng.IntN(5)),
					fmt.Sprintf("55%d", rng.IntN(8)),
				)
			}
			randomPosition := func() int { return rng.IntN(12) - 2 }

			for step := 0; step < 200; step++ {
				op := rng.IntN(7)
				switch op {
				case 0:
					pos, r := randomPosition(), randomRecord()
					b.Set(pos, r)
					model[pos] = r
				case 1:
					r := randomRecord()
					pos := b.Add(r)
					if _, taken := model[pos]; taken {
						t.Fatalf("Add returned occupied position %d", pos)
					}
					model[pos] = r
				case 2:
					i, j := randomPosition(), randomPosition()
					ri, okI := model[i]
					rj, okJ := model[j]
					err := b.Swap(i, j)
					if okI && okJ {
						if err != nil {
							t.Fatalf("Swap(%d, %d) failed: %v", i, j, err)
						}
						model[i], model[j] = rj, ri
					} else if err == nil {
						t.Fatalf("Swap(%d, %d) should have failed", i, j)
					}
				case 3:
					pos := randomPosition()
					b.Remove(pos)
					delete(model, pos)
				case 4:
					from, to := randomPosition(), randomPosition()
					r, ok := model[from]
					err := b.Move(from, to)
					if ok {
						if err != nil {
							t.Fatalf("Move(%d, %d) failed: %v", from, to, err)
						}
						delete(model, from)
						model[to] = r
					} else if err == nil {
						t.Fatalf("Move(%d, %d) should have failed", from, to)
					}
				case 5:
					if rng.IntN(10) == 0 {
						b.Clear()
						model = map[int]types.Record{}
					}
				case 6:
					if rng.IntN(5) == 0 {
						b.Sort()
						model = map[int]types.Record{}
						for _, e := range b.Entries() {
							model[e.Position] = e.Record
						}
					}
				}

				testutil.AssertConsistent(t, b, fmt.Sprintf("after step %d (op %d)", step, op))
				if b.Len() != len(model) {
					t.Fatalf("step %d: book has %d entries, model has %d", step, b.Len(), len(model))
				}
				for pos, want := range model {
					testutil.AssertRecordAt(t, b, pos, want)
				}
			}
		})
	}
}

// TestSortProducesOrderedPermutation checks positions 1..n and last name order after Sort
func TestSortProducesOrderedPermutation(t *testing.T) {
	rng := rand.New(rand.NewPCG(3, 5))
	b := book.New()
	counts := map[types.Record]int{}
	for i := 0; i < 50; i++ {
		r := testutil.Person(fmt.Sprintf("N%02d", rng.IntN(20)), "F", fmt.Sprintf("%d", rng.IntN(100)))
		b.Set(rng.IntN(1000)-500, r)
	}
	for _, e := range b.Entries() {
		counts[e.Record]++
	}
	n := b.Len()

	b.Sort()

	entries := b.Entries()
	if len(entries) != n {
		t.Fatalf("expected %d entries after sort, got %d", n, len(entries))
	}
	for i, e := range entries {
		if e.Position != i+1 {
			t.Fatalf("expected position %d, got %d", i+1, e.Position)
		}
		if i > 0 && entries[i-1].Record.LastName > e.Record.LastName {
			t.Errorf("entries %d and %d out of order: %q > %q", i, i+1, entries[i-1].Record.LastName, e.Record.LastName)
		}
		counts[e.Record]--
	}
	for r, c := range counts {
		if c != 0 {
			t.Errorf("record %v count changed by %d", r, -c)
		}
	}
	testutil.AssertConsistent(t, b)
}
