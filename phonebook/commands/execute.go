package commands

import (
	"fmt"
	"io"

	"github.com/arthur-debert/phonebook/types"
)

// Book is the store surface commands operate on.
// Both *book.Book and *store.FileStore satisfy it.
type Book interface {
	Set(position int, record types.Record)
	Swap(i, j int) error
	Remove(position int) bool
	Add(record types.Record) int
	Move(from, to int) error
	Sort()
	Clear()
	ForEach(visit func(types.Entry) bool)
	Find(prefix string) []types.Entry
}

// Execute applies cmd to b, writing any listing to out.
// Errors from the book (a missing entry) are returned unchanged.
func Execute(cmd Command, b Book, out io.Writer) error {
	switch c := cmd.(type) {
	case Add:
		b.Add(c.Record)
	case Edit:
		b.Set(c.Position, c.Record)
	case Swap:
		return b.Swap(c.I, c.J)
	case Remove:
		b.Remove(c.Position)
	case Move:
		return b.Move(c.From, c.To)
	case Find:
		return WriteEntries(out, b.Find(c.Prefix))
	case Sort:
		b.Sort()
	case Clear:
		b.Clear()
	case Print:
		var err error
		b.ForEach(func(e types.Entry) bool {
			err = writeEntry(out, e)
			return err == nil
		})
		return err
	case Nop, Exit:
	default:
		return fmt.Errorf("%w: %T", ErrUnknownCommand, cmd)
	}
	return nil
}

// WriteEntries prints entries as "position<TAB>last first middle phone" lines
func WriteEntries(out io.Writer, entries []types.Entry) error {
	for _, e := range entries {
		if err := writeEntry(out, e); err != nil {
			return err
		}
	}
	return nil
}

func writeEntry(out io.Writer, e types.Entry) error {
	_, err := fmt.Fprintf(out, "%d\t%s\n", e.Position, e.Record)
	return err
}
