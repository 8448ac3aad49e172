// Package commands implements the phonebook's interactive command loop.
//
// The command set is closed: each verb has one struct type carrying its parsed
// arguments, and Execute dispatches over them with a type switch. Commands read
// their arguments from an explicit token stream and write to an explicit
// writer, so they can be driven without a terminal.
package commands

import (
	"github.com/arthur-debert/phonebook/types"
)

// Command is a parsed command. Only the types in this package implement it.
type Command interface {
	Verb() Verb
	sealed()
}

// Add appends a record after the last position
type Add struct{ Record types.Record }

// Edit inserts or replaces the record at a position
type Edit struct {
	Position int
	Record   types.Record
}

// Swap exchanges two entries
type Swap struct{ I, J int }

// Remove deletes an entry
type Remove struct{ Position int }

// Move relocates an entry
type Move struct{ From, To int }

// Find searches by phone prefix
type Find struct{ Prefix string }

// Sort renumbers the book by last name
type Sort struct{}

// Clear empties the book
type Clear struct{}

// Print lists every entry
type Print struct{}

// Nop does nothing
type Nop struct{}

// Exit ends the session
type Exit struct{}

func (Add) Verb() Verb    { return VerbAdd }
func (Edit) Verb() Verb   { return VerbEdit }
func (Swap) Verb() Verb   { return VerbSwap }
func (Remove) Verb() Verb { return VerbRemove }
func (Move) Verb() Verb   { return VerbMove }
func (Find) Verb() Verb   { return VerbFind }
func (Sort) Verb() Verb   { return VerbSort }
func (Clear) Verb() Verb  { return VerbClear }
func (Print) Verb() Verb  { return VerbPrint }
func (Nop) Verb() Verb    { return VerbNop }
func (Exit) Verb() Verb   { return VerbExit }

func (Add) sealed()    {}
func (Edit) sealed()   {}
func (Swap) sealed()   {}
func (Remove) sealed() {}
func (Move) sealed()   {}
func (Find) sealed()   {}
func (Sort) sealed()   {}
func (Clear) sealed()  {}
func (Print) sealed()  {}
func (Nop) sealed()    {}
func (Exit) sealed()   {}
