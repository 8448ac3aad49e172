package commands

import (
	"slices"
)

// Verb names a command of the interactive loop
type Verb string

// The complete command set
const (
	VerbAdd    Verb = "add"
	VerbEdit   Verb = "edit"
	VerbSwap   Verb = "swap"
	VerbRemove Verb = "remove"
	VerbMove   Verb = "move"
	VerbFind   Verb = "find"
	VerbSort   Verb = "sort"
	VerbClear  Verb = "clear"
	VerbPrint  Verb = "print"
	VerbNop    Verb = "nop"
	VerbExit   Verb = "exit"
)

type verbInfo struct {
	description string
	mutates     bool
	terminates  bool
}

var verbTable = map[Verb]verbInfo{
	VerbAdd:    {description: "inserts new person to the end of the book: <last_name> <first_name> <middle_name> <phone>", mutates: true},
	VerbEdit:   {description: "edits person on desired position: <index> <last_name> <first_name> <middle_name> <phone>", mutates: true},
	VerbSwap:   {description: "swaps two entries: <first_index> <second_index>", mutates: true},
	VerbRemove: {description: "removes entry by index: <index>", mutates: true},
	VerbMove:   {description: "moves entry to new index: <from_index> <to_index>", mutates: true},
	VerbFind:   {description: "searches entries by phone prefix: <phone_prefix>"},
	VerbSort:   {description: "sorts book by last_name", mutates: true},
	VerbClear:  {description: "clears content", mutates: true},
	VerbPrint:  {description: "prints all entries"},
	VerbNop:    {description: "does nothing"},
	VerbExit:   {description: "exits the program", terminates: true},
}

// LookupVerb resolves a command name
func LookupVerb(name string) (Verb, bool) {
	v := Verb(name)
	_, ok := verbTable[v]
	return v, ok
}

// Verbs returns every verb in alphabetical order
func Verbs() []Verb {
	verbs := make([]Verb, 0, len(verbTable))
	for v := range verbTable {
		verbs = append(verbs, v)
	}
	slices.Sort(verbs)
	return verbs
}

// Description returns the help text for the verb
func (v Verb) Description() string {
	return verbTable[v].description
}

// Mutates reports whether the command changes the book and needs a save afterwards
func (v Verb) Mutates() bool {
	return verbTable[v].mutates
}

// Terminates reports whether the command ends the session
func (v Verb) Terminates() bool {
	return verbTable[v].terminates
}
