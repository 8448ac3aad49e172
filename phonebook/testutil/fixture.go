// Package testutil provides fixtures and assertion helpers for phonebook tests.
package testutil

import (
	"github.com/arthur-debert/phonebook/phonebook/book"
	"github.com/arthur-debert/phonebook/types"
)

// Person builds a record; the middle name is fixed since tests rarely care about it
func Person(last, first, phone string) types.Record {
	return types.Record{LastName: last, FirstName: first, MiddleName: "M", Phone: phone}
}

// Fixture records used across the test suites
var (
	Doe   = types.Record{LastName: "Doe", FirstName: "John", MiddleName: "M", Phone: "12345"}
	Roe   = types.Record{LastName: "Roe", FirstName: "Jane", MiddleName: "K", Phone: "12399"}
	Smith = types.Record{LastName: "Smith", FirstName: "Anna", MiddleName: "B", Phone: "5550100"}
	Adams = types.Record{LastName: "Adams", FirstName: "Carl", MiddleName: "D", Phone: "12345"}
)

// NewBook returns a book holding the given records at positions 1..n
func NewBook(records ...types.Record) *book.Book {
	b := book.New()
	for _, r := range records {
		b.Add(r)
	}
	return b
}
