// Package types holds the value types shared by the phonebook packages.
package types

import (
	"errors"
	"fmt"
	"strings"
	"unicode"
)

// ErrInvalidField is returned when a record field cannot be stored in a snapshot
var ErrInvalidField = errors.New("invalid record field")

// Record is a single person in the book.
// Records are values: once stored they are never modified in place, a replacement
// always attaches a new Record.
type Record struct {
	LastName   string `json:"last_name" yaml:"last_name"`
	FirstName  string `json:"first_name" yaml:"first_name"`
	MiddleName string `json:"middle_name" yaml:"middle_name"`
	Phone      string `json:"phone" yaml:"phone"`
}

// Entry pairs a record with the position it occupies in the book
type Entry struct {
	Position int    `json:"position" yaml:"position"`
	Record   Record `json:"record" yaml:"record"`
}

// FieldNames lists the record fields in persisted order
var FieldNames = []string{"last_name", "first_name", "middle_name", "phone"}

// Fields returns the record fields in persisted order (last, first, middle, phone)
func (r Record) Fields() []string {
	return []string{r.LastName, r.FirstName, r.MiddleName, r.Phone}
}

// String renders the record as "last first middle phone"
func (r Record) String() string {
	return strings.Join(r.Fields(), " ")
}

// Validate checks that every field is non-empty and free of whitespace.
// Fields are whitespace delimited on input and in snapshots, so anything else
// could not be read back.
func (r Record) Validate() error {
	for i, field := range r.Fields() {
		if field == "" {
			return fmt.Errorf("%w: %s is empty", ErrInvalidField, FieldNames[i])
		}
		if strings.IndexFunc(field, unicode.IsSpace) >= 0 {
			return fmt.Errorf("%w: %s %q contains whitespace", ErrInvalidField, FieldNames[i], field)
		}
	}
	return nil
}

// NewRecord builds a record from fields in persisted order.
// It returns an error unless exactly four valid fields are given.
func NewRecord(fields ...string) (Record, error) {
	if len(fields) != len(FieldNames) {
		return Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrInvalidField, len(FieldNames), len(fields))
	}
	r := Record{
		LastName:   fields[0],
		FirstName:  fields[1],
		MiddleName: fields[2],
		Phone:      fields[3],
	}
	if err := r.Validate(); err != nil {
		return Record{}, err
	}
	return r, nil
}
