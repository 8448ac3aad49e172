package commands

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"

	"github.com/arthur-debert/phonebook/types"
)

var (
	// ErrUnknownCommand is returned for a verb outside the command set
	ErrUnknownCommand = errors.New("unknown command")

	// ErrBadArgument is returned when a command argument cannot be parsed
	ErrBadArgument = errors.New("bad argument")
)

// Tokens reads whitespace separated words; arguments may span lines
type Tokens struct {
	scanner *bufio.Scanner
}

// NewTokens creates a token stream over r
func NewTokens(r io.Reader) *Tokens {
	scanner := bufio.NewScanner(r)
	scanner.Split(bufio.ScanWords)
	return &Tokens{scanner: scanner}
}

// Next returns the next word, or io.EOF at the end of input
func (t *Tokens) Next() (string, error) {
	if t.scanner.Scan() {
		return t.scanner.Text(), nil
	}
	if err := t.scanner.Err(); err != nil {
		return "", err
	}
	return "", io.EOF
}

// take reads exactly n words. Input ending early yields io.ErrUnexpectedEOF.
func (t *Tokens) take(n int) ([]string, error) {
	words := make([]string, 0, n)
	for len(words) < n {
		word, err := t.Next()
		if errors.Is(err, io.EOF) {
			return nil, io.ErrUnexpectedEOF
		}
		if err != nil {
			return nil, err
		}
		words = append(words, word)
	}
	return words, nil
}

// Parse reads the arguments for verb from in.
// All of a command's words are consumed before any is validated, so a bad
// argument never leaves the rest of the command to be read as the next verb.
func Parse(verb Verb, in *Tokens) (Command, error) {
	switch verb {
	case VerbAdd:
		words, err := in.take(4)
		if err != nil {
			return nil, argError(verb, err)
		}
		record, err := types.NewRecord(words...)
		if err != nil {
			return nil, argError(verb, err)
		}
		return Add{Record: record}, nil

	case VerbEdit:
		words, err := in.take(5)
		if err != nil {
			return nil, argError(verb, err)
		}
		position, err := parseInt("index", words[0])
		if err != nil {
			return nil, argError(verb, err)
		}
		record, err := types.NewRecord(words[1:]...)
		if err != nil {
			return nil, argError(verb, err)
		}
		return Edit{Position: position, Record: record}, nil

	case VerbSwap:
		ints, err := takeInts(in, "first_index", "second_index")
		if err != nil {
			return nil, argError(verb, err)
		}
		return Swap{I: ints[0], J: ints[1]}, nil

	case VerbRemove:
		ints, err := takeInts(in, "index")
		if err != nil {
			return nil, argError(verb, err)
		}
		return Remove{Position: ints[0]}, nil

	case VerbMove:
		ints, err := takeInts(in, "from_index", "to_index")
		if err != nil {
			return nil, argError(verb, err)
		}
		return Move{From: ints[0], To: ints[1]}, nil

	case VerbFind:
		words, err := in.take(1)
		if err != nil {
			return nil, argError(verb, err)
		}
		return Find{Prefix: words[0]}, nil

	case VerbSort:
		return Sort{}, nil
	case VerbClear:
		return Clear{}, nil
	case VerbPrint:
		return Print{}, nil
	case VerbNop:
		return Nop{}, nil
	case VerbExit:
		return Exit{}, nil
	}

	return nil, fmt.Errorf("%w: %s", ErrUnknownCommand, verb)
}

func takeInts(in *Tokens, names ...string) ([]int, error) {
	words, err := in.take(len(names))
	if err != nil {
		return nil, err
	}
	ints := make([]int, len(words))
	for i, word := range words {
		if ints[i], err = parseInt(names[i], word); err != nil {
			return nil, err
		}
	}
	return ints, nil
}

func parseInt(name, word string) (int, error) {
	n, err := strconv.Atoi(word)
	if err != nil {
		return 0, fmt.Errorf("%s must be an integer, got %q", name, word)
	}
	return n, nil
}

// argError wraps a parse failure; truncated input keeps io.ErrUnexpectedEOF in the chain
func argError(verb Verb, err error) error {
	return fmt.Errorf("%s: %w: %w", verb, ErrBadArgument, err)
}
