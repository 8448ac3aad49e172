package storage

import (
	"bufio"
	"errors"
	"fmt"
	"io"
	"strconv"
	"strings"

	"github.com/arthur-debert/phonebook/types"
)

// ErrUnencodable is returned by Encode for records that could not be read back
var ErrUnencodable = errors.New("record cannot be encoded")

// ErrMalformedLine is wrapped by ParseError for lines that do not hold a position and four fields
var ErrMalformedLine = errors.New("malformed snapshot line")

// fieldsPerLine is the position plus the four record fields
const fieldsPerLine = 5

// maxLineLength bounds a single snapshot line
const maxLineLength = 1 << 20

// ParseError reports a snapshot line that could not be decoded
type ParseError struct {
	Line int    // 1-based line number
	Text string // the offending line
	Err  error
}

// Error implements the error interface
func (e *ParseError) Error() string {
	return fmt.Sprintf("snapshot line %d %q: %v", e.Line, e.Text, e.Err)
}

// Unwrap returns the underlying cause
func (e *ParseError) Unwrap() error {
	return e.Err
}

// Encode writes every entry of src as one line
//
//	<position>\t<last> <first> <middle> <phone>
//
// in ascending position order.
func Encode(w io.Writer, src Source) error {
	bw := bufio.NewWriter(w)
	var err error

	src.ForEach(func(e types.Entry) bool {
		if verr := e.Record.Validate(); verr != nil {
			err = fmt.Errorf("%w: position %d: %w", ErrUnencodable, e.Position, verr)
			return false
		}
		if _, werr := fmt.Fprintf(bw, "%d\t%s\n", e.Position, e.Record); werr != nil {
			err = fmt.Errorf("failed to write position %d: %w", e.Position, werr)
			return false
		}
		return true
	})
	if err != nil {
		return err
	}

	return bw.Flush()
}

// Decode reads snapshot lines from r and calls dst.Set for each one.
// Blank lines are skipped. The first malformed line stops decoding with a
// *ParseError; lines before it have already been applied.
func Decode(r io.Reader, dst Sink) error {
	scanner := bufio.NewScanner(r)
	scanner.Buffer(make([]byte, 0, bufio.MaxScanTokenSize), maxLineLength)
	lineNo := 0

	for scanner.Scan() {
		lineNo++
		line := scanner.Text()
		if strings.TrimSpace(line) == "" {
			continue
		}

		position, record, err := DecodeLine(line)
		if err != nil {
			return &ParseError{Line: lineNo, Text: line, Err: err}
		}
		dst.Set(position, record)
	}

	if err := scanner.Err(); err != nil {
		if errors.Is(err, bufio.ErrTooLong) {
			return &ParseError{
				Line: lineNo + 1,
				Err:  fmt.Errorf("%w: line exceeds %d bytes", ErrMalformedLine, maxLineLength),
			}
		}
		return fmt.Errorf("failed to read snapshot: %w", err)
	}
	return nil
}

// DecodeLine parses a single snapshot line
func DecodeLine(line string) (int, types.Record, error) {
	fields := strings.Fields(line)
	if len(fields) != fieldsPerLine {
		return 0, types.Record{}, fmt.Errorf("%w: expected %d fields, got %d", ErrMalformedLine, fieldsPerLine, len(fields))
	}

	position, err := strconv.Atoi(fields[0])
	if err != nil {
		return 0, types.Record{}, fmt.Errorf("%w: invalid position %q", ErrMalformedLine, fields[0])
	}

	record, err := types.NewRecord(fields[1:]...)
	if err != nil {
		return 0, types.Record{}, err
	}
	return position, record, nil
}
