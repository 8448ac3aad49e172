package commands

import (
	"context"
	"errors"
	"fmt"
	"io"
	"log/slog"

	"github.com/arthur-debert/phonebook/phonebook/book"
	"gopkg.in/yaml.v3"
)

// Store is a Book that can also persist itself and report its index state
type Store interface {
	Book
	Save() error
	Verify() error
	State() book.State
}

// Session runs the interactive loop over one store
type Session struct {
	store  Store
	in     *Tokens
	out    io.Writer
	logger *slog.Logger
	debug  bool
}

// SessionOption configures a Session
type SessionOption func(*Session)

// WithDebug dumps the index state after every command
func WithDebug(debug bool) SessionOption {
	return func(s *Session) {
		s.debug = debug
	}
}

// WithSessionLogger sets the session logger
func WithSessionLogger(logger *slog.Logger) SessionOption {
	return func(s *Session) {
		s.logger = logger
	}
}

// NewSession creates a session reading commands from in and writing to out
func NewSession(store Store, in io.Reader, out io.Writer, opts ...SessionOption) *Session {
	s := &Session{
		store: store,
		in:    NewTokens(in),
		out:   out,
	}
	for _, opt := range opts {
		opt(s)
	}
	if s.logger == nil {
		s.logger = slog.Default()
	}
	return s
}

// Run reads and executes commands until exit, end of input or ctx is done.
// Failed commands are reported on the output and the loop goes on; only an
// unreadable input or a broken output ends it with an error.
func (s *Session) Run(ctx context.Context) error {
	for {
		if err := ctx.Err(); err != nil {
			return err
		}

		word, err := s.in.Next()
		if errors.Is(err, io.EOF) {
			s.logger.Debug("end of input")
			return nil
		}
		if err != nil {
			return fmt.Errorf("failed to read command: %w", err)
		}

		verb, ok := LookupVerb(word)
		if !ok {
			s.logger.Info("unknown command", "verb", word)
			if err := s.printHelp(word); err != nil {
				return err
			}
			continue
		}

		cmd, err := Parse(verb, s.in)
		if errors.Is(err, io.ErrUnexpectedEOF) {
			s.logger.Warn("input ended inside a command", "verb", verb)
			return nil
		}
		if err != nil {
			s.logger.Info("bad arguments", "verb", verb, "error", err)
			if _, werr := fmt.Fprintln(s.out, err); werr != nil {
				return werr
			}
			continue
		}

		if verb.Terminates() {
			s.logger.Info("command", "verb", verb)
			return nil
		}

		if err := s.run(cmd); err != nil {
			return err
		}

		if s.debug {
			if err := s.dumpState(); err != nil {
				return err
			}
		}
	}
}

// run executes one command and saves after a successful mutation.
// Only output failures are returned.
func (s *Session) run(cmd Command) error {
	verb := cmd.Verb()
	s.logger.Info("command", "verb", verb, "mutates", verb.Mutates())

	if err := Execute(cmd, s.store, s.out); err != nil {
		if errors.Is(err, book.ErrEntryNotFound) {
			s.logger.Info("command failed", "verb", verb, "error", err)
			_, werr := fmt.Fprintf(s.out, "%s: %v\n", verb, err)
			return werr
		}
		return err
	}

	if !verb.Mutates() {
		return nil
	}
	if err := s.store.Save(); err != nil {
		s.logger.Error("save failed", "verb", verb, "error", err)
		_, werr := fmt.Fprintf(s.out, "%s: %v\n", verb, err)
		return werr
	}
	return nil
}

// printHelp reports an unknown verb followed by the list of valid commands
func (s *Session) printHelp(word string) error {
	if _, err := fmt.Fprintf(s.out, "Unknown command %s, ignoring\nList of possible commands:\n", word); err != nil {
		return err
	}
	return WriteHelp(s.out)
}

// WriteHelp lists every verb with its description, one per line
func WriteHelp(out io.Writer) error {
	for _, v := range Verbs() {
		if _, err := fmt.Fprintf(out, "%s\t%s\n", v, v.Description()); err != nil {
			return err
		}
	}
	return nil
}

// dumpState prints both indices as YAML followed by the consistency check result
func (s *Session) dumpState() error {
	if _, err := fmt.Fprintln(s.out, "--- state"); err != nil {
		return err
	}
	enc := yaml.NewEncoder(s.out)
	enc.SetIndent(2)
	if err := enc.Encode(s.store.State()); err != nil {
		return fmt.Errorf("failed to dump state: %w", err)
	}
	if err := enc.Close(); err != nil {
		return err
	}

	verdict := "ok"
	if err := s.store.Verify(); err != nil {
		s.logger.Error("book inconsistent", "error", err)
		verdict = err.Error()
	}
	_, err := fmt.Fprintf(s.out, "--- verify: %s\n", verdict)
	return err
}
