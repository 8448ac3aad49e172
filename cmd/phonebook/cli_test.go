package main

import (
	"bytes"
	"encoding/json"
	"errors"
	"os"
	"path/filepath"
	"strings"
	"testing"

	"github.com/arthur-debert/phonebook/phonebook/storage"
	"github.com/arthur-debert/phonebook/phonebook/store"
	"github.com/arthur-debert/phonebook/phonebook/testutil"
	"github.com/arthur-debert/phonebook/types"
	"github.com/gofrs/flock"
	"github.com/google/go-cmp/cmp"
	"gopkg.in/yaml.v3"
)

// isolate keeps config discovery and log files inside temp directories
func isolate(t *testing.T) string {
	t.Helper()
	t.Setenv("XDG_CACHE_HOME", t.TempDir())
	t.Setenv("HOME", t.TempDir())
	t.Setenv("PHONEBOOK_CONFIG", "")
	t.Setenv("PHONEBOOK_SNAPSHOT", "")
	dir := t.TempDir()
	t.Chdir(dir)
	return dir
}

func writeSnapshot(t *testing.T, path, content string) {
	t.Helper()
	if err := os.WriteFile(path, []byte(content), 0644); err != nil {
		t.Fatalf("failed to write snapshot: %v", err)
	}
}

func runCLI(t *testing.T, input string, args ...string) (string, error) {
	t.Helper()
	var out, errOut bytes.Buffer
	cli := NewCLI(strings.NewReader(input), &out, &errOut)
	cli.GetRootCommand().SetArgs(args)
	err := cli.Execute()
	return out.String(), err
}

const twoEntries = "1\tDoe John M 12345\n2\tRoe Jane K 12399\n"

func TestSnapshotRequired(t *testing.T) {
	isolate(t)

	_, err := runCLI(t, "print")
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %v", err)
	}
	if !strings.Contains(cliErr.Error(), "snapshot path is required") {
		t.Errorf("unexpected message %q", cliErr.Error())
	}
	if len(cliErr.Suggestions) == 0 {
		t.Error("expected suggestions")
	}
}

func TestSessionPersists(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "book.txt")

	out, err := runCLI(t, "add Doe John M 12345\nadd Roe Jane K 12399\nfind 1239\nexit\nclear\n", path)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if want := "2\tRoe Jane K 12399\n"; out != want {
		t.Errorf("output %q, want %q", out, want)
	}

	content, err := os.ReadFile(path)
	if err != nil {
		t.Fatalf("failed to read snapshot: %v", err)
	}
	if string(content) != twoEntries {
		t.Errorf("snapshot %q, want %q", content, twoEntries)
	}
	if _, err := os.Stat(path + ".lock"); err != nil {
		t.Errorf("expected lock file to stay in place, got %v", err)
	}

	// a second session sees the first one's entries
	out, err = runCLI(t, "print", "--snapshot", path)
	if err != nil {
		t.Fatalf("second session failed: %v", err)
	}
	if out != twoEntries {
		t.Errorf("output %q, want %q", out, twoEntries)
	}
}

func TestSnapshotResolution(t *testing.T) {
	t.Run("environment", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "env.txt")
		writeSnapshot(t, path, twoEntries)
		t.Setenv("PHONEBOOK_SNAPSHOT", path)

		out, err := runCLI(t, "", "check")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if out != "ok: 2 entries\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("config file in working directory", func(t *testing.T) {
		dir := isolate(t)
		writeSnapshot(t, filepath.Join(dir, "book.txt"), twoEntries)
		writeSnapshot(t, filepath.Join(dir, "phonebook.yaml"), "snapshot: book.txt\n")

		out, err := runCLI(t, "", "find", "123")
		if err != nil {
			t.Fatalf("find failed: %v", err)
		}
		if out != twoEntries {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("PHONEBOOK_CONFIG", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "custom.txt")
		writeSnapshot(t, path, "7\tSmith Anna B 5550100\n")
		config := filepath.Join(t.TempDir(), "custom.yaml")
		writeSnapshot(t, config, "snapshot: "+path+"\n")
		t.Setenv("PHONEBOOK_CONFIG", config)

		out, err := runCLI(t, "", "check")
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if out != "ok: 1 entries\n" {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("flag overrides environment", func(t *testing.T) {
		dir := isolate(t)
		path := filepath.Join(dir, "flag.txt")
		writeSnapshot(t, path, twoEntries)
		t.Setenv("PHONEBOOK_SNAPSHOT", filepath.Join(dir, "missing", "env.txt"))

		out, err := runCLI(t, "", "check", "--snapshot", path)
		if err != nil {
			t.Fatalf("check failed: %v", err)
		}
		if out != "ok: 2 entries\n" {
			t.Errorf("unexpected output %q", out)
		}
	})
}

func TestExport(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "book.txt")
	writeSnapshot(t, path, twoEntries)

	want := []types.Entry{
		{Position: 1, Record: testutil.Doe},
		{Position: 2, Record: testutil.Roe},
	}

	t.Run("text", func(t *testing.T) {
		out, err := runCLI(t, "", "-s", path, "export")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if out != twoEntries {
			t.Errorf("unexpected output %q", out)
		}
	})

	t.Run("json", func(t *testing.T) {
		out, err := runCLI(t, "", "-s", path, "export", "--format", "json")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var got []types.Entry
		if err := json.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid json %q: %v", out, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("export mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("yaml", func(t *testing.T) {
		out, err := runCLI(t, "", "-s", path, "export", "-f", "yaml")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		var got []types.Entry
		if err := yaml.Unmarshal([]byte(out), &got); err != nil {
			t.Fatalf("invalid yaml %q: %v", out, err)
		}
		if diff := cmp.Diff(want, got); diff != "" {
			t.Errorf("export mismatch (-want +got):\n%s", diff)
		}
	})

	t.Run("unknown format flag", func(t *testing.T) {
		_, err := runCLI(t, "", "-s", path, "export", "--format", "csv")
		if err == nil || !strings.Contains(err.Error(), "must be one of text, json, yaml") {
			t.Errorf("expected flag error, got %v", err)
		}
	})

	t.Run("unknown format from environment", func(t *testing.T) {
		t.Setenv("PHONEBOOK_FORMAT", "csv")
		_, err := runCLI(t, "", "-s", path, "export")
		var cliErr *CLIError
		if !errors.As(err, &cliErr) || !strings.Contains(cliErr.Cause, `"csv"`) {
			t.Errorf("expected validation error, got %v", err)
		}
	})

	t.Run("format from environment", func(t *testing.T) {
		t.Setenv("PHONEBOOK_FORMAT", "json")
		out, err := runCLI(t, "", "-s", path, "export")
		if err != nil {
			t.Fatalf("export failed: %v", err)
		}
		if !strings.HasPrefix(out, "[") {
			t.Errorf("expected json output, got %q", out)
		}
	})
}

func TestMalformedSnapshot(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "book.txt")
	writeSnapshot(t, path, "1\tDoe John M 12345\n2\tRoe Jane\n")

	for _, args := range [][]string{{path}, {"-s", path, "check"}} {
		_, err := runCLI(t, "print", args...)

		var parseErr *storage.ParseError
		if !errors.As(err, &parseErr) {
			t.Fatalf("%v: expected ParseError, got %v", args, err)
		}
		if parseErr.Line != 2 {
			t.Errorf("expected line 2, got %d", parseErr.Line)
		}
		var cliErr *CLIError
		if !errors.As(err, &cliErr) || cliErr.Cause != "malformed snapshot at line 2" {
			t.Errorf("unexpected error %v", err)
		}
	}

	// the bad snapshot is left alone
	content, _ := os.ReadFile(path)
	if string(content) != "1\tDoe John M 12345\n2\tRoe Jane\n" {
		t.Errorf("snapshot was modified: %q", content)
	}
}

func TestLockedSnapshot(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "book.txt")
	writeSnapshot(t, path, twoEntries)

	holder := flock.New(path + ".lock")
	if ok, err := holder.TryLock(); err != nil || !ok {
		t.Fatalf("failed to take lock: %v", err)
	}
	defer func() { _ = holder.Unlock() }()

	_, err := runCLI(t, "print", path)
	if !errors.Is(err, store.ErrLocked) {
		t.Fatalf("expected ErrLocked, got %v", err)
	}
	var cliErr *CLIError
	if !errors.As(err, &cliErr) {
		t.Fatalf("expected CLIError, got %v", err)
	}
	if cliErr.Cause != "snapshot is currently locked by another process" {
		t.Errorf("unexpected cause %q", cliErr.Cause)
	}
	if diff := cmp.Diff([]string{CommonSuggestions.RetryLater}, cliErr.Suggestions); diff != "" {
		t.Errorf("suggestions mismatch (-want +got):\n%s", diff)
	}
}

func TestDebugFlag(t *testing.T) {
	dir := isolate(t)
	path := filepath.Join(dir, "book.txt")

	out, err := runCLI(t, "add Doe John M 12345", "--debug", path)
	if err != nil {
		t.Fatalf("session failed: %v", err)
	}
	if !strings.Contains(out, "--- verify: ok\n") {
		t.Errorf("expected a state dump, got %q", out)
	}
}

func TestTooManyArguments(t *testing.T) {
	isolate(t)
	if _, err := runCLI(t, "", "a.txt", "b.txt"); err == nil {
		t.Error("expected an error for two snapshot arguments")
	}
}
