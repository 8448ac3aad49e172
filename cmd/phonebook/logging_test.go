package main

import (
	"bytes"
	"os"
	"path/filepath"
	"strings"
	"testing"
)

func TestInitLogging(t *testing.T) {
	cache := t.TempDir()
	t.Setenv("XDG_CACHE_HOME", cache)

	var stderr bytes.Buffer
	logger, closeLog, err := initLogging("INFO", true, &stderr)
	if err != nil {
		t.Fatalf("initLogging failed: %v", err)
	}
	logger.With("session", "abc").Info("command", "verb", "add")
	logger.Debug("hidden")
	if err := closeLog(); err != nil {
		t.Fatalf("close failed: %v", err)
	}

	content, err := os.ReadFile(filepath.Join(cache, "phonebook", logFileName))
	if err != nil {
		t.Fatalf("failed to read log: %v", err)
	}
	for _, want := range []string{`"msg":"command"`, `"session":"abc"`, `"verb":"add"`} {
		if !strings.Contains(string(content), want) {
			t.Errorf("expected %s in log %q", want, content)
		}
	}
	if strings.Contains(string(content), "hidden") {
		t.Error("debug record written at info level")
	}
	if !strings.Contains(stderr.String(), "verb=add") {
		t.Errorf("expected verbose copy on stderr, got %q", stderr.String())
	}
}

func TestGetXDGCacheDir(t *testing.T) {
	t.Setenv("XDG_CACHE_HOME", "/tmp/cache")
	if got := getXDGCacheDir(); got != filepath.Join("/tmp/cache", "phonebook") {
		t.Errorf("unexpected cache dir %q", got)
	}
}
