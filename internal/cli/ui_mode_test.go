package cli

import (
	"bytes"
	"io"
	"testing"
)

func withTerminal(t *testing.T, tty bool) {
	t.Helper()
	original := isTerminal
	isTerminal = func(io.Writer) bool { return tty }
	t.Cleanup(func() { isTerminal = original })
}

func TestResolveUIModeAuto(t *testing.T) {
	withTerminal(t, true)
	decision, err := resolveUIMode("auto", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if !decision.useTable {
		t.Fatalf("expected table on TTY")
	}

	withTerminal(t, false)
	decision, err = resolveUIMode("", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useTable {
		t.Fatalf("expected plain without TTY")
	}
}

func TestResolveUIModeTableFallsBack(t *testing.T) {
	withTerminal(t, false)
	decision, err := resolveUIMode("table", &bytes.Buffer{})
	if err != nil {
		t.Fatalf("resolveUIMode: %v", err)
	}
	if decision.useTable {
		t.Fatalf("expected fallback to plain")
	}
	if decision.warning == "" {
		t.Fatalf("expected a fallback warning")
	}
}

func TestResolveUIModeInvalid(t *testing.T) {
	if _, err := resolveUIMode("fancy", &bytes.Buffer{}); err == nil {
		t.Fatalf("expected error for invalid mode")
	}
}

func TestDefaultIsTerminalBuffer(t *testing.T) {
	if defaultIsTerminal(&bytes.Buffer{}) {
		t.Fatalf("buffer must not look like a TTY")
	}
	if defaultIsTerminal(nil) {
		t.Fatalf("nil writer must not look like a TTY")
	}
}
