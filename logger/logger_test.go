package logger

import (
	"bytes"
	"os"
	"strings"
	"testing"

	"schedgrid/errors"
)

func TestUseLogFile(t *testing.T) {
	dir := t.TempDir()
	if err := UseLogFile(dir); err != nil {
		t.Fatal(err)
	}
	defer func() {
		mu.Lock()
		useLogFile = false
		mu.Unlock()
	}()

	prev := SetOutput(&bytes.Buffer{})
	defer SetOutput(prev)
	Info("written to %s", "file")

	data, err := os.ReadFile(logFileName)
	if err != nil {
		t.Fatal(err)
	}
	if !strings.Contains(string(data), "INFO: written to file") {
		t.Errorf("log file missing record: %q", data)
	}
}

func TestLevels(t *testing.T) {
	var console bytes.Buffer
	prev := SetOutput(&console)
	defer SetOutput(prev)

	Warn("no sessions found for %s", "Monday")
	Error(errors.NewError("server", "cannot render", errors.ErrInvalidColor))

	got := console.String()
	if !strings.Contains(got, "WARN: no sessions found for Monday") {
		t.Errorf("missing warning in %q", got)
	}
	if !strings.Contains(got, "ERROR: server: cannot render: invalid hex colour") {
		t.Errorf("missing error in %q", got)
	}
}
