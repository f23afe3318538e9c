package errors

import (
	"bytes"
	"errors"
	"os"
	"os/exec"
	"strings"
	"testing"
)

func TestFormat(t *testing.T) {
	if got := Format(nil); got != "" {
		t.Errorf("Format(nil) = %q, want empty", got)
	}
	if got := Format(errors.New("disk full")); got != "Error: disk full" {
		t.Errorf("Format = %q", got)
	}
}

func TestFormatf(t *testing.T) {
	got := Formatf("connection to %s:%d failed", "localhost", 5432)
	if got != "Error: connection to localhost:5432 failed" {
		t.Errorf("Formatf = %q", got)
	}
}

// Fatal exits the process, so the exit path runs in a subprocess.
func TestFatal_ExitsWithError(t *testing.T) {
	if os.Getenv("FATAL_SUBPROCESS") == "1" {
		Fatal(errors.New("boom"))
		return
	}

	cmd := exec.Command(os.Args[0], "-test.run=TestFatal_ExitsWithError")
	cmd.Env = append(os.Environ(), "FATAL_SUBPROCESS=1")
	var stderr bytes.Buffer
	cmd.Stderr = &stderr

	err := cmd.Run()
	var exitErr *exec.ExitError
	if !errors.As(err, &exitErr) {
		t.Fatalf("Fatal should exit non-zero, got %v", err)
	}
	if exitErr.ExitCode() != 1 {
		t.Errorf("exit code = %d, want 1", exitErr.ExitCode())
	}
	if !strings.Contains(stderr.String(), "Error: boom") {
		t.Errorf("stderr = %q", stderr.String())
	}
}

func TestFatal_NilIsNoOp(t *testing.T) {
	Fatal(nil)
}
