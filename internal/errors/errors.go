// Package errors formats user-facing error output for the CLI. Errors are
// logged in full and printed to stderr with a uniform prefix.
package errors

import (
	"fmt"
	"os"

	"github.com/julianstephens/ascend/internal/logger"
)

// Format renders an error for the terminal, empty string for nil
func Format(err error) string {
	if err == nil {
		return ""
	}
	return fmt.Sprintf("Error: %v", err)
}

// Formatf renders a formatted message with the standard error prefix
func Formatf(format string, args ...interface{}) string {
	return Format(fmt.Errorf(format, args...))
}

// Fatal logs the error, prints it to stderr, and exits with code 1.
// A nil error is a no-op so it can wrap a command's return directly.
func Fatal(err error) {
	if err == nil {
		return
	}
	logger.Error("command failed", "error", err)
	fmt.Fprintln(os.Stderr, Format(err))
	os.Exit(1)
}

// Fatalf is Fatal with a format string
func Fatalf(format string, args ...interface{}) {
	Fatal(fmt.Errorf(format, args...))
}
