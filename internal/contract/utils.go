package contract

import (
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/fatih/color"
)

// Color variables for console output.
var (
	SuccessColor = color.New(color.FgGreen)               // file written, run finished
	WarnColor    = color.New(color.FgYellow)              // recoverable problem
	FatalColor   = color.New(color.FgRed, color.Bold)     // run aborted
	InfoColor    = color.New(color.FgCyan)                // progress
	HeaderColor  = color.New(color.FgMagenta, color.Bold) // section titles
)

// SetColorEnabled toggles colored console output globally.
func SetColorEnabled(enabled bool) {
	color.NoColor = !enabled
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = FatalColor.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	LogWarnTo(os.Stderr, msg, err)
}

// LogWarnTo logs a warning message to w.
func LogWarnTo(w io.Writer, msg string, err error) {
	if err == nil {
		_, _ = WarnColor.Fprintf(w, "Warn %s\n", msg)
		return
	}
	_, _ = WarnColor.Fprintf(w, "Warn %s: %v\n", msg, err)
}

// LogInfo logs a progress message to stderr.
func LogInfo(format string, args ...any) {
	_, _ = InfoColor.Fprintf(os.Stderr, format+"\n", args...)
}

// LogSuccess logs a completion message to stderr.
func LogSuccess(format string, args ...any) {
	_, _ = SuccessColor.Fprintf(os.Stderr, format+"\n", args...)
}

// TruncatePath truncates a file path to a maximum width with ellipsis prefix.
// Requires maxWidth > 3 to ensure there's space for both the "..." prefix and at least one character of content.
func TruncatePath(path string, maxWidth int) string {
	runes := []rune(path)
	if len(runes) > maxWidth && maxWidth > 3 {
		return "..." + string(runes[len(runes)-maxWidth+3:])
	}
	return path
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}
