// Package output provides formatting and rendering utilities for CLI output.
package output

import (
	"encoding/json"
	"fmt"
	"io"
	"os"
	"strings"

	"github.com/patchstorage/patchbot/internal/style"
)

// Format represents the output format.
type Format string

const (
	FormatTable Format = "table"
	FormatJSON  Format = "json"
	FormatQuiet Format = "quiet"
)

// Writer handles formatted output.
type Writer struct {
	format Format
	out    io.Writer
	err    io.Writer
}

// NewWriter creates a new output writer with the given format.
func NewWriter(format string) *Writer {
	f := Format(strings.ToLower(format))
	if f == "" {
		f = FormatTable
	}
	return &Writer{
		format: f,
		out:    os.Stdout,
		err:    os.Stderr,
	}
}

// Format returns the current output format.
func (w *Writer) Format() Format {
	return w.format
}

// IsJSON returns true if the output format is JSON.
func (w *Writer) IsJSON() bool {
	return w.format == FormatJSON
}

// JSON outputs data as formatted JSON.
func (w *Writer) JSON(data interface{}) error {
	enc := json.NewEncoder(w.out)
	enc.SetIndent("", "  ")
	return enc.Encode(data)
}

// IsQuiet returns true if informational output is suppressed.
func (w *Writer) IsQuiet() bool {
	return w.format == FormatQuiet
}

// Success prints a success message in green. Silent in quiet mode.
func (w *Writer) Success(format string, args ...interface{}) {
	if w.IsQuiet() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.out, style.Success.Render(msg))
}

// Warning prints a warning message in yellow.
func (w *Writer) Warning(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.err, style.Warning.Render("Warning: "+msg))
}

// Error prints an error message in red.
func (w *Writer) Error(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.err, style.Error.Render("Error: "+msg))
}

// Skip prints a per-item skip notice in yellow.
func (w *Writer) Skip(format string, args ...interface{}) {
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.err, style.Warning.Render("Skip: "+msg))
}

// Info prints an info message in cyan. Silent in quiet mode.
func (w *Writer) Info(format string, args ...interface{}) {
	if w.IsQuiet() {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.out, style.Info.Render(msg))
}

// Debug prints a debug message in gray (only if debug is enabled).
func (w *Writer) Debug(enabled bool, format string, args ...interface{}) {
	if !enabled {
		return
	}
	msg := fmt.Sprintf(format, args...)
	fmt.Fprintln(w.err, style.MutedStyle.Render("[debug] "+msg))
}

// Print writes to stdout. Silent in quiet mode.
func (w *Writer) Print(format string, args ...interface{}) {
	if w.IsQuiet() {
		return
	}
	fmt.Fprintf(w.out, format, args...)
}

// Println writes a line to stdout. Silent in quiet mode.
func (w *Writer) Println(args ...interface{}) {
	if w.IsQuiet() {
		return
	}
	fmt.Fprintln(w.out, args...)
}

// StatusColor returns a colored upload/prepare status string.
func StatusColor(status string) string {
	switch strings.ToLower(status) {
	case "success", "prepared", "published":
		return style.Success.Render(status)
	case "failed", "error":
		return style.Error.Render(status)
	case "pending", "skipped", "incomplete":
		return style.Warning.Render(status)
	default:
		return status
	}
}
