// Package ui provides colored console output for command summaries.
package ui

import (
	"fmt"
	"io"

	"github.com/fatih/color"
)

var (
	// Colors
	Red    = color.New(color.FgRed)
	Green  = color.New(color.FgGreen)
	Yellow = color.New(color.FgYellow)
	Blue   = color.New(color.FgBlue)
	Cyan   = color.New(color.FgCyan)
	Bold   = color.New(color.Bold)
)

// Success prints a green success message with checkmark.
func Success(w io.Writer, format string, args ...any) {
	Green.Fprintf(w, "✓ "+format+"\n", args...)
}

// Error prints a red error message with X.
func Error(w io.Writer, format string, args ...any) {
	Red.Fprintf(w, "✗ "+format+"\n", args...)
}

// Warning prints a yellow warning message.
func Warning(w io.Writer, format string, args ...any) {
	Yellow.Fprintf(w, "⚠ "+format+"\n", args...)
}

// Info prints a blue info message.
func Info(w io.Writer, format string, args ...any) {
	Blue.Fprintf(w, format+"\n", args...)
}

// Step prints a numbered step in cyan.
func Step(w io.Writer, n int, format string, args ...any) {
	Cyan.Fprintf(w, "[%d] ", n)
	fmt.Fprintf(w, format+"\n", args...)
}

// Header prints a bold header.
func Header(w io.Writer, format string, args ...any) {
	Bold.Fprintf(w, format+"\n", args...)
}
