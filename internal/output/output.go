package output

import (
	"fmt"
	"io"
	"os"
	"sync"

	"github.com/charmbracelet/lipgloss"
	"github.com/charmbracelet/log"
)

var (
	errorStyle = lipgloss.NewStyle().Foreground(lipgloss.Color("1")).Bold(true)
	infoStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("6"))
	stepStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("240"))
	hintStyle  = lipgloss.NewStyle().Foreground(lipgloss.Color("3"))

	mu      sync.Mutex
	stdout  io.Writer = os.Stdout
	stderr  io.Writer = os.Stderr
	verbose bool
	logger  = newLogger(os.Stderr, false)
)

func newLogger(w io.Writer, verbose bool) *log.Logger {
	level := log.InfoLevel
	if verbose {
		level = log.DebugLevel
	}

	return log.NewWithOptions(w, log.Options{
		Level:           level,
		ReportTimestamp: verbose,
		Prefix:          "express",
	})
}

// SetVerbose enables or disables verbose output for debugging.
// This should be called by the CLI when the --verbose flag is set.
func SetVerbose(v bool) {
	mu.Lock()
	defer mu.Unlock()

	verbose = v
	logger = newLogger(stderr, v)
}

// SetWriters redirects stdout and stderr output. Nil arguments restore the
// process streams.
func SetWriters(out, errOut io.Writer) {
	mu.Lock()
	defer mu.Unlock()

	if out == nil {
		out = os.Stdout
	}
	if errOut == nil {
		errOut = os.Stderr
	}

	stdout = out
	stderr = errOut
	logger = newLogger(errOut, verbose)
}

// Stdout returns the writer used for regular output.
func Stdout() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return stdout
}

// Stderr returns the writer used for errors and diagnostics.
func Stderr() io.Writer {
	mu.Lock()
	defer mu.Unlock()
	return stderr
}

// currentLogger returns the diagnostic logger.
func currentLogger() *log.Logger {
	mu.Lock()
	defer mu.Unlock()
	return logger
}

// Error prints an error message in red to stderr.
// Use this for failures that need user attention.
func Error(msg string) {
	fmt.Fprintln(Stderr(), errorStyle.Render("error: "+msg))
}

// Hint prints actionable guidance below an error.
func Hint(msg string) {
	if msg == "" {
		return
	}
	fmt.Fprintln(Stderr(), hintStyle.Render("hint: "+msg))
}

// Info prints an informational message in cyan.
func Info(msg string) {
	fmt.Fprintln(Stdout(), infoStyle.Render(msg))
}

// Step prints an indented step message in gray.
//
// Example:
//
//	output.Step("$ npm start")
func Step(msg string) {
	fmt.Fprintln(Stdout(), stepStyle.Render("   "+msg))
}

// Verbose prints a debug message only if verbose mode is enabled.
func Verbose(msg string) {
	currentLogger().Debug(msg)
}

// Debug logs a structured debug record.
func Debug(msg string, keyvals ...any) {
	currentLogger().Debug(msg, keyvals...)
}

// Warn logs a structured warning record.
func Warn(msg string, keyvals ...any) {
	currentLogger().Warn(msg, keyvals...)
}
