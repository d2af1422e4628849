package errors

import (
	"errors"
	"fmt"
	"strings"
)

// DetailError captures structured error information for terminal display.
type DetailError struct {
	// Type is the error category (required).
	Type string

	// Message is the specific description (required).
	Message string

	// Path is the file or directory involved (optional).
	Path string

	// Hint provides actionable guidance (optional).
	Hint string

	// Cause is the underlying error (optional).
	Cause error
}

// Error implements the error interface.
func (e *DetailError) Error() string {
	var b strings.Builder

	b.WriteString(e.Type)
	if e.Path != "" {
		b.WriteString(" (")
		b.WriteString(e.Path)
		b.WriteString(")")
	}
	if e.Message != "" {
		b.WriteString(": ")
		b.WriteString(e.Message)
	}

	return b.String()
}

// Unwrap returns the underlying error.
func (e *DetailError) Unwrap() error {
	return e.Cause
}

// NewUnsupportedEngineError reports an unknown engine identifier of the given
// kind ("view" or "css") together with the supported values.
func NewUnsupportedEngineError(kind, value string, supported []string) error {
	return &DetailError{
		Type:    "unsupported " + kind + " engine",
		Message: fmt.Sprintf("%q", value),
		Hint:    "supported values: " + strings.Join(supported, ", "),
		Cause:   ErrUnsupportedEngine,
	}
}

// NewConflictingOptionsError reports two options that cannot be combined.
func NewConflictingOptionsError(message string) error {
	return &DetailError{
		Type:    "conflicting options",
		Message: message,
		Hint:    "select a single view engine",
		Cause:   ErrConflictingOptions,
	}
}

// NewUnknownTemplateError reports a catalog miss.
func NewUnknownTemplateError(engine, name string) error {
	return &DetailError{
		Type:    "unknown template",
		Message: fmt.Sprintf("view engine %q has no %q template", engine, name),
		Cause:   ErrUnknownTemplate,
	}
}

// NewDestinationNotEmptyError reports a populated destination in a non-force run.
func NewDestinationNotEmptyError(path string) error {
	return &DetailError{
		Type:  "destination is not empty",
		Path:  path,
		Hint:  "use --force to overwrite existing files",
		Cause: ErrDestinationNotEmpty,
	}
}

// NewPathConflictError reports a path occupied by an entry of the wrong kind.
func NewPathConflictError(path, message string) error {
	return &DetailError{
		Type:    "path conflict",
		Path:    path,
		Message: message,
		Hint:    "move the conflicting entry out of the way and try again",
		Cause:   ErrPathConflict,
	}
}

// NewFilesystemError wraps a storage failure. Both ErrFilesystem and the
// underlying cause are reachable through errors.Is.
func NewFilesystemError(path, op string, cause error) error {
	return &DetailError{
		Type:    "filesystem error",
		Path:    path,
		Message: fmt.Sprintf("%s: %v", op, cause),
		Cause:   errors.Join(ErrFilesystem, cause),
	}
}

// Hint returns the hint carried by err, if any.
func Hint(err error) string {
	var de *DetailError
	if errors.As(err, &de) {
		return de.Hint
	}
	return ""
}

// Is is re-exported so callers need a single errors import.
func Is(err, target error) bool {
	return errors.Is(err, target)
}
