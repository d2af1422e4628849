// Package errors provides the error taxonomy shared by the generation engine.
package errors

import "errors"

// Sentinel errors for known conditions. Every error returned by the engine
// wraps exactly one of these so callers can branch with errors.Is.
var (
	// ErrUnsupportedEngine indicates an unknown view or css engine identifier.
	ErrUnsupportedEngine = errors.New("unsupported engine")

	// ErrConflictingOptions indicates an option set that selects more than one
	// value for the same choice (e.g. --ejs together with --hbs).
	ErrConflictingOptions = errors.New("conflicting options")

	// ErrUnknownTemplate indicates a catalog lookup for a template the engine
	// does not define.
	ErrUnknownTemplate = errors.New("unknown template")

	// ErrDestinationNotEmpty indicates a non-force run against a populated
	// destination.
	ErrDestinationNotEmpty = errors.New("destination is not empty")

	// ErrPathConflict indicates a manifest path occupied by an entry of the
	// wrong kind.
	ErrPathConflict = errors.New("path conflict")

	// ErrFilesystem indicates a failure reported by the underlying storage.
	ErrFilesystem = errors.New("filesystem error")
)
