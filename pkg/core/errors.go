// errors.go
package core

import (
	"errors"
	"fmt"
)

var (
	// ErrHashMismatch indicates the fetched toolchain content does not match
	// the pinned hash. Never retried: drift must surface, not be papered over.
	ErrHashMismatch = errors.New("hash mismatch")

	// ErrUnknownPackage indicates a manifest entry could not be resolved
	// against the package database.
	ErrUnknownPackage = errors.New("unknown package")

	// ErrMissingFile indicates the toolchain descriptor file is absent.
	ErrMissingFile = errors.New("missing file")

	// ErrInvalidManifest indicates the manifest failed validation.
	ErrInvalidManifest = errors.New("invalid manifest")
)

// Error wraps an error with additional context
type Error struct {
	Op      string // Operation that failed
	Package string // Package name if applicable
	Err     error  // Underlying error
}

func (e *Error) Error() string {
	if e.Package != "" {
		return fmt.Sprintf("%s %s: %v", e.Op, e.Package, e.Err)
	}
	return fmt.Sprintf("%s: %v", e.Op, e.Err)
}

func (e *Error) Unwrap() error {
	return e.Err
}
