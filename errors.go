// errors.go
package devshell

import "github.com/arc-language/devshell/pkg/core"

// Re-export the error taxonomy so callers can errors.Is against the root
// package without importing pkg/core.
var (
	// ErrHashMismatch indicates a toolchain pin verification failure
	ErrHashMismatch = core.ErrHashMismatch

	// ErrUnknownPackage indicates a manifest entry could not be resolved
	ErrUnknownPackage = core.ErrUnknownPackage

	// ErrMissingFile indicates the toolchain descriptor file is absent
	ErrMissingFile = core.ErrMissingFile

	// ErrInvalidManifest indicates the manifest failed validation
	ErrInvalidManifest = core.ErrInvalidManifest
)

// Error wraps an error with operation context
type Error = core.Error
