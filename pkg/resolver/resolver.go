// resolver.go
package resolver

import "context"

// Package is a manifest identifier resolved to a concrete installed artifact.
type Package struct {
	Name        string   // Package identifier from the manifest
	Version     string   // Installed version, if the database records one
	StorePath   string   // Root installation path
	LibraryDirs []string // Directories holding the package's shared libraries
}

// Resolver maps package identifiers to installed artifacts. The backing
// package database is an opaque external collaborator; injecting the
// interface lets tests substitute deterministic paths.
type Resolver interface {
	// Resolve looks up a single package identifier.
	Resolve(ctx context.Context, name string) (*Package, error)
}
