// store.go
package resolver

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"strings"

	"github.com/arc-language/devshell/pkg/core"
	"github.com/arc-language/devshell/pkg/registry"
	"github.com/arc-language/devshell/pkg/shell"
)

// StoreResolver resolves packages against the local package database.
type StoreResolver struct {
	registry *registry.Registry
	logger   *log.Logger
}

// NewStoreResolver creates a resolver backed by the database at dbDir.
func NewStoreResolver(dbDir string, logger *log.Logger) *StoreResolver {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &StoreResolver{
		registry: registry.New(dbDir),
		logger:   logger,
	}
}

// Resolve looks up a package in the database and verifies its store path
// actually exists on disk.
func (r *StoreResolver) Resolve(ctx context.Context, name string) (*Package, error) {
	if err := ctx.Err(); err != nil {
		return nil, err
	}

	entry, err := r.registry.Load(name)
	if err != nil {
		return nil, &core.Error{Op: "resolve", Package: name, Err: fmt.Errorf("%w: %v", core.ErrUnknownPackage, err)}
	}

	if entry.StorePath == "" {
		return nil, &core.Error{Op: "resolve", Package: name, Err: fmt.Errorf("%w: database entry has no store path", core.ErrUnknownPackage)}
	}

	if _, err := os.Stat(entry.StorePath); err != nil {
		return nil, &core.Error{Op: "resolve", Package: name, Err: fmt.Errorf("%w: store path %s not present", core.ErrUnknownPackage, entry.StorePath)}
	}

	r.logger.Printf("resolved %s -> %s", name, entry.StorePath)

	return &Package{
		Name:        name,
		Version:     entry.Version,
		StorePath:   entry.StorePath,
		LibraryDirs: r.libraryDirs(name, entry),
	}, nil
}

// libraryDirs keeps the entry's library directories that actually exist in
// the store. A package may legitimately export no shared libraries.
func (r *StoreResolver) libraryDirs(name string, entry *registry.Entry) []string {
	var dirs []string
	for _, dir := range entry.LibraryDirs() {
		files, err := os.ReadDir(dir)
		if err != nil {
			r.logger.Printf("%s: skipping library dir %s: %v", name, dir, err)
			continue
		}
		dirs = append(dirs, dir)

		shared := 0
		for _, f := range files {
			for _, ext := range shell.SharedLibraryExtensions() {
				if strings.Contains(f.Name(), ext) {
					shared++
					break
				}
			}
		}
		r.logger.Printf("%s: %d shared libraries in %s", name, shared, dir)
	}
	return dirs
}
