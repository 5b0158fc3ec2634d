// registry.go
package registry

import (
	"fmt"
	"os"
	"path/filepath"

	"github.com/BurntSushi/toml"
)

// Entry represents a single db/<name>/index.toml file in the package database
type Entry struct {
	Name      string   `toml:"name"`
	Version   string   `toml:"version"`
	StorePath string   `toml:"store_path"`
	Libs      []string `toml:"libs"`
}

// Registry provides lookup into the host package database. The database is an
// external collaborator: devshell only reads it, never writes.
type Registry struct {
	dbDir string
}

// New creates a Registry pointed at the package database directory
func New(dbDir string) *Registry {
	return &Registry{
		dbDir: dbDir,
	}
}

// Load reads and parses db/<name>/index.toml.
// This is the primary method for retrieving package metadata.
func (r *Registry) Load(name string) (*Entry, error) {
	if _, err := os.Stat(r.dbDir); os.IsNotExist(err) {
		return nil, fmt.Errorf("registry: package database not found at %s", r.dbDir)
	}

	path := filepath.Join(r.dbDir, name, "index.toml")

	data, err := os.ReadFile(path)
	if err != nil {
		// Check if the directory exists, to give a better error message.
		dirPath := filepath.Dir(path)
		if _, statErr := os.Stat(dirPath); statErr == nil {
			return nil, fmt.Errorf("registry: found package '%s' directory, but missing index.toml", name)
		}
		return nil, fmt.Errorf("registry: package '%s' not found", name)
	}

	var entry Entry
	if _, err := toml.Decode(string(data), &entry); err != nil {
		return nil, fmt.Errorf("registry: failed to parse '%s': %w", name, err)
	}

	if entry.Name == "" {
		entry.Name = name
	}

	return &entry, nil
}

// LibraryDirs returns the entry's exported library directories as absolute
// paths under its store path. Entries without an explicit libs list default
// to the conventional lib/ subdirectory.
func (e *Entry) LibraryDirs() []string {
	libs := e.Libs
	if len(libs) == 0 {
		libs = []string{"lib"}
	}

	dirs := make([]string, 0, len(libs))
	for _, sub := range libs {
		dirs = append(dirs, filepath.Join(e.StorePath, sub))
	}
	return dirs
}
