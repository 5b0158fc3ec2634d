// manifest.go
package manifest

import (
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"gopkg.in/yaml.v3"

	"github.com/arc-language/devshell/pkg/core"
)

// DefaultFileName is the manifest file devshell looks for in the working
// directory when no explicit path is given.
const DefaultFileName = "devshell.yaml"

// Load reads and validates a manifest file.
func Load(path string) (*Manifest, error) {
	if path == "" {
		path = DefaultFileName
	}

	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &core.Error{Op: "load manifest", Package: path, Err: core.ErrMissingFile}
		}
		return nil, fmt.Errorf("reading manifest: %w", err)
	}

	var m Manifest
	if err := yaml.Unmarshal(data, &m); err != nil {
		return nil, fmt.Errorf("parsing manifest: %w", err)
	}

	abs, err := filepath.Abs(path)
	if err != nil {
		return nil, fmt.Errorf("resolving manifest path: %w", err)
	}
	m.Dir = filepath.Dir(abs)

	if err := m.Validate(); err != nil {
		return nil, err
	}

	return &m, nil
}

// Validate checks the manifest for structural errors.
func (m *Manifest) Validate() error {
	if len(m.Packages) == 0 {
		return fmt.Errorf("%w: no packages declared", core.ErrInvalidManifest)
	}

	declared := make(map[string]bool, len(m.Packages))
	for _, name := range m.Packages {
		if strings.TrimSpace(name) == "" {
			return fmt.Errorf("%w: empty package identifier", core.ErrInvalidManifest)
		}
		if declared[name] {
			return fmt.Errorf("%w: duplicate package %q", core.ErrInvalidManifest, name)
		}
		declared[name] = true
	}

	for _, name := range m.Libraries {
		if !declared[name] {
			return fmt.Errorf("%w: libraries entry %q is not a declared package", core.ErrInvalidManifest, name)
		}
	}

	if m.Toolchain != nil {
		if m.Toolchain.File == "" {
			return fmt.Errorf("%w: toolchain pin has no file", core.ErrInvalidManifest)
		}
		if m.Toolchain.SHA256 == "" {
			return fmt.Errorf("%w: toolchain pin has no sha256", core.ErrInvalidManifest)
		}
	}

	return nil
}

// ToolchainFile returns the absolute path of the toolchain descriptor,
// resolving a relative pin path against the manifest directory.
func (m *Manifest) ToolchainFile() string {
	if m.Toolchain == nil {
		return ""
	}
	if filepath.IsAbs(m.Toolchain.File) {
		return m.Toolchain.File
	}
	return filepath.Join(m.Dir, m.Toolchain.File)
}

// LinkedPackages returns the packages whose library directories enter the
// search path, preserving declaration order. An empty Libraries list selects
// every declared package.
func (m *Manifest) LinkedPackages() []string {
	if len(m.Libraries) == 0 {
		out := make([]string, len(m.Packages))
		copy(out, m.Packages)
		return out
	}

	selected := make(map[string]bool, len(m.Libraries))
	for _, name := range m.Libraries {
		selected[name] = true
	}

	var out []string
	for _, name := range m.Packages {
		if selected[name] {
			out = append(out, name)
		}
	}
	return out
}
