// descriptor.go
package toolchain

import (
	"fmt"
	"os"

	"github.com/BurntSushi/toml"

	"github.com/arc-language/devshell/pkg/core"
)

// LoadDescriptor reads and parses a toolchain descriptor file.
func LoadDescriptor(path string) (*Descriptor, error) {
	data, err := os.ReadFile(path)
	if err != nil {
		if os.IsNotExist(err) {
			return nil, &core.Error{Op: "load descriptor", Package: path, Err: core.ErrMissingFile}
		}
		return nil, fmt.Errorf("reading descriptor: %w", err)
	}

	var desc Descriptor
	if _, err := toml.Decode(string(data), &desc); err != nil {
		return nil, fmt.Errorf("parsing descriptor: %w", err)
	}

	if desc.Toolchain.Name == "" {
		return nil, fmt.Errorf("descriptor %s: toolchain has no name", path)
	}
	if desc.Toolchain.Channel == "" {
		return nil, fmt.Errorf("descriptor %s: toolchain has no channel", path)
	}
	if desc.Toolchain.StoreHash == "" {
		return nil, fmt.Errorf("descriptor %s: toolchain has no store-hash", path)
	}

	return &desc, nil
}

// Folder returns the directory name the toolchain unpacks into,
// e.g. "rust-1.78.0".
func (d *Descriptor) Folder() string {
	return fmt.Sprintf("%s-%s", d.Toolchain.Name, d.Toolchain.Channel)
}
