// types.go
package manifest

// Manifest is the declarative input describing desired packages and the
// toolchain pin. It is authored once and treated as immutable.
type Manifest struct {
	// Packages lists package identifiers in declaration order. Order matters:
	// it determines library search path precedence.
	Packages []string `yaml:"packages"`

	// Toolchain pins the toolchain by descriptor file and content hash.
	Toolchain *ToolchainPin `yaml:"toolchain,omitempty"`

	// Libraries names the subset of Packages whose library directories enter
	// the dynamic-library search path. Empty means all packages.
	Libraries []string `yaml:"libraries,omitempty"`

	// ShellHook is free-text script run when the shell session starts.
	ShellHook string `yaml:"shellHook,omitempty"`

	// Dir is the directory containing the manifest file. Relative paths in
	// the manifest (the toolchain descriptor) resolve against it.
	Dir string `yaml:"-"`
}

// ToolchainPin is a content-hash-verified reference to a toolchain.
type ToolchainPin struct {
	// File is the path to the toolchain descriptor, relative to the manifest.
	File string `yaml:"file"`

	// SHA256 is the expected content hash of the fetched toolchain archive,
	// in nix base32 encoding. Comparison is exact, no fuzzy matching.
	SHA256 string `yaml:"sha256"`
}
