// types.go
package toolchain

import (
	"log"
	"path/filepath"
	"time"
)

// Descriptor is the parsed toolchain descriptor file. It names the toolchain
// and says where in the binary cache its archive lives; the content pin that
// guards it lives in the manifest, next to the package list.
type Descriptor struct {
	Toolchain struct {
		Name       string   `toml:"name"`
		Channel    string   `toml:"channel"`
		Components []string `toml:"components"`
		StoreHash  string   `toml:"store-hash"`
	} `toml:"toolchain"`
}

// Toolchain is an installed, hash-verified toolchain.
type Toolchain struct {
	Name      string
	Channel   string
	StorePath string
}

// BinDir returns the toolchain's executable directory.
func (t *Toolchain) BinDir() string {
	return filepath.Join(t.StorePath, "bin")
}

// LibDir returns the toolchain's runtime library directory.
func (t *Toolchain) LibDir() string {
	return filepath.Join(t.StorePath, "lib")
}

// Config configures the toolchain installer
type Config struct {
	CacheURL  string        // Default: https://cache.nixos.org
	StorePath string        // Where verified toolchains are unpacked
	CachePath string        // Where downloaded archives are kept
	UserAgent string        // HTTP user agent; default DefaultUserAgent
	Timeout   time.Duration
	Debug     bool        // Enable debug logging
	Logger    *log.Logger // Custom logger (optional)
}

// NARInfo holds the binary-cache metadata this tool consumes: where the
// archive lives, how it is compressed, and the cache's own hash of it.
// Unknown narinfo keys are ignored.
type NARInfo struct {
	StorePath   string
	URL         string
	Compression string
	FileHash    string
	FileSize    int64
}

const (
	// DefaultCacheURL is the official Nix binary cache
	DefaultCacheURL = "https://cache.nixos.org"

	// CompressionXZ uses xz compression
	CompressionXZ = "xz"

	// CompressionBZip2 uses bzip2 compression
	CompressionBZip2 = "bzip2"

	// CompressionNone uses no compression
	CompressionNone = "none"
)
