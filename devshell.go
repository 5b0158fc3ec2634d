// devshell.go
package devshell

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"runtime"

	"golang.org/x/sync/errgroup"

	"github.com/arc-language/devshell/pkg/core"
	"github.com/arc-language/devshell/pkg/manifest"
	"github.com/arc-language/devshell/pkg/resolver"
	"github.com/arc-language/devshell/pkg/shell"
	"github.com/arc-language/devshell/pkg/toolchain"
)

// Re-export core types for convenience
type (
	Config       = core.Config
	Manifest     = manifest.Manifest
	ToolchainPin = manifest.ToolchainPin
	Resolver     = resolver.Resolver
	Package      = resolver.Package
	Toolchain    = toolchain.Toolchain
)

// DefaultConfig returns a configuration with sensible defaults
func DefaultConfig() *Config {
	return core.DefaultConfig()
}

// ToolchainInstaller makes a pinned toolchain available locally. It fails
// with ErrMissingFile when the descriptor is absent and ErrHashMismatch when
// the fetched content disagrees with the pin.
type ToolchainInstaller interface {
	Ensure(ctx context.Context, descriptorPath, pinnedSHA256 string) (*toolchain.Toolchain, error)
}

// ResolvedEnvironment is the concrete environment derived from a manifest.
// It is rebuilt from scratch on every composition and never persisted; it
// lives only as long as the shell session it feeds.
type ResolvedEnvironment struct {
	Packages    []*resolver.Package  // All manifest packages, declaration order
	Paths       map[string]string    // Package identifier -> store path
	LibraryDirs []string             // Search dirs of the linked subset, declaration order
	Toolchain   *toolchain.Toolchain // nil when the manifest has no pin
	ShellHook   string
}

// Environ derives the full shell environment from a base environment. Prior
// entries of the library search path variable are preserved; resolved dirs
// are appended after them. The base slice is not modified.
func (e *ResolvedEnvironment) Environ(base []string) []string {
	var binDirs []string
	if e.Toolchain != nil {
		binDirs = append(binDirs, e.Toolchain.BinDir())
	}

	extra := map[string]string{"IN_DEVSHELL": "1"}

	return shell.BuildEnviron(base, e.LibraryDirs, binDirs, extra)
}

// Composer turns a manifest into a resolved environment and shell session
type Composer struct {
	manifest  *manifest.Manifest
	resolver  resolver.Resolver
	installer ToolchainInstaller
	logger    *log.Logger
}

// NewComposer creates a composer wired to the local package database and the
// configured binary cache.
func NewComposer(m *manifest.Manifest, config *core.Config) (*Composer, error) {
	if m == nil {
		return nil, fmt.Errorf("manifest cannot be nil")
	}
	if config == nil {
		config = core.DefaultConfig()
	}

	logger := log.New(io.Discard, "", 0)
	if config.Debug {
		logger = log.New(os.Stderr, "[devshell] ", log.LstdFlags)
	}

	installer := toolchain.NewInstaller(&toolchain.Config{
		CacheURL:  config.CacheURL,
		StorePath: config.StorePath,
		CachePath: config.CachePath,
		Timeout:   config.Timeout,
		Debug:     config.Debug,
		Logger:    logger,
	})

	return &Composer{
		manifest:  m,
		resolver:  resolver.NewStoreResolver(config.DatabasePath, logger),
		installer: installer,
		logger:    logger,
	}, nil
}

// NewComposerWith creates a composer with injected collaborators. Tests use
// it with a fake resolver returning deterministic paths.
func NewComposerWith(m *manifest.Manifest, r resolver.Resolver, installer ToolchainInstaller, logger *log.Logger) *Composer {
	if logger == nil {
		logger = log.New(io.Discard, "", 0)
	}
	return &Composer{
		manifest:  m,
		resolver:  r,
		installer: installer,
		logger:    logger,
	}
}

// Compose resolves the manifest into a concrete environment. It fails closed:
// any unresolved package, missing descriptor or pin mismatch aborts the whole
// composition and no partial environment is returned.
func (c *Composer) Compose(ctx context.Context) (*ResolvedEnvironment, error) {
	env := &ResolvedEnvironment{
		Paths:     make(map[string]string, len(c.manifest.Packages)),
		ShellHook: c.manifest.ShellHook,
	}

	if c.manifest.Toolchain != nil {
		if c.installer == nil {
			return nil, fmt.Errorf("manifest pins a toolchain but no installer is configured")
		}
		tc, err := c.installer.Ensure(ctx, c.manifest.ToolchainFile(), c.manifest.Toolchain.SHA256)
		if err != nil {
			return nil, err
		}
		env.Toolchain = tc
	}

	resolved, err := c.resolveAll(ctx)
	if err != nil {
		return nil, err
	}
	env.Packages = resolved

	for _, pkg := range resolved {
		env.Paths[pkg.Name] = pkg.StorePath
	}

	linked := make(map[string]bool)
	for _, name := range c.manifest.LinkedPackages() {
		linked[name] = true
	}
	for _, pkg := range resolved {
		if linked[pkg.Name] {
			env.LibraryDirs = append(env.LibraryDirs, pkg.LibraryDirs...)
		}
	}

	c.logger.Printf("composed environment: %d packages, %d library dirs", len(env.Packages), len(env.LibraryDirs))
	return env, nil
}

// resolveAll resolves every manifest package. Lookups run concurrently but
// results keep declaration order.
func (c *Composer) resolveAll(ctx context.Context) ([]*resolver.Package, error) {
	resolved := make([]*resolver.Package, len(c.manifest.Packages))

	g, groupCtx := errgroup.WithContext(ctx)
	g.SetLimit(runtime.NumCPU())

	for idx, name := range c.manifest.Packages {
		idx, name := idx, name
		g.Go(func() error {
			pkg, err := c.resolver.Resolve(groupCtx, name)
			if err != nil {
				return err
			}
			resolved[idx] = pkg
			return nil
		})
	}

	if err := g.Wait(); err != nil {
		return nil, err
	}

	return resolved, nil
}

// Enter composes the environment and spawns the interactive shell session.
// Resolution failure aborts before any shell is started.
func (c *Composer) Enter(ctx context.Context) error {
	env, err := c.Compose(ctx)
	if err != nil {
		return err
	}

	return shell.Spawn(ctx, shell.SpawnConfig{
		Environ: env.Environ(os.Environ()),
		Hook:    env.ShellHook,
	})
}
