package resolver_test

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/devshell/pkg/core"
	"github.com/arc-language/devshell/pkg/resolver"
)

// installPackage creates a database entry plus a matching store directory.
func installPackage(t *testing.T, dbDir, storeDir, name, version string) string {
	t.Helper()

	storePath := filepath.Join(storeDir, fmt.Sprintf("%s-%s", name, version))
	require.NoError(t, os.MkdirAll(filepath.Join(storePath, "lib"), 0755))

	entryDir := filepath.Join(dbDir, name)
	require.NoError(t, os.MkdirAll(entryDir, 0755))
	entry := fmt.Sprintf("name = %q\nversion = %q\nstore_path = %q\nlibs = [\"lib\"]\n", name, version, storePath)
	require.NoError(t, os.WriteFile(filepath.Join(entryDir, "index.toml"), []byte(entry), 0644))

	return storePath
}

func TestStoreResolverResolve(t *testing.T) {
	dbDir := t.TempDir()
	storeDir := t.TempDir()
	storePath := installPackage(t, dbDir, storeDir, "wayland", "1.22.0")

	r := resolver.NewStoreResolver(dbDir, nil)

	pkg, err := r.Resolve(context.Background(), "wayland")
	require.NoError(t, err)
	assert.Equal(t, "wayland", pkg.Name)
	assert.Equal(t, "1.22.0", pkg.Version)
	assert.Equal(t, storePath, pkg.StorePath)
	assert.Equal(t, []string{filepath.Join(storePath, "lib")}, pkg.LibraryDirs)
}

func TestStoreResolverNoLibraryDir(t *testing.T) {
	dbDir := t.TempDir()
	storeDir := t.TempDir()

	// A package that installs fine but ships no lib/ directory.
	storePath := filepath.Join(storeDir, "pkgconf-2.1.0")
	require.NoError(t, os.MkdirAll(filepath.Join(storePath, "bin"), 0755))

	entryDir := filepath.Join(dbDir, "pkgconf")
	require.NoError(t, os.MkdirAll(entryDir, 0755))
	entry := fmt.Sprintf("name = \"pkgconf\"\nstore_path = %q\n", storePath)
	require.NoError(t, os.WriteFile(filepath.Join(entryDir, "index.toml"), []byte(entry), 0644))

	r := resolver.NewStoreResolver(dbDir, nil)
	pkg, err := r.Resolve(context.Background(), "pkgconf")
	require.NoError(t, err)
	assert.Empty(t, pkg.LibraryDirs)
}

func TestStoreResolverUnknownPackage(t *testing.T) {
	r := resolver.NewStoreResolver(t.TempDir(), nil)

	_, err := r.Resolve(context.Background(), "mesa")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownPackage))
}

func TestStoreResolverMissingStorePath(t *testing.T) {
	dbDir := t.TempDir()

	// Database entry points at a store path that was never installed.
	entryDir := filepath.Join(dbDir, "seatd")
	require.NoError(t, os.MkdirAll(entryDir, 0755))
	entry := "name = \"seatd\"\nstore_path = \"/store/gone-seatd-0.8\"\n"
	require.NoError(t, os.WriteFile(filepath.Join(entryDir, "index.toml"), []byte(entry), 0644))

	r := resolver.NewStoreResolver(dbDir, nil)
	_, err := r.Resolve(context.Background(), "seatd")
	require.Error(t, err)
	assert.True(t, errors.Is(err, core.ErrUnknownPackage))
}

func TestStoreResolverCancelledContext(t *testing.T) {
	r := resolver.NewStoreResolver(t.TempDir(), nil)

	ctx, cancel := context.WithCancel(context.Background())
	cancel()

	_, err := r.Resolve(ctx, "wayland")
	require.Error(t, err)
	assert.True(t, errors.Is(err, context.Canceled))
}
