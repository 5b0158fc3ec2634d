package shell_test

import (
	"bytes"
	"context"
	"runtime"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/devshell/pkg/shell"
)

func TestSpawnRunsHookInSession(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell required")
	}

	var stdout, stderr bytes.Buffer
	err := shell.Spawn(context.Background(), shell.SpawnConfig{
		Shell:   "/bin/sh",
		Environ: []string{"PATH=/usr/bin:/bin", "GREETING=from-devshell"},
		Hook:    "echo hook-ran-$GREETING",
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
		Stderr:  &stderr,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "hook-ran-from-devshell")
}

func TestSpawnSessionSeesComposedEnvironment(t *testing.T) {
	if runtime.GOOS == "windows" {
		t.Skip("posix shell required")
	}

	var stdout bytes.Buffer
	err := shell.Spawn(context.Background(), shell.SpawnConfig{
		Shell:   "/bin/sh",
		Environ: []string{"PATH=/usr/bin:/bin", "LD_LIBRARY_PATH=/usr/lib:/store/a/lib"},
		Hook:    "echo libs=$LD_LIBRARY_PATH",
		Stdin:   strings.NewReader(""),
		Stdout:  &stdout,
	})
	require.NoError(t, err)
	assert.Contains(t, stdout.String(), "libs=/usr/lib:/store/a/lib")
}

func TestLibraryPathVar(t *testing.T) {
	switch runtime.GOOS {
	case "darwin":
		assert.Equal(t, "DYLD_LIBRARY_PATH", shell.LibraryPathVar())
	case "windows":
		assert.Equal(t, "PATH", shell.LibraryPathVar())
	default:
		assert.Equal(t, "LD_LIBRARY_PATH", shell.LibraryPathVar())
	}
}
