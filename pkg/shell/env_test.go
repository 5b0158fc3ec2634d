package shell_test

import (
	"os"
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/arc-language/devshell/pkg/shell"
)

var sep = string(os.PathListSeparator)

func TestMergeSearchPathEmptyExisting(t *testing.T) {
	got := shell.MergeSearchPath("", []string{"/store/a/lib", "/store/b/lib"})
	assert.Equal(t, "/store/a/lib"+sep+"/store/b/lib", got)
}

func TestMergeSearchPathPreservesPriorEntries(t *testing.T) {
	existing := "/usr/lib" + sep + "/opt/lib"
	got := shell.MergeSearchPath(existing, []string{"/store/a/lib"})

	// Non-destructive append: prior entries first, in order.
	assert.Equal(t, existing+sep+"/store/a/lib", got)
	assert.True(t, strings.HasPrefix(got, existing))
}

func TestMergeSearchPathSkipsEmptyDirs(t *testing.T) {
	got := shell.MergeSearchPath("", []string{"/store/a/lib", "", "/store/b/lib"})
	assert.Equal(t, "/store/a/lib"+sep+"/store/b/lib", got)
}

func TestMergeSearchPathNoDirs(t *testing.T) {
	assert.Equal(t, "/usr/lib", shell.MergeSearchPath("/usr/lib", nil))
}

func TestPrependSearchPath(t *testing.T) {
	got := shell.PrependSearchPath("/usr/bin", []string{"/store/rust/bin"})
	assert.Equal(t, "/store/rust/bin"+sep+"/usr/bin", got)
}

func TestBuildEnviron(t *testing.T) {
	libVar := shell.LibraryPathVar()
	base := []string{
		"HOME=/home/dev",
		"PATH=/usr/bin",
		libVar + "=/usr/lib",
	}

	got := shell.BuildEnviron(base, []string{"/store/a/lib"}, []string{"/store/rust/bin"}, map[string]string{"IN_DEVSHELL": "1"})

	values := environMap(t, got)
	assert.Equal(t, "/home/dev", values["HOME"])
	assert.Equal(t, "1", values["IN_DEVSHELL"])
	assert.True(t, strings.HasPrefix(values["PATH"], "/store/rust/bin"+sep))
	assert.True(t, strings.HasSuffix(values["PATH"], "/usr/bin"))
	assert.True(t, strings.HasPrefix(values[libVar], "/usr/lib"+sep))
	assert.True(t, strings.HasSuffix(values[libVar], "/store/a/lib"))
}

func TestBuildEnvironDoesNotMutateBase(t *testing.T) {
	base := []string{"PATH=/usr/bin"}
	_ = shell.BuildEnviron(base, []string{"/store/a/lib"}, []string{"/store/bin"}, nil)
	assert.Equal(t, []string{"PATH=/usr/bin"}, base)
}

func TestBuildEnvironSetsLibVarWhenUnset(t *testing.T) {
	libVar := shell.LibraryPathVar()
	got := shell.BuildEnviron([]string{"HOME=/home/dev"}, []string{"/store/a/lib", "/store/b/lib"}, nil, nil)

	values := environMap(t, got)
	// No prior value: the variable is exactly the resolved dirs in order.
	assert.Equal(t, "/store/a/lib"+sep+"/store/b/lib", values[libVar])
}

func TestBuildEnvironDeterministic(t *testing.T) {
	base := []string{"HOME=/home/dev", "PATH=/usr/bin"}
	extra := map[string]string{"IN_DEVSHELL": "1", "DEVSHELL_ROOT": "/proj"}

	first := shell.BuildEnviron(base, []string{"/store/a/lib"}, nil, extra)
	second := shell.BuildEnviron(base, []string{"/store/a/lib"}, nil, extra)
	require.Equal(t, first, second)
}

func environMap(t *testing.T, environ []string) map[string]string {
	t.Helper()
	values := make(map[string]string, len(environ))
	for _, kv := range environ {
		k, v, ok := strings.Cut(kv, "=")
		require.True(t, ok, "malformed environ entry %q", kv)
		values[k] = v
	}
	return values
}
