// env.go
package shell

import (
	"fmt"
	"os"
	"sort"
	"strings"
)

// MergeSearchPath appends dirs to an existing search path value. Prior
// entries are preserved in order; the result is always a superset of the
// existing value. Empty existing values produce exactly dirs.
func MergeSearchPath(existing string, dirs []string) string {
	sep := string(os.PathListSeparator)

	parts := make([]string, 0, len(dirs)+1)
	if existing != "" {
		parts = append(parts, existing)
	}
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		parts = append(parts, dir)
	}

	return strings.Join(parts, sep)
}

// PrependSearchPath puts dirs ahead of an existing search path value. Used
// for PATH so pinned toolchain binaries shadow system ones.
func PrependSearchPath(existing string, dirs []string) string {
	sep := string(os.PathListSeparator)

	parts := make([]string, 0, len(dirs)+1)
	for _, dir := range dirs {
		if dir == "" {
			continue
		}
		parts = append(parts, dir)
	}
	if existing != "" {
		parts = append(parts, existing)
	}

	return strings.Join(parts, sep)
}

// BuildEnviron derives the shell environment from a base environment and the
// resolved directories. The base is never mutated; callers pass os.Environ()
// for real sessions and a fixture for tests.
func BuildEnviron(base []string, libraryDirs, binDirs []string, extra map[string]string) []string {
	libVar := LibraryPathVar()

	values := make(map[string]string, len(base))
	order := make([]string, 0, len(base))
	for _, kv := range base {
		k, v, ok := strings.Cut(kv, "=")
		if !ok {
			continue
		}
		if _, seen := values[k]; !seen {
			order = append(order, k)
		}
		values[k] = v
	}

	set := func(k, v string) {
		if _, seen := values[k]; !seen {
			order = append(order, k)
		}
		values[k] = v
	}

	if len(libraryDirs) > 0 {
		set(libVar, MergeSearchPath(values[libVar], libraryDirs))
	}
	if len(binDirs) > 0 {
		set("PATH", PrependSearchPath(values["PATH"], binDirs))
	}
	extraKeys := make([]string, 0, len(extra))
	for k := range extra {
		extraKeys = append(extraKeys, k)
	}
	sort.Strings(extraKeys)
	for _, k := range extraKeys {
		set(k, extra[k])
	}

	environ := make([]string, 0, len(order))
	for _, k := range order {
		environ = append(environ, fmt.Sprintf("%s=%s", k, values[k]))
	}
	return environ
}
