// layout.go
package shell

import "runtime"

// LibraryPathVar returns the dynamic-linker search path variable for the
// current OS.
func LibraryPathVar() string {
	switch runtime.GOOS {
	case "darwin":
		return "DYLD_LIBRARY_PATH"
	case "windows":
		// Windows resolves DLLs through PATH
		return "PATH"
	default: // linux, etc.
		return "LD_LIBRARY_PATH"
	}
}

// SharedLibraryExtensions returns the shared library extensions for the
// current OS.
func SharedLibraryExtensions() []string {
	switch runtime.GOOS {
	case "darwin":
		return []string{".dylib"}
	case "windows":
		return []string{".dll"}
	default:
		return []string{".so"}
	}
}
