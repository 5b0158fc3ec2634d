// hash.go
package toolchain

import (
	"crypto/sha256"
	"fmt"
	"io"
	"os"

	"zombiezen.com/go/nix/nixbase32"

	"github.com/arc-language/devshell/pkg/core"
)

// FileHash computes the SHA256 hash of a file, encoded in nix base32.
func FileHash(path string) (string, error) {
	f, err := os.Open(path)
	if err != nil {
		return "", fmt.Errorf("opening file: %w", err)
	}
	defer f.Close()

	hasher := sha256.New()
	if _, err := io.Copy(hasher, f); err != nil {
		return "", fmt.Errorf("computing hash: %w", err)
	}

	return nixbase32.EncodeToString(hasher.Sum(nil)), nil
}

// VerifyFileHash checks a file's content hash against an expected value.
// Equality is exact: any disagreement is ErrHashMismatch, never retried.
func VerifyFileHash(path, expected string) error {
	actual, err := FileHash(path)
	if err != nil {
		return err
	}

	if actual != expected {
		return &core.Error{
			Op:  "verify",
			Err: fmt.Errorf("%w: expected %s, got %s", core.ErrHashMismatch, expected, actual),
		}
	}

	return nil
}
