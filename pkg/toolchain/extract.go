// extract.go
package toolchain

import (
	"bufio"
	"compress/bzip2"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/ulikunitz/xz"
	"zombiezen.com/go/nix/nar"
)

// extractNAR extracts a NAR archive
func (i *Installer) extractNAR(narPath, destPath, compression string) error {
	i.logger.Printf("Extracting NAR: %s -> %s (compression: %s)", narPath, destPath, compression)

	// Create destination directory
	if err := os.MkdirAll(destPath, 0755); err != nil {
		return fmt.Errorf("creating destination directory: %w", err)
	}

	// Decompress first if needed
	decompressedPath := narPath
	if compression != CompressionNone {
		var err error
		decompressedPath, err = i.decompressFile(narPath, compression)
		if err != nil {
			return fmt.Errorf("decompressing: %w", err)
		}
		// Clean up decompressed file after extraction
		defer os.Remove(decompressedPath)
	}

	// Now extract the plain NAR
	return i.extractPlainNAR(decompressedPath, destPath)
}

// decompressFile decompresses a file and returns the path to the decompressed file
func (i *Installer) decompressFile(compressedPath, compression string) (string, error) {
	i.logger.Printf("Decompressing %s archive...", compression)

	var decompressedPath string
	switch compression {
	case CompressionXZ:
		decompressedPath = strings.TrimSuffix(compressedPath, ".xz")
		return decompressedPath, i.decompressXZ(compressedPath, decompressedPath)
	case CompressionBZip2:
		decompressedPath = strings.TrimSuffix(compressedPath, ".bz2")
		return decompressedPath, i.decompressBZip2(compressedPath, decompressedPath)
	default:
		return "", fmt.Errorf("unsupported compression: %s", compression)
	}
}

// decompressXZ decompresses an xz file using native Go library
func (i *Installer) decompressXZ(src, dst string) error {
	inputFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer inputFile.Close()

	xzReader, err := xz.NewReader(inputFile)
	if err != nil {
		return fmt.Errorf("creating xz reader: %w", err)
	}

	outFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, xzReader); err != nil {
		return fmt.Errorf("decompressing data: %w", err)
	}

	return nil
}

// decompressBZip2 decompresses a bzip2 file using standard Go library
func (i *Installer) decompressBZip2(src, dst string) error {
	inputFile, err := os.Open(src)
	if err != nil {
		return fmt.Errorf("opening source file: %w", err)
	}
	defer inputFile.Close()

	bzReader := bzip2.NewReader(inputFile)

	outFile, err := os.Create(dst)
	if err != nil {
		return fmt.Errorf("creating output file: %w", err)
	}
	defer outFile.Close()

	if _, err := io.Copy(outFile, bzReader); err != nil {
		return fmt.Errorf("decompressing data: %w", err)
	}

	return nil
}

// extractPlainNAR extracts an uncompressed NAR archive
func (i *Installer) extractPlainNAR(narPath, destPath string) error {
	f, err := os.Open(narPath)
	if err != nil {
		return fmt.Errorf("opening NAR file: %w", err)
	}
	defer f.Close()

	bufReader := bufio.NewReader(f)
	narReader := nar.NewReader(bufReader)

	fileCount := 0

	for {
		hdr, err := narReader.Next()
		if err == io.EOF {
			break
		}
		if err != nil {
			return fmt.Errorf("reading NAR entry: %w", err)
		}

		targetPath := filepath.Join(destPath, hdr.Path)

		switch hdr.Mode.Type() {
		case os.ModeDir:
			if err := os.MkdirAll(targetPath, 0755); err != nil {
				return fmt.Errorf("creating directory %s: %w", targetPath, err)
			}
		case os.ModeSymlink:
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}
			if err := os.Symlink(hdr.LinkTarget, targetPath); err != nil {
				return fmt.Errorf("creating symlink: %w", err)
			}
		case 0: // Regular file
			if err := os.MkdirAll(filepath.Dir(targetPath), 0755); err != nil {
				return fmt.Errorf("creating parent directory: %w", err)
			}

			perm := os.FileMode(0644)
			if hdr.Mode&0111 != 0 {
				perm = 0755
			}

			outFile, err := os.OpenFile(targetPath, os.O_CREATE|os.O_WRONLY|os.O_TRUNC, perm)
			if err != nil {
				return fmt.Errorf("creating file %s: %w", targetPath, err)
			}

			written, err := io.Copy(outFile, narReader)
			outFile.Close()
			if err != nil {
				return fmt.Errorf("writing file: %w", err)
			}
			if written != hdr.Size {
				return fmt.Errorf("size mismatch")
			}
			fileCount++

		default:
			// Ignore other types
		}
	}

	i.logger.Printf("Extraction complete (%d files)", fileCount)
	return nil
}
