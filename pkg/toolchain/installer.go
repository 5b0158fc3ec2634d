// installer.go
package toolchain

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"
	"path/filepath"
	"time"
)

// Installer fetches, verifies and unpacks pinned toolchains. Every Ensure
// call re-verifies the archive against the pin, cached or not: a toolchain
// never reaches the shell without a matching hash.
type Installer struct {
	client *Client
	config *Config
	logger *log.Logger
}

// NewInstaller creates a toolchain installer
func NewInstaller(cfg *Config) *Installer {
	if cfg == nil {
		cfg = &Config{}
	}

	// Set defaults
	if cfg.CacheURL == "" {
		cfg.CacheURL = DefaultCacheURL
	}
	if cfg.Timeout == 0 {
		cfg.Timeout = 30 * time.Second
	}

	// Setup logger
	logger := cfg.Logger
	if logger == nil {
		if cfg.Debug {
			logger = log.New(os.Stdout, "[DEBUG] ", log.LstdFlags)
		} else {
			logger = log.New(io.Discard, "", 0)
		}
	}

	return &Installer{
		client: NewClient(cfg.Timeout, cfg.UserAgent),
		config: cfg,
		logger: logger,
	}
}

// Ensure makes the toolchain described by the descriptor file available in
// the local store, verified against the pinned content hash. Returns the
// installed toolchain or an error; no partial install is ever returned.
func (i *Installer) Ensure(ctx context.Context, descriptorPath, pinnedSHA256 string) (*Toolchain, error) {
	desc, err := LoadDescriptor(descriptorPath)
	if err != nil {
		return nil, err
	}

	folder := desc.Folder()
	installDir := filepath.Join(i.config.StorePath, folder)

	archivePath, compression, err := i.ensureArchive(ctx, desc, folder)
	if err != nil {
		return nil, err
	}

	// The pin guards the archive content byte-for-byte. Cached archives are
	// re-verified on every invocation so drift cannot hide behind the cache.
	if err := VerifyFileHash(archivePath, pinnedSHA256); err != nil {
		return nil, err
	}

	if !i.installed(installDir) {
		if err := i.installNAR(archivePath, installDir, compression); err != nil {
			return nil, fmt.Errorf("extracting toolchain: %w", err)
		}
	}

	i.logger.Printf("toolchain %s ready at %s", folder, installDir)

	return &Toolchain{
		Name:      desc.Toolchain.Name,
		Channel:   desc.Toolchain.Channel,
		StorePath: installDir,
	}, nil
}

// ensureArchive returns the local archive for the toolchain, downloading it
// from the binary cache when absent. Returns the archive path and its
// compression scheme.
func (i *Installer) ensureArchive(ctx context.Context, desc *Descriptor, folder string) (string, string, error) {
	if path, compression, ok := i.cachedArchive(folder); ok {
		i.logger.Printf("using cached archive: %s", path)
		return path, compression, nil
	}

	narInfo, err := i.getNARInfo(ctx, desc.Toolchain.StoreHash)
	if err != nil {
		return "", "", fmt.Errorf("getting narinfo for %s: %w", folder, err)
	}

	archivePath := filepath.Join(i.config.CachePath, archiveName(folder, narInfo.Compression))
	if err := i.downloadNAR(ctx, narInfo, archivePath); err != nil {
		return "", "", fmt.Errorf("downloading %s: %w", folder, err)
	}

	// Cross-check against the cache's own metadata when it advertises one.
	if narInfo.FileHash != "" {
		if err := VerifyFileHash(archivePath, narInfo.FileHash); err != nil {
			return "", "", err
		}
	}

	return archivePath, narInfo.Compression, nil
}

// installed reports whether a complete toolchain occupies dir. installNAR
// moves fully extracted trees into place with a single rename, so any
// non-empty dir is complete; empty leftovers get re-extracted.
func (i *Installer) installed(dir string) bool {
	entries, err := os.ReadDir(dir)
	return err == nil && len(entries) > 0
}

// installNAR unpacks the archive into a staging directory and renames it into
// place, so installDir either holds the complete toolchain or does not exist.
func (i *Installer) installNAR(archivePath, installDir, compression string) error {
	parent := filepath.Dir(installDir)
	if err := os.MkdirAll(parent, 0755); err != nil {
		return fmt.Errorf("creating store directory: %w", err)
	}

	tmpDir, err := os.MkdirTemp(parent, filepath.Base(installDir)+".tmp-")
	if err != nil {
		return fmt.Errorf("creating staging directory: %w", err)
	}
	defer os.RemoveAll(tmpDir)

	if err := i.extractNAR(archivePath, tmpDir, compression); err != nil {
		return err
	}

	// Replace an empty directory left behind by an interrupted run.
	if err := os.Remove(installDir); err != nil && !os.IsNotExist(err) {
		return fmt.Errorf("replacing %s: %w", installDir, err)
	}

	if err := os.Rename(tmpDir, installDir); err != nil {
		return fmt.Errorf("installing toolchain: %w", err)
	}
	return nil
}

// cachedArchive looks for an already downloaded archive for the toolchain.
// Compressed archives win over a plain .nar: the pin covers the bytes as
// downloaded, and a stray decompressed file must not shadow them.
func (i *Installer) cachedArchive(folder string) (string, string, bool) {
	base := filepath.Join(i.config.CachePath, folder)
	candidates := []struct {
		suffix      string
		compression string
	}{
		{".nar.xz", CompressionXZ},
		{".nar.bz2", CompressionBZip2},
		{".nar", CompressionNone},
	}

	for _, c := range candidates {
		path := base + c.suffix
		if _, err := os.Stat(path); err == nil {
			return path, c.compression, true
		}
	}
	return "", "", false
}

// getNARInfo retrieves metadata for a store path
func (i *Installer) getNARInfo(ctx context.Context, storeHash string) (*NARInfo, error) {
	url := fmt.Sprintf("%s/%s.narinfo", i.config.CacheURL, storeHash)
	i.logger.Printf("Fetching NAR info from: %s", url)

	content, err := i.client.GetString(ctx, url)
	if err != nil {
		return nil, err
	}

	narInfo, err := parseNARInfo(content)
	if err != nil {
		return nil, err
	}

	if narInfo.Compression == "" {
		narInfo.Compression = CompressionXZ
	}

	return narInfo, nil
}

// downloadNAR downloads the NAR archive
func (i *Installer) downloadNAR(ctx context.Context, narInfo *NARInfo, destPath string) error {
	url := fmt.Sprintf("%s/%s", i.config.CacheURL, narInfo.URL)
	i.logger.Printf("Downloading NAR from: %s", url)

	if err := os.MkdirAll(filepath.Dir(destPath), 0755); err != nil {
		return fmt.Errorf("creating directory: %w", err)
	}

	f, err := os.Create(destPath)
	if err != nil {
		return fmt.Errorf("creating file: %w", err)
	}
	defer f.Close()

	if err := i.client.Download(ctx, url, f); err != nil {
		return fmt.Errorf("downloading: %w", err)
	}

	i.logger.Printf("Downloaded %d bytes to %s", narInfo.FileSize, destPath)
	return nil
}

// archiveName builds the cache file name for a toolchain archive.
func archiveName(folder, compression string) string {
	switch compression {
	case CompressionXZ:
		return folder + ".nar.xz"
	case CompressionBZip2:
		return folder + ".nar.bz2"
	default:
		return folder + ".nar"
	}
}
