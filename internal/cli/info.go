// info.go
package cli

import (
	"context"
	"fmt"
	"io"
	"log"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/devshell/pkg/resolver"
)

var infoCmd = &cobra.Command{
	Use:   "info [package]",
	Short: "Show how a package resolves against the local database",
	Args:  cobra.ExactArgs(1),
	RunE:  runInfo,
}

func runInfo(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	logger := log.New(io.Discard, "", 0)
	if config.Debug {
		logger = log.New(os.Stderr, "[devshell] ", log.LstdFlags)
	}

	r := resolver.NewStoreResolver(config.DatabasePath, logger)

	pkg, err := r.Resolve(ctx, args[0])
	if err != nil {
		return err
	}

	fmt.Printf("Name:       %s\n", pkg.Name)
	if pkg.Version != "" {
		fmt.Printf("Version:    %s\n", pkg.Version)
	}
	fmt.Printf("Store path: %s\n", pkg.StorePath)
	for _, dir := range pkg.LibraryDirs {
		fmt.Printf("Lib dir:    %s\n", dir)
	}

	return nil
}
