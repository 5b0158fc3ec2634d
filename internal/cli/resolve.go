// resolve.go
package cli

import (
	"context"
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/devshell"
	"github.com/arc-language/devshell/pkg/manifest"
	"github.com/arc-language/devshell/pkg/shell"
)

var resolveEnviron bool

var resolveCmd = &cobra.Command{
	Use:   "resolve",
	Short: "Resolve the manifest and print the environment without spawning a shell",
	Long: `Resolve every manifest package and the toolchain pin, then print the
derived environment. Nothing is spawned; useful for inspecting what a shell
session would see.

Examples:
  devshell resolve
  devshell resolve --manifest ./devshell.yaml
  devshell resolve --env`,
	Args: cobra.NoArgs,
	RunE: runResolve,
}

func init() {
	resolveCmd.Flags().BoolVar(&resolveEnviron, "env", false, "print the full derived environment, one KEY=VALUE per line")
}

func runResolve(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	composer, err := devshell.NewComposer(m, config)
	if err != nil {
		return err
	}

	env, err := composer.Compose(ctx)
	if err != nil {
		return err
	}

	if resolveEnviron {
		for _, kv := range env.Environ(os.Environ()) {
			fmt.Println(kv)
		}
		return nil
	}

	if env.Toolchain != nil {
		fmt.Printf("toolchain: %s-%s (%s)\n", env.Toolchain.Name, env.Toolchain.Channel, env.Toolchain.StorePath)
	}
	for _, pkg := range env.Packages {
		fmt.Printf("%s -> %s\n", pkg.Name, pkg.StorePath)
	}
	if len(env.LibraryDirs) > 0 {
		fmt.Printf("%s:\n", shell.LibraryPathVar())
		for _, dir := range env.LibraryDirs {
			fmt.Printf("  %s\n", dir)
		}
	}

	return nil
}
