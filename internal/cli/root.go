// root.go
package cli

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"

	"github.com/arc-language/devshell/pkg/core"
)

var (
	cfgFile      string
	manifestPath string
	debug        bool
	config       *core.Config
)

// rootCmd represents the base command. Running devshell with no subcommand
// enters the shell described by the manifest.
var rootCmd = &cobra.Command{
	Use:   "devshell",
	Short: "Reproducible development shells",
	Long: `devshell - Reproducible development shells

Resolves a declarative manifest of native package dependencies plus a
hash-pinned toolchain into an isolated interactive shell with the correct
dynamic-library search paths.`,
	Version: "0.1.0",
	RunE:    runEnter,
}

// Execute executes the root command
func Execute() error {
	return rootCmd.Execute()
}

func init() {
	cobra.OnInitialize(initConfig)

	// Global flags
	rootCmd.PersistentFlags().StringVar(&cfgFile, "config", "", "config file (default is $HOME/.config/devshell/config.yaml)")
	rootCmd.PersistentFlags().StringVarP(&manifestPath, "manifest", "m", "", "manifest file (default is ./devshell.yaml)")
	rootCmd.PersistentFlags().BoolVar(&debug, "debug", false, "enable debug logging")

	// Add commands
	rootCmd.AddCommand(resolveCmd)
	rootCmd.AddCommand(infoCmd)
	rootCmd.AddCommand(versionCmd)
}

func initConfig() {
	var err error
	config, err = core.LoadConfig(cfgFile)
	if err != nil {
		fmt.Fprintf(os.Stderr, "Error loading config: %v\n", err)
		config = core.DefaultConfig()
	}

	// Override config with flags
	if debug {
		config.Debug = true
	}
}
