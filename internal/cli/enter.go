// enter.go
package cli

import (
	"context"
	"fmt"

	"github.com/spf13/cobra"

	"github.com/arc-language/devshell"
	"github.com/arc-language/devshell/pkg/manifest"
)

func runEnter(cmd *cobra.Command, args []string) error {
	ctx := context.Background()

	m, err := manifest.Load(manifestPath)
	if err != nil {
		return err
	}

	composer, err := devshell.NewComposer(m, config)
	if err != nil {
		return err
	}

	fmt.Printf("Entering shell: %d packages\n", len(m.Packages))

	return composer.Enter(ctx)
}
