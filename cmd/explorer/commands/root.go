// Package commands holds the explorer CLI commands.
package commands

import (
	"fmt"
	"log/slog"
	"os"

	"github.com/spf13/cobra"

	"github.com/gabriel447/ProductExplorer/internal/config"
	"github.com/gabriel447/ProductExplorer/pkg/logger"
)

var (
	cfg *config.Config
	log *slog.Logger
)

// Execute runs the explorer CLI.
func Execute() error {
	root := &cobra.Command{
		Use:           "explorer",
		Short:         "Product catalog explorer with a shopping cart",
		SilenceUsage:  true,
		SilenceErrors: true,
		PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
			var err error
			cfg, err = config.Load()
			if err != nil {
				return fmt.Errorf("load configuration: %w", err)
			}
			log = logger.New("product-explorer", cfg.LogLevel)
			return nil
		},
	}

	root.AddCommand(serveCmd(), fetchCmd())

	if err := root.Execute(); err != nil {
		fmt.Fprintln(os.Stderr, "Error:", err)
		return err
	}
	return nil
}
