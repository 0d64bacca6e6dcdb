package main

import (
	"fmt"
	"os"

	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pricelens/backend/config"
)

var cfg *config.Config

var rootCmd = &cobra.Command{
	Use:   "pricelens",
	Short: "Compare product listings across Indian shopping platforms",
	Long:  "Normalizes listings from Amazon, Flipkart and quick-commerce apps, extracts weights and pack sizes, and ranks them by unit price.",
	PersistentPreRunE: func(cmd *cobra.Command, args []string) error {
		c, err := config.Load()
		if err != nil {
			return fmt.Errorf("load config: %w", err)
		}
		cfg = c

		if err := config.InitLogger(cfg.Log); err != nil {
			return fmt.Errorf("init logger: %w", err)
		}

		return nil
	},
	PersistentPostRun: func(cmd *cobra.Command, args []string) {
		_ = zap.L().Sync()
	},
	SilenceUsage: true,
}

func main() {
	if err := rootCmd.Execute(); err != nil {
		os.Exit(1)
	}
}
