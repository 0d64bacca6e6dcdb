package main

import (
	"fmt"
	"io"

	"github.com/spf13/cobra"

	"github.com/pricelens/backend/internal/domain"
)

var platformsCmd = &cobra.Command{
	Use:   "platforms",
	Short: "List supported platforms and whether the server config enables them",
	RunE: func(cmd *cobra.Command, args []string) error {
		enabled := make(map[string]bool)
		if cfg != nil {
			for _, p := range cfg.EnabledPlatforms() {
				enabled[p.Name] = true
			}
		}
		formatPlatforms(cmd.OutOrStdout(), domain.KnownPlatforms, enabled)
		return nil
	},
}

func init() {
	rootCmd.AddCommand(platformsCmd)
}

// formatPlatforms writes one line per platform
func formatPlatforms(w io.Writer, platforms []domain.Platform, enabled map[string]bool) {
	fmt.Fprintf(w, "%-12s %s\n", "PLATFORM", "ENABLED")
	for _, p := range platforms {
		state := "no"
		if enabled[string(p)] {
			state = "yes"
		}
		fmt.Fprintf(w, "%-12s %s\n", p, state)
	}
}
