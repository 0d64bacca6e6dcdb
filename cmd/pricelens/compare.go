package main

import (
	"context"
	"encoding/json"
	"io"
	"os/signal"
	"strings"
	"syscall"

	"github.com/rotisserie/eris"
	"github.com/spf13/cobra"
	"go.uber.org/zap"

	"github.com/pricelens/backend/internal/infrastructure/source"
	"github.com/pricelens/backend/internal/usecase"
)

var compareCmd = &cobra.Command{
	Use:   "compare <query...>",
	Short: "Categorize catalog listings for a query",
	Long: `Runs a query against a JSON catalog of platform listings and prints the
categorized response: exact matches, alternatives, price tiers and unit prices.

The catalog maps platform names to listing arrays:
  {"amazon": [{"title": "Dove Soap 100g", "price": "₹50", "link": "https://..."}]}

Examples:
  compare --catalog listings.json dove soap 100g
  compare --catalog listings.json --pretty "tata salt"`,
	Args: cobra.MinimumNArgs(1),
	RunE: func(cmd *cobra.Command, args []string) error {
		ctx, stop := signal.NotifyContext(cmd.Context(), syscall.SIGINT, syscall.SIGTERM)
		defer stop()

		f := cmd.Flags()
		catalog, _ := f.GetString("catalog")
		pretty, _ := f.GetBool("pretty")

		return runCompare(ctx, cmd.OutOrStdout(), catalog, strings.Join(args, " "), pretty)
	},
}

func init() {
	f := compareCmd.Flags()
	f.String("catalog", "", "path to a JSON catalog of platform listings")
	f.Bool("pretty", false, "indent JSON output")
	_ = compareCmd.MarkFlagRequired("catalog")

	rootCmd.AddCommand(compareCmd)
}

// runCompare loads the catalog, searches it and writes the response as JSON
func runCompare(ctx context.Context, w io.Writer, catalogPath, query string, pretty bool) error {
	adapters, err := source.LoadCatalog(catalogPath)
	if err != nil {
		return err
	}
	zap.L().Debug("catalog loaded",
		zap.String("path", catalogPath),
		zap.Int("platforms", len(adapters)),
	)

	svc := usecase.NewSearchService(nil, adapters, usecase.SearchServiceConfig{})
	response, err := svc.Search(ctx, query)
	if err != nil {
		return eris.Wrapf(err, "compare %q", query)
	}

	enc := json.NewEncoder(w)
	enc.SetEscapeHTML(false)
	if pretty {
		enc.SetIndent("", "  ")
	}
	return enc.Encode(response)
}
