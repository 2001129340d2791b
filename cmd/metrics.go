package cmd

import (
	"github.com/huangsam/irmetrics/core"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// metricsCmd displays the catalog of computed metrics.
var metricsCmd = &cobra.Command{
	Use:   "metrics",
	Short: "Display the gain and discount model of every metric",
	Long: `Show every metric the compute command reports, grouped by family, with
its gain, its discount, whether it takes a document cutoff and whether it
is normalized by the ideal list.

No relevance file is read - this is purely informational.

Examples:
  # Show the catalog as a table
  irmetrics metrics

  # Export the catalog
  irmetrics metrics --output json`,
	PreRunE: setupWith(nil),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteMetrics(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot display metrics", err)
		}
	},
}
