package cmd

import (
	"github.com/huangsam/irmetrics/core"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// labelCmd attaches relevance levels to a ranked list.
var labelCmd = &cobra.Command{
	Use:   "label [ranked-list]",
	Short: "Attach relevance levels to a ranked list of document IDs.",
	Long: `Read a ranked list (one document ID per line, best first) and print each
ID with its relevance level from the relevance assessment file.

Judged documents are printed as "<id> L<level>", unjudged ones as "<id>".
The ranked list is read from standard input when no file is given.

Examples:
  # Label a run against NTCIR-style judgments
  irmetrics label -r topic1.rel topic1.res > topic1.lab

  # Keep only judged documents and the top 100 rows
  irmetrics label -r topic1.rel -j --truncate 100 topic1.res

  # Read judgments for one topic of a TREC qrels file
  irmetrics label -r qrels.txt --rel-format trec --topic 401 < run401.res`,
	Args:    cobra.MaximumNArgs(1),
	PreRunE: setupWith(contract.ProcessLabelInputs),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteLabel(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot label ranked list", err)
		}
	},
}
