package cmd

import (
	"github.com/huangsam/irmetrics/core"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/spf13/cobra"
)

// computeCmd scores labelled ranked lists.
var computeCmd = &cobra.Command{
	Use:   "compute [labelled-list...]",
	Short: "Score labelled ranked lists with IR effectiveness metrics.",
	Long: `Compute RR, O-measure, P-measure, P-plus, AP, Q-measure, the NCU family,
RBP, ERR and, at every cutoff, AP, Q, nDCG, MSnDCG, P, nERR and Hit.

Each labelled list holds "<id> L<level>" lines (or "<id>" for unjudged
documents), as produced by the label command. Several lists are scored
concurrently and printed in argument order. Standard input is read when
no file is given.

Examples:
  # Score one list with gains 1, 2 and 3 for levels L1 to L3
  irmetrics compute -r topic1.rel -g 1:2:3 topic1.lab

  # Condensed list, cutoffs at 10 and 1000, prefixed output
  irmetrics compute -r topic1.rel -g 1:2:3 -j --cutoffs 10,1000 --out topic1 topic1.lab

  # Score many runs and record them in a SQLite run store
  irmetrics compute -r topic1.rel -g 1:2:3 --run-backend sqlite runs/*.lab

  # Table with colored score bands
  irmetrics compute -r topic1.rel -g 1:2:3 --output table topic1.lab`,
	PreRunE: setupWith(contract.ProcessComputeInputs),
	Run: func(_ *cobra.Command, _ []string) {
		if err := core.ExecuteCompute(rootCtx, cfg, runManager); err != nil {
			contract.LogFatal("Cannot compute metrics", err)
		}
	},
}
