// Package outwriter has output and writer logic.
package outwriter

import (
	"os"
	"time"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"
	"golang.org/x/term"
)

// OutWriter provides a unified interface for all output operations.
// It encapsulates the various output formats and provides a clean API for the core logic.
type OutWriter struct{}

// NewOutWriter creates a new instance of the output writer.
func NewOutWriter() *OutWriter {
	return &OutWriter{}
}

// WriteLabelled prints a labelled ranked list using the configured output format.
func (ow *OutWriter) WriteLabelled(list algo.RankedList, cfg *contract.Config) error {
	return PrintLabelledList(list, cfg)
}

// WriteCompute prints metric scores using the configured output format.
func (ow *OutWriter) WriteCompute(result *schema.ComputeResult, cfg *contract.Config, duration time.Duration) error {
	return PrintComputeResults(result, cfg, duration)
}

// WriteMetrics prints the metric catalog using the configured output format.
func (ow *OutWriter) WriteMetrics(cfg *contract.Config) error {
	return PrintMetricsCatalog(cfg)
}

// useColorBands reports whether the table output should color its score bands.
// Colors only go to an interactive stdout.
func useColorBands(cfg *contract.Config) bool {
	if !cfg.UseColors || cfg.OutputFile != "" {
		return false
	}
	return term.IsTerminal(int(os.Stdout.Fd()))
}

// scoreBand returns the band label of a score, colored when enabled.
func scoreBand(score float64, colored bool) string {
	if colored {
		return contract.GetColorLabel(score)
	}
	return schema.ScoreBand(score)
}
