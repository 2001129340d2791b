package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"time"

	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/parquet"
	"github.com/huangsam/irmetrics/schema"

	"github.com/olekukonko/tablewriter"
	"github.com/olekukonko/tablewriter/tw"
)

// metricLabelWidth is the column where the score starts on a text metric line.
const metricLabelWidth = 21

// PrintComputeResults outputs metric scores, dispatching based on the output format configured.
func PrintComputeResults(result *schema.ComputeResult, cfg *contract.Config, duration time.Duration) error {
	fmtFloat, intFmt := createFormatters(cfg.Precision)

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, result)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, result)
		}, "Wrote YAML")
	case schema.CSVOut:
		if err := writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComputeCSV(w, result, fmtFloat, intFmt)
		}, "Wrote CSV"); err != nil {
			return fmt.Errorf("error writing CSV output: %w", err)
		}
		return nil
	case schema.ParquetOut:
		rows := parquet.ConvertComputeResult(result)
		if err := parquet.WriteListScoresParquet(rows, cfg.OutputFile); err != nil {
			return fmt.Errorf("error writing Parquet output: %w", err)
		}
		fmt.Fprintf(os.Stderr, "💾 Wrote %d scores as Parquet to %s\n", len(rows), cfg.OutputFile)
		return nil
	case schema.TableOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComputeTable(w, result, cfg, fmtFloat, duration)
		}, "Wrote table")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeComputeText(w, result)
		}, "Wrote scores")
	}
}

// writeComputeText writes each list in the classic evaluation layout:
// two summary comment lines and then one "<prefix> <name>=<score>" line per metric.
func writeComputeText(w io.Writer, result *schema.ComputeResult) error {
	for _, list := range result.Lists {
		if _, err := fmt.Fprintf(w, "%s # syslen=%d jrel=%d jnonrel=%d\n", list.Prefix, list.SysLen, list.JRel, list.JNonRel); err != nil {
			return err
		}
		if _, err := fmt.Fprintf(w, "%s # r1=%d rp=%d\n", list.Prefix, list.FirstRel, list.FirstMax); err != nil {
			return err
		}
		for _, s := range list.Scores {
			label := list.Prefix + " " + s.Name + "="
			if _, err := fmt.Fprintf(w, "%-*s%0.4f\n", metricLabelWidth, label, s.Score); err != nil {
				return err
			}
		}
	}
	return nil
}

// writeComputeTable renders one row per list and metric with a score band.
func writeComputeTable(w io.Writer, result *schema.ComputeResult, cfg *contract.Config, fmtFloat func(float64) string, duration time.Duration) error {
	colored := useColorBands(cfg)
	table := tablewriter.NewWriter(w)
	table.Header([]string{"Source", "Metric", "Score", "Band"})
	table.Configure(func(cfg *tablewriter.Config) {
		cfg.Row.Alignment.Global = tw.AlignRight
	})

	var data [][]string
	for _, list := range result.Lists {
		source := list.Prefix
		if source == "" {
			source = list.Source
		}
		for _, s := range list.Scores {
			data = append(data, []string{source, s.Name, fmtFloat(s.Score), scoreBand(s.Score, colored)})
		}
	}

	if err := table.Bulk(data); err != nil {
		return err
	}
	if err := table.Render(); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Relevance file %s with gains %v (xrelnum %v)\n", result.RelFile, result.Grades, result.XRelNum); err != nil {
		return err
	}
	if _, err := fmt.Fprintf(w, "Scored %d lists in %v with %d workers. Run backend: %s\n", len(result.Lists), duration, cfg.Workers, cfg.RunBackend); err != nil {
		return err
	}
	return nil
}

// writeComputeCSV writes one record per list and metric.
func writeComputeCSV(w io.Writer, result *schema.ComputeResult, fmtFloat func(float64) string, intFmt string) error {
	header := []string{"source", "prefix", "metric", "score", "syslen", "jrel", "jnonrel", "r1", "rp"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, list := range result.Lists {
			for _, s := range list.Scores {
				rec := []string{
					list.Source,
					list.Prefix,
					s.Name,
					fmtFloat(s.Score),
					fmt.Sprintf(intFmt, list.SysLen),
					fmt.Sprintf(intFmt, list.JRel),
					fmt.Sprintf(intFmt, list.JNonRel),
					fmt.Sprintf(intFmt, list.FirstRel),
					fmt.Sprintf(intFmt, list.FirstMax),
				}
				if err := cw.Write(rec); err != nil {
					return fmt.Errorf("failed to write CSV record: %w", err)
				}
			}
		}
		return nil
	})
}
