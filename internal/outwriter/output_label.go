package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"
)

// PrintLabelledList writes a labelled ranked list, dispatching on the configured output format.
// Text output is one "<id><sep>L<level>" line per document, or just "<id>" when unjudged.
func PrintLabelledList(list algo.RankedList, cfg *contract.Config) error {
	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSON(w, LabelledRows(list))
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, LabelledRows(list))
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLabelledCSV(w, list)
		}, "Wrote CSV")
	case schema.TextOut, "":
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeLabelledText(w, list, cfg.Separator)
		}, "Wrote labelled list")
	default:
		return fmt.Errorf("output mode %q is not supported by the label command", cfg.Output)
	}
}

// LabelledRows converts a ranked list into serializable rows.
func LabelledRows(list algo.RankedList) []schema.LabelledRow {
	rows := make([]schema.LabelledRow, len(list))
	for i, d := range list {
		rows[i] = schema.LabelledRow{ID: d.ID}
		if d.Grade.Judged {
			level := d.Grade.Level
			rows[i].Level = &level
		}
	}
	return rows
}

func writeLabelledText(w io.Writer, list algo.RankedList, sep string) error {
	if sep == "" {
		sep = contract.DefaultSeparator
	}
	for _, d := range list {
		line := d.ID
		if d.Grade.Judged {
			line += sep + d.Grade.String()
		}
		if _, err := fmt.Fprintln(w, line); err != nil {
			return err
		}
	}
	return nil
}

func writeLabelledCSV(w io.Writer, list algo.RankedList) error {
	header := []string{"rank", "id", "level"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for i, d := range list {
			level := ""
			if d.Grade.Judged {
				level = strconv.Itoa(d.Grade.Level)
			}
			if err := cw.Write([]string{strconv.Itoa(i + 1), d.ID, level}); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
