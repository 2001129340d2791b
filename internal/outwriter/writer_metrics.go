package outwriter

import (
	"encoding/csv"
	"fmt"
	"io"
	"strconv"

	"github.com/huangsam/irmetrics/schema"
)

// writeJSONMetrics writes the metric catalog in JSON format.
func writeJSONMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	return writeJSON(w, renderModel)
}

// writeCSVMetrics writes the metric catalog in CSV format.
func writeCSVMetrics(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	header := []string{"metric", "family", "gain", "discount", "cutoff", "normalized"}
	return writeCSVWithHeader(w, header, func(cw *csv.Writer) error {
		for _, m := range renderModel.Metrics {
			record := []string{
				m.Name,
				string(m.Family),
				m.Gain,
				m.Discount,
				strconv.FormatBool(m.Cutoff),
				strconv.FormatBool(m.Normal),
			}
			if err := cw.Write(record); err != nil {
				return fmt.Errorf("failed to write CSV record: %w", err)
			}
		}
		return nil
	})
}
