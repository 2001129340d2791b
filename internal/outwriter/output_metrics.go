package outwriter

import (
	"fmt"
	"io"

	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"

	"github.com/olekukonko/tablewriter"
)

// PrintMetricsCatalog displays the definitions of every metric the compute command reports.
// This is a static display that needs no relevance file.
func PrintMetricsCatalog(cfg *contract.Config) error {
	renderModel := buildMetricsRenderModel()

	switch cfg.Output {
	case schema.JSONOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeJSONMetrics(w, renderModel)
		}, "Wrote JSON")
	case schema.YAMLOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeYAML(w, renderModel)
		}, "Wrote YAML")
	case schema.CSVOut:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return writeCSVMetrics(w, renderModel)
		}, "Wrote CSV")
	default:
		return writeWithFile(cfg.OutputFile, func(w io.Writer) error {
			return printMetricsText(w, renderModel)
		}, "Wrote text")
	}
}

// printMetricsText renders the catalog as a table under a title.
func printMetricsText(w io.Writer, renderModel *schema.MetricsRenderModel) error {
	if _, err := fmt.Fprintf(w, "📏 %s\n%s\n\n", renderModel.Title, renderModel.Description); err != nil {
		return err
	}

	table := tablewriter.NewWriter(w)
	table.Header([]string{"Metric", "Family", "Gain", "Discount", "Cutoff", "Normalized"})

	var data [][]string
	for _, m := range renderModel.Metrics {
		data = append(data, []string{
			m.Name,
			string(m.Family),
			m.Gain,
			m.Discount,
			yesNo(m.Cutoff),
			yesNo(m.Normal),
		})
	}
	if err := table.Bulk(data); err != nil {
		return err
	}
	return table.Render()
}

// buildMetricsRenderModel constructs the render model from the metric catalog.
func buildMetricsRenderModel() *schema.MetricsRenderModel {
	return &schema.MetricsRenderModel{
		Title:       "IR Effectiveness Metrics",
		Description: "Every score = sum over ranks of gain(r) * discount(r); normalized metrics divide by the ideal list's score",
		Metrics:     schema.MetricCatalog,
	}
}

func yesNo(b bool) string {
	if b {
		return "yes"
	}
	return "no"
}
