package core

import (
	"fmt"
	"log/slog"
	"strings"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/schema"
)

// Evaluator scores labelled ranked lists against one set of relevance judgments.
// It is built once per invocation and is safe for concurrent use.
type Evaluator struct {
	scale     *algo.Scale
	metrics   []algo.Metric
	recall    *algo.Recall
	numLevels int
	condensed bool
}

// NewEvaluator validates the configuration against the judgments and builds the metric suite.
func NewEvaluator(cfg *contract.Config, qrels algo.Qrels) (*Evaluator, error) {
	numLevels := len(cfg.Grades) + 1
	labeler := algo.NewLabeler(qrels, 0, cfg.Condensed)
	xrelnum, err := labeler.PerLevelCounts(numLevels)
	if err != nil {
		return nil, err
	}

	params := cfg.MetricParams()
	if err := algo.Validate(params, xrelnum); err != nil {
		return nil, err
	}
	scale, err := algo.NewScale(cfg.Grades, xrelnum)
	if err != nil {
		return nil, err
	}

	slog.Debug(cfg.Prefix+" # Grades\t"+levelList(cfg.Grades, 1), "relfile", cfg.RelFile)
	slog.Debug(cfg.Prefix+" # Stops\t"+levelList(cfg.Stops, 1), "relfile", cfg.RelFile)
	slog.Debug(cfg.Prefix+" # X-Rel nums\t"+levelList(xrelnum, 0), "relfile", cfg.RelFile)

	ev := &Evaluator{
		scale:     scale,
		metrics:   algo.Suite(scale, params),
		numLevels: numLevels,
		condensed: cfg.Condensed,
	}
	if cfg.Recall {
		ev.recall = algo.NewRecall(xrelnum)
	}
	return ev, nil
}

// XRelNum returns the judged document count at each level.
func (ev *Evaluator) XRelNum() []int {
	return ev.scale.XRelNum()
}

// Evaluate scores one labelled ranked list. The source names the list in
// results; prefix is printed at the start of every text output line.
func (ev *Evaluator) Evaluate(source, prefix string, list algo.RankedList) (schema.ListResult, error) {
	if err := algo.ValidateList(list, ev.numLevels); err != nil {
		return schema.ListResult{}, fmt.Errorf("%s: %w", source, err)
	}
	if ev.condensed {
		list = list.Condense()
	}

	xrelnum := ev.scale.XRelNum()
	result := schema.ListResult{
		Source:   source,
		Prefix:   prefix,
		SysLen:   len(list),
		JRel:     ev.scale.JRelNum(),
		JNonRel:  xrelnum[0],
		FirstRel: algo.FirstRelRank(list),
		FirstMax: algo.FirstMaxRank(list),
		Scores:   make([]schema.MetricScore, 0, len(ev.metrics)+1),
	}
	for _, m := range ev.metrics {
		result.Scores = append(result.Scores, schema.MetricScore{Name: m.Name(), Score: m.Compute(list)})
	}
	if ev.recall != nil {
		result.Scores = append(result.Scores, schema.MetricScore{Name: ev.recall.Name(), Score: ev.recall.Compute(list)})
	}
	return result, nil
}

// levelList renders values as "L<first>:v, L<first+1>:v, ...".
func levelList[T int | float64](values []T, first int) string {
	parts := make([]string, len(values))
	for i, v := range values {
		parts[i] = fmt.Sprintf("L%d:%v", i+first, v)
	}
	return strings.Join(parts, ", ")
}
