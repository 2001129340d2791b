// Package core has core logic for labelling ranked lists and scoring them.
package core

import (
	"context"
	"time"

	"github.com/google/uuid"
	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/outwriter"
	"github.com/huangsam/irmetrics/internal/reader"
	"github.com/huangsam/irmetrics/schema"
)

// ExecutorFunc defines the function signature for executing the different commands.
type ExecutorFunc func(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error

// ExecuteLabel attaches relevance levels to a ranked list and prints it.
// It serves as the main entry point for the 'label' command.
func ExecuteLabel(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	qrels, err := reader.LoadQrels(cfg.RelFile, cfg.RelFormat, cfg.Separator, cfg.Topic)
	if err != nil {
		return err
	}
	list, err := labelInput(cfg, qrels, inputPath(cfg))
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteLabelled(list, cfg)
}

// ExecuteCompute scores every labelled ranked list and prints the results.
// It serves as the main entry point for the 'compute' command.
func ExecuteCompute(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) error {
	start := time.Now()
	result, err := computeResult(ctx, cfg, mgr)
	if err != nil {
		return err
	}
	return outwriter.NewOutWriter().WriteCompute(result, cfg, time.Since(start))
}

// ExecuteMetrics displays the metric catalog.
// This is a static display that needs no relevance file.
func ExecuteMetrics(_ context.Context, cfg *contract.Config, _ contract.RunManager) error {
	return outwriter.NewOutWriter().WriteMetrics(cfg)
}

// computeResult loads the judgments, scores every input and records the run when tracking is on.
func computeResult(ctx context.Context, cfg *contract.Config, mgr contract.RunManager) (*schema.ComputeResult, error) {
	qrels, err := reader.LoadQrels(cfg.RelFile, cfg.RelFormat, cfg.Separator, cfg.Topic)
	if err != nil {
		return nil, err
	}
	ev, err := NewEvaluator(cfg, qrels)
	if err != nil {
		return nil, err
	}

	lists, err := withRunTracking(ctx, cfg, mgr, func(ctx context.Context) ([]schema.ListResult, error) {
		return EvaluateFiles(ctx, cfg, ev, cfg.Inputs)
	})
	if err != nil {
		return nil, err
	}

	return &schema.ComputeResult{
		RelFile: cfg.RelFile,
		Grades:  cfg.Grades,
		XRelNum: ev.XRelNum(),
		Lists:   lists,
	}, nil
}

// ComputeList scores one in-memory labelled ranked list against qrels,
// recording it as a run when tracking is on.
func ComputeList(ctx context.Context, cfg *contract.Config, mgr contract.RunManager, qrels algo.Qrels, source string, list algo.RankedList) (*schema.ComputeResult, error) {
	ev, err := NewEvaluator(cfg, qrels)
	if err != nil {
		return nil, err
	}
	lists, err := withRunTracking(ctx, cfg, mgr, func(ctx context.Context) ([]schema.ListResult, error) {
		result, err := ev.Evaluate(source, cfg.Prefix, list)
		if err != nil {
			return nil, err
		}
		recordScores(ctx, result)
		return []schema.ListResult{result}, nil
	})
	if err != nil {
		return nil, err
	}
	return &schema.ComputeResult{
		RelFile: cfg.RelFile,
		Grades:  cfg.Grades,
		XRelNum: ev.XRelNum(),
		Lists:   lists,
	}, nil
}

// withRunTracking runs score between BeginRun and EndRun when mgr has a store.
// Tracking failures are logged and never fail the computation.
func withRunTracking(ctx context.Context, cfg *contract.Config, mgr contract.RunManager, score func(context.Context) ([]schema.ListResult, error)) ([]schema.ListResult, error) {
	var store contract.RunStore
	if mgr != nil {
		store = mgr.GetRunStore()
	}

	var runID int64
	if store != nil {
		var err error
		runID, err = store.BeginRun(time.Now(), uuid.NewString(), cfg.RelFile, cfg.ConfigParams())
		if err != nil {
			contract.LogWarn("Run tracking initialization failed", err)
		} else if runID > 0 {
			ctx = withRunStore(withRunID(ctx, runID), store)
		}
	}

	lists, err := score(ctx)
	if err != nil {
		return nil, err
	}

	if store != nil && runID > 0 {
		if err := store.EndRun(runID, time.Now(), len(lists)); err != nil {
			contract.LogWarn("Failed to finalize run tracking", err)
		}
	}
	return lists, nil
}

// labelInput reads unlabelled IDs from path and labels them.
func labelInput(cfg *contract.Config, qrels algo.Qrels, path string) (algo.RankedList, error) {
	in, err := reader.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()

	ids, err := reader.ReadRankedList(in, cfg.Separator)
	if err != nil {
		return nil, err
	}
	return algo.NewLabeler(qrels, cfg.Truncate, cfg.Condensed).Label(ids), nil
}

// inputPath returns the single ranked list path, or "" for stdin.
func inputPath(cfg *contract.Config) string {
	if len(cfg.Inputs) == 0 {
		return ""
	}
	return cfg.Inputs[0]
}
