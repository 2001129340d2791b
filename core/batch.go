package core

import (
	"context"
	"path/filepath"

	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/reader"
	"github.com/huangsam/irmetrics/schema"
	"golang.org/x/sync/errgroup"
)

// stdinSource names a list read from standard input.
const stdinSource = "stdin"

// EvaluateFiles scores each labelled ranked list file concurrently, bounded by
// cfg.Workers, and returns the results in the order of paths. No paths means stdin.
// The first failure cancels the remaining work.
func EvaluateFiles(ctx context.Context, cfg *contract.Config, ev *Evaluator, paths []string) ([]schema.ListResult, error) {
	if len(paths) == 0 {
		paths = []string{""}
	}
	results := make([]schema.ListResult, len(paths))

	g, gctx := errgroup.WithContext(ctx)
	g.SetLimit(max(cfg.Workers, 1))
	for i, path := range paths {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			list, err := loadLabelled(path, cfg.Separator)
			if err != nil {
				return err
			}
			result, err := ev.Evaluate(sourceName(path), listPrefix(cfg, path, len(paths)), list)
			if err != nil {
				return err
			}
			results[i] = result
			recordScores(gctx, result)
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}
	return results, nil
}

// recordScores stores a list's scores under the run in ctx, if there is one.
func recordScores(ctx context.Context, result schema.ListResult) {
	store := getRunStore(ctx)
	runID, ok := getRunID(ctx)
	if store == nil || !ok {
		return
	}
	if err := store.RecordScores(runID, result); err != nil {
		contract.LogWarn("Failed to record scores for "+result.Source, err)
	}
}

func loadLabelled(path, sep string) (algo.RankedList, error) {
	in, err := reader.OpenInput(path)
	if err != nil {
		return nil, err
	}
	defer func() { _ = in.Close() }()
	return reader.ReadLabelledRankedList(in, sep)
}

func sourceName(path string) string {
	if path == "" || path == "-" {
		return stdinSource
	}
	return path
}

// listPrefix returns the text output prefix: the configured one, or the
// file's base name when several lists are scored at once.
func listPrefix(cfg *contract.Config, path string, numLists int) string {
	if cfg.Prefix != "" || numLists < 2 {
		return cfg.Prefix
	}
	return filepath.Base(sourceName(path))
}
