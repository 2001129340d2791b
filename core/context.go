package core

import (
	"context"

	"github.com/huangsam/irmetrics/internal/contract"
)

// Context keys for evaluation options
type contextKey string

const (
	runIDKey    contextKey = "runID"
	runStoreKey contextKey = "runStore"
)

// withRunID sets the run ID that worker goroutines record scores under.
func withRunID(ctx context.Context, runID int64) context.Context {
	return context.WithValue(ctx, runIDKey, runID)
}

// getRunID returns the run ID from context, if any.
func getRunID(ctx context.Context) (int64, bool) {
	runID, ok := ctx.Value(runIDKey).(int64)
	return runID, ok && runID > 0
}

// withRunStore attaches the run store to the context.
func withRunStore(ctx context.Context, store contract.RunStore) context.Context {
	return context.WithValue(ctx, runStoreKey, store)
}

// getRunStore returns the run store from context, or nil.
func getRunStore(ctx context.Context) contract.RunStore {
	store, _ := ctx.Value(runStoreKey).(contract.RunStore)
	return store
}
