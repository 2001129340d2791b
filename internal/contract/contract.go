// Package contract provides interfaces and shared utilities for the irmetrics internal architecture.
package contract

import (
	"time"

	"github.com/huangsam/irmetrics/schema"
)

// RunManager defines the interface for reaching the run store.
// This allows the store layer to be mocked for testing.
type RunManager interface {
	GetRunStore() RunStore
}

// RunStore defines the interface for tracking compute runs and storing scores.
type RunStore interface {
	// BeginRun creates a new run and returns its unique ID
	BeginRun(startTime time.Time, runUUID string, relFile string, configParams map[string]any) (int64, error)

	// EndRun updates the run with completion data
	EndRun(runID int64, endTime time.Time, totalLists int) error

	// RecordScores stores every metric score of one ranked list
	RecordScores(runID int64, result schema.ListResult) error

	// GetStatus returns status information about the run store
	GetStatus() (schema.RunStatus, error)

	// GetAllRuns retrieves every recorded run
	GetAllRuns() ([]schema.RunRecord, error)

	// GetAllScores retrieves every recorded score
	GetAllScores() ([]schema.ScoreRecord, error)

	// Close closes the underlying connection
	Close() error
}
