package schema

import "time"

// RunStatus represents the status of the run store.
type RunStatus struct {
	Backend       string           `json:"backend"`
	Connected     bool             `json:"connected"`
	TotalRuns     int              `json:"total_runs"`
	LastRunID     int64            `json:"last_run_id"`
	LastRunTime   time.Time        `json:"last_run_time"`
	OldestRunTime time.Time        `json:"oldest_run_time"`
	TotalLists    int              `json:"total_lists"`
	TableSizes    map[string]int64 `json:"table_sizes"`
}

// RunRecord represents a row from the irmetrics_runs table.
type RunRecord struct {
	RunID         int64
	RunUUID       string
	StartTime     time.Time
	EndTime       *time.Time
	RunDurationMs *int64
	RelFile       string
	TotalLists    *int32
	ConfigParams  *string
}

// ScoreRecord represents a row from the irmetrics_scores table.
type ScoreRecord struct {
	RunID      int64
	Source     string
	MetricName string
	Score      float64
	SysLen     int32
	RecordTime time.Time
}
