package iocache

import (
	"bytes"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/irmetrics/schema"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func sampleResult(source string) schema.ListResult {
	return schema.ListResult{
		Source: source,
		SysLen: 3,
		Scores: []schema.MetricScore{
			{Name: schema.RRName, Score: 1},
			{Name: "P@0002", Score: 0.5},
		},
	}
}

func TestRunStore_NoneBackend(t *testing.T) {
	store, err := NewRunStore(schema.NoneBackend, "")
	require.NoError(t, err)
	require.NotNil(t, store)

	runID, err := store.BeginRun(time.Now(), "uuid", "qrels.txt", map[string]any{"test": "value"})
	assert.NoError(t, err)
	assert.Equal(t, int64(0), runID)

	assert.NoError(t, store.RecordScores(1, sampleResult("a.res")))
	assert.NoError(t, store.EndRun(1, time.Now(), 1))

	status, err := store.GetStatus()
	assert.NoError(t, err)
	assert.False(t, status.Connected)
	assert.Equal(t, "none", status.Backend)

	runs, err := store.GetAllRuns()
	assert.NoError(t, err)
	assert.Empty(t, runs)

	assert.NoError(t, store.Close())
}

func TestRunStore_UnsupportedBackend(t *testing.T) {
	_, err := NewRunStore(schema.DatabaseBackend("oracle"), "")
	assert.Error(t, err)
	assert.Contains(t, err.Error(), "unsupported backend")
}

func TestRunStore_SQLite(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	start := time.Now().Add(-2 * time.Second)
	runID, err := store.BeginRun(start, "3b241101-e2bb-4255-8caf-4136c566a962", "qrels.txt", map[string]any{"logb": 2.0})
	require.NoError(t, err)
	assert.Greater(t, runID, int64(0))

	require.NoError(t, store.RecordScores(runID, sampleResult("a.res")))
	require.NoError(t, store.RecordScores(runID, sampleResult("b.res")))
	require.NoError(t, store.EndRun(runID, time.Now(), 2))

	runs, err := store.GetAllRuns()
	require.NoError(t, err)
	require.Len(t, runs, 1)
	run := runs[0]
	assert.Equal(t, runID, run.RunID)
	assert.Equal(t, "3b241101-e2bb-4255-8caf-4136c566a962", run.RunUUID)
	assert.Equal(t, "qrels.txt", run.RelFile)
	assert.True(t, run.StartTime.Equal(start))
	require.NotNil(t, run.EndTime)
	require.NotNil(t, run.RunDurationMs)
	assert.GreaterOrEqual(t, *run.RunDurationMs, int64(2000))
	require.NotNil(t, run.TotalLists)
	assert.Equal(t, int32(2), *run.TotalLists)
	require.NotNil(t, run.ConfigParams)
	assert.JSONEq(t, `{"logb":2}`, *run.ConfigParams)

	scores, err := store.GetAllScores()
	require.NoError(t, err)
	require.Len(t, scores, 4)
	// Ordered by run, source, then metric name
	assert.Equal(t, "a.res", scores[0].Source)
	assert.Equal(t, "P@0002", scores[0].MetricName)
	assert.Equal(t, 0.5, scores[0].Score)
	assert.Equal(t, int32(3), scores[0].SysLen)
	assert.Equal(t, schema.RRName, scores[1].MetricName)
	assert.Equal(t, "b.res", scores[3].Source)
}

func TestRunStore_DuplicateScoresRollBack(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, ":memory:")
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	runID, err := store.BeginRun(time.Now(), "uuid", "qrels.txt", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(runID, sampleResult("a.res")))

	err = store.RecordScores(runID, sampleResult("a.res"))
	assert.Error(t, err)

	scores, err := store.GetAllScores()
	require.NoError(t, err)
	assert.Len(t, scores, 2)
}

func TestRunStore_Status(t *testing.T) {
	store, err := NewRunStore(schema.SQLiteBackend, filepath.Join(t.TempDir(), "runs.db"))
	require.NoError(t, err)
	defer func() { _ = store.Close() }()

	status, err := store.GetStatus()
	require.NoError(t, err)
	assert.True(t, status.Connected)
	assert.Equal(t, 0, status.TotalRuns)
	assert.Equal(t, int64(0), status.TableSizes[runsTable])

	first, err := store.BeginRun(time.Now().Add(-time.Hour), "one", "qrels.txt", nil)
	require.NoError(t, err)
	require.NoError(t, store.EndRun(first, time.Now(), 3))
	second, err := store.BeginRun(time.Now(), "two", "qrels.txt", nil)
	require.NoError(t, err)
	require.NoError(t, store.RecordScores(second, sampleResult("a.res")))
	require.NoError(t, store.EndRun(second, time.Now(), 1))

	status, err = store.GetStatus()
	require.NoError(t, err)
	assert.Equal(t, "sqlite", status.Backend)
	assert.Equal(t, 2, status.TotalRuns)
	assert.Equal(t, second, status.LastRunID)
	assert.Equal(t, 4, status.TotalLists)
	assert.True(t, status.OldestRunTime.Before(status.LastRunTime))
	assert.Equal(t, int64(2), status.TableSizes[runsTable])
	assert.Equal(t, int64(2), status.TableSizes[scoresTable])

	var buf bytes.Buffer
	PrintRunStatus(&buf, status)
	out := buf.String()
	assert.Contains(t, out, "Run Backend: sqlite")
	assert.Contains(t, out, "Total Runs: 2")
	assert.Contains(t, out, "Total Lists Scored: 4")
	assert.Contains(t, out, "irmetrics_runs: 2 rows")
}

func TestPrintRunStatus_Disconnected(t *testing.T) {
	var buf bytes.Buffer
	PrintRunStatus(&buf, schema.RunStatus{Backend: "none"})
	assert.Equal(t, "Run Backend: none\nConnected: false\n", buf.String())
}

func TestPlaceholders(t *testing.T) {
	tests := []struct {
		backend  schema.DatabaseBackend
		n        int
		expected string
	}{
		{schema.SQLiteBackend, 3, "?, ?, ?"},
		{schema.MySQLBackend, 2, "?, ?"},
		{schema.PostgreSQLBackend, 3, "$1, $2, $3"},
	}
	for _, tt := range tests {
		t.Run(string(tt.backend), func(t *testing.T) {
			assert.Equal(t, tt.expected, placeholders(tt.backend, tt.n))
		})
	}
}

func TestQuoteTableName(t *testing.T) {
	assert.Equal(t, "`irmetrics_runs`", quoteTableName(runsTable, schema.MySQLBackend))
	assert.Equal(t, `"irmetrics_runs"`, quoteTableName(runsTable, schema.PostgreSQLBackend))
	assert.Equal(t, `"irmetrics_runs"`, quoteTableName(runsTable, schema.SQLiteBackend))
}

func TestClearRuns(t *testing.T) {
	dbPath := filepath.Join(t.TempDir(), "runs.db")
	store, err := NewRunStore(schema.SQLiteBackend, dbPath)
	require.NoError(t, err)
	require.NoError(t, store.Close())
	assert.FileExists(t, dbPath)

	require.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	assert.NoFileExists(t, dbPath)

	// Missing file is fine
	assert.NoError(t, ClearRuns(schema.SQLiteBackend, dbPath, ""))
	assert.NoError(t, ClearRuns(schema.NoneBackend, "", ""))
	assert.Error(t, ClearRuns(schema.SQLiteBackend, "", ""))
	assert.Error(t, ClearRuns(schema.DatabaseBackend("oracle"), "", ""))
}
