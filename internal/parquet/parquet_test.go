package parquet

import (
	"io"
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/huangsam/irmetrics/schema"
	"github.com/parquet-go/parquet-go"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestStructTags(t *testing.T) {
	tests := []struct {
		name    string
		model   any
		columns []string
	}{
		{
			name:  "runs",
			model: new(Run),
			columns: []string{
				"run_id", "run_uuid", "start_time", "end_time",
				"run_duration_ms", "rel_file", "total_lists", "config_params",
			},
		},
		{
			name:    "scores",
			model:   new(Score),
			columns: []string{"run_id", "source", "metric_name", "score", "syslen", "record_time"},
		},
		{
			name:  "list scores",
			model: new(ListScore),
			columns: []string{
				"source", "prefix", "metric_name", "score",
				"syslen", "jrel", "jnonrel", "r1", "rp",
			},
		},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			s := parquet.SchemaOf(tt.model)
			require.NotNil(t, s)
			for _, colName := range tt.columns {
				_, ok := s.Lookup(colName)
				assert.True(t, ok, "Column %s should exist in schema", colName)
			}
		})
	}
}

func readAll[T any](t *testing.T, path string) []T {
	t.Helper()
	file, err := os.Open(path)
	require.NoError(t, err)
	defer func() { _ = file.Close() }()

	reader := parquet.NewGenericReader[T](file)
	defer func() { _ = reader.Close() }()

	rows := make([]T, reader.NumRows())
	n, err := reader.Read(rows)
	if err != nil && err != io.EOF {
		require.NoError(t, err)
	}
	return rows[:n]
}

func TestWriteRunsParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "runs.parquet")

	start := time.Date(2026, 1, 2, 3, 4, 5, 0, time.UTC)
	end := start.Add(1500 * time.Millisecond)
	duration := int64(1500)
	total := int32(2)
	params := `{"grades":[1,2]}`

	records := []schema.RunRecord{
		{
			RunID: 1, RunUUID: "abc", StartTime: start, EndTime: &end,
			RunDurationMs: &duration, RelFile: "rel.txt", TotalLists: &total, ConfigParams: &params,
		},
		{RunID: 2, RunUUID: "def", StartTime: start, RelFile: "rel.txt"},
	}
	require.NoError(t, WriteRunsParquet(ConvertRunRecords(records), outputPath))

	rows := readAll[Run](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "abc", rows[0].RunUUID)
	require.NotNil(t, rows[0].TotalLists)
	assert.Equal(t, int32(2), *rows[0].TotalLists)
	require.NotNil(t, rows[0].ConfigParams)
	assert.Equal(t, params, *rows[0].ConfigParams)
	assert.Nil(t, rows[1].EndTime)
	assert.Nil(t, rows[1].TotalLists)
}

func TestWriteScoresParquet(t *testing.T) {
	outputPath := filepath.Join(t.TempDir(), "scores.parquet")
	records := []schema.ScoreRecord{
		{RunID: 1, Source: "run1.lab", MetricName: "nDCG@10", Score: 0.5, SysLen: 10, RecordTime: time.Now().UTC()},
		{RunID: 1, Source: "run1.lab", MetricName: "Q-measure", Score: 0.25, SysLen: 10, RecordTime: time.Now().UTC()},
	}
	require.NoError(t, WriteScoresParquet(ConvertScoreRecords(records), outputPath))

	rows := readAll[Score](t, outputPath)
	require.Len(t, rows, 2)
	assert.Equal(t, "nDCG@10", rows[0].MetricName)
	assert.InDelta(t, 0.25, rows[1].Score, 1e-12)
}

func TestConvertComputeResult(t *testing.T) {
	result := &schema.ComputeResult{
		RelFile: "rel.txt",
		Lists: []schema.ListResult{
			{
				Source: "a.lab", Prefix: "a", SysLen: 5, JRel: 2, JNonRel: 1, FirstRel: 1, FirstMax: 3,
				Scores: []schema.MetricScore{{Name: "AP", Score: 0.5}, {Name: "Q-measure", Score: 0.4}},
			},
			{Source: "b.lab", SysLen: 0},
		},
	}

	rows := ConvertComputeResult(result)
	require.Len(t, rows, 2)
	assert.Equal(t, ListScore{
		Source: "a.lab", Prefix: "a", MetricName: "AP", Score: 0.5,
		SysLen: 5, JRel: 2, JNonRel: 1, FirstRel: 1, FirstMax: 3,
	}, rows[0])

	outputPath := filepath.Join(t.TempDir(), "compute.parquet")
	require.NoError(t, WriteListScoresParquet(rows, outputPath))
	assert.Len(t, readAll[ListScore](t, outputPath), 2)
}

func TestWriteParquetInvalidPath(t *testing.T) {
	err := WriteListScoresParquet(nil, filepath.Join(t.TempDir(), "missing", "out.parquet"))
	assert.Error(t, err)
}
