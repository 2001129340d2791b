// Package parquet provides data structures and functions for exporting irmetrics
// runs and scores to Parquet files using github.com/parquet-go/parquet-go.
package parquet

import (
	"fmt"
	"os"
	"time"

	"github.com/huangsam/irmetrics/schema"
	"github.com/parquet-go/parquet-go"
)

// Run represents a single compute run with metadata.
// This struct maps to the irmetrics_runs database table.
type Run struct {
	// RunID is the unique identifier for this run
	RunID int64 `parquet:"run_id,snappy"`

	// RunUUID is the globally unique identifier for this run
	RunUUID string `parquet:"run_uuid,snappy"`

	// StartTime is when the run began
	StartTime time.Time `parquet:"start_time,snappy"`

	// EndTime is when the run completed (nullable)
	EndTime *time.Time `parquet:"end_time,optional,snappy"`

	// RunDurationMs is the duration of the run in milliseconds (nullable)
	RunDurationMs *int64 `parquet:"run_duration_ms,optional,snappy"`

	// RelFile is the relevance assessment file the run was scored against
	RelFile string `parquet:"rel_file,snappy"`

	// TotalLists is the number of ranked lists scored in this run (nullable)
	TotalLists *int32 `parquet:"total_lists,optional,snappy"`

	// ConfigParams contains the JSON-encoded metric configuration (nullable)
	ConfigParams *string `parquet:"config_params,optional,snappy"`
}

// Score represents one metric score of one ranked list in a run.
// This struct maps to the irmetrics_scores database table.
type Score struct {
	RunID      int64     `parquet:"run_id,snappy"`
	Source     string    `parquet:"source,snappy"`
	MetricName string    `parquet:"metric_name,snappy"`
	Score      float64   `parquet:"score,snappy"`
	SysLen     int32     `parquet:"syslen,snappy"`
	RecordTime time.Time `parquet:"record_time,snappy"`
}

// ListScore is one row of the compute command's parquet output.
type ListScore struct {
	Source     string  `parquet:"source,snappy"`
	Prefix     string  `parquet:"prefix,snappy"`
	MetricName string  `parquet:"metric_name,snappy"`
	Score      float64 `parquet:"score,snappy"`
	SysLen     int32   `parquet:"syslen,snappy"`
	JRel       int32   `parquet:"jrel,snappy"`
	JNonRel    int32   `parquet:"jnonrel,snappy"`
	FirstRel   int32   `parquet:"r1,snappy"`
	FirstMax   int32   `parquet:"rp,snappy"`
}

// writeRows writes rows to a new Parquet file at outputPath, with the schema
// derived from the struct tags of T.
func writeRows[T any](data []T, outputPath string) error {
	file, err := os.Create(outputPath)
	if err != nil {
		return fmt.Errorf("failed to create output file: %w", err)
	}
	defer func() { _ = file.Close() }()

	writer := parquet.NewGenericWriter[T](file)
	if _, err := writer.Write(data); err != nil {
		_ = writer.Close()
		return fmt.Errorf("failed to write data to parquet file: %w", err)
	}
	if err := writer.Close(); err != nil {
		return fmt.Errorf("failed to finalize parquet file: %w", err)
	}
	return nil
}

// WriteRunsParquet writes a slice of Run structs to a Parquet file.
func WriteRunsParquet(data []Run, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteScoresParquet writes a slice of Score structs to a Parquet file.
func WriteScoresParquet(data []Score, outputPath string) error {
	return writeRows(data, outputPath)
}

// WriteListScoresParquet writes a slice of ListScore structs to a Parquet file.
func WriteListScoresParquet(data []ListScore, outputPath string) error {
	return writeRows(data, outputPath)
}

// ConvertRunRecords converts schema.RunRecord to Run for Parquet export.
func ConvertRunRecords(records []schema.RunRecord) []Run {
	result := make([]Run, len(records))
	for i, record := range records {
		result[i] = Run{
			RunID:         record.RunID,
			RunUUID:       record.RunUUID,
			StartTime:     record.StartTime,
			EndTime:       record.EndTime,
			RunDurationMs: record.RunDurationMs,
			RelFile:       record.RelFile,
			TotalLists:    record.TotalLists,
			ConfigParams:  record.ConfigParams,
		}
	}
	return result
}

// ConvertScoreRecords converts schema.ScoreRecord to Score for Parquet export.
func ConvertScoreRecords(records []schema.ScoreRecord) []Score {
	result := make([]Score, len(records))
	for i, record := range records {
		result[i] = Score(record)
	}
	return result
}

// ConvertComputeResult flattens a compute result into one row per list and metric.
func ConvertComputeResult(result *schema.ComputeResult) []ListScore {
	var rows []ListScore
	for _, list := range result.Lists {
		for _, s := range list.Scores {
			rows = append(rows, ListScore{
				Source:     list.Source,
				Prefix:     list.Prefix,
				MetricName: s.Name,
				Score:      s.Score,
				SysLen:     int32(list.SysLen),
				JRel:       int32(list.JRel),
				JNonRel:    int32(list.JNonRel),
				FirstRel:   int32(list.FirstRel),
				FirstMax:   int32(list.FirstMax),
			})
		}
	}
	return rows
}
