// Package main provides a performance benchmarking tool for the irmetrics CLI.
// It generates synthetic relevance files and labelled ranked lists of several
// sizes, times the compute command with and without run tracking, treating the
// first successful run as cold and averaging the rest as warm, and writes a CSV
// summary for performance analysis and documentation.
//
// Prerequisites:
// - irmetrics binary installed and available in PATH
//
// Usage: go run benchmark/main.go [work-dir]
//
//	work-dir: Directory where synthetic inputs are generated
package main

import (
	"encoding/csv"
	"fmt"
	"math/rand/v2"
	"os"
	"os/exec"
	"path/filepath"
	"strconv"
	"strings"
	"time"
)

// BenchmarkResult holds the result of a benchmark run (untracked average, cold run and average of warm tracked runs).
type BenchmarkResult struct {
	Workload    string
	Lists       int
	ListLength  int
	NoTrackTime string
	ColdTime    string
	WarmTime    string
}

// Workload describes one synthetic evaluation: how many lists of which length.
type Workload struct {
	Name       string
	Lists      int
	ListLength int
	Judged     int
}

// BenchmarkConfig holds configuration for the benchmark run.
type BenchmarkConfig struct {
	WorkDir     string
	Timeout     time.Duration
	Workers     int
	NoTrackRuns int
	TrackRuns   int
	Grades      string
	Workloads   []Workload
}

func main() {
	// Parse command line arguments
	if len(os.Args) != 2 {
		fmt.Printf("Usage: %s [work-dir]\n", os.Args[0])
		os.Exit(1)
	}

	config := BenchmarkConfig{
		WorkDir:     os.Args[1],
		Timeout:     5 * time.Minute,
		Workers:     14,
		NoTrackRuns: 3,
		TrackRuns:   4,
		Grades:      "1:2:3",
		Workloads: []Workload{
			{Name: "small", Lists: 10, ListLength: 100, Judged: 200},
			{Name: "medium", Lists: 100, ListLength: 1000, Judged: 2000},
			{Name: "large", Lists: 500, ListLength: 1000, Judged: 5000},
		},
	}

	if err := checkPrerequisites(config); err != nil {
		fmt.Printf("Prerequisites check failed: %v\n", err)
		os.Exit(1)
	}

	results := runBenchmarks(config)

	if err := saveResults(results); err != nil {
		fmt.Printf("Failed to save results: %v\n", err)
		os.Exit(1)
	}

	printSummary(results)
}

// checkPrerequisites verifies that the irmetrics binary exists and the work dir is usable
func checkPrerequisites(config BenchmarkConfig) error {
	if _, err := exec.LookPath("irmetrics"); err != nil {
		return fmt.Errorf("irmetrics binary not found in PATH")
	}
	return os.MkdirAll(config.WorkDir, 0o755)
}

// runBenchmarks executes all workloads
func runBenchmarks(config BenchmarkConfig) []BenchmarkResult {
	var results []BenchmarkResult

	fmt.Printf("Starting benchmark: %d workloads, %v timeout, %d workers, untracked: %d runs, tracked: %d runs\n",
		len(config.Workloads), config.Timeout, config.Workers, config.NoTrackRuns, config.TrackRuns)

	for _, wl := range config.Workloads {
		dir := filepath.Join(config.WorkDir, wl.Name)
		relFile, lists, err := generateWorkload(dir, wl)
		if err != nil {
			fmt.Printf("Skipping %s: %v\n", wl.Name, err)
			continue
		}
		results = append(results, runBenchmarkSuite(config, wl, dir, relFile, lists))
	}

	return results
}

// generateWorkload writes a relevance file and labelled lists under dir.
// Levels are drawn uniformly from L0 to L3 with a fixed seed so runs are comparable.
func generateWorkload(dir string, wl Workload) (string, []string, error) {
	if err := os.MkdirAll(dir, 0o755); err != nil {
		return "", nil, err
	}
	rng := rand.New(rand.NewPCG(uint64(wl.Lists), uint64(wl.ListLength)))

	levels := make(map[string]int, wl.Judged)
	var rel strings.Builder
	for i := range wl.Judged {
		id := "doc" + strconv.Itoa(i)
		levels[id] = rng.IntN(4)
		fmt.Fprintf(&rel, "%s L%d\n", id, levels[id])
	}
	relFile := filepath.Join(dir, "bench.rel")
	if err := os.WriteFile(relFile, []byte(rel.String()), 0o644); err != nil {
		return "", nil, err
	}

	lists := make([]string, 0, wl.Lists)
	for n := range wl.Lists {
		var lab strings.Builder
		for _, i := range rng.Perm(wl.Judged * 2)[:wl.ListLength] {
			id := "doc" + strconv.Itoa(i)
			if level, ok := levels[id]; ok {
				fmt.Fprintf(&lab, "%s L%d\n", id, level)
			} else {
				fmt.Fprintln(&lab, id)
			}
		}
		path := filepath.Join(dir, fmt.Sprintf("run%04d.lab", n))
		if err := os.WriteFile(path, []byte(lab.String()), 0o644); err != nil {
			return "", nil, err
		}
		lists = append(lists, path)
	}
	return relFile, lists, nil
}

// runBenchmarkSuite runs both untracked and tracked benchmarks for a workload
func runBenchmarkSuite(config BenchmarkConfig, wl Workload, dir, relFile string, lists []string) BenchmarkResult {
	fmt.Printf("Running %s (%d lists x %d docs)\n", wl.Name, wl.Lists, wl.ListLength)

	// Helper to run a benchmark phase
	runPhase := func(runBackend string, numRuns int, phaseName string) (coldTime float64, avgTime string) {
		fmt.Printf("  %s phase (%d runs)\n", phaseName, numRuns)
		cold, times := runBenchmark(config, dir, relFile, lists, runBackend, numRuns)
		if len(times) == 0 {
			avgTime = "TIMEOUT"
		} else {
			var sum float64
			for _, t := range times {
				sum += t
			}
			avg := sum / float64(len(times))
			avgTime = fmt.Sprintf("%.3fs", avg)
		}
		return cold, avgTime
	}

	// Phase 1: Untracked runs
	_, noTrackAvg := runPhase("none", config.NoTrackRuns, "Untracked")

	// Phase 2: Runs recorded in SQLite
	coldTime, warmAvg := runPhase("sqlite", config.TrackRuns, "Tracked")

	coldTimeStr := "TIMEOUT"
	if coldTime > 0 {
		coldTimeStr = fmt.Sprintf("%.3fs", coldTime)
	}

	fmt.Printf("  Untracked average: %s, Cold time: %s, Warm average: %s\n", noTrackAvg, coldTimeStr, warmAvg)

	return BenchmarkResult{
		Workload:    wl.Name,
		Lists:       wl.Lists,
		ListLength:  wl.ListLength,
		NoTrackTime: noTrackAvg,
		ColdTime:    coldTimeStr,
		WarmTime:    warmAvg,
	}
}

// runBenchmark executes irmetrics compute multiple times with the given run backend and returns cold time and warm times
func runBenchmark(config BenchmarkConfig, dir, relFile string, lists []string, runBackend string, numRuns int) (coldTime float64, warmTimes []float64) {
	args := []string{
		"compute", "-r", relFile, "-g", config.Grades,
		"--run-backend", runBackend,
		"--workers", strconv.Itoa(config.Workers),
		"--output-file", filepath.Join(dir, "scores.txt"),
	}
	args = append(args, lists...)

	var times []float64
	for range numRuns {
		start := time.Now()

		cmd := exec.Command("irmetrics", args...)
		cmd.Dir = dir

		done := make(chan bool)
		var cmdErr error

		go func() {
			_, cmdErr = cmd.CombinedOutput()
			done <- true
		}()

		select {
		case <-done:
			if cmdErr == nil {
				times = append(times, time.Since(start).Seconds())
			}
		case <-time.After(config.Timeout):
			// Timeout - don't add to times
			_ = cmd.Process.Kill()
		}
	}

	if len(times) > 0 {
		coldTime = times[0]
		warmTimes = times[1:]
	}
	return
}

// saveResults writes benchmark results to a timestamped CSV file
func saveResults(results []BenchmarkResult) error {
	timestamp := time.Now().Format("20060102_150405")
	filename := fmt.Sprintf("/tmp/irmetrics_benchmark_%s.csv", timestamp)

	file, err := os.Create(filename)
	if err != nil {
		return err
	}
	defer func() {
		if closeErr := file.Close(); closeErr != nil {
			fmt.Printf("Warning: failed to close file %s: %v\n", filename, closeErr)
		}
	}()

	writer := csv.NewWriter(file)
	defer writer.Flush()

	// Write header
	if err := writer.Write([]string{"workload", "lists", "list_length", "untracked_avg", "cold_time", "warm_avg"}); err != nil {
		return fmt.Errorf("failed to write CSV header: %w", err)
	}

	// Write results
	for _, result := range results {
		rec := []string{
			result.Workload,
			strconv.Itoa(result.Lists),
			strconv.Itoa(result.ListLength),
			result.NoTrackTime,
			result.ColdTime,
			result.WarmTime,
		}
		if err := writer.Write(rec); err != nil {
			return fmt.Errorf("failed to write CSV record: %w", err)
		}
	}

	fmt.Printf("Results saved to %s\n", filename)
	return nil
}

// printSummary displays the final benchmark results summary
func printSummary(results []BenchmarkResult) {
	fmt.Printf("Benchmark complete\n")
	for _, result := range results {
		fmt.Printf("  %-8s: Untracked: %s, Cold: %s, Warm: %s\n", result.Workload, result.NoTrackTime, result.ColdTime, result.WarmTime)
	}
}
