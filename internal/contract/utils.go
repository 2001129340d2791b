package contract

import (
	"fmt"
	"io"
	"log/slog"
	"os"
	"path/filepath"
	"strings"

	"github.com/fatih/color"
	"github.com/huangsam/irmetrics/schema"
)

// Color variables for console output, one per score band.
var (
	StrongColor = color.New(color.FgGreen, color.Bold)
	FairColor   = color.New(color.FgCyan)
	WeakColor   = color.New(color.FgYellow)
	PoorColor   = color.New(color.FgRed)
)

// GetColorLabel returns the score band of a score colored for console output (table).
func GetColorLabel(score float64) string {
	text := schema.ScoreBand(score)

	switch text {
	case "Strong":
		return StrongColor.Sprint(text)
	case "Fair":
		return FairColor.Sprint(text)
	case "Weak":
		return WeakColor.Sprint(text)
	default:
		return PoorColor.Sprint(text)
	}
}

// SelectOutputFile returns the appropriate file handle for output, based on the provided
// file path. An empty path selects os.Stdout.
func SelectOutputFile(filePath string) (*os.File, error) {
	if filePath == "" {
		return os.Stdout, nil
	}
	return os.Create(filePath)
}

// LogFatal logs an error and exits the program.
func LogFatal(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Fatal %s: %v\n", msg, err)
	os.Exit(1)
}

// LogWarn logs a warning message to stderr.
func LogWarn(msg string, err error) {
	_, _ = fmt.Fprintf(os.Stderr, "Warn %s: %v\n", msg, err)
}

// SetupLogger installs the default slog logger writing text to w.
// Verbose mode lowers the level to debug.
func SetupLogger(w io.Writer, verbose bool) *slog.Logger {
	level := slog.LevelInfo
	if verbose {
		level = slog.LevelDebug
	}
	logger := slog.New(slog.NewTextHandler(w, &slog.HandlerOptions{Level: level}))
	slog.SetDefault(logger)
	return logger
}

// GetRunDBFilePath returns the path to the SQLite DB file for run storage.
func GetRunDBFilePath() string {
	homeDir, err := os.UserHomeDir()
	if err != nil {
		return ".irmetrics_runs.db"
	}
	return filepath.Join(homeDir, ".irmetrics_runs.db")
}

// ParseBoolString parses a string value into a boolean.
// Accepts "yes", "no", "true", "false", "1", "0" (case-insensitive).
// Returns an error for invalid values.
func ParseBoolString(s string) (bool, error) {
	switch strings.ToLower(s) {
	case "yes", "true", "1":
		return true, nil
	case "no", "false", "0":
		return false, nil
	default:
		return false, fmt.Errorf("invalid boolean string: %s (expected yes/no/true/false/1/0)", s)
	}
}

// SplitFields splits a line on sep. The default single-space separator
// matches any run of whitespace. A blank line has no fields.
func SplitFields(line, sep string) []string {
	line = strings.TrimSpace(line)
	if line == "" {
		return nil
	}
	if sep == DefaultSeparator {
		return strings.Fields(line)
	}
	fields := strings.Split(line, sep)
	for i, f := range fields {
		fields[i] = strings.TrimSpace(f)
	}
	return fields
}
