package mcp_test

import (
	"context"
	"encoding/json"
	"os"
	"path/filepath"
	"testing"

	"github.com/huangsam/irmetrics/internal/contract"
	mcp_internal "github.com/huangsam/irmetrics/internal/mcp"
	"github.com/huangsam/irmetrics/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func writeRelFile(t *testing.T) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "rel.txt")
	require.NoError(t, os.WriteFile(path, []byte("a L1\nb L2\nc L0\n"), 0o644))
	return path
}

func callTool(t *testing.T, name string, args map[string]any) *mcp.CallToolResult {
	t.Helper()
	baseCfg := &contract.Config{Separator: contract.DefaultSeparator, Workers: 1}

	// No run manager: tracking stays off
	var mgr contract.RunManager
	s := mcp_internal.NewMCPServer(baseCfg, mgr)

	tool := s.GetTool(name)
	require.NotNil(t, tool, "Tool %s should exist", name)

	req := mcp.CallToolRequest{
		Params: mcp.CallToolParams{
			Name:      name,
			Arguments: args,
		},
	}
	res, err := tool.Handler(context.Background(), req)
	require.NoError(t, err, "The MCP handler should not return a raw error for tool logic failures")
	return res
}

func resultText(t *testing.T, res *mcp.CallToolResult) string {
	t.Helper()
	require.NotEmpty(t, res.Content)
	return res.Content[0].(mcp.TextContent).Text
}

func TestMCPServerHandlers_ValidationErrors(t *testing.T) {
	relFile := writeRelFile(t)

	tests := []struct {
		name     string
		tool     string
		args     map[string]any
		expected string
	}{
		{"label missing relfile", "label_ranked_list", map[string]any{"ranked_list": "a\n"}, "relevance assessment file is required"},
		{"label bad format", "label_ranked_list", map[string]any{"relfile": relFile, "ranked_list": "a\n", "rel_format": "csv"}, "invalid rel format"},
		{"label trec without topic", "label_ranked_list", map[string]any{"relfile": relFile, "ranked_list": "a\n", "rel_format": "trec"}, "topic is required"},
		{"label negative truncate", "label_ranked_list", map[string]any{"relfile": relFile, "ranked_list": "a\n", "truncate": -1.0}, "truncate must be greater than 0"},
		{"label already labelled", "label_ranked_list", map[string]any{"relfile": relFile, "ranked_list": "a L1\n"}, "labelling failed"},
		{"label missing file", "label_ranked_list", map[string]any{"relfile": filepath.Join(t.TempDir(), "nope"), "ranked_list": "a\n"}, "failed to open rel file"},
		{"compute missing grades", "compute_metrics", map[string]any{"relfile": relFile, "labelled_list": "a L1\n"}, "gain values are required"},
		{"compute bad gamma", "compute_metrics", map[string]any{"relfile": relFile, "labelled_list": "a L1\n", "grades": "1:2", "gamma": 2.0}, "gamma must range from 0 to 1"},
		{"compute too few grades", "compute_metrics", map[string]any{"relfile": relFile, "labelled_list": "a L1\n", "grades": "1"}, "scoring failed"},
		{"compute bad label", "compute_metrics", map[string]any{"relfile": relFile, "labelled_list": "a Lx\n", "grades": "1:2"}, "scoring failed"},
		{"metrics unknown family", "list_metrics", map[string]any{"family": "bogus"}, "no metrics in family"},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			res := callTool(t, tt.tool, tt.args)
			assert.True(t, res.IsError, "The response should indicate an error state")
			assert.Contains(t, resultText(t, res), tt.expected)
		})
	}
}

func TestMCPServerHandlers_Label(t *testing.T) {
	relFile := writeRelFile(t)

	res := callTool(t, "label_ranked_list", map[string]any{
		"relfile":     relFile,
		"ranked_list": "x\nb\nc\na\n",
		"condensed":   true,
		"truncate":    2.0,
	})
	require.False(t, res.IsError, resultText(t, res))

	var rows []schema.LabelledRow
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &rows))
	require.Len(t, rows, 2)
	assert.Equal(t, "b", rows[0].ID)
	require.NotNil(t, rows[0].Level)
	assert.Equal(t, 2, *rows[0].Level)
	assert.Equal(t, "c", rows[1].ID)
}

func TestMCPServerHandlers_Compute(t *testing.T) {
	relFile := writeRelFile(t)

	res := callTool(t, "compute_metrics", map[string]any{
		"relfile":       relFile,
		"labelled_list": "a L1\nx\nb L2\nc L0\n",
		"grades":        "1:2",
		"cutoffs":       "2",
		"recall":        true,
	})
	require.False(t, res.IsError, resultText(t, res))

	var result schema.ComputeResult
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &result))
	assert.Equal(t, relFile, result.RelFile)
	assert.Equal(t, []int{1, 1, 1}, result.XRelNum)
	require.Len(t, result.Lists, 1)

	list := result.Lists[0]
	assert.Equal(t, "mcp", list.Source)
	assert.Equal(t, 4, list.SysLen)
	assert.Equal(t, 1, list.FirstRel)
	assert.Equal(t, 3, list.FirstMax)

	scores := map[string]float64{}
	for _, s := range list.Scores {
		scores[s.Name] = s.Score
	}
	assert.Equal(t, 1.0, scores[schema.RRName])
	assert.Equal(t, 0.5, scores["P@0002"])
	assert.Equal(t, 1.0, scores["Hit@0002"])
	assert.Equal(t, 1.0, scores[schema.RecallName])
}

func TestMCPServerHandlers_ListMetrics(t *testing.T) {
	res := callTool(t, "list_metrics", nil)
	require.False(t, res.IsError)

	var metrics []schema.MetricDefinition
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &metrics))
	assert.Len(t, metrics, len(schema.MetricCatalog))

	res = callTool(t, "list_metrics", map[string]any{"family": string(schema.CascadeFamily)})
	require.False(t, res.IsError)
	require.NoError(t, json.Unmarshal([]byte(resultText(t, res)), &metrics))
	require.Len(t, metrics, 3)
	assert.Equal(t, schema.RBPName, metrics[0].Name)
}
