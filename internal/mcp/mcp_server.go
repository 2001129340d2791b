// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// defaultQrelsCacheSize bounds how many parsed relevance files stay in memory.
const defaultQrelsCacheSize = 16

// NewMCPServer initializes and configures the irmetrics MCP server without starting it.
// This is exposed for unit testing.
func NewMCPServer(baseCfg *contract.Config, mgr contract.RunManager) *server.MCPServer {
	s := server.NewMCPServer(
		"IR Metrics Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		baseCfg: baseCfg,
		mgr:     mgr,
		qrels:   newQrelsCache(defaultQrelsCacheSize),
	}

	// --- 1. Tool: label_ranked_list ---
	s.AddTool(mcp.NewTool("label_ranked_list",
		mcp.WithDescription("Attach relevance levels from a relevance assessment file to a ranked list of document IDs."),
		mcp.WithString("relfile", mcp.Description("Path to the relevance assessment file."), mcp.Required()),
		mcp.WithString("ranked_list", mcp.Description("Document IDs, one per line, best first."), mcp.Required()),
		mcp.WithString("rel_format", mcp.Description("Relevance file format. Defaults to 'ntcir'."), mcp.Enum("ntcir", "trec")),
		mcp.WithString("topic", mcp.Description("Topic to read from a TREC qrels file.")),
		mcp.WithNumber("truncate", mcp.Description("Keep only the first N output rows.")),
		mcp.WithBoolean("condensed", mcp.Description("Drop unjudged documents.")),
	), h.handleLabelRankedList)

	// --- 2. Tool: compute_metrics ---
	s.AddTool(mcp.NewTool("compute_metrics",
		mcp.WithDescription("Score a labelled ranked list with graded-relevance IR effectiveness metrics (AP, Q-measure, nDCG, ERR, RBP and more)."),
		mcp.WithString("relfile", mcp.Description("Path to the relevance assessment file."), mcp.Required()),
		mcp.WithString("labelled_list", mcp.Description("Lines of '<id> L<level>', best first. A missing label means unjudged."), mcp.Required()),
		mcp.WithString("grades", mcp.Description("Gain value per relevance level, ascending, e.g. '1:2:3'."), mcp.Required()),
		mcp.WithString("stops", mcp.Description("Stopping probability weight per level. Defaults to the gain values.")),
		mcp.WithString("cutoffs", mcp.Description("Comma-separated document cutoffs, e.g. '10,1000'.")),
		mcp.WithString("rel_format", mcp.Description("Relevance file format. Defaults to 'ntcir'."), mcp.Enum("ntcir", "trec")),
		mcp.WithString("topic", mcp.Description("Topic to read from a TREC qrels file.")),
		mcp.WithNumber("beta", mcp.Description("Persistence parameter of Q-measure.")),
		mcp.WithNumber("gamma", mcp.Description("Persistence parameter of the graded-uniform NCU metrics.")),
		mcp.WithNumber("logb", mcp.Description("Logarithm base of the nDCG discount. 0 means natural log.")),
		mcp.WithNumber("rbp", mcp.Description("Persistence parameter of RBP.")),
		mcp.WithBoolean("condensed", mcp.Description("Score the condensed list, with unjudged documents removed.")),
		mcp.WithBoolean("recall", mcp.Description("Also report recall.")),
	), h.handleComputeMetrics)

	// --- 3. Tool: list_metrics ---
	s.AddTool(mcp.NewTool("list_metrics",
		mcp.WithDescription("List the metrics computed by compute_metrics, with their gain and discount models."),
		mcp.WithString("family", mcp.Description("Only list metrics of this family.")),
	), h.handleListMetrics)

	return s
}

// StartMCPServer starts the irmetrics MCP server on stdio.
func StartMCPServer(_ context.Context, baseCfg *contract.Config, mgr contract.RunManager) error {
	s := NewMCPServer(baseCfg, mgr)
	return server.ServeStdio(s)
}
