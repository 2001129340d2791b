package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"strings"

	"github.com/huangsam/irmetrics/core"
	"github.com/huangsam/irmetrics/core/algo"
	"github.com/huangsam/irmetrics/internal/contract"
	"github.com/huangsam/irmetrics/internal/outwriter"
	"github.com/huangsam/irmetrics/internal/reader"
	"github.com/huangsam/irmetrics/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// mcpSource names lists that arrive inline through a tool call.
const mcpSource = "mcp"

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	baseCfg *contract.Config
	mgr     contract.RunManager
	qrels   *qrelsCache
}

func (h *toolHandler) handleLabelRankedList(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRelArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid label parameters: %v", err)), nil
	}
	cfg.Truncate = request.GetInt("truncate", 0)
	if cfg.Truncate < 0 {
		return mcp.NewToolResultError(fmt.Sprintf("invalid label parameters: truncate must be greater than 0 (received %d)", cfg.Truncate)), nil
	}

	qrels, err := h.qrels.load(cfg.RelFile, cfg.RelFormat, cfg.Separator, cfg.Topic)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("labelling failed: %v", err)), nil
	}
	ids, err := reader.ReadRankedList(strings.NewReader(request.GetString("ranked_list", "")), cfg.Separator)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("labelling failed: %v", err)), nil
	}

	list := algo.NewLabeler(qrels, cfg.Truncate, cfg.Condensed).Label(ids)
	jsonData, _ := json.MarshalIndent(outwriter.LabelledRows(list), "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleComputeMetrics(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	cfg := h.baseCfg.Clone()
	if err := applyRelArgs(cfg, request); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid compute parameters: %v", err)), nil
	}
	input := &contract.ConfigRawInput{
		Grades:      request.GetString("grades", ""),
		Stops:       request.GetString("stops", ""),
		Cutoffs:     request.GetString("cutoffs", contract.DefaultCutoffs),
		Beta:        request.GetFloat("beta", contract.DefaultBeta),
		Gamma:       request.GetFloat("gamma", contract.DefaultGamma),
		LogBase:     request.GetFloat("logb", contract.DefaultLogBase),
		Persistence: request.GetFloat("rbp", contract.DefaultPersistence),
		Recall:      request.GetBool("recall", false),
	}
	if err := contract.ProcessComputeInputs(cfg, input); err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid compute parameters: %v", err)), nil
	}

	qrels, err := h.qrels.load(cfg.RelFile, cfg.RelFormat, cfg.Separator, cfg.Topic)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}
	list, err := reader.ReadLabelledRankedList(strings.NewReader(request.GetString("labelled_list", "")), cfg.Separator)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	result, err := core.ComputeList(ctx, cfg, h.mgr, qrels, mcpSource, list)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("scoring failed: %v", err)), nil
	}

	jsonData, _ := json.MarshalIndent(result, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

func (h *toolHandler) handleListMetrics(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	family := schema.MetricFamily(request.GetString("family", ""))

	metrics := make([]schema.MetricDefinition, 0, len(schema.MetricCatalog))
	for _, m := range schema.MetricCatalog {
		if family == "" || m.Family == family {
			metrics = append(metrics, m)
		}
	}
	if len(metrics) == 0 {
		return mcp.NewToolResultError(fmt.Sprintf("no metrics in family %q", family)), nil
	}

	jsonData, _ := json.MarshalIndent(metrics, "", "  ")
	return mcp.NewToolResultText(string(jsonData)), nil
}

// applyRelArgs applies the relevance file arguments shared by the tools.
func applyRelArgs(cfg *contract.Config, request mcp.CallToolRequest) error {
	if p := request.GetString("relfile", ""); p != "" {
		cfg.RelFile = p
	}
	if cfg.RelFile == "" {
		return fmt.Errorf("a relevance assessment file is required (relfile)")
	}
	if f := request.GetString("rel_format", ""); f != "" {
		cfg.RelFormat = schema.RelFormat(strings.ToLower(f))
	}
	if cfg.RelFormat == "" {
		cfg.RelFormat = schema.NTCIRRel
	}
	if _, ok := schema.ValidRelFormats[cfg.RelFormat]; !ok {
		return fmt.Errorf("invalid rel format '%s'. must be ntcir, trec", cfg.RelFormat)
	}
	if t := request.GetString("topic", ""); t != "" {
		cfg.Topic = t
	}
	if cfg.RelFormat == schema.TRECRel && cfg.Topic == "" {
		return fmt.Errorf("topic is required when reading trec relevance assessments")
	}
	cfg.Condensed = request.GetBool("condensed", cfg.Condensed)
	if cfg.Separator == "" {
		cfg.Separator = contract.DefaultSeparator
	}
	return nil
}
