package mcp

import (
	"context"
	"encoding/json"
	"fmt"
	"io"
	"strconv"
	"time"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/internal/outwriter"
	"github.com/huangsam/scorecard/schema"
	"github.com/mark3labs/mcp-go/mcp"
)

// toolHandler holds common dependencies for MCP tool handlers.
type toolHandler struct {
	session *core.Session
	baseCfg *contract.Config
	mgr     contract.HistoryManager
}

func jsonResult(v any) *mcp.CallToolResult {
	jsonData, _ := json.MarshalIndent(v, "", "  ")
	return mcp.NewToolResultText(string(jsonData))
}

func (h *toolHandler) handleGetCriteria(_ context.Context, _ mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	return jsonResult(h.session.Criteria()), nil
}

func (h *toolHandler) handleSetWeight(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("criterion")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	weight, err := request.RequireFloat("weight")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	updated, err := h.session.SetWeight(name, strconv.FormatFloat(weight, 'f', -1, 64))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid weight: %v", err)), nil
	}
	return jsonResult(updated), nil
}

func (h *toolHandler) handleAddEntry(_ context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	name, err := request.RequireString("name")
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}
	raw, ok := request.GetArguments()["values"].(map[string]any)
	if !ok {
		return mcp.NewToolResultError("values must be an object of criterion name to number"), nil
	}

	fields := map[string]string{schema.NameColumn: name}
	for key, v := range raw {
		switch val := v.(type) {
		case float64:
			fields[key] = strconv.FormatFloat(val, 'f', -1, 64)
		case string:
			fields[key] = val
		default:
			return mcp.NewToolResultError(fmt.Sprintf("value for %q must be a number", key)), nil
		}
	}

	entry, err := h.session.AddEntry(fields)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("invalid entry: %v", err)), nil
	}
	return jsonResult(entry), nil
}

func (h *toolHandler) handleImportFiles(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	paths := request.GetStringSlice("paths", nil)
	if len(paths) == 0 {
		return mcp.NewToolResultError("paths must list at least one file"), nil
	}

	report, err := h.session.ImportFiles(ctx, paths)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("import cancelled after %d file(s), %d entries appended: %v", len(report.Files), report.Appended(), err)), nil
	}
	return jsonResult(report), nil
}

func (h *toolHandler) handleGetDashboard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	dash := h.session.Dashboard(request.GetBool("explain", false))
	core.RecordSessionRun(ctx, h.mgr, h.session, "dashboard", start, dash.Entries)
	return jsonResult(dash), nil
}

func (h *toolHandler) handleCompareEntities(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	names := request.GetStringSlice("names", nil)
	if len(names) == 0 {
		names = h.session.ComparisonOptions()
	}

	comparison, err := h.session.Compare(names)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("comparison failed: %v", err)), nil
	}
	core.RecordSessionRun(ctx, h.mgr, h.session, "compare", start, core.RankedEntries(h.session, comparison))
	return jsonResult(comparison), nil
}

func (h *toolHandler) handleExportScorecard(ctx context.Context, request mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	start := time.Now()
	defaultFormat := schema.XLSXExport
	if h.baseCfg != nil && h.baseCfg.ExportFormat != "" {
		defaultFormat = h.baseCfg.ExportFormat
	}
	format := schema.ExportFormat(request.GetString("format", string(defaultFormat)))
	if _, ok := schema.ValidExportFormats[format]; !ok {
		return mcp.NewToolResultError(fmt.Sprintf("unsupported export format: %s", format)), nil
	}
	if h.session.Len() == 0 {
		return mcp.NewToolResultError(schema.ErrEmptyStore.Error() + ". Please add some entries first"), nil
	}

	outputFile := request.GetString("output_file", "")
	if outputFile == "" {
		outputFile = schema.DefaultExportFiles[format]
	}

	err := outwriter.WriteToFile(outputFile, func(w io.Writer) error {
		return h.session.Export(w, format)
	}, "Exported "+string(format))
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("export failed: %v", err)), nil
	}

	dash := h.session.Dashboard(false)
	core.RecordSessionRun(ctx, h.mgr, h.session, "export", start, dash.Entries)
	return jsonResult(map[string]any{
		"format":     format,
		"outputFile": outputFile,
		"rows":       len(dash.Entries),
	}), nil
}
