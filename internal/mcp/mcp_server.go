// Package mcp provides the Model Context Protocol (MCP) server implementation.
package mcp

import (
	"context"

	"github.com/huangsam/scorecard/core"
	"github.com/huangsam/scorecard/internal/contract"
	"github.com/huangsam/scorecard/schema"
	"github.com/mark3labs/mcp-go/mcp"
	"github.com/mark3labs/mcp-go/server"
)

// NewMCPServer initializes and configures the Scorecard MCP server without starting it.
// Every tool works against the one in-memory session.
// This is exposed for unit testing.
func NewMCPServer(session *core.Session, baseCfg *contract.Config, mgr contract.HistoryManager) *server.MCPServer {
	s := server.NewMCPServer(
		"Scorecard Server",
		"1.0.0",
		server.WithLogging(),
	)

	h := &toolHandler{
		session: session,
		baseCfg: baseCfg,
		mgr:     mgr,
	}

	formats := make([]string, 0, len(schema.ValidExportFormats))
	for _, f := range []schema.ExportFormat{schema.XLSXExport, schema.CSVExport, schema.PDFExport, schema.JSONExport, schema.ParquetExport} {
		formats = append(formats, string(f))
	}

	// --- 1. Tool: get_criteria ---
	s.AddTool(mcp.NewTool("get_criteria",
		mcp.WithDescription("List the scoring criteria with their weights and max scores, in column order."),
	), h.handleGetCriteria)

	// --- 2. Tool: set_weight ---
	s.AddTool(mcp.NewTool("set_weight",
		mcp.WithDescription("Change the weight of one criterion. Weights are not normalized and may be negative."),
		mcp.WithString("criterion", mcp.Description("Name of the criterion to update."), mcp.Required()),
		mcp.WithNumber("weight", mcp.Description("New weight."), mcp.Required()),
	), h.handleSetWeight)

	// --- 3. Tool: add_entry ---
	s.AddTool(mcp.NewTool("add_entry",
		mcp.WithDescription("Add one entry. Every criterion value is required."),
		mcp.WithString("name", mcp.Description("Entity name."), mcp.Required()),
		mcp.WithObject("values", mcp.Description("Criterion name to numeric value."), mcp.Required()),
	), h.handleAddEntry)

	// --- 4. Tool: import_files ---
	s.AddTool(mcp.NewTool("import_files",
		mcp.WithDescription("Import .csv, .xlsx or .xls files in order. Files that fail are reported and skipped."),
		mcp.WithArray("paths", mcp.Description("File paths to import."), mcp.Required(), mcp.WithStringItems()),
	), h.handleImportFiles)

	// --- 5. Tool: get_dashboard ---
	s.AddTool(mcp.NewTool("get_dashboard",
		mcp.WithDescription("Score every entry and return overall scores, category averages and radar points."),
		mcp.WithBoolean("explain", mcp.Description("Include each criterion's contribution to the score.")),
	), h.handleGetDashboard)

	// --- 6. Tool: compare_entities ---
	s.AddTool(mcp.NewTool("compare_entities",
		mcp.WithDescription("Compare entities side by side and rank them by score. Defaults to every entity."),
		mcp.WithArray("names", mcp.Description("Entity names to compare."), mcp.WithStringItems()),
	), h.handleCompareEntities)

	// --- 7. Tool: export_scorecard ---
	s.AddTool(mcp.NewTool("export_scorecard",
		mcp.WithDescription("Export every entry with its total score to a file."),
		mcp.WithString("format", mcp.Description("Export format. Defaults to 'xlsx'."), mcp.Enum(formats...)),
		mcp.WithString("output_file", mcp.Description("Destination path. Defaults to the format's standard file name.")),
	), h.handleExportScorecard)

	return s
}

// StartMCPServer starts the Scorecard MCP server on stdio.
func StartMCPServer(_ context.Context, session *core.Session, baseCfg *contract.Config, mgr contract.HistoryManager) error {
	s := NewMCPServer(session, baseCfg, mgr)
	return server.ServeStdio(s)
}
