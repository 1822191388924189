package tools

import (
	"context"
	"fmt"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/history"
)

// HistoryTool handles the grading_history MCP tool.
type HistoryTool struct {
	store *history.Store // nil when history is disabled
}

// NewHistoryTool creates a HistoryTool. store may be nil.
func NewHistoryTool(store *history.Store) *HistoryTool {
	return &HistoryTool{store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *HistoryTool) Definition() mcp.Tool {
	return mcp.NewTool("grading_history",
		mcp.WithDescription(
			"List recent persisted grading runs, newest first. "+
				"Each run records the document hash at grading time, the applied profile, "+
				"and the full report.",
		),
		mcp.WithNumber("limit",
			mcp.Description("Maximum runs to return (default 20)."),
		),
		mcp.WithString("path",
			mcp.Description("Only return runs for this document path."),
		),
	)
}

// Handle processes the grading_history tool call.
func (t *HistoryTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	if t.store == nil {
		return mcp.NewToolResultError("grading history is disabled (store failed to initialize)"), nil
	}

	limit := intArg(req, "limit", 20)
	pathFilter := req.GetString("path", "")

	runs, err := t.store.ListRuns(limit, pathFilter)
	if err != nil {
		return nil, fmt.Errorf("listing grading runs: %w", err)
	}
	if len(runs) == 0 {
		return mcp.NewToolResultText("No grading runs recorded."), nil
	}

	var b strings.Builder
	fmt.Fprintf(&b, "# Grading History (%d runs)\n\n", len(runs))
	b.WriteString("| when | document | profile | grade | compliance | auto-fail |\n|---|---|---|---|---|---|\n")
	for _, r := range runs {
		fmt.Fprintf(&b, "| %s | %s | %s | %s | %.1f%% | %t |\n",
			r.CreatedAt, r.DocumentPath, r.Profile, r.Letter, r.CompliancePct, r.AutoFail)
	}

	return mcp.NewToolResultText(b.String()), nil
}
