package tools

import (
	"context"
	"fmt"
	"log"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/document"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/history"
)

// GradeTool handles the grade_spec MCP tool: the full pipeline from
// profile detection through the final report.
type GradeTool struct {
	grader *grading.Grader
	store  *history.Store // nil when history is disabled
}

// NewGradeTool creates a GradeTool. store may be nil; grading still
// works, runs just aren't persisted.
func NewGradeTool(grader *grading.Grader, store *history.Store) *GradeTool {
	return &GradeTool{grader: grader, store: store}
}

// Definition returns the MCP tool definition for registration.
func (t *GradeTool) Definition() mcp.Tool {
	return mcp.NewTool("grade_spec",
		mcp.WithDescription(
			"Grade an API specification document against its detected (or overridden) profile. "+
				"Detects the API shape, gates on profile prerequisites, runs the rule checkers, "+
				"and returns a weighted report with a letter grade. "+
				"A failed prerequisite produces a blocked report (grade F) without running any rule checker.",
		),
		mcp.WithString("path",
			mcp.Description("Filesystem path to the spec document (YAML or JSON). Required unless 'content' is given."),
		),
		mcp.WithString("content",
			mcp.Description("Inline spec content. Takes precedence over 'path'."),
		),
		mcp.WithString("profile_override",
			mcp.Description("Profile type to grade with, bypassing detection. Unregistered types fall back to the default profile."),
		),
		mcp.WithBoolean("save_run",
			mcp.Description("Persist this run to grading history (requires 'path'). Default: true."),
		),
	)
}

// Handle processes the grade_spec tool call.
func (t *GradeTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, path, err := loadSpecContent(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("document does not parse as structured data: %v", err)), nil
	}

	override := req.GetString("profile_override", "")
	run := t.grader.Grade(doc, override)

	if boolArg(req, "save_run", true) && t.store != nil && path != "" {
		if _, err := t.store.SaveRun(path, document.Hash(raw), run); err != nil {
			// Persistence is best-effort; the grade itself already succeeded.
			log.Printf("WARNING: saving grading run: %v", err)
		}
	}

	header := fmt.Sprintf(
		"# Grade: %s (%.1f%%)\n\n"+
			"**Profile:** %s (detected %s, confidence %.2f)\n"+
			"**Critical issues:** %d\n",
		run.Report.Letter, run.Report.CompliancePct,
		run.Profile, run.Detection.DetectedProfile, run.Detection.Confidence,
		run.Report.CriticalIssues,
	)
	if run.Report.AutoFailTriggered {
		header += "**AUTO-FAIL** — foundational invariants are absent.\n"
	}

	return mcp.NewToolResultText(header + "\n```json\n" + asJSON(run) + "\n```"), nil
}
