package tools

import (
	"context"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/document"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// DetectTool handles the detect_profile MCP tool: classification only,
// no gating or scoring.
type DetectTool struct {
	catalog *profile.Catalog
}

// NewDetectTool creates a DetectTool with the given profile catalog.
func NewDetectTool(catalog *profile.Catalog) *DetectTool {
	return &DetectTool{catalog: catalog}
}

// Definition returns the MCP tool definition for registration.
func (t *DetectTool) Definition() mcp.Tool {
	return mcp.NewTool("detect_profile",
		mcp.WithDescription(
			"Classify an API spec against the known profile signatures without grading it. "+
				"Returns the detected profile, a confidence score in [0,1], the matched signals, "+
				"and the profile that selection policy would actually apply.",
		),
		mcp.WithString("path",
			mcp.Description("Filesystem path to the spec document (YAML or JSON). Required unless 'content' is given."),
		),
		mcp.WithString("content",
			mcp.Description("Inline spec content. Takes precedence over 'path'."),
		),
	)
}

// Handle processes the detect_profile tool call.
func (t *DetectTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	raw, _, err := loadSpecContent(req)
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	doc, err := document.Parse(raw)
	if err != nil {
		return mcp.NewToolResultError(fmt.Sprintf("document does not parse as structured data: %v", err)), nil
	}

	det := profile.Detect(doc)
	selected := profile.Select(t.catalog, det, "")

	response := fmt.Sprintf(
		"# Detection: %s (confidence %.2f)\n\n"+
			"**Selected for grading:** %s (threshold %.2f)\n\n"+
			"```json\n%s\n```",
		det.DetectedProfile, det.Confidence,
		selected.Type, profile.ConfidenceThreshold,
		asJSON(det),
	)
	return mcp.NewToolResultText(response), nil
}
