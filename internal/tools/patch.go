package tools

import (
	"context"
	"encoding/json"
	"errors"
	"fmt"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/patch"
)

// PatchTool handles the apply_patch MCP tool: the safe remediation path
// behind the integrity gate.
type PatchTool struct{}

// NewPatchTool creates a PatchTool.
func NewPatchTool() *PatchTool {
	return &PatchTool{}
}

// Definition returns the MCP tool definition for registration.
func (t *PatchTool) Definition() mcp.Tool {
	return mcp.NewTool("apply_patch",
		mcp.WithDescription(
			"Apply a remediation patch batch to a spec document. Every patch carries the "+
				"preimage hash of the document it was computed against; one mismatch rejects "+
				"the whole batch (stale precondition — re-grade and regenerate). Structured "+
				"documents take pointer-based structural operations; unparsable documents take "+
				"the textual diff fallback, which is all-or-nothing and fails closed. On a real "+
				"change the original content is backed up before the write.",
		),
		mcp.WithString("path",
			mcp.Required(),
			mcp.Description("Filesystem path to the document to patch."),
		),
		mcp.WithString("patches",
			mcp.Required(),
			mcp.Description("JSON: a patch object or an array of patch objects. Each has "+
				"'preimage_hash' plus either 'ops' (structural: add/remove/replace/move/copy "+
				"with pointer paths) or 'diff' (textual fallback body)."),
		),
		mcp.WithBoolean("dry_run",
			mcp.Description("Report what would change without writing. Default: false."),
		),
	)
}

// Handle processes the apply_patch tool call.
func (t *PatchTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	path := req.GetString("path", "")
	if path == "" {
		return mcp.NewToolResultError("'path' is required"), nil
	}

	patches, err := parsePatches(req.GetString("patches", ""))
	if err != nil {
		return mcp.NewToolResultError(err.Error()), nil
	}

	dryRun := boolArg(req, "dry_run", false)
	res, err := patch.ApplyFile(path, patches, dryRun)
	switch {
	case errors.Is(err, patch.ErrStalePatch):
		return mcp.NewToolResultError(fmt.Sprintf(
			"stale precondition: %v — the document changed since the patch was generated; re-grade and regenerate", err)), nil
	case errors.Is(err, patch.ErrUnsupportedOp):
		return mcp.NewToolResultError(err.Error()), nil
	case errors.Is(err, patch.ErrNotStructured):
		return mcp.NewToolResultError(err.Error()), nil
	case err != nil:
		return nil, fmt.Errorf("applying patches to %s: %w", path, err)
	}

	return mcp.NewToolResultText("```json\n" + asJSON(res) + "\n```"), nil
}

// parsePatches accepts a single patch object or an array of them.
func parsePatches(raw string) ([]patch.Patch, error) {
	if raw == "" {
		return nil, fmt.Errorf("'patches' is required")
	}

	var batch []patch.Patch
	if err := json.Unmarshal([]byte(raw), &batch); err == nil {
		return batch, nil
	}

	var single patch.Patch
	if err := json.Unmarshal([]byte(raw), &single); err != nil {
		return nil, fmt.Errorf("parsing 'patches': %w", err)
	}
	return []patch.Patch{single}, nil
}
