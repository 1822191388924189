// Package server wires the grading engine into an MCP server instance.
//
// This is the composition root: it builds the profile catalog, the
// checker registry, and the history store, and injects them into the
// tool handlers. No grading logic lives here, only wiring.
package server

import (
	"log"
	"os"

	"github.com/mark3labs/mcp-go/server"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/checkers"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/history"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/tools"
)

// Version is set at build time via ldflags.
var Version = "dev"

// ProfilesEnv names an optional YAML catalog of extra profiles merged
// over the built-ins at startup.
const ProfilesEnv = "SMACKDAB_PROFILES"

// New creates and configures the MCP server with all tools registered.
//
// The returned cleanup function closes the history store's database
// connection and must be called on shutdown (typically via defer). It is
// always non-nil and safe to call even if history init failed.
func New() (*server.MCPServer, func(), error) {
	catalog := profile.NewCatalog()
	if path := os.Getenv(ProfilesEnv); path != "" {
		if err := catalog.LoadFile(path); err != nil {
			return nil, noop, err
		}
	}
	for _, warning := range catalog.Validate() {
		log.Printf("WARNING: profile catalog: %s", warning)
	}

	registry := grading.NewRegistry(checkers.All()...)
	grader := grading.NewGrader(catalog, registry)

	s := server.NewMCPServer(
		"smackdab-api-grader",
		Version,
		server.WithToolCapabilities(true),
		server.WithRecovery(),
		server.WithInstructions(serverInstructions()),
	)

	// History is an independent subsystem: if it fails to initialize,
	// grading still works, runs just aren't persisted.
	cleanup := noop
	store, storeErr := history.New(history.DefaultConfig())
	if storeErr != nil {
		log.Printf("WARNING: grading history disabled: %v", storeErr)
		store = nil
	} else {
		cleanup = func() {
			if err := store.Close(); err != nil {
				log.Printf("WARNING: history store close: %v", err)
			}
		}
	}

	gradeTool := tools.NewGradeTool(grader, store)
	s.AddTool(gradeTool.Definition(), gradeTool.Handle)

	detectTool := tools.NewDetectTool(catalog)
	s.AddTool(detectTool.Definition(), detectTool.Handle)

	profilesTool := tools.NewProfilesTool(catalog)
	s.AddTool(profilesTool.Definition(), profilesTool.Handle)

	patchTool := tools.NewPatchTool()
	s.AddTool(patchTool.Definition(), patchTool.Handle)

	historyTool := tools.NewHistoryTool(store)
	s.AddTool(historyTool.Definition(), historyTool.Handle)

	return s, cleanup, nil
}

// noop is the default cleanup when history is disabled.
func noop() {}

// serverInstructions tells the AI client how to drive the grader.
func serverInstructions() string {
	return `You have access to the Smackdab API Grader, an MCP server that grades
API specification documents and safely applies remediation patches.

## Workflow

1. grade_spec — grade a document. Detection picks the profile; pass
   profile_override to force one. A blocked report (auto-fail, grade F)
   means a required prerequisite is missing: fix that first, nothing
   else was even checked.
2. Generate remediation patches from the report's findings. Every patch
   must carry preimage_hash = the sha256 of the document content you
   read when generating it.
3. apply_patch — submit the batch. A "stale precondition" error means
   the document changed since you read it: re-read, re-grade, and
   regenerate the patches. Never retry a stale batch as-is.
4. Re-grade after applying: structural patch application is permissive
   by design (missing paths no-op), so the grade is the ground truth for
   whether remediation worked.

## Tools

- grade_spec: full pipeline — detection, prerequisite gate, weighted
  category scoring, letter grade.
- detect_profile: classification only, with matched-signal evidence.
- list_profiles: registered profiles, their prerequisites and budgets.
- apply_patch: integrity-gated patch application. Use dry_run=true to
  preview. On a real change the original is backed up to <path>.bak.
- grading_history: recent persisted runs for trend inspection.

## Rules

- Never guess a preimage hash; always compute it from the exact bytes
  you read.
- Prefer structural patches (ops) for parseable documents; the textual
  diff fallback exists for malformed documents only and refuses any
  ambiguous edit.
- A low detection confidence silently selects the permissive default
  profile — pass profile_override when you know the API's real shape.`
}
