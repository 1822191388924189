package tools

import (
	"context"
	"fmt"
	"sort"
	"strings"

	"github.com/mark3labs/mcp-go/mcp"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// ProfilesTool handles the list_profiles MCP tool.
type ProfilesTool struct {
	catalog *profile.Catalog
}

// NewProfilesTool creates a ProfilesTool with the given catalog.
func NewProfilesTool(catalog *profile.Catalog) *ProfilesTool {
	return &ProfilesTool{catalog: catalog}
}

// Definition returns the MCP tool definition for registration.
func (t *ProfilesTool) Definition() mcp.Tool {
	return mcp.NewTool("list_profiles",
		mcp.WithDescription(
			"List the registered grading profiles: their prerequisites, weighted rules, "+
				"and per-category point budgets. The default profile applies when detection "+
				"confidence is below the selection threshold.",
		),
	)
}

// Handle processes the list_profiles tool call.
func (t *ProfilesTool) Handle(ctx context.Context, req mcp.CallToolRequest) (*mcp.CallToolResult, error) {
	var b strings.Builder
	b.WriteString("# Registered Profiles\n\n")
	defaultType := t.catalog.Default().Type

	for _, p := range t.catalog.List() {
		marker := ""
		if p.Type == defaultType {
			marker = " (default)"
		}
		fmt.Fprintf(&b, "## %s — `%s`%s\n\n", p.Name, p.Type, marker)
		fmt.Fprintf(&b, "Prerequisites: authentication=%t, multi-tenant-headers=%t, api-id=%t\n\n",
			p.Prerequisites.RequiresAuthentication,
			p.Prerequisites.RequiresMultiTenantHeaders,
			p.Prerequisites.RequiresAPIID,
		)
		b.WriteString("| rule | weight | category |\n|---|---|---|\n")
		for _, r := range p.Rules {
			fmt.Fprintf(&b, "| %s | %d | %s |\n", r.ID, r.Weight, r.Category)
		}
		b.WriteString("\nCategory budgets: ")
		first := true
		for _, cat := range sortedCategories(p) {
			if !first {
				b.WriteString(", ")
			}
			fmt.Fprintf(&b, "%s=%d", cat, p.Priority[cat])
			first = false
		}
		b.WriteString("\n\n")
	}

	return mcp.NewToolResultText(b.String()), nil
}

func sortedCategories(p *profile.Profile) []string {
	cats := make([]string, 0, len(p.Priority))
	for cat := range p.Priority {
		cats = append(cats, cat)
	}
	sort.Strings(cats)
	return cats
}
