package checkers

import (
	"fmt"
	"strings"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Tenancy checks multi-tenant scoping.
//
// TEN-1: a tenant header parameter is declared somewhere in the document.
// TEN-2: every declared tenant header parameter is marked required;
// an optional tenant header silently widens queries to all tenants.
type Tenancy struct{}

func (Tenancy) ID() string { return "tenancy" }

func (Tenancy) Detect(doc map[string]any) bool { return true }

func (Tenancy) Validate(doc map[string]any, p *profile.Profile) grading.CheckerResult {
	var res grading.CheckerResult

	if _, ok := p.RuleByID("TEN-1"); ok && !profile.HasTenantHeader(doc) {
		res.Findings = append(res.Findings, grading.Finding{
			RuleID:   "TEN-1",
			Severity: grading.SeverityError,
			Message:  "no tenant header parameter declared",
			Path:     "/components/parameters",
			Category: profile.CategoryTenancy,
		})
	}

	if _, ok := p.RuleByID("TEN-2"); ok {
		res.Findings = append(res.Findings, optionalTenantHeaders(doc)...)
	}

	return res
}

// optionalTenantHeaders finds tenant header parameters declared without
// required:true, under shared components and inline on operations.
func optionalTenantHeaders(doc map[string]any) []grading.Finding {
	var findings []grading.Finding

	if params, ok := doc["components"].(map[string]any); ok {
		if shared, ok := params["parameters"].(map[string]any); ok {
			for _, name := range sortedKeys(shared) {
				if f, bad := optionalTenantParam(shared[name], "/components/parameters/"+name); bad {
					findings = append(findings, f)
				}
			}
		}
	}

	forEachOperation(doc, func(path, method string, op map[string]any) {
		params, ok := op["parameters"].([]any)
		if !ok {
			return
		}
		for i, param := range params {
			ptr := fmt.Sprintf("%s/parameters/%d", opPointer(path, method), i)
			if f, bad := optionalTenantParam(param, ptr); bad {
				findings = append(findings, f)
			}
		}
	})

	return findings
}

func optionalTenantParam(param any, ptr string) (grading.Finding, bool) {
	m, ok := param.(map[string]any)
	if !ok {
		return grading.Finding{}, false
	}
	if in, _ := m["in"].(string); in != "header" {
		return grading.Finding{}, false
	}
	name, _ := m["name"].(string)
	if !isTenantHeaderName(name) {
		return grading.Finding{}, false
	}
	if required, _ := m["required"].(bool); required {
		return grading.Finding{}, false
	}
	return grading.Finding{
		RuleID:   "TEN-2",
		Severity: grading.SeverityError,
		Message:  fmt.Sprintf("tenant header %q must be required", name),
		Path:     ptr,
		Category: profile.CategoryTenancy,
	}, true
}

func isTenantHeaderName(name string) bool {
	for _, want := range []string{"x-tenant-id", "x-organization-id", "x-org-id"} {
		if strings.EqualFold(name, want) {
			return true
		}
	}
	return false
}
