package grading

import (
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Prerequisite rule IDs used in blocked-report findings.
const (
	PrereqAuth   = "PREREQ-AUTH"
	PrereqTenant = "PREREQ-TENANT"
	PrereqAPIID  = "PREREQ-API-ID"
)

// PrereqResult lists the prerequisites that failed and the ones the
// profile declared optional and were therefore skipped (not passed).
type PrereqResult struct {
	Failures []Finding `json:"failures"`
	Skipped  []string  `json:"skipped"`
}

// Blocked reports whether the prerequisite gate short-circuits grading.
func (r PrereqResult) Blocked() bool {
	return len(r.Failures) > 0
}

// EvaluatePrerequisites checks only the invariants the profile declares
// required. A failed prerequisite is a hard short-circuit for the whole
// grading run, not a scoring penalty.
func EvaluatePrerequisites(doc map[string]any, p *profile.Profile) PrereqResult {
	var res PrereqResult

	if p.Prerequisites.RequiresAuthentication {
		if !profile.HasSecuritySchemes(doc) {
			res.Failures = append(res.Failures, Finding{
				RuleID:   PrereqAuth,
				Severity: SeverityError,
				Message:  "profile requires authentication but the document declares no security scheme",
				Path:     "/components/securitySchemes",
				Category: profile.CategorySecurity,
			})
		}
	} else {
		res.Skipped = append(res.Skipped, PrereqAuth)
	}

	if p.Prerequisites.RequiresMultiTenantHeaders {
		if !profile.HasTenantHeader(doc) {
			res.Failures = append(res.Failures, Finding{
				RuleID:   PrereqTenant,
				Severity: SeverityError,
				Message:  "profile requires multi-tenant headers but no tenant header parameter is declared",
				Path:     "/components/parameters",
				Category: profile.CategoryTenancy,
			})
		}
	} else {
		res.Skipped = append(res.Skipped, PrereqTenant)
	}

	if p.Prerequisites.RequiresAPIID {
		if !profile.HasAPIID(doc) {
			res.Failures = append(res.Failures, Finding{
				RuleID:   PrereqAPIID,
				Severity: SeverityError,
				Message:  "profile requires a stable API identifier (info.x-api-id)",
				Path:     "/info/x-api-id",
			})
		}
	} else {
		res.Skipped = append(res.Skipped, PrereqAPIID)
	}

	return res
}
