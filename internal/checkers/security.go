package checkers

import (
	"fmt"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Security checks that the document declares authentication and applies
// it to its operations.
//
// SEC-1: at least one security scheme is declared.
// SEC-2: a security requirement covers every operation, either globally
// or per operation.
type Security struct{}

func (Security) ID() string { return "security" }

// Detect always applies: every API shape is judged on security once its
// profile carries the rules.
func (Security) Detect(doc map[string]any) bool { return true }

func (Security) Validate(doc map[string]any, p *profile.Profile) grading.CheckerResult {
	var res grading.CheckerResult

	hasSchemes := profile.HasSecuritySchemes(doc)
	if _, ok := p.RuleByID("SEC-1"); ok && !hasSchemes {
		res.Findings = append(res.Findings, grading.Finding{
			RuleID:   "SEC-1",
			Severity: grading.SeverityError,
			Message:  "no security scheme declared",
			Path:     "/components/securitySchemes",
			Category: profile.CategorySecurity,
		})
	}

	if _, ok := p.RuleByID("SEC-2"); ok && hasSchemes && !profile.HasGlobalSecurity(doc) {
		forEachOperation(doc, func(path, method string, op map[string]any) {
			if _, secured := op["security"]; secured {
				return
			}
			res.Findings = append(res.Findings, grading.Finding{
				RuleID:   "SEC-2",
				Severity: grading.SeverityError,
				Message:  fmt.Sprintf("operation %s %s has no security requirement and no global default applies", method, path),
				Path:     opPointer(path, method),
				Category: profile.CategorySecurity,
			})
		})
	}

	return res
}
