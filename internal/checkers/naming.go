package checkers

import (
	"fmt"
	"strings"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/pointer"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Naming checks URL path conventions.
//
// NAM-1: static path segments are lower-kebab-case (no uppercase, no
// underscores). Template parameters ({id}) are exempt.
// NAM-2: paths have no trailing slash and no empty segments.
type Naming struct{}

func (Naming) ID() string { return "naming" }

func (Naming) Detect(doc map[string]any) bool {
	_, ok := doc["paths"].(map[string]any)
	return ok
}

func (Naming) Validate(doc map[string]any, p *profile.Profile) grading.CheckerResult {
	var res grading.CheckerResult
	_, checkCase := p.RuleByID("NAM-1")
	_, checkShape := p.RuleByID("NAM-2")
	if !checkCase && !checkShape {
		return res
	}

	paths, ok := doc["paths"].(map[string]any)
	if !ok {
		return res
	}

	for _, path := range sortedKeys(paths) {
		ptr := "/paths/" + pointer.Escape(path)

		if checkCase {
			for _, seg := range strings.Split(strings.TrimPrefix(path, "/"), "/") {
				if seg == "" || strings.HasPrefix(seg, "{") {
					continue
				}
				if seg != strings.ToLower(seg) || strings.Contains(seg, "_") {
					res.Findings = append(res.Findings, grading.Finding{
						RuleID:   "NAM-1",
						Severity: grading.SeverityError,
						Message:  fmt.Sprintf("path %s: segment %q is not lower-kebab-case", path, seg),
						Path:     ptr,
						Category: profile.CategoryNaming,
					})
					break
				}
			}
		}

		if checkShape {
			if strings.HasSuffix(path, "/") && path != "/" || strings.Contains(path, "//") {
				res.Findings = append(res.Findings, grading.Finding{
					RuleID:   "NAM-2",
					Severity: grading.SeverityError,
					Message:  fmt.Sprintf("path %s has a trailing slash or empty segment", path),
					Path:     ptr,
					Category: profile.CategoryNaming,
				})
			}
		}
	}

	return res
}

// All returns the built-in checkers in registration order.
func All() []grading.Checker {
	return []grading.Checker{
		Security{},
		Tenancy{},
		Envelope{},
		Caching{},
		Naming{},
	}
}
