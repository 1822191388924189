package checkers

import (
	"fmt"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Caching checks that read endpoints declare cache semantics.
//
// CACHE-1: every GET 200 response declares a Cache-Control or ETag
// header. Responses that declare neither leave intermediaries guessing.
type Caching struct{}

func (Caching) ID() string { return "caching" }

func (Caching) Detect(doc map[string]any) bool {
	_, ok := doc["paths"].(map[string]any)
	return ok
}

func (Caching) Validate(doc map[string]any, p *profile.Profile) grading.CheckerResult {
	var res grading.CheckerResult
	if _, ok := p.RuleByID("CACHE-1"); !ok {
		return res
	}

	forEachOperation(doc, func(path, method string, op map[string]any) {
		if method != "get" {
			return
		}
		responses, ok := op["responses"].(map[string]any)
		if !ok {
			return
		}
		resp, ok := responses["200"].(map[string]any)
		if !ok {
			return
		}
		if hasCacheHeader(resp) {
			return
		}
		res.Findings = append(res.Findings, grading.Finding{
			RuleID:   "CACHE-1",
			Severity: grading.SeverityError,
			Message:  fmt.Sprintf("GET %s 200 response declares neither Cache-Control nor ETag", path),
			Path:     fmt.Sprintf("%s/responses/200/headers", opPointer(path, "get")),
			Category: profile.CategoryCaching,
		})
	})

	return res
}

func hasCacheHeader(resp map[string]any) bool {
	headers, ok := resp["headers"].(map[string]any)
	if !ok {
		return false
	}
	for _, name := range []string{"Cache-Control", "ETag"} {
		if _, ok := headers[name]; ok {
			return true
		}
	}
	return false
}
