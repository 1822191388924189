package checkers

import (
	"fmt"
	"strings"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Envelope checks response body shape.
//
// ENV-1: success (2xx) JSON responses wrap their payload in a top-level
// "data" property.
// ENV-2: error (4xx/5xx) JSON responses carry a top-level "error"
// property.
type Envelope struct{}

func (Envelope) ID() string { return "envelope" }

func (Envelope) Detect(doc map[string]any) bool {
	_, ok := doc["paths"].(map[string]any)
	return ok
}

func (Envelope) Validate(doc map[string]any, p *profile.Profile) grading.CheckerResult {
	var res grading.CheckerResult
	_, checkSuccess := p.RuleByID("ENV-1")
	_, checkError := p.RuleByID("ENV-2")
	if !checkSuccess && !checkError {
		return res
	}

	forEachOperation(doc, func(path, method string, op map[string]any) {
		responses, ok := op["responses"].(map[string]any)
		if !ok {
			return
		}
		for _, status := range sortedKeys(responses) {
			resp, ok := responses[status].(map[string]any)
			if !ok {
				continue
			}
			schema, ok := responseSchema(resp)
			if !ok {
				continue
			}
			ptr := fmt.Sprintf("%s/responses/%s", opPointer(path, method), status)

			switch {
			case checkSuccess && strings.HasPrefix(status, "2") && status != "204":
				if !schemaHasProperty(schema, "data") {
					res.Findings = append(res.Findings, grading.Finding{
						RuleID:   "ENV-1",
						Severity: grading.SeverityError,
						Message:  fmt.Sprintf("%s %s %s response does not wrap its payload in a data envelope", method, path, status),
						Path:     ptr,
						Category: profile.CategoryEnvelope,
					})
				}
			case checkError && (strings.HasPrefix(status, "4") || strings.HasPrefix(status, "5")):
				if !schemaHasProperty(schema, "error") {
					res.Findings = append(res.Findings, grading.Finding{
						RuleID:   "ENV-2",
						Severity: grading.SeverityError,
						Message:  fmt.Sprintf("%s %s %s response has no error envelope", method, path, status),
						Path:     ptr,
						Category: profile.CategoryEnvelope,
					})
				}
			}
		}
	})

	return res
}
