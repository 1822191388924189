package grading

import (
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// errorPenalty is the point deduction per error-severity finding within
// a category.
const errorPenalty = 5

// Score aggregates findings into per-category scores and a compliance
// percentage under the profile's priority budget:
//
//	categoryScore = max(0, maxPoints - 5*errorFindingsInCategory)
//
// caps, when non-nil, holds checker-declared category scores that bound
// the computed score from above.
func Score(findings []Finding, p *profile.Profile, caps map[string]int) (perCategory map[string]int, compliancePct float64) {
	errorCounts := make(map[string]int)
	for _, f := range findings {
		if f.Severity != SeverityError {
			continue
		}
		if cat := findingCategory(f, p); cat != "" {
			errorCounts[cat]++
		}
	}

	perCategory = make(map[string]int, len(p.Priority))
	earned, budget := 0, 0
	for cat, maxPoints := range p.Priority {
		score := maxPoints - errorPenalty*errorCounts[cat]
		if score < 0 {
			score = 0
		}
		if cap, ok := caps[cat]; ok && cap < score {
			score = cap
		}
		perCategory[cat] = score
		earned += score
		budget += maxPoints
	}

	if budget == 0 {
		return perCategory, 0
	}
	return perCategory, float64(earned) / float64(budget) * 100
}

// findingCategory resolves a finding's category: the declared field
// first, then the matching profile rule, then the rule-ID prefix
// heuristic as a last resort. Findings that resolve to no category are
// carried through unweighted.
func findingCategory(f Finding, p *profile.Profile) string {
	if f.Category != "" {
		return f.Category
	}
	if rule, ok := p.RuleByID(f.RuleID); ok && rule.Category != "" {
		return rule.Category
	}
	known := make([]string, 0, len(p.Priority))
	for cat := range p.Priority {
		known = append(known, cat)
	}
	return profile.CategoryFromRuleID(f.RuleID, known)
}
