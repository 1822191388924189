package grading

import (
	"fmt"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Grader orchestrates one grading run: detection, selection, the
// prerequisite gate, checker execution, scoring, and finalization.
// Stateless between invocations: each run receives its own document and
// resolves its own profile.
type Grader struct {
	Catalog  *profile.Catalog
	Registry *Registry
}

// NewGrader wires a grader from its collaborators.
func NewGrader(catalog *profile.Catalog, registry *Registry) *Grader {
	return &Grader{Catalog: catalog, Registry: registry}
}

// RunResult bundles the report with the detection evidence and the
// profile that was actually applied, the single record the persistence
// collaborator stores.
type RunResult struct {
	Report    *GradeReport            `json:"report"`
	Detection profile.DetectionResult `json:"detection"`
	Profile   string                  `json:"profile"`
}

// Grade runs the full pipeline. Ordering is fixed: detection before
// gating, gating before scoring. A failed prerequisite produces a
// terminal blocked report without invoking any checker.
func (g *Grader) Grade(doc map[string]any, override string) RunResult {
	det := profile.Detect(doc)
	p := profile.Select(g.Catalog, det, override)

	prereq := EvaluatePrerequisites(doc, p)
	if prereq.Blocked() {
		return RunResult{
			Report:    blockedReport(prereq),
			Detection: det,
			Profile:   p.Type,
		}
	}

	var findings []Finding
	var autoFailReasons []string
	caps := make(map[string]int)
	for _, c := range g.Registry.List() {
		if !c.Detect(doc) {
			continue
		}
		res := c.Validate(doc, p)
		findings = append(findings, res.Findings...)
		autoFailReasons = append(autoFailReasons, res.AutoFailReasons...)
		for cat, score := range res.CategoryScores {
			if existing, ok := caps[cat]; !ok || score < existing {
				caps[cat] = score
			}
		}
	}

	perCategory, pct := Score(findings, p, caps)
	report := Finalize(perCategory, pct, findings, autoFailReasons, prereq.Skipped)
	return RunResult{Report: report, Detection: det, Profile: p.Type}
}

// blockedReport builds the terminal report for a failed prerequisite
// gate: zero total, letter F, auto-fail, one finding and one reason per
// failed prerequisite.
func blockedReport(prereq PrereqResult) *GradeReport {
	reasons := make([]string, len(prereq.Failures))
	for i, f := range prereq.Failures {
		reasons[i] = fmt.Sprintf("%s: %s", f.RuleID, f.Message)
	}

	return &GradeReport{
		Total:                0,
		Letter:               "F",
		CompliancePct:        0,
		AutoFailTriggered:    true,
		CriticalIssues:       len(prereq.Failures),
		PerCategory:          map[string]int{},
		AutoFailReasons:      reasons,
		Findings:             prereq.Failures,
		SkippedPrerequisites: prereq.Skipped,
	}
}
