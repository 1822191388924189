package grading

// GradeReport is the terminal output of a grading run. Immutable once
// assembled.
type GradeReport struct {
	Total                int            `json:"total"`
	Letter               string         `json:"letter"`
	CompliancePct        float64        `json:"compliance_pct"`
	AutoFailTriggered    bool           `json:"auto_fail_triggered"`
	CriticalIssues       int            `json:"critical_issues"`
	PerCategory          map[string]int `json:"per_category"`
	AutoFailReasons      []string       `json:"auto_fail_reasons,omitempty"`
	Findings             []Finding      `json:"findings"`
	SkippedPrerequisites []string       `json:"skipped_prerequisites,omitempty"`
}

// letterBreakpoints maps percentage floors to letter grades, highest
// first.
var letterBreakpoints = []struct {
	floor  float64
	letter string
}{
	{97, "A+"},
	{93, "A"},
	{90, "A-"},
	{87, "B+"},
	{83, "B"},
	{80, "B-"},
	{70, "C"},
	{60, "D"},
}

// Letter maps a compliance percentage to its letter grade.
func Letter(pct float64) string {
	for _, bp := range letterBreakpoints {
		if pct >= bp.floor {
			return bp.letter
		}
	}
	return "F"
}

// Finalize assembles the report. Pure, no side effects. Any auto-fail
// reason forces the letter to F regardless of the computed percentage;
// the percentage itself is preserved so consumers can still see how far
// the document was from passing.
func Finalize(perCategory map[string]int, pct float64, findings []Finding, autoFailReasons, skipped []string) *GradeReport {
	total := 0
	for _, score := range perCategory {
		total += score
	}

	critical := 0
	for _, f := range findings {
		if f.Severity == SeverityError {
			critical++
		}
	}

	letter := Letter(pct)
	autoFail := len(autoFailReasons) > 0
	if autoFail {
		letter = "F"
	}

	return &GradeReport{
		Total:                total,
		Letter:               letter,
		CompliancePct:        pct,
		AutoFailTriggered:    autoFail,
		CriticalIssues:       critical,
		PerCategory:          perCategory,
		AutoFailReasons:      autoFailReasons,
		Findings:             findings,
		SkippedPrerequisites: skipped,
	}
}
