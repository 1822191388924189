package grading

import (
	"testing"
)

func TestLetter_Breakpoints(t *testing.T) {
	cases := []struct {
		pct  float64
		want string
	}{
		{100, "A+"}, {97, "A+"}, {96.9, "A"}, {93, "A"}, {90, "A-"},
		{87, "B+"}, {83, "B"}, {80, "B-"}, {79.9, "C"}, {70, "C"},
		{60, "D"}, {59.9, "F"}, {0, "F"},
	}
	for _, c := range cases {
		if got := Letter(c.pct); got != c.want {
			t.Errorf("Letter(%v) = %s, want %s", c.pct, got, c.want)
		}
	}
}

func TestFinalize_SumsCategoryScores(t *testing.T) {
	report := Finalize(map[string]int{"security": 25, "naming": 30}, 78.6, nil, nil, nil)
	if report.Total != 55 {
		t.Errorf("total = %d, want 55", report.Total)
	}
	if report.Letter != "C" {
		t.Errorf("letter = %s, want C", report.Letter)
	}
	if report.AutoFailTriggered {
		t.Error("no auto-fail reasons were given")
	}
}

func TestFinalize_AutoFailForcesFButKeepsPct(t *testing.T) {
	report := Finalize(map[string]int{"security": 30}, 95.0, nil, []string{"hard violation"}, nil)
	if report.Letter != "F" {
		t.Errorf("letter = %s, want F on auto-fail", report.Letter)
	}
	if !report.AutoFailTriggered {
		t.Error("AutoFailTriggered should be set")
	}
	if report.CompliancePct != 95.0 {
		t.Errorf("pct = %v, want the computed value preserved", report.CompliancePct)
	}
}

func TestFinalize_CountsErrorFindingsAsCritical(t *testing.T) {
	findings := []Finding{
		{RuleID: "SEC-1", Severity: SeverityError},
		{RuleID: "NAM-1", Severity: SeverityWarn},
		{RuleID: "ENV-1", Severity: SeverityError},
	}
	report := Finalize(map[string]int{}, 0, findings, nil, nil)
	if report.CriticalIssues != 2 {
		t.Errorf("critical = %d, want 2 (warns excluded)", report.CriticalIssues)
	}
}
