// Package grading runs the scoring pipeline: prerequisite gating, rule
// checker execution, weighted category scoring, and grade finalization.
//
// The package never mutates the document: grading treats the tree as
// read-only. Patch application lives in internal/patch.
package grading

import (
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

// Severity classifies a finding.
type Severity string

const (
	SeverityError Severity = "error"
	SeverityWarn  Severity = "warn"
	SeverityInfo  Severity = "info"
)

// Finding is one rule violation surfaced by a checker. Immutable once
// emitted.
type Finding struct {
	RuleID   string   `json:"rule_id"`
	Severity Severity `json:"severity"`
	Message  string   `json:"message"`
	Path     string   `json:"pointer_path,omitempty"`
	Category string   `json:"category,omitempty"`
	Line     int      `json:"line,omitempty"`
}

// CheckerResult is what one rule checker returns. CategoryScores is an
// optional partial override: when a checker declares a score for a
// category it acts as a cap on the computed score, never a raise.
type CheckerResult struct {
	Findings        []Finding      `json:"findings"`
	CategoryScores  map[string]int `json:"category_scores,omitempty"`
	AutoFailReasons []string       `json:"auto_fail_reasons,omitempty"`
}

// Checker is the rule checker capability contract. Detect reports
// whether the checker applies to the document at all; Validate produces
// findings under the selected profile. The core does not know how any
// individual checker decides pass or fail; it only aggregates.
type Checker interface {
	ID() string
	Detect(doc map[string]any) bool
	Validate(doc map[string]any, p *profile.Profile) CheckerResult
}

// Registry is an immutable, ordered lookup table of checkers, built once
// at startup. Registration order is execution order.
type Registry struct {
	ordered []Checker
	byID    map[string]Checker
}

// NewRegistry builds a registry from the given checkers. Later checkers
// with a duplicate ID replace earlier ones in the lookup table but keep
// the original execution slot.
func NewRegistry(checkers ...Checker) *Registry {
	r := &Registry{byID: make(map[string]Checker, len(checkers))}
	for _, c := range checkers {
		if _, ok := r.byID[c.ID()]; !ok {
			r.ordered = append(r.ordered, c)
		}
		r.byID[c.ID()] = c
	}
	return r
}

// List returns checkers in execution order.
func (r *Registry) List() []Checker {
	out := make([]Checker, len(r.ordered))
	copy(out, r.ordered)
	return out
}

// ByID returns the checker registered under id.
func (r *Registry) ByID(id string) (Checker, bool) {
	c, ok := r.byID[id]
	return c, ok
}
