// Package profile models the API shapes the grader knows how to judge.
//
// A profile names the prerequisites a document must satisfy before full
// scoring, the weighted rules that apply to it, and the per-category point
// budget. Profiles live in a catalog loaded once per grading run and are
// read-only thereafter.
package profile

import (
	"fmt"
	"os"
	"strings"

	"gopkg.in/yaml.v3"
)

// Prerequisites declares which foundational invariants a profile requires.
// A false field means the check is skipped, not passed.
type Prerequisites struct {
	RequiresAuthentication     bool `json:"requires_authentication" yaml:"requires_authentication"`
	RequiresMultiTenantHeaders bool `json:"requires_multi_tenant_headers" yaml:"requires_multi_tenant_headers"`
	RequiresAPIID              bool `json:"requires_api_id" yaml:"requires_api_id"`
}

// Rule binds a rule ID to its scoring weight and category. Category is
// explicit at registration time; the rule-ID prefix heuristic is a
// fallback only (see Catalog.Validate).
type Rule struct {
	ID       string `json:"rule_id" yaml:"rule_id"`
	Weight   int    `json:"weight" yaml:"weight"`
	Category string `json:"category" yaml:"category"`
}

// Profile is one named API shape.
type Profile struct {
	Name          string         `json:"name" yaml:"name"`
	Type          string         `json:"type" yaml:"type"`
	Prerequisites Prerequisites  `json:"prerequisites" yaml:"prerequisites"`
	Rules         []Rule         `json:"rules" yaml:"rules"`
	Priority      map[string]int `json:"priority" yaml:"priority"` // category → max points
}

// RuleByID looks up a profile rule. Findings with no matching rule are
// carried through the scorer unweighted.
func (p *Profile) RuleByID(id string) (Rule, bool) {
	for _, r := range p.Rules {
		if r.ID == id {
			return r, true
		}
	}
	return Rule{}, false
}

// Catalog is an ordered, type-keyed registry of profiles. Order matters
// for detection tie-breaking: the first registered signature wins.
type Catalog struct {
	ordered     []*Profile
	byType      map[string]*Profile
	defaultType string
}

// NewCatalog builds the built-in catalog. The default profile is the most
// permissive one: a low-confidence classification must never silently
// apply an overly strict rule set.
func NewCatalog() *Catalog {
	c := &Catalog{byType: make(map[string]*Profile), defaultType: TypeGenericREST}
	for _, p := range builtinProfiles() {
		c.Register(p)
	}
	return c
}

// Register adds or replaces a profile by type.
func (c *Catalog) Register(p *Profile) {
	if existing, ok := c.byType[p.Type]; ok {
		for i, e := range c.ordered {
			if e == existing {
				c.ordered[i] = p
				break
			}
		}
	} else {
		c.ordered = append(c.ordered, p)
	}
	c.byType[p.Type] = p
}

// Default returns the fallback profile.
func (c *Catalog) Default() *Profile {
	return c.byType[c.defaultType]
}

// ByType returns the profile registered for the given type.
func (c *Catalog) ByType(t string) (*Profile, bool) {
	p, ok := c.byType[t]
	return p, ok
}

// List returns all registered profiles in registration order.
func (c *Catalog) List() []*Profile {
	out := make([]*Profile, len(c.ordered))
	copy(out, c.ordered)
	return out
}

// Validate checks each rule's declared category against the rule-ID
// prefix heuristic and returns a warning per mismatch. This runs at
// catalog load time so misconfigured profiles surface before any grading
// run relies on the runtime fallback.
func (c *Catalog) Validate() []string {
	var warnings []string
	for _, p := range c.ordered {
		for _, r := range p.Rules {
			if r.Category == "" {
				warnings = append(warnings, fmt.Sprintf(
					"profile %s: rule %s has no category (prefix heuristic will apply)", p.Type, r.ID))
				continue
			}
			if heuristic := CategoryFromRuleID(r.ID, categories(p)); heuristic != "" && heuristic != r.Category {
				warnings = append(warnings, fmt.Sprintf(
					"profile %s: rule %s declares category %q but its prefix suggests %q",
					p.Type, r.ID, r.Category, heuristic))
			}
		}
	}
	return warnings
}

// CategoryFromRuleID maps a rule ID to a category by comparing the ID's
// uppercase prefix (the letters before the first dash) against the first
// three letters of each known category. Fallback only; explicit
// categories always win.
func CategoryFromRuleID(ruleID string, known []string) string {
	prefix, _, _ := strings.Cut(ruleID, "-")
	if len(prefix) < 3 {
		return ""
	}
	for _, cat := range known {
		if len(cat) >= 3 && strings.EqualFold(prefix[:3], cat[:3]) {
			return cat
		}
	}
	return ""
}

func categories(p *Profile) []string {
	out := make([]string, 0, len(p.Priority))
	for cat := range p.Priority {
		out = append(out, cat)
	}
	return out
}

// LoadFile merges profiles from a YAML catalog file over the built-ins.
// The file holds a list of Profile records under a top-level "profiles"
// key. Loaded profiles replace built-ins with the same type.
func (c *Catalog) LoadFile(path string) error {
	data, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("reading profile catalog %s: %w", path, err)
	}

	var file struct {
		Profiles []*Profile `yaml:"profiles"`
	}
	if err := yaml.Unmarshal(data, &file); err != nil {
		return fmt.Errorf("parsing profile catalog %s: %w", path, err)
	}

	for _, p := range file.Profiles {
		if p.Type == "" {
			return fmt.Errorf("profile catalog %s: profile %q has no type", path, p.Name)
		}
		c.Register(p)
	}
	return nil
}
