package profile

import (
	"strings"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/pointer"
)

// matchFloor is the minimum signature score required before a detection
// is considered a real match. Below it the default profile is reported
// with the raw best score as confidence.
const matchFloor = 0.3

// Signal is one weighted structural pattern a signature looks for.
type Signal struct {
	Name   string
	Weight int
	Match  func(doc map[string]any) bool
}

// Signature is the weighted signal set for one profile type. Declaration
// order in the signature table is the tie-breaker: first wins.
type Signature struct {
	Type    string
	Signals []Signal
}

// Reasoning carries the evidence behind a detection.
type Reasoning struct {
	MatchedPatterns []string `json:"matched_patterns"`
}

// DetectionResult is the output of profile detection: the detected type,
// a normalized confidence in [0,1], and the matched-signal evidence.
// Created once per grading run and never mutated.
type DetectionResult struct {
	DetectedProfile string    `json:"detected_profile"`
	Confidence      float64   `json:"confidence"`
	Reasoning       Reasoning `json:"reasoning"`
}

// Detect classifies a document against the known signatures. Pure and
// deterministic: the same document always yields the same profile and
// confidence.
func Detect(doc map[string]any) DetectionResult {
	best := DetectionResult{DetectedProfile: TypeGenericREST}
	for _, sig := range signatures() {
		total := 0
		matched := 0
		var evidence []string
		for _, s := range sig.Signals {
			total += s.Weight
			if s.Match(doc) {
				matched += s.Weight
				evidence = append(evidence, s.Name)
			}
		}
		if total == 0 {
			continue
		}
		score := float64(matched) / float64(total)
		// Strict greater-than keeps the first signature on ties.
		if score > best.Confidence {
			best = DetectionResult{
				DetectedProfile: sig.Type,
				Confidence:      score,
				Reasoning:       Reasoning{MatchedPatterns: evidence},
			}
		}
	}

	if best.Confidence < matchFloor {
		best.DetectedProfile = TypeGenericREST
	}
	return best
}

// signatures returns the fixed signature table for the built-in profiles.
func signatures() []Signature {
	return []Signature{
		{
			Type: TypeMultiTenantSaaS,
			Signals: []Signal{
				{Name: "tenant header parameter", Weight: 3, Match: HasTenantHeader},
				{Name: "security schemes declared", Weight: 2, Match: HasSecuritySchemes},
				{Name: "global security requirement", Weight: 1, Match: HasGlobalSecurity},
				{Name: "api identifier (info.x-api-id)", Weight: 1, Match: HasAPIID},
				{Name: "versioned /api path prefix", Weight: 1, Match: pathPrefixMatcher("/api/")},
			},
		},
		{
			Type: TypePublicREST,
			Signals: []Signal{
				{Name: "security schemes declared", Weight: 3, Match: HasSecuritySchemes},
				{Name: "global security requirement", Weight: 2, Match: HasGlobalSecurity},
				{Name: "https server", Weight: 2, Match: hasHTTPSServer},
				{Name: "paths declared", Weight: 1, Match: hasPaths},
			},
		},
		{
			Type: TypeInternalService,
			Signals: []Signal{
				{Name: "internal path prefix", Weight: 3, Match: pathPrefixMatcher("/internal")},
				{Name: "internal audience marker", Weight: 2, Match: hasInternalMarker},
			},
		},
	}
}

// ─── Structural signal matchers ──────────────────────────────────────────────

// tenantHeaderNames are the header parameter names that mark a
// multi-tenant API.
var tenantHeaderNames = []string{"x-tenant-id", "x-organization-id", "x-org-id"}

// HasSecuritySchemes reports whether the document declares any security
// scheme (OpenAPI 3 components or Swagger 2 securityDefinitions).
func HasSecuritySchemes(doc map[string]any) bool {
	for _, ptr := range []string{"/components/securitySchemes", "/securityDefinitions"} {
		if v, ok := pointer.Resolve(doc, ptr); ok {
			if m, ok := v.(map[string]any); ok && len(m) > 0 {
				return true
			}
		}
	}
	return false
}

// HasGlobalSecurity reports whether a top-level security requirement
// applies to the whole API.
func HasGlobalSecurity(doc map[string]any) bool {
	v, ok := pointer.Resolve(doc, "/security")
	if !ok {
		return false
	}
	seq, ok := v.([]any)
	return ok && len(seq) > 0
}

// HasTenantHeader reports whether any operation or shared component
// declares a tenant-scoping header parameter.
func HasTenantHeader(doc map[string]any) bool {
	if params, ok := pointer.Resolve(doc, "/components/parameters"); ok {
		if m, ok := params.(map[string]any); ok {
			for _, p := range m {
				if isTenantHeaderParam(p) {
					return true
				}
			}
		}
	}

	paths, ok := pointer.Resolve(doc, "/paths")
	if !ok {
		return false
	}
	pm, ok := paths.(map[string]any)
	if !ok {
		return false
	}
	for _, item := range pm {
		op, ok := item.(map[string]any)
		if !ok {
			continue
		}
		for _, v := range op {
			method, ok := v.(map[string]any)
			if !ok {
				continue
			}
			if params, ok := method["parameters"].([]any); ok {
				for _, p := range params {
					if isTenantHeaderParam(p) {
						return true
					}
				}
			}
		}
	}
	return false
}

func isTenantHeaderParam(p any) bool {
	m, ok := p.(map[string]any)
	if !ok {
		return false
	}
	if in, _ := m["in"].(string); in != "header" {
		return false
	}
	name, _ := m["name"].(string)
	for _, want := range tenantHeaderNames {
		if strings.EqualFold(name, want) {
			return true
		}
	}
	return false
}

// HasAPIID reports whether the document carries a stable API identifier.
func HasAPIID(doc map[string]any) bool {
	v, ok := pointer.Resolve(doc, "/info/x-api-id")
	if !ok {
		return false
	}
	s, _ := v.(string)
	return s != ""
}

func hasPaths(doc map[string]any) bool {
	v, ok := pointer.Resolve(doc, "/paths")
	if !ok {
		return false
	}
	m, ok := v.(map[string]any)
	return ok && len(m) > 0
}

func pathPrefixMatcher(prefix string) func(doc map[string]any) bool {
	return func(doc map[string]any) bool {
		v, ok := pointer.Resolve(doc, "/paths")
		if !ok {
			return false
		}
		m, ok := v.(map[string]any)
		if !ok {
			return false
		}
		for path := range m {
			if strings.HasPrefix(path, prefix) {
				return true
			}
		}
		return false
	}
}

func hasHTTPSServer(doc map[string]any) bool {
	v, ok := pointer.Resolve(doc, "/servers")
	if !ok {
		return false
	}
	servers, ok := v.([]any)
	if !ok {
		return false
	}
	for _, s := range servers {
		if m, ok := s.(map[string]any); ok {
			if url, _ := m["url"].(string); strings.HasPrefix(url, "https://") {
				return true
			}
		}
	}
	return false
}

func hasInternalMarker(doc map[string]any) bool {
	v, ok := pointer.Resolve(doc, "/info/x-audience")
	if !ok {
		return false
	}
	s, _ := v.(string)
	return strings.EqualFold(s, "internal")
}
