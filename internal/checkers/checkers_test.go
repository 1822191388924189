package checkers

import (
	"testing"

	"github.com/SmackdabDevOps/smackdab-api-grader/internal/grading"
	"github.com/SmackdabDevOps/smackdab-api-grader/internal/profile"
)

func mustProfile(t *testing.T, typ string) *profile.Profile {
	t.Helper()
	p, ok := profile.NewCatalog().ByType(typ)
	if !ok {
		t.Fatalf("profile %s not registered", typ)
	}
	return p
}

func ruleIDs(findings []grading.Finding) []string {
	ids := make([]string, len(findings))
	for i, f := range findings {
		ids[i] = f.RuleID
	}
	return ids
}

func countRule(findings []grading.Finding, id string) int {
	n := 0
	for _, f := range findings {
		if f.RuleID == id {
			n++
		}
	}
	return n
}

// --- Security ---

func TestSecurity_NoSchemesDeclared(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	res := Security{}.Validate(map[string]any{}, p)
	if countRule(res.Findings, "SEC-1") != 1 {
		t.Errorf("findings = %v, want one SEC-1", ruleIDs(res.Findings))
	}
}

func TestSecurity_UnsecuredOperationWithoutGlobalDefault(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"components": map[string]any{
			"securitySchemes": map[string]any{"apiKey": map[string]any{"type": "apiKey"}},
		},
		"paths": map[string]any{
			"/open":   map[string]any{"get": map[string]any{}},
			"/closed": map[string]any{"get": map[string]any{"security": []any{}}},
		},
	}
	res := Security{}.Validate(doc, p)
	if countRule(res.Findings, "SEC-2") != 1 {
		t.Errorf("findings = %v, want SEC-2 for /open only", ruleIDs(res.Findings))
	}
}

func TestSecurity_GlobalSecurityCoversOperations(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"components": map[string]any{
			"securitySchemes": map[string]any{"apiKey": map[string]any{"type": "apiKey"}},
		},
		"security": []any{map[string]any{"apiKey": []any{}}},
		"paths": map[string]any{
			"/open": map[string]any{"get": map[string]any{}},
		},
	}
	res := Security{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, want none under a global requirement", ruleIDs(res.Findings))
	}
}

func TestSecurity_ProfileWithoutRuleStaysQuiet(t *testing.T) {
	p := mustProfile(t, profile.TypeInternalService)
	res := Security{}.Validate(map[string]any{}, p)
	if len(res.Findings) != 0 {
		t.Errorf("internal-service carries no SEC rules, got %v", ruleIDs(res.Findings))
	}
}

// --- Tenancy ---

func TestTenancy_MissingTenantHeader(t *testing.T) {
	p := mustProfile(t, profile.TypeMultiTenantSaaS)
	res := Tenancy{}.Validate(map[string]any{}, p)
	if countRule(res.Findings, "TEN-1") != 1 {
		t.Errorf("findings = %v, want one TEN-1", ruleIDs(res.Findings))
	}
}

func TestTenancy_OptionalTenantHeaderFlagged(t *testing.T) {
	p := mustProfile(t, profile.TypeMultiTenantSaaS)
	doc := map[string]any{
		"components": map[string]any{
			"parameters": map[string]any{
				"Tenant": map[string]any{"name": "X-Tenant-ID", "in": "header"},
			},
		},
	}
	res := Tenancy{}.Validate(doc, p)
	if countRule(res.Findings, "TEN-2") != 1 {
		t.Errorf("findings = %v, want one TEN-2 for the optional header", ruleIDs(res.Findings))
	}
}

func TestTenancy_RequiredTenantHeaderPasses(t *testing.T) {
	p := mustProfile(t, profile.TypeMultiTenantSaaS)
	doc := map[string]any{
		"components": map[string]any{
			"parameters": map[string]any{
				"Tenant": map[string]any{"name": "X-Tenant-ID", "in": "header", "required": true},
			},
		},
	}
	res := Tenancy{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, want none", ruleIDs(res.Findings))
	}
}

func TestTenancy_InlineOptionalHeaderFlagged(t *testing.T) {
	p := mustProfile(t, profile.TypeMultiTenantSaaS)
	doc := map[string]any{
		"components": map[string]any{
			"parameters": map[string]any{
				"Tenant": map[string]any{"name": "X-Tenant-ID", "in": "header", "required": true},
			},
		},
		"paths": map[string]any{
			"/orders": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "x-org-id", "in": "header"},
					},
				},
			},
		},
	}
	res := Tenancy{}.Validate(doc, p)
	if countRule(res.Findings, "TEN-2") != 1 {
		t.Errorf("findings = %v, want TEN-2 for the inline parameter", ruleIDs(res.Findings))
	}
}

// --- Envelope ---

func jsonResponse(properties ...string) map[string]any {
	props := map[string]any{}
	for _, name := range properties {
		props[name] = map[string]any{"type": "object"}
	}
	return map[string]any{
		"content": map[string]any{
			"application/json": map[string]any{
				"schema": map[string]any{"type": "object", "properties": props},
			},
		},
	}
}

func TestEnvelope_SuccessWithoutDataProperty(t *testing.T) {
	p := mustProfile(t, profile.TypeInternalService)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{"200": jsonResponse("items")},
				},
			},
		},
	}
	res := Envelope{}.Validate(doc, p)
	if countRule(res.Findings, "ENV-1") != 1 {
		t.Errorf("findings = %v, want one ENV-1", ruleIDs(res.Findings))
	}
}

func TestEnvelope_EnvelopedResponsesPass(t *testing.T) {
	p := mustProfile(t, profile.TypeInternalService)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": jsonResponse("data"),
						"404": jsonResponse("error"),
					},
				},
			},
		},
	}
	res := Envelope{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, want none", ruleIDs(res.Findings))
	}
}

func TestEnvelope_ErrorResponseWithoutErrorProperty(t *testing.T) {
	p := mustProfile(t, profile.TypeInternalService)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{"500": jsonResponse("message")},
				},
			},
		},
	}
	res := Envelope{}.Validate(doc, p)
	if countRule(res.Findings, "ENV-2") != 1 {
		t.Errorf("findings = %v, want one ENV-2", ruleIDs(res.Findings))
	}
}

func TestEnvelope_NoContentAnd204Exempt(t *testing.T) {
	p := mustProfile(t, profile.TypeInternalService)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"delete": map[string]any{
					"responses": map[string]any{
						"204": map[string]any{"description": "deleted"},
					},
				},
			},
		},
	}
	res := Envelope{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, 204 and schema-less responses are exempt", ruleIDs(res.Findings))
	}
}

// --- Caching ---

func TestCaching_GetWithoutCacheHeaders(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"get":  map[string]any{"responses": map[string]any{"200": map[string]any{}}},
				"post": map[string]any{"responses": map[string]any{"200": map[string]any{}}},
			},
		},
	}
	res := Caching{}.Validate(doc, p)
	// Only the GET is checked.
	if countRule(res.Findings, "CACHE-1") != 1 {
		t.Errorf("findings = %v, want one CACHE-1", ruleIDs(res.Findings))
	}
}

func TestCaching_ETagHeaderSatisfies(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/things": map[string]any{
				"get": map[string]any{
					"responses": map[string]any{
						"200": map[string]any{
							"headers": map[string]any{"ETag": map[string]any{}},
						},
					},
				},
			},
		},
	}
	res := Caching{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, want none", ruleIDs(res.Findings))
	}
}

// --- Naming ---

func TestNaming_NonKebabSegment(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/userProfiles/{id}": map[string]any{},
		},
	}
	res := Naming{}.Validate(doc, p)
	if countRule(res.Findings, "NAM-1") != 1 {
		t.Errorf("findings = %v, want one NAM-1", ruleIDs(res.Findings))
	}
}

func TestNaming_OneFindingPerPath(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/BadOne/Bad_Two": map[string]any{},
		},
	}
	res := Naming{}.Validate(doc, p)
	if countRule(res.Findings, "NAM-1") != 1 {
		t.Errorf("findings = %v, a path reports its case violation once", ruleIDs(res.Findings))
	}
}

func TestNaming_TemplateParametersExempt(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/users/{userId}/orders": map[string]any{},
		},
	}
	res := Naming{}.Validate(doc, p)
	if len(res.Findings) != 0 {
		t.Errorf("findings = %v, template segments are exempt", ruleIDs(res.Findings))
	}
}

func TestNaming_TrailingSlashAndEmptySegment(t *testing.T) {
	p := mustProfile(t, profile.TypePublicREST)
	doc := map[string]any{
		"paths": map[string]any{
			"/users/":    map[string]any{},
			"/a//b":      map[string]any{},
			"/untainted": map[string]any{},
		},
	}
	res := Naming{}.Validate(doc, p)
	if countRule(res.Findings, "NAM-2") != 2 {
		t.Errorf("findings = %v, want two NAM-2", ruleIDs(res.Findings))
	}
}

// --- registration ---

func TestAll_RegistersEveryChecker(t *testing.T) {
	r := grading.NewRegistry(All()...)
	want := []string{"security", "tenancy", "envelope", "caching", "naming"}
	list := r.List()
	if len(list) != len(want) {
		t.Fatalf("registered %d checkers, want %d", len(list), len(want))
	}
	for i, id := range want {
		if list[i].ID() != id {
			t.Errorf("checker[%d] = %s, want %s", i, list[i].ID(), id)
		}
	}
}
