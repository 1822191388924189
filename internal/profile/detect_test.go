package profile

import (
	"reflect"
	"testing"
)

func multiTenantDoc() map[string]any {
	return map[string]any{
		"info": map[string]any{"x-api-id": "abc-123"},
		"security": []any{
			map[string]any{"bearerAuth": []any{}},
		},
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"bearerAuth": map[string]any{"type": "http", "scheme": "bearer"},
			},
			"parameters": map[string]any{
				"TenantHeader": map[string]any{
					"name": "X-Tenant-ID", "in": "header", "required": true,
				},
			},
		},
		"paths": map[string]any{
			"/api/v1/users": map[string]any{},
		},
	}
}

func TestDetect_MultiTenantSignalsAllMatch(t *testing.T) {
	got := Detect(multiTenantDoc())
	if got.DetectedProfile != TypeMultiTenantSaaS {
		t.Errorf("profile = %s, want %s", got.DetectedProfile, TypeMultiTenantSaaS)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
	if len(got.Reasoning.MatchedPatterns) != 5 {
		t.Errorf("matched patterns = %v, want all five", got.Reasoning.MatchedPatterns)
	}
}

func TestDetect_IsDeterministic(t *testing.T) {
	doc := multiTenantDoc()
	first := Detect(doc)
	second := Detect(doc)
	if !reflect.DeepEqual(first, second) {
		t.Errorf("repeated detection diverged:\n%+v\n%+v", first, second)
	}
}

func TestDetect_PublicREST(t *testing.T) {
	doc := map[string]any{
		"security": []any{map[string]any{"apiKey": []any{}}},
		"components": map[string]any{
			"securitySchemes": map[string]any{
				"apiKey": map[string]any{"type": "apiKey"},
			},
		},
		"servers": []any{map[string]any{"url": "https://api.example.com"}},
		"paths":   map[string]any{"/widgets": map[string]any{}},
	}
	got := Detect(doc)
	if got.DetectedProfile != TypePublicREST {
		t.Errorf("profile = %s, want %s", got.DetectedProfile, TypePublicREST)
	}
	if got.Confidence != 1.0 {
		t.Errorf("confidence = %v, want 1.0", got.Confidence)
	}
}

func TestDetect_InternalService(t *testing.T) {
	doc := map[string]any{
		"info":  map[string]any{"x-audience": "internal"},
		"paths": map[string]any{"/internal/health": map[string]any{}},
	}
	got := Detect(doc)
	if got.DetectedProfile != TypeInternalService {
		t.Errorf("profile = %s, want %s", got.DetectedProfile, TypeInternalService)
	}
}

func TestDetect_BelowFloorFallsBackToGeneric(t *testing.T) {
	// Only "paths declared" matches anything: 1 of 8 public-rest weight.
	doc := map[string]any{"paths": map[string]any{"/users": map[string]any{}}}
	got := Detect(doc)
	if got.DetectedProfile != TypeGenericREST {
		t.Errorf("profile = %s, want %s (below match floor)", got.DetectedProfile, TypeGenericREST)
	}
	if got.Confidence >= matchFloor {
		t.Errorf("confidence = %v, expected below floor %v", got.Confidence, matchFloor)
	}
}

func TestDetect_EmptyDocument(t *testing.T) {
	got := Detect(map[string]any{})
	if got.DetectedProfile != TypeGenericREST || got.Confidence != 0 {
		t.Errorf("empty doc detection = %+v", got)
	}
}

func TestHasTenantHeader_InlineOperationParameter(t *testing.T) {
	doc := map[string]any{
		"paths": map[string]any{
			"/orders": map[string]any{
				"get": map[string]any{
					"parameters": []any{
						map[string]any{"name": "x-organization-id", "in": "header"},
					},
				},
			},
		},
	}
	if !HasTenantHeader(doc) {
		t.Error("inline operation tenant header not recognized")
	}
}

func TestHasTenantHeader_QueryParamDoesNotCount(t *testing.T) {
	doc := map[string]any{
		"components": map[string]any{
			"parameters": map[string]any{
				"Tenant": map[string]any{"name": "x-tenant-id", "in": "query"},
			},
		},
	}
	if HasTenantHeader(doc) {
		t.Error("a query parameter must not count as a tenant header")
	}
}

func TestHasAPIID_EmptyStringDoesNotCount(t *testing.T) {
	doc := map[string]any{"info": map[string]any{"x-api-id": ""}}
	if HasAPIID(doc) {
		t.Error("empty x-api-id must not count")
	}
}
