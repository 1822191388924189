package profile

// Built-in profile types.
const (
	TypeMultiTenantSaaS = "multi-tenant-saas"
	TypePublicREST      = "public-rest"
	TypeInternalService = "internal-service"
	TypeGenericREST     = "generic-rest"
)

// Scoring categories shared by the built-in profiles.
const (
	CategorySecurity = "security"
	CategoryTenancy  = "tenancy"
	CategoryEnvelope = "envelope"
	CategoryCaching  = "caching"
	CategoryNaming   = "naming"
)

// builtinProfiles returns the profiles the grader ships with. Order is
// significant: detection ties break toward earlier entries, and the
// generic profile last keeps it from shadowing stricter shapes.
func builtinProfiles() []*Profile {
	return []*Profile{
		{
			Name: "Multi-Tenant SaaS API",
			Type: TypeMultiTenantSaaS,
			Prerequisites: Prerequisites{
				RequiresAuthentication:     true,
				RequiresMultiTenantHeaders: true,
				RequiresAPIID:              true,
			},
			Rules: []Rule{
				{ID: "SEC-1", Weight: 10, Category: CategorySecurity},
				{ID: "SEC-2", Weight: 8, Category: CategorySecurity},
				{ID: "TEN-1", Weight: 10, Category: CategoryTenancy},
				{ID: "TEN-2", Weight: 8, Category: CategoryTenancy},
				{ID: "ENV-1", Weight: 6, Category: CategoryEnvelope},
				{ID: "ENV-2", Weight: 6, Category: CategoryEnvelope},
				{ID: "CACHE-1", Weight: 4, Category: CategoryCaching},
				{ID: "NAM-1", Weight: 4, Category: CategoryNaming},
				{ID: "NAM-2", Weight: 4, Category: CategoryNaming},
			},
			Priority: map[string]int{
				CategorySecurity: 30,
				CategoryTenancy:  25,
				CategoryEnvelope: 20,
				CategoryCaching:  10,
				CategoryNaming:   15,
			},
		},
		{
			Name: "Public REST API",
			Type: TypePublicREST,
			Prerequisites: Prerequisites{
				RequiresAuthentication: true,
			},
			Rules: []Rule{
				{ID: "SEC-1", Weight: 10, Category: CategorySecurity},
				{ID: "SEC-2", Weight: 8, Category: CategorySecurity},
				{ID: "ENV-1", Weight: 8, Category: CategoryEnvelope},
				{ID: "ENV-2", Weight: 6, Category: CategoryEnvelope},
				{ID: "CACHE-1", Weight: 6, Category: CategoryCaching},
				{ID: "NAM-1", Weight: 5, Category: CategoryNaming},
				{ID: "NAM-2", Weight: 5, Category: CategoryNaming},
			},
			Priority: map[string]int{
				CategorySecurity: 30,
				CategoryEnvelope: 30,
				CategoryCaching:  20,
				CategoryNaming:   20,
			},
		},
		{
			Name: "Internal Service API",
			Type: TypeInternalService,
			Prerequisites: Prerequisites{
				// Internal services authenticate at the mesh boundary;
				// nothing is required of the spec itself.
			},
			Rules: []Rule{
				{ID: "ENV-1", Weight: 8, Category: CategoryEnvelope},
				{ID: "ENV-2", Weight: 6, Category: CategoryEnvelope},
				{ID: "NAM-1", Weight: 6, Category: CategoryNaming},
				{ID: "NAM-2", Weight: 5, Category: CategoryNaming},
			},
			Priority: map[string]int{
				CategoryEnvelope: 50,
				CategoryNaming:   50,
			},
		},
		{
			// The default: most permissive, applies when detection is
			// uncertain or the detected type is unregistered.
			Name: "Generic REST API",
			Type: TypeGenericREST,
			Rules: []Rule{
				{ID: "SEC-1", Weight: 6, Category: CategorySecurity},
				{ID: "ENV-1", Weight: 6, Category: CategoryEnvelope},
				{ID: "NAM-1", Weight: 5, Category: CategoryNaming},
			},
			Priority: map[string]int{
				CategorySecurity: 35,
				CategoryEnvelope: 35,
				CategoryNaming:   30,
			},
		},
	}
}
