// Package authz holds the access decision used to gate protected resources.
// Decide is pure: the same inputs always map to exactly one outcome, and no
// I/O happens here, so the same table backs both server-side enforcement and
// redirect computation.
package authz

import (
	"fmt"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

// Input describes one access attempt.
type Input struct {
	// Authenticated reports whether a credential is logged in at all.
	Authenticated bool
	// Profile is the resolved company profile, nil when the credential has
	// none yet (mid-onboarding).
	Profile *domain.Profile
	// CompanySlug is the company implied by the requested resource's route,
	// "" when the resource is not company-scoped.
	CompanySlug string
	// RequiredRoles is the resource's allowed role set; empty means any
	// authenticated company member.
	RequiredRoles []domain.Role
	// RequireSuperAdmin restricts the resource to platform super-admins.
	RequireSuperAdmin bool
}

// Decision is the single outcome of a guard evaluation.
type Decision struct {
	Allow      bool
	RedirectTo string
}

const landingPath = "/"

// Decide evaluates the decision table top to bottom; the first matching rule
// wins.
func Decide(in Input) Decision {
	// 1. Not authenticated: company-specific login when the route names a
	// company, otherwise the landing page.
	if !in.Authenticated {
		if in.CompanySlug != "" {
			return Decision{RedirectTo: LoginPath(in.CompanySlug)}
		}
		return Decision{RedirectTo: landingPath}
	}

	// 2. Authenticated but no profile anywhere: mid-onboarding, back to
	// landing to finish signup.
	if in.Profile == nil {
		return Decision{RedirectTo: landingPath}
	}

	// 3. Super-admin surface without the flag.
	if in.RequireSuperAdmin && !in.Profile.IsSuperAdmin {
		return Decision{RedirectTo: landingPath}
	}

	// 4. Role-restricted resource the profile's role is not part of: send
	// the user to their own dashboard instead.
	if len(in.RequiredRoles) > 0 && !roleAllowed(in.Profile.Role, in.RequiredRoles) {
		return Decision{RedirectTo: DashboardPath(in.Profile)}
	}

	// 5. Allow.
	return Decision{Allow: true}
}

func roleAllowed(role domain.Role, allowed []domain.Role) bool {
	for _, r := range allowed {
		if r == role {
			return true
		}
	}
	return false
}

// DashboardPath maps a profile to its home dashboard. This is the one place
// the role-to-destination table lives; every redirect goes through it.
// Unrecognized roles fall back to the company login.
func DashboardPath(profile *domain.Profile) string {
	if profile.IsSuperAdmin {
		return "/superadmin/dashboard"
	}

	switch profile.Role {
	case domain.RoleAdmin:
		return fmt.Sprintf("/%s/admin/dashboard", profile.CompanySlug)
	case domain.RoleManager:
		return fmt.Sprintf("/%s/manager/dashboard", profile.CompanySlug)
	case domain.RoleEmployee:
		return fmt.Sprintf("/%s/dashboard", profile.CompanySlug)
	}

	return LoginPath(profile.CompanySlug)
}

// LoginPath is the company-scoped login surface.
func LoginPath(companySlug string) string {
	return fmt.Sprintf("/%s/login", companySlug)
}
