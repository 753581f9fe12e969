package middleware

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/authz"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
)

// RequireRoles gates a route on the caller holding one of the given roles in
// the company named by the :companySlug route param. The authz decision
// table drives both the verdict and the redirect target returned to the SPA.
func RequireRoles(profileService *service.ProfileService, roles ...domain.Role) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decide(c, profileService, authz.Input{
			RequiredRoles: roles,
		})
	}
}

// RequireSuperAdmin gates a route on the platform super-admin flag
func RequireSuperAdmin(profileService *service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decide(c, profileService, authz.Input{
			RequireSuperAdmin: true,
		})
	}
}

// RequireMember gates a route on any company membership
func RequireMember(profileService *service.ProfileService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		return decide(c, profileService, authz.Input{})
	}
}

func decide(c *fiber.Ctx, profileService *service.ProfileService, in authz.Input) error {
	in.CompanySlug = c.Params("companySlug")

	credentialID, ok := c.Locals("credential_id").(uuid.UUID)
	in.Authenticated = ok

	if ok {
		// Prefer the exact (company, credential) profile when the route names
		// a company; fall back to the cross-company search otherwise.
		var profile *domain.Profile
		var err error
		if in.CompanySlug != "" {
			profile, err = profileService.GetProfile(c.Context(), in.CompanySlug, credentialID)
		} else {
			profile, err = profileService.FindProfileForCredential(c.Context(), credentialID)
		}
		if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error":   true,
				"message": "failed to resolve profile",
			})
		}
		in.Profile = profile
	}

	decision := authz.Decide(in)
	if !decision.Allow {
		status := fiber.StatusForbidden
		if !in.Authenticated {
			status = fiber.StatusUnauthorized
		}
		return c.Status(status).JSON(fiber.Map{
			"error":       true,
			"message":     "access denied",
			"redirect_to": decision.RedirectTo,
		})
	}

	if in.Profile != nil {
		c.Locals("profile", in.Profile)
	}

	return c.Next()
}
