package handler

import (
	"errors"
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/authz"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
)

type ProfileHandler struct {
	profileService *service.ProfileService
}

func NewProfileHandler(profileService *service.ProfileService) *ProfileHandler {
	return &ProfileHandler{profileService: profileService}
}

// GetMe resolves the authenticated credential's profile across all
// companies. A credential without a profile gets a 200 with a null profile;
// that is the normal mid-onboarding state, not an error.
// GET /api/v1/users/me
func (h *ProfileHandler) GetMe(c *fiber.Ctx) error {
	credentialID, ok := c.Locals("credential_id").(uuid.UUID)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	profile, err := h.profileService.FindProfileForCredential(c.Context(), credentialID)
	if err != nil {
		if errors.Is(err, domain.ErrProfileNotFound) {
			return c.JSON(fiber.Map{
				"profile": nil,
			})
		}
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":   profile,
		"dashboard": authz.DashboardPath(profile),
	})
}

// GetMyProfileIn resolves the profile for an explicit company, for callers
// whose route already names the company. This avoids the arbitrary pick the
// cross-company search makes for multi-company credentials.
// GET /api/v1/companies/:companySlug/me
func (h *ProfileHandler) GetMyProfileIn(c *fiber.Ctx) error {
	credentialID, ok := c.Locals("credential_id").(uuid.UUID)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	profile, err := h.profileService.GetProfile(c.Context(), c.Params("companySlug"), credentialID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"profile":   profile,
		"dashboard": authz.DashboardPath(profile),
	})
}
