package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

type SignupHandler struct {
	identityService *service.IdentityService
	registryService *service.RegistryService
	validator       *validator.Validator
}

func NewSignupHandler(identityService *service.IdentityService, registryService *service.RegistryService, validator *validator.Validator) *SignupHandler {
	return &SignupHandler{
		identityService: identityService,
		registryService: registryService,
		validator:       validator,
	}
}

// SignupRequest represents the request body for the combined signup flow
type SignupRequest struct {
	Name       string `json:"name" validate:"required,min=2,max=255"`
	Email      string `json:"email" validate:"required,email"`
	Password   string `json:"password" validate:"required,min=6"`
	AccessCode string `json:"access_code" validate:"required"`
	// CompanySlug is set when signup was reached through a company-specific
	// URL; the access code must then belong to that company.
	CompanySlug string `json:"company_slug" validate:"omitempty,min=1,max=100"`
}

// Signup runs the combined create-or-link flow: a fresh email gets a new
// credential, a known email (with the right password) gets this company
// linked to its existing credential.
// POST /api/v1/auth/signup
func (h *SignupHandler) Signup(c *fiber.Ctx) error {
	var req SignupRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	profile, err := h.identityService.SignUp(c.Context(), req.Name, req.Email, req.Password, req.AccessCode, req.CompanySlug)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Account created successfully",
		"profile": profile,
	})
}

// LinkRequest represents the request body for linking the authenticated
// credential to an additional company
type LinkRequest struct {
	AccessCode  string `json:"access_code" validate:"required"`
	CompanySlug string `json:"company_slug" validate:"omitempty,min=1,max=100"`
}

// Link adds a company profile to the already-authenticated credential
// POST /api/v1/auth/link
func (h *SignupHandler) Link(c *fiber.Ctx) error {
	credentialID, ok := c.Locals("credential_id").(uuid.UUID)
	if !ok {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	var req LinkRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	profile, err := h.identityService.LinkExistingIdentity(c.Context(), credentialID, req.AccessCode, req.CompanySlug)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Company linked successfully",
		"profile": profile,
	})
}

// VerifyCodeRequest represents the request body for a pre-signup code check
type VerifyCodeRequest struct {
	AccessCode string `json:"access_code" validate:"required"`
}

// VerifyCode resolves an access code without creating anything, so the
// signup form can show which company and role a key grants.
// POST /api/v1/auth/verify-code
func (h *SignupHandler) VerifyCode(c *fiber.Ctx) error {
	var req VerifyCodeRequest
	if err := c.BodyParser(&req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request body",
		})
	}

	if err := h.validator.Validate(req); err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": err.Error(),
		})
	}

	resolved, err := h.registryService.ResolveAccessCode(c.Context(), req.AccessCode)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(resolved)
}
