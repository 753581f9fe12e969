package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

type CompanyHandler struct {
	registryService *service.RegistryService
	profileService  *service.ProfileService
	validator       *validator.Validator
}

func NewCompanyHandler(registryService *service.RegistryService, profileService *service.ProfileService, validator *validator.Validator) *CompanyHandler {
	return &CompanyHandler{
		registryService: registryService,
		profileService:  profileService,
		validator:       validator,
	}
}

// CreateCompanyRequest represents the request body for creating a company
type CreateCompanyRequest struct {
	Name string `json:"name" validate:"required,min=2,max=255"`
}

// CreateCompany creates a company with fresh license codes (super-admin only)
// POST /api/v1/superadmin/companies
func (h *CompanyHandler) CreateCompany(c *fiber.Ctx) error {
	var req CreateCompanyRequest
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

	company, err := h.registryService.CreateCompany(c.Context(), req.Name)
	if err != nil {
		return respondError(c, err)
	}

	// The generated license codes ride back in the company payload; this is
	// the moment the operator copies them out.
	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Company created successfully",
		"company": company,
	})
}

// ListCompanies lists companies with pagination (super-admin only)
// GET /api/v1/superadmin/companies?limit=20&offset=0
func (h *CompanyHandler) ListCompanies(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	companies, total, err := h.registryService.ListCompanies(c.Context(), limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"companies": companies,
		"total":     total,
	})
}

// DeleteCompany removes a company and all its member profiles (super-admin
// only)
// DELETE /api/v1/superadmin/companies/:slug
func (h *CompanyHandler) DeleteCompany(c *fiber.Ctx) error {
	slug := c.Params("slug")

	if err := h.registryService.DeleteCompany(c.Context(), slug); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Company deleted successfully",
	})
}

// ListMembers lists one company's member profiles (admin dashboard)
// GET /api/v1/companies/:companySlug/members?limit=20&offset=0
func (h *CompanyHandler) ListMembers(c *fiber.Ctx) error {
	companySlug := c.Params("companySlug")
	limit := c.QueryInt("limit", 20)
	offset := c.QueryInt("offset", 0)

	profiles, total, err := h.profileService.ListCompanyMembers(c.Context(), companySlug, limit, offset)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"members": profiles,
		"total":   total,
	})
}
