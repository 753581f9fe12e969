package handler

import (
	"net/http"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

type JoinRequestHandler struct {
	joinRequestService *service.JoinRequestService
	validator          *validator.Validator
}

func NewJoinRequestHandler(joinRequestService *service.JoinRequestService, validator *validator.Validator) *JoinRequestHandler {
	return &JoinRequestHandler{
		joinRequestService: joinRequestService,
		validator:          validator,
	}
}

// SubmitJoinRequest represents the request body for a join request
type SubmitJoinRequest struct {
	CompanySlug   string `json:"company_slug" validate:"required,min=1,max=100"`
	Name          string `json:"name" validate:"required,min=2,max=255"`
	Email         string `json:"email" validate:"required,email"`
	RequestedRole string `json:"requested_role" validate:"required,oneof=employee manager admin"`
	ApproverEmail string `json:"approver_email" validate:"required,email"`
}

// Submit creates a pending join request. When the caller is authenticated,
// the credential id rides along so approval can bind the profile directly.
// POST /api/v1/join-requests
func (h *JoinRequestHandler) Submit(c *fiber.Ctx) error {
	var req SubmitJoinRequest
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

	in := service.SubmitInput{
		CompanySlug:   req.CompanySlug,
		Name:          req.Name,
		Email:         req.Email,
		RequestedRole: domain.Role(req.RequestedRole),
		ApproverEmail: req.ApproverEmail,
	}

	if credentialID, ok := c.Locals("credential_id").(uuid.UUID); ok {
		in.CredentialID = &credentialID
	}

	request, err := h.joinRequestService.Submit(c.Context(), in)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(http.StatusCreated).JSON(fiber.Map{
		"message": "Join request submitted",
		"request": request,
	})
}

// ListPending lists pending requests addressed to the authenticated approver
// GET /api/v1/join-requests/pending
func (h *JoinRequestHandler) ListPending(c *fiber.Ctx) error {
	approverEmail, ok := c.Locals("email").(string)
	if !ok || approverEmail == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	requests, err := h.joinRequestService.ListPendingFor(c.Context(), approverEmail)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"requests": requests,
	})
}

// Approve converts a pending request into a company profile. Only the
// approver the request is addressed to may do this.
// POST /api/v1/join-requests/:id/approve
func (h *JoinRequestHandler) Approve(c *fiber.Ctx) error {
	approverEmail, ok := c.Locals("email").(string)
	if !ok || approverEmail == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request id",
		})
	}

	profile, err := h.joinRequestService.Approve(c.Context(), id, approverEmail)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request approved",
		"profile": profile,
	})
}

// Reject discards a pending request. Same approver gate as Approve.
// POST /api/v1/join-requests/:id/reject
func (h *JoinRequestHandler) Reject(c *fiber.Ctx) error {
	approverEmail, ok := c.Locals("email").(string)
	if !ok || approverEmail == "" {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "Unauthorized",
		})
	}

	id, err := uuid.Parse(c.Params("id"))
	if err != nil {
		return c.Status(http.StatusBadRequest).JSON(fiber.Map{
			"error":   true,
			"message": "Invalid request id",
		})
	}

	if err := h.joinRequestService.Reject(c.Context(), id, approverEmail); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Request rejected",
	})
}
