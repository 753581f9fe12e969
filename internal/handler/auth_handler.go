package handler

import (
	"log"
	"net/http"

	"github.com/gofiber/fiber/v2"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

type AuthHandler struct {
	authService *service.AuthService
	validator   *validator.Validator
}

func NewAuthHandler(authService *service.AuthService, validator *validator.Validator) *AuthHandler {
	return &AuthHandler{
		authService: authService,
		validator:   validator,
	}
}

// LoginRequest represents the request body for login
type LoginRequest struct {
	Email    string `json:"email" validate:"required,email"`
	Password string `json:"password" validate:"required,min=6"`
}

// Login authenticates a credential and issues a session token
// POST /api/v1/auth/login
func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var req LoginRequest
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

	result, err := h.authService.Login(c.Context(), req.Email, req.Password)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(result)
}

// Logout revokes the presented session token
// POST /api/v1/auth/logout
func (h *AuthHandler) Logout(c *fiber.Ctx) error {
	token, _ := c.Locals("token").(string)
	claims, ok := c.Locals("claims").(*domain.Claims)
	if token == "" || !ok || claims.ExpiresAt == nil {
		return c.Status(http.StatusUnauthorized).JSON(fiber.Map{
			"error":   true,
			"message": "missing session token",
		})
	}

	if err := h.authService.Logout(c.Context(), token, claims.ExpiresAt.Time); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Logged out successfully",
	})
}

// ForgotPasswordRequest represents the request body for a reset email
type ForgotPasswordRequest struct {
	Email string `json:"email" validate:"required,email"`
}

// ForgotPassword triggers a password reset email
// POST /api/v1/auth/forgot-password
func (h *AuthHandler) ForgotPassword(c *fiber.Ctx) error {
	var req ForgotPasswordRequest
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

	// Same response whether or not the email exists, to avoid account
	// enumeration.
	if err := h.authService.SendPasswordReset(c.Context(), req.Email); err != nil {
		log.Printf("[AUTH] Password reset for %s not sent: %v", req.Email, err)
	}

	return c.JSON(fiber.Map{
		"message": "If the email is registered, a reset link has been sent",
	})
}
