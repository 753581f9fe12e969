package handler

import (
	"errors"

	"github.com/gofiber/fiber/v2"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

// statusForError maps domain sentinel errors onto HTTP statuses. Anything
// unrecognized is treated as an upstream failure.
func statusForError(err error) int {
	switch {
	case errors.Is(err, domain.ErrCodeRequired),
		errors.Is(err, domain.ErrNameRequired):
		return fiber.StatusBadRequest
	case errors.Is(err, domain.ErrInvalidCode),
		errors.Is(err, domain.ErrProfileNotFound),
		errors.Is(err, domain.ErrCompanyNotFound),
		errors.Is(err, domain.ErrRequestNotFound):
		return fiber.StatusNotFound
	case errors.Is(err, domain.ErrCompanyExists),
		errors.Is(err, domain.ErrAlreadyMember),
		errors.Is(err, domain.ErrEmailInUse),
		errors.Is(err, domain.ErrCompanyMismatch),
		errors.Is(err, domain.ErrCodeTaken),
		errors.Is(err, domain.ErrRequestClosed):
		return fiber.StatusConflict
	case errors.Is(err, domain.ErrInvalidCredentials),
		errors.Is(err, domain.ErrWrongPasswordForExisting):
		return fiber.StatusUnauthorized
	case errors.Is(err, domain.ErrNotApprover):
		return fiber.StatusForbidden
	}
	return fiber.StatusInternalServerError
}

// respondError writes the standard error envelope. The wrapped message keeps
// the detail (which company, which email) the user needs to correct course.
func respondError(c *fiber.Ctx, err error) error {
	return c.Status(statusForError(err)).JSON(fiber.Map{
		"error":   true,
		"message": err.Error(),
	})
}
