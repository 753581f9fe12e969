package repository

import (
	"context"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

type CompanyRepository interface {
	// Create inserts the company, failing with domain.ErrCompanyExists if the
	// slug is taken and domain.ErrCodeTaken if a generated access code
	// collides with another company's. The check and the insert are a single
	// atomic operation, not a read followed by a write.
	Create(ctx context.Context, company *domain.Company) error
	GetBySlug(ctx context.Context, slug string) (*domain.Company, error)
	// GetByRoleCode finds the company whose code for the given role equals
	// code, or domain.ErrInvalidCode if none does.
	GetByRoleCode(ctx context.Context, role domain.Role, code string) (*domain.Company, error)
	Delete(ctx context.Context, slug string) error
	List(ctx context.Context, limit, offset int) ([]*domain.Company, int, error)
}
