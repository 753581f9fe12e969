package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

type companyRepository struct {
	db *sqlx.DB
}

// NewCompanyRepository creates a new PostgreSQL company repository
func NewCompanyRepository(db *sqlx.DB) repository.CompanyRepository {
	return &companyRepository{db: db}
}

// Create inserts a new company. The unique constraints on slug and on both
// code columns make the existence check atomic with the insert.
func (r *companyRepository) Create(ctx context.Context, company *domain.Company) error {
	query := `
		INSERT INTO companies (
			slug, name, manager_code, employee_code, subscription_status, created_at
		) VALUES (
			:slug, :name, :manager_code, :employee_code, :subscription_status, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, company)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			if pqErr.Constraint == "companies_pkey" {
				return fmt.Errorf("company %q: %w", company.Slug, domain.ErrCompanyExists)
			}
			return fmt.Errorf("company %q: %w", company.Slug, domain.ErrCodeTaken)
		}
		return fmt.Errorf("failed to create company: %w", err)
	}

	return nil
}

// GetBySlug retrieves a company by its slug
func (r *companyRepository) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	query := `
		SELECT slug, name, manager_code, employee_code, subscription_status, created_at
		FROM companies
		WHERE slug = $1`

	var company domain.Company
	err := r.db.GetContext(ctx, &company, query, slug)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, fmt.Errorf("company %q: %w", slug, domain.ErrCompanyNotFound)
		}
		return nil, fmt.Errorf("failed to get company by slug: %w", err)
	}

	return &company, nil
}

// GetByRoleCode finds the company holding the given code for the given role.
// Each call is a single read-only query against one code column.
func (r *companyRepository) GetByRoleCode(ctx context.Context, role domain.Role, code string) (*domain.Company, error) {
	var column string
	switch role {
	case domain.RoleManager:
		column = "manager_code"
	case domain.RoleEmployee:
		column = "employee_code"
	default:
		return nil, fmt.Errorf("role %q has no access code: %w", role, domain.ErrInvalidCode)
	}

	query := fmt.Sprintf(`
		SELECT slug, name, manager_code, employee_code, subscription_status, created_at
		FROM companies
		WHERE %s = $1`, column)

	var company domain.Company
	err := r.db.GetContext(ctx, &company, query, code)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCode
		}
		return nil, fmt.Errorf("failed to look up access code: %w", err)
	}

	return &company, nil
}

// Delete removes a company record. Profiles are not cascaded.
func (r *companyRepository) Delete(ctx context.Context, slug string) error {
	query := `DELETE FROM companies WHERE slug = $1`

	result, err := r.db.ExecContext(ctx, query, slug)
	if err != nil {
		return fmt.Errorf("failed to delete company: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return fmt.Errorf("company %q: %w", slug, domain.ErrCompanyNotFound)
	}

	return nil
}

// List retrieves companies with pagination
func (r *companyRepository) List(ctx context.Context, limit, offset int) ([]*domain.Company, int, error) {
	var companies []*domain.Company
	var total int

	countQuery := `SELECT COUNT(*) FROM companies`
	err := r.db.GetContext(ctx, &total, countQuery)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count companies: %w", err)
	}

	query := `
		SELECT slug, name, manager_code, employee_code, subscription_status, created_at
		FROM companies
		ORDER BY created_at DESC
		LIMIT $1 OFFSET $2`

	err = r.db.SelectContext(ctx, &companies, query, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list companies: %w", err)
	}

	return companies, total, nil
}
