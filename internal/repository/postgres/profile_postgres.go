package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

type profileRepository struct {
	db *sqlx.DB
}

// NewProfileRepository creates a new PostgreSQL profile repository
func NewProfileRepository(db *sqlx.DB) repository.ProfileRepository {
	return &profileRepository{db: db}
}

// Create inserts a new profile. The primary key on (company_slug,
// credential_id) makes the membership check atomic with the insert.
func (r *profileRepository) Create(ctx context.Context, profile *domain.Profile) error {
	query := `
		INSERT INTO profiles (
			company_slug, credential_id, name, email, role, status,
			company_name, is_super_admin, created_at, last_login_at
		) VALUES (
			:company_slug, :credential_id, :name, :email, :role, :status,
			:company_name, :is_super_admin, :created_at, :last_login_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, profile)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("company %q: %w", profile.CompanySlug, domain.ErrAlreadyMember)
		}
		return fmt.Errorf("failed to create profile: %w", err)
	}

	return nil
}

// GetByKey retrieves the profile for one (company, credential) pair
func (r *profileRepository) GetByKey(ctx context.Context, companySlug string, credentialID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT company_slug, credential_id, name, email, role, status,
			   company_name, is_super_admin, created_at, last_login_at
		FROM profiles
		WHERE company_slug = $1 AND credential_id = $2`

	var profile domain.Profile
	err := r.db.GetContext(ctx, &profile, query, companySlug, credentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to get profile: %w", err)
	}

	return &profile, nil
}

// FindByCredential searches all companies' profiles for the credential.
// Ordering by creation time keeps the result deterministic when the
// credential belongs to several companies.
func (r *profileRepository) FindByCredential(ctx context.Context, credentialID uuid.UUID) (*domain.Profile, error) {
	query := `
		SELECT company_slug, credential_id, name, email, role, status,
			   company_name, is_super_admin, created_at, last_login_at
		FROM profiles
		WHERE credential_id = $1
		ORDER BY created_at ASC, company_slug ASC
		LIMIT 1`

	var profile domain.Profile
	err := r.db.GetContext(ctx, &profile, query, credentialID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrProfileNotFound
		}
		return nil, fmt.Errorf("failed to find profile by credential: %w", err)
	}

	return &profile, nil
}

// TouchLastLogin updates the last-authenticated timestamp
func (r *profileRepository) TouchLastLogin(ctx context.Context, companySlug string, credentialID uuid.UUID, at time.Time) error {
	query := `
		UPDATE profiles
		SET last_login_at = $3
		WHERE company_slug = $1 AND credential_id = $2`

	result, err := r.db.ExecContext(ctx, query, companySlug, credentialID, at)
	if err != nil {
		return fmt.Errorf("failed to update last login: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}

// ListByCompany retrieves one company's profiles with pagination
func (r *profileRepository) ListByCompany(ctx context.Context, companySlug string, limit, offset int) ([]*domain.Profile, int, error) {
	var profiles []*domain.Profile
	var total int

	countQuery := `SELECT COUNT(*) FROM profiles WHERE company_slug = $1`
	err := r.db.GetContext(ctx, &total, countQuery, companySlug)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to count profiles: %w", err)
	}

	query := `
		SELECT company_slug, credential_id, name, email, role, status,
			   company_name, is_super_admin, created_at, last_login_at
		FROM profiles
		WHERE company_slug = $1
		ORDER BY created_at DESC
		LIMIT $2 OFFSET $3`

	err = r.db.SelectContext(ctx, &profiles, query, companySlug, limit, offset)
	if err != nil {
		return nil, 0, fmt.Errorf("failed to list profiles: %w", err)
	}

	return profiles, total, nil
}

// Delete removes a single profile
func (r *profileRepository) Delete(ctx context.Context, companySlug string, credentialID uuid.UUID) error {
	query := `DELETE FROM profiles WHERE company_slug = $1 AND credential_id = $2`

	result, err := r.db.ExecContext(ctx, query, companySlug, credentialID)
	if err != nil {
		return fmt.Errorf("failed to delete profile: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrProfileNotFound
	}

	return nil
}

// DeleteByCompany removes all of one company's profiles
func (r *profileRepository) DeleteByCompany(ctx context.Context, companySlug string) error {
	query := `DELETE FROM profiles WHERE company_slug = $1`

	if _, err := r.db.ExecContext(ctx, query, companySlug); err != nil {
		return fmt.Errorf("failed to delete company profiles: %w", err)
	}

	return nil
}
