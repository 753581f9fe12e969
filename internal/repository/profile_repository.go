package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

type ProfileRepository interface {
	// Create inserts the profile, failing with domain.ErrAlreadyMember if a
	// profile already exists for (company_slug, credential_id). Atomic
	// create-if-absent, safe under concurrent linking.
	Create(ctx context.Context, profile *domain.Profile) error
	GetByKey(ctx context.Context, companySlug string, credentialID uuid.UUID) (*domain.Profile, error)
	// FindByCredential searches every company's profiles for the credential
	// without knowing the company ahead of time. When the credential holds
	// profiles in several companies the oldest one is returned, so repeated
	// calls against unchanged data always agree.
	FindByCredential(ctx context.Context, credentialID uuid.UUID) (*domain.Profile, error)
	TouchLastLogin(ctx context.Context, companySlug string, credentialID uuid.UUID, at time.Time) error
	ListByCompany(ctx context.Context, companySlug string, limit, offset int) ([]*domain.Profile, int, error)
	Delete(ctx context.Context, companySlug string, credentialID uuid.UUID) error
	// DeleteByCompany removes every profile in one company. Deleting zero
	// profiles is not an error.
	DeleteByCompany(ctx context.Context, companySlug string) error
}
