package service

import (
	"context"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

// ProfileService resolves company profiles for authenticated credentials.
type ProfileService struct {
	profileRepo repository.ProfileRepository
}

func NewProfileService(profileRepo repository.ProfileRepository) *ProfileService {
	return &ProfileService{profileRepo: profileRepo}
}

// FindProfileForCredential searches every company for the credential's
// profile. Returns domain.ErrProfileNotFound when the credential is
// authenticated but not yet a member of any company; callers treat that as
// the normal mid-onboarding signal, not a failure.
//
// On a hit the profile's last-authenticated timestamp is updated inline,
// before the profile is returned; best-effort refers to failure handling
// only. A failed touch is logged and never surfaced, and the read result is
// returned regardless, so the returned profile always reflects whether the
// timestamp actually landed.
func (s *ProfileService) FindProfileForCredential(ctx context.Context, credentialID uuid.UUID) (*domain.Profile, error) {
	profile, err := s.profileRepo.FindByCredential(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	now := time.Now()
	if err := s.profileRepo.TouchLastLogin(ctx, profile.CompanySlug, credentialID, now); err != nil {
		log.Printf("[PROFILE] Could not update last login for %s in %s: %v", credentialID, profile.CompanySlug, err)
	} else {
		profile.LastLoginAt = &now
	}

	return profile, nil
}

// GetProfile retrieves the profile for an exact (company, credential) pair.
// Callers that know the company from routing use this instead of the
// cross-company search, which picks one profile arbitrarily (oldest first)
// for multi-company credentials.
func (s *ProfileService) GetProfile(ctx context.Context, companySlug string, credentialID uuid.UUID) (*domain.Profile, error) {
	return s.profileRepo.GetByKey(ctx, companySlug, credentialID)
}

// ListCompanyMembers retrieves one company's profiles with pagination
func (s *ProfileService) ListCompanyMembers(ctx context.Context, companySlug string, limit, offset int) ([]*domain.Profile, int, error) {
	return s.profileRepo.ListByCompany(ctx, companySlug, limit, offset)
}
