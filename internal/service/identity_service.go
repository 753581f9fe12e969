package service

import (
	"context"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

// IdentityService links credentials to companies: first registration,
// joining an additional company with the same credential, and the combined
// signup flow that picks between the two.
type IdentityService struct {
	registry       *RegistryService
	profileRepo    repository.ProfileRepository
	credentialRepo repository.CredentialRepository
	authenticator  Authenticator
}

func NewIdentityService(
	registry *RegistryService,
	profileRepo repository.ProfileRepository,
	credentialRepo repository.CredentialRepository,
	authenticator Authenticator,
) *IdentityService {
	return &IdentityService{
		registry:       registry,
		profileRepo:    profileRepo,
		credentialRepo: credentialRepo,
		authenticator:  authenticator,
	}
}

// RegisterNewIdentity creates the first company profile for a credential
// that was just registered with the authenticator. The expectedCompanySlug
// guards against redeeming a key on the wrong company's signup page.
func (s *IdentityService) RegisterNewIdentity(ctx context.Context, credentialID uuid.UUID, name, email, rawCode, expectedCompanySlug string) (*domain.Profile, error) {
	resolved, err := s.resolveForCompany(ctx, rawCode, expectedCompanySlug)
	if err != nil {
		return nil, err
	}

	return s.createProfile(ctx, credentialID, name, email, resolved)
}

// LinkExistingIdentity adds a company profile to a credential that already
// exists. The caller must have re-authenticated the credential before
// invoking this; only the profile write happens here. Fails with
// domain.ErrAlreadyMember on a repeat link to the same company.
func (s *IdentityService) LinkExistingIdentity(ctx context.Context, credentialID uuid.UUID, rawCode, expectedCompanySlug string) (*domain.Profile, error) {
	resolved, err := s.resolveForCompany(ctx, rawCode, expectedCompanySlug)
	if err != nil {
		return nil, err
	}

	credential, err := s.credentialRepo.GetByID(ctx, credentialID)
	if err != nil {
		return nil, err
	}

	// No display name travels with a bare credential; fall back to the
	// mailbox name like the signup form does.
	name := credential.Email
	if at := strings.Index(name, "@"); at > 0 {
		name = name[:at]
	}

	return s.createProfile(ctx, credentialID, name, credential.Email, resolved)
}

// SignUp runs the combined flow: try to create a fresh credential; when the
// email is already registered, re-authenticate and link the existing
// credential instead. A wrong password on that second path surfaces as
// domain.ErrWrongPasswordForExisting so the caller can steer the user to
// password recovery rather than a retry loop.
func (s *IdentityService) SignUp(ctx context.Context, name, email, password, rawCode, expectedCompanySlug string) (*domain.Profile, error) {
	// Resolve the code before touching the authenticator so a bad key never
	// leaves a credential behind.
	resolved, err := s.resolveForCompany(ctx, rawCode, expectedCompanySlug)
	if err != nil {
		return nil, err
	}

	credentialID, err := s.authenticator.CreateCredential(ctx, email, password)
	if err == nil {
		// Credential creation is the commit point: if the profile write below
		// fails, the credential stays and the retry goes through the linking
		// path (the email is now in use).
		return s.createProfile(ctx, credentialID, name, email, resolved)
	}

	if !errors.Is(err, domain.ErrEmailInUse) {
		return nil, err
	}

	credentialID, err = s.authenticator.Authenticate(ctx, email, password)
	if err != nil {
		if errors.Is(err, domain.ErrInvalidCredentials) {
			return nil, fmt.Errorf("email %q: %w", email, domain.ErrWrongPasswordForExisting)
		}
		return nil, err
	}

	return s.createProfile(ctx, credentialID, name, email, resolved)
}

// resolveForCompany resolves the code and enforces the expected-company
// check, naming both slugs on a mismatch so the user can tell a wrong URL
// from a wrong key.
func (s *IdentityService) resolveForCompany(ctx context.Context, rawCode, expectedCompanySlug string) (*ResolvedCode, error) {
	resolved, err := s.registry.ResolveAccessCode(ctx, rawCode)
	if err != nil {
		return nil, err
	}

	if expectedCompanySlug != "" && resolved.CompanySlug != expectedCompanySlug {
		return nil, fmt.Errorf("key belongs to %q but registration was for %q: %w",
			resolved.CompanySlug, expectedCompanySlug, domain.ErrCompanyMismatch)
	}

	return resolved, nil
}

func (s *IdentityService) createProfile(ctx context.Context, credentialID uuid.UUID, name, email string, resolved *ResolvedCode) (*domain.Profile, error) {
	profile := &domain.Profile{
		CompanySlug:  resolved.CompanySlug,
		CredentialID: credentialID,
		Name:         name,
		Email:        email,
		Role:         resolved.Role,
		Status:       domain.StatusForRole(resolved.Role),
		CompanyName:  resolved.CompanyName,
		CreatedAt:    time.Now(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	return profile, nil
}
