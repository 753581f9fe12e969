package service

import (
	"context"
	"crypto/rand"
	"errors"
	"fmt"
	"strings"
	"time"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

const (
	codeSuffixLength   = 4
	codeSuffixAlphabet = "ABCDEFGHIJKLMNOPQRSTUVWXYZ0123456789"
	// Suffix entropy makes code collisions negligible, but the insert still
	// enforces global uniqueness; on a collision we regenerate and retry.
	maxCodeAttempts = 3
)

// RegistryService owns company records and their role-scoped license codes.
type RegistryService struct {
	companyRepo repository.CompanyRepository
	profileRepo repository.ProfileRepository
}

func NewRegistryService(companyRepo repository.CompanyRepository, profileRepo repository.ProfileRepository) *RegistryService {
	return &RegistryService{
		companyRepo: companyRepo,
		profileRepo: profileRepo,
	}
}

// ResolvedCode is the result of a successful access code lookup.
type ResolvedCode struct {
	Role        domain.Role `json:"role"`
	CompanySlug string      `json:"company_slug"`
	CompanyName string      `json:"company_name"`
}

// CreateCompany creates a company with freshly generated license codes, one
// per code-redeemable role. Fails with domain.ErrCompanyExists if the derived
// slug is already taken.
func (s *RegistryService) CreateCompany(ctx context.Context, displayName string) (*domain.Company, error) {
	name := strings.TrimSpace(displayName)
	if name == "" {
		return nil, domain.ErrNameRequired
	}

	slug := domain.SlugFromName(name)
	if slug == "" {
		return nil, fmt.Errorf("name %q produces an empty slug: %w", displayName, domain.ErrNameRequired)
	}

	var lastErr error
	for attempt := 0; attempt < maxCodeAttempts; attempt++ {
		managerCode, err := generateAccessCode(slug, domain.RoleManager)
		if err != nil {
			return nil, err
		}
		employeeCode, err := generateAccessCode(slug, domain.RoleEmployee)
		if err != nil {
			return nil, err
		}

		company := &domain.Company{
			Slug:               slug,
			Name:               name,
			ManagerCode:        managerCode,
			EmployeeCode:       employeeCode,
			SubscriptionStatus: domain.SubscriptionActive,
			CreatedAt:          time.Now(),
		}

		err = s.companyRepo.Create(ctx, company)
		if err == nil {
			return company, nil
		}
		if errors.Is(err, domain.ErrCodeTaken) {
			lastErr = err
			continue
		}
		return nil, err
	}

	return nil, fmt.Errorf("could not generate unique access codes after %d attempts: %w", maxCodeAttempts, lastErr)
}

// DeleteCompany removes the company record and every member profile in it.
// The company goes first so its codes stop resolving immediately; a crash in
// between leaves orphan profiles for manual cleanup.
func (s *RegistryService) DeleteCompany(ctx context.Context, slug string) error {
	if err := s.companyRepo.Delete(ctx, slug); err != nil {
		return err
	}

	return s.profileRepo.DeleteByCompany(ctx, slug)
}

// GetCompany retrieves a company by slug
func (s *RegistryService) GetCompany(ctx context.Context, slug string) (*domain.Company, error) {
	return s.companyRepo.GetBySlug(ctx, slug)
}

// ListCompanies retrieves companies with pagination
func (s *RegistryService) ListCompanies(ctx context.Context, limit, offset int) ([]*domain.Company, int, error) {
	return s.companyRepo.List(ctx, limit, offset)
}

// ResolveAccessCode finds the company and role granted by a raw license
// code. Input is trimmed and uppercased before lookup since generated codes
// are uppercase but users paste them with inconsistent casing. Roles are
// checked in the fixed domain.CodeRoles order (manager before employee) so a
// code can never ambiguously match two roles.
func (s *RegistryService) ResolveAccessCode(ctx context.Context, rawCode string) (*ResolvedCode, error) {
	code := strings.ToUpper(strings.TrimSpace(rawCode))
	if code == "" {
		return nil, domain.ErrCodeRequired
	}

	for _, role := range domain.CodeRoles {
		company, err := s.companyRepo.GetByRoleCode(ctx, role, code)
		if err != nil {
			if errors.Is(err, domain.ErrInvalidCode) {
				continue
			}
			return nil, err
		}
		return &ResolvedCode{
			Role:        role,
			CompanySlug: company.Slug,
			CompanyName: company.Name,
		}, nil
	}

	return nil, domain.ErrInvalidCode
}

// generateAccessCode builds a license code as {SLUG}-{ROLETAG}-{RANDOM} with
// an uppercase alphanumeric suffix drawn from crypto/rand.
func generateAccessCode(slug string, role domain.Role) (string, error) {
	tag, ok := domain.RoleTags[role]
	if !ok {
		return "", fmt.Errorf("role %q is not code-redeemable", role)
	}

	buf := make([]byte, codeSuffixLength)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate code suffix: %w", err)
	}
	for i, b := range buf {
		buf[i] = codeSuffixAlphabet[int(b)%len(codeSuffixAlphabet)]
	}

	return fmt.Sprintf("%s-%s-%s", strings.ToUpper(slug), tag, string(buf)), nil
}
