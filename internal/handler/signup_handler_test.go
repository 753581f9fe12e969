package handler

import (
	"context"
	"encoding/json"
	"io"
	"net/http/httptest"
	"strings"
	"testing"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/service"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/validator"
)

// stubCompanyRepo is the minimal in-memory store the registry needs for
// handler-level tests.
type stubCompanyRepo struct {
	companies map[string]*domain.Company
}

func newStubCompanyRepo() *stubCompanyRepo {
	return &stubCompanyRepo{companies: make(map[string]*domain.Company)}
}

func (r *stubCompanyRepo) Create(ctx context.Context, company *domain.Company) error {
	if _, ok := r.companies[company.Slug]; ok {
		return domain.ErrCompanyExists
	}
	saved := *company
	r.companies[company.Slug] = &saved
	return nil
}

func (r *stubCompanyRepo) GetBySlug(ctx context.Context, slug string) (*domain.Company, error) {
	company, ok := r.companies[slug]
	if !ok {
		return nil, domain.ErrCompanyNotFound
	}
	copied := *company
	return &copied, nil
}

func (r *stubCompanyRepo) GetByRoleCode(ctx context.Context, role domain.Role, code string) (*domain.Company, error) {
	for _, company := range r.companies {
		if company.AccessCodeForRole(role) == code {
			copied := *company
			return &copied, nil
		}
	}
	return nil, domain.ErrInvalidCode
}

func (r *stubCompanyRepo) Delete(ctx context.Context, slug string) error {
	if _, ok := r.companies[slug]; !ok {
		return domain.ErrCompanyNotFound
	}
	delete(r.companies, slug)
	return nil
}

func (r *stubCompanyRepo) List(ctx context.Context, limit, offset int) ([]*domain.Company, int, error) {
	return nil, len(r.companies), nil
}

type stubProfileRepo struct{}

func (stubProfileRepo) Create(ctx context.Context, profile *domain.Profile) error { return nil }
func (stubProfileRepo) GetByKey(ctx context.Context, companySlug string, credentialID uuid.UUID) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (stubProfileRepo) FindByCredential(ctx context.Context, credentialID uuid.UUID) (*domain.Profile, error) {
	return nil, domain.ErrProfileNotFound
}
func (stubProfileRepo) TouchLastLogin(ctx context.Context, companySlug string, credentialID uuid.UUID, at time.Time) error {
	return nil
}
func (stubProfileRepo) ListByCompany(ctx context.Context, companySlug string, limit, offset int) ([]*domain.Profile, int, error) {
	return nil, 0, nil
}
func (stubProfileRepo) Delete(ctx context.Context, companySlug string, credentialID uuid.UUID) error {
	return nil
}
func (stubProfileRepo) DeleteByCompany(ctx context.Context, companySlug string) error { return nil }

func newVerifyCodeApp(t *testing.T) (*fiber.App, *domain.Company) {
	t.Helper()

	registry := service.NewRegistryService(newStubCompanyRepo(), stubProfileRepo{})
	company, err := registry.CreateCompany(context.Background(), "Acme Industries")
	require.NoError(t, err)

	handler := NewSignupHandler(nil, registry, validator.NewValidator())

	app := fiber.New()
	app.Post("/api/v1/auth/verify-code", handler.VerifyCode)
	return app, company
}

func postJSON(t *testing.T, app *fiber.App, path, body string) (int, map[string]any) {
	t.Helper()

	req := httptest.NewRequest("POST", path, strings.NewReader(body))
	req.Header.Set("Content-Type", "application/json")

	resp, err := app.Test(req)
	require.NoError(t, err)
	defer resp.Body.Close()

	raw, err := io.ReadAll(resp.Body)
	require.NoError(t, err)

	var decoded map[string]any
	require.NoError(t, json.Unmarshal(raw, &decoded))
	return resp.StatusCode, decoded
}

func TestVerifyCodeMissingAccessCode(t *testing.T) {
	app, _ := newVerifyCodeApp(t)

	status, body := postJSON(t, app, "/api/v1/auth/verify-code", `{}`)

	assert.Equal(t, fiber.StatusBadRequest, status)
	assert.Equal(t, true, body["error"])
	assert.Contains(t, body["message"], "access_code is required")
}

func TestVerifyCodeResolvesEmployeeCode(t *testing.T) {
	app, company := newVerifyCodeApp(t)

	status, body := postJSON(t, app, "/api/v1/auth/verify-code",
		`{"access_code": "`+company.EmployeeCode+`"}`)

	assert.Equal(t, fiber.StatusOK, status)
	assert.Equal(t, "employee", body["role"])
	assert.Equal(t, "acme-industries", body["company_slug"])
	assert.Equal(t, "Acme Industries", body["company_name"])
}

func TestVerifyCodeUnknownCode(t *testing.T) {
	app, _ := newVerifyCodeApp(t)

	status, body := postJSON(t, app, "/api/v1/auth/verify-code",
		`{"access_code": "GLOBEX-MGR-XXXX"}`)

	assert.Equal(t, fiber.StatusNotFound, status)
	assert.Equal(t, true, body["error"])
}
