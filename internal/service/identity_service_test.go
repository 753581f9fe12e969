package service

import (
	"context"
	"strings"
	"testing"

	"github.com/google/uuid"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

type identityFixture struct {
	registry    *RegistryService
	profiles    *fakeProfileRepo
	credentials *fakeCredentialRepo
	auth        *fakeAuthenticator
	identity    *IdentityService
	company     *domain.Company
}

func newIdentityFixture(t *testing.T) *identityFixture {
	t.Helper()

	profiles := newFakeProfileRepo()
	registry := NewRegistryService(newFakeCompanyRepo(), profiles)
	company, err := registry.CreateCompany(context.Background(), "Acme Industries")
	require.NoError(t, err)

	credentials := newFakeCredentialRepo()
	auth := newFakeAuthenticator()

	return &identityFixture{
		registry:    registry,
		profiles:    profiles,
		credentials: credentials,
		auth:        auth,
		identity:    NewIdentityService(registry, profiles, credentials, auth),
		company:     company,
	}
}

func (f *identityFixture) addCredential(t *testing.T, email string) uuid.UUID {
	t.Helper()

	id := uuid.New()
	require.NoError(t, f.credentials.Create(context.Background(), &domain.Credential{
		ID:    id,
		Email: email,
	}))
	return id
}

func TestRegisterNewIdentity(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	credentialID := f.addCredential(t, "maria@example.com")

	profile, err := f.identity.RegisterNewIdentity(ctx, credentialID, "Maria", "maria@example.com", f.company.EmployeeCode, "acme-industries")
	require.NoError(t, err)

	assert.Equal(t, "acme-industries", profile.CompanySlug)
	assert.Equal(t, credentialID, profile.CredentialID)
	assert.Equal(t, domain.RoleEmployee, profile.Role)
	assert.Equal(t, domain.ProfileStatusActive, profile.Status)
	assert.Equal(t, "Acme Industries", profile.CompanyName)

	stored, err := f.profiles.GetByKey(ctx, "acme-industries", credentialID)
	require.NoError(t, err)
	assert.Equal(t, profile.Role, stored.Role)
}

func TestRegisterNewIdentityManagerCode(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	credentialID := f.addCredential(t, "boss@example.com")

	profile, err := f.identity.RegisterNewIdentity(ctx, credentialID, "Boss", "boss@example.com", f.company.ManagerCode, "")
	require.NoError(t, err)

	assert.Equal(t, domain.RoleManager, profile.Role)
	assert.Equal(t, domain.ProfileStatusAdmin, profile.Status)
}

func TestRegisterNewIdentityCompanyMismatch(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	credentialID := f.addCredential(t, "maria@example.com")

	_, err := f.identity.RegisterNewIdentity(ctx, credentialID, "Maria", "maria@example.com", f.company.EmployeeCode, "globex")
	require.ErrorIs(t, err, domain.ErrCompanyMismatch)
	// The message names both sides so the user can tell a wrong URL from a
	// wrong key.
	assert.Contains(t, err.Error(), "acme-industries")
	assert.Contains(t, err.Error(), "globex")

	_, err = f.profiles.FindByCredential(ctx, credentialID)
	assert.ErrorIs(t, err, domain.ErrProfileNotFound, "no profile may exist after a mismatch")
}

func TestLinkExistingIdentity(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	credentialID := f.addCredential(t, "maria@example.com")

	profile, err := f.identity.LinkExistingIdentity(ctx, credentialID, f.company.EmployeeCode, "acme-industries")
	require.NoError(t, err)

	// Display name falls back to the mailbox name.
	assert.Equal(t, "maria", profile.Name)
	assert.Equal(t, "maria@example.com", profile.Email)
	assert.Equal(t, domain.RoleEmployee, profile.Role)
}

func TestLinkTwiceSameCompany(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	credentialID := f.addCredential(t, "maria@example.com")

	first, err := f.identity.RegisterNewIdentity(ctx, credentialID, "Maria", "maria@example.com", f.company.EmployeeCode, "")
	require.NoError(t, err)

	_, err = f.identity.LinkExistingIdentity(ctx, credentialID, f.company.ManagerCode, "")
	require.ErrorIs(t, err, domain.ErrAlreadyMember)

	// The original profile is untouched, role included.
	stored, err := f.profiles.GetByKey(ctx, "acme-industries", credentialID)
	require.NoError(t, err)
	assert.Equal(t, first.Role, stored.Role)
	assert.Equal(t, first.Name, stored.Name)
}

func TestLinkSecondCompany(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	other, err := f.registry.CreateCompany(ctx, "Globex Corporation")
	require.NoError(t, err)

	credentialID := f.addCredential(t, "maria@example.com")

	_, err = f.identity.RegisterNewIdentity(ctx, credentialID, "Maria", "maria@example.com", f.company.EmployeeCode, "")
	require.NoError(t, err)

	second, err := f.identity.LinkExistingIdentity(ctx, credentialID, other.ManagerCode, "globex-corporation")
	require.NoError(t, err)
	assert.Equal(t, "globex-corporation", second.CompanySlug)
	assert.Equal(t, domain.RoleManager, second.Role)
}

func TestSignUpFreshCredential(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	profile, err := f.identity.SignUp(ctx, "Maria", "maria@example.com", "s3cret!", f.company.EmployeeCode, "acme-industries")
	require.NoError(t, err)

	assert.Equal(t, "Maria", profile.Name)
	assert.Equal(t, domain.RoleEmployee, profile.Role)

	id, err := f.auth.Authenticate(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, profile.CredentialID, id)
}

func TestSignUpExistingCredentialRightPassword(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	existingID, err := f.auth.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	profile, err := f.identity.SignUp(ctx, "Maria", "maria@example.com", "s3cret!", f.company.EmployeeCode, "")
	require.NoError(t, err)

	assert.Equal(t, existingID, profile.CredentialID, "must link the existing credential, not mint a new one")
}

func TestSignUpExistingCredentialWrongPassword(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	_, err := f.auth.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	_, err = f.identity.SignUp(ctx, "Maria", "maria@example.com", "wrong", f.company.EmployeeCode, "")
	assert.ErrorIs(t, err, domain.ErrWrongPasswordForExisting)
}

func TestSignUpBadCodeLeavesNoCredential(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	_, err := f.identity.SignUp(ctx, "Maria", "maria@example.com", "s3cret!", "ACME-INDUSTRIES-EMP-ZZZZ", "")
	require.ErrorIs(t, err, domain.ErrInvalidCode)

	_, err = f.auth.Authenticate(ctx, "maria@example.com", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials, "a rejected code must not leave a credential behind")
}

func TestSignUpCaseInsensitiveCode(t *testing.T) {
	f := newIdentityFixture(t)
	ctx := context.Background()

	profile, err := f.identity.SignUp(ctx, "Maria", "maria@example.com", "s3cret!", strings.ToLower(f.company.EmployeeCode), "")
	require.NoError(t, err)
	assert.Equal(t, domain.RoleEmployee, profile.Role)
}
