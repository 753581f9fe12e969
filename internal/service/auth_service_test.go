package service

import (
	"context"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/jwt"
)

func newAuthFixture(t *testing.T) (*AuthService, *fakeCredentialRepo, *fakeProfileRepo) {
	t.Helper()

	credentials := newFakeCredentialRepo()
	profiles := newFakeProfileRepo()

	tokenService, err := jwt.NewTokenService("test-secret", time.Hour, "office-do-or-due-test")
	require.NoError(t, err)

	svc := NewAuthService(credentials, NewProfileService(profiles), tokenService, nil, nil)
	return svc, credentials, profiles
}

func TestCreateCredentialAndAuthenticate(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	id, err := svc.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	got, err := svc.Authenticate(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Equal(t, id, got)

	_, err = svc.Authenticate(ctx, "maria@example.com", "wrong")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)

	_, err = svc.Authenticate(ctx, "nobody@example.com", "s3cret!")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}

func TestCreateCredentialDuplicateEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	_, err = svc.CreateCredential(ctx, "maria@example.com", "other")
	assert.ErrorIs(t, err, domain.ErrEmailInUse)
}

func TestLoginWithoutProfile(t *testing.T) {
	svc, _, _ := newAuthFixture(t)
	ctx := context.Background()

	_, err := svc.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	// Mid-onboarding: login succeeds, profile is nil.
	result, err := svc.Login(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)
	assert.Nil(t, result.Profile)
	assert.NotEmpty(t, result.Tokens.AccessToken)
}

func TestSendPasswordResetStoresHashOnly(t *testing.T) {
	svc, credentials, _ := newAuthFixture(t)
	ctx := context.Background()

	id, err := svc.CreateCredential(ctx, "maria@example.com", "s3cret!")
	require.NoError(t, err)

	require.NoError(t, svc.SendPasswordReset(ctx, "maria@example.com"))

	stored := credentials.resetTokens[id]
	require.NotEmpty(t, stored)
	// SHA-256 hex, never the raw token.
	assert.Len(t, stored, 64)
}

func TestSendPasswordResetUnknownEmail(t *testing.T) {
	svc, _, _ := newAuthFixture(t)

	err := svc.SendPasswordReset(context.Background(), "nobody@example.com")
	assert.ErrorIs(t, err, domain.ErrInvalidCredentials)
}
