package service

import (
	"context"
	"crypto/rand"
	"crypto/sha256"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/blacklist"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/email"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/hash"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/jwt"
)

const resetTokenTTL = 1 * time.Hour

// Authenticator is the credential-store collaborator consumed by the
// identity and join request services. AuthService is the production
// implementation.
type Authenticator interface {
	// CreateCredential registers a new login, failing with
	// domain.ErrEmailInUse when the email is already registered.
	CreateCredential(ctx context.Context, email, password string) (uuid.UUID, error)
	// Authenticate verifies a password, failing with
	// domain.ErrInvalidCredentials on any mismatch.
	Authenticate(ctx context.Context, email, password string) (uuid.UUID, error)
	SendPasswordReset(ctx context.Context, email string) error
}

// AuthService owns credentials: registration, password verification, reset
// delivery, and session token issue/revocation.
type AuthService struct {
	credentialRepo repository.CredentialRepository
	profileService *ProfileService
	tokenService   *jwt.TokenService
	tokenBlacklist *blacklist.TokenBlacklist
	mailer         email.EmailService
}

func NewAuthService(
	credentialRepo repository.CredentialRepository,
	profileService *ProfileService,
	tokenService *jwt.TokenService,
	tokenBlacklist *blacklist.TokenBlacklist,
	mailer email.EmailService,
) *AuthService {
	return &AuthService{
		credentialRepo: credentialRepo,
		profileService: profileService,
		tokenService:   tokenService,
		tokenBlacklist: tokenBlacklist,
		mailer:         mailer,
	}
}

// CreateCredential registers a new credential with an argon2id password hash
func (s *AuthService) CreateCredential(ctx context.Context, emailAddr, password string) (uuid.UUID, error) {
	passwordHash, err := hash.HashPassword(password)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to hash password: %w", err)
	}

	credential := &domain.Credential{
		ID:           uuid.New(),
		Email:        emailAddr,
		PasswordHash: passwordHash,
		CreatedAt:    time.Now(),
	}

	if err := s.credentialRepo.Create(ctx, credential); err != nil {
		return uuid.Nil, err
	}

	return credential.ID, nil
}

// Authenticate verifies email and password, returning the credential id
func (s *AuthService) Authenticate(ctx context.Context, emailAddr, password string) (uuid.UUID, error) {
	credential, err := s.credentialRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return uuid.Nil, err
	}

	valid, err := hash.VerifyPassword(password, credential.PasswordHash)
	if err != nil {
		return uuid.Nil, fmt.Errorf("failed to verify password: %w", err)
	}
	if !valid {
		return uuid.Nil, domain.ErrInvalidCredentials
	}

	return credential.ID, nil
}

// SendPasswordReset generates a reset token and emails it to the credential
// owner. The plain token travels only in the email; storage keeps a SHA-256
// hash.
func (s *AuthService) SendPasswordReset(ctx context.Context, emailAddr string) error {
	credential, err := s.credentialRepo.GetByEmail(ctx, emailAddr)
	if err != nil {
		return err
	}

	tokenBytes := make([]byte, 32)
	if _, err := rand.Read(tokenBytes); err != nil {
		return fmt.Errorf("failed to generate reset token: %w", err)
	}
	token := base64.URLEncoding.EncodeToString(tokenBytes)

	sum := sha256.Sum256([]byte(token))
	tokenHash := fmt.Sprintf("%x", sum[:])

	if err := s.credentialRepo.SetResetToken(ctx, credential.ID, tokenHash, time.Now().Add(resetTokenTTL)); err != nil {
		return err
	}

	if s.mailer == nil {
		log.Printf("[AUTH] Email disabled, skipping password reset mail to %s", emailAddr)
		return nil
	}

	return s.mailer.SendPasswordResetEmail(ctx, emailAddr, token)
}

// LoginResult bundles what the login endpoint returns.
type LoginResult struct {
	Tokens  *domain.TokenPair `json:"tokens"`
	Profile *domain.Profile   `json:"profile,omitempty"`
}

// Login authenticates a credential, resolves its profile across all
// companies, and issues a session token. A credential without any profile
// still logs in successfully; the nil profile tells the caller the account
// is mid-onboarding.
func (s *AuthService) Login(ctx context.Context, emailAddr, password string) (*LoginResult, error) {
	credentialID, err := s.Authenticate(ctx, emailAddr, password)
	if err != nil {
		return nil, err
	}

	profile, err := s.profileService.FindProfileForCredential(ctx, credentialID)
	if err != nil && !errors.Is(err, domain.ErrProfileNotFound) {
		return nil, err
	}

	tokens, err := s.tokenService.GenerateToken(credentialID, emailAddr)
	if err != nil {
		return nil, fmt.Errorf("failed to issue token: %w", err)
	}

	return &LoginResult{Tokens: tokens, Profile: profile}, nil
}

// Logout revokes the presented token for its remaining lifetime
func (s *AuthService) Logout(ctx context.Context, token string, expiresAt time.Time) error {
	return s.tokenBlacklist.AddToken(ctx, token, expiresAt)
}
