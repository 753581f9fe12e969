package repository

import (
	"context"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

type CredentialRepository interface {
	// Create inserts the credential, failing with domain.ErrEmailInUse if the
	// email is already registered.
	Create(ctx context.Context, credential *domain.Credential) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error)
	GetByEmail(ctx context.Context, email string) (*domain.Credential, error)
	SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error
}
