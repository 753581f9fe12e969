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

type credentialRepository struct {
	db *sqlx.DB
}

// NewCredentialRepository creates a new PostgreSQL credential repository
func NewCredentialRepository(db *sqlx.DB) repository.CredentialRepository {
	return &credentialRepository{db: db}
}

// Create inserts a new credential. The unique constraint on email makes the
// in-use check atomic with the insert.
func (r *credentialRepository) Create(ctx context.Context, credential *domain.Credential) error {
	query := `
		INSERT INTO credentials (
			id, email, password_hash, password_reset_token,
			password_reset_token_expires_at, created_at
		) VALUES (
			:id, :email, :password_hash, :password_reset_token,
			:password_reset_token_expires_at, :created_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, credential)
	if err != nil {
		var pqErr *pq.Error
		if errors.As(err, &pqErr) && pqErr.Code == "23505" {
			return fmt.Errorf("email %q: %w", credential.Email, domain.ErrEmailInUse)
		}
		return fmt.Errorf("failed to create credential: %w", err)
	}

	return nil
}

// GetByID retrieves a credential by its ID
func (r *credentialRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.Credential, error) {
	query := `
		SELECT id, email, password_hash, password_reset_token,
			   password_reset_token_expires_at, created_at
		FROM credentials
		WHERE id = $1`

	var credential domain.Credential
	err := r.db.GetContext(ctx, &credential, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get credential: %w", err)
	}

	return &credential, nil
}

// GetByEmail retrieves a credential by email
func (r *credentialRepository) GetByEmail(ctx context.Context, email string) (*domain.Credential, error) {
	query := `
		SELECT id, email, password_hash, password_reset_token,
			   password_reset_token_expires_at, created_at
		FROM credentials
		WHERE email = $1`

	var credential domain.Credential
	err := r.db.GetContext(ctx, &credential, query, email)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrInvalidCredentials
		}
		return nil, fmt.Errorf("failed to get credential by email: %w", err)
	}

	return &credential, nil
}

// SetResetToken stores the hashed password reset token
func (r *credentialRepository) SetResetToken(ctx context.Context, id uuid.UUID, tokenHash string, expiresAt time.Time) error {
	query := `
		UPDATE credentials
		SET password_reset_token = $2, password_reset_token_expires_at = $3
		WHERE id = $1`

	result, err := r.db.ExecContext(ctx, query, id, tokenHash, expiresAt)
	if err != nil {
		return fmt.Errorf("failed to set reset token: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrInvalidCredentials
	}

	return nil
}
