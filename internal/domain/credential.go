package domain

import (
	"time"

	"github.com/google/uuid"
)

// Credential is an authentication identity, independent of any company.
// Only the authenticator touches the password hash; everything else sees
// just the credential id and email.
type Credential struct {
	ID                          uuid.UUID  `json:"id" db:"id"`
	Email                       string     `json:"email" db:"email"`
	PasswordHash                string     `json:"-" db:"password_hash"`
	PasswordResetToken          *string    `json:"-" db:"password_reset_token"`
	PasswordResetTokenExpiresAt *time.Time `json:"-" db:"password_reset_token_expires_at"`
	CreatedAt                   time.Time  `json:"created_at" db:"created_at"`
}
