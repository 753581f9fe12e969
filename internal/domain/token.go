package domain

import (
	"time"

	"github.com/golang-jwt/jwt/v5"
	"github.com/google/uuid"
)

// Claims are the JWT claims carried by session tokens. Only the credential
// identity travels in the token; the company profile is resolved per request.
type Claims struct {
	jwt.RegisteredClaims
	CredentialID uuid.UUID `json:"credential_id"`
	Email        string    `json:"email"`
	TokenType    string    `json:"token_type"`
}

// TokenPair is returned on login.
type TokenPair struct {
	AccessToken string    `json:"access_token"`
	ExpiresAt   time.Time `json:"expires_at"`
	TokenType   string    `json:"token_type"`
}
