package email

import "context"

// EmailService defines the interface for sending transactional mail
type EmailService interface {
	// SendPasswordResetEmail sends a password reset link carrying the plain
	// reset token
	SendPasswordResetEmail(ctx context.Context, to, token string) error

	// SendJoinApprovedEmail notifies a requester that their join request was
	// approved
	SendJoinApprovedEmail(ctx context.Context, to, name, companyName string) error
}

// EmailConfig holds email service configuration
type EmailConfig struct {
	APIKey    string
	FromName  string
	FromEmail string
	ResetURL  string
}
