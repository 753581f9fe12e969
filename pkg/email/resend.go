package email

import (
	"context"
	"fmt"
	"log"

	"github.com/resend/resend-go/v2"
)

// ResendEmailService implements EmailService using Resend
type ResendEmailService struct {
	client *resend.Client
	config *EmailConfig
}

// NewResendEmailService creates a new Resend email service
func NewResendEmailService(config *EmailConfig) (*ResendEmailService, error) {
	if config.APIKey == "" {
		return nil, fmt.Errorf("resend API key is required")
	}

	if config.FromEmail == "" {
		return nil, fmt.Errorf("from email is required")
	}

	return &ResendEmailService{
		client: resend.NewClient(config.APIKey),
		config: config,
	}, nil
}

// SendPasswordResetEmail sends a password reset link to the user
func (s *ResendEmailService) SendPasswordResetEmail(ctx context.Context, to, token string) error {
	resetURL := fmt.Sprintf("%s?token=%s", s.config.ResetURL, token)

	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: "Set Your Password",
		Html:    passwordResetTemplate(resetURL),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send password reset email to %s: %v", to, err)
		return fmt.Errorf("failed to send password reset email: %w", err)
	}

	log.Printf("Password reset email sent to %s (ID: %s)", to, sent.Id)
	return nil
}

// SendJoinApprovedEmail notifies a requester their join request was approved
func (s *ResendEmailService) SendJoinApprovedEmail(ctx context.Context, to, name, companyName string) error {
	params := &resend.SendEmailRequest{
		From:    fmt.Sprintf("%s <%s>", s.config.FromName, s.config.FromEmail),
		To:      []string{to},
		Subject: fmt.Sprintf("Your request to join %s was approved", companyName),
		Html:    joinApprovedTemplate(name, companyName),
	}

	sent, err := s.client.Emails.SendWithContext(ctx, params)
	if err != nil {
		log.Printf("Failed to send join approved email to %s: %v", to, err)
		return fmt.Errorf("failed to send join approved email: %w", err)
	}

	log.Printf("Join approved email sent to %s (ID: %s)", to, sent.Id)
	return nil
}
