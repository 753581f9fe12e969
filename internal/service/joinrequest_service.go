package service

import (
	"context"
	"crypto/rand"
	"encoding/base64"
	"errors"
	"fmt"
	"log"
	"strings"
	"time"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
	"github.com/Raj-Shinde-045/office-do-or-due/pkg/email"
)

// JoinRequestService runs the pending-approval queue used for role
// elevation, where a human approver converts requests into profiles.
type JoinRequestService struct {
	companyRepo     repository.CompanyRepository
	joinRequestRepo repository.JoinRequestRepository
	profileRepo     repository.ProfileRepository
	authenticator   Authenticator
	mailer          email.EmailService
}

func NewJoinRequestService(
	companyRepo repository.CompanyRepository,
	joinRequestRepo repository.JoinRequestRepository,
	profileRepo repository.ProfileRepository,
	authenticator Authenticator,
	mailer email.EmailService,
) *JoinRequestService {
	return &JoinRequestService{
		companyRepo:     companyRepo,
		joinRequestRepo: joinRequestRepo,
		profileRepo:     profileRepo,
		authenticator:   authenticator,
		mailer:          mailer,
	}
}

// SubmitInput carries a self-service join request submission.
type SubmitInput struct {
	CompanySlug   string
	Name          string
	Email         string
	RequestedRole domain.Role
	ApproverEmail string
	// CredentialID is set when the requester signed up before requesting.
	// Admin elevation requires it; legacy requests may lack one.
	CredentialID *uuid.UUID
}

// Submit creates a pending join request. Repeat submissions by the same
// requester are allowed; the approver surface tolerates duplicates.
func (s *JoinRequestService) Submit(ctx context.Context, in SubmitInput) (*domain.JoinRequest, error) {
	if !in.RequestedRole.IsValid() {
		return nil, fmt.Errorf("unknown role %q", in.RequestedRole)
	}

	if _, err := s.companyRepo.GetBySlug(ctx, in.CompanySlug); err != nil {
		return nil, err
	}

	now := time.Now()
	request := &domain.JoinRequest{
		ID:            uuid.New(),
		CompanySlug:   in.CompanySlug,
		Name:          in.Name,
		Email:         in.Email,
		CredentialID:  in.CredentialID,
		RequestedRole: in.RequestedRole,
		ApproverEmail: in.ApproverEmail,
		Status:        domain.JoinRequestPending,
		CreatedAt:     now,
		UpdatedAt:     now,
	}

	if err := s.joinRequestRepo.Create(ctx, request); err != nil {
		return nil, err
	}

	return request, nil
}

// ListPendingFor retrieves the pending requests addressed to one approver
func (s *JoinRequestService) ListPendingFor(ctx context.Context, approverEmail string) ([]*domain.JoinRequest, error) {
	return s.joinRequestRepo.ListPendingByApprover(ctx, approverEmail)
}

// Approve converts a pending request into a company profile with the
// requested role. Requests carrying a credential id bind the profile to it
// directly; legacy requests without one mint a fresh credential with a
// random placeholder password and trigger a password reset so the requester
// can choose their own.
//
// Only the approver the request is addressed to may call this; anyone else
// fails with domain.ErrNotApprover.
//
// A request already approved or rejected fails with domain.ErrRequestClosed.
// Two racing approvals cannot produce two profiles: the profile insert is
// create-if-absent, so the loser fails before the status transition. A reject
// that wins the status transition after the profile insert rolls the profile
// back.
func (s *JoinRequestService) Approve(ctx context.Context, id uuid.UUID, approverEmail string) (*domain.Profile, error) {
	request, err := s.joinRequestRepo.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}

	if !strings.EqualFold(request.ApproverEmail, approverEmail) {
		return nil, fmt.Errorf("request %s: %w", request.ID, domain.ErrNotApprover)
	}

	if !request.IsPending() {
		return nil, fmt.Errorf("request %s is %s: %w", request.ID, request.Status, domain.ErrRequestClosed)
	}

	company, err := s.companyRepo.GetBySlug(ctx, request.CompanySlug)
	if err != nil {
		return nil, err
	}

	var credentialID uuid.UUID
	if request.CredentialID != nil {
		credentialID = *request.CredentialID
	} else {
		placeholder, err := generatePlaceholderPassword()
		if err != nil {
			return nil, err
		}

		credentialID, err = s.authenticator.CreateCredential(ctx, request.Email, placeholder)
		if err != nil {
			if errors.Is(err, domain.ErrEmailInUse) {
				// The email has a credential but the request carries no id, so
				// we cannot bind them. Manual path: reject and have the
				// requester sign up again while logged in.
				return nil, fmt.Errorf("request %s has no credential attached and email %q is taken; reject and ask the requester to resubmit: %w",
					request.ID, request.Email, domain.ErrEmailInUse)
			}
			return nil, err
		}

		if err := s.authenticator.SendPasswordReset(ctx, request.Email); err != nil {
			return nil, fmt.Errorf("credential created but reset mail failed for %q: %w", request.Email, err)
		}
	}

	profile := &domain.Profile{
		CompanySlug:  company.Slug,
		CredentialID: credentialID,
		Name:         request.Name,
		Email:        request.Email,
		Role:         request.RequestedRole,
		Status:       domain.StatusForRole(request.RequestedRole),
		CompanyName:  company.Name,
		CreatedAt:    time.Now(),
	}

	if err := s.profileRepo.Create(ctx, profile); err != nil {
		return nil, err
	}

	if err := s.joinRequestRepo.Close(ctx, id, domain.JoinRequestApproved); err != nil {
		if errors.Is(err, domain.ErrRequestClosed) {
			// A concurrent reject claimed the request between the profile
			// insert and here; the profile must not survive it.
			if delErr := s.profileRepo.Delete(ctx, profile.CompanySlug, profile.CredentialID); delErr != nil {
				log.Printf("[JOIN] Could not roll back profile for request %s: %v", request.ID, delErr)
			}
		}
		return nil, err
	}

	// Notification is best-effort; the approval already happened.
	if s.mailer != nil {
		if err := s.mailer.SendJoinApprovedEmail(ctx, request.Email, request.Name, company.Name); err != nil {
			log.Printf("[JOIN] Approval mail for request %s not sent: %v", request.ID, err)
		}
	}

	return profile, nil
}

// Reject closes a pending request without creating a profile. Terminal:
// rejected requests cannot be approved later. Only the addressed approver
// may call this.
func (s *JoinRequestService) Reject(ctx context.Context, id uuid.UUID, approverEmail string) error {
	request, err := s.joinRequestRepo.GetByID(ctx, id)
	if err != nil {
		return err
	}

	if !strings.EqualFold(request.ApproverEmail, approverEmail) {
		return fmt.Errorf("request %s: %w", request.ID, domain.ErrNotApprover)
	}

	return s.joinRequestRepo.Close(ctx, id, domain.JoinRequestRejected)
}

// generatePlaceholderPassword returns a random high-entropy password for
// credentials minted at approval time. Never shown to anyone; the requester
// sets a real one via the reset flow.
func generatePlaceholderPassword() (string, error) {
	buf := make([]byte, 32)
	if _, err := rand.Read(buf); err != nil {
		return "", fmt.Errorf("failed to generate placeholder password: %w", err)
	}
	return base64.RawURLEncoding.EncodeToString(buf), nil
}
