package domain

import (
	"time"

	"github.com/google/uuid"
)

// JoinRequestStatus represents the state of a join request. Transitions are
// one-way: pending -> approved or pending -> rejected.
type JoinRequestStatus string

const (
	JoinRequestPending  JoinRequestStatus = "pending"
	JoinRequestApproved JoinRequestStatus = "approved"
	JoinRequestRejected JoinRequestStatus = "rejected"
)

// JoinRequest is a pending role-elevation ask awaiting a human approver.
// CredentialID is set when the requester authenticated before submitting;
// legacy requests without one require a credential to be minted at approval
// time.
type JoinRequest struct {
	ID            uuid.UUID         `json:"id" db:"id"`
	CompanySlug   string            `json:"company_slug" db:"company_slug"`
	Name          string            `json:"name" db:"name"`
	Email         string            `json:"email" db:"email"`
	CredentialID  *uuid.UUID        `json:"credential_id,omitempty" db:"credential_id"`
	RequestedRole Role              `json:"requested_role" db:"requested_role"`
	ApproverEmail string            `json:"approver_email" db:"approver_email"`
	Status        JoinRequestStatus `json:"status" db:"status"`
	CreatedAt     time.Time         `json:"created_at" db:"created_at"`
	UpdatedAt     time.Time         `json:"updated_at" db:"updated_at"`
}

// IsPending reports whether the request can still be approved or rejected.
func (r *JoinRequest) IsPending() bool {
	return r.Status == JoinRequestPending
}
