package repository

import (
	"context"

	"github.com/google/uuid"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
)

type JoinRequestRepository interface {
	Create(ctx context.Context, request *domain.JoinRequest) error
	GetByID(ctx context.Context, id uuid.UUID) (*domain.JoinRequest, error)
	ListPendingByApprover(ctx context.Context, approverEmail string) ([]*domain.JoinRequest, error)
	// Close transitions the request out of pending. It fails with
	// domain.ErrRequestClosed when the request is no longer pending, which
	// makes approve/reject exactly-once even under concurrent approvers.
	Close(ctx context.Context, id uuid.UUID, to domain.JoinRequestStatus) error
}
