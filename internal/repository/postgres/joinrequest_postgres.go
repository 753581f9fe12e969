package postgres

import (
	"context"
	"database/sql"
	"errors"
	"fmt"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"

	"github.com/Raj-Shinde-045/office-do-or-due/internal/domain"
	"github.com/Raj-Shinde-045/office-do-or-due/internal/repository"
)

type joinRequestRepository struct {
	db *sqlx.DB
}

// NewJoinRequestRepository creates a new PostgreSQL join request repository
func NewJoinRequestRepository(db *sqlx.DB) repository.JoinRequestRepository {
	return &joinRequestRepository{db: db}
}

// Create inserts a new join request. Duplicate submissions by the same
// requester are allowed; the approver surface is expected to tolerate them.
func (r *joinRequestRepository) Create(ctx context.Context, request *domain.JoinRequest) error {
	query := `
		INSERT INTO join_requests (
			id, company_slug, name, email, credential_id, requested_role,
			approver_email, status, created_at, updated_at
		) VALUES (
			:id, :company_slug, :name, :email, :credential_id, :requested_role,
			:approver_email, :status, :created_at, :updated_at
		)`

	_, err := r.db.NamedExecContext(ctx, query, request)
	if err != nil {
		return fmt.Errorf("failed to create join request: %w", err)
	}

	return nil
}

// GetByID retrieves a join request by its ID
func (r *joinRequestRepository) GetByID(ctx context.Context, id uuid.UUID) (*domain.JoinRequest, error) {
	query := `
		SELECT id, company_slug, name, email, credential_id, requested_role,
			   approver_email, status, created_at, updated_at
		FROM join_requests
		WHERE id = $1`

	var request domain.JoinRequest
	err := r.db.GetContext(ctx, &request, query, id)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return nil, domain.ErrRequestNotFound
		}
		return nil, fmt.Errorf("failed to get join request: %w", err)
	}

	return &request, nil
}

// ListPendingByApprover retrieves pending requests addressed to one approver
func (r *joinRequestRepository) ListPendingByApprover(ctx context.Context, approverEmail string) ([]*domain.JoinRequest, error) {
	query := `
		SELECT id, company_slug, name, email, credential_id, requested_role,
			   approver_email, status, created_at, updated_at
		FROM join_requests
		WHERE approver_email = $1 AND status = 'pending'
		ORDER BY created_at ASC`

	var requests []*domain.JoinRequest
	err := r.db.SelectContext(ctx, &requests, query, approverEmail)
	if err != nil {
		return nil, fmt.Errorf("failed to list pending join requests: %w", err)
	}

	return requests, nil
}

// Close transitions a pending request to a terminal status. The WHERE guard
// on status makes the transition exactly-once under concurrent approvers.
func (r *joinRequestRepository) Close(ctx context.Context, id uuid.UUID, to domain.JoinRequestStatus) error {
	query := `
		UPDATE join_requests
		SET status = $2, updated_at = NOW()
		WHERE id = $1 AND status = 'pending'`

	result, err := r.db.ExecContext(ctx, query, id, to)
	if err != nil {
		return fmt.Errorf("failed to close join request: %w", err)
	}

	rows, err := result.RowsAffected()
	if err != nil {
		return fmt.Errorf("failed to get rows affected: %w", err)
	}

	if rows == 0 {
		return domain.ErrRequestClosed
	}

	return nil
}
