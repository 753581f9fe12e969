package domain

import "errors"

// Sentinel errors shared across services. Services wrap these with
// fmt.Errorf("...: %w", ...) to attach the detail a caller needs to correct
// course (which company, which email); handlers match with errors.Is to map
// them onto HTTP statuses.
var (
	// Validation
	ErrCodeRequired = errors.New("access code is required")
	ErrNameRequired = errors.New("company name is required")

	// Not found (absence is expected, not exceptional)
	ErrInvalidCode     = errors.New("no company matches this access code")
	ErrProfileNotFound = errors.New("no company profile exists for this credential")
	ErrCompanyNotFound = errors.New("company not found")
	ErrRequestNotFound = errors.New("join request not found")

	// Conflict (recoverable only via an alternate path)
	ErrCompanyExists   = errors.New("company already exists")
	ErrAlreadyMember   = errors.New("credential already has a profile in this company")
	ErrEmailInUse      = errors.New("email is already registered")
	ErrCompanyMismatch = errors.New("access code belongs to a different company")
	ErrCodeTaken       = errors.New("generated access code collides with an existing one")
	ErrRequestClosed   = errors.New("join request is no longer pending")

	// Auth failure (user-correctable)
	ErrInvalidCredentials = errors.New("invalid email or password")
	// ErrNotApprover rejects approve/reject calls from anyone other than the
	// approver the request is addressed to.
	ErrNotApprover = errors.New("join request is addressed to a different approver")
	// ErrWrongPasswordForExisting distinguishes "this email already has an
	// account and the password did not match" from every other signup
	// failure, so the caller can suggest password recovery instead of retry.
	ErrWrongPasswordForExisting = errors.New("an account with this email exists but the password is incorrect")
)
