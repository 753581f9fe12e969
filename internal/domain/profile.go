package domain

import (
	"time"

	"github.com/google/uuid"
)

// Role is the tenant-scoped role a profile holds within one company.
type Role string

const (
	RoleEmployee Role = "employee"
	RoleManager  Role = "manager"
	RoleAdmin    Role = "admin"
)

// CodeRoles lists the roles redeemable via company access codes, in the
// order codes are checked during resolution. Manager is checked first so a
// code can never ambiguously match two roles.
var CodeRoles = []Role{RoleManager, RoleEmployee}

// RoleTags maps code-redeemable roles to the tag embedded in license keys.
var RoleTags = map[Role]string{
	RoleManager:  "MGR",
	RoleEmployee: "EMP",
}

// IsValid reports whether r is a known tenant role.
func (r Role) IsValid() bool {
	switch r {
	case RoleEmployee, RoleManager, RoleAdmin:
		return true
	}
	return false
}

// ProfileStatus represents the lifecycle state of a company membership.
type ProfileStatus string

const (
	ProfileStatusActive  ProfileStatus = "active"
	ProfileStatusPending ProfileStatus = "pending"
	// ProfileStatusAdmin marks elevated memberships created outside the
	// self-service employee path; they remain in this bootstrap state until
	// administrative review.
	ProfileStatusAdmin ProfileStatus = "admin"
)

// StatusForRole returns the default status a newly created profile gets.
// Employees are active immediately; elevated roles start in the admin
// bootstrap state.
func StatusForRole(role Role) ProfileStatus {
	if role == RoleEmployee {
		return ProfileStatusActive
	}
	return ProfileStatusAdmin
}

// Profile binds one credential to one company with a role. Keyed by
// (company_slug, credential_id): a credential may hold at most one profile
// per company but any number across companies.
type Profile struct {
	CompanySlug  string        `json:"company_slug" db:"company_slug"`
	CredentialID uuid.UUID     `json:"credential_id" db:"credential_id"`
	Name         string        `json:"name" db:"name"`
	Email        string        `json:"email" db:"email"`
	Role         Role          `json:"role" db:"role"`
	Status       ProfileStatus `json:"status" db:"status"`
	CompanyName  string        `json:"company_name" db:"company_name"`
	IsSuperAdmin bool          `json:"is_super_admin" db:"is_super_admin"`
	CreatedAt    time.Time     `json:"created_at" db:"created_at"`
	LastLoginAt  *time.Time    `json:"last_login_at,omitempty" db:"last_login_at"`
}
