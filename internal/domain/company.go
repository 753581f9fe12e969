package domain

import (
	"regexp"
	"strings"
	"time"
)

// SubscriptionStatus represents the billing state of a company
type SubscriptionStatus string

const (
	SubscriptionActive    SubscriptionStatus = "active"
	SubscriptionSuspended SubscriptionStatus = "suspended"
)

// Company represents a tenant. The slug doubles as the document key and is
// immutable after creation.
type Company struct {
	Slug               string             `json:"slug" db:"slug"`
	Name               string             `json:"name" db:"name"`
	ManagerCode        string             `json:"manager_code" db:"manager_code"`
	EmployeeCode       string             `json:"employee_code" db:"employee_code"`
	SubscriptionStatus SubscriptionStatus `json:"subscription_status" db:"subscription_status"`
	CreatedAt          time.Time          `json:"created_at" db:"created_at"`
}

var slugPattern = regexp.MustCompile(`[^a-z0-9]+`)

// SlugFromName derives the company slug from its display name: lowercase,
// runs of non-alphanumeric characters collapsed to a single hyphen.
func SlugFromName(name string) string {
	slug := strings.ToLower(strings.TrimSpace(name))
	slug = slugPattern.ReplaceAllString(slug, "-")
	slug = strings.Trim(slug, "-")
	if len(slug) > 100 {
		slug = slug[:100]
	}
	return slug
}

// AccessCodeForRole returns the license code the company issues for a role,
// or "" if the role is not code-redeemable (admin goes through join requests).
func (c *Company) AccessCodeForRole(role Role) string {
	switch role {
	case RoleManager:
		return c.ManagerCode
	case RoleEmployee:
		return c.EmployeeCode
	}
	return ""
}
