// Package models contains the domain types for TechBridge.
package models

import (
	"time"

	"github.com/google/uuid"
)

// AccountRole is the platform-level role of a user account.
// Not to be confused with ProjectRole, a paid position on a project team.
type AccountRole string

const (
	AccountRoleAdmin   AccountRole = "ADMIN"
	AccountRoleStudent AccountRole = "STUDENT"
	AccountRoleClient  AccountRole = "CLIENT"
)

// ValidAccountRoles contains all valid account role values.
var ValidAccountRoles = []AccountRole{AccountRoleAdmin, AccountRoleStudent, AccountRoleClient}

// IsValidAccountRole checks if the given role is valid.
func IsValidAccountRole(role AccountRole) bool {
	for _, r := range ValidAccountRoles {
		if r == role {
			return true
		}
	}
	return false
}

// User is a registered account. The account role is fixed at registration;
// there is no promotion flow.
type User struct {
	ID           uuid.UUID   `json:"id"`
	Email        string      `json:"email"`
	PasswordHash string      `json:"-"`
	DisplayName  string      `json:"display_name"`
	Role         AccountRole `json:"role"`
	CreatedAt    time.Time   `json:"created_at"`
	UpdatedAt    time.Time   `json:"updated_at"`
}

// StudentProfile holds a student's freelancer profile. A student may not
// apply to project roles until an admin has approved the profile. Editing
// the profile clears the approval.
type StudentProfile struct {
	UserID     uuid.UUID  `json:"user_id"`
	Bio        string     `json:"bio"`
	Skills     []string   `json:"skills"`
	Approved   bool       `json:"approved"`
	ReviewedBy *uuid.UUID `json:"reviewed_by,omitempty"`
	CreatedAt  time.Time  `json:"created_at"`
	UpdatedAt  time.Time  `json:"updated_at"`
}
