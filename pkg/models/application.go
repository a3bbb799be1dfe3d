package models

import (
	"time"

	"github.com/google/uuid"
)

// ApplicationStatus is the review state of a student's application to a
// project role.
type ApplicationStatus string

const (
	ApplicationApplied     ApplicationStatus = "APPLIED"
	ApplicationShortlisted ApplicationStatus = "SHORTLISTED"
	ApplicationRejected    ApplicationStatus = "REJECTED"
	ApplicationAccepted    ApplicationStatus = "ACCEPTED"
)

var applicationTransitions = map[ApplicationStatus][]ApplicationStatus{
	ApplicationApplied:     {ApplicationShortlisted, ApplicationRejected, ApplicationAccepted},
	ApplicationShortlisted: {ApplicationRejected, ApplicationAccepted},
	ApplicationRejected:    {},
	ApplicationAccepted:    {},
}

// CanTransitionApplication reports whether an application may move from one
// status to another.
func CanTransitionApplication(from, to ApplicationStatus) bool {
	for _, next := range applicationTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidApplicationStatus checks if the given status is a known application
// status.
func IsValidApplicationStatus(s ApplicationStatus) bool {
	_, ok := applicationTransitions[s]
	return ok
}

// Application links a student to a project role they want to fill. At most
// one application per role may ever reach ACCEPTED.
type Application struct {
	ID        uuid.UUID         `json:"id"`
	RoleID    uuid.UUID         `json:"role_id"`
	StudentID uuid.UUID         `json:"student_id"`
	Notes     string            `json:"notes"`
	Status    ApplicationStatus `json:"status"`
	CreatedAt time.Time         `json:"created_at"`
	UpdatedAt time.Time         `json:"updated_at"`
}
