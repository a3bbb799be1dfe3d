package models

import (
	"time"

	"github.com/google/uuid"
)

// ProjectStatus is the lifecycle state of a project.
type ProjectStatus string

const (
	ProjectPending    ProjectStatus = "PENDING"
	ProjectOpen       ProjectStatus = "OPEN"
	ProjectInProgress ProjectStatus = "IN_PROGRESS"
	ProjectDelivered  ProjectStatus = "DELIVERED"
	ProjectCompleted  ProjectStatus = "COMPLETED"
	ProjectCancelled  ProjectStatus = "CANCELLED"
)

// projectTransitions is the single source of truth for legal project status
// changes. Terminal states (COMPLETED, CANCELLED) have no outgoing edges, so
// re-entering a terminal state is always rejected.
var projectTransitions = map[ProjectStatus][]ProjectStatus{
	ProjectPending:    {ProjectOpen, ProjectCancelled},
	ProjectOpen:       {ProjectInProgress, ProjectCancelled},
	ProjectInProgress: {ProjectDelivered, ProjectCompleted},
	ProjectDelivered:  {ProjectCompleted},
	ProjectCompleted:  {},
	ProjectCancelled:  {},
}

// CanTransitionProject reports whether a project may move from one status to
// another.
func CanTransitionProject(from, to ProjectStatus) bool {
	for _, next := range projectTransitions[from] {
		if next == to {
			return true
		}
	}
	return false
}

// IsValidProjectStatus checks if the given status is a known project status.
func IsValidProjectStatus(s ProjectStatus) bool {
	_, ok := projectTransitions[s]
	return ok
}

// IsTerminalProjectStatus reports whether the status has no outgoing
// transitions.
func IsTerminalProjectStatus(s ProjectStatus) bool {
	next, ok := projectTransitions[s]
	return ok && len(next) == 0
}

// Project is a client-requested piece of work. Budget is stored in cents to
// keep the salary split arithmetic exact. Version backs optimistic
// concurrency on status changes.
type Project struct {
	ID            uuid.UUID     `json:"id"`
	Title         string        `json:"title"`
	Description   string        `json:"description"`
	BudgetCents   int64         `json:"budget_cents"`
	Status        ProjectStatus `json:"status"`
	ClientID      uuid.UUID     `json:"client_id"`
	ReviewedBy    *uuid.UUID    `json:"reviewed_by,omitempty"`
	Funded        bool          `json:"funded"`
	DistributedAt *time.Time    `json:"distributed_at,omitempty"`
	Version       int           `json:"version"`
	CreatedAt     time.Time     `json:"created_at"`
	UpdatedAt     time.Time     `json:"updated_at"`
}

// ProjectRole is a paid position on a project. SalarySplit is the percentage
// of the project budget allocated to the position. The sum of splits across
// a project's roles must not exceed 100.
type ProjectRole struct {
	ID          uuid.UUID `json:"id"`
	ProjectID   uuid.UUID `json:"project_id"`
	Name        string    `json:"name"`
	SalarySplit int       `json:"salary_split"`
	Skills      []string  `json:"skills"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}

// Payout is one computed salary distribution entry. Payouts are derived from
// budget and splits on demand; they are not persisted as a ledger.
type Payout struct {
	StudentID   uuid.UUID `json:"student_id"`
	RoleID      uuid.UUID `json:"role_id"`
	RoleName    string    `json:"role_name"`
	AmountCents int64     `json:"amount_cents"`
}
