package models

import (
	"time"

	"github.com/google/uuid"
)

// Team is the set of students working a project. A project has at most one
// team.
type Team struct {
	ID        uuid.UUID `json:"id"`
	ProjectID uuid.UUID `json:"project_id"`
	CreatedAt time.Time `json:"created_at"`
}

// TeamMember binds one accepted student to one project role within a team.
// A role is occupied by at most one member.
type TeamMember struct {
	ID        uuid.UUID `json:"id"`
	TeamID    uuid.UUID `json:"team_id"`
	StudentID uuid.UUID `json:"student_id"`
	RoleID    uuid.UUID `json:"role_id"`
	CreatedAt time.Time `json:"created_at"`
}
