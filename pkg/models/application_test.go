package models

import "testing"

func TestCanTransitionApplication(t *testing.T) {
	tests := []struct {
		from    ApplicationStatus
		to      ApplicationStatus
		allowed bool
	}{
		{ApplicationApplied, ApplicationShortlisted, true},
		{ApplicationApplied, ApplicationRejected, true},
		{ApplicationApplied, ApplicationAccepted, true},
		{ApplicationShortlisted, ApplicationAccepted, true},
		{ApplicationShortlisted, ApplicationRejected, true},
		{ApplicationShortlisted, ApplicationApplied, false},
		{ApplicationRejected, ApplicationAccepted, false},
		{ApplicationAccepted, ApplicationRejected, false},
		{ApplicationAccepted, ApplicationAccepted, false},
	}

	for _, tt := range tests {
		if got := CanTransitionApplication(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransitionApplication(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestCanTransitionTaskTransitions(t *testing.T) {
	tests := []struct {
		from    TaskStatus
		to      TaskStatus
		allowed bool
	}{
		{TaskTodo, TaskInProgress, true},
		{TaskInProgress, TaskInReview, true},
		{TaskInReview, TaskDone, true},
		{TaskInReview, TaskInProgress, true},
		{TaskTodo, TaskDone, false},
		{TaskTodo, TaskInReview, false},
		{TaskDone, TaskInProgress, false},
		{TaskInProgress, TaskDone, false},
	}

	for _, tt := range tests {
		if got := CanTransitionTask(tt.from, tt.to); got != tt.allowed {
			t.Errorf("CanTransitionTask(%s, %s) = %v, want %v", tt.from, tt.to, got, tt.allowed)
		}
	}
}

func TestIsValidAccountRole(t *testing.T) {
	for _, r := range ValidAccountRoles {
		if !IsValidAccountRole(r) {
			t.Errorf("expected %s to be valid", r)
		}
	}
	if IsValidAccountRole("SUPERUSER") {
		t.Error("SUPERUSER should not be valid")
	}
}
