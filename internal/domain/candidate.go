package domain

import (
	"context"
	"time"
)

// Candidate pipeline status constants.
// Forward-progressing transitions come from user actions; the automation
// engine only pushes toward rejected or emits side-effect emails.
const (
	CandidateStatusIncomplete         = "incomplete"
	CandidateStatusActive             = "active"
	CandidateStatusInactive           = "inactive"
	CandidateStatusScreening          = "screening"
	CandidateStatusScreened           = "screened"
	CandidateStatusInterviewScheduled = "interview_scheduled"
	CandidateStatusInterviewCompleted = "interview_completed"
	CandidateStatusOffered            = "offered"
	CandidateStatusRejected           = "rejected"
)

type Candidate struct {
	ID         int64  `json:"id"`
	EmployerID string `json:"employer_id"`
	FullName   string `json:"full_name"`
	Email      string `json:"email"`
	// OwnerEmail and CompanyName are employer columns joined in by the
	// repository, used for owner notifications and template variables.
	OwnerEmail  string `json:"owner_email,omitempty"`
	CompanyName string `json:"company_name,omitempty"`
	// NextInterviewAt is populated by FindByStatusWithInterviewBetween.
	NextInterviewAt *time.Time `json:"next_interview_at,omitempty"`
	Status          string     `json:"status"`
	CreatedAt       time.Time  `json:"created_at"`
	UpdatedAt       time.Time  `json:"updated_at"`
}

type CandidateRepository interface {
	GetByID(ctx context.Context, id int64) (*Candidate, error)
	// FindByStatusUpdatedBefore returns candidates in the given status whose
	// last update is older than the threshold, capped at limit rows.
	FindByStatusUpdatedBefore(ctx context.Context, status string, before time.Time, limit int) ([]Candidate, error)
	// FindByStatusWithInterviewBetween returns candidates in the given status
	// that have a scheduled interview starting inside [from, to).
	FindByStatusWithInterviewBetween(ctx context.Context, status string, from, to time.Time, limit int) ([]Candidate, error)
	// UpdateStatusIfUnchanged performs an optimistic compare-and-set: the
	// write only lands if the row still carries the status and updated_at
	// the sweep read. Returns false when a concurrent edit won. Calling
	// with toStatus == fromStatus is a guarded touch of updated_at.
	UpdateStatusIfUnchanged(ctx context.Context, id int64, fromStatus, toStatus string, seenUpdatedAt time.Time) (bool, error)
}
