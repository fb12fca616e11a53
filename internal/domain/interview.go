package domain

import (
	"context"
	"errors"
	"time"
)

// Common domain errors
var ErrNotFound = errors.New("resource not found")

// Interview status constants
const (
	InterviewStatusScheduled   = "scheduled"
	InterviewStatusCompleted   = "completed"
	InterviewStatusCancelled   = "cancelled"
	InterviewStatusRescheduled = "rescheduled"
)

// Interview type constants
const (
	InterviewTypePhone     = "phone"
	InterviewTypeVideo     = "video"
	InterviewTypeOnsite    = "onsite"
	InterviewTypeTechnical = "technical"
)

type Interview struct {
	ID              int64     `json:"id"`
	EmployerID      string    `json:"employer_id"`
	CandidateID     int64     `json:"candidate_id"`
	JobID           int64     `json:"job_id"`
	ScheduledAt     time.Time `json:"scheduled_at"`
	DurationMinutes int       `json:"duration_minutes"`
	Type            string    `json:"type"`
	Status          string    `json:"status"`
	Location        *string   `json:"location,omitempty"`
	MeetingLink     *string   `json:"meeting_link,omitempty"`
	Notes           *string   `json:"notes,omitempty"`
	CreatedAt       time.Time `json:"created_at"`
	UpdatedAt       time.Time `json:"updated_at"`
}

// EndsAt returns the exclusive end of the interview window.
// The occupied window is [ScheduledAt, EndsAt).
func (i *Interview) EndsAt() time.Time {
	return i.ScheduledAt.Add(time.Duration(i.DurationMinutes) * time.Minute)
}

type ConflictCheckRequest struct {
	EmployerID      string    `json:"employer_id" validate:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
}

type ConflictCheckResult struct {
	HasConflict bool        `json:"has_conflict"`
	Conflicts   []Interview `json:"conflicts"`
}

type SlotSuggestionRequest struct {
	EmployerID      string    `json:"employer_id" validate:"required"`
	PreferredDate   time.Time `json:"preferred_date" validate:"required"`
	DurationMinutes int       `json:"duration_minutes" validate:"required,gt=0"`
	Count           int       `json:"count" validate:"required,gt=0,lte=20"`
}

type SlotSuggestionResult struct {
	Suggestions []time.Time `json:"suggestions"`
}

type InterviewRepository interface {
	Create(ctx context.Context, interview *Interview) error
	GetByID(ctx context.Context, id int64) (*Interview, error)
	// FetchActiveByEmployer returns every non-cancelled interview for the employer.
	FetchActiveByEmployer(ctx context.Context, employerID string) ([]Interview, error)
	// FetchByEmployer lists interviews for the employer, optionally
	// restricted to the given statuses (nil means all).
	FetchByEmployer(ctx context.Context, employerID string, statuses []string, limit, offset int) ([]Interview, int64, error)
	UpdateStatus(ctx context.Context, id int64, status string) error
}

type SchedulingUsecase interface {
	ScheduleInterview(ctx context.Context, interview *Interview) error
	GetInterview(ctx context.Context, id int64) (*Interview, error)
	ListByEmployer(ctx context.Context, employerID string, statuses []string, page, pageSize int) ([]Interview, int64, error)
	UpdateInterviewStatus(ctx context.Context, id int64, status string) error
	CheckConflicts(ctx context.Context, req ConflictCheckRequest) (*ConflictCheckResult, error)
	SuggestSlots(ctx context.Context, req SlotSuggestionRequest) (*SlotSuggestionResult, error)
}
