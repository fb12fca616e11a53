package domain

import (
	"context"
	"time"
)

// Outbox row status constants
const (
	OutboxStatusPending = "pending"
	OutboxStatusSent    = "sent"
	OutboxStatusFailed  = "failed"
	OutboxStatusDead    = "dead"
)

// EmailTemplate is a catalog entry with {{name}} placeholders in
// subject and body.
type EmailTemplate struct {
	ID        string   `json:"id"`
	Subject   string   `json:"subject"`
	Body      string   `json:"body"`
	Variables []string `json:"variables"`
}

// QueuedEmail is a durable outbox row. Rows stay pending until a drain
// delivers them; failures accumulate attempts and are dead-lettered at
// the configured maximum.
type QueuedEmail struct {
	ID           int64             `json:"id"`
	CandidateID  int64             `json:"candidate_id"`
	Recipient    string            `json:"recipient"`
	TemplateID   string            `json:"template_id"`
	Variables    map[string]string `json:"variables"`
	ScheduledFor time.Time         `json:"scheduled_for"`
	Status       string            `json:"status"`
	Attempts     int               `json:"attempts"`
	LastError    *string           `json:"last_error,omitempty"`
	CreatedAt    time.Time         `json:"created_at"`
	UpdatedAt    time.Time         `json:"updated_at"`
}

type OutboxRepository interface {
	Enqueue(ctx context.Context, mail *QueuedEmail) error
	// FetchDue returns pending/failed rows with scheduled_for <= now.
	FetchDue(ctx context.Context, now time.Time, limit int) ([]QueuedEmail, error)
	MarkSent(ctx context.Context, id int64) error
	// MarkFailed records the error and increments attempts; rows reaching
	// maxAttempts move to the dead status and are never retried. Returns
	// true when the row was dead-lettered by this call.
	MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) (bool, error)
	// ExistsSince reports whether a non-dead row for the candidate and
	// template was queued at or after the given time. Reminder rules use
	// it to queue each reminder once per window instead of once per sweep.
	ExistsSince(ctx context.Context, candidateID int64, templateID string, since time.Time) (bool, error)
	CountByStatus(ctx context.Context) (map[string]int64, error)
}

// EmailSender is the outbound delivery collaborator (SMTP in production).
type EmailSender interface {
	Send(ctx context.Context, to, subject, body string) error
	IsConfigured() bool
}

// DrainResult summarizes one outbox drain pass.
type DrainResult struct {
	Sent   int `json:"sent"`
	Failed int `json:"failed"`
	Dead   int `json:"dead"`
}

type OutboxUsecase interface {
	Drain(ctx context.Context) (*DrainResult, error)
	Stats(ctx context.Context) (map[string]int64, error)
}
