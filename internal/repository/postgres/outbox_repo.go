package postgres

import (
	"context"
	"encoding/json"
	"fmt"
	"time"

	"go-ats-core/internal/domain"

	"github.com/jackc/pgx/v5/pgxpool"
)

type outboxRepository struct {
	db *pgxpool.Pool
}

func NewOutboxRepository(db *pgxpool.Pool) domain.OutboxRepository {
	return &outboxRepository{db: db}
}

func (r *outboxRepository) Enqueue(ctx context.Context, mail *domain.QueuedEmail) error {
	vars, err := json.Marshal(mail.Variables)
	if err != nil {
		return fmt.Errorf("failed to encode template variables: %w", err)
	}

	query := `
		INSERT INTO email_outbox (
			candidate_id, recipient, template_id, variables,
			scheduled_for, status, attempts, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, 0, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		mail.CandidateID, mail.Recipient, mail.TemplateID, vars,
		mail.ScheduledFor, domain.OutboxStatusPending,
	).Scan(&mail.ID, &mail.CreatedAt, &mail.UpdatedAt)
}

func (r *outboxRepository) FetchDue(ctx context.Context, now time.Time, limit int) ([]domain.QueuedEmail, error) {
	// Failed rows come back until they dead-letter; dead and sent rows
	// are never picked up again.
	query := `
		SELECT id, candidate_id, recipient, template_id, variables,
		       scheduled_for, status, attempts, last_error, created_at, updated_at
		FROM email_outbox
		WHERE status IN ($1, $2) AND scheduled_for <= $3
		ORDER BY scheduled_for
		LIMIT $4`

	rows, err := r.db.Query(ctx, query,
		domain.OutboxStatusPending, domain.OutboxStatusFailed, now, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var mails []domain.QueuedEmail
	for rows.Next() {
		var mail domain.QueuedEmail
		var vars []byte
		err := rows.Scan(
			&mail.ID, &mail.CandidateID, &mail.Recipient, &mail.TemplateID, &vars,
			&mail.ScheduledFor, &mail.Status, &mail.Attempts, &mail.LastError,
			&mail.CreatedAt, &mail.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		if len(vars) > 0 {
			if err := json.Unmarshal(vars, &mail.Variables); err != nil {
				return nil, fmt.Errorf("failed to decode template variables for row %d: %w", mail.ID, err)
			}
		}
		mails = append(mails, mail)
	}
	return mails, rows.Err()
}

func (r *outboxRepository) MarkSent(ctx context.Context, id int64) error {
	query := `
		UPDATE email_outbox
		SET status = $1, attempts = attempts + 1, last_error = NULL, updated_at = NOW()
		WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, domain.OutboxStatusSent, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *outboxRepository) MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) (bool, error) {
	query := `
		UPDATE email_outbox
		SET attempts = attempts + 1,
		    last_error = $1,
		    status = CASE WHEN attempts + 1 >= $2 THEN $3 ELSE $4 END,
		    updated_at = NOW()
		WHERE id = $5
		RETURNING status`

	var status string
	err := r.db.QueryRow(ctx, query,
		reason, maxAttempts, domain.OutboxStatusDead, domain.OutboxStatusFailed, id,
	).Scan(&status)
	if err != nil {
		return false, err
	}
	return status == domain.OutboxStatusDead, nil
}

func (r *outboxRepository) ExistsSince(ctx context.Context, candidateID int64, templateID string, since time.Time) (bool, error) {
	query := `
		SELECT EXISTS (
			SELECT 1 FROM email_outbox
			WHERE candidate_id = $1 AND template_id = $2
			  AND scheduled_for >= $3 AND status <> $4
		)`

	var exists bool
	err := r.db.QueryRow(ctx, query,
		candidateID, templateID, since, domain.OutboxStatusDead,
	).Scan(&exists)
	if err != nil {
		return false, err
	}
	return exists, nil
}

func (r *outboxRepository) CountByStatus(ctx context.Context) (map[string]int64, error) {
	query := `SELECT status, COUNT(*) FROM email_outbox GROUP BY status`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	counts := make(map[string]int64)
	for rows.Next() {
		var status string
		var count int64
		if err := rows.Scan(&status, &count); err != nil {
			return nil, err
		}
		counts[status] = count
	}
	return counts, rows.Err()
}
