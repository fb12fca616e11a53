package postgres

import (
	"context"
	"errors"
	"time"

	"go-ats-core/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type candidateRepository struct {
	db *pgxpool.Pool
}

func NewCandidateRepository(db *pgxpool.Pool) domain.CandidateRepository {
	return &candidateRepository{db: db}
}

func (r *candidateRepository) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	query := `
		SELECT c.id, c.employer_id, c.full_name, c.email,
		       COALESCE(e.contact_email, ''), COALESCE(e.company_name, ''),
		       c.status, c.created_at, c.updated_at
		FROM candidates c
		LEFT JOIN employers e ON e.id = c.employer_id
		WHERE c.id = $1`

	var c domain.Candidate
	err := r.db.QueryRow(ctx, query, id).Scan(
		&c.ID, &c.EmployerID, &c.FullName, &c.Email,
		&c.OwnerEmail, &c.CompanyName,
		&c.Status, &c.CreatedAt, &c.UpdatedAt,
	)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &c, nil
}

func (r *candidateRepository) FindByStatusUpdatedBefore(ctx context.Context, status string, before time.Time, limit int) ([]domain.Candidate, error) {
	// Oldest first so a backlog larger than the cap drains across sweeps.
	query := `
		SELECT c.id, c.employer_id, c.full_name, c.email,
		       COALESCE(e.contact_email, ''), COALESCE(e.company_name, ''),
		       c.status, c.created_at, c.updated_at
		FROM candidates c
		LEFT JOIN employers e ON e.id = c.employer_id
		WHERE c.status = $1 AND c.updated_at < $2
		ORDER BY c.updated_at
		LIMIT $3`

	rows, err := r.db.Query(ctx, query, status, before, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		err := rows.Scan(
			&c.ID, &c.EmployerID, &c.FullName, &c.Email,
			&c.OwnerEmail, &c.CompanyName,
			&c.Status, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) FindByStatusWithInterviewBetween(ctx context.Context, status string, from, to time.Time, limit int) ([]domain.Candidate, error) {
	query := `
		SELECT DISTINCT ON (c.id)
		       c.id, c.employer_id, c.full_name, c.email,
		       COALESCE(e.contact_email, ''), COALESCE(e.company_name, ''),
		       i.scheduled_at,
		       c.status, c.created_at, c.updated_at
		FROM candidates c
		JOIN interviews i ON i.candidate_id = c.id
		LEFT JOIN employers e ON e.id = c.employer_id
		WHERE c.status = $1
		  AND i.status = $2
		  AND i.scheduled_at >= $3 AND i.scheduled_at < $4
		ORDER BY c.id, i.scheduled_at
		LIMIT $5`

	rows, err := r.db.Query(ctx, query, status, domain.InterviewStatusScheduled, from, to, limit)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var candidates []domain.Candidate
	for rows.Next() {
		var c domain.Candidate
		var nextAt time.Time
		err := rows.Scan(
			&c.ID, &c.EmployerID, &c.FullName, &c.Email,
			&c.OwnerEmail, &c.CompanyName,
			&nextAt,
			&c.Status, &c.CreatedAt, &c.UpdatedAt,
		)
		if err != nil {
			return nil, err
		}
		c.NextInterviewAt = &nextAt
		candidates = append(candidates, c)
	}
	return candidates, rows.Err()
}

func (r *candidateRepository) UpdateStatusIfUnchanged(ctx context.Context, id int64, fromStatus, toStatus string, seenUpdatedAt time.Time) (bool, error) {
	// Optimistic concurrency: the sweep loses to any human edit that
	// moved the row between our read and this write.
	query := `
		UPDATE candidates
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = $3 AND updated_at = $4`

	cmdTag, err := r.db.Exec(ctx, query, toStatus, id, fromStatus, seenUpdatedAt)
	if err != nil {
		return false, err
	}
	return cmdTag.RowsAffected() > 0, nil
}
