package postgres

import (
	"context"
	"errors"

	"go-ats-core/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
	"github.com/lib/pq"
)

type interviewRepository struct {
	db *pgxpool.Pool
}

func NewInterviewRepository(db *pgxpool.Pool) domain.InterviewRepository {
	return &interviewRepository{db: db}
}

const interviewColumns = `
	id, employer_id, candidate_id, job_id, scheduled_at, duration_minutes,
	type, status, location, meeting_link, notes, created_at, updated_at`

func scanInterview(row pgx.Row, iv *domain.Interview) error {
	return row.Scan(
		&iv.ID, &iv.EmployerID, &iv.CandidateID, &iv.JobID,
		&iv.ScheduledAt, &iv.DurationMinutes, &iv.Type, &iv.Status,
		&iv.Location, &iv.MeetingLink, &iv.Notes, &iv.CreatedAt, &iv.UpdatedAt,
	)
}

func (r *interviewRepository) Create(ctx context.Context, iv *domain.Interview) error {
	query := `
		INSERT INTO interviews (
			employer_id, candidate_id, job_id, scheduled_at, duration_minutes,
			type, status, location, meeting_link, notes, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, NOW(), NOW())
		RETURNING id, created_at, updated_at`

	return r.db.QueryRow(ctx, query,
		iv.EmployerID, iv.CandidateID, iv.JobID, iv.ScheduledAt, iv.DurationMinutes,
		iv.Type, iv.Status, iv.Location, iv.MeetingLink, iv.Notes,
	).Scan(&iv.ID, &iv.CreatedAt, &iv.UpdatedAt)
}

func (r *interviewRepository) GetByID(ctx context.Context, id int64) (*domain.Interview, error) {
	query := `SELECT ` + interviewColumns + ` FROM interviews WHERE id = $1`

	var iv domain.Interview
	err := scanInterview(r.db.QueryRow(ctx, query, id), &iv)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &iv, nil
}

func (r *interviewRepository) FetchActiveByEmployer(ctx context.Context, employerID string) ([]domain.Interview, error) {
	// Cancelled interviews never participate in conflict checks.
	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE employer_id = $1 AND status <> $2
		ORDER BY scheduled_at`

	rows, err := r.db.Query(ctx, query, employerID, domain.InterviewStatusCancelled)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := scanInterview(rows, &iv); err != nil {
			return nil, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, rows.Err()
}

func (r *interviewRepository) FetchByEmployer(ctx context.Context, employerID string, statuses []string, limit, offset int) ([]domain.Interview, int64, error) {
	var statusFilter interface{}
	if len(statuses) > 0 {
		statusFilter = pq.Array(statuses)
	}

	var total int64
	countQuery := `
		SELECT COUNT(*) FROM interviews
		WHERE employer_id = $1 AND ($2::text[] IS NULL OR status = ANY($2))`
	if err := r.db.QueryRow(ctx, countQuery, employerID, statusFilter).Scan(&total); err != nil {
		return nil, 0, err
	}

	query := `
		SELECT ` + interviewColumns + `
		FROM interviews
		WHERE employer_id = $1 AND ($2::text[] IS NULL OR status = ANY($2))
		ORDER BY scheduled_at DESC
		LIMIT $3 OFFSET $4`

	rows, err := r.db.Query(ctx, query, employerID, statusFilter, limit, offset)
	if err != nil {
		return nil, 0, err
	}
	defer rows.Close()

	var interviews []domain.Interview
	for rows.Next() {
		var iv domain.Interview
		if err := scanInterview(rows, &iv); err != nil {
			return nil, 0, err
		}
		interviews = append(interviews, iv)
	}
	return interviews, total, rows.Err()
}

func (r *interviewRepository) UpdateStatus(ctx context.Context, id int64, status string) error {
	query := `UPDATE interviews SET status = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, status, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}
