package postgres

import (
	"context"
	"errors"

	"go-ats-core/internal/domain"

	"github.com/jackc/pgx/v5"
	"github.com/jackc/pgx/v5/pgxpool"
)

type ruleStore struct {
	db *pgxpool.Pool
}

func NewRuleStore(db *pgxpool.Pool) domain.RuleStore {
	return &ruleStore{db: db}
}

const ruleColumns = `
	id, name, trigger_kind, condition_kind, condition_status, condition_days,
	action_set_status, action_send_email, action_template_id, action_notify_owner,
	active, created_at, updated_at`

func scanRule(row pgx.Row, rule *domain.AutomationRule) error {
	return row.Scan(
		&rule.ID, &rule.Name, &rule.Trigger,
		&rule.Condition.Kind, &rule.Condition.Status, &rule.Condition.Days,
		&rule.Action.SetStatus, &rule.Action.SendEmail,
		&rule.Action.TemplateID, &rule.Action.NotifyOwner,
		&rule.Active, &rule.CreatedAt, &rule.UpdatedAt,
	)
}

func (r *ruleStore) Fetch(ctx context.Context) ([]domain.AutomationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules ORDER BY id`

	rows, err := r.db.Query(ctx, query)
	if err != nil {
		return nil, err
	}
	defer rows.Close()

	var rules []domain.AutomationRule
	for rows.Next() {
		var rule domain.AutomationRule
		if err := scanRule(rows, &rule); err != nil {
			return nil, err
		}
		rules = append(rules, rule)
	}
	return rules, rows.Err()
}

func (r *ruleStore) GetByID(ctx context.Context, id string) (*domain.AutomationRule, error) {
	query := `SELECT ` + ruleColumns + ` FROM automation_rules WHERE id = $1`

	var rule domain.AutomationRule
	err := scanRule(r.db.QueryRow(ctx, query, id), &rule)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, err
	}
	return &rule, nil
}

func (r *ruleStore) SetActive(ctx context.Context, id string, active bool) error {
	query := `UPDATE automation_rules SET active = $1, updated_at = NOW() WHERE id = $2`
	cmdTag, err := r.db.Exec(ctx, query, active, id)
	if err != nil {
		return err
	}
	if cmdTag.RowsAffected() == 0 {
		return domain.ErrNotFound
	}
	return nil
}

func (r *ruleStore) Seed(ctx context.Context, rules []domain.AutomationRule) error {
	// Upsert rule definitions but keep operator-set activation state.
	query := `
		INSERT INTO automation_rules (
			id, name, trigger_kind, condition_kind, condition_status, condition_days,
			action_set_status, action_send_email, action_template_id, action_notify_owner,
			active, created_at, updated_at
		) VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, NOW(), NOW())
		ON CONFLICT (id) DO UPDATE SET
			name = EXCLUDED.name,
			trigger_kind = EXCLUDED.trigger_kind,
			condition_kind = EXCLUDED.condition_kind,
			condition_status = EXCLUDED.condition_status,
			condition_days = EXCLUDED.condition_days,
			action_set_status = EXCLUDED.action_set_status,
			action_send_email = EXCLUDED.action_send_email,
			action_template_id = EXCLUDED.action_template_id,
			action_notify_owner = EXCLUDED.action_notify_owner,
			updated_at = NOW()`

	for _, rule := range rules {
		_, err := r.db.Exec(ctx, query,
			rule.ID, rule.Name, rule.Trigger,
			rule.Condition.Kind, rule.Condition.Status, rule.Condition.Days,
			rule.Action.SetStatus, rule.Action.SendEmail,
			rule.Action.TemplateID, rule.Action.NotifyOwner,
			rule.Active,
		)
		if err != nil {
			return err
		}
	}
	return nil
}
