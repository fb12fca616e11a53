package domain

import (
	"context"
	"time"
)

// Rule trigger kinds
const (
	TriggerTimeBased    = "time_based"
	TriggerStatusChange = "status_change"
	TriggerManual       = "manual"
)

// Temporal condition kinds. These are deliberately distinct: elapsed
// time since the last candidate update versus an upcoming interview
// inside a future window.
const (
	ConditionInactiveForDays  = "inactive_for_days"
	ConditionOccursWithinDays = "occurs_within_days"
)

// RuleCondition filters the candidate set a rule applies to.
type RuleCondition struct {
	Kind   string `json:"kind"`
	Status string `json:"status"`
	Days   int    `json:"days"`
}

// RuleAction is what happens to each matched candidate.
type RuleAction struct {
	SetStatus   string `json:"set_status,omitempty"`
	SendEmail   bool   `json:"send_email"`
	TemplateID  string `json:"template_id,omitempty"`
	NotifyOwner bool   `json:"notify_owner"`
}

type AutomationRule struct {
	ID        string        `json:"id"`
	Name      string        `json:"name"`
	Trigger   string        `json:"trigger"`
	Condition RuleCondition `json:"condition"`
	Action    RuleAction    `json:"action"`
	Active    bool          `json:"active"`
	CreatedAt time.Time     `json:"created_at"`
	UpdatedAt time.Time     `json:"updated_at"`
}

// RuleStore is the persistent rule catalog. Activation state lives in
// the database so multiple processes observe the same catalog.
type RuleStore interface {
	Fetch(ctx context.Context) ([]AutomationRule, error)
	GetByID(ctx context.Context, id string) (*AutomationRule, error)
	SetActive(ctx context.Context, id string, active bool) error
	// Seed upserts the default catalog without clobbering activation state.
	Seed(ctx context.Context, rules []AutomationRule) error
}

// SweepResult summarizes one pass over all active time-based rules.
type SweepResult struct {
	Executed     int     `json:"executed"`
	CandidateIDs []int64 `json:"candidates"`
	Sent         int     `json:"sent"`
	Failed       int     `json:"failed"`
	// Skipped is set when another process held the sweep lock.
	Skipped bool `json:"skipped,omitempty"`
}

// TriggerResult summarizes a manually triggered rule run.
type TriggerResult struct {
	Success      bool    `json:"success"`
	Count        int     `json:"count"`
	CandidateIDs []int64 `json:"candidate_ids"`
}

type AutomationUsecase interface {
	RunSweep(ctx context.Context) (*SweepResult, error)
	TriggerRule(ctx context.Context, ruleID string) (*TriggerResult, error)
	ListRules(ctx context.Context) ([]AutomationRule, error)
	SetRuleActive(ctx context.Context, ruleID string, active bool) error
}
