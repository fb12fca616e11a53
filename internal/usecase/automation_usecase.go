package usecase

import (
	"context"
	"fmt"
	"time"

	"go-ats-core/internal/domain"
	"go-ats-core/pkg/apperror"
	"go-ats-core/pkg/logger"
	"go-ats-core/pkg/mailtemplate"
)

// SweepLocker keeps the sweep single-flight across processes.
// A nil locker means single-process mode: sweeps always run.
type SweepLocker interface {
	Acquire(ctx context.Context) (bool, error)
	Release(ctx context.Context) error
}

type automationUsecase struct {
	rules      domain.RuleStore
	candidates domain.CandidateRepository
	outbox     domain.OutboxRepository
	catalog    *mailtemplate.Catalog
	lock       SweepLocker
	batchSize  int
}

func NewAutomationUsecase(
	rules domain.RuleStore,
	candidates domain.CandidateRepository,
	outbox domain.OutboxRepository,
	catalog *mailtemplate.Catalog,
	lock SweepLocker,
	batchSize int,
) domain.AutomationUsecase {
	if batchSize <= 0 {
		batchSize = 100
	}
	return &automationUsecase{
		rules:      rules,
		candidates: candidates,
		outbox:     outbox,
		catalog:    catalog,
		lock:       lock,
		batchSize:  batchSize,
	}
}

func (u *automationUsecase) RunSweep(ctx context.Context) (*domain.SweepResult, error) {
	if u.lock != nil {
		acquired, err := u.lock.Acquire(ctx)
		if err != nil {
			// Fail open: a broken lock backend must not stop the sweep.
			logger.Log.Warn("Sweep lock unavailable, proceeding unlocked", "error", err)
		} else if !acquired {
			logger.Log.Info("Sweep skipped, another process holds the lock")
			return &domain.SweepResult{Skipped: true, CandidateIDs: []int64{}}, nil
		} else {
			defer func() {
				if err := u.lock.Release(ctx); err != nil {
					logger.Log.Warn("Failed to release sweep lock", "error", err)
				}
			}()
		}
	}

	rules, err := u.rules.Fetch(ctx)
	if err != nil {
		return nil, err
	}

	result := &domain.SweepResult{CandidateIDs: []int64{}}
	now := time.Now()

	for _, rule := range rules {
		if !rule.Active || rule.Trigger != domain.TriggerTimeBased {
			continue
		}

		ids, sent, failed, err := u.runRule(ctx, rule, now)
		if err != nil {
			// A broken rule (bad condition kind, query failure) is logged
			// and does not abort the rest of the sweep.
			logger.Log.Error("Rule evaluation failed", "rule", rule.ID, "error", err)
			continue
		}

		result.Executed++
		result.CandidateIDs = append(result.CandidateIDs, ids...)
		result.Sent += sent
		result.Failed += failed
	}

	logger.Log.Info("Automation sweep finished",
		"rules_executed", result.Executed,
		"candidates", len(result.CandidateIDs),
		"emails_queued", result.Sent,
		"failed", result.Failed,
	)
	return result, nil
}

func (u *automationUsecase) TriggerRule(ctx context.Context, ruleID string) (*domain.TriggerResult, error) {
	rule, err := u.rules.GetByID(ctx, ruleID)
	if err != nil {
		return nil, err
	}
	if rule == nil {
		return nil, apperror.NotFound("Automation rule not found")
	}

	// Manual triggers run regardless of the active flag; that is the
	// point of triggering by hand.
	ids, _, failed, err := u.runRule(ctx, *rule, time.Now())
	if err != nil {
		return nil, err
	}

	return &domain.TriggerResult{
		Success:      failed == 0,
		Count:        len(ids),
		CandidateIDs: ids,
	}, nil
}

func (u *automationUsecase) ListRules(ctx context.Context) ([]domain.AutomationRule, error) {
	return u.rules.Fetch(ctx)
}

func (u *automationUsecase) SetRuleActive(ctx context.Context, ruleID string, active bool) error {
	rule, err := u.rules.GetByID(ctx, ruleID)
	if err != nil {
		return err
	}
	if rule == nil {
		return apperror.NotFound("Automation rule not found")
	}
	return u.rules.SetActive(ctx, ruleID, active)
}

// runRule matches candidates for one rule and applies its action to each.
// Per-candidate failures are logged and counted, never fatal.
func (u *automationUsecase) runRule(ctx context.Context, rule domain.AutomationRule, now time.Time) (ids []int64, sent, failed int, err error) {
	matches, err := u.matchCandidates(ctx, rule, now)
	if err != nil {
		return nil, 0, 0, err
	}

	ids = make([]int64, 0, len(matches))
	for _, candidate := range matches {
		queued, skipped, err := u.applyAction(ctx, rule, candidate, now)
		if err != nil {
			logger.Log.Error("Rule action failed for candidate",
				"rule", rule.ID, "candidate_id", candidate.ID, "error", err)
			failed++
			continue
		}
		if skipped {
			continue
		}
		ids = append(ids, candidate.ID)
		sent += queued
	}
	return ids, sent, failed, nil
}

func (u *automationUsecase) matchCandidates(ctx context.Context, rule domain.AutomationRule, now time.Time) ([]domain.Candidate, error) {
	switch rule.Condition.Kind {
	case domain.ConditionInactiveForDays:
		threshold := now.AddDate(0, 0, -rule.Condition.Days)
		return u.candidates.FindByStatusUpdatedBefore(ctx, rule.Condition.Status, threshold, u.batchSize)
	case domain.ConditionOccursWithinDays:
		until := now.AddDate(0, 0, rule.Condition.Days)
		return u.candidates.FindByStatusWithInterviewBetween(ctx, rule.Condition.Status, now, until, u.batchSize)
	default:
		return nil, fmt.Errorf("unknown condition kind %q", rule.Condition.Kind)
	}
}

// applyAction mutates the candidate row first, then queues emails. Every
// rule kind leaves a durable mark that takes the candidate out of the
// next sweep's match set, so a repeated sweep over unchanged data queues
// nothing twice. The CAS write also protects concurrent human edits: a
// candidate whose row moved since the read is skipped entirely.
func (u *automationUsecase) applyAction(ctx context.Context, rule domain.AutomationRule, candidate domain.Candidate, now time.Time) (queued int, skipped bool, err error) {
	switch {
	case rule.Action.SetStatus != "":
		ok, err := u.candidates.UpdateStatusIfUnchanged(ctx, candidate.ID, candidate.Status, rule.Action.SetStatus, candidate.UpdatedAt)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			logger.Log.Debug("Skipping candidate, row changed since sweep read",
				"rule", rule.ID, "candidate_id", candidate.ID)
			return 0, true, nil
		}
	case rule.Condition.Kind == domain.ConditionInactiveForDays:
		// Email-only inactivity rules touch updated_at: queued contact
		// counts as activity, so the candidate leaves the inactivity
		// window until they go quiet for another full period.
		ok, err := u.candidates.UpdateStatusIfUnchanged(ctx, candidate.ID, candidate.Status, candidate.Status, candidate.UpdatedAt)
		if err != nil {
			return 0, false, err
		}
		if !ok {
			logger.Log.Debug("Skipping candidate, row changed since sweep read",
				"rule", rule.ID, "candidate_id", candidate.ID)
			return 0, true, nil
		}
	case rule.Condition.Kind == domain.ConditionOccursWithinDays && rule.Action.SendEmail:
		// Reminder rules match until the interview happens; the outbox
		// row itself is the sent marker. One reminder per window.
		since := now.AddDate(0, 0, -rule.Condition.Days)
		exists, err := u.outbox.ExistsSince(ctx, candidate.ID, rule.Action.TemplateID, since)
		if err != nil {
			return 0, false, err
		}
		if exists {
			return 0, true, nil
		}
	}

	if rule.Action.SendEmail {
		tpl := u.catalog.Get(rule.Action.TemplateID)
		if tpl == nil {
			return queued, false, fmt.Errorf("unknown template id %q", rule.Action.TemplateID)
		}
		mail := &domain.QueuedEmail{
			CandidateID:  candidate.ID,
			Recipient:    candidate.Email,
			TemplateID:   tpl.ID,
			Variables:    templateVars(candidate),
			ScheduledFor: now,
			Status:       domain.OutboxStatusPending,
		}
		if err := u.outbox.Enqueue(ctx, mail); err != nil {
			return queued, false, err
		}
		queued++
	}

	if rule.Action.NotifyOwner && candidate.OwnerEmail != "" {
		notice := &domain.QueuedEmail{
			CandidateID: candidate.ID,
			Recipient:   candidate.OwnerEmail,
			TemplateID:  mailtemplate.TemplateOwnerNotification,
			Variables: map[string]string{
				"candidate_name": candidate.FullName,
				"rule_name":      rule.Name,
			},
			ScheduledFor: now,
			Status:       domain.OutboxStatusPending,
		}
		if err := u.outbox.Enqueue(ctx, notice); err != nil {
			return queued, false, err
		}
		queued++
	}

	return queued, false, nil
}

// templateVars is the fixed variable set rules bind into candidate
// emails. Unbound template placeholders survive rendering verbatim.
func templateVars(candidate domain.Candidate) map[string]string {
	vars := map[string]string{
		"candidate_name": candidate.FullName,
		"company_name":   candidate.CompanyName,
	}
	if candidate.NextInterviewAt != nil {
		vars["interview_date"] = candidate.NextInterviewAt.Format("Monday, 2 January 2006 15:04")
	}
	return vars
}
