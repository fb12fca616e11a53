package usecase

import (
	"go-ats-core/internal/domain"
	"go-ats-core/pkg/mailtemplate"
)

// DefaultRuleCatalog is the seeded automation rule set. Activation state
// is owned by the rule store afterwards; seeding never flips it back.
func DefaultRuleCatalog() []domain.AutomationRule {
	return []domain.AutomationRule{
		{
			ID:      "auto_reject_30_days",
			Name:    "Auto-reject stale screening candidates",
			Trigger: domain.TriggerTimeBased,
			Condition: domain.RuleCondition{
				Kind:   domain.ConditionInactiveForDays,
				Status: domain.CandidateStatusScreening,
				Days:   30,
			},
			Action: domain.RuleAction{
				SetStatus:  domain.CandidateStatusRejected,
				SendEmail:  true,
				TemplateID: mailtemplate.TemplateAutoRejection,
			},
			Active: true,
		},
		{
			ID:      "screening_followup_7_days",
			Name:    "Screening follow-up nudge",
			Trigger: domain.TriggerTimeBased,
			Condition: domain.RuleCondition{
				Kind:   domain.ConditionInactiveForDays,
				Status: domain.CandidateStatusScreening,
				Days:   7,
			},
			Action: domain.RuleAction{
				SendEmail:  true,
				TemplateID: mailtemplate.TemplateScreeningFollowup,
			},
			Active: true,
		},
		{
			ID:      "interview_reminder_1_day",
			Name:    "Interview reminder one day ahead",
			Trigger: domain.TriggerTimeBased,
			Condition: domain.RuleCondition{
				Kind:   domain.ConditionOccursWithinDays,
				Status: domain.CandidateStatusInterviewScheduled,
				Days:   1,
			},
			Action: domain.RuleAction{
				SendEmail:  true,
				TemplateID: mailtemplate.TemplateInterviewReminder,
			},
			Active: true,
		},
		{
			ID:      "feedback_reminder_2_days",
			Name:    "Post-interview feedback reminder",
			Trigger: domain.TriggerTimeBased,
			Condition: domain.RuleCondition{
				Kind:   domain.ConditionInactiveForDays,
				Status: domain.CandidateStatusInterviewCompleted,
				Days:   2,
			},
			Action: domain.RuleAction{
				SendEmail:   true,
				TemplateID:  mailtemplate.TemplateFeedbackRequest,
				NotifyOwner: true,
			},
			Active: true,
		},
	}
}
