package usecase_test

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"go-ats-core/internal/domain"
	"go-ats-core/internal/usecase"
	"go-ats-core/pkg/logger"
	"go-ats-core/pkg/mailtemplate"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

func TestMain(m *testing.M) {
	logger.Init()
	os.Exit(m.Run())
}

// Mock Repositories
type MockCandidateRepo struct {
	mock.Mock
}

func (m *MockCandidateRepo) GetByID(ctx context.Context, id int64) (*domain.Candidate, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByStatusUpdatedBefore(ctx context.Context, status string, before time.Time, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, status, before, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) FindByStatusWithInterviewBetween(ctx context.Context, status string, from, to time.Time, limit int) ([]domain.Candidate, error) {
	args := m.Called(ctx, status, from, to, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Candidate), args.Error(1)
}

func (m *MockCandidateRepo) UpdateStatusIfUnchanged(ctx context.Context, id int64, fromStatus, toStatus string, seenUpdatedAt time.Time) (bool, error) {
	args := m.Called(ctx, id, fromStatus, toStatus, seenUpdatedAt)
	return args.Bool(0), args.Error(1)
}

type MockRuleStore struct {
	mock.Mock
}

func (m *MockRuleStore) Fetch(ctx context.Context) ([]domain.AutomationRule, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.AutomationRule), args.Error(1)
}

func (m *MockRuleStore) GetByID(ctx context.Context, id string) (*domain.AutomationRule, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.AutomationRule), args.Error(1)
}

func (m *MockRuleStore) SetActive(ctx context.Context, id string, active bool) error {
	return m.Called(ctx, id, active).Error(0)
}

func (m *MockRuleStore) Seed(ctx context.Context, rules []domain.AutomationRule) error {
	return m.Called(ctx, rules).Error(0)
}

type MockOutboxRepo struct {
	mock.Mock
}

func (m *MockOutboxRepo) Enqueue(ctx context.Context, mail *domain.QueuedEmail) error {
	return m.Called(ctx, mail).Error(0)
}

func (m *MockOutboxRepo) FetchDue(ctx context.Context, now time.Time, limit int) ([]domain.QueuedEmail, error) {
	args := m.Called(ctx, now, limit)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.QueuedEmail), args.Error(1)
}

func (m *MockOutboxRepo) MarkSent(ctx context.Context, id int64) error {
	return m.Called(ctx, id).Error(0)
}

func (m *MockOutboxRepo) MarkFailed(ctx context.Context, id int64, reason string, maxAttempts int) (bool, error) {
	args := m.Called(ctx, id, reason, maxAttempts)
	return args.Bool(0), args.Error(1)
}

func (m *MockOutboxRepo) ExistsSince(ctx context.Context, candidateID int64, templateID string, since time.Time) (bool, error) {
	args := m.Called(ctx, candidateID, templateID, since)
	return args.Bool(0), args.Error(1)
}

func (m *MockOutboxRepo) CountByStatus(ctx context.Context) (map[string]int64, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(map[string]int64), args.Error(1)
}

type fakeLocker struct {
	acquired  bool
	available bool
}

func (l *fakeLocker) Acquire(ctx context.Context) (bool, error) {
	l.acquired = l.available
	return l.available, nil
}

func (l *fakeLocker) Release(ctx context.Context) error {
	l.acquired = false
	return nil
}

func autoRejectRule() domain.AutomationRule {
	return domain.AutomationRule{
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
	}
}

func staleCandidate(id int64) domain.Candidate {
	return domain.Candidate{
		ID:          id,
		EmployerID:  "emp1",
		FullName:    "Alex Doe",
		Email:       "alex@example.com",
		OwnerEmail:  "owner@acme.test",
		CompanyName: "Acme",
		Status:      domain.CandidateStatusScreening,
		UpdatedAt:   time.Now().AddDate(0, 0, -31),
	}
}

func TestSweepAutoRejectScenario(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	candidate := staleCandidate(42)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{autoRejectRule()}, nil)
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, domain.CandidateStatusScreening, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil)
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(42),
		domain.CandidateStatusScreening, domain.CandidateStatusRejected, candidate.UpdatedAt).
		Return(true, nil)
	outbox.On("Enqueue", mock.Anything, mock.AnythingOfType("*domain.QueuedEmail")).Return(nil).Run(func(args mock.Arguments) {
		mail := args.Get(1).(*domain.QueuedEmail)
		assert.Equal(t, mailtemplate.TemplateAutoRejection, mail.TemplateID)
		assert.Equal(t, "alex@example.com", mail.Recipient)
		assert.Equal(t, "Alex Doe", mail.Variables["candidate_name"])
		assert.Equal(t, domain.OutboxStatusPending, mail.Status)
	})

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
	result, err := uc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Executed)
	assert.Equal(t, []int64{42}, result.CandidateIDs)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 0, result.Failed)
	candidates.AssertExpectations(t)
	outbox.AssertExpectations(t)
}

func TestSweepIdempotency(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	candidate := staleCandidate(42)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{autoRejectRule()}, nil)
	// First sweep matches; the status mutation removes the candidate from
	// the second sweep's filter.
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, domain.CandidateStatusScreening, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil).Once()
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, domain.CandidateStatusScreening, mock.Anything, 100).
		Return([]domain.Candidate{}, nil).Once()
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(42),
		domain.CandidateStatusScreening, domain.CandidateStatusRejected, candidate.UpdatedAt).
		Return(true, nil).Once()
	outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)

	first, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Len(t, first.CandidateIDs, 1)

	second, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Empty(t, second.CandidateIDs)
	assert.Equal(t, 0, second.Sent)
	outbox.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestSweepPartialFailure(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	good := staleCandidate(1)
	bad := staleCandidate(2)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{autoRejectRule()}, nil)
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, mock.Anything, mock.Anything, 100).
		Return([]domain.Candidate{good, bad}, nil)
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(1), mock.Anything, mock.Anything, mock.Anything).
		Return(true, nil)
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(2), mock.Anything, mock.Anything, mock.Anything).
		Return(false, errors.New("connection reset"))
	outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
	result, err := uc.RunSweep(context.Background())

	// One candidate's failure never aborts the batch.
	assert.NoError(t, err)
	assert.Equal(t, []int64{1}, result.CandidateIDs)
	assert.Equal(t, 1, result.Sent)
	assert.Equal(t, 1, result.Failed)
}

func TestSweepSkipsConcurrentlyEditedCandidate(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	candidate := staleCandidate(7)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{autoRejectRule()}, nil)
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, mock.Anything, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil)
	// A human edit moved the row between read and write: CAS loses.
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(7), mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
	result, err := uc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Empty(t, result.CandidateIDs)
	assert.Equal(t, 0, result.Sent)
	assert.Equal(t, 0, result.Failed)
	outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestSweepInterviewReminderUsesUpcomingWindow(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	reminderRule := domain.AutomationRule{
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
	}

	nextAt := time.Now().Add(20 * time.Hour)
	candidate := staleCandidate(9)
	candidate.Status = domain.CandidateStatusInterviewScheduled
	candidate.NextInterviewAt = &nextAt

	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{reminderRule}, nil)
	candidates.On("FindByStatusWithInterviewBetween", mock.Anything,
		domain.CandidateStatusInterviewScheduled, mock.Anything, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil)
	outbox.On("ExistsSince", mock.Anything, int64(9), mailtemplate.TemplateInterviewReminder, mock.Anything).
		Return(false, nil)
	outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Run(func(args mock.Arguments) {
		mail := args.Get(1).(*domain.QueuedEmail)
		assert.Equal(t, mailtemplate.TemplateInterviewReminder, mail.TemplateID)
		assert.NotEmpty(t, mail.Variables["interview_date"])
	})

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
	result, err := uc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 1, result.Sent)
	candidates.AssertNotCalled(t, "UpdateStatusIfUnchanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func followupRule() domain.AutomationRule {
	return domain.AutomationRule{
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
	}
}

func TestSweepFollowupTouchesCandidate(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	candidate := staleCandidate(11)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{followupRule()}, nil)
	// The touch moves updated_at forward, so a sweep an hour later no
	// longer matches this candidate.
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, domain.CandidateStatusScreening, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil).Once()
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, domain.CandidateStatusScreening, mock.Anything, 100).
		Return([]domain.Candidate{}, nil).Once()
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(11),
		domain.CandidateStatusScreening, domain.CandidateStatusScreening, candidate.UpdatedAt).
		Return(true, nil).Once()
	outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)

	first, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	candidates.AssertExpectations(t)
	outbox.AssertNumberOfCalls(t, "Enqueue", 1)
}

func TestSweepFollowupSkipsConcurrentlyEditedCandidate(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	candidate := staleCandidate(12)
	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{followupRule()}, nil)
	candidates.On("FindByStatusUpdatedBefore", mock.Anything, mock.Anything, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil)
	candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(12), mock.Anything, mock.Anything, mock.Anything).
		Return(false, nil)

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
	result, err := uc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.Equal(t, 0, result.Sent)
	outbox.AssertNotCalled(t, "Enqueue", mock.Anything, mock.Anything)
}

func TestSweepReminderQueuedOncePerWindow(t *testing.T) {
	rules := new(MockRuleStore)
	candidates := new(MockCandidateRepo)
	outbox := new(MockOutboxRepo)

	reminderRule := domain.AutomationRule{
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
	}

	nextAt := time.Now().Add(20 * time.Hour)
	candidate := staleCandidate(13)
	candidate.Status = domain.CandidateStatusInterviewScheduled
	candidate.NextInterviewAt = &nextAt

	rules.On("Fetch", mock.Anything).Return([]domain.AutomationRule{reminderRule}, nil)
	// The candidate keeps matching until the interview happens; only the
	// queued outbox row stops a second reminder.
	candidates.On("FindByStatusWithInterviewBetween", mock.Anything, mock.Anything, mock.Anything, mock.Anything, 100).
		Return([]domain.Candidate{candidate}, nil)
	outbox.On("ExistsSince", mock.Anything, int64(13), mailtemplate.TemplateInterviewReminder, mock.Anything).
		Return(false, nil).Once()
	outbox.On("ExistsSince", mock.Anything, int64(13), mailtemplate.TemplateInterviewReminder, mock.Anything).
		Return(true, nil).Once()
	outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil).Once()

	uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)

	first, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 1, first.Sent)

	second, err := uc.RunSweep(context.Background())
	assert.NoError(t, err)
	assert.Equal(t, 0, second.Sent)
	assert.Empty(t, second.CandidateIDs)
	outbox.AssertNumberOfCalls(t, "Enqueue", 1)
	candidates.AssertNotCalled(t, "UpdateStatusIfUnchanged",
		mock.Anything, mock.Anything, mock.Anything, mock.Anything, mock.Anything)
}

func TestSweepSkippedWhenLockHeld(t *testing.T) {
	rules := new(MockRuleStore)

	uc := usecase.NewAutomationUsecase(rules, new(MockCandidateRepo), new(MockOutboxRepo),
		mailtemplate.New(), &fakeLocker{available: false}, 100)
	result, err := uc.RunSweep(context.Background())

	assert.NoError(t, err)
	assert.True(t, result.Skipped)
	rules.AssertNotCalled(t, "Fetch", mock.Anything)
}

func TestTriggerRule(t *testing.T) {
	t.Run("Unknown rule id is not found", func(t *testing.T) {
		rules := new(MockRuleStore)
		rules.On("GetByID", mock.Anything, "nope").Return(nil, nil)

		uc := usecase.NewAutomationUsecase(rules, new(MockCandidateRepo), new(MockOutboxRepo),
			mailtemplate.New(), nil, 100)
		_, err := uc.TriggerRule(context.Background(), "nope")
		assert.Error(t, err)
		assert.Contains(t, err.Error(), "not found")
	})

	t.Run("Manual trigger runs an inactive rule", func(t *testing.T) {
		rule := autoRejectRule()
		rule.Active = false

		rules := new(MockRuleStore)
		candidates := new(MockCandidateRepo)
		outbox := new(MockOutboxRepo)

		candidate := staleCandidate(3)
		rules.On("GetByID", mock.Anything, rule.ID).Return(&rule, nil)
		candidates.On("FindByStatusUpdatedBefore", mock.Anything, mock.Anything, mock.Anything, 100).
			Return([]domain.Candidate{candidate}, nil)
		candidates.On("UpdateStatusIfUnchanged", mock.Anything, int64(3), mock.Anything, mock.Anything, mock.Anything).
			Return(true, nil)
		outbox.On("Enqueue", mock.Anything, mock.Anything).Return(nil)

		uc := usecase.NewAutomationUsecase(rules, candidates, outbox, mailtemplate.New(), nil, 100)
		result, err := uc.TriggerRule(context.Background(), rule.ID)

		assert.NoError(t, err)
		assert.True(t, result.Success)
		assert.Equal(t, 1, result.Count)
		assert.Equal(t, []int64{3}, result.CandidateIDs)
	})
}
