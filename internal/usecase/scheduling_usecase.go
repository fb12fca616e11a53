package usecase

import (
	"context"
	"time"

	"go-ats-core/internal/domain"
	"go-ats-core/pkg/apperror"

	"github.com/go-playground/validator/v10"
)

// SlotConfig bounds the slot suggestion search.
type SlotConfig struct {
	BusinessHourStart int // inclusive
	BusinessHourEnd   int // exclusive
	StepMinutes       int
	SearchDays        int
}

// DefaultSlotConfig mirrors the config package defaults.
func DefaultSlotConfig() SlotConfig {
	return SlotConfig{
		BusinessHourStart: 9,
		BusinessHourEnd:   17,
		StepMinutes:       30,
		SearchDays:        14,
	}
}

type schedulingUsecase struct {
	interviews domain.InterviewRepository
	validate   *validator.Validate
	slots      SlotConfig
}

func NewSchedulingUsecase(interviews domain.InterviewRepository, validate *validator.Validate, slots SlotConfig) domain.SchedulingUsecase {
	return &schedulingUsecase{
		interviews: interviews,
		validate:   validate,
		slots:      slots,
	}
}

// Overlaps reports whether [aStart, aEnd) and [bStart, bEnd) intersect.
// Half-open semantics: windows that merely touch do not overlap.
func Overlaps(aStart, aEnd, bStart, bEnd time.Time) bool {
	return aStart.Before(bEnd) && bStart.Before(aEnd)
}

// conflictsWith returns the subset of interviews whose window intersects
// [start, end). Cancelled interviews never conflict.
func conflictsWith(existing []domain.Interview, start, end time.Time) []domain.Interview {
	conflicts := []domain.Interview{}
	for _, iv := range existing {
		if iv.Status == domain.InterviewStatusCancelled {
			continue
		}
		if Overlaps(start, end, iv.ScheduledAt, iv.EndsAt()) {
			conflicts = append(conflicts, iv)
		}
	}
	return conflicts
}

func (u *schedulingUsecase) CheckConflicts(ctx context.Context, req domain.ConflictCheckRequest) (*domain.ConflictCheckResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	existing, err := u.interviews.FetchActiveByEmployer(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}

	end := req.ScheduledAt.Add(time.Duration(req.DurationMinutes) * time.Minute)
	conflicts := conflictsWith(existing, req.ScheduledAt, end)

	return &domain.ConflictCheckResult{
		HasConflict: len(conflicts) > 0,
		Conflicts:   conflicts,
	}, nil
}

func (u *schedulingUsecase) SuggestSlots(ctx context.Context, req domain.SlotSuggestionRequest) (*domain.SlotSuggestionResult, error) {
	if err := u.validate.Struct(req); err != nil {
		return nil, apperror.BadRequest(err.Error())
	}

	existing, err := u.interviews.FetchActiveByEmployer(ctx, req.EmployerID)
	if err != nil {
		return nil, err
	}

	duration := time.Duration(req.DurationMinutes) * time.Minute
	step := time.Duration(u.slots.StepMinutes) * time.Minute
	suggestions := []time.Time{}

	// Greedy forward scan: fixed steps across business hours, first N
	// conflict-free starts, which keeps the result in ascending order.
	loc := req.PreferredDate.Location()
	for day := 0; day < u.slots.SearchDays && len(suggestions) < req.Count; day++ {
		date := req.PreferredDate.AddDate(0, 0, day)
		dayStart := time.Date(date.Year(), date.Month(), date.Day(), u.slots.BusinessHourStart, 0, 0, 0, loc)
		dayEnd := time.Date(date.Year(), date.Month(), date.Day(), u.slots.BusinessHourEnd, 0, 0, 0, loc)

		for slot := dayStart; !slot.Add(duration).After(dayEnd); slot = slot.Add(step) {
			if slot.Before(req.PreferredDate) {
				continue
			}
			if len(conflictsWith(existing, slot, slot.Add(duration))) == 0 {
				suggestions = append(suggestions, slot)
				if len(suggestions) == req.Count {
					break
				}
			}
		}
	}

	return &domain.SlotSuggestionResult{Suggestions: suggestions}, nil
}

func (u *schedulingUsecase) ScheduleInterview(ctx context.Context, interview *domain.Interview) error {
	if interview.EmployerID == "" || interview.CandidateID == 0 {
		return apperror.BadRequest("employer_id and candidate_id are required")
	}
	if interview.DurationMinutes <= 0 {
		return apperror.BadRequest("duration_minutes must be positive")
	}
	if interview.ScheduledAt.Before(time.Now()) {
		return apperror.BadRequest("cannot schedule an interview in the past")
	}
	switch interview.Type {
	case domain.InterviewTypePhone, domain.InterviewTypeVideo, domain.InterviewTypeOnsite, domain.InterviewTypeTechnical:
	default:
		return apperror.BadRequest("invalid interview type")
	}

	result, err := u.CheckConflicts(ctx, domain.ConflictCheckRequest{
		EmployerID:      interview.EmployerID,
		ScheduledAt:     interview.ScheduledAt,
		DurationMinutes: interview.DurationMinutes,
	})
	if err != nil {
		return err
	}
	if result.HasConflict {
		return apperror.Conflict("proposed slot conflicts with an existing interview")
	}

	interview.Status = domain.InterviewStatusScheduled
	return u.interviews.Create(ctx, interview)
}

func (u *schedulingUsecase) GetInterview(ctx context.Context, id int64) (*domain.Interview, error) {
	interview, err := u.interviews.GetByID(ctx, id)
	if err != nil {
		return nil, err
	}
	if interview == nil {
		return nil, apperror.NotFound("Interview not found")
	}
	return interview, nil
}

func (u *schedulingUsecase) ListByEmployer(ctx context.Context, employerID string, statuses []string, page, pageSize int) ([]domain.Interview, int64, error) {
	if page < 1 {
		page = 1
	}
	if pageSize < 1 || pageSize > 100 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	return u.interviews.FetchByEmployer(ctx, employerID, statuses, pageSize, offset)
}

func (u *schedulingUsecase) UpdateInterviewStatus(ctx context.Context, id int64, status string) error {
	switch status {
	case domain.InterviewStatusScheduled, domain.InterviewStatusCompleted,
		domain.InterviewStatusCancelled, domain.InterviewStatusRescheduled:
	default:
		return apperror.BadRequest("invalid interview status")
	}

	interview, err := u.interviews.GetByID(ctx, id)
	if err != nil {
		return err
	}
	if interview == nil {
		return apperror.NotFound("Interview not found")
	}

	return u.interviews.UpdateStatus(ctx, id, status)
}
