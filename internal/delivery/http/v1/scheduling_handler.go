package v1

import (
	"net/http"
	"strconv"
	"strings"
	"time"

	"go-ats-core/internal/delivery/http/response"
	"go-ats-core/internal/domain"
	"go-ats-core/pkg/apperror"

	"github.com/gin-gonic/gin"
)

type SchedulingHandler struct {
	schedulingUC domain.SchedulingUsecase
}

func NewSchedulingHandler(rg *gin.RouterGroup, schedulingUC domain.SchedulingUsecase) {
	handler := &SchedulingHandler{schedulingUC: schedulingUC}

	interviews := rg.Group("/interviews")
	{
		interviews.POST("", handler.Schedule)
		interviews.GET("", handler.List)
		interviews.GET("/:id", handler.GetDetails)
		interviews.PATCH("/:id/status", handler.UpdateStatus)
		interviews.POST("/conflict-check", handler.CheckConflicts)
		interviews.POST("/slot-suggestions", handler.SuggestSlots)
	}
}

type ScheduleInterviewRequest struct {
	EmployerID      string    `json:"employer_id" binding:"required"`
	CandidateID     int64     `json:"candidate_id" binding:"required"`
	JobID           int64     `json:"job_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
	Type            string    `json:"type" binding:"required,oneof=phone video onsite technical"`
	Location        string    `json:"location"`
	MeetingLink     string    `json:"meeting_link"`
	Notes           string    `json:"notes"`
}

type ConflictCheckRequest struct {
	EmployerID      string    `json:"employer_id" binding:"required"`
	ScheduledAt     time.Time `json:"scheduled_at" binding:"required"`
	DurationMinutes int       `json:"duration_minutes" binding:"required,gt=0"`
}

type SlotSuggestionRequest struct {
	EmployerID          string    `json:"employer_id" binding:"required"`
	PreferredDate       time.Time `json:"preferred_date" binding:"required"`
	DurationMinutes     int       `json:"duration_minutes" binding:"required,gt=0"`
	NumberOfSuggestions int       `json:"number_of_suggestions" binding:"required,gt=0,lte=20"`
}

type UpdateInterviewStatusRequest struct {
	Status string `json:"status" binding:"required,oneof=scheduled completed cancelled rescheduled"`
}

// Schedule godoc
// @Summary      Schedule an interview
// @Description  Create an interview after verifying the slot is conflict-free
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        interview  body      ScheduleInterviewRequest  true  "Interview JSON"
// @Success      201  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      409  {object}  response.Response
// @Router       /interviews [post]
func (h *SchedulingHandler) Schedule(c *gin.Context) {
	var req ScheduleInterviewRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	toPtr := func(s string) *string {
		if s == "" {
			return nil
		}
		return &s
	}

	interview := &domain.Interview{
		EmployerID:      req.EmployerID,
		CandidateID:     req.CandidateID,
		JobID:           req.JobID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
		Type:            req.Type,
		Location:        toPtr(req.Location),
		MeetingLink:     toPtr(req.MeetingLink),
		Notes:           toPtr(req.Notes),
	}

	if err := h.schedulingUC.ScheduleInterview(c, interview); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusCreated, "Interview scheduled", interview)
}

// CheckConflicts godoc
// @Summary      Check a proposed slot for conflicts
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        request  body      ConflictCheckRequest  true  "Proposed slot"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interviews/conflict-check [post]
func (h *SchedulingHandler) CheckConflicts(c *gin.Context) {
	var req ConflictCheckRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.schedulingUC.CheckConflicts(c, domain.ConflictCheckRequest{
		EmployerID:      req.EmployerID,
		ScheduledAt:     req.ScheduledAt,
		DurationMinutes: req.DurationMinutes,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Conflict check complete", result)
}

// SuggestSlots godoc
// @Summary      Suggest conflict-free interview slots
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        request  body      SlotSuggestionRequest  true  "Preferences"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Router       /interviews/slot-suggestions [post]
func (h *SchedulingHandler) SuggestSlots(c *gin.Context) {
	var req SlotSuggestionRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	result, err := h.schedulingUC.SuggestSlots(c, domain.SlotSuggestionRequest{
		EmployerID:      req.EmployerID,
		PreferredDate:   req.PreferredDate,
		DurationMinutes: req.DurationMinutes,
		Count:           req.NumberOfSuggestions,
	})
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Slot suggestions generated", result)
}

// List godoc
// @Summary      List interviews for an employer
// @Tags         interviews
// @Produce      json
// @Param        employer_id  query     string  true   "Employer ID"
// @Param        status       query     string  false  "Comma-separated status filter"
// @Param        page         query     int     false  "Page number"
// @Param        page_size    query     int     false  "Page size"
// @Success      200  {object}  response.Response
// @Router       /interviews [get]
func (h *SchedulingHandler) List(c *gin.Context) {
	employerID := c.Query("employer_id")
	if employerID == "" {
		c.Error(apperror.BadRequest("employer_id is required"))
		return
	}

	var statuses []string
	if raw := c.Query("status"); raw != "" {
		statuses = strings.Split(raw, ",")
	}

	page, _ := strconv.Atoi(c.DefaultQuery("page", "1"))
	pageSize, _ := strconv.Atoi(c.DefaultQuery("page_size", "10"))

	interviews, total, err := h.schedulingUC.ListByEmployer(c, employerID, statuses, page, pageSize)
	if err != nil {
		c.Error(err)
		return
	}

	response.Paginated(c, http.StatusOK, "Interviews fetched", interviews, response.Meta{
		Total:    total,
		Page:     page,
		PageSize: pageSize,
	})
}

// GetDetails godoc
// @Summary      Get interview details
// @Tags         interviews
// @Produce      json
// @Param        id   path      int  true  "Interview ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id} [get]
func (h *SchedulingHandler) GetDetails(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid interview id"))
		return
	}

	interview, err := h.schedulingUC.GetInterview(c, id)
	if err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview fetched", interview)
}

// UpdateStatus godoc
// @Summary      Update interview status
// @Tags         interviews
// @Accept       json
// @Produce      json
// @Param        id      path      int                           true  "Interview ID"
// @Param        status  body      UpdateInterviewStatusRequest  true  "New status"
// @Success      200  {object}  response.Response
// @Failure      400  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /interviews/{id}/status [patch]
func (h *SchedulingHandler) UpdateStatus(c *gin.Context) {
	id, err := strconv.ParseInt(c.Param("id"), 10, 64)
	if err != nil {
		c.Error(apperror.BadRequest("invalid interview id"))
		return
	}

	var req UpdateInterviewStatusRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		c.Error(apperror.BadRequest(err.Error()))
		return
	}

	if err := h.schedulingUC.UpdateInterviewStatus(c, id, req.Status); err != nil {
		c.Error(err)
		return
	}

	response.Success(c, http.StatusOK, "Interview status updated", nil)
}
