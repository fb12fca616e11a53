package v1

import (
	"net/http"

	"go-ats-core/internal/delivery/http/response"
	"go-ats-core/internal/domain"

	"github.com/gin-gonic/gin"
)

type AutomationHandler struct {
	automationUC domain.AutomationUsecase
	outboxUC     domain.OutboxUsecase
}

func NewAutomationHandler(rg *gin.RouterGroup, automationUC domain.AutomationUsecase, outboxUC domain.OutboxUsecase) {
	handler := &AutomationHandler{automationUC: automationUC, outboxUC: outboxUC}

	automation := rg.Group("/automation")
	{
		automation.GET("/rules", handler.ListRules)
		automation.POST("/rules/:id/activate", handler.Activate)
		automation.POST("/rules/:id/deactivate", handler.Deactivate)
		automation.POST("/rules/:id/trigger", handler.Trigger)
		automation.POST("/sweep", handler.Sweep)
		automation.GET("/outbox/stats", handler.OutboxStats)
	}
}

// ListRules godoc
// @Summary      List automation rules
// @Tags         automation
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /automation/rules [get]
func (h *AutomationHandler) ListRules(c *gin.Context) {
	rules, err := h.automationUC.ListRules(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rules fetched", rules)
}

// Activate godoc
// @Summary      Activate an automation rule
// @Tags         automation
// @Produce      json
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /automation/rules/{id}/activate [post]
func (h *AutomationHandler) Activate(c *gin.Context) {
	if err := h.automationUC.SetRuleActive(c, c.Param("id"), true); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rule activated", nil)
}

// Deactivate godoc
// @Summary      Deactivate an automation rule
// @Tags         automation
// @Produce      json
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /automation/rules/{id}/deactivate [post]
func (h *AutomationHandler) Deactivate(c *gin.Context) {
	if err := h.automationUC.SetRuleActive(c, c.Param("id"), false); err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rule deactivated", nil)
}

// Trigger godoc
// @Summary      Manually trigger one automation rule
// @Tags         automation
// @Produce      json
// @Param        id   path      string  true  "Rule ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /automation/rules/{id}/trigger [post]
func (h *AutomationHandler) Trigger(c *gin.Context) {
	result, err := h.automationUC.TriggerRule(c, c.Param("id"))
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Rule triggered", result)
}

// Sweep godoc
// @Summary      Run a full automation sweep
// @Description  Evaluates every active time-based rule. Normally invoked by the in-process scheduler.
// @Tags         automation
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /automation/sweep [post]
func (h *AutomationHandler) Sweep(c *gin.Context) {
	result, err := h.automationUC.RunSweep(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Sweep complete", result)
}

// OutboxStats godoc
// @Summary      Outbox row counts by status
// @Tags         automation
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /automation/outbox/stats [get]
func (h *AutomationHandler) OutboxStats(c *gin.Context) {
	stats, err := h.outboxUC.Stats(c)
	if err != nil {
		c.Error(err)
		return
	}
	response.Success(c, http.StatusOK, "Outbox stats fetched", stats)
}
