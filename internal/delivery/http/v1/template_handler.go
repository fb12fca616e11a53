package v1

import (
	"net/http"

	"go-ats-core/internal/delivery/http/response"
	"go-ats-core/pkg/apperror"
	"go-ats-core/pkg/mailtemplate"

	"github.com/gin-gonic/gin"
)

type TemplateHandler struct {
	catalog *mailtemplate.Catalog
}

func NewTemplateHandler(rg *gin.RouterGroup, catalog *mailtemplate.Catalog) {
	handler := &TemplateHandler{catalog: catalog}

	templates := rg.Group("/templates")
	{
		templates.GET("", handler.List)
		templates.GET("/:id", handler.GetDetails)
	}
}

// List godoc
// @Summary      List email templates
// @Tags         templates
// @Produce      json
// @Success      200  {object}  response.Response
// @Router       /templates [get]
func (h *TemplateHandler) List(c *gin.Context) {
	response.Success(c, http.StatusOK, "Templates fetched", h.catalog.List())
}

// GetDetails godoc
// @Summary      Get one email template
// @Tags         templates
// @Produce      json
// @Param        id   path      string  true  "Template ID"
// @Success      200  {object}  response.Response
// @Failure      404  {object}  response.Response
// @Router       /templates/{id} [get]
func (h *TemplateHandler) GetDetails(c *gin.Context) {
	tpl := h.catalog.Get(c.Param("id"))
	if tpl == nil {
		c.Error(apperror.NotFound("Email template not found"))
		return
	}
	response.Success(c, http.StatusOK, "Template fetched", tpl)
}
