package v1

import (
	"net/http"
	"time"

	"go-ats-core/config"
	"go-ats-core/internal/delivery/http/middleware"
	"go-ats-core/internal/delivery/http/response"
	"go-ats-core/internal/domain"
	"go-ats-core/pkg/mailtemplate"

	"github.com/gin-gonic/gin"
	swaggerFiles "github.com/swaggo/files"
	ginSwagger "github.com/swaggo/gin-swagger"
)

type RouterDeps struct {
	SchedulingUC    domain.SchedulingUsecase
	AutomationUC    domain.AutomationUsecase
	OutboxUC        domain.OutboxUsecase
	TemplateCatalog *mailtemplate.Catalog
	Config          *config.Config
}

func NewRouter(deps RouterDeps) *gin.Engine {
	r := gin.New()

	// Global Middlewares
	r.Use(middleware.CORSMiddleware(deps.Config.FrontendURL)) // CORS must be first!
	r.Use(gin.Recovery())
	r.Use(gin.Logger()) // Use standard Gin logger
	r.Use(middleware.RequestID())
	r.Use(middleware.ErrorHandler())
	r.Use(middleware.RateLimitMiddleware(middleware.GlobalRateLimitConfig(
		deps.Config.RateLimitGlobalThreshold,
		time.Duration(deps.Config.RateLimitWindowSeconds)*time.Second,
	)))

	v1 := r.Group("/v1")

	// Health Check
	v1.GET("/health", func(c *gin.Context) {
		response.Success(c, http.StatusOK, "System operational", nil)
	})

	// Swagger
	v1.GET("/swagger/*any", ginSwagger.WrapHandler(swaggerFiles.Handler))

	NewSchedulingHandler(v1, deps.SchedulingUC)
	NewAutomationHandler(v1, deps.AutomationUC, deps.OutboxUC)
	NewTemplateHandler(v1, deps.TemplateCatalog)

	return r
}
