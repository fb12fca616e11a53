package main

import (
	"context"
	"log"
	"net/http"
	"os"
	"os/signal"
	"syscall"
	"time"

	"go-ats-core/config"
	_ "go-ats-core/docs" // Important for Swagger
	v1 "go-ats-core/internal/delivery/http/v1"
	"go-ats-core/internal/repository/postgres"
	"go-ats-core/internal/usecase"
	"go-ats-core/internal/worker"
	"go-ats-core/pkg/database"
	"go-ats-core/pkg/email"
	"go-ats-core/pkg/logger"
	"go-ats-core/pkg/mailtemplate"
	"go-ats-core/pkg/redis"

	"github.com/go-playground/validator/v10"
)

// @title           ATS Scheduling & Automation API
// @version         1.0
// @description     Interview scheduling, pipeline automation and email outbox for the ATS.
// @host            localhost:8080
// @BasePath        /v1
func main() {
	// 1. Load Config
	cfg, err := config.LoadConfig()
	if err != nil {
		log.Fatalf("Failed to load config: %v", err)
	}

	// 2. Setup Logger
	logger.Init()
	logger.Log.Info("Starting ATS core backend", "port", cfg.Port)

	// 3. Setup Database
	dbPool, err := database.NewPostgresConnection(cfg.DBUrl)
	if err != nil {
		logger.Log.Error("Failed to connect to database", "error", err)
		os.Exit(1)
	}
	defer dbPool.Close()

	// 4. Setup Redis (optional; rate limiting and the sweep lock degrade without it)
	if err := redis.Initialize(redis.Config{
		URL:      cfg.UpstashRedisURL,
		Password: cfg.UpstashRedisPassword,
	}); err != nil {
		logger.Log.Warn("Redis unavailable, continuing with in-process fallbacks", "error", err)
	}
	defer redis.Close()

	// 5. Setup Repositories
	interviewRepo := postgres.NewInterviewRepository(dbPool)
	candidateRepo := postgres.NewCandidateRepository(dbPool)
	ruleStore := postgres.NewRuleStore(dbPool)
	outboxRepo := postgres.NewOutboxRepository(dbPool)

	// 6. Seed the default rule catalog (keeps operator activation state)
	seedCtx, cancelSeed := context.WithTimeout(context.Background(), 10*time.Second)
	if err := ruleStore.Seed(seedCtx, usecase.DefaultRuleCatalog()); err != nil {
		logger.Log.Error("Failed to seed automation rules", "error", err)
		cancelSeed()
		os.Exit(1)
	}
	cancelSeed()

	// 7. Setup Email Service + Template Catalog
	emailSender := email.NewEmailService(cfg)
	if !emailSender.IsConfigured() {
		logger.Log.Warn("Email service not fully configured - outbox drains will fail delivery")
	}
	catalog := mailtemplate.New()

	// 8. Setup UseCases
	validate := validator.New()
	schedulingUC := usecase.NewSchedulingUsecase(interviewRepo, validate, usecase.SlotConfig{
		BusinessHourStart: cfg.BusinessHourStart,
		BusinessHourEnd:   cfg.BusinessHourEnd,
		StepMinutes:       cfg.SlotStepMinutes,
		SearchDays:        cfg.SlotSearchDays,
	})
	sweepLock := redis.NewLock(redis.Client(), "automation:sweep:lock", 10*time.Minute)
	automationUC := usecase.NewAutomationUsecase(ruleStore, candidateRepo, outboxRepo, catalog, sweepLock, cfg.SweepBatchSize)
	outboxUC := usecase.NewOutboxUsecase(outboxRepo, catalog, emailSender, cfg.DrainBatchSize, cfg.OutboxMaxAttempts)

	// 9. Setup Background Worker (sweep + drain schedules)
	bgWorker, err := worker.New(automationUC, outboxUC, cfg.SweepCron, cfg.DrainCron)
	if err != nil {
		logger.Log.Error("Failed to set up background worker", "error", err)
		os.Exit(1)
	}
	bgWorker.Start()

	// 10. Setup Router
	router := v1.NewRouter(v1.RouterDeps{
		SchedulingUC:    schedulingUC,
		AutomationUC:    automationUC,
		OutboxUC:        outboxUC,
		TemplateCatalog: catalog,
		Config:          cfg,
	})

	// 11. Start Server
	srv := &http.Server{
		Addr:    ":" + cfg.Port,
		Handler: router,
	}

	go func() {
		if err := srv.ListenAndServe(); err != nil && err != http.ErrServerClosed {
			logger.Log.Error("Listen failed", "error", err)
		}
	}()

	// Graceful Shutdown
	quit := make(chan os.Signal, 1)
	signal.Notify(quit, syscall.SIGINT, syscall.SIGTERM)
	<-quit
	logger.Log.Info("Shutting down server...")

	bgWorker.Stop()

	ctx, cancel := context.WithTimeout(context.Background(), 5*time.Second)
	defer cancel()

	if err := srv.Shutdown(ctx); err != nil {
		logger.Log.Error("Server forced to shutdown", "error", err)
	}

	logger.Log.Info("Server exiting")
}
