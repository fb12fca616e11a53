package config

import (
	"log"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	Port        string
	DBUrl       string
	FrontendURL string
	// SMTP Configuration (Brevo)
	SMTPHost      string
	SMTPPort      string
	SMTPUsername  string
	SMTPPassword  string
	SMTPFromEmail string // Verified sender email (different from SMTP login)
	// Redis/Upstash Configuration
	UpstashRedisURL      string
	UpstashRedisPassword string
	// Rate Limiting Configuration
	RateLimitWindowSeconds   int
	RateLimitGlobalThreshold int
	// Automation Engine Configuration
	SweepCron      string // cron expression for the automation sweep
	DrainCron      string // cron expression for the outbox drain
	SweepBatchSize int    // max candidates matched per rule per sweep
	DrainBatchSize int    // max outbox rows per drain
	// Outbox Configuration
	OutboxMaxAttempts int // delivery attempts before a row is dead-lettered
	// Scheduling Configuration
	BusinessHourStart int // first bookable hour, inclusive
	BusinessHourEnd   int // last bookable hour, exclusive
	SlotStepMinutes   int // slot suggestion step size
	SlotSearchDays    int // how many days forward the suggester scans
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored in production)
	_ = godotenv.Load()

	cfg := &Config{
		Port:        getEnv("PORT", "8080"),
		DBUrl:       getEnv("DATABASE_URL", ""),
		FrontendURL: strings.TrimRight(getEnv("FRONTEND_URL", "http://localhost:3000"), "/"),
		// SMTP Configuration
		SMTPHost:      getEnv("SMTP_HOST", "smtp-relay.brevo.com"),
		SMTPPort:      getEnv("SMTP_PORT", "587"),
		SMTPUsername:  getEnv("SMTP_USERNAME", ""),
		SMTPPassword:  getEnv("SMTP_PASSWORD", ""),
		SMTPFromEmail: getEnv("SMTP_FROM_EMAIL", "noreply@example.com"),
		// Redis/Upstash Configuration
		UpstashRedisURL:      getEnv("UPSTASH_REDIS_URL", ""),
		UpstashRedisPassword: getEnv("UPSTASH_REDIS_PASSWORD", ""),
		// Rate Limiting Configuration (with sensible defaults)
		RateLimitWindowSeconds:   getEnvInt("RATE_LIMIT_WINDOW_SECONDS", 60),
		RateLimitGlobalThreshold: getEnvInt("RATE_LIMIT_GLOBAL_THRESHOLD", 100),
		// Automation Engine Configuration
		SweepCron:      getEnv("SWEEP_CRON", "0 * * * *"), // hourly
		DrainCron:      getEnv("DRAIN_CRON", "* * * * *"), // every minute
		SweepBatchSize: getEnvInt("SWEEP_BATCH_SIZE", 100),
		DrainBatchSize: getEnvInt("DRAIN_BATCH_SIZE", 50),
		// Outbox Configuration
		OutboxMaxAttempts: getEnvInt("OUTBOX_MAX_ATTEMPTS", 5),
		// Scheduling Configuration
		BusinessHourStart: getEnvInt("BUSINESS_HOUR_START", 9),
		BusinessHourEnd:   getEnvInt("BUSINESS_HOUR_END", 17),
		SlotStepMinutes:   getEnvInt("SLOT_STEP_MINUTES", 30),
		SlotSearchDays:    getEnvInt("SLOT_SEARCH_DAYS", 14),
	}

	// Basic validation to avoid confusing failures later
	if cfg.DBUrl == "" {
		log.Println("WARNING: DATABASE_URL is missing. Application may fail to connect.")
	}
	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting and the sweep lock will use in-process fallbacks.")
	}
	if cfg.BusinessHourEnd <= cfg.BusinessHourStart {
		log.Printf("WARNING: invalid business hours %d-%d, falling back to 9-17.", cfg.BusinessHourStart, cfg.BusinessHourEnd)
		cfg.BusinessHourStart, cfg.BusinessHourEnd = 9, 17
	}

	return cfg, nil
}

func getEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists {
		return value
	}
	return fallback
}

// getEnvInt returns an integer environment variable or fallback if not set/invalid
func getEnvInt(key string, fallback int) int {
	if value, exists := os.LookupEnv(key); exists {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return fallback
}
