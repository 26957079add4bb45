package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

const PROD_STRING = "prod"

// Config holds all application configuration loaded from environment.
type Config struct {
	IsProduction bool
	ProdOrigins  string
	HTTPAddr     string
	DBDSN        string

	JWTSecret         string
	JWTAccessTokenTTL time.Duration
	BcryptCost        int

	// StaffPasswordHash is an optional bcrypt hash enabling the staff
	// password login fallback (used when Telegram auth is unavailable).
	StaffPasswordHash string

	// Telegram bot credentials and the admin chats that receive staff
	// notifications. SkipTelegramAuth disables initData signature checks
	// for local development.
	TelegramBotToken string
	AdminChatIDs     []int64
	SkipTelegramAuth bool

	// Timezone is the salon's civil timezone (IANA name).
	Timezone string

	// Reservation time windows: minimum notice for creating and for
	// client-side cancellation.
	CreateCutoff time.Duration
	CancelCutoff time.Duration

	// Scheduler tuning.
	TickInterval      time.Duration
	SendTimeout       time.Duration
	FeedbackDelay     time.Duration
	LookbackDays      int
	GenerateDaysAhead int
	SummaryHour       int
	AutogenHour       int
}

// Load loads configuration from .env (optional) and environment variables.
func Load() (*Config, error) {
	// Load .env file if it exists
	if err := godotenv.Load(); err != nil {
		log.Printf("failed to load .env file: %v", err)
	}

	cfg := &Config{}

	// Production origin (default: empty)
	cfg.ProdOrigins = getEnv("PROD_ORIGINS", "")

	// Application environment (default: dev)
	appEnvStr := getEnv("APP_ENV", "dev")
	cfg.IsProduction = appEnvStr == PROD_STRING

	// HTTP listen address (default: :8080)
	cfg.HTTPAddr = getEnv("HTTP_ADDR", ":8080")

	// Database DSN is required
	cfg.DBDSN = os.Getenv("DB_DSN")
	if cfg.DBDSN == "" {
		return nil, fmt.Errorf("DB_DSN is required")
	}

	// JWT secret is required for signing tokens
	cfg.JWTSecret = os.Getenv("JWT_SECRET")
	if cfg.JWTSecret == "" {
		return nil, fmt.Errorf("JWT_SECRET is required")
	}

	// JWT access token TTL, parse as time.Duration (e.g. "15m", "1h").
	var err error
	cfg.JWTAccessTokenTTL, err = getEnvAsDuration("JWT_ACCESS_TOKEN_TTL", "24h")
	if err != nil {
		return nil, err
	}

	// Bcrypt cost for the staff password fallback (default: 12)
	cfg.BcryptCost, err = getEnvAsInt("BCRYPT_COST", 12)
	if err != nil {
		return nil, err
	}
	cfg.StaffPasswordHash = getEnv("STAFF_PASSWORD_HASH", "")

	// Telegram: the bot token is required unless signature checks are
	// disabled, since both auth and outbound notifications depend on it.
	cfg.SkipTelegramAuth = getEnv("SKIP_TELEGRAM_AUTH", "") == "true"
	cfg.TelegramBotToken = os.Getenv("TELEGRAM_BOT_TOKEN")
	if cfg.TelegramBotToken == "" && !cfg.SkipTelegramAuth {
		return nil, fmt.Errorf("TELEGRAM_BOT_TOKEN is required")
	}

	cfg.AdminChatIDs, err = parseChatIDs(getEnv("ADMIN_CHAT_IDS", ""))
	if err != nil {
		return nil, err
	}

	cfg.Timezone = getEnv("SALON_TIMEZONE", "")

	if cfg.CreateCutoff, err = getEnvAsDuration("BOOKING_CREATE_CUTOFF", "60m"); err != nil {
		return nil, err
	}
	if cfg.CancelCutoff, err = getEnvAsDuration("BOOKING_CANCEL_CUTOFF", "10h"); err != nil {
		return nil, err
	}
	if cfg.TickInterval, err = getEnvAsDuration("SCHEDULER_TICK", "1m"); err != nil {
		return nil, err
	}
	if cfg.SendTimeout, err = getEnvAsDuration("NOTIFY_SEND_TIMEOUT", "10s"); err != nil {
		return nil, err
	}
	if cfg.FeedbackDelay, err = getEnvAsDuration("FEEDBACK_DELAY", "1h"); err != nil {
		return nil, err
	}
	if cfg.LookbackDays, err = getEnvAsInt("SCHEDULER_LOOKBACK_DAYS", 7); err != nil {
		return nil, err
	}
	if cfg.GenerateDaysAhead, err = getEnvAsInt("AUTOGEN_DAYS_AHEAD", 14); err != nil {
		return nil, err
	}
	if cfg.SummaryHour, err = getEnvAsInt("SUMMARY_HOUR", 8); err != nil {
		return nil, err
	}
	if cfg.AutogenHour, err = getEnvAsInt("AUTOGEN_HOUR", 7); err != nil {
		return nil, err
	}

	return cfg, nil
}

// parseChatIDs splits a comma-separated list of Telegram chat ids.
func parseChatIDs(raw string) ([]int64, error) {
	if strings.TrimSpace(raw) == "" {
		return nil, nil
	}
	parts := strings.Split(raw, ",")
	ids := make([]int64, 0, len(parts))
	for _, p := range parts {
		p = strings.TrimSpace(p)
		if p == "" {
			continue
		}
		id, err := strconv.ParseInt(p, 10, 64)
		if err != nil {
			return nil, fmt.Errorf("invalid admin chat id %q: %w", p, err)
		}
		ids = append(ids, id)
	}
	return ids, nil
}

// getEnv returns the value of the environment variable if set,
// otherwise returns the provided default value.
func getEnv(key, defaultValue string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultValue
}

// getEnvAsInt retrieves an environment variable as an integer.
// It returns the default value if the variable is not set.
// It returns an error if the variable is set but is not a valid integer.
func getEnvAsInt(key string, defaultValue int) (int, error) {
	valStr := getEnv(key, "")
	if valStr == "" {
		return defaultValue, nil
	}

	val, err := strconv.Atoi(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid integer: %w", key, valStr, err)
	}

	return val, nil
}

// getEnvAsDuration retrieves an environment variable as a time.Duration,
// falling back to the provided default expression.
func getEnvAsDuration(key, defaultValue string) (time.Duration, error) {
	valStr := getEnv(key, defaultValue)
	val, err := time.ParseDuration(valStr)
	if err != nil {
		return 0, fmt.Errorf("env %s value %q is not a valid duration: %w", key, valStr, err)
	}
	return val, nil
}
