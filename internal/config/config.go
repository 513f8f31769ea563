package config

import (
	"errors"
	"io/fs"
	"log/slog"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port     string
	LogLevel string
	AppEnv   string

	// Location store. Locations are disabled when DatabaseURL is empty.
	DatabaseURL  string
	QueryTimeout time.Duration

	// Listing sheet
	SpreadsheetID         string
	SheetName             string
	SheetID               int64
	GoogleCredentials     string
	GoogleCredentialsFile string
	SheetsTimeout         time.Duration

	BreakerMaxFailures  int
	BreakerResetTimeout time.Duration

	// Change notifications
	NotifyEndpoints    []string
	NotifyRetryMax     int
	NotifyRetryBackoff time.Duration
	NotifyRPCTimeout   time.Duration
}

// Load reads configuration from the environment, after applying a .env file
// in the working directory if one exists. Variables already set win.
func Load() Config {
	loadDotEnv(".env")

	return Config{
		Port:                  getEnv("PORT", "8080"),
		LogLevel:              getEnv("LOG_LEVEL", "info"),
		AppEnv:                getEnv("APP_ENV", "production"),
		DatabaseURL:           getEnv("DATABASE_URL", ""),
		QueryTimeout:          getEnvDuration("QUERY_TIMEOUT", 5*time.Second),
		SpreadsheetID:         getEnvRequired("SPREADSHEET_ID"),
		SheetName:             getEnv("SHEET_NAME", "Hoja 1"),
		SheetID:               getEnvInt64("SHEET_ID", 0),
		GoogleCredentials:     getEnv("GOOGLE_CREDENTIALS_BASE64", ""),
		GoogleCredentialsFile: getEnv("GOOGLE_CREDENTIALS_FILE", "credentials.json"),
		SheetsTimeout:         getEnvDuration("SHEETS_TIMEOUT", 10*time.Second),
		BreakerMaxFailures:    getEnvInt("BREAKER_MAX_FAILURES", 5),
		BreakerResetTimeout:   getEnvDuration("BREAKER_RESET_TIMEOUT", 30*time.Second),
		NotifyEndpoints:       getEnvList("NOTIFY_ENDPOINTS"),
		NotifyRetryMax:        getEnvInt("NOTIFY_RETRY_MAX", 3),
		NotifyRetryBackoff:    getEnvDuration("NOTIFY_RETRY_BACKOFF", 100*time.Millisecond),
		NotifyRPCTimeout:      getEnvDuration("NOTIFY_RPC_TIMEOUT", 5*time.Second),
	}
}

func (c Config) Development() bool {
	return strings.EqualFold(c.AppEnv, "development")
}

func (c Config) LocationsEnabled() bool {
	return c.DatabaseURL != ""
}

// SlogLevel maps LogLevel to a slog level, defaulting to info.
func (c Config) SlogLevel() slog.Level {
	switch strings.ToLower(c.LogLevel) {
	case "debug":
		return slog.LevelDebug
	case "warn", "warning":
		return slog.LevelWarn
	case "error":
		return slog.LevelError
	default:
		return slog.LevelInfo
	}
}

func loadDotEnv(path string) {
	if err := godotenv.Load(path); err != nil && !errors.Is(err, fs.ErrNotExist) {
		slog.Warn("failed to load env file", "path", path, "error", err)
	}
}

func getEnvRequired(key string) string {
	v := os.Getenv(key)
	if v == "" {
		panic("required environment variable " + key + " is not set")
	}
	return v
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.Atoi(v)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		n, err := strconv.ParseInt(v, 10, 64)
		if err != nil {
			slog.Warn("invalid integer env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return n
	}
	return fallback
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		d, err := time.ParseDuration(v)
		if err != nil {
			slog.Warn("invalid duration env var, using default", "key", key, "value", v, "error", err)
			return fallback
		}
		return d
	}
	return fallback
}

// getEnvList splits a comma-separated variable, dropping blank entries.
func getEnvList(key string) []string {
	var out []string
	for _, part := range strings.Split(os.Getenv(key), ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, p)
		}
	}
	return out
}
