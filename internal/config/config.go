// Package config reads application configuration from the environment.
package config

import (
	"os"
	"path/filepath"
	"strconv"
	"strings"
)

// Env var names. All are optional except MINDARCH_API_KEY, which the
// generation client requires.
const (
	EnvAPIKey     = "MINDARCH_API_KEY"
	EnvAPIBaseURL = "MINDARCH_API_BASE_URL"
	EnvModel      = "MINDARCH_MODEL"
	EnvTimeoutSec = "MINDARCH_TIMEOUT_SECONDS"
	EnvDataDir    = "MINDARCH_DATA_DIR"
	EnvServerURL  = "MINDARCH_SERVER_URL"
	EnvAddr       = "MINDARCH_ADDR"
	EnvJWTSecret  = "MINDARCH_JWT_SECRET"
	EnvDBPath     = "MINDARCH_DB_PATH"
	EnvLogMode    = "MINDARCH_LOG_MODE"
)

// GetEnv returns the trimmed value of key, or fallback when unset/empty.
func GetEnv(key, fallback string) string {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		return v
	}
	return fallback
}

// GetEnvInt returns the value of key parsed as a positive integer, or
// fallback when unset or unparsable.
func GetEnvInt(key string, fallback int) int {
	if v := strings.TrimSpace(os.Getenv(key)); v != "" {
		if parsed, err := strconv.Atoi(v); err == nil && parsed > 0 {
			return parsed
		}
	}
	return fallback
}

// DataDir returns the directory holding local app state (current plan,
// cached session). Defaults to ~/.mindarch.
func DataDir() string {
	if v := strings.TrimSpace(os.Getenv(EnvDataDir)); v != "" {
		return v
	}
	home, err := os.UserHomeDir()
	if err != nil {
		return ".mindarch"
	}
	return filepath.Join(home, ".mindarch")
}

// ServerURL returns the remote backend base URL, empty when the app runs
// against local storage only.
func ServerURL() string {
	return strings.TrimRight(GetEnv(EnvServerURL, ""), "/")
}

// LogMode returns the logger mode ("dev" or "prod").
func LogMode() string {
	return GetEnv(EnvLogMode, "dev")
}
