// Package config loads client configuration from environment variables.
package config

import (
	"log"
	"os"
	"strconv"
	"strings"
)

const defaultAPIBase = "http://localhost:8080"

// Config carries everything the client and CLI need to run.
type Config struct {
	Env      string // local | staging | prod
	LogLevel string

	// Backend API
	APIBaseURL        string
	APIToken          string
	APITimeoutSeconds int

	// Outbound pacing (0 disables)
	RateLimitRPS   int
	RateLimitBurst int

	// Uploads
	UploadMaxMB       int
	UploadAllowedMime string

	// Reports
	ReportsOutputDir string
}

// Load reads configuration from the environment, applying defaults and
// logging a warning for values that cannot be used as given.
func Load() *Config {
	env := strings.TrimSpace(os.Getenv("APP_ENV"))
	if env == "" {
		env = "local"
	}

	logLevel := os.Getenv("LOG_LEVEL")
	if logLevel == "" {
		logLevel = "debug"
	}

	apiBase := strings.TrimSpace(os.Getenv("API_BASE_URL"))
	if apiBase == "" {
		apiBase = defaultAPIBase
		if env != "local" {
			log.Printf("WARNING: API_BASE_URL not set in %s environment, using %s", env, defaultAPIBase)
		}
	}

	apiToken := strings.TrimSpace(os.Getenv("API_TOKEN"))

	timeoutSeconds := envInt("API_TIMEOUT_SECONDS", 20)
	if timeoutSeconds <= 0 {
		timeoutSeconds = 20
	}

	rateLimitRPS := envInt("API_RATE_LIMIT_RPS", 0)
	rateLimitBurst := envInt("API_RATE_LIMIT_BURST", 0)

	uploadMaxMB := envInt("UPLOAD_MAX_MB", 10)
	if uploadMaxMB <= 0 {
		uploadMaxMB = 10
	}

	uploadAllowedMime := os.Getenv("UPLOAD_ALLOWED_MIME")
	if uploadAllowedMime == "" {
		uploadAllowedMime = "image/jpeg,image/png,image/heic"
	}

	reportsDir := strings.TrimSpace(os.Getenv("REPORTS_OUTPUT_DIR"))
	if reportsDir == "" {
		reportsDir = "."
	}

	return &Config{
		Env:               env,
		LogLevel:          logLevel,
		APIBaseURL:        apiBase,
		APIToken:          apiToken,
		APITimeoutSeconds: timeoutSeconds,
		RateLimitRPS:      rateLimitRPS,
		RateLimitBurst:    rateLimitBurst,
		UploadMaxMB:       uploadMaxMB,
		UploadAllowedMime: uploadAllowedMime,
		ReportsOutputDir:  reportsDir,
	}
}

// MimeAllowed reports whether an upload MIME type is accepted.
func (c *Config) MimeAllowed(mimeType string) bool {
	mimeType = strings.ToLower(strings.TrimSpace(mimeType))
	for _, allowed := range strings.Split(c.UploadAllowedMime, ",") {
		if strings.ToLower(strings.TrimSpace(allowed)) == mimeType {
			return true
		}
	}
	return false
}

// envInt reads an int env var with a default value.
func envInt(key string, defaultVal int) int {
	s := os.Getenv(key)
	if s == "" {
		return defaultVal
	}
	v, err := strconv.Atoi(s)
	if err != nil {
		log.Printf("WARNING: invalid %s=%q, using %d", key, s, defaultVal)
		return defaultVal
	}
	return v
}
