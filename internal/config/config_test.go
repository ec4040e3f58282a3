package config

import "testing"

func clearEnv(t *testing.T) {
	t.Helper()
	for _, key := range []string{
		"APP_ENV", "LOG_LEVEL", "API_BASE_URL", "API_TOKEN",
		"API_TIMEOUT_SECONDS", "API_RATE_LIMIT_RPS", "API_RATE_LIMIT_BURST",
		"UPLOAD_MAX_MB", "UPLOAD_ALLOWED_MIME", "REPORTS_OUTPUT_DIR",
	} {
		t.Setenv(key, "")
	}
}

func TestLoadDefaults(t *testing.T) {
	clearEnv(t)
	cfg := Load()

	if cfg.Env != "local" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.APIBaseURL != "http://localhost:8080" {
		t.Errorf("APIBaseURL = %q", cfg.APIBaseURL)
	}
	if cfg.APITimeoutSeconds != 20 {
		t.Errorf("APITimeoutSeconds = %d", cfg.APITimeoutSeconds)
	}
	if cfg.RateLimitRPS != 0 || cfg.RateLimitBurst != 0 {
		t.Errorf("rate limit = %d/%d, want disabled", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.UploadMaxMB != 10 {
		t.Errorf("UploadMaxMB = %d", cfg.UploadMaxMB)
	}
	if cfg.ReportsOutputDir != "." {
		t.Errorf("ReportsOutputDir = %q", cfg.ReportsOutputDir)
	}
}

func TestLoadOverrides(t *testing.T) {
	clearEnv(t)
	t.Setenv("APP_ENV", "staging")
	t.Setenv("API_BASE_URL", "https://api.example.com ")
	t.Setenv("API_TOKEN", " tok ")
	t.Setenv("API_TIMEOUT_SECONDS", "5")
	t.Setenv("API_RATE_LIMIT_RPS", "3")
	t.Setenv("API_RATE_LIMIT_BURST", "6")
	t.Setenv("UPLOAD_MAX_MB", "25")

	cfg := Load()
	if cfg.Env != "staging" {
		t.Errorf("Env = %q", cfg.Env)
	}
	if cfg.APIBaseURL != "https://api.example.com" {
		t.Errorf("APIBaseURL = %q, want trimmed", cfg.APIBaseURL)
	}
	if cfg.APIToken != "tok" {
		t.Errorf("APIToken = %q, want trimmed", cfg.APIToken)
	}
	if cfg.APITimeoutSeconds != 5 {
		t.Errorf("APITimeoutSeconds = %d", cfg.APITimeoutSeconds)
	}
	if cfg.RateLimitRPS != 3 || cfg.RateLimitBurst != 6 {
		t.Errorf("rate limit = %d/%d", cfg.RateLimitRPS, cfg.RateLimitBurst)
	}
	if cfg.UploadMaxMB != 25 {
		t.Errorf("UploadMaxMB = %d", cfg.UploadMaxMB)
	}
}

func TestLoadBadValuesFallBack(t *testing.T) {
	clearEnv(t)
	t.Setenv("API_TIMEOUT_SECONDS", "soon")
	t.Setenv("UPLOAD_MAX_MB", "-3")

	cfg := Load()
	if cfg.APITimeoutSeconds != 20 {
		t.Errorf("APITimeoutSeconds = %d, want default 20", cfg.APITimeoutSeconds)
	}
	if cfg.UploadMaxMB != 10 {
		t.Errorf("UploadMaxMB = %d, want default 10", cfg.UploadMaxMB)
	}
}

func TestMimeAllowed(t *testing.T) {
	cfg := &Config{UploadAllowedMime: "image/jpeg, image/png ,image/heic"}

	for _, mime := range []string{"image/jpeg", "IMAGE/PNG", " image/heic "} {
		if !cfg.MimeAllowed(mime) {
			t.Errorf("MimeAllowed(%q) = false", mime)
		}
	}
	for _, mime := range []string{"image/gif", "application/pdf", ""} {
		if cfg.MimeAllowed(mime) {
			t.Errorf("MimeAllowed(%q) = true", mime)
		}
	}
}
