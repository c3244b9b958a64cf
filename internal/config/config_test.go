package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/trip-assistant-poc/server/internal/core"
)

func TestLoadDefaults(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "test-key")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, "test-key", cfg.APIKey)
	assert.Equal(t, "8000", cfg.HTTP.Port)
	assert.Equal(t, "*", cfg.HTTP.AllowedOrigins)
	assert.Equal(t, "gemini-2.5-flash-lite", cfg.Classifier.Model)
	assert.Equal(t, "gemini-2.5-flash", cfg.Answer.Model)
	assert.Equal(t, 20*time.Second, cfg.Agent.LLMTimeout)
	assert.Equal(t, "data", cfg.Agent.DocumentsDir)
	assert.Zero(t, cfg.Agent.AnswerCacheTTL)
	assert.Equal(t, "redis://localhost:6379/0", cfg.Redis.URL)
	assert.Equal(t, 720*time.Hour, cfg.Redis.RecordTTL)
	assert.Equal(t, 1.0, cfg.HTTP.RateLimitRPS)
	assert.Equal(t, 10, cfg.HTTP.RateLimitBurst)
	assert.False(t, cfg.Mail.Enabled())
}

func TestLoadFromEnvFile(t *testing.T) {
	dir := t.TempDir()
	envFile := filepath.Join(dir, ".env")
	content := "GEMINI_API_KEY=file-key\nAPP_ENV=prod\nLLM_TIMEOUT=5s\nSMTP_HOST=smtp.example.com\nFEEDBACK_EMAIL=ops@example.com\n"
	require.NoError(t, os.WriteFile(envFile, []byte(content), 0o600))

	for _, k := range []string{"GEMINI_API_KEY", "APP_ENV", "LLM_TIMEOUT", "SMTP_HOST", "FEEDBACK_EMAIL"} {
		old, had := os.LookupEnv(k)
		require.NoError(t, os.Unsetenv(k))
		t.Cleanup(func() {
			if had {
				_ = os.Setenv(k, old)
			} else {
				_ = os.Unsetenv(k)
			}
		})
	}

	cfg, err := Load(envFile)
	require.NoError(t, err)

	assert.Equal(t, "file-key", cfg.APIKey)
	assert.Equal(t, core.Production, cfg.Environment())
	assert.Equal(t, 5*time.Second, cfg.Agent.LLMTimeout)
	assert.True(t, cfg.Mail.Enabled())
	assert.Equal(t, 587, cfg.Mail.Port)
}

func TestLoadRequiresAPIKey(t *testing.T) {
	t.Setenv("GEMINI_API_KEY", "  ")

	_, err := Load(filepath.Join(t.TempDir(), "missing.env"))
	assert.Error(t, err)
}
