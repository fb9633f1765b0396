package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoadConfigDefaults(t *testing.T) {
	t.Setenv("CONFIG_FILE", "")
	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "8080", cfg.Port)
	assert.Equal(t, "smtp.gmail.com", cfg.SMTPHost)
	assert.Equal(t, 5*time.Second, cfg.NotificationTTL)
	assert.Equal(t, DefaultEmailJSEndpoint, cfg.EmailJSEndpoint)
}

func TestLoadConfigFileThenEnv(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "contact.yaml")
	err := os.WriteFile(path, []byte(`
port: "9000"
email_user: owner@example.com
contact_email: inbox@example.com
submit_timeout: 3s
allowed_origins:
  - https://portfolio.example.com
`), 0o600)
	require.NoError(t, err)

	t.Setenv("CONFIG_FILE", path)
	t.Setenv("PORT", "9100")
	t.Setenv("NEXT_PUBLIC_SITE_URL", "https://portfolio.example.com/")

	cfg, err := LoadConfig()
	require.NoError(t, err)

	assert.Equal(t, "9100", cfg.Port, "env overrides file")
	assert.Equal(t, "owner@example.com", cfg.EmailUser)
	assert.Equal(t, "inbox@example.com", cfg.Recipient())
	assert.Equal(t, 3*time.Second, cfg.SubmitTimeout)
	assert.Equal(t, []string{"https://portfolio.example.com"}, cfg.AllowedOrigins)
	assert.Equal(t, "https://portfolio.example.com", cfg.SiteURL)
}

func TestLoadConfigMissingFile(t *testing.T) {
	t.Setenv("CONFIG_FILE", filepath.Join(t.TempDir(), "missing.yaml"))
	_, err := LoadConfig()
	assert.Error(t, err)
}

func TestRecipientFallsBackToAccount(t *testing.T) {
	cfg := &Config{EmailUser: "me@example.com"}
	assert.Equal(t, "me@example.com", cfg.Recipient())
}

func TestSubmissionConfigStrategy(t *testing.T) {
	t.Run("Should prefer direct when credentials are real", func(t *testing.T) {
		cfg := &Config{
			EmailJSServiceID:  "service_abc123",
			EmailJSTemplateID: "template_xyz",
			EmailJSPublicKey:  "pk_4f9a",
			RelayURL:          "http://localhost:8080/api/contact",
		}
		sc := cfg.SubmissionConfig()
		assert.Equal(t, domain.StrategyDirect, sc.Strategy)
		assert.Equal(t, "service_abc123", sc.Direct.ServiceID)
	})

	t.Run("Should fall back to relay on placeholder credentials", func(t *testing.T) {
		cfg := &Config{
			EmailJSServiceID:  "your_service_id",
			EmailJSTemplateID: "template_xyz",
			EmailJSPublicKey:  "pk_4f9a",
			RelayURL:          "http://localhost:8080/api/contact",
		}
		assert.Equal(t, domain.StrategyRelay, cfg.SubmissionConfig().Strategy)
	})

	t.Run("Should fall back to relay when any credential is missing", func(t *testing.T) {
		cfg := &Config{EmailJSServiceID: "service_abc123", EmailJSTemplateID: "template_xyz"}
		assert.Equal(t, domain.StrategyRelay, cfg.SubmissionConfig().Strategy)
	})
}

func TestIsPlaceholder(t *testing.T) {
	for _, v := range []string{"", "  ", "your_public_key", "YOUR_SERVICE_ID", "your-template", "<key>", "placeholder", "changeme", "XXX"} {
		assert.Truef(t, IsPlaceholder(v), "%q", v)
	}
	for _, v := range []string{"service_abc123", "template_9", "user_Xk2"} {
		assert.Falsef(t, IsPlaceholder(v), "%q", v)
	}
}

func TestGetEnvDuration(t *testing.T) {
	t.Setenv("TEST_DURATION", "7")
	assert.Equal(t, 7*time.Second, getEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "250ms")
	assert.Equal(t, 250*time.Millisecond, getEnvDuration("TEST_DURATION", time.Second))

	t.Setenv("TEST_DURATION", "soon")
	assert.Equal(t, time.Second, getEnvDuration("TEST_DURATION", time.Second))
}
