package config

import (
	"fmt"
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"portfolio-backend/internal/domain"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

const (
	DefaultEmailJSEndpoint = "https://api.emailjs.com/api/v1.0/email/send"
	DefaultSiteURL         = "your-portfolio.com"
)

type Config struct {
	Port     string `yaml:"port"`
	GinMode  string `yaml:"gin_mode"`
	LogLevel string `yaml:"log_level"`
	// SMTP delivery account used by the relay endpoint
	EmailUser    string `yaml:"email_user"`
	EmailPass    string `yaml:"email_pass"`
	ContactEmail string `yaml:"contact_email"` // falls back to EmailUser
	SMTPHost     string `yaml:"smtp_host"`
	SMTPPort     string `yaml:"smtp_port"`
	SiteURL      string `yaml:"site_url"`
	// EmailJS credentials for the direct strategy
	EmailJSServiceID  string `yaml:"emailjs_service_id"`
	EmailJSTemplateID string `yaml:"emailjs_template_id"`
	EmailJSPublicKey  string `yaml:"emailjs_public_key"`
	EmailJSEndpoint   string `yaml:"emailjs_endpoint"`
	// Relay strategy
	RelayURL        string        `yaml:"relay_url"`
	SubmitTimeout   time.Duration `yaml:"submit_timeout"`
	NotificationTTL time.Duration `yaml:"notification_ttl"`
	// CORS
	AllowedOrigins []string `yaml:"allowed_origins"`
	// Redis/Upstash Configuration
	UpstashRedisURL      string `yaml:"upstash_redis_url"`
	UpstashRedisPassword string `yaml:"upstash_redis_password"`
	// Rate Limiting Configuration
	RateLimitWindowSeconds    int `yaml:"rate_limit_window_seconds"`
	RateLimitContactThreshold int `yaml:"rate_limit_contact_threshold"`
	// Security event persistence
	DBUrl           string `yaml:"database_url"`
	SecurityLogToDB bool   `yaml:"security_log_to_db"`
}

func defaults() *Config {
	return &Config{
		Port:                      "8080",
		GinMode:                   "debug",
		LogLevel:                  "debug",
		SMTPHost:                  "smtp.gmail.com",
		SMTPPort:                  "587",
		SiteURL:                   DefaultSiteURL,
		EmailJSEndpoint:           DefaultEmailJSEndpoint,
		RelayURL:                  "http://localhost:8080/api/contact",
		NotificationTTL:           5 * time.Second,
		AllowedOrigins:            []string{},
		RateLimitWindowSeconds:    60,
		RateLimitContactThreshold: 5,
	}
}

func LoadConfig() (*Config, error) {
	// Load .env file (only effective locally, ignored when the file is absent)
	_ = godotenv.Load()

	cfg := defaults()

	if path := os.Getenv("CONFIG_FILE"); path != "" {
		if err := loadFile(path, cfg); err != nil {
			return nil, err
		}
	}

	applyEnv(cfg)

	if cfg.EmailUser == "" || cfg.EmailPass == "" {
		log.Println("WARNING: EMAIL_USER/EMAIL_PASS missing. The relay endpoint will answer with delivery failures.")
	}

	if cfg.UpstashRedisURL == "" {
		log.Println("WARNING: UPSTASH_REDIS_URL not configured. Rate limiting will use in-memory fallback.")
	}

	return cfg, nil
}

// loadFile overlays a YAML file onto cfg; environment variables still win
func loadFile(path string, cfg *Config) error {
	raw, err := os.ReadFile(path)
	if err != nil {
		return fmt.Errorf("config: read %s: %w", path, err)
	}
	if err := yaml.Unmarshal(raw, cfg); err != nil {
		return fmt.Errorf("config: parse %s: %w", path, err)
	}
	return nil
}

func applyEnv(cfg *Config) {
	cfg.Port = getEnv("PORT", cfg.Port)
	cfg.GinMode = getEnv("GIN_MODE", cfg.GinMode)
	cfg.LogLevel = getEnv("LOG_LEVEL", cfg.LogLevel)

	cfg.EmailUser = getEnv("EMAIL_USER", cfg.EmailUser)
	cfg.EmailPass = getEnv("EMAIL_PASS", cfg.EmailPass)
	cfg.ContactEmail = getEnv("CONTACT_EMAIL", cfg.ContactEmail)
	cfg.SMTPHost = getEnv("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = getEnv("SMTP_PORT", cfg.SMTPPort)
	cfg.SiteURL = strings.TrimRight(getEnv("NEXT_PUBLIC_SITE_URL", getEnv("SITE_URL", cfg.SiteURL)), "/")

	cfg.EmailJSServiceID = getEnv("EMAILJS_SERVICE_ID", cfg.EmailJSServiceID)
	cfg.EmailJSTemplateID = getEnv("EMAILJS_TEMPLATE_ID", cfg.EmailJSTemplateID)
	cfg.EmailJSPublicKey = getEnv("EMAILJS_PUBLIC_KEY", cfg.EmailJSPublicKey)
	cfg.EmailJSEndpoint = getEnv("EMAILJS_ENDPOINT", cfg.EmailJSEndpoint)

	cfg.RelayURL = getEnv("CONTACT_RELAY_URL", cfg.RelayURL)
	cfg.SubmitTimeout = getEnvDuration("SUBMIT_TIMEOUT", cfg.SubmitTimeout)
	cfg.NotificationTTL = getEnvDuration("NOTIFICATION_TTL", cfg.NotificationTTL)

	if origins := getEnv("ALLOWED_ORIGINS", ""); origins != "" {
		cfg.AllowedOrigins = splitList(origins)
	}

	cfg.UpstashRedisURL = getEnv("UPSTASH_REDIS_URL", cfg.UpstashRedisURL)
	cfg.UpstashRedisPassword = getEnv("UPSTASH_REDIS_PASSWORD", cfg.UpstashRedisPassword)
	cfg.RateLimitWindowSeconds = getEnvInt("RATE_LIMIT_WINDOW_SECONDS", cfg.RateLimitWindowSeconds)
	cfg.RateLimitContactThreshold = getEnvInt("RATE_LIMIT_CONTACT_THRESHOLD", cfg.RateLimitContactThreshold)

	cfg.DBUrl = getEnv("DATABASE_URL", cfg.DBUrl)
	cfg.SecurityLogToDB = getEnvBool("SECURITY_LOG_TO_DB", cfg.SecurityLogToDB)
}

// Recipient is where contact submissions are delivered
func (c *Config) Recipient() string {
	if c.ContactEmail != "" {
		return c.ContactEmail
	}
	return c.EmailUser
}

// IsProduction reports whether gin runs in release mode
func (c *Config) IsProduction() bool {
	return c.GinMode == "release"
}

// SubmissionConfig resolves the gateway strategy once from the loaded values
func (c *Config) SubmissionConfig() domain.SubmissionConfig {
	sc := domain.SubmissionConfig{
		Strategy: domain.StrategyRelay,
		Direct: domain.DirectConfig{
			ServiceID:  c.EmailJSServiceID,
			TemplateID: c.EmailJSTemplateID,
			PublicKey:  c.EmailJSPublicKey,
			Endpoint:   c.EmailJSEndpoint,
		},
		Relay:   domain.RelayConfig{URL: c.RelayURL},
		Timeout: c.SubmitTimeout,
	}
	if HasDirectCredentials(sc.Direct) {
		sc.Strategy = domain.StrategyDirect
	}
	return sc
}

// HasDirectCredentials reports whether all direct-delivery identifiers are real values
func HasDirectCredentials(d domain.DirectConfig) bool {
	return !IsPlaceholder(d.ServiceID) && !IsPlaceholder(d.TemplateID) && !IsPlaceholder(d.PublicKey)
}

// IsPlaceholder reports whether a credential is unset or still holds a template value
func IsPlaceholder(v string) bool {
	v = strings.ToLower(strings.TrimSpace(v))
	if v == "" {
		return true
	}
	if strings.HasPrefix(v, "your_") || strings.HasPrefix(v, "your-") {
		return true
	}
	if strings.HasPrefix(v, "<") && strings.HasSuffix(v, ">") {
		return true
	}
	switch v {
	case "placeholder", "changeme", "change_me", "xxx", "todo", "none":
		return true
	}
	return false
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

// getEnvBool returns a boolean environment variable or fallback if not set/invalid
func getEnvBool(key string, fallback bool) bool {
	if value, exists := os.LookupEnv(key); exists {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
		}
	}
	return fallback
}

// getEnvDuration accepts Go durations ("5s") or bare seconds ("5")
func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value, exists := os.LookupEnv(key)
	if !exists {
		return fallback
	}
	if d, err := time.ParseDuration(value); err == nil {
		return d
	}
	if secs, err := strconv.Atoi(value); err == nil {
		return time.Duration(secs) * time.Second
	}
	return fallback
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if p := strings.TrimSpace(part); p != "" {
			out = append(out, strings.TrimRight(p, "/"))
		}
	}
	return out
}
