package bootstrap

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"gopkg.in/yaml.v3"
)

// Config is the resolved runtime configuration for the account service.
// It merges file defaults and environment overrides to support both local and deployed runs.
type Config struct {
	ServiceID string

	HTTPPort int

	DatabaseURL string
	RedisURL    string

	AccessTokenSecret  string
	RefreshTokenSecret string

	BcryptCost int

	AccessTokenTTL       time.Duration
	RefreshTokenTTL      time.Duration
	VerificationTokenTTL time.Duration
	ResetTokenTTL        time.Duration
	OTPTokenTTL          time.Duration
	BlockDuration        time.Duration
	LockoutDuration      time.Duration
	FailedThreshold      int

	PublicBaseURL string
	CookieSecure  bool

	MailerProvider string
	SendGridAPIKey string
	FromEmail      string
	FromName       string
	SMTPHost       string
	SMTPPort       string
	SMTPUsername   string
	SMTPPassword   string

	SweepInterval  time.Duration
	SweepBatchSize int

	MaxDBConns int32
}

// configFile mirrors the YAML schema used by configs/default.yaml.
// It is intentionally separate from Config so runtime-only fields stay internal.
type configFile struct {
	Service struct {
		ID       string `yaml:"id"`
		HTTPPort int    `yaml:"http_port"`
	} `yaml:"service"`
	Dependencies struct {
		PostgresURL string `yaml:"postgres_url"`
		RedisURL    string `yaml:"redis_url"`
	} `yaml:"dependencies"`
	Mailer struct {
		Provider  string `yaml:"provider"`
		FromEmail string `yaml:"from_email"`
		FromName  string `yaml:"from_name"`
		SMTPHost  string `yaml:"smtp_host"`
		SMTPPort  string `yaml:"smtp_port"`
	} `yaml:"mailer"`
	PublicBaseURL string `yaml:"public_base_url"`
}

// LoadConfig resolves configuration in priority order: defaults -> file -> env.
func LoadConfig(path string) (Config, error) {
	cfg := Config{
		ServiceID:            "account-service",
		HTTPPort:             8080,
		BcryptCost:           12,
		AccessTokenTTL:       24 * time.Hour,
		RefreshTokenTTL:      10 * 24 * time.Hour,
		VerificationTokenTTL: 15 * time.Minute,
		ResetTokenTTL:        15 * time.Minute,
		OTPTokenTTL:          5 * time.Minute,
		BlockDuration:        2 * 24 * time.Hour,
		LockoutDuration:      30 * time.Minute,
		FailedThreshold:      5,
		PublicBaseURL:        "http://localhost:8080",
		MailerProvider:       "log",
		FromName:             "Account Service",
		SweepInterval:        24 * time.Hour,
		SweepBatchSize:       100,
		MaxDBConns:           20,
	}

	raw, err := os.ReadFile(path)
	if err == nil {
		var f configFile
		if unmarshalErr := yaml.Unmarshal(raw, &f); unmarshalErr != nil {
			return Config{}, fmt.Errorf("parse config file: %w", unmarshalErr)
		}
		if f.Service.ID != "" {
			cfg.ServiceID = f.Service.ID
		}
		if f.Service.HTTPPort > 0 {
			cfg.HTTPPort = f.Service.HTTPPort
		}
		if f.Dependencies.PostgresURL != "" {
			cfg.DatabaseURL = f.Dependencies.PostgresURL
		}
		if f.Dependencies.RedisURL != "" {
			cfg.RedisURL = f.Dependencies.RedisURL
		}
		if f.Mailer.Provider != "" {
			cfg.MailerProvider = f.Mailer.Provider
		}
		if f.Mailer.FromEmail != "" {
			cfg.FromEmail = f.Mailer.FromEmail
		}
		if f.Mailer.FromName != "" {
			cfg.FromName = f.Mailer.FromName
		}
		if f.Mailer.SMTPHost != "" {
			cfg.SMTPHost = f.Mailer.SMTPHost
		}
		if f.Mailer.SMTPPort != "" {
			cfg.SMTPPort = f.Mailer.SMTPPort
		}
		if f.PublicBaseURL != "" {
			cfg.PublicBaseURL = f.PublicBaseURL
		}
	}

	cfg.DatabaseURL = envOrDefault("DB_URL", envOrDefault("POSTGRES_URL", cfg.DatabaseURL))
	cfg.RedisURL = envOrDefault("REDIS_URL", cfg.RedisURL)
	cfg.AccessTokenSecret = envOrDefault("ACCESS_TOKEN_SECRET", cfg.AccessTokenSecret)
	cfg.RefreshTokenSecret = envOrDefault("REFRESH_TOKEN_SECRET", cfg.RefreshTokenSecret)
	cfg.PublicBaseURL = envOrDefault("PUBLIC_BASE_URL", cfg.PublicBaseURL)
	cfg.CookieSecure = envBool("COOKIE_SECURE", cfg.CookieSecure)

	cfg.MailerProvider = strings.ToLower(strings.TrimSpace(envOrDefault("MAILER_PROVIDER", cfg.MailerProvider)))
	cfg.SendGridAPIKey = envOrDefault("SENDGRID_API_KEY", cfg.SendGridAPIKey)
	cfg.FromEmail = envOrDefault("MAIL_FROM_EMAIL", cfg.FromEmail)
	cfg.FromName = envOrDefault("MAIL_FROM_NAME", cfg.FromName)
	cfg.SMTPHost = envOrDefault("SMTP_HOST", cfg.SMTPHost)
	cfg.SMTPPort = envOrDefault("SMTP_PORT", cfg.SMTPPort)
	cfg.SMTPUsername = envOrDefault("SMTP_USERNAME", cfg.SMTPUsername)
	cfg.SMTPPassword = envOrDefault("SMTP_PASSWORD", cfg.SMTPPassword)

	cfg.HTTPPort = envInt("HTTP_PORT", cfg.HTTPPort)
	cfg.BcryptCost = envInt("BCRYPT_ROUNDS", cfg.BcryptCost)
	cfg.FailedThreshold = envInt("FAILED_LOGIN_THRESHOLD", cfg.FailedThreshold)
	cfg.MaxDBConns = int32(envInt("DB_MAX_CONNS", int(cfg.MaxDBConns)))
	cfg.SweepBatchSize = envInt("BLOCK_SWEEP_BATCH_SIZE", cfg.SweepBatchSize)

	cfg.AccessTokenTTL = time.Duration(envInt("ACCESS_TOKEN_EXPIRY_HOURS", int(cfg.AccessTokenTTL.Hours()))) * time.Hour
	cfg.RefreshTokenTTL = time.Duration(envInt("REFRESH_TOKEN_EXPIRY_DAYS", int(cfg.RefreshTokenTTL.Hours()/24))) * 24 * time.Hour
	cfg.VerificationTokenTTL = time.Duration(envInt("VERIFICATION_TOKEN_EXPIRY_MINUTES", int(cfg.VerificationTokenTTL.Minutes()))) * time.Minute
	cfg.ResetTokenTTL = time.Duration(envInt("RESET_TOKEN_EXPIRY_MINUTES", int(cfg.ResetTokenTTL.Minutes()))) * time.Minute
	cfg.OTPTokenTTL = time.Duration(envInt("OTP_EXPIRY_MINUTES", int(cfg.OTPTokenTTL.Minutes()))) * time.Minute
	cfg.BlockDuration = time.Duration(envInt("BLOCK_DURATION_DAYS", int(cfg.BlockDuration.Hours()/24))) * 24 * time.Hour
	cfg.LockoutDuration = time.Duration(envInt("ACCOUNT_LOCKOUT_MINUTES", int(cfg.LockoutDuration.Minutes()))) * time.Minute
	cfg.SweepInterval = time.Duration(envInt("BLOCK_SWEEP_INTERVAL_HOURS", int(cfg.SweepInterval.Hours()))) * time.Hour

	if cfg.DatabaseURL == "" {
		return Config{}, fmt.Errorf("missing DB_URL/POSTGRES_URL")
	}
	if cfg.RedisURL == "" {
		return Config{}, fmt.Errorf("missing REDIS_URL")
	}
	if cfg.AccessTokenSecret == "" || cfg.RefreshTokenSecret == "" {
		return Config{}, fmt.Errorf("missing ACCESS_TOKEN_SECRET or REFRESH_TOKEN_SECRET")
	}
	if cfg.MailerProvider == "sendgrid" && cfg.SendGridAPIKey == "" {
		return Config{}, fmt.Errorf("missing SENDGRID_API_KEY for sendgrid mailer")
	}

	return cfg, nil
}

// envOrDefault returns an env var when present, otherwise the provided fallback.
func envOrDefault(name, fallback string) string {
	if value := os.Getenv(name); value != "" {
		return value
	}
	return fallback
}

// envInt parses integer env vars with safe fallback on empty/invalid values.
func envInt(name string, fallback int) int {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	v, err := strconv.Atoi(raw)
	if err != nil {
		return fallback
	}
	return v
}

// envBool parses common boolean env forms while keeping a deterministic fallback.
func envBool(name string, fallback bool) bool {
	raw := os.Getenv(name)
	if raw == "" {
		return fallback
	}
	switch raw {
	case "1", "true", "TRUE", "yes", "YES":
		return true
	case "0", "false", "FALSE", "no", "NO":
		return false
	default:
		return fallback
	}
}
