package config

import (
	"errors"
	"fmt"
	"time"

	"github.com/caarlos0/env/v11"
	"github.com/joho/godotenv"
)

type Config struct {
	APIPort   string        `env:"API_PORT" envDefault:"8080"`
	JWTSecret string        `env:"JWT_SECRET,required,notEmpty"`
	JWTExp    time.Duration `env:"JWT_EXPIRATION" envDefault:"1h"`

	BcryptCost int `env:"BCRYPT_COST" envDefault:"10"`

	Log          LogConfig
	Email        EmailConfig
	Notification NotificationConfig
}

type LogConfig struct {
	Level  string `env:"LOG_LEVEL" envDefault:"info"`
	Format string `env:"LOG_FORMAT" envDefault:"json"`
}

type EmailConfig struct {
	// Provider selects the transport: "smtp", "resend" or "log".
	Provider     string        `env:"EMAIL_PROVIDER" envDefault:"log"`
	From         string        `env:"EMAIL_FROM" envDefault:"no-reply@event-sync.local"`
	SMTPHost     string        `env:"SMTP_HOST"`
	SMTPPort     int           `env:"SMTP_PORT" envDefault:"587"`
	SMTPUser     string        `env:"SMTP_USER"`
	SMTPPassword string        `env:"SMTP_PASS"`
	ResendAPIKey string        `env:"RESEND_API_KEY"`
	SendTimeout  time.Duration `env:"EMAIL_SEND_TIMEOUT" envDefault:"10s"`
}

type NotificationConfig struct {
	QueueSize     int    `env:"NOTIFICATION_QUEUE_SIZE" envDefault:"256"`
	QueueName     string `env:"NOTIFICATION_QUEUE_NAME" envDefault:"event_registration_notifications"`
	RedisAddr     string `env:"REDIS_ADDR"`
	RedisPassword string `env:"REDIS_PASSWORD"`
	RedisDB       int    `env:"REDIS_DB" envDefault:"0"`
}

// Load reads an optional .env file and then the process environment. A
// missing JWT_SECRET is an error; there is no fallback signing key.
func Load() (*Config, error) {
	// A missing .env is fine; the environment is the source of truth.
	_ = godotenv.Load()

	cfg := &Config{}
	if err := env.Parse(cfg); err != nil {
		return nil, fmt.Errorf("parse env: %w", err)
	}
	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.JWTExp <= 0 {
		return errors.New("JWT_EXPIRATION must be positive")
	}
	switch c.Email.Provider {
	case "log":
	case "smtp":
		if c.Email.SMTPHost == "" || c.Email.SMTPUser == "" || c.Email.SMTPPassword == "" {
			return errors.New("EMAIL_PROVIDER=smtp requires SMTP_HOST, SMTP_USER and SMTP_PASS")
		}
	case "resend":
		if c.Email.ResendAPIKey == "" {
			return errors.New("EMAIL_PROVIDER=resend requires RESEND_API_KEY")
		}
	default:
		return fmt.Errorf("unknown EMAIL_PROVIDER %q", c.Email.Provider)
	}
	return nil
}
