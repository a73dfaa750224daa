package config

import (
	"fmt"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"github.com/kelseyhightower/envconfig"
)

type Config struct {
	Server    ServerConfig
	Site      SiteConfig
	Email     EmailConfig
	RateLimit RateLimitConfig
	NATS      NATSConfig
	CORS      CORSConfig
	Log       LogConfig
}

type ServerConfig struct {
	Host         string        `envconfig:"HOST" default:"0.0.0.0"`
	Port         string        `envconfig:"PORT" default:"3000"`
	ReadTimeout  time.Duration `envconfig:"SERVER_READ_TIMEOUT" default:"5s"`
	WriteTimeout time.Duration `envconfig:"SERVER_WRITE_TIMEOUT" default:"30s"`
	IdleTimeout  time.Duration `envconfig:"SERVER_IDLE_TIMEOUT" default:"60s"`
}

type SiteConfig struct {
	DefaultLang    string   `envconfig:"DEFAULT_LANG" default:"es"`
	SupportedLangs []string `envconfig:"SUPPORTED_LANGS" default:"es,en"`
	LocalesDir     string   `envconfig:"LOCALES_DIR" default:"locales"`
	StaticDir      string   `envconfig:"STATIC_DIR" default:"public"`
	TimeZone       string   `envconfig:"TIMEZONE" default:"Europe/Madrid"`
}

type EmailConfig struct {
	Driver        string        `envconfig:"EMAIL_DRIVER" default:"dev"` // dev, smtp or mailersend
	Operator      string        `envconfig:"EMAIL_USER"`
	SMTPHost      string        `envconfig:"SMTP_HOST" default:"smtp.gmail.com"`
	SMTPPort      int           `envconfig:"SMTP_PORT" default:"587"`
	SMTPPass      string        `envconfig:"EMAIL_PASS"`
	SMTPUseTLS    bool          `envconfig:"SMTP_USE_TLS" default:"false"`
	MailerSendKey string        `envconfig:"MAILERSEND_API_KEY"`
	SendTimeout   time.Duration `envconfig:"EMAIL_SEND_TIMEOUT" default:"10s"`
}

type RateLimitConfig struct {
	Requests int           `envconfig:"RATE_LIMIT_REQUESTS" default:"100"`
	Window   time.Duration `envconfig:"RATE_LIMIT_WINDOW" default:"15m"`
	Backend  string        `envconfig:"RATE_LIMIT_BACKEND" default:"memory"` // memory, redis or postgres
	RedisURL string        `envconfig:"REDIS_URL" default:"redis://localhost:6379/0"`
	DBURL    string        `envconfig:"DATABASE_URL"`

	// Proxies whose X-Forwarded-For is believed; empty keys on the socket address.
	TrustedProxies []string `envconfig:"RATE_LIMIT_TRUSTED_PROXIES"`
}

type NATSConfig struct {
	URL string `envconfig:"NATS_URL"`
}

type CORSConfig struct {
	AllowedOrigins []string      `envconfig:"CORS_ALLOWED_ORIGINS"`
	MaxAge         time.Duration `envconfig:"CORS_MAX_AGE" default:"5m"`
}

type LogConfig struct {
	Level string `envconfig:"LOG_LEVEL" default:"info"`
}

// Addr is the listen address built from host and port.
func (c ServerConfig) Addr() string {
	return c.Host + ":" + c.Port
}

// Load reads an optional .env file, then the process environment.
func Load() (*Config, error) {
	// .env is optional when variables come from the environment (Docker, CI, ...).
	_ = godotenv.Load()

	var cfg Config
	if err := envconfig.Process("", &cfg); err != nil {
		return nil, fmt.Errorf("failed to process env config: %w", err)
	}
	if err := cfg.validate(); err != nil {
		return nil, err
	}
	return &cfg, nil
}

func (c *Config) validate() error {
	c.Site.DefaultLang = strings.ToLower(strings.TrimSpace(c.Site.DefaultLang))
	for i, l := range c.Site.SupportedLangs {
		c.Site.SupportedLangs[i] = strings.ToLower(strings.TrimSpace(l))
	}

	found := false
	for _, l := range c.Site.SupportedLangs {
		if l == c.Site.DefaultLang {
			found = true
			break
		}
	}
	if !found {
		return fmt.Errorf("config: DEFAULT_LANG %q must be one of SUPPORTED_LANGS %v", c.Site.DefaultLang, c.Site.SupportedLangs)
	}

	switch c.Email.Driver {
	case "dev":
	case "smtp":
		if strings.TrimSpace(c.Email.Operator) == "" {
			return fmt.Errorf("config: EMAIL_USER is required with EMAIL_DRIVER=smtp")
		}
	case "mailersend":
		if strings.TrimSpace(c.Email.Operator) == "" || strings.TrimSpace(c.Email.MailerSendKey) == "" {
			return fmt.Errorf("config: EMAIL_USER and MAILERSEND_API_KEY are required with EMAIL_DRIVER=mailersend")
		}
	default:
		return fmt.Errorf("config: unknown EMAIL_DRIVER %q", c.Email.Driver)
	}
	if c.Email.Operator == "" {
		c.Email.Operator = "reservas@elsabor.local"
	}

	switch c.RateLimit.Backend {
	case "memory", "redis":
	case "postgres":
		if strings.TrimSpace(c.RateLimit.DBURL) == "" {
			return fmt.Errorf("config: DATABASE_URL is required with RATE_LIMIT_BACKEND=postgres")
		}
	default:
		return fmt.Errorf("config: unknown RATE_LIMIT_BACKEND %q", c.RateLimit.Backend)
	}
	if c.RateLimit.Requests <= 0 || c.RateLimit.Window <= 0 {
		return fmt.Errorf("config: RATE_LIMIT_REQUESTS and RATE_LIMIT_WINDOW must be positive")
	}

	return nil
}

// NewTestConfig returns a configuration suitable for handler tests.
func NewTestConfig() *Config {
	return &Config{
		Server: ServerConfig{Host: "127.0.0.1", Port: "0"},
		Site: SiteConfig{
			DefaultLang:    "es",
			SupportedLangs: []string{"es", "en"},
			LocalesDir:     "locales",
			StaticDir:      "public",
			TimeZone:       "UTC",
		},
		Email: EmailConfig{
			Driver:      "dev",
			Operator:    "reservas@elsabor.test",
			SendTimeout: 5 * time.Second,
		},
		RateLimit: RateLimitConfig{
			Requests: 100,
			Window:   15 * time.Minute,
			Backend:  "memory",
		},
		Log: LogConfig{Level: "error"},
	}
}
