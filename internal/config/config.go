package config

import (
	"fmt"
	"os"
	"strconv"

	"ratewatch/internal/domain"

	"github.com/joho/godotenv"
	"github.com/spf13/viper"
)

type Monitoring struct {
	URL                string `mapstructure:"url" yaml:"url"`
	TimeoutSeconds     int    `mapstructure:"timeout_seconds" yaml:"timeout_seconds,omitempty"`
	IntervalSeconds    int    `mapstructure:"interval_seconds" yaml:"interval_seconds,omitempty"`
	SuppressTTLSeconds int    `mapstructure:"suppress_ttl_seconds" yaml:"suppress_ttl_seconds,omitempty"`
}

type Email struct {
	SMTPServer     string `mapstructure:"smtp_server" yaml:"smtp_server"`
	SMTPPort       int    `mapstructure:"smtp_port" yaml:"smtp_port"`
	SenderEmail    string `mapstructure:"sender_email" yaml:"sender_email"`
	SenderPassword string `mapstructure:"sender_password" yaml:"sender_password"`
	RecipientEmail string `mapstructure:"recipient_email" yaml:"recipient_email"`
	IMAPServer     string `mapstructure:"imap_server" yaml:"imap_server"`
	IMAPPort       int    `mapstructure:"imap_port" yaml:"imap_port"`
	UseSSL         bool   `mapstructure:"use_ssl" yaml:"use_ssl,omitempty"`
}

type Audit struct {
	AuthorName  string `mapstructure:"author_name" yaml:"author_name,omitempty"`
	AuthorEmail string `mapstructure:"author_email" yaml:"author_email,omitempty"`
}

type Database struct {
	URL string `mapstructure:"url" yaml:"url,omitempty"`
}

type Status struct {
	Port string `mapstructure:"port" yaml:"port,omitempty"`
}

type Logging struct {
	Level string `mapstructure:"level" yaml:"level,omitempty"`
}

// Snapshot is the persisted configuration in its file form. It is loaded
// fresh at the start of every invocation and written back at most once, by
// the snapshot store, after setpoint mutations were applied.
type Snapshot struct {
	Monitoring Monitoring              `mapstructure:"monitoring" yaml:"monitoring"`
	Email      Email                   `mapstructure:"email" yaml:"email"`
	Audit      Audit                   `mapstructure:"audit" yaml:"audit,omitempty"`
	Database   Database                `mapstructure:"database" yaml:"database,omitempty"`
	Status     Status                  `mapstructure:"status" yaml:"status,omitempty"`
	Logging    Logging                 `mapstructure:"logging" yaml:"logging,omitempty"`
	Currencies []*domain.CurrencyEntry `mapstructure:"currencies" yaml:"currencies"`
}

// Load reads the configuration snapshot from path. Any failure here is
// fatal-startup: the caller terminates the process with a non-zero status.
func Load(path string) (*Snapshot, error) {
	// .env is optional; real environment variables still apply without it.
	_ = godotenv.Load()

	v := viper.New()
	v.SetConfigFile(path)
	v.SetConfigType("yaml")
	if err := v.ReadInConfig(); err != nil {
		return nil, fmt.Errorf("error reading config file: %w", err)
	}

	v.SetDefault("monitoring.timeout_seconds", 30)
	v.SetDefault("logging.level", "info")
	v.SetDefault("audit.author_name", "ratewatch")
	v.SetDefault("audit.author_email", "ratewatch@localhost")

	var snap Snapshot
	if err := v.Unmarshal(&snap); err != nil {
		return nil, fmt.Errorf("error unmarshalling config: %w", err)
	}
	return &snap, nil
}

// RuntimeEmail returns the email settings with the fixed EMAIL_* environment
// overrides applied. Overrides touch only this runtime copy: the Snapshot
// keeps the file's own values so secrets injected via environment never land
// in the persisted (and audited) form.
func (s *Snapshot) RuntimeEmail() (Email, error) {
	email := s.Email

	if v := os.Getenv("EMAIL_SMTP_SERVER"); v != "" {
		email.SMTPServer = v
	}
	if v := os.Getenv("EMAIL_SMTP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Email{}, fmt.Errorf("invalid EMAIL_SMTP_PORT %q: %w", v, err)
		}
		email.SMTPPort = port
	}
	if v := os.Getenv("EMAIL_SENDER"); v != "" {
		email.SenderEmail = v
	}
	if v := os.Getenv("EMAIL_PASSWORD"); v != "" {
		email.SenderPassword = v
	}
	if v := os.Getenv("EMAIL_RECIPIENT"); v != "" {
		email.RecipientEmail = v
	}
	if v := os.Getenv("EMAIL_IMAP_SERVER"); v != "" {
		email.IMAPServer = v
	}
	if v := os.Getenv("EMAIL_IMAP_PORT"); v != "" {
		port, err := strconv.Atoi(v)
		if err != nil {
			return Email{}, fmt.Errorf("invalid EMAIL_IMAP_PORT %q: %w", v, err)
		}
		email.IMAPPort = port
	}
	return email, nil
}
