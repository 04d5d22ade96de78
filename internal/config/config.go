// Package config loads crawler configuration from an optional YAML file and
// credentials from the environment, with a .env file picked up via godotenv.
// Environment values always win over file values.
package config

import (
	"fmt"
	"os"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"
)

// Defaults target the ZHS Munich court booking site.
const (
	DefaultBaseURL   = "https://ssl.forumedia.eu/zhs-courtbuchung.de/reservations.php"
	DefaultFirstPage = 2 // page 1 is the listing root, it carries no court rows
	DefaultMaxPages  = 4
	DefaultSMTPHost  = "smtp.gmail.com"
	DefaultSMTPPort  = 587
)

// Config represents the crawler configuration
type Config struct {
	BaseURL   string     `yaml:"base_url"`
	FirstPage int        `yaml:"first_page"`
	MaxPages  int        `yaml:"max_pages"`
	SMTP      SMTPConfig `yaml:"smtp"`

	Credentials Credentials `yaml:"-"`
}

// SMTPConfig represents SMTP server settings for the email notifier
type SMTPConfig struct {
	Host string `yaml:"host"`
	Port int    `yaml:"port"`
}

// Credentials holds all secrets, sourced from the environment only so they
// never end up in a config file.
type Credentials struct {
	LoginName        string // ZHS account
	LoginPassword    string
	SenderEmail      string // SMTP sender
	SenderPassword   string
	SendGridAPIKey   string // preferred over SMTP when set
	TelegramBotToken string
	TelegramChatID   string
}

// Default returns the configuration matching the public ZHS listing.
func Default() Config {
	return Config{
		BaseURL:   DefaultBaseURL,
		FirstPage: DefaultFirstPage,
		MaxPages:  DefaultMaxPages,
		SMTP: SMTPConfig{
			Host: DefaultSMTPHost,
			Port: DefaultSMTPPort,
		},
	}
}

// Load builds the configuration: defaults, then the YAML file at path (if
// non-empty), then environment overrides. A .env file in the working
// directory is loaded first when present.
func Load(path string) (Config, error) {
	// Missing .env is fine, the environment may already be populated
	_ = godotenv.Load()

	cfg := Default()

	if path != "" {
		data, err := os.ReadFile(path)
		if err != nil {
			return Config{}, fmt.Errorf("reading config file: %w", err)
		}
		if err := yaml.Unmarshal(data, &cfg); err != nil {
			return Config{}, fmt.Errorf("parsing config file: %w", err)
		}
		if cfg.FirstPage < 1 {
			return Config{}, fmt.Errorf("first_page must be >= 1, got %d", cfg.FirstPage)
		}
		if cfg.MaxPages < cfg.FirstPage {
			return Config{}, fmt.Errorf("max_pages %d is below first_page %d", cfg.MaxPages, cfg.FirstPage)
		}
	}

	if url := os.Getenv("ZHS_BASE_URL"); url != "" {
		cfg.BaseURL = url
	}

	cfg.Credentials = Credentials{
		LoginName:        os.Getenv("LOGIN_NAME"),
		LoginPassword:    os.Getenv("LOGIN_PASSWORD"),
		SenderEmail:      os.Getenv("SENDER_EMAIL"),
		SenderPassword:   os.Getenv("SENDER_PASSWORD"),
		SendGridAPIKey:   os.Getenv("SENDGRID_API_KEY"),
		TelegramBotToken: os.Getenv("TELEGRAM_BOT_TOKEN"),
		TelegramChatID:   os.Getenv("TELEGRAM_CHAT_ID"),
	}

	return cfg, nil
}
