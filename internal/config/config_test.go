package config

import (
	"os"
	"path/filepath"
	"testing"
)

func TestDefault(t *testing.T) {
	cfg := Default()

	if cfg.BaseURL != DefaultBaseURL {
		t.Errorf("BaseURL = %q, want %q", cfg.BaseURL, DefaultBaseURL)
	}
	if cfg.FirstPage != 2 {
		t.Errorf("FirstPage = %d, want 2", cfg.FirstPage)
	}
	if cfg.MaxPages != 4 {
		t.Errorf("MaxPages = %d, want 4", cfg.MaxPages)
	}
	if cfg.SMTP.Host != "smtp.gmail.com" || cfg.SMTP.Port != 587 {
		t.Errorf("SMTP = %+v, want smtp.gmail.com:587", cfg.SMTP)
	}
}

func TestLoadYAMLFile(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	content := `
base_url: https://courts.example.com/reservations.php
first_page: 1
max_pages: 6
smtp:
  host: mail.example.com
  port: 2525
`
	if err := os.WriteFile(path, []byte(content), 0o644); err != nil {
		t.Fatal(err)
	}

	cfg, err := Load(path)
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != "https://courts.example.com/reservations.php" {
		t.Errorf("BaseURL = %q", cfg.BaseURL)
	}
	if cfg.FirstPage != 1 || cfg.MaxPages != 6 {
		t.Errorf("pages = (%d, %d), want (1, 6)", cfg.FirstPage, cfg.MaxPages)
	}
	if cfg.SMTP.Host != "mail.example.com" || cfg.SMTP.Port != 2525 {
		t.Errorf("SMTP = %+v", cfg.SMTP)
	}
}

func TestLoadInvalidPageBounds(t *testing.T) {
	dir := t.TempDir()
	path := filepath.Join(dir, "config.yaml")
	if err := os.WriteFile(path, []byte("first_page: 5\nmax_pages: 2\n"), 0o644); err != nil {
		t.Fatal(err)
	}

	if _, err := Load(path); err == nil {
		t.Error("Load() expected error for max_pages < first_page")
	}
}

func TestLoadMissingFile(t *testing.T) {
	if _, err := Load(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Error("Load() expected error for missing config file")
	}
}

func TestLoadEnvOverrides(t *testing.T) {
	t.Setenv("ZHS_BASE_URL", "https://override.example.com")
	t.Setenv("LOGIN_NAME", "roger")
	t.Setenv("LOGIN_PASSWORD", "topspin")
	t.Setenv("SENDGRID_API_KEY", "SG.test")

	cfg, err := Load("")
	if err != nil {
		t.Fatalf("Load() error = %v", err)
	}

	if cfg.BaseURL != "https://override.example.com" {
		t.Errorf("BaseURL = %q, env override not applied", cfg.BaseURL)
	}
	if cfg.Credentials.LoginName != "roger" || cfg.Credentials.LoginPassword != "topspin" {
		t.Errorf("Credentials = %+v", cfg.Credentials)
	}
	if cfg.Credentials.SendGridAPIKey != "SG.test" {
		t.Errorf("SendGridAPIKey = %q", cfg.Credentials.SendGridAPIKey)
	}
}
