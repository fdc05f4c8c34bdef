package config

import (
	"testing"
	"time"
)

func TestLoadDefaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.BaseURL != "http://127.0.0.1:8000/api" {
		t.Fatalf("unexpected default base url: %s", cfg.API.BaseURL)
	}
	if cfg.API.Timeout != 30*time.Second {
		t.Fatalf("unexpected default timeout: %s", cfg.API.Timeout)
	}
	if cfg.Listing.ProductPageSize != 12 || cfg.Listing.OrderPageSize != 10 {
		t.Fatalf("unexpected listing defaults: %+v", cfg.Listing)
	}
	if cfg.Session.CredentialsFile == "" {
		t.Fatal("credentials file path was not resolved")
	}
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("TOKOKITA_API_BASE_URL", "https://shop.example.com/api/")
	t.Setenv("TOKOKITA_CREDENTIALS_FILE", "/tmp/creds.json")
	t.Setenv("TOKOKITA_LOG_LEVEL", "debug")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("load config: %v", err)
	}

	if cfg.API.Normalized() != "https://shop.example.com/api" {
		t.Fatalf("expected trailing slash trimmed, got %s", cfg.API.Normalized())
	}
	if cfg.Session.CredentialsFile != "/tmp/creds.json" {
		t.Fatalf("credentials override ignored: %s", cfg.Session.CredentialsFile)
	}
	if cfg.Log.Level != "debug" {
		t.Fatalf("log level override ignored: %s", cfg.Log.Level)
	}
}
