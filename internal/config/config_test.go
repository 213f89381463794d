package config

import (
	"testing"
	"time"
)

func TestLoadFromEnv_Defaults(t *testing.T) {
	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "8080" {
		t.Errorf("Expected default port 8080, got %s", cfg.Port)
	}
	if cfg.RequestTimeout != 30*time.Second {
		t.Errorf("Expected default request timeout 30s, got %s", cfg.RequestTimeout)
	}
	if cfg.Profile != ProfileLenient {
		t.Errorf("Expected lenient default profile, got %s", cfg.Profile)
	}
	if cfg.MaxElementsPerScreen != -1 {
		t.Errorf("Expected threshold override disabled by default, got %d", cfg.MaxElementsPerScreen)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("Expected default OCR language eng, got %s", cfg.OCRLanguage)
	}
}

func TestLoadFromEnv_Overrides(t *testing.T) {
	t.Setenv("PORT", "9090")
	t.Setenv("ANALYSIS_PROFILE", ProfileStrict)
	t.Setenv("MAX_ELEMENTS_PER_SCREEN", "25")
	t.Setenv("REQUEST_TIMEOUT", "10s")

	cfg, err := LoadFromEnv()
	if err != nil {
		t.Fatalf("Failed to load config: %v", err)
	}

	if cfg.Port != "9090" {
		t.Errorf("Expected port 9090, got %s", cfg.Port)
	}
	if cfg.Profile != ProfileStrict {
		t.Errorf("Expected strict profile, got %s", cfg.Profile)
	}
	if cfg.MaxElementsPerScreen != 25 {
		t.Errorf("Expected element override 25, got %d", cfg.MaxElementsPerScreen)
	}
	if cfg.RequestTimeout != 10*time.Second {
		t.Errorf("Expected request timeout 10s, got %s", cfg.RequestTimeout)
	}
}

func TestLoadFromEnv_InvalidPort(t *testing.T) {
	t.Setenv("PORT", "not-a-port")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for non-numeric port")
	}
}

func TestLoadFromEnv_InvalidProfile(t *testing.T) {
	t.Setenv("ANALYSIS_PROFILE", "paranoid")

	if _, err := LoadFromEnv(); err == nil {
		t.Error("Expected error for unknown profile")
	}
}

func TestServerAddress(t *testing.T) {
	cfg := &Config{Host: " 0.0.0.0 ", Port: " 8080 "}
	if got := cfg.ServerAddress(); got != "0.0.0.0:8080" {
		t.Errorf("Expected 0.0.0.0:8080, got %s", got)
	}
}

func TestArchiverConfigured(t *testing.T) {
	cfg := &Config{}
	if cfg.ArchiverConfigured() {
		t.Error("Expected archiver disabled without credentials")
	}

	cfg.AzureStorageAccount = "acct"
	cfg.AzureStorageKey = "key"
	if cfg.ArchiverConfigured() {
		t.Error("Expected archiver disabled without a container")
	}

	cfg.AzureStorageContainer = "screenshots"
	if !cfg.ArchiverConfigured() {
		t.Error("Expected archiver enabled with full credentials")
	}
}
