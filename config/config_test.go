package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func writeConfig(t *testing.T, content string) string {
	t.Helper()
	path := filepath.Join(t.TempDir(), "config.yaml")
	if err := os.WriteFile(path, []byte(content), 0o600); err != nil {
		t.Fatalf("failed to write config: %v", err)
	}
	return path
}

func TestLoadConfig(t *testing.T) {
	path := writeConfig(t, `
port: "9090"
policy: explicit-choice
fallback_threshold: 50
ocr_language: deu
raster_dpi: 150
ocr_timeout: 30s
max_upload_size: 1048576
allowed_origins:
  - "https://app.propbase.example"
  - "https://admin.propbase.example"
`)

	cfg, err := LoadConfig(path)
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Port != "9090" {
		t.Errorf("Port = %q, want 9090", cfg.Port)
	}
	if cfg.Policy != PolicyExplicitChoice {
		t.Errorf("Policy = %q, want %q", cfg.Policy, PolicyExplicitChoice)
	}
	if cfg.FallbackThreshold != 50 {
		t.Errorf("FallbackThreshold = %d, want 50", cfg.FallbackThreshold)
	}
	if cfg.OCRLanguage != "deu" {
		t.Errorf("OCRLanguage = %q, want deu", cfg.OCRLanguage)
	}
	if cfg.OCRTimeout != 30*time.Second {
		t.Errorf("OCRTimeout = %v, want 30s", cfg.OCRTimeout)
	}
	if cfg.MaxUploadSize != 1048576 {
		t.Errorf("MaxUploadSize = %d, want 1048576", cfg.MaxUploadSize)
	}
	if len(cfg.AllowedOrigins) != 2 {
		t.Errorf("AllowedOrigins = %v, want 2 entries", cfg.AllowedOrigins)
	}
}

func TestLoadConfigDefaults(t *testing.T) {
	cfg, err := LoadConfig(writeConfig(t, `port: "8081"`))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.Policy != PolicyConfidenceFallback {
		t.Errorf("default Policy = %q, want %q", cfg.Policy, PolicyConfidenceFallback)
	}
	if cfg.FallbackThreshold != 100 {
		t.Errorf("default FallbackThreshold = %d, want 100", cfg.FallbackThreshold)
	}
	if cfg.OCRLanguage != "eng" {
		t.Errorf("default OCRLanguage = %q, want eng", cfg.OCRLanguage)
	}
	if cfg.RasterDPI != 300 {
		t.Errorf("default RasterDPI = %d, want 300", cfg.RasterDPI)
	}
	if cfg.OCRTimeout != 2*time.Minute {
		t.Errorf("default OCRTimeout = %v, want 2m", cfg.OCRTimeout)
	}
	if len(cfg.AllowedOrigins) != 1 || cfg.AllowedOrigins[0] != "*" {
		t.Errorf("default AllowedOrigins = %v, want [*]", cfg.AllowedOrigins)
	}
}

func TestLoadConfigRejectsUnknownPolicy(t *testing.T) {
	if _, err := LoadConfig(writeConfig(t, `policy: best-effort`)); err == nil {
		t.Fatal("expected error for unknown policy")
	}
}

func TestLoadConfigMissingFile(t *testing.T) {
	if _, err := LoadConfig(filepath.Join(t.TempDir(), "missing.yaml")); err == nil {
		t.Fatal("expected error for missing config file")
	}
}

func TestLoadConfigCredentialsFromEnv(t *testing.T) {
	t.Setenv("GOOGLE_VISION_CREDENTIALS", `{"type":"service_account"}`)

	cfg, err := LoadConfig(writeConfig(t, `port: "8080"`))
	if err != nil {
		t.Fatalf("LoadConfig returned error: %v", err)
	}
	if cfg.GoogleCredentialsJSON == "" {
		t.Error("GoogleCredentialsJSON should be read from the environment")
	}
}
