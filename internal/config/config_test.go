package config

import (
	"os"
	"path/filepath"
	"testing"
	"time"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "8090" {
		t.Errorf("expected default port 8090, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected default worker count 4, got %d", cfg.WorkerCount)
	}
	if cfg.EdgarMinInterval != 350*time.Millisecond {
		t.Errorf("expected default interval 350ms, got %v", cfg.EdgarMinInterval)
	}
	if cfg.Thresholds.ExcerptMaxLen != 280 {
		t.Errorf("expected default excerpt length, got %d", cfg.Thresholds.ExcerptMaxLen)
	}
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("PORT", "9999")
	t.Setenv("WORKER_COUNT", "2")
	t.Setenv("EDGAR_MIN_INTERVAL", "1s")
	t.Setenv("ALLOWED_ORIGINS", "https://a.example.com, https://b.example.com")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Port != "9999" {
		t.Errorf("expected port 9999, got %q", cfg.Port)
	}
	if cfg.WorkerCount != 2 {
		t.Errorf("expected worker count 2, got %d", cfg.WorkerCount)
	}
	if cfg.EdgarMinInterval != time.Second {
		t.Errorf("expected interval 1s, got %v", cfg.EdgarMinInterval)
	}
	if len(cfg.AllowedOrigins) != 2 || cfg.AllowedOrigins[1] != "https://b.example.com" {
		t.Errorf("unexpected origins %v", cfg.AllowedOrigins)
	}
}

func TestLoad_InvalidValuesFallBack(t *testing.T) {
	t.Setenv("WORKER_COUNT", "not-a-number")
	t.Setenv("MAX_QUEUE_SIZE", "-5")

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.WorkerCount != 4 {
		t.Errorf("expected fallback worker count, got %d", cfg.WorkerCount)
	}
	if cfg.MaxQueueSize != 100 {
		t.Errorf("expected fallback queue size, got %d", cfg.MaxQueueSize)
	}
}

func TestValidate_RequiresUserAgent(t *testing.T) {
	cfg := Config{}
	if err := cfg.Validate(); err == nil {
		t.Error("expected error for missing user agent")
	}
	cfg.EdgarUserAgent = "horizon test@example.com"
	if err := cfg.Validate(); err != nil {
		t.Errorf("unexpected error: %v", err)
	}
}

func TestLoad_ThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	if err := os.WriteFile(path, []byte("excerpt_max_len: 320\nheavy_conditional: 75\n"), 0o644); err != nil {
		t.Fatalf("write thresholds file: %v", err)
	}
	t.Setenv("THRESHOLDS_FILE", path)

	cfg, err := Load()
	if err != nil {
		t.Fatalf("unexpected error: %v", err)
	}
	if cfg.Thresholds.ExcerptMaxLen != 320 {
		t.Errorf("expected overridden excerpt length 320, got %d", cfg.Thresholds.ExcerptMaxLen)
	}
	if cfg.Thresholds.HeavyConditional != 75 {
		t.Errorf("expected overridden heavy threshold 75, got %d", cfg.Thresholds.HeavyConditional)
	}
	// Untouched fields keep defaults.
	if cfg.Thresholds.DedupWindow != 30 {
		t.Errorf("expected default dedup window, got %d", cfg.Thresholds.DedupWindow)
	}
}

func TestLoad_BadThresholdsFile(t *testing.T) {
	path := filepath.Join(t.TempDir(), "thresholds.yaml")
	if err := os.WriteFile(path, []byte("excerpt_max_len: [broken"), 0o644); err != nil {
		t.Fatalf("write thresholds file: %v", err)
	}
	t.Setenv("THRESHOLDS_FILE", path)

	if _, err := Load(); err == nil {
		t.Error("expected error for malformed thresholds file")
	}
}
