package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
	"gopkg.in/yaml.v3"

	"github.com/OatyQuinoa/horizon/internal/analysis"
)

type Config struct {
	Port string

	// SEC EDGAR access
	EdgarUserAgent   string
	EdgarMinInterval time.Duration

	// CORS
	AllowedOrigins []string

	// Worker pool
	WorkerCount  int
	MaxQueueSize int

	// Upload limits
	MaxUploadBytes int64

	// Job state
	JobTTL time.Duration

	// Analysis tuning, optional YAML overrides
	ThresholdsFile string
	Thresholds     analysis.Thresholds

	// Stats rolling window
	StatsWindow time.Duration

	// PDF
	PDFFallbackPdftotext bool
}

func Load() (Config, error) {
	// A local .env is optional; real deployments set the environment.
	_ = godotenv.Load()

	cfg := Config{
		Port: envOr("PORT", "8090"),

		EdgarUserAgent:   os.Getenv("EDGAR_USER_AGENT"),
		EdgarMinInterval: envDuration("EDGAR_MIN_INTERVAL", 350*time.Millisecond),

		AllowedOrigins: splitList(envOr("ALLOWED_ORIGINS", "*")),

		WorkerCount:  envInt("WORKER_COUNT", 4),
		MaxQueueSize: envInt("MAX_QUEUE_SIZE", 100),

		MaxUploadBytes: envInt64("MAX_UPLOAD_BYTES", 52428800), // 50MB

		JobTTL: envDuration("JOB_TTL", 1*time.Hour),

		ThresholdsFile: os.Getenv("THRESHOLDS_FILE"),
		Thresholds:     analysis.DefaultThresholds(),

		StatsWindow: envDuration("STATS_WINDOW", 1*time.Hour),

		PDFFallbackPdftotext: envBool("PDF_FALLBACK_PDFTOTEXT", true),
	}

	if cfg.WorkerCount <= 0 {
		cfg.WorkerCount = 4
	}
	if cfg.MaxQueueSize <= 0 {
		cfg.MaxQueueSize = 100
	}
	if cfg.MaxUploadBytes <= 0 {
		cfg.MaxUploadBytes = 52428800
	}
	if cfg.JobTTL <= 0 {
		cfg.JobTTL = 1 * time.Hour
	}
	if cfg.EdgarMinInterval <= 0 {
		cfg.EdgarMinInterval = 350 * time.Millisecond
	}

	if cfg.ThresholdsFile != "" {
		th, err := loadThresholds(cfg.ThresholdsFile)
		if err != nil {
			return cfg, err
		}
		cfg.Thresholds = th
	}

	return cfg, nil
}

func (c Config) Validate() error {
	if c.EdgarUserAgent == "" {
		return fmt.Errorf("EDGAR_USER_AGENT is required (the SEC rejects requests without a contact User-Agent)")
	}
	return nil
}

// loadThresholds reads analysis tuning overrides from a YAML file. Fields
// omitted from the file keep their defaults.
func loadThresholds(path string) (analysis.Thresholds, error) {
	th := analysis.DefaultThresholds()
	data, err := os.ReadFile(path)
	if err != nil {
		return th, fmt.Errorf("read thresholds file: %w", err)
	}
	if err := yaml.Unmarshal(data, &th); err != nil {
		return th, fmt.Errorf("parse thresholds file: %w", err)
	}
	return th, nil
}

func splitList(s string) []string {
	var out []string
	for _, part := range strings.Split(s, ",") {
		if part = strings.TrimSpace(part); part != "" {
			out = append(out, part)
		}
	}
	return out
}

func envOr(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func envInt(key string, fallback int) int {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.Atoi(v); err == nil {
			return n
		}
	}
	return fallback
}

func envInt64(key string, fallback int64) int64 {
	if v := os.Getenv(key); v != "" {
		if n, err := strconv.ParseInt(v, 10, 64); err == nil {
			return n
		}
	}
	return fallback
}

func envBool(key string, fallback bool) bool {
	if v := os.Getenv(key); v != "" {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return fallback
}

func envDuration(key string, fallback time.Duration) time.Duration {
	if v := os.Getenv(key); v != "" {
		if d, err := time.ParseDuration(v); err == nil {
			return d
		}
	}
	return fallback
}
