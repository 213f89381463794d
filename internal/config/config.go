package config

import (
	"fmt"
	"net"
	"os"
	"strconv"
	"strings"
	"time"
)

// Profile names select the built-in threshold set for the recommendation
// rules. Individual thresholds can still be overridden per environment.
const (
	ProfileLenient = "lenient"
	ProfileStrict  = "strict"
)

type Config struct {
	Host               string
	Port               string
	RequestTimeout     time.Duration
	AnalysisTimeout    time.Duration
	OCRTimeout         time.Duration
	MaxRequestBodySize int64

	// MaxImageDimension bounds the longest raster side; larger uploads are
	// downscaled before analysis since OCR cost grows with pixel count.
	MaxImageDimension int

	OCRLanguage string

	// Analysis profile and per-threshold overrides (negative means "use the
	// profile value").
	Profile                   string
	MaxElementsPerScreen      int
	DensityThreshold          float64
	LowContrastAreasThreshold int

	MySQLDSN string

	AzureStorageAccount   string
	AzureStorageKey       string
	AzureStorageContainer string
}

func (c *Config) ServerAddress() string {
	// Trim any whitespace from host and port
	host := strings.TrimSpace(c.Host)
	port := strings.TrimSpace(c.Port)
	return net.JoinHostPort(host, port)
}

// ArchiverConfigured reports whether screenshot archival to blob storage
// has been enabled.
func (c *Config) ArchiverConfigured() bool {
	return c.AzureStorageAccount != "" && c.AzureStorageKey != "" && c.AzureStorageContainer != ""
}

func LoadFromEnv() (*Config, error) {
	// Set defaults
	cfg := &Config{
		Host:               getEnvOrDefault("HOST", "0.0.0.0"),
		Port:               getEnvOrDefault("PORT", "8080"),
		RequestTimeout:     parseDurationOrDefault("REQUEST_TIMEOUT", 30*time.Second),
		AnalysisTimeout:    parseDurationOrDefault("ANALYSIS_TIMEOUT", 20*time.Second),
		OCRTimeout:         parseDurationOrDefault("OCR_TIMEOUT", 10*time.Second),
		MaxRequestBodySize: parseInt64OrDefault("MAX_REQUEST_BODY_SIZE", 10*1024*1024), // 10MB
		MaxImageDimension:  parseIntOrDefault("MAX_IMAGE_DIMENSION", 4096),
		OCRLanguage:        getEnvOrDefault("OCR_LANGUAGE", "eng"),

		Profile:                   getEnvOrDefault("ANALYSIS_PROFILE", ProfileLenient),
		MaxElementsPerScreen:      parseIntOrDefault("MAX_ELEMENTS_PER_SCREEN", -1),
		DensityThreshold:          parseFloatOrDefault("DENSITY_THRESHOLD", -1),
		LowContrastAreasThreshold: parseIntOrDefault("LOW_CONTRAST_AREAS_THRESHOLD", -1),

		MySQLDSN: getEnvOrDefault("MYSQL_DSN", "uxanalyzer:uxanalyzer@tcp(localhost:3306)/uxanalyzer?parseTime=true"),

		AzureStorageAccount:   getEnvOrDefault("AZURE_STORAGE_ACCOUNT", ""),
		AzureStorageKey:       getEnvOrDefault("AZURE_STORAGE_KEY", ""),
		AzureStorageContainer: getEnvOrDefault("AZURE_STORAGE_CONTAINER", ""),
	}

	// Validate port is numeric and in range
	p, err := strconv.Atoi(strings.TrimSpace(cfg.Port))
	if err != nil || p < 1 || p > 65535 {
		return nil, fmt.Errorf("invalid PORT: %q", cfg.Port)
	}
	if cfg.MaxRequestBodySize <= 0 {
		return nil, fmt.Errorf("MAX_REQUEST_BODY_SIZE must be > 0 (got %d)", cfg.MaxRequestBodySize)
	}
	if cfg.MaxImageDimension <= 0 {
		return nil, fmt.Errorf("MAX_IMAGE_DIMENSION must be > 0 (got %d)", cfg.MaxImageDimension)
	}
	if cfg.RequestTimeout <= 0 || cfg.AnalysisTimeout <= 0 || cfg.OCRTimeout <= 0 {
		return nil, fmt.Errorf("timeouts must be > 0 (got request=%s, analysis=%s, ocr=%s)",
			cfg.RequestTimeout, cfg.AnalysisTimeout, cfg.OCRTimeout)
	}
	if cfg.Profile != ProfileLenient && cfg.Profile != ProfileStrict {
		return nil, fmt.Errorf("invalid ANALYSIS_PROFILE: %q (want %q or %q)",
			cfg.Profile, ProfileLenient, ProfileStrict)
	}
	return cfg, nil
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func parseDurationOrDefault(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(strings.TrimSpace(value)); err == nil && duration > 0 {
			return duration
		}
	}
	return defaultValue
}

func parseIntOrDefault(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.Atoi(strings.TrimSpace(value)); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseInt64OrDefault(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intValue, err := strconv.ParseInt(strings.TrimSpace(value), 10, 64); err == nil {
			return intValue
		}
	}
	return defaultValue
}

func parseFloatOrDefault(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatValue, err := strconv.ParseFloat(strings.TrimSpace(value), 64); err == nil {
			return floatValue
		}
	}
	return defaultValue
}
