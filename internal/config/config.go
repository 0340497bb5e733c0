package config

import (
	"os"
	"strconv"
	"strings"
	"time"
)

const DefaultMaxUploadBytes int64 = 10 * 1024 * 1024

type Config struct {
	APIAddr          string
	ExtractorBaseURL string
	ValidatePath     string
	MaxUploadBytes   int64
	RequestTimeout   time.Duration
	ProgressStep     int
	ProgressInterval time.Duration
	ProgressCap      int
	SessionTTL       time.Duration
	LogLevel         string
	LogFormat        string
}

func Load() Config {
	return Config{
		APIAddr:          getenv("SCTR_API_ADDR", ":3000"),
		ExtractorBaseURL: getenv("SCTR_API_URL", getenv("NEXT_PUBLIC_API_URL", "http://localhost:8001")),
		ValidatePath:     getenv("SCTR_VALIDATE_PATH", "/document/v2/validate"),
		MaxUploadBytes:   getenvInt64("SCTR_MAX_UPLOAD_BYTES", DefaultMaxUploadBytes),
		RequestTimeout:   getenvDuration("SCTR_REQUEST_TIMEOUT", 120*time.Second),
		ProgressStep:     getenvInt("SCTR_PROGRESS_STEP", 5),
		ProgressInterval: getenvDuration("SCTR_PROGRESS_INTERVAL", 300*time.Millisecond),
		ProgressCap:      getenvInt("SCTR_PROGRESS_CAP", 90),
		SessionTTL:       getenvDuration("SCTR_SESSION_TTL", 30*time.Minute),
		LogLevel:         getenv("SCTR_LOG_LEVEL", "info"),
		LogFormat:        getenv("SCTR_LOG_FORMAT", "json"),
	}
}

// ValidateURL joins the extractor base URL and the validate path.
func (c Config) ValidateURL() string {
	base := strings.TrimRight(c.ExtractorBaseURL, "/")
	path := c.ValidatePath
	if path == "" {
		path = "/document/v2/validate"
	}
	if !strings.HasPrefix(path, "/") {
		path = "/" + path
	}
	return base + path
}

func getenv(k, fallback string) string {
	v := strings.TrimSpace(os.Getenv(k))
	if v == "" {
		return fallback
	}
	return v
}

func getenvInt(k string, fallback int) int {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvInt64(k string, fallback int64) int64 {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseInt(v, 10, 64)
	if err != nil || n <= 0 {
		return fallback
	}
	return n
}

func getenvDuration(k string, fallback time.Duration) time.Duration {
	v := os.Getenv(k)
	if v == "" {
		return fallback
	}
	d, err := time.ParseDuration(v)
	if err != nil || d <= 0 {
		return fallback
	}
	return d
}
