package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds the tuning knobs for the extraction pipeline. Everything is
// optional; zero values fall back to sane defaults downstream.
type Config struct {
	OCR   OCRConfig
	Queue QueueConfig
}

// OCRConfig holds tesseract-related configuration.
type OCRConfig struct {
	Tesseract   string
	Lang        string
	PSM         int
	OEM         int
	TessdataDir string
	ArtifactDir string
}

// QueueConfig holds worker-queue configuration for serving contexts.
type QueueConfig struct {
	Workers        int
	Size           int
	ExtractTimeout time.Duration
}

// LoadConfig reads configuration from environment variables.
func LoadConfig() *Config {
	return &Config{
		OCR: OCRConfig{
			Tesseract:   getEnv("TESSERACT_BIN", "tesseract"),
			Lang:        getEnv("TESSERACT_LANG", "eng"),
			PSM:         getEnvAsInt("TESSERACT_PSM", 6),
			OEM:         getEnvAsInt("TESSERACT_OEM", 0),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			ArtifactDir: getEnv("ARTIFACT_CACHE_DIR", ""),
		},
		Queue: QueueConfig{
			Workers:        getEnvAsInt("EXTRACT_WORKERS", 4),
			Size:           getEnvAsInt("EXTRACT_QUEUE_SIZE", 256),
			ExtractTimeout: getEnvAsDuration("EXTRACT_TIMEOUT", 2*time.Minute),
		},
	}
}

func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsDuration(key string, defaultValue time.Duration) time.Duration {
	if value := os.Getenv(key); value != "" {
		if duration, err := time.ParseDuration(value); err == nil {
			return duration
		}
	}
	return defaultValue
}
