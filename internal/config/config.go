// Package config loads service settings from the environment and report
// settings from an optional YAML file.
package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"
)

// Backend names accepted by STOCKPDF_BACKEND.
const (
	BackendFPDF   = "fpdf"
	BackendChrome = "chrome"
)

// Config holds all service configuration
type Config struct {
	Server ServerConfig
	Render RenderConfig
	Chrome ChromeConfig
}

// ServerConfig holds HTTP-related configuration
type ServerConfig struct {
	Addr            string
	MaxUploadBytes  int64
	UploadField     string
	Filename        string
	ShutdownTimeout time.Duration
}

// RenderConfig selects how documents are painted
type RenderConfig struct {
	Backend    string
	LayoutFile string
}

// ChromeConfig is only used with the chrome backend
type ChromeConfig struct {
	Path         string
	NoSandbox    bool
	AutoDownload bool
	Timeout      time.Duration
}

// Load loads configuration from environment variables
func Load() *Config {
	return &Config{
		Server: ServerConfig{
			Addr:            getEnv("STOCKPDF_ADDR", ":8080"),
			MaxUploadBytes:  getEnvAsInt64("STOCKPDF_MAX_UPLOAD", 32<<20),
			UploadField:     getEnv("STOCKPDF_UPLOAD_FIELD", "archivo"),
			Filename:        getEnv("STOCKPDF_FILENAME", "stock.pdf"),
			ShutdownTimeout: getEnvAsDuration("STOCKPDF_SHUTDOWN_TIMEOUT", 10*time.Second),
		},
		Render: RenderConfig{
			Backend:    strings.ToLower(getEnv("STOCKPDF_BACKEND", BackendFPDF)),
			LayoutFile: getEnv("STOCKPDF_LAYOUT_FILE", ""),
		},
		Chrome: ChromeConfig{
			Path:         getEnv("STOCKPDF_CHROME_PATH", ""),
			NoSandbox:    getEnvAsBool("STOCKPDF_NO_SANDBOX", false),
			AutoDownload: getEnvAsBool("STOCKPDF_AUTO_DOWNLOAD", false),
			Timeout:      getEnvAsDuration("STOCKPDF_CHROME_TIMEOUT", 30*time.Second),
		},
	}
}

// Helper functions for environment variable parsing
func getEnv(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvAsInt64(key string, defaultValue int64) int64 {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.ParseInt(value, 10, 64); err == nil {
			return intVal
		}
	}
	return defaultValue
}

func getEnvAsBool(key string, defaultValue bool) bool {
	if value := os.Getenv(key); value != "" {
		if boolVal, err := strconv.ParseBool(value); err == nil {
			return boolVal
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

// ErrInvalidConfig is wrapped by every Validate failure.
var ErrInvalidConfig = errors.New("config: invalid")

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Server.Addr == "" {
		return fmt.Errorf("%w: STOCKPDF_ADDR is required", ErrInvalidConfig)
	}
	if c.Server.MaxUploadBytes <= 0 {
		return fmt.Errorf("%w: STOCKPDF_MAX_UPLOAD must be positive", ErrInvalidConfig)
	}
	if c.Server.UploadField == "" {
		return fmt.Errorf("%w: STOCKPDF_UPLOAD_FIELD is required", ErrInvalidConfig)
	}
	if c.Server.Filename == "" {
		return fmt.Errorf("%w: STOCKPDF_FILENAME is required", ErrInvalidConfig)
	}
	switch c.Render.Backend {
	case BackendFPDF, BackendChrome:
	default:
		return fmt.Errorf("%w: unknown backend %q", ErrInvalidConfig, c.Render.Backend)
	}
	return nil
}
