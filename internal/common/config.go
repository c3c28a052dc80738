package common

import (
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Extract ExtractConfig
	Segment SegmentConfig
	Output  OutputConfig
}

// ExtractConfig holds PDF extraction configuration
type ExtractConfig struct {
	MaxFileSizeMB int
	SkipHidden    bool
}

// SegmentConfig holds segmentation configuration
type SegmentConfig struct {
	Mode string
}

// OutputConfig holds export configuration
type OutputConfig struct {
	Path           string
	HeuristicsPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extract: ExtractConfig{
			MaxFileSizeMB: getEnvAsInt("PDFSIFT_MAX_FILE_MB", 50),
			SkipHidden:    getEnvAsBool("PDFSIFT_SKIP_HIDDEN", true),
		},
		Segment: SegmentConfig{
			Mode: getEnv("PDFSIFT_MODE", "sentence"),
		},
		Output: OutputConfig{
			Path:           getEnv("PDFSIFT_OUT", ""),
			HeuristicsPath: getEnv("PDFSIFT_HEURISTICS", ""),
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

func getEnvAsInt(key string, defaultValue int) int {
	if value := os.Getenv(key); value != "" {
		if intVal, err := strconv.Atoi(value); err == nil {
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.Extract.MaxFileSizeMB <= 0 {
		return NewAppError("CONFIG_ERROR", "PDFSIFT_MAX_FILE_MB must be positive", ErrInvalidInput)
	}
	if c.Segment.Mode != "sentence" && c.Segment.Mode != "activity" {
		return NewAppError("CONFIG_ERROR", "PDFSIFT_MODE must be 'sentence' or 'activity'", ErrInvalidInput)
	}
	return nil
}
