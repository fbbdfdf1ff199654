package common

import (
	"os"
	"strconv"
	"time"
)

// Config holds all application configuration
type Config struct {
	Extraction ExtractionConfig
	OCR        OCRConfig
	Export     ExportConfig
}

// ExtractionConfig holds pipeline-wide extraction configuration
type ExtractionConfig struct {
	// MinTextLength is the per-page embedded-text threshold below which a
	// page counts as scanned.
	MinTextLength int
	// MinParserConfidence is the floor under which parser selection fails.
	MinParserConfidence float64
	// MinResultConfidence is the floor under which a finished result is
	// rejected.
	MinResultConfidence float64
	// MaskCardNumbers controls whether card numbers are reduced to their
	// last four digits in results and logs.
	MaskCardNumbers bool
	// Timeout bounds a single document run.
	Timeout time.Duration
}

// OCRConfig holds OCR-related configuration
type OCRConfig struct {
	DPI         int
	Language    string
	PSM         int
	OEM         int
	TessdataDir string
	WorkDir     string
	Timeout     time.Duration
}

// ExportConfig holds spreadsheet export configuration
type ExportConfig struct {
	OutputDir      string
	DateCellFormat string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		Extraction: ExtractionConfig{
			MinTextLength:       getEnvAsInt("EXTRACT_MIN_TEXT_LENGTH", 50),
			MinParserConfidence: getEnvAsFloat64("EXTRACT_MIN_PARSER_CONFIDENCE", 0.6),
			MinResultConfidence: getEnvAsFloat64("EXTRACT_MIN_RESULT_CONFIDENCE", 0.0),
			MaskCardNumbers:     getEnvAsBool("EXTRACT_MASK_CARD_NUMBERS", true),
			Timeout:             getEnvAsDuration("EXTRACT_TIMEOUT", 2*time.Minute),
		},
		OCR: OCRConfig{
			DPI:         getEnvAsInt("OCR_DPI", 300),
			Language:    getEnv("OCR_LANGUAGE", "eng"),
			PSM:         getEnvAsInt("OCR_PSM", 6),
			OEM:         getEnvAsInt("OCR_OEM", 3),
			TessdataDir: getEnv("TESSDATA_PREFIX", ""),
			WorkDir:     getEnv("OCR_WORK_DIR", ""),
			Timeout:     getEnvAsDuration("OCR_TIMEOUT", 90*time.Second),
		},
		Export: ExportConfig{
			OutputDir:      getEnv("EXPORT_OUTPUT_DIR", "."),
			DateCellFormat: getEnv("EXPORT_DATE_FORMAT", "2006-01-02"),
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

func getEnvAsFloat64(key string, defaultValue float64) float64 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 64); err == nil {
			return floatVal
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

// Validate validates the loaded configuration
func (c *Config) Validate() error {
	if c.OCR.DPI < 72 || c.OCR.DPI > 1200 {
		return NewAppError("CONFIG_ERROR", "OCR_DPI must be between 72 and 1200", ErrInvalidInput)
	}
	if c.Extraction.MinParserConfidence < 0 || c.Extraction.MinParserConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_PARSER_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	if c.Extraction.MinResultConfidence < 0 || c.Extraction.MinResultConfidence > 1 {
		return NewAppError("CONFIG_ERROR", "EXTRACT_MIN_RESULT_CONFIDENCE must be in [0,1]", ErrInvalidInput)
	}
	return nil
}
