package common

import (
	"os"
	"strconv"
	"time"

	"github.com/amara-obi/docsorter/constants"
)

// Config holds all application configuration
type Config struct {
	LLM      LLMConfig
	Analyzer AnalyzerConfig
	Cache    CacheConfig
	Export   ExportConfig
}

// LLMConfig holds language-model client configuration
type LLMConfig struct {
	Model       string
	APIKey      string
	BaseURL     string
	Temperature float32
	Timeout     time.Duration
}

// AnalyzerConfig holds classification-engine configuration
type AnalyzerConfig struct {
	UseAI                 bool
	AIConfidenceThreshold float64
	AIBatchSize           int
	RateLimitPerSecond    float64
	RateLimitBurst        int
}

// CacheConfig holds content-cache configuration
type CacheConfig struct {
	Capacity int
	// Path is an optional SQLite file backing the cache; empty means the
	// cache lives in memory only.
	Path string
}

// ExportConfig holds batch-export configuration
type ExportConfig struct {
	OutputPath string
}

// LoadConfig loads configuration from environment variables
func LoadConfig() *Config {
	return &Config{
		LLM: LLMConfig{
			Model:       getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			APIKey:      getEnv("OPENAI_API_KEY", ""),
			BaseURL:     getEnv("OPENAI_BASE_URL", ""),
			Temperature: getEnvAsFloat32("OPENAI_TEMPERATURE", 0.0),
			Timeout:     getEnvAsDuration("OPENAI_TIMEOUT", 45*time.Second),
		},
		Analyzer: AnalyzerConfig{
			UseAI:                 getEnvAsBool("DOCSORT_USE_AI", true),
			AIConfidenceThreshold: getEnvAsFloat64("DOCSORT_AI_THRESHOLD", constants.DefaultAIConfidenceThreshold),
			AIBatchSize:           getEnvAsInt("DOCSORT_AI_BATCH_SIZE", constants.DefaultAIBatchSize),
			RateLimitPerSecond:    getEnvAsFloat64("DOCSORT_AI_RATE_LIMIT", 50.0/60.0),
			RateLimitBurst:        getEnvAsInt("DOCSORT_AI_RATE_BURST", 5),
		},
		Cache: CacheConfig{
			Capacity: getEnvAsInt("DOCSORT_CACHE_CAPACITY", constants.DefaultCacheCapacity),
			Path:     getEnv("DOCSORT_CACHE_PATH", ""),
		},
		Export: ExportConfig{
			OutputPath: getEnv("DOCSORT_EXPORT_PATH", ""),
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

func getEnvAsFloat32(key string, defaultValue float32) float32 {
	if value := os.Getenv(key); value != "" {
		if floatVal, err := strconv.ParseFloat(value, 32); err == nil {
			return float32(floatVal)
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
	if c.Analyzer.UseAI && c.LLM.APIKey == "" {
		return NewAppError("CONFIG_ERROR", "OPENAI_API_KEY is required when AI is enabled", ErrInvalidInput)
	}
	if c.Analyzer.AIConfidenceThreshold < 0 || c.Analyzer.AIConfidenceThreshold > 1 {
		return NewAppError("CONFIG_ERROR", "DOCSORT_AI_THRESHOLD must be in [0,1]", ErrInvalidInput)
	}
	if c.Cache.Capacity <= 0 {
		return NewAppError("CONFIG_ERROR", "DOCSORT_CACHE_CAPACITY must be positive", ErrInvalidInput)
	}
	return nil
}
