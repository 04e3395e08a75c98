// Package config provides configuration loading from environment variables.
package config

import (
	"os"
	"strconv"
)

// Report output defaults
const (
	DefaultPostDataLimitValue     = 300
	DefaultResponseThresholdValue = 3000
	DefaultResponseLimitValue     = 2000
)

// Processing defaults
const (
	DefaultExtractorValue        = "regex"
	DefaultPatternCacheSizeValue = 128
	DefaultLoadWorkersValue      = 4
	DefaultMaxQueryResultsValue  = 1000
)

// Config holds all configuration for harscope.
type Config struct {
	// Entry summary limits, counted in characters
	PostDataLimit     int // HARSCOPE_POSTDATA_LIMIT, default 300 (0 = no truncation)
	ResponseThreshold int // HARSCOPE_RESPONSE_THRESHOLD, default 3000
	ResponseLimit     int // HARSCOPE_RESPONSE_LIMIT, default 2000

	Extractor        string // HARSCOPE_EXTRACTOR, "regex" or "markup"
	PatternCacheSize int    // HARSCOPE_PATTERN_CACHE_SIZE, default 128
	LoadWorkers      int    // HARSCOPE_LOAD_WORKERS, default 4
	MaxQueryResults  int    // HARSCOPE_MAX_QUERY_RESULTS, default 1000

	// Logging configuration
	LogLevel      string // LOG_LEVEL, default "info"
	LogFile       string // LOG_FILE, default "" (stderr only)
	LogMaxSizeMB  int    // LOG_MAX_SIZE_MB, default 10
	LogMaxBackups int    // LOG_MAX_BACKUPS, default 5
	LogMaxAgeDays int    // LOG_MAX_AGE_DAYS, default 28
	LogCompress   bool   // LOG_COMPRESS, default true
}

// Load reads configuration from environment variables with sensible defaults.
func Load() *Config {
	return &Config{
		PostDataLimit:     getEnvInt("HARSCOPE_POSTDATA_LIMIT", DefaultPostDataLimitValue),
		ResponseThreshold: getEnvInt("HARSCOPE_RESPONSE_THRESHOLD", DefaultResponseThresholdValue),
		ResponseLimit:     getEnvInt("HARSCOPE_RESPONSE_LIMIT", DefaultResponseLimitValue),

		Extractor:        getEnvString("HARSCOPE_EXTRACTOR", DefaultExtractorValue),
		PatternCacheSize: getEnvInt("HARSCOPE_PATTERN_CACHE_SIZE", DefaultPatternCacheSizeValue),
		LoadWorkers:      getEnvInt("HARSCOPE_LOAD_WORKERS", DefaultLoadWorkersValue),
		MaxQueryResults:  getEnvInt("HARSCOPE_MAX_QUERY_RESULTS", DefaultMaxQueryResultsValue),

		LogLevel:      getEnvString("LOG_LEVEL", "info"),
		LogFile:       getEnvString("LOG_FILE", ""),
		LogMaxSizeMB:  getEnvInt("LOG_MAX_SIZE_MB", 10),
		LogMaxBackups: getEnvInt("LOG_MAX_BACKUPS", 5),
		LogMaxAgeDays: getEnvInt("LOG_MAX_AGE_DAYS", 28),
		LogCompress:   getEnvBool("LOG_COMPRESS", true),
	}
}

func getEnvBool(key string, defaultVal bool) bool {
	if v := os.Getenv(key); v != "" {
		switch v {
		case "1", "true", "yes", "on":
			return true
		case "0", "false", "no", "off":
			return false
		}
	}
	return defaultVal
}

func getEnvString(key, defaultVal string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return defaultVal
}

// getEnvInt ignores unparsable and negative values.
func getEnvInt(key string, defaultVal int) int {
	if v := os.Getenv(key); v != "" {
		if i, err := strconv.Atoi(v); err == nil && i >= 0 {
			return i
		}
	}
	return defaultVal
}
