package helper

import (
	"os"
	"strconv"
	"time"

	"github.com/yishak-cs/studyhub/internal/database"
	"github.com/yishak-cs/studyhub/internal/logging"
	"github.com/yishak-cs/studyhub/internal/search"
	"github.com/yishak-cs/studyhub/internal/services"
	"github.com/yishak-cs/studyhub/internal/textgen"
)

// AppConfig is everything the server reads from the environment
type AppConfig struct {
	Neo4j       database.Config
	Port        string
	LogLevel    string
	LogFormat   string
	SeedDataURL string // empty skips the CSV import at startup

	TextGen textgen.Config // empty URL disables AI suggestions
	Search  search.Config  // empty URL disables enrichment

	Recommendations services.Config
}

// LoadConfigFromEnv loads configuration from environment variables, falling back to defaults
func LoadConfigFromEnv() AppConfig {
	rec := services.DefaultConfig()
	rec.Limit = getEnvInt("REC_LIMIT", rec.Limit)
	rec.CacheTTL = getEnvDuration("REC_CACHE_TTL", rec.CacheTTL)
	rec.CollectorTimeout = getEnvDuration("COLLECTOR_TIMEOUT", rec.CollectorTimeout)
	rec.EnrichTimeout = getEnvDuration("ENRICH_TIMEOUT", rec.EnrichTimeout)
	rec.TrendingMinInteractions = getEnvInt("TRENDING_MIN_INTERACTIONS", rec.TrendingMinInteractions)
	rec.TrendingWindowDays = getEnvInt("TRENDING_WINDOW_DAYS", rec.TrendingWindowDays)

	w := &rec.Weights
	w.ConfidenceScale = getEnvFloat("REC_WEIGHT_CONFIDENCE", w.ConfidenceScale)
	w.TrendingBoost = getEnvFloat("REC_WEIGHT_TRENDING", w.TrendingBoost)
	w.AIBoost = getEnvFloat("REC_WEIGHT_AI", w.AIBoost)
	w.PopularityFactor = getEnvFloat("REC_WEIGHT_POPULARITY", w.PopularityFactor)
	w.MorningAdvancedBoost = getEnvFloat("REC_WEIGHT_MORNING_ADVANCED", w.MorningAdvancedBoost)
	w.EveningShortBoost = getEnvFloat("REC_WEIGHT_EVENING_SHORT", w.EveningShortBoost)

	return AppConfig{
		Neo4j: database.Config{
			URI:      getEnvOrDefault("NEO4J_URI", ""),
			Username: getEnvOrDefault("NEO4J_USERNAME", "neo4j"),
			Password: getEnvOrDefault("NEO4J_PASSWORD", ""),
			Database: getEnvOrDefault("NEO4J_DATABASE", "neo4j"),
		},
		Port:        getEnvOrDefault("APP_PORT", "8080"),
		LogLevel:    getEnvOrDefault("LOG_LEVEL", "info"),
		LogFormat:   getEnvOrDefault("LOG_FORMAT", "json"),
		SeedDataURL: getEnvOrDefault("SEED_DATA_URL", ""),
		TextGen: textgen.Config{
			URL:     getEnvOrDefault("TEXTGEN_URL", ""),
			APIKey:  getEnvOrDefault("TEXTGEN_API_KEY", ""),
			Model:   getEnvOrDefault("TEXTGEN_MODEL", ""),
			Timeout: getEnvDuration("TEXTGEN_TIMEOUT", textgen.DefaultTimeout),
		},
		Search: search.Config{
			URL:      getEnvOrDefault("SEARCH_URL", ""),
			APIKey:   getEnvOrDefault("SEARCH_API_KEY", ""),
			EngineID: getEnvOrDefault("SEARCH_ENGINE_ID", ""),
		},
		Recommendations: rec,
	}
}

// getEnvOrDefault returns environment variable value or default
func getEnvOrDefault(key, defaultValue string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return defaultValue
}

func getEnvInt(key string, defaultValue int) int {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.Atoi(raw)
	if err != nil || v <= 0 {
		logging.Warn().Str("key", key).Str("value", raw).Msg("ignoring invalid integer setting")
		return defaultValue
	}
	return v
}

func getEnvFloat(key string, defaultValue float64) float64 {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	v, err := strconv.ParseFloat(raw, 64)
	if err != nil || v < 0 {
		logging.Warn().Str("key", key).Str("value", raw).Msg("ignoring invalid number setting")
		return defaultValue
	}
	return v
}

// getEnvDuration accepts Go durations ("30s", "5m") or a bare number of seconds
func getEnvDuration(key string, defaultValue time.Duration) time.Duration {
	raw := os.Getenv(key)
	if raw == "" {
		return defaultValue
	}
	if d, err := time.ParseDuration(raw); err == nil && d > 0 {
		return d
	}
	if secs, err := strconv.Atoi(raw); err == nil && secs > 0 {
		return time.Duration(secs) * time.Second
	}
	logging.Warn().Str("key", key).Str("value", raw).Msg("ignoring invalid duration setting")
	return defaultValue
}
