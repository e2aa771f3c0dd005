package config

import (
	"fmt"
	"os"
	"strconv"
)

// Config holds all application configuration
type Config struct {
	Env         string
	Server      ServerConfig
	Redis       RedisConfig
	Geolocation GeolocationConfig
	Places      PlacesConfig
	OpenAI      OpenAIConfig
	Search      SearchConfig
	Scoring     ScoringConfig
	OTEL        OTELConfig
}

// ServerConfig holds server configuration
type ServerConfig struct {
	Host string
	Port int
}

// RedisConfig holds Redis configuration
type RedisConfig struct {
	Host     string
	Port     int
	Password string
	DB       int
}

// GeolocationConfig holds geocoding provider configuration
type GeolocationConfig struct {
	Provider string
	APIKey   string
}

// PlacesConfig holds place-search provider configuration
type PlacesConfig struct {
	APIKey            string
	MaxResultCount    int
	RequestsPerSecond float64
}

// OpenAIConfig holds OpenAI configuration
type OpenAIConfig struct {
	APIKey         string
	Model          string
	RateLimitRPM   int
	RateLimitBurst int
}

// SearchConfig holds pipeline tuning knobs
type SearchConfig struct {
	DefaultRadiusKm      float64
	SupportGroupRadiusKm float64
	MaxConcurrentQueries int
	QueryTimeoutSeconds  int
	EnrichmentBatchSize  int
	ResultCacheTTL       int
	ResultCacheMaxEntry  int
}

// ScoringConfig holds the ranking weights. The values are a tuning
// choice, not a correctness requirement, so they load from environment.
type ScoringConfig struct {
	SpecialtyMatch int
	FacilityClass  int
	TraumaCenter   int
	EmergencyDept  int
	UrgentCare     int
}

// OTELConfig holds OpenTelemetry configuration
type OTELConfig struct {
	ServiceName    string
	ServiceVersion string
	Endpoint       string
	Enabled        bool
}

// Load loads configuration from environment variables
func Load() (*Config, error) {
	return &Config{
		Env: getEnv("APP_ENV", "development"),
		Server: ServerConfig{
			Host: getEnv("SERVER_HOST", "0.0.0.0"),
			Port: getEnvAsInt("SERVER_PORT", 8080),
		},
		Redis: RedisConfig{
			Host:     getEnv("REDIS_HOST", "localhost"),
			Port:     getEnvAsInt("REDIS_PORT", 6379),
			Password: getEnv("REDIS_PASSWORD", ""),
			DB:       getEnvAsInt("REDIS_DB", 0),
		},
		Geolocation: GeolocationConfig{
			Provider: getEnv("GEOLOCATION_PROVIDER", "mock"),
			APIKey:   getEnv("GEOLOCATION_API_KEY", ""),
		},
		Places: PlacesConfig{
			APIKey:            getEnv("PLACES_API_KEY", os.Getenv("GEOLOCATION_API_KEY")),
			MaxResultCount:    getEnvAsInt("PLACES_MAX_RESULTS", 20),
			RequestsPerSecond: getEnvAsFloat("PLACES_REQUESTS_PER_SECOND", 4),
		},
		OpenAI: OpenAIConfig{
			APIKey:         getEnv("OPENAI_API_KEY", ""),
			Model:          getEnv("OPENAI_MODEL", "gpt-4o-mini"),
			RateLimitRPM:   getEnvAsInt("OPENAI_RATE_LIMIT_RPM", 60),
			RateLimitBurst: getEnvAsInt("OPENAI_RATE_LIMIT_BURST", 5),
		},
		Search: SearchConfig{
			DefaultRadiusKm:      getEnvAsFloat("SEARCH_RADIUS_KM", 50),
			SupportGroupRadiusKm: getEnvAsFloat("SEARCH_SUPPORT_GROUP_RADIUS_KM", 80),
			MaxConcurrentQueries: getEnvAsInt("SEARCH_MAX_CONCURRENT_QUERIES", 5),
			QueryTimeoutSeconds:  getEnvAsInt("SEARCH_QUERY_TIMEOUT_SECONDS", 8),
			EnrichmentBatchSize:  getEnvAsInt("SEARCH_ENRICHMENT_BATCH_SIZE", 12),
			ResultCacheTTL:       getEnvAsInt("SEARCH_RESULT_CACHE_TTL_SECONDS", 300),
			ResultCacheMaxEntry:  getEnvAsInt("SEARCH_RESULT_CACHE_MAX_ENTRIES", 256),
		},
		Scoring: ScoringConfig{
			SpecialtyMatch: getEnvAsInt("SCORE_SPECIALTY_MATCH", 10),
			FacilityClass:  getEnvAsInt("SCORE_FACILITY_CLASS", 8),
			TraumaCenter:   getEnvAsInt("SCORE_TRAUMA_CENTER", 7),
			EmergencyDept:  getEnvAsInt("SCORE_EMERGENCY_DEPT", 6),
			UrgentCare:     getEnvAsInt("SCORE_URGENT_CARE", 3),
		},
		OTEL: OTELConfig{
			ServiceName:    getEnv("OTEL_SERVICE_NAME", "carefinder"),
			ServiceVersion: getEnv("OTEL_SERVICE_VERSION", "1.0.0"),
			Endpoint:       getEnv("OTEL_ENDPOINT", ""),
			Enabled:        getEnvAsBool("OTEL_ENABLED", false),
		},
	}, nil
}

// RedisAddr returns the Redis address
func (c *RedisConfig) RedisAddr() string {
	return fmt.Sprintf("%s:%d", c.Host, c.Port)
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

func getEnvAsFloat(key string, defaultValue float64) float64 {
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
