package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func TestLoad_Defaults(t *testing.T) {
	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 8080, cfg.Server.Port)
	assert.Equal(t, 50.0, cfg.Search.DefaultRadiusKm)
	assert.Equal(t, 80.0, cfg.Search.SupportGroupRadiusKm)
	assert.Equal(t, 5, cfg.Search.MaxConcurrentQueries)
	assert.Equal(t, 12, cfg.Search.EnrichmentBatchSize)
	assert.Equal(t, 10, cfg.Scoring.SpecialtyMatch)
	assert.Equal(t, 8, cfg.Scoring.FacilityClass)
	assert.Equal(t, 7, cfg.Scoring.TraumaCenter)
	assert.Equal(t, 6, cfg.Scoring.EmergencyDept)
	assert.Equal(t, 3, cfg.Scoring.UrgentCare)
}

func TestLoad_EnvOverrides(t *testing.T) {
	t.Setenv("SERVER_PORT", "9090")
	t.Setenv("SEARCH_RADIUS_KM", "25")
	t.Setenv("SCORE_SPECIALTY_MATCH", "20")
	t.Setenv("OTEL_ENABLED", "true")

	cfg, err := Load()
	require.NoError(t, err)

	assert.Equal(t, 9090, cfg.Server.Port)
	assert.Equal(t, 25.0, cfg.Search.DefaultRadiusKm)
	assert.Equal(t, 20, cfg.Scoring.SpecialtyMatch)
	assert.True(t, cfg.OTEL.Enabled)
}

func TestRedisAddr(t *testing.T) {
	cfg := RedisConfig{Host: "cache.internal", Port: 6380}
	assert.Equal(t, "cache.internal:6380", cfg.RedisAddr())
}
