package config

import (
	"testing"

	"github.com/stretchr/testify/assert"
)

func TestLoadDefaults(t *testing.T) {
	cfg := Load()

	assert.Equal(t, "4000", cfg.HTTPPort)
	assert.Equal(t, "/api", cfg.APIPrefix)
	assert.Equal(t, SourceFile, cfg.FixtureSource)
	assert.Equal(t, "data/data.json", cfg.FixturePath)
	assert.Equal(t, uint64(0), cfg.SimSeed)
	assert.Equal(t, 0.3, cfg.AlertProbability)
	assert.Equal(t, []string{"info", "warning"}, cfg.AlertSeverities)
	assert.False(t, cfg.StationBiasReclamp)
	assert.Equal(t, []string{"*"}, cfg.CORSAllowedOrigins)
}

func TestLoadOverrides(t *testing.T) {
	t.Setenv("HTTP_PORT", "9090")
	t.Setenv("FIXTURE_SOURCE", "Postgres")
	t.Setenv("SIM_SEED", "42")
	t.Setenv("ALERT_PROBABILITY", "0.75")
	t.Setenv("ALERT_SEVERITIES", " info , ,warning,")
	t.Setenv("STATION_BIAS_RECLAMP", "true")
	t.Setenv("DB_MAX_CONNS", "12")
	t.Setenv("CORS_ALLOWED_ORIGINS", "http://localhost:5173,https://dash.example.com")

	cfg := Load()

	assert.Equal(t, "9090", cfg.HTTPPort)
	assert.Equal(t, SourcePostgres, cfg.FixtureSource)
	assert.Equal(t, uint64(42), cfg.SimSeed)
	assert.Equal(t, 0.75, cfg.AlertProbability)
	assert.Equal(t, []string{"info", "warning"}, cfg.AlertSeverities)
	assert.True(t, cfg.StationBiasReclamp)
	assert.Equal(t, int32(12), cfg.DBMaxConns)
	assert.Equal(t, []string{"http://localhost:5173", "https://dash.example.com"}, cfg.CORSAllowedOrigins)
}

func TestLoadIgnoresMalformedNumbers(t *testing.T) {
	t.Setenv("SIM_SEED", "-1")
	t.Setenv("ALERT_PROBABILITY", "often")
	t.Setenv("REDIS_DB", "zero")
	t.Setenv("TRACING_ENABLED", "maybe")

	cfg := Load()

	assert.Equal(t, uint64(0), cfg.SimSeed)
	assert.Equal(t, 0.3, cfg.AlertProbability)
	assert.Equal(t, 0, cfg.RedisDB)
	assert.False(t, cfg.TracingEnabled)
}
