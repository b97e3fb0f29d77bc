package config

import (
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

type Config struct {
	// HTTP
	HTTPPort           string
	APIPrefix          string
	ServiceName        string
	ServiceVersion     string
	CORSAllowedOrigins []string
	ShutdownTimeoutSec int

	// Base snapshot source: file | postgres | redis
	FixtureSource string
	FixturePath   string

	// Postgres
	DBHost     string
	DBPort     string
	DBUser     string
	DBPassword string
	DBName     string
	DBMaxConns int32

	// Redis
	RedisAddr       string
	RedisPassword   string
	RedisDB         int
	RedisFixtureKey string

	// Simulation
	SimSeed            uint64
	AlertProbability   float64
	AlertSeverities    []string
	StationBiasReclamp bool

	// Logging
	LogLevel  string
	LogFormat string

	// Tracing
	TracingEnabled     bool
	TracingExporter    string
	OTLPEndpoint       string
	TracingSampleRatio float64
}

const (
	SourceFile     = "file"
	SourcePostgres = "postgres"
	SourceRedis    = "redis"
)

// Load reads the environment, after merging a .env file when one exists.
func Load() *Config {
	_ = godotenv.Load()

	return &Config{
		HTTPPort:           getEnv("HTTP_PORT", "4000"),
		APIPrefix:          getEnv("API_PREFIX", "/api"),
		ServiceName:        getEnv("SERVICE_NAME", "Telecom KPI Monitoring API"),
		ServiceVersion:     getEnv("SERVICE_VERSION", "1.0.0"),
		CORSAllowedOrigins: splitList(getEnv("CORS_ALLOWED_ORIGINS", "*")),
		ShutdownTimeoutSec: getEnvInt("SHUTDOWN_TIMEOUT_SECONDS", 5),
		FixtureSource:      strings.ToLower(getEnv("FIXTURE_SOURCE", SourceFile)),
		FixturePath:        getEnv("FIXTURE_PATH", "data/data.json"),
		DBHost:             getEnv("DB_HOST", "localhost"),
		DBPort:             getEnv("DB_PORT", "5432"),
		DBUser:             getEnv("DB_USER", "telecom_user"),
		DBPassword:         getEnv("DB_PASSWORD", "telecom_password"),
		DBName:             getEnv("DB_NAME", "telecom_kpi"),
		DBMaxConns:         int32(getEnvInt("DB_MAX_CONNS", 5)),
		RedisAddr:          getEnv("REDIS_ADDR", "localhost:6379"),
		RedisPassword:      getEnv("REDIS_PASSWORD", ""),
		RedisDB:            getEnvInt("REDIS_DB", 0),
		RedisFixtureKey:    getEnv("REDIS_FIXTURE_KEY", "telecom:fixture"),
		SimSeed:            getEnvUint64("SIM_SEED", 0),
		AlertProbability:   getEnvFloat("ALERT_PROBABILITY", 0.3),
		AlertSeverities:    splitList(getEnv("ALERT_SEVERITIES", "info,warning")),
		StationBiasReclamp: getEnvBool("STATION_BIAS_RECLAMP", false),
		LogLevel:           getEnv("LOG_LEVEL", "info"),
		LogFormat:          getEnv("LOG_FORMAT", "text"),
		TracingEnabled:     getEnvBool("TRACING_ENABLED", false),
		TracingExporter:    strings.ToLower(getEnv("TRACING_EXPORTER", "stdout")),
		OTLPEndpoint:       getEnv("OTLP_ENDPOINT", ""),
		TracingSampleRatio: getEnvFloat("TRACING_SAMPLE_RATIO", 1.0),
	}
}

func getEnv(key, fallback string) string {
	if v := os.Getenv(key); v != "" {
		return v
	}
	return fallback
}

func getEnvInt(key string, fallback int) int {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.Atoi(v)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvUint64(key string, fallback uint64) uint64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	n, err := strconv.ParseUint(v, 10, 64)
	if err != nil {
		return fallback
	}
	return n
}

func getEnvFloat(key string, fallback float64) float64 {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	f, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return fallback
	}
	return f
}

func getEnvBool(key string, fallback bool) bool {
	v := os.Getenv(key)
	if v == "" {
		return fallback
	}
	b, err := strconv.ParseBool(v)
	if err != nil {
		return fallback
	}
	return b
}

func splitList(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if p = strings.TrimSpace(p); p != "" {
			out = append(out, p)
		}
	}
	return out
}
