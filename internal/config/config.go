package config

import (
	"log"
	"os"
	"strconv"
	"time"

	"github.com/shopspring/decimal"
)

type Config struct {
	HTTPPort         string
	PostgresDSN      string
	JWTSecret        string
	RedisURL         string
	AccessTokenTTL   time.Duration
	DBMaxOpenConns   int
	DBMaxIdleConns   int
	DBConnMaxIdle    time.Duration
	DBConnMaxLife    time.Duration
	RequestTimeout   time.Duration
	ArtifactDir      string
	DeductionPercent decimal.Decimal
	SweepCron        string
	PayrollCron      string
	Timezone         string
}

func Load() *Config {
	cfg := &Config{
		HTTPPort:         getEnv("HTTP_PORT", "8080"),
		PostgresDSN:      getEnv("DATABASE_URL", ""),
		JWTSecret:        getEnv("JWT_SECRET", ""),
		RedisURL:         getEnv("REDIS_URL", ""),
		AccessTokenTTL:   getDuration("ACCESS_TOKEN_TTL", 15*time.Minute),
		DBMaxOpenConns:   getInt("DB_MAX_OPEN_CONNS", 25),
		DBMaxIdleConns:   getInt("DB_MAX_IDLE_CONNS", 10),
		DBConnMaxIdle:    getDuration("DB_CONN_MAX_IDLE", 5*time.Minute),
		DBConnMaxLife:    getDuration("DB_CONN_MAX_LIFE", 30*time.Minute),
		RequestTimeout:   getDuration("REQUEST_TIMEOUT", 10*time.Second),
		ArtifactDir:      getEnv("ARTIFACT_DIR", "./artifacts"),
		DeductionPercent: getDecimal("DEDUCTION_PERCENT", "20.00"),
		SweepCron:        getEnv("SWEEP_CRON", "1 0 * * *"),
		PayrollCron:      getEnv("PAYROLL_CRON", "30 0 1 * *"),
		Timezone:         getEnv("TIMEZONE", "Asia/Tokyo"),
	}

	if cfg.PostgresDSN == "" {
		log.Fatal("DATABASE_URL is required")
	}
	if cfg.JWTSecret == "" {
		log.Fatal("JWT_SECRET is required")
	}

	return cfg
}

func getEnv(key, fallback string) string {
	if value, ok := os.LookupEnv(key); ok {
		return value
	}
	return fallback
}

func getDuration(key string, fallback time.Duration) time.Duration {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := time.ParseDuration(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getInt(key string, fallback int) int {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := strconv.Atoi(value)
		if err == nil {
			return parsed
		}
	}
	return fallback
}

func getDecimal(key, fallback string) decimal.Decimal {
	if value, ok := os.LookupEnv(key); ok {
		parsed, err := decimal.NewFromString(value)
		if err == nil {
			return parsed
		}
	}
	return decimal.RequireFromString(fallback)
}
