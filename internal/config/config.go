package config

import (
	"os"
	"strconv"
	"time"
	_ "time/tzdata"
)

type Config struct {
	Port         string
	ReadTimeout  time.Duration
	WriteTimeout time.Duration
	IdleTimeout  time.Duration

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string
	RunMigrate bool

	RedisAddr   string
	KafkaBroker string
	KafkaGroup  string

	JWTSecret string

	AttendanceTimezone string
	RateLimitPerSecond float64
	RateLimitBurst     int
	IPRateLimit        float64
	IPRateLimitBurst   int
	OutboxPollInterval time.Duration
	ConnectRetries     int
}

// Load reads configuration from the environment. Callers load .env first.
func Load() Config {
	return Config{
		Port:         getEnv("PORT", "3000"),
		ReadTimeout:  getEnvDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout: getEnvDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:  getEnvDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", ""),
		DBName:     getEnv("DB_NAME", "hris"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),
		RunMigrate: getEnvBool("RUN_MIGRATIONS", true),

		RedisAddr:   getEnv("REDIS_ADDR", ""),
		KafkaBroker: getEnv("KAFKA_BROKER", ""),
		KafkaGroup:  getEnv("KAFKA_GROUP_ID", "go-hris-payroll-employee-salary"),

		JWTSecret: getEnv("JWT_SECRET", ""),

		AttendanceTimezone: getEnv("ATTENDANCE_TIMEZONE", "UTC"),
		RateLimitPerSecond: getEnvFloat("RATE_LIMIT_PER_SECOND", 2),
		RateLimitBurst:     getEnvInt("RATE_LIMIT_BURST", 5),
		IPRateLimit:        getEnvFloat("IP_RATE_LIMIT_PER_SECOND", 20),
		IPRateLimitBurst:   getEnvInt("IP_RATE_LIMIT_BURST", 40),
		OutboxPollInterval: getEnvDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ConnectRetries:     getEnvInt("CONNECT_RETRIES", 5),
	}
}

// Location resolves AttendanceTimezone, falling back to UTC.
func (c Config) Location() *time.Location {
	loc, err := time.LoadLocation(c.AttendanceTimezone)
	if err != nil {
		return time.UTC
	}
	return loc
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getEnvBool(key string, fallback bool) bool {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseBool(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvInt(key string, fallback int) int {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.Atoi(value)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvFloat(key string, fallback float64) float64 {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := strconv.ParseFloat(value, 64)
	if err != nil {
		return fallback
	}
	return parsed
}

func getEnvDuration(key string, fallback time.Duration) time.Duration {
	value := os.Getenv(key)
	if value == "" {
		return fallback
	}
	parsed, err := time.ParseDuration(value)
	if err != nil {
		return fallback
	}
	return parsed
}
