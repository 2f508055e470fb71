package config

import (
	"errors"
	"fmt"
	"os"
	"strconv"
	"time"

	"go-leave/internal/shared/connection"
)

type Config struct {
	AppEnv string
	Port   string

	Database    connection.DatabaseConfig
	DBRetries   int
	RedisAddr   string
	KafkaBroker string

	JWTSecret string
	JWTTTL    time.Duration

	RBACModelPath  string
	RBACPolicyPath string

	ReadTimeout        time.Duration
	WriteTimeout       time.Duration
	IdleTimeout        time.Duration
	OutboxPollInterval time.Duration
}

// Load reads the process environment. Call godotenv.Load first when a
// .env file should be honoured.
func Load() (*Config, error) {
	cfg := &Config{
		AppEnv: GetEnv("APP_ENV", "development"),
		Port:   GetEnv("PORT", "3000"),
		Database: connection.DatabaseConfig{
			Host:     GetEnv("DB_HOST", "localhost"),
			User:     GetEnv("DB_USER", "postgres"),
			Password: GetEnv("DB_PASSWORD", ""),
			Name:     GetEnv("DB_NAME", "go_leave"),
			Port:     GetEnv("DB_PORT", "5432"),
			SSLMode:  GetEnv("DB_SSLMODE", "disable"),
		},
		DBRetries:          GetEnvAsInt("DB_MAX_RETRIES", 5),
		RedisAddr:          GetEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker:        GetEnv("KAFKA_BROKER", ""),
		JWTSecret:          GetEnv("JWT_SECRET", ""),
		JWTTTL:             GetEnvAsDuration("JWT_TTL", 24*time.Hour),
		RBACModelPath:      GetEnv("RBAC_MODEL_PATH", "config/rbac_model.conf"),
		RBACPolicyPath:     GetEnv("RBAC_POLICY_PATH", "config/rbac_policy.csv"),
		ReadTimeout:        GetEnvAsDuration("HTTP_READ_TIMEOUT", 5*time.Second),
		WriteTimeout:       GetEnvAsDuration("HTTP_WRITE_TIMEOUT", 10*time.Second),
		IdleTimeout:        GetEnvAsDuration("HTTP_IDLE_TIMEOUT", 60*time.Second),
		OutboxPollInterval: GetEnvAsDuration("OUTBOX_POLL_INTERVAL", 3*time.Second),
	}

	if err := cfg.Validate(); err != nil {
		return nil, err
	}
	return cfg, nil
}

func (c *Config) Validate() error {
	if c.JWTSecret == "" {
		return errors.New("JWT_SECRET is required")
	}
	if c.IsProduction() && len(c.JWTSecret) < 32 {
		return errors.New("JWT_SECRET must be at least 32 characters in production")
	}
	if c.DBRetries < 1 {
		return fmt.Errorf("DB_MAX_RETRIES must be positive, got %d", c.DBRetries)
	}
	return nil
}

// RequireKafka is checked by the binaries that cannot run without a broker.
func (c *Config) RequireKafka() error {
	if c.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}
	return nil
}

func (c *Config) IsProduction() bool {
	return c.AppEnv == "production"
}

func GetEnv(key, fallback string) string {
	if value, exists := os.LookupEnv(key); exists && value != "" {
		return value
	}
	return fallback
}

func GetEnvAsInt(key string, fallback int) int {
	if value, err := strconv.Atoi(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}

// GetEnvAsDuration accepts Go duration strings such as "15s" or "24h".
func GetEnvAsDuration(key string, fallback time.Duration) time.Duration {
	if value, err := time.ParseDuration(GetEnv(key, "")); err == nil {
		return value
	}
	return fallback
}
