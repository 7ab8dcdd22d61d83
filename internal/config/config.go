package config

import (
	"os"
	"time"

	"github.com/joho/godotenv"
)

type Config struct {
	Port string

	DBHost     string
	DBUser     string
	DBPassword string
	DBName     string
	DBPort     string
	DBSSLMode  string

	RedisAddr   string
	KafkaBroker string

	RBACModelPath  string
	RBACPolicyPath string

	// STATUTORY_RATES_FILE + DEFAULT_COMPANY_ID men-seed rate table pertama
	// untuk deployment baru. Keduanya opsional; tanpa rate table, generate
	// batch akan gagal eksplisit, bukan memakai konstanta diam-diam.
	StatutoryRatesFile string
	DefaultCompanyID   string

	OutboxPollInterval time.Duration
	ConsumerGroupID    string
}

func Load() Config {
	// .env hanya untuk development lokal; di container env sudah di-inject.
	_ = godotenv.Load()

	return Config{
		Port: getEnv("PORT", "8080"),

		DBHost:     getEnv("DB_HOST", "localhost"),
		DBUser:     getEnv("DB_USER", "postgres"),
		DBPassword: getEnv("DB_PASSWORD", "postgres"),
		DBName:     getEnv("DB_NAME", "payroll"),
		DBPort:     getEnv("DB_PORT", "5432"),
		DBSSLMode:  getEnv("DB_SSLMODE", "disable"),

		RedisAddr:   getEnv("REDIS_ADDR", "localhost:6379"),
		KafkaBroker: getEnv("KAFKA_BROKER", "localhost:9092"),

		RBACModelPath:  getEnv("RBAC_MODEL_PATH", "internal/rbac/infra/model.conf"),
		RBACPolicyPath: getEnv("RBAC_POLICY_PATH", "internal/rbac/infra/policy.csv"),

		StatutoryRatesFile: os.Getenv("STATUTORY_RATES_FILE"),
		DefaultCompanyID:   os.Getenv("DEFAULT_COMPANY_ID"),

		OutboxPollInterval: getDurationEnv("OUTBOX_POLL_INTERVAL", 3*time.Second),
		ConsumerGroupID:    getEnv("CONSUMER_GROUP_ID", "payroll-service"),
	}
}

func getEnv(key, fallback string) string {
	if value := os.Getenv(key); value != "" {
		return value
	}
	return fallback
}

func getDurationEnv(key string, fallback time.Duration) time.Duration {
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
