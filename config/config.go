package config

import (
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/kseniiaross/TRESSE-Online-Store/internal/database"

	"go.uber.org/zap"
)

type Config struct {
	Port string
	DB   DB

	Stripe Stripe
	Kafka  Kafka

	// Checkout policy. Single supported currency for now.
	Currency     string
	CancelWindow time.Duration
}

type DB struct {
	database.Config
}

type Stripe struct {
	SecretKey     string
	WebhookSecret string
}

type Kafka struct {
	Brokers    []string
	EmailTopic string
}

func Load(log *zap.Logger) *Config {
	return &Config{
		Port: getEnv("APP_PORT", log),
		DB: DB{
			Config: database.Config{
				Host:     getEnv("DB_HOST", log),
				Port:     getEnv("DB_PORT", log),
				User:     getEnv("DB_USER", log),
				Password: getEnv("DB_PASSWORD", log),
				Name:     getEnv("DB_NAME", log),
				SSLMode:  getEnv("DB_SSLMODE", log),
			},
		},
		Stripe: Stripe{
			SecretKey:     getEnv("STRIPE_SECRET_KEY", log),
			WebhookSecret: os.Getenv("STRIPE_WEBHOOK_SECRET"),
		},
		Kafka: Kafka{
			Brokers:    splitAndTrim(os.Getenv("KAFKA_BROKERS")),
			EmailTopic: getEnvDefault("KAFKA_TOPIC_EMAIL", "tresse.emails"),
		},
		Currency:     getEnvDefault("CHECKOUT_CURRENCY", "usd"),
		CancelWindow: time.Duration(atoiDefault(os.Getenv("ORDER_CANCEL_WINDOW_HOURS"), 24)) * time.Hour,
	}
}

func getEnv(key string, log *zap.Logger) string {
	if val, exists := os.LookupEnv(key); exists {
		return val
	}
	log.Error("required environment variable is not set", zap.String("key", key))
	panic("missing required environment variable: " + key)
}

func getEnvDefault(key, def string) string {
	if val, exists := os.LookupEnv(key); exists && val != "" {
		return val
	}
	return def
}

func atoiDefault(s string, def int) int {
	n, err := strconv.Atoi(s)
	if err != nil || n <= 0 {
		return def
	}
	return n
}

func splitAndTrim(s string) []string {
	if s == "" {
		return nil
	}
	parts := []string{}
	for _, p := range strings.Split(s, ",") {
		pt := strings.TrimSpace(p)
		if pt != "" {
			parts = append(parts, pt)
		}
	}
	return parts
}
