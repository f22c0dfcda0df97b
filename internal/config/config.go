package config

import (
	"log"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/joho/godotenv"
)

var AppEnv Config

type Config struct {
	MongoURI  string
	DBName    string
	JWTSecret string

	CatalogBaseURL  string
	ShippingBaseURL string
	PaymentBaseURL  string

	RedisAddr     string
	QuoteCacheTTL time.Duration

	KafkaBrokers    string
	OrderEventTopic string

	ClientTimeout time.Duration
}

func Load() {
	if err := godotenv.Load(); err != nil {
		log.Println(".env not loaded:", err)
	}
	AppEnv = Config{
		MongoURI:        getEnvOrDefault("MONGO_URI", ""),
		DBName:          getEnvOrDefault("DB_NAME", "jubili"),
		JWTSecret:       getEnvOrDefault("JWT_SECRET", ""),
		CatalogBaseURL:  getEnvOrDefault("CATALOG_BASE_URL", ""),
		ShippingBaseURL: getEnvOrDefault("SHIPPING_BASE_URL", ""),
		PaymentBaseURL:  getEnvOrDefault("PAYMENT_BASE_URL", ""),
		RedisAddr:       getEnvOrDefault("REDIS_ADDR", ""),
		QuoteCacheTTL:   getDurationEnv("QUOTE_CACHE_TTL", 10, time.Minute),
		KafkaBrokers:    getEnvOrDefault("KAFKA_BROKERS", ""),
		OrderEventTopic: getEnvOrDefault("ORDER_EVENT_TOPIC", "order-events"),
		ClientTimeout:   getDurationEnv("CLIENT_TIMEOUT", 10, time.Second),
	}
}

func getEnvOrDefault(key, defaultValue string) string {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		return value
	}
	return defaultValue
}

func getDurationEnv(key string, defaultValue int, unit time.Duration) time.Duration {
	if value := strings.TrimSpace(os.Getenv(key)); value != "" {
		if parsed, err := strconv.Atoi(value); err == nil && parsed > 0 {
			return time.Duration(parsed) * unit
		}
	}
	return time.Duration(defaultValue) * unit
}
