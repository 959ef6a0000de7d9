package config

import (
	"fmt"
	"os"
	"strconv"
	"strings"

	"github.com/joho/godotenv"
)

// Config is loaded once at process start and passed into each stage entry
// point; nothing reads the environment after Load returns.
type Config struct {
	App       AppConfig
	Server    ServerConfig
	Paths     PathsConfig
	Analytics AnalyticsConfig
	DB        PostgresConfig
	Kafka     KafkaConfig
	Warehouse WarehouseConfig
}

type AppConfig struct {
	Name string
	Env  string
}

type ServerConfig struct {
	Host string
	Port int
}

// PathsConfig locates the layer directories exchanged with the I/O
// collaborators.
type PathsConfig struct {
	BronzeLayer string
	SilverLayer string
	GoldLayer   string
}

type AnalyticsConfig struct {
	// ChurnWindowDays is the recency threshold beyond which a customer is
	// labeled churned.
	ChurnWindowDays int
	// BronzeMinRows is the minimum row count accepted for each bronze table.
	BronzeMinRows int
}

type PostgresConfig struct {
	Host     string
	Port     int
	User     string
	Password string
	DBName   string
	SSLMode  string
	MaxConns int
}

type KafkaConfig struct {
	Enabled      bool
	Brokers      []string
	FeatureTopic string
}

type WarehouseConfig struct {
	Enabled bool
}

func Load() (*Config, error) {
	_ = godotenv.Load()

	cfg := &Config{
		App: AppConfig{
			Name: getEnv("APP_NAME", "customer_analytics"),
			Env:  getEnv("APP_ENV", "local"),
		},
		Server: ServerConfig{
			Host: getEnv("HTTP_HOST", "0.0.0.0"),
			Port: getEnvAsInt("HTTP_PORT", 8040),
		},
		Paths: PathsConfig{
			BronzeLayer: getEnv("BRONZE_LAYER_PATH", "data/bronze"),
			SilverLayer: getEnv("SILVER_LAYER_PATH", "data/silver"),
			GoldLayer:   getEnv("GOLD_LAYER_PATH", "data/gold"),
		},
		Analytics: AnalyticsConfig{
			ChurnWindowDays: getEnvAsInt("CHURN_WINDOW_DAYS", 90),
			BronzeMinRows:   getEnvAsInt("BRONZE_MIN_ROWS", 1),
		},
		DB: PostgresConfig{
			Host:     getEnv("POSTGRES_HOST", "localhost"),
			Port:     getEnvAsInt("POSTGRES_PORT", 5432),
			User:     getEnv("POSTGRES_USER", "postgres"),
			Password: getEnv("POSTGRES_PASSWORD", ""),
			DBName:   getEnv("POSTGRES_DB", "analytics"),
			SSLMode:  getEnv("DB_SSLMODE", "disable"),
			MaxConns: getEnvAsInt("DB_MAX_CONNS", 10),
		},
		Kafka: KafkaConfig{
			Enabled:      getEnvAsBool("KAFKA_PUBLISH_ENABLED", false),
			Brokers:      splitAndTrim(getEnv("KAFKA_BOOTSTRAP_SERVERS", "localhost:9092")),
			FeatureTopic: getEnv("KAFKA_FEATURE_TOPIC", "customer_churn_features"),
		},
		Warehouse: WarehouseConfig{
			Enabled: getEnvAsBool("WAREHOUSE_ENABLED", false),
		},
	}

	return cfg, cfg.validate()
}

func (s ServerConfig) Address() string {
	return fmt.Sprintf("%s:%d", s.Host, s.Port)
}

func (p PostgresConfig) DSN() string {
	return fmt.Sprintf(
		"postgres://%s:%s@%s:%d/%s?sslmode=%s",
		p.User,
		p.Password,
		p.Host,
		p.Port,
		p.DBName,
		p.SSLMode,
	)
}

/* ================= helpers ================= */

func (c *Config) validate() error {
	if c.Paths.BronzeLayer == "" || c.Paths.SilverLayer == "" || c.Paths.GoldLayer == "" {
		return fmt.Errorf("layer paths are incomplete")
	}
	if c.Analytics.ChurnWindowDays <= 0 {
		return fmt.Errorf("CHURN_WINDOW_DAYS must be positive")
	}
	if c.Server.Port <= 0 {
		return fmt.Errorf("HTTP_PORT is invalid")
	}
	if c.Warehouse.Enabled {
		if c.DB.Host == "" || c.DB.User == "" || c.DB.DBName == "" {
			return fmt.Errorf("database config is incomplete")
		}
	}
	if c.Kafka.Enabled && len(c.Kafka.Brokers) == 0 {
		return fmt.Errorf("kafka brokers is empty")
	}
	return nil
}

func getEnv(key, defaultVal string) string {
	if v, ok := os.LookupEnv(key); ok {
		return v
	}
	return defaultVal
}

func getEnvAsInt(key string, defaultVal int) int {
	if v, ok := os.LookupEnv(key); ok {
		if i, err := strconv.Atoi(v); err == nil {
			return i
		}
	}
	return defaultVal
}

func getEnvAsBool(key string, defaultVal bool) bool {
	if v, ok := os.LookupEnv(key); ok {
		if b, err := strconv.ParseBool(v); err == nil {
			return b
		}
	}
	return defaultVal
}

func splitAndTrim(raw string) []string {
	parts := strings.Split(raw, ",")
	out := make([]string, 0, len(parts))
	for _, p := range parts {
		if val := strings.TrimSpace(p); val != "" {
			out = append(out, val)
		}
	}
	return out
}
