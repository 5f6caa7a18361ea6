package app

import (
	"os"
	"strings"
)

// StorageDriver выбирает реализацию хранилища заказов.
type StorageDriver string

const (
	StorageDriverMemory   StorageDriver = "memory"
	StorageDriverPostgres StorageDriver = "postgres"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr            string
	MetricsAddr         string
	StorageDriver       StorageDriver
	PostgresDSN         string
	PostgresAutoMigrate bool
	KafkaBrokers        []string
}

// DefaultConfig возвращает настройки по умолчанию: API на :8080,
// метрики на :9090, memory-хранилище с демо-каталогом.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:            ":8080",
		MetricsAddr:         ":9090",
		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,
	}
}

// ConfigFromEnv накладывает переменные окружения поверх настроек по умолчанию.
func ConfigFromEnv() Config {
	cfg := DefaultConfig()

	if v := os.Getenv("ORDERS_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("ORDERS_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("ORDERS_STORAGE_DRIVER"); v != "" {
		cfg.StorageDriver = StorageDriver(strings.ToLower(strings.TrimSpace(v)))
	}
	if v := os.Getenv("ORDERS_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("ORDERS_POSTGRES_AUTO_MIGRATE"); v != "" {
		switch strings.ToLower(strings.TrimSpace(v)) {
		case "0", "false", "no":
			cfg.PostgresAutoMigrate = false
		default:
			cfg.PostgresAutoMigrate = true
		}
	}
	if v := os.Getenv("KAFKA_BROKERS"); v != "" {
		for _, broker := range strings.Split(v, ",") {
			broker = strings.TrimSpace(broker)
			if broker != "" {
				cfg.KafkaBrokers = append(cfg.KafkaBrokers, broker)
			}
		}
	}

	return cfg
}
