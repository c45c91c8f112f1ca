package app

import (
	"os"
	"strings"
)

// Config описывает настройки запуска приложения.
type Config struct {
	HTTPAddr    string
	MetricsAddr string
	// PostgresDSN пустой — сервис работает на in-memory хранилище.
	PostgresDSN string
	// KafkaBrokers пустой — события заказов не публикуются.
	KafkaBrokers string
}

// DefaultConfig возвращает базовые адреса для API и HTTP-метрик.
func DefaultConfig() Config {
	return Config{
		HTTPAddr:    ":8080",
		MetricsAddr: ":9090",
	}
}

// ReadConfig формирует конфигурацию, позволяя переопределить значения
// через переменные окружения.
func ReadConfig() Config {
	cfg := DefaultConfig()
	if v := os.Getenv("STOREFRONT_HTTP_ADDR"); v != "" {
		cfg.HTTPAddr = v
	}
	if v := os.Getenv("STOREFRONT_METRICS_ADDR"); v != "" {
		cfg.MetricsAddr = v
	}
	if v := os.Getenv("STOREFRONT_POSTGRES_DSN"); v != "" {
		cfg.PostgresDSN = v
	}
	if v := os.Getenv("STOREFRONT_KAFKA_BROKERS"); v != "" {
		cfg.KafkaBrokers = v
	}
	return cfg
}

// KafkaBrokerList разбирает KafkaBrokers в список адресов.
// Пробелы вокруг запятых и пустые элементы отбрасываются.
func (c Config) KafkaBrokerList() []string {
	if strings.TrimSpace(c.KafkaBrokers) == "" {
		return nil
	}

	parts := strings.Split(c.KafkaBrokers, ",")
	brokers := make([]string, 0, len(parts))
	for _, part := range parts {
		if addr := strings.TrimSpace(part); addr != "" {
			brokers = append(brokers, addr)
		}
	}
	return brokers
}
