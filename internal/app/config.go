package app

import (
	"fmt"
	"strings"
	"time"
)

const (
	StorageDriverMemory   = "memory"
	StorageDriverPostgres = "postgres"

	IdempotencyDriverMemory   = "memory"
	IdempotencyDriverPostgres = "postgres"
	IdempotencyDriverRedis    = "redis"
)

// Config описывает настройки запуска catalog-service.
type Config struct {
	GRPCAddr       string
	HTTPAddr       string
	MetricsAddr    string
	RequestTimeout time.Duration

	StorageDriver       string
	PostgresDSN         string
	PostgresAutoMigrate bool

	// ReleaseOnDelete возвращает единицу товара на склад и вычитает цену
	// из суммы заказа при удалении позиции.
	ReleaseOnDelete bool
	// CarryReservationOnMove: при переносе позиции на другой заказ с тем же товаром
	// не проверять остаток и не списывать единицу повторно.
	CarryReservationOnMove bool

	IdempotencyDriver           string
	RedisURL                    string
	IdempotencyTTL              time.Duration
	IdempotencyCleanupInterval  time.Duration
	IdempotencyCleanupBatchSize int

	// KafkaBrokers - список через запятую; пустая строка отключает публикацию.
	KafkaBrokers       string
	KafkaClientID      string
	KafkaTopic         string
	OutboxPollInterval time.Duration
	OutboxBatchSize    int
	OutboxMaxAttempts  int
	OutboxRetryDelay   time.Duration
}

// DefaultConfig возвращает конфигурацию для локального запуска без внешних зависимостей.
func DefaultConfig() Config {
	return Config{
		GRPCAddr:       ":50051",
		HTTPAddr:       ":8080",
		MetricsAddr:    ":9090",
		RequestTimeout: 10 * time.Second,

		StorageDriver:       StorageDriverMemory,
		PostgresAutoMigrate: true,

		IdempotencyDriver:           IdempotencyDriverMemory,
		IdempotencyTTL:              24 * time.Hour,
		IdempotencyCleanupInterval:  10 * time.Minute,
		IdempotencyCleanupBatchSize: 500,

		KafkaClientID:      "catalog-service",
		KafkaTopic:         "catalog.order_item.events",
		OutboxPollInterval: time.Second,
		OutboxBatchSize:    100,
		OutboxMaxAttempts:  3,
		OutboxRetryDelay:   100 * time.Millisecond,
	}
}

// Validate проверяет согласованность драйверов и обязательных адресов.
func (c Config) Validate() error {
	switch c.StorageDriver {
	case StorageDriverMemory:
	case StorageDriverPostgres:
		if strings.TrimSpace(c.PostgresDSN) == "" {
			return fmt.Errorf("postgres storage driver requires a DSN")
		}
	default:
		return fmt.Errorf("unsupported storage driver: %q", c.StorageDriver)
	}

	switch c.IdempotencyDriver {
	case IdempotencyDriverMemory:
	case IdempotencyDriverPostgres:
		if c.StorageDriver != StorageDriverPostgres {
			return fmt.Errorf("postgres idempotency driver requires postgres storage driver")
		}
	case IdempotencyDriverRedis:
		if strings.TrimSpace(c.RedisURL) == "" {
			return fmt.Errorf("redis idempotency driver requires a redis url")
		}
	default:
		return fmt.Errorf("unsupported idempotency driver: %q", c.IdempotencyDriver)
	}

	return nil
}

// Brokers разбирает KafkaBrokers, отбрасывая пустые элементы.
func (c Config) Brokers() []string {
	var brokers []string
	for _, broker := range strings.Split(c.KafkaBrokers, ",") {
		if broker = strings.TrimSpace(broker); broker != "" {
			brokers = append(brokers, broker)
		}
	}
	return brokers
}
