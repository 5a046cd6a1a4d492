package main

import (
	"fmt"
	"os"
	"strconv"
	"strings"
	"time"

	"github.com/vladislavdragonenkov/catalog/internal/app"
)

const (
	envGRPCAddr       = "CATALOG_GRPC_ADDR"
	envHTTPAddr       = "CATALOG_HTTP_ADDR"
	envMetricsAddr    = "CATALOG_METRICS_ADDR"
	envRequestTimeout = "CATALOG_REQUEST_TIMEOUT"

	envStorageDriver       = "CATALOG_STORAGE_DRIVER"
	envPostgresDSN         = "CATALOG_POSTGRES_DSN"
	envPostgresAutoMigrate = "CATALOG_POSTGRES_AUTO_MIGRATE"
	envReleaseOnDelete     = "CATALOG_RELEASE_ON_DELETE"
	envCarryOnMove         = "CATALOG_CARRY_RESERVATION_ON_MOVE"

	envIdempotencyDriver           = "CATALOG_IDEMPOTENCY_DRIVER"
	envRedisURL                    = "CATALOG_REDIS_URL"
	envIdempotencyTTL              = "CATALOG_IDEMPOTENCY_TTL"
	envIdempotencyCleanupInterval  = "CATALOG_IDEMPOTENCY_CLEANUP_INTERVAL"
	envIdempotencyCleanupBatchSize = "CATALOG_IDEMPOTENCY_CLEANUP_BATCH_SIZE"

	envKafkaBrokers       = "CATALOG_KAFKA_BROKERS"
	envKafkaClientID      = "CATALOG_KAFKA_CLIENT_ID"
	envKafkaTopic         = "CATALOG_KAFKA_TOPIC"
	envOutboxPollInterval = "CATALOG_OUTBOX_POLL_INTERVAL"
	envOutboxBatchSize    = "CATALOG_OUTBOX_BATCH_SIZE"
	envOutboxMaxAttempts  = "CATALOG_OUTBOX_MAX_ATTEMPTS"
	envOutboxRetryDelay   = "CATALOG_OUTBOX_RETRY_DELAY"
)

type envLookup func(key string) (string, bool)

// readConfig формирует конфигурацию из окружения процесса.
func readConfig() (app.Config, []string) {
	return readConfigFromEnv(os.LookupEnv)
}

// readConfigFromEnv накладывает переменные окружения на DefaultConfig.
// Невалидные значения не роняют запуск: остаётся значение по умолчанию и пишется предупреждение.
func readConfigFromEnv(lookup envLookup) (app.Config, []string) {
	cfg := app.DefaultConfig()
	var warnings []string

	warn := func(key, value string, err error) {
		warnings = append(warnings, fmt.Sprintf("%s=%q ignored: %v", key, value, err))
	}

	str := func(key string, dst *string, normalize func(string) string) {
		if v, ok := lookup(key); ok && strings.TrimSpace(v) != "" {
			*dst = normalize(strings.TrimSpace(v))
		}
	}
	boolean := func(key string, dst *bool) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseBool(v)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}
	integer := func(key string, dst *int, valid func(int) bool, rule string) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseInt(v, valid, rule)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}
	duration := func(key string, dst *time.Duration, valid func(time.Duration) bool, rule string) {
		v, ok := lookup(key)
		if !ok || strings.TrimSpace(v) == "" {
			return
		}
		parsed, err := parseDuration(v, valid, rule)
		if err != nil {
			warn(key, v, err)
			return
		}
		*dst = parsed
	}

	positive := func(v int) bool { return v > 0 }
	positiveDuration := func(v time.Duration) bool { return v > 0 }
	nonNegativeDuration := func(v time.Duration) bool { return v >= 0 }
	keep := func(v string) string { return v }

	str(envGRPCAddr, &cfg.GRPCAddr, keep)
	str(envHTTPAddr, &cfg.HTTPAddr, keep)
	str(envMetricsAddr, &cfg.MetricsAddr, keep)
	duration(envRequestTimeout, &cfg.RequestTimeout, positiveDuration, "must be > 0")

	str(envStorageDriver, &cfg.StorageDriver, strings.ToLower)
	str(envPostgresDSN, &cfg.PostgresDSN, keep)
	boolean(envPostgresAutoMigrate, &cfg.PostgresAutoMigrate)
	boolean(envReleaseOnDelete, &cfg.ReleaseOnDelete)
	boolean(envCarryOnMove, &cfg.CarryReservationOnMove)

	str(envIdempotencyDriver, &cfg.IdempotencyDriver, strings.ToLower)
	str(envRedisURL, &cfg.RedisURL, keep)
	duration(envIdempotencyTTL, &cfg.IdempotencyTTL, positiveDuration, "must be > 0")
	duration(envIdempotencyCleanupInterval, &cfg.IdempotencyCleanupInterval, positiveDuration, "must be > 0")
	integer(envIdempotencyCleanupBatchSize, &cfg.IdempotencyCleanupBatchSize, positive, "must be > 0")

	str(envKafkaBrokers, &cfg.KafkaBrokers, keep)
	str(envKafkaClientID, &cfg.KafkaClientID, keep)
	str(envKafkaTopic, &cfg.KafkaTopic, keep)
	duration(envOutboxPollInterval, &cfg.OutboxPollInterval, positiveDuration, "must be > 0")
	integer(envOutboxBatchSize, &cfg.OutboxBatchSize, positive, "must be > 0")
	integer(envOutboxMaxAttempts, &cfg.OutboxMaxAttempts, positive, "must be > 0")
	duration(envOutboxRetryDelay, &cfg.OutboxRetryDelay, nonNegativeDuration, "must be >= 0")

	return cfg, warnings
}

func parseBool(raw string) (bool, error) {
	switch strings.ToLower(strings.TrimSpace(raw)) {
	case "1", "true", "yes", "y", "on":
		return true, nil
	case "0", "false", "no", "n", "off":
		return false, nil
	default:
		return false, fmt.Errorf("invalid bool value")
	}
}

func parseInt(raw string, valid func(int) bool, rule string) (int, error) {
	value, err := strconv.Atoi(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid int value: %w", err)
	}
	if valid != nil && !valid(value) {
		return 0, fmt.Errorf("%s", rule)
	}
	return value, nil
}

func parseDuration(raw string, valid func(time.Duration) bool, rule string) (time.Duration, error) {
	value, err := time.ParseDuration(strings.TrimSpace(raw))
	if err != nil {
		return 0, fmt.Errorf("invalid duration value: %w", err)
	}
	if valid != nil && !valid(value) {
		return 0, fmt.Errorf("%s", rule)
	}
	return value, nil
}
