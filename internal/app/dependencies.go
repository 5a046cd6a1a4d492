package app

import (
	"context"
	"fmt"

	"github.com/prometheus/client_golang/prometheus"
	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/domain"
	healthcheck "github.com/vladislavdragonenkov/catalog/internal/health"
	"github.com/vladislavdragonenkov/catalog/internal/metrics"
	"github.com/vladislavdragonenkov/catalog/internal/service/association"
	"github.com/vladislavdragonenkov/catalog/internal/service/catalog"
	"github.com/vladislavdragonenkov/catalog/internal/service/idempotency"
	"github.com/vladislavdragonenkov/catalog/internal/storage/memory"
	"github.com/vladislavdragonenkov/catalog/internal/storage/postgres"
	redisstore "github.com/vladislavdragonenkov/catalog/internal/storage/redis"
)

// runtimeDependencies - хранилища, выбранные конфигурацией.
type runtimeDependencies struct {
	tx              domain.TxManager
	outboxRepo      domain.OutboxRepository
	idempotencyRepo domain.IdempotencyRepository

	checkers map[string]healthcheck.Checker
	closers  []func() error
}

func initRuntimeDependencies(ctx context.Context, cfg Config, logger *log.Entry) (*runtimeDependencies, error) {
	if err := cfg.Validate(); err != nil {
		return nil, err
	}

	deps := &runtimeDependencies{checkers: make(map[string]healthcheck.Checker)}

	var pgStore *postgres.Store
	switch cfg.StorageDriver {
	case StorageDriverMemory:
		store := memory.NewStore()
		deps.tx = store
		deps.outboxRepo = store.Outbox()
		logger.Info("используется in-memory хранилище")
	case StorageDriverPostgres:
		store, err := postgres.Open(ctx, cfg.PostgresDSN)
		if err != nil {
			return nil, fmt.Errorf("open postgres store: %w", err)
		}
		deps.closers = append(deps.closers, store.Close)
		if cfg.PostgresAutoMigrate {
			if err := store.EnsureSchema(ctx); err != nil {
				deps.close(logger)
				return nil, fmt.Errorf("apply postgres migrations: %w", err)
			}
		}
		pgStore = store
		deps.tx = store
		deps.outboxRepo = store.Outbox()
		deps.checkers["storage"] = healthcheck.NewPingChecker("postgres", store.Ping)
		logger.Info("используется postgres хранилище")
	}

	switch cfg.IdempotencyDriver {
	case IdempotencyDriverMemory:
		deps.idempotencyRepo = memory.NewIdempotencyRepository()
	case IdempotencyDriverPostgres:
		deps.idempotencyRepo = postgres.NewIdempotencyRepository(pgStore)
	case IdempotencyDriverRedis:
		repo, err := redisstore.Open(ctx, cfg.RedisURL)
		if err != nil {
			deps.close(logger)
			return nil, fmt.Errorf("open redis idempotency store: %w", err)
		}
		deps.closers = append(deps.closers, repo.Close)
		deps.idempotencyRepo = repo
		deps.checkers["idempotency"] = healthcheck.NewPingChecker("redis", repo.Ping)
	}

	return deps, nil
}

// close освобождает подключения в обратном порядке.
func (d *runtimeDependencies) close(logger *log.Entry) {
	for i := len(d.closers) - 1; i >= 0; i-- {
		if err := d.closers[i](); err != nil {
			logger.WithError(err).Warn("failed to close dependency")
		}
	}
	d.closers = nil
}

// services - прикладной слой поверх хранилищ.
type services struct {
	engine  *association.Engine
	catalog *catalog.Service
	guard   *idempotency.Guard
}

func newServices(deps *runtimeDependencies, cfg Config, registerer prometheus.Registerer, logger *log.Entry) services {
	engine := association.NewEngine(deps.tx,
		association.WithReleaseOnDelete(cfg.ReleaseOnDelete),
		association.WithCarryReservationOnMove(cfg.CarryReservationOnMove),
		association.WithLogger(logger.WithField("component", "association-engine")),
		association.WithMetrics(metrics.NewAssociationMetricsWithRegisterer(registerer)),
	)

	return services{
		engine:  engine,
		catalog: catalog.NewService(deps.tx, logger.WithField("component", "catalog-service")),
		guard:   idempotency.NewGuard(deps.idempotencyRepo, cfg.IdempotencyTTL, logger.WithField("component", "idempotency-guard")),
	}
}
