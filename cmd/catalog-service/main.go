package main

import (
	"context"
	"errors"
	"os"
	"os/signal"
	"syscall"

	log "github.com/sirupsen/logrus"

	"github.com/vladislavdragonenkov/catalog/internal/app"
	"github.com/vladislavdragonenkov/catalog/internal/version"
)

// setupLogger настраивает формат и уровень логирования для сервиса.
func setupLogger() {
	log.SetFormatter(&log.TextFormatter{FullTimestamp: true})
	log.SetLevel(log.InfoLevel)
	if level, err := log.ParseLevel(os.Getenv("CATALOG_LOG_LEVEL")); err == nil {
		log.SetLevel(level)
	}
}

func main() {
	setupLogger()
	cfg, warnings := readConfig()
	for _, warning := range warnings {
		log.Warn(warning)
	}

	ctx, stop := signal.NotifyContext(context.Background(), os.Interrupt, syscall.SIGTERM)
	defer stop()

	log.WithFields(log.Fields{
		"grpc_addr":          cfg.GRPCAddr,
		"http_addr":          cfg.HTTPAddr,
		"metrics_addr":       cfg.MetricsAddr,
		"storage_driver":     cfg.StorageDriver,
		"idempotency_driver": cfg.IdempotencyDriver,
		"release_on_delete":  cfg.ReleaseOnDelete,
		"carry_on_move":      cfg.CarryReservationOnMove,
		"version":            version.String(),
	}).Info("запускаем catalog-service")

	if err := app.Run(ctx, cfg); err != nil && !errors.Is(err, context.Canceled) {
		log.WithError(err).Fatal("приложение завершилось с ошибкой")
	}

	log.Info("catalog-service остановлен")
}
