package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-hris-payroll/internal/config"
	"go-hris-payroll/internal/messaging/kafka"
	"go-hris-payroll/internal/messaging/kafka/producer"
	"go-hris-payroll/internal/shared/connection"

	"go.uber.org/zap"
)

// RunWorker relays outbox rows to Kafka until SIGINT or SIGTERM.
func RunWorker(cfg config.Config) error {
	logger := zap.L().Named("app.worker")

	if cfg.KafkaBroker == "" {
		return errors.New("KAFKA_BROKER is required")
	}

	gormDB, err := connection.ConnectGORMWithRetry(
		cfg.DBHost,
		cfg.DBUser,
		cfg.DBPassword,
		cfg.DBName,
		cfg.DBPort,
		cfg.DBSSLMode,
		cfg.ConnectRetries,
	)
	if err != nil {
		return err
	}

	sqlDB, err := gormDB.DB()
	if err != nil {
		return err
	}
	defer sqlDB.Close()

	kafkaWriter, err := connection.ConnectKafkaWithRetry(cfg.KafkaBroker, cfg.ConnectRetries)
	if err != nil {
		return err
	}
	defer kafkaWriter.Close()

	outboxRepo := kafka.NewOutboxRepository(sqlDB)

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	producer.NewRelay(outboxRepo, kafkaWriter, logger, cfg.OutboxPollInterval).Run(ctx)

	logger.Info("worker shutting down")
	return nil
}
