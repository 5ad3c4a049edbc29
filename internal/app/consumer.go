package app

import (
	"context"
	"errors"
	"os/signal"
	"syscall"

	"go-hris-payroll/internal/config"
	"go-hris-payroll/internal/employeesalary"
	"go-hris-payroll/internal/events"
	"go-hris-payroll/internal/messaging/kafka/consumer"
	"go-hris-payroll/internal/shared/connection"

	kafkago "github.com/segmentio/kafka-go"
	"go.uber.org/zap"
)

// RunConsumer creates default salary profiles for new employees until
// SIGINT or SIGTERM.
func RunConsumer(cfg config.Config) error {
	logger := zap.L().Named("app.consumer")

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

	employeeSalaryRepo := employeesalary.NewRepository(gormDB)
	employeeSalaryService := employeesalary.NewService(sqlDB, employeeSalaryRepo)

	reader := kafkago.NewReader(kafkago.ReaderConfig{
		Brokers:        []string{cfg.KafkaBroker},
		Topic:          events.EmployeeLifecycleTopic,
		GroupID:        cfg.KafkaGroup,
		CommitInterval: 0,
		StartOffset:    kafkago.FirstOffset,
	})
	defer reader.Close()

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	consumer.ConsumeEmployeeLifecycle(ctx, reader, employeeSalaryService, logger)

	logger.Info("consumer shutting down")
	return nil
}
