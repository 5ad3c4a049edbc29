package app

import (
	"fmt"

	"go-hris-payroll/internal/attendance"
	"go-hris-payroll/internal/employee"
	"go-hris-payroll/internal/employeesalary"
	"go-hris-payroll/internal/payroll"
	"go-hris-payroll/internal/request"
	"go-hris-payroll/internal/shared/counter"

	"go.uber.org/zap"
	"gorm.io/gorm"
)

// rawSchema covers what gorm tags cannot express: the outbox, written
// through database/sql, and its partial index.
var rawSchema = []string{
	`CREATE EXTENSION IF NOT EXISTS pgcrypto`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
		id uuid PRIMARY KEY,
		company_id uuid NOT NULL,
		request_id varchar(100),
		aggregate_type varchar(50) NOT NULL,
		aggregate_id varchar(100) NOT NULL,
		event_type varchar(100) NOT NULL,
		topic varchar(150) NOT NULL,
		payload jsonb NOT NULL,
		status varchar(20) NOT NULL DEFAULT 'pending',
		retry_count int NOT NULL DEFAULT 0,
		next_retry_at timestamptz,
		error_message text,
		processed_at timestamptz,
		created_at timestamptz NOT NULL DEFAULT now(),
		updated_at timestamptz NOT NULL DEFAULT now()
	)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_pending
		ON outbox_events (created_at) WHERE status IN ('pending', 'failed')`,
}

// Migrate creates or updates every table the service owns.
func Migrate(db *gorm.DB) error {
	log := zap.L().Named("app.migrate")

	if err := db.Exec(rawSchema[0]).Error; err != nil {
		return fmt.Errorf("enable pgcrypto: %w", err)
	}

	err := db.AutoMigrate(
		&employee.Employee{},
		&attendance.Attendance{},
		&employeesalary.SalaryProfile{},
		&request.Request{},
		&payroll.PayrollRun{},
		&payroll.PayrollLineItem{},
		&counter.CompanyCounter{},
	)
	if err != nil {
		return fmt.Errorf("auto migrate: %w", err)
	}

	for _, stmt := range rawSchema[1:] {
		if err := db.Exec(stmt).Error; err != nil {
			return fmt.Errorf("apply schema: %w", err)
		}
	}

	log.Info("schema up to date")
	return nil
}
