package app

import (
	"go-leave/internal/auth"
	"go-leave/internal/employee"
	"go-leave/internal/leave"
	"go-leave/internal/leavetype"
	"go-leave/internal/ledger"

	"gorm.io/gorm"
)

// Tables written through raw SQL have no gorm entity.
var rawSchema = []string{
	`CREATE TABLE IF NOT EXISTS counters (
	counter_type VARCHAR(50) PRIMARY KEY,
	last_value BIGINT NOT NULL DEFAULT 0,
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE TABLE IF NOT EXISTS outbox_events (
	id UUID PRIMARY KEY,
	request_id VARCHAR(100),
	aggregate_type VARCHAR(50) NOT NULL,
	aggregate_id UUID NOT NULL,
	event_type VARCHAR(100) NOT NULL,
	topic VARCHAR(255) NOT NULL,
	payload JSONB NOT NULL,
	status VARCHAR(20) NOT NULL DEFAULT 'pending',
	retry_count INT NOT NULL DEFAULT 0,
	next_retry_at TIMESTAMPTZ,
	error_message TEXT,
	processed_at TIMESTAMPTZ,
	created_at TIMESTAMPTZ NOT NULL DEFAULT now(),
	updated_at TIMESTAMPTZ NOT NULL DEFAULT now()
)`,
	`CREATE INDEX IF NOT EXISTS idx_outbox_events_status_created ON outbox_events (status, created_at)`,
}

func migrate(db *gorm.DB) error {
	if err := db.AutoMigrate(
		&auth.User{},
		&employee.Employee{},
		&leavetype.LeaveType{},
		&ledger.Balance{},
		&ledger.Entry{},
		&leave.LeaveRequest{},
	); err != nil {
		return err
	}

	for _, stmt := range rawSchema {
		if err := db.Exec(stmt).Error; err != nil {
			return err
		}
	}
	return nil
}
