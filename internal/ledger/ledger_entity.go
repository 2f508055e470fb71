package ledger

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Balance is the remaining allowance of one employee for one leave type.
type Balance struct {
	EmployeeID   uuid.UUID       `gorm:"type:uuid;primaryKey"`
	LeaveTypeKey string          `gorm:"type:varchar(50);primaryKey"`
	Balance      decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	UpdatedAt    time.Time
}

func (Balance) TableName() string { return "employee_leave_balances" }

// Entry is one immutable balance movement.
type Entry struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	EmployeeID     uuid.UUID       `gorm:"type:uuid;not null;index:idx_ledger_employee_created"`
	LeaveTypeKey   string          `gorm:"type:varchar(50);not null"`
	LeaveRequestID *uuid.UUID      `gorm:"type:uuid;index"`
	Delta          decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	BalanceAfter   decimal.Decimal `gorm:"type:numeric(8,2);not null"`
	Reason         string          `gorm:"type:varchar(255)"`
	CreatedAt      time.Time       `gorm:"index:idx_ledger_employee_created"`
}

func (Entry) TableName() string { return "leave_ledger_entries" }
