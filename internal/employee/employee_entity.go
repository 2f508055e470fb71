package employee

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

type Employee struct {
	ID             uuid.UUID       `gorm:"type:uuid;primaryKey"`
	UserID         *uuid.UUID      `gorm:"type:uuid;uniqueIndex:uq_employee_user"`
	EmployeeNumber string          `gorm:"type:varchar(50);not null;uniqueIndex:uq_employee_number"`
	FullName       string          `gorm:"type:varchar(255);not null"`
	Email          string          `gorm:"type:varchar(255);not null;uniqueIndex:uq_employee_email"`
	Phone          string          `gorm:"type:varchar(50)"`
	Department     string          `gorm:"type:varchar(100)"`
	Position       string          `gorm:"type:varchar(100)"`
	Salary         decimal.Decimal `gorm:"type:numeric(14,2);not null;default:0"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
	DeletedAt      gorm.DeletedAt `gorm:"index"`
}
