package leave

import (
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"gorm.io/gorm"
)

const (
	StatusPending   = "PENDING"
	StatusApproved  = "APPROVED"
	StatusRejected  = "REJECTED"
	StatusCancelled = "CANCELLED"
)

const (
	DurationWholeDay  = "WHOLE_DAY"
	DurationHalfDayAM = "HALF_DAY_AM"
	DurationHalfDayPM = "HALF_DAY_PM"
)

type LeaveRequest struct {
	ID           uuid.UUID `gorm:"type:uuid;primaryKey;default:gen_random_uuid()"`
	Title        string    `gorm:"type:varchar(20);not null;uniqueIndex:uq_leave_request_title"`
	EmployeeID   uuid.UUID `gorm:"type:uuid;not null;index:idx_leave_requests_employee_dates"`
	LeaveTypeKey string    `gorm:"type:varchar(50);not null"`

	StartDate time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	EndDate   time.Time `gorm:"type:date;not null;index:idx_leave_requests_employee_dates"`
	Duration  string    `gorm:"type:varchar(20);not null;default:'WHOLE_DAY'"`
	Reason    string    `gorm:"type:text"`

	Status     string `gorm:"type:varchar(20);not null;default:'PENDING';index:idx_leave_requests_status"`
	AdminNotes string `gorm:"type:text"`

	// DeductedDays is what the ledger currently holds against
	// DeductedTypeKey for this request.
	DeductedDays    decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	DeductedTypeKey string          `gorm:"type:varchar(50)"`

	CreatedBy uuid.UUID  `gorm:"type:uuid;not null"`
	DecidedBy *uuid.UUID `gorm:"type:uuid"`
	DecidedAt *time.Time

	CreatedAt time.Time
	UpdatedAt time.Time
	DeletedAt gorm.DeletedAt `gorm:"index:idx_leave_requests_deleted_at"`
}

func (LeaveRequest) TableName() string {
	return "leave_requests"
}

// IsActive reports whether the request takes part in overlap checks.
func (l LeaveRequest) IsActive() bool {
	return l.Status == StatusPending || l.Status == StatusApproved
}

func IsValidStatus(status string) bool {
	switch status {
	case StatusPending, StatusApproved, StatusRejected, StatusCancelled:
		return true
	}
	return false
}

func IsValidDuration(duration string) bool {
	switch duration {
	case DurationWholeDay, DurationHalfDayAM, DurationHalfDayPM:
		return true
	}
	return false
}
