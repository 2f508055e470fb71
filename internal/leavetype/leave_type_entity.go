package leavetype

import (
	"time"

	"github.com/shopspring/decimal"
)

const KeyUnpaid = "unpaid"

// LeaveType is a custom catalog entry. Built-in defaults are never stored.
type LeaveType struct {
	Key            string          `gorm:"type:varchar(50);primaryKey"`
	Label          string          `gorm:"type:varchar(100);not null"`
	InitialBalance decimal.Decimal `gorm:"type:numeric(8,2);not null;default:0"`
	IsDefault      bool            `gorm:"-"`
	CreatedAt      time.Time
	UpdatedAt      time.Time
}

// TracksBalance reports whether approvals of this type move an employee
// balance. Only the unpaid type with a zero initial balance is exempt.
func (t LeaveType) TracksBalance() bool {
	return !(t.Key == KeyUnpaid && t.InitialBalance.IsZero())
}

func DefaultLeaveTypes() []LeaveType {
	return []LeaveType{
		{Key: "vacation", Label: "Vacation", InitialBalance: decimal.NewFromInt(15), IsDefault: true},
		{Key: "sick", Label: "Sick Leave", InitialBalance: decimal.NewFromInt(10), IsDefault: true},
		{Key: "personal", Label: "Personal Leave", InitialBalance: decimal.NewFromInt(5), IsDefault: true},
		{Key: KeyUnpaid, Label: "Unpaid Leave", InitialBalance: decimal.Zero, IsDefault: true},
		{Key: "other", Label: "Other", InitialBalance: decimal.Zero, IsDefault: true},
	}
}
