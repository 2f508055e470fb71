package ledger

import (
	"time"

	"github.com/shopspring/decimal"
)

type AdjustBalanceRequest struct {
	LeaveTypeKey string          `json:"leave_type_key" binding:"required"`
	Delta        decimal.Decimal `json:"delta"`
	Reason       string          `json:"reason" binding:"required,max=255"`
}

type BalanceResponse struct {
	LeaveTypeKey   string          `json:"leave_type_key"`
	Label          string          `json:"label"`
	Balance        decimal.Decimal `json:"balance"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	Tracked        bool            `json:"tracked"`
}

type EntryResponse struct {
	ID             string          `json:"id"`
	LeaveTypeKey   string          `json:"leave_type_key"`
	LeaveRequestID string          `json:"leave_request_id,omitempty"`
	Delta          decimal.Decimal `json:"delta"`
	BalanceAfter   decimal.Decimal `json:"balance_after"`
	Reason         string          `json:"reason"`
	CreatedAt      time.Time       `json:"created_at"`
}
