package leavetype

import "github.com/shopspring/decimal"

type UpsertLeaveTypeRequest struct {
	Label          string          `json:"label" binding:"required,max=100"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
}

type LeaveTypeResponse struct {
	Key            string          `json:"key"`
	Label          string          `json:"label"`
	InitialBalance decimal.Decimal `json:"initial_balance"`
	IsDefault      bool            `json:"is_default"`
	TracksBalance  bool            `json:"tracks_balance"`
}
