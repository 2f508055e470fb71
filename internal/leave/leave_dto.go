package leave

import "github.com/shopspring/decimal"

// CreateLeaveRequest is used by administrators; past dates are accepted
// and the initial status defaults to PENDING.
type CreateLeaveRequest struct {
	EmployeeID   string `json:"employee_id" binding:"required,uuid"`
	LeaveTypeKey string `json:"leave_type" binding:"required,max=50"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Duration     string `json:"duration" binding:"omitempty,oneof=WHOLE_DAY HALF_DAY_AM HALF_DAY_PM"`
	Reason       string `json:"reason"`
	Status       string `json:"status" binding:"omitempty,oneof=PENDING APPROVED REJECTED CANCELLED"`
	AdminNotes   string `json:"admin_notes"`
}

type SubmitLeaveRequest struct {
	LeaveTypeKey string `json:"leave_type" binding:"required,max=50"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Duration     string `json:"duration" binding:"omitempty,oneof=WHOLE_DAY HALF_DAY_AM HALF_DAY_PM"`
	Reason       string `json:"reason" binding:"required,max=2000"`
}

type UpdateLeaveRequest struct {
	LeaveTypeKey string `json:"leave_type" binding:"required,max=50"`
	StartDate    string `json:"start_date" binding:"required,datetime=2006-01-02"`
	EndDate      string `json:"end_date" binding:"required,datetime=2006-01-02"`
	Duration     string `json:"duration" binding:"omitempty,oneof=WHOLE_DAY HALF_DAY_AM HALF_DAY_PM"`
	Reason       string `json:"reason"`
	Status       string `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED CANCELLED"`
	AdminNotes   string `json:"admin_notes"`
}

type ChangeStatusRequest struct {
	Status     string  `json:"status" binding:"required,oneof=PENDING APPROVED REJECTED CANCELLED"`
	AdminNotes *string `json:"admin_notes"`
}

type Filter struct {
	EmployeeID   string
	Status       string
	LeaveTypeKey string
}

type LeaveResponse struct {
	ID              string          `json:"id"`
	Title           string          `json:"title"`
	EmployeeID      string          `json:"employee_id"`
	LeaveTypeKey    string          `json:"leave_type"`
	StartDate       string          `json:"start_date"`
	EndDate         string          `json:"end_date"`
	Duration        string          `json:"duration"`
	Days            decimal.Decimal `json:"days"`
	Reason          string          `json:"reason"`
	Status          string          `json:"status"`
	AdminNotes      string          `json:"admin_notes,omitempty"`
	DeductedDays    decimal.Decimal `json:"deducted_days"`
	DeductedTypeKey string          `json:"deducted_leave_type,omitempty"`
	CreatedBy       string          `json:"created_by"`
	DecidedBy       *string         `json:"decided_by,omitempty"`
	DecidedAt       *string         `json:"decided_at,omitempty"`
	CreatedAt       string          `json:"created_at"`
}

// OverlapDetails describes the request a candidate range collides with.
type OverlapDetails struct {
	ID        string `json:"id"`
	Title     string `json:"title"`
	Status    string `json:"status"`
	StartDate string `json:"start_date"`
	EndDate   string `json:"end_date"`
}
