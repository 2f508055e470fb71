package events

import (
	"time"

	"github.com/shopspring/decimal"
)

const (
	LeaveStatusTopic = "hr.leave.status.v1"

	EventLeaveStatusChanged = "leave_status_changed"
)

// LeaveStatusChangedEvent is emitted whenever a leave request enters a new
// status, including creation (OldStatus empty) and deletion (NewStatus empty).
type LeaveStatusChangedEvent struct {
	EventType      string          `json:"event_type"`
	RequestID      string          `json:"request_id,omitempty"`
	LeaveRequestID string          `json:"leave_request_id"`
	Title          string          `json:"title"`
	EmployeeID     string          `json:"employee_id"`
	LeaveTypeKey   string          `json:"leave_type_key"`
	OldStatus      string          `json:"old_status"`
	NewStatus      string          `json:"new_status"`
	DeductedDays   decimal.Decimal `json:"deducted_days"`
	ActorID        string          `json:"actor_id,omitempty"`
	OccurredAt     time.Time       `json:"occurred_at"`
}
