package ledger

import (
	"sort"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
)

// Deduction is an amount of days taken from one employee's balance of one
// leave type.
type Deduction struct {
	EmployeeID   uuid.UUID
	LeaveTypeKey string
	Days         decimal.Decimal
}

func (d Deduction) IsZero() bool {
	return d.Days.IsZero()
}

func (d Deduction) sameBucket(o Deduction) bool {
	return d.EmployeeID == o.EmployeeID && d.LeaveTypeKey == o.LeaveTypeKey
}

// Posting is a signed change to a single balance; positive credits.
type Posting struct {
	EmployeeID   uuid.UUID
	LeaveTypeKey string
	Delta        decimal.Decimal
}

// Plan returns the postings that move a balance from having applied
// deducted to having target deducted. When both point at the same balance
// the change collapses into one posting; zero postings are dropped, so
// planning the same deduction twice yields nothing.
func Plan(applied, target Deduction) []Posting {
	if applied.sameBucket(target) {
		delta := applied.Days.Sub(target.Days)
		if delta.IsZero() {
			return nil
		}
		return []Posting{{EmployeeID: applied.EmployeeID, LeaveTypeKey: applied.LeaveTypeKey, Delta: delta}}
	}

	var postings []Posting
	if !applied.IsZero() {
		postings = append(postings, Posting{
			EmployeeID:   applied.EmployeeID,
			LeaveTypeKey: applied.LeaveTypeKey,
			Delta:        applied.Days,
		})
	}
	if !target.IsZero() {
		postings = append(postings, Posting{
			EmployeeID:   target.EmployeeID,
			LeaveTypeKey: target.LeaveTypeKey,
			Delta:        target.Days.Neg(),
		})
	}

	// lock order must be stable across transactions
	sort.Slice(postings, func(i, j int) bool {
		if postings[i].EmployeeID != postings[j].EmployeeID {
			return postings[i].EmployeeID.String() < postings[j].EmployeeID.String()
		}
		return postings[i].LeaveTypeKey < postings[j].LeaveTypeKey
	})
	return postings
}
