package leave

import (
	"strings"
	"time"

	leaveerrors "go-leave/internal/leave/errors"

	"github.com/shopspring/decimal"
)

const DateLayout = "2006-01-02"

// MaxLeaveDays bounds a single request; deducted_days is numeric(8,2).
const MaxLeaveDays = 3660

var halfDay = decimal.RequireFromString("0.5")

func ParseDate(v string) (time.Time, error) {
	t, err := time.Parse(DateLayout, strings.TrimSpace(v))
	if err != nil {
		return time.Time{}, leaveerrors.ErrInvalidDateFormat
	}
	return t, nil
}

// CalculateDays returns the number of leave days a range consumes.
// Half-day durations are always 0.5. Whole days count both ends; a
// reversed or incomplete range counts as zero.
func CalculateDays(start, end time.Time, duration string) decimal.Decimal {
	if duration == DurationHalfDayAM || duration == DurationHalfDayPM {
		return halfDay
	}
	if start.IsZero() || end.IsZero() {
		return decimal.Zero
	}

	s, e := civilDate(start), civilDate(end)
	if e.Before(s) {
		return decimal.Zero
	}
	// Unix seconds avoid time.Duration, which overflows past ~292 years
	days := (e.Unix()-s.Unix())/86400 + 1
	return decimal.NewFromInt(days)
}

// FindOverlap returns the first pending or approved request whose range
// shares at least one day with [start, end], or nil.
func FindOverlap(existing []LeaveRequest, start, end time.Time) *LeaveRequest {
	s, e := civilDate(start), civilDate(end)
	for i := range existing {
		l := existing[i]
		if !l.IsActive() {
			continue
		}
		if !s.After(civilDate(l.EndDate)) && !e.Before(civilDate(l.StartDate)) {
			return &existing[i]
		}
	}
	return nil
}

func civilDate(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
