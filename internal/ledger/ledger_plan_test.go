package ledger

import (
	"testing"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

func d(v string) decimal.Decimal {
	return decimal.RequireFromString(v)
}

func TestPlan(t *testing.T) {
	emp := uuid.New()
	vacation := func(days string) Deduction {
		return Deduction{EmployeeID: emp, LeaveTypeKey: "vacation", Days: d(days)}
	}

	t.Run("into approved debits", func(t *testing.T) {
		postings := Plan(Deduction{}, vacation("3"))
		assert.Len(t, postings, 1)
		assert.True(t, postings[0].Delta.Equal(d("-3")))
	})

	t.Run("out of approved credits recorded amount", func(t *testing.T) {
		postings := Plan(vacation("3"), Deduction{})
		assert.Len(t, postings, 1)
		assert.True(t, postings[0].Delta.Equal(d("3")))
	})

	t.Run("staying approved with shorter range is one adjustment", func(t *testing.T) {
		postings := Plan(vacation("3"), vacation("2"))
		assert.Len(t, postings, 1)
		assert.True(t, postings[0].Delta.Equal(d("1")))
	})

	t.Run("unchanged deduction is a no-op", func(t *testing.T) {
		assert.Empty(t, Plan(vacation("3"), vacation("3")))
		assert.Empty(t, Plan(Deduction{}, Deduction{}))
	})

	t.Run("type change credits old and debits new", func(t *testing.T) {
		sick := Deduction{EmployeeID: emp, LeaveTypeKey: "sick", Days: d("0.5")}
		postings := Plan(vacation("2"), sick)

		assert.Len(t, postings, 2)
		assert.Equal(t, "sick", postings[0].LeaveTypeKey)
		assert.True(t, postings[0].Delta.Equal(d("-0.5")))
		assert.Equal(t, "vacation", postings[1].LeaveTypeKey)
		assert.True(t, postings[1].Delta.Equal(d("2")))
	})
}
