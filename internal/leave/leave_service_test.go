package leave_test

import (
	"context"
	"database/sql"
	"errors"
	"sort"
	"testing"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	"go-leave/internal/leave"
	leaveerrors "go-leave/internal/leave/errors"
	leavemock "go-leave/internal/leave/mock"
	"go-leave/internal/leavetype"
	"go-leave/internal/ledger"
	"go-leave/internal/messaging/kafka"
	kafkamock "go-leave/internal/messaging/kafka/mock"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/counter"
	countermock "go-leave/internal/shared/counter/mock"

	"github.com/DATA-DOG/go-sqlmock"
	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"go.uber.org/mock/gomock"
	"gorm.io/gorm"
)

type memRepo struct {
	items map[uuid.UUID]leave.LeaveRequest
}

func newMemRepo() *memRepo {
	return &memRepo{items: map[uuid.UUID]leave.LeaveRequest{}}
}

func (r *memRepo) WithTx(*sql.Tx) leave.Repository { return r }

func (r *memRepo) Create(_ context.Context, l *leave.LeaveRequest) error {
	l.CreatedAt = time.Now()
	r.items[l.ID] = *l
	return nil
}

func (r *memRepo) FindAll(_ context.Context, filter leave.Filter) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range r.items {
		if filter.EmployeeID != "" && l.EmployeeID.String() != filter.EmployeeID {
			continue
		}
		if filter.Status != "" && l.Status != filter.Status {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.After(out[j].StartDate) })
	return out, nil
}

func (r *memRepo) FindByID(_ context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	l, ok := r.items[id]
	if !ok {
		return nil, gorm.ErrRecordNotFound
	}
	return &l, nil
}

func (r *memRepo) LockByID(ctx context.Context, id uuid.UUID) (*leave.LeaveRequest, error) {
	return r.FindByID(ctx, id)
}

func (r *memRepo) LockEmployee(context.Context, uuid.UUID) error { return nil }

func (r *memRepo) FindActiveByEmployee(_ context.Context, employeeID uuid.UUID, excludeID *uuid.UUID) ([]leave.LeaveRequest, error) {
	var out []leave.LeaveRequest
	for _, l := range r.items {
		if l.EmployeeID != employeeID || !l.IsActive() {
			continue
		}
		if excludeID != nil && l.ID == *excludeID {
			continue
		}
		out = append(out, l)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].StartDate.Before(out[j].StartDate) })
	return out, nil
}

func (r *memRepo) Update(_ context.Context, l *leave.LeaveRequest) error {
	r.items[l.ID] = *l
	return nil
}

func (r *memRepo) Delete(_ context.Context, id uuid.UUID) error {
	if _, ok := r.items[id]; !ok {
		return gorm.ErrRecordNotFound
	}
	delete(r.items, id)
	return nil
}

// memLedger applies ledger.Plan to in-memory balances.
type memLedger struct {
	balances  map[string]decimal.Decimal
	untracked map[string]bool
}

func newMemLedger() *memLedger {
	return &memLedger{balances: map[string]decimal.Decimal{}, untracked: map[string]bool{leavetype.KeyUnpaid: true}}
}

func bucket(employeeID uuid.UUID, key string) string {
	return employeeID.String() + "|" + key
}

func (m *memLedger) Reconcile(_ context.Context, _ *sql.Tx, r ledger.Reconciliation) (ledger.Deduction, error) {
	target := ledger.Deduction{}
	if r.Approved && !m.untracked[r.Requested.LeaveTypeKey] {
		target = r.Requested
	}
	for _, p := range ledger.Plan(r.Applied, target) {
		k := bucket(p.EmployeeID, p.LeaveTypeKey)
		m.balances[k] = m.balances[k].Add(p.Delta)
	}
	return target, nil
}

type staticCatalog map[string]bool

func (c staticCatalog) Lookup(_ context.Context, key string) (leavetype.LeaveType, bool, error) {
	if !c[key] {
		return leavetype.LeaveType{}, false, nil
	}
	return leavetype.LeaveType{Key: key}, true, nil
}

type fakeDirectory struct {
	GetByIDFn func(ctx context.Context, id string) (employee.EmployeeResponse, error)
	// employee id -> linked user id
	links map[string]string
}

func (f *fakeDirectory) GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error) {
	if f.GetByIDFn == nil {
		return employee.EmployeeResponse{ID: id, UserID: f.links[id]}, nil
	}
	return f.GetByIDFn(ctx, id)
}

func (f *fakeDirectory) link(employeeID, userID string) {
	f.links[employeeID] = userID
}

type fixture struct {
	svc       leave.Service
	sqlMock   sqlmock.Sqlmock
	repo      *memRepo
	ledger    *memLedger
	directory *fakeDirectory
}

func newFixture(t *testing.T, outbox kafka.OutboxRepository) *fixture {
	t.Helper()

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	t.Cleanup(func() { db.Close() })

	ctrl := gomock.NewController(t)
	ctr := countermock.NewMockRepository(ctrl)
	var seq int64
	ctr.EXPECT().WithTx(gomock.Any()).Return(ctr).AnyTimes()
	ctr.EXPECT().GetNextValue(gomock.Any(), counter.TypeLeaveRequest).DoAndReturn(
		func(context.Context, string) (int64, error) {
			seq++
			return seq, nil
		}).AnyTimes()

	f := &fixture{
		sqlMock:   sqlMock,
		repo:      newMemRepo(),
		ledger:    newMemLedger(),
		directory: &fakeDirectory{links: map[string]string{}},
	}
	catalog := staticCatalog{"vacation": true, "sick": true, leavetype.KeyUnpaid: true}
	f.svc = leave.NewService(db, f.repo, ctr, f.ledger, catalog, f.directory, outbox)
	return f
}

func (f *fixture) expectTx() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectCommit()
}

func (f *fixture) expectRolledBackTx() {
	f.sqlMock.ExpectBegin()
	f.sqlMock.ExpectRollback()
}

func futureDate(days int) string {
	return time.Now().AddDate(0, 0, days).Format(leave.DateLayout)
}

func TestService_BalanceScenario(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.New()
	key := bucket(emp, "vacation")
	f.ledger.balances[key] = decimal.NewFromInt(15)

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{
		EmployeeID:   emp.String(),
		LeaveTypeKey: "vacation",
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-03",
	})
	assert.NoError(t, err)
	assert.Equal(t, "LR00000001", created.Title)
	assert.Equal(t, leave.StatusPending, created.Status)
	assert.Equal(t, "15", f.ledger.balances[key].String())

	f.expectTx()
	approved, err := f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, "3", approved.DeductedDays.String())
	assert.Equal(t, "vacation", approved.DeductedTypeKey)
	assert.NotNil(t, approved.DecidedBy)
	assert.Equal(t, "12", f.ledger.balances[key].String())

	// approving again is a no-op
	f.expectRolledBackTx()
	again, err := f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, "3", again.DeductedDays.String())
	assert.Equal(t, "12", f.ledger.balances[key].String())

	f.expectTx()
	edited, err := f.svc.Update(ctx, admin, created.ID, leave.UpdateLeaveRequest{
		LeaveTypeKey: "vacation",
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-02",
		Status:       leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "2", edited.DeductedDays.String())
	assert.Equal(t, "13", f.ledger.balances[key].String())

	f.expectTx()
	unchanged, err := f.svc.Update(ctx, admin, created.ID, leave.UpdateLeaveRequest{
		LeaveTypeKey: "vacation",
		StartDate:    "2024-03-01",
		EndDate:      "2024-03-02",
		Status:       leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "2", unchanged.DeductedDays.String())
	assert.Equal(t, "13", f.ledger.balances[key].String())

	f.expectTx()
	rejected, err := f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusRejected})
	assert.NoError(t, err)
	assert.True(t, rejected.DeductedDays.IsZero())
	assert.Empty(t, rejected.DeductedTypeKey)
	assert.Equal(t, "15", f.ledger.balances[key].String())

	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}

func TestService_ChangeTypeWhileApproved(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.New()
	f.ledger.balances[bucket(emp, "vacation")] = decimal.NewFromInt(15)
	f.ledger.balances[bucket(emp, "sick")] = decimal.NewFromInt(10)

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{
		EmployeeID:   emp.String(),
		LeaveTypeKey: "vacation",
		StartDate:    "2024-05-06",
		EndDate:      "2024-05-07",
		Status:       leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "13", f.ledger.balances[bucket(emp, "vacation")].String())
	assert.NotNil(t, created.DecidedAt)

	f.expectTx()
	_, err = f.svc.Update(ctx, admin, created.ID, leave.UpdateLeaveRequest{
		LeaveTypeKey: "sick",
		StartDate:    "2024-05-06",
		EndDate:      "2024-05-07",
		Duration:     leave.DurationHalfDayAM,
		Status:       leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "15", f.ledger.balances[bucket(emp, "vacation")].String())
	assert.Equal(t, "9.5", f.ledger.balances[bucket(emp, "sick")].String())
}

func TestService_UnpaidIsNotDeducted(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	emp := uuid.New()

	f.expectTx()
	resp, err := f.svc.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{
		EmployeeID:   emp.String(),
		LeaveTypeKey: "Unpaid",
		StartDate:    "2024-06-03",
		EndDate:      "2024-06-07",
		Status:       leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, leavetype.KeyUnpaid, resp.LeaveTypeKey)
	assert.Equal(t, "5", resp.Days.String())
	assert.True(t, resp.DeductedDays.IsZero())
	assert.Empty(t, f.ledger.balances)
}

func TestService_Create_Validation(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.NewString()

	tests := []struct {
		name string
		req  leave.CreateLeaveRequest
		want error
	}{
		{"invalid employee", leave.CreateLeaveRequest{EmployeeID: "bad", LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-01"}, leaveerrors.ErrInvalidEmployeeID},
		{"bad date", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "01-01-2024", EndDate: "2024-01-01"}, leaveerrors.ErrInvalidDateFormat},
		{"reversed range", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-05", EndDate: "2024-01-01"}, leaveerrors.ErrInvalidDateRange},
		{"unknown type", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "sabbatical", StartDate: "2024-01-01", EndDate: "2024-01-01"}, leaveerrors.ErrUnknownLeaveType},
		{"bad duration", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-01", Duration: "HOURLY"}, leaveerrors.ErrInvalidDuration},
		{"bad status", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-01", Status: "DONE"}, leaveerrors.ErrInvalidStatus},
		{"range over five centuries", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "1900-01-01", EndDate: "2400-01-01"}, leaveerrors.ErrRangeTooLong},
		{"range one day too long", leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2020-01-01", EndDate: "2030-01-08"}, leaveerrors.ErrRangeTooLong},
	}

	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			_, err := f.svc.Create(ctx, admin, tt.req)
			assert.ErrorIs(t, err, tt.want)
		})
	}

	t.Run("unknown employee", func(t *testing.T) {
		f.directory.GetByIDFn = func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		_, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-01"})
		assert.ErrorIs(t, err, employeeerrors.ErrEmployeeNotFound)
	})
}

func TestService_Submit(t *testing.T) {
	ctx := context.Background()
	user := uuid.NewString()
	emp := uuid.NewString()

	t.Run("past start date rejected", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.link(emp, user)
		_, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    time.Now().AddDate(0, 0, -1).Format(leave.DateLayout),
			EndDate:      futureDate(1),
		})
		assert.ErrorIs(t, err, leaveerrors.ErrStartDateInPast)
	})

	t.Run("today is allowed", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.link(emp, user)
		f.expectTx()
		resp, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "sick",
			StartDate:    futureDate(0),
			EndDate:      futureDate(0),
			Duration:     leave.DurationHalfDayPM,
			Reason:       "  dentist  ",
		})
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusPending, resp.Status)
		assert.Equal(t, "dentist", resp.Reason)
		assert.Equal(t, "0.5", resp.Days.String())
		assert.Equal(t, user, resp.CreatedBy)
	})

	t.Run("no employee profile", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.link(emp, user)
		_, err := f.svc.Submit(ctx, user, "", leave.SubmitLeaveRequest{})
		assert.ErrorIs(t, err, leaveerrors.ErrNoEmployeeProfile)
	})

	t.Run("overlap carries the conflicting request", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.link(emp, user)
		f.expectTx()
		first, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(10),
			EndDate:      futureDate(14),
		})
		assert.NoError(t, err)

		f.expectRolledBackTx()
		_, err = f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(14),
			EndDate:      futureDate(20),
		})
		assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)

		var appErr *apperror.AppError
		if assert.True(t, errors.As(err, &appErr)) {
			details, ok := appErr.Details.(leave.OverlapDetails)
			assert.True(t, ok)
			assert.Equal(t, first.ID, details.ID)
			assert.Equal(t, first.Title, details.Title)
			assert.Equal(t, first.StartDate, details.StartDate)
		}

		f.expectTx()
		_, err = f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(15),
			EndDate:      futureDate(20),
		})
		assert.NoError(t, err)
		assert.NoError(t, f.sqlMock.ExpectationsWereMet())
	})

	t.Run("unknown employee", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.GetByIDFn = func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, employeeerrors.ErrEmployeeNotFound
		}
		_, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(2),
			EndDate:      futureDate(3),
			Reason:       "trip",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrNoEmployeeProfile)
		assert.Empty(t, f.repo.items)
	})

	t.Run("employee linked to another user", func(t *testing.T) {
		f := newFixture(t, nil)
		f.directory.link(emp, uuid.NewString())
		_, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(2),
			EndDate:      futureDate(3),
			Reason:       "trip",
		})
		assert.ErrorIs(t, err, leaveerrors.ErrNoEmployeeProfile)
		assert.Empty(t, f.repo.items)
	})

	t.Run("directory failure is returned", func(t *testing.T) {
		f := newFixture(t, nil)
		boom := errors.New("db down")
		f.directory.GetByIDFn = func(context.Context, string) (employee.EmployeeResponse, error) {
			return employee.EmployeeResponse{}, boom
		}
		_, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(2),
			EndDate:      futureDate(3),
			Reason:       "trip",
		})
		assert.ErrorIs(t, err, boom)
	})
}

func TestService_Update_ExcludesItselfFromOverlap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.NewString()

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-05"})
	assert.NoError(t, err)

	f.expectTx()
	resp, err := f.svc.Update(ctx, admin, created.ID, leave.UpdateLeaveRequest{
		LeaveTypeKey: "vacation",
		StartDate:    "2024-01-03",
		EndDate:      "2024-01-08",
		Status:       leave.StatusPending,
		AdminNotes:   "moved",
	})
	assert.NoError(t, err)
	assert.Equal(t, "2024-01-08", resp.EndDate)
	assert.Equal(t, "moved", resp.AdminNotes)

	_, err = f.svc.Update(ctx, admin, uuid.NewString()[:8], leave.UpdateLeaveRequest{Status: leave.StatusPending})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidLeaveID)

	f.expectRolledBackTx()
	_, err = f.svc.Update(ctx, admin, uuid.NewString(), leave.UpdateLeaveRequest{
		LeaveTypeKey: "vacation", StartDate: "2024-01-03", EndDate: "2024-01-08", Status: leave.StatusPending,
	})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestService_Cancel(t *testing.T) {
	ctx := context.Background()
	user := uuid.NewString()
	emp := uuid.NewString()

	setup := func(t *testing.T) (*fixture, leave.LeaveResponse) {
		f := newFixture(t, nil)
		f.directory.link(emp, user)
		f.expectTx()
		resp, err := f.svc.Submit(ctx, user, emp, leave.SubmitLeaveRequest{
			LeaveTypeKey: "vacation",
			StartDate:    futureDate(3),
			EndDate:      futureDate(4),
		})
		assert.NoError(t, err)
		return f, resp
	}

	t.Run("own pending request", func(t *testing.T) {
		f, created := setup(t)
		f.expectTx()
		resp, err := f.svc.Cancel(ctx, user, emp, created.ID)
		assert.NoError(t, err)
		assert.Equal(t, leave.StatusCancelled, resp.Status)
	})

	t.Run("someone else's request", func(t *testing.T) {
		f, created := setup(t)
		f.expectRolledBackTx()
		_, err := f.svc.Cancel(ctx, user, uuid.NewString(), created.ID)
		assert.ErrorIs(t, err, leaveerrors.ErrNotOwner)
	})

	t.Run("approved request cannot be cancelled", func(t *testing.T) {
		f, created := setup(t)
		f.expectTx()
		_, err := f.svc.ChangeStatus(ctx, uuid.NewString(), created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
		assert.NoError(t, err)

		f.expectRolledBackTx()
		_, err = f.svc.Cancel(ctx, user, emp, created.ID)
		assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatusTransition)
	})
}

func TestService_ChangeStatus_ReactivationChecksOverlap(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.NewString()

	f.expectTx()
	first, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-05", Status: leave.StatusRejected})
	assert.NoError(t, err)

	f.expectTx()
	_, err = f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: emp, LeaveTypeKey: "vacation", StartDate: "2024-01-03", EndDate: "2024-01-04"})
	assert.NoError(t, err)

	f.expectRolledBackTx()
	_, err = f.svc.ChangeStatus(ctx, admin, first.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveOverlap)
}

func TestService_Delete_RefundsDeduction(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.New()
	key := bucket(emp, "vacation")
	f.ledger.balances[key] = decimal.NewFromInt(15)

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{
		EmployeeID: emp.String(), LeaveTypeKey: "vacation", StartDate: "2024-07-01", EndDate: "2024-07-05", Status: leave.StatusApproved,
	})
	assert.NoError(t, err)
	assert.Equal(t, "10", f.ledger.balances[key].String())

	f.expectTx()
	assert.NoError(t, f.svc.Delete(ctx, admin, created.ID))
	assert.Equal(t, "15", f.ledger.balances[key].String())

	f.expectRolledBackTx()
	err = f.svc.Delete(ctx, admin, created.ID)
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestService_GetAllAndListMine(t *testing.T) {
	ctx := context.Background()
	f := newFixture(t, nil)
	admin := uuid.NewString()
	emp := uuid.NewString()
	other := uuid.NewString()

	for _, e := range []string{emp, other} {
		f.expectTx()
		_, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: e, LeaveTypeKey: "sick", StartDate: "2024-02-01", EndDate: "2024-02-01"})
		assert.NoError(t, err)
	}

	all, err := f.svc.GetAll(ctx, leave.Filter{})
	assert.NoError(t, err)
	assert.Len(t, all, 2)

	mine, err := f.svc.ListMine(ctx, emp)
	assert.NoError(t, err)
	if assert.Len(t, mine, 1) {
		assert.Equal(t, emp, mine[0].EmployeeID)
	}

	_, err = f.svc.ListMine(ctx, "")
	assert.ErrorIs(t, err, leaveerrors.ErrNoEmployeeProfile)

	_, err = f.svc.GetAll(ctx, leave.Filter{Status: "DONE"})
	assert.ErrorIs(t, err, leaveerrors.ErrInvalidStatus)

	_, err = f.svc.GetByID(ctx, uuid.NewString())
	assert.ErrorIs(t, err, leaveerrors.ErrLeaveNotFound)
}

func TestService_EnqueuesStatusEvents(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	f := newFixture(t, outbox)
	admin := uuid.NewString()

	var captured []kafka.OutboxEvent
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).Times(2)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).DoAndReturn(
		func(_ context.Context, event kafka.OutboxEvent) error {
			captured = append(captured, event)
			return nil
		}).Times(2)

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: uuid.NewString(), LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	assert.NoError(t, err)

	f.expectTx()
	_, err = f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
	assert.NoError(t, err)

	if assert.Len(t, captured, 2) {
		assert.Equal(t, events.LeaveStatusTopic, captured[1].Topic)
		assert.Equal(t, events.EventLeaveStatusChanged, captured[1].EventType)
		assert.Equal(t, created.ID, captured[1].AggregateID)
		assert.Contains(t, string(captured[1].Payload), `"new_status":"APPROVED"`)
		assert.Contains(t, string(captured[1].Payload), `"old_status":"PENDING"`)
	}
}

func TestService_RepositoryFailureRollsBack(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	repo := leavemock.NewMockRepository(ctrl)
	ctr := countermock.NewMockRepository(ctrl)

	db, sqlMock, err := sqlmock.New()
	assert.NoError(t, err)
	defer db.Close()

	dbErr := errors.New("connection reset")
	repo.EXPECT().WithTx(gomock.Any()).Return(repo)
	repo.EXPECT().LockEmployee(gomock.Any(), gomock.Any()).Return(nil)
	repo.EXPECT().FindActiveByEmployee(gomock.Any(), gomock.Any(), nil).Return(nil, dbErr)

	svc := leave.NewService(db, repo, ctr, newMemLedger(), staticCatalog{"vacation": true}, &fakeDirectory{}, nil)

	sqlMock.ExpectBegin()
	sqlMock.ExpectRollback()
	_, err = svc.Create(ctx, uuid.NewString(), leave.CreateLeaveRequest{EmployeeID: uuid.NewString(), LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	assert.ErrorIs(t, err, dbErr)
	assert.NoError(t, sqlMock.ExpectationsWereMet())
}

func TestService_ChangeStatus_SameStatusKeepsNotes(t *testing.T) {
	ctx := context.Background()
	ctrl := gomock.NewController(t)
	outbox := kafkamock.NewMockOutboxRepository(ctrl)
	f := newFixture(t, outbox)
	admin := uuid.NewString()
	emp := uuid.New()

	// create + approve only; the notes edit must not emit an event
	outbox.EXPECT().WithTx(gomock.Any()).Return(outbox).Times(2)
	outbox.EXPECT().Create(gomock.Any(), gomock.Any()).Return(nil).Times(2)

	key := bucket(emp, "vacation")
	f.ledger.balances[key] = decimal.NewFromInt(15)

	f.expectTx()
	created, err := f.svc.Create(ctx, admin, leave.CreateLeaveRequest{EmployeeID: emp.String(), LeaveTypeKey: "vacation", StartDate: "2024-01-01", EndDate: "2024-01-02"})
	assert.NoError(t, err)

	f.expectTx()
	_, err = f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved})
	assert.NoError(t, err)
	assert.Equal(t, "13", f.ledger.balances[key].String())

	notes := "approved by HR, see ticket 42"
	f.expectTx()
	resp, err := f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved, AdminNotes: &notes})
	assert.NoError(t, err)
	assert.Equal(t, notes, resp.AdminNotes)
	assert.Equal(t, "2", resp.DeductedDays.String())
	assert.Equal(t, "13", f.ledger.balances[key].String())

	stored, err := f.svc.GetByID(ctx, created.ID)
	assert.NoError(t, err)
	assert.Equal(t, notes, stored.AdminNotes)

	// same notes again is a plain no-op
	f.expectRolledBackTx()
	_, err = f.svc.ChangeStatus(ctx, admin, created.ID, leave.ChangeStatusRequest{Status: leave.StatusApproved, AdminNotes: &notes})
	assert.NoError(t, err)
	assert.NoError(t, f.sqlMock.ExpectationsWereMet())
}
