package ledger

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"time"

	ledgererrors "go-leave/internal/ledger/errors"
	"go-leave/internal/leavetype"
	"go-leave/internal/shared/contextutil"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Catalog resolves leave types; leavetype.Service satisfies it.
type Catalog interface {
	GetAll(ctx context.Context) ([]leavetype.LeaveTypeResponse, error)
	Lookup(ctx context.Context, key string) (leavetype.LeaveType, bool, error)
}

// Reconciliation describes one leave request after a change. Applied is
// what is currently deducted for the request, Requested is what its
// current type, dates and duration would deduct if approved.
type Reconciliation struct {
	LeaveRequestID uuid.UUID
	Approved       bool
	Applied        Deduction
	Requested      Deduction
	Reason         string
}

//go:generate mockgen -source=ledger_service.go -destination=mock/ledger_service_mock.go -package=mock
type Service interface {
	// Reconcile runs inside the caller's transaction and returns the
	// deduction now applied, which the caller stores on the request.
	Reconcile(ctx context.Context, tx *sql.Tx, r Reconciliation) (Deduction, error)
	GetBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error)
	GetEntries(ctx context.Context, employeeID string) ([]EntryResponse, error)
	OpenBalances(ctx context.Context, employeeID string) error
	Adjust(ctx context.Context, employeeID string, req AdjustBalanceRequest) (BalanceResponse, error)
}

type service struct {
	db      *sql.DB
	repo    Repository
	catalog Catalog
	logger  *zap.Logger
}

func NewService(db *sql.DB, repo Repository, catalog Catalog, logger ...*zap.Logger) Service {
	l := zap.L().Named("ledger.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.service")
	}
	return &service{
		db:      db,
		repo:    repo,
		catalog: catalog,
		logger:  l,
	}
}

func (s *service) Reconcile(ctx context.Context, tx *sql.Tx, r Reconciliation) (Deduction, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	target := Deduction{}
	if r.Approved && r.Requested.Days.IsPositive() {
		lt, found, err := s.catalog.Lookup(ctx, r.Requested.LeaveTypeKey)
		if err != nil {
			return Deduction{}, err
		}
		switch {
		case !found:
			log.Warn("leave type missing from catalog, balance not tracked",
				zap.String("leave_type_key", r.Requested.LeaveTypeKey),
				zap.String("leave_request_id", r.LeaveRequestID.String()),
			)
		case lt.TracksBalance():
			target = r.Requested
		}
	}

	postings := Plan(r.Applied, target)
	if len(postings) == 0 {
		log.Debug("ledger reconcile no-op", zap.String("leave_request_id", r.LeaveRequestID.String()))
		return target, nil
	}

	qrepo := s.repo.WithTx(tx)
	requestID := r.LeaveRequestID
	for _, p := range postings {
		after, err := s.post(ctx, qrepo, p, &requestID, r.Reason)
		if err != nil {
			log.Error("ledger posting failed",
				zap.String("employee_id", p.EmployeeID.String()),
				zap.String("leave_type_key", p.LeaveTypeKey),
				zap.Error(err),
			)
			return Deduction{}, err
		}
		log.Info("ledger posting applied",
			zap.String("employee_id", p.EmployeeID.String()),
			zap.String("leave_type_key", p.LeaveTypeKey),
			zap.String("leave_request_id", requestID.String()),
			zap.String("delta", p.Delta.String()),
			zap.String("balance_after", after.String()),
		)
	}

	return target, nil
}

// post locks the balance row, creating it from the catalog's initial
// balance when missing, applies the delta and appends an entry.
func (s *service) post(ctx context.Context, repo Repository, p Posting, requestID *uuid.UUID, reason string) (decimal.Decimal, error) {
	bal, err := repo.LockBalance(ctx, p.EmployeeID, p.LeaveTypeKey)
	if errors.Is(err, gorm.ErrRecordNotFound) {
		initial, ierr := s.initialBalance(ctx, p.LeaveTypeKey)
		if ierr != nil {
			return decimal.Zero, ierr
		}
		if _, err := repo.EnsureBalance(ctx, p.EmployeeID, p.LeaveTypeKey, initial); err != nil {
			return decimal.Zero, err
		}
		bal, err = repo.LockBalance(ctx, p.EmployeeID, p.LeaveTypeKey)
	}
	if err != nil {
		return decimal.Zero, err
	}

	bal.Balance = bal.Balance.Add(p.Delta)
	if err := repo.UpdateBalance(ctx, bal); err != nil {
		return decimal.Zero, err
	}

	if err := repo.CreateEntry(ctx, &Entry{
		ID:             uuid.New(),
		EmployeeID:     p.EmployeeID,
		LeaveTypeKey:   p.LeaveTypeKey,
		LeaveRequestID: requestID,
		Delta:          p.Delta,
		BalanceAfter:   bal.Balance,
		Reason:         reason,
		CreatedAt:      time.Now().UTC(),
	}); err != nil {
		return decimal.Zero, err
	}

	return bal.Balance, nil
}

func (s *service) initialBalance(ctx context.Context, key string) (decimal.Decimal, error) {
	lt, found, err := s.catalog.Lookup(ctx, key)
	if err != nil {
		return decimal.Zero, err
	}
	if !found {
		return decimal.Zero, nil
	}
	return lt.InitialBalance, nil
}

func (s *service) GetBalances(ctx context.Context, employeeID string) ([]BalanceResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, ledgererrors.ErrInvalidEmployeeID
	}

	catalog, err := s.catalog.GetAll(ctx)
	if err != nil {
		return nil, err
	}

	rows, err := s.repo.FindBalances(ctx, empID)
	if err != nil {
		s.logger.Error("get balances failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}
	stored := make(map[string]decimal.Decimal, len(rows))
	for _, b := range rows {
		stored[b.LeaveTypeKey] = b.Balance
	}

	resp := make([]BalanceResponse, 0, len(catalog))
	for _, t := range catalog {
		balance, ok := stored[t.Key]
		if !ok {
			balance = t.InitialBalance
		}
		delete(stored, t.Key)

		resp = append(resp, BalanceResponse{
			LeaveTypeKey:   t.Key,
			Label:          t.Label,
			Balance:        balance,
			InitialBalance: t.InitialBalance,
			Tracked:        t.TracksBalance,
		})
	}

	// rows for types deleted from the catalog are still reported
	for _, b := range rows {
		if _, orphan := stored[b.LeaveTypeKey]; orphan {
			resp = append(resp, BalanceResponse{
				LeaveTypeKey: b.LeaveTypeKey,
				Label:        b.LeaveTypeKey,
				Balance:      b.Balance,
			})
		}
	}

	return resp, nil
}

func (s *service) GetEntries(ctx context.Context, employeeID string) ([]EntryResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return nil, ledgererrors.ErrInvalidEmployeeID
	}

	entries, err := s.repo.FindEntries(ctx, empID)
	if err != nil {
		s.logger.Error("get ledger entries failed", zap.String("employee_id", employeeID), zap.Error(err))
		return nil, err
	}

	resp := make([]EntryResponse, len(entries))
	for i, e := range entries {
		resp[i] = EntryResponse{
			ID:           e.ID.String(),
			LeaveTypeKey: e.LeaveTypeKey,
			Delta:        e.Delta,
			BalanceAfter: e.BalanceAfter,
			Reason:       e.Reason,
			CreatedAt:    e.CreatedAt,
		}
		if e.LeaveRequestID != nil {
			resp[i].LeaveRequestID = e.LeaveRequestID.String()
		}
	}
	return resp, nil
}

func (s *service) OpenBalances(ctx context.Context, employeeID string) error {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return ledgererrors.ErrInvalidEmployeeID
	}

	catalog, err := s.catalog.GetAll(ctx)
	if err != nil {
		return err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("open balances begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qrepo := s.repo.WithTx(tx)
	opened := 0
	for _, t := range catalog {
		if !t.TracksBalance {
			continue
		}
		created, err := qrepo.EnsureBalance(ctx, empID, t.Key, t.InitialBalance)
		if err != nil {
			s.logger.Error("open balance failed",
				zap.String("employee_id", employeeID),
				zap.String("leave_type_key", t.Key),
				zap.Error(err),
			)
			return err
		}
		if !created {
			continue
		}
		opened++
		if err := qrepo.CreateEntry(ctx, &Entry{
			ID:           uuid.New(),
			EmployeeID:   empID,
			LeaveTypeKey: t.Key,
			Delta:        t.InitialBalance,
			BalanceAfter: t.InitialBalance,
			Reason:       "opening balance",
			CreatedAt:    time.Now().UTC(),
		}); err != nil {
			return err
		}
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("open balances commit failed", zap.Error(err))
		return err
	}

	s.logger.Info("balances opened", zap.String("employee_id", employeeID), zap.Int("count", opened))
	return nil
}

func (s *service) Adjust(ctx context.Context, employeeID string, req AdjustBalanceRequest) (BalanceResponse, error) {
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return BalanceResponse{}, ledgererrors.ErrInvalidEmployeeID
	}
	if req.Delta.IsZero() {
		return BalanceResponse{}, ledgererrors.ErrZeroAdjustment
	}

	lt, found, err := s.catalog.Lookup(ctx, req.LeaveTypeKey)
	if err != nil {
		return BalanceResponse{}, err
	}
	if !found {
		return BalanceResponse{}, ledgererrors.ErrUnknownLeaveType
	}
	if !lt.TracksBalance() {
		return BalanceResponse{}, ledgererrors.ErrUntrackedLeaveType
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		s.logger.Error("adjust balance begin tx failed", zap.Error(err))
		return BalanceResponse{}, err
	}
	defer tx.Rollback()

	after, err := s.post(ctx, s.repo.WithTx(tx), Posting{
		EmployeeID:   empID,
		LeaveTypeKey: lt.Key,
		Delta:        req.Delta,
	}, nil, fmt.Sprintf("manual adjustment: %s", req.Reason))
	if err != nil {
		s.logger.Error("adjust balance failed", zap.String("employee_id", employeeID), zap.Error(err))
		return BalanceResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		s.logger.Error("adjust balance commit failed", zap.Error(err))
		return BalanceResponse{}, err
	}

	s.logger.Info("balance adjusted",
		zap.String("employee_id", employeeID),
		zap.String("leave_type_key", lt.Key),
		zap.String("delta", req.Delta.String()),
	)

	return BalanceResponse{
		LeaveTypeKey:   lt.Key,
		Label:          lt.Label,
		Balance:        after,
		InitialBalance: lt.InitialBalance,
		Tracked:        true,
	}, nil
}
