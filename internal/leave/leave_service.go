package leave

import (
	"context"
	"database/sql"
	"errors"
	"fmt"
	"strings"
	"time"

	"go-leave/internal/employee"
	employeeerrors "go-leave/internal/employee/errors"
	"go-leave/internal/events"
	leaveerrors "go-leave/internal/leave/errors"
	"go-leave/internal/leavetype"
	"go-leave/internal/ledger"
	"go-leave/internal/messaging/kafka"
	"go-leave/internal/shared/contextutil"
	"go-leave/internal/shared/counter"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"
	"go.uber.org/zap"
	"gorm.io/gorm"
)

// Ledger is the part of ledger.Service the workflow needs.
type Ledger interface {
	Reconcile(ctx context.Context, tx *sql.Tx, r ledger.Reconciliation) (ledger.Deduction, error)
}

type TypeCatalog interface {
	Lookup(ctx context.Context, key string) (leavetype.LeaveType, bool, error)
}

type Directory interface {
	GetByID(ctx context.Context, id string) (employee.EmployeeResponse, error)
}

//go:generate mockgen -source=leave_service.go -destination=mock/leave_service_mock.go -package=mock
type Service interface {
	Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error)
	Submit(ctx context.Context, actorID, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error)
	GetAll(ctx context.Context, filter Filter) ([]LeaveResponse, error)
	GetByID(ctx context.Context, id string) (LeaveResponse, error)
	ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error)
	Update(ctx context.Context, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error)
	ChangeStatus(ctx context.Context, actorID, id string, req ChangeStatusRequest) (LeaveResponse, error)
	Cancel(ctx context.Context, actorID, employeeID, id string) (LeaveResponse, error)
	Delete(ctx context.Context, actorID, id string) error
}

type service struct {
	db        *sql.DB
	repo      Repository
	counter   counter.Repository
	ledger    Ledger
	catalog   TypeCatalog
	employees Directory
	outbox    kafka.OutboxRepository
	logger    *zap.Logger
}

func NewService(
	db *sql.DB,
	repo Repository,
	counter counter.Repository,
	ledger Ledger,
	catalog TypeCatalog,
	employees Directory,
	outboxRepo kafka.OutboxRepository,
	logger ...*zap.Logger,
) Service {
	l := zap.L().Named("leave.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leave.service")
	}
	return &service{
		db:        db,
		repo:      repo,
		counter:   counter,
		ledger:    ledger,
		catalog:   catalog,
		employees: employees,
		outbox:    outboxRepo,
		logger:    l,
	}
}

// draft holds a validated request body before it is applied to a row.
type draft struct {
	leaveTypeKey string
	start        time.Time
	end          time.Time
	duration     string
	reason       string
}

func (s *service) Create(ctx context.Context, actorID string, req CreateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("create leave requested",
		zap.String("actor_id", actorID),
		zap.String("employee_id", req.EmployeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	employeeID, err := uuid.Parse(req.EmployeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	status := req.Status
	if status == "" {
		status = StatusPending
	}
	if !IsValidStatus(status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	d, err := s.validate(ctx, req.LeaveTypeKey, req.StartDate, req.EndDate, req.Duration, req.Reason, false)
	if err != nil {
		log.Warn("create leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if _, err := s.employees.GetByID(ctx, req.EmployeeID); err != nil {
		log.Warn("create leave employee lookup failed", zap.String("employee_id", req.EmployeeID), zap.Error(err))
		return LeaveResponse{}, err
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: employeeID,
		Status:     status,
		AdminNotes: req.AdminNotes,
		CreatedBy:  actor,
	}
	d.applyTo(l)
	if status != StatusPending {
		now := time.Now().UTC()
		l.DecidedBy = &actor
		l.DecidedAt = &now
	}

	return s.insert(ctx, l, actorID)
}

func (s *service) Submit(ctx context.Context, actorID, employeeID string, req SubmitLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("submit leave requested",
		zap.String("employee_id", employeeID),
		zap.String("start_date", req.StartDate),
		zap.String("end_date", req.EndDate),
	)

	if employeeID == "" {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}
	empID, err := uuid.Parse(employeeID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidEmployeeID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	d, err := s.validate(ctx, req.LeaveTypeKey, req.StartDate, req.EndDate, req.Duration, req.Reason, true)
	if err != nil {
		log.Warn("submit leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	// the token's employee claim may outlive the record or its link
	emp, err := s.employees.GetByID(ctx, employeeID)
	if err != nil {
		if errors.Is(err, employeeerrors.ErrEmployeeNotFound) {
			log.Warn("submit leave employee not found", zap.String("employee_id", employeeID))
			return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
		}
		return LeaveResponse{}, err
	}
	if emp.UserID != actorID {
		log.Warn("submit leave employee not linked to actor",
			zap.String("employee_id", employeeID),
			zap.String("actor_id", actorID),
		)
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}

	l := &LeaveRequest{
		ID:         uuid.New(),
		EmployeeID: empID,
		Status:     StatusPending,
		CreatedBy:  actor,
	}
	d.applyTo(l)

	return s.insert(ctx, l, actorID)
}

func (s *service) insert(ctx context.Context, l *LeaveRequest, actorID string) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("create leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	if l.IsActive() {
		if err := s.checkOverlap(ctx, qtx, l.EmployeeID, l.StartDate, l.EndDate, nil); err != nil {
			return LeaveResponse{}, err
		}
	}

	seq, err := s.counter.WithTx(tx).GetNextValue(ctx, counter.TypeLeaveRequest)
	if err != nil {
		log.Error("create leave generate title failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	l.Title = fmt.Sprintf("LR%08d", seq)

	if err := s.reconcile(ctx, tx, l, "leave "+l.Title+" created as "+l.Status); err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.Create(ctx, l); err != nil {
		log.Error("create leave persist failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChange(ctx, tx, l, "", actorID); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("create leave commit failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("create leave success",
		zap.String("leave_id", l.ID.String()),
		zap.String("title", l.Title),
		zap.String("employee_id", l.EmployeeID.String()),
		zap.String("status", l.Status),
	)

	return mapToResponse(*l), nil
}

func (s *service) GetAll(ctx context.Context, filter Filter) ([]LeaveResponse, error) {
	if filter.EmployeeID != "" {
		if _, err := uuid.Parse(filter.EmployeeID); err != nil {
			return nil, leaveerrors.ErrInvalidEmployeeID
		}
	}
	if filter.Status != "" && !IsValidStatus(filter.Status) {
		return nil, leaveerrors.ErrInvalidStatus
	}

	leaves, err := s.repo.FindAll(ctx, filter)
	if err != nil {
		s.logger.Error("get all leaves failed", zap.Error(err))
		return nil, err
	}
	return mapToListResponse(leaves), nil
}

func (s *service) GetByID(ctx context.Context, id string) (LeaveResponse, error) {
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	l, err := s.repo.FindByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapNotFound(err)
	}
	return mapToResponse(*l), nil
}

func (s *service) ListMine(ctx context.Context, employeeID string) ([]LeaveResponse, error) {
	if employeeID == "" {
		return nil, leaveerrors.ErrNoEmployeeProfile
	}
	return s.GetAll(ctx, Filter{EmployeeID: employeeID})
}

func (s *service) Update(ctx context.Context, actorID, id string, req UpdateLeaveRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("update leave requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidStatus(req.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}
	d, err := s.validate(ctx, req.LeaveTypeKey, req.StartDate, req.EndDate, req.Duration, req.Reason, false)
	if err != nil {
		log.Warn("update leave validation failed", zap.Error(err))
		return LeaveResponse{}, err
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("update leave begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.LockByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapNotFound(err)
	}

	oldStatus := l.Status
	d.applyTo(l)
	l.AdminNotes = req.AdminNotes
	if req.Status != oldStatus {
		s.decide(l, req.Status, actor)
	}

	if l.IsActive() {
		if err := s.checkOverlap(ctx, qtx, l.EmployeeID, l.StartDate, l.EndDate, &l.ID); err != nil {
			return LeaveResponse{}, err
		}
	}
	if err := s.reconcile(ctx, tx, l, "leave "+l.Title+" updated"); err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.Update(ctx, l); err != nil {
		log.Error("update leave persist failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	if oldStatus != l.Status {
		if err := s.enqueueStatusChange(ctx, tx, l, oldStatus, actorID); err != nil {
			return LeaveResponse{}, err
		}
	}

	if err := tx.Commit(); err != nil {
		log.Error("update leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("update leave success",
		zap.String("leave_id", id),
		zap.String("status", l.Status),
		zap.String("deducted_days", l.DeductedDays.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) ChangeStatus(ctx context.Context, actorID, id string, req ChangeStatusRequest) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)
	log.Debug("change leave status requested",
		zap.String("leave_id", id),
		zap.String("actor_id", actorID),
		zap.String("target_status", req.Status),
	)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}
	if !IsValidStatus(req.Status) {
		return LeaveResponse{}, leaveerrors.ErrInvalidStatus
	}

	return s.transition(ctx, leaveID, actor, req.Status, req.AdminNotes, nil)
}

func (s *service) Cancel(ctx context.Context, actorID, employeeID, id string) (LeaveResponse, error) {
	if employeeID == "" {
		return LeaveResponse{}, leaveerrors.ErrNoEmployeeProfile
	}
	leaveID, err := uuid.Parse(id)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidLeaveID
	}
	actor, err := uuid.Parse(actorID)
	if err != nil {
		return LeaveResponse{}, leaveerrors.ErrInvalidActorID
	}

	guard := func(l *LeaveRequest) error {
		if l.EmployeeID.String() != employeeID {
			return leaveerrors.ErrNotOwner
		}
		if l.Status != StatusPending {
			return leaveerrors.ErrInvalidStatusTransition
		}
		return nil
	}
	return s.transition(ctx, leaveID, actor, StatusCancelled, nil, guard)
}

// transition moves a request to target inside one transaction. Moving to
// the current status returns the request unchanged.
func (s *service) transition(
	ctx context.Context,
	leaveID, actor uuid.UUID,
	target string,
	notes *string,
	guard func(*LeaveRequest) error,
) (LeaveResponse, error) {
	log := contextutil.GetLogger(ctx, s.logger)

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("change leave status begin tx failed", zap.Error(err))
		return LeaveResponse{}, err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.LockByID(ctx, leaveID)
	if err != nil {
		return LeaveResponse{}, mapNotFound(err)
	}
	if guard != nil {
		if err := guard(l); err != nil {
			log.Warn("change leave status rejected",
				zap.String("leave_id", leaveID.String()),
				zap.String("status", l.Status),
				zap.Error(err),
			)
			return LeaveResponse{}, err
		}
	}
	if l.Status == target {
		if notes == nil || *notes == l.AdminNotes {
			log.Debug("change leave status no-op", zap.String("leave_id", leaveID.String()))
			return mapToResponse(*l), nil
		}
		// status unchanged: only the notes move, no ledger work or event
		l.AdminNotes = *notes
		if err := qtx.Update(ctx, l); err != nil {
			log.Error("update leave notes failed", zap.String("leave_id", leaveID.String()), zap.Error(err))
			return LeaveResponse{}, err
		}
		if err := tx.Commit(); err != nil {
			log.Error("update leave notes commit failed", zap.String("leave_id", leaveID.String()), zap.Error(err))
			return LeaveResponse{}, err
		}
		log.Info("update leave notes success", zap.String("leave_id", leaveID.String()))
		return mapToResponse(*l), nil
	}

	oldStatus := l.Status
	s.decide(l, target, actor)
	if notes != nil {
		l.AdminNotes = *notes
	}

	if l.IsActive() && !isActiveStatus(oldStatus) {
		if err := s.checkOverlap(ctx, qtx, l.EmployeeID, l.StartDate, l.EndDate, &l.ID); err != nil {
			return LeaveResponse{}, err
		}
	}
	if err := s.reconcile(ctx, tx, l, "leave "+l.Title+" "+strings.ToLower(oldStatus)+" -> "+strings.ToLower(target)); err != nil {
		return LeaveResponse{}, err
	}
	if err := qtx.Update(ctx, l); err != nil {
		log.Error("change leave status persist failed", zap.String("leave_id", leaveID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	if err := s.enqueueStatusChange(ctx, tx, l, oldStatus, actor.String()); err != nil {
		return LeaveResponse{}, err
	}

	if err := tx.Commit(); err != nil {
		log.Error("change leave status commit failed", zap.String("leave_id", leaveID.String()), zap.Error(err))
		return LeaveResponse{}, err
	}
	log.Info("change leave status success",
		zap.String("leave_id", leaveID.String()),
		zap.String("from_status", oldStatus),
		zap.String("to_status", target),
		zap.String("deducted_days", l.DeductedDays.String()),
	)

	return mapToResponse(*l), nil
}

func (s *service) Delete(ctx context.Context, actorID, id string) error {
	log := contextutil.GetLogger(ctx, s.logger)

	leaveID, err := uuid.Parse(id)
	if err != nil {
		return leaveerrors.ErrInvalidLeaveID
	}

	tx, err := s.db.BeginTx(ctx, nil)
	if err != nil {
		log.Error("delete leave begin tx failed", zap.Error(err))
		return err
	}
	defer tx.Rollback()

	qtx := s.repo.WithTx(tx)
	l, err := qtx.LockByID(ctx, leaveID)
	if err != nil {
		return mapNotFound(err)
	}

	// refund whatever is still held before the row disappears
	if !l.DeductedDays.IsZero() {
		applied := ledger.Deduction{EmployeeID: l.EmployeeID, LeaveTypeKey: l.DeductedTypeKey, Days: l.DeductedDays}
		if _, err := s.ledger.Reconcile(ctx, tx, ledger.Reconciliation{
			LeaveRequestID: l.ID,
			Applied:        applied,
			Reason:         "leave " + l.Title + " deleted",
		}); err != nil {
			log.Error("delete leave refund failed", zap.String("leave_id", id), zap.Error(err))
			return err
		}
		l.DeductedDays = decimal.Zero
		l.DeductedTypeKey = ""
		if err := qtx.Update(ctx, l); err != nil {
			return err
		}
	}

	if err := qtx.Delete(ctx, leaveID); err != nil {
		return mapNotFound(err)
	}
	oldStatus := l.Status
	l.Status = ""
	if err := s.enqueueStatusChange(ctx, tx, l, oldStatus, actorID); err != nil {
		return err
	}

	if err := tx.Commit(); err != nil {
		log.Error("delete leave commit failed", zap.String("leave_id", id), zap.Error(err))
		return err
	}
	log.Info("delete leave success", zap.String("leave_id", id))
	return nil
}

func (s *service) validate(ctx context.Context, typeKey, startRaw, endRaw, duration, reason string, selfService bool) (draft, error) {
	start, err := ParseDate(startRaw)
	if err != nil {
		return draft{}, err
	}
	end, err := ParseDate(endRaw)
	if err != nil {
		return draft{}, err
	}
	if end.Before(start) {
		return draft{}, leaveerrors.ErrInvalidDateRange
	}
	if selfService && civilDate(start).Before(civilDate(time.Now())) {
		return draft{}, leaveerrors.ErrStartDateInPast
	}
	if duration == "" {
		duration = DurationWholeDay
	}
	if !IsValidDuration(duration) {
		return draft{}, leaveerrors.ErrInvalidDuration
	}
	if CalculateDays(start, end, DurationWholeDay).GreaterThan(decimal.NewFromInt(MaxLeaveDays)) {
		return draft{}, leaveerrors.ErrRangeTooLong
	}

	key := strings.ToLower(strings.TrimSpace(typeKey))
	if _, found, err := s.catalog.Lookup(ctx, key); err != nil {
		return draft{}, err
	} else if !found {
		return draft{}, leaveerrors.ErrUnknownLeaveType
	}

	return draft{
		leaveTypeKey: key,
		start:        start,
		end:          end,
		duration:     duration,
		reason:       strings.TrimSpace(reason),
	}, nil
}

func (d draft) applyTo(l *LeaveRequest) {
	l.LeaveTypeKey = d.leaveTypeKey
	l.StartDate = d.start
	l.EndDate = d.end
	l.Duration = d.duration
	l.Reason = d.reason
}

func (s *service) decide(l *LeaveRequest, target string, actor uuid.UUID) {
	l.Status = target
	if target == StatusPending {
		l.DecidedBy = nil
		l.DecidedAt = nil
		return
	}
	now := time.Now().UTC()
	l.DecidedBy = &actor
	l.DecidedAt = &now
}

func (s *service) checkOverlap(ctx context.Context, repo Repository, employeeID uuid.UUID, start, end time.Time, excludeID *uuid.UUID) error {
	if err := repo.LockEmployee(ctx, employeeID); err != nil {
		s.logger.Error("leave overlap lock failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return err
	}
	existing, err := repo.FindActiveByEmployee(ctx, employeeID, excludeID)
	if err != nil {
		s.logger.Error("leave overlap lookup failed", zap.String("employee_id", employeeID.String()), zap.Error(err))
		return err
	}

	conflict := FindOverlap(existing, start, end)
	if conflict == nil {
		return nil
	}
	contextutil.GetLogger(ctx, s.logger).Warn("leave overlap detected",
		zap.String("employee_id", employeeID.String()),
		zap.String("conflict_id", conflict.ID.String()),
		zap.String("start_date", start.Format(DateLayout)),
		zap.String("end_date", end.Format(DateLayout)),
	)
	return leaveerrors.ErrLeaveOverlap.WithDetails(OverlapDetails{
		ID:        conflict.ID.String(),
		Title:     conflict.Title,
		Status:    conflict.Status,
		StartDate: conflict.StartDate.Format(DateLayout),
		EndDate:   conflict.EndDate.Format(DateLayout),
	})
}

// reconcile asks the ledger to bring the balance in line with the
// request's current state and records what is now deducted.
func (s *service) reconcile(ctx context.Context, tx *sql.Tx, l *LeaveRequest, reason string) error {
	applied := ledger.Deduction{
		EmployeeID:   l.EmployeeID,
		LeaveTypeKey: l.DeductedTypeKey,
		Days:         l.DeductedDays,
	}
	requested := ledger.Deduction{
		EmployeeID:   l.EmployeeID,
		LeaveTypeKey: l.LeaveTypeKey,
		Days:         CalculateDays(l.StartDate, l.EndDate, l.Duration),
	}

	held, err := s.ledger.Reconcile(ctx, tx, ledger.Reconciliation{
		LeaveRequestID: l.ID,
		Approved:       l.Status == StatusApproved,
		Applied:        applied,
		Requested:      requested,
		Reason:         reason,
	})
	if err != nil {
		s.logger.Error("leave ledger reconcile failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}

	l.DeductedDays = held.Days
	l.DeductedTypeKey = ""
	if !held.IsZero() {
		l.DeductedTypeKey = held.LeaveTypeKey
	}
	return nil
}

func (s *service) enqueueStatusChange(ctx context.Context, tx *sql.Tx, l *LeaveRequest, oldStatus, actorID string) error {
	if s.outbox == nil {
		return nil
	}

	rid := contextutil.GetRequestID(ctx)
	event, err := kafka.NewOutboxEvent(rid, "leave_request", l.ID.String(),
		events.EventLeaveStatusChanged, events.LeaveStatusTopic,
		events.LeaveStatusChangedEvent{
			EventType:      events.EventLeaveStatusChanged,
			RequestID:      rid,
			LeaveRequestID: l.ID.String(),
			Title:          l.Title,
			EmployeeID:     l.EmployeeID.String(),
			LeaveTypeKey:   l.LeaveTypeKey,
			OldStatus:      oldStatus,
			NewStatus:      l.Status,
			DeductedDays:   l.DeductedDays,
			ActorID:        actorID,
			OccurredAt:     time.Now().UTC(),
		})
	if err != nil {
		s.logger.Error("marshal leave event failed", zap.Error(err))
		return err
	}
	if err := s.outbox.WithTx(tx).Create(ctx, event); err != nil {
		s.logger.Error("leave outbox persist failed", zap.String("leave_id", l.ID.String()), zap.Error(err))
		return err
	}
	return nil
}

func isActiveStatus(status string) bool {
	return status == StatusPending || status == StatusApproved
}

func mapNotFound(err error) error {
	if errors.Is(err, gorm.ErrRecordNotFound) {
		return leaveerrors.ErrLeaveNotFound
	}
	return err
}

func mapToResponse(l LeaveRequest) LeaveResponse {
	resp := LeaveResponse{
		ID:              l.ID.String(),
		Title:           l.Title,
		EmployeeID:      l.EmployeeID.String(),
		LeaveTypeKey:    l.LeaveTypeKey,
		StartDate:       l.StartDate.Format(DateLayout),
		EndDate:         l.EndDate.Format(DateLayout),
		Duration:        l.Duration,
		Days:            CalculateDays(l.StartDate, l.EndDate, l.Duration),
		Reason:          l.Reason,
		Status:          l.Status,
		AdminNotes:      l.AdminNotes,
		DeductedDays:    l.DeductedDays,
		DeductedTypeKey: l.DeductedTypeKey,
		CreatedBy:       l.CreatedBy.String(),
		CreatedAt:       l.CreatedAt.Format(time.RFC3339),
	}
	if l.DecidedBy != nil {
		v := l.DecidedBy.String()
		resp.DecidedBy = &v
	}
	if l.DecidedAt != nil {
		v := l.DecidedAt.Format(time.RFC3339)
		resp.DecidedAt = &v
	}
	return resp
}

func mapToListResponse(leaves []LeaveRequest) []LeaveResponse {
	resp := make([]LeaveResponse, len(leaves))
	for i, l := range leaves {
		resp[i] = mapToResponse(l)
	}
	return resp
}
