package leavetype

import (
	"context"
	"encoding/json"
	"errors"
	"sort"
	"strings"
	"time"

	leavetypeerrors "go-leave/internal/leavetype/errors"

	"github.com/redis/go-redis/v9"
	"go.uber.org/zap"
	"golang.org/x/sync/singleflight"
	"gorm.io/gorm"
)

const (
	CatalogCacheKey = "leave_types:catalog"
	catalogCacheTTL = time.Hour
)

//go:generate mockgen -source=leave_type_service.go -destination=mock/leave_type_service_mock.go -package=mock
type Service interface {
	GetAll(ctx context.Context) ([]LeaveTypeResponse, error)
	Lookup(ctx context.Context, key string) (LeaveType, bool, error)
	Upsert(ctx context.Context, key string, req UpsertLeaveTypeRequest) (LeaveTypeResponse, error)
	Delete(ctx context.Context, key string) error
}

type service struct {
	repo   Repository
	rdb    *redis.Client
	sf     *singleflight.Group
	logger *zap.Logger
}

func NewService(repo Repository, rdb *redis.Client, logger ...*zap.Logger) Service {
	l := zap.L().Named("leavetype.service")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("leavetype.service")
	}
	return &service{
		repo:   repo,
		rdb:    rdb,
		sf:     &singleflight.Group{},
		logger: l,
	}
}

func (s *service) GetAll(ctx context.Context) ([]LeaveTypeResponse, error) {
	if s.rdb != nil {
		if cached, err := s.rdb.Get(ctx, CatalogCacheKey).Result(); err == nil {
			var resp []LeaveTypeResponse
			if json.Unmarshal([]byte(cached), &resp) == nil {
				return resp, nil
			}
		}
	}

	v, err, _ := s.sf.Do(CatalogCacheKey, func() (interface{}, error) {
		custom, err := s.repo.FindAll(ctx)
		if err != nil {
			return nil, err
		}

		resp := mapToListResponse(MergeCatalog(DefaultLeaveTypes(), custom))

		if s.rdb != nil {
			if jsonData, err := json.Marshal(resp); err == nil {
				if err := s.rdb.Set(ctx, CatalogCacheKey, jsonData, catalogCacheTTL).Err(); err != nil {
					s.logger.Warn("cache leave type catalog failed", zap.Error(err))
				}
			}
		}

		return resp, nil
	})
	if err != nil {
		s.logger.Error("load leave type catalog failed", zap.Error(err))
		return nil, err
	}

	return v.([]LeaveTypeResponse), nil
}

func (s *service) Lookup(ctx context.Context, key string) (LeaveType, bool, error) {
	catalog, err := s.GetAll(ctx)
	if err != nil {
		return LeaveType{}, false, err
	}
	for _, t := range catalog {
		if t.Key == key {
			return LeaveType{
				Key:            t.Key,
				Label:          t.Label,
				InitialBalance: t.InitialBalance,
				IsDefault:      t.IsDefault,
			}, true, nil
		}
	}
	return LeaveType{}, false, nil
}

func (s *service) Upsert(ctx context.Context, key string, req UpsertLeaveTypeRequest) (LeaveTypeResponse, error) {
	s.logger.Debug("upsert leave type requested", zap.String("key", key))

	sanitized := SanitizeKey(key)
	if sanitized == "" {
		return LeaveTypeResponse{}, leavetypeerrors.ErrInvalidKey
	}
	label := strings.TrimSpace(req.Label)
	if label == "" {
		return LeaveTypeResponse{}, leavetypeerrors.ErrLabelRequired
	}
	if req.InitialBalance.IsNegative() {
		return LeaveTypeResponse{}, leavetypeerrors.ErrNegativeInitialBalance
	}

	lt := &LeaveType{
		Key:            sanitized,
		Label:          label,
		InitialBalance: req.InitialBalance,
	}
	if err := s.repo.Save(ctx, lt); err != nil {
		s.logger.Error("upsert leave type persist failed", zap.String("key", sanitized), zap.Error(err))
		return LeaveTypeResponse{}, err
	}

	s.invalidateCache(ctx)
	s.logger.Info("upsert leave type success", zap.String("key", sanitized))

	return mapToResponse(*lt), nil
}

func (s *service) Delete(ctx context.Context, key string) error {
	sanitized := SanitizeKey(key)
	if _, err := s.repo.FindByKey(ctx, sanitized); err != nil {
		if errors.Is(err, gorm.ErrRecordNotFound) {
			return leavetypeerrors.ErrLeaveTypeNotFound
		}
		return err
	}

	if err := s.repo.Delete(ctx, sanitized); err != nil {
		s.logger.Error("delete leave type failed", zap.String("key", sanitized), zap.Error(err))
		return err
	}

	s.invalidateCache(ctx)
	s.logger.Info("delete leave type success", zap.String("key", sanitized))
	return nil
}

func (s *service) invalidateCache(ctx context.Context) {
	if s.rdb == nil {
		return
	}
	if err := s.rdb.Del(ctx, CatalogCacheKey).Err(); err != nil {
		s.logger.Error("failed to invalidate leave type catalog cache",
			zap.Error(err),
			zap.String("key", CatalogCacheKey),
		)
	}
}

// MergeCatalog overlays custom entries on the defaults; a custom entry with
// a default key replaces it. The result is sorted by key.
func MergeCatalog(defaults, custom []LeaveType) []LeaveType {
	byKey := make(map[string]LeaveType, len(defaults)+len(custom))
	for _, t := range defaults {
		byKey[t.Key] = t
	}
	for _, t := range custom {
		t.IsDefault = false
		byKey[t.Key] = t
	}

	merged := make([]LeaveType, 0, len(byKey))
	for _, t := range byKey {
		merged = append(merged, t)
	}
	sort.Slice(merged, func(i, j int) bool {
		return merged[i].Key < merged[j].Key
	})
	return merged
}

// SanitizeKey lowercases key and drops everything except a-z, 0-9, '_' and '-'.
func SanitizeKey(key string) string {
	return strings.Map(func(r rune) rune {
		switch {
		case r >= 'a' && r <= 'z', r >= '0' && r <= '9', r == '_', r == '-':
			return r
		case r >= 'A' && r <= 'Z':
			return r + ('a' - 'A')
		default:
			return -1
		}
	}, strings.TrimSpace(key))
}

func mapToResponse(t LeaveType) LeaveTypeResponse {
	return LeaveTypeResponse{
		Key:            t.Key,
		Label:          t.Label,
		InitialBalance: t.InitialBalance,
		IsDefault:      t.IsDefault,
		TracksBalance:  t.TracksBalance(),
	}
}

func mapToListResponse(types []LeaveType) []LeaveTypeResponse {
	resp := make([]LeaveTypeResponse, len(types))
	for i, t := range types {
		resp[i] = mapToResponse(t)
	}
	return resp
}
