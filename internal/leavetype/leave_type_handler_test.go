package leavetype_test

import (
	"context"
	"net/http"
	"net/http/httptest"
	"strings"
	"testing"

	"go-leave/internal/leavetype"
	leavetypeerrors "go-leave/internal/leavetype/errors"

	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
)

type fakeLeaveTypeService struct {
	GetAllFn func(ctx context.Context) ([]leavetype.LeaveTypeResponse, error)
	UpsertFn func(ctx context.Context, key string, req leavetype.UpsertLeaveTypeRequest) (leavetype.LeaveTypeResponse, error)
	DeleteFn func(ctx context.Context, key string) error
}

func (f *fakeLeaveTypeService) GetAll(ctx context.Context) ([]leavetype.LeaveTypeResponse, error) {
	return f.GetAllFn(ctx)
}
func (f *fakeLeaveTypeService) Lookup(context.Context, string) (leavetype.LeaveType, bool, error) {
	return leavetype.LeaveType{}, false, nil
}
func (f *fakeLeaveTypeService) Upsert(ctx context.Context, key string, req leavetype.UpsertLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
	return f.UpsertFn(ctx, key, req)
}
func (f *fakeLeaveTypeService) Delete(ctx context.Context, key string) error {
	return f.DeleteFn(ctx, key)
}

func newRouter(h *leavetype.Handler) *gin.Engine {
	gin.SetMode(gin.TestMode)
	r := gin.New()
	r.GET("/leave-types", h.GetAll)
	r.PUT("/leave-types/:key", h.Upsert)
	r.DELETE("/leave-types/:key", h.Delete)
	return r
}

func TestHandler_GetAll(t *testing.T) {
	h := leavetype.NewHandler(&fakeLeaveTypeService{
		GetAllFn: func(context.Context) ([]leavetype.LeaveTypeResponse, error) {
			return []leavetype.LeaveTypeResponse{{Key: "vacation", Label: "Vacation", InitialBalance: decimal.NewFromInt(15)}}, nil
		},
	})

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodGet, "/leave-types", nil))

	assert.Equal(t, http.StatusOK, w.Code)
	assert.Contains(t, w.Body.String(), `"key":"vacation"`)
}

func TestHandler_Upsert(t *testing.T) {
	t.Run("success", func(t *testing.T) {
		h := leavetype.NewHandler(&fakeLeaveTypeService{
			UpsertFn: func(_ context.Context, key string, req leavetype.UpsertLeaveTypeRequest) (leavetype.LeaveTypeResponse, error) {
				assert.Equal(t, "study", key)
				assert.True(t, req.InitialBalance.Equal(decimal.RequireFromString("2.5")))
				return leavetype.LeaveTypeResponse{Key: key, Label: req.Label}, nil
			},
		})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/leave-types/study", strings.NewReader(`{"label":"Study","initial_balance":2.5}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusOK, w.Code)
	})

	t.Run("missing label", func(t *testing.T) {
		h := leavetype.NewHandler(&fakeLeaveTypeService{})

		w := httptest.NewRecorder()
		req := httptest.NewRequest(http.MethodPut, "/leave-types/study", strings.NewReader(`{"initial_balance":1}`))
		req.Header.Set("Content-Type", "application/json")
		newRouter(h).ServeHTTP(w, req)

		assert.Equal(t, http.StatusBadRequest, w.Code)
	})
}

func TestHandler_Delete(t *testing.T) {
	h := leavetype.NewHandler(&fakeLeaveTypeService{
		DeleteFn: func(context.Context, string) error {
			return leavetypeerrors.ErrLeaveTypeNotFound
		},
	})

	w := httptest.NewRecorder()
	newRouter(h).ServeHTTP(w, httptest.NewRequest(http.MethodDelete, "/leave-types/ghost", nil))

	assert.Equal(t, http.StatusNotFound, w.Code)
}
