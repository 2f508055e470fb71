package ledger

import (
	"net/http"

	ledgererrors "go-leave/internal/ledger/errors"
	"go-leave/internal/middleware"
	"go-leave/internal/shared/apperror"
	"go-leave/internal/shared/response"

	"github.com/gin-gonic/gin"
	"go.uber.org/zap"
)

type Handler struct {
	service Service
	logger  *zap.Logger
}

func NewHandler(service Service, logger ...*zap.Logger) *Handler {
	l := zap.L().Named("ledger.handler")
	if len(logger) > 0 && logger[0] != nil {
		l = logger[0].Named("ledger.handler")
	}
	return &Handler{service: service, logger: l}
}

func (h *Handler) writeServiceError(c *gin.Context, err error) {
	httpErr := apperror.ToHTTP(err)
	h.logger.Warn("ledger request failed",
		zap.String("method", c.Request.Method),
		zap.String("path", c.FullPath()),
		zap.Int("status", httpErr.Status),
		zap.String("code", httpErr.Code),
	)
	response.Error(c, httpErr.Status, httpErr.Code, httpErr.Message, httpErr.Details)
}

func (h *Handler) GetBalances(c *gin.Context) {
	h.balances(c, c.Param("id"))
}

func (h *Handler) GetMyBalances(c *gin.Context) {
	employeeID := c.GetString(middleware.ContextEmployeeID)
	if employeeID == "" {
		h.writeServiceError(c, ledgererrors.ErrNoEmployeeProfile)
		return
	}
	h.balances(c, employeeID)
}

func (h *Handler) balances(c *gin.Context, employeeID string) {
	resp, err := h.service.GetBalances(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}

func (h *Handler) GetEntries(c *gin.Context) {
	h.entries(c, c.Param("id"))
}

func (h *Handler) GetMyEntries(c *gin.Context) {
	employeeID := c.GetString(middleware.ContextEmployeeID)
	if employeeID == "" {
		h.writeServiceError(c, ledgererrors.ErrNoEmployeeProfile)
		return
	}
	h.entries(c, employeeID)
}

func (h *Handler) entries(c *gin.Context, employeeID string) {
	resp, err := h.service.GetEntries(c.Request.Context(), employeeID)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	page, pageSize := response.PageParams(c)
	items, meta := response.Paginate(resp, page, pageSize)
	response.Success(c, http.StatusOK, items, &meta)
}

func (h *Handler) Adjust(c *gin.Context) {
	var req AdjustBalanceRequest
	if err := c.ShouldBindJSON(&req); err != nil {
		h.writeServiceError(c, apperror.MapValidationError(err))
		return
	}

	resp, err := h.service.Adjust(c.Request.Context(), c.Param("id"), req)
	if err != nil {
		h.writeServiceError(c, err)
		return
	}

	response.Success(c, http.StatusOK, resp, nil)
}
