package ledgererrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidEmployeeID = apperror.New(
		apperror.CodeInvalidInput,
		"Invalid employee ID",
		http.StatusBadRequest,
	)
	ErrUnknownLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Unknown leave type",
		http.StatusBadRequest,
	)
	ErrUntrackedLeaveType = apperror.New(
		apperror.CodeInvalidInput,
		"Leave type does not track a balance",
		http.StatusBadRequest,
	)
	ErrZeroAdjustment = apperror.New(
		apperror.CodeInvalidInput,
		"Adjustment must not be zero",
		http.StatusBadRequest,
	)
	ErrNoEmployeeProfile = apperror.New(
		apperror.CodeNotFound,
		"No employee profile is linked to this account",
		http.StatusNotFound,
	)
)
