package leavetypeerrors

import (
	"net/http"

	"go-leave/internal/shared/apperror"
)

var (
	ErrInvalidKey = apperror.New(
		apperror.CodeInvalidInput,
		"leave type key must contain letters, digits, dashes or underscores",
		http.StatusBadRequest,
	)
	ErrLabelRequired = apperror.New(
		apperror.CodeInvalidInput,
		"leave type label is required",
		http.StatusBadRequest,
	)
	ErrNegativeInitialBalance = apperror.New(
		apperror.CodeInvalidInput,
		"initial_balance cannot be negative",
		http.StatusBadRequest,
	)
	ErrLeaveTypeNotFound = apperror.New(
		apperror.CodeNotFound,
		"custom leave type not found",
		http.StatusNotFound,
	)
)
