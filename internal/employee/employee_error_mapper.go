package employee

import (
	"errors"
	"strings"

	employeeerrors "go-leave/internal/employee/errors"

	"github.com/jackc/pgx/v5/pgconn"
	"gorm.io/gorm"
)

var constraintErrors = map[string]error{
	"uq_employee_number": employeeerrors.ErrEmployeeNumberAlreadyExists,
	"uq_employee_email":  employeeerrors.ErrEmployeeAlreadyExists,
	"uq_employee_user":   employeeerrors.ErrUserAlreadyLinked,
}

func mapRepositoryError(err error) error {
	if err == nil {
		return nil
	}

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return employeeerrors.ErrEmployeeNotFound
	}

	var pgErr *pgconn.PgError
	if errors.As(err, &pgErr) && pgErr.Code == "23505" {
		if mapped, ok := constraintErrors[pgErr.ConstraintName]; ok {
			return mapped
		}
	}

	// gorm may surface the driver error as text only
	errMsg := strings.ToLower(err.Error())
	if strings.Contains(errMsg, "duplicate key value") {
		for constraint, mapped := range constraintErrors {
			if strings.Contains(errMsg, constraint) {
				return mapped
			}
		}
	}

	return err
}
