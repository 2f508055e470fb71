package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"strings"

	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

func formatFieldName(s string) string {
	// leave_type_key -> Leave Type Key
	s = strings.ReplaceAll(s, "_", " ")

	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns the first binding failure into an AppError.
// Field names come from json tags, see Init.
func MapValidationError(err error) error {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		humanReadableField := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(humanReadableField)
		case "datetime":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be a date in YYYY-MM-DD format", humanReadableField), http.StatusBadRequest)
		case "oneof":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be one of: %s", humanReadableField, strings.ReplaceAll(e.Param(), " ", ", ")), http.StatusBadRequest)
		default:
			return InvalidField(humanReadableField)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
