package apperror

import (
	"errors"
	"fmt"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"
	"golang.org/x/text/cases"
	"golang.org/x/text/language"
)

// Init makes gin's validator name fields by their json tag, so messages
// refer to working_days rather than WorkingDays.
func Init() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(fld reflect.StructField) string {
		name, _, _ := strings.Cut(fld.Tag.Get("json"), ",")
		if name == "-" {
			return ""
		}
		return name
	})
}

// working_days -> Working Days
func formatFieldName(s string) string {
	s = strings.ReplaceAll(s, "_", " ")
	caser := cases.Title(language.English)
	return caser.String(s)
}

// MapValidationError turns a binding error into an INVALID_INPUT AppError
// describing the first failing field.
func MapValidationError(err error) *AppError {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) && len(errs) > 0 {
		e := errs[0]
		field := formatFieldName(e.Field())

		switch e.Tag() {
		case "required":
			return RequiredField(field)
		case "oneof":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be one of [%s]", field, e.Param()), http.StatusBadRequest)
		case "min", "gte":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be at least %s", field, e.Param()), http.StatusBadRequest)
		case "max", "lte":
			return New(CodeInvalidInput, fmt.Sprintf("%s must be at most %s", field, e.Param()), http.StatusBadRequest)
		default:
			return InvalidField(field)
		}
	}

	return New(
		CodeInvalidInput,
		"Invalid input",
		http.StatusBadRequest,
	)
}
