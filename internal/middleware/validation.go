package middleware

import (
	"errors"
	"net/http"
	"reflect"
	"strings"

	"github.com/gin-gonic/gin"
	"github.com/gin-gonic/gin/binding"
	"github.com/go-playground/validator/v10"

	"github.com/engimate/backend/internal/app/models/dto"
)

// RegisterJSONFieldNames makes binding errors report the JSON name of a field
// ("secondaryRank") instead of the Go name
func RegisterJSONFieldNames() {
	v, ok := binding.Validator.Engine().(*validator.Validate)
	if !ok {
		return
	}
	v.RegisterTagNameFunc(func(f reflect.StructField) string {
		name := strings.SplitN(f.Tag.Get("json"), ",", 2)[0]
		if name == "-" {
			return ""
		}
		if name == "" {
			name = f.Tag.Get("form")
		}
		return name
	})
}

// ValidationErrorDetail turns validator errors into a VAL_001 detail. The first
// failing field is reported as the detail's field, every failure in details.
func ValidationErrorDetail(errs validator.ValidationErrors) *dto.ErrorDetail {
	if len(errs) == 0 {
		return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed")
	}

	all := dto.NewValidationErrors()
	for _, e := range errs {
		all.AddError(e.Field(), formatValidationError(e))
	}

	first := all.Errors[0]
	return dto.NewErrorDetail(dto.ErrorCodeValidationFailed, first.Message).
		WithField(first.Field).
		WithDetails(all.Errors)
}

// HandleBindError answers a request whose body or query could not be bound
func HandleBindError(c *gin.Context, err error) {
	var errs validator.ValidationErrors
	if errors.As(err, &errs) {
		c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(ValidationErrorDetail(errs)))
		return
	}

	detail := dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Invalid request format").WithDetails(err.Error())
	c.AbortWithStatusJSON(http.StatusBadRequest, dto.NewErrorResponse(detail))
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "gte":
		return e.Field() + " must be at least " + e.Param()
	case "lte":
		return e.Field() + " must be at most " + e.Param()
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
