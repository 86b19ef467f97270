package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"

	"github.com/engimate/backend/internal/app/models/dto"
	"github.com/engimate/backend/internal/pkg/apperrors"
	"github.com/engimate/backend/internal/pkg/auth"
	"github.com/engimate/backend/internal/pkg/logger"
)

// StatusClientClosedRequest is reported when the client went away mid-request
const StatusClientClosedRequest = 499

// HandleAPIError maps an error to its HTTP status and error envelope and aborts the request.
// Store and internal errors are logged with their cause and rendered without it.
func HandleAPIError(c *gin.Context, err error) {
	status, detail := mapError(err)

	event := logger.Ctx(c.Request.Context()).Debug()
	if status >= http.StatusInternalServerError {
		event = logger.Ctx(c.Request.Context()).Error()
	}
	event.Err(err).Int("status", status).Str("code", string(detail.Code)).Msg("Request failed")

	_ = c.Error(err)
	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

func mapError(err error) (int, *dto.ErrorDetail) {
	var inputErr *apperrors.InputError
	var validationErrs validator.ValidationErrors

	switch {
	case errors.As(err, &inputErr):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, inputErr.Message).
			WithField(inputErr.Field)
	case errors.As(err, &validationErrs):
		return http.StatusBadRequest, ValidationErrorDetail(validationErrs)
	case apperrors.Is(err, apperrors.ErrValidationFailed, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, err.Error())
	case errors.Is(err, apperrors.ErrStoreUnavailable):
		return http.StatusServiceUnavailable, dto.NewErrorDetail(dto.ErrorCodeDatabaseError, "database error").WithSeverity(dto.ErrorSeverityCritical)
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, err.Error()).WithSeverity(dto.ErrorSeverityWarning)
	case apperrors.Is(err, apperrors.ErrTokenExpired, auth.ErrExpiredToken):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeExpiredToken, "Token has expired")
	case apperrors.Is(err, apperrors.ErrTokenInvalid, auth.ErrInvalidToken, auth.ErrInvalidFormat):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeInvalidToken, "Invalid token")
	case errors.Is(err, auth.ErrNotVerified):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, "Identity not verified")
	case errors.Is(err, apperrors.ErrUnauthorized):
		return http.StatusUnauthorized, dto.NewErrorDetail(dto.ErrorCodeUnauthorized, "Authentication required")
	case errors.Is(err, context.Canceled):
		return StatusClientClosedRequest, dto.NewErrorDetail(dto.ErrorCodeRequestAborted, "Request cancelled").WithSeverity(dto.ErrorSeverityInfo)
	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")
	}
}

// Recovery turns a panic into a 500 envelope
func Recovery() gin.HandlerFunc {
	return gin.CustomRecovery(func(c *gin.Context, recovered any) {
		logger.Ctx(c.Request.Context()).Error().Interface("panic", recovered).Msg("Recovered from panic")
		c.AbortWithStatusJSON(http.StatusInternalServerError,
			dto.NewErrorResponse(dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error")))
	})
}

// NoRoute renders unknown paths with the standard envelope
func NoRoute(c *gin.Context) {
	c.JSON(http.StatusNotFound, dto.NewErrorResponse(
		dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Route not found").WithDetails(c.Request.URL.Path)))
}
