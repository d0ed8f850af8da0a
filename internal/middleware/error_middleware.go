package middleware

import (
	"context"
	"errors"
	"net/http"

	"github.com/gin-gonic/gin"
	"github.com/rs/zerolog"
	"github.com/yigit/edutech/internal/app/models/dto"
	"github.com/yigit/edutech/internal/pkg/apperrors"
)

// HandleAPIError maps service errors onto HTTP responses
func HandleAPIError(c *gin.Context, err error) {
	status, detail := describeError(err)

	if status >= http.StatusInternalServerError {
		zerolog.Ctx(c.Request.Context()).Error().Err(err).Str("path", c.FullPath()).Msg("Request failed")
	} else {
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && len(custom.Details) > 0 {
			detail.WithDetails(custom.Details)
		}
	}

	c.AbortWithStatusJSON(status, dto.NewErrorResponse(detail))
}

// describeError picks the status code and error detail for err
func describeError(err error) (int, *dto.ErrorDetail) {
	message := func(fallback string) string {
		var custom *apperrors.CustomError
		if errors.As(err, &custom) && custom.Message != "" {
			return custom.Message
		}
		return fallback
	}

	switch {
	case errors.Is(err, apperrors.ErrInsufficientBalance):
		return http.StatusPaymentRequired, dto.NewErrorDetail(dto.ErrorCodeInsufficientBalance, message("Insufficient balance"))
	case errors.Is(err, apperrors.ErrInvalidAmount):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeInvalidAmount, "Invalid amount").WithField("amount")
	case errors.Is(err, apperrors.ErrUnknownPlan):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeUnknownPlan, "Unknown subscription plan").WithField("plan")
	case errors.Is(err, apperrors.ErrSubscriptionMissing):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeSubscriptionNotFound, "No subscription found")
	case errors.Is(err, context.Canceled), errors.Is(err, context.DeadlineExceeded):
		return http.StatusRequestTimeout, dto.NewErrorDetail(dto.ErrorCodePaymentCancelled, "Payment processing was cancelled").
			WithSeverity(dto.ErrorSeverityWarning)

	case errors.Is(err, apperrors.ErrUserNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "User not found")
	case errors.Is(err, apperrors.ErrCourseNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, "Course not found")
	case errors.Is(err, apperrors.ErrResourceNotFound):
		return http.StatusNotFound, dto.NewErrorDetail(dto.ErrorCodeResourceNotFound, message("Resource not found"))

	case errors.Is(err, apperrors.ErrEmailAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Email already exists").WithField("email")
	case errors.Is(err, apperrors.ErrCourseAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeResourceAlreadyExists, "Course already exists").WithField("title")
	case apperrors.Is(err, apperrors.ErrConflict, apperrors.ErrResourceAlreadyExists):
		return http.StatusConflict, dto.NewErrorDetail(dto.ErrorCodeConflict, message("Conflict"))

	case errors.Is(err, apperrors.ErrPermissionDenied):
		return http.StatusForbidden, dto.NewErrorDetail(dto.ErrorCodeForbidden, message("Permission denied"))

	case errors.Is(err, apperrors.ErrValidationFailed):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeValidationFailed, "Validation failed").WithDetails(err.Error())
	case errors.Is(err, apperrors.ErrBadRequest):
		return http.StatusBadRequest, dto.NewErrorDetail(dto.ErrorCodeBadRequest, message("Bad request"))

	default:
		return http.StatusInternalServerError, dto.NewErrorDetail(dto.ErrorCodeInternalServer, "Internal server error").
			WithSeverity(dto.ErrorSeverityCritical)
	}
}
