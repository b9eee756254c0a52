package httpapi

import (
	"net/http"

	"github.com/gin-gonic/gin"

	"bcasprint-backend/internal/common/errors"
)

// statusFor maps application error codes onto HTTP statuses.
func statusFor(code errors.ErrorCode) int {
	switch code {
	case errors.ErrCodeAuthenticationFailed, errors.ErrCodeSessionNotFound:
		return http.StatusUnauthorized
	case errors.ErrCodeForbidden, errors.ErrCodeAccountNotVerified:
		return http.StatusForbidden
	case errors.ErrCodeAccountExists:
		return http.StatusConflict
	case errors.ErrCodeValidationFailed, errors.ErrCodeWeakPassword, errors.ErrCodeOTPMismatch:
		return http.StatusBadRequest
	case errors.ErrCodeOTPResendThrottled, errors.ErrCodePredictionLimit:
		return http.StatusTooManyRequests
	case errors.ErrCodeResourceNotFound:
		return http.StatusNotFound
	case errors.ErrCodeGenAITimeout:
		return http.StatusGatewayTimeout
	default:
		return http.StatusInternalServerError
	}
}

// respondError writes the standard error envelope.
func respondError(c *gin.Context, err error) {
	if se, ok := err.(*errors.StandardError); ok {
		c.JSON(statusFor(se.Code), gin.H{
			"error":   se.Code,
			"message": se.Message,
			"details": se.Details,
		})
		return
	}
	c.JSON(http.StatusInternalServerError, gin.H{
		"error":   "INTERNAL_ERROR",
		"message": "Something went wrong",
	})
}
