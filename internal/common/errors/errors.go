// Package errors provides standardized error handling across services.
package errors

import (
	"fmt"
	"strings"
	"time"
)

// ErrorCode represents standardized internal error codes.
type ErrorCode string

const (
	// Accounts / sessions
	ErrCodeAuthenticationFailed ErrorCode = "AUTHENTICATION_FAILED"
	ErrCodeAccountNotVerified   ErrorCode = "ACCOUNT_NOT_VERIFIED"
	ErrCodeAccountExists        ErrorCode = "ACCOUNT_EXISTS"
	ErrCodeWeakPassword         ErrorCode = "WEAK_PASSWORD"
	ErrCodeOTPMismatch          ErrorCode = "OTP_MISMATCH"
	ErrCodeOTPResendThrottled   ErrorCode = "OTP_RESEND_THROTTLED"
	ErrCodeSessionNotFound      ErrorCode = "SESSION_NOT_FOUND"
	ErrCodeForbidden            ErrorCode = "FORBIDDEN"

	// Prediction pipeline
	ErrCodeValidationFailed      ErrorCode = "VALIDATION_FAILED"
	ErrCodePredictionLimit       ErrorCode = "PREDICTION_LIMIT_REACHED"
	ErrCodeModelPredictionFailed ErrorCode = "MODEL_PREDICTION_FAILED"
	ErrCodeGenAIUnavailable      ErrorCode = "GENAI_UNAVAILABLE"
	ErrCodeGenAITimeout          ErrorCode = "GENAI_TIMEOUT"
	ErrCodeGenAIParseFailed      ErrorCode = "GENAI_PARSE_FAILED"

	// Infrastructure
	ErrCodeDatabaseConnectionFailed ErrorCode = "DATABASE_CONNECTION_FAILED"
	ErrCodeQueryExecutionFailed     ErrorCode = "QUERY_EXECUTION_FAILED"
	ErrCodeDatabaseInsertFailed     ErrorCode = "DATABASE_INSERT_FAILED"
	ErrCodeSearchQueryFailed        ErrorCode = "SEARCH_QUERY_FAILED"
	ErrCodeEmailSendFailed          ErrorCode = "EMAIL_SEND_FAILED"
	ErrCodeSMSSendFailed            ErrorCode = "SMS_SEND_FAILED"
	ErrCodeResourceNotFound         ErrorCode = "RESOURCE_NOT_FOUND"
)

// StandardError represents a structured application error.
type StandardError struct {
	Code      ErrorCode              `json:"code"`
	Message   string                 `json:"message"`
	Details   string                 `json:"details,omitempty"`
	Retryable bool                   `json:"retryable"`
	Metadata  map[string]interface{} `json:"metadata,omitempty"`
	Timestamp time.Time              `json:"timestamp"`
}

func (e *StandardError) Error() string {
	return fmt.Sprintf("StandardError[%s]: %s", e.Code, e.Message)
}

// ==========================
// Error Constructors
// ==========================

// NewAuthenticationError creates a non-retryable credential error.
func NewAuthenticationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAuthenticationFailed,
		Message:   "Invalid email or password",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAccountNotVerifiedError creates a non-retryable verification error.
func NewAccountNotVerifiedError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccountNotVerified,
		Message:   "Account is not verified",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewAccountExistsError creates a non-retryable duplicate signup error.
func NewAccountExistsError(email string) *StandardError {
	return &StandardError{
		Code:      ErrCodeAccountExists,
		Message:   "An account with this email already exists",
		Details:   fmt.Sprintf("email: %s", email),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewWeakPasswordError lists the unmet password rules.
func NewWeakPasswordError(issues []string) *StandardError {
	return &StandardError{
		Code:      ErrCodeWeakPassword,
		Message:   "Password not secure enough",
		Details:   strings.Join(issues, ", "),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPMismatchError creates a non-retryable OTP verification error.
func NewOTPMismatchError() *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPMismatch,
		Message:   "Verification code is incorrect or expired",
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewOTPResendThrottledError creates a non-retryable rate-limit error.
func NewOTPResendThrottledError(waitSeconds int) *StandardError {
	return &StandardError{
		Code:      ErrCodeOTPResendThrottled,
		Message:   "Please wait before requesting another code",
		Details:   fmt.Sprintf("retry after %ds", waitSeconds),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewSessionNotFoundError creates a non-retryable session error.
func NewSessionNotFoundError(token string) *StandardError {
	return &StandardError{
		Code:      ErrCodeSessionNotFound,
		Message:   "Session not found or expired",
		Details:   fmt.Sprintf("token: %s", token),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewForbiddenError creates a non-retryable authorization error.
func NewForbiddenError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeForbidden,
		Message:   "Not allowed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewValidationError creates a non-retryable user-input error.
func NewValidationError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeValidationFailed,
		Message:   "Request validation failed",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewPredictionLimitError creates a non-retryable quota error.
func NewPredictionLimitError(limit int) *StandardError {
	return &StandardError{
		Code:      ErrCodePredictionLimit,
		Message:   "Prediction limit reached for this session",
		Details:   fmt.Sprintf("limit: %d", limit),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewModelPredictionFailedError wraps an adapter failure. The orchestrator
// maps this to the base-salary fallback, it never reaches the user.
func NewModelPredictionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeModelPredictionFailed,
		Message:   "Model inference failed",
		Details:   err.Error(),
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIUnavailableError creates a retryable transport/config error.
func NewGenAIUnavailableError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIUnavailable,
		Message:   "Generative-language service unavailable",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAITimeoutError creates a retryable timeout error.
func NewGenAITimeoutError() *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAITimeout,
		Message:   "Generative-language call timed out",
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewGenAIParseFailedError creates a non-retryable parse error.
func NewGenAIParseFailedError(details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeGenAIParseFailed,
		Message:   "Could not extract structured data from model response",
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseConnectionFailedError creates a retryable database connection error.
func NewDatabaseConnectionFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseConnectionFailed,
		Message:   "Database connection error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewQueryExecutionFailedError creates a retryable query execution error.
func NewQueryExecutionFailedError(operation string, err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeQueryExecutionFailed,
		Message:   "Database query execution error",
		Details:   fmt.Sprintf("operation: %s, error: %s", operation, err.Error()),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewDatabaseInsertFailedError creates a retryable database insert error.
func NewDatabaseInsertFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeDatabaseInsertFailed,
		Message:   "Database insert operation failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSearchQueryFailedError creates a retryable search backend error.
func NewSearchQueryFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSearchQueryFailed,
		Message:   "Search query error",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewEmailSendFailedError creates a retryable mail delivery error.
func NewEmailSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeEmailSendFailed,
		Message:   "Email delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewSMSSendFailedError creates a retryable SMS delivery error.
func NewSMSSendFailedError(err error) *StandardError {
	return &StandardError{
		Code:      ErrCodeSMSSendFailed,
		Message:   "SMS delivery failed",
		Details:   err.Error(),
		Retryable: true,
		Timestamp: time.Now().UTC(),
	}
}

// NewResourceNotFoundError creates a non-retryable lookup error.
func NewResourceNotFoundError(resource, details string) *StandardError {
	return &StandardError{
		Code:      ErrCodeResourceNotFound,
		Message:   fmt.Sprintf("%s not found", resource),
		Details:   details,
		Retryable: false,
		Timestamp: time.Now().UTC(),
	}
}

// ==========================
// Utility Functions
// ==========================

// IsRetryable reports whether err is a retryable StandardError.
func IsRetryable(err error) bool {
	if se, ok := err.(*StandardError); ok {
		return se.Retryable
	}
	return false
}

// CodeOf returns the error code of a StandardError, or empty.
func CodeOf(err error) ErrorCode {
	if se, ok := err.(*StandardError); ok {
		return se.Code
	}
	return ""
}

// GetErrorCategory returns the category of the error code.
func GetErrorCategory(code ErrorCode) string {
	codeStr := string(code)
	switch {
	case strings.Contains(codeStr, "AUTH") || strings.Contains(codeStr, "OTP") ||
		strings.Contains(codeStr, "SESSION") || strings.Contains(codeStr, "ACCOUNT") ||
		strings.Contains(codeStr, "PASSWORD"):
		return "AUTH"
	case strings.Contains(codeStr, "GENAI"):
		return "AI"
	case strings.Contains(codeStr, "DATABASE") || strings.Contains(codeStr, "QUERY"):
		return "DATABASE"
	case strings.Contains(codeStr, "EMAIL") || strings.Contains(codeStr, "SMS"):
		return "NOTIFICATION"
	case strings.Contains(codeStr, "VALIDATION") || strings.Contains(codeStr, "LIMIT"):
		return "VALIDATION"
	default:
		return "OTHER"
	}
}
