package dto

import (
	"time"
)

// ErrorCode is the stable machine-readable code of an API error. The prefix
// names the family: AUTH, RES, VAL or SRV.
type ErrorCode string

const (
	ErrorCodeInvalidCredentials ErrorCode = "AUTH_001"
	ErrorCodeInvalidToken       ErrorCode = "AUTH_005"
	ErrorCodeUnauthenticated    ErrorCode = "AUTH_008"
	ErrorCodeForbidden          ErrorCode = "AUTH_009"

	ErrorCodeResourceNotFound ErrorCode = "RES_001"
	ErrorCodeConflict         ErrorCode = "RES_002"

	ErrorCodeValidationFailed ErrorCode = "VAL_001"

	ErrorCodeInternalServer      ErrorCode = "SRV_001"
	ErrorCodeUpstreamUnavailable ErrorCode = "SRV_003"
)

// ErrorSeverity tells clients whether retrying makes sense. CRITICAL marks
// outages of the identity or data store.
type ErrorSeverity string

const (
	ErrorSeverityError    ErrorSeverity = "ERROR"
	ErrorSeverityCritical ErrorSeverity = "CRITICAL"
)

// ErrorDetail is the error member of a failed APIResponse. Details carries
// per-field messages for validation failures.
type ErrorDetail struct {
	Code     ErrorCode              `json:"code" example:"RES_001"`
	Message  string                 `json:"message" example:"club not found"`
	Severity ErrorSeverity          `json:"severity" example:"ERROR"`
	Details  map[string]interface{} `json:"details,omitempty"`
}

func NewErrorDetail(code ErrorCode, message string) *ErrorDetail {
	return &ErrorDetail{
		Code:     code,
		Message:  message,
		Severity: ErrorSeverityError,
	}
}

func (e *ErrorDetail) WithSeverity(severity ErrorSeverity) *ErrorDetail {
	e.Severity = severity
	return e
}

func (e *ErrorDetail) WithDetails(details map[string]interface{}) *ErrorDetail {
	e.Details = details
	return e
}

// NewErrorResponse wraps detail in the common envelope
func NewErrorResponse(detail *ErrorDetail) APIResponse {
	return APIResponse{
		Success:   false,
		Error:     detail,
		Timestamp: time.Now(),
	}
}
