package apperrors

import "errors"

// Error kinds. Every failure surfaced by a service wraps exactly one of these.
var (
	// ErrUnauthenticated means no valid session accompanied the request
	ErrUnauthenticated = errors.New("authentication required")
	// ErrPermissionDenied means the caller is known but lacks the role or membership
	ErrPermissionDenied = errors.New("permission denied")
	// ErrResourceNotFound means the referenced entity does not exist
	ErrResourceNotFound = errors.New("resource not found")
	// ErrConflict covers uniqueness violations such as duplicate membership
	ErrConflict = errors.New("conflict")
	// ErrValidationFailed means the input failed local validation before any store call
	ErrValidationFailed = errors.New("validation failed")
	// ErrUpstreamUnavailable means the backend store or identity provider could not be reached
	ErrUpstreamUnavailable = errors.New("upstream unavailable")
)

// Identity errors
var (
	ErrInvalidCredentials = errors.New("invalid credentials")
	ErrTokenInvalid       = errors.New("invalid token")
	ErrTokenExpired       = errors.New("token expired")
	ErrSessionNotFound    = errors.New("session not found")
	ErrUnknownProvider    = errors.New("unknown oauth provider")
)

// Domain errors
var (
	ErrClubNotApproved     = errors.New("club is not approved")
	ErrAlreadyMember       = errors.New("user is already a member of this club")
	ErrUnsupportedFileType = errors.New("unsupported file type")
	ErrFileTooLarge        = errors.New("file too large")
)

// NewResourceNotFoundError creates a new custom error for resource not found with a message
func NewResourceNotFoundError(message string) error {
	return &CustomError{
		Err:     ErrResourceNotFound,
		Message: message,
	}
}

// NewConflictError creates a new custom error for conflict situations with a message
func NewConflictError(message string) error {
	return &CustomError{
		Err:     ErrConflict,
		Message: message,
	}
}

// NewForbiddenError creates a new custom error for permission denied with a message
func NewForbiddenError(message string) error {
	return &CustomError{
		Err:     ErrPermissionDenied,
		Message: message,
	}
}

// NewValidationError creates a validation failure with a user-facing message
func NewValidationError(message string) error {
	return &CustomError{
		Err:     ErrValidationFailed,
		Message: message,
	}
}

func NewUnauthenticatedError(message string) error {
	return &CustomError{
		Err:     ErrUnauthenticated,
		Message: message,
	}
}

// NewUpstreamError wraps a transport or store failure
func NewUpstreamError(message string, cause error) error {
	return &CustomError{
		Err:     errors.Join(ErrUpstreamUnavailable, cause),
		Message: message,
	}
}

// Is returns whether err matches target or any of errList
func Is(err, target error, errList ...error) bool {
	if errors.Is(err, target) {
		return true
	}

	for _, e := range errList {
		if errors.Is(err, e) {
			return true
		}
	}

	return false
}

// Message returns the user-facing text of err: the CustomError message when
// present, otherwise err.Error().
func Message(err error) string {
	var ce *CustomError
	if errors.As(err, &ce) && ce.Message != "" {
		return ce.Message
	}
	if err == nil {
		return ""
	}
	return err.Error()
}

// CustomError represents application-specific errors with additional context
type CustomError struct {
	Err       error
	Message   string
	StatusMsg string
	Code      string
	Details   map[string]interface{}
}

// Error implements error interface
func (e *CustomError) Error() string {
	if e.Message != "" {
		return e.Message
	}
	if e.Err != nil {
		return e.Err.Error()
	}
	return "unknown error"
}

// Unwrap implements errors.Unwrap interface
func (e *CustomError) Unwrap() error {
	return e.Err
}

// NewCustomError creates a CustomError with underlying error
func NewCustomError(err error, message string) *CustomError {
	return &CustomError{
		Err:     err,
		Message: message,
	}
}

// WithDetails adds context details to the error
func (e *CustomError) WithDetails(details map[string]interface{}) *CustomError {
	e.Details = details
	return e
}

// WithCode adds an error code
func (e *CustomError) WithCode(code string) *CustomError {
	e.Code = code
	return e
}
