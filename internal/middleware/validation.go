package middleware

import (
	"errors"

	"github.com/gin-gonic/gin"
	"github.com/go-playground/validator/v10"
	"github.com/yigit/clubsphere/internal/pkg/apperrors"
)

// Bind decodes the request into obj using gin binding (JSON or form by
// content type) and converts binding failures into a ValidationError with one
// entry per field.
func Bind(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBind(obj); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid request").WithDetails(fieldDetails(fieldErrs))
		}
		return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid request format").
			WithDetails(map[string]interface{}{"body": err.Error()})
	}
	return nil
}

// BindQuery is Bind for query string parameters
func BindQuery(c *gin.Context, obj interface{}) error {
	if err := c.ShouldBindQuery(obj); err != nil {
		var fieldErrs validator.ValidationErrors
		if errors.As(err, &fieldErrs) {
			return apperrors.NewCustomError(apperrors.ErrValidationFailed, "Invalid query parameters").WithDetails(fieldDetails(fieldErrs))
		}
		return apperrors.NewValidationError("Invalid query parameters")
	}
	return nil
}

func fieldDetails(fieldErrs validator.ValidationErrors) map[string]interface{} {
	details := make(map[string]interface{}, len(fieldErrs))
	for _, fe := range fieldErrs {
		details[fe.Field()] = formatValidationError(fe)
	}
	return details
}

// formatValidationError creates a human-readable validation error message
func formatValidationError(e validator.FieldError) string {
	switch e.Tag() {
	case "required":
		return e.Field() + " is required"
	case "min":
		return e.Field() + " must be at least " + e.Param()
	case "max":
		return e.Field() + " must be at most " + e.Param()
	case "email":
		return e.Field() + " must be a valid email address"
	case "oneof":
		return e.Field() + " must be one of: " + e.Param()
	default:
		return e.Field() + " validation failed: " + e.Tag()
	}
}
