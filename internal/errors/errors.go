package errors

import (
	"net/http"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized     = "UNAUTHORIZED"
	ErrCodeForbidden        = "FORBIDDEN"
	ErrCodeInvalidInput     = "INVALID_INPUT"
	ErrCodeNotFound         = "NOT_FOUND"
	ErrCodeConflict         = "CONFLICT"
	ErrCodeInvalidOperation = "INVALID_OPERATION"
	ErrCodeInternalError    = "INTERNAL_ERROR"
)

// APIError is the body of every non-2xx response
type APIError struct {
	Code    string      `json:"code"`
	Message string      `json:"message"`
	Details interface{} `json:"details,omitempty"`
}

func (e *APIError) Error() string {
	return e.Message
}

// codeFor pairs each status with its error code and the message used when none is given
var codeFor = map[int]struct {
	code     string
	fallback string
}{
	http.StatusBadRequest:          {ErrCodeInvalidInput, "Invalid request"},
	http.StatusUnauthorized:        {ErrCodeUnauthorized, "Employee identity required"},
	http.StatusForbidden:           {ErrCodeForbidden, "Admin role required"},
	http.StatusNotFound:            {ErrCodeNotFound, "Resource not found"},
	http.StatusConflict:            {ErrCodeConflict, "Resource conflict"},
	http.StatusUnprocessableEntity: {ErrCodeInvalidOperation, "Operation not allowed"},
	http.StatusInternalServerError: {ErrCodeInternalError, "Internal server error"},
}

// Respond writes an APIError for status and aborts the handler chain
func Respond(c *gin.Context, status int, message string, details interface{}) {
	entry, ok := codeFor[status]
	if !ok {
		entry = codeFor[http.StatusInternalServerError]
	}
	if message == "" {
		message = entry.fallback
	}

	c.AbortWithStatusJSON(status, &APIError{
		Code:    entry.code,
		Message: message,
		Details: details,
	})
}

// Unauthorized sends a 401 response
func Unauthorized(c *gin.Context, message string) {
	Respond(c, http.StatusUnauthorized, message, nil)
}

// Forbidden sends a 403 response
func Forbidden(c *gin.Context, message string) {
	Respond(c, http.StatusForbidden, message, nil)
}

// NotFound sends a 404 response
func NotFound(c *gin.Context, message string) {
	Respond(c, http.StatusNotFound, message, nil)
}

// BadRequest sends a 400 response
func BadRequest(c *gin.Context, message string) {
	Respond(c, http.StatusBadRequest, message, nil)
}

// InvalidBody reports a request body that failed to bind, with the binder's reason as details
func InvalidBody(c *gin.Context, err error) {
	Respond(c, http.StatusBadRequest, "Invalid request body", gin.H{"reason": err.Error()})
}

// Conflict sends a 409 response
func Conflict(c *gin.Context, message string) {
	Respond(c, http.StatusConflict, message, nil)
}

// UnprocessableEntity is for requests that are well formed but not allowed in the current state
func UnprocessableEntity(c *gin.Context, message string) {
	Respond(c, http.StatusUnprocessableEntity, message, nil)
}

// InternalError sends a 500 response
func InternalError(c *gin.Context, message string) {
	Respond(c, http.StatusInternalServerError, message, nil)
}
