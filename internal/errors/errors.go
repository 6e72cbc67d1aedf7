package errors

import (
	"net/http"
	"time"

	"github.com/gin-gonic/gin"
)

// Error codes
const (
	ErrCodeUnauthorized        = "UNAUTHORIZED"
	ErrCodeNotFound            = "NOT_FOUND"
	ErrCodeConflict            = "CONFLICT"
	ErrCodeInvalidInput        = "INVALID_INPUT"
	ErrCodeUnprocessableEntity = "UNPROCESSABLE_ENTITY"
	ErrCodeUnexpectedError     = "UNEXPECTED_ERROR"
)

// APIError carries an HTTP status and a localized message bundle. Handlers
// raise it (or map service errors onto it) and Respond renders the uniform
// envelope.
type APIError struct {
	Status   int
	Code     string
	Messages Bundle
}

// Bundle holds one message per supported language.
type Bundle struct {
	En string
	Ar string
	Fr string
}

// Error implements the error interface
func (e *APIError) Error() string {
	return e.Messages.En
}

// Message returns the message for the requested language, falling back to
// English for unrecognized values.
func (e *APIError) Message(lang string) string {
	switch lang {
	case "ar":
		if e.Messages.Ar != "" {
			return e.Messages.Ar
		}
	case "fr":
		if e.Messages.Fr != "" {
			return e.Messages.Fr
		}
	}
	return e.Messages.En
}

// New creates a new APIError
func New(status int, code string, messages Bundle) *APIError {
	return &APIError{
		Status:   status,
		Code:     code,
		Messages: messages,
	}
}

// Envelope is the uniform error response body.
type Envelope struct {
	Success    bool     `json:"success"`
	StatusCode int      `json:"statusCode"`
	Timestamp  string   `json:"timestamp"`
	Path       string   `json:"path"`
	Message    []string `json:"message"`
}

// Respond renders err as the uniform envelope, localizing the message by the
// request's Accept-Language header (en|ar|fr, default en). Non-APIError
// values default to HTTP 400 with the raw message.
func Respond(c *gin.Context, err error) {
	status := http.StatusBadRequest
	message := err.Error()

	if apiErr, ok := err.(*APIError); ok {
		status = apiErr.Status
		message = apiErr.Message(language(c))
	}

	c.AbortWithStatusJSON(status, Envelope{
		Success:    false,
		StatusCode: status,
		Timestamp:  time.Now().UTC().Format(time.RFC3339),
		Path:       c.Request.URL.Path,
		Message:    []string{message},
	})
}

func language(c *gin.Context) string {
	switch lang := c.GetHeader("Accept-Language"); lang {
	case "ar", "fr":
		return lang
	default:
		return "en"
	}
}

// Helper constructors for the taxonomy used by the services.

func Unauthorized(messages Bundle) *APIError {
	return New(http.StatusUnauthorized, ErrCodeUnauthorized, messages)
}

func NotFound(messages Bundle) *APIError {
	return New(http.StatusNotFound, ErrCodeNotFound, messages)
}

func Conflict(messages Bundle) *APIError {
	return New(http.StatusConflict, ErrCodeConflict, messages)
}

func UnprocessableEntity(messages Bundle) *APIError {
	return New(http.StatusUnprocessableEntity, ErrCodeUnprocessableEntity, messages)
}

func Unexpected(messages Bundle) *APIError {
	return New(http.StatusInternalServerError, ErrCodeUnexpectedError, messages)
}
