package server

import (
	"errors"
	"net/http"
	"strings"

	"github.com/gin-gonic/gin"
	authdomain "github.com/fixitworks/fixit/internal/auth/domain"
	"github.com/fixitworks/fixit/internal/auth/google"
	"github.com/fixitworks/fixit/internal/auth/token"
	userdomain "github.com/fixitworks/fixit/internal/user/domain"
)

var (
	ErrUnauthorized    = errors.New("unauthorized")
	ErrTooManyRequests = errors.New("too many requests")
)

// ValidationError rejects malformed input before any side effect.
type ValidationError struct {
	Message string
}

func (v *ValidationError) Error() string { return v.Message }

func newValidationError(message string) error {
	return &ValidationError{Message: message}
}

type errorResponse struct {
	Message string `json:"message"`
	Detail  string `json:"error,omitempty"`
}

// ErrorHandlingMiddleware maps collected errors to status codes and stable,
// non-leaking messages in one place.
func ErrorHandlingMiddleware() gin.HandlerFunc {
	return func(c *gin.Context) {
		c.Next()

		if c.Writer.Written() {
			return
		}

		lastErr := c.Errors.Last()
		if lastErr == nil {
			return
		}

		status, payload := mapError(lastErr.Err)
		c.AbortWithStatusJSON(status, payload)
	}
}

func AbortWithError(c *gin.Context, err error) {
	if err == nil {
		return
	}
	_ = c.Error(err)
	c.Abort()
}

func mapError(err error) (int, errorResponse) {
	var vErr *ValidationError
	if errors.As(err, &vErr) {
		return http.StatusBadRequest, errorResponse{Message: vErr.Message}
	}

	switch {
	case errors.Is(err, authdomain.ErrInvalidEmail):
		return http.StatusBadRequest, errorResponse{Message: "Invalid email format"}
	case errors.Is(err, authdomain.ErrNoPassword):
		return http.StatusBadRequest, errorResponse{Message: "Use Google Sign-In for this account"}
	case errors.Is(err, authdomain.ErrInvalidCredentials):
		return http.StatusBadRequest, errorResponse{Message: "Invalid credentials"}
	case errors.Is(err, authdomain.ErrNoOutstandingRequest):
		return http.StatusBadRequest, errorResponse{Message: "No OTP request found"}
	case errors.Is(err, authdomain.ErrInvalidCode):
		return http.StatusBadRequest, errorResponse{Message: "Invalid OTP"}
	case errors.Is(err, authdomain.ErrCodeExpired):
		return http.StatusBadRequest, errorResponse{Message: "OTP expired"}

	case errors.Is(err, userdomain.ErrUserNotFound):
		return http.StatusNotFound, errorResponse{Message: "User not found"}
	case errors.Is(err, userdomain.ErrEmailTaken):
		return http.StatusConflict, errorResponse{Message: "User already exists"}
	case errors.Is(err, userdomain.ErrGoogleIDTaken):
		return http.StatusConflict, errorResponse{Message: "Google account already linked"}

	case errors.Is(err, google.ErrMissingToken):
		return http.StatusBadRequest, errorResponse{Message: "Google token missing"}
	case errors.Is(err, google.ErrMisconfigured):
		return http.StatusInternalServerError, errorResponse{Message: "Missing GOOGLE_CLIENT_ID"}
	case errors.Is(err, google.ErrInvalidToken):
		return http.StatusInternalServerError, errorResponse{Message: "Google login failed"}

	case errors.Is(err, authdomain.ErrNotificationFailed):
		// The primary effect already committed; surface the transport
		// diagnostics so the caller can decide whether to resubmit.
		return http.StatusInternalServerError, errorResponse{
			Message: "Failed to send OTP",
			Detail:  notificationDetail(err),
		}

	case errors.Is(err, ErrUnauthorized),
		errors.Is(err, token.ErrInvalidToken),
		errors.Is(err, token.ErrTokenExpired):
		return http.StatusUnauthorized, errorResponse{Message: "Not authorized"}

	case errors.Is(err, ErrTooManyRequests):
		return http.StatusTooManyRequests, errorResponse{Message: "Too many requests, try again later"}

	default:
		return http.StatusInternalServerError, errorResponse{Message: "Server error"}
	}
}

func notificationDetail(err error) string {
	detail := strings.TrimPrefix(err.Error(), authdomain.ErrNotificationFailed.Error())
	return strings.TrimPrefix(detail, ": ")
}
