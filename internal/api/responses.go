package api

import (
	"errors"
	"net/http"
	"time"

	"github.com/gin-gonic/gin"

	"github.com/rsydfhmy03/SEA-Catering/internal/apperr"
	"github.com/rsydfhmy03/SEA-Catering/internal/logger"
)

const (
	CodeBadRequest        = "BAD_REQUEST"
	CodeValidation        = "VALIDATION_ERROR"
	CodePlanNotFound      = "PLAN_NOT_FOUND"
	CodeInvalidDateRange  = "INVALID_DATE_RANGE"
	CodeInvalidTransition = "INVALID_TRANSITION"
	CodeConflict          = "CONFLICT"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeNotFound          = "NOT_FOUND"
	CodeTooManyRequests   = "TOO_MANY_REQUESTS"
	CodeServerError       = "SERVER_ERROR"
)

// Envelope is the uniform wrapper for every API response.
type Envelope struct {
	Success    bool       `json:"success" example:"true"`
	StatusCode int        `json:"status_code" example:"200"`
	Message    string     `json:"message" example:"Operation successful"`
	Timestamp  string     `json:"timestamp" example:"2025-06-24T10:00:00Z"`
	Data       any        `json:"data,omitempty"`
	Error      *ErrorBody `json:"error,omitempty"`
}

type ErrorBody struct {
	Code    string              `json:"code" example:"VALIDATION_ERROR"`
	Details []apperr.FieldError `json:"details"`
}

type HealthResponse struct {
	Status string            `json:"status" example:"ok"`
	Checks map[string]string `json:"checks,omitempty"`
}

var now = time.Now

func timestamp() string {
	return now().UTC().Format(time.RFC3339Nano)
}

func SuccessBody(status int, message string, data any) Envelope {
	return Envelope{
		Success:    true,
		StatusCode: status,
		Message:    message,
		Timestamp:  timestamp(),
		Data:       data,
	}
}

func ErrorEnvelope(status int, code, message string, details []apperr.FieldError) Envelope {
	if details == nil {
		details = []apperr.FieldError{}
	}
	return Envelope{
		Success:    false,
		StatusCode: status,
		Message:    message,
		Timestamp:  timestamp(),
		Error:      &ErrorBody{Code: code, Details: details},
	}
}

func OK(c *gin.Context, message string, data any) {
	c.JSON(http.StatusOK, SuccessBody(http.StatusOK, message, data))
}

func Created(c *gin.Context, message string, data any) {
	c.JSON(http.StatusCreated, SuccessBody(http.StatusCreated, message, data))
}

func Unauthorized(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusUnauthorized, ErrorEnvelope(http.StatusUnauthorized, CodeUnauthorized, message, nil))
}

func Forbidden(c *gin.Context, message string) {
	c.AbortWithStatusJSON(http.StatusForbidden, ErrorEnvelope(http.StatusForbidden, CodeForbidden, message, nil))
}

func TooManyRequests(c *gin.Context) {
	c.AbortWithStatusJSON(http.StatusTooManyRequests, ErrorEnvelope(http.StatusTooManyRequests, CodeTooManyRequests, "Rate limit exceeded", nil))
}

func ValidationFailed(c *gin.Context, fields []apperr.FieldError) {
	c.JSON(http.StatusBadRequest, ErrorEnvelope(http.StatusBadRequest, CodeValidation, "Validation error", fields))
}

// Fail writes the envelope for err. Expected business failures carry an
// apperr kind; anything else is logged and reported as a generic server error.
func Fail(c *gin.Context, err error) {
	status, code := statusFor(apperr.KindOf(err))

	if status == http.StatusInternalServerError {
		logger.Error("request failed",
			"method", c.Request.Method,
			"path", c.FullPath(),
			"error", err,
		)
		c.JSON(status, ErrorEnvelope(status, code, "Internal server error", nil))
		return
	}

	msg, fields := describe(err)
	c.JSON(status, ErrorEnvelope(status, code, msg, fields))
}

func statusFor(kind apperr.Kind) (int, string) {
	switch kind {
	case apperr.KindValidation:
		return http.StatusBadRequest, CodeValidation
	case apperr.KindPlanNotFound:
		return http.StatusBadRequest, CodePlanNotFound
	case apperr.KindInvalidDateRange:
		return http.StatusBadRequest, CodeInvalidDateRange
	case apperr.KindNotFoundOrUnauthorized, apperr.KindForbidden:
		return http.StatusForbidden, CodeForbidden
	case apperr.KindInvalidTransition:
		return http.StatusConflict, CodeInvalidTransition
	case apperr.KindConflict:
		return http.StatusConflict, CodeConflict
	case apperr.KindNotFound:
		return http.StatusNotFound, CodeNotFound
	case apperr.KindUnauthenticated:
		return http.StatusUnauthorized, CodeUnauthorized
	default:
		return http.StatusInternalServerError, CodeServerError
	}
}

func describe(err error) (string, []apperr.FieldError) {
	var appErr *apperr.Error
	if errors.As(err, &appErr) {
		return appErr.Message, appErr.Fields
	}
	return err.Error(), nil
}
