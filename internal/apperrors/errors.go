package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// ErrNotFound indicates that a requested resource could not be found.
var ErrNotFound = errors.New("resource not found")

// ErrValidation indicates that input data failed validation checks.
var ErrValidation = errors.New("validation error")

// ErrDuplicate indicates that an attempt was made to create a resource that already exists.
var ErrDuplicate = errors.New("resource already exists")

// ErrUnauthorized is the uniform failure surfaced for any credential that does
// not check out. Callers must not be able to tell which check failed.
var ErrUnauthorized = errors.New("unauthorized")

// ErrConfiguration indicates a required piece of configuration (e.g. the JWT
// signing secret) is missing. Not recoverable by retry.
var ErrConfiguration = errors.New("service misconfigured")

// ErrRateLimited indicates the caller exceeded a request budget and should back off.
var ErrRateLimited = errors.New("rate limit exceeded")

// ErrRefreshTokenExpired indicates the presented refresh token is past its expiry.
var ErrRefreshTokenExpired = errors.New("refresh token expired")

// ErrRefreshTokenRevoked indicates the presented refresh token was revoked or already rotated.
var ErrRefreshTokenRevoked = errors.New("refresh token revoked")

// AppError carries an HTTP status code alongside a message, so handlers can
// translate service failures without switching on every sentinel.
type AppError struct {
	Code    int    `json:"-"`
	Message string `json:"error"`
	Err     error  `json:"-"`
}

func (e *AppError) Error() string {
	if e.Err != nil {
		return fmt.Sprintf("%s: %v", e.Message, e.Err)
	}
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

// NewAppError creates an AppError wrapping an underlying cause.
func NewAppError(code int, message string, err error) *AppError {
	return &AppError{Code: code, Message: message, Err: err}
}

func NewBadRequestError(message string) *AppError {
	return &AppError{Code: http.StatusBadRequest, Message: message, Err: ErrValidation}
}

func NewUnauthorizedError(message string) *AppError {
	return &AppError{Code: http.StatusUnauthorized, Message: message, Err: ErrUnauthorized}
}

func NewInternalServerError(message string) *AppError {
	return &AppError{Code: http.StatusInternalServerError, Message: message}
}
