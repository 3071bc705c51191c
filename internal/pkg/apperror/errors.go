package apperror

import (
	"errors"
	"fmt"
	"net/http"
)

type ErrorCode string

const (
	ErrCodeNotFound            ErrorCode = "NOT_FOUND"
	ErrCodeUnauthorized        ErrorCode = "UNAUTHORIZED"
	ErrCodeBadRequest          ErrorCode = "BAD_REQUEST"
	ErrCodeConflict            ErrorCode = "CONFLICT"
	ErrCodeValidation          ErrorCode = "VALIDATION_ERROR"
	ErrCodeUpstreamUnavailable ErrorCode = "UPSTREAM_UNAVAILABLE"
	ErrCodeBadGateway          ErrorCode = "BAD_GATEWAY"
	ErrCodeInternal            ErrorCode = "INTERNAL_ERROR"
	ErrCodeDatabaseError       ErrorCode = "DATABASE_ERROR"
)

type AppError struct {
	Code       ErrorCode
	Message    string
	HTTPStatus int
	Cause      error
}

func (e *AppError) Error() string {
	if e.Cause != nil {
		return fmt.Sprintf("%s: %s (caused by: %v)", e.Code, e.Message, e.Cause)
	}
	return fmt.Sprintf("%s: %s", e.Code, e.Message)
}

func (e *AppError) Unwrap() error {
	return e.Cause
}

// Is сравнивает ошибки по коду и сообщению, чтобы errors.Is работал с предопределёнными ошибками.
func (e *AppError) Is(target error) bool {
	var t *AppError
	if !errors.As(target, &t) {
		return false
	}
	return e.Code == t.Code && e.Message == t.Message
}

func New(code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
	}
}

func Newf(code ErrorCode, format string, args ...any) *AppError {
	return New(code, fmt.Sprintf(format, args...))
}

func Wrap(err error, code ErrorCode, message string) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		HTTPStatus: codeToHTTPStatus(code),
		Cause:      err,
	}
}

func codeToHTTPStatus(code ErrorCode) int {
	switch code {
	case ErrCodeNotFound:
		return http.StatusNotFound
	case ErrCodeUnauthorized:
		return http.StatusUnauthorized
	case ErrCodeBadRequest, ErrCodeValidation:
		return http.StatusBadRequest
	case ErrCodeConflict:
		return http.StatusConflict
	case ErrCodeUpstreamUnavailable:
		return http.StatusServiceUnavailable
	case ErrCodeBadGateway:
		return http.StatusBadGateway
	default:
		return http.StatusInternalServerError
	}
}

// As достаёт AppError из цепочки ошибок.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}

func IsNotFound(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeNotFound
}

func IsConflict(err error) bool {
	appErr, ok := As(err)
	return ok && appErr.Code == ErrCodeConflict
}

func IsValidation(err error) bool {
	appErr, ok := As(err)
	return ok && (appErr.Code == ErrCodeValidation || appErr.Code == ErrCodeBadRequest)
}

var (
	ErrFavoriteNotFound    = New(ErrCodeNotFound, "Favourite not found")
	ErrFavoriteExists      = New(ErrCodeConflict, "Coin already in favourites")
	ErrUserNotFound        = New(ErrCodeNotFound, "User not found")
	ErrInvalidUserHeader   = New(ErrCodeBadRequest, "Missing or invalid X-User-Id header")
	ErrInvalidBody         = New(ErrCodeBadRequest, "Invalid or missing JSON body")
	ErrUnauthorized        = New(ErrCodeUnauthorized, "authorization required")
	ErrInvalidToken        = New(ErrCodeUnauthorized, "invalid or expired token")
	ErrIDsRequired         = New(ErrCodeBadRequest, "ids parameter is required")
	ErrCoinIDRequired      = New(ErrCodeBadRequest, "coin_id is required")
	ErrExternalNotFound    = New(ErrCodeNotFound, "Coin not found in external API")
	ErrExternalInvalidJSON = New(ErrCodeBadGateway, "External crypto API returned invalid JSON")
)

// CoinNotFound строит 404 для неизвестного символа.
func CoinNotFound(symbol string) *AppError {
	return Newf(ErrCodeNotFound, "Coin '%s' not found", symbol)
}
