// internal/apperrors/errors.go
package apperrors

import (
	"errors"
	"fmt"
	"net/http"
)

// AppError is the error type services return to handlers. Handlers map it
// to an HTTP status and the standard response envelope.
type AppError struct {
	Code       string
	Message    string
	StatusCode int
	Err        error
}

func (e *AppError) Error() string {
	return e.Message
}

func (e *AppError) Unwrap() error {
	return e.Err
}

func New(code, message string, statusCode int) *AppError {
	return &AppError{
		Code:       code,
		Message:    message,
		StatusCode: statusCode,
	}
}

func (e *AppError) WithError(err error) *AppError {
	e.Err = err
	return e
}

const (
	CodeValidation        = "VALIDATION_ERROR"
	CodeNotFound          = "NOT_FOUND"
	CodeUnauthorized      = "UNAUTHORIZED"
	CodeForbidden         = "FORBIDDEN"
	CodeConflict          = "CONFLICT"
	CodeInsufficientStock = "INSUFFICIENT_STOCK"
	CodeEmptyCart         = "EMPTY_CART"
	CodeInternal          = "INTERNAL_ERROR"
)

func Validation(message string) *AppError {
	return New(CodeValidation, message, http.StatusBadRequest)
}

func NotFound(message string) *AppError {
	return New(CodeNotFound, message, http.StatusNotFound)
}

func Unauthorized(message string) *AppError {
	return New(CodeUnauthorized, message, http.StatusUnauthorized)
}

func Forbidden(message string) *AppError {
	return New(CodeForbidden, message, http.StatusForbidden)
}

func Conflict(message string) *AppError {
	return New(CodeConflict, message, http.StatusConflict)
}

func InsufficientStock(productName string) *AppError {
	return New(CodeInsufficientStock, fmt.Sprintf("Not enough stock for '%s'", productName), http.StatusBadRequest)
}

func EmptyCart() *AppError {
	return New(CodeEmptyCart, "Cart is empty", http.StatusBadRequest)
}

func Internal(message string) *AppError {
	return New(CodeInternal, message, http.StatusInternalServerError)
}

// As unwraps err into an *AppError if it carries one.
func As(err error) (*AppError, bool) {
	var appErr *AppError
	if errors.As(err, &appErr) {
		return appErr, true
	}
	return nil, false
}
