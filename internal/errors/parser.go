package errors

import (
	"errors"
	"strings"

	"gorm.io/gorm"
)

// ErrorInfo pairs an error code with a user-facing message.
type ErrorInfo struct {
	Code    string
	Message string
}

// ParseError classifies a persistence-layer error into a code and message.
// Sensitive driver detail stays out of the response; the caller logs the
// raw error.
func ParseError(err error, context string) ErrorInfo {
	if err == nil {
		return ErrorInfo{
			Code:    InternalServerError,
			Message: "An internal error occurred",
		}
	}

	errStrLower := strings.ToLower(err.Error())

	if errors.Is(err, gorm.ErrRecordNotFound) {
		return ErrorInfo{
			Code:    ResourceNotFound,
			Message: notFoundMessage(context),
		}
	}

	// Unique constraint violation (PostgreSQL 23505, sqlite UNIQUE)
	if strings.Contains(errStrLower, "duplicate key") ||
		strings.Contains(errStrLower, "unique constraint") {
		return ErrorInfo{
			Code:    ResourceAlreadyExists,
			Message: "The record already exists",
		}
	}

	// Connectivity failures: the store is unreachable, not the request wrong.
	if IsUnavailable(err) {
		return ErrorInfo{
			Code:    StorageUnavailable,
			Message: "Storage is temporarily unavailable. Please try again",
		}
	}

	return ErrorInfo{
		Code:    InternalDatabaseError,
		Message: defaultErrorMessage(context),
	}
}

// IsUnavailable reports whether the error looks like the persistence layer
// being unreachable or timing out, as opposed to a bad request.
func IsUnavailable(err error) bool {
	if err == nil {
		return false
	}
	errStrLower := strings.ToLower(err.Error())
	return strings.Contains(errStrLower, "connection refused") ||
		strings.Contains(errStrLower, "connection reset") ||
		strings.Contains(errStrLower, "no such host") ||
		strings.Contains(errStrLower, "timeout") ||
		strings.Contains(errStrLower, "deadline exceeded") ||
		strings.Contains(errStrLower, "bad connection") ||
		strings.Contains(errStrLower, "database is closed")
}

func notFoundMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "book") {
		return "Book not found"
	}
	if strings.Contains(contextLower, "review") {
		return "Review not found"
	}
	if strings.Contains(contextLower, "cart") {
		return "Cart not found"
	}
	return "The requested record was not found"
}

func defaultErrorMessage(context string) string {
	contextLower := strings.ToLower(context)

	if strings.Contains(contextLower, "create") || strings.Contains(contextLower, "add") {
		return "Failed to save the record. Please try again later"
	}
	if strings.Contains(contextLower, "update") {
		return "Failed to update the record. Please try again later"
	}
	if strings.Contains(contextLower, "delete") || strings.Contains(contextLower, "remove") {
		return "Failed to delete the record. Please try again later"
	}
	return "An internal error occurred. Please try again later"
}
