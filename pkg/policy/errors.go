package policy

import (
	"fmt"
	"net/http"
)

type Kind int

const (
	KindNotFound Kind = iota
	KindForbidden
	KindValidation
	KindBookingConflict
	KindImageLimit
	KindDuplicateReview
	KindUniqueViolation
	KindInternal
)

// Error is the terminal failure of a request. Policies return it, the
// handler layer serializes it into the {message, errors?} envelope with
// the carried status code. Nothing retries or recovers from these.
type Error struct {
	Kind    Kind
	Status  int
	Message string
	Fields  map[string]string
}

func (e *Error) Error() string { return e.Message }

func NotFound(resource string) *Error {
	return &Error{
		Kind:    KindNotFound,
		Status:  http.StatusNotFound,
		Message: fmt.Sprintf("%s couldn't be found", resource),
	}
}

func Forbidden(resource string) *Error {
	return &Error{
		Kind:    KindForbidden,
		Status:  http.StatusForbidden,
		Message: fmt.Sprintf("Forbidden: %s is not owned by the current User", resource),
	}
}

// Validation aggregates field errors from the structural date/body checks.
// These are always reported before any conflict logic runs.
func Validation(fields map[string]string) *Error {
	return &Error{
		Kind:    KindValidation,
		Status:  http.StatusBadRequest,
		Message: "Bad Request",
		Fields:  fields,
	}
}

func BookingConflict(fields map[string]string) *Error {
	return &Error{
		Kind:    KindBookingConflict,
		Status:  http.StatusForbidden,
		Message: "Sorry, this Spot is already booked for the specified dates",
		Fields:  fields,
	}
}

func ImageLimit(message string) *Error {
	return &Error{
		Kind:    KindImageLimit,
		Status:  http.StatusForbidden,
		Message: message,
	}
}

// DuplicateReview keeps the 500 the original API shipped with.
func DuplicateReview() *Error {
	return &Error{
		Kind:    KindDuplicateReview,
		Status:  http.StatusInternalServerError,
		Message: "User already has a Review for this Spot",
	}
}

func UniqueViolation(message string, fields map[string]string) *Error {
	return &Error{
		Kind:    KindUniqueViolation,
		Status:  http.StatusInternalServerError,
		Message: message,
		Fields:  fields,
	}
}

func Internal(message string) *Error {
	return &Error{
		Kind:    KindInternal,
		Status:  http.StatusInternalServerError,
		Message: message,
	}
}
