package domain

import (
	"errors"
	"fmt"
)

// NotFoundError covers lookups that miss: bookings, stations, meals.
type NotFoundError struct {
	Resource string
	Err      error
}

func (e NotFoundError) Error() string {
	if e.Resource == "" {
		return "not found"
	}
	return fmt.Sprintf("%s not found", e.Resource)
}

func (e NotFoundError) Unwrap() error { return e.Err }

// ValidationError flags malformed booking input: passenger fields,
// seat lists, past travel dates, operations on cancelled bookings.
type ValidationError struct {
	Field string
	Msg   string
	Err   error
}

func (e ValidationError) Error() string {
	if e.Msg != "" && e.Field != "" {
		return fmt.Sprintf("%s: %s", e.Field, e.Msg)
	}
	if e.Msg != "" {
		return e.Msg
	}
	if e.Field != "" {
		return fmt.Sprintf("invalid %s", e.Field)
	}
	return "validation error"
}

func (e ValidationError) Unwrap() error { return e.Err }

// InvalidStationError flags unknown stations or a reversed/degenerate
// station pair. The route runs one way only.
type InvalidStationError struct {
	Msg string
	Err error
}

func (e InvalidStationError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "invalid station combination"
}

func (e InvalidStationError) Unwrap() error { return e.Err }

// SeatNotFoundError means the seat number does not exist on this bus.
type SeatNotFoundError struct {
	SeatNumber string
	Err        error
}

func (e SeatNotFoundError) Error() string {
	if e.SeatNumber == "" {
		return "seat not found"
	}
	return fmt.Sprintf("seat %s not found", e.SeatNumber)
}

func (e SeatNotFoundError) Unwrap() error { return e.Err }

// SeatUnavailableError means the seat exists but is out of service.
// Distinct from ConflictError: this is a static property of the seat,
// not a timing race with another booking.
type SeatUnavailableError struct {
	SeatNumber string
	Err        error
}

func (e SeatUnavailableError) Error() string {
	if e.SeatNumber == "" {
		return "seat is not available"
	}
	return fmt.Sprintf("seat %s is not available", e.SeatNumber)
}

func (e SeatUnavailableError) Unwrap() error { return e.Err }

// ConflictError is the double-booking case: the requested segment
// overlaps an existing hold for the same seat and date.
type ConflictError struct {
	Resource string
	Msg      string
	Err      error
}

func (e ConflictError) Error() string {
	switch {
	case e.Msg != "" && e.Resource != "":
		return fmt.Sprintf("%s conflict: %s", e.Resource, e.Msg)
	case e.Msg != "":
		return e.Msg
	case e.Resource != "":
		return fmt.Sprintf("%s conflict", e.Resource)
	default:
		return "conflict"
	}
}

func (e ConflictError) Unwrap() error { return e.Err }

// CancellationNotAllowedError is returned when the journey has already
// started; no mutation happens in that case.
type CancellationNotAllowedError struct {
	Msg string
	Err error
}

func (e CancellationNotAllowedError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "cancellation is not allowed for this booking"
}

func (e CancellationNotAllowedError) Unwrap() error { return e.Err }

// InternalError wraps store failures and other unexpected errors.
type InternalError struct {
	Msg string
	Err error
}

func (e InternalError) Error() string {
	if e.Msg != "" {
		return e.Msg
	}
	return "internal error"
}

func (e InternalError) Unwrap() error { return e.Err }

func IsNotFound(err error) bool {
	var target NotFoundError
	return errors.As(err, &target)
}

func IsValidation(err error) bool {
	var target ValidationError
	return errors.As(err, &target)
}

func IsInvalidStation(err error) bool {
	var target InvalidStationError
	return errors.As(err, &target)
}

func IsSeatNotFound(err error) bool {
	var target SeatNotFoundError
	return errors.As(err, &target)
}

func IsSeatUnavailable(err error) bool {
	var target SeatUnavailableError
	return errors.As(err, &target)
}

func IsConflict(err error) bool {
	var target ConflictError
	return errors.As(err, &target)
}

func IsCancellationNotAllowed(err error) bool {
	var target CancellationNotAllowedError
	return errors.As(err, &target)
}

func IsInternal(err error) bool {
	var target InternalError
	return errors.As(err, &target)
}
