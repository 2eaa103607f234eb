package usecase

import (
	"errors"
	"fmt"
	"strings"

	"theater-booking/pkg/utils"
)

var (
	// ErrInvalidInput covers missing, empty, duplicated or foreign arguments.
	// It is always returned before any storage I/O.
	ErrInvalidInput = errors.New("invalid reservation input")

	// ErrSeatsUnavailable means at least one requested seat is already
	// occupied. The caller should refresh the seat map and choose again.
	ErrSeatsUnavailable = errors.New("seats unavailable")

	// ErrPersistence wraps storage failures. Nothing was committed.
	ErrPersistence = errors.New("persistence failure")

	ErrNotFound = errors.New("not found")
)

type InvalidInputError struct {
	Reason string
	Codes  []string
	// Fields maps request field names to validation messages.
	Fields map[string]string
}

func (e *InvalidInputError) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("%s: %s", ErrInvalidInput, e.Reason)
	}
	return fmt.Sprintf("%s: %s: %s", ErrInvalidInput, e.Reason, strings.Join(e.Codes, ", "))
}

func (e *InvalidInputError) Is(target error) bool {
	return target == ErrInvalidInput
}

func invalidInput(reason string, codes ...string) error {
	return &InvalidInputError{Reason: reason, Codes: codes}
}

func invalidFields(fields map[string]string) error {
	return &InvalidInputError{
		Reason: "validation failed: " + utils.FormatValidationErrors(fields),
		Fields: fields,
	}
}

type SeatsUnavailableError struct {
	SessionID string
	Codes     []string
}

func (e *SeatsUnavailableError) Error() string {
	if len(e.Codes) == 0 {
		return fmt.Sprintf("session %s: %s", e.SessionID, ErrSeatsUnavailable)
	}
	return fmt.Sprintf("session %s: %s: %s", e.SessionID, ErrSeatsUnavailable, strings.Join(e.Codes, ", "))
}

func (e *SeatsUnavailableError) Is(target error) bool {
	return target == ErrSeatsUnavailable
}
