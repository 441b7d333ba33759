package core

import (
	"errors"
	"fmt"
)

// Error codes for relay failures, used in logs and metrics.
const (
	ErrCodeValidation     = "validation"
	ErrCodeNotFound       = "not_found"
	ErrCodeExhausted      = "room_creation_exhausted"
	ErrCodeUnreachable    = "unreachable_target"
	ErrCodeUnknownCommand = "unknown_command"
	ErrCodeInternal       = "internal"
)

var (
	ErrValidation            = errors.New("validation failed")
	ErrNotFound              = errors.New("game code not found")
	ErrRoomCreationExhausted = errors.New("room creation attempts exhausted")
	ErrUnreachableTarget     = errors.New("direct target not connected")
	ErrUnknownCommand        = errors.New("unknown command")
	ErrClientExists          = errors.New("client already registered")
)

// ValidationError reports a required payload field that is absent or not a string.
type ValidationError struct {
	Field string
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("missing required field %q", e.Field)
}

// Is lets errors.Is(err, ErrValidation) match any ValidationError.
func (e *ValidationError) Is(target error) bool {
	return target == ErrValidation
}

func missingField(field string) error {
	return &ValidationError{Field: field}
}

// ErrorCode maps an error returned by Hub.Handle to a stable code.
func ErrorCode(err error) string {
	switch {
	case err == nil:
		return ""
	case errors.Is(err, ErrValidation):
		return ErrCodeValidation
	case errors.Is(err, ErrNotFound):
		return ErrCodeNotFound
	case errors.Is(err, ErrRoomCreationExhausted):
		return ErrCodeExhausted
	case errors.Is(err, ErrUnreachableTarget):
		return ErrCodeUnreachable
	case errors.Is(err, ErrUnknownCommand):
		return ErrCodeUnknownCommand
	default:
		return ErrCodeInternal
	}
}
