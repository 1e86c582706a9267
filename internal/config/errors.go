package config

import (
	"errors"
	"fmt"
)

var (
	// ErrInvalidConfig indicates a value outside its allowed range.
	ErrInvalidConfig = errors.New("heroviz: invalid config")

	// ErrUnknownPreset indicates a preset name that is not registered.
	ErrUnknownPreset = errors.New("heroviz: unknown preset")
)

// FieldError names the offending config key.
type FieldError struct {
	Key     string
	Message string
}

func (e *FieldError) Error() string {
	return fmt.Sprintf("%s: %s: %s", ErrInvalidConfig, e.Key, e.Message)
}

func (e *FieldError) Unwrap() error {
	return ErrInvalidConfig
}

func invalid(key, format string, args ...any) error {
	return &FieldError{Key: key, Message: fmt.Sprintf(format, args...)}
}
