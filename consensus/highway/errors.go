package highway

import (
	"errors"
	"fmt"
)

// ConfigurationError indicates that a runtime was initialized with invalid
// or inconsistent parameters.
type ConfigurationError struct {
	err error
}

func NewConfigurationErrorf(msg string, args ...interface{}) error {
	return ConfigurationError{fmt.Errorf(msg, args...)}
}

func (e ConfigurationError) Error() string { return e.err.Error() }
func (e ConfigurationError) Unwrap() error { return e.err }

// IsConfigurationError returns whether err is a ConfigurationError
func IsConfigurationError(err error) bool {
	var e ConfigurationError
	return errors.As(err, &e)
}

// InvalidMessageError indicates that a message was rejected by its era's
// validation rules. The message must be dropped without further handling.
type InvalidMessageError struct {
	err error
}

func NewInvalidMessageErrorf(msg string, args ...interface{}) error {
	return InvalidMessageError{fmt.Errorf(msg, args...)}
}

func (e InvalidMessageError) Error() string { return e.err.Error() }
func (e InvalidMessageError) Unwrap() error { return e.err }

// IsInvalidMessageError returns whether err is an InvalidMessageError
func IsInvalidMessageError(err error) bool {
	var e InvalidMessageError
	return errors.As(err, &e)
}
