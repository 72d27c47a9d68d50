package eramgr

import (
	"errors"
	"fmt"
)

// ErrShuttingDown is returned when an operation is rejected because the era
// supervisor has begun to shut down.
var ErrShuttingDown = errors.New("era supervisor is shutting down")

// MalformedBlockError indicates that an inbound block could not be parsed
// into a consensus message.
type MalformedBlockError struct {
	err error
}

func NewMalformedBlockErrorf(msg string, args ...interface{}) error {
	return MalformedBlockError{fmt.Errorf(msg, args...)}
}

func (e MalformedBlockError) Error() string { return e.err.Error() }
func (e MalformedBlockError) Unwrap() error { return e.err }

// IsMalformedBlockError returns whether err is a MalformedBlockError
func IsMalformedBlockError(err error) bool {
	var e MalformedBlockError
	return errors.As(err, &e)
}

// InvalidBlockError indicates that the block's era runtime rejected the
// block. The block is dropped without relay or propagation.
type InvalidBlockError struct {
	err error
}

func NewInvalidBlockError(err error) error {
	return InvalidBlockError{err}
}

func (e InvalidBlockError) Error() string { return e.err.Error() }
func (e InvalidBlockError) Unwrap() error { return e.err }

// IsInvalidBlockError returns whether err is an InvalidBlockError
func IsInvalidBlockError(err error) bool {
	var e InvalidBlockError
	return errors.As(err, &e)
}
