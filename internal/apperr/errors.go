package apperr

import (
	"errors"
	"fmt"
)

// Kinds of argument violations. Match them with errors.Is.
var (
	ErrOutOfRange      = errors.New("argument out of range")
	ErrInvalidArgument = errors.New("invalid argument")
	ErrArgumentNull    = errors.New("argument is null")
)

// ArgumentError is returned before any I/O when a caller passes a bad argument.
type ArgumentError struct {
	Kind  error
	Param string
	Msg   string
}

func (e *ArgumentError) Error() string {
	if e.Msg == "" {
		return fmt.Sprintf("%s: %s", e.Kind, e.Param)
	}
	return fmt.Sprintf("%s: %s: %s", e.Kind, e.Param, e.Msg)
}

func (e *ArgumentError) Unwrap() error { return e.Kind }

func OutOfRange(param string, value int) error {
	return &ArgumentError{
		Kind:  ErrOutOfRange,
		Param: param,
		Msg:   fmt.Sprintf("must be greater than 0, got %d", value),
	}
}

func InvalidArgument(param, msg string) error {
	return &ArgumentError{Kind: ErrInvalidArgument, Param: param, Msg: msg}
}

func ArgumentNull(param string) error {
	return &ArgumentError{Kind: ErrArgumentNull, Param: param}
}

// AsArgument unwraps err to an *ArgumentError if there is one in the chain.
func AsArgument(err error) (*ArgumentError, bool) {
	var ae *ArgumentError
	if errors.As(err, &ae) {
		return ae, true
	}
	return nil, false
}
