package level

import (
	"fmt"

	"github.com/pkg/errors"
)

var ErrConfiguration = errors.New("invalid builder input")

// ConfigurationError is returned by builders before anything is stored.
type ConfigurationError struct {
	Name   string
	Reason string
	Err    error
}

func (e *ConfigurationError) Error() string {
	msg := fmt.Sprintf("%s: %s", e.Name, e.Reason)
	if e.Err != nil {
		msg += ": " + e.Err.Error()
	}
	return msg
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

func (e *ConfigurationError) Unwrap() error {
	return e.Err
}

func configError(name string, err error, format string, args ...interface{}) error {
	return &ConfigurationError{
		Name:   name,
		Reason: fmt.Sprintf(format, args...),
		Err:    err,
	}
}

// UnknownVariantError aborts an encode when an entry is not one of the
// known descriptor types.
type UnknownVariantError struct {
	Name       string
	Descriptor Descriptor
}

func (e *UnknownVariantError) Error() string {
	return fmt.Sprintf("entry %s has unknown geometry type %T", e.Name, e.Descriptor)
}

// IOError wraps a failure of the destination stream.
type IOError struct {
	Err error
}

func (e *IOError) Error() string {
	return "could not write level: " + e.Err.Error()
}

func (e *IOError) Unwrap() error {
	return e.Err
}
