package scheduler

import (
	"errors"
	"fmt"
)

// ErrUnknownBackend indicates an unsupported backend name
var ErrUnknownBackend = errors.New("unknown scheduler backend")

// UnknownBackendError reports a backend name that matches no variant
type UnknownBackendError struct {
	Value string // Offending backend name
}

func (e *UnknownBackendError) Error() string {
	if e.Value == "" {
		return "no scheduler backend selected (supported: lsf, sge)"
	}
	return fmt.Sprintf("unknown scheduler backend %q (supported: lsf, sge)", e.Value)
}

// Is allows errors.Is to match ErrUnknownBackend
func (e *UnknownBackendError) Is(target error) bool {
	return target == ErrUnknownBackend
}

// NewUnknownBackendError creates a new UnknownBackendError
func NewUnknownBackendError(value string) *UnknownBackendError {
	return &UnknownBackendError{Value: value}
}

// ScriptError represents a failure generating one script of a backend set
type ScriptError struct {
	Backend BackendType // Backend that was generating
	Script  string      // Output path of the failed script
	Err     error       // Underlying error
}

func (e *ScriptError) Error() string {
	return fmt.Sprintf("%s: generating %s: %v", e.Backend, e.Script, e.Err)
}

func (e *ScriptError) Unwrap() error {
	return e.Err
}

// NewScriptError creates a new ScriptError
func NewScriptError(backend BackendType, script string, err error) *ScriptError {
	return &ScriptError{
		Backend: backend,
		Script:  script,
		Err:     err,
	}
}

// IsScriptError checks if an error is a ScriptError
func IsScriptError(err error) bool {
	var se *ScriptError
	return errors.As(err, &se)
}
