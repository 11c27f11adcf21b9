package launch

import (
	"errors"
	"fmt"
)

// Sentinel errors for the launch package.
var (
	// ErrConfiguration indicates an option value or installation path that
	// cannot be used.
	ErrConfiguration = errors.New("invalid configuration")

	// ErrDirectoryCollision indicates that a fresh run directory could not
	// be created because the timestamped name stayed taken across a retry.
	ErrDirectoryCollision = errors.New("run directory already exists")
)

// ConfigurationError reports an unusable option value. Option holds the flag
// or config key name as the user knows it.
type ConfigurationError struct {
	Option string
	Value  string
	Reason string
}

func (e *ConfigurationError) Error() string {
	if e.Value == "" {
		return fmt.Sprintf("%s: %s", e.Option, e.Reason)
	}
	return fmt.Sprintf("%s %q: %s", e.Option, e.Value, e.Reason)
}

func (e *ConfigurationError) Is(target error) bool {
	return target == ErrConfiguration
}

// NewConfigurationError creates a ConfigurationError for the given option.
func NewConfigurationError(option, value, reason string) *ConfigurationError {
	return &ConfigurationError{Option: option, Value: value, Reason: reason}
}

// IsConfigurationError checks if an error is a ConfigurationError.
func IsConfigurationError(err error) bool {
	var confErr *ConfigurationError
	return errors.As(err, &confErr)
}

// DirectoryCollisionError reports the run directory path that was still
// taken after the retry.
type DirectoryCollisionError struct {
	Path string
}

func (e *DirectoryCollisionError) Error() string {
	return fmt.Sprintf("run directory %s already exists after retry", e.Path)
}

func (e *DirectoryCollisionError) Is(target error) bool {
	return target == ErrDirectoryCollision
}

// NewDirectoryCollisionError creates a DirectoryCollisionError for the path.
func NewDirectoryCollisionError(path string) *DirectoryCollisionError {
	return &DirectoryCollisionError{Path: path}
}

// IsDirectoryCollisionError checks if an error is a DirectoryCollisionError.
func IsDirectoryCollisionError(err error) bool {
	var collErr *DirectoryCollisionError
	return errors.As(err, &collErr)
}
