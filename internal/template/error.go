package template

import (
	"errors"
	"fmt"
	"strings"
)

// Common errors
var (
	// ErrTemplateNotFound indicates no embedded template has the requested name
	ErrTemplateNotFound = errors.New("template not found")

	// ErrMissingBinding indicates a placeholder had no bound value
	ErrMissingBinding = errors.New("placeholder binding missing")

	// ErrOutputDirMissing indicates the output parent directory does not exist
	ErrOutputDirMissing = errors.New("output directory does not exist")
)

// TemplateError represents a failed template rendering
type TemplateError struct {
	Template string   // Template name
	Output   string   // Output path (empty for text-only rendering)
	Missing  []string // Placeholder names with no binding, sorted
	Err      error    // Underlying error
}

func (e *TemplateError) Error() string {
	if len(e.Missing) > 0 {
		return fmt.Sprintf("template %s: no binding for %s",
			e.Template, strings.Join(e.Missing, ", "))
	}
	if e.Output != "" {
		return fmt.Sprintf("template %s: %v: %s", e.Template, e.Err, e.Output)
	}
	return fmt.Sprintf("template %s: %v", e.Template, e.Err)
}

func (e *TemplateError) Unwrap() error {
	return e.Err
}

// NewTemplateError creates a new TemplateError
func NewTemplateError(template string, err error) *TemplateError {
	return &TemplateError{
		Template: template,
		Err:      err,
	}
}

// IsTemplateError checks if an error is a TemplateError
func IsTemplateError(err error) bool {
	var te *TemplateError
	return errors.As(err, &te)
}
