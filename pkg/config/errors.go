package config

import "fmt"

// ValidationError reports an invalid configuration value, naming the
// offending component and field.
type ValidationError struct {
	Component string
	Field     string
	Err       error
}

func (e *ValidationError) Error() string {
	return fmt.Sprintf("%s: invalid %s: %v", e.Component, e.Field, e.Err)
}

func (e *ValidationError) Unwrap() error {
	return e.Err
}
