package models

import "github.com/google/uuid"

// NewExecutionID returns a fresh 36-character run identifier.
func NewExecutionID() string {
	return uuid.New().String()
}
