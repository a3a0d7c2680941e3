package commercetools

import (
	"errors"
	"fmt"
)

var (
	// ErrNotFound indicates the requested resource does not exist.
	ErrNotFound = errors.New("resource not found")

	// ErrAlreadyExists indicates a create targeted a key that is already
	// occupied. Creates have no upsert semantics here.
	ErrAlreadyExists = errors.New("resource already exists")

	// ErrVersionConflict indicates the submitted version no longer matches
	// the stored one; the record changed since it was read.
	ErrVersionConflict = errors.New("version conflict")
)

// APIError is a non-2xx response from the commercetools API.
type APIError struct {
	StatusCode int
	Message    string
}

func (e *APIError) Error() string {
	return fmt.Sprintf("commercetools API error (status %d): %s", e.StatusCode, e.Message)
}
