package services

import (
	"errors"
	"fmt"
)

// Sentinel errors returned by the service layer. Handlers translate them
// into HTTP statuses and user-facing messages.
var (
	ErrNotFound           = errors.New("record not found")
	ErrMissingField       = errors.New("required field missing")
	ErrDuplicateName      = errors.New("category name already exists")
	ErrDuplicateSlug      = errors.New("product slug already exists")
	ErrEmailTaken         = errors.New("email already registered")
	ErrInvalidCredentials = errors.New("invalid email or password")
)

// DependencyConflictError blocks category deletion while products still
// reference it.
type DependencyConflictError struct {
	ProductCount int64
}

func (e *DependencyConflictError) Error() string {
	return fmt.Sprintf("category is referenced by %d products", e.ProductCount)
}
