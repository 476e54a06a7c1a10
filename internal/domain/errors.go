package domain

import "errors"

// Domain errors (no external dependencies).
var (
	ErrNotFound        = errors.New("resource not found")
	ErrTenantNotFound  = errors.New("tenant not found")
	ErrDuplicate       = errors.New("duplicate resource")
	ErrGuardRejected   = errors.New("refused by environment guard")
	ErrInvalidSnapshot = errors.New("invalid snapshot document")
	ErrEmptyCatalog    = errors.New("product catalog is empty")
	ErrMissingRowID    = errors.New("row is missing a required id")
)
