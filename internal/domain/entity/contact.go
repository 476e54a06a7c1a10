package entity

import "time"

// Contact is a tenant-scoped person, optionally attached to a Company.
type Contact struct {
	ID        string
	TenantID  string
	CompanyID *string // nil = not attached to a company
	FirstName string
	LastName  string
	Email     string
	Phone     string
	CreatedAt time.Time
	UpdatedAt time.Time
}
