package entity

import "time"

// Role is a tenant-defined permission bundle (distinct from the fixed
// membership role, which only controls tenant administration).
type Role struct {
	ID          string
	TenantID    string
	Name        string
	Description string
	CreatedAt   time.Time
	UpdatedAt   time.Time
}

// Permission is a process-wide permission code shared across tenants.
type Permission struct {
	ID          string
	Code        string // e.g. "deal.read", "deal.write"
	Description string
	CreatedAt   time.Time
}

// RolePermission links a Role to a Permission.
type RolePermission struct {
	ID           string
	RoleID       string
	PermissionID string
	CreatedAt    time.Time
}
