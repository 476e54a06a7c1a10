package entity

import "time"

// Tenant statuses.
const (
	TenantStatusActive    = "ACTIVE"
	TenantStatusSuspended = "SUSPENDED"
	TenantStatusArchived  = "ARCHIVED"
)

// Tenant is the root of the ownership tree: every other row in the system
// is reachable only through its tenant_id (users and permissions excepted,
// they are process-wide identities).
type Tenant struct {
	ID        string
	Slug      string // unique, used as the operator-facing handle
	Name      string
	Status    string // see TenantStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}
