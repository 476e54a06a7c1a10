package entity

import "time"

// Company is a tenant-scoped reference entity for the organizations a
// tenant sells to.
type Company struct {
	ID        string
	TenantID  string
	Name      string
	Phone     string
	City      string
	CreatedAt time.Time
	UpdatedAt time.Time
}
