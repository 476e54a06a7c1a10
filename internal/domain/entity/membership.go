package entity

import "time"

// Membership roles inside a tenant.
const (
	MembershipRoleOwner   = "OWNER"
	MembershipRoleAdmin   = "ADMIN"
	MembershipRoleManager = "MANAGER"
	MembershipRoleRep     = "REP"
)

// Membership statuses.
const (
	MembershipStatusActive    = "ACTIVE"
	MembershipStatusInvited   = "INVITED"
	MembershipStatusSuspended = "SUSPENDED"
)

// Membership binds a user to a tenant with a role. At most one membership
// exists per (tenant, user) pair.
type Membership struct {
	ID        string
	TenantID  string
	UserID    string
	Role      string // see MembershipRole*
	Status    string // see MembershipStatus*
	CreatedAt time.Time
	UpdatedAt time.Time
}
