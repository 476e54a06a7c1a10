package repository

import "github.com/parsa-dev/crm-pro/internal/domain/entity"

// UserRepository is the persistence port for User. Users are process-wide
// identities; nothing here is tenant-scoped.
type UserRepository interface {
	Create(u *entity.User) error
	GetByEmail(email string) (*entity.User, error)
	// UpdatePasswordHash replaces only the password hash, for the
	// seeder's reset-demo-password semantics.
	UpdatePasswordHash(id, hash string) error
}

// MembershipRepository is the persistence port for Membership.
type MembershipRepository interface {
	// Upsert creates or replaces the membership identified by the
	// (tenantID, userID) composite key, forcing role and status.
	Upsert(m *entity.Membership) error
	GetByTenantAndUser(tenantID, userID string) (*entity.Membership, error)
}
