package entity

import "time"

// User is a process-wide identity. It may belong to several tenants at
// once; the per-tenant role lives on Membership, never here.
type User struct {
	ID           string
	Email        string
	PasswordHash string // bcrypt hash, never plaintext past the seeder
	Name         string
	Phone        string
	CreatedAt    time.Time
	UpdatedAt    time.Time
}

// Session is an authenticated session bound to one user inside one tenant.
// Sessions are ephemeral and excluded from snapshots by default.
type Session struct {
	ID        string
	TenantID  string
	UserID    string
	TokenHash string
	ExpiresAt time.Time
	CreatedAt time.Time
}
