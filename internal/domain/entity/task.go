package entity

import "time"

// Task statuses.
const (
	TaskStatusOpen = "OPEN"
	TaskStatusDone = "DONE"
)

// Task is a tenant-scoped to-do, optionally linked to a deal and/or a
// contact.
type Task struct {
	ID         string
	TenantID   string
	DealID     *string
	ContactID  *string
	AssigneeID *string
	Title      string
	Status     string // see TaskStatus*
	DueAt      *time.Time
	CreatedAt  time.Time
	UpdatedAt  time.Time
}
