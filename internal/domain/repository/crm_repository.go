package repository

import (
	"github.com/parsa-dev/crm-pro/internal/domain/catalog"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
)

// CompanyRepository is the persistence port for Company.
type CompanyRepository interface {
	Create(c *entity.Company) error
	GetByName(tenantID, name string) (*entity.Company, error)
}

// ContactRepository is the persistence port for Contact.
type ContactRepository interface {
	Create(c *entity.Contact) error
	GetByName(tenantID, firstName, lastName string) (*entity.Contact, error)
}

// TaskRepository is the persistence port for Task.
type TaskRepository interface {
	Create(t *entity.Task) error
	GetByTitle(tenantID, title string) (*entity.Task, error)
}

// ActivityRepository is the persistence port for Activity.
type ActivityRepository interface {
	Create(a *entity.Activity) error
	GetBySubject(tenantID, subject string) (*entity.Activity, error)
}

// AuditLogRepository is the read port over the audit log.
type AuditLogRepository interface {
	// ListProductEvents returns the tenant's PRODUCT rows with a catalog
	// action, newest first, as typed catalog events.
	ListProductEvents(tenantID string) ([]catalog.Event, error)
}
