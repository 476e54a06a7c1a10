package repository

import "github.com/parsa-dev/crm-pro/internal/domain/entity"

// TenantRepository is the persistence port for Tenant.
type TenantRepository interface {
	Create(t *entity.Tenant) error
	GetBySlug(slug string) (*entity.Tenant, error)
	List() ([]*entity.Tenant, error)
}
