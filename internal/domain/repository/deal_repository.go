package repository

import (
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/money"
)

// DealRepository is the persistence port for Deal and DealItem.
type DealRepository interface {
	Create(d *entity.Deal) error
	GetByTitle(tenantID, title string) (*entity.Deal, error)
	// ListByTenant returns the tenant's deals ordered by (created_at, id)
	// so the backfill's index-derived variation is stable across runs.
	ListByTenant(tenantID string) ([]*entity.Deal, error)
	CountItems(dealID string) (int, error)
	CreateItem(item *entity.DealItem) error
	// UpdateTotals overwrites the deal's four monetary aggregates.
	UpdateTotals(dealID string, totals money.DealTotals) error
}
