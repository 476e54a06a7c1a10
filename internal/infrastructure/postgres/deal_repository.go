package postgres

import (
	"context"
	"errors"
	"fmt"
	"time"

	"github.com/jackc/pgx/v5"

	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/money"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
)

var _ repository.DealRepository = (*DealRepo)(nil)

// DealRepo implements DealRepository (deal header and line items) over
// PostgreSQL.
type DealRepo struct {
	q Querier
}

// NewDealRepository builds the adapter. Pass a pool or a tx (Querier).
func NewDealRepository(q Querier) *DealRepo {
	return &DealRepo{q: q}
}

const dealColumns = `id, tenant_id, pipeline_id, stage_id, contact_id, company_id, owner_id,
	title, status, subtotal, discount_amount, tax_amount, amount, expected_close_at, created_at, updated_at`

// Create persists a new deal.
func (r *DealRepo) Create(d *entity.Deal) error {
	query := `
		INSERT INTO deals (` + dealColumns + `)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		d.ID, d.TenantID, d.PipelineID, d.StageID, d.ContactID, d.CompanyID, d.OwnerID,
		d.Title, d.Status, d.Subtotal, d.DiscountAmount, d.TaxAmount, d.Amount,
		d.ExpectedClose, d.CreatedAt, d.UpdatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal: %w", err)
	}
	return nil
}

// GetByTitle returns the deal with the exact title, or nil when absent.
func (r *DealRepo) GetByTitle(tenantID, title string) (*entity.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals WHERE tenant_id = $1 AND title = $2 LIMIT 1`
	row := r.q.QueryRow(context.Background(), query, tenantID, title)
	d, err := scanDeal(row)
	if err != nil {
		if errors.Is(err, pgx.ErrNoRows) {
			return nil, nil
		}
		return nil, fmt.Errorf("get deal by title: %w", err)
	}
	return d, nil
}

// ListByTenant returns the tenant's deals ordered by (created_at, id).
// The ordering is part of the backfill contract: the index-derived line
// variation must be stable across runs.
func (r *DealRepo) ListByTenant(tenantID string) ([]*entity.Deal, error) {
	query := `
		SELECT ` + dealColumns + `
		FROM deals WHERE tenant_id = $1 ORDER BY created_at, id`
	rows, err := r.q.Query(context.Background(), query, tenantID)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}
	defer rows.Close()
	var list []*entity.Deal
	for rows.Next() {
		d, err := scanDeal(rows)
		if err != nil {
			return nil, fmt.Errorf("scan deal: %w", err)
		}
		list = append(list, d)
	}
	return list, rows.Err()
}

func scanDeal(row pgx.Row) (*entity.Deal, error) {
	var d entity.Deal
	err := row.Scan(
		&d.ID, &d.TenantID, &d.PipelineID, &d.StageID, &d.ContactID, &d.CompanyID, &d.OwnerID,
		&d.Title, &d.Status, &d.Subtotal, &d.DiscountAmount, &d.TaxAmount, &d.Amount,
		&d.ExpectedClose, &d.CreatedAt, &d.UpdatedAt,
	)
	if err != nil {
		return nil, err
	}
	return &d, nil
}

// CountItems returns how many line items the deal has.
func (r *DealRepo) CountItems(dealID string) (int, error) {
	var count int
	err := r.q.QueryRow(context.Background(),
		`SELECT COUNT(*) FROM deal_items WHERE deal_id = $1`, dealID,
	).Scan(&count)
	if err != nil {
		return 0, fmt.Errorf("count deal items: %w", err)
	}
	return count, nil
}

// CreateItem persists one line item.
func (r *DealRepo) CreateItem(item *entity.DealItem) error {
	query := `
		INSERT INTO deal_items (id, tenant_id, deal_id, product_code, product_name, unit,
			quantity, unit_price, discount_pct, tax_pct,
			line_subtotal, line_discount_amount, line_tax_amount, line_total, position, created_at)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, $11, $12, $13, $14, $15, $16)`
	_, err := r.q.Exec(context.Background(), query,
		item.ID, item.TenantID, item.DealID, item.ProductCode, item.ProductName, item.Unit,
		item.Quantity, item.UnitPrice, item.DiscountPct, item.TaxPct,
		item.LineSubtotal, item.LineDiscountAmount, item.LineTaxAmount, item.LineTotal,
		item.Position, item.CreatedAt,
	)
	if err != nil {
		return fmt.Errorf("insert deal item: %w", err)
	}
	return nil
}

// UpdateTotals overwrites the deal's monetary aggregates.
func (r *DealRepo) UpdateTotals(dealID string, totals money.DealTotals) error {
	query := `
		UPDATE deals
		SET subtotal = $2, discount_amount = $3, tax_amount = $4, amount = $5, updated_at = $6
		WHERE id = $1`
	_, err := r.q.Exec(context.Background(), query,
		dealID, totals.Subtotal, totals.DiscountAmount, totals.TaxAmount, totals.Amount,
		time.Now().UTC(),
	)
	if err != nil {
		return fmt.Errorf("update deal totals: %w", err)
	}
	return nil
}
