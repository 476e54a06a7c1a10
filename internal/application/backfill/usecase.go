// Package backfill is a one-shot repair tool: deals without line items
// get three synthetic DealItems priced from the reconstructed product
// catalog, and their monetary aggregates are recomputed from those lines.
package backfill

import (
	"context"
	"fmt"
	"time"

	"github.com/google/uuid"
	"github.com/shopspring/decimal"

	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/domain/catalog"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/money"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

const linesPerDeal = 3

// The quantity/discount cycles exist purely to make demo data look
// varied; the selection is index-derived so re-runs against the same
// deals are deterministic. There is no pricing rule hiding here.
var (
	quantityCycle = []decimal.Decimal{
		decimal.NewFromInt(1),
		decimal.NewFromInt(2),
		decimal.NewFromFloat(1.5),
		decimal.NewFromInt(3),
		decimal.NewFromFloat(2.5),
	}
	discountCycle = []decimal.Decimal{
		decimal.Zero,
		decimal.NewFromInt(5),
		decimal.NewFromInt(10),
		decimal.NewFromFloat(2.5),
		decimal.NewFromFloat(7.5),
	}
	defaultTaxPct = decimal.NewFromInt(10)
)

// TxRunner executes fn with a DealRepository bound to one transaction, so
// a deal's item inserts and totals update commit or roll back together.
type TxRunner interface {
	Run(ctx context.Context, fn func(deals repository.DealRepository) error) error
}

// Result reports what a backfill run did.
type Result struct {
	DealsUpdated  int
	LinesInserted int
}

// UseCase synthesizes line items for a tenant's deals.
type UseCase struct {
	tenants repository.TenantRepository
	deals   repository.DealRepository
	audit   repository.AuditLogRepository
	tx      TxRunner
	log     *logger.Logger
}

// NewUseCase wires the backfill tool.
func NewUseCase(
	tenants repository.TenantRepository,
	deals repository.DealRepository,
	audit repository.AuditLogRepository,
	tx TxRunner,
	log *logger.Logger,
) *UseCase {
	return &UseCase{tenants: tenants, deals: deals, audit: audit, tx: tx, log: log}
}

// Run backfills every deal of the tenant that has no line items yet. A
// deal with at least one DealItem is left completely untouched.
func (uc *UseCase) Run(ctx context.Context, tenantSlug string) (*Result, error) {
	tenant, err := uc.tenants.GetBySlug(tenantSlug)
	if err != nil {
		return nil, fmt.Errorf("resolve tenant: %w", err)
	}
	if tenant == nil {
		return nil, fmt.Errorf("%w: slug %q", domain.ErrTenantNotFound, tenantSlug)
	}

	products, err := uc.loadCatalog(tenant.ID)
	if err != nil {
		return nil, err
	}

	deals, err := uc.deals.ListByTenant(tenant.ID)
	if err != nil {
		return nil, fmt.Errorf("list deals: %w", err)
	}

	res := &Result{}
	for i, deal := range deals {
		updated, err := uc.backfillDeal(ctx, i, deal, products)
		if err != nil {
			return nil, fmt.Errorf("backfill deal %q: %w", deal.Title, err)
		}
		if updated {
			res.DealsUpdated++
			res.LinesInserted += linesPerDeal
		}
	}

	uc.log.Info().
		Str("slug", tenantSlug).
		Int("deals_updated", res.DealsUpdated).
		Int("lines_inserted", res.LinesInserted).
		Msg("deal item backfill finished")
	return res, nil
}

// loadCatalog folds the tenant's PRODUCT audit events into a catalog,
// falling back to the built-in one when the log yields nothing usable.
func (uc *UseCase) loadCatalog(tenantID string) ([]catalog.Product, error) {
	events, err := uc.audit.ListProductEvents(tenantID)
	if err != nil {
		return nil, fmt.Errorf("list product events: %w", err)
	}
	products := catalog.Reduce(events)
	if len(products) == 0 {
		uc.log.Warn().Msg("no valid active products in audit log, using fallback catalog")
		products = catalog.Fallback()
	}
	if len(products) == 0 {
		return nil, domain.ErrEmptyCatalog
	}
	return products, nil
}

// backfillDeal inserts the synthetic lines and updates the aggregates in
// one transaction. Returns false when the deal already has items.
func (uc *UseCase) backfillDeal(ctx context.Context, dealIndex int, deal *entity.Deal, products []catalog.Product) (bool, error) {
	updated := false
	err := uc.tx.Run(ctx, func(deals repository.DealRepository) error {
		count, err := deals.CountItems(deal.ID)
		if err != nil {
			return fmt.Errorf("count items: %w", err)
		}
		if count > 0 {
			return nil
		}

		items := synthesizeLines(dealIndex, deal, products)
		amounts := make([]money.LineAmounts, 0, len(items))
		for _, item := range items {
			if err := deals.CreateItem(item.item); err != nil {
				return fmt.Errorf("insert item %d: %w", item.item.Position, err)
			}
			amounts = append(amounts, item.amounts)
		}

		if err := deals.UpdateTotals(deal.ID, money.SumLines(amounts)); err != nil {
			return fmt.Errorf("update totals: %w", err)
		}
		updated = true
		return nil
	})
	return updated, err
}

type synthesizedLine struct {
	item    *entity.DealItem
	amounts money.LineAmounts
}

// synthesizeLines builds the three lines for one deal. Product, quantity
// and discount all rotate with (dealIndex + position), offset per line,
// so consecutive deals get visibly different mixes.
func synthesizeLines(dealIndex int, deal *entity.Deal, products []catalog.Product) []synthesizedLine {
	now := time.Now().UTC()
	lines := make([]synthesizedLine, 0, linesPerDeal)
	for pos := 0; pos < linesPerDeal; pos++ {
		p := products[(dealIndex+pos)%len(products)]
		amounts := money.ComputeLine(money.LineInput{
			Quantity:    quantityCycle[(dealIndex+pos)%len(quantityCycle)],
			BasePrice:   p.BasePrice,
			DiscountPct: discountCycle[(dealIndex+pos)%len(discountCycle)],
			TaxPct:      defaultTaxPct,
		})
		lines = append(lines, synthesizedLine{
			item: &entity.DealItem{
				ID:                 uuid.New().String(),
				TenantID:           deal.TenantID,
				DealID:             deal.ID,
				ProductCode:        p.Code,
				ProductName:        p.Name,
				Unit:               p.Unit,
				Quantity:           amounts.Quantity,
				UnitPrice:          amounts.UnitPrice,
				DiscountPct:        amounts.DiscountPct,
				TaxPct:             amounts.TaxPct,
				LineSubtotal:       amounts.LineSubtotal,
				LineDiscountAmount: amounts.LineDiscountAmount,
				LineTaxAmount:      amounts.LineTaxAmount,
				LineTotal:          amounts.LineTotal,
				Position:           pos,
				CreatedAt:          now,
			},
			amounts: amounts,
		})
	}
	return lines
}
