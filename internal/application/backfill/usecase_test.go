package backfill_test

import (
	"context"
	"encoding/json"
	"testing"
	"time"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-dev/crm-pro/internal/application/backfill"
	"github.com/parsa-dev/crm-pro/internal/domain"
	"github.com/parsa-dev/crm-pro/internal/domain/catalog"
	"github.com/parsa-dev/crm-pro/internal/domain/entity"
	"github.com/parsa-dev/crm-pro/internal/domain/money"
	"github.com/parsa-dev/crm-pro/internal/domain/repository"
	"github.com/parsa-dev/crm-pro/pkg/logger"
)

// ---- in-memory fakes ----

type fakeTenantRepo struct {
	tenant *entity.Tenant
}

func (f *fakeTenantRepo) Create(t *entity.Tenant) error { return nil }
func (f *fakeTenantRepo) GetBySlug(slug string) (*entity.Tenant, error) {
	if f.tenant != nil && f.tenant.Slug == slug {
		return f.tenant, nil
	}
	return nil, nil
}
func (f *fakeTenantRepo) List() ([]*entity.Tenant, error) {
	if f.tenant == nil {
		return nil, nil
	}
	return []*entity.Tenant{f.tenant}, nil
}

type fakeDealRepo struct {
	deals  []*entity.Deal
	items  map[string][]*entity.DealItem
	totals map[string]money.DealTotals
}

func newFakeDealRepo(deals ...*entity.Deal) *fakeDealRepo {
	return &fakeDealRepo{
		deals:  deals,
		items:  map[string][]*entity.DealItem{},
		totals: map[string]money.DealTotals{},
	}
}

func (f *fakeDealRepo) Create(d *entity.Deal) error { f.deals = append(f.deals, d); return nil }
func (f *fakeDealRepo) GetByTitle(tenantID, title string) (*entity.Deal, error) {
	for _, d := range f.deals {
		if d.TenantID == tenantID && d.Title == title {
			return d, nil
		}
	}
	return nil, nil
}
func (f *fakeDealRepo) ListByTenant(tenantID string) ([]*entity.Deal, error) {
	var out []*entity.Deal
	for _, d := range f.deals {
		if d.TenantID == tenantID {
			out = append(out, d)
		}
	}
	return out, nil
}
func (f *fakeDealRepo) CountItems(dealID string) (int, error) { return len(f.items[dealID]), nil }
func (f *fakeDealRepo) CreateItem(item *entity.DealItem) error {
	f.items[item.DealID] = append(f.items[item.DealID], item)
	return nil
}
func (f *fakeDealRepo) UpdateTotals(dealID string, totals money.DealTotals) error {
	f.totals[dealID] = totals
	return nil
}

type fakeAuditRepo struct {
	events []catalog.Event
}

func (f *fakeAuditRepo) ListProductEvents(tenantID string) ([]catalog.Event, error) {
	return f.events, nil
}

// fakeTxRunner hands the same repo back without any transaction; the
// use case's logic does not depend on isolation for these tests.
type fakeTxRunner struct {
	deals *fakeDealRepo
}

func (f *fakeTxRunner) Run(ctx context.Context, fn func(deals repository.DealRepository) error) error {
	return fn(f.deals)
}

func testLogger() *logger.Logger {
	return logger.New(logger.Config{Env: "development", Level: "error"})
}

func demoTenant() *entity.Tenant {
	return &entity.Tenant{ID: "t-1", Slug: "demo", Name: "شرکت نمونه", Status: "ACTIVE"}
}

func openDeal(id string) *entity.Deal {
	return &entity.Deal{
		ID:        id,
		TenantID:  "t-1",
		Title:     "deal " + id,
		Status:    entity.DealStatusOpen,
		CreatedAt: time.Now().UTC(),
	}
}

func buildUseCase(tenants *fakeTenantRepo, deals *fakeDealRepo, audit *fakeAuditRepo) *backfill.UseCase {
	return backfill.NewUseCase(tenants, deals, audit, &fakeTxRunner{deals: deals}, testLogger())
}

// ---- tests ----

func TestRun_TenantNotFound(t *testing.T) {
	uc := buildUseCase(&fakeTenantRepo{}, newFakeDealRepo(), &fakeAuditRepo{})

	_, err := uc.Run(context.Background(), "missing")
	require.Error(t, err)
	assert.ErrorIs(t, err, domain.ErrTenantNotFound)
}

func TestRun_BackfillsEmptyDealFromFallbackCatalog(t *testing.T) {
	deal := openDeal("d-1")
	deals := newFakeDealRepo(deal)
	uc := buildUseCase(&fakeTenantRepo{tenant: demoTenant()}, deals, &fakeAuditRepo{})

	res, err := uc.Run(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, res.DealsUpdated)
	assert.Equal(t, 3, res.LinesInserted)

	items := deals.items["d-1"]
	require.Len(t, items, 3)

	// First deal, first line: CRM-BASE at 18,000,000, qty 1, no
	// discount, 10% tax.
	first := items[0]
	assert.Equal(t, "CRM-BASE", first.ProductCode)
	assert.Equal(t, 0, first.Position)
	assert.True(t, first.Quantity.Equal(decimal.NewFromInt(1)), "quantity %s", first.Quantity)
	assert.True(t, first.LineSubtotal.Equal(decimal.NewFromInt(18_000_000)), "subtotal %s", first.LineSubtotal)
	assert.True(t, first.LineDiscountAmount.IsZero())
	assert.True(t, first.LineTaxAmount.Equal(decimal.NewFromInt(1_800_000)), "tax %s", first.LineTaxAmount)
	assert.True(t, first.LineTotal.Equal(decimal.NewFromInt(19_800_000)), "total %s", first.LineTotal)

	// Second line: CRM-PRO at 42,000,000, qty 2, 5% discount.
	second := items[1]
	assert.Equal(t, "CRM-PRO", second.ProductCode)
	assert.True(t, second.LineSubtotal.Equal(decimal.NewFromInt(84_000_000)), "subtotal %s", second.LineSubtotal)
	assert.True(t, second.LineDiscountAmount.Equal(decimal.NewFromInt(4_200_000)), "discount %s", second.LineDiscountAmount)
	assert.True(t, second.LineTaxAmount.Equal(decimal.NewFromInt(7_980_000)), "tax %s", second.LineTaxAmount)
	assert.True(t, second.LineTotal.Equal(decimal.NewFromInt(87_780_000)), "total %s", second.LineTotal)

	// Third line: CALL-CENTER at 25,000,000, qty 1.5, 10% discount.
	third := items[2]
	assert.Equal(t, "CALL-CENTER", third.ProductCode)
	assert.True(t, third.LineSubtotal.Equal(decimal.NewFromInt(37_500_000)), "subtotal %s", third.LineSubtotal)
	assert.True(t, third.LineDiscountAmount.Equal(decimal.NewFromInt(3_750_000)), "discount %s", third.LineDiscountAmount)
	assert.True(t, third.LineTaxAmount.Equal(decimal.NewFromInt(3_375_000)), "tax %s", third.LineTaxAmount)
	assert.True(t, third.LineTotal.Equal(decimal.NewFromInt(37_125_000)), "total %s", third.LineTotal)

	totals := deals.totals["d-1"]
	assert.True(t, totals.Subtotal.Equal(decimal.NewFromInt(139_500_000)), "subtotal %s", totals.Subtotal)
	assert.True(t, totals.DiscountAmount.Equal(decimal.NewFromInt(7_950_000)), "discount %s", totals.DiscountAmount)
	assert.True(t, totals.TaxAmount.Equal(decimal.NewFromInt(13_155_000)), "tax %s", totals.TaxAmount)
	assert.True(t, totals.Amount.Equal(decimal.NewFromInt(144_705_000)), "amount %s", totals.Amount)
}

func TestRun_SkipsDealsThatAlreadyHaveItems(t *testing.T) {
	full := openDeal("d-full")
	empty := openDeal("d-empty")
	deals := newFakeDealRepo(full, empty)
	deals.items["d-full"] = []*entity.DealItem{{ID: "existing", DealID: "d-full"}}

	uc := buildUseCase(&fakeTenantRepo{tenant: demoTenant()}, deals, &fakeAuditRepo{})

	res, err := uc.Run(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 1, res.DealsUpdated)
	assert.Equal(t, 3, res.LinesInserted)
	assert.Len(t, deals.items["d-full"], 1, "pre-existing items must be untouched")
	assert.Len(t, deals.items["d-empty"], 3)
}

func TestRun_SecondRunIsNoop(t *testing.T) {
	deals := newFakeDealRepo(openDeal("d-1"))
	uc := buildUseCase(&fakeTenantRepo{tenant: demoTenant()}, deals, &fakeAuditRepo{})

	_, err := uc.Run(context.Background(), "demo")
	require.NoError(t, err)

	res, err := uc.Run(context.Background(), "demo")
	require.NoError(t, err)
	assert.Equal(t, 0, res.DealsUpdated)
	assert.Equal(t, 0, res.LinesInserted)
	assert.Len(t, deals.items["d-1"], 3)
}

func TestRun_UsesCatalogFromAuditLog(t *testing.T) {
	meta, err := json.Marshal(map[string]any{
		"code": "CUSTOM-1", "name": "محصول سفارشی", "unit": "عدد",
		"basePrice": 1_000_000, "isActive": true,
	})
	require.NoError(t, err)

	deals := newFakeDealRepo(openDeal("d-1"))
	audit := &fakeAuditRepo{events: []catalog.Event{{Action: entity.AuditActionCreate, Meta: meta}}}
	uc := buildUseCase(&fakeTenantRepo{tenant: demoTenant()}, deals, audit)

	_, err = uc.Run(context.Background(), "demo")
	require.NoError(t, err)

	for _, item := range deals.items["d-1"] {
		assert.Equal(t, "CUSTOM-1", item.ProductCode)
		assert.True(t, item.UnitPrice.Equal(decimal.NewFromInt(1_000_000)))
	}
}
