// Package catalog reconstructs the current product catalog from the
// audit log. The application never stores products in a table of their
// own; it appends PRODUCT audit events, and the catalog is a fold over
// that stream with newest-wins conflict resolution per product code.
package catalog

import (
	"encoding/json"
	"sort"
	"strings"

	"github.com/shopspring/decimal"
)

// Product is one entry of the reconstructed catalog.
type Product struct {
	Code      string
	Name      string
	Unit      string
	BasePrice decimal.Decimal
	IsActive  bool
}

// Event is a typed view of one PRODUCT audit row. Meta is the raw
// metadata blob as written by the application.
type Event struct {
	Action string
	Meta   json.RawMessage
}

// Actions that carry a catalog payload. Anything else (DELETE, custom
// actions) is ignored by the reducer.
var catalogActions = map[string]bool{
	"UPSERT": true,
	"CREATE": true,
	"UPDATE": true,
}

// eventMeta mirrors the metadata shape the application writes. Price has
// drifted across app versions, hence the three aliases.
type eventMeta struct {
	Code      string           `json:"code"`
	Name      string           `json:"name"`
	Unit      string           `json:"unit"`
	BasePrice *decimal.Decimal `json:"basePrice"`
	Price     *decimal.Decimal `json:"price"`
	UnitPrice *decimal.Decimal `json:"unitPrice"`
	IsActive  *bool            `json:"isActive"`
}

// parseEvent validates one event into a Product. Returns false when the
// payload is malformed, code or name is empty, or no price alias holds a
// non-negative value.
func parseEvent(ev Event) (Product, bool) {
	if !catalogActions[ev.Action] {
		return Product{}, false
	}
	var meta eventMeta
	if err := json.Unmarshal(ev.Meta, &meta); err != nil {
		return Product{}, false
	}
	code := strings.TrimSpace(meta.Code)
	name := strings.TrimSpace(meta.Name)
	if code == "" || name == "" {
		return Product{}, false
	}
	price := firstPrice(meta.BasePrice, meta.Price, meta.UnitPrice)
	if price == nil || price.IsNegative() {
		return Product{}, false
	}
	active := meta.IsActive == nil || *meta.IsActive
	return Product{
		Code:      code,
		Name:      name,
		Unit:      strings.TrimSpace(meta.Unit),
		BasePrice: *price,
		IsActive:  active,
	}, true
}

func firstPrice(aliases ...*decimal.Decimal) *decimal.Decimal {
	for _, p := range aliases {
		if p != nil {
			return p
		}
	}
	return nil
}

// Reduce folds PRODUCT events, ordered newest first, into the current
// catalog. The first valid event per code wins; older duplicates are
// ignored. Inactive products are dropped from the result. The returned
// slice is sorted by code so two reductions over the same stream are
// identical.
func Reduce(events []Event) []Product {
	byCode := make(map[string]Product)
	for _, ev := range events {
		p, ok := parseEvent(ev)
		if !ok {
			continue
		}
		if _, seen := byCode[p.Code]; seen {
			continue
		}
		byCode[p.Code] = p
	}

	products := make([]Product, 0, len(byCode))
	for _, p := range byCode {
		if p.IsActive {
			products = append(products, p)
		}
	}
	sort.Slice(products, func(i, j int) bool { return products[i].Code < products[j].Code })
	return products
}

// Fallback is the built-in catalog used when the audit log yields no
// valid active product. Prices are in IRR.
func Fallback() []Product {
	return []Product{
		{Code: "CRM-BASE", Name: "اشتراک پایه CRM", Unit: "عدد", BasePrice: decimal.NewFromInt(18_000_000), IsActive: true},
		{Code: "CRM-PRO", Name: "اشتراک حرفه‌ای CRM", Unit: "عدد", BasePrice: decimal.NewFromInt(42_000_000), IsActive: true},
		{Code: "CALL-CENTER", Name: "افزونه مرکز تماس", Unit: "عدد", BasePrice: decimal.NewFromInt(25_000_000), IsActive: true},
		{Code: "SMS-1K", Name: "بسته ۱۰۰۰تایی پیامک", Unit: "بسته", BasePrice: decimal.NewFromInt(4_200_000), IsActive: true},
		{Code: "SUPPORT-GOLD", Name: "پشتیبانی طلایی", Unit: "عدد", BasePrice: decimal.NewFromInt(12_000_000), IsActive: true},
	}
}
