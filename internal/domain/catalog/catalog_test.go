package catalog_test

import (
	"encoding/json"
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-dev/crm-pro/internal/domain/catalog"
)

func ev(t *testing.T, action, meta string) catalog.Event {
	t.Helper()
	require.True(t, json.Valid([]byte(meta)), "test meta must be valid JSON: %s", meta)
	return catalog.Event{Action: action, Meta: json.RawMessage(meta)}
}

// Events arrive newest first; the first valid event per code wins and
// older duplicates are ignored.
func TestReduce_NewestWins(t *testing.T) {
	events := []catalog.Event{
		ev(t, "UPDATE", `{"code":"CRM-BASE","name":"پلن پایه","basePrice":20000000}`),
		ev(t, "CREATE", `{"code":"CRM-BASE","name":"پلن پایه قدیمی","basePrice":15000000}`),
	}

	products := catalog.Reduce(events)

	require.Len(t, products, 1)
	assert.Equal(t, "پلن پایه", products[0].Name)
	assert.Equal(t, "20000000", products[0].BasePrice.String())
}

// A malformed newest event must not shadow an older valid one.
func TestReduce_InvalidRowsSkipped(t *testing.T) {
	events := []catalog.Event{
		ev(t, "UPSERT", `{"code":"","name":"بدون کد","basePrice":1000}`),
		ev(t, "UPSERT", `{"code":"X1","name":""}`),
		ev(t, "UPSERT", `{"code":"X1","basePrice":5}`),
		ev(t, "UPSERT", `{"code":"X1","name":"محصول","basePrice":-7}`),
		{Action: "UPSERT", Meta: json.RawMessage(`not-json`)},
		ev(t, "UPSERT", `{"code":"X1","name":"محصول معتبر","basePrice":9000}`),
	}

	products := catalog.Reduce(events)

	require.Len(t, products, 1)
	assert.Equal(t, "X1", products[0].Code)
	assert.Equal(t, "محصول معتبر", products[0].Name)
}

func TestReduce_PriceAliases(t *testing.T) {
	events := []catalog.Event{
		ev(t, "UPSERT", `{"code":"A","name":"a","basePrice":100}`),
		ev(t, "UPSERT", `{"code":"B","name":"b","price":200}`),
		ev(t, "UPSERT", `{"code":"C","name":"c","unitPrice":"300"}`),
		ev(t, "UPSERT", `{"code":"D","name":"d","basePrice":0,"price":999}`), // basePrice wins even at zero
	}

	products := catalog.Reduce(events)

	require.Len(t, products, 4)
	prices := map[string]string{}
	for _, p := range products {
		prices[p.Code] = p.BasePrice.String()
	}
	assert.Equal(t, map[string]string{"A": "100", "B": "200", "C": "300", "D": "0"}, prices)
}

func TestReduce_InactiveDropped(t *testing.T) {
	events := []catalog.Event{
		ev(t, "UPSERT", `{"code":"OLD","name":"بازنشسته","basePrice":100,"isActive":false}`),
		ev(t, "UPSERT", `{"code":"NEW","name":"فعال","basePrice":100,"isActive":true}`),
		ev(t, "UPSERT", `{"code":"IMPLICIT","name":"بدون پرچم","basePrice":100}`),
	}

	products := catalog.Reduce(events)

	require.Len(t, products, 2)
	assert.Equal(t, "IMPLICIT", products[0].Code)
	assert.Equal(t, "NEW", products[1].Code)
}

// A newest inactive event retires the product even when older active
// events exist: newest-wins resolves first, the active filter runs after.
func TestReduce_NewestInactiveRetiresProduct(t *testing.T) {
	events := []catalog.Event{
		ev(t, "UPDATE", `{"code":"P","name":"محصول","basePrice":100,"isActive":false}`),
		ev(t, "CREATE", `{"code":"P","name":"محصول","basePrice":100,"isActive":true}`),
	}

	assert.Empty(t, catalog.Reduce(events))
}

func TestReduce_IgnoresNonCatalogActions(t *testing.T) {
	events := []catalog.Event{
		ev(t, "DELETE", `{"code":"P","name":"محصول","basePrice":100}`),
		ev(t, "VIEWED", `{"code":"P","name":"محصول","basePrice":100}`),
	}

	assert.Empty(t, catalog.Reduce(events))
}

func TestFallback_FiveActiveProducts(t *testing.T) {
	products := catalog.Fallback()

	require.Len(t, products, 5)
	codes := map[string]bool{}
	for _, p := range products {
		assert.True(t, p.IsActive)
		assert.NotEmpty(t, p.Name)
		assert.True(t, p.BasePrice.IsPositive())
		codes[p.Code] = true
	}
	assert.Len(t, codes, 5, "fallback codes must be unique")
}
