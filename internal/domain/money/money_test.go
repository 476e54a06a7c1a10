package money_test

import (
	"testing"

	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"

	"github.com/parsa-dev/crm-pro/internal/domain/money"
)

// Reference vector: basePrice 18,000,000 IRR, qty 2, discount 5%, tax 10%.
// Every intermediate must match exactly; a single-final-round
// implementation produces the same numbers here, so the compounding order
// is pinned separately in TestComputeLine_CompoundingOrder.
func TestComputeLine_ReferenceVector(t *testing.T) {
	got := money.ComputeLine(money.LineInput{
		Quantity:    decimal.NewFromInt(2),
		BasePrice:   decimal.NewFromInt(18_000_000),
		DiscountPct: decimal.NewFromInt(5),
		TaxPct:      decimal.NewFromInt(10),
	})

	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(18_000_000)), "unitPrice = %s", got.UnitPrice)
	assert.True(t, got.LineSubtotal.Equal(decimal.NewFromInt(36_000_000)), "lineSubtotal = %s", got.LineSubtotal)
	assert.True(t, got.LineDiscountAmount.Equal(decimal.NewFromInt(1_800_000)), "lineDiscountAmount = %s", got.LineDiscountAmount)
	assert.True(t, got.LineTaxAmount.Equal(decimal.NewFromInt(3_420_000)), "lineTaxAmount = %s", got.LineTaxAmount)
	assert.True(t, got.LineTotal.Equal(decimal.NewFromInt(37_620_000)), "lineTotal = %s", got.LineTotal)
}

// A fractional base price must be rounded before multiplication: with
// basePrice 1000.4 and qty 3 the subtotal is 3000 (3 * 1000), not 3001
// (round(3 * 1000.4)).
func TestComputeLine_CompoundingOrder(t *testing.T) {
	got := money.ComputeLine(money.LineInput{
		Quantity:    decimal.NewFromInt(3),
		BasePrice:   decimal.NewFromFloat(1000.4),
		DiscountPct: decimal.Zero,
		TaxPct:      decimal.Zero,
	})

	assert.True(t, got.UnitPrice.Equal(decimal.NewFromInt(1000)))
	assert.True(t, got.LineSubtotal.Equal(decimal.NewFromInt(3000)))
	assert.True(t, got.LineTotal.Equal(decimal.NewFromInt(3000)))
}

func TestComputeLine_FullDiscountNeverNegative(t *testing.T) {
	got := money.ComputeLine(money.LineInput{
		Quantity:    decimal.NewFromInt(1),
		BasePrice:   decimal.NewFromInt(500_000),
		DiscountPct: decimal.NewFromInt(150), // over 100% must clamp at zero base
		TaxPct:      decimal.NewFromInt(10),
	})

	assert.True(t, got.LineTotal.Equal(decimal.Zero), "lineTotal = %s", got.LineTotal)
	assert.True(t, got.LineTaxAmount.Equal(decimal.Zero))
}

func TestNormalizeQuantity(t *testing.T) {
	cases := []struct {
		in   string
		want string
	}{
		{"2", "2"},
		{"1.23456", "1.234"}, // floored, not rounded
		{"0.0004", "0.001"},  // clamped to the minimum
		{"0", "0.001"},
		{"-3", "0.001"},
	}
	for _, c := range cases {
		in, err := decimal.NewFromString(c.in)
		require.NoError(t, err)
		got := money.NormalizeQuantity(in)
		assert.Equal(t, c.want, got.String(), "NormalizeQuantity(%s)", c.in)
	}
}

func TestNormalizePercent(t *testing.T) {
	got := money.NormalizePercent(decimal.NewFromFloat(7.555))
	assert.Equal(t, "7.56", got.String())
}

func TestSumLines_MatchesLineFields(t *testing.T) {
	lines := []money.LineAmounts{
		money.ComputeLine(money.LineInput{
			Quantity:    decimal.NewFromInt(2),
			BasePrice:   decimal.NewFromInt(18_000_000),
			DiscountPct: decimal.NewFromInt(5),
			TaxPct:      decimal.NewFromInt(10),
		}),
		money.ComputeLine(money.LineInput{
			Quantity:    decimal.NewFromFloat(1.5),
			BasePrice:   decimal.NewFromInt(4_200_000),
			DiscountPct: decimal.Zero,
			TaxPct:      decimal.NewFromInt(10),
		}),
	}

	totals := money.SumLines(lines)

	wantAmount := lines[0].LineTotal.Add(lines[1].LineTotal)
	wantSubtotal := lines[0].LineSubtotal.Add(lines[1].LineSubtotal)
	assert.True(t, totals.Amount.Equal(wantAmount))
	assert.True(t, totals.Subtotal.Equal(wantSubtotal))
	assert.True(t, totals.DiscountAmount.Equal(lines[0].LineDiscountAmount))
}

func TestSumLines_EmptyIsZero(t *testing.T) {
	totals := money.SumLines(nil)
	assert.True(t, totals.Amount.Equal(decimal.Zero))
	assert.True(t, totals.Subtotal.Equal(decimal.Zero))
}
