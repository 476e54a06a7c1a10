// Package money implements the line-item rounding law shared by deals and
// their line items. Every intermediate value is rounded to a whole
// currency unit (IRR) before the next step; this compounding order is part
// of the contract and must not be "simplified" into a single final round.
package money

import "github.com/shopspring/decimal"

// LineInput is the raw pricing input for one line.
type LineInput struct {
	Quantity    decimal.Decimal
	BasePrice   decimal.Decimal
	DiscountPct decimal.Decimal
	TaxPct      decimal.Decimal
}

// LineAmounts is the fully rounded result of applying the law to one line.
type LineAmounts struct {
	Quantity           decimal.Decimal // floored to 3 decimals, min 0.001
	UnitPrice          decimal.Decimal
	DiscountPct        decimal.Decimal // rounded to 2 decimals
	TaxPct             decimal.Decimal // rounded to 2 decimals
	LineSubtotal       decimal.Decimal
	LineDiscountAmount decimal.Decimal
	LineTaxAmount      decimal.Decimal
	LineTotal          decimal.Decimal
}

// DealTotals are the deal-level aggregates, defined as plain sums of the
// corresponding per-line fields.
type DealTotals struct {
	Subtotal       decimal.Decimal
	DiscountAmount decimal.Decimal
	TaxAmount      decimal.Decimal
	Amount         decimal.Decimal
}

var minQuantity = decimal.NewFromFloat(0.001)

// NormalizeQuantity floors a quantity to 3 decimal places and clamps it to
// a minimum of 0.001.
func NormalizeQuantity(q decimal.Decimal) decimal.Decimal {
	q = q.RoundFloor(3)
	if q.LessThan(minQuantity) {
		return minQuantity
	}
	return q
}

// NormalizePercent rounds a percentage to 2 decimal places.
func NormalizePercent(p decimal.Decimal) decimal.Decimal {
	return p.Round(2)
}

// ComputeLine applies the six-step law:
//
//	unitPrice    = round(basePrice)
//	lineSubtotal = round(quantity * unitPrice)
//	lineDiscount = round(lineSubtotal * discountPct / 100)
//	taxableBase  = max(0, lineSubtotal - lineDiscount)
//	lineTax      = round(taxableBase * taxPct / 100)
//	lineTotal    = round(taxableBase + lineTax)
//
// round() is half-away-from-zero to a whole unit.
func ComputeLine(in LineInput) LineAmounts {
	qty := NormalizeQuantity(in.Quantity)
	discountPct := NormalizePercent(in.DiscountPct)
	taxPct := NormalizePercent(in.TaxPct)

	unitPrice := in.BasePrice.Round(0)
	lineSubtotal := qty.Mul(unitPrice).Round(0)
	lineDiscount := lineSubtotal.Mul(discountPct).Div(decimal.NewFromInt(100)).Round(0)
	taxableBase := decimal.Max(decimal.Zero, lineSubtotal.Sub(lineDiscount))
	lineTax := taxableBase.Mul(taxPct).Div(decimal.NewFromInt(100)).Round(0)
	lineTotal := taxableBase.Add(lineTax).Round(0)

	return LineAmounts{
		Quantity:           qty,
		UnitPrice:          unitPrice,
		DiscountPct:        discountPct,
		TaxPct:             taxPct,
		LineSubtotal:       lineSubtotal,
		LineDiscountAmount: lineDiscount,
		LineTaxAmount:      lineTax,
		LineTotal:          lineTotal,
	}
}

// SumLines aggregates line amounts into deal totals. The totals are sums
// of the already-rounded line fields, never recomputed from scratch, so a
// deal and its lines are consistent by construction.
func SumLines(lines []LineAmounts) DealTotals {
	t := DealTotals{
		Subtotal:       decimal.Zero,
		DiscountAmount: decimal.Zero,
		TaxAmount:      decimal.Zero,
		Amount:         decimal.Zero,
	}
	for _, l := range lines {
		t.Subtotal = t.Subtotal.Add(l.LineSubtotal)
		t.DiscountAmount = t.DiscountAmount.Add(l.LineDiscountAmount)
		t.TaxAmount = t.TaxAmount.Add(l.LineTaxAmount)
		t.Amount = t.Amount.Add(l.LineTotal)
	}
	return t
}
