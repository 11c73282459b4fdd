package pricing

import "github.com/shopspring/decimal"

// Item is a cart line as seen by the allocator. Prices are in BRL.
type Item struct {
	Name                string
	UnitPrice           float64
	Quantity            int
	DiscountedUnitPrice float64
}

// Allocate spreads a coupon discount across the cart so that the sum of the
// discounted line totals reconciles with subtotal − discount. Each item's
// share of the discount is proportional to its unit price relative to the
// subtotal, and that share is then divided by the line quantity to obtain a
// per-unit discount. The discounted unit price is rounded to 2 decimal
// places; rounding drift across lines is not reconciled.
//
// When the subtotal or the discount is zero the prices pass through
// unchanged.
func Allocate(items []Item, discountAmount float64) []Item {
	out := make([]Item, len(items))
	copy(out, items)

	subtotal := Subtotal(items)
	if subtotal.IsZero() || discountAmount <= 0 {
		for i := range out {
			out[i].DiscountedUnitPrice = out[i].UnitPrice
		}
		return out
	}

	discount := decimal.NewFromFloat(discountAmount)
	for i := range out {
		unit := decimal.NewFromFloat(out[i].UnitPrice)
		qty := decimal.NewFromInt(int64(out[i].Quantity))

		// share of the total discount carried by this line, proportional
		// to a single unit's price over the cart subtotal
		share := discount.Mul(unit).Div(subtotal)
		perUnit := share.Div(qty)

		out[i].DiscountedUnitPrice, _ = unit.Sub(perUnit).Round(2).Float64()
	}
	return out
}

// Subtotal returns Σ(unitPrice × quantity) over the cart.
func Subtotal(items []Item) decimal.Decimal {
	sum := decimal.Zero
	for _, it := range items {
		unit := decimal.NewFromFloat(it.UnitPrice)
		qty := decimal.NewFromInt(int64(it.Quantity))
		sum = sum.Add(unit.Mul(qty))
	}
	return sum
}
