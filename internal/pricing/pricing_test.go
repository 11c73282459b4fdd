package pricing

import (
	"math"
	"testing"
)

func TestAllocate_ZeroDiscountKeepsPrices(t *testing.T) {
	items := []Item{
		{Name: "Camiseta", UnitPrice: 79.9, Quantity: 2},
		{Name: "Moletom", UnitPrice: 149.9, Quantity: 1},
	}

	got := Allocate(items, 0)
	for i, it := range got {
		if it.DiscountedUnitPrice != items[i].UnitPrice {
			t.Errorf("item %d: expected %v, got %v", i, items[i].UnitPrice, it.DiscountedUnitPrice)
		}
	}
}

func TestAllocate_ZeroSubtotal(t *testing.T) {
	items := []Item{
		{Name: "Brinde", UnitPrice: 0, Quantity: 3},
	}

	// must not divide by zero
	got := Allocate(items, 10)
	if got[0].DiscountedUnitPrice != 0 {
		t.Errorf("expected 0, got %v", got[0].DiscountedUnitPrice)
	}
}

func TestAllocate_WorkedExample(t *testing.T) {
	items := []Item{
		{Name: "A", UnitPrice: 100, Quantity: 2},
		{Name: "B", UnitPrice: 50, Quantity: 1},
	}

	got := Allocate(items, 25)
	if got[0].DiscountedUnitPrice != 95 {
		t.Errorf("item A: expected 95, got %v", got[0].DiscountedUnitPrice)
	}
	if got[1].DiscountedUnitPrice != 45 {
		t.Errorf("item B: expected 45, got %v", got[1].DiscountedUnitPrice)
	}

	// A gets 25×100/250 = 10 split over 2 units, B gets 25×50/250 = 5,
	// so the gateway sees 95×2 + 45 = 235
	total := got[0].DiscountedUnitPrice*2 + got[1].DiscountedUnitPrice*1
	if total != 235 {
		t.Errorf("expected allocated total 235, got %v", total)
	}
}

// Each line's share of the discount is weighted by its unit price over the
// subtotal. That share, not the raw coupon value, is what the line gives up.
func TestAllocate_SharesFollowUnitPrices(t *testing.T) {
	carts := [][]Item{
		{
			{UnitPrice: 79.9, Quantity: 2},
			{UnitPrice: 149.9, Quantity: 1},
			{UnitPrice: 33.33, Quantity: 3},
		},
		{
			{UnitPrice: 10, Quantity: 7},
			{UnitPrice: 0.99, Quantity: 5},
		},
		{
			{UnitPrice: 1234.56, Quantity: 1},
		},
	}
	discounts := []float64{15, 4.5, 200}

	for ci, items := range carts {
		discount := discounts[ci]
		got := Allocate(items, discount)

		subtotal := 0.0
		for _, it := range items {
			subtotal += it.UnitPrice * float64(it.Quantity)
		}

		for i, it := range got {
			unit := items[i].UnitPrice
			qty := float64(items[i].Quantity)
			share := discount * unit / subtotal
			applied := (unit - it.DiscountedUnitPrice) * qty
			// per-unit rounding to 2 decimals drifts at most a cent per unit
			if math.Abs(applied-share) > 0.01*qty {
				t.Errorf("cart %d item %d: line gave up %v, expected share %v", ci, i, applied, share)
			}
		}
	}
}

func TestAllocate_DoesNotMutateInput(t *testing.T) {
	items := []Item{{UnitPrice: 100, Quantity: 1}}
	Allocate(items, 50)
	if items[0].DiscountedUnitPrice != 0 {
		t.Errorf("input slice was mutated: %+v", items[0])
	}
}
