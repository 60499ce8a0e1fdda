package pricing

import (
	"testing"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func intPtr(v int) *int         { return &v }
func pctPtr(v float64) *float64 { return &v }

func TestUnitPrice_NoDiscounts(t *testing.T) {
	got := UnitPrice(Input{BasePrice: 10, VariantAdjustment: 2, Quantity: 5})
	assert.Equal(t, 12.0, got)
}

func TestUnitPrice_TierDiscountApplied(t *testing.T) {
	// base 10 + adjustment 2, open-ended tier from 50 at 10% off:
	// quantity 60 prices at (10+2)*0.9 = 10.80.
	got := UnitPrice(Input{
		BasePrice:         10,
		VariantAdjustment: 2,
		Tiers:             []Tier{{MinQuantity: 50, DiscountPct: 10}},
		Quantity:          60,
	})
	assert.Equal(t, 10.80, got)
}

func TestUnitPrice_BelowLowestTierFallsBack(t *testing.T) {
	got := UnitPrice(Input{
		BasePrice: 4,
		Tiers:     []Tier{{MinQuantity: 100, DiscountPct: 20}},
		Quantity:  10,
	})
	assert.Equal(t, 4.0, got)
}

func TestUnitPrice_TierOverridesProductDiscount(t *testing.T) {
	in := Input{
		BasePrice:   20,
		DiscountPct: pctPtr(50),
		Tiers:       []Tier{{MinQuantity: 10, MaxQuantity: intPtr(99), DiscountPct: 5}},
		Quantity:    10,
	}
	// Tier matched, so the 50% product discount must not stack or apply.
	assert.Equal(t, 19.0, UnitPrice(in))

	in.Quantity = 5
	assert.Equal(t, 10.0, UnitPrice(in))
}

func TestUnitPrice_QuantityOptionShortCircuits(t *testing.T) {
	got := UnitPrice(Input{
		BasePrice:       10,
		DiscountPct:     pctPtr(25),
		Tiers:           []Tier{{MinQuantity: 1, DiscountPct: 50}},
		QuantityOptions: []QuantityOption{{Quantity: 100, PricePerUnit: 0.09}},
		Quantity:        100,
	})
	assert.Equal(t, 0.09, got)
}

func TestUnitPrice_NeverNegative(t *testing.T) {
	got := UnitPrice(Input{BasePrice: 1, VariantAdjustment: -5, Quantity: 1})
	assert.Equal(t, 0.0, got)
}

func TestSelectTier_ContainmentAndOrder(t *testing.T) {
	tiers := []Tier{
		{MinQuantity: 10, MaxQuantity: intPtr(49), DiscountPct: 5},
		{MinQuantity: 50, MaxQuantity: intPtr(199), DiscountPct: 10},
		{MinQuantity: 200, DiscountPct: 15},
	}

	for q := 1; q <= 500; q++ {
		got := SelectTier(tiers, q)
		if q < 10 {
			assert.Nil(t, got, "quantity %d", q)
			continue
		}
		require.NotNil(t, got, "quantity %d", q)
		assert.LessOrEqual(t, got.MinQuantity, q)
		if got.MaxQuantity != nil {
			assert.GreaterOrEqual(t, *got.MaxQuantity, q)
		}
	}
}

func TestSelectTier_OverlapFirstMatchWins(t *testing.T) {
	tiers := []Tier{
		{MinQuantity: 10, MaxQuantity: intPtr(100), DiscountPct: 5},
		{MinQuantity: 50, MaxQuantity: intPtr(100), DiscountPct: 20},
	}
	got := SelectTier(tiers, 60)
	require.NotNil(t, got)
	assert.Equal(t, 5.0, got.DiscountPct)
}

func TestUnitPrice_MonotonicAcrossAscendingTiers(t *testing.T) {
	in := Input{
		BasePrice: 7.5,
		Tiers: []Tier{
			{MinQuantity: 10, MaxQuantity: intPtr(49), DiscountPct: 5},
			{MinQuantity: 50, MaxQuantity: intPtr(199), DiscountPct: 12},
			{MinQuantity: 200, DiscountPct: 22},
		},
	}
	prev := UnitPrice(Input{BasePrice: in.BasePrice, Tiers: in.Tiers, Quantity: 1})
	for q := 2; q <= 400; q++ {
		in.Quantity = q
		cur := UnitPrice(in)
		assert.LessOrEqual(t, cur, prev, "unit price rose at quantity %d", q)
		prev = cur
	}
}

func TestLineTotal(t *testing.T) {
	got := LineTotal(Input{
		BasePrice:         10,
		VariantAdjustment: 2,
		Tiers:             []Tier{{MinQuantity: 50, DiscountPct: 10}},
		Quantity:          60,
	})
	assert.Equal(t, 648.0, got)
}
