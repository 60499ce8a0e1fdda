package pricing

import "github.com/shopspring/decimal"

// Tier maps a quantity range to a percentage discount for bulk pricing.
// MaxQuantity nil means the range is open-ended.
type Tier struct {
	MinQuantity int     `json:"min_quantity"`
	MaxQuantity *int    `json:"max_quantity,omitempty"`
	DiscountPct float64 `json:"discount_pct"`
}

// QuantityOption is a fixed pack size with an explicit per-unit price that
// overrides all tier and discount logic when its quantity is ordered.
type QuantityOption struct {
	Quantity     int     `json:"quantity"`
	PricePerUnit float64 `json:"price_per_unit"`
}

// Input carries everything needed to price one line.
type Input struct {
	BasePrice         float64
	DiscountPct       *float64
	VariantAdjustment float64
	Tiers             []Tier
	QuantityOptions   []QuantityOption
	Quantity          int
}

// SelectTier returns the first tier whose range contains quantity, or nil.
// Tiers are scanned in list order; overlapping ranges are not rejected, the
// first match simply wins.
func SelectTier(tiers []Tier, quantity int) *Tier {
	for i := range tiers {
		t := &tiers[i]
		if quantity < t.MinQuantity {
			continue
		}
		if t.MaxQuantity != nil && quantity > *t.MaxQuantity {
			continue
		}
		return t
	}
	return nil
}

// UnitPrice computes the per-unit price for a line.
//
// A quantity option matching the requested quantity short-circuits everything
// else. Otherwise the variant adjustment is added to the base price and then
// exactly one discount applies: the matching tier's discount if a tier
// contains the quantity, else the product discount if present. Tier and
// product discounts never stack.
func UnitPrice(in Input) float64 {
	for _, opt := range in.QuantityOptions {
		if opt.Quantity == in.Quantity {
			return round2(decimal.NewFromFloat(opt.PricePerUnit))
		}
	}

	unit := decimal.NewFromFloat(in.BasePrice).Add(decimal.NewFromFloat(in.VariantAdjustment))

	var pct float64
	if t := SelectTier(in.Tiers, in.Quantity); t != nil {
		pct = t.DiscountPct
	} else if in.DiscountPct != nil {
		pct = *in.DiscountPct
	}
	if pct > 0 {
		factor := decimal.NewFromInt(100).Sub(decimal.NewFromFloat(pct)).Div(decimal.NewFromInt(100))
		unit = unit.Mul(factor)
	}

	if unit.IsNegative() {
		return 0
	}
	return round2(unit)
}

// LineTotal prices a full line: unit price times quantity, rounded to cents.
func LineTotal(in Input) float64 {
	unit := decimal.NewFromFloat(UnitPrice(in))
	return round2(unit.Mul(decimal.NewFromInt(int64(in.Quantity))))
}

func round2(d decimal.Decimal) float64 {
	f, _ := d.Round(2).Float64()
	return f
}
