package catalog

import (
	"errors"
	"fmt"
	"math"
)

var (
	ErrTierHasNoPrice  = errors.New("pricing tier has no price for any billing cycle")
	ErrInvalidDiscount = errors.New("invalid discount definition")
)

// SelectedPrice returns the tier price for the requested cycle. When the tier
// carries no price for that cycle it falls back to the first of
// monthly, yearly, one-time that is set.
func SelectedPrice(tier *PricingTier, cycle BillingCycle) (int64, error) {
	switch cycle {
	case CycleMonthly:
		if tier.MonthlyPriceCents != nil {
			return *tier.MonthlyPriceCents, nil
		}
	case CycleYearly:
		if tier.YearlyPriceCents != nil {
			return *tier.YearlyPriceCents, nil
		}
	case CycleOneTime:
		if tier.OneTimePriceCents != nil {
			return *tier.OneTimePriceCents, nil
		}
	}

	if tier.MonthlyPriceCents != nil {
		return *tier.MonthlyPriceCents, nil
	}
	if tier.YearlyPriceCents != nil {
		return *tier.YearlyPriceCents, nil
	}
	if tier.OneTimePriceCents != nil {
		return *tier.OneTimePriceCents, nil
	}
	return 0, ErrTierHasNoPrice
}

// DefaultCycle seeds UI selection: monthly if set, else yearly, else one-time.
func DefaultCycle(tier *PricingTier) (BillingCycle, error) {
	switch {
	case tier.MonthlyPriceCents != nil:
		return CycleMonthly, nil
	case tier.YearlyPriceCents != nil:
		return CycleYearly, nil
	case tier.OneTimePriceCents != nil:
		return CycleOneTime, nil
	}
	return "", ErrTierHasNoPrice
}

// ApplyDiscount computes the discounted price in cents. A nil discount leaves
// the price unchanged. The result never goes below zero.
func ApplyDiscount(priceCents int64, discount *DiscountCode) int64 {
	if discount == nil {
		return priceCents
	}

	var discounted int64
	switch discount.DiscountType {
	case DiscountPercent:
		off := int64(math.Round(float64(priceCents) * float64(discount.DiscountValue) / 100))
		discounted = priceCents - off
	case DiscountFixed:
		discounted = priceCents - discount.DiscountValue
	default:
		discounted = priceCents
	}

	if discounted < 0 {
		return 0
	}
	return discounted
}

// ValidateTiers enforces catalog integrity at load time: every tier must carry
// at least one price, and hidden tiers must carry a signup code. A violation
// here is a data error the process should refuse to start on.
func ValidateTiers(tiers []PricingTier) error {
	for i := range tiers {
		t := &tiers[i]
		if _, err := DefaultCycle(t); err != nil {
			return fmt.Errorf("tier %q (id %d): %w", t.Name, t.ID, err)
		}
		if t.IsHidden && (t.SignupCode == nil || *t.SignupCode == "") {
			return fmt.Errorf("tier %q (id %d): hidden tier requires a signup code", t.Name, t.ID)
		}
	}
	return nil
}

// ValidateDiscount rejects definitions that could never apply cleanly:
// percent discounts outside 0-100 and negative fixed amounts.
func ValidateDiscount(d *DiscountCode) error {
	switch d.DiscountType {
	case DiscountPercent:
		if d.DiscountValue < 0 || d.DiscountValue > 100 {
			return fmt.Errorf("%w: percent value must be within 0-100", ErrInvalidDiscount)
		}
	case DiscountFixed:
		if d.DiscountValue < 0 {
			return fmt.Errorf("%w: fixed amount must not be negative", ErrInvalidDiscount)
		}
	default:
		return fmt.Errorf("%w: unknown type %q", ErrInvalidDiscount, d.DiscountType)
	}
	return nil
}
