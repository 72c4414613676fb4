package catalog

import (
	"strings"
	"time"

	"github.com/lib/pq"
)

type BillingCycle string
type DiscountType string

const (
	CycleMonthly BillingCycle = "monthly"
	CycleYearly  BillingCycle = "yearly"
	CycleOneTime BillingCycle = "one_time"

	DiscountPercent DiscountType = "percent"
	DiscountFixed   DiscountType = "fixed"
)

type PricingTier struct {
	ID                int            `db:"id" json:"id"`
	Name              string         `db:"name" json:"name"`
	MonthlyPriceCents *int64         `db:"monthly_price_cents" json:"monthly_price_cents,omitempty"`
	YearlyPriceCents  *int64         `db:"yearly_price_cents" json:"yearly_price_cents,omitempty"`
	OneTimePriceCents *int64         `db:"one_time_price_cents" json:"one_time_price_cents,omitempty"`
	Features          pq.StringArray `db:"features" json:"features"`
	Active            bool           `db:"active" json:"active"`
	IsHidden          bool           `db:"is_hidden" json:"is_hidden"`
	SignupCode        *string        `db:"signup_code" json:"-"`
	CreatedAt         time.Time      `db:"created_at" json:"created_at"`
}

// MatchesSignupCode reports whether the supplied code unlocks a hidden tier.
// Non-hidden tiers match any code.
func (t *PricingTier) MatchesSignupCode(code string) bool {
	if !t.IsHidden {
		return true
	}
	if t.SignupCode == nil {
		return false
	}
	return strings.EqualFold(*t.SignupCode, code)
}

type DiscountCode struct {
	ID            int          `db:"id" json:"id"`
	Code          string       `db:"code" json:"code"`
	DiscountType  DiscountType `db:"discount_type" json:"discount_type"`
	DiscountValue int64        `db:"discount_value" json:"discount_value"`
	Active        bool         `db:"active" json:"active"`
	TimesUsed     int          `db:"times_used" json:"times_used"`
	CreatedAt     time.Time    `db:"created_at" json:"created_at"`
}

// CreateTierRequest is checked with api.ValidateStruct rather than gin
// binding tags so admin clients get per-field messages back.
type CreateTierRequest struct {
	Name              string   `json:"name" validate:"required,min=2,max=100"`
	MonthlyPriceCents *int64   `json:"monthly_price_cents" validate:"omitempty,gte=0"`
	YearlyPriceCents  *int64   `json:"yearly_price_cents" validate:"omitempty,gte=0"`
	OneTimePriceCents *int64   `json:"one_time_price_cents" validate:"omitempty,gte=0"`
	Features          []string `json:"features"`
	IsHidden          bool     `json:"is_hidden"`
	SignupCode        *string  `json:"signup_code" validate:"omitempty,min=3"`
}

type CreateDiscountRequest struct {
	Code          string `json:"code" binding:"required"`
	DiscountType  string `json:"discount_type" binding:"required,oneof=percent fixed"`
	DiscountValue int64  `json:"discount_value" binding:"required,min=0"`
}
