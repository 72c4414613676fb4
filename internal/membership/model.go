package membership

import (
	"time"

	"github.com/google/uuid"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
)

type Status string

const (
	StatusPending  Status = "pending"
	StatusApproved Status = "approved"
	StatusRejected Status = "rejected"
)

// MembershipRequest snapshots the quoted tier and discount at creation time.
// The price columns are an audit trail: they are never recomputed, even when
// the catalog changes afterwards.
type MembershipRequest struct {
	ID                  int                  `db:"id" json:"-"`
	PublicID            uuid.UUID            `db:"public_id" json:"id"`
	GymID               int                  `db:"gym_id" json:"gym_id"`
	UserID              int                  `db:"user_id" json:"user_id"`
	TierID              int                  `db:"tier_id" json:"tier_id"`
	TierName            string               `db:"tier_name" json:"tier_name"`
	BillingCycle        catalog.BillingCycle `db:"billing_cycle" json:"billing_cycle"`
	OriginalPriceCents  int64                `db:"original_price_cents" json:"original_price_cents"`
	DiscountCode        *string              `db:"discount_code" json:"discount_code,omitempty"`
	DiscountAmountCents int64                `db:"discount_amount_cents" json:"discount_amount_cents"`
	FinalPriceCents     int64                `db:"final_price_cents" json:"final_price_cents"`
	Status              Status               `db:"status" json:"status"`
	CreatedAt           time.Time            `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time            `db:"updated_at" json:"updated_at"`
}

type CreateRequestInput struct {
	GymID        int    `json:"gym_id" binding:"required"`
	TierID       int    `json:"tier_id" binding:"required"`
	Cycle        string `json:"cycle" binding:"omitempty,oneof=monthly yearly one_time"`
	DiscountCode string `json:"discount_code"`
	SignupCode   string `json:"signup_code"`
}
