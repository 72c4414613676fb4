package trial

import "time"

type Status string

const (
	StatusNone     Status = "none"
	StatusTrialing Status = "trialing"
	StatusActive   Status = "active"
	StatusExpired  Status = "expired"

	TierPro = "pro"
)

// UserTrial is a user's AI trainer trial or subscription record. Expiry is
// computed lazily from the clock; no background job flips the status.
type UserTrial struct {
	ID          int        `db:"id" json:"id"`
	UserID      int        `db:"user_id" json:"user_id"`
	Tier        string     `db:"tier" json:"tier"`
	Status      Status     `db:"status" json:"status"`
	StartDate   time.Time  `db:"start_date" json:"start_date"`
	TrialEndsAt *time.Time `db:"trial_ends_at" json:"trial_ends_at,omitempty"`
	EndDate     *time.Time `db:"end_date" json:"end_date,omitempty"`
	CreatedAt   time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt   time.Time  `db:"updated_at" json:"updated_at"`
}

type SubscribeRequest struct {
	Cycle string `json:"cycle" binding:"required,oneof=monthly yearly"`
}

type StatusResponse struct {
	Trial  *UserTrial `json:"trial,omitempty"`
	Active bool       `json:"active"`
}
