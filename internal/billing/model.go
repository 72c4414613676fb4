package billing

import "time"

type Plan string
type Status string

const (
	PlanBase         Plan = "base"
	PlanAIProgrammer Plan = "ai_programmer"

	StatusNone     Status = "none"
	StatusTrialing Status = "trialing"
	StatusActive   Status = "active"
	StatusCanceled Status = "canceled"
)

// GymSubscription is the single billing record a gym owns. It is never
// deleted; cancellation is a terminal status value. Version backs the
// compare-and-swap write at the persistence layer.
type GymSubscription struct {
	ID                  int        `db:"id" json:"id"`
	GymID               int        `db:"gym_id" json:"gym_id"`
	Plan                Plan       `db:"plan" json:"plan"`
	Status              Status     `db:"status" json:"status"`
	AIProgrammerEnabled bool       `db:"ai_programmer_enabled" json:"ai_programmer_enabled"`
	AICoachEnabled      bool       `db:"ai_coach_enabled" json:"ai_coach_enabled"`
	AICoachMemberCount  int        `db:"ai_coach_member_count" json:"ai_coach_member_count"`
	StartDate           time.Time  `db:"start_date" json:"start_date"`
	CurrentPeriodEnd    time.Time  `db:"current_period_end" json:"current_period_end"`
	AIProgrammerEndsAt  *time.Time `db:"ai_programmer_ends_at" json:"ai_programmer_ends_at,omitempty"`
	AICoachEndsAt       *time.Time `db:"ai_coach_ends_at" json:"ai_coach_ends_at,omitempty"`
	Version             int        `db:"version" json:"version"`
	CreatedAt           time.Time  `db:"created_at" json:"created_at"`
	UpdatedAt           time.Time  `db:"updated_at" json:"updated_at"`
}

// Selection is the owner's declared intent for the next billing state.
type Selection struct {
	Plan               Plan `json:"plan"`
	AICoachEnabled     bool `json:"ai_coach_enabled"`
	AICoachMemberCount int  `json:"ai_coach_member_count"`
}

type ApplyRequest struct {
	Plan               string `json:"plan" binding:"required,oneof=base ai_programmer"`
	AICoachEnabled     bool   `json:"ai_coach_enabled"`
	AICoachMemberCount int    `json:"ai_coach_member_count" binding:"omitempty,min=0"`
}

type MonthlyTotalResponse struct {
	Subscription      *GymSubscription `json:"subscription"`
	MonthlyTotalCents int64            `json:"monthly_total_cents"`
}
