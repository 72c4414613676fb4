package gym

import "time"

// Gym is owned by the user who created it; ownership gates subscription
// changes and membership request decisions.
type Gym struct {
	ID        int       `db:"id" json:"id"`
	Name      string    `db:"name" json:"name"`
	Location  string    `db:"location" json:"location"`
	OwnerID   int       `db:"owner_id" json:"owner_id"`
	CreatedAt time.Time `db:"created_at" json:"created_at"`
}

// GymWithMemberCount is the detail view, with the live count from
// gym_members joined in.
type GymWithMemberCount struct {
	Gym
	MemberCount int `json:"member_count"`
}

type CreateGymRequest struct {
	Name     string `json:"name" binding:"required"`
	Location string `json:"location" binding:"required"`
}
