package billing

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/db"
)

var (
	ErrGymNotFound          = errors.New("gym not found")
	ErrSubscriptionNotFound = errors.New("subscription not found")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(database *sqlx.DB) *Repository {
	return &Repository{db: database}
}

func (r *Repository) GetGymOwner(ctx context.Context, gymID int) (int, error) {
	var ownerID int
	err := r.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM gyms WHERE id = $1`, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrGymNotFound
	}
	return ownerID, err
}

func (r *Repository) GetByGymID(ctx context.Context, gymID int) (*GymSubscription, error) {
	sub := &GymSubscription{}
	err := r.db.GetContext(ctx, sub, `
		SELECT id, gym_id, plan, status, ai_programmer_enabled, ai_coach_enabled,
		       ai_coach_member_count, start_date, current_period_end,
		       ai_programmer_ends_at, ai_coach_ends_at, version, created_at, updated_at
		FROM gym_subscriptions
		WHERE gym_id = $1
	`, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrSubscriptionNotFound
	}
	if err != nil {
		return nil, err
	}
	return sub, nil
}

func (r *Repository) Create(ctx context.Context, sub *GymSubscription) (*GymSubscription, error) {
	created := &GymSubscription{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO gym_subscriptions (gym_id, plan, status, ai_programmer_enabled, ai_coach_enabled,
		                               ai_coach_member_count, start_date, current_period_end,
		                               ai_programmer_ends_at, ai_coach_ends_at, version)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 1)
		RETURNING id, gym_id, plan, status, ai_programmer_enabled, ai_coach_enabled,
		          ai_coach_member_count, start_date, current_period_end,
		          ai_programmer_ends_at, ai_coach_ends_at, version, created_at, updated_at
	`, sub.GymID, sub.Plan, sub.Status, sub.AIProgrammerEnabled, sub.AICoachEnabled,
		sub.AICoachMemberCount, sub.StartDate, sub.CurrentPeriodEnd,
		sub.AIProgrammerEndsAt, sub.AICoachEndsAt).StructScan(created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

// Update replaces the whole row, guarded by the version read earlier. A zero
// row count means somebody else won the race.
func (r *Repository) Update(ctx context.Context, sub *GymSubscription) (*GymSubscription, error) {
	updated := &GymSubscription{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE gym_subscriptions
		SET plan = $1,
		    status = $2,
		    ai_programmer_enabled = $3,
		    ai_coach_enabled = $4,
		    ai_coach_member_count = $5,
		    start_date = $6,
		    current_period_end = $7,
		    ai_programmer_ends_at = $8,
		    ai_coach_ends_at = $9,
		    version = version + 1,
		    updated_at = NOW()
		WHERE id = $10 AND version = $11
		RETURNING id, gym_id, plan, status, ai_programmer_enabled, ai_coach_enabled,
		          ai_coach_member_count, start_date, current_period_end,
		          ai_programmer_ends_at, ai_coach_ends_at, version, created_at, updated_at
	`, sub.Plan, sub.Status, sub.AIProgrammerEnabled, sub.AICoachEnabled,
		sub.AICoachMemberCount, sub.StartDate, sub.CurrentPeriodEnd,
		sub.AIProgrammerEndsAt, sub.AICoachEndsAt, sub.ID, sub.Version).StructScan(updated)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, db.ErrStaleWrite
	}
	if err != nil {
		return nil, err
	}
	return updated, nil
}
