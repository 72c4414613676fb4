package trial

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

var ErrTrialNotFound = errors.New("trial not found")

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetByUserID(ctx context.Context, userID int) (*UserTrial, error) {
	t := &UserTrial{}
	err := r.db.GetContext(ctx, t, `
		SELECT id, user_id, tier, status, start_date, trial_ends_at, end_date, created_at, updated_at
		FROM user_trials
		WHERE user_id = $1
	`, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTrialNotFound
	}
	if err != nil {
		return nil, err
	}
	return t, nil
}

// Save overwrites the user's single trial record, creating it on first use.
func (r *Repository) Save(ctx context.Context, t *UserTrial) (*UserTrial, error) {
	saved := &UserTrial{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO user_trials (user_id, tier, status, start_date, trial_ends_at, end_date)
		VALUES ($1, $2, $3, $4, $5, $6)
		ON CONFLICT (user_id) DO UPDATE
		SET tier = EXCLUDED.tier,
		    status = EXCLUDED.status,
		    start_date = EXCLUDED.start_date,
		    trial_ends_at = EXCLUDED.trial_ends_at,
		    end_date = EXCLUDED.end_date,
		    updated_at = NOW()
		RETURNING id, user_id, tier, status, start_date, trial_ends_at, end_date, created_at, updated_at
	`, t.UserID, t.Tier, t.Status, t.StartDate, t.TrialEndsAt, t.EndDate).StructScan(saved)
	if err != nil {
		return nil, err
	}
	return saved, nil
}
