package membership

import (
	"context"
	"database/sql"
	"errors"

	"github.com/google/uuid"
	"github.com/jmoiron/sqlx"
)

var (
	ErrGymNotFound     = errors.New("gym not found")
	ErrRequestNotFound = errors.New("membership request not found")
	ErrAlreadyDecided  = errors.New("membership request already decided")
)

const requestColumns = `
	id, public_id, gym_id, user_id, tier_id, tier_name, billing_cycle,
	original_price_cents, discount_code, discount_amount_cents, final_price_cents,
	status, created_at, updated_at`

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) GetGymOwner(ctx context.Context, gymID int) (int, error) {
	var ownerID int
	err := r.db.GetContext(ctx, &ownerID, `SELECT owner_id FROM gyms WHERE id = $1`, gymID)
	if errors.Is(err, sql.ErrNoRows) {
		return 0, ErrGymNotFound
	}
	return ownerID, err
}

func (r *Repository) Create(ctx context.Context, req *MembershipRequest) (*MembershipRequest, error) {
	created := &MembershipRequest{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO membership_requests (public_id, gym_id, user_id, tier_id, tier_name, billing_cycle,
		                                 original_price_cents, discount_code, discount_amount_cents,
		                                 final_price_cents, status)
		VALUES ($1, $2, $3, $4, $5, $6, $7, $8, $9, $10, 'pending')
		RETURNING `+requestColumns+`
	`, uuid.New(), req.GymID, req.UserID, req.TierID, req.TierName, req.BillingCycle,
		req.OriginalPriceCents, req.DiscountCode, req.DiscountAmountCents,
		req.FinalPriceCents).StructScan(created)
	if err != nil {
		return nil, err
	}
	return created, nil
}

func (r *Repository) GetByPublicID(ctx context.Context, publicID string) (*MembershipRequest, error) {
	req := &MembershipRequest{}
	err := r.db.GetContext(ctx, req, `
		SELECT `+requestColumns+`
		FROM membership_requests
		WHERE public_id = $1
	`, publicID)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrRequestNotFound
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

// Decide only moves pending requests; the status guard makes the two-state
// transition race-safe without a version column.
func (r *Repository) Decide(ctx context.Context, id int, status Status) (*MembershipRequest, error) {
	req := &MembershipRequest{}
	err := r.db.QueryRowxContext(ctx, `
		UPDATE membership_requests
		SET status = $1, updated_at = NOW()
		WHERE id = $2 AND status = 'pending'
		RETURNING `+requestColumns+`
	`, status, id).StructScan(req)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrAlreadyDecided
	}
	if err != nil {
		return nil, err
	}
	return req, nil
}

func (r *Repository) ListByGym(ctx context.Context, gymID int) ([]MembershipRequest, error) {
	reqs := []MembershipRequest{}
	err := r.db.SelectContext(ctx, &reqs, `
		SELECT `+requestColumns+`
		FROM membership_requests
		WHERE gym_id = $1
		ORDER BY created_at DESC
	`, gymID)
	return reqs, err
}

func (r *Repository) ListByUser(ctx context.Context, userID int) ([]MembershipRequest, error) {
	reqs := []MembershipRequest{}
	err := r.db.SelectContext(ctx, &reqs, `
		SELECT `+requestColumns+`
		FROM membership_requests
		WHERE user_id = $1
		ORDER BY created_at DESC
	`, userID)
	return reqs, err
}

func (r *Repository) AddGymMember(ctx context.Context, gymID, userID int) error {
	_, err := r.db.ExecContext(ctx, `
		INSERT INTO gym_members (gym_id, user_id)
		VALUES ($1, $2)
		ON CONFLICT (gym_id, user_id) DO NOTHING
	`, gymID, userID)
	return err
}
