package catalog

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
	"github.com/lib/pq"
)

var (
	ErrTierNotFound     = errors.New("pricing tier not found")
	ErrDiscountNotFound = errors.New("discount code not found")
	ErrCodeTaken        = errors.New("discount code already exists")
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

// ListTiers returns active tiers. Hidden tiers are only included when
// includeHidden is set (admin views).
func (r *Repository) ListTiers(ctx context.Context, includeHidden bool) ([]PricingTier, error) {
	tiers := []PricingTier{}
	query := `
		SELECT id, name, monthly_price_cents, yearly_price_cents, one_time_price_cents,
		       features, active, is_hidden, signup_code, created_at
		FROM pricing_tiers
		WHERE active = TRUE
	`
	if !includeHidden {
		query += ` AND is_hidden = FALSE`
	}
	query += ` ORDER BY id`

	err := r.db.SelectContext(ctx, &tiers, query)
	return tiers, err
}

func (r *Repository) GetTierByID(ctx context.Context, id int) (*PricingTier, error) {
	tier := &PricingTier{}
	err := r.db.GetContext(ctx, tier, `
		SELECT id, name, monthly_price_cents, yearly_price_cents, one_time_price_cents,
		       features, active, is_hidden, signup_code, created_at
		FROM pricing_tiers
		WHERE id = $1 AND active = TRUE
	`, id)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrTierNotFound
	}
	if err != nil {
		return nil, err
	}
	return tier, nil
}

// ResolveDiscount looks up an active discount code, case-insensitively.
// An unknown or inactive code resolves to ErrDiscountNotFound; callers treat
// that as "no discount", not as a failure.
func (r *Repository) ResolveDiscount(ctx context.Context, code string) (*DiscountCode, error) {
	d := &DiscountCode{}
	err := r.db.GetContext(ctx, d, `
		SELECT id, code, discount_type, discount_value, active, times_used, created_at
		FROM discount_codes
		WHERE LOWER(code) = LOWER($1) AND active = TRUE
	`, code)
	if errors.Is(err, sql.ErrNoRows) {
		return nil, ErrDiscountNotFound
	}
	if err != nil {
		return nil, err
	}
	return d, nil
}

func (r *Repository) IncrementDiscountUsage(ctx context.Context, id int) error {
	_, err := r.db.ExecContext(ctx, `
		UPDATE discount_codes
		SET times_used = times_used + 1
		WHERE id = $1
	`, id)
	return err
}

func (r *Repository) CreateTier(ctx context.Context, req CreateTierRequest) (*PricingTier, error) {
	tier := &PricingTier{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO pricing_tiers (name, monthly_price_cents, yearly_price_cents, one_time_price_cents, features, active, is_hidden, signup_code)
		VALUES ($1, $2, $3, $4, $5, TRUE, $6, $7)
		RETURNING id, name, monthly_price_cents, yearly_price_cents, one_time_price_cents, features, active, is_hidden, signup_code, created_at
	`, req.Name, req.MonthlyPriceCents, req.YearlyPriceCents, req.OneTimePriceCents,
		pq.Array(req.Features), req.IsHidden, req.SignupCode).StructScan(tier)
	return tier, err
}

func (r *Repository) CreateDiscount(ctx context.Context, req CreateDiscountRequest) (*DiscountCode, error) {
	d := &DiscountCode{}
	err := r.db.QueryRowxContext(ctx, `
		INSERT INTO discount_codes (code, discount_type, discount_value, active, times_used)
		VALUES ($1, $2, $3, TRUE, 0)
		RETURNING id, code, discount_type, discount_value, active, times_used, created_at
	`, req.Code, req.DiscountType, req.DiscountValue).StructScan(d)
	if err != nil {
		if pqErr, ok := err.(*pq.Error); ok && pqErr.Code == "23505" {
			return nil, ErrCodeTaken
		}
		return nil, err
	}
	return d, nil
}

func (r *Repository) DeactivateDiscount(ctx context.Context, id int) error {
	res, err := r.db.ExecContext(ctx, `
		UPDATE discount_codes SET active = FALSE WHERE id = $1
	`, id)
	if err != nil {
		return err
	}
	rows, err := res.RowsAffected()
	if err != nil {
		return err
	}
	if rows == 0 {
		return ErrDiscountNotFound
	}
	return nil
}

func (r *Repository) ListDiscounts(ctx context.Context) ([]DiscountCode, error) {
	codes := []DiscountCode{}
	err := r.db.SelectContext(ctx, &codes, `
		SELECT id, code, discount_type, discount_value, active, times_used, created_at
		FROM discount_codes
		ORDER BY id
	`)
	return codes, err
}
