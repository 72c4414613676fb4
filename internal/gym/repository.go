package gym

import (
	"context"
	"database/sql"
	"errors"

	"github.com/jmoiron/sqlx"
)

type Repository struct {
	db *sqlx.DB
}

func NewRepository(db *sqlx.DB) *Repository {
	return &Repository{db: db}
}

func (r *Repository) CreateGym(ctx context.Context, name, location string, ownerID int) (*Gym, error) {
	var gym Gym
	err := r.db.GetContext(ctx, &gym, `
		INSERT INTO gyms (name, location, owner_id)
		VALUES ($1, $2, $3)
		RETURNING id, name, location, owner_id, created_at
	`, name, location, ownerID)
	if err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *Repository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	var gyms []Gym
	err := r.db.SelectContext(ctx, &gyms, `
		SELECT id, name, location, owner_id, created_at
		FROM gyms
		ORDER BY created_at DESC
	`)
	if err != nil {
		return nil, err
	}
	return gyms, nil
}

func (r *Repository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	var gym Gym
	err := r.db.GetContext(ctx, &gym, `
		SELECT id, name, location, owner_id, created_at
		FROM gyms
		WHERE id = $1
	`, id)
	if err != nil {
		return nil, err
	}
	return &gym, nil
}

func (r *Repository) MemberCount(ctx context.Context, gymID int) (int, error) {
	var count int
	err := r.db.GetContext(ctx, &count, `
		SELECT COUNT(*) FROM gym_members WHERE gym_id = $1
	`, gymID)
	return count, err
}

func (r *Repository) IsMember(ctx context.Context, gymID, userID int) (bool, error) {
	var exists bool
	err := r.db.GetContext(ctx, &exists, `
		SELECT EXISTS (SELECT 1 FROM gym_members WHERE gym_id = $1 AND user_id = $2)
	`, gymID, userID)
	if errors.Is(err, sql.ErrNoRows) {
		return false, nil
	}
	return exists, err
}
