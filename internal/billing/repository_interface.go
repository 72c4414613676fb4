package billing

import "context"

// RepositoryInterface defines data access for gym subscriptions.
type RepositoryInterface interface {
	GetGymOwner(ctx context.Context, gymID int) (int, error)
	GetByGymID(ctx context.Context, gymID int) (*GymSubscription, error)
	Create(ctx context.Context, sub *GymSubscription) (*GymSubscription, error)
	// Update compares-and-swaps on sub.Version and returns db.ErrStaleWrite
	// when the stored row has moved on.
	Update(ctx context.Context, sub *GymSubscription) (*GymSubscription, error)
}
