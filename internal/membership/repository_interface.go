package membership

import (
	"context"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
)

// RepositoryInterface defines data access for membership requests.
type RepositoryInterface interface {
	GetGymOwner(ctx context.Context, gymID int) (int, error)
	Create(ctx context.Context, req *MembershipRequest) (*MembershipRequest, error)
	GetByPublicID(ctx context.Context, publicID string) (*MembershipRequest, error)
	// Decide flips a pending request to approved/rejected. It reports
	// ErrAlreadyDecided when the request left pending in the meantime.
	Decide(ctx context.Context, id int, status Status) (*MembershipRequest, error)
	ListByGym(ctx context.Context, gymID int) ([]MembershipRequest, error)
	ListByUser(ctx context.Context, userID int) ([]MembershipRequest, error)
	AddGymMember(ctx context.Context, gymID, userID int) error
}

// CatalogSource is the slice of the pricing catalog the workflow quotes from.
type CatalogSource interface {
	GetTierByID(ctx context.Context, id int) (*catalog.PricingTier, error)
	ResolveDiscount(ctx context.Context, code string) (*catalog.DiscountCode, error)
	IncrementDiscountUsage(ctx context.Context, id int) error
}
