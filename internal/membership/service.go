package membership

import (
	"context"
	"errors"
	"time"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/catalog"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/metrics"
)

var (
	// ErrTierNotVisible is distinct from not-found so the UI can say
	// "invalid code" instead of "tier doesn't exist".
	ErrTierNotVisible = errors.New("tier requires a valid signup code")
	ErrNotOwner       = errors.New("caller is not the gym owner")
)

type Service interface {
	CreateRequest(ctx context.Context, userID int, input CreateRequestInput, now time.Time) (*MembershipRequest, error)
	Approve(ctx context.Context, publicID string, callerID int) (*MembershipRequest, error)
	Reject(ctx context.Context, publicID string, callerID int) (*MembershipRequest, error)
	ListForGym(ctx context.Context, gymID, callerID int) ([]MembershipRequest, error)
	ListMine(ctx context.Context, userID int) ([]MembershipRequest, error)
}

type service struct {
	repo    RepositoryInterface
	catalog CatalogSource
}

func NewService(repo RepositoryInterface, catalogSource CatalogSource) Service {
	return &service{repo: repo, catalog: catalogSource}
}

// CreateRequest quotes the selected tier/cycle/discount and freezes the quote
// into a pending request. An unknown or inactive discount code is not an
// error; the request records no discount.
func (s *service) CreateRequest(ctx context.Context, userID int, input CreateRequestInput, now time.Time) (*MembershipRequest, error) {
	if _, err := s.repo.GetGymOwner(ctx, input.GymID); err != nil {
		return nil, err
	}

	tier, err := s.catalog.GetTierByID(ctx, input.TierID)
	if err != nil {
		return nil, err
	}

	if !tier.MatchesSignupCode(input.SignupCode) {
		return nil, ErrTierNotVisible
	}

	cycle := catalog.BillingCycle(input.Cycle)
	if cycle == "" {
		cycle, err = catalog.DefaultCycle(tier)
		if err != nil {
			return nil, err
		}
	}

	originalPrice, err := catalog.SelectedPrice(tier, cycle)
	if err != nil {
		return nil, err
	}

	var discount *catalog.DiscountCode
	if input.DiscountCode != "" {
		discount, err = s.catalog.ResolveDiscount(ctx, input.DiscountCode)
		if err != nil && !errors.Is(err, catalog.ErrDiscountNotFound) {
			return nil, err
		}
	}

	finalPrice := catalog.ApplyDiscount(originalPrice, discount)

	req := &MembershipRequest{
		GymID:               input.GymID,
		UserID:              userID,
		TierID:              tier.ID,
		TierName:            tier.Name,
		BillingCycle:        cycle,
		OriginalPriceCents:  originalPrice,
		DiscountAmountCents: originalPrice - finalPrice,
		FinalPriceCents:     finalPrice,
		Status:              StatusPending,
	}
	if discount != nil {
		req.DiscountCode = &discount.Code
	}

	created, err := s.repo.Create(ctx, req)
	if err != nil {
		return nil, err
	}

	if discount != nil {
		if err := s.catalog.IncrementDiscountUsage(ctx, discount.ID); err != nil {
			logger.Warnf("Failed to bump usage for discount %s: %v", discount.Code, err)
		}
		metrics.RecordDiscountApplication(string(discount.DiscountType))
	}
	metrics.RecordMembershipRequest(string(StatusPending))

	return created, nil
}

func (s *service) decide(ctx context.Context, publicID string, callerID int, status Status) (*MembershipRequest, error) {
	req, err := s.repo.GetByPublicID(ctx, publicID)
	if err != nil {
		return nil, err
	}

	ownerID, err := s.repo.GetGymOwner(ctx, req.GymID)
	if err != nil {
		return nil, err
	}
	if ownerID != callerID {
		return nil, ErrNotOwner
	}

	decided, err := s.repo.Decide(ctx, req.ID, status)
	if err != nil {
		return nil, err
	}

	if status == StatusApproved {
		if err := s.repo.AddGymMember(ctx, decided.GymID, decided.UserID); err != nil {
			logger.Errorf("Approved request %s but failed to add member: %v", publicID, err)
		}
	}

	metrics.RecordMembershipRequest(string(status))
	return decided, nil
}

func (s *service) Approve(ctx context.Context, publicID string, callerID int) (*MembershipRequest, error) {
	return s.decide(ctx, publicID, callerID, StatusApproved)
}

func (s *service) Reject(ctx context.Context, publicID string, callerID int) (*MembershipRequest, error) {
	return s.decide(ctx, publicID, callerID, StatusRejected)
}

func (s *service) ListForGym(ctx context.Context, gymID, callerID int) ([]MembershipRequest, error) {
	ownerID, err := s.repo.GetGymOwner(ctx, gymID)
	if err != nil {
		return nil, err
	}
	if ownerID != callerID {
		return nil, ErrNotOwner
	}
	return s.repo.ListByGym(ctx, gymID)
}

func (s *service) ListMine(ctx context.Context, userID int) ([]MembershipRequest, error) {
	return s.repo.ListByUser(ctx, userID)
}
