package billing

import (
	"context"
	"errors"
	"time"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/db"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/metrics"
)

var ErrNotOwner = errors.New("caller is not the gym owner")

type Service interface {
	ApplyChange(ctx context.Context, gymID, callerID int, sel Selection, now time.Time) (*GymSubscription, error)
	CancelSubscription(ctx context.Context, gymID, callerID int, now time.Time) (*GymSubscription, error)
	GetSubscription(ctx context.Context, gymID, callerID int) (*GymSubscription, error)
	MonthlyTotalFor(ctx context.Context, gymID, callerID int) (*GymSubscription, int64, error)
	// Bootstrap creates the initial base subscription when a gym is created.
	// Callers must have verified ownership already.
	Bootstrap(ctx context.Context, gymID int, now time.Time) (*GymSubscription, error)
}

type service struct {
	repo   RepositoryInterface
	prices PriceTable
}

func NewService(repo RepositoryInterface, prices PriceTable) Service {
	return &service{repo: repo, prices: prices}
}

func (s *service) requireOwner(ctx context.Context, gymID, callerID int) error {
	ownerID, err := s.repo.GetGymOwner(ctx, gymID)
	if err != nil {
		return err
	}
	if ownerID != callerID {
		return ErrNotOwner
	}
	return nil
}

func (s *service) ApplyChange(ctx context.Context, gymID, callerID int, sel Selection, now time.Time) (*GymSubscription, error) {
	if err := s.requireOwner(ctx, gymID, callerID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByGymID(ctx, gymID)
	if err != nil && !errors.Is(err, ErrSubscriptionNotFound) {
		return nil, err
	}

	next := Apply(current, sel, now)
	next.GymID = gymID

	var saved *GymSubscription
	if current == nil {
		saved, err = s.repo.Create(ctx, &next)
	} else {
		saved, err = s.repo.Update(ctx, &next)
		if errors.Is(err, db.ErrStaleWrite) {
			// Somebody else changed the row between our read and write.
			// Reapply the declared intent on top of the fresh state once.
			metrics.RecordStaleWriteRetry()
			logger.Warnf("Stale subscription write for gym %d, retrying", gymID)

			current, err = s.repo.GetByGymID(ctx, gymID)
			if err != nil {
				return nil, err
			}
			next = Apply(current, sel, now)
			next.GymID = gymID
			saved, err = s.repo.Update(ctx, &next)
		}
	}
	if err != nil {
		return nil, err
	}

	metrics.RecordSubscriptionApply(string(sel.Plan))
	if saved.HasPendingAIProgrammerDowngrade(now) {
		metrics.RecordDowngrade("ai_programmer")
	}
	if saved.HasPendingAICoachDowngrade(now) {
		metrics.RecordDowngrade("ai_coach")
	}

	return saved, nil
}

func (s *service) CancelSubscription(ctx context.Context, gymID, callerID int, now time.Time) (*GymSubscription, error) {
	if err := s.requireOwner(ctx, gymID, callerID); err != nil {
		return nil, err
	}

	current, err := s.repo.GetByGymID(ctx, gymID)
	if err != nil {
		return nil, err
	}

	next := Cancel(*current, now)
	saved, err := s.repo.Update(ctx, &next)
	if errors.Is(err, db.ErrStaleWrite) {
		metrics.RecordStaleWriteRetry()
		current, err = s.repo.GetByGymID(ctx, gymID)
		if err != nil {
			return nil, err
		}
		next = Cancel(*current, now)
		saved, err = s.repo.Update(ctx, &next)
	}
	if err != nil {
		return nil, err
	}
	return saved, nil
}

func (s *service) GetSubscription(ctx context.Context, gymID, callerID int) (*GymSubscription, error) {
	if err := s.requireOwner(ctx, gymID, callerID); err != nil {
		return nil, err
	}
	return s.repo.GetByGymID(ctx, gymID)
}

func (s *service) MonthlyTotalFor(ctx context.Context, gymID, callerID int) (*GymSubscription, int64, error) {
	sub, err := s.GetSubscription(ctx, gymID, callerID)
	if err != nil {
		return nil, 0, err
	}
	return sub, MonthlyTotal(sub, s.prices), nil
}

func (s *service) Bootstrap(ctx context.Context, gymID int, now time.Time) (*GymSubscription, error) {
	sub := Apply(nil, Selection{Plan: PlanBase}, now)
	sub.GymID = gymID
	return s.repo.Create(ctx, &sub)
}
