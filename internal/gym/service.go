package gym

import (
	"context"
	"errors"
	"time"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/billing"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

var ErrGymNotFound = errors.New("gym not found")

type Service interface {
	CreateGym(ctx context.Context, req CreateGymRequest, ownerID int, now time.Time) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*GymWithMemberCount, error)
}

type service struct {
	repo    RepositoryInterface
	billing billing.Service
}

func NewService(repo RepositoryInterface, billingService billing.Service) Service {
	return &service{repo: repo, billing: billingService}
}

// CreateGym creates the gym and bootstraps its base subscription in one flow;
// a gym always has a subscription record from birth.
func (s *service) CreateGym(ctx context.Context, req CreateGymRequest, ownerID int, now time.Time) (*Gym, error) {
	gym, err := s.repo.CreateGym(ctx, req.Name, req.Location, ownerID)
	if err != nil {
		return nil, err
	}

	if _, err := s.billing.Bootstrap(ctx, gym.ID, now); err != nil {
		logger.Errorf("Gym %d created but subscription bootstrap failed: %v", gym.ID, err)
		return nil, err
	}

	return gym, nil
}

func (s *service) GetAllGyms(ctx context.Context) ([]Gym, error) {
	return s.repo.GetAllGyms(ctx)
}

func (s *service) GetGymByID(ctx context.Context, id int) (*GymWithMemberCount, error) {
	gym, err := s.repo.GetGymByID(ctx, id)
	if err != nil {
		return nil, ErrGymNotFound
	}

	count, err := s.repo.MemberCount(ctx, id)
	if err != nil {
		return nil, err
	}

	return &GymWithMemberCount{Gym: *gym, MemberCount: count}, nil
}
