package gym

import (
	"context"
	"errors"
	"os"
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
	"github.com/stretchr/testify/require"

	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/billing"
	"github.com/TylerAnderson748/CrossfitTracker-sub002/internal/logger"
)

func TestMain(m *testing.M) {
	logger.Init()

	code := m.Run()
	os.Exit(code)
}

// MockRepository is a mock implementation of RepositoryInterface
type MockRepository struct {
	mock.Mock
}

func (m *MockRepository) CreateGym(ctx context.Context, name, location string, ownerID int) (*Gym, error) {
	args := m.Called(ctx, name, location, ownerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) GetAllGyms(ctx context.Context) ([]Gym, error) {
	args := m.Called(ctx)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]Gym), args.Error(1)
}

func (m *MockRepository) GetGymByID(ctx context.Context, id int) (*Gym, error) {
	args := m.Called(ctx, id)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*Gym), args.Error(1)
}

func (m *MockRepository) MemberCount(ctx context.Context, gymID int) (int, error) {
	args := m.Called(ctx, gymID)
	return args.Int(0), args.Error(1)
}

func (m *MockRepository) IsMember(ctx context.Context, gymID, userID int) (bool, error) {
	args := m.Called(ctx, gymID, userID)
	return args.Bool(0), args.Error(1)
}

// MockBillingService is a mock implementation of billing.Service
type MockBillingService struct {
	mock.Mock
}

func (m *MockBillingService) ApplyChange(ctx context.Context, gymID, callerID int, sel billing.Selection, now time.Time) (*billing.GymSubscription, error) {
	args := m.Called(ctx, gymID, callerID, sel, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GymSubscription), args.Error(1)
}

func (m *MockBillingService) CancelSubscription(ctx context.Context, gymID, callerID int, now time.Time) (*billing.GymSubscription, error) {
	args := m.Called(ctx, gymID, callerID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GymSubscription), args.Error(1)
}

func (m *MockBillingService) GetSubscription(ctx context.Context, gymID, callerID int) (*billing.GymSubscription, error) {
	args := m.Called(ctx, gymID, callerID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GymSubscription), args.Error(1)
}

func (m *MockBillingService) MonthlyTotalFor(ctx context.Context, gymID, callerID int) (*billing.GymSubscription, int64, error) {
	args := m.Called(ctx, gymID, callerID)
	if args.Get(0) == nil {
		return nil, 0, args.Error(2)
	}
	return args.Get(0).(*billing.GymSubscription), args.Get(1).(int64), args.Error(2)
}

func (m *MockBillingService) Bootstrap(ctx context.Context, gymID int, now time.Time) (*billing.GymSubscription, error) {
	args := m.Called(ctx, gymID, now)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*billing.GymSubscription), args.Error(1)
}

func TestService_CreateGym(t *testing.T) {
	now := time.Date(2025, 6, 1, 0, 0, 0, 0, time.UTC)

	t.Run("creates gym and bootstraps its subscription", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockBilling := new(MockBillingService)
		service := NewService(mockRepo, mockBilling)

		mockRepo.On("CreateGym", mock.Anything, "Iron Temple", "Oslo", 10).Return(&Gym{
			ID: 1, Name: "Iron Temple", Location: "Oslo", OwnerID: 10,
		}, nil)
		mockBilling.On("Bootstrap", mock.Anything, 1, now).Return(&billing.GymSubscription{
			ID: 1, GymID: 1, Plan: billing.PlanBase, Status: billing.StatusActive,
		}, nil)

		gym, err := service.CreateGym(context.Background(), CreateGymRequest{
			Name: "Iron Temple", Location: "Oslo",
		}, 10, now)

		require.NoError(t, err)
		assert.Equal(t, "Iron Temple", gym.Name)
		assert.Equal(t, 10, gym.OwnerID)
		mockRepo.AssertExpectations(t)
		mockBilling.AssertExpectations(t)
	})

	t.Run("bootstrap failure surfaces", func(t *testing.T) {
		mockRepo := new(MockRepository)
		mockBilling := new(MockBillingService)
		service := NewService(mockRepo, mockBilling)

		mockRepo.On("CreateGym", mock.Anything, "Iron Temple", "Oslo", 10).Return(&Gym{ID: 1, OwnerID: 10}, nil)
		mockBilling.On("Bootstrap", mock.Anything, 1, now).Return(nil, errors.New("db down"))

		gym, err := service.CreateGym(context.Background(), CreateGymRequest{
			Name: "Iron Temple", Location: "Oslo",
		}, 10, now)

		assert.Error(t, err)
		assert.Nil(t, gym)
	})
}

func TestService_GetGymByID(t *testing.T) {
	t.Run("gym with member count", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, new(MockBillingService))

		mockRepo.On("GetGymByID", mock.Anything, 1).Return(&Gym{ID: 1, Name: "Iron Temple"}, nil)
		mockRepo.On("MemberCount", mock.Anything, 1).Return(37, nil)

		gym, err := service.GetGymByID(context.Background(), 1)

		require.NoError(t, err)
		assert.Equal(t, "Iron Temple", gym.Name)
		assert.Equal(t, 37, gym.MemberCount)
	})

	t.Run("unknown gym", func(t *testing.T) {
		mockRepo := new(MockRepository)
		service := NewService(mockRepo, new(MockBillingService))

		mockRepo.On("GetGymByID", mock.Anything, 404).Return(nil, errors.New("sql: no rows in result set"))

		gym, err := service.GetGymByID(context.Background(), 404)

		assert.ErrorIs(t, err, ErrGymNotFound)
		assert.Nil(t, gym)
	})
}

func TestService_GetAllGyms(t *testing.T) {
	mockRepo := new(MockRepository)
	service := NewService(mockRepo, new(MockBillingService))

	mockRepo.On("GetAllGyms", mock.Anything).Return([]Gym{
		{ID: 1, Name: "Iron Temple"},
		{ID: 2, Name: "Box 42"},
	}, nil)

	gyms, err := service.GetAllGyms(context.Background())

	require.NoError(t, err)
	assert.Len(t, gyms, 2)
}
