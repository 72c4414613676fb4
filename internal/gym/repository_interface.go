package gym

import "context"

type RepositoryInterface interface {
	CreateGym(ctx context.Context, name, location string, ownerID int) (*Gym, error)
	GetAllGyms(ctx context.Context) ([]Gym, error)
	GetGymByID(ctx context.Context, id int) (*Gym, error)
	MemberCount(ctx context.Context, gymID int) (int, error)
	IsMember(ctx context.Context, gymID, userID int) (bool, error)
}
