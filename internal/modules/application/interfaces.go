package application

import (
	"context"

	"lettings/internal/domain"
)

type ApplicationRepository interface {
	Create(ctx context.Context, a *domain.Application) error
	GetByID(ctx context.Context, id, agencyID int64) (*domain.Application, error)
	ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.Application, error)
	Submit(ctx context.Context, id, agencyID int64) (*domain.Application, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id, agencyID int64) (*domain.User, error)
}

type BedroomChecker interface {
	Exists(ctx context.Context, id, agencyID int64, propertyID *int64) (bool, error)
}

type PropertyChecker interface {
	Exists(ctx context.Context, id, agencyID int64) (bool, error)
}
