package portfolio

import (
	"context"

	"lettings/internal/domain"
)

type PropertyRepository interface {
	GetByID(ctx context.Context, id, agencyID int64) (*domain.Property, error)
	ListByAgency(ctx context.Context, agencyID int64) ([]domain.Property, error)
}

type BedroomRepository interface {
	GetByID(ctx context.Context, id, agencyID int64) (*domain.Bedroom, error)
	ListByProperty(ctx context.Context, propertyID, agencyID int64) ([]domain.Bedroom, error)
}
