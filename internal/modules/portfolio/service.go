package portfolio

import (
	"context"

	"lettings/internal/domain"
)

type Service struct {
	properties PropertyRepository
	bedrooms   BedroomRepository
}

func NewService(properties PropertyRepository, bedrooms BedroomRepository) *Service {
	return &Service{
		properties: properties,
		bedrooms:   bedrooms,
	}
}

func (s *Service) ListProperties(ctx context.Context, agencyID int64) ([]domain.Property, error) {
	return s.properties.ListByAgency(ctx, agencyID)
}

func (s *Service) GetProperty(ctx context.Context, id, agencyID int64) (*domain.Property, error) {
	return s.properties.GetByID(ctx, id, agencyID)
}

func (s *Service) ListBedrooms(ctx context.Context, propertyID, agencyID int64) ([]domain.Bedroom, error) {
	if _, err := s.properties.GetByID(ctx, propertyID, agencyID); err != nil {
		return nil, err
	}
	return s.bedrooms.ListByProperty(ctx, propertyID, agencyID)
}

func (s *Service) GetBedroom(ctx context.Context, id, agencyID int64) (*domain.Bedroom, error) {
	return s.bedrooms.GetByID(ctx, id, agencyID)
}
