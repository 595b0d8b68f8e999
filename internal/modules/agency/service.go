package agency

import (
	"context"

	"lettings/internal/domain"
)

type AgencyRepository interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
	UpdateBranding(ctx context.Context, a *domain.Agency) error
}

type Service struct {
	agencies AgencyRepository
}

func NewService(agencies AgencyRepository) *Service {
	return &Service{agencies: agencies}
}

func (s *Service) GetBranding(ctx context.Context, agencyID int64) (*domain.Agency, error) {
	return s.agencies.GetByID(ctx, agencyID)
}

func (s *Service) UpdateBranding(ctx context.Context, agencyID int64, req UpdateBrandingRequest) (*domain.Agency, error) {
	a, err := s.agencies.GetByID(ctx, agencyID)
	if err != nil {
		return nil, err
	}

	if req.Name != "" {
		a.Name = req.Name
	}
	if req.DisplayName != nil {
		a.DisplayName = *req.DisplayName
	}
	if req.Email != nil {
		a.Email = *req.Email
	}
	if req.Phone != nil {
		a.Phone = *req.Phone
	}
	if req.LogoURL != nil {
		a.LogoURL = *req.LogoURL
	}
	if req.PrimaryColour != nil {
		a.PrimaryColour = *req.PrimaryColour
	}

	if err := s.agencies.UpdateBranding(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}
