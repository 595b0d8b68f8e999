package application

import (
	"context"

	"lettings/internal/domain"
)

type Service struct {
	applications ApplicationRepository
	users        UserReader
	bedrooms     BedroomChecker
	properties   PropertyChecker
}

func NewService(
	applications ApplicationRepository,
	users UserReader,
	bedrooms BedroomChecker,
	properties PropertyChecker,
) *Service {
	return &Service{
		applications: applications,
		users:        users,
		bedrooms:     bedrooms,
		properties:   properties,
	}
}

// CreateApplication opens a draft application for an applicant.
func (s *Service) CreateApplication(ctx context.Context, agencyID int64, req CreateApplicationRequest) (*domain.Application, error) {
	if req.UserID <= 0 {
		return nil, ErrValidation
	}
	if _, err := s.users.GetByID(ctx, req.UserID, agencyID); err != nil {
		return nil, err
	}

	if req.BedroomID != nil {
		ok, err := s.bedrooms.Exists(ctx, *req.BedroomID, agencyID, req.PropertyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrBedroomNotFound
		}
	} else if req.PropertyID != nil {
		ok, err := s.properties.Exists(ctx, *req.PropertyID, agencyID)
		if err != nil {
			return nil, err
		}
		if !ok {
			return nil, domain.ErrPropertyNotFound
		}
	}

	a := &domain.Application{
		AgencyID:   agencyID,
		UserID:     req.UserID,
		PropertyID: req.PropertyID,
		BedroomID:  req.BedroomID,
		Status:     domain.ApplicationDraft,
	}
	if err := s.applications.Create(ctx, a); err != nil {
		return nil, err
	}
	return a, nil
}

// Submit moves a draft application to submitted, making it eligible for
// a holding deposit.
func (s *Service) Submit(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	return s.applications.Submit(ctx, id, agencyID)
}

func (s *Service) GetByID(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	return s.applications.GetByID(ctx, id, agencyID)
}

func (s *Service) List(ctx context.Context, agencyID int64, status string) ([]domain.Application, error) {
	if status != "" {
		switch domain.ApplicationStatus(status) {
		case domain.ApplicationDraft, domain.ApplicationSubmitted, domain.ApplicationApproved,
			domain.ApplicationRejected, domain.ApplicationWithdrawn:
		default:
			return nil, ErrValidation
		}
	}
	return s.applications.ListByAgency(ctx, agencyID, status)
}
