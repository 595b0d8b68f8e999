package application

import (
	"context"
	"testing"
	"time"

	"lettings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/mock"
)

type MockApplicationRepository struct {
	mock.Mock
}

func (m *MockApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	args := m.Called(ctx, a)
	if args.Error(0) == nil && a != nil {
		a.ID = 42
	}
	return args.Error(0)
}

func (m *MockApplicationRepository) GetByID(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	args := m.Called(ctx, id, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.Application, error) {
	args := m.Called(ctx, agencyID, status)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).([]domain.Application), args.Error(1)
}

func (m *MockApplicationRepository) Submit(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	args := m.Called(ctx, id, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.Application), args.Error(1)
}

type MockUserReader struct {
	mock.Mock
}

func (m *MockUserReader) GetByID(ctx context.Context, id, agencyID int64) (*domain.User, error) {
	args := m.Called(ctx, id, agencyID)
	if args.Get(0) == nil {
		return nil, args.Error(1)
	}
	return args.Get(0).(*domain.User), args.Error(1)
}

type MockBedroomChecker struct {
	mock.Mock
}

func (m *MockBedroomChecker) Exists(ctx context.Context, id, agencyID int64, propertyID *int64) (bool, error) {
	args := m.Called(ctx, id, agencyID, propertyID)
	return args.Bool(0), args.Error(1)
}

type MockPropertyChecker struct {
	mock.Mock
}

func (m *MockPropertyChecker) Exists(ctx context.Context, id, agencyID int64) (bool, error) {
	args := m.Called(ctx, id, agencyID)
	return args.Bool(0), args.Error(1)
}

const agencyID = int64(10)

func TestService_CreateApplication_Draft(t *testing.T) {
	repo := new(MockApplicationRepository)
	users := new(MockUserReader)
	bedrooms := new(MockBedroomChecker)

	users.On("GetByID", mock.Anything, int64(3), agencyID).
		Return(&domain.User{ID: 3, AgencyID: agencyID, Role: domain.RoleApplicant}, nil)
	bedrooms.On("Exists", mock.Anything, int64(4), agencyID, mock.Anything).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, users, bedrooms, new(MockPropertyChecker))

	bedroomID := int64(4)
	a, err := svc.CreateApplication(context.Background(), agencyID, CreateApplicationRequest{
		UserID:    3,
		BedroomID: &bedroomID,
	})

	assert.NoError(t, err)
	assert.Equal(t, int64(42), a.ID)
	assert.Equal(t, domain.ApplicationDraft, a.Status)
	assert.Nil(t, a.SubmittedAt)
}

func TestService_CreateApplication_MissingUser(t *testing.T) {
	repo := new(MockApplicationRepository)
	svc := NewService(repo, new(MockUserReader), new(MockBedroomChecker), new(MockPropertyChecker))

	_, err := svc.CreateApplication(context.Background(), agencyID, CreateApplicationRequest{})

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateApplication_BedroomMissing(t *testing.T) {
	repo := new(MockApplicationRepository)
	users := new(MockUserReader)
	bedrooms := new(MockBedroomChecker)

	users.On("GetByID", mock.Anything, int64(3), agencyID).
		Return(&domain.User{ID: 3, AgencyID: agencyID}, nil)
	bedrooms.On("Exists", mock.Anything, int64(9999), agencyID, mock.Anything).Return(false, nil)

	svc := NewService(repo, users, bedrooms, new(MockPropertyChecker))

	bedroomID := int64(9999)
	_, err := svc.CreateApplication(context.Background(), agencyID, CreateApplicationRequest{
		UserID:    3,
		BedroomID: &bedroomID,
	})

	assert.ErrorIs(t, err, domain.ErrBedroomNotFound)
	repo.AssertNotCalled(t, "Create", mock.Anything, mock.Anything)
}

func TestService_CreateApplication_PropertyOnly(t *testing.T) {
	repo := new(MockApplicationRepository)
	users := new(MockUserReader)
	properties := new(MockPropertyChecker)

	users.On("GetByID", mock.Anything, int64(3), agencyID).
		Return(&domain.User{ID: 3, AgencyID: agencyID}, nil)
	properties.On("Exists", mock.Anything, int64(2), agencyID).Return(true, nil)
	repo.On("Create", mock.Anything, mock.Anything).Return(nil)

	svc := NewService(repo, users, new(MockBedroomChecker), properties)

	propertyID := int64(2)
	a, err := svc.CreateApplication(context.Background(), agencyID, CreateApplicationRequest{
		UserID:     3,
		PropertyID: &propertyID,
	})

	assert.NoError(t, err)
	assert.Nil(t, a.BedroomID)
}

func TestService_Submit_PassesThrough(t *testing.T) {
	repo := new(MockApplicationRepository)
	now := time.Now().UTC()
	repo.On("Submit", mock.Anything, int64(7), agencyID).
		Return(&domain.Application{ID: 7, AgencyID: agencyID, Status: domain.ApplicationSubmitted, SubmittedAt: &now}, nil)

	svc := NewService(repo, new(MockUserReader), new(MockBedroomChecker), new(MockPropertyChecker))

	a, err := svc.Submit(context.Background(), 7, agencyID)

	assert.NoError(t, err)
	assert.Equal(t, domain.ApplicationSubmitted, a.Status)
	assert.NotNil(t, a.SubmittedAt)
}

func TestService_Submit_AlreadySubmitted(t *testing.T) {
	repo := new(MockApplicationRepository)
	repo.On("Submit", mock.Anything, int64(7), agencyID).
		Return(nil, &domain.StateConflictError{Entity: "application", Current: "submitted", Expected: "draft"})

	svc := NewService(repo, new(MockUserReader), new(MockBedroomChecker), new(MockPropertyChecker))

	_, err := svc.Submit(context.Background(), 7, agencyID)

	var stateErr *domain.StateConflictError
	assert.ErrorAs(t, err, &stateErr)
}

func TestService_List_RejectsUnknownStatus(t *testing.T) {
	repo := new(MockApplicationRepository)
	svc := NewService(repo, new(MockUserReader), new(MockBedroomChecker), new(MockPropertyChecker))

	_, err := svc.List(context.Background(), agencyID, "pending")

	assert.ErrorIs(t, err, ErrValidation)
	repo.AssertNotCalled(t, "ListByAgency", mock.Anything, mock.Anything, mock.Anything)
}

func TestService_List_PassesFilter(t *testing.T) {
	repo := new(MockApplicationRepository)
	repo.On("ListByAgency", mock.Anything, agencyID, "submitted").
		Return([]domain.Application{{ID: 1, Status: domain.ApplicationSubmitted}}, nil)

	svc := NewService(repo, new(MockUserReader), new(MockBedroomChecker), new(MockPropertyChecker))

	list, err := svc.List(context.Background(), agencyID, "submitted")

	assert.NoError(t, err)
	assert.Len(t, list, 1)
}
