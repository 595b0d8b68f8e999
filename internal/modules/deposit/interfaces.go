package deposit

import (
	"context"
	"time"

	"lettings/internal/domain"
	"lettings/internal/repository"
)

// DepositRepository is the transactional store behind the workflow.
// CreateHeld must run its conflict checks and both writes inside a
// single transaction; the service never sees partial state.
type DepositRepository interface {
	CreateHeld(ctx context.Context, d *domain.HoldingDeposit) error
	UpdateStatus(ctx context.Context, id, agencyID int64, target domain.DepositStatus, notes string, actorID int64) (*domain.HoldingDeposit, error)
	GetByID(ctx context.Context, id, agencyID int64) (*domain.HoldingDeposit, error)
	GetByApplicationID(ctx context.Context, applicationID, agencyID int64) (*domain.HoldingDeposit, error)
	ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.HoldingDeposit, error)
	FindActiveReservation(ctx context.Context, bedroomID, agencyID int64, now time.Time) (*repository.ActiveReservation, error)
}

type ApplicationReader interface {
	GetByID(ctx context.Context, id, agencyID int64) (*domain.Application, error)
}

type UserReader interface {
	GetByID(ctx context.Context, id, agencyID int64) (*domain.User, error)
}

type BrandingReader interface {
	GetByID(ctx context.Context, id int64) (*domain.Agency, error)
}

// NotificationSender delivers the post-commit approval notice. Errors
// are logged and dropped; they never affect the workflow outcome.
type NotificationSender interface {
	NotifyApplicationApproved(ctx context.Context, applicant *domain.User, agencyName string, d *domain.HoldingDeposit) error
}
