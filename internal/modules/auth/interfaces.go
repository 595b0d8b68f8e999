package auth

import (
	"context"

	"lettings/internal/domain"
)

type UserRepository interface {
	GetByEmail(ctx context.Context, email string) (*domain.User, error)
}

// AgencyRepository onboards a new tenant. The agency and its first
// admin must land in the same transaction.
type AgencyRepository interface {
	CreateWithAdmin(ctx context.Context, a *domain.Agency, u *domain.User) error
}

type jwtService interface {
	GenerateToken(userID, agencyID int64, role string) (string, error)
}
