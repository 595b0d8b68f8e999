package repository

import (
	"context"
	"time"

	"lettings/internal/domain"

	"gorm.io/gorm"
)

type AgencyRepository struct {
	db *gorm.DB
}

func NewAgencyRepository(db *gorm.DB) *AgencyRepository {
	return &AgencyRepository{db: db}
}

type agencyModel struct {
	ID            int64     `gorm:"column:id;primaryKey"`
	Name          string    `gorm:"column:name"`
	DisplayName   *string   `gorm:"column:display_name"`
	Email         *string   `gorm:"column:email"`
	Phone         *string   `gorm:"column:phone"`
	LogoURL       *string   `gorm:"column:logo_url"`
	PrimaryColour *string   `gorm:"column:primary_colour"`
	CreatedAt     time.Time `gorm:"column:created_at"`
	UpdatedAt     time.Time `gorm:"column:updated_at"`
}

func (agencyModel) TableName() string { return "agencies" }

func toDomainAgency(m agencyModel) *domain.Agency {
	a := &domain.Agency{
		ID:        m.ID,
		Name:      m.Name,
		CreatedAt: m.CreatedAt,
		UpdatedAt: m.UpdatedAt,
	}
	if m.DisplayName != nil {
		a.DisplayName = *m.DisplayName
	}
	if m.Email != nil {
		a.Email = *m.Email
	}
	if m.Phone != nil {
		a.Phone = *m.Phone
	}
	if m.LogoURL != nil {
		a.LogoURL = *m.LogoURL
	}
	if m.PrimaryColour != nil {
		a.PrimaryColour = *m.PrimaryColour
	}
	return a
}

func optStr(s string) *string {
	if s == "" {
		return nil
	}
	return &s
}

func toAgencyModel(a *domain.Agency) agencyModel {
	return agencyModel{
		ID:            a.ID,
		Name:          a.Name,
		DisplayName:   optStr(a.DisplayName),
		Email:         optStr(a.Email),
		Phone:         optStr(a.Phone),
		LogoURL:       optStr(a.LogoURL),
		PrimaryColour: optStr(a.PrimaryColour),
		CreatedAt:     a.CreatedAt,
		UpdatedAt:     a.UpdatedAt,
	}
}

func (r *AgencyRepository) Create(ctx context.Context, a *domain.Agency) error {
	m := toAgencyModel(a)
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainAgency(m)
	return nil
}

// CreateWithAdmin onboards an agency and its first admin user in one
// transaction; a failed user insert rolls back the agency row.
func (r *AgencyRepository) CreateWithAdmin(ctx context.Context, a *domain.Agency, u *domain.User) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		am := toAgencyModel(a)
		if err := tx.Create(&am).Error; err != nil {
			return err
		}

		u.AgencyID = am.ID
		um := toUserModel(u)
		if err := tx.Create(&um).Error; err != nil {
			return err
		}

		*a = *toDomainAgency(am)
		*u = *toDomainUser(um)
		return nil
	})
}

func (r *AgencyRepository) GetByID(ctx context.Context, id int64) (*domain.Agency, error) {
	var m agencyModel
	tx := r.db.WithContext(ctx).First(&m, id)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainAgency(m), nil
}

func (r *AgencyRepository) UpdateBranding(ctx context.Context, a *domain.Agency) error {
	updates := map[string]interface{}{
		"name":           a.Name,
		"display_name":   optStr(a.DisplayName),
		"email":          optStr(a.Email),
		"phone":          optStr(a.Phone),
		"logo_url":       optStr(a.LogoURL),
		"primary_colour": optStr(a.PrimaryColour),
		"updated_at":     time.Now().UTC(),
	}
	tx := r.db.WithContext(ctx).Model(&agencyModel{}).Where("id = ?", a.ID).Updates(updates)
	return tx.Error
}
