package repository

import (
	"context"
	"time"

	"lettings/internal/domain"

	"gorm.io/gorm"
)

type BedroomRepository struct {
	db *gorm.DB
}

func NewBedroomRepository(db *gorm.DB) *BedroomRepository {
	return &BedroomRepository{db: db}
}

type bedroomModel struct {
	ID          int64     `gorm:"column:id;primaryKey"`
	AgencyID    int64     `gorm:"column:agency_id;index"`
	PropertyID  int64     `gorm:"column:property_id;index"`
	Name        string    `gorm:"column:name"`
	MonthlyRent float64   `gorm:"column:monthly_rent"`
	IsActive    bool      `gorm:"column:is_active"`
	CreatedAt   time.Time `gorm:"column:created_at"`
	UpdatedAt   time.Time `gorm:"column:updated_at"`
}

func (bedroomModel) TableName() string { return "bedrooms" }

func toDomainBedroom(m bedroomModel) *domain.Bedroom {
	return &domain.Bedroom{
		ID:          m.ID,
		AgencyID:    m.AgencyID,
		PropertyID:  m.PropertyID,
		Name:        m.Name,
		MonthlyRent: m.MonthlyRent,
		IsActive:    m.IsActive,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *BedroomRepository) Create(ctx context.Context, b *domain.Bedroom) error {
	m := bedroomModel{
		AgencyID:    b.AgencyID,
		PropertyID:  b.PropertyID,
		Name:        b.Name,
		MonthlyRent: b.MonthlyRent,
		IsActive:    b.IsActive,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*b = *toDomainBedroom(m)
	return nil
}

func (r *BedroomRepository) GetByID(ctx context.Context, id, agencyID int64) (*domain.Bedroom, error) {
	var m bedroomModel
	tx := r.db.WithContext(ctx).Where("id = ? AND agency_id = ?", id, agencyID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainBedroom(m), nil
}

func (r *BedroomRepository) ListByProperty(ctx context.Context, propertyID, agencyID int64) ([]domain.Bedroom, error) {
	var rows []bedroomModel
	tx := r.db.WithContext(ctx).
		Where("property_id = ? AND agency_id = ?", propertyID, agencyID).
		Order("id").
		Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Bedroom, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainBedroom(m))
	}
	return out, nil
}

// Exists checks the bedroom belongs to the agency, and to the given
// property when one is supplied.
func (r *BedroomRepository) Exists(ctx context.Context, id, agencyID int64, propertyID *int64) (bool, error) {
	q := r.db.WithContext(ctx).Model(&bedroomModel{}).
		Where("id = ? AND agency_id = ?", id, agencyID)
	if propertyID != nil {
		q = q.Where("property_id = ?", *propertyID)
	}

	var cnt int64
	if err := q.Count(&cnt).Error; err != nil {
		return false, err
	}
	return cnt > 0, nil
}
