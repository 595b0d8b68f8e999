package repository

import (
	"context"
	"time"

	"lettings/internal/domain"

	"gorm.io/gorm"
)

type PropertyRepository struct {
	db *gorm.DB
}

func NewPropertyRepository(db *gorm.DB) *PropertyRepository {
	return &PropertyRepository{db: db}
}

type propertyModel struct {
	ID           int64     `gorm:"column:id;primaryKey"`
	AgencyID     int64     `gorm:"column:agency_id;index"`
	DisplayName  *string   `gorm:"column:display_name"`
	AddressLine1 string    `gorm:"column:address_line1"`
	AddressLine2 *string   `gorm:"column:address_line2"`
	City         string    `gorm:"column:city"`
	Postcode     string    `gorm:"column:postcode"`
	CreatedAt    time.Time `gorm:"column:created_at"`
	UpdatedAt    time.Time `gorm:"column:updated_at"`
}

func (propertyModel) TableName() string { return "properties" }

func toDomainProperty(m propertyModel) *domain.Property {
	p := &domain.Property{
		ID:           m.ID,
		AgencyID:     m.AgencyID,
		AddressLine1: m.AddressLine1,
		City:         m.City,
		Postcode:     m.Postcode,
		CreatedAt:    m.CreatedAt,
		UpdatedAt:    m.UpdatedAt,
	}
	if m.DisplayName != nil {
		p.DisplayName = *m.DisplayName
	}
	if m.AddressLine2 != nil {
		p.AddressLine2 = *m.AddressLine2
	}
	return p
}

func (r *PropertyRepository) Create(ctx context.Context, p *domain.Property) error {
	m := propertyModel{
		AgencyID:     p.AgencyID,
		DisplayName:  optStr(p.DisplayName),
		AddressLine1: p.AddressLine1,
		AddressLine2: optStr(p.AddressLine2),
		City:         p.City,
		Postcode:     p.Postcode,
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*p = *toDomainProperty(m)
	return nil
}

func (r *PropertyRepository) GetByID(ctx context.Context, id, agencyID int64) (*domain.Property, error) {
	var m propertyModel
	tx := r.db.WithContext(ctx).Where("id = ? AND agency_id = ?", id, agencyID).First(&m)
	if tx.Error != nil {
		return nil, tx.Error
	}
	return toDomainProperty(m), nil
}

func (r *PropertyRepository) ListByAgency(ctx context.Context, agencyID int64) ([]domain.Property, error) {
	var rows []propertyModel
	tx := r.db.WithContext(ctx).Where("agency_id = ?", agencyID).Order("id").Find(&rows)
	if tx.Error != nil {
		return nil, tx.Error
	}

	out := make([]domain.Property, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainProperty(m))
	}
	return out, nil
}

func (r *PropertyRepository) Exists(ctx context.Context, id, agencyID int64) (bool, error) {
	var cnt int64
	tx := r.db.WithContext(ctx).Model(&propertyModel{}).
		Where("id = ? AND agency_id = ?", id, agencyID).
		Count(&cnt)
	if tx.Error != nil {
		return false, tx.Error
	}
	return cnt > 0, nil
}
