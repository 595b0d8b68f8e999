package repository

import (
	"context"
	"errors"
	"time"

	"lettings/internal/database"
	"lettings/internal/domain"

	"gorm.io/gorm"
	"gorm.io/gorm/clause"
)

type ApplicationRepository struct {
	db *gorm.DB
}

func NewApplicationRepository(db *gorm.DB) *ApplicationRepository {
	return &ApplicationRepository{db: db}
}

type applicationModel struct {
	ID          int64      `gorm:"column:id;primaryKey"`
	AgencyID    int64      `gorm:"column:agency_id;index"`
	UserID      int64      `gorm:"column:user_id;index"`
	PropertyID  *int64     `gorm:"column:property_id"`
	BedroomID   *int64     `gorm:"column:bedroom_id"`
	Status      string     `gorm:"column:status;index"`
	SubmittedAt *time.Time `gorm:"column:submitted_at"`
	CreatedAt   time.Time  `gorm:"column:created_at"`
	UpdatedAt   time.Time  `gorm:"column:updated_at"`
}

func (applicationModel) TableName() string { return "applications" }

func toDomainApplication(m applicationModel) *domain.Application {
	return &domain.Application{
		ID:          m.ID,
		AgencyID:    m.AgencyID,
		UserID:      m.UserID,
		PropertyID:  m.PropertyID,
		BedroomID:   m.BedroomID,
		Status:      domain.ApplicationStatus(m.Status),
		SubmittedAt: m.SubmittedAt,
		CreatedAt:   m.CreatedAt,
		UpdatedAt:   m.UpdatedAt,
	}
}

func (r *ApplicationRepository) Create(ctx context.Context, a *domain.Application) error {
	m := applicationModel{
		AgencyID:   a.AgencyID,
		UserID:     a.UserID,
		PropertyID: a.PropertyID,
		BedroomID:  a.BedroomID,
		Status:     string(a.Status),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}
	*a = *toDomainApplication(m)
	return nil
}

func (r *ApplicationRepository) GetByID(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	var m applicationModel
	tx := r.db.WithContext(ctx).Where("id = ? AND agency_id = ?", id, agencyID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrApplicationNotFound
		}
		return nil, tx.Error
	}
	return toDomainApplication(m), nil
}

func (r *ApplicationRepository) ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.Application, error) {
	q := r.db.WithContext(ctx).Where("agency_id = ?", agencyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []applicationModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.Application, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainApplication(m))
	}
	return out, nil
}

// Submit moves a draft application to submitted. The row is locked for
// the duration of the transaction so two submits cannot race.
func (r *ApplicationRepository) Submit(ctx context.Context, id, agencyID int64) (*domain.Application, error) {
	var out *domain.Application

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND agency_id = ?", id, agencyID)
		if database.IsPostgres(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var m applicationModel
		if err := q.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrApplicationNotFound
			}
			return err
		}

		if m.Status != string(domain.ApplicationDraft) {
			return &domain.StateConflictError{
				Entity:   "application",
				Current:  m.Status,
				Expected: string(domain.ApplicationDraft),
			}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":       string(domain.ApplicationSubmitted),
			"submitted_at": now,
			"updated_at":   now,
		}
		if err := tx.Model(&applicationModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return err
		}

		m.Status = string(domain.ApplicationSubmitted)
		m.SubmittedAt = &now
		m.UpdatedAt = now
		out = toDomainApplication(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}
