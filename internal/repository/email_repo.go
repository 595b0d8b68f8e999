package repository

import (
	"context"
	"time"

	"lettings/internal/domain"

	"gorm.io/gorm"
)

type EmailRepository struct {
	db *gorm.DB
}

func NewEmailRepository(db *gorm.DB) *EmailRepository {
	return &EmailRepository{db: db}
}

type emailModel struct {
	ID        int64     `gorm:"column:id;primaryKey"`
	AgencyID  int64     `gorm:"column:agency_id;index"`
	UserID    int64     `gorm:"column:user_id"`
	ToAddress string    `gorm:"column:to_address"`
	Subject   string    `gorm:"column:subject"`
	Body      string    `gorm:"column:body"`
	Status    string    `gorm:"column:status;index"`
	CreatedAt time.Time `gorm:"column:created_at"`
	UpdatedAt time.Time `gorm:"column:updated_at"`
}

func (emailModel) TableName() string { return "email_queue" }

func (r *EmailRepository) Enqueue(ctx context.Context, msg *domain.EmailMessage) error {
	m := emailModel{
		AgencyID:  msg.AgencyID,
		UserID:    msg.UserID,
		ToAddress: msg.ToAddress,
		Subject:   msg.Subject,
		Body:      msg.Body,
		Status:    string(domain.EmailQueued),
	}
	tx := r.db.WithContext(ctx).Create(&m)
	if tx.Error != nil {
		return tx.Error
	}

	msg.ID = m.ID
	msg.Status = domain.EmailQueued
	msg.CreatedAt = m.CreatedAt
	msg.UpdatedAt = m.UpdatedAt
	return nil
}

func (r *EmailRepository) ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.EmailMessage, error) {
	q := r.db.WithContext(ctx).Where("agency_id = ?", agencyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []emailModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.EmailMessage, 0, len(rows))
	for _, m := range rows {
		out = append(out, domain.EmailMessage{
			ID:        m.ID,
			AgencyID:  m.AgencyID,
			UserID:    m.UserID,
			ToAddress: m.ToAddress,
			Subject:   m.Subject,
			Body:      m.Body,
			Status:    domain.EmailStatus(m.Status),
			CreatedAt: m.CreatedAt,
			UpdatedAt: m.UpdatedAt,
		})
	}
	return out, nil
}
