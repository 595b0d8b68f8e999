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

type DepositRepository struct {
	db *gorm.DB
}

func NewDepositRepository(db *gorm.DB) *DepositRepository {
	return &DepositRepository{db: db}
}

type depositModel struct {
	ID                   int64      `gorm:"column:id;primaryKey"`
	AgencyID             int64      `gorm:"column:agency_id;index"`
	ApplicationID        int64      `gorm:"column:application_id;index"`
	Amount               float64    `gorm:"column:amount"`
	PaymentReference     *string    `gorm:"column:payment_reference"`
	DateReceived         time.Time  `gorm:"column:date_received"`
	BedroomID            *int64     `gorm:"column:bedroom_id;index"`
	PropertyID           *int64     `gorm:"column:property_id"`
	ReservationDays      *int       `gorm:"column:reservation_days"`
	ReservationExpiresAt *time.Time `gorm:"column:reservation_expires_at"`
	Status               string     `gorm:"column:status;index"`
	StatusChangedAt      time.Time  `gorm:"column:status_changed_at"`
	StatusChangedBy      int64      `gorm:"column:status_changed_by"`
	Notes                *string    `gorm:"column:notes"`
	CreatedAt            time.Time  `gorm:"column:created_at"`
	UpdatedAt            time.Time  `gorm:"column:updated_at"`
}

func (depositModel) TableName() string { return "holding_deposits" }

func toDomainDeposit(m depositModel) *domain.HoldingDeposit {
	d := &domain.HoldingDeposit{
		ID:                   m.ID,
		AgencyID:             m.AgencyID,
		ApplicationID:        m.ApplicationID,
		Amount:               m.Amount,
		DateReceived:         m.DateReceived,
		BedroomID:            m.BedroomID,
		PropertyID:           m.PropertyID,
		ReservationDays:      m.ReservationDays,
		ReservationExpiresAt: m.ReservationExpiresAt,
		Status:               domain.DepositStatus(m.Status),
		StatusChangedAt:      m.StatusChangedAt,
		StatusChangedBy:      m.StatusChangedBy,
		CreatedAt:            m.CreatedAt,
		UpdatedAt:            m.UpdatedAt,
	}
	if m.PaymentReference != nil {
		d.PaymentReference = *m.PaymentReference
	}
	if m.Notes != nil {
		d.Notes = *m.Notes
	}
	return d
}

func toDepositModel(d *domain.HoldingDeposit) depositModel {
	return depositModel{
		ID:                   d.ID,
		AgencyID:             d.AgencyID,
		ApplicationID:        d.ApplicationID,
		Amount:               d.Amount,
		PaymentReference:     optStr(d.PaymentReference),
		DateReceived:         d.DateReceived,
		BedroomID:            d.BedroomID,
		PropertyID:           d.PropertyID,
		ReservationDays:      d.ReservationDays,
		ReservationExpiresAt: d.ReservationExpiresAt,
		Status:               string(d.Status),
		StatusChangedAt:      d.StatusChangedAt,
		StatusChangedBy:      d.StatusChangedBy,
		Notes:                optStr(d.Notes),
		CreatedAt:            d.CreatedAt,
		UpdatedAt:            d.UpdatedAt,
	}
}

// ActiveReservation is the row backing a bedroom-conflict message.
type ActiveReservation struct {
	DepositID     int64     `gorm:"column:deposit_id"`
	ApplicationID int64     `gorm:"column:application_id"`
	ApplicantName string    `gorm:"column:applicant_name"`
	ExpiresAt     time.Time `gorm:"column:expires_at"`
}

const activeReservationQuery = `
SELECT hd.id AS deposit_id,
       hd.application_id AS application_id,
       u.first_name || ' ' || u.last_name AS applicant_name,
       hd.reservation_expires_at AS expires_at
FROM holding_deposits hd
JOIN applications a ON a.id = hd.application_id AND a.agency_id = hd.agency_id
JOIN users u ON u.id = a.user_id AND u.agency_id = hd.agency_id
WHERE hd.bedroom_id = ?
  AND hd.agency_id = ?
  AND hd.status = 'held'
  AND hd.reservation_expires_at IS NOT NULL
  AND hd.date_received <= ?
  AND hd.reservation_expires_at > ?
ORDER BY hd.id
LIMIT 1
`

// FindActiveReservation returns the held deposit whose reservation window
// covers now for the given bedroom, or nil when the bedroom is free.
// Refunded and forfeited deposits never count, whatever their expiry.
func (r *DepositRepository) FindActiveReservation(ctx context.Context, bedroomID, agencyID int64, now time.Time) (*ActiveReservation, error) {
	return findActiveReservation(r.db.WithContext(ctx), bedroomID, agencyID, now)
}

func findActiveReservation(tx *gorm.DB, bedroomID, agencyID int64, now time.Time) (*ActiveReservation, error) {
	var rows []ActiveReservation
	if err := tx.Raw(activeReservationQuery, bedroomID, agencyID, now, now).Scan(&rows).Error; err != nil {
		return nil, err
	}
	if len(rows) == 0 {
		return nil, nil
	}
	return &rows[0], nil
}

// CreateHeld inserts the deposit and flips the application to approved in
// one transaction. Every conflict check runs against locked rows inside
// the same transaction, so two concurrent creates on the same application
// or bedroom cannot both commit.
func (r *DepositRepository) CreateHeld(ctx context.Context, d *domain.HoldingDeposit) error {
	return r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		lock := database.IsPostgres(tx)

		appQ := tx.Where("id = ? AND agency_id = ?", d.ApplicationID, d.AgencyID)
		if lock {
			appQ = appQ.Clauses(clause.Locking{Strength: "UPDATE"})
		}
		var app applicationModel
		if err := appQ.First(&app).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrApplicationNotFound
			}
			return err
		}

		if app.Status != string(domain.ApplicationSubmitted) {
			return &domain.StateConflictError{
				Entity:   "application",
				Current:  app.Status,
				Expected: string(domain.ApplicationSubmitted),
			}
		}

		var active int64
		err := tx.Model(&depositModel{}).
			Where("application_id = ? AND agency_id = ? AND status = ?", d.ApplicationID, d.AgencyID, string(domain.DepositHeld)).
			Count(&active).Error
		if err != nil {
			return err
		}
		if active > 0 {
			return domain.ErrActiveDepositExists
		}

		now := time.Now().UTC()

		if d.BedroomID != nil {
			bedQ := tx.Where("id = ? AND agency_id = ?", *d.BedroomID, d.AgencyID)
			if d.PropertyID != nil {
				bedQ = bedQ.Where("property_id = ?", *d.PropertyID)
			}
			if lock {
				bedQ = bedQ.Clauses(clause.Locking{Strength: "UPDATE"})
			}
			var bed bedroomModel
			if err := bedQ.First(&bed).Error; err != nil {
				if errors.Is(err, gorm.ErrRecordNotFound) {
					return domain.ErrBedroomNotFound
				}
				return err
			}

			blocking, err := findActiveReservation(tx, *d.BedroomID, d.AgencyID, now)
			if err != nil {
				return err
			}
			if blocking != nil {
				return &domain.ReservationConflictError{
					ApplicantName: blocking.ApplicantName,
					ExpiresAt:     blocking.ExpiresAt,
				}
			}
		} else if d.PropertyID != nil {
			var cnt int64
			err := tx.Model(&propertyModel{}).
				Where("id = ? AND agency_id = ?", *d.PropertyID, d.AgencyID).
				Count(&cnt).Error
			if err != nil {
				return err
			}
			if cnt == 0 {
				return domain.ErrPropertyNotFound
			}
		}

		m := toDepositModel(d)
		m.Status = string(domain.DepositHeld)
		m.StatusChangedAt = now
		if err := tx.Create(&m).Error; err != nil {
			return err
		}

		err = tx.Model(&applicationModel{}).
			Where("id = ? AND agency_id = ?", d.ApplicationID, d.AgencyID).
			Updates(map[string]interface{}{
				"status":     string(domain.ApplicationApproved),
				"updated_at": now,
			}).Error
		if err != nil {
			return err
		}

		*d = *toDomainDeposit(m)
		return nil
	})
}

// UpdateStatus applies a single terminal transition to a held deposit.
func (r *DepositRepository) UpdateStatus(ctx context.Context, id, agencyID int64, target domain.DepositStatus, notes string, actorID int64) (*domain.HoldingDeposit, error) {
	var out *domain.HoldingDeposit

	err := r.db.WithContext(ctx).Transaction(func(tx *gorm.DB) error {
		q := tx.Where("id = ? AND agency_id = ?", id, agencyID)
		if database.IsPostgres(tx) {
			q = q.Clauses(clause.Locking{Strength: "UPDATE"})
		}

		var m depositModel
		if err := q.First(&m).Error; err != nil {
			if errors.Is(err, gorm.ErrRecordNotFound) {
				return domain.ErrDepositNotFound
			}
			return err
		}

		current := domain.DepositStatus(m.Status)
		if !current.CanTransitionTo(target) {
			return &domain.TransitionError{From: current, To: target}
		}

		now := time.Now().UTC()
		updates := map[string]interface{}{
			"status":            string(target),
			"status_changed_at": now,
			"status_changed_by": actorID,
			"notes":             optStr(notes),
			"updated_at":        now,
		}
		if err := tx.Model(&depositModel{}).Where("id = ?", m.ID).Updates(updates).Error; err != nil {
			return err
		}

		m.Status = string(target)
		m.StatusChangedAt = now
		m.StatusChangedBy = actorID
		m.Notes = optStr(notes)
		m.UpdatedAt = now
		out = toDomainDeposit(m)
		return nil
	})
	if err != nil {
		return nil, err
	}
	return out, nil
}

func (r *DepositRepository) GetByID(ctx context.Context, id, agencyID int64) (*domain.HoldingDeposit, error) {
	var m depositModel
	tx := r.db.WithContext(ctx).Where("id = ? AND agency_id = ?", id, agencyID).First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, tx.Error
	}
	return toDomainDeposit(m), nil
}

func (r *DepositRepository) GetByApplicationID(ctx context.Context, applicationID, agencyID int64) (*domain.HoldingDeposit, error) {
	var m depositModel
	tx := r.db.WithContext(ctx).
		Where("application_id = ? AND agency_id = ?", applicationID, agencyID).
		Order("id DESC").
		First(&m)
	if tx.Error != nil {
		if errors.Is(tx.Error, gorm.ErrRecordNotFound) {
			return nil, domain.ErrDepositNotFound
		}
		return nil, tx.Error
	}
	return toDomainDeposit(m), nil
}

func (r *DepositRepository) ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.HoldingDeposit, error) {
	q := r.db.WithContext(ctx).Where("agency_id = ?", agencyID)
	if status != "" {
		q = q.Where("status = ?", status)
	}

	var rows []depositModel
	if err := q.Order("id").Find(&rows).Error; err != nil {
		return nil, err
	}

	out := make([]domain.HoldingDeposit, 0, len(rows))
	for _, m := range rows {
		out = append(out, *toDomainDeposit(m))
	}
	return out, nil
}
