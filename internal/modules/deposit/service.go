package deposit

import (
	"context"
	"errors"
	"math"
	"strconv"
	"strings"
	"time"

	"lettings/internal/domain"
	"lettings/internal/repository"

	"github.com/jackc/pgx/v5/pgconn"
)

const dateLayout = "2006-01-02"

const (
	minReservationDays = 1
	maxReservationDays = 365
)

type Service struct {
	deposits     DepositRepository
	applications ApplicationReader
	users        UserReader
	agencies     BrandingReader
	notifs       NotificationSender
	loggerf      func(format string, args ...interface{})
}

func NewService(
	deposits DepositRepository,
	applications ApplicationReader,
	users UserReader,
	agencies BrandingReader,
	notifs NotificationSender,
	loggerf func(format string, args ...interface{}),
) *Service {
	if loggerf == nil {
		loggerf = func(string, ...interface{}) {}
	}
	return &Service{
		deposits:     deposits,
		applications: applications,
		users:        users,
		agencies:     agencies,
		notifs:       notifs,
		loggerf:      loggerf,
	}
}

// CreateDeposit records a holding deposit against a submitted application
// and approves the application in the same transaction. Validation runs
// in a fixed order; the first failing check wins. The approval
// notification fires after commit and is best-effort.
func (s *Service) CreateDeposit(ctx context.Context, agencyID, actorID int64, req CreateDepositRequest) (*domain.HoldingDeposit, error) {
	if req.ApplicationID <= 0 {
		return nil, errValidation("Application ID is required")
	}
	if strings.TrimSpace(req.Amount) == "" {
		return nil, errValidation("Amount is required")
	}
	if strings.TrimSpace(req.DateReceived) == "" {
		return nil, errValidation("Date received is required")
	}

	amount, err := strconv.ParseFloat(strings.TrimSpace(req.Amount), 64)
	if err != nil || math.IsNaN(amount) || math.IsInf(amount, 0) || amount <= 0 {
		return nil, errValidation("Amount must be a valid number greater than 0")
	}

	dateReceived, err := time.ParseInLocation(dateLayout, strings.TrimSpace(req.DateReceived), time.UTC)
	if err != nil {
		return nil, errValidation("Date received must be a valid date in YYYY-MM-DD format")
	}

	var reservationDays *int
	var expiresAt *time.Time
	if raw := strings.TrimSpace(req.ReservationDays); raw != "" {
		days, err := strconv.Atoi(raw)
		if err != nil || days < minReservationDays || days > maxReservationDays {
			return nil, errValidation("Reservation days must be a whole number between 1 and 365")
		}
		reservationDays = &days
		// Calendar arithmetic: 2025-01-01 + 30 days is 2025-01-31
		// regardless of DST or elapsed hours.
		exp := dateReceived.AddDate(0, 0, days)
		expiresAt = &exp
	}

	d := &domain.HoldingDeposit{
		AgencyID:             agencyID,
		ApplicationID:        req.ApplicationID,
		Amount:               amount,
		PaymentReference:     strings.TrimSpace(req.PaymentReference),
		DateReceived:         dateReceived,
		BedroomID:            req.BedroomID,
		PropertyID:           req.PropertyID,
		ReservationDays:      reservationDays,
		ReservationExpiresAt: expiresAt,
		Status:               domain.DepositHeld,
		StatusChangedBy:      actorID,
	}

	if err := s.deposits.CreateHeld(ctx, d); err != nil {
		var pgErr *pgconn.PgError
		if errors.As(err, &pgErr) && pgErr.Code == "23505" && pgErr.ConstraintName == "idx_one_active_deposit" {
			return nil, domain.ErrActiveDepositExists
		}
		return nil, err
	}

	s.notifyApproved(ctx, d)

	return d, nil
}

// notifyApproved is fire-and-forget: the deposit and approval are already
// committed, so every failure here is logged and swallowed.
func (s *Service) notifyApproved(ctx context.Context, d *domain.HoldingDeposit) {
	if s.notifs == nil {
		return
	}

	app, err := s.applications.GetByID(ctx, d.ApplicationID, d.AgencyID)
	if err != nil {
		s.loggerf("level=error msg=approval notification skipped, application lookup failed application_id=%d err=%v", d.ApplicationID, err)
		return
	}

	applicant, err := s.users.GetByID(ctx, app.UserID, d.AgencyID)
	if err != nil {
		s.loggerf("level=error msg=approval notification skipped, applicant lookup failed user_id=%d err=%v", app.UserID, err)
		return
	}

	agencyName := ""
	if agency, err := s.agencies.GetByID(ctx, d.AgencyID); err == nil {
		agencyName = agency.BrandedName()
	} else {
		s.loggerf("level=warn msg=branding lookup failed, sending unbranded notification agency_id=%d err=%v", d.AgencyID, err)
	}

	if err := s.notifs.NotifyApplicationApproved(ctx, applicant, agencyName, d); err != nil {
		s.loggerf("level=error msg=approval notification dispatch failed deposit_id=%d err=%v", d.ID, err)
	}
}

// UpdateStatus applies the single permitted terminal transition.
func (s *Service) UpdateStatus(ctx context.Context, agencyID, actorID, depositID int64, req UpdateDepositStatusRequest) (*domain.HoldingDeposit, error) {
	target := domain.DepositStatus(strings.TrimSpace(req.Status))
	if target != domain.DepositRefunded && target != domain.DepositForfeited {
		return nil, errValidation("Status must be refunded or forfeited")
	}

	return s.deposits.UpdateStatus(ctx, depositID, agencyID, target, strings.TrimSpace(req.Notes), actorID)
}

func (s *Service) GetByID(ctx context.Context, id, agencyID int64) (*domain.HoldingDeposit, error) {
	return s.deposits.GetByID(ctx, id, agencyID)
}

func (s *Service) GetByApplicationID(ctx context.Context, applicationID, agencyID int64) (*domain.HoldingDeposit, error) {
	return s.deposits.GetByApplicationID(ctx, applicationID, agencyID)
}

func (s *Service) List(ctx context.Context, agencyID int64, status string) ([]domain.HoldingDeposit, error) {
	status = strings.TrimSpace(status)
	if status != "" {
		switch domain.DepositStatus(status) {
		case domain.DepositHeld, domain.DepositRefunded, domain.DepositForfeited:
		default:
			return nil, errValidation("Status filter must be held, refunded or forfeited")
		}
	}
	return s.deposits.ListByAgency(ctx, agencyID, status)
}

// ActiveReservation reports the held deposit currently reserving a
// bedroom, or nil when the bedroom is free.
func (s *Service) ActiveReservation(ctx context.Context, bedroomID, agencyID int64) (*repository.ActiveReservation, error) {
	return s.deposits.FindActiveReservation(ctx, bedroomID, agencyID, time.Now().UTC())
}
