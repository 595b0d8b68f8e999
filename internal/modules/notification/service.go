package notification

import (
	"context"
	"errors"
	"fmt"
	"strings"

	"lettings/internal/domain"
)

const TypeApplicationApproved = "application.approved"

var ErrInvalidStatusFilter = errors.New("invalid email status filter")

type EmailStore interface {
	Enqueue(ctx context.Context, msg *domain.EmailMessage) error
	ListByAgency(ctx context.Context, agencyID int64, status string) ([]domain.EmailMessage, error)
}

// Service fans an event out to the email queue and, when the user is
// connected, the websocket hub. Callers treat every failure here as
// best-effort.
type Service struct {
	emails EmailStore
	hub    *Hub
}

func NewService(emails EmailStore, hub *Hub) *Service {
	return &Service{
		emails: emails,
		hub:    hub,
	}
}

func (s *Service) NotifyApplicationApproved(ctx context.Context, applicant *domain.User, agencyName string, d *domain.HoldingDeposit) error {
	from := agencyName
	if from == "" {
		from = "your letting agency"
	}

	body := fmt.Sprintf(
		"Dear %s,\n\nYour rental application has been approved. %s has received your holding deposit of %.2f on %s.",
		applicant.FullName(), from, d.Amount, d.DateReceived.Format("2 January 2006"),
	)
	if d.ReservationExpiresAt != nil {
		body += fmt.Sprintf("\n\nYour room is reserved until %s.", d.ReservationExpiresAt.Format("2 January 2006"))
	}

	msg := &domain.EmailMessage{
		AgencyID:  applicant.AgencyID,
		UserID:    applicant.ID,
		ToAddress: applicant.Email,
		Subject:   fmt.Sprintf("Application approved - %s", from),
		Body:      body,
	}
	if err := s.emails.Enqueue(ctx, msg); err != nil {
		return err
	}

	if s.hub != nil {
		s.hub.SendToUser(applicant.ID, map[string]interface{}{
			"type":           TypeApplicationApproved,
			"application_id": d.ApplicationID,
			"deposit_id":     d.ID,
		})
	}

	return nil
}

// ListEmails reads the agency's outbound email log.
func (s *Service) ListEmails(ctx context.Context, agencyID int64, status string) ([]domain.EmailMessage, error) {
	status = strings.TrimSpace(status)
	if status != "" {
		switch domain.EmailStatus(status) {
		case domain.EmailQueued, domain.EmailSent, domain.EmailFailed:
		default:
			return nil, ErrInvalidStatusFilter
		}
	}
	return s.emails.ListByAgency(ctx, agencyID, status)
}
