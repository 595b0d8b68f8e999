package domain

import "time"

type EmailStatus string

const (
	EmailQueued EmailStatus = "queued"
	EmailSent   EmailStatus = "sent"
	EmailFailed EmailStatus = "failed"
)

// EmailMessage is a queued outbound email. Delivery is handled out of
// band; the workflow only ever enqueues.
type EmailMessage struct {
	ID        int64       `json:"id"`
	AgencyID  int64       `json:"agency_id"`
	UserID    int64       `json:"user_id"`
	ToAddress string      `json:"to_address"`
	Subject   string      `json:"subject"`
	Body      string      `json:"body" gorm:"type:text"`
	Status    EmailStatus `json:"status"`
	CreatedAt time.Time   `json:"created_at"`
	UpdatedAt time.Time   `json:"updated_at"`
}
