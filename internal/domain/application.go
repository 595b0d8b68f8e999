package domain

import "time"

type ApplicationStatus string

const (
	ApplicationDraft     ApplicationStatus = "draft"
	ApplicationSubmitted ApplicationStatus = "submitted"
	ApplicationApproved  ApplicationStatus = "approved"
	ApplicationRejected  ApplicationStatus = "rejected"
	ApplicationWithdrawn ApplicationStatus = "withdrawn"
)

type Application struct {
	ID          int64             `json:"id"`
	AgencyID    int64             `json:"agency_id"`
	UserID      int64             `json:"user_id" validate:"required"`
	PropertyID  *int64            `json:"property_id,omitempty"`
	BedroomID   *int64            `json:"bedroom_id,omitempty"`
	Status      ApplicationStatus `json:"status"`
	SubmittedAt *time.Time        `json:"submitted_at,omitempty"`
	CreatedAt   time.Time         `json:"created_at"`
	UpdatedAt   time.Time         `json:"updated_at"`

	User *User `json:"user,omitempty" gorm:"foreignKey:UserID"`
}
