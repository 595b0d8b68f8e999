package domain

import (
	"strings"
	"time"
)

type UserRole string

const (
	RoleAdmin     UserRole = "admin"
	RoleAgent     UserRole = "agent"
	RoleApplicant UserRole = "applicant"
)

type User struct {
	ID           int64     `json:"id"`
	AgencyID     int64     `json:"agency_id"`
	Email        string    `json:"email" validate:"required,email"`
	PasswordHash string    `json:"-"`
	Role         UserRole  `json:"role"`
	FirstName    string    `json:"first_name"`
	LastName     string    `json:"last_name"`
	Phone        string    `json:"phone,omitempty"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`
}

func (u *User) FullName() string {
	return strings.TrimSpace(u.FirstName + " " + u.LastName)
}
