package domain

import "time"

// Agency is a tenant of the system and the unit of data isolation.
type Agency struct {
	ID            int64     `json:"id"`
	Name          string    `json:"name"`
	DisplayName   string    `json:"display_name,omitempty"`
	Email         string    `json:"email,omitempty"`
	Phone         string    `json:"phone,omitempty"`
	LogoURL       string    `json:"logo_url,omitempty"`
	PrimaryColour string    `json:"primary_colour,omitempty"`
	CreatedAt     time.Time `json:"created_at"`
	UpdatedAt     time.Time `json:"updated_at"`
}

// BrandedName is the name shown in client-facing messages.
func (a *Agency) BrandedName() string {
	if a.DisplayName != "" {
		return a.DisplayName
	}
	return a.Name
}
