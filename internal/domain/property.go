package domain

import "time"

type Property struct {
	ID           int64     `json:"id"`
	AgencyID     int64     `json:"agency_id"`
	DisplayName  string    `json:"display_name"`
	AddressLine1 string    `json:"address_line1" validate:"required"`
	AddressLine2 string    `json:"address_line2,omitempty"`
	City         string    `json:"city"`
	Postcode     string    `json:"postcode"`
	CreatedAt    time.Time `json:"created_at"`
	UpdatedAt    time.Time `json:"updated_at"`

	Bedrooms []Bedroom `json:"bedrooms,omitempty" gorm:"foreignKey:PropertyID"`
}

type Bedroom struct {
	ID          int64     `json:"id"`
	AgencyID    int64     `json:"agency_id"`
	PropertyID  int64     `json:"property_id" validate:"required"`
	Name        string    `json:"name" validate:"required"`
	MonthlyRent float64   `json:"monthly_rent" validate:"gte=0"`
	IsActive    bool      `json:"is_active"`
	CreatedAt   time.Time `json:"created_at"`
	UpdatedAt   time.Time `json:"updated_at"`
}
