package agency

type UpdateBrandingRequest struct {
	Name          string  `json:"name"`
	DisplayName   *string `json:"display_name"`
	Email         *string `json:"email" validate:"omitempty,email"`
	Phone         *string `json:"phone"`
	LogoURL       *string `json:"logo_url" validate:"omitempty,url"`
	PrimaryColour *string `json:"primary_colour" validate:"omitempty,hexcolor"`
}
