package application

type CreateApplicationRequest struct {
	UserID     int64  `json:"user_id" binding:"required"`
	PropertyID *int64 `json:"property_id"`
	BedroomID  *int64 `json:"bedroom_id"`
}
