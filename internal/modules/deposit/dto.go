package deposit

// CreateDepositRequest carries the deposit terms as they arrive on the
// wire. Amount, date and reservation days come in as strings and are
// parsed by the service so each can fail with its own message.
type CreateDepositRequest struct {
	ApplicationID    int64  `json:"application_id"`
	Amount           string `json:"amount"`
	PaymentReference string `json:"payment_reference"`
	DateReceived     string `json:"date_received"`
	BedroomID        *int64 `json:"bedroom_id"`
	PropertyID       *int64 `json:"property_id"`
	ReservationDays  string `json:"reservation_days"`
}

type UpdateDepositStatusRequest struct {
	Status string `json:"status" binding:"required"`
	Notes  string `json:"notes"`
}
