package domain

import "time"

type DepositStatus string

const (
	DepositHeld      DepositStatus = "held"
	DepositRefunded  DepositStatus = "refunded"
	DepositForfeited DepositStatus = "forfeited"
)

// depositTransitions is the complete transition table. held is the only
// non-terminal state; refunded and forfeited allow nothing further.
var depositTransitions = map[DepositStatus][]DepositStatus{
	DepositHeld: {DepositRefunded, DepositForfeited},
}

func (s DepositStatus) CanTransitionTo(target DepositStatus) bool {
	for _, t := range depositTransitions[s] {
		if t == target {
			return true
		}
	}
	return false
}

func (s DepositStatus) IsTerminal() bool {
	return len(depositTransitions[s]) == 0
}

type HoldingDeposit struct {
	ID                   int64         `json:"id"`
	AgencyID             int64         `json:"agency_id"`
	ApplicationID        int64         `json:"application_id" validate:"required"`
	Amount               float64       `json:"amount" validate:"required,gt=0"`
	PaymentReference     string        `json:"payment_reference,omitempty"`
	DateReceived         time.Time     `json:"date_received"`
	BedroomID            *int64        `json:"bedroom_id,omitempty"`
	PropertyID           *int64        `json:"property_id,omitempty"`
	ReservationDays      *int          `json:"reservation_days,omitempty"`
	ReservationExpiresAt *time.Time    `json:"reservation_expires_at,omitempty"`
	Status               DepositStatus `json:"status"`
	StatusChangedAt      time.Time     `json:"status_changed_at"`
	StatusChangedBy      int64         `json:"status_changed_by"`
	Notes                string        `json:"notes,omitempty"`
	CreatedAt            time.Time     `json:"created_at"`
	UpdatedAt            time.Time     `json:"updated_at"`
}

// ReservesBedroom reports whether the deposit holds an active reservation
// on a bedroom at the given instant: status held, a bedroom reference and
// an expiry window covering now.
func (d *HoldingDeposit) ReservesBedroom(now time.Time) bool {
	if d.Status != DepositHeld || d.BedroomID == nil || d.ReservationExpiresAt == nil {
		return false
	}
	return !now.Before(d.DateReceived) && now.Before(*d.ReservationExpiresAt)
}
