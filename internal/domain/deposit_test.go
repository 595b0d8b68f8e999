package domain

import (
	"testing"
	"time"

	"github.com/stretchr/testify/assert"
)

func TestDepositStatus_CanTransitionTo(t *testing.T) {
	all := []DepositStatus{DepositHeld, DepositRefunded, DepositForfeited}

	allowed := map[DepositStatus]map[DepositStatus]bool{
		DepositHeld: {DepositRefunded: true, DepositForfeited: true},
	}

	for _, from := range all {
		for _, to := range all {
			want := allowed[from][to]
			assert.Equal(t, want, from.CanTransitionTo(to), "%s -> %s", from, to)
		}
	}

	assert.False(t, DepositHeld.CanTransitionTo("cancelled"))
	assert.False(t, DepositStatus("unknown").CanTransitionTo(DepositRefunded))
}

func TestDepositStatus_IsTerminal(t *testing.T) {
	assert.False(t, DepositHeld.IsTerminal())
	assert.True(t, DepositRefunded.IsTerminal())
	assert.True(t, DepositForfeited.IsTerminal())
}

func TestHoldingDeposit_ReservesBedroom(t *testing.T) {
	bedroomID := int64(4)
	received := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := received.AddDate(0, 0, 30)

	base := HoldingDeposit{
		Status:               DepositHeld,
		BedroomID:            &bedroomID,
		DateReceived:         received,
		ReservationExpiresAt: &expires,
	}

	inWindow := time.Date(2025, 1, 15, 12, 0, 0, 0, time.UTC)

	t.Run("active within window", func(t *testing.T) {
		assert.True(t, base.ReservesBedroom(inWindow))
	})

	t.Run("window is half-open", func(t *testing.T) {
		assert.True(t, base.ReservesBedroom(received))
		assert.False(t, base.ReservesBedroom(expires))
	})

	t.Run("before the window", func(t *testing.T) {
		assert.False(t, base.ReservesBedroom(received.AddDate(0, 0, -1)))
	})

	t.Run("refunded never reserves", func(t *testing.T) {
		d := base
		d.Status = DepositRefunded
		assert.False(t, d.ReservesBedroom(inWindow))
	})

	t.Run("forfeited never reserves", func(t *testing.T) {
		d := base
		d.Status = DepositForfeited
		assert.False(t, d.ReservesBedroom(inWindow))
	})

	t.Run("no bedroom reference", func(t *testing.T) {
		d := base
		d.BedroomID = nil
		assert.False(t, d.ReservesBedroom(inWindow))
	})

	t.Run("no expiry window", func(t *testing.T) {
		d := base
		d.ReservationExpiresAt = nil
		assert.False(t, d.ReservesBedroom(inWindow))
	})
}
