package notification

import (
	"context"
	"errors"
	"testing"
	"time"

	"lettings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type fakeEmailStore struct {
	queued      []domain.EmailMessage
	failEnqueue bool
}

func (f *fakeEmailStore) Enqueue(_ context.Context, msg *domain.EmailMessage) error {
	if f.failEnqueue {
		return errors.New("insert failed")
	}
	msg.ID = int64(len(f.queued) + 1)
	msg.Status = domain.EmailQueued
	f.queued = append(f.queued, *msg)
	return nil
}

func (f *fakeEmailStore) ListByAgency(_ context.Context, agencyID int64, status string) ([]domain.EmailMessage, error) {
	var out []domain.EmailMessage
	for _, m := range f.queued {
		if m.AgencyID != agencyID {
			continue
		}
		if status != "" && string(m.Status) != status {
			continue
		}
		out = append(out, m)
	}
	return out, nil
}

func testDeposit() *domain.HoldingDeposit {
	received := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	expires := received.AddDate(0, 0, 30)
	return &domain.HoldingDeposit{
		ID:                   501,
		AgencyID:             10,
		ApplicationID:        7,
		Amount:               250,
		DateReceived:         received,
		ReservationExpiresAt: &expires,
		Status:               domain.DepositHeld,
	}
}

func testApplicant() *domain.User {
	return &domain.User{
		ID:        3,
		AgencyID:  10,
		Email:     "jane@example.com",
		FirstName: "Jane",
		LastName:  "Doe",
	}
}

func TestService_NotifyApplicationApproved_QueuesBrandedEmail(t *testing.T) {
	store := &fakeEmailStore{}
	svc := NewService(store, nil)

	err := svc.NotifyApplicationApproved(context.Background(), testApplicant(), "Harborne Lettings", testDeposit())

	require.NoError(t, err)
	require.Len(t, store.queued, 1)
	msg := store.queued[0]
	assert.Equal(t, int64(10), msg.AgencyID)
	assert.Equal(t, "jane@example.com", msg.ToAddress)
	assert.Contains(t, msg.Subject, "Harborne Lettings")
	assert.Contains(t, msg.Body, "Jane Doe")
	assert.Contains(t, msg.Body, "250.00")
	assert.Contains(t, msg.Body, "31 January 2025")
	assert.Equal(t, domain.EmailQueued, msg.Status)
}

func TestService_NotifyApplicationApproved_UnbrandedFallback(t *testing.T) {
	store := &fakeEmailStore{}
	svc := NewService(store, nil)

	err := svc.NotifyApplicationApproved(context.Background(), testApplicant(), "", testDeposit())

	require.NoError(t, err)
	require.Len(t, store.queued, 1)
	assert.Contains(t, store.queued[0].Body, "your letting agency")
}

func TestService_NotifyApplicationApproved_EnqueueFailure(t *testing.T) {
	svc := NewService(&fakeEmailStore{failEnqueue: true}, nil)

	err := svc.NotifyApplicationApproved(context.Background(), testApplicant(), "Harborne Lettings", testDeposit())
	assert.Error(t, err)
}

func TestService_ListEmails(t *testing.T) {
	store := &fakeEmailStore{}
	svc := NewService(store, nil)
	require.NoError(t, svc.NotifyApplicationApproved(context.Background(), testApplicant(), "Harborne Lettings", testDeposit()))

	t.Run("rejects unknown status filter", func(t *testing.T) {
		_, err := svc.ListEmails(context.Background(), 10, "bounced")
		assert.ErrorIs(t, err, ErrInvalidStatusFilter)
	})

	t.Run("filters by status", func(t *testing.T) {
		list, err := svc.ListEmails(context.Background(), 10, string(domain.EmailQueued))
		require.NoError(t, err)
		assert.Len(t, list, 1)

		sent, err := svc.ListEmails(context.Background(), 10, string(domain.EmailSent))
		require.NoError(t, err)
		assert.Empty(t, sent)
	})

	t.Run("scoped to the agency", func(t *testing.T) {
		list, err := svc.ListEmails(context.Background(), 99, "")
		require.NoError(t, err)
		assert.Empty(t, list)
	})
}
