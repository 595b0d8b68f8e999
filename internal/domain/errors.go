package domain

import (
	"errors"
	"fmt"
	"time"
)

var (
	ErrApplicationNotFound = errors.New("application not found")
	ErrDepositNotFound     = errors.New("holding deposit not found")
	ErrBedroomNotFound     = errors.New("bedroom not found")
	ErrPropertyNotFound    = errors.New("property not found")
	ErrActiveDepositExists = errors.New("application already has an active holding deposit")
)

// StateConflictError reports an operation attempted against an entity in
// the wrong state. Current and Expected carry the offending statuses.
type StateConflictError struct {
	Entity   string
	Current  string
	Expected string
}

func (e *StateConflictError) Error() string {
	return fmt.Sprintf("%s is %s, expected %s", e.Entity, e.Current, e.Expected)
}

// TransitionError reports a forbidden deposit status transition.
type TransitionError struct {
	From DepositStatus
	To   DepositStatus
}

func (e *TransitionError) Error() string {
	return fmt.Sprintf("cannot transition holding deposit from %s to %s", e.From, e.To)
}

// ReservationConflictError reports a bedroom already reserved by another
// applicant's active holding deposit.
type ReservationConflictError struct {
	ApplicantName string
	ExpiresAt     time.Time
}

func (e *ReservationConflictError) Error() string {
	return fmt.Sprintf("bedroom is reserved by %s until %s", e.ApplicantName, e.ExpiresAt.Format("2006-01-02"))
}
