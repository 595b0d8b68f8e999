package repository

import (
	"context"
	"sync"
	"testing"
	"time"

	"lettings/internal/database"
	"lettings/internal/domain"

	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func setupTestDB(t *testing.T) *DepositRepository {
	t.Helper()

	db, err := database.Connect(":memory:")
	require.NoError(t, err)

	// A second pooled connection would see a different in-memory DB.
	sqlDB, err := db.DB()
	require.NoError(t, err)
	sqlDB.SetMaxOpenConns(1)

	require.NoError(t, AutoMigrate(db))
	return NewDepositRepository(db)
}

type fixture struct {
	agencyID    int64
	applicantID int64
	propertyID  int64
	bedroomID   int64
}

// seedSubmittedApplication creates an agency, applicant, property, one
// bedroom, and an application in the given status. Returns the fixture
// IDs plus the application ID.
func seedSubmittedApplication(t *testing.T, r *DepositRepository, status domain.ApplicationStatus, firstName, lastName string) (fixture, int64) {
	t.Helper()

	agency := agencyModel{Name: "Harborne Lettings Ltd"}
	require.NoError(t, r.db.Create(&agency).Error)

	applicant := userModel{
		AgencyID:  agency.ID,
		Email:     firstName + "." + lastName + "@example.com",
		Role:      string(domain.RoleApplicant),
		FirstName: firstName,
		LastName:  lastName,
	}
	require.NoError(t, r.db.Create(&applicant).Error)

	property := propertyModel{
		AgencyID:     agency.ID,
		AddressLine1: "12 Station Road",
		City:         "Birmingham",
		Postcode:     "B17 9LP",
	}
	require.NoError(t, r.db.Create(&property).Error)

	bedroom := bedroomModel{
		AgencyID:   agency.ID,
		PropertyID: property.ID,
		Name:       "Room 1",
		IsActive:   true,
	}
	require.NoError(t, r.db.Create(&bedroom).Error)

	appID := seedApplication(t, r, agency.ID, applicant.ID, bedroom.ID, status)

	return fixture{
		agencyID:    agency.ID,
		applicantID: applicant.ID,
		propertyID:  property.ID,
		bedroomID:   bedroom.ID,
	}, appID
}

func seedApplication(t *testing.T, r *DepositRepository, agencyID, userID, bedroomID int64, status domain.ApplicationStatus) int64 {
	t.Helper()

	app := applicationModel{
		AgencyID:  agencyID,
		UserID:    userID,
		BedroomID: &bedroomID,
		Status:    string(status),
	}
	require.NoError(t, r.db.Create(&app).Error)
	return app.ID
}

func seedApplicant(t *testing.T, r *DepositRepository, agencyID int64, firstName, lastName string) int64 {
	t.Helper()

	u := userModel{
		AgencyID:  agencyID,
		Email:     firstName + "." + lastName + "@example.com",
		Role:      string(domain.RoleApplicant),
		FirstName: firstName,
		LastName:  lastName,
	}
	require.NoError(t, r.db.Create(&u).Error)
	return u.ID
}

func heldDeposit(fx fixture, appID int64, received time.Time, days int) *domain.HoldingDeposit {
	expires := received.AddDate(0, 0, days)
	return &domain.HoldingDeposit{
		AgencyID:             fx.agencyID,
		ApplicationID:        appID,
		Amount:               250,
		DateReceived:         received,
		BedroomID:            &fx.bedroomID,
		PropertyID:           &fx.propertyID,
		ReservationDays:      &days,
		ReservationExpiresAt: &expires,
		Status:               domain.DepositHeld,
		StatusChangedBy:      1,
	}
}

func applicationStatus(t *testing.T, r *DepositRepository, id int64) string {
	t.Helper()

	var m applicationModel
	require.NoError(t, r.db.First(&m, id).Error)
	return m.Status
}

func TestCreateHeld_ApprovesApplicationAtomically(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	received := time.Date(2025, 1, 1, 0, 0, 0, 0, time.UTC)
	d := heldDeposit(fx, appID, received, 30)

	require.NoError(t, r.CreateHeld(context.Background(), d))
	assert.NotZero(t, d.ID)
	assert.Equal(t, domain.DepositHeld, d.Status)
	assert.False(t, d.StatusChangedAt.IsZero())

	assert.Equal(t, string(domain.ApplicationApproved), applicationStatus(t, r, appID))

	got, err := r.GetByApplicationID(context.Background(), appID, fx.agencyID)
	require.NoError(t, err)
	assert.Equal(t, d.ID, got.ID)
	require.NotNil(t, got.ReservationExpiresAt)
	assert.Equal(t, "2025-01-31", got.ReservationExpiresAt.Format("2006-01-02"))
}

func TestCreateHeld_ApplicationNotFound(t *testing.T) {
	r := setupTestDB(t)
	fx, _ := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, 9999, time.Now().UTC(), 30)
	err := r.CreateHeld(context.Background(), d)

	assert.ErrorIs(t, err, domain.ErrApplicationNotFound)
}

func TestCreateHeld_RejectsNonSubmittedApplication(t *testing.T) {
	r := setupTestDB(t)

	for _, status := range []domain.ApplicationStatus{
		domain.ApplicationDraft,
		domain.ApplicationApproved,
		domain.ApplicationRejected,
		domain.ApplicationWithdrawn,
	} {
		t.Run(string(status), func(t *testing.T) {
			fx, appID := seedSubmittedApplication(t, r, status, "Sam", "Low"+string(status))

			d := heldDeposit(fx, appID, time.Now().UTC(), 30)
			err := r.CreateHeld(context.Background(), d)

			var stateErr *domain.StateConflictError
			if assert.ErrorAs(t, err, &stateErr) {
				assert.Equal(t, string(status), stateErr.Current)
				assert.Equal(t, "submitted", stateErr.Expected)
			}
			// status untouched on rejection
			assert.Equal(t, string(status), applicationStatus(t, r, appID))
		})
	}
}

func TestCreateHeld_SecondActiveDepositConflicts(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	require.NoError(t, r.CreateHeld(context.Background(), heldDeposit(fx, appID, time.Now().UTC(), 30)))

	// Force the application back to submitted so the create reaches the
	// active-deposit check rather than failing on status.
	require.NoError(t, r.db.Exec(
		"UPDATE applications SET status = ? WHERE id = ?",
		string(domain.ApplicationSubmitted), appID,
	).Error)

	err := r.CreateHeld(context.Background(), heldDeposit(fx, appID, time.Now().UTC(), 30))
	assert.ErrorIs(t, err, domain.ErrActiveDepositExists)

	deposits, listErr := r.ListByAgency(context.Background(), fx.agencyID, "")
	require.NoError(t, listErr)
	assert.Len(t, deposits, 1)
}

func TestCreateHeld_ConcurrentCreatesOnOneApplication(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	// Two creates race on the same submitted application. Exactly one
	// may commit; the other must observe a conflict, never a second row.
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i := range errs {
		wg.Add(1)
		go func(i int) {
			defer wg.Done()
			errs[i] = r.CreateHeld(context.Background(), heldDeposit(fx, appID, time.Now().UTC(), 30))
		}(i)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent create may commit, got errors %v", errs)

	deposits, err := r.ListByAgency(context.Background(), fx.agencyID, "")
	require.NoError(t, err)
	assert.Len(t, deposits, 1)
	assert.Equal(t, string(domain.ApplicationApproved), applicationStatus(t, r, appID))
}

func TestCreateHeld_ConcurrentCreatesOnOneBedroom(t *testing.T) {
	r := setupTestDB(t)
	fx, janeAppID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	otherID := seedApplicant(t, r, fx.agencyID, "Priya", "Sharma")
	otherAppID := seedApplication(t, r, fx.agencyID, otherID, fx.bedroomID, domain.ApplicationSubmitted)

	// Different applications, same bedroom, overlapping windows.
	received := time.Now().UTC().AddDate(0, 0, -1)
	errs := make([]error, 2)
	var wg sync.WaitGroup
	for i, appID := range []int64{janeAppID, otherAppID} {
		wg.Add(1)
		go func(i int, appID int64) {
			defer wg.Done()
			errs[i] = r.CreateHeld(context.Background(), heldDeposit(fx, appID, received, 30))
		}(i, appID)
	}
	wg.Wait()

	winners := 0
	for _, err := range errs {
		if err == nil {
			winners++
		}
	}
	assert.Equal(t, 1, winners, "exactly one concurrent create may reserve the bedroom, got errors %v", errs)

	held, err := r.ListByAgency(context.Background(), fx.agencyID, string(domain.DepositHeld))
	require.NoError(t, err)
	assert.Len(t, held, 1)
}

func TestCreateHeld_BedroomReservedByAnotherApplicant(t *testing.T) {
	r := setupTestDB(t)
	fx, janeAppID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	// Jane reserves the room for 30 days starting yesterday.
	received := time.Now().UTC().AddDate(0, 0, -1)
	require.NoError(t, r.CreateHeld(context.Background(), heldDeposit(fx, janeAppID, received, 30)))

	// A second applicant in the same agency targets the same bedroom.
	otherID := seedApplicant(t, r, fx.agencyID, "Priya", "Sharma")
	otherAppID := seedApplication(t, r, fx.agencyID, otherID, fx.bedroomID, domain.ApplicationSubmitted)

	err := r.CreateHeld(context.Background(), heldDeposit(fx, otherAppID, time.Now().UTC(), 30))

	var resErr *domain.ReservationConflictError
	if assert.ErrorAs(t, err, &resErr) {
		assert.Equal(t, "Jane Doe", resErr.ApplicantName)
		assert.Equal(t, received.AddDate(0, 0, 30).Format("2006-01-02"), resErr.ExpiresAt.Format("2006-01-02"))
	}

	// Nothing written for the loser: no deposit, application untouched.
	assert.Equal(t, string(domain.ApplicationSubmitted), applicationStatus(t, r, otherAppID))
	deposits, listErr := r.ListByAgency(context.Background(), fx.agencyID, "")
	require.NoError(t, listErr)
	assert.Len(t, deposits, 1)
}

func TestCreateHeld_ExpiredReservationDoesNotBlock(t *testing.T) {
	r := setupTestDB(t)
	fx, janeAppID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	// Jane's reservation ended two weeks ago, but her deposit is still held.
	received := time.Now().UTC().AddDate(0, 0, -44)
	require.NoError(t, r.CreateHeld(context.Background(), heldDeposit(fx, janeAppID, received, 30)))

	otherID := seedApplicant(t, r, fx.agencyID, "Priya", "Sharma")
	otherAppID := seedApplication(t, r, fx.agencyID, otherID, fx.bedroomID, domain.ApplicationSubmitted)

	err := r.CreateHeld(context.Background(), heldDeposit(fx, otherAppID, time.Now().UTC(), 14))
	assert.NoError(t, err)
}

func TestCreateHeld_RefundedDepositFreesBedroom(t *testing.T) {
	r := setupTestDB(t)
	fx, janeAppID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	received := time.Now().UTC().AddDate(0, 0, -1)
	d := heldDeposit(fx, janeAppID, received, 30)
	require.NoError(t, r.CreateHeld(context.Background(), d))

	_, err := r.UpdateStatus(context.Background(), d.ID, fx.agencyID, domain.DepositRefunded, "tenant withdrew", 1)
	require.NoError(t, err)

	otherID := seedApplicant(t, r, fx.agencyID, "Priya", "Sharma")
	otherAppID := seedApplication(t, r, fx.agencyID, otherID, fx.bedroomID, domain.ApplicationSubmitted)

	assert.NoError(t, r.CreateHeld(context.Background(), heldDeposit(fx, otherAppID, time.Now().UTC(), 30)))
}

func TestCreateHeld_BedroomNotFound(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	missing := int64(9999)
	d.BedroomID = &missing

	err := r.CreateHeld(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrBedroomNotFound)
	assert.Equal(t, string(domain.ApplicationSubmitted), applicationStatus(t, r, appID))
}

func TestCreateHeld_BedroomPropertyMismatch(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	other := propertyModel{AgencyID: fx.agencyID, AddressLine1: "7 Mill Lane", City: "Birmingham", Postcode: "B17 0AA"}
	require.NoError(t, r.db.Create(&other).Error)

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	d.PropertyID = &other.ID

	err := r.CreateHeld(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrBedroomNotFound)
}

func TestCreateHeld_PropertyOnlyDeposit(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	d.BedroomID = nil

	require.NoError(t, r.CreateHeld(context.Background(), d))

	// Property-only deposits never reserve a bedroom.
	res, err := r.FindActiveReservation(context.Background(), fx.bedroomID, fx.agencyID, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestCreateHeld_PropertyNotFound(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	d.BedroomID = nil
	missing := int64(9999)
	d.PropertyID = &missing

	err := r.CreateHeld(context.Background(), d)
	assert.ErrorIs(t, err, domain.ErrPropertyNotFound)
}

func TestUpdateStatus_TransitionsAreOneWay(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	require.NoError(t, r.CreateHeld(context.Background(), d))

	updated, err := r.UpdateStatus(context.Background(), d.ID, fx.agencyID, domain.DepositRefunded, "tenant withdrew", 7)
	require.NoError(t, err)
	assert.Equal(t, domain.DepositRefunded, updated.Status)
	assert.Equal(t, "tenant withdrew", updated.Notes)
	assert.Equal(t, int64(7), updated.StatusChangedBy)

	_, err = r.UpdateStatus(context.Background(), d.ID, fx.agencyID, domain.DepositForfeited, "", 7)
	var transErr *domain.TransitionError
	if assert.ErrorAs(t, err, &transErr) {
		assert.Equal(t, domain.DepositRefunded, transErr.From)
		assert.Equal(t, domain.DepositForfeited, transErr.To)
	}

	// The failed transition must not touch the row.
	got, getErr := r.GetByID(context.Background(), d.ID, fx.agencyID)
	require.NoError(t, getErr)
	assert.Equal(t, domain.DepositRefunded, got.Status)
}

func TestUpdateStatus_DepositNotFound(t *testing.T) {
	r := setupTestDB(t)
	fx, _ := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	_, err := r.UpdateStatus(context.Background(), 9999, fx.agencyID, domain.DepositRefunded, "", 1)
	assert.ErrorIs(t, err, domain.ErrDepositNotFound)
}

func TestDeposits_AreAgencyScoped(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	require.NoError(t, r.CreateHeld(context.Background(), d))

	otherAgency := agencyModel{Name: "Rival Lettings"}
	require.NoError(t, r.db.Create(&otherAgency).Error)

	_, err := r.GetByID(context.Background(), d.ID, otherAgency.ID)
	assert.ErrorIs(t, err, domain.ErrDepositNotFound)

	deposits, err := r.ListByAgency(context.Background(), otherAgency.ID, "")
	require.NoError(t, err)
	assert.Empty(t, deposits)

	res, err := r.FindActiveReservation(context.Background(), fx.bedroomID, otherAgency.ID, time.Now().UTC())
	require.NoError(t, err)
	assert.Nil(t, res)
}

func TestFindActiveReservation_ReportsApplicant(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	received := time.Now().UTC().AddDate(0, 0, -1)
	d := heldDeposit(fx, appID, received, 30)
	require.NoError(t, r.CreateHeld(context.Background(), d))

	res, err := r.FindActiveReservation(context.Background(), fx.bedroomID, fx.agencyID, time.Now().UTC())
	require.NoError(t, err)
	require.NotNil(t, res)
	assert.Equal(t, d.ID, res.DepositID)
	assert.Equal(t, appID, res.ApplicationID)
	assert.Equal(t, "Jane Doe", res.ApplicantName)
}

func TestListByAgency_StatusFilter(t *testing.T) {
	r := setupTestDB(t)
	fx, appID := seedSubmittedApplication(t, r, domain.ApplicationSubmitted, "Jane", "Doe")

	d := heldDeposit(fx, appID, time.Now().UTC(), 30)
	require.NoError(t, r.CreateHeld(context.Background(), d))
	_, err := r.UpdateStatus(context.Background(), d.ID, fx.agencyID, domain.DepositForfeited, "no-show", 1)
	require.NoError(t, err)

	held, err := r.ListByAgency(context.Background(), fx.agencyID, string(domain.DepositHeld))
	require.NoError(t, err)
	assert.Empty(t, held)

	forfeited, err := r.ListByAgency(context.Background(), fx.agencyID, string(domain.DepositForfeited))
	require.NoError(t, err)
	assert.Len(t, forfeited, 1)
}
