package main

import (
	"context"
	"fmt"
	"log"
	"time"

	"lettings/internal/database"
	"lettings/internal/domain"
	"lettings/internal/repository"

	"github.com/google/uuid"
	"golang.org/x/crypto/bcrypt"
)

func main() {
	db, err := database.Connect("lettings.db")
	if err != nil {
		log.Fatal("DB connection failed:", err)
	}

	log.Println("Running AutoMigrate...")
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal("AutoMigrate failed:", err)
	}

	log.Println("Cleaning old data...")
	db.Exec("DELETE FROM email_queue")
	db.Exec("DELETE FROM holding_deposits")
	db.Exec("DELETE FROM applications")
	db.Exec("DELETE FROM bedrooms")
	db.Exec("DELETE FROM properties")
	db.Exec("DELETE FROM users")
	db.Exec("DELETE FROM agencies")

	ctx := context.Background()
	agencies := repository.NewAgencyRepository(db)
	users := repository.NewUserRepository(db)
	properties := repository.NewPropertyRepository(db)
	bedrooms := repository.NewBedroomRepository(db)
	applications := repository.NewApplicationRepository(db)
	deposits := repository.NewDepositRepository(db)

	log.Println("Creating agency...")
	agency := &domain.Agency{
		Name:          "Harborne Lettings Ltd",
		DisplayName:   "Harborne Lettings",
		Email:         "office@harbornelettings.co.uk",
		Phone:         "0121 427 0000",
		PrimaryColour: "#1f3a5f",
	}
	if err := agencies.Create(ctx, agency); err != nil {
		log.Fatal(err)
	}

	log.Println("Creating users...")
	adminHash, _ := bcrypt.GenerateFromPassword([]byte("admin123"), bcrypt.DefaultCost)
	admin := &domain.User{
		AgencyID:     agency.ID,
		Email:        "admin@harbornelettings.co.uk",
		PasswordHash: string(adminHash),
		Role:         domain.RoleAdmin,
		FirstName:    "Sarah",
		LastName:     "Whitfield",
	}
	if err := users.Create(ctx, admin); err != nil {
		log.Fatal(err)
	}
	log.Println("Admin created: admin@harbornelettings.co.uk / admin123")

	agentHash, _ := bcrypt.GenerateFromPassword([]byte("agent123"), bcrypt.DefaultCost)
	agent := &domain.User{
		AgencyID:     agency.ID,
		Email:        "lettings@harbornelettings.co.uk",
		PasswordHash: string(agentHash),
		Role:         domain.RoleAgent,
		FirstName:    "Tom",
		LastName:     "Okafor",
	}
	if err := users.Create(ctx, agent); err != nil {
		log.Fatal(err)
	}

	applicantNames := [][2]string{
		{"Jane", "Doe"},
		{"Priya", "Sharma"},
		{"Liam", "Bennett"},
	}
	applicants := make([]*domain.User, 0, len(applicantNames))
	for i, name := range applicantNames {
		hash, _ := bcrypt.GenerateFromPassword([]byte("applicant123"), bcrypt.DefaultCost)
		u := &domain.User{
			AgencyID:     agency.ID,
			Email:        fmt.Sprintf("applicant%d@example.com", i+1),
			PasswordHash: string(hash),
			Role:         domain.RoleApplicant,
			FirstName:    name[0],
			LastName:     name[1],
		}
		if err := users.Create(ctx, u); err != nil {
			log.Fatal(err)
		}
		applicants = append(applicants, u)
	}

	log.Println("Creating properties and bedrooms...")
	house := &domain.Property{
		AgencyID:     agency.ID,
		DisplayName:  "12 Station Road",
		AddressLine1: "12 Station Road",
		City:         "Birmingham",
		Postcode:     "B17 9LT",
	}
	if err := properties.Create(ctx, house); err != nil {
		log.Fatal(err)
	}

	rooms := make([]*domain.Bedroom, 0, 4)
	for i := 1; i <= 4; i++ {
		b := &domain.Bedroom{
			AgencyID:    agency.ID,
			PropertyID:  house.ID,
			Name:        fmt.Sprintf("Room %d", i),
			MonthlyRent: 495 + float64(i)*30,
			IsActive:    true,
		}
		if err := bedrooms.Create(ctx, b); err != nil {
			log.Fatal(err)
		}
		rooms = append(rooms, b)
	}

	log.Println("Creating applications...")
	apps := make([]*domain.Application, 0, len(applicants))
	for i, u := range applicants {
		a := &domain.Application{
			AgencyID:   agency.ID,
			UserID:     u.ID,
			PropertyID: &house.ID,
			BedroomID:  &rooms[i].ID,
			Status:     domain.ApplicationDraft,
		}
		if err := applications.Create(ctx, a); err != nil {
			log.Fatal(err)
		}
		if _, err := applications.Submit(ctx, a.ID, agency.ID); err != nil {
			log.Fatal(err)
		}
		apps = append(apps, a)
	}

	log.Println("Recording a holding deposit for the first application...")
	days := 30
	received := time.Now().UTC().Truncate(24 * time.Hour)
	expires := received.AddDate(0, 0, days)
	d := &domain.HoldingDeposit{
		AgencyID:             agency.ID,
		ApplicationID:        apps[0].ID,
		Amount:               250,
		PaymentReference:     uuid.NewString(),
		DateReceived:         received,
		BedroomID:            apps[0].BedroomID,
		PropertyID:           apps[0].PropertyID,
		ReservationDays:      &days,
		ReservationExpiresAt: &expires,
		Status:               domain.DepositHeld,
		StatusChangedBy:      agent.ID,
	}
	if err := deposits.CreateHeld(ctx, d); err != nil {
		log.Fatal(err)
	}

	log.Printf("Seed complete: deposit %d held, room %q reserved until %s", d.ID, rooms[0].Name, expires.Format("2006-01-02"))
}
