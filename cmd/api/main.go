package main

import (
	"log"

	"github.com/gin-gonic/gin"
	"github.com/joho/godotenv"

	"lettings/internal/config"
	"lettings/internal/database"
	"lettings/internal/middleware"
	"lettings/internal/modules/agency"
	"lettings/internal/modules/application"
	"lettings/internal/modules/auth"
	"lettings/internal/modules/deposit"
	"lettings/internal/modules/notification"
	"lettings/internal/modules/portfolio"
	jwtsvc "lettings/internal/pkg/jwt"
	"lettings/internal/repository"
)

func main() {
	_ = godotenv.Load()

	cfg, err := config.LoadRuntimeConfig()
	if err != nil {
		log.Fatal(err)
	}

	db, err := database.Connect(cfg.DatabaseURL)
	if err != nil {
		log.Fatal(err)
	}
	if err := repository.AutoMigrate(db); err != nil {
		log.Fatal(err)
	}

	agencyRepo := repository.NewAgencyRepository(db)
	userRepo := repository.NewUserRepository(db)
	propertyRepo := repository.NewPropertyRepository(db)
	bedroomRepo := repository.NewBedroomRepository(db)
	applicationRepo := repository.NewApplicationRepository(db)
	depositRepo := repository.NewDepositRepository(db)
	emailRepo := repository.NewEmailRepository(db)

	j := jwtsvc.New(cfg.JWTSecret, cfg.JWTAccessTTL)

	hub := notification.NewHub()
	notifService := notification.NewService(emailRepo, hub)
	notifHandler := notification.NewHandler(hub, notifService)

	authService := auth.NewService(userRepo, agencyRepo, j)
	authHandler := auth.NewHandler(authService)

	agencyService := agency.NewService(agencyRepo)
	agencyHandler := agency.NewHandler(agencyService)

	portfolioService := portfolio.NewService(propertyRepo, bedroomRepo)
	portfolioHandler := portfolio.NewHandler(portfolioService)

	applicationService := application.NewService(applicationRepo, userRepo, bedroomRepo, propertyRepo)
	applicationHandler := application.NewHandler(applicationService)

	depositService := deposit.NewService(
		depositRepo,
		applicationRepo,
		userRepo,
		agencyRepo,
		notifService,
		log.Printf,
	)
	depositHandler := deposit.NewHandler(depositService)

	r := gin.Default()
	r.Use(middleware.CORS())
	r.Use(middleware.ErrorLogger())

	v1 := r.Group("/api/v1")
	{
		// public
		authHandler.RegisterRoutes(v1)

		// protected
		protected := v1.Group("/")
		protected.Use(middleware.Auth(j))
		{
			agencyHandler.RegisterRoutes(protected)
			portfolioHandler.RegisterRoutes(protected)
			applicationHandler.RegisterRoutes(protected)
			depositHandler.RegisterRoutes(protected)
			notifHandler.RegisterRoutes(protected)
		}
	}

	if err := r.Run(":" + cfg.Port); err != nil {
		log.Fatal(err)
	}
}
