package config

import (
	"os"
	"time"

	"FoodBridge/internal/api/handlers"
	"FoodBridge/internal/api/routes"
	"FoodBridge/internal/middleware"
	"FoodBridge/internal/utils"
	"FoodBridge/internal/utils/mailing"
	"FoodBridge/internal/utils/storage"
	"FoodBridge/pkg/donation"
	"FoodBridge/pkg/geocoding"
	"FoodBridge/pkg/jwt"
	"FoodBridge/pkg/user"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

const defaultReservationTTL = 24 * time.Hour

func NewApp(db *gorm.DB) (*fiber.App, error) {
	utils.InitValidator()
	app := fiber.New(fiber.Config{
		EnablePrintRoutes: true,
	})
	middlewares := middleware.NewMiddleware()
	validator := utils.Validate

	// setting up logging and limiter
	err := os.MkdirAll("./logs", os.ModePerm)
	if err != nil {
		log.Fatalf("error creating logs directory: %v", err)
	}
	file, err := os.OpenFile(
		"./logs/app.log",
		os.O_RDWR|os.O_CREATE|os.O_APPEND,
		0666,
	)
	if err != nil {
		log.Fatalf("error opening file: %v", err)
	}
	app.Use(logger.New(logger.Config{
		TimeFormat: "2006-01-02 15:04:05",
		TimeZone:   "America/Sao_Paulo",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// utils
	s3 := storage.NewAwsS3()
	mailer := mailing.NewMailer()
	geocoder := geocoding.NewOpenCage(utils.GetConfig("OPENCAGE_API_KEY"))

	reservationTTL := defaultReservationTTL
	if raw := utils.GetConfig("RESERVATION_TTL"); raw != "" {
		parsed, err := time.ParseDuration(raw)
		if err != nil {
			log.Fatalf("invalid RESERVATION_TTL %q: %v", raw, err)
		}
		reservationTTL = parsed
	}

	// Repository
	userRepository := user.NewUserRepository(db)
	donationRepository := donation.NewDonationRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	userService := user.NewUserService(userRepository, jwtService, mailer)
	donationService := donation.NewDonationService(
		donationRepository,
		userRepository,
		geocoder,
		mailer,
		s3,
		donation.SystemClock(),
		reservationTTL,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	donationHandler := handlers.NewDonationHandler(donationService, validator)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		DonationHandler: donationHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
