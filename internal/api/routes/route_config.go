package routes

import (
	"FoodBridge/internal/api/handlers"
	"FoodBridge/internal/middleware"
	"FoodBridge/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	DonationHandler handlers.DonationHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Donations()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
		user.Post("/forget", c.UserHandler.ForgotPassword)
		user.Post("/reset", c.UserHandler.ResetPassword)
	}
}

func (c *Config) Donations() {
	donations := c.App.Group("/api/v1/donations", c.Middleware.AuthMiddleware(c.JWTService))
	{
		donations.Post("", c.DonationHandler.CreateDonation)
		donations.Get("", c.DonationHandler.GetUserDonations)
		donations.Get("/user", c.DonationHandler.GetAvailableDonations)
		donations.Get("/MyDonations", c.DonationHandler.GetMyDonations)
		donations.Get("/all", c.DonationHandler.GetAllDonations)
		donations.Get("/reserved-by-me", c.DonationHandler.GetDonationsReservedByMe)
		donations.Patch("/:id/reserve", c.DonationHandler.ReserveDonation)
		donations.Delete("/:id/creator", c.DonationHandler.DeleteAsCreator)
		donations.Delete("/:id", c.DonationHandler.DeleteAsReserver)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
}
