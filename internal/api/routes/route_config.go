package routes

import (
	"SurePicks-Backend/internal/api/handlers"
	"SurePicks-Backend/internal/middleware"
	"SurePicks-Backend/pkg/jwt"

	"github.com/gofiber/fiber/v2"
)

type Config struct {
	App             *fiber.App
	UserHandler     handlers.UserHandler
	GameHandler     handlers.GameHandler
	PurchaseHandler handlers.PurchaseHandler
	Middleware      middleware.Middleware
	JWTService      jwt.JWTService
}

func (c *Config) Setup() {
	c.App.Use(c.Middleware.CORSMiddleware())
	c.User()
	c.Predictions()
	c.Purchases()
	c.Admin()
	c.GuestRoute()
}

func (c *Config) User() {
	user := c.App.Group("/api/v1/users")
	{
		user.Post("/register", c.UserHandler.Register)
		user.Post("/login", c.UserHandler.Login)
		user.Get("/me", c.Middleware.AuthMiddleware(c.JWTService), c.UserHandler.Me)
	}
}

func (c *Config) Predictions() {
	predictions := c.App.Group("/api/v1/predictions")
	{
		predictions.Get("", c.GameHandler.ListPublicGames)
		// Static paths before the :id wildcard.
		predictions.Get("/purchased", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.GetPurchasedGames)
		predictions.Get("/recovery", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.GetRecoveryGames)
		predictions.Get("/:id", c.Middleware.AuthMiddleware(c.JWTService), c.PurchaseHandler.GetGameDetail)
	}
}

func (c *Config) Purchases() {
	purchases := c.App.Group("/api/v1/purchases", c.Middleware.AuthMiddleware(c.JWTService))
	{
		purchases.Post("/initiate", c.PurchaseHandler.InitiatePurchase)
		purchases.Post("/verify", c.PurchaseHandler.VerifyPurchase)
		purchases.Get("/history", c.PurchaseHandler.GetPurchaseHistory)
	}
}

func (c *Config) Admin() {
	admin := c.App.Group("/api/v1/admin", c.Middleware.AdminMiddleware())
	{
		admin.Get("/games", c.GameHandler.ListGames)
		admin.Post("/games", c.GameHandler.UploadGame)
		admin.Put("/games", c.GameHandler.UpdateGame)
		admin.Post("/games/archive", c.GameHandler.ArchiveGame)
		admin.Post("/games/restore", c.GameHandler.RestoreGame)
		admin.Post("/games/delete", c.GameHandler.DeleteGame)
		admin.Post("/games/match-status", c.GameHandler.SetMatchStatus)
		admin.Post("/access-grants", c.PurchaseHandler.GrantAccess)
		admin.Get("/dashboard", c.PurchaseHandler.GetDashboard)
	}
}

func (c *Config) GuestRoute() {
	c.App.Get("/api/ping", func(c *fiber.Ctx) error {
		return c.JSON(fiber.Map{"message": "pong"})
	})
	c.App.Get("/purchase/callback", c.PurchaseHandler.PurchaseCallback)
	c.App.Post("/webhook/paystack", c.PurchaseHandler.PaystackWebhook)
}
