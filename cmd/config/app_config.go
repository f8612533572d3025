package config

import (
	"SurePicks-Backend/internal/api/handlers"
	"SurePicks-Backend/internal/api/routes"
	"SurePicks-Backend/internal/middleware"
	"SurePicks-Backend/internal/utils"
	"SurePicks-Backend/pkg/game"
	"SurePicks-Backend/pkg/jwt"
	"SurePicks-Backend/pkg/paystack"
	"SurePicks-Backend/pkg/purchase"
	"SurePicks-Backend/pkg/user"
	"os"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/log"
	"github.com/gofiber/fiber/v2/middleware/limiter"
	"github.com/gofiber/fiber/v2/middleware/logger"
	"gorm.io/gorm"
)

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
		TimeZone:   "Africa/Accra",
		Output:     file,
	}))

	app.Use(limiter.New(limiter.Config{
		Max:        10,
		Expiration: 1 * time.Second,
	}))

	// Repository
	userRepository := user.NewUserRepository(db)
	gameRepository := game.NewGameRepository(db)
	purchaseRepository := purchase.NewPurchaseRepository(db)

	// Service
	jwtService := jwt.NewJWTService()
	paystackService := paystack.NewPaystackService(
		utils.GetConfig("PAYSTACK_SECRET_KEY"),
		utils.GetConfig("PAYSTACK_BASE_URL"),
	)
	userService := user.NewUserService(userRepository, jwtService)
	gameService := game.NewGameService(gameRepository)
	purchaseService := purchase.NewPurchaseService(
		purchaseRepository,
		gameRepository,
		userRepository,
		paystackService,
	)

	// Handler
	userHandler := handlers.NewUserHandler(userService, validator)
	gameHandler := handlers.NewGameHandler(gameService, validator)
	purchaseHandler := handlers.NewPurchaseHandler(
		purchaseService,
		gameService,
		paystackService,
		validator,
	)

	// routes
	routesConfig := routes.Config{
		App:             app,
		UserHandler:     userHandler,
		GameHandler:     gameHandler,
		PurchaseHandler: purchaseHandler,
		Middleware:      middlewares,
		JWTService:      jwtService,
	}
	routesConfig.Setup()
	return app, nil
}
