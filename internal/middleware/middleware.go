package middleware

import (
	"SurePicks-Backend/domain"
	"SurePicks-Backend/internal/api/presenters"
	"SurePicks-Backend/internal/utils"
	"SurePicks-Backend/pkg/jwt"
	"crypto/subtle"
	"strings"

	"github.com/gofiber/fiber/v2"
	"github.com/gofiber/fiber/v2/middleware/cors"
)

type (
	Middleware interface {
		CORSMiddleware() fiber.Handler
		AuthMiddleware(jwtService jwt.JWTService) fiber.Handler
		AdminMiddleware() fiber.Handler
	}

	middleware struct{}
)

func NewMiddleware() Middleware {
	return &middleware{}
}

func (m *middleware) CORSMiddleware() fiber.Handler {
	return cors.New(cors.Config{
		AllowHeaders: "Origin, Content-Type, Accept, Authorization, x-admin-key",
		AllowMethods: "GET, POST, PUT, PATCH, DELETE, OPTIONS",
	})
}

func (m *middleware) AuthMiddleware(jwtService jwt.JWTService) fiber.Handler {
	return func(c *fiber.Ctx) error {
		header := c.Get("Authorization")
		if header == "" {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedGetToken, domain.ErrTokenNotFound)
		}

		token := strings.TrimPrefix(header, "Bearer ")
		userID, role, err := jwtService.GetUserIDByToken(token)
		if err != nil {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedTokenInvalid, err)
		}

		c.Locals("user_id", userID)
		c.Locals("role", role)
		return c.Next()
	}
}

// AdminMiddleware gates the back office with a static shared key compared
// in constant time against the configured ADMIN_KEY.
func (m *middleware) AdminMiddleware() fiber.Handler {
	return func(c *fiber.Ctx) error {
		headerKey := c.Get("x-admin-key")
		adminKey := utils.GetConfig("ADMIN_KEY")

		if headerKey == "" || adminKey == "" ||
			subtle.ConstantTimeCompare([]byte(headerKey), []byte(adminKey)) != 1 {
			return presenters.ErrorResponse(c, fiber.StatusUnauthorized, domain.MessageFailedAdminKey, domain.ErrAdminKey)
		}
		return c.Next()
	}
}
