package presenters

import (
	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  bool        `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  true,
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	resp := Response{
		Status:  false,
		Message: message,
	}
	if err != nil {
		resp.Error = err.Error()
	}
	return c.Status(code).JSON(resp)
}
