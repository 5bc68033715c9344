package presenters

import (
	"Foodgram-Backend/domain"
	"errors"

	"github.com/gofiber/fiber/v2"
)

type Response struct {
	Status  string      `json:"status"`
	Message string      `json:"message"`
	Data    interface{} `json:"data,omitempty"`
	Error   string      `json:"error,omitempty"`
}

func SuccessResponse(c *fiber.Ctx, data interface{}, code int, message string) error {
	return c.Status(code).JSON(Response{
		Status:  "success",
		Message: message,
		Data:    data,
	})
}

func ErrorResponse(c *fiber.Ctx, code int, message string, err error) error {
	res := Response{
		Status:  "error",
		Message: message,
	}
	if err != nil {
		res.Error = err.Error()
	}
	return c.Status(code).JSON(res)
}

// DomainErrorResponse maps the three domain error roots to HTTP status codes
// and falls back to 500 for anything unclassified.
func DomainErrorResponse(c *fiber.Ctx, message string, err error) error {
	switch {
	case errors.Is(err, domain.ErrValidation):
		return ErrorResponse(c, fiber.StatusBadRequest, message, err)
	case errors.Is(err, domain.ErrNotFound):
		return ErrorResponse(c, fiber.StatusNotFound, message, err)
	case errors.Is(err, domain.ErrForbidden):
		return ErrorResponse(c, fiber.StatusForbidden, message, err)
	default:
		return ErrorResponse(c, fiber.StatusInternalServerError, message, err)
	}
}
