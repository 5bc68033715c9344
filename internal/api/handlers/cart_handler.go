package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/cart"
	"fmt"

	"github.com/gofiber/fiber/v2"
)

type (
	CartHandler interface {
		DownloadShoppingCart(c *fiber.Ctx) error
	}

	cartHandler struct {
		cartService cart.CartService
	}
)

func NewCartHandler(cartService cart.CartService) CartHandler {
	return &cartHandler{
		cartService: cartService,
	}
}

func (h *cartHandler) DownloadShoppingCart(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	body, contentType, fileName, err := h.cartService.DownloadShoppingList(c.Context(), userID, c.Query("format", "pdf"))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDownloadCart, err)
	}

	c.Set(fiber.HeaderContentType, contentType)
	c.Set(fiber.HeaderContentDisposition, fmt.Sprintf("attachment; filename=%q", fileName))
	return c.Status(fiber.StatusOK).Send(body)
}
