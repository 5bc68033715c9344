package handlers

import (
	"Foodgram-Backend/domain"
	"Foodgram-Backend/internal/api/presenters"
	"Foodgram-Backend/pkg/user"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
)

type (
	UserHandler interface {
		GetMe(c *fiber.Ctx) error
		GetUserDetail(c *fiber.Ctx) error
		GetUsers(c *fiber.Ctx) error
		SetPassword(c *fiber.Ctx) error
		SetAvatar(c *fiber.Ctx) error
		DeleteAvatar(c *fiber.Ctx) error
		Subscribe(c *fiber.Ctx) error
		Unsubscribe(c *fiber.Ctx) error
		GetSubscriptions(c *fiber.Ctx) error
	}

	userHandler struct {
		userService user.UserService
		validator   *validator.Validate
	}
)

func NewUserHandler(userService user.UserService, validator *validator.Validate) UserHandler {
	return &userHandler{
		userService: userService,
		validator:   validator,
	}
}

func (h *userHandler) GetMe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.GetMe(c.Context(), userID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetUserDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}

func (h *userHandler) GetUserDetail(c *fiber.Ctx) error {
	res, err := h.userService.GetUserDetail(c.Context(), c.Params("id"), localsUserID(c))
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetUserDetail, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessGetUserDetail)
}

func (h *userHandler) GetUsers(c *fiber.Ctx) error {
	page, limit := parsePagination(c)

	res, count, err := h.userService.GetUsers(c.Context(), localsUserID(c), page, limit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetUsers, err)
	}

	return presenters.SuccessResponse(c, paginatedResponse(res, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetUsers)
}

func (h *userHandler) SetPassword(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetPasswordRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedSetPassword, err)
	}

	if err := h.userService.UpdatePassword(c.Context(), *req, userID); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedSetPassword, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSetPassword)
}

func (h *userHandler) SetAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	req := new(domain.SetAvatarRequest)

	if err := c.BodyParser(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedBodyRequest, err)
	}

	if err := h.validator.Struct(req); err != nil {
		return presenters.ErrorResponse(c, fiber.StatusBadRequest, domain.MessageFailedUpdateAvatar, err)
	}

	avatarURL, err := h.userService.UpdateAvatar(c.Context(), *req, userID)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedUpdateAvatar, err)
	}

	return presenters.SuccessResponse(c, fiber.Map{"avatar": avatarURL}, fiber.StatusOK, domain.MessageSuccessUpdateAvatar)
}

func (h *userHandler) DeleteAvatar(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if err := h.userService.DeleteAvatar(c.Context(), userID); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedDeleteAvatar, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessDeleteAvatar)
}

func (h *userHandler) Subscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	res, err := h.userService.SetFollow(c.Context(), c.Params("id"), userID, true)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, res, fiber.StatusOK, domain.MessageSuccessSubscribe)
}

func (h *userHandler) Unsubscribe(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)

	if _, err := h.userService.SetFollow(c.Context(), c.Params("id"), userID, false); err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedSubscribe, err)
	}

	return presenters.SuccessResponse(c, nil, fiber.StatusOK, domain.MessageSuccessSubscribe)
}

func (h *userHandler) GetSubscriptions(c *fiber.Ctx) error {
	userID := c.Locals("user_id").(string)
	page, limit := parsePagination(c)

	// recipes_limit caps each author's recipe list; absent means uncapped
	recipesLimit, err := strconv.Atoi(c.Query("recipes_limit", "0"))
	if err != nil || recipesLimit < 0 {
		recipesLimit = 0
	}

	res, count, err := h.userService.GetSubscriptions(c.Context(), userID, page, limit, recipesLimit)
	if err != nil {
		return presenters.DomainErrorResponse(c, domain.MessageFailedGetSubscriptions, err)
	}

	return presenters.SuccessResponse(c, paginatedResponse(res, page, limit, count), fiber.StatusOK, domain.MessageSuccessGetSubscriptions)
}
