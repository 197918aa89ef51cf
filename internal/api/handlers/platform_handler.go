package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

// PlatformHandler serves the OAuth connect flow for Facebook pages.
type PlatformHandler struct {
	s service.PlatformService
}

func NewPlatformHandler(service service.PlatformService) *PlatformHandler {
	return &PlatformHandler{s: service}
}

func (h *PlatformHandler) ConnectFacebook(c *fiber.Ctx) error {
	state, err := utils.GenerateRandomKey(16)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "something went wrong",
		})
	}

	return c.Redirect(h.s.FacebookAuthURL(state))
}

func (h *PlatformHandler) FacebookCallback(c *fiber.Ctx) error {
	code := c.Query("code")

	if err := h.s.FacebookCallback(c.Context(), code, GetUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "facebook account connected successfully",
	})
}
