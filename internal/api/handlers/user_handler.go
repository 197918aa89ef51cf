package handlers

import (
	"fmt"
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	config "github.com/maheshrc27/postpilot/configs"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/internal/transfer"
	"github.com/maheshrc27/postpilot/pkg/utils"
)

type UserHandler struct {
	cfg config.Config
	s   service.UserService
}

func NewUserHandler(cfg config.Config, service service.UserService) *UserHandler {
	return &UserHandler{cfg: cfg, s: service}
}

func (h *UserHandler) Register(c *fiber.Ctx) error {
	var reg transfer.Register
	if err := c.BodyParser(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := validate.Struct(&reg); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.s.Register(c.Context(), &reg)
	if err != nil {
		return respondError(c, err)
	}

	token, err := h.issueToken(user.ID, user.Email)
	if err != nil {
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(transfer.AuthResponse{
		User: transfer.UserSummary{
			ID:    user.ID,
			Email: user.Email,
			Name:  user.Name,
		},
		Token: token,
	})
}

func (h *UserHandler) Login(c *fiber.Ctx) error {
	var login transfer.Login
	if err := c.BodyParser(&login); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := validate.Struct(&login); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.s.Login(c.Context(), login.Email, login.Password)
	if err != nil {
		slog.Info("login failed", "email", login.Email)
		return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{
			"error": "Invalid credentials",
		})
	}

	token, err := h.issueToken(user.ID, user.Email)
	if err != nil {
		return respondError(c, err)
	}

	c.Cookie(&fiber.Cookie{
		Name:     h.cfg.CookieName,
		Value:    token,
		HTTPOnly: true,
		Path:     "/",
		MaxAge:   int((7 * 24 * time.Hour).Seconds()),
	})

	return c.JSON(transfer.AuthResponse{
		User: transfer.UserSummary{
			ID:          user.ID,
			Email:       user.Email,
			Name:        user.Name,
			Niche:       user.Niche,
			IsOnboarded: user.IsOnboarded,
		},
		Token: token,
	})
}

func (h *UserHandler) GetProfile(c *fiber.Ctx) error {
	user, err := h.s.GetProfile(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) UpdateProfile(c *fiber.Ctx) error {
	var update transfer.ProfileUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := validate.Struct(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.s.UpdateProfile(c.Context(), GetUserID(c), &update)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) CompleteOnboarding(c *fiber.Ctx) error {
	var onboarding transfer.Onboarding
	if err := c.BodyParser(&onboarding); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := validate.Struct(&onboarding); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.s.CompleteOnboarding(c.Context(), GetUserID(c), &onboarding)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) ConnectSocial(c *fiber.Ctx) error {
	var req transfer.ConnectSocial
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}
	if err := validate.Struct(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	user, err := h.s.ConnectSocial(c.Context(), GetUserID(c), &req)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"user":    user,
		"message": fmt.Sprintf("%s account connected successfully", req.Platform),
	})
}

func (h *UserHandler) ProfilingQuestions(c *fiber.Ctx) error {
	questions, err := h.s.ProfilingQuestions(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"questions": questions})
}

func (h *UserHandler) SaveProfilingAnswers(c *fiber.Ctx) error {
	var answers transfer.ProfilingAnswers
	if err := c.BodyParser(&answers); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	user, err := h.s.SaveProfilingAnswers(c.Context(), GetUserID(c), &answers)
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(user)
}

func (h *UserHandler) issueToken(userID int64, email string) (string, error) {
	return utils.GenerateToken(h.cfg.SecretKey, fmt.Sprintf("%d", userID), email, 7*24*time.Hour)
}
