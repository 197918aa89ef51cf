package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/scheduler"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type SchedulerHandler struct {
	sched *scheduler.Scheduler
	us    service.UserService
}

func NewSchedulerHandler(sched *scheduler.Scheduler, us service.UserService) *SchedulerHandler {
	return &SchedulerHandler{sched: sched, us: us}
}

func (h *SchedulerHandler) StartScheduler(c *fiber.Ctx) error {
	userID := GetUserID(c)

	var action transfer.SchedulerAction
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&action); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to parse json",
			})
		}
	}

	timeOfDay := action.Time
	if timeOfDay == "" {
		user, err := h.us.GetProfile(c.Context(), userID)
		if err != nil {
			return respondError(c, err)
		}
		timeOfDay = user.Preferences.BestTimeToPost
	}

	h.sched.Start(userID, timeOfDay)

	return c.JSON(fiber.Map{
		"message": "Scheduler started",
	})
}

func (h *SchedulerHandler) StopScheduler(c *fiber.Ctx) error {
	h.sched.Stop(GetUserID(c))

	return c.JSON(fiber.Map{
		"message": "Scheduler stopped",
	})
}

func (h *SchedulerHandler) SchedulerStatus(c *fiber.Ctx) error {
	userID := GetUserID(c)

	return c.JSON(transfer.SchedulerStatus{
		UserID:          userID,
		IsRunning:       h.sched.IsRunning(userID),
		TotalSchedulers: h.sched.Count(),
	})
}
