package handlers

import (
	"log/slog"
	"time"

	"github.com/gofiber/fiber/v2"
	"github.com/hibiken/asynq"
	"github.com/maheshrc27/postpilot/internal/queue"
	"github.com/maheshrc27/postpilot/internal/service"
	"github.com/maheshrc27/postpilot/internal/transfer"
)

type PostHandler struct {
	gs          service.GenerationService
	ps          service.PostService
	AsynqClient *asynq.Client
}

func NewPostHandler(gs service.GenerationService, ps service.PostService, asynqClient *asynq.Client) *PostHandler {
	return &PostHandler{gs: gs, ps: ps, AsynqClient: asynqClient}
}

// GeneratePost runs the draft pipeline on demand for the requesting user.
func (h *PostHandler) GeneratePost(c *fiber.Ctx) error {
	post, err := h.gs.GeneratePost(c.Context(), GetUserID(c))
	if err != nil {
		slog.Error("post generation failed", "error", err)
		return respondError(c, err)
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"post":    post,
		"message": "Post generated successfully",
	})
}

func (h *PostHandler) ListPosts(c *fiber.Ctx) error {
	status := c.Query("status", "")
	if status == "all" {
		status = ""
	}
	limit := c.QueryInt("limit", 20)
	skip := c.QueryInt("skip", 0)

	posts, total, err := h.ps.List(c.Context(), GetUserID(c), status, limit, skip)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"posts": posts,
		"total": total,
		"limit": limit,
		"skip":  skip,
	})
}

func (h *PostHandler) GetPost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	post, err := h.ps.Get(c.Context(), int64(postID), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(post)
}

func (h *PostHandler) UpdatePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	var update transfer.PostUpdate
	if err := c.BodyParser(&update); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to parse json",
		})
	}

	post, err := h.ps.Update(c.Context(), int64(postID), GetUserID(c), &update)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":    post,
		"message": "Post updated successfully",
	})
}

// ApprovePost publishes immediately, or, when scheduled_time is set, marks
// the draft scheduled and enqueues a delayed publish task. Per-platform
// failures still return 200; the result list says which platforms failed.
func (h *PostHandler) ApprovePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}
	userID := GetUserID(c)

	var req transfer.ApprovePost
	if len(c.Body()) > 0 {
		if err := c.BodyParser(&req); err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Unable to parse json",
			})
		}
	}

	if req.ScheduledTime != "" {
		at, err := time.Parse(time.RFC3339, req.ScheduledTime)
		if err != nil {
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
				"error": "Invalid scheduled time format",
			})
		}

		delay, err := h.ps.Schedule(c.Context(), int64(postID), userID, at)
		if err != nil {
			return respondError(c, err)
		}

		err = queue.EnqueuePublish(h.AsynqClient, queue.PublishPostPayload{PostID: int64(postID)}, delay)
		if err != nil {
			slog.Error("failed to enqueue publish task", "post_id", postID, "error", err)
			if cancelErr := h.ps.CancelSchedule(c.Context(), int64(postID), userID); cancelErr != nil {
				slog.Error("failed to revert schedule", "post_id", postID, "error", cancelErr)
			}
			return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
				"error": "Error scheduling post",
			})
		}

		return c.JSON(fiber.Map{
			"message": "Post scheduled successfully",
		})
	}

	post, results, err := h.ps.ApproveAndPost(c.Context(), int64(postID), userID)
	if err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"post":          post,
		"socialResults": results,
		"message":       "Post approved and published successfully",
	})
}

func (h *PostHandler) RemovePost(c *fiber.Ctx) error {
	postID, err := c.ParamsInt("id")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Invalid post id",
		})
	}

	if err := h.ps.Remove(c.Context(), int64(postID), GetUserID(c)); err != nil {
		return respondError(c, err)
	}

	return c.JSON(fiber.Map{
		"message": "Post deleted successfully",
	})
}

func (h *PostHandler) GetAnalytics(c *fiber.Ctx) error {
	events, err := h.ps.ListAnalytics(c.Context(), GetUserID(c))
	if err != nil {
		return respondError(c, err)
	}
	return c.JSON(fiber.Map{"analytics": events})
}
