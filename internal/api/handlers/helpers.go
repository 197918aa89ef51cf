package handlers

import (
	"errors"
	"strconv"

	"github.com/go-playground/validator/v10"
	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/errs"
)

var validate = validator.New()

func GetUserID(c *fiber.Ctx) int64 {
	userID, _ := strconv.Atoi(c.Locals("user_id").(string))
	return int64(userID)
}

// respondError maps the error taxonomy onto HTTP statuses.
func respondError(c *fiber.Ctx, err error) error {
	status := fiber.StatusInternalServerError

	var (
		validation  *errs.ValidationError
		notFound    *errs.NotFoundError
		authz       *errs.AuthorizationError
		conflict    *errs.StateConflictError
		generation  *errs.GenerationError
		persistence *errs.PersistenceError
	)

	switch {
	case errors.As(err, &validation):
		status = fiber.StatusBadRequest
	case errors.As(err, &notFound):
		status = fiber.StatusNotFound
	case errors.As(err, &authz):
		status = fiber.StatusForbidden
	case errors.As(err, &conflict):
		status = fiber.StatusConflict
	case errors.As(err, &generation):
		status = fiber.StatusBadGateway
	case errors.As(err, &persistence):
		status = fiber.StatusInternalServerError
	}

	return c.Status(status).JSON(fiber.Map{"error": err.Error()})
}
