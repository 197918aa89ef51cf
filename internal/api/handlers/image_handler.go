package handlers

import (
	"io"
	"log/slog"

	"github.com/gofiber/fiber/v2"
	"github.com/maheshrc27/postpilot/internal/service"
)

type ImageHandler struct {
	s service.ImageService
}

func NewImageHandler(service service.ImageService) *ImageHandler {
	return &ImageHandler{s: service}
}

func (h *ImageHandler) UploadImage(c *fiber.Ctx) error {
	file, err := c.FormFile("image")
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "No file provided",
		})
	}

	src, err := file.Open()
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}
	defer src.Close()

	data, err := io.ReadAll(src)
	if err != nil {
		slog.Error(err.Error())
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": "Unable to read file",
		})
	}

	asset, err := h.s.Upload(c.Context(), file.Filename, data)
	if err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error": err.Error(),
		})
	}

	return c.Status(fiber.StatusCreated).JSON(fiber.Map{
		"image":   asset,
		"message": "Image uploaded successfully",
	})
}

func (h *ImageHandler) ListImages(c *fiber.Ctx) error {
	images, err := h.s.ListImages()
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{
			"error": "Unable to list images",
		})
	}

	return c.JSON(fiber.Map{
		"images": images,
		"total":  len(images),
	})
}

func (h *ImageHandler) GetImageMetadata(c *fiber.Ctx) error {
	metadata, err := h.s.Metadata(c.Params("filename"))
	if err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	return c.JSON(fiber.Map{"metadata": metadata})
}

func (h *ImageHandler) DeleteImage(c *fiber.Ctx) error {
	if err := h.s.Delete(c.Context(), c.Params("filename")); err != nil {
		return c.Status(fiber.StatusNotFound).JSON(fiber.Map{
			"error": "Image not found",
		})
	}

	return c.JSON(fiber.Map{
		"message": "Image deleted successfully",
	})
}
