package settings

import (
	"log"

	"github.com/gofiber/fiber/v2"
)

type Handler struct {
	service *Service
}

func NewHandler(service *Service) *Handler {
	return &Handler{service: service}
}

// RegisterPublicRoutes mounts the storefront read.
func (h *Handler) RegisterPublicRoutes(app *fiber.App) {
	app.Get("/api/settings", h.getSettings)
}

// RegisterProtectedRoutes mounts the dashboard write behind the JWT gate.
func (h *Handler) RegisterProtectedRoutes(app *fiber.App) {
	app.Put("/api/settings", h.updateSettings)
}

func (h *Handler) getSettings(c *fiber.Ctx) error {
	s, err := h.service.Get(c.UserContext())
	if err != nil {
		log.Printf("get settings failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to load settings"})
	}
	return c.JSON(s)
}

func (h *Handler) updateSettings(c *fiber.Ctx) error {
	patch := Patch{}
	if err := c.BodyParser(&patch); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid request body"})
	}

	updated, err := h.service.Update(c.UserContext(), patch)
	if err != nil {
		log.Printf("update settings failed: %v", err)
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "failed to update settings"})
	}
	return c.JSON(updated)
}
