package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/services"
)

type ContactHandler struct {
	contact *services.ContactService
}

func NewContactHandler(contact *services.ContactService) *ContactHandler {
	return &ContactHandler{contact: contact}
}

// Submit stores a contact-form message and acknowledges receipt.
func (h *ContactHandler) Submit(c *fiber.Ctx) error {
	var request struct {
		Name    string `json:"name"`
		Email   string `json:"email"`
		Message string `json:"message"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if request.Name == "" || request.Email == "" || request.Message == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, email and message are required"})
	}

	id, err := h.contact.Submit(c.Context(), request.Name, request.Email, request.Message)
	if err != nil {
		if errors.Is(err, db.ErrUnavailable) {
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database not available"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{"id": id, "status": "received"})
}
