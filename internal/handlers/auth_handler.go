package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pastelhq/landing-api/internal/db"
	"github.com/pastelhq/landing-api/internal/services"
)

type AuthHandler struct {
	auth *services.AuthService
}

func NewAuthHandler(auth *services.AuthService) *AuthHandler {
	return &AuthHandler{auth: auth}
}

func (h *AuthHandler) Register(c *fiber.Ctx) error {
	var request struct {
		Name     string `json:"name"`
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}
	if request.Name == "" || request.Email == "" || request.Password == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "name, email and password are required"})
	}

	user, err := h.auth.Register(c.Context(), request.Name, request.Email, request.Password)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrDuplicateEmail):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Email already registered"})
		case errors.Is(err, db.ErrUnavailable):
			return c.Status(fiber.StatusServiceUnavailable).JSON(fiber.Map{"error": "Database not available"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"plan":  user.Plan,
	})
}

func (h *AuthHandler) Login(c *fiber.Ctx) error {
	var request struct {
		Email    string `json:"email"`
		Password string `json:"password"`
	}

	if err := c.BodyParser(&request); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "Invalid request body"})
	}

	user, err := h.auth.Login(c.Context(), request.Email, request.Password)
	if err != nil {
		if errors.Is(err, services.ErrInvalidCredentials) {
			return c.Status(fiber.StatusUnauthorized).JSON(fiber.Map{"error": "Invalid credentials"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}

	return c.JSON(fiber.Map{
		"id":    user.ID.Hex(),
		"name":  user.Name,
		"email": user.Email,
		"plan":  user.Plan,
	})
}
