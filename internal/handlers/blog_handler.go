package handlers

import (
	"errors"

	"github.com/gofiber/fiber/v2"
	"github.com/pastelhq/landing-api/internal/services"
)

type BlogHandler struct {
	blog *services.BlogService
}

func NewBlogHandler(blog *services.BlogService) *BlogHandler {
	return &BlogHandler{blog: blog}
}

// List returns the blog index without post bodies. An empty collection is
// seeded with sample posts first.
func (h *BlogHandler) List(c *fiber.Ctx) error {
	limit := c.QueryInt("limit", services.DefaultBlogLimit)

	posts, err := h.blog.List(c.Context(), int64(limit))
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(fiber.Map{"posts": posts})
}

// GetBySlug returns one full post, including the content body.
func (h *BlogHandler) GetBySlug(c *fiber.Ctx) error {
	post, err := h.blog.GetBySlug(c.Context(), c.Params("slug"))
	if err != nil {
		if errors.Is(err, services.ErrPostNotFound) {
			return c.Status(fiber.StatusNotFound).JSON(fiber.Map{"error": "Post not found"})
		}
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": err.Error()})
	}
	return c.JSON(post)
}
