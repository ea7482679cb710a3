package handlers

import (
	"context"

	"github.com/gofiber/fiber/v2"
)

// StatusStore is the introspection surface the diagnostic endpoint needs.
type StatusStore interface {
	Available() bool
	Name() string
	CollectionNames(ctx context.Context) ([]string, error)
}

type SystemHandler struct {
	store       StatusStore
	databaseURL string
}

func NewSystemHandler(store StatusStore, databaseURL string) *SystemHandler {
	return &SystemHandler{store: store, databaseURL: databaseURL}
}

// Root is the liveness probe.
func (h *SystemHandler) Root(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"message": "SaaS Landing API running"})
}

// Test reports backend and database health. It never fails the request:
// storage errors end up as truncated strings in the payload.
func (h *SystemHandler) Test(c *fiber.Ctx) error {
	response := fiber.Map{
		"backend":           "✅ Running",
		"database":          "❌ Not Available",
		"database_url":      "❌ Not Set",
		"database_name":     "❌ Not Set",
		"connection_status": "Not Connected",
		"collections":       []string{},
	}

	if h.databaseURL != "" {
		response["database_url"] = "✅ Set"
	}

	if h.store != nil && h.store.Available() {
		response["database"] = "✅ Available"
		response["database_name"] = h.store.Name()
		response["connection_status"] = "Connected"

		if names, err := h.store.CollectionNames(c.Context()); err != nil {
			response["database"] = "⚠️ Connected but Error: " + truncateError(err)
		} else {
			response["collections"] = names
			response["database"] = "✅ Connected & Working"
		}
	}

	return c.JSON(response)
}

// truncateError keeps diagnostic error strings to at most 80 characters.
func truncateError(err error) string {
	msg := err.Error()
	if len(msg) > 80 {
		msg = msg[:80]
	}
	return msg
}
