package handlers

import (
	"github.com/gofiber/fiber/v2"
	"github.com/pastelhq/landing-api/internal/models"
)

// pricingPlans is the public catalog served by /api/pricing.
var pricingPlans = []models.Plan{
	{
		Name:     "Free",
		Price:    0,
		Period:   "mo",
		Features: []string{"Basic analytics", "Community support", "1 project"},
		CTA:      "Get started",
	},
	{
		Name:      "Pro",
		Price:     19,
		Period:    "mo",
		Features:  []string{"Unlimited projects", "Email support", "Custom domains"},
		CTA:       "Start Pro",
		Highlight: true,
	},
	{
		Name:     "Business",
		Price:    49,
		Period:   "mo",
		Features: []string{"Team seats", "SLA support", "SSO"},
		CTA:      "Contact sales",
	},
}

// PricingHandler returns the static pricing catalog.
func PricingHandler(c *fiber.Ctx) error {
	return c.JSON(fiber.Map{"plans": pricingPlans})
}
