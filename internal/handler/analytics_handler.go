package handler

import (
	"go-warehouse-tracker/internal/service"

	"github.com/gofiber/fiber/v2"
)

type AnalyticsHandler struct {
	service service.AnalyticsService
}

func NewAnalyticsHandler(s service.AnalyticsService) *AnalyticsHandler {
	return &AnalyticsHandler{service: s}
}

// Analytics returns the date-ranged sales analytics context. Unparsable dates
// silently fall back to the default 30-day window.
// GET /analytics/?date_from=yyyy-mm-dd&date_to=yyyy-mm-dd
func (h *AnalyticsHandler) Analytics(c *fiber.Ctx) error {
	analytics, err := h.service.SalesAnalytics(c.Query("date_from"), c.Query("date_to"))
	if err != nil {
		return c.Status(500).JSON(fiber.Map{"error": "Internal Server Error"})
	}
	return c.JSON(fiber.Map{"analytics": analytics})
}
