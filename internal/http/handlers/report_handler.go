package handlers

import (
	"veneya/internal/services"

	"github.com/gofiber/fiber/v2"
)

type ReportHandler struct {
	Reports *services.ReportService
}

// Zones lists the account's zones ranked by earnings, best first.
func (h *ReportHandler) Zones(c *fiber.Ctx) error {
	ranking, err := h.Reports.ZoneRanking(currentAccount(c).ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build report"})
	}
	return c.JSON(fiber.Map{"zones": ranking})
}

// ZoneDetail returns per-product earnings plus the zone total.
func (h *ReportHandler) ZoneDetail(c *fiber.Ctx) error {
	zone := c.Params("zone")
	if zone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing zone"})
	}
	report, err := h.Reports.ZoneReport(currentAccount(c).ID, zone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build report"})
	}
	return c.JSON(report)
}

// ZoneSales returns the ungrouped per-sale rows with coordinates, for the
// map view.
func (h *ReportHandler) ZoneSales(c *fiber.Ctx) error {
	zone := c.Params("zone")
	if zone == "" {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "missing zone"})
	}
	rows, err := h.Reports.SalesBreakdown(currentAccount(c).ID, zone)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not build report"})
	}
	return c.JSON(fiber.Map{"zone": zone, "sales": rows})
}
