package handlers

import (
	"errors"

	"veneya/internal/services"
	"veneya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type CheckoutHandler struct {
	Sales *services.SaleService
}

type checkoutReq struct {
	Lines     []services.CheckoutLine `json:"lines"`
	Latitude  float64                 `json:"latitude"`
	Longitude float64                 `json:"longitude"`
}

// Place records one checkout: the zone is resolved once from the supplied
// position and reused for every line. Lines commit independently, so a
// mid-checkout failure reports the lines that did get written.
func (h *CheckoutHandler) Place(c *fiber.Ctx) error {
	var req checkoutReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	if !validate.Coordinate(req.Latitude, req.Longitude) {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid coordinates"})
	}

	res, err := h.Sales.Checkout(c.Context(), currentAccount(c).ID, req.Lines, req.Latitude, req.Longitude)
	if err != nil {
		switch {
		case errors.Is(err, services.ErrEmptyCheckout):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "no products with a positive count"})
		case errors.Is(err, services.ErrInvalidQuantity):
			return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "quantities must be at least 1"})
		default:
			body := fiber.Map{"error": "checkout failed part-way, recorded lines were kept; please retry the rest"}
			if res != nil {
				body["checkout_id"] = res.CheckoutID
				body["sale_ids"] = res.SaleIDs
			}
			return c.Status(fiber.StatusInternalServerError).JSON(body)
		}
	}
	return c.Status(fiber.StatusCreated).JSON(res)
}
