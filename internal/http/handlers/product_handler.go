package handlers

import (
	"veneya/internal/repos"
	"veneya/internal/validate"

	"github.com/gofiber/fiber/v2"
)

type ProductHandler struct {
	Products *repos.ProductRepo
}

type createProductReq struct {
	Name         string `json:"name"`
	UnitEarnings string `json:"unit_earnings"`
}

func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req createProductReq
	if err := c.BodyParser(&req); err != nil {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid body"})
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid product name"})
	}
	earnings, ok := validate.Earnings(req.UnitEarnings)
	if !ok {
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{"error": "invalid unit earnings"})
	}

	id, err := h.Products.Create(name, earnings, currentAccount(c).ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not create product, please retry"})
	}
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"product_id": id})
}

func (h *ProductHandler) List(c *fiber.Ctx) error {
	products, err := h.Products.ListByOwner(currentAccount(c).ID)
	if err != nil {
		return c.Status(fiber.StatusInternalServerError).JSON(fiber.Map{"error": "could not list products"})
	}
	out := make([]fiber.Map, 0, len(products))
	for _, p := range products {
		out = append(out, fiber.Map{"id": p.ID, "name": p.Name, "unit_earnings": p.UnitEarnings})
	}
	return c.JSON(fiber.Map{"products": out})
}
