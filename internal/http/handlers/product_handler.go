package handlers

import (
	"strings"

	"github.com/gofiber/fiber/v2"

	applog "pedidos/internal/log"
	"pedidos/internal/services"
	"pedidos/internal/validate"
)

type ProductHandler struct {
	Catalog *services.CatalogService
}

type productRequest struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	UnitsPerPack *int     `json:"unitsPerPack"`
}

type importRequest struct {
	Products []services.ImportRow `json:"products"`
}

// GET /products
func (h *ProductHandler) List(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("search"))
	if !ok {
		return badRequest(c, "enter a valid search keyword")
	}
	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"))

	products, total, hasMore, err := h.Catalog.List(q, page, limit)
	if err != nil {
		return fail(c, "products.list", err)
	}
	return c.JSON(fiber.Map{"products": products, "total": total, "hasMore": hasMore})
}

// GET /products/:id
func (h *ProductHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	p, err := h.Catalog.Get(id)
	if err != nil {
		return fail(c, "products.get", err)
	}
	return c.JSON(p)
}

// POST /products
func (h *ProductHandler) Create(c *fiber.Ctx) error {
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Price == nil {
		return badRequest(c, "price is required")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name must be 1-100 characters")
	}
	p, err := h.Catalog.Create(name, *req.Price, req.UnitsPerPack)
	if err != nil {
		return fail(c, "products.create", err)
	}
	applog.Audit(c, "products.create", map[string]any{"product_id": p.ID})
	return c.Status(fiber.StatusCreated).JSON(p)
}

// PUT /products/:id
func (h *ProductHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	var req productRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if req.Price == nil {
		return badRequest(c, "price is required")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name must be 1-100 characters")
	}
	p, err := h.Catalog.Update(id, name, *req.Price, req.UnitsPerPack)
	if err != nil {
		return fail(c, "products.update", err)
	}
	applog.Audit(c, "products.update", map[string]any{"product_id": p.ID})
	return c.JSON(p)
}

// DELETE /products/:id
func (h *ProductHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid product id")
	}
	if err := h.Catalog.Delete(id); err != nil {
		return fail(c, "products.delete", err)
	}
	applog.Audit(c, "products.delete", map[string]any{"product_id": id})
	return c.JSON(fiber.Map{"message": "product deleted"})
}

// POST /products/import
func (h *ProductHandler) Import(c *fiber.Ctx) error {
	var req importRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if len(req.Products) == 0 {
		return badRequest(c, "send a non-empty list of products")
	}
	inserted, rowErrs, err := h.Catalog.Import(req.Products)
	if err != nil {
		return fail(c, "products.import", err)
	}
	if len(rowErrs) > 0 {
		applog.Warn(c, "products.import.partial", map[string]any{"inserted": inserted, "errors": len(rowErrs)})
		return c.Status(fiber.StatusBadRequest).JSON(fiber.Map{
			"error":    "import finished with errors: " + strings.Join(rowErrs, "; "),
			"inserted": inserted,
		})
	}
	applog.Audit(c, "products.import", map[string]any{"inserted": inserted})
	return c.JSON(fiber.Map{"message": "products imported", "inserted": inserted})
}
