package handlers

import (
	"github.com/gofiber/fiber/v2"

	applog "pedidos/internal/log"
	"pedidos/internal/services"
	"pedidos/internal/validate"
)

type CustomerHandler struct {
	Customers *services.CustomerService
}

type customerRequest struct {
	Name    string `json:"name"`
	Phone   string `json:"phone"`
	Address string `json:"address"`
}

// GET /customers
func (h *CustomerHandler) List(c *fiber.Ctx) error {
	q, ok := validate.Q(c.Query("search"))
	if !ok {
		return badRequest(c, "enter a valid search keyword")
	}
	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"))

	customers, total, hasMore, err := h.Customers.List(q, page, limit)
	if err != nil {
		return fail(c, "customers.list", err)
	}
	return c.JSON(fiber.Map{"customers": customers, "total": total, "hasMore": hasMore})
}

// GET /customers/:id
func (h *CustomerHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	cu, err := h.Customers.Get(id)
	if err != nil {
		return fail(c, "customers.get", err)
	}
	return c.JSON(cu)
}

// POST /customers
func (h *CustomerHandler) Create(c *fiber.Ctx) error {
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name must be 1-100 characters")
	}
	cu, err := h.Customers.Create(name, req.Phone, req.Address)
	if err != nil {
		return fail(c, "customers.create", err)
	}
	applog.Audit(c, "customers.create", map[string]any{"customer_id": cu.ID})
	return c.Status(fiber.StatusCreated).JSON(cu)
}

// PUT /customers/:id
func (h *CustomerHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	var req customerRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	name, ok := validate.Name(req.Name)
	if !ok {
		return badRequest(c, "name must be 1-100 characters")
	}
	cu, err := h.Customers.Update(id, name, req.Phone, req.Address)
	if err != nil {
		return fail(c, "customers.update", err)
	}
	applog.Audit(c, "customers.update", map[string]any{"customer_id": cu.ID})
	return c.JSON(cu)
}

// DELETE /customers/:id
func (h *CustomerHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid customer id")
	}
	if err := h.Customers.Delete(id); err != nil {
		return fail(c, "customers.delete", err)
	}
	applog.Audit(c, "customers.delete", map[string]any{"customer_id": id})
	return c.JSON(fiber.Map{"message": "customer deleted"})
}
