package handlers

import (
	"time"

	"github.com/gofiber/fiber/v2"

	"pedidos/internal/domain"
	applog "pedidos/internal/log"
	"pedidos/internal/notify"
	"pedidos/internal/repos"
	"pedidos/internal/services"
	"pedidos/internal/validate"
)

type OrderHandler struct {
	Orders *services.OrderService
	Repo   *repos.OrderRepo
	Sender *notify.Sender
}

type createOrderRequest struct {
	CustomerID string                 `json:"customerId"`
	Items      []services.LineRequest `json:"items"`
}

type updateOrderRequest struct {
	Status string                 `json:"status"`
	Items  []services.LineRequest `json:"items"`
}

// GET /orders
func (h *OrderHandler) List(c *fiber.Ctx) error {
	status := c.Query("status")
	if status != "" && !domain.ValidStatus(status) {
		return badRequest(c, "invalid status filter")
	}
	page := validate.Page(c.Query("page"))
	limit := validate.Limit(c.Query("limit"))
	offset := (page - 1) * limit

	orders, err := h.Repo.List(status, limit, offset)
	if err != nil {
		return fail(c, "orders.list", err)
	}
	total, err := h.Repo.Count(status)
	if err != nil {
		return fail(c, "orders.list", err)
	}
	return c.JSON(fiber.Map{"orders": orders, "total": total, "hasMore": offset+limit < total})
}

// GET /orders/:id
func (h *OrderHandler) Get(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	o, err := h.Orders.Get(id)
	if err != nil {
		return fail(c, "orders.get", err)
	}
	return c.JSON(o)
}

// POST /orders
func (h *OrderHandler) Create(c *fiber.Ctx) error {
	var req createOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}
	if _, ok := validate.ID(req.CustomerID); !ok {
		return badRequest(c, "invalid customer id")
	}

	o, err := h.Orders.Create(req.CustomerID, req.Items)
	if err != nil {
		return fail(c, "orders.create", err)
	}

	notified := h.notify(c, "orders.create", notify.FormatCreated(o))
	applog.Audit(c, "orders.create", map[string]any{"order_id": o.ID, "total": o.Total, "notified": notified})
	return c.Status(fiber.StatusCreated).JSON(fiber.Map{"order": o, "notified": notified})
}

// PUT /orders/:id
func (h *OrderHandler) Update(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	var req updateOrderRequest
	if err := c.BodyParser(&req); err != nil {
		return badRequest(c, "invalid request body")
	}

	o, cs, err := h.Orders.Update(id, req.Status, req.Items)
	if err != nil {
		return fail(c, "orders.update", err)
	}

	// An empty change set means nothing differed: no notification.
	notified := false
	if !cs.Empty() {
		editedAt := time.Now().UTC().Format("2006-01-02T15:04:05.000Z")
		notified = h.notify(c, "orders.update", notify.FormatEdited(o.ID, o.Customer, cs, editedAt))
	}
	applog.Audit(c, "orders.update", map[string]any{"order_id": o.ID, "changed": !cs.Empty(), "notified": notified})
	return c.JSON(fiber.Map{"order": o, "notified": notified})
}

// DELETE /orders/:id
func (h *OrderHandler) Delete(c *fiber.Ctx) error {
	id, ok := validate.ID(c.Params("id"))
	if !ok {
		return badRequest(c, "invalid order id")
	}
	if err := h.Orders.Delete(id); err != nil {
		return fail(c, "orders.delete", err)
	}
	applog.Audit(c, "orders.delete", map[string]any{"order_id": id})
	return c.JSON(fiber.Map{"message": "order deleted"})
}

// GET /orders/history?phone=...
func (h *OrderHandler) History(c *fiber.Ctx) error {
	phone, ok := validate.Phone(c.Query("phone"))
	if !ok {
		return badRequest(c, "enter a valid phone number")
	}
	cu, orders, err := h.Orders.HistoryByPhone(phone)
	if err != nil {
		return fail(c, "orders.history", err)
	}
	return c.JSON(fiber.Map{"customer": cu, "orders": orders})
}

// notify sends best effort and discards the error into the boolean the
// response surfaces. A failed send is logged, never escalated.
func (h *OrderHandler) notify(c *fiber.Ctx, action, text string) bool {
	sent, err := h.Sender.Send(text)
	if err != nil {
		applog.Error(c, action+".notify", err, nil)
	} else if !sent {
		applog.Info(c, action+".notify", map[string]any{"skipped": "webhook not configured"})
	}
	return sent
}
