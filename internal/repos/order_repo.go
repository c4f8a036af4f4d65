package repos

import (
	"pedidos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type OrderRepo struct{ db *sqlx.DB }

func NewOrderRepo(db *sqlx.DB) *OrderRepo { return &OrderRepo{db: db} }

// OrderItemRow is a line item joined with catalog display data. UnitsPerPack
// reflects the product's current pack size; UnitPrice is the price captured
// when the line was resolved.
type OrderItemRow struct {
	ProductID    string  `db:"product_id"`
	Name         string  `db:"name"`
	SaleMode     string  `db:"sale_mode"`
	Qty          int     `db:"qty"`
	UnitPrice    float64 `db:"unit_price"`
	UnitsPerPack *int    `db:"units_per_pack"`
	Subtotal     float64 `db:"subtotal"`
}

// Create inserts an order header relying on store defaults for status and
// created_at, then reads the row back so callers see the assigned values.
func (r *OrderRepo) Create(orderID, customerID string) (domain.Order, error) {
	if _, err := r.db.Exec(`
	  INSERT INTO orders(id, customer_id) VALUES(?, ?)
	`, orderID, customerID); err != nil {
		return domain.Order{}, err
	}
	return r.GetHeader(orderID)
}

func (r *OrderRepo) GetHeader(orderID string) (domain.Order, error) {
	var o domain.Order
	err := r.db.Get(&o, `
	  SELECT id, customer_id, status, created_at
	  FROM orders
	  WHERE id = ?
	`, orderID)
	return o, err
}

// Items returns an order's lines in the sequence they were inserted; rowid
// order keeps the caller's requested line order across read-backs.
func (r *OrderRepo) Items(orderID string) ([]OrderItemRow, error) {
	items := []OrderItemRow{}
	err := r.db.Select(&items, `
	  SELECT oi.product_id, p.name, oi.sale_mode, oi.qty, oi.unit_price,
	         p.units_per_pack, (oi.qty * oi.unit_price) AS subtotal
	  FROM order_items oi
	  JOIN products p ON p.id = oi.product_id
	  WHERE oi.order_id = ?
	  ORDER BY oi.rowid
	`, orderID)
	return items, err
}

// InsertItems persists all line items in one batch.
func (r *OrderRepo) InsertItems(items []domain.OrderItem) error {
	if len(items) == 0 {
		return nil
	}
	_, err := r.db.NamedExec(`
	  INSERT INTO order_items(order_id, product_id, sale_mode, qty, unit_price)
	  VALUES(:order_id, :product_id, :sale_mode, :qty, :unit_price)
	`, items)
	return err
}

// DeleteItems drops every line of an order; edits replace lines wholesale.
func (r *OrderRepo) DeleteItems(orderID string) error {
	_, err := r.db.Exec(`DELETE FROM order_items WHERE order_id = ?`, orderID)
	return err
}

func (r *OrderRepo) UpdateStatus(orderID, status string) error {
	_, err := r.db.Exec(`UPDATE orders SET status = ? WHERE id = ?`, status, orderID)
	return err
}

func (r *OrderRepo) Delete(orderID string) error {
	if err := r.DeleteItems(orderID); err != nil {
		return err
	}
	_, err := r.db.Exec(`DELETE FROM orders WHERE id = ?`, orderID)
	return err
}

// List returns the newest orders first, optionally filtered by status.
func (r *OrderRepo) List(status string, limit, offset int) ([]domain.Order, error) {
	out := []domain.Order{}
	if status != "" {
		err := r.db.Select(&out, `
		  SELECT id, customer_id, status, created_at
		  FROM orders
		  WHERE status = ?
		  ORDER BY datetime(created_at) DESC
		  LIMIT ? OFFSET ?
		`, status, limit, offset)
		return out, err
	}
	err := r.db.Select(&out, `
	  SELECT id, customer_id, status, created_at
	  FROM orders
	  ORDER BY datetime(created_at) DESC
	  LIMIT ? OFFSET ?
	`, limit, offset)
	return out, err
}

func (r *OrderRepo) Count(status string) (int, error) {
	var n int
	if status != "" {
		err := r.db.Get(&n, `SELECT COUNT(*) FROM orders WHERE status = ?`, status)
		return n, err
	}
	err := r.db.Get(&n, `SELECT COUNT(*) FROM orders`)
	return n, err
}

// ListByCustomer returns a customer's orders, newest first.
func (r *OrderRepo) ListByCustomer(customerID string) ([]domain.Order, error) {
	out := []domain.Order{}
	err := r.db.Select(&out, `
	  SELECT id, customer_id, status, created_at
	  FROM orders
	  WHERE customer_id = ?
	  ORDER BY datetime(created_at) DESC
	`, customerID)
	return out, err
}
