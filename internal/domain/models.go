package domain

// Sale modes for an order line item.
const (
	SaleModeUnit = "unit"
	SaleModePack = "pack"
)

// Order statuses. No terminal status exists yet; orders stay in-process
// until deleted.
const (
	StatusPending   = "pending"
	StatusInProcess = "in-process"
)

type Product struct {
	ID           string  `db:"id" json:"id"`
	Name         string  `db:"name" json:"name"`
	Price        float64 `db:"price" json:"price"` // COP per single unit
	UnitsPerPack *int    `db:"units_per_pack" json:"unitsPerPack"`
	CreatedAt    string  `db:"created_at" json:"createdAt"`
	UpdatedAt    string  `db:"updated_at" json:"updatedAt"`
}

type Customer struct {
	ID        string `db:"id" json:"id"`
	Name      string `db:"name" json:"name"`
	Phone     string `db:"phone" json:"phone"`
	Address   string `db:"address" json:"address"`
	CreatedAt string `db:"created_at" json:"createdAt"`
	UpdatedAt string `db:"updated_at" json:"updatedAt"`
}

type Order struct {
	ID         string `db:"id" json:"id"`
	CustomerID string `db:"customer_id" json:"customerId"`
	Status     string `db:"status" json:"status"`
	CreatedAt  string `db:"created_at" json:"createdAt"`
}

// OrderItem is one priced line of an order. UnitPrice is resolved at order
// time and kept even if the catalog price changes later. Items carry no
// identity across edits: an edit discards and recreates them.
type OrderItem struct {
	OrderID   string  `db:"order_id" json:"orderId"`
	ProductID string  `db:"product_id" json:"productId"`
	SaleMode  string  `db:"sale_mode" json:"saleMode"`
	Qty       int     `db:"qty" json:"qty"`
	UnitPrice float64 `db:"unit_price" json:"unitPrice"`
}

func ValidSaleMode(m string) bool { return m == SaleModeUnit || m == SaleModePack }

func ValidStatus(s string) bool { return s == StatusPending || s == StatusInProcess }
