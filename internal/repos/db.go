package repos

import (
	"log"

	"github.com/jmoiron/sqlx"
	_ "modernc.org/sqlite"
)

func OpenDB(dsn string) (*sqlx.DB, error) {
	db, err := sqlx.Open("sqlite", dsn)
	if err != nil {
		return nil, err
	}
	if err = db.Ping(); err != nil {
		return nil, err
	}

	if err := ensureSchema(db); err != nil {
		return nil, err
	}
	// Seed baseline catalog/customer data if DB is empty
	if err := seedIfEmpty(db); err != nil {
		return nil, err
	}

	return db, nil
}

func ensureSchema(db *sqlx.DB) error {
	// created_at uses strftime so order timestamps carry fractional seconds
	// and a Z suffix, which the notification formatter expects.
	schema := `
PRAGMA foreign_keys = ON;

-- Products
CREATE TABLE IF NOT EXISTS products(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  price NUMERIC NOT NULL CHECK (price > 0),
  units_per_pack INTEGER CHECK (units_per_pack IS NULL OR units_per_pack > 0),
  created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
  updated_at TEXT
);
CREATE UNIQUE INDEX IF NOT EXISTS idx_products_name_nocase ON products(LOWER(name));

-- Customers
CREATE TABLE IF NOT EXISTS customers(
  id TEXT PRIMARY KEY,
  name TEXT NOT NULL,
  phone TEXT,
  address TEXT,
  created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now')),
  updated_at TEXT
);
CREATE INDEX IF NOT EXISTS idx_customers_phone ON customers(phone);

-- Orders. customer_id is a weak reference on purpose: deleting a customer
-- leaves their orders in place.
CREATE TABLE IF NOT EXISTS orders(
  id TEXT PRIMARY KEY,
  customer_id TEXT NOT NULL,
  status TEXT NOT NULL DEFAULT 'pending' CHECK (status IN ('pending','in-process')),
  created_at TEXT DEFAULT (strftime('%Y-%m-%dT%H:%M:%fZ','now'))
);
CREATE INDEX IF NOT EXISTS idx_orders_customer   ON orders(customer_id);
CREATE INDEX IF NOT EXISTS idx_orders_created_at ON orders(created_at);

CREATE TABLE IF NOT EXISTS order_items(
  order_id   TEXT NOT NULL REFERENCES orders(id) ON DELETE CASCADE,
  product_id TEXT NOT NULL REFERENCES products(id),
  sale_mode  TEXT NOT NULL CHECK (sale_mode IN ('unit','pack')),
  qty        INTEGER NOT NULL CHECK (qty >= 1),
  unit_price NUMERIC NOT NULL,
  PRIMARY KEY (order_id, product_id)
);
`
	_, err := db.Exec(schema)
	return err
}

func seedIfEmpty(db *sqlx.DB) error {
	var n int
	if err := db.Get(&n, `SELECT COUNT(*) FROM products`); err != nil {
		return err
	}
	if n > 0 {
		return nil
	}

	log.Println("[seed] inserting demo products/customers")

	tx := db.MustBegin()
	tx.MustExec(`INSERT INTO products(id,name,price,units_per_pack) VALUES
	  ('prod-arroz','Arroz Diana 500g',2500,24),
	  ('prod-aceite','Aceite Premier 1L',12000,12),
	  ('prod-panela','Panela Real',3200,NULL)`)

	tx.MustExec(`INSERT INTO customers(id,name,phone,address) VALUES
	  ('cust-tienda-la-15','Tienda La 15','3101234567','Cra 15 #23-41'),
	  ('cust-granero-jm','Granero JM','3209876543','Cll 8 #4-12')`)

	return tx.Commit()
}
