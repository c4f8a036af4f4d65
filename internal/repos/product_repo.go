package repos

import (
	"pedidos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type ProductRepo struct{ db *sqlx.DB }

func NewProductRepo(db *sqlx.DB) *ProductRepo { return &ProductRepo{db: db} }

// List returns a page of products, optionally filtered by a case-insensitive
// name substring.
func (r *ProductRepo) List(search string, limit, offset int) ([]domain.Product, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where = `LOWER(name) LIKE ?`
		args = append(args, "%"+search+"%")
	}
	sql := `
	  SELECT id, name, price, units_per_pack, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE ` + where + `
	  ORDER BY LOWER(name)
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Product{}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *ProductRepo) Count(search string) (int, error) {
	var n int
	if search == "" {
		err := r.db.Get(&n, `SELECT COUNT(*) FROM products`)
		return n, err
	}
	err := r.db.Get(&n, `SELECT COUNT(*) FROM products WHERE LOWER(name) LIKE ?`, "%"+search+"%")
	return n, err
}

func (r *ProductRepo) Get(id string) (domain.Product, error) {
	var p domain.Product
	err := r.db.Get(&p, `
	  SELECT id, name, price, units_per_pack, created_at, COALESCE(updated_at,'') AS updated_at
	  FROM products
	  WHERE id = ?
	`, id)
	return p, err
}

// NameTaken reports whether another product already uses this name,
// case-insensitively. excludeID skips the product being edited.
func (r *ProductRepo) NameTaken(name, excludeID string) (bool, error) {
	var n int
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM products
	  WHERE LOWER(name) = LOWER(?) AND id <> ?
	`, name, excludeID)
	return n > 0, err
}

func (r *ProductRepo) Create(p domain.Product) error {
	_, err := r.db.Exec(`
	  INSERT INTO products(id, name, price, units_per_pack)
	  VALUES(?, ?, ?, ?)
	`, p.ID, p.Name, p.Price, p.UnitsPerPack)
	return err
}

func (r *ProductRepo) Update(p domain.Product) error {
	_, err := r.db.Exec(`
	  UPDATE products
	  SET name = ?, price = ?, units_per_pack = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	  WHERE id = ?
	`, p.Name, p.Price, p.UnitsPerPack, p.ID)
	return err
}

func (r *ProductRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM products WHERE id = ?`, id)
	return err
}
