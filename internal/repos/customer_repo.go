package repos

import (
	"pedidos/internal/domain"

	"github.com/jmoiron/sqlx"
)

type CustomerRepo struct{ db *sqlx.DB }

func NewCustomerRepo(db *sqlx.DB) *CustomerRepo { return &CustomerRepo{db: db} }

// List returns a page of customers. search matches name, phone or address
// case-insensitively.
func (r *CustomerRepo) List(search string, limit, offset int) ([]domain.Customer, error) {
	where := `1=1`
	args := []any{}
	if search != "" {
		where = `(LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(address) LIKE ?)`
		like := "%" + search + "%"
		args = append(args, like, like, like)
	}
	sql := `
	  SELECT id, name, COALESCE(phone,'') AS phone, COALESCE(address,'') AS address,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM customers
	  WHERE ` + where + `
	  ORDER BY LOWER(name)
	  LIMIT ? OFFSET ?`
	args = append(args, limit, offset)

	out := []domain.Customer{}
	err := r.db.Select(&out, sql, args...)
	return out, err
}

func (r *CustomerRepo) Count(search string) (int, error) {
	var n int
	if search == "" {
		err := r.db.Get(&n, `SELECT COUNT(*) FROM customers`)
		return n, err
	}
	like := "%" + search + "%"
	err := r.db.Get(&n, `
	  SELECT COUNT(*) FROM customers
	  WHERE LOWER(name) LIKE ? OR phone LIKE ? OR LOWER(address) LIKE ?
	`, like, like, like)
	return n, err
}

func (r *CustomerRepo) Get(id string) (domain.Customer, error) {
	var cu domain.Customer
	err := r.db.Get(&cu, `
	  SELECT id, name, COALESCE(phone,'') AS phone, COALESCE(address,'') AS address,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM customers
	  WHERE id = ?
	`, id)
	return cu, err
}

// GetByPhone resolves a customer from an exact phone number. Assumes at most
// one customer per phone; with duplicates the first row wins.
func (r *CustomerRepo) GetByPhone(phone string) (domain.Customer, error) {
	var cu domain.Customer
	err := r.db.Get(&cu, `
	  SELECT id, name, COALESCE(phone,'') AS phone, COALESCE(address,'') AS address,
	         created_at, COALESCE(updated_at,'') AS updated_at
	  FROM customers
	  WHERE phone = ?
	  LIMIT 1
	`, phone)
	return cu, err
}

func (r *CustomerRepo) Create(cu domain.Customer) error {
	_, err := r.db.Exec(`
	  INSERT INTO customers(id, name, phone, address)
	  VALUES(?, ?, ?, ?)
	`, cu.ID, cu.Name, cu.Phone, cu.Address)
	return err
}

func (r *CustomerRepo) Update(cu domain.Customer) error {
	_, err := r.db.Exec(`
	  UPDATE customers
	  SET name = ?, phone = ?, address = ?, updated_at = strftime('%Y-%m-%dT%H:%M:%fZ','now')
	  WHERE id = ?
	`, cu.Name, cu.Phone, cu.Address, cu.ID)
	return err
}

func (r *CustomerRepo) Delete(id string) error {
	_, err := r.db.Exec(`DELETE FROM customers WHERE id = ?`, id)
	return err
}
