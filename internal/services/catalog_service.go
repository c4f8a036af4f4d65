package services

import (
	"database/sql"
	"errors"
	"fmt"
	"strings"

	"pedidos/internal/domain"
	"pedidos/internal/repos"

	"github.com/google/uuid"
)

type CatalogService struct {
	Products *repos.ProductRepo
}

func NewCatalogService(products *repos.ProductRepo) *CatalogService {
	return &CatalogService{Products: products}
}

// List returns a page of products plus the filtered total and whether more
// pages exist.
func (s *CatalogService) List(search string, page, pageSize int) ([]domain.Product, int, bool, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	search = strings.ToLower(strings.TrimSpace(search))

	products, err := s.Products.List(search, pageSize, offset)
	if err != nil {
		return nil, 0, false, err
	}
	total, err := s.Products.Count(search)
	if err != nil {
		return nil, 0, false, err
	}
	return products, total, offset+pageSize < total, nil
}

func (s *CatalogService) Get(id string) (domain.Product, error) {
	p, err := s.Products.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Product{}, fmt.Errorf("product %s: %w", id, domain.ErrNotFound)
	}
	return p, err
}

func (s *CatalogService) Create(name string, price float64, unitsPerPack *int) (domain.Product, error) {
	p := domain.Product{ID: uuid.NewString(), Name: strings.TrimSpace(name), Price: price, UnitsPerPack: unitsPerPack}
	if err := s.validate(p); err != nil {
		return domain.Product{}, err
	}
	if err := s.Products.Create(p); err != nil {
		return domain.Product{}, err
	}
	return s.Products.Get(p.ID)
}

func (s *CatalogService) Update(id, name string, price float64, unitsPerPack *int) (domain.Product, error) {
	if _, err := s.Get(id); err != nil {
		return domain.Product{}, err
	}
	p := domain.Product{ID: id, Name: strings.TrimSpace(name), Price: price, UnitsPerPack: unitsPerPack}
	if err := s.validate(p); err != nil {
		return domain.Product{}, err
	}
	if err := s.Products.Update(p); err != nil {
		return domain.Product{}, err
	}
	return s.Products.Get(id)
}

func (s *CatalogService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Products.Delete(id)
}

// ImportRow is one product row from a bulk upload.
type ImportRow struct {
	Name         string   `json:"name"`
	Price        *float64 `json:"price"`
	UnitsPerPack *int     `json:"unitsPerPack"`
}

// Import inserts rows one by one, collecting per-row errors instead of
// stopping. Row numbers start at 2: uploads come from spreadsheets whose
// first row is the header. Rows before a failing one stay inserted.
func (s *CatalogService) Import(rows []ImportRow) (int, []string, error) {
	inserted := 0
	var rowErrs []string
	for i, row := range rows {
		rowNum := i + 2
		name := strings.TrimSpace(row.Name)
		if name == "" {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: name is required", rowNum))
			continue
		}
		if row.Price == nil || *row.Price <= 0 {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: price must be greater than zero", rowNum))
			continue
		}
		taken, err := s.Products.NameTaken(name, "")
		if err != nil {
			return inserted, rowErrs, err
		}
		if taken {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: a product named %q already exists", rowNum, name))
			continue
		}
		p := domain.Product{ID: uuid.NewString(), Name: name, Price: *row.Price, UnitsPerPack: row.UnitsPerPack}
		if err := s.Products.Create(p); err != nil {
			rowErrs = append(rowErrs, fmt.Sprintf("row %d: insert failed: %v", rowNum, err))
			continue
		}
		inserted++
	}
	return inserted, rowErrs, nil
}

func (s *CatalogService) validate(p domain.Product) error {
	if p.Name == "" {
		return domain.Validationf("name is required")
	}
	if p.Price <= 0 {
		return domain.Validationf("price must be greater than zero")
	}
	if p.UnitsPerPack != nil && *p.UnitsPerPack <= 0 {
		return domain.Validationf("units per pack must be a positive integer")
	}
	taken, err := s.Products.NameTaken(p.Name, p.ID)
	if err != nil {
		return err
	}
	if taken {
		return domain.Validationf("a product named %q already exists", p.Name)
	}
	return nil
}
