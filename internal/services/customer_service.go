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

type CustomerService struct {
	Customers *repos.CustomerRepo
}

func NewCustomerService(customers *repos.CustomerRepo) *CustomerService {
	return &CustomerService{Customers: customers}
}

func (s *CustomerService) List(search string, page, pageSize int) ([]domain.Customer, int, bool, error) {
	if page < 1 {
		page = 1
	}
	if pageSize <= 0 {
		pageSize = 10
	}
	offset := (page - 1) * pageSize
	search = strings.ToLower(strings.TrimSpace(search))

	customers, err := s.Customers.List(search, pageSize, offset)
	if err != nil {
		return nil, 0, false, err
	}
	total, err := s.Customers.Count(search)
	if err != nil {
		return nil, 0, false, err
	}
	return customers, total, offset+pageSize < total, nil
}

func (s *CustomerService) Get(id string) (domain.Customer, error) {
	cu, err := s.Customers.Get(id)
	if errors.Is(err, sql.ErrNoRows) {
		return domain.Customer{}, fmt.Errorf("customer %s: %w", id, domain.ErrNotFound)
	}
	return cu, err
}

func (s *CustomerService) Create(name, phone, address string) (domain.Customer, error) {
	cu := domain.Customer{
		ID:      uuid.NewString(),
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
	if cu.Name == "" {
		return domain.Customer{}, domain.Validationf("name is required")
	}
	if err := s.Customers.Create(cu); err != nil {
		return domain.Customer{}, err
	}
	return s.Customers.Get(cu.ID)
}

func (s *CustomerService) Update(id, name, phone, address string) (domain.Customer, error) {
	if _, err := s.Get(id); err != nil {
		return domain.Customer{}, err
	}
	cu := domain.Customer{
		ID:      id,
		Name:    strings.TrimSpace(name),
		Phone:   strings.TrimSpace(phone),
		Address: strings.TrimSpace(address),
	}
	if cu.Name == "" {
		return domain.Customer{}, domain.Validationf("name is required")
	}
	if err := s.Customers.Update(cu); err != nil {
		return domain.Customer{}, err
	}
	return s.Customers.Get(id)
}

// Delete removes a customer. Their orders keep the dangling customer id;
// orders reference customers weakly.
func (s *CustomerService) Delete(id string) error {
	if _, err := s.Get(id); err != nil {
		return err
	}
	return s.Customers.Delete(id)
}
