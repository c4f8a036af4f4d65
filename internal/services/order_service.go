package services

import (
	"database/sql"
	"errors"
	"fmt"

	"pedidos/internal/domain"
	"pedidos/internal/repos"

	"github.com/google/uuid"
)

// AssembledOrder is a fully priced order ready for the caller and for
// notification formatting.
type AssembledOrder struct {
	ID        string          `json:"id"`
	Status    string          `json:"status"`
	CreatedAt string          `json:"createdAt"`
	Customer  domain.Customer `json:"customer"`
	Lines     []PricedLine    `json:"lines"`
	Total     float64         `json:"total"`
}

type OrderService struct {
	Customers *repos.CustomerRepo
	Orders    *repos.OrderRepo
	Pricing   *PricingService
}

func NewOrderService(customers *repos.CustomerRepo, orders *repos.OrderRepo, pricing *PricingService) *OrderService {
	return &OrderService{Customers: customers, Orders: orders, Pricing: pricing}
}

// Create assembles and persists a new order. The header is inserted first and
// all lines are resolved before any line is persisted; the first invalid line
// aborts the whole operation. Header creation and line insertion are separate
// store calls, so a failure in between leaves a header with no lines behind.
func (s *OrderService) Create(customerID string, reqs []LineRequest) (AssembledOrder, error) {
	if len(reqs) == 0 {
		return AssembledOrder{}, domain.Validationf("order needs at least one line item")
	}

	cu, err := s.Customers.Get(customerID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssembledOrder{}, fmt.Errorf("customer %s: %w", customerID, domain.ErrNotFound)
		}
		return AssembledOrder{}, err
	}

	header, err := s.Orders.Create(uuid.NewString(), cu.ID)
	if err != nil {
		return AssembledOrder{}, &domain.PersistenceError{Op: "create order header", Err: err}
	}

	lines, items, total, err := s.resolveAll(header.ID, reqs)
	if err != nil {
		return AssembledOrder{}, err
	}
	if err := s.Orders.InsertItems(items); err != nil {
		return AssembledOrder{}, &domain.PersistenceError{Op: "insert order items", Err: err}
	}

	return AssembledOrder{
		ID:        header.ID,
		Status:    header.Status,
		CreatedAt: header.CreatedAt,
		Customer:  cu,
		Lines:     lines,
		Total:     total,
	}, nil
}

// Update replaces an order's lines wholesale (delete-all, insert-new) and
// applies the status, returning the updated order plus the change set between
// the prior and new state.
func (s *OrderService) Update(orderID, status string, reqs []LineRequest) (AssembledOrder, ChangeSet, error) {
	if !domain.ValidStatus(status) {
		return AssembledOrder{}, ChangeSet{}, domain.Validationf("invalid status %q", status)
	}
	if len(reqs) == 0 {
		return AssembledOrder{}, ChangeSet{}, domain.Validationf("order needs at least one line item")
	}

	header, err := s.Orders.GetHeader(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssembledOrder{}, ChangeSet{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return AssembledOrder{}, ChangeSet{}, err
	}
	prevRows, err := s.Orders.Items(orderID)
	if err != nil {
		return AssembledOrder{}, ChangeSet{}, err
	}
	before := OrderState{Status: header.Status, Lines: snapshots(prevRows)}

	// Resolve every replacement line before touching the store.
	lines, items, total, err := s.resolveAll(orderID, reqs)
	if err != nil {
		return AssembledOrder{}, ChangeSet{}, err
	}

	if err := s.Orders.DeleteItems(orderID); err != nil {
		return AssembledOrder{}, ChangeSet{}, &domain.PersistenceError{Op: "delete order items", Err: err}
	}
	if err := s.Orders.InsertItems(items); err != nil {
		return AssembledOrder{}, ChangeSet{}, &domain.PersistenceError{Op: "insert order items", Err: err}
	}
	if status != header.Status {
		if err := s.Orders.UpdateStatus(orderID, status); err != nil {
			return AssembledOrder{}, ChangeSet{}, &domain.PersistenceError{Op: "update order status", Err: err}
		}
	}

	after := OrderState{Status: status, Lines: lineSnapshots(lines)}

	cu, err := s.Customers.Get(header.CustomerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AssembledOrder{}, ChangeSet{}, err
	}

	return AssembledOrder{
		ID:        header.ID,
		Status:    status,
		CreatedAt: header.CreatedAt,
		Customer:  cu,
		Lines:     lines,
		Total:     total,
	}, Diff(before, after), nil
}

// Get loads an order with its priced lines and customer display info.
func (s *OrderService) Get(orderID string) (AssembledOrder, error) {
	header, err := s.Orders.GetHeader(orderID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return AssembledOrder{}, fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return AssembledOrder{}, err
	}
	rows, err := s.Orders.Items(orderID)
	if err != nil {
		return AssembledOrder{}, err
	}
	// Customer may have been deleted since; orders keep a weak reference.
	cu, err := s.Customers.Get(header.CustomerID)
	if err != nil && !errors.Is(err, sql.ErrNoRows) {
		return AssembledOrder{}, err
	}

	lines := make([]PricedLine, 0, len(rows))
	total := 0.0
	for _, it := range rows {
		lines = append(lines, PricedLine{
			ProductID:    it.ProductID,
			Name:         it.Name,
			SaleMode:     it.SaleMode,
			Qty:          it.Qty,
			UnitPrice:    it.UnitPrice,
			UnitsPerPack: it.UnitsPerPack,
		})
		total += it.Subtotal
	}

	return AssembledOrder{
		ID:        header.ID,
		Status:    header.Status,
		CreatedAt: header.CreatedAt,
		Customer:  cu,
		Lines:     lines,
		Total:     total,
	}, nil
}

func (s *OrderService) Delete(orderID string) error {
	if _, err := s.Orders.GetHeader(orderID); err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return fmt.Errorf("order %s: %w", orderID, domain.ErrNotFound)
		}
		return err
	}
	return s.Orders.Delete(orderID)
}

// HistoryByPhone resolves a customer from their phone number and returns
// their orders, newest first.
func (s *OrderService) HistoryByPhone(phone string) (domain.Customer, []domain.Order, error) {
	cu, err := s.Customers.GetByPhone(phone)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return domain.Customer{}, nil, fmt.Errorf("customer with phone %s: %w", phone, domain.ErrNotFound)
		}
		return domain.Customer{}, nil, err
	}
	orders, err := s.Orders.ListByCustomer(cu.ID)
	if err != nil {
		return domain.Customer{}, nil, err
	}
	return cu, orders, nil
}

// resolveAll prices every requested line, aborting on the first failure. An
// order holds at most one line per product, so a repeated product id is
// rejected here instead of surfacing as a store constraint violation.
func (s *OrderService) resolveAll(orderID string, reqs []LineRequest) ([]PricedLine, []domain.OrderItem, float64, error) {
	lines := make([]PricedLine, 0, len(reqs))
	items := make([]domain.OrderItem, 0, len(reqs))
	total := 0.0
	seen := make(map[string]bool, len(reqs))
	for _, req := range reqs {
		if seen[req.ProductID] {
			return nil, nil, 0, domain.Validationf("product %s appears in more than one line", req.ProductID)
		}
		seen[req.ProductID] = true
		line, err := s.Pricing.Resolve(req)
		if err != nil {
			return nil, nil, 0, err
		}
		lines = append(lines, line)
		items = append(items, domain.OrderItem{
			OrderID:   orderID,
			ProductID: line.ProductID,
			SaleMode:  line.SaleMode,
			Qty:       line.Qty,
			UnitPrice: line.UnitPrice,
		})
		total += line.Subtotal()
	}
	return lines, items, total, nil
}

func snapshots(rows []repos.OrderItemRow) []LineSnapshot {
	out := make([]LineSnapshot, 0, len(rows))
	for _, it := range rows {
		out = append(out, LineSnapshot{
			ProductID:    it.ProductID,
			Name:         it.Name,
			SaleMode:     it.SaleMode,
			Qty:          it.Qty,
			UnitsPerPack: it.UnitsPerPack,
		})
	}
	return out
}

func lineSnapshots(lines []PricedLine) []LineSnapshot {
	out := make([]LineSnapshot, 0, len(lines))
	for _, l := range lines {
		out = append(out, LineSnapshot{
			ProductID:    l.ProductID,
			Name:         l.Name,
			SaleMode:     l.SaleMode,
			Qty:          l.Qty,
			UnitsPerPack: l.UnitsPerPack,
		})
	}
	return out
}
