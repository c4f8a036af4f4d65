package services

import (
	"database/sql"
	"errors"
	"fmt"

	"pedidos/internal/domain"
	"pedidos/internal/repos"
)

// LineRequest is a requested order line before pricing.
type LineRequest struct {
	ProductID string `json:"productId"`
	SaleMode  string `json:"saleMode"`
	Qty       int    `json:"qty"`
}

// PricedLine is a resolved line: the effective unit price plus the catalog
// display data downstream formatting needs.
type PricedLine struct {
	ProductID    string  `json:"productId"`
	Name         string  `json:"name"`
	SaleMode     string  `json:"saleMode"`
	Qty          int     `json:"qty"`
	UnitPrice    float64 `json:"unitPrice"`
	UnitsPerPack *int    `json:"unitsPerPack"`
}

func (l PricedLine) Subtotal() float64 { return l.UnitPrice * float64(l.Qty) }

type PricingService struct {
	Products *repos.ProductRepo
}

func NewPricingService(products *repos.ProductRepo) *PricingService {
	return &PricingService{Products: products}
}

// Resolve turns a line request into a priced line. A pack line multiplies the
// catalog unit price by the product's pack size; a product without a positive
// pack size cannot be sold by pack. No side effects.
func (s *PricingService) Resolve(req LineRequest) (PricedLine, error) {
	if req.Qty < 1 {
		return PricedLine{}, domain.Validationf("quantity must be a positive integer")
	}
	if !domain.ValidSaleMode(req.SaleMode) {
		return PricedLine{}, domain.Validationf("invalid sale mode %q (must be %q or %q)",
			req.SaleMode, domain.SaleModeUnit, domain.SaleModePack)
	}

	p, err := s.Products.Get(req.ProductID)
	if err != nil {
		if errors.Is(err, sql.ErrNoRows) {
			return PricedLine{}, fmt.Errorf("product %s: %w", req.ProductID, domain.ErrNotFound)
		}
		return PricedLine{}, err
	}

	unitPrice := p.Price
	if req.SaleMode == domain.SaleModePack {
		if p.UnitsPerPack == nil || *p.UnitsPerPack <= 0 {
			return PricedLine{}, domain.Validationf("product %s is not sold by pack", p.Name)
		}
		unitPrice = p.Price * float64(*p.UnitsPerPack)
	}

	return PricedLine{
		ProductID:    p.ID,
		Name:         p.Name,
		SaleMode:     req.SaleMode,
		Qty:          req.Qty,
		UnitPrice:    unitPrice,
		UnitsPerPack: p.UnitsPerPack,
	}, nil
}
