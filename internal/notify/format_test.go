package notify_test

import (
	"strings"
	"testing"

	"github.com/stretchr/testify/assert"

	"pedidos/internal/domain"
	"pedidos/internal/notify"
	"pedidos/internal/services"
)

func TestFormatTimestamp(t *testing.T) {
	// store layout: fractional seconds, Z suffix
	assert.Equal(t, "05/03/2025 2:07 PM", notify.FormatTimestamp("2025-03-05T14:07:33.123Z"))
	assert.Equal(t, "31/12/2024 11:59 PM", notify.FormatTimestamp("2024-12-31T23:59:59.000001Z"))

	// anything else passes through raw
	assert.Equal(t, "2025-03-05T14:07:33Z", notify.FormatTimestamp("2025-03-05T14:07:33Z"))
	assert.Equal(t, "2025-03-05 14:07", notify.FormatTimestamp("2025-03-05 14:07"))
	assert.Equal(t, "not a date", notify.FormatTimestamp("not a date"))
}

func TestFormatCreated(t *testing.T) {
	pack := 6
	o := services.AssembledOrder{
		ID:        "11111111-2222-3333-4444-555555555555",
		Status:    domain.StatusPending,
		CreatedAt: "2025-03-05T14:07:33.123Z",
		Customer:  domain.Customer{Name: "Tienda La 15", Phone: "3101234567", Address: "Cra 15 #23-41"},
		Lines: []services.PricedLine{
			{ProductID: "p-sugar", Name: "Sugar 1kg", SaleMode: "unit", Qty: 3, UnitPrice: 500},
			{ProductID: "p-soda", Name: "Soda 350ml", SaleMode: "pack", Qty: 1, UnitPrice: 6000, UnitsPerPack: &pack},
		},
		Total: 7500,
	}

	msg := notify.FormatCreated(o)
	assert.Contains(t, msg, "New order #11111111")
	assert.Contains(t, msg, "Tienda La 15 (3101234567)")
	assert.Contains(t, msg, "05/03/2025 2:07 PM")
	assert.Contains(t, msg, "Sugar 1kg | Unit x3 | $1,500")
	assert.Contains(t, msg, "Soda 350ml | Pack of 6 units x1 | $6,000")
	assert.Contains(t, msg, "Total: $7,500")
	assert.Contains(t, msg, "Status: pending")
}

func TestFormatCreated_TruncatesFractionalAmounts(t *testing.T) {
	o := services.AssembledOrder{
		ID:        "abc",
		Status:    domain.StatusPending,
		CreatedAt: "raw",
		Customer:  domain.Customer{Name: "X", Phone: "1"},
		Lines: []services.PricedLine{
			{Name: "Thing", SaleMode: "unit", Qty: 1, UnitPrice: 1234567.89},
		},
		Total: 1234567.89,
	}
	msg := notify.FormatCreated(o)
	assert.Contains(t, msg, "Total: $1,234,567")
	assert.NotContains(t, msg, ".89")
}

func TestFormatEdited_OnlyPresentSections(t *testing.T) {
	cu := domain.Customer{Name: "Granero JM", Phone: "3209876543"}

	cs := services.ChangeSet{
		Modified: []services.LineChange{{
			Before: services.LineSnapshot{ProductID: "p1", Name: "Sugar 1kg", SaleMode: "unit", Qty: 2},
			After:  services.LineSnapshot{ProductID: "p1", Name: "Sugar 1kg", SaleMode: "unit", Qty: 5},
		}},
	}
	msg := notify.FormatEdited("order-1", cu, cs, "2025-03-05T14:07:33.123Z")
	assert.Contains(t, msg, "Order #order-1 edited")
	assert.Contains(t, msg, "Changed:")
	assert.Contains(t, msg, "Sugar 1kg: Unit x2 -> Unit x5")
	assert.NotContains(t, msg, "Added:")
	assert.NotContains(t, msg, "Removed:")
	assert.NotContains(t, msg, "Status:")
}

func TestFormatEdited_AllSections(t *testing.T) {
	pack := 12
	cu := domain.Customer{Name: "Granero JM", Phone: "3209876543"}
	cs := services.ChangeSet{
		Status:  &services.StatusChange{Before: "pending", After: "in-process"},
		Added:   []services.LineSnapshot{{ProductID: "p2", Name: "Rice 500g", SaleMode: "pack", Qty: 1, UnitsPerPack: &pack}},
		Removed: []services.LineSnapshot{{ProductID: "p3", Name: "Salt 500g", SaleMode: "unit", Qty: 4}},
	}
	msg := notify.FormatEdited("order-2", cu, cs, "raw-ts")
	assert.Contains(t, msg, "Status: pending -> in-process")
	assert.Contains(t, msg, "Added:")
	assert.Contains(t, msg, "Rice 500g | Pack of 12 units x1")
	assert.Contains(t, msg, "Removed:")
	assert.Contains(t, msg, "Salt 500g | Unit x4")
	assert.Contains(t, msg, "Date: raw-ts")
	// no trailing blank lines
	assert.False(t, strings.HasSuffix(msg, "\n"))
}
