package notify

import (
	"fmt"
	"strings"
	"time"

	"github.com/dustin/go-humanize"

	"pedidos/internal/domain"
	"pedidos/internal/services"
)

// Order timestamps arrive as ISO-8601 with fractional seconds and a Z suffix.
const storeTimeLayout = "2006-01-02T15:04:05.999999999Z"

// FormatCreated renders the operator message for a freshly placed order.
func FormatCreated(o services.AssembledOrder) string {
	var b strings.Builder
	fmt.Fprintf(&b, "New order %s\n", shortID(o.ID))
	fmt.Fprintf(&b, "Customer: %s (%s)\n", o.Customer.Name, o.Customer.Phone)
	if o.Customer.Address != "" {
		fmt.Fprintf(&b, "Address: %s\n", o.Customer.Address)
	}
	fmt.Fprintf(&b, "Date: %s\n", FormatTimestamp(o.CreatedAt))
	fmt.Fprintf(&b, "Status: %s\n", o.Status)
	b.WriteString("Items:\n")
	for _, l := range o.Lines {
		fmt.Fprintf(&b, "- %s | %s x%d | %s\n", l.Name, saleLabel(l.SaleMode, l.UnitsPerPack), l.Qty, money(l.Subtotal()))
	}
	fmt.Fprintf(&b, "Total: %s", money(o.Total))
	return b.String()
}

// FormatEdited renders the operator message for an order edit. Only the
// sections present in the change set appear; callers skip sending entirely
// when the change set is empty.
func FormatEdited(orderID string, customer domain.Customer, cs services.ChangeSet, editedAt string) string {
	var b strings.Builder
	fmt.Fprintf(&b, "Order %s edited\n", shortID(orderID))
	fmt.Fprintf(&b, "Customer: %s (%s)\n", customer.Name, customer.Phone)
	fmt.Fprintf(&b, "Date: %s\n", FormatTimestamp(editedAt))
	if cs.Status != nil {
		fmt.Fprintf(&b, "Status: %s -> %s\n", cs.Status.Before, cs.Status.After)
	}
	if len(cs.Added) > 0 {
		b.WriteString("Added:\n")
		for _, l := range cs.Added {
			fmt.Fprintf(&b, "- %s | %s x%d\n", l.Name, saleLabel(l.SaleMode, l.UnitsPerPack), l.Qty)
		}
	}
	if len(cs.Removed) > 0 {
		b.WriteString("Removed:\n")
		for _, l := range cs.Removed {
			fmt.Fprintf(&b, "- %s | %s x%d\n", l.Name, saleLabel(l.SaleMode, l.UnitsPerPack), l.Qty)
		}
	}
	if len(cs.Modified) > 0 {
		b.WriteString("Changed:\n")
		for _, ch := range cs.Modified {
			fmt.Fprintf(&b, "- %s: %s x%d -> %s x%d\n", ch.After.Name,
				saleLabel(ch.Before.SaleMode, ch.Before.UnitsPerPack), ch.Before.Qty,
				saleLabel(ch.After.SaleMode, ch.After.UnitsPerPack), ch.After.Qty)
		}
	}
	return strings.TrimRight(b.String(), "\n")
}

// FormatTimestamp reformats a store timestamp into a human day-month-year
// hour:minute form. Anything that does not match the store layout passes
// through unchanged.
func FormatTimestamp(s string) string {
	if !strings.Contains(s, ".") || !strings.HasSuffix(s, "Z") {
		return s
	}
	t, err := time.Parse(storeTimeLayout, s)
	if err != nil {
		return s
	}
	return t.Format("02/01/2006 3:04 PM")
}

func saleLabel(mode string, unitsPerPack *int) string {
	if mode == domain.SaleModePack && unitsPerPack != nil {
		return fmt.Sprintf("Pack of %d units", *unitsPerPack)
	}
	if mode == domain.SaleModePack {
		return "Pack"
	}
	return "Unit"
}

// money renders an integer-truncated amount with thousands separators.
func money(v float64) string {
	return "$" + humanize.Comma(int64(v))
}

func shortID(id string) string {
	if len(id) > 8 {
		return "#" + id[:8]
	}
	return "#" + id
}
