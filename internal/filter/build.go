package filter

import (
	"fmt"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/dimension"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/shopspring/decimal"
)

// Status matches inventory rows by stock status. StatusAll is inactive.
func Status(status domain.StockStatus) Spec[domain.InventoryRow] {
	switch status {
	case domain.StatusBelowMinimum:
		return func(r domain.InventoryRow) bool { return r.BelowMinimum() }
	case domain.StatusAdequate:
		return func(r domain.InventoryRow) bool { return !r.BelowMinimum() }
	default:
		return nil
	}
}

func referenceDate(r domain.InventoryRow) *time.Time { return r.ReferenceDate }

// SelectReferenceDate resolves the reference date against rows. A nil date selects
// the most recent one. When no row carries a date the returned spec is nil and
// the selection is a no-op, even for an explicit date.
func SelectReferenceDate(rows []domain.InventoryRow, date *time.Time) (Spec[domain.InventoryRow], *time.Time) {
	dates := dimension.ReferenceDates(rows)
	if len(dates) == 0 {
		return nil, nil
	}

	day := dates[len(dates)-1]
	if date != nil {
		day = source.Day(*date)
	}
	return OnDay(referenceDate, day), &day
}

// BuildInventory turns f into specs over rows. The reference date is resolved
// first and returned so that callers can report which snapshot was used.
func BuildInventory(rows []domain.InventoryRow, f domain.InventoryFilter) ([]Spec[domain.InventoryRow], *time.Time, []domain.ValidationWarning) {
	dateSpec, selected := SelectReferenceDate(rows, f.ReferenceDate)
	price, warnings := PriceRange(func(r domain.InventoryRow) decimal.Decimal { return r.UnitPrice }, f.PriceMin, f.PriceMax)

	specs := []Spec[domain.InventoryRow]{
		dateSpec,
		InSet(func(r domain.InventoryRow) string { return r.Category }, f.Categories),
		InSet(func(r domain.InventoryRow) string { return r.Brand }, f.Brands),
		InSet(func(r domain.InventoryRow) string { return r.Location }, f.Locations),
		Status(f.Status),
		price,
		Contains(func(r domain.InventoryRow) string { return r.ProductName }, f.Search),
	}
	return compact(specs), selected, warnings
}

// BuildSales turns f into specs over sales rows
func BuildSales(f domain.SalesFilter) ([]Spec[domain.SalesRow], []domain.ValidationWarning) {
	dates, warnings := DateRange(func(r domain.SalesRow) *time.Time { return r.SaleDate }, f.DateFrom, f.DateTo)

	specs := []Spec[domain.SalesRow]{
		InSet(func(r domain.SalesRow) string { return r.StoreID }, f.Stores),
		InSet(func(r domain.SalesRow) string { return r.ProductName }, f.Products),
		InSet(func(r domain.SalesRow) string { return r.Category }, f.Categories),
		InSet(func(r domain.SalesRow) string { return r.Brand }, f.Brands),
		InSet(func(r domain.SalesRow) string { return r.Channel }, f.Channels),
		InSet(func(r domain.SalesRow) string { return r.PaymentMethod }, f.PaymentMethods),
		dates,
		Contains(func(r domain.SalesRow) string { return r.ProductName }, f.Search),
	}
	return compact(specs), warnings
}

func compact[T any](specs []Spec[T]) []Spec[T] {
	out := specs[:0]
	for _, s := range specs {
		if s != nil {
			out = append(out, s)
		}
	}
	return out
}

// ParseStatus maps a status label to a StockStatus. Unknown labels fall back to
// StatusAll with a warning.
func ParseStatus(label string) (domain.StockStatus, []domain.ValidationWarning) {
	status, ok := domain.ParseStockStatus(label)
	if !ok {
		return domain.StatusAll, []domain.ValidationWarning{{
			Kind:    domain.WarnUnknownStatus,
			Message: fmt.Sprintf("unknown status %q, showing all", label),
		}}
	}
	return status, nil
}
