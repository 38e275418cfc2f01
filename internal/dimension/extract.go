// Package dimension derives the selectable values of the dashboard filters.
// Every function recomputes from the rows it is given.
package dimension

import (
	"sort"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

// Strings returns the distinct non-empty values of field, sorted ascending
func Strings[T any](rows []T, field func(T) string) []string {
	seen := make(map[string]struct{})
	out := []string{}
	for _, r := range rows {
		v := field(r)
		if v == "" {
			continue
		}
		if _, ok := seen[v]; ok {
			continue
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}
	sort.Strings(out)
	return out
}

// Dates returns the distinct non-nil calendar days of field, in chronological order
func Dates[T any](rows []T, field func(T) *time.Time) []time.Time {
	seen := make(map[time.Time]struct{})
	out := []time.Time{}
	for _, r := range rows {
		v := field(r)
		if v == nil {
			continue
		}
		day := source.Day(*v)
		if _, ok := seen[day]; ok {
			continue
		}
		seen[day] = struct{}{}
		out = append(out, day)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Before(out[j]) })
	return out
}

func Categories(rows []domain.InventoryRow) []string {
	return Strings(rows, func(r domain.InventoryRow) string { return r.Category })
}

func Brands(rows []domain.InventoryRow) []string {
	return Strings(rows, func(r domain.InventoryRow) string { return r.Brand })
}

func Locations(rows []domain.InventoryRow) []string {
	return Strings(rows, func(r domain.InventoryRow) string { return r.Location })
}

func ReferenceDates(rows []domain.InventoryRow) []time.Time {
	return Dates(rows, func(r domain.InventoryRow) *time.Time { return r.ReferenceDate })
}

func Stores(rows []domain.SalesRow) []string {
	return Strings(rows, func(r domain.SalesRow) string { return r.StoreID })
}

func ProductNames(rows []domain.SalesRow) []string {
	return Strings(rows, func(r domain.SalesRow) string { return r.ProductName })
}

func Channels(rows []domain.SalesRow) []string {
	return Strings(rows, func(r domain.SalesRow) string { return r.Channel })
}

func PaymentMethods(rows []domain.SalesRow) []string {
	return Strings(rows, func(r domain.SalesRow) string { return r.PaymentMethod })
}

// SaleDateBounds returns the first and last sale day; ok is false when no sale has a date
func SaleDateBounds(rows []domain.SalesRow) (from, to time.Time, ok bool) {
	dates := Dates(rows, func(r domain.SalesRow) *time.Time { return r.SaleDate })
	if len(dates) == 0 {
		return time.Time{}, time.Time{}, false
	}
	return dates[0], dates[len(dates)-1], true
}

// Inventory holds the selectable values of the inventory filters
type Inventory struct {
	ReferenceDates []time.Time `json:"reference_dates"`
	Categories     []string    `json:"categories"`
	Brands         []string    `json:"brands"`
	Locations      []string    `json:"locations"`
}

// ForInventory extracts every inventory dimension from rows
func ForInventory(rows []domain.InventoryRow) Inventory {
	return Inventory{
		ReferenceDates: ReferenceDates(rows),
		Categories:     Categories(rows),
		Brands:         Brands(rows),
		Locations:      Locations(rows),
	}
}

// Sales holds the selectable values of the sales filters
type Sales struct {
	Stores         []string   `json:"stores"`
	Products       []string   `json:"products"`
	Categories     []string   `json:"categories"`
	Brands         []string   `json:"brands"`
	Channels       []string   `json:"channels"`
	PaymentMethods []string   `json:"payment_methods"`
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
}

// ForSales extracts every sales dimension from rows
func ForSales(rows []domain.SalesRow) Sales {
	d := Sales{
		Stores:         Stores(rows),
		Products:       ProductNames(rows),
		Categories:     Strings(rows, func(r domain.SalesRow) string { return r.Category }),
		Brands:         Strings(rows, func(r domain.SalesRow) string { return r.Brand }),
		Channels:       Channels(rows),
		PaymentMethods: PaymentMethods(rows),
	}
	if from, to, ok := SaleDateBounds(rows); ok {
		d.DateFrom, d.DateTo = &from, &to
	}
	return d
}
