package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// InventoryFilter represents the user selection applied to the inventory view.
// Empty slices and nil pointers leave the corresponding filter inactive.
type InventoryFilter struct {
	ReferenceDate *time.Time       `json:"reference_date,omitempty"` // nil selects the latest date
	Categories    []string         `json:"categories,omitempty"`
	Brands        []string         `json:"brands,omitempty"`
	Locations     []string         `json:"locations,omitempty"`
	Status        StockStatus      `json:"status,omitempty"`
	PriceMin      *decimal.Decimal `json:"price_min,omitempty"`
	PriceMax      *decimal.Decimal `json:"price_max,omitempty"`
	Search        string           `json:"search,omitempty"`
}

// SalesFilter represents the user selection applied to the sales view
type SalesFilter struct {
	Stores         []string   `json:"stores,omitempty"`
	Products       []string   `json:"products,omitempty"`
	Categories     []string   `json:"categories,omitempty"`
	Brands         []string   `json:"brands,omitempty"`
	Channels       []string   `json:"channels,omitempty"`
	PaymentMethods []string   `json:"payment_methods,omitempty"`
	DateFrom       *time.Time `json:"date_from,omitempty"`
	DateTo         *time.Time `json:"date_to,omitempty"`
	Search         string     `json:"search,omitempty"`
}
