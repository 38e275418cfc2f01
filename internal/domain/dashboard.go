package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// DeficitRow is an inventory row below its minimum together with the missing quantity
type DeficitRow struct {
	InventoryRow
	Deficit int `json:"deficit"`
}

// StatusCounts splits rows into alert and adequate
type StatusCounts struct {
	BelowMinimum int `json:"below_minimum"`
	Adequate     int `json:"adequate"`
}

// CategoryShare represents one slice of the alerts-by-category chart
type CategoryShare struct {
	Category string  `json:"category"`
	Count    int     `json:"count"`
	Percent  float64 `json:"percent"`
}

// GroupBreakdown aggregates inventory rows sharing a category or location
type GroupBreakdown struct {
	Key        string          `json:"key"`
	Rows       int             `json:"rows"`
	Quantity   int             `json:"quantity"`
	Minimum    int             `json:"minimum"`
	TotalValue decimal.Decimal `json:"total_value"`
}

// ProductQuantity is one bar of the top products chart
type ProductQuantity struct {
	ProductName string `json:"product_name"`
	Quantity    int    `json:"quantity"`
}

// MonthlyPoint is one bucket of the monthly sales series
type MonthlyPoint struct {
	Month    time.Time `json:"month"`
	Label    string    `json:"label"`
	Quantity int       `json:"quantity"`
}

// InventorySummary aggregates the indicator cards of the inventory dashboard
type InventorySummary struct {
	ReferenceDate     *time.Time          `json:"reference_date,omitempty"`
	TotalRows         int                 `json:"total_rows"`
	BaseRows          int                 `json:"base_rows"`
	UniqueProducts    int                 `json:"unique_products"`
	BelowMinimum      int                 `json:"below_minimum"`
	TotalValue        decimal.Decimal     `json:"total_value"`
	Status            StatusCounts        `json:"status"`
	TotalDeficit      int                 `json:"total_deficit"`
	ReplenishmentCost decimal.Decimal     `json:"replenishment_cost"`
	AlertsByCategory  []CategoryShare     `json:"alerts_by_category"`
	Warnings          []ValidationWarning `json:"warnings,omitempty"`
}

// SalesSummary aggregates the indicators and charts of the sales dashboard
type SalesSummary struct {
	DateFrom     *time.Time          `json:"date_from,omitempty"`
	DateTo       *time.Time          `json:"date_to,omitempty"`
	TotalRows    int                 `json:"total_rows"`
	BaseRows     int                 `json:"base_rows"`
	TotalRevenue decimal.Decimal     `json:"total_revenue"`
	TopProducts  []ProductQuantity   `json:"top_products"`
	Monthly      []MonthlyPoint      `json:"monthly"`
	Warnings     []ValidationWarning `json:"warnings,omitempty"`
}
