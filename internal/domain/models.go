// backend-go/internal/domain/models.go
package domain

import (
	"time"

	"github.com/shopspring/decimal"
)

// Product represents a single row of the products file
type Product struct {
	ID        string          `json:"produto_id"`
	Name      string          `json:"produto_nome"`
	Category  string          `json:"categoria"`
	Brand     string          `json:"marca"`
	UnitPrice decimal.Decimal `json:"preco_unitario"`
	Location  string          `json:"localizacao,omitempty"`
}

// StockRecord represents a single row of the stock file. ProductID is not unique:
// the same product can appear once per location and reference date.
type StockRecord struct {
	ProductID     string     `json:"produto_id"`
	Quantity      int        `json:"quantidade_estoque"`
	Minimum       int        `json:"estoque_minimo"`
	Location      string     `json:"localizacao,omitempty"`
	ReferenceDate *time.Time `json:"data_referencia,omitempty"`
}

// Sale represents a single row of the sales file
type Sale struct {
	SaleID        string          `json:"venda_id"`
	ProductID     string          `json:"produto_id"`
	StoreID       string          `json:"loja_id"`
	SaleDate      *time.Time      `json:"data_venda"`
	Quantity      int             `json:"quantidade_vendida"`
	UnitValue     decimal.Decimal `json:"valor_unitario"`
	TotalValue    decimal.Decimal `json:"valor_total"`
	PaymentMethod string          `json:"forma_pagamento"`
	Channel       string          `json:"canal_venda"`
}

// InventoryRow is one row of the products x stock left join.
// Products without stock carry Quantity = 0, Minimum = 0 and a nil ReferenceDate.
type InventoryRow struct {
	ProductID     string          `json:"produto_id"`
	ProductName   string          `json:"produto_nome"`
	Category      string          `json:"categoria"`
	Brand         string          `json:"marca"`
	UnitPrice     decimal.Decimal `json:"preco_unitario"`
	Quantity      int             `json:"quantidade_estoque"`
	Minimum       int             `json:"estoque_minimo"`
	Location      string          `json:"localizacao"`
	ReferenceDate *time.Time      `json:"data_referencia"`
}

// BelowMinimum reports whether the current quantity is strictly less than the minimum
func (r InventoryRow) BelowMinimum() bool {
	return r.Quantity < r.Minimum
}

// Difference is quantity minus minimum; negative values are a deficit
func (r InventoryRow) Difference() int {
	return r.Quantity - r.Minimum
}

// Status returns the stock status of the row
func (r InventoryRow) Status() StockStatus {
	if r.BelowMinimum() {
		return StatusBelowMinimum
	}
	return StatusAdequate
}

// SalesRow is one sale left-joined with its product. Calendar fields are derived
// from SaleDate at load time and stay zero when the date could not be parsed.
type SalesRow struct {
	SaleID        string          `json:"venda_id"`
	ProductID     string          `json:"produto_id"`
	StoreID       string          `json:"loja_id"`
	SaleDate      *time.Time      `json:"data_venda"`
	Quantity      int             `json:"quantidade_vendida"`
	UnitValue     decimal.Decimal `json:"valor_unitario"`
	TotalValue    decimal.Decimal `json:"valor_total"`
	PaymentMethod string          `json:"forma_pagamento"`
	Channel       string          `json:"canal_venda"`
	ProductName   string          `json:"produto_nome"`
	Category      string          `json:"categoria"`
	Brand         string          `json:"marca"`
	Year          int             `json:"ano"`
	Month         int             `json:"mes"`
	YearMonth     string          `json:"ano_mes"`
}

// SourceFile describes a resolved source file as used for memoization
type SourceFile struct {
	Name    string    `json:"name"`
	Path    string    `json:"path"`
	Size    int64     `json:"size"`
	ModTime time.Time `json:"mod_time"`
}
