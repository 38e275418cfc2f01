// Package analytics computes the dashboard indicators over a filtered view.
// Every function accepts an empty view and returns zero or empty results.
package analytics

import (
	"sort"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultChartLimit caps the number of rows shown in the stock charts
const DefaultChartLimit = 30

// CountBelowMinimum counts rows with quantity strictly below the minimum
func CountBelowMinimum(rows []domain.InventoryRow) int {
	n := 0
	for _, r := range rows {
		if r.BelowMinimum() {
			n++
		}
	}
	return n
}

// TotalInventoryValue sums quantity x price per product. Quantities of a product are
// added across its rows while only the first price seen is used, so prices are
// assumed constant per product. The result is rounded to 2 decimal places.
func TotalInventoryValue(rows []domain.InventoryRow) decimal.Decimal {
	type group struct {
		price    decimal.Decimal
		quantity int64
	}
	order := make([]string, 0)
	groups := make(map[string]*group)
	for _, r := range rows {
		g, ok := groups[r.ProductID]
		if !ok {
			g = &group{price: r.UnitPrice}
			groups[r.ProductID] = g
			order = append(order, r.ProductID)
		}
		g.quantity += int64(r.Quantity)
	}

	total := decimal.Zero
	for _, id := range order {
		g := groups[id]
		total = total.Add(g.price.Mul(decimal.NewFromInt(g.quantity)))
	}
	return total.Round(2)
}

// IdentifyBelowMinimum returns the rows below minimum with their deficit
func IdentifyBelowMinimum(rows []domain.InventoryRow) []domain.DeficitRow {
	out := []domain.DeficitRow{}
	for _, r := range rows {
		if r.BelowMinimum() {
			out = append(out, domain.DeficitRow{InventoryRow: r, Deficit: r.Minimum - r.Quantity})
		}
	}
	return out
}

// StatusCounts splits rows into below minimum and adequate
func StatusCounts(rows []domain.InventoryRow) domain.StatusCounts {
	below := CountBelowMinimum(rows)
	return domain.StatusCounts{BelowMinimum: below, Adequate: len(rows) - below}
}

// TotalDeficit sums minimum - quantity over the rows below minimum
func TotalDeficit(rows []domain.InventoryRow) int {
	total := 0
	for _, d := range IdentifyBelowMinimum(rows) {
		total += d.Deficit
	}
	return total
}

// ReplenishmentCost is the cost of bringing every below-minimum row back to its minimum
func ReplenishmentCost(rows []domain.InventoryRow) decimal.Decimal {
	total := decimal.Zero
	for _, d := range IdentifyBelowMinimum(rows) {
		total = total.Add(d.UnitPrice.Mul(decimal.NewFromInt(int64(d.Deficit))))
	}
	return total.Round(2)
}

// UniqueProducts counts distinct product identifiers
func UniqueProducts(rows []domain.InventoryRow) int {
	seen := make(map[string]struct{}, len(rows))
	for _, r := range rows {
		seen[r.ProductID] = struct{}{}
	}
	return len(seen)
}

// AlertsByCategory distributes the below-minimum rows over their categories.
// Slices are ordered by count, largest first, then by category.
func AlertsByCategory(rows []domain.InventoryRow) []domain.CategoryShare {
	counts := make(map[string]int)
	total := 0
	for _, r := range rows {
		if !r.BelowMinimum() {
			continue
		}
		counts[r.Category]++
		total++
	}

	out := make([]domain.CategoryShare, 0, len(counts))
	for category, n := range counts {
		out = append(out, domain.CategoryShare{
			Category: category,
			Count:    n,
			Percent:  roundFloat(float64(n)*100/float64(total), 2),
		})
	}
	sort.Slice(out, func(i, j int) bool {
		if out[i].Count != out[j].Count {
			return out[i].Count > out[j].Count
		}
		return out[i].Category < out[j].Category
	})
	return out
}

// CategoryBreakdown aggregates rows per category, sorted by category
func CategoryBreakdown(rows []domain.InventoryRow) []domain.GroupBreakdown {
	return breakdown(rows, func(r domain.InventoryRow) string { return r.Category })
}

// LocationBreakdown aggregates rows per location, sorted by location
func LocationBreakdown(rows []domain.InventoryRow) []domain.GroupBreakdown {
	return breakdown(rows, func(r domain.InventoryRow) string { return r.Location })
}

func breakdown(rows []domain.InventoryRow, key func(domain.InventoryRow) string) []domain.GroupBreakdown {
	groups := make(map[string]*domain.GroupBreakdown)
	for _, r := range rows {
		k := key(r)
		g, ok := groups[k]
		if !ok {
			g = &domain.GroupBreakdown{Key: k, TotalValue: decimal.Zero}
			groups[k] = g
		}
		g.Rows++
		g.Quantity += r.Quantity
		g.Minimum += r.Minimum
		g.TotalValue = g.TotalValue.Add(r.UnitPrice.Mul(decimal.NewFromInt(int64(r.Quantity))))
	}

	out := make([]domain.GroupBreakdown, 0, len(groups))
	for _, g := range groups {
		g.TotalValue = g.TotalValue.Round(2)
		out = append(out, *g)
	}
	sort.Slice(out, func(i, j int) bool { return out[i].Key < out[j].Key })
	return out
}

// RankByCriticality orders rows for the stock charts: rows below minimum first, then
// by quantity - minimum ascending. At most limit rows are returned (DefaultChartLimit
// when limit <= 0), so alerts are never pushed out by adequate rows.
func RankByCriticality(rows []domain.InventoryRow, limit int) []domain.InventoryRow {
	if limit <= 0 {
		limit = DefaultChartLimit
	}

	ranked := append([]domain.InventoryRow(nil), rows...)
	sort.SliceStable(ranked, func(i, j int) bool {
		bi, bj := ranked[i].BelowMinimum(), ranked[j].BelowMinimum()
		if bi != bj {
			return bi
		}
		return ranked[i].Difference() < ranked[j].Difference()
	})

	if len(ranked) > limit {
		ranked = ranked[:limit]
	}
	if ranked == nil {
		ranked = []domain.InventoryRow{}
	}
	return ranked
}
