package analytics

import (
	"sort"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
)

// DefaultTopN is the size of the top products chart
const DefaultTopN = 10

// TotalRevenue sums valor_total over the rows
func TotalRevenue(rows []domain.SalesRow) decimal.Decimal {
	total := decimal.Zero
	for _, r := range rows {
		total = total.Add(r.TotalValue)
	}
	return total.Round(2)
}

// TopNByQuantity groups rows by product name and returns the n names with the
// largest quantity sold. Ties keep the order in which the products first appear.
// Rows without a product name are not ranked.
func TopNByQuantity(rows []domain.SalesRow, n int) []domain.ProductQuantity {
	if n <= 0 {
		return []domain.ProductQuantity{}
	}

	index := make(map[string]int)
	groups := []domain.ProductQuantity{}
	for _, r := range rows {
		if r.ProductName == "" {
			continue
		}
		i, ok := index[r.ProductName]
		if !ok {
			i = len(groups)
			index[r.ProductName] = i
			groups = append(groups, domain.ProductQuantity{ProductName: r.ProductName})
		}
		groups[i].Quantity += r.Quantity
	}

	sort.SliceStable(groups, func(i, j int) bool { return groups[i].Quantity > groups[j].Quantity })
	if len(groups) > n {
		groups = groups[:n]
	}
	return groups
}

// MonthlyTimeSeries sums quantity sold per calendar month, from the first to the
// last month with sales. Months without sales are present with 0; undated rows are skipped.
func MonthlyTimeSeries(rows []domain.SalesRow) []domain.MonthlyPoint {
	buckets := make(map[time.Time]int)
	var first, last time.Time
	for _, r := range rows {
		if r.SaleDate == nil {
			continue
		}
		m := monthOf(*r.SaleDate)
		if len(buckets) == 0 || m.Before(first) {
			first = m
		}
		if len(buckets) == 0 || m.After(last) {
			last = m
		}
		buckets[m] += r.Quantity
	}

	out := []domain.MonthlyPoint{}
	if len(buckets) == 0 {
		return out
	}
	for m := first; !m.After(last); m = m.AddDate(0, 1, 0) {
		out = append(out, domain.MonthlyPoint{
			Month:    m,
			Label:    m.Format("2006-01"),
			Quantity: buckets[m],
		})
	}
	return out
}

func monthOf(t time.Time) time.Time {
	return time.Date(t.Year(), t.Month(), 1, 0, 0, 0, 0, time.UTC)
}
