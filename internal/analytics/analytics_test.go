package analytics

import (
	"testing"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func d(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func at(y int, m time.Month, day int) *time.Time {
	t := time.Date(y, m, day, 0, 0, 0, 0, time.UTC)
	return &t
}

func scenarioA() []domain.InventoryRow {
	return []domain.InventoryRow{
		{ProductID: "P1", Category: "Ferragens", Location: "X", UnitPrice: d("10.00"), Quantity: 5, Minimum: 10},
		{ProductID: "P1", Category: "Ferragens", Location: "Y", UnitPrice: d("10.00"), Quantity: 3, Minimum: 10},
	}
}

func TestScenarioA(t *testing.T) {
	rows := scenarioA()
	assert.True(t, d("80.00").Equal(TotalInventoryValue(rows)))
	assert.Equal(t, 2, CountBelowMinimum(rows))
	assert.Equal(t, 1, UniqueProducts(rows))
	assert.Equal(t, 12, TotalDeficit(rows))
	assert.True(t, d("120").Equal(ReplenishmentCost(rows)))
}

func TestCountMatchesIdentify(t *testing.T) {
	rows := append(scenarioA(),
		domain.InventoryRow{ProductID: "P2", UnitPrice: d("1"), Quantity: 10, Minimum: 10},
		domain.InventoryRow{ProductID: "P3", UnitPrice: d("1")},
		domain.InventoryRow{ProductID: "P4", UnitPrice: d("1"), Quantity: 0, Minimum: 1},
	)
	below := IdentifyBelowMinimum(rows)
	assert.Equal(t, CountBelowMinimum(rows), len(below))
	require.Len(t, below, 3)
	assert.Equal(t, 5, below[0].Deficit)
	assert.Equal(t, 1, below[2].Deficit)

	assert.Equal(t, domain.StatusCounts{BelowMinimum: 3, Adequate: 2}, StatusCounts(rows))
}

func TestTotalValueDuplicationInvariance(t *testing.T) {
	base := []domain.InventoryRow{
		{ProductID: "P1", UnitPrice: d("2.50"), Quantity: 4},
		{ProductID: "P2", UnitPrice: d("1.10"), Quantity: 3},
	}
	// splitting P1's quantity over two locations must not change the value
	split := []domain.InventoryRow{
		{ProductID: "P1", Location: "A", UnitPrice: d("2.50"), Quantity: 1},
		{ProductID: "P2", UnitPrice: d("1.10"), Quantity: 3},
		{ProductID: "P1", Location: "B", UnitPrice: d("2.50"), Quantity: 3},
	}
	assert.True(t, d("13.30").Equal(TotalInventoryValue(base)))
	assert.True(t, TotalInventoryValue(base).Equal(TotalInventoryValue(split)))
}

func TestTotalValueFirstPriceWins(t *testing.T) {
	rows := []domain.InventoryRow{
		{ProductID: "P1", UnitPrice: d("1.005"), Quantity: 1},
		{ProductID: "P1", UnitPrice: d("9"), Quantity: 1},
	}
	assert.Equal(t, "2.01", TotalInventoryValue(rows).StringFixed(2))
}

func TestEmptyInputs(t *testing.T) {
	assert.Equal(t, 0, CountBelowMinimum(nil))
	assert.True(t, TotalInventoryValue(nil).IsZero())
	assert.Empty(t, IdentifyBelowMinimum(nil))
	assert.NotNil(t, IdentifyBelowMinimum(nil))
	assert.True(t, TotalRevenue(nil).IsZero())
	assert.Empty(t, TopNByQuantity(nil, 10))
	assert.Empty(t, MonthlyTimeSeries(nil))
	assert.Empty(t, AlertsByCategory(nil))
	assert.Empty(t, CategoryBreakdown(nil))
	assert.Empty(t, RankByCriticality(nil, 0))
	assert.Equal(t, domain.StatusCounts{}, StatusCounts(nil))
}

func TestScenarioE(t *testing.T) {
	rows := []domain.SalesRow{
		{ProductName: "P1", Quantity: 10},
		{ProductName: "P2", Quantity: 15},
	}
	top := TopNByQuantity(rows, 1)
	require.Len(t, top, 1)
	assert.Equal(t, domain.ProductQuantity{ProductName: "P2", Quantity: 15}, top[0])
}

func TestTopNGroupsAndKeepsTieOrder(t *testing.T) {
	rows := []domain.SalesRow{
		{ProductName: "B", Quantity: 5},
		{ProductName: "A", Quantity: 2},
		{ProductName: "A", Quantity: 3},
		{ProductName: "C", Quantity: 9},
		{ProductName: "", Quantity: 100},
	}
	assert.Equal(t, []domain.ProductQuantity{
		{ProductName: "C", Quantity: 9},
		{ProductName: "B", Quantity: 5},
		{ProductName: "A", Quantity: 5},
	}, TopNByQuantity(rows, 10))
	assert.Empty(t, TopNByQuantity(rows, 0))
}

func TestMonthlyTimeSeriesFillsGaps(t *testing.T) {
	rows := []domain.SalesRow{
		{SaleDate: at(2024, 3, 15), Quantity: 4},
		{SaleDate: at(2023, 12, 31), Quantity: 1},
		{SaleDate: at(2024, 3, 1), Quantity: 2},
		{Quantity: 50},
	}
	series := MonthlyTimeSeries(rows)
	require.Len(t, series, 4)

	labels := make([]string, 0, len(series))
	quantities := make([]int, 0, len(series))
	for _, p := range series {
		labels = append(labels, p.Label)
		quantities = append(quantities, p.Quantity)
	}
	assert.Equal(t, []string{"2023-12", "2024-01", "2024-02", "2024-03"}, labels)
	assert.Equal(t, []int{1, 0, 0, 6}, quantities)
}

func TestTotalRevenue(t *testing.T) {
	rows := []domain.SalesRow{{TotalValue: d("25.00")}, {TotalValue: d("15.005")}}
	assert.Equal(t, "40.01", TotalRevenue(rows).StringFixed(2))
}

func TestAlertsByCategory(t *testing.T) {
	rows := []domain.InventoryRow{
		{Category: "B", Quantity: 0, Minimum: 1},
		{Category: "A", Quantity: 0, Minimum: 1},
		{Category: "B", Quantity: 0, Minimum: 1},
		{Category: "C", Quantity: 5, Minimum: 1},
	}
	assert.Equal(t, []domain.CategoryShare{
		{Category: "B", Count: 2, Percent: 66.67},
		{Category: "A", Count: 1, Percent: 33.33},
	}, AlertsByCategory(rows))
}

func TestBreakdowns(t *testing.T) {
	rows := []domain.InventoryRow{
		{Category: "Tools", Location: "B", UnitPrice: d("2"), Quantity: 3, Minimum: 1},
		{Category: "Bolts", Location: "A", UnitPrice: d("0.5"), Quantity: 4, Minimum: 8},
		{Category: "Tools", Location: "A", UnitPrice: d("1"), Quantity: 1, Minimum: 2},
	}

	byCategory := CategoryBreakdown(rows)
	require.Len(t, byCategory, 2)
	assert.Equal(t, "Bolts", byCategory[0].Key)
	assert.Equal(t, "Tools", byCategory[1].Key)
	assert.Equal(t, 2, byCategory[1].Rows)
	assert.Equal(t, 4, byCategory[1].Quantity)
	assert.Equal(t, 3, byCategory[1].Minimum)
	assert.True(t, d("7").Equal(byCategory[1].TotalValue))

	byLocation := LocationBreakdown(rows)
	require.Len(t, byLocation, 2)
	assert.Equal(t, "A", byLocation[0].Key)
	assert.Equal(t, 5, byLocation[0].Quantity)
}

func TestRankByCriticality(t *testing.T) {
	rows := []domain.InventoryRow{
		{ProductID: "ok-big", Quantity: 50, Minimum: 1},
		{ProductID: "alert-small", Quantity: 4, Minimum: 5},
		{ProductID: "ok-tight", Quantity: 5, Minimum: 5},
		{ProductID: "alert-big", Quantity: 0, Minimum: 20},
	}

	ranked := RankByCriticality(rows, 0)
	got := make([]string, 0, len(ranked))
	for _, r := range ranked {
		got = append(got, r.ProductID)
	}
	assert.Equal(t, []string{"alert-big", "alert-small", "ok-tight", "ok-big"}, got)

	assert.Len(t, RankByCriticality(rows, 2), 2)
	assert.True(t, RankByCriticality(rows, 2)[1].BelowMinimum())
	assert.Equal(t, "ok-big", rows[0].ProductID, "input must not be reordered")
}

func TestFormatBRL(t *testing.T) {
	tests := map[string]string{
		"0":           "R$ 0,00",
		"80":          "R$ 80,00",
		"1234.5":      "R$ 1.234,50",
		"1234567.891": "R$ 1.234.567,89",
		"-80":         "-R$ 80,00",
	}
	for in, want := range tests {
		assert.Equal(t, want, FormatBRL(d(in)), in)
	}
	assert.Equal(t, "12.345", FormatCount(12345))
	assert.Equal(t, "-1.000", FormatCount(-1000))
}
