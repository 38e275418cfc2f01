package dimension

import (
	"testing"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/stretchr/testify/assert"
)

func day(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func TestInventoryDimensions(t *testing.T) {
	withTime := time.Date(2024, 1, 1, 13, 0, 0, 0, time.UTC)
	rows := []domain.InventoryRow{
		{Category: "Tools", Brand: "Zeta", Location: "B", ReferenceDate: day(2024, 2, 1)},
		{Category: "Bolts", Brand: "", Location: "A", ReferenceDate: &withTime},
		{Category: "Tools", Brand: "Acme", Location: "B", ReferenceDate: day(2024, 1, 1)},
		{Category: "", Brand: "Acme"},
	}

	d := ForInventory(rows)
	assert.Equal(t, []string{"Bolts", "Tools"}, d.Categories)
	assert.Equal(t, []string{"Acme", "Zeta"}, d.Brands)
	assert.Equal(t, []string{"A", "B"}, d.Locations)
	assert.Equal(t, []time.Time{*day(2024, 1, 1), *day(2024, 2, 1)}, d.ReferenceDates)
}

func TestRecomputesFromSubset(t *testing.T) {
	rows := []domain.InventoryRow{
		{Category: "Tools", ReferenceDate: day(2024, 2, 1)},
		{Category: "Bolts", ReferenceDate: day(2024, 1, 1)},
	}
	assert.Equal(t, []string{"Bolts", "Tools"}, Categories(rows))
	assert.Equal(t, []string{"Tools"}, Categories(rows[:1]))
}

func TestEmptyInput(t *testing.T) {
	assert.Empty(t, Categories(nil))
	assert.NotNil(t, Categories(nil))
	assert.Empty(t, ReferenceDates(nil))

	_, _, ok := SaleDateBounds(nil)
	assert.False(t, ok)

	d := ForSales(nil)
	assert.Nil(t, d.DateFrom)
}

func TestSalesDimensions(t *testing.T) {
	rows := []domain.SalesRow{
		{StoreID: "L2", ProductName: "Chá", Channel: "Online", PaymentMethod: "Pix", SaleDate: day(2024, 3, 10)},
		{StoreID: "L1", ProductName: "Café", Channel: "Loja", PaymentMethod: "Cartão", SaleDate: day(2024, 1, 5)},
		{StoreID: "L1", ProductName: "Café", Channel: "Loja", PaymentMethod: "Pix"},
	}

	d := ForSales(rows)
	assert.Equal(t, []string{"L1", "L2"}, d.Stores)
	assert.Equal(t, []string{"Café", "Chá"}, d.Products)
	assert.Equal(t, []string{"Loja", "Online"}, d.Channels)
	assert.Equal(t, []string{"Cartão", "Pix"}, d.PaymentMethods)
	if assert.NotNil(t, d.DateFrom) {
		assert.Equal(t, *day(2024, 1, 5), *d.DateFrom)
		assert.Equal(t, *day(2024, 3, 10), *d.DateTo)
	}
}
