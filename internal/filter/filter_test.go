package filter

import (
	"testing"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

func date(y int, m time.Month, d int) *time.Time {
	t := time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
	return &t
}

func price(s string) decimal.Decimal { return decimal.RequireFromString(s) }

func dec(s string) *decimal.Decimal {
	d := price(s)
	return &d
}

func sampleInventory() []domain.InventoryRow {
	return []domain.InventoryRow{
		{ProductID: "P1", ProductName: "Parafuso Sextavado", Category: "Ferragens", Brand: "Acme", Location: "A", UnitPrice: price("5"), Quantity: 2, Minimum: 10, ReferenceDate: date(2024, 2, 1)},
		{ProductID: "P2", ProductName: "Martelo", Category: "Ferramentas", Brand: "Acme", Location: "B", UnitPrice: price("45"), Quantity: 20, Minimum: 5, ReferenceDate: date(2024, 2, 1)},
		{ProductID: "P3", ProductName: "ÉGUA de madeira", Category: "Ferramentas", Brand: "Zeta", Location: "A", UnitPrice: price("60"), Quantity: 1, Minimum: 3, ReferenceDate: date(2024, 2, 1)},
		{ProductID: "P4", ProductName: "Chave", Category: "Ferragens", Brand: "Zeta", Location: "B", UnitPrice: price("12"), Quantity: 7, Minimum: 7, ReferenceDate: date(2024, 1, 1)},
	}
}

func ids(rows []domain.InventoryRow) []string {
	out := make([]string, 0, len(rows))
	for _, r := range rows {
		out = append(out, r.ProductID)
	}
	return out
}

func TestApplyIdentity(t *testing.T) {
	rows := sampleInventory()
	assert.Equal(t, rows, Apply(rows))
	assert.Equal(t, rows, Apply(rows, nil, InSet(func(r domain.InventoryRow) string { return r.Brand }, nil)))
	assert.Empty(t, Apply[domain.InventoryRow](nil, Status(domain.StatusBelowMinimum)))
}

func TestApplyOrderIndependentAndIdempotent(t *testing.T) {
	rows := sampleInventory()
	priceSpec, _ := PriceRange(func(r domain.InventoryRow) decimal.Decimal { return r.UnitPrice }, dec("1"), dec("50"))
	specs := []Spec[domain.InventoryRow]{
		InSet(func(r domain.InventoryRow) string { return r.Brand }, []string{"Acme", "Zeta"}),
		Status(domain.StatusBelowMinimum),
		priceSpec,
		Contains(func(r domain.InventoryRow) string { return r.ProductName }, "a"),
	}

	want := ids(Apply(rows, specs...))
	assert.Equal(t, []string{"P1"}, want)

	perms := [][]int{{3, 2, 1, 0}, {1, 3, 0, 2}, {2, 0, 3, 1}}
	for _, p := range perms {
		reordered := make([]Spec[domain.InventoryRow], len(p))
		for i, idx := range p {
			reordered[i] = specs[idx]
		}
		assert.Equal(t, want, ids(Apply(rows, reordered...)))
	}

	once := Apply(rows, specs...)
	assert.Equal(t, once, Apply(once, specs...))
}

func TestLatestReferenceDateSelected(t *testing.T) {
	rows := sampleInventory()
	specs, selected, warnings := BuildInventory(rows, domain.InventoryFilter{})
	assert.Empty(t, warnings)
	require.NotNil(t, selected)
	assert.Equal(t, *date(2024, 2, 1), *selected)
	assert.Equal(t, []string{"P1", "P2", "P3"}, ids(Apply(rows, specs...)))
}

func TestExplicitReferenceDate(t *testing.T) {
	rows := sampleInventory()
	withClock := time.Date(2024, 1, 1, 18, 30, 0, 0, time.UTC)
	specs, selected, _ := BuildInventory(rows, domain.InventoryFilter{ReferenceDate: &withClock})
	assert.Equal(t, *date(2024, 1, 1), *selected)
	assert.Equal(t, []string{"P4"}, ids(Apply(rows, specs...)))
}

func TestReferenceDateNoopWithoutDates(t *testing.T) {
	rows := []domain.InventoryRow{{ProductID: "P1"}, {ProductID: "P2"}}
	spec, selected := SelectReferenceDate(rows, nil)
	assert.Nil(t, spec)
	assert.Nil(t, selected)

	spec, _ = SelectReferenceDate(rows, date(2024, 1, 1))
	assert.Nil(t, spec)
	assert.Equal(t, rows, Apply(rows, spec))
}

func TestPriceRangeSwapped(t *testing.T) {
	rows := sampleInventory()
	spec, warnings := PriceRange(func(r domain.InventoryRow) decimal.Decimal { return r.UnitPrice }, dec("50"), dec("10"))
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnSwappedRange, warnings[0].Kind)

	straight, noWarnings := PriceRange(func(r domain.InventoryRow) decimal.Decimal { return r.UnitPrice }, dec("10"), dec("50"))
	assert.Empty(t, noWarnings)
	assert.Equal(t, ids(Apply(rows, straight)), ids(Apply(rows, spec)))
	assert.Equal(t, []string{"P2", "P4"}, ids(Apply(rows, spec)))
}

func TestPriceRangeInclusiveOpenEnded(t *testing.T) {
	rows := sampleInventory()
	spec, _ := PriceRange(func(r domain.InventoryRow) decimal.Decimal { return r.UnitPrice }, dec("45"), nil)
	assert.Equal(t, []string{"P2", "P3"}, ids(Apply(rows, spec)))
}

func TestContainsFoldsCase(t *testing.T) {
	rows := sampleInventory()
	spec := Contains(func(r domain.InventoryRow) string { return r.ProductName }, "égua")
	assert.Equal(t, []string{"P3"}, ids(Apply(rows, spec)))

	assert.Nil(t, Contains(func(r domain.InventoryRow) string { return r.ProductName }, "  "))
}

func TestSelectionDropsAllMarkers(t *testing.T) {
	assert.Equal(t, []string{"Acme"}, Selection([]string{"Todas", " Acme ", "", "todos"}))
	assert.Nil(t, InSet(func(r domain.InventoryRow) string { return r.Brand }, []string{"Todas"}))
}

func TestStatus(t *testing.T) {
	rows := sampleInventory()
	assert.Equal(t, []string{"P1", "P3"}, ids(Apply(rows, Status(domain.StatusBelowMinimum))))
	assert.Equal(t, []string{"P2", "P4"}, ids(Apply(rows, Status(domain.StatusAdequate))))
	assert.Nil(t, Status(domain.StatusAll))

	status, warnings := ParseStatus("Abaixo do Mínimo")
	assert.Equal(t, domain.StatusBelowMinimum, status)
	assert.Empty(t, warnings)

	status, warnings = ParseStatus("bogus")
	assert.Equal(t, domain.StatusAll, status)
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnUnknownStatus, warnings[0].Kind)
}

func TestBuildSales(t *testing.T) {
	rows := []domain.SalesRow{
		{SaleID: "V1", StoreID: "L1", ProductName: "Café", SaleDate: date(2024, 1, 10)},
		{SaleID: "V2", StoreID: "L2", ProductName: "Chá", SaleDate: date(2024, 2, 10)},
		{SaleID: "V3", StoreID: "L1", ProductName: "Chá", SaleDate: date(2024, 3, 10)},
		{SaleID: "V4", StoreID: "L1", ProductName: "Chá"},
	}
	saleIDs := func(rs []domain.SalesRow) []string {
		out := []string{}
		for _, r := range rs {
			out = append(out, r.SaleID)
		}
		return out
	}

	specs, warnings := BuildSales(domain.SalesFilter{})
	assert.Empty(t, specs)
	assert.Empty(t, warnings)
	assert.Equal(t, rows, Apply(rows, specs...))

	specs, warnings = BuildSales(domain.SalesFilter{
		Stores:   []string{"L1"},
		DateFrom: date(2024, 3, 31),
		DateTo:   date(2024, 2, 1),
	})
	require.Len(t, warnings, 1)
	assert.Equal(t, domain.WarnSwappedRange, warnings[0].Kind)
	assert.Equal(t, []string{"V3"}, saleIDs(Apply(rows, specs...)))

	specs, _ = BuildSales(domain.SalesFilter{Products: []string{"Chá"}, Search: "CH"})
	assert.Equal(t, []string{"V2", "V3", "V4"}, saleIDs(Apply(rows, specs...)))
}
