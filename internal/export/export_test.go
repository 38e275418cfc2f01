package export

import (
	"bytes"
	"context"
	"os"
	"path/filepath"
	"strings"
	"testing"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/inventory"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/sales"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/storage"
	"github.com/shopspring/decimal"
	"github.com/stretchr/testify/assert"
	"github.com/stretchr/testify/require"
)

type memoryStorage struct {
	uploads map[string][]byte
}

func (m *memoryStorage) ListObjects(context.Context, string) ([]storage.ObjectInfo, error) {
	return nil, nil
}

func (m *memoryStorage) DownloadObject(context.Context, string, string) error { return nil }

func (m *memoryStorage) UploadObject(_ context.Context, key string, data []byte, _ string) error {
	if m.uploads == nil {
		m.uploads = map[string][]byte{}
	}
	m.uploads[key] = data
	return nil
}

func (m *memoryStorage) URL(key string) string { return "mem://" + key }

func sampleRows() []domain.InventoryRow {
	ref := time.Date(2024, 2, 1, 0, 0, 0, 0, time.UTC)
	return []domain.InventoryRow{
		{ProductID: "P1", ProductName: "Parafuso, sextavado", Category: "Ferragens", Brand: "Acme", UnitPrice: decimal.RequireFromString("10.5"), Quantity: 5, Minimum: 10, Location: "X", ReferenceDate: &ref},
		{ProductID: "P1", ProductName: "Parafuso, sextavado", Category: "Ferragens", Brand: "Acme", UnitPrice: decimal.RequireFromString("10.5"), Quantity: 3, Minimum: 10, Location: "Y", ReferenceDate: &ref},
		{ProductID: "P2", ProductName: "Martelo \"pro\"", Category: "Ferramentas", UnitPrice: decimal.RequireFromString("0"), Location: "Deposito"},
	}
}

func assertSameInventoryRows(t *testing.T, want, got []domain.InventoryRow) {
	t.Helper()
	require.Len(t, got, len(want))
	for i := range want {
		w, g := want[i], got[i]
		assert.Equal(t, w.ProductID, g.ProductID, "row %d", i)
		assert.Equal(t, w.ProductName, g.ProductName, "row %d", i)
		assert.Equal(t, w.Category, g.Category, "row %d", i)
		assert.Equal(t, w.Brand, g.Brand, "row %d", i)
		assert.Equal(t, w.Quantity, g.Quantity, "row %d", i)
		assert.Equal(t, w.Minimum, g.Minimum, "row %d", i)
		assert.Equal(t, w.Location, g.Location, "row %d", i)
		assert.True(t, w.UnitPrice.Equal(g.UnitPrice), "row %d: price %s != %s", i, w.UnitPrice, g.UnitPrice)
		assertSameTime(t, w.ReferenceDate, g.ReferenceDate)
	}
}

func assertSameTime(t *testing.T, want, got *time.Time) {
	t.Helper()
	if want == nil {
		assert.Nil(t, got)
		return
	}
	require.NotNil(t, got)
	assert.True(t, want.Equal(*got), "time %s != %s", want, got)
}

func TestFileName(t *testing.T) {
	now := time.Date(2024, 3, 9, 7, 5, 2, 0, time.UTC)
	assert.Equal(t, "estoque_filtrado_20240309_070502.csv", FileName(InventoryPrefix, now))
	assert.Equal(t, "vendas_filtradas_20240309_070502.csv", FileName(SalesPrefix, now))
}

func TestInventoryRoundTrip(t *testing.T) {
	rows := sampleRows()

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ';', inventory.ExportHeader, InventoryRecords(rows)))
	assert.True(t, bytes.HasPrefix(buf.Bytes(), utf8BOM))

	tbl, err := source.ReadCSV(bytes.NewReader(buf.Bytes()), "export.csv", source.ReadOptions{Delimiter: ';'})
	require.NoError(t, err)
	assert.Equal(t, inventory.ExportHeader, tbl.Header)

	parsed, warnings, err := inventory.ParseInventoryView(tbl, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	assertSameInventoryRows(t, rows, parsed)
}

func TestInventoryRoundTripKeepsPrecision(t *testing.T) {
	ref := time.Date(2024, 2, 1, 14, 30, 0, 0, time.UTC)
	rows := []domain.InventoryRow{
		{ProductID: "P1", ProductName: "Parafuso", Category: "Ferragens", UnitPrice: decimal.RequireFromString("10.125"), Quantity: 100, Minimum: 1, ReferenceDate: &ref},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ',', inventory.ExportHeader, InventoryRecords(rows)))
	tbl, err := source.ReadCSV(bytes.NewReader(buf.Bytes()), "export.csv", source.ReadOptions{Delimiter: ','})
	require.NoError(t, err)

	parsed, _, err := inventory.ParseInventoryView(tbl, nil)
	require.NoError(t, err)
	assertSameInventoryRows(t, rows, parsed)
	assert.True(t, decimal.RequireFromString("1012.5").Equal(parsed[0].UnitPrice.Mul(decimal.NewFromInt(int64(parsed[0].Quantity)))))
}

func TestSalesRoundTrip(t *testing.T) {
	day := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	at := time.Date(2024, 3, 9, 18, 45, 10, 0, time.UTC)
	rows := []domain.SalesRow{
		{SaleID: "V1", SaleDate: &day, StoreID: "L1", ProductID: "P1", ProductName: "Arroz", Category: "Mercearia", Brand: "Tio", Quantity: 2, UnitValue: decimal.RequireFromString("12.345"), TotalValue: decimal.RequireFromString("24.69"), PaymentMethod: "Pix", Channel: "Loja", Year: 2024, Month: 2, YearMonth: "2024-02"},
		{SaleID: "V2", SaleDate: &at, StoreID: "L2", ProductID: "P9", Quantity: 1, TotalValue: decimal.RequireFromString("3"), Year: 2024, Month: 3, YearMonth: "2024-03"},
		{SaleID: "V3", ProductID: "P1", ProductName: "Arroz"},
	}

	var buf bytes.Buffer
	require.NoError(t, WriteCSV(&buf, ';', sales.ExportHeader, SalesRecords(rows)))
	tbl, err := source.ReadCSV(bytes.NewReader(buf.Bytes()), "vendas.csv", source.ReadOptions{Delimiter: ';'})
	require.NoError(t, err)

	parsed, warnings, err := sales.ParseSalesView(tbl, nil)
	require.NoError(t, err)
	assert.Empty(t, warnings)
	require.Len(t, parsed, len(rows))
	for i := range rows {
		w, g := rows[i], parsed[i]
		assert.Equal(t, w.SaleID, g.SaleID)
		assert.Equal(t, w.StoreID, g.StoreID)
		assert.Equal(t, w.ProductID, g.ProductID)
		assert.Equal(t, w.ProductName, g.ProductName)
		assert.Equal(t, w.Category, g.Category)
		assert.Equal(t, w.Brand, g.Brand)
		assert.Equal(t, w.Quantity, g.Quantity)
		assert.True(t, w.UnitValue.Equal(g.UnitValue), "unit %s != %s", w.UnitValue, g.UnitValue)
		assert.True(t, w.TotalValue.Equal(g.TotalValue), "total %s != %s", w.TotalValue, g.TotalValue)
		assert.Equal(t, w.PaymentMethod, g.PaymentMethod)
		assert.Equal(t, w.Channel, g.Channel)
		assert.Equal(t, w.Year, g.Year)
		assert.Equal(t, w.Month, g.Month)
		assert.Equal(t, w.YearMonth, g.YearMonth)
		assertSameTime(t, w.SaleDate, g.SaleDate)
	}
}

func TestInventoryRecordsDerivedColumns(t *testing.T) {
	records := InventoryRecords(sampleRows())
	assert.Equal(t, []string{"P1", "Parafuso, sextavado", "Ferragens", "Acme", "5", "10", "10.5", "X", "2024-02-01", "Abaixo do Mínimo", "-5"}, records[0])
	assert.Equal(t, "Adequado", records[2][9])
	assert.Equal(t, "0", records[2][10])
}

func TestExporterWritesAndUploads(t *testing.T) {
	dir := filepath.Join(t.TempDir(), "exports")
	store := &memoryStorage{}
	e := NewExporter(dir, ',', store)
	e.now = func() time.Time { return time.Date(2024, 1, 2, 3, 4, 5, 0, time.UTC) }

	res, data, err := e.Inventory(context.Background(), sampleRows())
	require.NoError(t, err)
	assert.Equal(t, "estoque_filtrado_20240102_030405.csv", res.FileName)
	assert.Equal(t, 3, res.Rows)
	assert.Equal(t, "mem://"+res.FileName, res.URL)

	written, err := os.ReadFile(res.Path)
	require.NoError(t, err)
	assert.Equal(t, data, written)
	assert.Equal(t, data, store.uploads[res.FileName])
	assert.True(t, strings.HasPrefix(string(written), "\xEF\xBB\xBFproduto_id,"))
}

func TestSalesExport(t *testing.T) {
	day := time.Date(2024, 2, 5, 0, 0, 0, 0, time.UTC)
	e := NewExporter("", ';', nil)
	res, data, err := e.Sales(context.Background(), []domain.SalesRow{
		{SaleID: "V1", SaleDate: &day, Year: 2024, Month: 2, YearMonth: "2024-02", Quantity: 2, TotalValue: decimal.RequireFromString("5")},
		{SaleID: "V2"},
	})
	require.NoError(t, err)
	assert.Empty(t, res.Path)
	assert.Empty(t, res.URL)

	lines := strings.Split(strings.TrimSpace(string(data[3:])), "\n")
	require.Len(t, lines, 3)
	assert.True(t, strings.HasPrefix(lines[0], "venda_id;data_venda;"))
	assert.Equal(t, "V1;2024-02-05;;;;;;2;0;5;;;2024;2;2024-02", lines[1])
	assert.Equal(t, "V2;;;;;;;0;0;0;;;;;", lines[2])
}
