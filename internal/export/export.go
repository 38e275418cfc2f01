// Package export serialises dashboard views to delimited text.
package export

import (
	"bytes"
	"context"
	"encoding/csv"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strconv"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/inventory"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/sales"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/storage"
	"github.com/andresuchdata/fcd-dashboard/backend-go/pkg/logger"
)

const (
	InventoryPrefix = "estoque_filtrado"
	SalesPrefix     = "vendas_filtradas"

	ContentType = "text/csv; charset=utf-8"
	dateLayout  = "2006-01-02"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// FileName returns <prefix>_<YYYYMMDD_HHMMSS>.csv
func FileName(prefix string, now time.Time) string {
	return fmt.Sprintf("%s_%s.csv", prefix, now.Format("20060102_150405"))
}

// WriteCSV writes a UTF-8 BOM, the header and the records using delimiter.
func WriteCSV(w io.Writer, delimiter rune, header []string, records [][]string) error {
	if _, err := w.Write(utf8BOM); err != nil {
		return fmt.Errorf("write bom: %w", err)
	}

	cw := csv.NewWriter(w)
	if delimiter != 0 {
		cw.Comma = delimiter
	}
	if err := cw.Write(header); err != nil {
		return fmt.Errorf("write header: %w", err)
	}
	if err := cw.WriteAll(records); err != nil {
		return fmt.Errorf("write records: %w", err)
	}
	return nil
}

// formatDate writes plain days as yyyy-mm-dd and anything with a time of day as
// RFC3339, so that re-reading an export yields the same instant.
func formatDate(t *time.Time) string {
	if t == nil {
		return ""
	}
	if t.Equal(source.Day(*t)) {
		return t.Format(dateLayout)
	}
	return t.Format(time.RFC3339Nano)
}

// InventoryRecords maps rows to inventory.ExportHeader columns
func InventoryRecords(rows []domain.InventoryRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		records = append(records, []string{
			r.ProductID,
			r.ProductName,
			r.Category,
			r.Brand,
			strconv.Itoa(r.Quantity),
			strconv.Itoa(r.Minimum),
			r.UnitPrice.String(),
			r.Location,
			formatDate(r.ReferenceDate),
			r.Status().Label(),
			strconv.Itoa(r.Difference()),
		})
	}
	return records
}

// SalesRecords maps rows to sales.ExportHeader columns
func SalesRecords(rows []domain.SalesRow) [][]string {
	records := make([][]string, 0, len(rows))
	for _, r := range rows {
		year, month := "", ""
		if r.SaleDate != nil {
			year, month = strconv.Itoa(r.Year), strconv.Itoa(r.Month)
		}
		records = append(records, []string{
			r.SaleID,
			formatDate(r.SaleDate),
			r.StoreID,
			r.ProductID,
			r.ProductName,
			r.Category,
			r.Brand,
			strconv.Itoa(r.Quantity),
			r.UnitValue.String(),
			r.TotalValue.String(),
			r.PaymentMethod,
			r.Channel,
			year,
			month,
			r.YearMonth,
		})
	}
	return records
}

// Result describes a written export
type Result struct {
	FileName string `json:"file_name"`
	Path     string `json:"path,omitempty"`
	URL      string `json:"url,omitempty"`
	Rows     int    `json:"rows"`
	Bytes    int    `json:"bytes"`
}

// Exporter writes exports to a directory and optionally uploads them.
type Exporter struct {
	dir       string
	delimiter rune
	storage   storage.ObjectStorage
	now       func() time.Time
}

// NewExporter creates a new Exporter. A nil store disables uploads.
func NewExporter(dir string, delimiter rune, store storage.ObjectStorage) *Exporter {
	return &Exporter{
		dir:       dir,
		delimiter: delimiter,
		storage:   store,
		now:       time.Now,
	}
}

// Inventory renders rows as an inventory export
func (e *Exporter) Inventory(ctx context.Context, rows []domain.InventoryRow) (*Result, []byte, error) {
	return e.write(ctx, InventoryPrefix, inventory.ExportHeader, InventoryRecords(rows))
}

// Sales renders rows as a sales export
func (e *Exporter) Sales(ctx context.Context, rows []domain.SalesRow) (*Result, []byte, error) {
	return e.write(ctx, SalesPrefix, sales.ExportHeader, SalesRecords(rows))
}

func (e *Exporter) write(ctx context.Context, prefix string, header []string, records [][]string) (*Result, []byte, error) {
	var buf bytes.Buffer
	if err := WriteCSV(&buf, e.delimiter, header, records); err != nil {
		return nil, nil, err
	}
	data := buf.Bytes()

	res := &Result{
		FileName: FileName(prefix, e.now()),
		Rows:     len(records),
		Bytes:    len(data),
	}

	if e.dir != "" {
		if err := os.MkdirAll(e.dir, 0o755); err != nil {
			return nil, nil, fmt.Errorf("create export dir %s: %w", e.dir, err)
		}
		res.Path = filepath.Join(e.dir, res.FileName)
		if err := os.WriteFile(res.Path, data, 0o644); err != nil {
			return nil, nil, fmt.Errorf("write export %s: %w", res.Path, err)
		}
	}

	if e.storage != nil {
		if err := e.storage.UploadObject(ctx, res.FileName, data, ContentType); err != nil {
			return nil, nil, err
		}
		res.URL = e.storage.URL(res.FileName)
	}

	logger.Log.Info().
		Str("file", res.FileName).
		Int("rows", res.Rows).
		Str("url", res.URL).
		Msg("export written")

	return res, data, nil
}
