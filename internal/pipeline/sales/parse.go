package sales

import (
	"fmt"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

func lookup(t *source.Table, aliases []string, required bool) (int, error) {
	idx := t.Column(aliases...)
	if idx < 0 && required {
		return -1, &domain.ParseError{File: t.File, Column: aliases[0]}
	}
	return idx, nil
}

func rejected(t *source.Table, row int, format string, args ...interface{}) domain.ValidationWarning {
	return domain.ValidationWarning{
		Kind:    domain.WarnRejectedRow,
		Message: "row rejected: " + fmt.Sprintf(format, args...),
		File:    t.File,
		Line:    t.Line(row),
	}
}

// ParseSales parses the sales table. Dates are read day-first; an unparseable date
// keeps the sale with a nil date and a warning. Malformed numbers reject the row.
func ParseSales(t *source.Table, layouts []string) ([]domain.Sale, []domain.ValidationWarning, error) {
	sales, _, warnings, err := parseSaleRows(t, layouts)
	return sales, warnings, err
}

// parseSaleRows also returns the table row each accepted sale came from
func parseSaleRows(t *source.Table, layouts []string) ([]domain.Sale, []int, []domain.ValidationWarning, error) {
	var idxSale, idxProduct, idxStore, idxDate, idxQty, idxTotal int
	for _, c := range []struct {
		aliases []string
		idx     *int
	}{
		{colSaleID, &idxSale},
		{colProductID, &idxProduct},
		{colStoreID, &idxStore},
		{colSaleDate, &idxDate},
		{colQuantity, &idxQty},
		{colTotalValue, &idxTotal},
	} {
		i, err := lookup(t, c.aliases, true)
		if err != nil {
			return nil, nil, nil, err
		}
		*c.idx = i
	}
	idxUnit, _ := lookup(t, colUnitValue, false)
	idxPayment, _ := lookup(t, colPaymentMethod, false)
	idxChannel, _ := lookup(t, colChannel, false)

	var warnings []domain.ValidationWarning
	sales := make([]domain.Sale, 0, len(t.Rows))
	origin := make([]int, 0, len(t.Rows))
	for i := range t.Rows {
		productID := t.Cell(i, idxProduct)
		if productID == "" {
			warnings = append(warnings, rejected(t, i, "empty %s", colProductID[0]))
			continue
		}

		qty, _, err := source.ParseInt(t.Cell(i, idxQty))
		if err != nil || qty < 0 {
			warnings = append(warnings, rejected(t, i, "%s %q is not a non-negative integer", colQuantity[0], t.Cell(i, idxQty)))
			continue
		}
		total, _, err := source.ParseDecimal(t.Cell(i, idxTotal))
		if err != nil {
			warnings = append(warnings, rejected(t, i, "%s: %v", colTotalValue[0], err))
			continue
		}
		unit, _, err := source.ParseDecimal(t.Cell(i, idxUnit))
		if err != nil {
			warnings = append(warnings, rejected(t, i, "%s: %v", colUnitValue[0], err))
			continue
		}

		date, err := source.ParseDate(t.Cell(i, idxDate), layouts)
		if err != nil {
			warnings = append(warnings, domain.ValidationWarning{
				Kind:    domain.WarnUnparseableDate,
				Message: fmt.Sprintf("%s: %v, treated as empty", colSaleDate[0], err),
				File:    t.File,
				Line:    t.Line(i),
			})
		}

		sales = append(sales, domain.Sale{
			SaleID:        t.Cell(i, idxSale),
			ProductID:     productID,
			StoreID:       t.Cell(i, idxStore),
			SaleDate:      date,
			Quantity:      qty,
			UnitValue:     unit,
			TotalValue:    total,
			PaymentMethod: t.Cell(i, idxPayment),
			Channel:       t.Cell(i, idxChannel),
		})
		origin = append(origin, i)
	}

	return sales, origin, warnings, nil
}

// JoinSales left-joins sales with products and derives the calendar fields.
// Sales of unknown products are kept with empty product attributes.
func JoinSales(sales []domain.Sale, products []domain.Product) []domain.SalesRow {
	byID := make(map[string]domain.Product, len(products))
	for _, p := range products {
		if _, ok := byID[p.ID]; !ok {
			byID[p.ID] = p
		}
	}

	rows := make([]domain.SalesRow, 0, len(sales))
	for _, s := range sales {
		row := saleRow(s)
		if p, ok := byID[s.ProductID]; ok {
			row.ProductName = p.Name
			row.Category = p.Category
			row.Brand = p.Brand
		}
		rows = append(rows, withCalendar(row))
	}
	return rows
}

func saleRow(s domain.Sale) domain.SalesRow {
	return domain.SalesRow{
		SaleID:        s.SaleID,
		ProductID:     s.ProductID,
		StoreID:       s.StoreID,
		SaleDate:      s.SaleDate,
		Quantity:      s.Quantity,
		UnitValue:     s.UnitValue,
		TotalValue:    s.TotalValue,
		PaymentMethod: s.PaymentMethod,
		Channel:       s.Channel,
	}
}

func withCalendar(row domain.SalesRow) domain.SalesRow {
	if row.SaleDate != nil {
		row.Year = row.SaleDate.Year()
		row.Month = int(row.SaleDate.Month())
		row.YearMonth = row.SaleDate.Format("2006-01")
	}
	return row
}

// ParseSalesView parses a previously exported sales view back into rows, reading
// the attached product columns instead of joining. ano, mes and ano_mes are
// derived again from data_venda.
func ParseSalesView(t *source.Table, layouts []string) ([]domain.SalesRow, []domain.ValidationWarning, error) {
	sales, origin, warnings, err := parseSaleRows(t, layouts)
	if err != nil {
		return nil, nil, err
	}
	idxName, _ := lookup(t, colProductName, false)
	idxCategory, _ := lookup(t, colCategory, false)
	idxBrand, _ := lookup(t, colBrand, false)

	rows := make([]domain.SalesRow, len(sales))
	for k, s := range sales {
		row := saleRow(s)
		row.ProductName = t.Cell(origin[k], idxName)
		row.Category = t.Cell(origin[k], idxCategory)
		row.Brand = t.Cell(origin[k], idxBrand)
		rows[k] = withCalendar(row)
	}
	return rows, warnings, nil
}
