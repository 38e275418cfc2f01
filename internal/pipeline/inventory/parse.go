package inventory

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

// ParseProducts parses the products table. Rows without an identifier or with a
// malformed price are rejected; a repeated identifier keeps its first row.
func ParseProducts(t *source.Table, requirePrice bool) ([]domain.Product, []domain.ValidationWarning, error) {
	idxID, err := lookup(t, colProductID, true)
	if err != nil {
		return nil, nil, err
	}
	idxName, err := lookup(t, colProductName, true)
	if err != nil {
		return nil, nil, err
	}
	idxCategory, err := lookup(t, colCategory, true)
	if err != nil {
		return nil, nil, err
	}
	idxPrice, err := lookup(t, colUnitPrice, requirePrice)
	if err != nil {
		return nil, nil, err
	}
	idxBrand, _ := lookup(t, colBrand, false)
	idxLocation, _ := lookup(t, colLocation, false)

	var warnings []domain.ValidationWarning
	seen := make(map[string]struct{}, len(t.Rows))
	products := make([]domain.Product, 0, len(t.Rows))
	for i := range t.Rows {
		id := t.Cell(i, idxID)
		if id == "" {
			warnings = append(warnings, rejected(t, i, "empty %s", colProductID[0]))
			continue
		}

		p := domain.Product{
			ID:       id,
			Name:     t.Cell(i, idxName),
			Category: t.Cell(i, idxCategory),
			Brand:    t.Cell(i, idxBrand),
			Location: t.Cell(i, idxLocation),
		}
		if idxPrice >= 0 {
			price, _, err := source.ParseDecimal(t.Cell(i, idxPrice))
			if err != nil {
				warnings = append(warnings, rejected(t, i, "%s: %v", colUnitPrice[0], err))
				continue
			}
			if price.IsNegative() {
				warnings = append(warnings, rejected(t, i, "%s is negative", colUnitPrice[0]))
				continue
			}
			p.UnitPrice = price
		}

		if _, ok := seen[id]; ok {
			warnings = append(warnings, domain.ValidationWarning{
				Kind:    domain.WarnDuplicateProduct,
				Message: fmt.Sprintf("duplicate product %s ignored, first row kept", id),
				File:    t.File,
				Line:    t.Line(i),
			})
			continue
		}
		seen[id] = struct{}{}
		products = append(products, p)
	}

	return products, warnings, nil
}

// ParseStock parses the stock table. Empty quantity or minimum cells are null and
// become 0; malformed or negative ones reject the row. An unparseable reference date
// becomes nil with a warning.
func ParseStock(t *source.Table, layouts []string) ([]domain.StockRecord, []domain.ValidationWarning, error) {
	idxID, err := lookup(t, colProductID, true)
	if err != nil {
		return nil, nil, err
	}
	idxQty, err := lookup(t, colQuantity, true)
	if err != nil {
		return nil, nil, err
	}
	idxMin, err := lookup(t, colMinimum, true)
	if err != nil {
		return nil, nil, err
	}
	idxLocation, _ := lookup(t, colLocation, false)
	idxDate, _ := lookup(t, colReferenceDate, false)

	var warnings []domain.ValidationWarning
	records := make([]domain.StockRecord, 0, len(t.Rows))
	for i := range t.Rows {
		id := t.Cell(i, idxID)
		if id == "" {
			warnings = append(warnings, rejected(t, i, "empty %s", colProductID[0]))
			continue
		}

		qty, _, err := source.ParseInt(t.Cell(i, idxQty))
		if err != nil || qty < 0 {
			warnings = append(warnings, rejected(t, i, "%s %q is not a non-negative integer", colQuantity[0], t.Cell(i, idxQty)))
			continue
		}
		min, _, err := source.ParseInt(t.Cell(i, idxMin))
		if err != nil || min < 0 {
			warnings = append(warnings, rejected(t, i, "%s %q is not a non-negative integer", colMinimum[0], t.Cell(i, idxMin)))
			continue
		}

		rec := domain.StockRecord{
			ProductID: id,
			Quantity:  qty,
			Minimum:   min,
			Location:  t.Cell(i, idxLocation),
		}
		if idxDate >= 0 {
			date, err := source.ParseDate(t.Cell(i, idxDate), layouts)
			if err != nil {
				warnings = append(warnings, domain.ValidationWarning{
					Kind:    domain.WarnUnparseableDate,
					Message: fmt.Sprintf("%s: %v, treated as empty", colReferenceDate[0], err),
					File:    t.File,
					Line:    t.Line(i),
				})
			}
			rec.ReferenceDate = date
		}
		records = append(records, rec)
	}

	return records, warnings, nil
}

// Join left-joins products with stock on the product identifier. Every product yields
// at least one row; products without stock get Quantity = 0 and Minimum = 0.
// Stock rows for unknown products are dropped and reported in one warning.
func Join(products []domain.Product, stock []domain.StockRecord) ([]domain.InventoryRow, []domain.ValidationWarning) {
	byProduct := make(map[string][]int, len(stock))
	for i, s := range stock {
		byProduct[s.ProductID] = append(byProduct[s.ProductID], i)
	}

	rows := make([]domain.InventoryRow, 0, len(products)+len(stock))
	known := make(map[string]struct{}, len(products))
	for _, p := range products {
		known[p.ID] = struct{}{}
		base := domain.InventoryRow{
			ProductID:   p.ID,
			ProductName: p.Name,
			Category:    p.Category,
			Brand:       p.Brand,
			UnitPrice:   p.UnitPrice,
			Location:    p.Location,
		}

		matches := byProduct[p.ID]
		if len(matches) == 0 {
			rows = append(rows, base)
			continue
		}
		for _, idx := range matches {
			s := stock[idx]
			row := base
			row.Quantity = s.Quantity
			row.Minimum = s.Minimum
			row.ReferenceDate = s.ReferenceDate
			if s.Location != "" {
				row.Location = s.Location
			}
			rows = append(rows, row)
		}
	}

	var warnings []domain.ValidationWarning
	orphans := 0
	for _, s := range stock {
		if _, ok := known[s.ProductID]; !ok {
			orphans++
		}
	}
	if orphans > 0 {
		warnings = append(warnings, domain.ValidationWarning{
			Kind:    domain.WarnOrphanStock,
			Message: fmt.Sprintf("%d stock rows reference unknown products and were dropped", orphans),
		})
	}

	return rows, warnings
}

// ParseInventoryView parses a previously exported inventory view back into rows.
// Derived columns such as status and diferenca are ignored.
func ParseInventoryView(t *source.Table, layouts []string) ([]domain.InventoryRow, []domain.ValidationWarning, error) {
	products, err := parseProductCells(t)
	if err != nil {
		return nil, nil, err
	}
	stock, warnings, err := ParseStock(t, layouts)
	if err != nil {
		return nil, nil, err
	}
	if len(products) != len(stock) {
		return nil, nil, &domain.ParseError{File: t.File, Err: fmt.Errorf("%d product cells but %d stock cells after validation", len(products), len(stock))}
	}

	rows := make([]domain.InventoryRow, len(products))
	for i, p := range products {
		s := stock[i]
		rows[i] = domain.InventoryRow{
			ProductID:     p.ID,
			ProductName:   p.Name,
			Category:      p.Category,
			Brand:         p.Brand,
			UnitPrice:     p.UnitPrice,
			Quantity:      s.Quantity,
			Minimum:       s.Minimum,
			Location:      s.Location,
			ReferenceDate: s.ReferenceDate,
		}
	}
	return rows, warnings, nil
}

// parseProductCells reads product fields row by row without de-duplicating,
// since a joined view repeats a product once per stock row.
func parseProductCells(t *source.Table) ([]domain.Product, error) {
	idxID, err := lookup(t, colProductID, true)
	if err != nil {
		return nil, err
	}
	idxName, err := lookup(t, colProductName, true)
	if err != nil {
		return nil, err
	}
	idxCategory, err := lookup(t, colCategory, true)
	if err != nil {
		return nil, err
	}
	idxPrice, err := lookup(t, colUnitPrice, true)
	if err != nil {
		return nil, err
	}
	idxBrand, _ := lookup(t, colBrand, false)
	idxLocation, _ := lookup(t, colLocation, false)

	products := make([]domain.Product, 0, len(t.Rows))
	for i := range t.Rows {
		price, _, err := source.ParseDecimal(t.Cell(i, idxPrice))
		if err != nil {
			return nil, &domain.ParseError{File: t.File, Line: t.Line(i), Err: err}
		}
		products = append(products, domain.Product{
			ID:        t.Cell(i, idxID),
			Name:      t.Cell(i, idxName),
			Category:  t.Cell(i, idxCategory),
			Brand:     t.Cell(i, idxBrand),
			UnitPrice: price,
			Location:  t.Cell(i, idxLocation),
		})
	}
	return products, nil
}
