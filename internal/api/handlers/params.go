package handlers

import (
	"fmt"
	"strconv"
	"strings"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/filter"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/gin-gonic/gin"
	"github.com/shopspring/decimal"
)

// queryDateLayouts are accepted for date parameters, ISO first
var queryDateLayouts = []string{time.DateOnly, "02/01/2006", "2/1/2006"}

// queryList supports repeated params and comma separated values:
//
//	?category=A&category=B
//	?category=A,B
//
// A repeated param is taken verbatim, so values may contain commas. A single value
// is split on commas; `\,` keeps a literal comma.
func queryList(c *gin.Context, names ...string) []string {
	var out []string
	seen := make(map[string]struct{})
	add := func(v string) {
		v = strings.TrimSpace(v)
		if v == "" {
			return
		}
		if _, ok := seen[v]; ok {
			return
		}
		seen[v] = struct{}{}
		out = append(out, v)
	}

	for _, name := range names {
		values := c.QueryArray(name)
		if len(values) == 1 {
			for _, part := range splitEscaped(values[0]) {
				add(part)
			}
			continue
		}
		for _, v := range values {
			add(v)
		}
	}
	return out
}

func splitEscaped(v string) []string {
	var (
		parts []string
		cur   strings.Builder
	)
	for i := 0; i < len(v); i++ {
		switch {
		case v[i] == '\\' && i+1 < len(v) && v[i+1] == ',':
			cur.WriteByte(',')
			i++
		case v[i] == ',':
			parts = append(parts, cur.String())
			cur.Reset()
		default:
			cur.WriteByte(v[i])
		}
	}
	return append(parts, cur.String())
}

func unparseable(param, value string, err error) domain.ValidationWarning {
	return domain.ValidationWarning{
		Kind:    domain.WarnUnparseableFilter,
		Message: fmt.Sprintf("%s=%q ignored: %v", param, value, err),
	}
}

func queryDate(c *gin.Context, param string, warnings *[]domain.ValidationWarning) *time.Time {
	value := strings.TrimSpace(c.Query(param))
	if value == "" {
		return nil
	}
	d, err := source.ParseDate(value, queryDateLayouts)
	if err != nil {
		*warnings = append(*warnings, unparseable(param, value, err))
		return nil
	}
	return d
}

func queryDecimal(c *gin.Context, param string, warnings *[]domain.ValidationWarning) *decimal.Decimal {
	value := strings.TrimSpace(c.Query(param))
	if value == "" {
		return nil
	}
	d, null, err := source.ParseDecimal(value)
	if err != nil {
		*warnings = append(*warnings, unparseable(param, value, err))
		return nil
	}
	if null {
		return nil
	}
	return &d
}

func queryInt(c *gin.Context, param string, fallback int) int {
	if n, err := strconv.Atoi(strings.TrimSpace(c.Query(param))); err == nil && n >= 0 {
		return n
	}
	return fallback
}

func parsePage(c *gin.Context) service.Page {
	return service.Page{
		Limit:  queryInt(c, "limit", 0),
		Offset: queryInt(c, "offset", 0),
	}
}

// parseInventoryFilter reads the inventory filter from the query string.
// Unparseable values are ignored and reported as warnings.
func parseInventoryFilter(c *gin.Context) (domain.InventoryFilter, []domain.ValidationWarning) {
	var warnings []domain.ValidationWarning
	f := domain.InventoryFilter{
		Categories: filter.Selection(queryList(c, "category", "categoria")),
		Brands:     filter.Selection(queryList(c, "brand", "marca")),
		Locations:  filter.Selection(queryList(c, "location", "localizacao")),
		Search:     strings.TrimSpace(c.Query("q")),
	}
	f.ReferenceDate = queryDate(c, "date", &warnings)
	f.PriceMin = queryDecimal(c, "price_min", &warnings)
	f.PriceMax = queryDecimal(c, "price_max", &warnings)

	status, statusWarnings := filter.ParseStatus(c.Query("status"))
	f.Status = status
	warnings = append(warnings, statusWarnings...)

	return f, warnings
}

func parseSalesFilter(c *gin.Context) (domain.SalesFilter, []domain.ValidationWarning) {
	var warnings []domain.ValidationWarning
	f := domain.SalesFilter{
		Stores:         filter.Selection(queryList(c, "store", "loja")),
		Products:       filter.Selection(queryList(c, "product", "produto")),
		Categories:     filter.Selection(queryList(c, "category", "categoria")),
		Brands:         filter.Selection(queryList(c, "brand", "marca")),
		Channels:       filter.Selection(queryList(c, "channel", "canal")),
		PaymentMethods: filter.Selection(queryList(c, "payment", "forma_pagamento")),
		Search:         strings.TrimSpace(c.Query("q")),
	}
	f.DateFrom = queryDate(c, "date_from", &warnings)
	f.DateTo = queryDate(c, "date_to", &warnings)
	return f, warnings
}
