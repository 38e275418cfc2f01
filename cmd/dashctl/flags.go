package main

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/filter"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/shopspring/decimal"
	"github.com/urfave/cli/v2"
)

var flagDateLayouts = []string{time.DateOnly, "02/01/2006", "2/1/2006"}

func inventoryFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringFlag{Name: "date", Usage: "Reference date (YYYY-MM-DD or DD/MM/YYYY), latest when empty"},
		&cli.StringSliceFlag{Name: "category", Usage: "Categories to include"},
		&cli.StringSliceFlag{Name: "brand", Usage: "Brands to include"},
		&cli.StringSliceFlag{Name: "location", Usage: "Locations to include"},
		&cli.StringFlag{Name: "status", Usage: "Stock status: below_minimum or adequate"},
		&cli.StringFlag{Name: "price-min", Usage: "Minimum unit price"},
		&cli.StringFlag{Name: "price-max", Usage: "Maximum unit price"},
		&cli.StringFlag{Name: "q", Usage: "Product name search"},
		&cli.IntFlag{Name: "limit", Usage: "Rows in the critical ranking", Value: analytics.DefaultChartLimit},
	}
}

func salesFlags() []cli.Flag {
	return []cli.Flag{
		&cli.StringSliceFlag{Name: "store", Usage: "Stores to include"},
		&cli.StringSliceFlag{Name: "product", Usage: "Product names to include"},
		&cli.StringSliceFlag{Name: "category", Usage: "Categories to include"},
		&cli.StringSliceFlag{Name: "brand", Usage: "Brands to include"},
		&cli.StringSliceFlag{Name: "channel", Usage: "Sales channels to include"},
		&cli.StringSliceFlag{Name: "payment", Usage: "Payment methods to include"},
		&cli.StringFlag{Name: "from", Usage: "First sale day (YYYY-MM-DD or DD/MM/YYYY)"},
		&cli.StringFlag{Name: "to", Usage: "Last sale day (YYYY-MM-DD or DD/MM/YYYY)"},
		&cli.StringFlag{Name: "q", Usage: "Product name search"},
		&cli.IntFlag{Name: "top", Usage: "Size of the top products ranking", Value: analytics.DefaultTopN},
	}
}

func dateFlag(c *cli.Context, name string) (*time.Time, error) {
	raw := strings.TrimSpace(c.String(name))
	if raw == "" {
		return nil, nil
	}
	d, err := source.ParseDate(raw, flagDateLayouts)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return d, nil
}

func decimalFlag(c *cli.Context, name string) (*decimal.Decimal, error) {
	raw := strings.TrimSpace(c.String(name))
	if raw == "" {
		return nil, nil
	}
	d, _, err := source.ParseDecimal(raw)
	if err != nil {
		return nil, fmt.Errorf("--%s: %w", name, err)
	}
	return &d, nil
}

// Unlike the HTTP API, malformed flag values are errors rather than warnings.
func inventoryFilter(c *cli.Context) (domain.InventoryFilter, []domain.ValidationWarning, error) {
	f := domain.InventoryFilter{
		Categories: filter.Selection(c.StringSlice("category")),
		Brands:     filter.Selection(c.StringSlice("brand")),
		Locations:  filter.Selection(c.StringSlice("location")),
		Search:     strings.TrimSpace(c.String("q")),
	}
	var err error
	if f.ReferenceDate, err = dateFlag(c, "date"); err != nil {
		return f, nil, err
	}
	if f.PriceMin, err = decimalFlag(c, "price-min"); err != nil {
		return f, nil, err
	}
	if f.PriceMax, err = decimalFlag(c, "price-max"); err != nil {
		return f, nil, err
	}
	status, warnings := filter.ParseStatus(c.String("status"))
	f.Status = status
	return f, warnings, nil
}

func salesFilter(c *cli.Context) (domain.SalesFilter, error) {
	f := domain.SalesFilter{
		Stores:         filter.Selection(c.StringSlice("store")),
		Products:       filter.Selection(c.StringSlice("product")),
		Categories:     filter.Selection(c.StringSlice("category")),
		Brands:         filter.Selection(c.StringSlice("brand")),
		Channels:       filter.Selection(c.StringSlice("channel")),
		PaymentMethods: filter.Selection(c.StringSlice("payment")),
		Search:         strings.TrimSpace(c.String("q")),
	}
	var err error
	if f.DateFrom, err = dateFlag(c, "from"); err != nil {
		return f, err
	}
	if f.DateTo, err = dateFlag(c, "to"); err != nil {
		return f, err
	}
	return f, nil
}
