package main

import (
	"encoding/json"
	"fmt"
	"io"
	"path/filepath"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/export"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/storage"
	"github.com/urfave/cli/v2"
)

func printJSON(w io.Writer, v interface{}) error {
	enc := json.NewEncoder(w)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}

func printWarnings(w io.Writer, warnings []domain.ValidationWarning) {
	for _, warn := range warnings {
		fmt.Fprintf(w, "warning: %s\n", warn.String())
	}
}

func formatDay(t *time.Time) string {
	if t == nil {
		return "-"
	}
	return t.Format(time.DateOnly)
}

func runResolve(c *cli.Context) error {
	a := getApp(c)
	statuses := []service.SourceStatus{a.Inventory.Source(c.Context), a.Sales.Source(c.Context)}
	if c.Bool("json") {
		return printJSON(c.App.Writer, map[string]interface{}{"dirs": a.Resolver.Dirs(), "sources": statuses})
	}

	w := c.App.Writer
	fmt.Fprintln(w, "Candidate directories:")
	for i, dir := range a.Resolver.Dirs() {
		fmt.Fprintf(w, "  %d. %s\n", i+1, dir)
	}
	for _, st := range statuses {
		if st.Error != "" {
			fmt.Fprintf(w, "%s: %s\n", st.Pipeline, st.Error)
			continue
		}
		fmt.Fprintf(w, "%s: %s\n", st.Pipeline, st.Resolution.Dir)
		for _, f := range st.Files {
			fmt.Fprintf(w, "  %-9s %s (%d bytes, %s)\n", f.Name, f.Path, f.Size, f.ModTime.Format(time.RFC3339))
		}
	}
	return nil
}

func runInventory(c *cli.Context) error {
	a := getApp(c)
	f, warnings, err := inventoryFilter(c)
	if err != nil {
		return err
	}

	summary, err := a.Inventory.Summary(c.Context, f)
	if err != nil {
		return err
	}
	breakdown, err := a.Inventory.Breakdown(c.Context, f, c.Int("limit"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c.App.Writer, map[string]interface{}{"summary": summary, "breakdown": breakdown, "warnings": warnings})
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Reference date:       %s\n", formatDay(summary.ReferenceDate))
	fmt.Fprintf(w, "Rows:                 %s of %s\n", analytics.FormatCount(summary.TotalRows), analytics.FormatCount(summary.BaseRows))
	fmt.Fprintf(w, "Products:             %s\n", analytics.FormatCount(summary.UniqueProducts))
	fmt.Fprintf(w, "Below minimum:        %s\n", analytics.FormatCount(summary.BelowMinimum))
	fmt.Fprintf(w, "Total value:          %s\n", analytics.FormatBRL(summary.TotalValue))
	fmt.Fprintf(w, "Total deficit:        %s\n", analytics.FormatCount(summary.TotalDeficit))
	fmt.Fprintf(w, "Replenishment cost:   %s\n", analytics.FormatBRL(summary.ReplenishmentCost))
	if len(summary.AlertsByCategory) > 0 {
		fmt.Fprintln(w, "Alerts by category:")
		for _, share := range summary.AlertsByCategory {
			fmt.Fprintf(w, "  %-24s %6d %6.2f%%\n", share.Category, share.Count, share.Percent)
		}
	}
	if len(breakdown.Critical) > 0 {
		fmt.Fprintln(w, "Most critical:")
		for _, r := range breakdown.Critical {
			fmt.Fprintf(w, "  %-10s %-30s %6d %6d %6d\n", r.ProductID, r.ProductName, r.Quantity, r.Minimum, r.Difference())
		}
	}
	printWarnings(c.App.ErrWriter, summary.Warnings)
	printWarnings(c.App.ErrWriter, warnings)
	return nil
}

func runSales(c *cli.Context) error {
	a := getApp(c)
	f, err := salesFilter(c)
	if err != nil {
		return err
	}

	summary, err := a.Sales.Summary(c.Context, f, c.Int("top"))
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c.App.Writer, summary)
	}

	w := c.App.Writer
	fmt.Fprintf(w, "Period:        %s .. %s\n", formatDay(summary.DateFrom), formatDay(summary.DateTo))
	fmt.Fprintf(w, "Sales:         %s of %s\n", analytics.FormatCount(summary.TotalRows), analytics.FormatCount(summary.BaseRows))
	fmt.Fprintf(w, "Revenue:       %s\n", analytics.FormatBRL(summary.TotalRevenue))
	if len(summary.TopProducts) > 0 {
		fmt.Fprintln(w, "Top products:")
		for i, p := range summary.TopProducts {
			fmt.Fprintf(w, "  %2d. %-30s %s\n", i+1, p.ProductName, analytics.FormatCount(p.Quantity))
		}
	}
	if len(summary.Monthly) > 0 {
		fmt.Fprintln(w, "Monthly quantity:")
		for _, m := range summary.Monthly {
			fmt.Fprintf(w, "  %s %s\n", m.Label, analytics.FormatCount(m.Quantity))
		}
	}
	printWarnings(c.App.ErrWriter, summary.Warnings)
	return nil
}

func printExport(c *cli.Context, res *export.Result) error {
	if c.Bool("json") {
		return printJSON(c.App.Writer, res)
	}
	location := res.Path
	if location == "" {
		location = res.FileName
	}
	fmt.Fprintf(c.App.Writer, "%s rows written to %s\n", analytics.FormatCount(res.Rows), location)
	if res.URL != "" {
		fmt.Fprintf(c.App.Writer, "uploaded to %s\n", res.URL)
	}
	return nil
}

func runExportInventory(c *cli.Context) error {
	f, warnings, err := inventoryFilter(c)
	if err != nil {
		return err
	}
	res, _, err := getApp(c).Inventory.Export(c.Context, f)
	if err != nil {
		return err
	}
	printWarnings(c.App.ErrWriter, warnings)
	return printExport(c, res)
}

func runExportSales(c *cli.Context) error {
	f, err := salesFilter(c)
	if err != nil {
		return err
	}
	res, _, err := getApp(c).Sales.Export(c.Context, f)
	if err != nil {
		return err
	}
	return printExport(c, res)
}

// destDir returns --dest or the first candidate source directory
func destDir(c *cli.Context) (string, error) {
	if dest := c.String("dest"); dest != "" {
		return dest, nil
	}
	dirs := getApp(c).Resolver.Dirs()
	if len(dirs) == 0 {
		return "", fmt.Errorf("no source directory configured, pass --dest")
	}
	return dirs[0], nil
}

func runSync(c *cli.Context) error {
	a := getApp(c)
	dest, err := destDir(c)
	if err != nil {
		return err
	}
	if id := c.String("folder-id"); id != "" {
		a.Config.Drive.FolderID = id
	}

	files, err := a.SyncDrive(c.Context, dest)
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c.App.Writer, files)
	}
	for _, f := range files {
		fmt.Fprintf(c.App.Writer, "%s -> %s (%d bytes)\n", f.Name, f.Path, f.Bytes)
	}
	return nil
}

func runPull(c *cli.Context) error {
	a := getApp(c)
	if a.Storage == nil {
		return fmt.Errorf("object storage is disabled, set STORAGE_ENABLED=true")
	}
	dest, err := destDir(c)
	if err != nil {
		return err
	}

	paths, err := storage.PullSources(c.Context, a.Storage, c.String("prefix"), dest, a.Requirements())
	if err != nil {
		return err
	}
	if c.Bool("json") {
		return printJSON(c.App.Writer, paths)
	}
	for _, p := range paths {
		fmt.Fprintf(c.App.Writer, "%s\n", filepath.ToSlash(p))
	}
	return nil
}
