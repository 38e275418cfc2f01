package service

import (
	"context"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/analytics"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/dimension"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/export"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/filter"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/telemetry"
	"github.com/rs/zerolog/log"
)

type InventoryService struct {
	loader   DatasetLoader[domain.InventoryRow]
	cache    cache.DashboardCache
	exporter *export.Exporter
}

func NewInventoryService(loader DatasetLoader[domain.InventoryRow], cacheImpl cache.DashboardCache, exporter *export.Exporter) *InventoryService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &InventoryService{loader: loader, cache: cacheImpl, exporter: exporter}
}

// InventoryView is the outcome of applying a filter to the inventory dataset
type InventoryView struct {
	Dataset       *pipeline.Dataset[domain.InventoryRow]
	ReferenceDate *time.Time
	// Base holds the rows of the selected reference date, before the other filters
	Base     []domain.InventoryRow
	Rows     []domain.InventoryRow
	Warnings []domain.ValidationWarning
}

// View loads the dataset and applies f. Load failures are returned before any
// filtering takes place.
func (s *InventoryService) View(ctx context.Context, f domain.InventoryFilter) (*InventoryView, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	specs, selected, filterWarnings := filter.BuildInventory(ds.Rows, f)
	base := ds.Rows
	if selected != nil {
		dateSpec, _ := filter.SelectReferenceDate(ds.Rows, selected)
		base = filter.Apply(ds.Rows, dateSpec)
	}

	view := &InventoryView{
		Dataset:       ds,
		ReferenceDate: selected,
		Base:          base,
		Rows:          filter.Apply(ds.Rows, specs...),
		Warnings:      mergeWarnings(ds.Warnings, filterWarnings),
	}
	reportWarnings("inventory", filterWarnings)
	return view, nil
}

// InventoryDimensions are the selectable values for one reference date
type InventoryDimensions struct {
	dimension.Inventory
	ReferenceDate *time.Time `json:"reference_date,omitempty"`
}

// Dimensions returns the filter values. Reference dates come from the whole dataset,
// the other dimensions from the rows of the selected date.
func (s *InventoryService) Dimensions(ctx context.Context, date *time.Time) (*InventoryDimensions, error) {
	view, err := s.View(ctx, domain.InventoryFilter{ReferenceDate: date})
	if err != nil {
		return nil, err
	}

	dims := dimension.ForInventory(view.Base)
	dims.ReferenceDates = dimension.ReferenceDates(view.Dataset.Rows)
	return &InventoryDimensions{Inventory: dims, ReferenceDate: view.ReferenceDate}, nil
}

// Items returns a page of filtered rows and the filtered total
func (s *InventoryService) Items(ctx context.Context, f domain.InventoryFilter, page Page) ([]domain.InventoryRow, int, []domain.ValidationWarning, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, 0, nil, err
	}
	return paginate(view.Rows, page), len(view.Rows), view.Warnings, nil
}

// Summary computes the indicator cards, served from the cache when possible
func (s *InventoryService) Summary(ctx context.Context, f domain.InventoryFilter) (*domain.InventorySummary, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	if summary, ok, err := s.cache.GetInventorySummary(ctx, ds.Key, f); err == nil && ok {
		telemetry.SummaryCacheTotal.WithLabelValues("inventory", "hit").Inc()
		return summary, nil
	} else if err != nil {
		log.Warn().Err(err).Msg("inventory: cache get summary failed")
	}
	telemetry.SummaryCacheTotal.WithLabelValues("inventory", "miss").Inc()

	view, err := s.View(ctx, f)
	if err != nil {
		return nil, err
	}
	summary := Summarize(view)

	if err := s.cache.SetInventorySummary(ctx, ds.Key, f, summary); err != nil {
		log.Warn().Err(err).Msg("inventory: cache set summary failed")
	}
	return summary, nil
}

// Summarize computes the inventory indicators of a view
func Summarize(view *InventoryView) *domain.InventorySummary {
	rows := view.Rows
	return &domain.InventorySummary{
		ReferenceDate:     view.ReferenceDate,
		TotalRows:         len(rows),
		BaseRows:          len(view.Base),
		UniqueProducts:    analytics.UniqueProducts(rows),
		BelowMinimum:      analytics.CountBelowMinimum(rows),
		TotalValue:        analytics.TotalInventoryValue(rows),
		Status:            analytics.StatusCounts(rows),
		TotalDeficit:      analytics.TotalDeficit(rows),
		ReplenishmentCost: analytics.ReplenishmentCost(rows),
		AlertsByCategory:  analytics.AlertsByCategory(rows),
		Warnings:          view.Warnings,
	}
}

// Alerts returns the rows below minimum with their deficit
func (s *InventoryService) Alerts(ctx context.Context, f domain.InventoryFilter) ([]domain.DeficitRow, []domain.ValidationWarning, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return analytics.IdentifyBelowMinimum(view.Rows), view.Warnings, nil
}

// InventoryBreakdown groups the filtered rows for the comparison charts
type InventoryBreakdown struct {
	Categories []domain.GroupBreakdown    `json:"categories"`
	Locations  []domain.GroupBreakdown    `json:"locations"`
	Critical   []domain.InventoryRow      `json:"critical"`
	Warnings   []domain.ValidationWarning `json:"warnings,omitempty"`
}

// Breakdown aggregates the filtered rows by category and location and ranks the
// most critical rows, capped at limit.
func (s *InventoryService) Breakdown(ctx context.Context, f domain.InventoryFilter, limit int) (*InventoryBreakdown, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, err
	}
	return &InventoryBreakdown{
		Categories: analytics.CategoryBreakdown(view.Rows),
		Locations:  analytics.LocationBreakdown(view.Rows),
		Critical:   analytics.RankByCriticality(view.Rows, limit),
		Warnings:   view.Warnings,
	}, nil
}

// Export writes the filtered rows as CSV
func (s *InventoryService) Export(ctx context.Context, f domain.InventoryFilter) (*export.Result, []byte, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return s.exporter.Inventory(ctx, view.Rows)
}

// Source reports the resolver decision and the files of the last load
func (s *InventoryService) Source(ctx context.Context) SourceStatus {
	return sourceStatus(ctx, s.loader)
}

// Reload drops the memoized dataset and the cached summaries
func (s *InventoryService) Reload(ctx context.Context) error {
	s.loader.Invalidate()
	return s.cache.InvalidateAll(ctx)
}

func sourceStatus[R any](ctx context.Context, loader DatasetLoader[R]) SourceStatus {
	status := SourceStatus{Pipeline: loader.Name()}
	ds, err := loader.Load(ctx)
	if err != nil {
		status.Error = err.Error()
		if res, resErr := loader.Resolve(); resErr == nil {
			status.Resolution = res
		}
		return status
	}
	status.Resolution = ds.Resolution
	status.Files = ds.Sources
	return status
}
