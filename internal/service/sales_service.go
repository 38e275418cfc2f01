package service

import (
	"context"

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

type SalesService struct {
	loader   DatasetLoader[domain.SalesRow]
	cache    cache.DashboardCache
	exporter *export.Exporter
}

func NewSalesService(loader DatasetLoader[domain.SalesRow], cacheImpl cache.DashboardCache, exporter *export.Exporter) *SalesService {
	if cacheImpl == nil {
		cacheImpl = cache.NewNoopDashboardCache()
	}
	return &SalesService{loader: loader, cache: cacheImpl, exporter: exporter}
}

type SalesView struct {
	Dataset  *pipeline.Dataset[domain.SalesRow]
	Rows     []domain.SalesRow
	Warnings []domain.ValidationWarning
}

func (s *SalesService) View(ctx context.Context, f domain.SalesFilter) (*SalesView, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	specs, filterWarnings := filter.BuildSales(f)
	reportWarnings("sales", filterWarnings)
	return &SalesView{
		Dataset:  ds,
		Rows:     filter.Apply(ds.Rows, specs...),
		Warnings: mergeWarnings(ds.Warnings, filterWarnings),
	}, nil
}

// Dimensions returns the filter values over the whole dataset, including the
// bounds of the sale dates used to seed the date range.
func (s *SalesService) Dimensions(ctx context.Context) (*dimension.Sales, error) {
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}
	dims := dimension.ForSales(ds.Rows)
	return &dims, nil
}

func (s *SalesService) Items(ctx context.Context, f domain.SalesFilter, page Page) ([]domain.SalesRow, int, []domain.ValidationWarning, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, 0, nil, err
	}
	return paginate(view.Rows, page), len(view.Rows), view.Warnings, nil
}

// Summary computes revenue, the top products and the monthly series. Only the
// default top size is cached.
func (s *SalesService) Summary(ctx context.Context, f domain.SalesFilter, topN int) (*domain.SalesSummary, error) {
	if topN <= 0 {
		topN = analytics.DefaultTopN
	}
	ds, err := s.loader.Load(ctx)
	if err != nil {
		return nil, err
	}

	cacheable := topN == analytics.DefaultTopN
	if cacheable {
		if summary, ok, err := s.cache.GetSalesSummary(ctx, ds.Key, f); err == nil && ok {
			telemetry.SummaryCacheTotal.WithLabelValues("sales", "hit").Inc()
			return summary, nil
		} else if err != nil {
			log.Warn().Err(err).Msg("sales: cache get summary failed")
		}
		telemetry.SummaryCacheTotal.WithLabelValues("sales", "miss").Inc()
	}

	view, err := s.View(ctx, f)
	if err != nil {
		return nil, err
	}
	summary := SummarizeSales(view, f, topN)

	if cacheable {
		if err := s.cache.SetSalesSummary(ctx, ds.Key, f, summary); err != nil {
			log.Warn().Err(err).Msg("sales: cache set summary failed")
		}
	}
	return summary, nil
}

// SummarizeSales computes the sales indicators of a view
func SummarizeSales(view *SalesView, f domain.SalesFilter, topN int) *domain.SalesSummary {
	summary := &domain.SalesSummary{
		DateFrom:     f.DateFrom,
		DateTo:       f.DateTo,
		TotalRows:    len(view.Rows),
		BaseRows:     len(view.Dataset.Rows),
		TotalRevenue: analytics.TotalRevenue(view.Rows),
		TopProducts:  analytics.TopNByQuantity(view.Rows, topN),
		Monthly:      analytics.MonthlyTimeSeries(view.Rows),
		Warnings:     view.Warnings,
	}
	if from, to, ok := dimension.SaleDateBounds(view.Rows); ok && f.DateFrom == nil && f.DateTo == nil {
		summary.DateFrom, summary.DateTo = &from, &to
	}
	return summary
}

func (s *SalesService) Top(ctx context.Context, f domain.SalesFilter, n int) ([]domain.ProductQuantity, []domain.ValidationWarning, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	if n <= 0 {
		n = analytics.DefaultTopN
	}
	return analytics.TopNByQuantity(view.Rows, n), view.Warnings, nil
}

func (s *SalesService) TimeSeries(ctx context.Context, f domain.SalesFilter) ([]domain.MonthlyPoint, []domain.ValidationWarning, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return analytics.MonthlyTimeSeries(view.Rows), view.Warnings, nil
}

func (s *SalesService) Export(ctx context.Context, f domain.SalesFilter) (*export.Result, []byte, error) {
	view, err := s.View(ctx, f)
	if err != nil {
		return nil, nil, err
	}
	return s.exporter.Sales(ctx, view.Rows)
}

func (s *SalesService) Source(ctx context.Context) SourceStatus {
	return sourceStatus(ctx, s.loader)
}

func (s *SalesService) Reload(ctx context.Context) error {
	s.loader.Invalidate()
	return s.cache.InvalidateAll(ctx)
}
