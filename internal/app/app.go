// Package app wires configuration into loaders, services and outer adapters.
package app

import (
	"context"
	"fmt"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/cache"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/drive"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/export"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/inventory"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline/sales"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/service"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/storage"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/telemetry"
	"github.com/andresuchdata/fcd-dashboard/backend-go/pkg/logger"
)

type App struct {
	Config            *config.Config
	Resolver          *source.Resolver
	InventoryPipeline *inventory.Pipeline
	SalesPipeline     *sales.Pipeline
	Inventory         *service.InventoryService
	Sales             *service.SalesService
	Storage           storage.ObjectStorage
}

// New builds the application graph. A cache that cannot be reached is replaced
// by the noop cache; storage errors are fatal when storage is enabled.
func New(cfg *config.Config) (*App, error) {
	resolver := source.NewResolver(source.Options{
		ProjectRoot: cfg.Data.ProjectRoot,
		BaseDir:     cfg.Data.BaseDir,
		ExtraDirs:   cfg.Data.ExtraDirs,
	})

	invPipeline := inventory.NewPipeline(inventory.Config{
		ProductsFile: cfg.Inventory.ProductsFile,
		StockFile:    cfg.Inventory.StockFile,
		Delimiter:    cfg.Inventory.Delimiter,
	})
	salesPipeline := sales.NewPipeline(sales.Config{
		SalesFile:    cfg.Sales.SalesFile,
		ProductsFile: cfg.Sales.ProductsFile,
		Delimiter:    cfg.Sales.Delimiter,
	})

	dashCache, err := cache.NewDashboardCache(cfg.Cache)
	if err != nil {
		logger.Log.Warn().Err(err).Msg("dashboard cache unavailable, continuing without cache")
		dashCache = cache.NewNoopDashboardCache()
	}

	var store storage.ObjectStorage
	if cfg.Storage.Enabled {
		s3, err := storage.NewS3Client(storage.S3Config{
			Endpoint:  cfg.Storage.Endpoint,
			AccessKey: cfg.Storage.AccessKey,
			SecretKey: cfg.Storage.SecretKey,
			Bucket:    cfg.Storage.Bucket,
			Region:    cfg.Storage.Region,
			Prefix:    cfg.Storage.Prefix,
			UseSSL:    cfg.Storage.UseSSL,
		})
		if err != nil {
			return nil, fmt.Errorf("init storage: %w", err)
		}
		store = s3
	}

	// Exports use the delimiter of the dashboard they come from
	invExporter := export.NewExporter(cfg.Export.Dir, cfg.Inventory.Delimiter, store)
	salesExporter := export.NewExporter(cfg.Export.Dir, cfg.Sales.Delimiter, store)

	observer := telemetry.LoadObserver{}
	invLoader := pipeline.NewLoader[domain.InventoryRow](invPipeline, resolver, observer)
	salesLoader := pipeline.NewLoader[domain.SalesRow](salesPipeline, resolver, observer)

	return &App{
		Config:            cfg,
		Resolver:          resolver,
		InventoryPipeline: invPipeline,
		SalesPipeline:     salesPipeline,
		Inventory:         service.NewInventoryService(invLoader, dashCache, invExporter),
		Sales:             service.NewSalesService(salesLoader, dashCache, salesExporter),
		Storage:           store,
	}, nil
}

// Requirements returns the source files of both dashboards
func (a *App) Requirements() []source.Requirement {
	return append(a.InventoryPipeline.Requirements(), a.SalesPipeline.Requirements()...)
}

// SyncDrive downloads the dashboard sources from the configured Drive folder.
// A folder given as a slash separated path is looked up from the Drive root.
func (a *App) SyncDrive(ctx context.Context, destDir string) ([]drive.Downloaded, error) {
	if a.Config.Drive.CredentialsJSON == "" {
		return nil, fmt.Errorf("GOOGLE_DRIVE_CREDENTIALS_JSON is not set")
	}
	svc, err := drive.NewService(ctx, a.Config.Drive.CredentialsJSON)
	if err != nil {
		return nil, err
	}

	folderID := a.Config.Drive.FolderID
	if strings.Contains(folderID, "/") {
		if folderID, err = svc.FindFolderByPath(ctx, strings.Trim(folderID, "/")); err != nil {
			return nil, err
		}
	}
	return drive.NewDownloader(svc).DownloadFolder(ctx, drive.DownloadOptions{
		FolderID:     folderID,
		DownloadDir:  destDir,
		Requirements: a.Requirements(),
	})
}
