package main

import (
	"context"
	"fmt"
	"os"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/app"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/config"
	"github.com/andresuchdata/fcd-dashboard/backend-go/pkg/logger"
	"github.com/urfave/cli/v2"
)

type appKey struct{}

func main() {
	if err := newApp().Run(os.Args); err != nil {
		logger.Log.Fatal().Err(err).Msg("dashctl failed")
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:  "dashctl",
		Usage: "Inspect and export the inventory and sales dashboards from the command line",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "data-dir",
				Usage:   "Directory holding the source files",
				EnvVars: []string{"DATA_BASE_DIR"},
			},
			&cli.StringFlag{
				Name:    "log-level",
				Usage:   "Log level (debug, info, warn, error)",
				Value:   "warn",
				EnvVars: []string{"DASHCTL_LOG_LEVEL"},
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print results as JSON",
			},
		},
		Before: setup,
		Commands: []*cli.Command{
			{
				Name:   "resolve",
				Usage:  "Show where the source files of each dashboard are found",
				Action: runResolve,
			},
			{
				Name:   "inventory",
				Usage:  "Print the inventory indicators for a filter",
				Flags:  inventoryFlags(),
				Action: runInventory,
			},
			{
				Name:   "sales",
				Usage:  "Print the sales indicators for a filter",
				Flags:  salesFlags(),
				Action: runSales,
			},
			{
				Name:  "export",
				Usage: "Write a filtered view as CSV",
				Subcommands: []*cli.Command{
					{
						Name:   "inventory",
						Usage:  "Export the filtered inventory view",
						Flags:  inventoryFlags(),
						Action: runExportInventory,
					},
					{
						Name:   "sales",
						Usage:  "Export the filtered sales view",
						Flags:  salesFlags(),
						Action: runExportSales,
					},
				},
			},
			{
				Name:  "sync",
				Usage: "Download the source files from a Google Drive folder",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "folder-id",
						Usage:   "Drive folder id, or a slash separated folder path from the Drive root",
						EnvVars: []string{"GOOGLE_DRIVE_FOLDER_ID"},
					},
					&cli.StringFlag{
						Name:  "dest",
						Usage: "Local directory to download into (defaults to the first source directory)",
					},
				},
				Action: runSync,
			},
			{
				Name:  "pull",
				Usage: "Download the source files from S3-compatible object storage",
				Flags: []cli.Flag{
					&cli.StringFlag{
						Name:    "prefix",
						Usage:   "Object key prefix holding the source files",
						Value:   "sources",
						EnvVars: []string{"STORAGE_SOURCES_PREFIX"},
					},
					&cli.StringFlag{
						Name:  "dest",
						Usage: "Local directory to download into (defaults to the first source directory)",
					},
				},
				Action: runPull,
			},
		},
	}
}

func setup(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if dir := c.String("data-dir"); dir != "" {
		cfg.Data.BaseDir = dir
	}
	logger.Configure(os.Stderr, "console", c.String("log-level"))

	a, err := app.New(cfg)
	if err != nil {
		return fmt.Errorf("init: %w", err)
	}
	// Store the application in the context for the commands
	c.Context = context.WithValue(c.Context, appKey{}, a)
	return nil
}

func getApp(c *cli.Context) *app.App {
	return c.Context.Value(appKey{}).(*app.App)
}
