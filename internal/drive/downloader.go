package drive

import (
	"context"
	"errors"
	"fmt"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/pkg/logger"
)

// DownloadOptions controls how files are pulled from Google Drive.
type DownloadOptions struct {
	FolderID    string
	DownloadDir string
	// Requirements restricts the download to files matching one of their aliases.
	// When empty every CSV and XLSX file is downloaded.
	Requirements []source.Requirement
}

// Downloaded describes one file written to the download directory
type Downloaded struct {
	Requirement string `json:"requirement,omitempty"`
	Name        string `json:"name"`
	Path        string `json:"path"`
	Bytes       int64  `json:"bytes"`
}

// Downloader wraps a Client to download files from a specific folder.
type Downloader struct {
	client Client
}

// NewDownloader creates a new Downloader.
func NewDownloader(c Client) *Downloader {
	return &Downloader{client: c}
}

// DownloadFolder downloads the wanted files of a Drive folder into DownloadDir.
// Files are written under a temporary name and renamed once complete, so a reader
// never sees a partial source file.
func (d *Downloader) DownloadFolder(ctx context.Context, opts DownloadOptions) ([]Downloaded, error) {
	if opts.DownloadDir == "" {
		return nil, errors.New("download dir is required")
	}
	if err := os.MkdirAll(opts.DownloadDir, 0o755); err != nil {
		return nil, fmt.Errorf("failed to create download dir: %w", err)
	}

	files, err := d.client.ListFiles(ctx, opts.FolderID)
	if err != nil {
		return nil, err
	}

	var out []Downloaded
	for _, f := range files {
		if err := ctx.Err(); err != nil {
			return nil, err
		}

		req, ok := wanted(f.Name, opts.Requirements)
		if !ok {
			continue
		}

		path := filepath.Join(opts.DownloadDir, f.Name)
		n, err := d.download(ctx, f.ID, path)
		if err != nil {
			return nil, fmt.Errorf("failed to download %s: %w", f.Name, err)
		}
		logger.Log.Info().Str("file", f.Name).Int64("bytes", n).Msg("drive file downloaded")
		out = append(out, Downloaded{Requirement: req, Name: f.Name, Path: path, Bytes: n})
	}

	return out, nil
}

func (d *Downloader) download(ctx context.Context, fileID, path string) (int64, error) {
	tmp, err := os.CreateTemp(filepath.Dir(path), ".download-*")
	if err != nil {
		return 0, err
	}
	defer os.Remove(tmp.Name())

	if err := d.client.DownloadFile(ctx, fileID, tmp); err != nil {
		tmp.Close()
		return 0, err
	}
	info, err := tmp.Stat()
	if err != nil {
		tmp.Close()
		return 0, err
	}
	if err := tmp.Close(); err != nil {
		return 0, err
	}
	if err := os.Rename(tmp.Name(), path); err != nil {
		return 0, err
	}
	return info.Size(), nil
}

// wanted reports whether name matches a requirement alias and returns the
// requirement name. Without requirements any .csv or .xlsx file is wanted.
func wanted(name string, reqs []source.Requirement) (string, bool) {
	if len(reqs) == 0 {
		switch strings.ToLower(filepath.Ext(name)) {
		case ".csv", ".xlsx":
			return "", true
		}
		return "", false
	}
	for _, req := range reqs {
		for _, alias := range req.Aliases {
			if alias == name {
				return req.Name, true
			}
		}
	}
	return "", false
}
