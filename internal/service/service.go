package service

import (
	"context"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/pipeline"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/telemetry"
	"github.com/rs/zerolog/log"
)

// DatasetLoader is the loader contract the services depend on
type DatasetLoader[R any] interface {
	Name() string
	Load(ctx context.Context) (*pipeline.Dataset[R], error)
	Resolve() (*source.Resolution, error)
	Invalidate()
}

// Page bounds a list of rows. A zero Limit returns every row.
type Page struct {
	Limit  int
	Offset int
}

func paginate[T any](rows []T, p Page) []T {
	if p.Offset < 0 {
		p.Offset = 0
	}
	if p.Offset >= len(rows) {
		return []T{}
	}
	rows = rows[p.Offset:]
	if p.Limit > 0 && p.Limit < len(rows) {
		rows = rows[:p.Limit]
	}
	return rows
}

func reportWarnings(scope string, warnings []domain.ValidationWarning) {
	if len(warnings) == 0 {
		return
	}
	for _, w := range warnings {
		telemetry.ValidationWarningsTotal.WithLabelValues(string(w.Kind)).Inc()
		log.Debug().Str("scope", scope).Str("kind", string(w.Kind)).Msg(w.String())
	}
	log.Warn().Str("scope", scope).Int("warnings", len(warnings)).Msg("validation warnings returned")
}

func mergeWarnings(lists ...[]domain.ValidationWarning) []domain.ValidationWarning {
	var out []domain.ValidationWarning
	for _, l := range lists {
		out = append(out, l...)
	}
	return out
}

// SourceStatus reports how a pipeline's files were resolved
type SourceStatus struct {
	Pipeline   string              `json:"pipeline"`
	Resolution *source.Resolution  `json:"resolution,omitempty"`
	Files      []domain.SourceFile `json:"files,omitempty"`
	Error      string              `json:"error,omitempty"`
}
