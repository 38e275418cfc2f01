package pipeline

import (
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
)

// Pipeline defines the interface that every dashboard data pipeline must implement
type Pipeline[R any] interface {
	// Name returns the unique identifier for this pipeline
	Name() string

	// Requirements lists the source files that must be resolved together
	Requirements() []source.Requirement

	// ReadOptions returns how the pipeline's delimited sources are parsed
	ReadOptions() source.ReadOptions

	// Transform parses and joins the tables, keyed by requirement name
	Transform(tables map[string]*source.Table) ([]R, []domain.ValidationWarning, error)
}

// Dataset is the memoized output of a pipeline for one set of source files.
// Rows are shared between callers and must be treated as read-only.
type Dataset[R any] struct {
	Name       string
	Rows       []R
	Warnings   []domain.ValidationWarning
	Sources    []domain.SourceFile
	Resolution *source.Resolution
	Key        string
	LoadedAt   time.Time
}

// Observer receives load events, e.g. for metrics
type Observer interface {
	LoadCompleted(pipeline string, elapsed time.Duration, rows int, err error)
	MemoHit(pipeline string)
}

type noopObserver struct{}

func (noopObserver) LoadCompleted(string, time.Duration, int, error) {}
func (noopObserver) MemoHit(string)                                  {}
