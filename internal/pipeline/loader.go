package pipeline

import (
	"context"
	"crypto/sha1"
	"encoding/hex"
	"fmt"
	"os"
	"strconv"
	"strings"
	"sync"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/andresuchdata/fcd-dashboard/backend-go/pkg/logger"
	"golang.org/x/sync/errgroup"
	"golang.org/x/sync/singleflight"
)

// Loader resolves, reads and transforms the sources of one pipeline and memoizes the
// result keyed by the resolved paths and their size and modification time.
type Loader[R any] struct {
	pipeline Pipeline[R]
	resolver *source.Resolver
	observer Observer
	now      func() time.Time

	mu    sync.Mutex
	entry *Dataset[R]
	group singleflight.Group
}

// NewLoader creates a new Loader. A nil observer is replaced by a noop.
func NewLoader[R any](p Pipeline[R], resolver *source.Resolver, observer Observer) *Loader[R] {
	if observer == nil {
		observer = noopObserver{}
	}
	return &Loader[R]{
		pipeline: p,
		resolver: resolver,
		observer: observer,
		now:      time.Now,
	}
}

// Name returns the pipeline name
func (l *Loader[R]) Name() string {
	return l.pipeline.Name()
}

// Resolve runs the file resolver for the pipeline's requirements without loading
func (l *Loader[R]) Resolve() (*source.Resolution, error) {
	return l.resolver.Resolve(l.pipeline.Requirements()...)
}

// Load returns the joined dataset, re-reading the sources only when their key changed.
// Resolver and parse failures are returned before any rows are produced.
func (l *Loader[R]) Load(ctx context.Context) (*Dataset[R], error) {
	res, err := l.Resolve()
	if err != nil {
		return nil, err
	}

	sources, err := statSources(l.pipeline.Requirements(), res)
	if err != nil {
		return nil, err
	}
	key := fingerprint(sources)

	l.mu.Lock()
	if l.entry != nil && l.entry.Key == key {
		entry := l.entry
		l.mu.Unlock()
		l.observer.MemoHit(l.pipeline.Name())
		return entry, nil
	}
	l.mu.Unlock()

	v, err, _ := l.group.Do(key, func() (interface{}, error) {
		return l.load(ctx, res, sources, key)
	})
	if err != nil {
		return nil, err
	}
	return v.(*Dataset[R]), nil
}

// Invalidate drops the memoized dataset
func (l *Loader[R]) Invalidate() {
	l.mu.Lock()
	l.entry = nil
	l.mu.Unlock()
}

func (l *Loader[R]) load(ctx context.Context, res *source.Resolution, sources []domain.SourceFile, key string) (*Dataset[R], error) {
	start := l.now()
	name := l.pipeline.Name()

	tables, err := l.readTables(ctx, sources)
	if err != nil {
		l.observer.LoadCompleted(name, time.Since(start), 0, err)
		return nil, err
	}

	rows, warnings, err := l.pipeline.Transform(tables)
	if err != nil {
		l.observer.LoadCompleted(name, time.Since(start), 0, err)
		return nil, err
	}

	ds := &Dataset[R]{
		Name:       name,
		Rows:       rows,
		Warnings:   warnings,
		Sources:    sources,
		Resolution: res,
		Key:        key,
		LoadedAt:   l.now(),
	}

	l.mu.Lock()
	l.entry = ds
	l.mu.Unlock()

	elapsed := time.Since(start)
	l.observer.LoadCompleted(name, elapsed, len(rows), nil)
	logger.Log.Info().
		Str("pipeline", name).
		Str("dir", res.Dir).
		Int("rows", len(rows)).
		Int("warnings", len(warnings)).
		Dur("elapsed", elapsed).
		Msg("dataset loaded")

	return ds, nil
}

func (l *Loader[R]) readTables(ctx context.Context, sources []domain.SourceFile) (map[string]*source.Table, error) {
	opts := l.pipeline.ReadOptions()
	tables := make([]*source.Table, len(sources))

	g, gctx := errgroup.WithContext(ctx)
	for i, src := range sources {
		g.Go(func() error {
			if err := gctx.Err(); err != nil {
				return err
			}
			t, err := source.ReadFile(src.Path, opts)
			if err != nil {
				return err
			}
			tables[i] = t
			return nil
		})
	}
	if err := g.Wait(); err != nil {
		return nil, err
	}

	out := make(map[string]*source.Table, len(sources))
	for i, src := range sources {
		out[src.Name] = tables[i]
	}
	return out, nil
}

func statSources(reqs []source.Requirement, res *source.Resolution) ([]domain.SourceFile, error) {
	out := make([]domain.SourceFile, 0, len(reqs))
	for _, req := range reqs {
		path := res.Path(req.Name)
		info, err := os.Stat(path)
		if err != nil {
			return nil, fmt.Errorf("stat %s: %w", path, err)
		}
		out = append(out, domain.SourceFile{
			Name:    req.Name,
			Path:    path,
			Size:    info.Size(),
			ModTime: info.ModTime(),
		})
	}
	return out, nil
}

func fingerprint(sources []domain.SourceFile) string {
	parts := make([]string, 0, len(sources))
	for _, s := range sources {
		parts = append(parts, strings.Join([]string{
			s.Name,
			s.Path,
			strconv.FormatInt(s.Size, 10),
			strconv.FormatInt(s.ModTime.UnixNano(), 10),
		}, "|"))
	}
	sum := sha1.Sum([]byte(strings.Join(parts, "\n")))
	return hex.EncodeToString(sum[:])
}
