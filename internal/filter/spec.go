// Package filter applies conjunctions of row predicates to a dashboard view.
package filter

import (
	"fmt"
	"strings"
	"time"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/source"
	"github.com/shopspring/decimal"
	"golang.org/x/text/cases"
)

// Spec is a row predicate. A nil Spec is inactive and matches every row.
type Spec[T any] func(T) bool

// Apply returns the rows matching every spec. With no active spec the input is
// returned unchanged.
func Apply[T any](rows []T, specs ...Spec[T]) []T {
	active := make([]Spec[T], 0, len(specs))
	for _, s := range specs {
		if s != nil {
			active = append(active, s)
		}
	}
	if len(active) == 0 {
		return rows
	}

	out := make([]T, 0, len(rows))
rowLoop:
	for _, r := range rows {
		for _, s := range active {
			if !s(r) {
				continue rowLoop
			}
		}
		out = append(out, r)
	}
	return out
}

// allMarkers are selection values meaning "no restriction"
var allMarkers = map[string]struct{}{
	"todas": {},
	"todos": {},
	"all":   {},
}

// Selection trims values and drops empty entries and "Todas"/"Todos" markers.
func Selection(values []string) []string {
	out := make([]string, 0, len(values))
	for _, v := range values {
		v = strings.TrimSpace(v)
		if v == "" {
			continue
		}
		if _, ok := allMarkers[strings.ToLower(v)]; ok {
			continue
		}
		out = append(out, v)
	}
	return out
}

// InSet matches rows whose field equals one of values. An empty set is inactive.
func InSet[T any](field func(T) string, values []string) Spec[T] {
	values = Selection(values)
	if len(values) == 0 {
		return nil
	}
	set := make(map[string]struct{}, len(values))
	for _, v := range values {
		set[v] = struct{}{}
	}
	return func(r T) bool {
		_, ok := set[field(r)]
		return ok
	}
}

// PriceRange matches rows with min <= field <= max. Either bound may be nil.
// Swapped bounds are corrected and reported.
func PriceRange[T any](field func(T) decimal.Decimal, min, max *decimal.Decimal) (Spec[T], []domain.ValidationWarning) {
	if min == nil && max == nil {
		return nil, nil
	}
	lo, hi := min, max
	var warnings []domain.ValidationWarning
	if lo != nil && hi != nil && lo.GreaterThan(*hi) {
		lo, hi = hi, lo
		warnings = append(warnings, domain.ValidationWarning{
			Kind:    domain.WarnSwappedRange,
			Message: fmt.Sprintf("price range %s..%s swapped to %s..%s", min, max, lo, hi),
		})
	}
	return func(r T) bool {
		v := field(r)
		if lo != nil && v.LessThan(*lo) {
			return false
		}
		if hi != nil && v.GreaterThan(*hi) {
			return false
		}
		return true
	}, warnings
}

// DateRange matches rows whose day lies within [from, to]. Rows without a date
// never match an active range. Swapped bounds are corrected and reported.
func DateRange[T any](field func(T) *time.Time, from, to *time.Time) (Spec[T], []domain.ValidationWarning) {
	if from == nil && to == nil {
		return nil, nil
	}
	var lo, hi *time.Time
	if from != nil {
		d := source.Day(*from)
		lo = &d
	}
	if to != nil {
		d := source.Day(*to)
		hi = &d
	}

	var warnings []domain.ValidationWarning
	if lo != nil && hi != nil && lo.After(*hi) {
		lo, hi = hi, lo
		warnings = append(warnings, domain.ValidationWarning{
			Kind: domain.WarnSwappedRange,
			Message: fmt.Sprintf("date range %s..%s swapped to %s..%s",
				from.Format(time.DateOnly), to.Format(time.DateOnly), lo.Format(time.DateOnly), hi.Format(time.DateOnly)),
		})
	}
	return func(r T) bool {
		v := field(r)
		if v == nil {
			return false
		}
		day := source.Day(*v)
		if lo != nil && day.Before(*lo) {
			return false
		}
		if hi != nil && day.After(*hi) {
			return false
		}
		return true
	}, warnings
}

// Contains matches rows whose field contains q, ignoring case with Unicode folding.
// An empty query is inactive. The returned spec holds a caser and must not be
// shared between goroutines.
func Contains[T any](field func(T) string, q string) Spec[T] {
	q = strings.TrimSpace(q)
	if q == "" {
		return nil
	}
	fold := cases.Fold()
	needle := fold.String(q)
	return func(r T) bool {
		return strings.Contains(fold.String(field(r)), needle)
	}
}

// OnDay matches rows whose field falls on the calendar day of day
func OnDay[T any](field func(T) *time.Time, day time.Time) Spec[T] {
	day = source.Day(day)
	return func(r T) bool {
		v := field(r)
		return v != nil && source.Day(*v).Equal(day)
	}
}
