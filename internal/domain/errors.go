package domain

import (
	"errors"
	"fmt"
	"sort"
	"strings"
)

var (
	ErrFileNotFound = errors.New("source file not found")
	ErrParse        = errors.New("source file could not be parsed")
)

// FileNotFoundError is returned when no candidate directory holds every required file.
type FileNotFoundError struct {
	Searched   []string            // directories in search order
	WorkingDir string              // process working directory at resolve time
	Aliases    map[string][]string // requirement name -> aliases tried
	Listing    map[string][]string // directory -> entries, for the first candidate directory
}

func (e *FileNotFoundError) Error() string {
	names := make([]string, 0, len(e.Aliases))
	for name := range e.Aliases {
		names = append(names, name)
	}
	sort.Strings(names)

	var b strings.Builder
	b.WriteString("source files not found")
	fmt.Fprintf(&b, "; working dir: %s", e.WorkingDir)
	fmt.Fprintf(&b, "; searched: [%s]", strings.Join(e.Searched, ", "))
	for _, name := range names {
		fmt.Fprintf(&b, "; %s tried as [%s]", name, strings.Join(e.Aliases[name], ", "))
	}
	for _, dir := range e.Searched {
		entries, ok := e.Listing[dir]
		if !ok {
			continue
		}
		if entries == nil {
			fmt.Fprintf(&b, "; %s does not exist", dir)
			continue
		}
		fmt.Fprintf(&b, "; %s contains [%s]", dir, strings.Join(entries, ", "))
	}
	return b.String()
}

func (e *FileNotFoundError) Unwrap() error {
	return ErrFileNotFound
}

// ParseError is returned when a source file is malformed or lacks a required column.
type ParseError struct {
	File   string
	Column string
	Line   int
	Err    error
}

func (e *ParseError) Error() string {
	switch {
	case e.Column != "" && e.Err != nil:
		return fmt.Sprintf("parse %s: column %q: %v", e.File, e.Column, e.Err)
	case e.Column != "":
		return fmt.Sprintf("parse %s: required column %q is missing", e.File, e.Column)
	case e.Line > 0:
		return fmt.Sprintf("parse %s: line %d: %v", e.File, e.Line, e.Err)
	default:
		return fmt.Sprintf("parse %s: %v", e.File, e.Err)
	}
}

func (e *ParseError) Unwrap() []error {
	if e.Err == nil {
		return []error{ErrParse}
	}
	return []error{ErrParse, e.Err}
}

// WarningKind classifies a non-fatal data anomaly
type WarningKind string

const (
	WarnUnparseableDate   WarningKind = "unparseable_date"
	WarnRejectedRow       WarningKind = "rejected_row"
	WarnDuplicateProduct  WarningKind = "duplicate_product"
	WarnOrphanStock       WarningKind = "orphan_stock"
	WarnSwappedRange      WarningKind = "swapped_range"
	WarnUnknownStatus     WarningKind = "unknown_status"
	WarnUnparseableFilter WarningKind = "unparseable_filter"
)

// ValidationWarning records a data anomaly that was corrected automatically.
type ValidationWarning struct {
	Kind    WarningKind `json:"kind"`
	Message string      `json:"message"`
	File    string      `json:"file,omitempty"`
	Line    int         `json:"line,omitempty"`
}

func (w ValidationWarning) String() string {
	if w.File != "" && w.Line > 0 {
		return fmt.Sprintf("%s:%d: %s", w.File, w.Line, w.Message)
	}
	if w.File != "" {
		return fmt.Sprintf("%s: %s", w.File, w.Message)
	}
	return w.Message
}
