package source

import (
	"bufio"
	"bytes"
	"encoding/csv"
	"errors"
	"fmt"
	"io"
	"os"
	"path/filepath"
	"strings"

	"github.com/andresuchdata/fcd-dashboard/backend-go/internal/domain"
)

var utf8BOM = []byte{0xEF, 0xBB, 0xBF}

// ReadOptions controls how a delimited source is parsed
type ReadOptions struct {
	Delimiter rune
}

// Table is a header plus raw string records, as read from a CSV or XLSX source.
type Table struct {
	File   string
	Header []string
	Rows   [][]string
}

// Column returns the index of the first header matching any of names after
// normalisation, or -1.
func (t *Table) Column(names ...string) int {
	for _, name := range names {
		target := NormalizeColumnName(name)
		for i, h := range t.Header {
			if NormalizeColumnName(h) == target {
				return i
			}
		}
	}
	return -1
}

// Line returns the 1-based source line of row i, counting the header as line 1
func (t *Table) Line(i int) int {
	return i + 2
}

// Cell returns the trimmed value at (row, col), or "" when col is out of range
func (t *Table) Cell(row, col int) string {
	if col < 0 || row < 0 || row >= len(t.Rows) || col >= len(t.Rows[row]) {
		return ""
	}
	return strings.TrimSpace(t.Rows[row][col])
}

var columnNameSanitizer = strings.NewReplacer(" ", "", "_", "", ".", "", "-", "", "/", "")

// NormalizeColumnName lowercases a header and strips separators so that
// "Produto ID", "produto_id" and "PRODUTO-ID" compare equal.
func NormalizeColumnName(name string) string {
	name = strings.TrimSpace(strings.ToLower(name))
	name = strings.TrimPrefix(name, string(utf8BOM))
	return columnNameSanitizer.Replace(name)
}

// ReadFile reads a CSV or XLSX source into a Table, choosing the reader by extension.
func ReadFile(path string, opts ReadOptions) (*Table, error) {
	if strings.EqualFold(filepath.Ext(path), ".xlsx") {
		return ReadXLSX(path)
	}

	f, err := os.Open(path)
	if err != nil {
		return nil, fmt.Errorf("open %s: %w", path, err)
	}
	defer f.Close()

	return ReadCSV(f, path, opts)
}

// ReadCSV parses delimited text with a header row. A leading UTF-8 BOM is ignored.
func ReadCSV(r io.Reader, name string, opts ReadOptions) (*Table, error) {
	br := bufio.NewReader(r)
	if head, err := br.Peek(len(utf8BOM)); err == nil && bytes.Equal(head, utf8BOM) {
		_, _ = br.Discard(len(utf8BOM))
	}

	reader := csv.NewReader(br)
	if opts.Delimiter != 0 {
		reader.Comma = opts.Delimiter
	}
	reader.FieldsPerRecord = -1
	reader.TrimLeadingSpace = true
	reader.LazyQuotes = true

	header, err := reader.Read()
	if errors.Is(err, io.EOF) {
		return nil, &domain.ParseError{File: name, Err: errors.New("file is empty, header row expected")}
	}
	if err != nil {
		return nil, csvParseError(name, err)
	}
	for i := range header {
		header[i] = strings.TrimSpace(header[i])
	}

	t := &Table{File: name, Header: header}
	for {
		record, err := reader.Read()
		if errors.Is(err, io.EOF) {
			break
		}
		if err != nil {
			return nil, csvParseError(name, err)
		}
		if isBlank(record) {
			continue
		}
		t.Rows = append(t.Rows, record)
	}

	return t, nil
}

func csvParseError(name string, err error) error {
	var pe *csv.ParseError
	if errors.As(err, &pe) {
		return &domain.ParseError{File: name, Line: pe.Line, Err: pe.Err}
	}
	return &domain.ParseError{File: name, Err: err}
}

func isBlank(record []string) bool {
	for _, v := range record {
		if strings.TrimSpace(v) != "" {
			return false
		}
	}
	return true
}

// ParseDelimiter maps a configured delimiter ("," ";" "tab" "|") to a rune
func ParseDelimiter(s string) (rune, error) {
	switch strings.ToLower(s) {
	case "", ",", "comma":
		return ',', nil
	case ";", "semicolon":
		return ';', nil
	case "\t", "tab", `\t`:
		return '\t', nil
	case "|", "pipe":
		return '|', nil
	}
	return 0, fmt.Errorf("unsupported delimiter %q", s)
}
