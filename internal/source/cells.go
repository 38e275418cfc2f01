package source

import (
	"fmt"
	"math"
	"strconv"
	"strings"
	"time"

	"github.com/shopspring/decimal"
)

// DefaultDateLayouts are tried in order. Slash dates are day-first (dd/mm/yyyy).
var DefaultDateLayouts = []string{
	"2006-01-02",
	"2/1/2006",
	"2006-01-02 15:04:05",
	time.RFC3339,
	"2/1/2006 15:04",
	"2/1/2006 15:04:05",
}

var moneyCleaner = strings.NewReplacer("R$", "", " ", "", "\u00a0", "")

// ParseInt parses an integer cell. Integral floats such as "5.0" are accepted.
// An empty cell reports null.
func ParseInt(s string) (v int, null bool, err error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nan") {
		return 0, true, nil
	}
	if n, err := strconv.Atoi(s); err == nil {
		return n, false, nil
	}
	f, err := strconv.ParseFloat(strings.ReplaceAll(s, ",", "."), 64)
	if err != nil || math.IsNaN(f) || math.IsInf(f, 0) {
		return 0, false, fmt.Errorf("%q is not an integer", s)
	}
	if f != math.Trunc(f) {
		return 0, false, fmt.Errorf("%q is not an integer", s)
	}
	return int(f), false, nil
}

// ParseDecimal parses a money or price cell. Both "1234.56" and "1.234,56" are
// accepted: when both separators appear the last one is the decimal separator.
func ParseDecimal(s string) (v decimal.Decimal, null bool, err error) {
	s = moneyCleaner.Replace(strings.TrimSpace(s))
	if s == "" || strings.EqualFold(s, "nan") {
		return decimal.Zero, true, nil
	}

	lastDot := strings.LastIndex(s, ".")
	lastComma := strings.LastIndex(s, ",")
	switch {
	case lastDot >= 0 && lastComma >= 0 && lastComma > lastDot:
		s = strings.ReplaceAll(s, ".", "")
		s = strings.Replace(s, ",", ".", 1)
	case lastDot >= 0 && lastComma >= 0:
		s = strings.ReplaceAll(s, ",", "")
	case lastComma >= 0:
		s = strings.Replace(s, ",", ".", 1)
	}

	d, err := decimal.NewFromString(s)
	if err != nil {
		return decimal.Zero, false, fmt.Errorf("%q is not a decimal", s)
	}
	return d, false, nil
}

// ParseDate parses a date cell with the given layouts (DefaultDateLayouts when nil).
// An empty cell returns nil without error; an unparseable one returns nil and an error.
func ParseDate(s string, layouts []string) (*time.Time, error) {
	s = strings.TrimSpace(s)
	if s == "" || strings.EqualFold(s, "nat") || strings.EqualFold(s, "nan") {
		return nil, nil
	}
	if len(layouts) == 0 {
		layouts = DefaultDateLayouts
	}
	for _, layout := range layouts {
		if t, err := time.Parse(layout, s); err == nil {
			return &t, nil
		}
	}
	return nil, fmt.Errorf("%q does not match any date layout", s)
}

// Day truncates t to midnight UTC of its calendar day
func Day(t time.Time) time.Time {
	y, m, d := t.Date()
	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
