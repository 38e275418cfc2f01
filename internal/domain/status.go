package domain

import "strings"

// StockStatus classifies an inventory row against its minimum threshold
type StockStatus string

const (
	StatusAll          StockStatus = ""
	StatusBelowMinimum StockStatus = "below_minimum"
	StatusAdequate     StockStatus = "adequate"
)

var stockStatusLabels = map[StockStatus]string{
	StatusBelowMinimum: "Abaixo do Mínimo",
	StatusAdequate:     "Adequado",
}

var stockStatusCodes = map[string]StockStatus{
	"below_minimum":    StatusBelowMinimum,
	"below":            StatusBelowMinimum,
	"alert":            StatusBelowMinimum,
	"abaixo do mínimo": StatusBelowMinimum,
	"abaixo do minimo": StatusBelowMinimum,
	"adequate":         StatusAdequate,
	"ok":               StatusAdequate,
	"adequado":         StatusAdequate,
	"all":              StatusAll,
	"todos":            StatusAll,
	"todas":            StatusAll,
	"":                 StatusAll,
}

// Label returns a human-readable label for a stock status.
func (s StockStatus) Label() string {
	if label, ok := stockStatusLabels[s]; ok {
		return label
	}

	return "Todos"
}

// ParseStockStatus returns the status for a given label (case-insensitive).
func ParseStockStatus(label string) (StockStatus, bool) {
	status, ok := stockStatusCodes[strings.ToLower(strings.TrimSpace(label))]

	return status, ok
}
