package analytics

import (
	"math"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// roundFloat rounds v to the given number of decimal places.
func roundFloat(v float64, decimals int) float64 {
	if decimals <= 0 {
		return math.Round(v)
	}

	factor := math.Pow(10, float64(decimals))
	return math.Round(v*factor) / factor
}

// FormatBRL formats an amount using Brazilian conventions: dot as thousands
// separator, comma as decimal separator and two decimals.
// Example: 1234.5 => "R$ 1.234,50"; -80 => "-R$ 80,00".
func FormatBRL(v decimal.Decimal) string {
	prefix := "R$ "
	if v.IsNegative() {
		prefix = "-R$ "
		v = v.Neg()
	}

	fixed := v.StringFixed(2)
	intPart, fracPart, _ := strings.Cut(fixed, ".")
	return prefix + groupThousands(intPart) + "," + fracPart
}

// FormatCount formats an integer with dot as thousands separator
func FormatCount(n int) string {
	if n < 0 {
		return "-" + groupThousands(strconv.Itoa(-n))
	}
	return groupThousands(strconv.Itoa(n))
}

func groupThousands(s string) string {
	if len(s) <= 3 {
		return s
	}

	var buf []byte
	count := 0
	for i := len(s) - 1; i >= 0; i-- {
		buf = append(buf, s[i])
		count++
		if count == 3 && i != 0 {
			buf = append(buf, '.')
			count = 0
		}
	}
	// reverse buf
	for i, j := 0, len(buf)-1; i < j; i, j = i+1, j-1 {
		buf[i], buf[j] = buf[j], buf[i]
	}
	return string(buf)
}
