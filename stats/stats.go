// Package stats computes read-side aggregates over a grid selection. It
// never mutates the store.
package stats

import (
	"strconv"
	"strings"

	"github.com/deep-bhut-zeuslearning/excel/grid"
	"github.com/deep-bhut-zeuslearning/excel/selection"
)

// Summary is the aggregate over a set of cell values. Count covers every
// non-empty value; the numeric fields cover only values ParseNumeric
// accepts.
type Summary struct {
	Count          int     `json:"count"`
	NumericCount   int     `json:"numeric_count"`
	Sum            float64 `json:"sum"`
	Average        float64 `json:"average"`
	Min            float64 `json:"min"`
	Max            float64 `json:"max"`
	HasNumericData bool    `json:"has_numeric_data"`
}

// ForValues aggregates a list of display values.
func ForValues(values []string) Summary {
	var s Summary
	for _, v := range values {
		if strings.TrimSpace(v) == "" {
			continue
		}
		s.Count++
		n, ok := ParseNumeric(v)
		if !ok {
			continue
		}
		if !s.HasNumericData {
			s.Min = n
			s.Max = n
			s.HasNumericData = true
		} else {
			if n < s.Min {
				s.Min = n
			}
			if n > s.Max {
				s.Max = n
			}
		}
		s.NumericCount++
		s.Sum += n
	}
	if s.NumericCount > 0 {
		s.Average = s.Sum / float64(s.NumericCount)
	}
	return s
}

// ForSelection aggregates the stored values under a selection, visiting at
// most maxCells coordinates (the selection's own truncation rule).
func ForSelection(store *grid.Store, sel *selection.Selection, maxCells int) Summary {
	coords := sel.SelectedCells(maxCells)
	values := make([]string, 0, len(coords))
	for _, c := range coords {
		if v := store.Value(c.Row, c.Col); v != "" {
			values = append(values, v)
		}
	}
	return ForValues(values)
}

// currencyRunes are symbols stripped before numeric parsing.
const currencyRunes = "$€£¥₹"

// ParseNumeric interprets a display value as a number, tolerating a
// percent suffix ("30%" -> 0.3), currency symbols, comma thousands
// separators and accounting-style parenthesized negatives ("(5)" -> -5).
func ParseNumeric(value string) (float64, bool) {
	v := strings.TrimSpace(value)
	if v == "" {
		return 0, false
	}

	negative := false
	if strings.HasPrefix(v, "(") && strings.HasSuffix(v, ")") {
		negative = true
		v = strings.TrimSpace(v[1 : len(v)-1])
	}

	percent := false
	if strings.HasSuffix(v, "%") {
		percent = true
		v = strings.TrimSpace(strings.TrimSuffix(v, "%"))
	}

	sign := 1.0
	if strings.HasPrefix(v, "-") {
		sign = -1
		v = v[1:]
	} else if strings.HasPrefix(v, "+") {
		v = v[1:]
	}
	v = strings.TrimLeftFunc(v, func(r rune) bool {
		return strings.ContainsRune(currencyRunes, r)
	})
	v = strings.ReplaceAll(v, ",", "")

	n, err := strconv.ParseFloat(v, 64)
	if err != nil {
		return 0, false
	}
	n *= sign
	if percent {
		n /= 100
	}
	if negative {
		n = -n
	}
	return n, true
}
