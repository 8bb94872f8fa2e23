// Package a1 converts between zero-based grid coordinates and
// spreadsheet-style labels ("A1", "AB", "3").
package a1

import (
	"strconv"
	"strings"
)

// ColumnLabel returns the base-26 letter label for a zero-based column
// index: 0 -> "A", 25 -> "Z", 26 -> "AA".
func ColumnLabel(col int) string {
	if col < 0 {
		return ""
	}
	label := ""
	idx := col + 1
	for idx > 0 {
		idx--
		label = string(rune('A'+idx%26)) + label
		idx /= 26
	}
	return label
}

// ParseColumn converts a letter label back to a zero-based column index.
// Lowercase input is accepted. Returns false for empty or non-letter input.
func ParseColumn(label string) (int, bool) {
	label = strings.ToUpper(strings.TrimSpace(label))
	if label == "" {
		return 0, false
	}
	idx := 0
	for i := 0; i < len(label); i++ {
		ch := label[i]
		if ch < 'A' || ch > 'Z' {
			return 0, false
		}
		idx = idx*26 + int(ch-'A'+1)
	}
	return idx - 1, true
}

// RowLabel returns the 1-based decimal label for a zero-based row index.
func RowLabel(row int) string {
	return strconv.Itoa(row + 1)
}

// CellLabel returns the combined label for a cell, e.g. (0,0) -> "A1".
func CellLabel(row, col int) string {
	return ColumnLabel(col) + RowLabel(row)
}

// ParseCell parses a cell label like "B3" into zero-based (row, col).
func ParseCell(ref string) (row, col int, ok bool) {
	ref = strings.ToUpper(strings.TrimSpace(ref))
	split := -1
	for i := 0; i < len(ref); i++ {
		if ref[i] >= '0' && ref[i] <= '9' {
			split = i
			break
		}
	}
	if split <= 0 {
		return 0, 0, false
	}
	col, ok = ParseColumn(ref[:split])
	if !ok {
		return 0, 0, false
	}
	n, err := strconv.Atoi(ref[split:])
	if err != nil || n < 1 {
		return 0, 0, false
	}
	return n - 1, col, true
}

// ParseRange parses "A1:C3" or a single reference "A1" into zero-based
// corner coordinates. Corners are normalized so start <= end.
func ParseRange(ref string) (r0, c0, r1, c1 int, ok bool) {
	parts := strings.SplitN(ref, ":", 2)
	r0, c0, ok = ParseCell(parts[0])
	if !ok {
		return 0, 0, 0, 0, false
	}
	if len(parts) == 1 {
		return r0, c0, r0, c0, true
	}
	r1, c1, ok = ParseCell(parts[1])
	if !ok {
		return 0, 0, 0, 0, false
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	if c0 > c1 {
		c0, c1 = c1, c0
	}
	return r0, c0, r1, c1, true
}
