// Package formula implements the "=NAME(ref1,ref2)" mini-language used for
// cell inputs that start with the formula sentinel. The two references name
// opposite corners of a rectangle; the function is evaluated over every
// value inside it and the result is returned as a display string.
package formula

import (
	"fmt"
	"strconv"
	"strings"

	"github.com/deep-bhut-zeuslearning/excel/a1"
)

// Sentinel is the leading character that marks a formula input.
const Sentinel = '='

// Evaluator evaluates formula inputs against a value source. It satisfies
// the grid store's evaluator contract.
type Evaluator struct{}

// New returns a ready evaluator.
func New() *Evaluator {
	return &Evaluator{}
}

// Evaluate parses an input like "=SUM(A1,B3)" and computes the function
// over the rectangle spanned by the two references. Function names are
// case-insensitive. Malformed input returns an error; the caller decides
// how to surface it (the grid store keeps the raw text).
func (e *Evaluator) Evaluate(input string, value func(row, col int) string) (string, error) {
	body := strings.TrimSpace(input)
	if len(body) == 0 || body[0] != Sentinel {
		return "", fmt.Errorf("formula: missing %q sentinel", Sentinel)
	}
	body = strings.TrimSpace(body[1:])

	open := strings.IndexByte(body, '(')
	if open <= 0 || !strings.HasSuffix(body, ")") {
		return "", fmt.Errorf("formula: malformed call %q", input)
	}
	name := strings.ToUpper(strings.TrimSpace(body[:open]))
	argstr := body[open+1 : len(body)-1]

	args := strings.Split(argstr, ",")
	if len(args) != 2 {
		return "", fmt.Errorf("formula: %s expects two references, got %d", name, len(args))
	}
	r0, c0, ok := a1.ParseCell(args[0])
	if !ok {
		return "", fmt.Errorf("formula: bad reference %q", args[0])
	}
	r1, c1, ok := a1.ParseCell(args[1])
	if !ok {
		return "", fmt.Errorf("formula: bad reference %q", args[1])
	}
	if r0 > r1 {
		r0, r1 = r1, r0
	}
	if c0 > c1 {
		c0, c1 = c1, c0
	}

	var values []string
	for r := r0; r <= r1; r++ {
		for c := c0; c <= c1; c++ {
			if v := value(r, c); v != "" {
				values = append(values, v)
			}
		}
	}

	switch name {
	case "SUM":
		return formatNumber(sum(values)), nil
	case "AVERAGE":
		nums := numbers(values)
		if len(nums) == 0 {
			return "0", nil
		}
		return formatNumber(sum(values) / float64(len(nums))), nil
	case "COUNT":
		return strconv.Itoa(len(numbers(values))), nil
	case "MAX":
		nums := numbers(values)
		if len(nums) == 0 {
			return "0", nil
		}
		max := nums[0]
		for _, n := range nums[1:] {
			if n > max {
				max = n
			}
		}
		return formatNumber(max), nil
	case "MIN":
		nums := numbers(values)
		if len(nums) == 0 {
			return "0", nil
		}
		min := nums[0]
		for _, n := range nums[1:] {
			if n < min {
				min = n
			}
		}
		return formatNumber(min), nil
	case "PRODUCT":
		nums := numbers(values)
		if len(nums) == 0 {
			return "0", nil
		}
		p := 1.0
		for _, n := range nums {
			p *= n
		}
		return formatNumber(p), nil
	case "CONCATENATE":
		return strings.Join(values, ""), nil
	default:
		return "", fmt.Errorf("formula: unknown function %q", name)
	}
}

func numbers(values []string) []float64 {
	var out []float64
	for _, v := range values {
		if n, err := strconv.ParseFloat(strings.TrimSpace(v), 64); err == nil {
			out = append(out, n)
		}
	}
	return out
}

func sum(values []string) float64 {
	total := 0.0
	for _, n := range numbers(values) {
		total += n
	}
	return total
}

func formatNumber(n float64) string {
	return strconv.FormatFloat(n, 'f', -1, 64)
}
