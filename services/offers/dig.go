package offers

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"
)

// dig walks a dotted path through nested maps and lists. Numeric segments
// index into lists.
func dig(v any, path string) (any, bool) {
	cur := v
	for _, seg := range strings.Split(path, ".") {
		switch node := cur.(type) {
		case map[string]any:
			next, ok := node[seg]
			if !ok || next == nil {
				return nil, false
			}
			cur = next
		case []any:
			i, err := strconv.Atoi(seg)
			if err != nil || i < 0 || i >= len(node) {
				return nil, false
			}
			cur = node[i]
		default:
			return nil, false
		}
	}
	return cur, cur != nil
}

// firstString returns the first non-empty string found at any of paths.
func firstString(v any, paths ...string) string {
	for _, p := range paths {
		if got, ok := dig(v, p); ok {
			switch s := got.(type) {
			case string:
				if s = strings.TrimSpace(s); s != "" {
					return s
				}
			case json.Number:
				return s.String()
			}
		}
	}
	return ""
}

// firstNumber returns the first value at paths that reads as a number.
func firstNumber(v any, paths ...string) (decimal.Decimal, bool) {
	for _, p := range paths {
		if got, ok := dig(v, p); ok {
			if d, ok := toDecimal(got); ok {
				return d, true
			}
		}
	}
	return decimal.Decimal{}, false
}

func toDecimal(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case string:
		// "199.00", "$1,234.50"
		cleaned := strings.Map(func(r rune) rune {
			if (r >= '0' && r <= '9') || r == '.' || r == '-' {
				return r
			}
			return -1
		}, n)
		if cleaned == "" {
			return decimal.Decimal{}, false
		}
		d, err := decimal.NewFromString(cleaned)
		return d, err == nil
	}
	return decimal.Decimal{}, false
}

func asList(v any, paths ...string) ([]any, bool) {
	for _, p := range paths {
		if got, ok := dig(v, p); ok {
			if list, ok := got.([]any); ok {
				return list, true
			}
		}
	}
	return nil, false
}
