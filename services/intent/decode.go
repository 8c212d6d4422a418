package intent

import (
	"encoding/json"
	"strconv"
	"strings"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

// fieldAliases lists, per intent field, the JSON keys a reply may use for it.
// The first key present with a non-null value wins.
var fieldAliases = []struct {
	field string
	keys  []string
}{
	{"location", []string{"location", "destination", "destinationCity", "destination_city", "city"}},
	{"origin", []string{"origin", "originCity", "origin_city", "from"}},
	{"arrival_date", []string{"arrival_date", "start_date", "check_in", "checkin", "outbound_date"}},
	{"departure_date", []string{"departure_date", "end_date", "return_date", "returnDate", "check_out", "checkout"}},
	{"guest_qty", []string{"guest_qty", "passengers", "adults", "guests"}},
	{"children_qty", []string{"children_qty", "children"}},
	{"children_age", []string{"children_age", "children_ages"}},
	{"budget", []string{"budget", "total_budget"}},
	{"flight_budget", []string{"flight_budget"}},
	{"travel_purpose", []string{"travel_purpose", "purpose"}},
}

// DecodeFields maps a decoded JSON object onto a TravelIntent. Values that
// have the wrong type are skipped and leave the field at its zero value.
func DecodeFields(fields map[string]any) *models.TravelIntent {
	resolved := make(map[string]any, len(fieldAliases))
	for _, alias := range fieldAliases {
		for _, key := range alias.keys {
			if v, ok := fields[key]; ok && v != nil {
				resolved[alias.field] = v
				break
			}
		}
	}

	intent := &models.TravelIntent{
		Location:      asString(resolved["location"]),
		Origin:        asString(resolved["origin"]),
		ArrivalDate:   asString(resolved["arrival_date"]),
		DepartureDate: asString(resolved["departure_date"]),
		TravelPurpose: strings.ToLower(asString(resolved["travel_purpose"])),
		ChildrenAge:   asInts(resolved["children_age"]),
	}
	if n, ok := asNumber(resolved["guest_qty"]); ok {
		intent.GuestQty = int(n.IntPart())
	}
	if n, ok := asNumber(resolved["children_qty"]); ok {
		intent.ChildrenQty = int(n.IntPart())
	}
	if n, ok := asNumber(resolved["budget"]); ok {
		intent.Budget = decimal.NewNullDecimal(n)
	}
	if n, ok := asNumber(resolved["flight_budget"]); ok {
		intent.FlightBudget = decimal.NewNullDecimal(n)
	}
	return intent
}

func asString(v any) string {
	switch s := v.(type) {
	case string:
		s = strings.TrimSpace(s)
		if strings.EqualFold(s, "null") || strings.EqualFold(s, "none") {
			return ""
		}
		return s
	case json.Number:
		return s.String()
	}
	return ""
}

// asNumber accepts JSON numbers and strings such as "$1,200" or "850.50 USD".
func asNumber(v any) (decimal.Decimal, bool) {
	switch n := v.(type) {
	case json.Number:
		d, err := decimal.NewFromString(n.String())
		return d, err == nil
	case float64:
		return decimal.NewFromFloat(n), true
	case int:
		return decimal.NewFromInt(int64(n)), true
	case string:
		return parseAmount(n)
	}
	return decimal.Decimal{}, false
}

// parseAmount keeps digits, one decimal point and a leading minus sign.
func parseAmount(s string) (decimal.Decimal, bool) {
	var b strings.Builder
	for i, r := range strings.TrimSpace(s) {
		switch {
		case r >= '0' && r <= '9', r == '.':
			b.WriteRune(r)
		case r == '-' && i == 0:
			b.WriteRune(r)
		}
	}
	if b.Len() == 0 {
		return decimal.Decimal{}, false
	}
	d, err := decimal.NewFromString(b.String())
	return d, err == nil
}

func asInts(v any) []int {
	switch list := v.(type) {
	case []any:
		out := make([]int, 0, len(list))
		for _, item := range list {
			if n, ok := asNumber(item); ok {
				out = append(out, int(n.IntPart()))
			}
		}
		return out
	case string:
		// "5,8" or "5 and 8"
		out := []int{}
		for _, part := range strings.FieldsFunc(list, func(r rune) bool { return r < '0' || r > '9' }) {
			if n, err := strconv.Atoi(part); err == nil {
				out = append(out, n)
			}
		}
		return out
	}
	return nil
}
