package offers

import (
	"fmt"
	"strings"
)

var airlineNames = map[string]string{
	"AA": "American Airlines",
	"AS": "Alaska Airlines",
	"B6": "JetBlue",
	"DL": "Delta Air Lines",
	"F9": "Frontier Airlines",
	"NK": "Spirit Airlines",
	"UA": "United Airlines",
	"WN": "Southwest Airlines",
	"AC": "Air Canada",
	"AM": "Aeromexico",
	"TK": "Turkish Airlines",
	"LH": "Lufthansa",
	"AF": "Air France",
	"BA": "British Airways",
	"EK": "Emirates",
	"QR": "Qatar Airways",
	"FR": "Ryanair",
	"U2": "EasyJet",
	"KL": "KLM",
	"IB": "Iberia",
	"LX": "Swiss International Air Lines",
	"SQ": "Singapore Airlines",
	"NH": "ANA",
	"JL": "Japan Airlines",
	"EY": "Etihad Airways",
}

// airlineName resolves a carrier code through the response's own carrier
// dictionary first, then the built-in table.
func airlineName(code string, dictionary map[string]any) string {
	if code == "" {
		return ""
	}
	if name, ok := dictionary[code].(string); ok && name != "" {
		return titleCase(name)
	}
	if name, ok := airlineNames[code]; ok {
		return name
	}
	return code + " Airlines"
}

// titleCase turns Amadeus' "DELTA AIR LINES" into "Delta Air Lines".
func titleCase(s string) string {
	words := strings.Fields(strings.ToLower(s))
	for i, w := range words {
		words[i] = strings.ToUpper(w[:1]) + w[1:]
	}
	return strings.Join(words, " ")
}

// isoDuration converts an ISO 8601 duration (PT5H30M) to "5h 30m".
func isoDuration(iso string) string {
	if iso == "" {
		return ""
	}
	iso = strings.TrimPrefix(iso, "PT")
	result := ""
	if hIdx := strings.Index(iso, "H"); hIdx >= 0 {
		result += iso[:hIdx] + "h"
		iso = iso[hIdx+1:]
	}
	if mIdx := strings.Index(iso, "M"); mIdx >= 0 {
		if result != "" {
			result += " "
		}
		result += iso[:mIdx] + "m"
	}
	return result
}

func minutesDuration(minutes int) string {
	h := minutes / 60
	m := minutes % 60
	if m > 0 {
		return fmt.Sprintf("%dh %dm", h, m)
	}
	return fmt.Sprintf("%dh", h)
}
