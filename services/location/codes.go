package location

import "strings"

// CodeSpace names one provider's city identifier system. Codes from
// different spaces are never interchangeable.
type CodeSpace string

const (
	// SkyID is the skyscanner-style space used by FlyScraper ("NYCA").
	SkyID CodeSpace = "sky"
	// IATA is the airport/metropolitan space used by Amadeus ("NYC").
	IATA CodeSpace = "iata"
)

// skyFallbackSuffix is appended to unknown city names to fabricate a sky ID.
const skyFallbackSuffix = "A"

// Codes resolves city names to provider short codes. A Codes value is
// immutable; Merge returns a new one.
type Codes struct {
	sky  map[string]string
	iata map[string]string
}

// NewCodes returns a resolver over the built-in tables.
func NewCodes() *Codes {
	return &Codes{sky: skyIDs, iata: iataCities}
}

// Merge returns a resolver whose tables include extra entries, which take
// precedence over the built-in ones.
func (c *Codes) Merge(space CodeSpace, extra map[string]string) *Codes {
	out := &Codes{sky: c.sky, iata: c.iata}
	base := c.sky
	if space == IATA {
		base = c.iata
	}
	merged := make(map[string]string, len(base)+len(extra))
	for k, v := range base {
		merged[k] = v
	}
	for k, v := range extra {
		merged[normalizeCity(k)] = strings.ToUpper(strings.TrimSpace(v))
	}
	if space == IATA {
		out.iata = merged
	} else {
		out.sky = merged
	}
	return out
}

// Lookup resolves name in the given code space. known is false when the
// code was derived rather than found; such codes may mean nothing to the
// provider and results built on them are low-confidence.
func (c *Codes) Lookup(space CodeSpace, name string) (code string, known bool) {
	if space == IATA {
		return c.IATA(name)
	}
	return c.SkyID(name)
}

// SkyID returns the FlyScraper identifier for a city.
func (c *Codes) SkyID(name string) (string, bool) {
	key := normalizeCity(name)
	if key == "" {
		return "", false
	}
	if code, ok := c.sky[key]; ok {
		return code, true
	}
	return strings.ToUpper(key) + skyFallbackSuffix, false
}

// IATA returns the Amadeus location code for a city or airport.
func (c *Codes) IATA(name string) (string, bool) {
	key := normalizeCity(name)
	if key == "" {
		return "", false
	}
	if code, ok := c.iata[key]; ok {
		return code, true
	}
	upper := strings.ToUpper(key)
	// Airport codes resolve to their metropolitan code for city searches.
	if city, ok := airportToCity[upper]; ok {
		return city, true
	}
	return upper, false
}

func normalizeCity(name string) string {
	return strings.ToLower(strings.TrimSpace(name))
}

// ─── Tables ───────────────────────────────────────────────────────────────────

var skyIDs = map[string]string{
	"new york":      "NYCA",
	"dallas":        "DFWA",
	"paris":         "PARI",
	"los angeles":   "LAXA",
	"san francisco": "SFOA",
	"london":        "LOND",
	"chicago":       "CHIA",
	"miami":         "MIAA",
	"boston":        "BOSA",
	"seattle":       "SEAA",
	"austin":        "AUS",
	"houston":       "HOUA",
	"atlanta":       "ATLA",
	"denver":        "DENA",
	"las vegas":     "LASA",
	"orlando":       "ORLA",
	"washington":    "WASA",
	"tokyo":         "TYOA",
	"rome":          "ROME",
	"berlin":        "BERL",
	"istanbul":      "ISTA",
	"dubai":         "DXBA",
}

var iataCities = map[string]string{
	"new york":      "NYC",
	"london":        "LON",
	"paris":         "PAR",
	"los angeles":   "LAX",
	"san francisco": "SFO",
	"dallas":        "DFW",
	"chicago":       "CHI",
	"miami":         "MIA",
	"boston":        "BOS",
	"seattle":       "SEA",
	"austin":        "AUS",
	"houston":       "HOU",
	"atlanta":       "ATL",
	"denver":        "DEN",
	"las vegas":     "LAS",
	"orlando":       "ORL",
	"washington":    "WAS",
	"dubai":         "DXB",
	"istanbul":      "IST",
	"frankfurt":     "FRA",
	"amsterdam":     "AMS",
	"berlin":        "BER",
	"madrid":        "MAD",
	"barcelona":     "BCN",
	"rome":          "ROM",
	"tashkent":      "TAS",
	"tokyo":         "TYO",
	"singapore":     "SIN",
	"bangkok":       "BKK",
}

// airportToCity maps airport IATA codes to their metropolitan city code.
var airportToCity = map[string]string{
	"LHR": "LON", "LGW": "LON", "STN": "LON", "LTN": "LON",
	"CDG": "PAR", "ORY": "PAR",
	"JFK": "NYC", "LGA": "NYC", "EWR": "NYC",
	"ORD": "CHI", "MDW": "CHI",
	"IAD": "WAS", "DCA": "WAS",
	"FCO": "ROM", "CIA": "ROM",
	"NRT": "TYO", "HND": "TYO",
	"SXF": "BER",
}
