package location

import (
	"errors"
	"fmt"
	"strconv"
	"strings"
)

// ErrEmptyLocation is returned when a lookup is attempted without a name.
var ErrEmptyLocation = errors.New("location is required for bounding box lookup")

// BoundingBox is a rectangular search area.
type BoundingBox struct {
	LatMin float64
	LatMax float64
	LonMin float64
	LonMax float64
}

// String renders the box in the "lat_min,lat_max,lon_min,lon_max" form the
// hotel provider expects.
func (b BoundingBox) String() string {
	return strings.Join([]string{
		strconv.FormatFloat(b.LatMin, 'f', -1, 64),
		strconv.FormatFloat(b.LatMax, 'f', -1, 64),
		strconv.FormatFloat(b.LonMin, 'f', -1, 64),
		strconv.FormatFloat(b.LonMax, 'f', -1, 64),
	}, ",")
}

// Contains reports whether the point lies inside the box.
func (b BoundingBox) Contains(lat, lon float64) bool {
	return lat >= b.LatMin && lat <= b.LatMax && lon >= b.LonMin && lon <= b.LonMax
}

// DefaultUS covers the continental United States.
var DefaultUS = BoundingBox{24.396308, 49.384358, -125.0, -66.93457}

// ─── Lookup ───────────────────────────────────────────────────────────────────

// NormalizeRegion lowercases a name and removes spaces and periods.
// Other punctuation is kept.
func NormalizeRegion(name string) string {
	name = strings.ToLower(name)
	return strings.NewReplacer(" ", "", ".", "", "\t", "").Replace(name)
}

// LookupBoundingBox resolves a state, state abbreviation or known city to
// its state's bounding box. Unknown names get DefaultUS.
func LookupBoundingBox(name string) (BoundingBox, error) {
	if strings.TrimSpace(name) == "" {
		return BoundingBox{}, ErrEmptyLocation
	}
	box, _ := lookupState(NormalizeRegion(name))
	return box, nil
}

// StateFor returns the canonical state key a name resolves to, if any.
func StateFor(name string) (string, bool) {
	key := NormalizeRegion(name)
	if _, ok := stateBoxes[key]; ok {
		return key, true
	}
	if state, ok := stateAbbreviations[key]; ok {
		return state, true
	}
	if state, ok := cityStates[key]; ok {
		return state, true
	}
	// "austin,tx" and similar: try the parts around the first comma.
	if city, region, found := strings.Cut(key, ","); found {
		if state, ok := StateFor(region); ok {
			return state, true
		}
		return StateFor(city)
	}
	return "", false
}

func lookupState(key string) (BoundingBox, bool) {
	state, ok := StateFor(key)
	if !ok {
		return DefaultUS, false
	}
	return stateBoxes[state], true
}

// mustBox parses the static table literals.
func mustBox(s string) BoundingBox {
	parts := strings.Split(s, ",")
	if len(parts) != 4 {
		panic(fmt.Sprintf("location: bad bounding box %q", s))
	}
	var v [4]float64
	for i, p := range parts {
		f, err := strconv.ParseFloat(p, 64)
		if err != nil {
			panic(fmt.Sprintf("location: bad bounding box %q: %v", s, err))
		}
		v[i] = f
	}
	return BoundingBox{v[0], v[1], v[2], v[3]}
}

// ─── Tables ───────────────────────────────────────────────────────────────────

var stateBoxes = map[string]BoundingBox{
	"alabama":       mustBox("30.223334,35.008028,-88.473227,-84.888246"),
	"alaska":        mustBox("51.214183,71.365162,-170.224871,-129.993001"),
	"arizona":       mustBox("31.332177,37.00426,-114.818269,-109.045223"),
	"arkansas":      mustBox("33.004106,36.4996,-94.617919,-89.644395"),
	"california":    mustBox("32.5121,42.0126,-124.6509,-114.1315"),
	"colorado":      mustBox("36.992424,41.003444,-109.060253,-102.041524"),
	"connecticut":   mustBox("40.95017,42.0506,-73.727775,-71.786994"),
	"delaware":      mustBox("38.451013,39.839007,-75.789,-75.048939"),
	"florida":       mustBox("24.396308,31.000888,-87.634938,-79.974307"),
	"georgia":       mustBox("30.357851,35.000659,-85.605165,-80.839729"),
	"hawaii":        mustBox("18.86546,22.2356,-160.2471,-154.8066"),
	"idaho":         mustBox("41.988057,49.001146,-117.243027,-111.043564"),
	"illinois":      mustBox("36.970298,42.508481,-91.513079,-87.019935"),
	"indiana":       mustBox("37.771742,41.761141,-88.097888,-84.784579"),
	"iowa":          mustBox("40.375501,43.501196,-96.639704,-90.140061"),
	"kansas":        mustBox("36.993016,40.003162,-102.051744,-94.588413"),
	"kentucky":      mustBox("36.497129,39.147458,-89.571509,-81.964971"),
	"louisiana":     mustBox("28.928609,33.019457,-94.043147,-89.742652"),
	"maine":         mustBox("42.977764,47.459686,-71.083924,-66.949895"),
	"maryland":      mustBox("37.886775,39.723043,-79.487651,-75.048939"),
	"massachusetts": mustBox("41.237964,42.886589,-73.508142,-69.928393"),
	"michigan":      mustBox("41.696118,48.306064,-90.418136,-82.413474"),
	"minnesota":     mustBox("43.499356,49.384358,-97.239209,-89.491739"),
	"mississippi":   mustBox("30.173943,35.004096,-91.655009,-88.09976"),
	"missouri":      mustBox("35.995683,40.61364,-95.774704,-89.099727"),
	"montana":       mustBox("44.358221,49.00139,-116.050003,-104.039138"),
	"nebraska":      mustBox("39.999998,43.001708,-104.053514,-95.30829"),
	"nevada":        mustBox("35.001857,42.002207,-120.005746,-114.039648"),
	"newhampshire":  mustBox("42.697041,45.305476,-72.557247,-70.610621"),
	"newjersey":     mustBox("38.928519,41.357423,-75.559614,-73.893979"),
	"newmexico":     mustBox("31.332177,37.000232,-109.050173,-103.001964"),
	"newyork":       mustBox("40.477399,45.01585,-79.76259,-71.856214"),
	"northcarolina": mustBox("33.842316,36.588117,-84.321869,-75.459534"),
	"northdakota":   mustBox("45.935054,49.000574,-104.049856,-96.554507"),
	"ohio":          mustBox("38.403202,41.977523,-84.820159,-80.518693"),
	"oklahoma":      mustBox("33.615833,37.002206,-103.002565,-94.430662"),
	"oregon":        mustBox("41.991794,46.292035,-124.566244,-116.463104"),
	"pennsylvania":  mustBox("39.7198,42.26986,-80.519891,-74.689516"),
	"rhodeisland":   mustBox("41.146339,42.018798,-71.862772,-71.12057"),
	"southcarolina": mustBox("32.0346,35.2154,-83.3539,-78.54203"),
	"southdakota":   mustBox("42.479635,45.94545,-104.057698,-96.436589"),
	"tennessee":     mustBox("34.982972,36.678118,-90.310298,-81.6469"),
	"texas":         mustBox("25.837377,36.500704,-106.645646,-93.508292"),
	"utah":          mustBox("36.997968,42.001567,-114.052962,-109.041058"),
	"vermont":       mustBox("42.726853,45.016659,-73.43774,-71.464555"),
	"virginia":      mustBox("36.540738,39.466012,-83.675553,-75.242266"),
	"washington":    mustBox("45.543541,49.002494,-124.848974,-116.916364"),
	"westvirginia":  mustBox("37.201483,39.722302,-82.644739,-77.719519"),
	"wisconsin":     mustBox("42.491983,47.309825,-92.888114,-86.805415"),
	"wyoming":       mustBox("40.994746,45.005904,-111.056888,-104.05216"),
}

var stateAbbreviations = map[string]string{
	"al": "alabama", "ak": "alaska", "az": "arizona", "ar": "arkansas",
	"ca": "california", "co": "colorado", "ct": "connecticut", "de": "delaware",
	"fl": "florida", "ga": "georgia", "hi": "hawaii", "id": "idaho",
	"il": "illinois", "in": "indiana", "ia": "iowa", "ks": "kansas",
	"ky": "kentucky", "la": "louisiana", "me": "maine", "md": "maryland",
	"ma": "massachusetts", "mi": "michigan", "mn": "minnesota", "ms": "mississippi",
	"mo": "missouri", "mt": "montana", "ne": "nebraska", "nv": "nevada",
	"nh": "newhampshire", "nj": "newjersey", "nm": "newmexico", "ny": "newyork",
	"nc": "northcarolina", "nd": "northdakota", "oh": "ohio", "ok": "oklahoma",
	"or": "oregon", "pa": "pennsylvania", "ri": "rhodeisland", "sc": "southcarolina",
	"sd": "southdakota", "tn": "tennessee", "tx": "texas", "ut": "utah",
	"vt": "vermont", "va": "virginia", "wa": "washington", "wv": "westvirginia",
	"wi": "wisconsin", "wy": "wyoming",
}

// Major cities, keyed the same way as states.
var cityStates = map[string]string{
	"austin":       "texas",
	"dallas":       "texas",
	"houston":      "texas",
	"sanantonio":   "texas",
	"elpaso":       "texas",
	"losangeles":   "california",
	"sanfrancisco": "california",
	"sandiego":     "california",
	"sanjose":      "california",
	"sacramento":   "california",
	"newyorkcity":  "newyork",
	"nyc":          "newyork",
	"buffalo":      "newyork",
	"chicago":      "illinois",
	"miami":        "florida",
	"orlando":      "florida",
	"tampa":        "florida",
	"seattle":      "washington",
	"portland":     "oregon",
	"denver":       "colorado",
	"boston":       "massachusetts",
	"atlanta":      "georgia",
	"phoenix":      "arizona",
	"lasvegas":     "nevada",
	"philadelphia": "pennsylvania",
	"pittsburgh":   "pennsylvania",
	"detroit":      "michigan",
	"nashville":    "tennessee",
	"memphis":      "tennessee",
	"neworleans":   "louisiana",
	"saltlakecity": "utah",
	"minneapolis":  "minnesota",
	"charlotte":    "northcarolina",
	"honolulu":     "hawaii",
	"anchorage":    "alaska",
	"baltimore":    "maryland",
	"cleveland":    "ohio",
	"columbus":     "ohio",
	"kansascity":   "missouri",
	"stlouis":      "missouri",
	"indianapolis": "indiana",
	"milwaukee":    "wisconsin",
	"albuquerque":  "newmexico",
	"louisville":   "kentucky",
	"oklahomacity": "oklahoma",
	"charleston":   "southcarolina",
	"richmond":     "virginia",
	"birmingham":   "alabama",
	"boise":        "idaho",
	"omaha":        "nebraska",
}
