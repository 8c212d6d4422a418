package providers

import (
	"context"
	"fmt"
	"strconv"
	"strings"
	"time"

	"voyagent/models"
)

// Sample answers searches with generated payloads in the Booking and
// FlyScraper response shapes. It is used when no provider keys are
// configured; reports built from it are marked as estimated.
type Sample struct{}

// SampleName is the Name of the offline provider.
const SampleName = "sample"

// NewSample returns the offline provider.
func NewSample() *Sample { return &Sample{} }

func (s *Sample) Name() string { return SampleName }

// Search returns a payload for q.Kind built from the query parameters.
func (s *Sample) Search(ctx context.Context, q models.ProviderQuery) (models.RawResult, error) {
	if err := ctx.Err(); err != nil {
		return nil, &models.UpstreamError{Provider: s.Name(), Err: err}
	}
	if q.Kind == models.KindFlight {
		return sampleFlights(q.Params), nil
	}
	return sampleHotels(q.Params), nil
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

type sampleHotel struct {
	name    string
	nightly float64
	rating  float64
	area    string
}

var sampleHotelList = []sampleHotel{
	{"Grand City Hotel", 150, 8.9, "City Center"},
	{"Business Inn", 95, 8.2, "Business District"},
	{"Boutique Residence", 120, 8.7, "Arts District"},
	{"Economy Suites", 65, 7.6, "Near Airport"},
	{"Luxury Collection", 240, 9.3, "Historic Center"},
}

func sampleHotels(params map[string]string) models.RawResult {
	nights := nightsBetween(params["arrival_date"], params["departure_date"])

	result := make([]any, 0, len(sampleHotelList))
	for i, h := range sampleHotelList {
		total := h.nightly * float64(nights)
		result = append(result, map[string]any{
			"hotel_id":        float64(100000 + i),
			"hotel_name":      h.name,
			"district":        h.area,
			"review_score":    h.rating,
			"min_total_price": total,
			"currencycode":    "USD",
			"price_breakdown": map[string]any{
				"gross_price": total,
				"currency":    "USD",
			},
		})
	}
	return models.RawResult{"result": result, "count": float64(len(result))}
}

func nightsBetween(arrival, departure string) int {
	a, errA := time.Parse(models.DateLayout, arrival)
	d, errD := time.Parse(models.DateLayout, departure)
	if errA != nil || errD != nil || !d.After(a) {
		return 1
	}
	return int(d.Sub(a).Hours() / 24)
}

// ─── Flights ──────────────────────────────────────────────────────────────────

type routeInfo struct {
	basePrice float64
	minutes   int
}

// Keyed by the first three letters of the origin and destination codes,
// which are the same in both code spaces for the covered cities.
var sampleRoutes = map[string]routeInfo{
	"NYC-DFW": {240, 235}, "DFW-NYC": {240, 215},
	"NYC-LAX": {320, 380}, "LAX-NYC": {320, 330},
	"NYC-MIA": {180, 190}, "MIA-NYC": {180, 180},
	"NYC-CHI": {150, 150}, "CHI-NYC": {150, 130},
	"BOS-DEN": {230, 280}, "DEN-BOS": {230, 250},
	"SFO-SEA": {130, 125}, "SEA-SFO": {130, 125},
	"NYC-LON": {520, 420}, "LON-NYC": {520, 480},
	"NYC-PAR": {560, 440}, "PAR-NYC": {560, 500},
	"LON-PAR": {90, 75}, "PAR-LON": {90, 75},
}

type sampleAirline struct {
	name     string
	priceMod float64
	stops    int
}

var sampleAirlines = []sampleAirline{
	{"Delta Air Lines", 1.00, 0},
	{"United Airlines", 1.10, 0},
	{"American Airlines", 1.20, 0},
	{"Spirit Airlines", 0.65, 1},
	{"JetBlue", 0.85, 1},
}

func sampleFlights(params map[string]string) models.RawResult {
	origin := firstNonEmpty(params["originSkyId"], params["originLocationCode"])
	dest := firstNonEmpty(params["destinationSkyId"], params["destinationLocationCode"])

	info, ok := sampleRoutes[prefix3(origin)+"-"+prefix3(dest)]
	if !ok {
		info = routeInfo{350, 240}
	}
	adults, _ := strconv.Atoi(params["adults"])
	if adults <= 0 {
		adults = 1
	}
	depDate, err := time.Parse(models.DateLayout, params["departureDate"])
	if err != nil {
		depDate = time.Now().UTC()
	}

	itineraries := make([]any, 0, len(sampleAirlines))
	for i, opt := range sampleAirlines {
		price := float64(int(info.basePrice*opt.priceMod/5)*5) * float64(adults)
		dur := info.minutes
		if opt.stops > 0 {
			dur += 90
		}
		dep := time.Date(depDate.Year(), depDate.Month(), depDate.Day(), 6+i*3, 0, 0, 0, time.UTC)
		arr := dep.Add(time.Duration(dur) * time.Minute)

		itineraries = append(itineraries, map[string]any{
			"id": fmt.Sprintf("%s-%s-%d", origin, dest, i),
			"price": map[string]any{
				"raw":       price,
				"formatted": fmt.Sprintf("$%.0f", price),
			},
			"legs": []any{map[string]any{
				"origin":            map[string]any{"displayCode": origin},
				"destination":       map[string]any{"displayCode": dest},
				"departure":         dep.Format("2006-01-02T15:04:05"),
				"arrival":           arr.Format("2006-01-02T15:04:05"),
				"durationInMinutes": float64(dur),
				"stopCount":         float64(opt.stops),
				"carriers": map[string]any{
					"marketing": []any{map[string]any{"name": opt.name}},
				},
			}},
		})
	}
	return models.RawResult{
		"status": true,
		"data":   map[string]any{"itineraries": itineraries},
	}
}

func prefix3(code string) string {
	code = strings.ToUpper(code)
	if len(code) > 3 {
		return code[:3]
	}
	return code
}

func firstNonEmpty(values ...string) string {
	for _, v := range values {
		if v != "" {
			return v
		}
	}
	return ""
}
