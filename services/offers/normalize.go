// Package offers maps provider payloads onto models.NormalizedOffer, resolves
// booking links and ranks the result.
package offers

import (
	"strings"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

const (
	HotelLimit  = 5
	FlightLimit = 10

	UnnamedHotel   = "Unnamed Hotel"
	UnknownAirline = "Unknown Airline"
	NotAvailable   = "N/A"
)

// Paths tried, in order, for each hotel field.
var (
	hotelListPaths  = []string{"result", "results", "properties", "hotels", "data"}
	hotelNamePaths  = []string{"hotel_name", "hotel_name_trans", "name", "property.name"}
	hotelCityPaths  = []string{"city", "city_trans", "city_name_en", "location", "district"}
	hotelPricePaths = []string{
		"composite_price_breakdown.gross_amount.value",
		"price_breakdown.gross_price",
		"min_total_price",
		"property.priceBreakdown.grossPrice.value",
		"price",
	}
	hotelCurrencyPaths = []string{
		"composite_price_breakdown.gross_amount.currency",
		"price_breakdown.currency",
		"currencycode",
		"currency_code",
		"currency",
	}
	hotelRatingPaths = []string{"review_score", "reviewScore", "property.reviewScore", "rating"}
)

// Normalize turns a raw provider result into at most HotelLimit hotels or
// FlightLimit flights, in provider order. An unrecognized payload yields an
// empty list and a NormalizationError; callers log it and carry on.
func Normalize(kind models.Kind, raw models.RawResult, intent *models.TravelIntent) ([]models.NormalizedOffer, error) {
	if kind == models.KindFlight {
		return normalizeFlights(raw, intent)
	}
	return normalizeHotels(raw, intent)
}

// ─── Hotels ───────────────────────────────────────────────────────────────────

func normalizeHotels(raw models.RawResult, intent *models.TravelIntent) ([]models.NormalizedOffer, error) {
	list, ok := asList(map[string]any(raw), hotelListPaths...)
	if !ok {
		return []models.NormalizedOffer{}, &models.NormalizationError{Kind: models.KindHotel, Reason: "no hotel list in payload"}
	}
	if len(list) > HotelLimit {
		list = list[:HotelLimit]
	}

	dates := models.OfferDates{Start: NotAvailable, End: NotAvailable}
	if intent != nil {
		dates = models.OfferDates{Start: orNA(intent.ArrivalDate), End: orNA(intent.DepartureDate)}
	}

	out := make([]models.NormalizedOffer, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		name := firstString(entry, hotelNamePaths...)
		city := firstString(entry, hotelCityPaths...)

		offer := models.NormalizedOffer{
			Kind:     models.KindHotel,
			Name:     orDefault(name, UnnamedHotel),
			Currency: orDefault(firstString(entry, hotelCurrencyPaths...), "USD"),
			Dates:    dates,
			Location: city,
			Raw:      entry,
		}
		if price, ok := firstNumber(entry, hotelPricePaths...); ok && !price.IsNegative() {
			offer.Price = decimal.NewNullDecimal(price)
		}
		if rating, ok := firstNumber(entry, hotelRatingPaths...); ok {
			offer.Rating = rating.InexactFloat64()
		}
		offer.Link = DecorateBookingURL(HotelLinks.Resolve(entry, name, city), intent)
		out = append(out, offer)
	}
	return out, nil
}

// ─── Flights ──────────────────────────────────────────────────────────────────

func normalizeFlights(raw models.RawResult, intent *models.TravelIntent) ([]models.NormalizedOffer, error) {
	// FlyScraper: {"data": {"itineraries": [...]}}
	if list, ok := asList(map[string]any(raw), "data.itineraries", "itineraries"); ok {
		return flyScraperOffers(list), nil
	}
	// Amadeus: {"data": [{"itineraries": [...], "price": {...}}], "dictionaries": {...}}
	if list, ok := asList(map[string]any(raw), "data"); ok {
		carriers, _ := dig(map[string]any(raw), "dictionaries.carriers")
		dict, _ := carriers.(map[string]any)
		return amadeusOffers(list, dict), nil
	}
	return []models.NormalizedOffer{}, &models.NormalizationError{Kind: models.KindFlight, Reason: "no itineraries in payload"}
}

func flyScraperOffers(list []any) []models.NormalizedOffer {
	if len(list) > FlightLimit {
		list = list[:FlightLimit]
	}
	out := make([]models.NormalizedOffer, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		airline := firstString(entry, "legs.0.carriers.marketing.0.name", "legs.0.carriers.operating.0.name")
		origin := firstString(entry, "legs.0.origin.displayCode", "legs.0.origin.name", "legs.0.origin.id")
		dest := firstString(entry, "legs.0.destination.displayCode", "legs.0.destination.name", "legs.0.destination.id")
		departure := firstString(entry, "legs.0.departure")

		offer := models.NormalizedOffer{
			Kind:     models.KindFlight,
			Name:     orDefault(airline, UnknownAirline),
			Currency: "USD",
			Dates: models.OfferDates{
				Start: orNA(departure),
				End:   orNA(lastLegArrival(entry)),
			},
			Location: dest,
			Duration: NotAvailable,
			Raw:      entry,
		}
		if price, ok := firstNumber(entry, "price.raw", "price.amount", "price.formatted", "price"); ok {
			offer.Price = decimal.NewNullDecimal(price)
		}
		if stops, ok := firstNumber(entry, "legs.0.stopCount"); ok {
			offer.Stops = int(stops.IntPart())
		}
		if minutes, ok := firstNumber(entry, "legs.0.durationInMinutes"); ok {
			offer.Duration = minutesDuration(int(minutes.IntPart()))
		}
		offer.Link = FlightLinks.Resolve(entry, airline, "flights", origin, "to", dest, datePart(departure))
		out = append(out, offer)
	}
	return out
}

func lastLegArrival(entry map[string]any) string {
	legs, _ := asList(entry, "legs")
	if len(legs) == 0 {
		return ""
	}
	return firstString(legs[len(legs)-1], "arrival")
}

func amadeusOffers(list []any, carriers map[string]any) []models.NormalizedOffer {
	if len(list) > FlightLimit {
		list = list[:FlightLimit]
	}
	out := make([]models.NormalizedOffer, 0, len(list))
	for _, item := range list {
		entry, ok := item.(map[string]any)
		if !ok {
			continue
		}
		segments, _ := asList(entry, "itineraries.0.segments")

		code := firstString(entry, "itineraries.0.segments.0.carrierCode", "validatingAirlineCodes.0")
		airline := airlineName(code, carriers)
		origin := firstString(entry, "itineraries.0.segments.0.departure.iataCode")
		departure := firstString(entry, "itineraries.0.segments.0.departure.at")
		var dest, arrival string
		if len(segments) > 0 {
			last := segments[len(segments)-1]
			dest = firstString(last, "arrival.iataCode")
			arrival = firstString(last, "arrival.at")
		}

		offer := models.NormalizedOffer{
			Kind:     models.KindFlight,
			Name:     orDefault(airline, UnknownAirline),
			Currency: orDefault(firstString(entry, "price.currency"), "USD"),
			Dates:    models.OfferDates{Start: orNA(departure), End: orNA(arrival)},
			Location: dest,
			Duration: orNA(isoDuration(firstString(entry, "itineraries.0.duration"))),
			Raw:      entry,
		}
		if len(segments) > 1 {
			offer.Stops = len(segments) - 1
		}
		if price, ok := firstNumber(entry, "price.grandTotal", "price.total"); ok {
			offer.Price = decimal.NewNullDecimal(price)
		}
		offer.Link = FlightLinks.Resolve(entry, airline, "flights", origin, "to", dest, datePart(departure))
		out = append(out, offer)
	}
	return out
}

func datePart(ts string) string {
	if d, _, ok := strings.Cut(ts, "T"); ok {
		return d
	}
	return ts
}

func orDefault(s, def string) string {
	if s == "" {
		return def
	}
	return s
}

func orNA(s string) string {
	return orDefault(s, NotAvailable)
}
