// Package planner turns a normalized TravelIntent into provider queries.
package planner

import (
	"errors"
	"strconv"
	"strings"

	"voyagent/models"
	"voyagent/services/location"
)

const (
	FlightProviderFlyScraper = "flyscraper"
	FlightProviderAmadeus    = "amadeus"

	amadeusMaxOffers = 10
)

// Planner builds ProviderQuery values. It is stateless apart from the code
// tables it was created with and safe for concurrent use.
type Planner struct {
	codes          *location.Codes
	flightProvider string
}

// New returns a planner resolving city codes through codes. flightProvider
// selects the parameter set FlightQuery produces.
func New(codes *location.Codes, flightProvider string) *Planner {
	if codes == nil {
		codes = location.NewCodes()
	}
	if flightProvider == "" {
		flightProvider = FlightProviderFlyScraper
	}
	return &Planner{codes: codes, flightProvider: flightProvider}
}

// Query dispatches on kind.
func (p *Planner) Query(kind models.Kind, intent *models.TravelIntent) (models.ProviderQuery, error) {
	if kind == models.KindFlight {
		return p.FlightQuery(intent)
	}
	return p.HotelQuery(intent)
}

// HotelQuery builds the Booking list-by-map request. Destinations that are
// not a known state, abbreviation or city search the continental US and are
// flagged low-confidence.
func (p *Planner) HotelQuery(intent *models.TravelIntent) (models.ProviderQuery, error) {
	box, err := location.LookupBoundingBox(intent.Location)
	if err != nil {
		if errors.Is(err, location.ErrEmptyLocation) {
			return models.ProviderQuery{}, &models.MissingFieldError{Field: "location"}
		}
		return models.ProviderQuery{}, err
	}
	_, known := location.StateFor(intent.Location)

	purpose := intent.TravelPurpose
	if purpose == "" {
		purpose = models.DefaultTravelPurpose
	}

	return models.ProviderQuery{
		Kind: models.KindHotel,
		Params: map[string]string{
			"room_qty":                  "1",
			"guest_qty":                 strconv.Itoa(intent.GuestQty),
			"children_qty":              strconv.Itoa(intent.ChildrenQty),
			"children_age":              intent.ChildrenAgeString(),
			"bbox":                      box.String(),
			"price_filter_currencycode": "USD",
			"languagecode":              "en-us",
			"travel_purpose":            purpose,
			"order_by":                  "popularity",
			"arrival_date":              intent.ArrivalDate,
			"departure_date":            intent.DepartureDate,
			"categories_filter":         "class::1,class::2,class::3",
			"offset":                    "0",
		},
		LowConfidence: !known,
	}, nil
}

// FlightQuery builds the request for the configured flight provider.
func (p *Planner) FlightQuery(intent *models.TravelIntent) (models.ProviderQuery, error) {
	if p.flightProvider == FlightProviderAmadeus {
		return p.AmadeusQuery(intent)
	}
	return p.FlyScraperQuery(intent)
}

// FlyScraperQuery builds a one-way FlyScraper search on sky IDs.
func (p *Planner) FlyScraperQuery(intent *models.TravelIntent) (models.ProviderQuery, error) {
	if err := requireRoute(intent); err != nil {
		return models.ProviderQuery{}, err
	}
	origin, originKnown := p.codes.SkyID(intent.Origin)
	dest, destKnown := p.codes.SkyID(intent.Location)

	return models.ProviderQuery{
		Kind: models.KindFlight,
		Params: map[string]string{
			"originSkyId":      origin,
			"destinationSkyId": dest,
			"departureDate":    intent.ArrivalDate,
			"adults":           strconv.Itoa(intent.GuestQty),
			"cabinClass":       "economy",
			"currency":         "USD",
			"sort":             "best",
		},
		LowConfidence: !originKnown || !destKnown,
	}, nil
}

// AmadeusQuery builds a round-trip Amadeus flight-offers search on IATA codes.
func (p *Planner) AmadeusQuery(intent *models.TravelIntent) (models.ProviderQuery, error) {
	if err := requireRoute(intent); err != nil {
		return models.ProviderQuery{}, err
	}
	origin, originKnown := p.codes.IATA(intent.Origin)
	dest, destKnown := p.codes.IATA(intent.Location)

	params := map[string]string{
		"originLocationCode":      origin,
		"destinationLocationCode": dest,
		"departureDate":           intent.ArrivalDate,
		"adults":                  strconv.Itoa(intent.GuestQty),
		"max":                     strconv.Itoa(amadeusMaxOffers),
		"currencyCode":            "USD",
	}
	if intent.DepartureDate != "" {
		params["returnDate"] = intent.DepartureDate
	}
	if intent.ChildrenQty > 0 {
		params["children"] = strconv.Itoa(intent.ChildrenQty)
	}

	return models.ProviderQuery{
		Kind:          models.KindFlight,
		Params:        params,
		LowConfidence: !originKnown || !destKnown,
	}, nil
}

func requireRoute(intent *models.TravelIntent) error {
	if strings.TrimSpace(intent.Origin) == "" {
		return &models.MissingFieldError{Field: "origin"}
	}
	if strings.TrimSpace(intent.Location) == "" {
		return &models.MissingFieldError{Field: "location"}
	}
	return nil
}
