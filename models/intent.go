package models

import (
	"fmt"
	"strings"

	"github.com/shopspring/decimal"
)

// DateLayout is the ISO calendar date format used for every intent date.
const DateLayout = "2006-01-02"

const (
	DefaultTravelPurpose = "leisure"
	DefaultGuestQty      = 2
)

// TravelIntent is the structured form of one user request.
//
// For hotel searches ArrivalDate/DepartureDate are check-in and check-out.
// For flight searches they are the outbound and return dates.
type TravelIntent struct {
	Origin        string              `json:"origin,omitempty"`
	Location      string              `json:"location"`
	ArrivalDate   string              `json:"arrival_date"`
	DepartureDate string              `json:"departure_date"`
	GuestQty      int                 `json:"guest_qty"`
	ChildrenQty   int                 `json:"children_qty"`
	ChildrenAge   []int               `json:"children_age"`
	Budget        decimal.NullDecimal `json:"budget"`
	FlightBudget  decimal.NullDecimal `json:"flight_budget"`
	TravelPurpose string              `json:"travel_purpose"`
}

// ApplyDefaults fills the count and purpose fields that have no usable value.
func (t *TravelIntent) ApplyDefaults(guests int) {
	if t.GuestQty <= 0 {
		t.GuestQty = guests
	}
	if t.ChildrenQty < 0 {
		t.ChildrenQty = 0
	}
	if t.ChildrenAge == nil {
		t.ChildrenAge = []int{}
	}
	if strings.TrimSpace(t.TravelPurpose) == "" {
		t.TravelPurpose = DefaultTravelPurpose
	}
	if t.Budget.Valid && t.Budget.Decimal.IsNegative() {
		t.Budget = decimal.NullDecimal{}
	}
	if t.FlightBudget.Valid && t.FlightBudget.Decimal.IsNegative() {
		t.FlightBudget = decimal.NullDecimal{}
	}
}

// ChildrenAgeString joins the children ages the way the hotel provider expects them.
func (t *TravelIntent) ChildrenAgeString() string {
	parts := make([]string, 0, len(t.ChildrenAge))
	for _, age := range t.ChildrenAge {
		parts = append(parts, fmt.Sprintf("%d", age))
	}
	return strings.Join(parts, ",")
}

// QueryType selects which providers a request is sent to.
type QueryType string

const (
	QueryFlight QueryType = "flight"
	QueryHotel  QueryType = "hotel"
	QueryTrip   QueryType = "trip"
	QueryAuto   QueryType = "auto"
)

// ParseQueryType accepts the selector values of the CLI and HTTP surfaces.
func ParseQueryType(s string) (QueryType, error) {
	switch QueryType(strings.ToLower(strings.TrimSpace(s))) {
	case QueryFlight:
		return QueryFlight, nil
	case QueryHotel:
		return QueryHotel, nil
	case QueryTrip:
		return QueryTrip, nil
	case QueryAuto, "":
		return QueryAuto, nil
	}
	return "", fmt.Errorf("unknown query type %q (want flight, hotel, trip or auto)", s)
}
