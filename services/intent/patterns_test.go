package intent

import (
	"context"
	"errors"
	"testing"
	"time"

	"github.com/shopspring/decimal"

	"voyagent/models"
	"voyagent/services/location"
)

func fixedClock() time.Time {
	return time.Date(2026, time.March, 1, 9, 0, 0, 0, time.UTC)
}

func TestPattern_Extract(t *testing.T) {
	tests := []struct {
		name         string
		text         string
		origin       string
		location     string
		arrival      string
		departure    string
		guests       int
		children     int
		budget       string
		flightBudget string
	}{
		{
			name:      "hotel in city with state",
			text:      "hotel in Austin, TX from June 10th to June 14th for 2 adults",
			location:  "austin",
			arrival:   "2026-06-10",
			departure: "2026-06-14",
			guests:    2,
		},
		{
			name:      "trip with origin and budget",
			text:      "plan me a 3 day trip to Dallas, Texas from New York from July 10th to July 13th, 2025. Budget is 500 for 2 people",
			origin:    "new york",
			location:  "dallas",
			arrival:   "2026-07-10",
			departure: "2026-07-13",
			guests:    2,
			budget:    "500",
		},
		{
			name:         "flight budget kept apart from total",
			text:         "Flight to Paris from Boston on May 3rd to May 9th, flight budget $800 and total budget of $2,500",
			origin:       "boston",
			location:     "paris",
			arrival:      "2026-05-03",
			departure:    "2026-05-09",
			guests:       1,
			budget:       "2500",
			flightBudget: "800",
		},
		{
			name:      "abbreviated month and same-month range",
			text:      "need a room in Denver for 3 guests and 1 child Sep 5-9",
			location:  "denver",
			arrival:   "2026-09-05",
			departure: "2026-09-09",
			guests:    3,
			children:  1,
		},
		{
			name:      "range across new year",
			text:      "fly to Chicago Dec 28 to Jan 3",
			location:  "chicago",
			arrival:   "2026-12-28",
			departure: "2027-01-03",
			guests:    1,
		},
		{
			name:     "euro budget",
			text:     "hotel in Paris, budget €800 for 2 adults",
			location: "paris",
			guests:   2,
			budget:   "800",
		},
		{
			name:     "pound budget with thousands separator",
			text:     "hotel in London, budget is £1,200",
			location: "london",
			guests:   1,
			budget:   "1200",
		},
		{
			name:     "abbreviated place name",
			text:     "fly to St. Louis from Boston",
			origin:   "boston",
			location: "st louis",
			guests:   1,
		},
		{
			name:     "verb after to is not a place",
			text:     "I want to go to Paris",
			location: "paris",
			guests:   1,
		},
		{
			name:   "nothing recognizable keeps defaults",
			text:   "I need a vacation soon",
			guests: 1,
		},
	}

	p := NewPattern(fixedClock)
	for _, tt := range tests {
		t.Run(tt.name, func(t *testing.T) {
			got, err := p.Extract(context.Background(), tt.text)
			if err != nil {
				t.Fatalf("unexpected error: %v", err)
			}
			if got.Origin != tt.origin {
				t.Errorf("origin: expected %q, got %q", tt.origin, got.Origin)
			}
			if got.Location != tt.location {
				t.Errorf("location: expected %q, got %q", tt.location, got.Location)
			}
			if got.ArrivalDate != tt.arrival || got.DepartureDate != tt.departure {
				t.Errorf("dates: expected %s..%s, got %s..%s", tt.arrival, tt.departure, got.ArrivalDate, got.DepartureDate)
			}
			if got.GuestQty != tt.guests {
				t.Errorf("guests: expected %d, got %d", tt.guests, got.GuestQty)
			}
			if got.ChildrenQty != tt.children {
				t.Errorf("children: expected %d, got %d", tt.children, got.ChildrenQty)
			}
			assertAmount(t, "budget", got.Budget, tt.budget)
			assertAmount(t, "flight budget", got.FlightBudget, tt.flightBudget)
			if got.TravelPurpose != models.DefaultTravelPurpose {
				t.Errorf("expected default purpose, got %q", got.TravelPurpose)
			}
		})
	}
}

func TestPattern_MonthNamesAreNotPlaces(t *testing.T) {
	p := NewPattern(fixedClock)
	got, _ := p.Extract(context.Background(), "from June 10th to June 14th")
	if got.Origin != "" || got.Location != "" {
		t.Errorf("expected no places, got origin %q location %q", got.Origin, got.Location)
	}
	if got.ArrivalDate != "2026-06-10" {
		t.Errorf("expected the date range to still be read, got %q", got.ArrivalDate)
	}
}

func TestPattern_AbbreviatedPlaceResolvesState(t *testing.T) {
	got, _ := NewPattern(fixedClock).Extract(context.Background(), "hotel in St. Louis for 2 guests")
	if state, ok := location.StateFor(got.Location); !ok || state != "missouri" {
		t.Errorf("expected %q to resolve to missouri, got %q %v", got.Location, state, ok)
	}
}

func TestPattern_InvalidDayIsIgnored(t *testing.T) {
	p := NewPattern(fixedClock)
	got, _ := p.Extract(context.Background(), "hotel in Miami Feb 30 to Mar 2")
	if got.ArrivalDate != "" || got.DepartureDate != "" {
		t.Errorf("expected no dates, got %q..%q", got.ArrivalDate, got.DepartureDate)
	}
	if got.Location != "miami" {
		t.Errorf("expected other fields to survive, got location %q", got.Location)
	}
}

func TestPattern_EmptyText(t *testing.T) {
	_, err := NewPattern(fixedClock).Extract(context.Background(), "   ")
	var ee *models.ExtractionError
	if !errors.As(err, &ee) {
		t.Fatalf("expected ExtractionError, got %v", err)
	}
}

func TestMonthOf(t *testing.T) {
	tests := []struct {
		word string
		want time.Month
		ok   bool
	}{
		{"jan", time.January, true},
		{"june", time.June, true},
		{"sept", time.September, true},
		{"dec.", time.December, true},
		{"marble", 0, false},
		{"mayor", 0, false},
		{"ma", 0, false},
	}
	for _, tt := range tests {
		got, ok := monthOf(tt.word)
		if ok != tt.ok || got != tt.want {
			t.Errorf("monthOf(%q) = %v, %v; expected %v, %v", tt.word, got, ok, tt.want, tt.ok)
		}
	}
}

func assertAmount(t *testing.T, field string, got decimal.NullDecimal, want string) {
	t.Helper()
	if want == "" {
		if got.Valid {
			t.Errorf("%s: expected none, got %s", field, got.Decimal)
		}
		return
	}
	if !got.Valid || !got.Decimal.Equal(decimal.RequireFromString(want)) {
		t.Errorf("%s: expected %s, got %v", field, want, got)
	}
}
