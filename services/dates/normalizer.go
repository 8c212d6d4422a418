// Package dates repairs the date fields of a travel intent.
//
// The policy is fixed: a missing or unreadable trip starts 30 days out and
// lasts 3 nights, a start in the past moves to tomorrow, and an end on or
// before the start moves to start+3.
package dates

import (
	"strings"
	"time"

	"voyagent/models"
)

const (
	defaultLeadDays = 30
	defaultStayDays = 3
)

// Normalizer applies the date policy relative to its clock.
type Normalizer struct {
	now func() time.Time
}

// New returns a Normalizer; a nil clock means time.Now.
func New(now func() time.Time) *Normalizer {
	if now == nil {
		now = time.Now
	}
	return &Normalizer{now: now}
}

// Today returns the normalizer's current calendar date at UTC midnight.
func (n *Normalizer) Today() time.Time {
	t := n.now()
	return time.Date(t.Year(), t.Month(), t.Day(), 0, 0, 0, 0, time.UTC)
}

// Normalize corrects intent's dates in place and returns it.
func (n *Normalizer) Normalize(intent *models.TravelIntent) *models.TravelIntent {
	today := n.Today()

	arrivalStr := strings.TrimSpace(intent.ArrivalDate)
	departureStr := strings.TrimSpace(intent.DepartureDate)

	if arrivalStr == "" {
		arrivalStr = format(today.AddDate(0, 0, defaultLeadDays))
	}
	if departureStr == "" {
		if a, err := parse(arrivalStr); err == nil {
			departureStr = format(a.AddDate(0, 0, defaultStayDays))
		}
	}

	arrival, errA := parse(arrivalStr)
	departure, errD := parse(departureStr)
	if errA != nil || errD != nil {
		arrival = today.AddDate(0, 0, defaultLeadDays)
		intent.ArrivalDate = format(arrival)
		intent.DepartureDate = format(arrival.AddDate(0, 0, defaultStayDays))
		return intent
	}

	if arrival.Before(today) {
		arrival = today.AddDate(0, 0, 1)
	}
	if !departure.After(arrival) {
		departure = arrival.AddDate(0, 0, defaultStayDays)
	}

	intent.ArrivalDate = format(arrival)
	intent.DepartureDate = format(departure)
	return intent
}

// Nights returns the number of nights between the intent's dates, or 0
// when they do not parse.
func Nights(intent *models.TravelIntent) int {
	a, errA := parse(intent.ArrivalDate)
	d, errD := parse(intent.DepartureDate)
	if errA != nil || errD != nil || !d.After(a) {
		return 0
	}
	return int(d.Sub(a).Hours() / 24)
}

// Validate reports the first required field missing for a search of kind.
func Validate(intent *models.TravelIntent, kind models.Kind) error {
	if strings.TrimSpace(intent.Location) == "" {
		return &models.MissingFieldError{Field: "location"}
	}
	if kind == models.KindFlight && strings.TrimSpace(intent.Origin) == "" {
		return &models.MissingFieldError{Field: "origin"}
	}
	if intent.ArrivalDate == "" || intent.DepartureDate == "" {
		return &models.MissingFieldError{Field: "dates"}
	}
	return nil
}

func parse(s string) (time.Time, error) {
	return time.Parse(models.DateLayout, s)
}

func format(t time.Time) string {
	return t.Format(models.DateLayout)
}
