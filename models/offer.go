package models

import "github.com/shopspring/decimal"

// Kind is the provider family an offer or query belongs to.
type Kind string

const (
	KindHotel  Kind = "hotel"
	KindFlight Kind = "flight"
)

// RawResult is a provider response decoded into generic JSON values.
// Its shape is owned by the provider.
type RawResult map[string]any

// ProviderQuery is the key/value request built for one provider call.
type ProviderQuery struct {
	Kind   Kind              `json:"kind"`
	Params map[string]string `json:"params"`
	// LowConfidence is set when a location code had to be derived
	// instead of being found in a code table.
	LowConfidence bool `json:"low_confidence,omitempty"`
}

// OfferDates holds check-in/out for hotels or departure/arrival for flights.
type OfferDates struct {
	Start string `json:"start"`
	End   string `json:"end"`
}

// NormalizedOffer is one bookable result in the provider-agnostic schema.
type NormalizedOffer struct {
	Kind          Kind                `json:"kind"`
	Name          string              `json:"name"`
	Price         decimal.NullDecimal `json:"price"`
	Currency      string              `json:"currency,omitempty"`
	Dates         OfferDates          `json:"dates"`
	Link          string              `json:"link,omitempty"`
	Location      string              `json:"location,omitempty"`
	Rating        float64             `json:"rating,omitempty"`
	Stops         int                 `json:"stops"`
	Duration      string              `json:"duration,omitempty"`
	LowConfidence bool                `json:"low_confidence,omitempty"`

	// Raw is the provider entry the offer was built from.
	Raw map[string]any `json:"-"`
}
