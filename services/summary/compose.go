// Package summary renders ranked offers as a text report or a PDF.
// Everything here is formatting: output depends only on the inputs.
package summary

import (
	"fmt"
	"strings"
	"time"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

// Section is one kind's ranked offers, or the error that left it empty.
type Section struct {
	Kind          models.Kind              `json:"kind"`
	Offers        []models.NormalizedOffer `json:"offers"`
	Err           error                    `json:"-"`
	LowConfidence bool                     `json:"low_confidence,omitempty"`
}

// Report is everything rendered for one request.
type Report struct {
	ID             string               `json:"id"`
	Query          string               `json:"query"`
	Intent         *models.TravelIntent `json:"intent"`
	Sections       []Section            `json:"sections"`
	Recommendation string               `json:"recommendation,omitempty"`
	Advice         string               `json:"advice,omitempty"`
	Estimated      bool                 `json:"estimated"`
	GeneratedAt    time.Time            `json:"generated_at"`
}

// FormatPrice renders a price, or "Price unavailable" when it is unknown.
func FormatPrice(p decimal.NullDecimal, currency string) string {
	if !p.Valid {
		return "Price unavailable"
	}
	if currency == "" || currency == "USD" {
		return "$" + p.Decimal.StringFixed(2)
	}
	return p.Decimal.StringFixed(2) + " " + currency
}

// Header restates what was searched for.
func Header(intent *models.TravelIntent, kind models.Kind) string {
	if intent == nil {
		return fmt.Sprintf("%s options:", capitalize(string(kind)))
	}
	if kind == models.KindFlight {
		return fmt.Sprintf("Flight options from %s to %s, %s to %s:",
			intent.Origin, intent.Location, intent.ArrivalDate, intent.DepartureDate)
	}
	return fmt.Sprintf("Hotel options in %s, %s to %s:",
		intent.Location, intent.ArrivalDate, intent.DepartureDate)
}

// Compose renders a header line and one paragraph per offer.
func Compose(intent *models.TravelIntent, kind models.Kind, offers []models.NormalizedOffer) string {
	var b strings.Builder
	b.WriteString(Header(intent, kind))
	b.WriteString("\n")
	if len(offers) == 0 {
		b.WriteString("\nNo results found.\n")
		return b.String()
	}
	for i, o := range offers {
		b.WriteString("\n")
		writeOffer(&b, i+1, o)
	}
	return b.String()
}

func writeOffer(b *strings.Builder, n int, o models.NormalizedOffer) {
	fmt.Fprintf(b, "%d. %s\n", n, o.Name)
	fmt.Fprintf(b, "   Price: %s\n", FormatPrice(o.Price, o.Currency))
	if o.Kind == models.KindFlight {
		fmt.Fprintf(b, "   Departs: %s  Arrives: %s\n", o.Dates.Start, o.Dates.End)
		fmt.Fprintf(b, "   Duration: %s, %s\n", o.Duration, Stops(o.Stops))
	} else {
		if o.Rating > 0 {
			fmt.Fprintf(b, "   Rating: %.1f\n", o.Rating)
		}
		if o.Location != "" {
			fmt.Fprintf(b, "   Area: %s\n", o.Location)
		}
	}
	if o.Link != "" {
		fmt.Fprintf(b, "   Link: %s\n", o.Link)
	} else {
		b.WriteString("   Link: none available\n")
	}
}

// Stops describes a stop count.
func Stops(n int) string {
	switch n {
	case 0:
		return "nonstop"
	case 1:
		return "1 stop"
	}
	return fmt.Sprintf("%d stops", n)
}

// ComposeTrip renders every section of r, including a line for each section
// that failed, followed by the recommendation and advice.
func ComposeTrip(r *Report) string {
	var b strings.Builder
	if r.Estimated {
		b.WriteString("Note: prices are estimated, live provider data was not available.\n\n")
	}
	for i, s := range r.Sections {
		if i > 0 {
			b.WriteString("\n")
		}
		if s.Err != nil {
			b.WriteString(Header(r.Intent, s.Kind))
			fmt.Fprintf(&b, "\nNo results: %v\n", s.Err)
			continue
		}
		b.WriteString(Compose(r.Intent, s.Kind, s.Offers))
		if s.LowConfidence {
			b.WriteString("\n(Location codes were guessed for this search; results may not match the place you meant.)\n")
		}
	}
	if r.Recommendation != "" {
		fmt.Fprintf(&b, "\n%s\n", r.Recommendation)
	}
	if r.Advice != "" {
		fmt.Fprintf(&b, "\n%s\n", strings.TrimSpace(r.Advice))
	}
	return b.String()
}

func capitalize(s string) string {
	if s == "" {
		return s
	}
	return strings.ToUpper(s[:1]) + s[1:]
}
