package summary

import (
	"context"
	"fmt"
	"strings"

	"github.com/shopspring/decimal"

	"voyagent/models"
	"voyagent/services/llm"
)

// Recommendation pairs the cheapest priced flight with the cheapest priced
// hotel stay and compares the total with the intent's budget. Hotel prices
// are for the whole stay. It returns "" when either list has no price.
func Recommendation(intent *models.TravelIntent, flights, hotels []models.NormalizedOffer, nights int) string {
	flight, okF := cheapest(flights)
	hotel, okH := cheapest(hotels)
	if !okF || !okH {
		return ""
	}

	picks := fmt.Sprintf("Best value picks: %s at %s (%s) and %s at %s for %d night(s).",
		flight.Name, FormatPrice(flight.Price, flight.Currency), Stops(flight.Stops),
		hotel.Name, FormatPrice(hotel.Price, hotel.Currency), nights)
	currency := currencyOf(flight)
	if currency != currencyOf(hotel) {
		return picks + " No combined total: the prices are in different currencies."
	}

	total := flight.Price.Decimal.Add(hotel.Price.Decimal)
	budgetNote := ""
	if intent != nil && intent.Budget.Valid {
		budget := intent.Budget.Decimal
		if total.LessThanOrEqual(budget) {
			budgetNote = fmt.Sprintf(" This combination fits your $%s budget.", budget.StringFixed(0))
		} else {
			budgetNote = fmt.Sprintf(" Note: this exceeds your $%s budget by $%s.",
				budget.StringFixed(0), total.Sub(budget).StringFixed(0))
		}
	}
	return fmt.Sprintf("%s Estimated total: %s.%s", picks, FormatPrice(decimal.NewNullDecimal(total), currency), budgetNote)
}

// currencyOf treats an unstated currency as USD, as FormatPrice does.
func currencyOf(o models.NormalizedOffer) string {
	if o.Currency == "" {
		return "USD"
	}
	return o.Currency
}

func cheapest(offers []models.NormalizedOffer) (models.NormalizedOffer, bool) {
	var best models.NormalizedOffer
	found := false
	for _, o := range offers {
		if !o.Price.Valid {
			continue
		}
		if !found || o.Price.Decimal.LessThan(best.Price.Decimal) {
			best, found = o, true
		}
	}
	return best, found
}

// AdvicePrompt asks the language service for a short recommendation over
// the ranked offers.
func AdvicePrompt(intent *models.TravelIntent, flights, hotels []models.NormalizedOffer, estimated bool) string {
	dataNote := ""
	if estimated {
		dataNote = " Note: prices are estimated, real-time data unavailable."
	}
	budget := "not stated"
	if intent.Budget.Valid {
		budget = "$" + intent.Budget.Decimal.StringFixed(0)
	}

	var b strings.Builder
	fmt.Fprintf(&b, "You are a helpful travel assistant. Analyze these options and give brief, honest recommendations.\n\n")
	fmt.Fprintf(&b, "Trip: %s -> %s | %s to %s | %d traveler(s) | Budget: %s%s\n",
		orUnknown(intent.Origin), intent.Location, intent.ArrivalDate, intent.DepartureDate, intent.GuestQty, budget, dataNote)

	if len(flights) > 0 {
		b.WriteString("\nFlights:\n")
		for i, f := range flights {
			fmt.Fprintf(&b, "  %d. %s - %s (%s, %s)\n", i+1, f.Name, FormatPrice(f.Price, f.Currency), Stops(f.Stops), f.Duration)
		}
	}
	if len(hotels) > 0 {
		b.WriteString("\nHotels (whole stay):\n")
		for i, h := range hotels {
			fmt.Fprintf(&b, "  %d. %s - %s (rating %.1f) %s\n", i+1, h.Name, FormatPrice(h.Price, h.Currency), h.Rating, h.Location)
		}
	}
	b.WriteString("\nIn 150 words or fewer, recommend the options that best fit the budget and explain why briefly. Be direct.")
	return b.String()
}

// Advise asks completer for advice and falls back to fallback when no
// completer is configured or the call fails.
func Advise(ctx context.Context, completer llm.Completer, prompt, fallback string) (string, error) {
	if completer == nil {
		return fallback, nil
	}
	advice, err := completer.Complete(ctx, prompt)
	if err != nil || strings.TrimSpace(advice) == "" {
		return fallback, err
	}
	return strings.TrimSpace(advice), nil
}

func orUnknown(s string) string {
	if s == "" {
		return "unknown"
	}
	return s
}
