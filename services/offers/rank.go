package offers

import (
	"sort"

	"github.com/shopspring/decimal"

	"voyagent/models"
)

const DefaultLimit = 5

// RankOptions controls Rank. A zero Limit means DefaultLimit; an invalid
// Ceiling means no price cap.
type RankOptions struct {
	Limit   int
	Ceiling decimal.NullDecimal
}

// Rank returns offers sorted by ascending price with unpriced offers last,
// priced offers above the ceiling removed, truncated to the limit. Equal
// prices keep their provider order. offers is not modified.
func Rank(offers []models.NormalizedOffer, opts RankOptions) []models.NormalizedOffer {
	limit := opts.Limit
	if limit <= 0 {
		limit = DefaultLimit
	}

	kept := make([]models.NormalizedOffer, 0, len(offers))
	for _, o := range offers {
		if opts.Ceiling.Valid && o.Price.Valid && o.Price.Decimal.GreaterThan(opts.Ceiling.Decimal) {
			continue
		}
		kept = append(kept, o)
	}

	sort.SliceStable(kept, func(i, j int) bool {
		a, b := kept[i].Price, kept[j].Price
		switch {
		case a.Valid && b.Valid:
			return a.Decimal.LessThan(b.Decimal)
		case a.Valid:
			return true
		default:
			return false
		}
	})

	if len(kept) > limit {
		kept = kept[:limit]
	}
	return kept
}

// FlightCeiling returns the price cap for flights: the explicit flight
// budget if one was given, otherwise fraction of the total budget.
func FlightCeiling(intent *models.TravelIntent, fraction float64) decimal.NullDecimal {
	if intent == nil {
		return decimal.NullDecimal{}
	}
	if intent.FlightBudget.Valid {
		return intent.FlightBudget
	}
	if intent.Budget.Valid && fraction > 0 {
		return decimal.NewNullDecimal(intent.Budget.Decimal.Mul(decimal.NewFromFloat(fraction)))
	}
	return decimal.NullDecimal{}
}
