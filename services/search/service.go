// Package search runs the whole pipeline for one request: extraction, date
// repair, query planning, provider calls, normalization and ranking.
package search

import (
	"context"
	"errors"
	"strings"
	"time"

	"github.com/google/uuid"
	"go.uber.org/zap"
	"golang.org/x/sync/errgroup"

	"voyagent/models"
	"voyagent/services/dates"
	"voyagent/services/intent"
	"voyagent/services/llm"
	"voyagent/services/offers"
	"voyagent/services/planner"
	"voyagent/services/providers"
	"voyagent/services/summary"
)

// Options are the per-deployment knobs of a Service.
type Options struct {
	Limit                int
	FlightBudgetFraction float64
	ProviderTimeout      time.Duration
	// Advice asks the completer for a short recommendation on trip searches.
	Advice bool
}

// Deps are the collaborators of a Service. Completer may be nil.
type Deps struct {
	Extractor intent.Extractor
	Dates     *dates.Normalizer
	Planner   *planner.Planner
	Hotels    providers.Provider
	Flights   providers.Provider
	Completer llm.Completer
	Logger    *zap.Logger
	Now       func() time.Time
}

// Request is one search.
type Request struct {
	Text  string
	Type  models.QueryType
	Limit int
}

// Service is safe for concurrent use; it holds no per-request state.
type Service struct {
	deps Deps
	opts Options
}

// New returns a Service. Zero options take the configured defaults.
func New(deps Deps, opts Options) *Service {
	if deps.Logger == nil {
		deps.Logger = zap.NewNop()
	}
	if deps.Now == nil {
		deps.Now = time.Now
	}
	if deps.Dates == nil {
		deps.Dates = dates.New(deps.Now)
	}
	if deps.Planner == nil {
		deps.Planner = planner.New(nil, "")
	}
	if opts.Limit <= 0 {
		opts.Limit = offers.DefaultLimit
	}
	if opts.FlightBudgetFraction <= 0 {
		opts.FlightBudgetFraction = 0.4
	}
	if opts.ProviderTimeout <= 0 {
		opts.ProviderTimeout = 30 * time.Second
	}
	return &Service{deps: deps, opts: opts}
}

// Extract returns the normalized intent for text without searching.
func (s *Service) Extract(ctx context.Context, text string) (*models.TravelIntent, error) {
	in, err := s.deps.Extractor.Extract(ctx, text)
	if err != nil {
		return nil, err
	}
	return s.deps.Dates.Normalize(in), nil
}

// Search runs req through the pipeline. Extraction failures and a missing
// destination are returned as errors. Provider failures are not: they are
// recorded on the affected section and the other section still completes.
func (s *Service) Search(ctx context.Context, req Request) (*summary.Report, error) {
	log := s.deps.Logger

	in, err := s.Extract(ctx, req.Text)
	if err != nil {
		return nil, err
	}
	if strings.TrimSpace(in.Location) == "" {
		return nil, &models.MissingFieldError{Field: "location"}
	}

	qt := req.Type
	if qt == "" || qt == models.QueryAuto {
		qt = intent.DetectQueryType(req.Text)
	}
	limit := req.Limit
	if limit <= 0 {
		limit = s.opts.Limit
	}

	report := &summary.Report{
		ID:          uuid.NewString(),
		Query:       req.Text,
		Intent:      in,
		Estimated:   s.estimated(qt),
		GeneratedAt: s.deps.Now().UTC(),
	}

	log.Info("search",
		zap.String("id", report.ID),
		zap.String("type", string(qt)),
		zap.String("location", in.Location),
		zap.String("arrival", in.ArrivalDate),
		zap.String("departure", in.DepartureDate),
	)

	switch qt {
	case models.QueryHotel:
		section := s.branch(ctx, models.KindHotel, in, limit)
		if err := fatal(section.Err); err != nil {
			return nil, err
		}
		report.Sections = []summary.Section{section}
	case models.QueryFlight:
		section := s.branch(ctx, models.KindFlight, in, limit)
		if err := fatal(section.Err); err != nil {
			return nil, err
		}
		report.Sections = []summary.Section{section}
	default:
		report.Sections = s.trip(ctx, in, limit)
		s.recommend(ctx, report)
	}
	return report, nil
}

// trip runs the hotel and flight branches in parallel. Branches never
// return an error to the group so one failing cannot cancel the other.
func (s *Service) trip(ctx context.Context, in *models.TravelIntent, limit int) []summary.Section {
	sections := make([]summary.Section, 2)
	var g errgroup.Group
	g.Go(func() error {
		sections[0] = s.branch(ctx, models.KindHotel, in, limit)
		return nil
	})
	g.Go(func() error {
		sections[1] = s.branch(ctx, models.KindFlight, in, limit)
		return nil
	})
	_ = g.Wait()
	return sections
}

func (s *Service) branch(ctx context.Context, kind models.Kind, in *models.TravelIntent, limit int) summary.Section {
	log := s.deps.Logger.With(zap.String("kind", string(kind)))
	section := summary.Section{Kind: kind, Offers: []models.NormalizedOffer{}}

	if err := dates.Validate(in, kind); err != nil {
		section.Err = err
		return section
	}
	q, err := s.deps.Planner.Query(kind, in)
	if err != nil {
		section.Err = err
		return section
	}
	section.LowConfidence = q.LowConfidence

	provider := s.provider(kind)
	if provider == nil {
		section.Err = &models.UpstreamError{Provider: string(kind), Err: errors.New("no provider configured")}
		return section
	}

	callCtx, cancel := context.WithTimeout(ctx, s.opts.ProviderTimeout)
	defer cancel()

	start := time.Now()
	raw, err := provider.Search(callCtx, q)
	if err != nil {
		log.Warn("provider call failed", zap.String("provider", provider.Name()), zap.Error(err))
		section.Err = err
		return section
	}
	log.Debug("provider responded", zap.String("provider", provider.Name()), zap.Duration("took", time.Since(start)))

	normalized, err := offers.Normalize(kind, raw, in)
	if err != nil {
		log.Warn("unrecognized provider payload", zap.String("provider", provider.Name()), zap.Error(err))
		section.Err = err
		return section
	}

	opts := offers.RankOptions{Limit: limit}
	if kind == models.KindFlight {
		opts.Ceiling = offers.FlightCeiling(in, s.opts.FlightBudgetFraction)
	}
	ranked := offers.Rank(normalized, opts)
	for i := range ranked {
		ranked[i].LowConfidence = q.LowConfidence
	}
	section.Offers = ranked
	return section
}

func (s *Service) recommend(ctx context.Context, report *summary.Report) {
	var flights, hotels []models.NormalizedOffer
	for _, sec := range report.Sections {
		if sec.Kind == models.KindFlight {
			flights = sec.Offers
		} else {
			hotels = sec.Offers
		}
	}
	report.Recommendation = summary.Recommendation(report.Intent, flights, hotels, dates.Nights(report.Intent))

	if !s.opts.Advice || s.deps.Completer == nil || (len(flights) == 0 && len(hotels) == 0) {
		return
	}
	prompt := summary.AdvicePrompt(report.Intent, flights, hotels, report.Estimated)
	advice, err := summary.Advise(ctx, s.deps.Completer, prompt, "")
	if err != nil {
		s.deps.Logger.Warn("advice unavailable, using budget recommendation", zap.Error(err))
	}
	report.Advice = advice
}

func (s *Service) provider(kind models.Kind) providers.Provider {
	if kind == models.KindFlight {
		return s.deps.Flights
	}
	return s.deps.Hotels
}

func (s *Service) estimated(qt models.QueryType) bool {
	sample := func(p providers.Provider) bool { return p != nil && p.Name() == providers.SampleName }
	switch qt {
	case models.QueryHotel:
		return sample(s.deps.Hotels)
	case models.QueryFlight:
		return sample(s.deps.Flights)
	}
	return sample(s.deps.Hotels) || sample(s.deps.Flights)
}

// fatal returns the errors that end a single-kind search: a missing field
// means the request itself is incomplete.
func fatal(err error) error {
	var missing *models.MissingFieldError
	if errors.As(err, &missing) {
		return err
	}
	return nil
}
