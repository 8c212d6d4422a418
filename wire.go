package main

import (
	"context"
	"database/sql"
	"io"
	"time"

	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"voyagent/config"
	"voyagent/database"
	"voyagent/services/dates"
	"voyagent/services/intent"
	"voyagent/services/llm"
	"voyagent/services/location"
	"voyagent/services/planner"
	"voyagent/services/providers"
	"voyagent/services/search"
	"voyagent/utils"
)

// stack is everything a command needs, built once from configuration.
type stack struct {
	cfg       *config.Config
	logger    *zap.Logger
	db        *sql.DB
	completer llm.Completer
	service   *search.Service
}

// loadConfig reads the configuration and applies the global flags on top.
func loadConfig(c *cli.Context) (*config.Config, error) {
	cfg, err := config.Load()
	if err != nil {
		return nil, err
	}
	if c.IsSet("log-level") {
		cfg.LogLevel = c.String("log-level")
	}
	if c.IsSet("extraction") {
		cfg.ExtractionMode = c.String("extraction")
	}
	if c.IsSet("flight-provider") {
		cfg.FlightProvider = c.String("flight-provider")
	}
	if c.Bool("offline") {
		cfg.RapidAPIKey = ""
		cfg.AmadeusClientID = ""
	}
	return cfg, cfg.Validate()
}

func setup(c *cli.Context, opts search.Options) (*stack, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	rt := &stack{cfg: cfg, logger: logger}
	ctx := c.Context

	codes := location.NewCodes()
	if cfg.DatabaseURL != "" {
		if db, err := openDirectory(ctx, cfg.DatabaseURL, logger); err != nil {
			logger.Warn("location directory unavailable, using built-in codes", zap.Error(err))
		} else {
			rt.db = db
			if loaded, err := database.LoadCodes(ctx, db); err != nil {
				logger.Warn("could not load location codes", zap.Error(err))
			} else {
				codes = loaded
			}
		}
	}

	rt.completer, err = llm.New(ctx, cfg)
	if err != nil {
		rt.Close()
		return nil, err
	}

	extractor, err := intent.New(cfg.ExtractionMode, rt.completer, nil, logger)
	if err != nil {
		rt.Close()
		return nil, err
	}

	hotels, flights, flightProvider := buildProviders(cfg, logger)

	if opts.Limit <= 0 {
		opts.Limit = cfg.ResultLimit
	}
	if opts.FlightBudgetFraction <= 0 {
		opts.FlightBudgetFraction = cfg.FlightBudgetFactor
	}
	opts.ProviderTimeout = cfg.ProviderTimeout

	rt.service = search.New(search.Deps{
		Extractor: extractor,
		Dates:     dates.New(nil),
		Planner:   planner.New(codes, flightProvider),
		Hotels:    hotels,
		Flights:   flights,
		Completer: rt.completer,
		Logger:    logger,
	}, opts)
	return rt, nil
}

// buildProviders picks live clients when their credentials are configured
// and the sample provider otherwise. The returned name selects the planner's
// flight parameter set.
func buildProviders(cfg *config.Config, logger *zap.Logger) (hotels, flights providers.Provider, flightProvider string) {
	sample := providers.NewSample()

	hotels = sample
	if cfg.RapidAPIKey != "" {
		hotels = providers.NewBooking(cfg.RapidAPIKey, cfg.HotelHost, cfg.ProviderTimeout)
	}

	flights, flightProvider = sample, planner.FlightProviderFlyScraper
	switch {
	case cfg.FlightProvider == planner.FlightProviderAmadeus && cfg.AmadeusClientID != "":
		flights = providers.NewAmadeus(cfg.AmadeusClientID, cfg.AmadeusSecret, cfg.AmadeusEnv, cfg.ProviderTimeout)
		flightProvider = planner.FlightProviderAmadeus
	case cfg.RapidAPIKey != "":
		if cfg.FlightProvider == planner.FlightProviderAmadeus {
			logger.Warn("Amadeus credentials missing, using FlyScraper")
		}
		flights = providers.NewFlyScraper(cfg.RapidAPIKey, cfg.FlightHost, cfg.ProviderTimeout)
	}

	if hotels == sample || flights == sample {
		logger.Info("no provider credentials for some searches, results will be estimated",
			zap.String("hotels", hotels.Name()), zap.String("flights", flights.Name()))
	}
	return hotels, flights, flightProvider
}

func openDirectory(ctx context.Context, url string, logger *zap.Logger) (*sql.DB, error) {
	ctx, cancel := context.WithTimeout(ctx, 30*time.Second)
	defer cancel()

	db, err := database.Connect(ctx, url, logger)
	if err != nil {
		return nil, err
	}
	if err := database.Migrate(ctx, db); err != nil {
		db.Close()
		return nil, err
	}
	return db, nil
}

// Close releases the database and language-service connections.
func (rt *stack) Close() {
	if rt.db != nil {
		rt.db.Close()
	}
	if closer, ok := rt.completer.(io.Closer); ok {
		closer.Close()
	}
	_ = rt.logger.Sync()
}
