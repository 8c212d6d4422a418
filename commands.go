package main

import (
	"encoding/json"
	"fmt"
	"os"
	"strings"
	"time"

	"github.com/gin-contrib/cors"
	"github.com/gin-gonic/gin"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"voyagent/database"
	"voyagent/handlers"
	"voyagent/models"
	"voyagent/services/location"
	"voyagent/services/search"
	"voyagent/services/summary"
	"voyagent/utils"
)

// ─── serve ────────────────────────────────────────────────────────────────────

func serveCommand() *cli.Command {
	return &cli.Command{
		Name:  "serve",
		Usage: "Run the HTTP API",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "port",
				Usage:   "Listen port",
				EnvVars: []string{"APP_PORT", "PORT"},
			},
			&cli.BoolFlag{
				Name:    "advice",
				Usage:   "Ask the language service for advice on trip searches",
				EnvVars: []string{"ADVICE"},
			},
		},
		Action: func(c *cli.Context) error {
			rt, err := setup(c, search.Options{Advice: c.Bool("advice")})
			if err != nil {
				return err
			}
			defer rt.Close()

			if rt.cfg.IsProduction() {
				gin.SetMode(gin.ReleaseMode)
			}

			r := gin.New()
			r.Use(gin.Logger(), utils.ErrorHandler(rt.logger))
			// Deployed behind a proxy.
			if err := r.SetTrustedProxies([]string{"0.0.0.0/0"}); err != nil {
				return err
			}
			r.Use(cors.New(cors.Config{
				AllowOrigins:     allowedOrigins(rt.cfg.FrontendURL),
				AllowMethods:     []string{"GET", "POST", "OPTIONS"},
				AllowHeaders:     []string{"Origin", "Content-Type", "Accept", "Authorization"},
				ExposeHeaders:    []string{"Content-Length", "Content-Disposition"},
				AllowCredentials: false,
				MaxAge:           12 * time.Hour,
			}))

			var db handlers.Pinger
			if rt.db != nil {
				db = rt.db
			}
			handlers.New(rt.service, db, rt.logger).Register(r)

			port := c.String("port")
			if port == "" {
				port = rt.cfg.AppPort
			}
			rt.logger.Info("VoyAgent API starting", zap.String("port", port), zap.String("env", rt.cfg.Env))
			return r.Run(":" + port)
		},
	}
}

func allowedOrigins(frontendURLs string) []string {
	origins := []string{"http://localhost:5173", "http://localhost:3000"}
	for _, u := range strings.Split(frontendURLs, ",") {
		if u = strings.TrimSpace(u); u != "" {
			origins = append(origins, u)
		}
	}
	return origins
}

// ─── search ───────────────────────────────────────────────────────────────────

func searchCommand() *cli.Command {
	return &cli.Command{
		Name:      "search",
		Usage:     "Search hotels and flights for a free-form request",
		ArgsUsage: "<request text>",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "type",
				Aliases: []string{"t"},
				Value:   "auto",
				Usage:   "Query type (flight, hotel, trip, auto)",
			},
			&cli.IntFlag{
				Name:    "limit",
				Aliases: []string{"n"},
				Usage:   "Offers per section",
			},
			&cli.Float64Flag{
				Name:  "budget-fraction",
				Usage: "Share of the total budget allowed for flights",
			},
			&cli.StringFlag{
				Name:  "pdf",
				Usage: "Also write the report to this PDF file",
			},
			&cli.BoolFlag{
				Name:  "json",
				Usage: "Print the report as JSON",
			},
			&cli.BoolFlag{
				Name:  "advice",
				Usage: "Ask the language service for advice on trip searches",
			},
		},
		Action: func(c *cli.Context) error {
			text, err := requestText(c)
			if err != nil {
				return err
			}
			qt, err := models.ParseQueryType(c.String("type"))
			if err != nil {
				return err
			}
			fraction := c.Float64("budget-fraction")
			if c.IsSet("budget-fraction") && (fraction <= 0 || fraction > 1) {
				return fmt.Errorf("--budget-fraction must be in (0, 1], got %v", fraction)
			}

			rt, err := setup(c, search.Options{
				Limit:                c.Int("limit"),
				FlightBudgetFraction: fraction,
				Advice:               c.Bool("advice"),
			})
			if err != nil {
				return err
			}
			defer rt.Close()

			report, err := rt.service.Search(c.Context, search.Request{Text: text, Type: qt, Limit: c.Int("limit")})
			if err != nil {
				return err
			}

			if path := c.String("pdf"); path != "" {
				data, err := summary.RenderPDF(report)
				if err != nil {
					return err
				}
				if err := os.WriteFile(path, data, 0o644); err != nil {
					return fmt.Errorf("write PDF: %w", err)
				}
				rt.logger.Info("report written", zap.String("path", path), zap.Int("bytes", len(data)))
			}

			if c.Bool("json") {
				return printJSON(handlers.NewSearchResponse(report))
			}
			fmt.Print(summary.ComposeTrip(report))
			return nil
		},
	}
}

// ─── extract ──────────────────────────────────────────────────────────────────

func extractCommand() *cli.Command {
	return &cli.Command{
		Name:      "extract",
		Usage:     "Print the normalized travel intent for a request",
		ArgsUsage: "<request text>",
		Action: func(c *cli.Context) error {
			text, err := requestText(c)
			if err != nil {
				return err
			}
			rt, err := setup(c, search.Options{})
			if err != nil {
				return err
			}
			defer rt.Close()

			in, err := rt.service.Extract(c.Context, text)
			if err != nil {
				return err
			}
			return printJSON(in)
		},
	}
}

// ─── codes ────────────────────────────────────────────────────────────────────

func codesCommand() *cli.Command {
	return &cli.Command{
		Name:  "codes",
		Usage: "Manage the location code directory (needs DATABASE_URL)",
		Subcommands: []*cli.Command{
			{
				Name:  "add",
				Usage: "Add or replace a city code",
				Flags: []cli.Flag{
					&cli.StringFlag{Name: "space", Value: string(location.SkyID), Usage: "Code space (sky, iata)"},
					&cli.StringFlag{Name: "name", Required: true, Usage: "City name"},
					&cli.StringFlag{Name: "code", Required: true, Usage: "Provider code"},
				},
				Action: func(c *cli.Context) error {
					space := location.CodeSpace(c.String("space"))
					if space != location.SkyID && space != location.IATA {
						return fmt.Errorf("unknown code space %q", space)
					}
					rt, err := setupDirectory(c)
					if err != nil {
						return err
					}
					defer rt.Close()

					return database.SaveLocationCode(c.Context, rt.db, database.LocationCode{
						Name:  c.String("name"),
						Space: space,
						Code:  c.String("code"),
					})
				},
			},
			{
				Name:  "list",
				Usage: "List directory entries",
				Action: func(c *cli.Context) error {
					rt, err := setupDirectory(c)
					if err != nil {
						return err
					}
					defer rt.Close()

					entries, err := database.ListLocationCodes(c.Context, rt.db)
					if err != nil {
						return err
					}
					for _, e := range entries {
						fmt.Printf("%-5s %-24s %s\n", e.Space, e.Name, e.Code)
					}
					return nil
				},
			},
		},
	}
}

func setupDirectory(c *cli.Context) (*stack, error) {
	cfg, err := loadConfig(c)
	if err != nil {
		return nil, err
	}
	if cfg.DatabaseURL == "" {
		return nil, fmt.Errorf("DATABASE_URL is not set")
	}
	logger, err := utils.NewLogger(cfg.Env, cfg.LogLevel)
	if err != nil {
		return nil, err
	}
	db, err := openDirectory(c.Context, cfg.DatabaseURL, logger)
	if err != nil {
		return nil, err
	}
	return &stack{cfg: cfg, logger: logger, db: db}, nil
}

// ─── helpers ──────────────────────────────────────────────────────────────────

func requestText(c *cli.Context) (string, error) {
	text := strings.TrimSpace(strings.Join(c.Args().Slice(), " "))
	if text == "" {
		return "", fmt.Errorf("a request text is required")
	}
	return text, nil
}

func printJSON(v any) error {
	enc := json.NewEncoder(os.Stdout)
	enc.SetIndent("", "  ")
	return enc.Encode(v)
}
