// cdrrate rates a charging session against OCPI tariffs and prints its CDR.
//
// Usage:
//
//	cdrrate rate --input request.yaml [--timezone Europe/Madrid] [--pdf cdr.pdf] [--xlsx cdr.xlsx]
//	cdrrate version
package main

import (
	"encoding/json"
	"fmt"
	"os"

	"github.com/prometheus/client_golang/prometheus"
	"github.com/urfave/cli/v2"
	"go.uber.org/zap"

	"github.com/chrisconley/chargerate/internal"
	"github.com/chrisconley/chargerate/internal/config"
	"github.com/chrisconley/chargerate/internal/document"
	"github.com/chrisconley/chargerate/internal/export"
	"github.com/chrisconley/chargerate/internal/infra"
	"github.com/chrisconley/chargerate/internal/logging"
	"github.com/chrisconley/chargerate/internal/metrics"
)

var (
	version = "dev"
	commit  = "none"
	date    = "unknown"
)

func main() {
	if err := newApp().Run(os.Args); err != nil {
		fmt.Fprintf(os.Stderr, "Error: %v\n", err)
		os.Exit(1)
	}
}

func newApp() *cli.App {
	return &cli.App{
		Name:    "cdrrate",
		Usage:   "Rate EV charging sessions into OCPI Charge Detail Records",
		Version: fmt.Sprintf("%s (commit: %s, built: %s)", version, commit, date),

		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:    "log-level",
				Value:   "info",
				Usage:   "Log level (debug, info, warn, error)",
				EnvVars: []string{"LOG_LEVEL"},
			},
		},

		Commands: []*cli.Command{
			rateCommand(),
			versionCommand(),
		},
	}
}

// =============================================================================
// RATE COMMAND
// =============================================================================

func rateCommand() *cli.Command {
	return &cli.Command{
		Name:  "rate",
		Usage: "Rate one session and print its CDR as JSON",
		Flags: []cli.Flag{
			&cli.StringFlag{
				Name:     "input",
				Aliases:  []string{"i"},
				Usage:    "Path to the rating request (.json, .yaml or .yml)",
				Required: true,
			},
			&cli.StringFlag{
				Name:    "timezone",
				Aliases: []string{"tz"},
				Usage:   "IANA zone for time and date restrictions",
				EnvVars: []string{"RATING_TIMEZONE"},
			},
			&cli.StringFlag{
				Name:  "pdf",
				Usage: "Also write the CDR statement as PDF to this path",
			},
			&cli.StringFlag{
				Name:  "xlsx",
				Usage: "Also write the CDR statement as XLSX to this path",
			},
			&cli.StringFlag{
				Name:  "metrics-file",
				Usage: "Write rating metrics in Prometheus text format to this path",
			},
			&cli.BoolFlag{
				Name:  "pretty",
				Value: false,
				Usage: "Indent the JSON output",
			},
		},
		Action: runRate,
	}
}

func runRate(c *cli.Context) error {
	cfg, err := config.Load()
	if err != nil {
		return err
	}
	if c.IsSet("log-level") {
		cfg.Log.Level = c.String("log-level")
	}
	if c.IsSet("timezone") {
		cfg.Rating.TimeZone = c.String("timezone")
	}
	if c.IsSet("pretty") {
		cfg.Output.Pretty = c.Bool("pretty")
	}
	if c.IsSet("metrics-file") {
		cfg.Output.MetricsFile = c.String("metrics-file")
	}

	logger, err := logging.NewLogger(cfg.Log.Level)
	if err != nil {
		return fmt.Errorf("failed to build logger: %w", err)
	}
	defer func() { _ = logger.Sync() }()

	location, err := cfg.Location()
	if err != nil {
		return err
	}

	req, err := document.Load(c.String("input"))
	if err != nil {
		return fmt.Errorf("failed to load request: %w", err)
	}

	bus := infra.NewBus()
	registry := prometheus.NewRegistry()
	metrics.New(registry).Subscribe(bus)

	rater := internal.NewRater(
		internal.WithLogger(logger),
		internal.WithLocation(location),
		internal.WithBus(bus),
	)
	cdr, _, err := rater.Rate(req.Tariffs, req.Events, req.Session)
	if err != nil {
		return fmt.Errorf("failed to rate session %q: %w", req.Session.ID, err)
	}

	enc := json.NewEncoder(c.App.Writer)
	if cfg.Output.Pretty {
		enc.SetIndent("", "  ")
	}
	if err := enc.Encode(cdr); err != nil {
		return fmt.Errorf("failed to write cdr: %w", err)
	}

	if path := c.String("pdf"); path != "" {
		data, err := export.BuildCdrPDF(cdr)
		if err != nil {
			return fmt.Errorf("failed to render pdf: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write pdf: %w", err)
		}
		logger.Info("pdf statement written", zap.String("path", path))
	}

	if path := c.String("xlsx"); path != "" {
		data, err := export.BuildCdrXLSX(cdr)
		if err != nil {
			return fmt.Errorf("failed to render xlsx: %w", err)
		}
		if err := os.WriteFile(path, data, 0o644); err != nil {
			return fmt.Errorf("failed to write xlsx: %w", err)
		}
		logger.Info("xlsx statement written", zap.String("path", path))
	}

	if path := cfg.Output.MetricsFile; path != "" {
		if err := prometheus.WriteToTextfile(path, registry); err != nil {
			return fmt.Errorf("failed to write metrics: %w", err)
		}
	}

	return nil
}

// =============================================================================
// VERSION COMMAND
// =============================================================================

func versionCommand() *cli.Command {
	return &cli.Command{
		Name:  "version",
		Usage: "Print version information",
		Action: func(c *cli.Context) error {
			fmt.Fprintf(c.App.Writer, "cdrrate %s\n", c.App.Version)
			return nil
		},
	}
}
