// Command report loads an earthquake catalog, derives its features, and
// writes the descriptive summary and hypothesis test results.
package main

import (
	"context"
	"errors"
	"log/slog"
	"os"
	"os/signal"
	"syscall"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-eda/internal/adapter/astral"
	"github.com/couchcryptid/quake-eda/internal/adapter/csvsource"
	"github.com/couchcryptid/quake-eda/internal/adapter/report"
	"github.com/couchcryptid/quake-eda/internal/config"
	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/observability"
	"github.com/couchcryptid/quake-eda/internal/pipeline"
)

func main() {
	cfg, err := config.Load()
	if err != nil {
		slog.Error("failed to load config", "error", err)
		os.Exit(1)
	}

	logger := observability.NewLogger(cfg)
	metrics := observability.NewMetrics()

	ephemeris := astral.NewCachedEphemeris(astral.NewEphemeris(), cfg.EphemerisCacheTTL, metrics)
	deriver := domain.NewDeriver(ephemeris, logger)
	loader := csvsource.NewLoader(cfg.FetchTimeout, logger)

	var sinks []pipeline.Sink
	if cfg.ReportJSONPath != "" {
		sinks = append(sinks, report.NewJSONWriter(cfg.ReportJSONPath))
	}
	if cfg.ChartsPath != "" {
		sinks = append(sinks, report.NewChartsWriter(cfg.ChartsPath))
	}

	p := pipeline.New(loader, deriver, sinks, logger, metrics, pipeline.Options{
		Source:       cfg.Source,
		Alpha:        cfg.SignificanceLevel,
		WriteTimeout: cfg.ShutdownTimeout,
		Clock:        clockwork.NewRealClock(),
	})

	ctx, stop := signal.NotifyContext(context.Background(), syscall.SIGINT, syscall.SIGTERM)
	defer stop()

	rep, runErr := p.Run(ctx)

	if cfg.MetricsTextfile != "" {
		if err := metrics.WriteTextfile(cfg.MetricsTextfile); err != nil {
			logger.Error("metrics write failed", "error", err)
		}
	}

	if runErr != nil {
		var dse *domain.DataSourceError
		if errors.As(runErr, &dse) {
			logger.Error("cannot read catalog", "source", dse.Source, "error", dse.Err)
		} else {
			logger.Error("report run failed", "error", runErr)
		}
		if rep == nil {
			os.Exit(1)
		}
	}

	for _, v := range rep.Verdicts() {
		logger.Info("verdict", "test", v.Test, "outcome", v.Outcome, "reject_null", v.Reject)
	}
	logger.Info("report run complete",
		"records", rep.Derived,
		"dropped", rep.Drops.Total,
		"ephemeris_cache_entries", ephemeris.ItemCount(),
	)
	if runErr != nil {
		os.Exit(1)
	}
}
