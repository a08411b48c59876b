package pipeline

import (
	"context"
	"errors"
	"fmt"
	"log/slog"
	"time"

	"github.com/jonboulle/clockwork"

	"github.com/couchcryptid/quake-eda/internal/analysis"
	"github.com/couchcryptid/quake-eda/internal/domain"
	"github.com/couchcryptid/quake-eda/internal/observability"
)

// Source reads the raw catalog rows.
type Source interface {
	Load(ctx context.Context, source string) ([]domain.RawRecord, error)
}

// Deriver turns raw rows into the analysis dataset, dropping rows it cannot
// derive.
type Deriver interface {
	DeriveAll(raws []domain.RawRecord) (domain.Dataset, domain.DropStats)
}

// Sink writes a finished report.
type Sink interface {
	Write(ctx context.Context, r *Report) error
}

// Report is the outcome of one run.
type Report struct {
	GeneratedAt time.Time        `json:"generated_at"`
	Source      string           `json:"source"`
	Alpha       float64          `json:"alpha"`
	Loaded      int              `json:"records_loaded"`
	Derived     int              `json:"records_derived"`
	Drops       domain.DropStats `json:"drops"`

	*analysis.Results

	// Dataset is kept for chart sinks and is not serialized.
	Dataset domain.Dataset `json:"-"`
}

// Options configures a Pipeline.
type Options struct {
	Source string
	Alpha  float64
	// WriteTimeout bounds the sink stage, which runs even after ctx is
	// cancelled so a finished analysis is not lost.
	WriteTimeout time.Duration
	Clock        clockwork.Clock
}

// Pipeline runs load, derive, analyze and write once.
type Pipeline struct {
	source  Source
	deriver Deriver
	sinks   []Sink
	logger  *slog.Logger
	metrics *observability.Metrics
	clock   clockwork.Clock
	opts    Options
}

// New creates a Pipeline with the given stages and observability.
func New(src Source, d Deriver, sinks []Sink, logger *slog.Logger, metrics *observability.Metrics, opts Options) *Pipeline {
	if opts.Clock == nil {
		opts.Clock = clockwork.NewRealClock()
	}
	return &Pipeline{
		source:  src,
		deriver: d,
		sinks:   sinks,
		logger:  logger,
		metrics: metrics,
		clock:   opts.Clock,
		opts:    opts,
	}
}

// Run executes the pipeline. A load failure aborts the run and is returned
// as is, so callers can match *domain.DataSourceError. Sink failures are
// joined and returned together with the report.
func (p *Pipeline) Run(ctx context.Context) (*Report, error) {
	p.logger.Info("report run started", "source", p.opts.Source, "alpha", p.opts.Alpha)

	var raws []domain.RawRecord
	err := p.stage("load", func() error {
		var err error
		raws, err = p.source.Load(ctx, p.opts.Source)
		return err
	})
	if err != nil {
		return nil, err
	}
	p.metrics.RecordsLoaded.Add(float64(len(raws)))

	var (
		ds    domain.Dataset
		drops domain.DropStats
	)
	p.stage("derive", func() error {
		ds, drops = p.deriver.DeriveAll(raws)
		return nil
	})
	p.metrics.RecordsDerived.Add(float64(len(ds)))
	for reason, n := range drops.ByReason {
		p.metrics.RecordsDropped.WithLabelValues(string(reason)).Add(float64(n))
	}
	p.logger.Info("records derived", "loaded", len(raws), "derived", len(ds), "dropped", len(raws)-len(ds))

	var results *analysis.Results
	err = p.stage("analyze", func() error {
		var err error
		results, err = analysis.RunAll(ctx, ds, p.opts.Alpha)
		return err
	})
	if err != nil {
		return nil, fmt.Errorf("analyze: %w", err)
	}
	p.recordVerdicts(results)

	report := &Report{
		GeneratedAt: p.clock.Now().UTC(),
		Source:      p.opts.Source,
		Alpha:       p.opts.Alpha,
		Loaded:      len(raws),
		Derived:     len(ds),
		Drops:       drops,
		Results:     results,
		Dataset:     ds,
	}

	err = p.stage("write", func() error { return p.write(ctx, report) })
	p.metrics.LastRunTime.Set(float64(p.clock.Now().Unix()))
	return report, err
}

func (p *Pipeline) write(ctx context.Context, report *Report) error {
	if len(p.sinks) == 0 {
		return nil
	}
	ctx = context.WithoutCancel(ctx)
	if p.opts.WriteTimeout > 0 {
		var cancel context.CancelFunc
		ctx, cancel = context.WithTimeout(ctx, p.opts.WriteTimeout)
		defer cancel()
	}

	var errs []error
	for _, s := range p.sinks {
		if err := s.Write(ctx, report); err != nil {
			p.logger.Error("report write failed", "error", err)
			errs = append(errs, err)
		}
	}
	return errors.Join(errs...)
}

func (p *Pipeline) recordVerdicts(results *analysis.Results) {
	for _, v := range results.Verdicts() {
		p.metrics.TestsRun.WithLabelValues(v.Test, v.Outcome).Inc()
		switch v.Outcome {
		case analysis.OutcomeValid:
			p.logger.Info("test complete", "test", v.Test, "reject_null", v.Reject)
		case analysis.OutcomeInvalid:
			p.logger.Warn("test assumptions not met, result is not statistically valid",
				"test", v.Test, "reject_null", v.Reject, "failed_checks", v.Failed)
		}
	}
	for _, s := range results.Skipped {
		p.logger.Warn("test skipped", "test", s.Test, "group", s.Group, "reason", s.Reason)
	}
}

// stage runs fn and records its duration under name.
func (p *Pipeline) stage(name string, fn func() error) error {
	start := p.clock.Now()
	err := fn()
	elapsed := p.clock.Since(start)
	p.metrics.StageDuration.WithLabelValues(name).Observe(elapsed.Seconds())
	if err != nil {
		p.logger.Error("stage failed", "stage", name, "error", err, "duration", elapsed)
		return err
	}
	p.logger.Debug("stage complete", "stage", name, "duration", elapsed)
	return nil
}
