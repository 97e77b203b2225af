// Package app wires a provider session, the fetcher and the chart renderer
// into one charting run.
package app

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/logger"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// Lifecycle callback types. A nil pointer means the callback is not invoked.

// OnConnectedCallback is called once the session answered the liveness check.
type OnConnectedCallback func(providerType provider.ProviderType)

// OnRunEndCallback is called when the run finishes, with the run error if any.
type OnRunEndCallback func(err error)

// LifecycleCallbacks holds the callbacks of one run.
type LifecycleCallbacks struct {
	OnConnected     *OnConnectedCallback
	OnFetchProgress *marketdata.OnFetchProgress
	OnRunEnd        *OnRunEndCallback
}

// ChartRenderer persists a bundle as a chart and returns the written path.
type ChartRenderer interface {
	Render(bundle *marketdata.Bundle, dateRange marketdata.DateRange) (string, error)
}

// Result describes a finished run.
type Result struct {
	// DateRange is the queried range with the end clamped to today.
	DateRange marketdata.DateRange
	Report    *marketdata.FetchReport
	Summaries []marketdata.SeriesSummary
	// ChartPath is empty when no chart was written.
	ChartPath string
}

// Runner performs connect, fetch, summarize and render in order.
// It starts the session but does not close it; the caller owns its lifecycle.
type Runner struct {
	session      provider.Session
	providerType provider.ProviderType
	renderer     ChartRenderer
	instruments  []marketdata.Instrument
	logger       *logger.Logger
	now          func() time.Time
}

// Options configures a Runner.
type Options struct {
	Session      provider.Session
	ProviderType provider.ProviderType
	Renderer     ChartRenderer
	// Instruments defaults to marketdata.DefaultInstruments.
	Instruments []marketdata.Instrument
	Logger      *logger.Logger
	Clock       func() time.Time
}

// NewRunner creates a runner.
func NewRunner(opts Options) *Runner {
	r := &Runner{
		session:      opts.Session,
		providerType: opts.ProviderType,
		renderer:     opts.Renderer,
		instruments:  opts.Instruments,
		logger:       opts.Logger,
		now:          opts.Clock,
	}

	if r.instruments == nil {
		r.instruments = marketdata.DefaultInstruments()
	}

	if r.logger == nil {
		r.logger = logger.NewNop()
	}

	if r.now == nil {
		r.now = time.Now
	}

	return r
}

// Run charts the instruments over dateRange.
//
// A session that cannot be started or does not answer fails the run before any
// query. When every instrument was dropped the run returns a non-nil Result
// together with an ErrCodeNoDataFound error and writes no chart.
func (r *Runner) Run(ctx context.Context, dateRange marketdata.DateRange, callbacks LifecycleCallbacks) (result *Result, err error) {
	defer func() {
		if callbacks.OnRunEnd != nil {
			(*callbacks.OnRunEnd)(err)
		}
	}()

	if err := r.connect(ctx); err != nil {
		return nil, err
	}

	if callbacks.OnConnected != nil {
		(*callbacks.OnConnected)(r.providerType)
	}

	dateRange = dateRange.ClampEnd(r.now())

	var fetchOpts []marketdata.FetcherOption

	fetchOpts = append(fetchOpts, marketdata.WithClock(r.now))
	if callbacks.OnFetchProgress != nil {
		fetchOpts = append(fetchOpts, marketdata.WithProgress(*callbacks.OnFetchProgress))
	}

	fetcher := marketdata.NewFetcher(r.session, r.providerType, r.logger, fetchOpts...)

	bundle, report, err := fetcher.Fetch(ctx, dateRange, r.instruments)
	if err != nil {
		return nil, err
	}

	result = &Result{
		DateRange: dateRange,
		Report:    report,
		Summaries: marketdata.Summarize(bundle),
	}

	if bundle.Empty() {
		r.logger.Warn("No data fetched", zap.String("range", dateRange.String()), zap.Int("failed", len(report.Failed())))

		return result, errors.Newf(errors.ErrCodeNoDataFound, "no data for %s", dateRange)
	}

	path, err := r.renderer.Render(bundle, dateRange)
	if err != nil {
		return result, err
	}

	result.ChartPath = path

	return result, nil
}

func (r *Runner) connect(ctx context.Context) error {
	if err := r.session.Start(ctx); err != nil {
		return errors.Wrapf(errors.ErrCodeSessionNotConnected, err, "failed to start %s session", r.providerType)
	}

	if err := r.session.IsConnected(ctx); err != nil {
		return errors.Wrapf(errors.ErrCodeSessionNotConnected, err, "%s session is not connected", r.providerType)
	}

	r.logger.Debug("Session connected", zap.String("provider", string(r.providerType)))

	return nil
}
