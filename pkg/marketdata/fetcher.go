package marketdata

import (
	"context"
	"time"

	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/logger"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// OnFetchProgress is called before each instrument query and once after the
// last one with current == total.
type OnFetchProgress = func(current int, total int, label string)

// InstrumentOutcome records what happened to one instrument during a fetch.
type InstrumentOutcome struct {
	Label     string
	Symbol    string
	ErrorCode int
	Empty     bool
	Rows      int
	Dropped   int
}

// Succeeded reports whether the instrument made it into the bundle.
func (o InstrumentOutcome) Succeeded() bool {
	return o.ErrorCode == provider.StatusOK && !o.Empty
}

// FetchReport lists instrument outcomes in query order.
type FetchReport struct {
	Outcomes []InstrumentOutcome
}

// Failed returns the outcomes of instruments left out of the bundle.
func (r *FetchReport) Failed() []InstrumentOutcome {
	var failed []InstrumentOutcome

	for _, o := range r.Outcomes {
		if !o.Succeeded() {
			failed = append(failed, o)
		}
	}

	return failed
}

// Fetcher queries a session for each instrument and normalizes the results.
type Fetcher struct {
	session      provider.Session
	providerType provider.ProviderType
	logger       *logger.Logger
	now          func() time.Time
	onProgress   OnFetchProgress
}

// FetcherOption configures a Fetcher.
type FetcherOption func(*Fetcher)

// WithClock overrides the clock used to clamp the query end to today.
func WithClock(now func() time.Time) FetcherOption {
	return func(f *Fetcher) {
		f.now = now
	}
}

// WithProgress installs a progress callback.
func WithProgress(onProgress OnFetchProgress) FetcherOption {
	return func(f *Fetcher) {
		f.onProgress = onProgress
	}
}

// NewFetcher creates a fetcher reading from a started session.
func NewFetcher(session provider.Session, providerType provider.ProviderType, log *logger.Logger, opts ...FetcherOption) *Fetcher {
	if log == nil {
		log = logger.NewNop()
	}

	f := &Fetcher{
		session:      session,
		providerType: providerType,
		logger:       log,
		now:          time.Now,
		onProgress:   func(int, int, string) {},
	}

	for _, opt := range opts {
		opt(f)
	}

	return f
}

// Fetch runs one query per instrument, strictly in order.
//
// An instrument whose query reports a non-zero code, or whose result has no
// usable rows, is logged and left out; the others are unaffected. A transport
// error from the session aborts the fetch. The returned bundle may be empty.
func (f *Fetcher) Fetch(ctx context.Context, r DateRange, instruments []Instrument) (*Bundle, *FetchReport, error) {
	if err := ValidateInstruments(instruments); err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "invalid instrument table", err)
	}

	r = r.ClampEnd(f.now())
	report := &FetchReport{Outcomes: make([]InstrumentOutcome, 0, len(instruments))}
	series := make([]PriceSeries, 0, len(instruments))

	f.logger.Info("Fetching market data",
		zap.String("provider", string(f.providerType)),
		zap.String("range", r.String()),
		zap.Int("instruments", len(instruments)))

	for i, inst := range instruments {
		f.onProgress(i, len(instruments), inst.Label)

		outcome, s, err := f.fetchOne(ctx, r, inst)
		if err != nil {
			return nil, nil, err
		}

		report.Outcomes = append(report.Outcomes, outcome)

		if !outcome.Succeeded() {
			f.logger.Warn("Skipping instrument",
				zap.String("instrument", inst.Label),
				zap.String("symbol", outcome.Symbol),
				zap.Int("error_code", outcome.ErrorCode),
				zap.Bool("empty", outcome.Empty))

			continue
		}

		f.logger.Info("Fetched instrument",
			zap.String("instrument", inst.Label),
			zap.Int("rows", outcome.Rows),
			zap.Int("dropped", outcome.Dropped))

		series = append(series, s)
	}

	f.onProgress(len(instruments), len(instruments), "")

	bundle, err := NewBundle(series...)
	if err != nil {
		return nil, nil, errors.Wrap(errors.ErrCodeInvalidConfiguration, "failed to assemble bundle", err)
	}

	return bundle, report, nil
}

func (f *Fetcher) fetchOne(ctx context.Context, r DateRange, inst Instrument) (InstrumentOutcome, PriceSeries, error) {
	symbol := inst.Code(f.providerType)
	outcome := InstrumentOutcome{Label: inst.Label, Symbol: symbol}

	if symbol == "" {
		outcome.ErrorCode = int(errors.ErrCodeSymbolNotOffered)
		outcome.Empty = true

		return outcome, PriceSeries{}, nil
	}

	f.logger.Debug("Querying instrument", zap.String("instrument", inst.Label), zap.String("symbol", symbol))

	result, err := f.session.Query(ctx, provider.Query{
		Symbol: symbol,
		Field:  provider.FieldClose,
		Start:  r.Start,
		End:    r.End,
		Fill:   provider.FillPrevious,
	})
	if err != nil {
		return outcome, PriceSeries{}, errors.Wrapf(errors.ErrCodeMarketDataFetchFailed, err, "query for %s failed", inst.Label)
	}

	outcome.ErrorCode = result.ErrorCode
	outcome.Empty = result.Frame.Empty()

	if !result.OK() || outcome.Empty {
		return outcome, PriceSeries{}, nil
	}

	s := Normalize(inst.Label, inst.Axis, result.Frame)
	outcome.Rows = s.Len()
	outcome.Dropped = result.Frame.Len() - s.Len()

	// every row was an unresolved gap
	if s.Len() == 0 {
		outcome.Empty = true
	}

	return outcome, s, nil
}
