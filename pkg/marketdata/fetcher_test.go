package marketdata

import (
	"context"
	"fmt"
	"math"
	"testing"
	"time"

	"github.com/stretchr/testify/suite"
	"go.uber.org/mock/gomock"

	"github.com/rxtech-lab/fxgold/internal/logger"
	"github.com/rxtech-lab/fxgold/mocks"
	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

type FetcherTestSuite struct {
	suite.Suite
	ctrl      *gomock.Controller
	session   *mocks.MockSession
	generator *mocks.FrameGenerator
	dateRange DateRange
	today     time.Time
}

func TestFetcherSuite(t *testing.T) {
	suite.Run(t, new(FetcherTestSuite))
}

func (s *FetcherTestSuite) SetupTest() {
	s.ctrl = gomock.NewController(s.T())
	s.session = mocks.NewMockSession(s.ctrl)
	s.generator = mocks.NewFrameGenerator(42)
	s.dateRange = DateRange{Start: date(2020, 1, 1), End: date(2020, 3, 31)}
	s.today = date(2026, 10, 18)
}

func (s *FetcherTestSuite) TearDownTest() {
	s.ctrl.Finish()
}

func (s *FetcherTestSuite) newFetcher(providerType provider.ProviderType, opts ...FetcherOption) *Fetcher {
	opts = append([]FetcherOption{WithClock(func() time.Time { return s.today })}, opts...)

	return NewFetcher(s.session, providerType, logger.NewNop(), opts...)
}

func (s *FetcherTestSuite) frame(price float64) provider.Frame {
	cfg := mocks.DefaultFrameConfig()
	cfg.InitialPrice = price

	return s.generator.Generate(cfg)
}

func (s *FetcherTestSuite) expectSymbol(symbol string, result provider.QueryResult, err error) *gomock.Call {
	return s.session.EXPECT().
		Query(gomock.Any(), symbolMatcher(symbol)).
		Return(result, err)
}

// symbolMatcher matches a provider.Query by symbol.
type symbolMatcher string

func (m symbolMatcher) Matches(x any) bool {
	q, ok := x.(provider.Query)

	return ok && q.Symbol == string(m)
}

func (m symbolMatcher) String() string {
	return "query for " + string(m)
}

func (s *FetcherTestSuite) TestAllInstrumentsSucceed() {
	gomock.InOrder(
		s.expectSymbol("C:USDCNY", mocks.OKResult(s.frame(6.96)), nil),
		s.expectSymbol("C:EURCNY", mocks.OKResult(s.frame(7.8)), nil),
		s.expectSymbol("C:GBPCNY", mocks.OKResult(s.frame(9.1)), nil),
		s.expectSymbol("C:XAUUSD", mocks.OKResult(s.frame(1520)), nil),
	)

	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Equal([]string{"USD to CNY", "EUR to CNY", "GBP to CNY", "Gold (USD/oz)"}, bundle.Labels())
	s.Empty(report.Failed())

	for _, series := range bundle.Series() {
		s.Equal(65, series.Len(), series.Label)

		for i, p := range series.Points {
			s.False(math.IsNaN(p.Value))

			if i > 0 {
				s.True(p.Date.After(series.Points[i-1].Date))
			}
		}
	}

	gold, ok := bundle.Get("Gold (USD/oz)")
	s.Require().True(ok)
	s.Equal(AxisSecondary, gold.Axis)
}

func (s *FetcherTestSuite) TestQueryParameters() {
	var captured []provider.Query

	s.session.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q provider.Query) (provider.QueryResult, error) {
			captured = append(captured, q)

			return mocks.OKResult(s.frame(1)), nil
		}).Times(4)

	_, _, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Require().Len(captured, 4)

	for _, q := range captured {
		s.Equal(provider.FieldClose, q.Field)
		s.Equal(provider.FillPrevious, q.Fill)
		s.Equal(s.dateRange.Start, q.Start)
		s.Equal(s.dateRange.End, q.End)
	}
}

func (s *FetcherTestSuite) TestFailedInstrumentIsDropped() {
	gomock.InOrder(
		s.expectSymbol("C:USDCNY", mocks.OKResult(s.frame(6.96)), nil),
		s.expectSymbol("C:EURCNY", mocks.OKResult(s.frame(7.8)), nil),
		s.expectSymbol("C:GBPCNY", mocks.OKResult(s.frame(9.1)), nil),
		s.expectSymbol("C:XAUUSD", mocks.FailedResult(1), nil),
	)

	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Equal([]string{"USD to CNY", "EUR to CNY", "GBP to CNY"}, bundle.Labels())
	s.Empty(bundle.ByAxis(AxisSecondary))

	failed := report.Failed()
	s.Require().Len(failed, 1)
	s.Equal("Gold (USD/oz)", failed[0].Label)
	s.Equal(1, failed[0].ErrorCode)
}

func (s *FetcherTestSuite) TestEmptyResultIsDropped() {
	allMissing := provider.Frame{
		Column: provider.FieldClose,
		Index:  []time.Time{date(2020, 1, 2), date(2020, 1, 3)},
		Values: []float64{math.NaN(), math.NaN()},
	}

	gomock.InOrder(
		s.expectSymbol("C:USDCNY", mocks.OKResult(provider.Frame{Column: provider.FieldClose}), nil),
		s.expectSymbol("C:EURCNY", mocks.OKResult(allMissing), nil),
		s.expectSymbol("C:GBPCNY", mocks.OKResult(s.frame(9.1)), nil),
		s.expectSymbol("C:XAUUSD", mocks.OKResult(s.frame(1520)), nil),
	)

	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Equal([]string{"GBP to CNY", "Gold (USD/oz)"}, bundle.Labels())

	failed := report.Failed()
	s.Require().Len(failed, 2)
	s.True(failed[0].Empty)
	s.True(failed[1].Empty)
	s.Equal(provider.StatusOK, failed[1].ErrorCode)
}

func (s *FetcherTestSuite) TestLeadingGapsAreDropped() {
	cfg := mocks.DefaultFrameConfig()
	cfg.LeadingGaps = 5
	gappy := s.generator.Generate(cfg)

	s.expectSymbol("C:USDCNY", mocks.OKResult(gappy), nil)

	instruments := DefaultInstruments()[:1]
	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, instruments)
	s.Require().NoError(err)

	usd, ok := bundle.Get("USD to CNY")
	s.Require().True(ok)
	s.Equal(60, usd.Len())
	s.Equal(5, report.Outcomes[0].Dropped)
	s.Equal(60, report.Outcomes[0].Rows)
}

func (s *FetcherTestSuite) TestAllFailYieldsEmptyBundle() {
	s.session.EXPECT().Query(gomock.Any(), gomock.Any()).Return(mocks.FailedResult(404), nil).Times(4)

	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)
	s.True(bundle.Empty())
	s.Len(report.Failed(), 4)
}

func (s *FetcherTestSuite) TestTransportErrorAborts() {
	gomock.InOrder(
		s.expectSymbol("C:USDCNY", mocks.OKResult(s.frame(6.96)), nil),
		s.expectSymbol("C:EURCNY", provider.QueryResult{}, fmt.Errorf("connection reset by peer")),
	)

	bundle, report, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().Error(err)
	s.Nil(bundle)
	s.Nil(report)
	s.True(errors.HasCode(err, errors.ErrCodeMarketDataFetchFailed))
	s.Contains(err.Error(), "EUR to CNY")
}

func (s *FetcherTestSuite) TestSymbolNotOfferedByProvider() {
	s.expectSymbol("PAXGUSDT", mocks.OKResult(s.frame(1520)), nil)

	bundle, report, err := s.newFetcher(provider.ProviderBinance).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Equal([]string{"Gold (USD/oz)"}, bundle.Labels())

	failed := report.Failed()
	s.Require().Len(failed, 3)

	for _, o := range failed {
		s.Equal(int(errors.ErrCodeSymbolNotOffered), o.ErrorCode)
		s.Empty(o.Symbol)
	}
}

func (s *FetcherTestSuite) TestEndClampedToToday() {
	s.today = date(2020, 2, 14)

	s.session.EXPECT().Query(gomock.Any(), gomock.Any()).
		DoAndReturn(func(_ context.Context, q provider.Query) (provider.QueryResult, error) {
			s.Equal(date(2020, 2, 14), q.End)

			return mocks.FailedResult(1), nil
		})

	_, _, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, DefaultInstruments()[:1])
	s.Require().NoError(err)
}

func (s *FetcherTestSuite) TestProgressCallback() {
	s.session.EXPECT().Query(gomock.Any(), gomock.Any()).Return(mocks.OKResult(s.frame(5)), nil).Times(4)

	type call struct {
		current int
		total   int
		label   string
	}

	var calls []call

	progress := WithProgress(func(current, total int, label string) {
		calls = append(calls, call{current, total, label})
	})

	_, _, err := s.newFetcher(provider.ProviderPolygon, progress).Fetch(context.Background(), s.dateRange, DefaultInstruments())
	s.Require().NoError(err)

	s.Equal([]call{
		{0, 4, "USD to CNY"},
		{1, 4, "EUR to CNY"},
		{2, 4, "GBP to CNY"},
		{3, 4, "Gold (USD/oz)"},
		{4, 4, ""},
	}, calls)
}

func (s *FetcherTestSuite) TestInvalidInstrumentTable() {
	_, _, err := s.newFetcher(provider.ProviderPolygon).Fetch(context.Background(), s.dateRange, []Instrument{{Label: "x"}, {Label: "x"}})
	s.Require().Error(err)
	s.True(errors.HasCode(err, errors.ErrCodeInvalidConfiguration))
}
