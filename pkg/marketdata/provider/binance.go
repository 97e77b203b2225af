package provider

import (
	"context"
	"errors"
	"fmt"
	"strconv"
	"time"

	binance "github.com/adshao/go-binance/v2"
	"github.com/adshao/go-binance/v2/common"
	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/logger"
	fxerrors "github.com/rxtech-lab/fxgold/pkg/errors"
)

// binanceKlinesLimit is the page size requested from the klines endpoint.
const binanceKlinesLimit = 1000

// BinanceAPIClient is the subset of the binance client used by BinanceSession.
type BinanceAPIClient interface {
	Klines(ctx context.Context, symbol string, interval string, startMillis int64, endMillis int64, limit int) ([]*binance.Kline, error)
	Ping(ctx context.Context) error
}

type binanceAPIAdapter struct {
	client *binance.Client
}

func (a binanceAPIAdapter) Klines(ctx context.Context, symbol string, interval string, startMillis int64, endMillis int64, limit int) ([]*binance.Kline, error) {
	return a.client.NewKlinesService().
		Symbol(symbol).
		Interval(interval).
		StartTime(startMillis).
		EndTime(endMillis).
		Limit(limit).
		Do(ctx)
}

func (a binanceAPIAdapter) Ping(ctx context.Context) error {
	return a.client.NewPingService().Do(ctx)
}

// BinanceSession serves daily closes from Binance spot klines.
// Binance public market data does not require authentication.
type BinanceSession struct {
	apiClient BinanceAPIClient
	logger    *logger.Logger
	started   bool
	closed    bool
}

// NewBinanceSession creates a binance session. The client is built on Start.
func NewBinanceSession(log *logger.Logger) *BinanceSession {
	return &BinanceSession{logger: log}
}

// NewBinanceSessionWithAPI creates a binance session backed by the given client.
func NewBinanceSessionWithAPI(apiClient BinanceAPIClient, log *logger.Logger) *BinanceSession {
	return &BinanceSession{apiClient: apiClient, logger: log}
}

// Start implements Session.
func (s *BinanceSession) Start(_ context.Context) error {
	if s.closed {
		return fmt.Errorf("binance session already closed")
	}

	if s.started {
		return nil
	}

	if s.apiClient == nil {
		s.apiClient = binanceAPIAdapter{client: binance.NewClient("", "")}
	}

	s.started = true

	return nil
}

// IsConnected implements Session using the ping endpoint.
func (s *BinanceSession) IsConnected(ctx context.Context) error {
	if !s.started || s.closed {
		return fmt.Errorf("binance session not started")
	}

	if err := s.apiClient.Ping(ctx); err != nil {
		return fmt.Errorf("binance ping failed: %w", err)
	}

	return nil
}

// Query implements Session. Klines are paged until the end of the range.
func (s *BinanceSession) Query(ctx context.Context, q Query) (QueryResult, error) {
	if !s.started || s.closed {
		return QueryResult{}, fmt.Errorf("binance session not started")
	}

	if code := validateQuery(q); code != StatusOK {
		return QueryResult{ErrorCode: code, Frame: Frame{Column: q.Field}}, nil
	}

	start := truncateDay(q.Start)
	end := truncateDay(q.End)
	endMillis := end.Add(24*time.Hour - time.Millisecond).UnixMilli()
	current := start.UnixMilli()
	observations := make(map[time.Time]float64)

	for current <= endMillis {
		klines, err := s.apiClient.Klines(ctx, q.Symbol, "1d", current, endMillis, binanceKlinesLimit)
		if err != nil {
			var apiErr *common.APIError
			if errors.As(err, &apiErr) {
				s.logger.Debug("Binance refused query",
					zap.String("symbol", q.Symbol),
					zap.Int64("code", apiErr.Code),
					zap.String("message", apiErr.Message))

				return QueryResult{ErrorCode: int(apiErr.Code), Frame: Frame{Column: q.Field}}, nil
			}

			return QueryResult{}, fmt.Errorf("failed to fetch klines for %s from Binance: %w", q.Symbol, err)
		}

		for _, k := range klines {
			closePrice, err := parseKlineClose(k)
			if err != nil {
				s.logger.Warn("Skipping kline", zap.String("symbol", q.Symbol), zap.Error(err))

				continue
			}

			observations[truncateDay(time.UnixMilli(k.OpenTime).UTC())] = closePrice
		}

		if len(klines) < binanceKlinesLimit {
			break
		}

		// Continue after the close of the last kline to avoid duplicates
		current = klines[len(klines)-1].CloseTime + 1
	}

	s.logger.Debug("Binance klines received",
		zap.String("symbol", q.Symbol),
		zap.Int("count", len(observations)))

	return QueryResult{
		ErrorCode: StatusOK,
		Frame:     buildFrame(q.Field, start, end, observations, q.Fill),
	}, nil
}

// parseKlineClose reads the close price of a kline.
func parseKlineClose(k *binance.Kline) (float64, error) {
	v, err := strconv.ParseFloat(k.Close, 64)
	if err != nil {
		return 0, fxerrors.Wrapf(fxerrors.ErrCodeMarketDataParseFailed, err,
			"invalid close %q for kline opened at %d", k.Close, k.OpenTime)
	}

	return v, nil
}

// Close implements Session.
func (s *BinanceSession) Close() error {
	s.closed = true
	s.apiClient = nil

	return nil
}
