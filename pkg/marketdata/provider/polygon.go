package provider

import (
	"context"
	"errors"
	"fmt"
	"time"

	polygon "github.com/polygon-io/client-go/rest"
	"github.com/polygon-io/client-go/rest/models"
	"go.uber.org/zap"

	"github.com/rxtech-lab/fxgold/internal/logger"
)

// PolygonAggsIterator is the subset of the polygon aggregates iterator used here.
type PolygonAggsIterator interface {
	Next() bool
	Item() models.Agg
	Err() error
}

// PolygonAPIClient is the subset of the polygon REST client used by PolygonSession.
type PolygonAPIClient interface {
	ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator
	GetMarketStatus(ctx context.Context, options ...models.RequestOption) (*models.GetMarketStatusResponse, error)
}

// polygonAPIAdapter narrows *polygon.Client to PolygonAPIClient.
type polygonAPIAdapter struct {
	client *polygon.Client
}

func (a polygonAPIAdapter) ListAggs(ctx context.Context, params *models.ListAggsParams, options ...models.RequestOption) PolygonAggsIterator {
	return a.client.ListAggs(ctx, params, options...)
}

func (a polygonAPIAdapter) GetMarketStatus(ctx context.Context, options ...models.RequestOption) (*models.GetMarketStatusResponse, error) {
	return a.client.GetMarketStatus(ctx, options...)
}

// PolygonSession serves daily closing prices from Polygon.io.
// Forex and metals use the "C:" ticker prefix, e.g. C:USDCNY or C:XAUUSD.
type PolygonSession struct {
	apiKey    string
	apiClient PolygonAPIClient
	logger    *logger.Logger
	started   bool
	closed    bool
}

// NewPolygonSession creates a polygon session. The REST client is built on Start.
func NewPolygonSession(apiKey string, log *logger.Logger) (*PolygonSession, error) {
	if apiKey == "" {
		return nil, fmt.Errorf("apiKey is required")
	}

	return &PolygonSession{
		apiKey:    apiKey,
		apiClient: nil,
		logger:    log,
	}, nil
}

// NewPolygonSessionWithAPI creates a polygon session backed by the given client.
func NewPolygonSessionWithAPI(apiClient PolygonAPIClient, log *logger.Logger) *PolygonSession {
	return &PolygonSession{
		apiClient: apiClient,
		logger:    log,
	}
}

// Start implements Session.
func (s *PolygonSession) Start(_ context.Context) error {
	if s.closed {
		return fmt.Errorf("polygon session already closed")
	}

	if s.started {
		return nil
	}

	if s.apiClient == nil {
		s.apiClient = polygonAPIAdapter{client: polygon.New(s.apiKey)}
	}

	s.started = true
	s.logger.Debug("Polygon session started")

	return nil
}

// IsConnected implements Session by asking polygon for the current market status.
func (s *PolygonSession) IsConnected(ctx context.Context) error {
	if !s.started || s.closed {
		return fmt.Errorf("polygon session not started")
	}

	status, err := s.apiClient.GetMarketStatus(ctx)
	if err != nil {
		return fmt.Errorf("polygon market status check failed: %w", err)
	}

	if status != nil {
		s.logger.Debug("Polygon session live", zap.String("market", status.Market))
	}

	return nil
}

// Query implements Session.
func (s *PolygonSession) Query(ctx context.Context, q Query) (QueryResult, error) {
	if !s.started || s.closed {
		return QueryResult{}, fmt.Errorf("polygon session not started")
	}

	if code := validateQuery(q); code != StatusOK {
		return QueryResult{ErrorCode: code, Frame: Frame{Column: q.Field}}, nil
	}

	start := truncateDay(q.Start)
	end := truncateDay(q.End)

	//nolint:exhaustruct // third-party struct with many optional fields
	params := models.ListAggsParams{
		Ticker:     q.Symbol,
		Multiplier: 1,
		Timespan:   models.Day,
		From:       models.Millis(start),
		To:         models.Millis(end.Add(24*time.Hour - time.Millisecond)),
	}.WithLimit(50000)

	iter := s.apiClient.ListAggs(ctx, params)
	observations := make(map[time.Time]float64)

	for iter.Next() {
		agg := iter.Item()
		observations[truncateDay(time.Time(agg.Timestamp))] = agg.Close
	}

	if err := iter.Err(); err != nil {
		var apiErr *models.ErrorResponse
		if errors.As(err, &apiErr) && apiErr.StatusCode != 0 {
			s.logger.Debug("Polygon refused query",
				zap.String("symbol", q.Symbol),
				zap.Int("status", apiErr.StatusCode),
				zap.Error(err))

			return QueryResult{ErrorCode: apiErr.StatusCode, Frame: Frame{Column: q.Field}}, nil
		}

		return QueryResult{}, fmt.Errorf("error iterating polygon aggregates for %s: %w", q.Symbol, err)
	}

	s.logger.Debug("Polygon aggregates received",
		zap.String("symbol", q.Symbol),
		zap.Int("count", len(observations)))

	return QueryResult{
		ErrorCode: StatusOK,
		Frame:     buildFrame(q.Field, start, end, observations, q.Fill),
	}, nil
}

// Close implements Session.
func (s *PolygonSession) Close() error {
	s.closed = true
	s.apiClient = nil

	return nil
}
