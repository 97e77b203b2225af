package provider

import (
	"context"
	"fmt"
	"math"
	"time"

	"github.com/rxtech-lab/fxgold/internal/logger"
)

// ProviderType defines the type of market data provider.
type ProviderType string

const (
	ProviderPolygon ProviderType = "polygon"
	ProviderBinance ProviderType = "binance"
)

// FillPolicy controls how a session resolves gaps inside the queried range.
type FillPolicy string

const (
	// FillNone leaves gaps as missing values.
	FillNone FillPolicy = "none"
	// FillPrevious substitutes the most recent known value. Gaps before the
	// first observation cannot be resolved and stay missing.
	FillPrevious FillPolicy = "previous"
)

// FieldClose is the only field the sessions serve.
const FieldClose = "close"

// Status codes reported in QueryResult.ErrorCode. Provider failures use the
// provider's own code (HTTP status for polygon, API error code for binance).
const (
	StatusOK               = 0
	StatusInvalidSymbol    = -40522001
	StatusUnsupportedField = -40522002
	StatusInvalidRange     = -40522003
)

// Query describes one closing-price request.
type Query struct {
	Symbol string
	Field  string
	Start  time.Time
	End    time.Time
	Fill   FillPolicy
}

// QueryResult carries the provider status code and the tabular result.
// A non-zero ErrorCode means the provider could not serve the query.
type QueryResult struct {
	ErrorCode int
	Frame     Frame
}

// OK reports whether the provider accepted the query.
func (r QueryResult) OK() bool {
	return r.ErrorCode == StatusOK
}

// Frame is a single-column table indexed by date. NaN marks a missing value.
type Frame struct {
	Column string
	Index  []time.Time
	Values []float64
}

// Len returns the number of rows.
func (f Frame) Len() int {
	return len(f.Index)
}

// Empty reports whether the frame has no rows at all.
func (f Frame) Empty() bool {
	return len(f.Index) == 0
}

// Missing returns the number of rows holding NaN.
func (f Frame) Missing() int {
	n := 0

	for _, v := range f.Values {
		if math.IsNaN(v) {
			n++
		}
	}

	return n
}

// Session is a process-wide connection to a market data provider.
// It must be started and confirmed live before the first Query and closed on shutdown.
// Sessions are not safe for concurrent use.
type Session interface {
	// Start establishes the session. Calling Start on a started session is a no-op.
	Start(ctx context.Context) error
	// IsConnected returns nil when the provider answers on this session.
	IsConnected(ctx context.Context) error
	// Query fetches one field over a date range.
	// A returned error is a transport failure; a provider-side refusal is
	// reported through QueryResult.ErrorCode instead.
	Query(ctx context.Context, q Query) (QueryResult, error)
	// Close releases the session.
	Close() error
}

// Options carries provider credentials and collaborators.
type Options struct {
	PolygonAPIKey string
	Logger        *logger.Logger
}

// NewSession creates a session for the given provider type. The session is not started.
func NewSession(providerType ProviderType, opts Options) (Session, error) {
	log := opts.Logger
	if log == nil {
		log = logger.NewNop()
	}

	switch providerType {
	case ProviderPolygon:
		session, err := NewPolygonSession(opts.PolygonAPIKey, log)
		if err != nil {
			return nil, err
		}

		return session, nil
	case ProviderBinance:
		return NewBinanceSession(log), nil
	default:
		return nil, fmt.Errorf("unsupported market data provider: %s", providerType)
	}
}

// validateQuery returns a non-zero status when the query cannot be sent at all.
func validateQuery(q Query) int {
	switch {
	case q.Symbol == "":
		return StatusInvalidSymbol
	case q.Field != FieldClose:
		return StatusUnsupportedField
	case q.Start.IsZero() || q.End.IsZero() || q.End.Before(q.Start):
		return StatusInvalidRange
	default:
		return StatusOK
	}
}
