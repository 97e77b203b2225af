package mocks

import (
	"math"
	"math/rand"
	"time"

	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// FrameGenerator produces provider frames of daily closes for tests.
type FrameGenerator struct {
	rng *rand.Rand
}

// NewFrameGenerator creates a FrameGenerator with the given seed.
// Use a fixed seed for reproducible results in tests.
func NewFrameGenerator(seed int64) *FrameGenerator {
	return &FrameGenerator{
		rng: rand.New(rand.NewSource(seed)),
	}
}

// FrameConfig configures how a frame is generated.
type FrameConfig struct {
	// Start and End bound the weekday calendar of the frame.
	Start time.Time
	End   time.Time
	// InitialPrice is the first close.
	InitialPrice float64
	// Volatility controls day-to-day movement (0.005 = 0.5% typical move)
	Volatility float64
	// LeadingGaps is the number of leading rows left missing, as a provider
	// does when the series starts after the requested start.
	LeadingGaps int
}

// DefaultFrameConfig returns a USD/CNY-like configuration for Q1 2020.
func DefaultFrameConfig() FrameConfig {
	return FrameConfig{
		Start:        time.Date(2020, 1, 1, 0, 0, 0, 0, time.UTC),
		End:          time.Date(2020, 3, 31, 0, 0, 0, 0, time.UTC),
		InitialPrice: 6.96,
		Volatility:   0.003,
		LeadingGaps:  0,
	}
}

// Generate creates a "close" frame over every weekday in the configured range.
// Prices follow a geometric Brownian motion.
func (g *FrameGenerator) Generate(config FrameConfig) provider.Frame {
	frame := provider.Frame{Column: provider.FieldClose}
	price := config.InitialPrice

	for d := config.Start; !d.After(config.End); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		// Box-Muller transform for a normal draw
		u1 := g.rng.Float64()
		u2 := g.rng.Float64()
		z := math.Sqrt(-2*math.Log(u1)) * math.Cos(2*math.Pi*u2)

		price = price * (1 + config.Volatility*z)
		if price <= 0 {
			price = config.InitialPrice * 0.01
		}

		value := roundToDecimals(price, 4)
		if len(frame.Index) < config.LeadingGaps {
			value = math.NaN()
		}

		frame.Index = append(frame.Index, d)
		frame.Values = append(frame.Values, value)
	}

	return frame
}

// OKResult wraps a frame in a successful query result.
func OKResult(frame provider.Frame) provider.QueryResult {
	return provider.QueryResult{ErrorCode: provider.StatusOK, Frame: frame}
}

// FailedResult returns a refused query with an empty frame.
func FailedResult(code int) provider.QueryResult {
	return provider.QueryResult{ErrorCode: code, Frame: provider.Frame{Column: provider.FieldClose}}
}

// roundToDecimals rounds a float64 to the specified number of decimal places.
func roundToDecimals(val float64, decimals int) float64 {
	pow := math.Pow(10, float64(decimals))
	return math.Round(val*pow) / pow
}
