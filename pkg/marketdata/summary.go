package marketdata

import (
	"time"

	"github.com/shopspring/decimal"
)

// SeriesSummary describes one series for the console report.
type SeriesSummary struct {
	Label     string
	Axis      AxisGroup
	Rows      int
	FirstDate time.Time
	LastDate  time.Time
	First     decimal.Decimal
	Last      decimal.Decimal
	Min       decimal.Decimal
	Max       decimal.Decimal
	// ChangePct is (Last-First)/First*100, zero when First is zero.
	ChangePct decimal.Decimal
}

// Summarize computes per-series statistics in bundle order.
// Prices are rounded to four places and the change to two.
func Summarize(b *Bundle) []SeriesSummary {
	summaries := make([]SeriesSummary, 0, b.Len())

	for _, s := range b.Series() {
		if s.Len() == 0 {
			continue
		}

		first := decimal.NewFromFloat(s.Points[0].Value)
		last := decimal.NewFromFloat(s.Points[s.Len()-1].Value)
		lo, hi := first, first

		for _, p := range s.Points[1:] {
			v := decimal.NewFromFloat(p.Value)
			if v.LessThan(lo) {
				lo = v
			}

			if v.GreaterThan(hi) {
				hi = v
			}
		}

		change := decimal.Zero
		if !first.IsZero() {
			change = last.Sub(first).Div(first).Mul(decimal.NewFromInt(100)).Round(2)
		}

		summaries = append(summaries, SeriesSummary{
			Label:     s.Label,
			Axis:      s.Axis,
			Rows:      s.Len(),
			FirstDate: s.Points[0].Date,
			LastDate:  s.Points[s.Len()-1].Date,
			First:     first.Round(4),
			Last:      last.Round(4),
			Min:       lo.Round(4),
			Max:       hi.Round(4),
			ChangePct: change,
		})
	}

	return summaries
}
