package marketdata

import (
	"math"
	"sort"
	"time"

	"github.com/rxtech-lab/fxgold/pkg/marketdata/provider"
)

// Point is one (date, price) observation.
type Point struct {
	Date  time.Time
	Value float64
}

// PriceSeries is the cleaned close series of one instrument.
type PriceSeries struct {
	Label  string
	Axis   AxisGroup
	Points []Point
}

// Len returns the number of points.
func (s PriceSeries) Len() int {
	return len(s.Points)
}

// Dates returns the x values of the series.
func (s PriceSeries) Dates() []time.Time {
	dates := make([]time.Time, len(s.Points))
	for i, p := range s.Points {
		dates[i] = p.Date
	}

	return dates
}

// Values returns the y values of the series.
func (s PriceSeries) Values() []float64 {
	values := make([]float64, len(s.Points))
	for i, p := range s.Points {
		values[i] = p.Value
	}

	return values
}

// Clean drops missing or non-finite values, sorts by date and keeps the last
// value for a repeated date. Cleaning a clean series returns an equal series.
func Clean(s PriceSeries) PriceSeries {
	points := make([]Point, 0, len(s.Points))

	for _, p := range s.Points {
		if math.IsNaN(p.Value) || math.IsInf(p.Value, 0) {
			continue
		}

		points = append(points, p)
	}

	sort.SliceStable(points, func(i, j int) bool { return points[i].Date.Before(points[j].Date) })

	deduped := points[:0]
	for _, p := range points {
		if n := len(deduped); n > 0 && deduped[n-1].Date.Equal(p.Date) {
			deduped[n-1] = p

			continue
		}

		deduped = append(deduped, p)
	}

	return PriceSeries{Label: s.Label, Axis: s.Axis, Points: deduped}
}

// Normalize turns a provider frame into a labelled series: the value column is
// renamed to the label, the date index becomes the point date and missing rows
// are dropped.
func Normalize(label string, axis AxisGroup, frame provider.Frame) PriceSeries {
	points := make([]Point, 0, frame.Len())

	for i, d := range frame.Index {
		if i >= len(frame.Values) {
			break
		}

		points = append(points, Point{Date: d, Value: frame.Values[i]})
	}

	return Clean(PriceSeries{Label: label, Axis: axis, Points: points})
}
