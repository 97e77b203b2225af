package chart

import (
	"time"

	gochart "github.com/wcharczuk/go-chart/v2"
)

// TickLayout labels the shared date axis by year-month.
const TickLayout = "2006-01"

// tickIntervalMonths is the spacing of date axis ticks.
const tickIntervalMonths = 3

// monthStart returns midnight on the first day of t's month.
func monthStart(t time.Time) time.Time {
	y, m, _ := t.Date()

	return time.Date(y, m, 1, 0, 0, 0, 0, t.Location())
}

// QuarterTicks returns one tick every three months from the first month of
// start through end, each labelled YYYY-MM. Tick values use the same unit as
// gochart.TimeSeries x values.
func QuarterTicks(start, end time.Time) []gochart.Tick {
	var ticks []gochart.Tick

	for t := monthStart(start); !t.After(end); t = t.AddDate(0, tickIntervalMonths, 0) {
		ticks = append(ticks, gochart.Tick{
			Value: gochart.TimeToFloat64(t),
			Label: t.Format(TickLayout),
		})
	}

	return ticks
}

// AxisTicks returns the quarterly ticks for [start, end] plus an unlabelled
// tick at end when the last quarter tick falls short of it. go-chart derives
// the x range from the outermost ticks, so the set must bracket the data.
func AxisTicks(start, end time.Time) []gochart.Tick {
	ticks := QuarterTicks(start, end)
	endValue := gochart.TimeToFloat64(end)

	if len(ticks) == 0 || ticks[len(ticks)-1].Value < endValue {
		ticks = append(ticks, gochart.Tick{Value: endValue})
	}

	return ticks
}
