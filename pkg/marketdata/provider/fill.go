package provider

import (
	"math"
	"sort"
	"time"
)

// truncateDay returns midnight UTC of t's calendar day.
func truncateDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}

// weekdayCalendar lists every Monday-Friday in [start, end], plus any
// observation dates falling on weekends, in ascending order.
func weekdayCalendar(start, end time.Time, observations map[time.Time]float64) []time.Time {
	start = truncateDay(start)
	end = truncateDay(end)

	seen := make(map[time.Time]struct{})

	var days []time.Time

	for d := start; !d.After(end); d = d.AddDate(0, 0, 1) {
		if d.Weekday() == time.Saturday || d.Weekday() == time.Sunday {
			continue
		}

		seen[d] = struct{}{}
		days = append(days, d)
	}

	for d := range observations {
		if d.Before(start) || d.After(end) {
			continue
		}

		if _, ok := seen[d]; !ok {
			seen[d] = struct{}{}
			days = append(days, d)
		}
	}

	sort.Slice(days, func(i, j int) bool { return days[i].Before(days[j]) })

	return days
}

// buildFrame lays observations (keyed by UTC day) onto the weekday calendar of
// [start, end] and applies the fill policy. No observations yields an empty frame.
func buildFrame(column string, start, end time.Time, observations map[time.Time]float64, fill FillPolicy) Frame {
	frame := Frame{Column: column}
	if len(observations) == 0 {
		return frame
	}

	days := weekdayCalendar(start, end, observations)
	frame.Index = days
	frame.Values = make([]float64, len(days))

	for i, d := range days {
		v, ok := observations[d]
		if !ok {
			v = math.NaN()
		}

		frame.Values[i] = v
	}

	if fill == FillPrevious {
		fillPrevious(frame.Values)
	}

	return frame
}

// fillPrevious replaces NaN with the last non-NaN value seen before it.
// Leading NaNs are left alone.
func fillPrevious(values []float64) {
	last := math.NaN()

	for i, v := range values {
		if math.IsNaN(v) {
			values[i] = last

			continue
		}

		last = v
	}
}
