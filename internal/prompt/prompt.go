// Package prompt asks the operator for the month range to chart.
package prompt

import (
	"context"
	"time"

	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

const (
	StartLabel = "Start month (YYYY-MM)"
	EndLabel   = "End month (YYYY-MM)"
)

// ErrAborted is returned when the operator leaves the prompt without
// entering a range.
var ErrAborted = errors.New(errors.ErrCodeMissingParameter, "date entry aborted")

// Prompter collects a validated date range from the operator.
//
// A malformed month asks for the same month again. A range whose start
// falls after its end starts over from the start month.
type Prompter interface {
	PromptRange(ctx context.Context) (marketdata.DateRange, error)
}

// resolve turns the two accepted months into a range covering the whole end
// month, clamped to today.
func resolve(start, end time.Time, today time.Time) (marketdata.DateRange, error) {
	return marketdata.NewDateRange(start, marketdata.EndOfMonth(end), today)
}
