package marketdata

import (
	"strings"
	"time"

	"github.com/go-playground/validator/v10"

	"github.com/rxtech-lab/fxgold/pkg/errors"
)

const (
	// MonthLayout is the operator input format for range bounds.
	MonthLayout = "2006-01"
	// DayLayout is the day precision format used in titles and logs.
	DayLayout = "2006-01-02"
)

var validate = validator.New()

// DateRange is an inclusive range of calendar days at midnight UTC.
type DateRange struct {
	Start time.Time `validate:"required"`
	End   time.Time `validate:"required,gtefield=Start"`
}

// String renders the range as "YYYY-MM-DD to YYYY-MM-DD".
func (r DateRange) String() string {
	return r.Start.Format(DayLayout) + " to " + r.End.Format(DayLayout)
}

// Days returns the number of calendar days covered.
func (r DateRange) Days() int {
	return int(r.End.Sub(r.Start).Hours()/24) + 1
}

// ClampEnd returns a copy whose end does not exceed the given day.
func (r DateRange) ClampEnd(today time.Time) DateRange {
	today = startOfDay(today)
	if r.End.After(today) {
		r.End = today
	}

	return r
}

// ParseMonth parses a "YYYY-MM" string into the first day of that month.
func ParseMonth(input string) (time.Time, error) {
	t, err := time.Parse(MonthLayout, strings.TrimSpace(input))
	if err != nil {
		return time.Time{}, errors.Wrapf(errors.ErrCodeInvalidMonth, err, "invalid month %q, expected YYYY-MM", input)
	}

	return t, nil
}

// EndOfMonth returns the last calendar day of t's month.
func EndOfMonth(t time.Time) time.Time {
	y, m, _ := t.Date()

	return time.Date(y, m+1, 0, 0, 0, 0, 0, time.UTC)
}

// NewDateRange builds a validated range from two days. The end is clamped to
// today; a start after the (clamped) end is rejected.
func NewDateRange(start, end, today time.Time) (DateRange, error) {
	r := DateRange{Start: startOfDay(start), End: startOfDay(end)}

	if err := validate.Struct(r); err != nil {
		return DateRange{}, rangeError(r, err)
	}

	r = r.ClampEnd(today)
	if r.Start.After(r.End) {
		return DateRange{}, errors.Newf(errors.ErrCodeInvalidDateRange,
			"start %s is after today", r.Start.Format(DayLayout))
	}

	return r, nil
}

// RangeFromMonths parses operator month input. The start expands to the first
// day of its month and the end to the last day of its month.
func RangeFromMonths(startMonth, endMonth string, today time.Time) (DateRange, error) {
	start, err := ParseMonth(startMonth)
	if err != nil {
		return DateRange{}, err
	}

	end, err := ParseMonth(endMonth)
	if err != nil {
		return DateRange{}, err
	}

	return NewDateRange(start, EndOfMonth(end), today)
}

// rangeError reports the first failed rule of a DateRange.
func rangeError(r DateRange, err error) error {
	var fieldErrs validator.ValidationErrors
	if !errors.As(err, &fieldErrs) || len(fieldErrs) == 0 {
		return errors.Wrap(errors.ErrCodeInvalidDateRange, "invalid date range", err)
	}

	fe := fieldErrs[0]

	switch fe.Tag() {
	case "required":
		return errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "%s date is required", strings.ToLower(fe.Field()))
	case "gtefield":
		return errors.Wrapf(errors.ErrCodeInvalidDateRange, err,
			"start %s is after end %s", r.Start.Format(DayLayout), r.End.Format(DayLayout))
	default:
		return errors.Wrapf(errors.ErrCodeInvalidDateRange, err, "invalid %s date", strings.ToLower(fe.Field()))
	}
}

func startOfDay(t time.Time) time.Time {
	y, m, d := t.Date()

	return time.Date(y, m, d, 0, 0, 0, 0, time.UTC)
}
