package prompt

import (
	"bufio"
	"context"
	"fmt"
	"io"
	"time"

	"github.com/rxtech-lab/fxgold/pkg/errors"
	"github.com/rxtech-lab/fxgold/pkg/marketdata"
)

// LinePrompter reads months line by line. It is used when stdin is not a terminal.
type LinePrompter struct {
	in  *bufio.Scanner
	out io.Writer
	now func() time.Time
}

// NewLinePrompter creates a line prompter reading from in and writing prompts to out.
func NewLinePrompter(in io.Reader, out io.Writer, now func() time.Time) *LinePrompter {
	if now == nil {
		now = time.Now
	}

	return &LinePrompter{in: bufio.NewScanner(in), out: out, now: now}
}

// PromptRange implements Prompter.
func (p *LinePrompter) PromptRange(ctx context.Context) (marketdata.DateRange, error) {
	for {
		start, err := p.month(ctx, StartLabel)
		if err != nil {
			return marketdata.DateRange{}, err
		}

		end, err := p.month(ctx, EndLabel)
		if err != nil {
			return marketdata.DateRange{}, err
		}

		r, err := resolve(start, end, p.now())
		if err != nil {
			fmt.Fprintf(p.out, "%v, please enter the range again\n", err)

			continue
		}

		return r, nil
	}
}

func (p *LinePrompter) month(ctx context.Context, label string) (time.Time, error) {
	for {
		if err := ctx.Err(); err != nil {
			return time.Time{}, err
		}

		fmt.Fprintf(p.out, "%s: ", label)

		if !p.in.Scan() {
			if err := p.in.Err(); err != nil {
				return time.Time{}, errors.Wrap(errors.ErrCodeMissingParameter, "failed to read input", err)
			}

			return time.Time{}, ErrAborted
		}

		month, err := marketdata.ParseMonth(p.in.Text())
		if err != nil {
			fmt.Fprintf(p.out, "%v\n", err)

			continue
		}

		return month, nil
	}
}
